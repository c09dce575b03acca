package cache

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"dashboard/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryViews 测试用内存实现
type memoryViews struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemoryViews() *memoryViews {
	return &memoryViews{data: make(map[string][]byte)}
}

func (m *memoryViews) Get(_ context.Context, key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.data[key]
	return b, ok
}

func (m *memoryViews) Set(_ context.Context, key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
}

func (m *memoryViews) Revalidate(_ context.Context, path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.data {
		if strings.HasPrefix(k, keyPrefix+path) {
			delete(m.data, k)
		}
	}
}

func TestKey(t *testing.T) {
	assert.Equal(t, "view:/dashboard/invoices", Key("/dashboard/invoices", ""))
	assert.Equal(t, "view:/dashboard/invoices?page=2&query=amy", Key("/dashboard/invoices", "page=2&query=amy"))
}

func TestNew_Disabled(t *testing.T) {
	v := New(config.CacheConfig{Enabled: false})
	assert.IsType(t, Noop{}, v)
}

func TestNew_Enabled(t *testing.T) {
	v := New(config.CacheConfig{Enabled: true, Addr: "127.0.0.1:6379"})
	assert.IsType(t, &Redis{}, v)
}

func TestRemember(t *testing.T) {
	ctx := context.Background()
	views := newMemoryViews()
	key := Key("/dashboard/invoices", "page=1")

	calls := 0
	load := func() ([]string, error) {
		calls++
		return []string{"a", "b"}, nil
	}

	got, err := Remember(ctx, views, key, load)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got)

	got, err = Remember(ctx, views, key, load)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got)
	assert.Equal(t, 1, calls)

	// 失效后重新加载
	views.Revalidate(ctx, "/dashboard/invoices")
	_, err = Remember(ctx, views, key, load)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestRemember_LoadErrorNotCached(t *testing.T) {
	ctx := context.Background()
	views := newMemoryViews()
	boom := errors.New("boom")

	_, err := Remember(ctx, views, "k", func() (int, error) { return 0, boom })
	assert.ErrorIs(t, err, boom)
	_, ok := views.Get(ctx, "k")
	assert.False(t, ok)
}

func TestRemember_Noop(t *testing.T) {
	calls := 0
	for i := 0; i < 3; i++ {
		_, err := Remember(context.Background(), Noop{}, "k", func() (int, error) {
			calls++
			return i, nil
		})
		require.NoError(t, err)
	}
	assert.Equal(t, 3, calls)
}
