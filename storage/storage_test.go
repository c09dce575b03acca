package storage

import (
	"errors"
	"os"
	"regexp"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.UnixMilli(1700000000123)

func TestImageFilename(t *testing.T) {
	tests := []struct {
		customer string
		original string
		want     string
	}{
		{"Amy Burns", "photo.jpg", "amy-burns.jpg"},
		{"  Évil   Rabbit!! ", "x.PNG", "vil-rabbit.png"},
		{"Lee -- Robinson", "lee.webp", "lee-robinson.webp"},
		{"-Delba-", "d.jpeg", "delba.jpeg"},
		{"Balazs Orban", "noext", "balazs-orban.png"},
		{"Balazs Orban", "trailing.", "balazs-orban.png"},
		{"Michael", "a.tar.gz", "michael.gz"},
		{"!!!", "my photo.png", "1700000000123-my_photo.png"},
		{"", "a/b c.png", "1700000000123-a_b_c.png"},
		{"   ", "x.png", "1700000000123-x.png"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ImageFilename(tt.customer, tt.original, fixedNow), "customer=%q", tt.customer)
	}
}

func TestSlugifyProperties(t *testing.T) {
	valid := regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
	inputs := []string{
		"Amy Burns", "a  b\tc", "--x--", "Hello, World!", "ÄÖÜ ok", "a-b-c", "1 2 3",
		" - - ", "Steph Dietz", "tab\tand\nnewline", "__init__", "x", "***", "",
	}
	for _, in := range inputs {
		s := Slugify(in)
		if s == "" {
			continue
		}
		assert.Regexp(t, valid, s, "input=%q", in)
	}
}

func TestSlugifyUnicodeWhitespace(t *testing.T) {
	assert.Equal(t, "amy-burns", Slugify("Amy\u00a0Burns"))
	assert.Equal(t, "amy-burns", Slugify("Amy\u2003\u3000Burns"))
	assert.Equal(t, "amy-burns", Slugify("Amy\ufeffBurns"))
	assert.Equal(t, "amy-burns", Slugify("\u00a0Amy Burns\u2028"))
	assert.Equal(t, "amy-burns.png", ImageFilename("Amy\u00a0Burns", "a.png", fixedNow))
}

func TestImageFilenameNeverEmpty(t *testing.T) {
	for _, name := range []string{"", "!!!", "   ", "-", "@@ ##"} {
		assert.NotEmpty(t, ImageFilename(name, "", fixedNow))
	}
}

func TestImageStore_Save(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewImageStore(fs, "public/customers", "/customers/")

	url, err := store.Save("amy-burns.png", []byte("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "/customers/amy-burns.png", url)

	data, err := afero.ReadFile(fs, "public/customers/amy-burns.png")
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)

	// 同名覆盖
	_, err = store.Save("amy-burns.png", []byte("new"))
	require.NoError(t, err)
	data, _ = afero.ReadFile(fs, "public/customers/amy-burns.png")
	assert.Equal(t, []byte("new"), data)
}

type failingFs struct {
	afero.Fs
}

func (failingFs) MkdirAll(string, os.FileMode) error {
	return errors.New("read-only file system")
}

func TestImageStore_SaveError(t *testing.T) {
	store := NewImageStore(failingFs{afero.NewMemMapFs()}, "public/customers", "/customers")
	_, err := store.Save("x.png", []byte("x"))
	assert.Error(t, err)
}

func TestImageStore_ReadOnly(t *testing.T) {
	store := NewImageStore(afero.NewReadOnlyFs(afero.NewMemMapFs()), "public/customers", "/customers")
	_, err := store.Save("x.png", []byte("x"))
	assert.Error(t, err)
}
