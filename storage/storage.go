// Package storage 客户头像的文件存储。
package storage

import (
	"fmt"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/afero"
)

// DefaultExtension 原文件名没有扩展名时使用
const DefaultExtension = "png"

var (
	nameDisallowed     = regexp.MustCompile(`[^a-z0-9\s\p{Z}\x{FEFF}-]`)
	whitespaceRun      = regexp.MustCompile(`[\s\p{Z}\x{FEFF}]+`)
	hyphenRun          = regexp.MustCompile(`-+`)
	extDisallowed      = regexp.MustCompile(`[^a-z0-9]`)
	originalDisallowed = regexp.MustCompile(`[^A-Za-z0-9.-]`)
)

// ImageStore 将上传的图片写入 afero 文件系统，并返回公开访问路径
type ImageStore struct {
	fs           afero.Fs
	dir          string
	publicPrefix string
}

// NewImageStore 创建图片存储；dir 为写入目录，publicPrefix 为静态访问前缀
func NewImageStore(fs afero.Fs, dir, publicPrefix string) *ImageStore {
	return &ImageStore{fs: fs, dir: dir, publicPrefix: strings.TrimRight(publicPrefix, "/")}
}

// Save 确保目录存在并写入文件，同名文件直接覆盖
func (s *ImageStore) Save(filename string, data []byte) (string, error) {
	if err := s.fs.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	if err := afero.WriteFile(s.fs, filepath.Join(s.dir, filename), data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", filename, err)
	}
	return s.PublicURL(filename), nil
}

// PublicURL 文件的公开访问路径
func (s *ImageStore) PublicURL(filename string) string {
	return path.Join(s.publicPrefix, filename)
}

// ImageFilename 由客户名派生文件名，如 "Amy Burns" + "a.jpg" -> "amy-burns.jpg"。
// 客户名为空或清洗后为空时使用 "<毫秒时间戳>-<清洗后的原文件名>"。
// 同名客户会互相覆盖。
func ImageFilename(customerName, originalName string, now time.Time) string {
	if slug := Slugify(customerName); slug != "" {
		return slug + "." + extension(originalName)
	}
	return fmt.Sprintf("%d-%s", now.UnixMilli(), originalDisallowed.ReplaceAllString(originalName, "_"))
}

// Slugify 转小写，去掉字母数字、空白、连字符以外的字符，空白（含 Unicode 空白）替换为连字符并合并
func Slugify(name string) string {
	s := strings.TrimSpace(strings.ToLower(name))
	s = nameDisallowed.ReplaceAllString(s, "")
	s = whitespaceRun.ReplaceAllString(s, "-")
	s = hyphenRun.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

func extension(originalName string) string {
	i := strings.LastIndex(originalName, ".")
	if i < 0 {
		return DefaultExtension
	}
	ext := extDisallowed.ReplaceAllString(strings.ToLower(originalName[i+1:]), "")
	if ext == "" {
		return DefaultExtension
	}
	return ext
}
