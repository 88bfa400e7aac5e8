package blockcache

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/signalgraph/engine/log"
)

// FileCacheProvider is the filesystem-backed CacheProvider (spec §4.3.4):
// blocks live as plain files under Dir, named
// "{cache_key}_{width}_{clamped_position}{Extension}" (spec §6.2).
type FileCacheProvider struct {
	Dir       string
	Extension string
}

// NewFileCacheProvider returns a provider rooted at dir, naming files
// with the given extension (including its leading dot, e.g. ".bin").
func NewFileCacheProvider(dir, extension string) *FileCacheProvider {
	return &FileCacheProvider{Dir: dir, Extension: extension}
}

func (p *FileCacheProvider) filePath(path string) string {
	return filepath.Join(p.Dir, path+p.Extension)
}

// Persist implements CacheProvider.
func (p *FileCacheProvider) Persist(path string, bytes []byte) bool {
	full := p.filePath(path)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		log.Warnf("blockcache: mkdir for %s: %v", full, err)
		return false
	}
	if err := os.WriteFile(full, bytes, 0o644); err != nil {
		log.Warnf("blockcache: write %s: %v", full, err)
		return false
	}
	return true
}

// Provide implements CacheProvider.
func (p *FileCacheProvider) Provide(path string) ([]byte, bool) {
	data, err := os.ReadFile(p.filePath(path))
	if err != nil {
		return nil, false
	}
	return data, true
}

// ScannedBlock describes one cache block file discovered by Scan.
type ScannedBlock struct {
	CacheKey string
	Width    int64
	Position int64
	Path     string
}

// Scan walks location for files matching "*_*_*{extension}" and reports
// each one whose cache_key segment equals cacheKey, in no particular
// order. A filename whose key, width or position segment itself contains
// '_' or '.' is rejected with ErrInvalidKeySegment (spec §6.2) rather
// than silently misparsed.
func Scan(location, extension, cacheKey string, f func(ScannedBlock) error) error {
	pattern := fmt.Sprintf("*_*_*%s", extension)
	matches, err := doublestar.Glob(os.DirFS(location), pattern)
	if err != nil {
		return fmt.Errorf("blockcache: scan %s: %w", location, err)
	}
	for _, name := range matches {
		block, err := parseBlockName(name, extension)
		if err != nil {
			return err
		}
		if block.CacheKey != cacheKey {
			continue
		}
		block.Path = filepath.Join(location, name)
		if err := f(block); err != nil {
			return err
		}
	}
	return nil
}

func parseBlockName(name, extension string) (ScannedBlock, error) {
	trimmed := strings.TrimSuffix(name, extension)
	parts := strings.Split(trimmed, "_")
	if len(parts) != 3 {
		return ScannedBlock{}, ErrInvalidKeySegment
	}
	key, widthStr, posStr := parts[0], parts[1], parts[2]
	if key == "" || strings.Contains(key, ".") {
		return ScannedBlock{}, ErrInvalidKeySegment
	}
	width, err := strconv.ParseInt(widthStr, 10, 64)
	if err != nil {
		return ScannedBlock{}, ErrInvalidKeySegment
	}
	pos, err := strconv.ParseInt(posStr, 10, 64)
	if err != nil {
		return ScannedBlock{}, ErrInvalidKeySegment
	}
	return ScannedBlock{CacheKey: key, Width: width, Position: pos}, nil
}
