// Package templates serves the text assets features write into projects.
//
// Assets are embedded under assets/v2, assets/v3 and assets/common with a
// .tmpl suffix, so Go sources among them are not compiled. A lookup for
// (path, version) tries the version directory first and falls back to
// common. Placeholders look like {{PROJECT_NAME}} and are replaced by
// Substitute; anything else in double braces is left alone.
package templates

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

//go:embed all:assets
var embedded embed.FS

// ErrAssetNotFound is returned when neither the version nor the common
// directory holds the requested asset.
var ErrAssetNotFound = errors.New("template asset not found")

const (
	cacheSize   = 128
	assetSuffix = ".tmpl"
)

// Store reads raw assets by relative path and Wails major version.
type Store struct {
	fsys  fs.FS
	cache *lru.Cache[string, string]
}

// New returns a Store over the embedded assets.
func New() *Store {
	sub, err := fs.Sub(embedded, "assets")
	if err != nil {
		panic(err)
	}
	s, err := NewFromFS(sub)
	if err != nil {
		panic(err)
	}
	return s
}

// NewFromFS returns a Store over fsys, which must contain v2/, v3/ and
// common/ directories.
func NewFromFS(fsys fs.FS) (*Store, error) {
	cache, err := lru.New[string, string](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("creating template cache: %w", err)
	}
	return &Store{fsys: fsys, cache: cache}, nil
}

// Read returns the raw text of an asset for the given Wails version.
func (s *Store) Read(name string, version int) (string, error) {
	dir := "v" + strconv.Itoa(version)
	key := dir + ":" + name
	if text, ok := s.cache.Get(key); ok {
		return text, nil
	}

	file := name + assetSuffix
	for _, candidate := range []string{path.Join(dir, file), path.Join("common", file)} {
		data, err := fs.ReadFile(s.fsys, candidate)
		if err == nil {
			text := string(data)
			s.cache.Add(key, text)
			return text, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("reading %s: %w", candidate, err)
		}
	}

	return "", fmt.Errorf("%w: %s (wails v%d)", ErrAssetNotFound, name, version)
}

// Substitute replaces {{KEY}} placeholders with params[KEY].
func Substitute(text string, params map[string]string) string {
	if len(params) == 0 {
		return text
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys)*2)
	for _, k := range keys {
		pairs = append(pairs, "{{"+k+"}}", params[k])
	}
	return strings.NewReplacer(pairs...).Replace(text)
}
