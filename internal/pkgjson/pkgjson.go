// Package pkgjson edits package.json files without reordering them.
package pkgjson

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"

	"github.com/spf13/afero"
)

// Section names a string-map section of package.json.
type Section string

const (
	Dependencies    Section = "dependencies"
	DevDependencies Section = "devDependencies"
	Scripts         Section = "scripts"
)

// ErrNoPackage is returned by Locate when no package.json exists.
var ErrNoPackage = errors.New("no package.json found")

// Candidates lists where a Wails project keeps its package.json, in order.
var Candidates = []string{path.Join("frontend", "package.json"), "package.json"}

// Locate returns the first candidate package.json that exists.
func Locate(fsys afero.Fs) (string, error) {
	for _, c := range Candidates {
		if _, err := fsys.Stat(c); err == nil {
			return c, nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
	}
	return "", ErrNoPackage
}

type member struct {
	key   string
	value json.RawMessage
}

// object is a JSON object that remembers key order.
type object []member

func (o object) get(key string) (json.RawMessage, bool) {
	for _, m := range o {
		if m.key == key {
			return m.value, true
		}
	}
	return nil, false
}

func (o *object) set(key string, value json.RawMessage) {
	for i, m := range *o {
		if m.key == key {
			(*o)[i].value = value
			return
		}
	}
	*o = append(*o, member{key: key, value: value})
}

func (o object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := marshal(m.key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(m.value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (o *object) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected object, got %v", tok)
	}

	*o = (*o)[:0]
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected key, got %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("decoding %q: %w", key, err)
		}
		*o = append(*o, member{key: key, value: raw})
	}
	_, err = dec.Token()
	return err
}

// Entry is one name/value pair of a package.json section.
type Entry struct {
	Name  string
	Value string
}

// Merge sets entries in section of the package.json at file, keeping
// existing key order and appending new keys. Existing entries are
// overwritten.
func Merge(fsys afero.Fs, file string, section Section, entries ...Entry) error {
	data, err := afero.ReadFile(fsys, file)
	if err != nil {
		return fmt.Errorf("reading %s: %w", file, err)
	}

	var root object
	if err := json.Unmarshal(data, &root); err != nil {
		return fmt.Errorf("parsing %s: %w", file, err)
	}

	var sec object
	if raw, ok := root.get(string(section)); ok {
		if err := json.Unmarshal(raw, &sec); err != nil {
			return fmt.Errorf("parsing %s.%s: %w", file, section, err)
		}
	}

	for _, e := range entries {
		v, err := marshal(e.Value)
		if err != nil {
			return err
		}
		sec.set(e.Name, v)
	}

	raw, err := marshal(sec)
	if err != nil {
		return err
	}
	root.set(string(section), raw)

	compact, err := marshal(root)
	if err != nil {
		return err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, compact, "", "  "); err != nil {
		return err
	}
	out.WriteByte('\n')

	return afero.WriteFile(fsys, file, out.Bytes(), 0o644)
}

// marshal encodes v without escaping HTML characters, so scripts such as
// "vitest && playwright test" survive a round trip.
func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
