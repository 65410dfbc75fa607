package generator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Operation represents a file system operation that can be validated and executed.
//
// Validate checks if the operation would succeed without executing it.
// force=true skips conflict checks (e.g., file already exists).
//
// Execute performs the actual operation. This should only be called after Validate succeeds.
//
// Description returns a human-readable description for output (e.g., "Create systray.go (734 bytes)").
type Operation interface {
	Validate(ctx context.Context, force bool) error
	Execute(ctx context.Context) error
	Description() string
}

// Previewer is implemented by operations that can show what they will change.
type Previewer interface {
	Preview(w io.Writer) error
}

// WriteFileOp creates a file with content, creating parent directories.
// Nil content is rejected, empty content is allowed.
type WriteFileOp struct {
	Fs      afero.Fs
	Path    string
	Content []byte
	Mode    fs.FileMode
}

func (op *WriteFileOp) Validate(ctx context.Context, force bool) error {
	if op.Content == nil {
		return fmt.Errorf("content is nil for file: %s", op.Path)
	}
	if !force {
		if _, err := op.Fs.Stat(op.Path); err == nil {
			return fmt.Errorf("file already exists: %s", op.Path)
		}
	}
	return nil
}

func (op *WriteFileOp) Execute(ctx context.Context) error {
	if dir := filepath.Dir(op.Path); dir != "." {
		if err := op.Fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("cannot create directory %s: %w", dir, err)
		}
	}
	mode := op.Mode
	if mode == 0 {
		mode = 0o644
	}
	return afero.WriteFile(op.Fs, op.Path, op.Content, mode)
}

func (op *WriteFileOp) Description() string {
	return fmt.Sprintf("Create %s (%d bytes)", op.Path, len(op.Content))
}

// PrependOp puts Content at the top of an existing file unless Marker is
// already in it.
type PrependOp struct {
	Fs      afero.Fs
	Path    string
	Marker  string
	Content string
}

func (op *PrependOp) Validate(ctx context.Context, force bool) error {
	if _, err := op.Fs.Stat(op.Path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("cannot prepend to missing file: %s", op.Path)
		}
		return err
	}
	return nil
}

func (op *PrependOp) result() (before, after string, err error) {
	data, err := afero.ReadFile(op.Fs, op.Path)
	if err != nil {
		return "", "", err
	}
	before = string(data)
	if strings.Contains(before, op.Marker) {
		return before, before, nil
	}
	return before, op.Content + before, nil
}

func (op *PrependOp) Execute(ctx context.Context) error {
	before, after, err := op.result()
	if err != nil {
		return err
	}
	if before == after {
		return nil
	}
	info, err := op.Fs.Stat(op.Path)
	if err != nil {
		return err
	}
	return afero.WriteFile(op.Fs, op.Path, []byte(after), info.Mode().Perm())
}

func (op *PrependOp) Preview(w io.Writer) error {
	before, after, err := op.result()
	if err != nil {
		return err
	}
	RenderChange(w, op.Path, before, after)
	return nil
}

func (op *PrependOp) Description() string {
	return fmt.Sprintf("Update %s", op.Path)
}
