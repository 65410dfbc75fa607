package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/ehsanpo/create-wails-app/internal/generator"
	"github.com/ehsanpo/create-wails-app/internal/logging"
	"github.com/ehsanpo/create-wails-app/internal/patch"
	"github.com/ehsanpo/create-wails-app/internal/pkgjson"
	"github.com/ehsanpo/create-wails-app/internal/project"
	"github.com/spf13/afero"
)

// patchOp applies one marker-guarded insertion to the bootstrap file.
type patchOp struct {
	applicator *patch.Applicator
	fs         afero.Fs
	patch      patch.Patch
	outcome    patch.Outcome
}

func (op *patchOp) Validate(ctx context.Context, force bool) error {
	path := op.patch.Request.Path
	if _, err := op.fs.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &patch.Error{Path: path, Class: op.patch.Request.Class, Err: patch.ErrMissingTarget}
		}
		return err
	}
	return nil
}

func (op *patchOp) Execute(ctx context.Context) error {
	change, err := op.applicator.Apply(op.patch)
	if err != nil {
		return err
	}
	op.outcome = change.Outcome
	return nil
}

func (op *patchOp) Preview(w io.Writer) error {
	change, err := op.applicator.Plan(op.patch)
	if err != nil {
		return err
	}
	if change.Outcome == patch.Applied {
		generator.RenderChange(w, change.Path, change.Before, change.After)
	}
	return nil
}

func (op *patchOp) Description() string {
	if op.outcome == patch.AlreadyPresent {
		return fmt.Sprintf("Keep %s (%s already present)", op.patch.Request.Path, op.patch.Request.Class)
	}
	return fmt.Sprintf("Patch %s (%s)", op.patch.Request.Path, op.patch.Request.Class)
}

// depsOp merges entries into package.json. A project without one is left
// alone.
type depsOp struct {
	fs      afero.Fs
	section pkgjson.Section
	entries []pkgjson.Entry
	file    string
	skipped bool
}

func (op *depsOp) Validate(ctx context.Context, force bool) error {
	return nil
}

func (op *depsOp) Execute(ctx context.Context) error {
	file, err := pkgjson.Locate(op.fs)
	if errors.Is(err, pkgjson.ErrNoPackage) {
		op.skipped = true
		logging.Get("pipeline").Warn().Str("section", string(op.section)).Msg("no package.json, skipping")
		return nil
	}
	if err != nil {
		return err
	}
	op.file = file
	return pkgjson.Merge(op.fs, file, op.section, op.entries...)
}

func (op *depsOp) Description() string {
	names := make([]string, len(op.entries))
	for i, e := range op.entries {
		names[i] = e.Name
	}
	if op.skipped {
		return fmt.Sprintf("Skip %s (no package.json): %s", op.section, strings.Join(names, ", "))
	}
	return fmt.Sprintf("Update %s %s: %s", op.file, op.section, strings.Join(names, ", "))
}

// requireOp adds a module requirement to the project's go.mod.
type requireOp struct {
	fs      afero.Fs
	path    string
	version string
	added   bool
}

func (op *requireOp) Validate(ctx context.Context, force bool) error {
	if _, err := op.fs.Stat("go.mod"); err != nil {
		return fmt.Errorf("cannot add %s: %w", op.path, err)
	}
	return nil
}

func (op *requireOp) Execute(ctx context.Context) error {
	added, err := project.AddRequire(op.fs, ".", op.path, op.version)
	op.added = added
	return err
}

func (op *requireOp) Description() string {
	if !op.added {
		return fmt.Sprintf("Keep go.mod (%s already required)", op.path)
	}
	return fmt.Sprintf("Require %s %s", op.path, op.version)
}

// editOp rewrites an existing file through fn. It suits formats that are
// edited structurally rather than by anchor.
type editOp struct {
	fs   afero.Fs
	path string
	desc string
	fn   func([]byte) ([]byte, error)
}

func (op *editOp) Validate(ctx context.Context, force bool) error {
	if _, err := op.fs.Stat(op.path); err != nil {
		return fmt.Errorf("cannot edit %s: %w", op.path, err)
	}
	return nil
}

func (op *editOp) result() (before, after []byte, err error) {
	before, err = afero.ReadFile(op.fs, op.path)
	if err != nil {
		return nil, nil, err
	}
	after, err = op.fn(before)
	if err != nil {
		return nil, nil, fmt.Errorf("editing %s: %w", op.path, err)
	}
	return before, after, nil
}

func (op *editOp) Execute(ctx context.Context) error {
	before, after, err := op.result()
	if err != nil {
		return err
	}
	if string(before) == string(after) {
		return nil
	}
	info, err := op.fs.Stat(op.path)
	if err != nil {
		return err
	}
	return afero.WriteFile(op.fs, op.path, after, info.Mode().Perm())
}

func (op *editOp) Preview(w io.Writer) error {
	before, after, err := op.result()
	if err != nil {
		return err
	}
	generator.RenderChange(w, op.path, string(before), string(after))
	return nil
}

func (op *editOp) Description() string {
	return op.desc
}
