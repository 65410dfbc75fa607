package pipeline

import (
	"errors"
	"io/fs"

	"github.com/ehsanpo/create-wails-app/internal/config"
	"github.com/ehsanpo/create-wails-app/internal/dialect"
	"github.com/ehsanpo/create-wails-app/internal/generator"
	"github.com/ehsanpo/create-wails-app/internal/patch"
	"github.com/ehsanpo/create-wails-app/internal/pkgjson"
)

// Plan collects the operations one feature wants to perform. Nothing touches
// the filesystem until the pipeline executes it.
type Plan struct {
	env     *Env
	feature config.Feature
	ops     []generator.Operation
	skips   []Skip
}

func newPlan(env *Env, f config.Feature) *Plan {
	return &Plan{env: env, feature: f}
}

// Add appends arbitrary operations.
func (p *Plan) Add(ops ...generator.Operation) {
	p.ops = append(p.ops, ops...)
}

// Write creates or replaces a file.
func (p *Plan) Write(path, content string) {
	p.WriteMode(path, content, 0)
}

// WriteMode is Write with an explicit permission.
func (p *Plan) WriteMode(path, content string, mode fs.FileMode) {
	p.Add(&generator.WriteFileOp{Fs: p.env.Fs, Path: path, Content: []byte(content), Mode: mode})
}

// Template renders asset and writes it to path.
func (p *Plan) Template(path, asset string) error {
	content, err := p.env.Render(asset)
	if err != nil {
		return err
	}
	p.Write(path, content)
	return nil
}

// TemplateWith is Template with extra placeholders.
func (p *Plan) TemplateWith(path, asset string, extra map[string]string) error {
	content, err := p.env.RenderWith(asset, extra)
	if err != nil {
		return err
	}
	p.Write(path, content)
	return nil
}

// Prepend puts content at the top of path unless marker is already there.
func (p *Plan) Prepend(path, marker, content string) {
	p.Add(&generator.PrependOp{Fs: p.env.Fs, Path: path, Marker: marker, Content: content})
}

// Patch asks the dialect strategy where snippet goes and queues the insertion.
// An intent the dialect cannot express is recorded as a skip, not an error.
func (p *Plan) Patch(intent dialect.Intent, marker, snippet string) error {
	req, err := p.env.Strategy.Request(intent, snippet)
	if errors.Is(err, dialect.ErrUnsupported) {
		p.Skip(intent.String() + " not supported by the " + p.env.Strategy.Name() + " dialect")
		return nil
	}
	if err != nil {
		return err
	}
	p.Add(&patchOp{
		applicator: p.env.applicator,
		fs:         p.env.Fs,
		patch:      patch.Patch{Marker: marker, Request: req},
	})
	return nil
}

// Dependencies merges entries into a package.json section.
func (p *Plan) Dependencies(section pkgjson.Section, entries ...pkgjson.Entry) {
	if len(entries) == 0 {
		return
	}
	p.Add(&depsOp{fs: p.env.Fs, section: section, entries: entries})
}

// Require adds a Go module requirement to go.mod.
func (p *Plan) Require(path, version string) {
	p.Add(&requireOp{fs: p.env.Fs, path: path, version: version})
}

// Edit rewrites an existing file through fn.
func (p *Plan) Edit(path, desc string, fn func([]byte) ([]byte, error)) {
	p.Add(&editOp{fs: p.env.Fs, path: path, desc: desc, fn: fn})
}

// Skip records a deliberate no-op with its reason.
func (p *Plan) Skip(reason string) {
	p.skips = append(p.skips, Skip{Feature: p.feature, Reason: reason})
}

// Ops returns the queued operations.
func (p *Plan) Ops() []generator.Operation {
	return p.ops
}

// Skips returns the recorded skips.
func (p *Plan) Skips() []Skip {
	return p.skips
}

// Patches counts the queued bootstrap patches.
func (p *Plan) Patches() int {
	n := 0
	for _, op := range p.ops {
		if _, ok := op.(*patchOp); ok {
			n++
		}
	}
	return n
}
