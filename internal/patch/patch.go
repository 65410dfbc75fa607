// Package patch applies anchored insertions to generated files, at most once.
package patch

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/ehsanpo/create-wails-app/internal/anchor"
	"github.com/ehsanpo/create-wails-app/internal/logging"
	"github.com/spf13/afero"
)

// ErrMissingTarget is returned when the file to patch does not exist.
var ErrMissingTarget = errors.New("target file does not exist")

const (
	// EntryIndent prefixes each entry of a rebuilt list literal.
	EntryIndent = "\t\t\t"
	// CloseIndent prefixes the closing brace of a rebuilt list literal.
	CloseIndent = "\t\t"
	// BodyIndent prefixes each line of a point insertion.
	BodyIndent = "\t"
)

// Outcome describes what an application did.
type Outcome int

const (
	Applied Outcome = iota
	AlreadyPresent
)

func (o Outcome) String() string {
	if o == AlreadyPresent {
		return "already-present"
	}
	return "applied"
}

// Patch is one marker-guarded insertion.
type Patch struct {
	// Marker is a substring that only exists once the patch is applied.
	Marker  string
	Request anchor.Request
}

// Change is the result of planning a patch against the current file.
type Change struct {
	Path    string
	Outcome Outcome
	Offset  int
	Before  string
	After   string
}

// Error attributes a patch failure to a file and anchor class.
type Error struct {
	Path  string
	Class anchor.Class
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("patching %s (%s): %v", e.Path, e.Class, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Applicator reads, patches and writes files on an afero filesystem.
type Applicator struct {
	fs       afero.Fs
	resolver anchor.Resolver
}

// NewApplicator returns an Applicator resolving anchors with r.
func NewApplicator(fsys afero.Fs, r anchor.Resolver) *Applicator {
	return &Applicator{fs: fsys, resolver: r}
}

// Plan reads the file fresh and computes the change without writing it.
func (a *Applicator) Plan(p Patch) (*Change, error) {
	req := p.Request
	data, err := afero.ReadFile(a.fs, req.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &Error{Path: req.Path, Class: req.Class, Err: ErrMissingTarget}
		}
		return nil, &Error{Path: req.Path, Class: req.Class, Err: err}
	}
	src := string(data)

	marker := p.Marker
	if marker == "" {
		marker = req.Text
	}
	if strings.Contains(src, marker) {
		return &Change{Path: req.Path, Outcome: AlreadyPresent, Before: src, After: src}, nil
	}

	res, err := a.resolver.Resolve(src, req)
	if err != nil {
		return nil, &Error{Path: req.Path, Class: req.Class, Err: err}
	}

	var out string
	offset := res.Offset
	switch req.Class {
	case anchor.AppendToLiteralList:
		out = src[:res.Span.Start] + rebuildList(src, res, req.Text) + src[res.Span.End:]
		offset = res.Span.Start
	case anchor.AfterConstructorCall:
		out = src[:offset] + "\n\n" + indent(req.Text) + src[offset:]
	case anchor.BeforeRunCall:
		out = src[:offset] + strings.TrimPrefix(indent(req.Text), BodyIndent) + "\n\n" + BodyIndent + src[offset:]
	default:
		return nil, &Error{Path: req.Path, Class: req.Class, Err: errors.New("unknown anchor class")}
	}

	return &Change{Path: req.Path, Outcome: Applied, Offset: offset, Before: src, After: out}, nil
}

// Apply plans the patch and writes the file when the marker was absent.
func (a *Applicator) Apply(p Patch) (*Change, error) {
	log := logging.Get("patch")

	change, err := a.Plan(p)
	if err != nil {
		return nil, err
	}
	if change.Outcome == AlreadyPresent {
		log.Debug().Str("path", change.Path).Str("marker", p.Marker).Msg("marker present, skipping")
		return change, nil
	}

	info, err := a.fs.Stat(change.Path)
	if err != nil {
		return nil, &Error{Path: change.Path, Class: p.Request.Class, Err: err}
	}
	if err := afero.WriteFile(a.fs, change.Path, []byte(change.After), info.Mode().Perm()); err != nil {
		return nil, &Error{Path: change.Path, Class: p.Request.Class, Err: err}
	}

	log.Debug().
		Str("path", change.Path).
		Stringer("class", p.Request.Class).
		Int("offset", change.Offset).
		Msg("patch applied")
	return change, nil
}

// rebuildList returns the list field with entry appended.
func rebuildList(src string, res anchor.Result, entry string) string {
	header := src[res.Span.Start : res.Span.Open+1]

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")
	if !res.Empty() {
		b.WriteString(EntryIndent)
		b.WriteString(strings.TrimSuffix(res.Contents, ","))
		b.WriteString(",\n")
	}
	b.WriteString(EntryIndent)
	b.WriteString(entry)
	b.WriteString(",\n")
	b.WriteString(CloseIndent)
	b.WriteString(src[res.Span.Close:res.Span.End])
	return b.String()
}

// indent prefixes every non-blank line of text with BodyIndent.
func indent(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			lines[i] = BodyIndent + line
		}
	}
	return strings.Join(lines, "\n")
}
