package dialect

import (
	"fmt"

	"github.com/ehsanpo/create-wails-app/internal/anchor"
)

var runPattern = anchor.MustRegexp(`(?m)^[ \t]*(err\s*:?=\s*wails\.Run\()`)

// FlatRecord is the Wails v2 dialect: a single wails.Run call takes one
// options record. It has no constructor and no service list.
type FlatRecord struct{}

func (FlatRecord) Name() string          { return "flat-record" }
func (FlatRecord) Version() int          { return 2 }
func (FlatRecord) BootstrapFile() string { return bootstrapFile }

func (f FlatRecord) Request(intent Intent, snippet string) (anchor.Request, error) {
	if intent != BeforeRun {
		return anchor.Request{}, fmt.Errorf("%w: %s in %s", ErrUnsupported, intent, f.Name())
	}
	return anchor.Request{Path: f.BootstrapFile(), Class: anchor.BeforeRunCall, Text: snippet}, nil
}

func (f FlatRecord) Resolve(src string, req anchor.Request) (anchor.Result, error) {
	if req.Class != anchor.BeforeRunCall {
		return anchor.Result{}, fmt.Errorf("%w: %s in %s", ErrUnsupported, req.Class, f.Name())
	}
	span, err := anchor.Locate(src, runPattern, anchor.Parens)
	if err != nil {
		return anchor.Result{}, fmt.Errorf("wails.Run call: %w", err)
	}
	return anchor.Result{Offset: span.Start, Span: span}, nil
}
