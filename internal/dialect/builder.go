package dialect

import (
	"fmt"
	"strings"

	"github.com/ehsanpo/create-wails-app/internal/anchor"
)

var (
	constructorPattern = anchor.MustRegexp(`app\s*:=\s*application\.New\(`)
	startPattern       = anchor.MustRegexp(`(?m)^[ \t]*(err\s*:?=\s*app\.Run\()`)
	servicesPattern    = anchor.MustRegexp(`Services:\s*\[\]application\.Service\{`)
)

// Builder is the Wails v3 dialect: application.New(...) builds the app and
// a separate app.Run() starts it.
type Builder struct{}

func (Builder) Name() string          { return "builder" }
func (Builder) Version() int          { return 3 }
func (Builder) BootstrapFile() string { return bootstrapFile }

func (b Builder) Request(intent Intent, snippet string) (anchor.Request, error) {
	req := anchor.Request{Path: b.BootstrapFile(), Text: snippet}
	switch intent {
	case AfterConstruct:
		req.Class = anchor.AfterConstructorCall
	case BeforeRun:
		req.Class = anchor.BeforeRunCall
	case RegisterService:
		req.Class = anchor.AppendToLiteralList
		req.Text = "application.NewService(" + snippet + ")"
	default:
		return anchor.Request{}, fmt.Errorf("%w: %s", ErrUnsupported, intent)
	}
	return req, nil
}

func (Builder) Resolve(src string, req anchor.Request) (anchor.Result, error) {
	switch req.Class {
	case anchor.AfterConstructorCall:
		span, err := anchor.Locate(src, constructorPattern, anchor.Parens)
		if err != nil {
			return anchor.Result{}, fmt.Errorf("application constructor: %w", err)
		}
		return anchor.Result{Offset: span.End, Span: span}, nil

	case anchor.BeforeRunCall:
		span, err := anchor.Locate(src, startPattern, anchor.Parens)
		if err != nil {
			return anchor.Result{}, fmt.Errorf("app.Run call: %w", err)
		}
		return anchor.Result{Offset: span.Start, Span: span}, nil

	case anchor.AppendToLiteralList:
		outer, err := anchor.Locate(src, constructorPattern, anchor.Parens)
		if err != nil {
			return anchor.Result{}, fmt.Errorf("application constructor: %w", err)
		}
		field, err := anchor.LocateWithin(src, outer, servicesPattern, anchor.Braces)
		if err != nil {
			return anchor.Result{}, fmt.Errorf("services list: %w", err)
		}
		return anchor.Result{
			Offset:   field.Close,
			Span:     field,
			Contents: strings.TrimSpace(field.Inner(src)),
		}, nil
	}
	return anchor.Result{}, fmt.Errorf("%w: %s", ErrUnsupported, req.Class)
}
