// Package dialect maps abstract feature intents onto anchor requests for one
// generation of the Wails bootstrap file.
package dialect

import (
	"errors"
	"fmt"

	"github.com/ehsanpo/create-wails-app/internal/anchor"
)

// ErrUnsupported is returned for intents a dialect has no anchor for.
// Callers treat it as a deliberate skip.
var ErrUnsupported = errors.New("not supported by this dialect")

// Intent is what a feature wants to happen in the bootstrap file.
type Intent int

const (
	// AfterConstruct runs code right after the application object is built.
	AfterConstruct Intent = iota
	// BeforeRun runs code right before the application starts.
	BeforeRun
	// RegisterService adds a service to the application's service list.
	RegisterService
)

func (i Intent) String() string {
	switch i {
	case AfterConstruct:
		return "after-construct"
	case BeforeRun:
		return "before-run"
	case RegisterService:
		return "register-service"
	default:
		return fmt.Sprintf("intent(%d)", int(i))
	}
}

// Strategy is the shared contract of both dialects.
type Strategy interface {
	anchor.Resolver

	// Name identifies the dialect in logs and reports.
	Name() string
	// Version is the Wails major version the dialect belongs to.
	Version() int
	// BootstrapFile is the path of the file holding the application bootstrap.
	BootstrapFile() string
	// Request translates an intent into an anchor request against BootstrapFile.
	Request(intent Intent, snippet string) (anchor.Request, error)
}

// ForVersion returns the strategy for a Wails major version.
func ForVersion(v int) (Strategy, error) {
	switch v {
	case 2:
		return FlatRecord{}, nil
	case 3:
		return Builder{}, nil
	default:
		return nil, fmt.Errorf("no dialect for wails v%d", v)
	}
}

const bootstrapFile = "main.go"
