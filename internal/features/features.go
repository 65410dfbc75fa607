// Package features holds the optional capabilities a generated project can
// be given. Each feature writes its side files and asks the project's
// dialect where its bootstrap code goes; it never edits main.go directly.
package features

import (
	"fmt"

	"github.com/ehsanpo/create-wails-app/internal/dialect"
	"github.com/ehsanpo/create-wails-app/internal/pipeline"
)

// All returns every feature in pipeline order.
func All() []pipeline.Feature {
	return []pipeline.Feature{
		typeScript{},
		tailwind{},
		router{},
		eslintPrettier{},
		githubActions{},
		systemTray{},
		singleInstance{},
		autoUpdate{},
		nativeDialogs{},
		appConfig{},
		deepLinking{},
		startup{},
		clipboard{},
		fileWatcher{},
		sqlite{},
		encryptedStorage{},
		supabase{},
		testingUnit{},
		testingE2E{},
		testingBackend{},
	}
}

const frontendDir = "frontend"

// writeAssets writes each asset to the same relative path.
func writeAssets(p *pipeline.Plan, assets ...string) error {
	for _, a := range assets {
		if err := p.Template(a, a); err != nil {
			return err
		}
	}
	return nil
}

// goService writes the Go side of a service feature. On the flat-record
// dialect the service is exposed through methods on *App in a second file,
// since that dialect has no service list to register with.
func goService(env *pipeline.Env, p *pipeline.Plan, file string) error {
	if err := p.Template(file+".go", file+".go"); err != nil {
		return err
	}
	if env.Strategy.Version() == 2 {
		return p.Template(file+"_app.go", file+"_app.go")
	}
	return nil
}

// register adds expr to the application's service list. expr doubles as
// the idempotency marker.
func register(p *pipeline.Plan, expr string) error {
	return p.Patch(dialect.RegisterService, expr, expr)
}

// named formats a constructor call taking the project name.
func named(env *pipeline.Env, constructor string) string {
	return fmt.Sprintf("%s(%q)", constructor, env.Config.ProjectName)
}

// frontendLib writes a helper module to frontend/src/lib.
func frontendLib(p *pipeline.Plan, name string) error {
	return p.Template(frontendDir+"/src/lib/"+name, "lib/"+name)
}
