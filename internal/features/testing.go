package features

import (
	"github.com/ehsanpo/create-wails-app/internal/config"
	"github.com/ehsanpo/create-wails-app/internal/pipeline"
	"github.com/ehsanpo/create-wails-app/internal/pkgjson"
)

type testingUnit struct{}

func (testingUnit) Name() config.Feature { return config.TestingUnit }

func (testingUnit) Plan(env *pipeline.Env, p *pipeline.Plan) error {
	if err := p.Template(frontendDir+"/vitest.config.js", "vitest.config.js"); err != nil {
		return err
	}
	for _, f := range []string{"test/setup.js", "test/example.test.js"} {
		if err := p.Template(frontendDir+"/src/"+f, f); err != nil {
			return err
		}
	}

	p.Dependencies(pkgjson.DevDependencies,
		pkgjson.Entry{Name: "vitest", Value: "^1.1.0"},
		pkgjson.Entry{Name: "@vitest/ui", Value: "^1.1.0"},
		pkgjson.Entry{Name: "jsdom", Value: "^23.0.1"},
	)
	p.Dependencies(pkgjson.Scripts,
		pkgjson.Entry{Name: "test", Value: "vitest run"},
		pkgjson.Entry{Name: "test:ui", Value: "vitest --ui"},
	)
	return nil
}

type testingE2E struct{}

func (testingE2E) Name() config.Feature { return config.TestingE2E }

func (testingE2E) Plan(env *pipeline.Env, p *pipeline.Plan) error {
	if err := p.Template(frontendDir+"/playwright.config.js", "playwright.config.js"); err != nil {
		return err
	}
	if err := p.Template(frontendDir+"/e2e/app.spec.js", "e2e/app.spec.js"); err != nil {
		return err
	}

	p.Dependencies(pkgjson.DevDependencies, pkgjson.Entry{Name: "@playwright/test", Value: "^1.40.1"})
	p.Dependencies(pkgjson.Scripts, pkgjson.Entry{Name: "test:e2e", Value: "playwright test"})
	return nil
}

type testingBackend struct{}

func (testingBackend) Name() config.Feature { return config.TestingBackend }

func (testingBackend) Plan(env *pipeline.Env, p *pipeline.Plan) error {
	return writeAssets(p, "app_test.go")
}
