package features

import (
	"bytes"
	"fmt"

	"github.com/ehsanpo/create-wails-app/internal/anchor"
	"github.com/ehsanpo/create-wails-app/internal/config"
	"github.com/ehsanpo/create-wails-app/internal/pipeline"
	"github.com/ehsanpo/create-wails-app/internal/pkgjson"
	"github.com/spf13/afero"
)

type typeScript struct{}

func (typeScript) Name() config.Feature { return config.TypeScript }

func (typeScript) Plan(env *pipeline.Env, p *pipeline.Plan) error {
	if env.Config.Template.HasTypeScript {
		p.Skip("template " + env.Config.Template.Name + " already ships TypeScript")
		return nil
	}

	jsx := "preserve"
	if env.Config.Frontend == config.React {
		jsx = "react-jsx"
	}
	if err := p.TemplateWith(frontendDir+"/tsconfig.json", "tsconfig.json", map[string]string{"JSX": jsx}); err != nil {
		return err
	}

	p.Dependencies(pkgjson.DevDependencies,
		pkgjson.Entry{Name: "typescript", Value: "^5.3.3"},
		pkgjson.Entry{Name: "@types/node", Value: "^20.10.6"},
	)
	return nil
}

const tailwindImport = `@import "tailwindcss";`

// stylesheets are checked in order for the tailwind import.
var stylesheets = []string{
	frontendDir + "/src/style.css",
	frontendDir + "/src/index.css",
	frontendDir + "/src/app.css",
}

var vitePlugins = anchor.MustRegexp(`plugins\s*:\s*\[`)

// stylesheet returns the first existing entry of stylesheets, or "".
func stylesheet(fsys afero.Fs) string {
	for _, s := range stylesheets {
		if ok, _ := afero.Exists(fsys, s); ok {
			return s
		}
	}
	return ""
}

type tailwind struct{}

func (tailwind) Name() config.Feature { return config.Tailwind }

func (t tailwind) Plan(env *pipeline.Env, p *pipeline.Plan) error {
	if env.Strategy.Version() == 2 {
		return t.planPostCSS(env, p)
	}

	if sheet := stylesheet(env.Fs); sheet == "" {
		p.Write(frontendDir+"/src/index.css", tailwindImport+"\n")
	} else {
		p.Prepend(sheet, tailwindImport, tailwindImport+"\n\n")
	}

	for _, vc := range []string{frontendDir + "/vite.config.js", frontendDir + "/vite.config.ts"} {
		src, err := afero.ReadFile(env.Fs, vc)
		if err != nil {
			continue
		}
		if _, _, ok := vitePlugins.Find(string(src)); ok {
			p.Edit(vc, "Add tailwind plugin to "+vc, addVitePlugin)
		} else {
			p.Skip("no plugins array in " + vc + ", add tailwindcss() from @tailwindcss/vite by hand")
		}
		break
	}

	p.Dependencies(pkgjson.Dependencies,
		pkgjson.Entry{Name: "tailwindcss", Value: "^4.0.0"},
		pkgjson.Entry{Name: "@tailwindcss/vite", Value: "^4.0.0"},
	)
	return nil
}

// planPostCSS sets up Tailwind 3 with its PostCSS pipeline, which the
// Wails v2 Vite templates expect.
func (tailwind) planPostCSS(env *pipeline.Env, p *pipeline.Plan) error {
	if err := p.Template(frontendDir+"/tailwind.config.js", "tailwind.config.js"); err != nil {
		return err
	}
	if err := p.Template(frontendDir+"/postcss.config.js", "postcss.config.js"); err != nil {
		return err
	}

	const directives = "@tailwind base;\n@tailwind components;\n@tailwind utilities;\n"
	if sheet := stylesheet(env.Fs); sheet == "" {
		p.Write(frontendDir+"/src/index.css", directives)
	} else {
		p.Prepend(sheet, "@tailwind base;", directives+"\n")
	}

	p.Dependencies(pkgjson.DevDependencies,
		pkgjson.Entry{Name: "tailwindcss", Value: "^3.4.0"},
		pkgjson.Entry{Name: "autoprefixer", Value: "^10.4.16"},
		pkgjson.Entry{Name: "postcss", Value: "^8.4.32"},
	)
	return nil
}

// addVitePlugin imports @tailwindcss/vite and puts it first in the plugins
// array of a Vite config.
func addVitePlugin(src []byte) ([]byte, error) {
	if bytes.Contains(src, []byte("@tailwindcss/vite")) {
		return src, nil
	}
	_, i, ok := vitePlugins.Find(string(src))
	if !ok {
		return nil, fmt.Errorf("no plugins array")
	}

	var out bytes.Buffer
	out.WriteString("import tailwindcss from '@tailwindcss/vite'\n")
	out.Write(src[:i])
	out.WriteString("tailwindcss(), ")
	out.Write(src[i:])
	return out.Bytes(), nil
}

var routerPackages = map[config.Frontend]string{
	config.React:  "react-router-dom",
	config.Vue:    "vue-router",
	config.Svelte: "svelte-routing",
	config.Solid:  "@solidjs/router",
}

type router struct{}

func (router) Name() config.Feature { return config.Router }

func (router) Plan(env *pipeline.Env, p *pipeline.Plan) error {
	pkg, ok := routerPackages[env.Config.Frontend]
	if !ok {
		p.Skip("no router package for the " + string(env.Config.Frontend) + " frontend")
		return nil
	}
	p.Dependencies(pkgjson.Dependencies, pkgjson.Entry{Name: pkg, Value: "latest"})
	return nil
}

type eslintPrettier struct{}

func (eslintPrettier) Name() config.Feature { return config.ESLintPrettier }

func (eslintPrettier) Plan(env *pipeline.Env, p *pipeline.Plan) error {
	if err := p.Template(frontendDir+"/.eslintrc.json", "eslintrc.json"); err != nil {
		return err
	}
	if err := p.Template(frontendDir+"/.prettierrc.json", "prettierrc.json"); err != nil {
		return err
	}

	p.Dependencies(pkgjson.DevDependencies,
		pkgjson.Entry{Name: "eslint", Value: "^8.56.0"},
		pkgjson.Entry{Name: "prettier", Value: "^3.1.1"},
	)
	p.Dependencies(pkgjson.Scripts,
		pkgjson.Entry{Name: "lint", Value: "eslint src --ext .js,.jsx,.ts,.tsx"},
		pkgjson.Entry{Name: "format", Value: "prettier --write src"},
	)
	return nil
}
