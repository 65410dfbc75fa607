package features

import (
	"fmt"

	"github.com/ehsanpo/create-wails-app/internal/config"
	"github.com/ehsanpo/create-wails-app/internal/dialect"
	"github.com/ehsanpo/create-wails-app/internal/pipeline"
	"github.com/spf13/afero"
)

type systemTray struct{}

func (systemTray) Name() config.Feature { return config.SystemTray }

func (systemTray) Plan(env *pipeline.Env, p *pipeline.Plan) error {
	if err := writeAssets(p, "systray.go"); err != nil {
		return err
	}
	return p.Patch(dialect.AfterConstruct, "setupSystemTray(app, systray",
		"systray := app.SystemTray.New()\nsetupSystemTray(app, systray)")
}

type singleInstance struct{}

func (singleInstance) Name() config.Feature { return config.SingleInstance }

func (singleInstance) Plan(env *pipeline.Env, p *pipeline.Plan) error {
	if err := writeAssets(p,
		"singleinstance.go",
		"singleinstance_unix.go",
		"singleinstance_windows.go",
		"SINGLE_INSTANCE.md",
	); err != nil {
		return err
	}

	snippet := fmt.Sprintf(`releaseLock, lockErr := acquireInstanceLock(%q)
if lockErr != nil {
	println("Error:", lockErr.Error())
	return
}
defer releaseLock()`, env.Config.Params["PROJECT_NAME_LOWER"])
	return p.Patch(dialect.BeforeRun, "acquireInstanceLock(", snippet)
}

type autoUpdate struct{}

func (autoUpdate) Name() config.Feature { return config.AutoUpdate }

func (autoUpdate) Plan(env *pipeline.Env, p *pipeline.Plan) error {
	if err := goService(env, p, "update"); err != nil {
		return err
	}
	if err := frontendLib(p, "update.js"); err != nil {
		return err
	}
	if err := writeAssets(p, "AUTO_UPDATE.md"); err != nil {
		return err
	}
	return register(p, "&UpdateService{}")
}

type nativeDialogs struct{}

func (nativeDialogs) Name() config.Feature { return config.NativeDialogs }

func (nativeDialogs) Plan(env *pipeline.Env, p *pipeline.Plan) error {
	if err := writeAssets(p, "dialogs.go", "DIALOGS.md"); err != nil {
		return err
	}
	return register(p, "&DialogService{}")
}

type appConfig struct{}

func (appConfig) Name() config.Feature { return config.AppConfig }

func (appConfig) Plan(env *pipeline.Env, p *pipeline.Plan) error {
	if err := goService(env, p, "config"); err != nil {
		return err
	}
	if err := frontendLib(p, "config.js"); err != nil {
		return err
	}
	if err := writeAssets(p, "CONFIG.md"); err != nil {
		return err
	}
	return register(p, named(env, "NewConfigService"))
}

const infoPlist = "build/darwin/Info.plist"

type deepLinking struct{}

func (deepLinking) Name() config.Feature { return config.DeepLinking }

func (deepLinking) Plan(env *pipeline.Env, p *pipeline.Plan) error {
	if env.Strategy.Version() == 3 {
		if err := writeAssets(p, "deeplink.go"); err != nil {
			return err
		}
	}
	if err := writeAssets(p, "DEEP_LINKING.md"); err != nil {
		return err
	}

	scheme := env.Config.Params["PROJECT_NAME_LOWER"]
	if ok, _ := afero.Exists(env.Fs, infoPlist); ok {
		p.Edit(infoPlist, "Register "+scheme+":// in "+infoPlist, func(src []byte) ([]byte, error) {
			return addURLScheme(src, "com.wails."+scheme, scheme)
		})
	} else {
		p.Skip(infoPlist + " not found; register the URL scheme manually")
	}

	return register(p, "&DeepLinkService{}")
}

type startup struct{}

func (startup) Name() config.Feature { return config.Startup }

func (startup) Plan(env *pipeline.Env, p *pipeline.Plan) error {
	if err := goService(env, p, "startup"); err != nil {
		return err
	}
	if err := writeAssets(p, "STARTUP.md"); err != nil {
		return err
	}
	return register(p, named(env, "NewStartupService"))
}

type clipboard struct{}

func (clipboard) Name() config.Feature { return config.Clipboard }

func (clipboard) Plan(env *pipeline.Env, p *pipeline.Plan) error {
	if err := writeAssets(p, "clipboard.go"); err != nil {
		return err
	}
	if err := frontendLib(p, "clipboard.js"); err != nil {
		return err
	}
	return register(p, "&ClipboardService{}")
}

type fileWatcher struct{}

func (fileWatcher) Name() config.Feature { return config.FileWatcher }

func (fileWatcher) Plan(env *pipeline.Env, p *pipeline.Plan) error {
	if err := writeAssets(p, "watcher.go", "FILE_WATCHER.md"); err != nil {
		return err
	}
	if err := frontendLib(p, "watcher.js"); err != nil {
		return err
	}
	p.Require("github.com/fsnotify/fsnotify", "v1.9.0")
	return register(p, "NewFileWatcherService()")
}
