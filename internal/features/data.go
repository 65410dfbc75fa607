package features

import (
	"strings"

	"github.com/ehsanpo/create-wails-app/internal/config"
	"github.com/ehsanpo/create-wails-app/internal/pipeline"
	"github.com/ehsanpo/create-wails-app/internal/pkgjson"
	"github.com/joho/godotenv"
)

type sqlite struct{}

func (sqlite) Name() config.Feature { return config.SQLite }

func (sqlite) Plan(env *pipeline.Env, p *pipeline.Plan) error {
	if err := goService(env, p, "database"); err != nil {
		return err
	}
	if err := writeAssets(p, "db/schema.sql", "DATABASE.md"); err != nil {
		return err
	}
	p.Require("modernc.org/sqlite", "v1.34.5")
	return register(p, named(env, "NewDatabaseService"))
}

type encryptedStorage struct{}

func (encryptedStorage) Name() config.Feature { return config.EncryptedStorage }

func (encryptedStorage) Plan(env *pipeline.Env, p *pipeline.Plan) error {
	if err := goService(env, p, "secure_storage"); err != nil {
		return err
	}
	if err := writeAssets(p, "SECURE_STORAGE.md"); err != nil {
		return err
	}
	return register(p, named(env, "NewSecureStorageService"))
}

// supabaseEnv holds the placeholders written to .env.example. Vite only
// exposes VITE_ prefixed variables to the frontend.
var supabaseEnv = map[string]string{
	"VITE_SUPABASE_URL":      "https://your-project.supabase.co",
	"VITE_SUPABASE_ANON_KEY": "your-anon-key",
}

// tsAnnotations fill the type placeholders of the client helpers.
var tsAnnotations = map[string]string{
	"T_STRING": ": string",
	"T_RECORD": ": Record<string, unknown>",
	"T_ID":     ": number | string",
	"T_FILE":   ": File | Blob",
}

type supabase struct{}

func (supabase) Name() config.Feature { return config.Supabase }

func (supabase) Plan(env *pipeline.Env, p *pipeline.Plan) error {
	dotenv, err := godotenv.Marshal(supabaseEnv)
	if err != nil {
		return err
	}
	p.Write(frontendDir+"/.env.example", "# Copy to .env and fill in your project's values.\n"+dotenv+"\n")

	annotations := map[string]string{}
	for k := range tsAnnotations {
		annotations[k] = ""
	}
	if env.TypeScript() {
		annotations = tsAnnotations
	}

	sections := []string{"supabase/client.js"}
	opts := env.Config.Supabase
	all := !opts.Auth && !opts.Database && !opts.Storage
	if all || opts.Auth {
		sections = append(sections, "supabase/auth.js")
	}
	if all || opts.Database {
		sections = append(sections, "supabase/database.js")
	}
	if all || opts.Storage {
		sections = append(sections, "supabase/storage.js")
	}

	var b strings.Builder
	for _, s := range sections {
		text, err := env.RenderWith(s, annotations)
		if err != nil {
			return err
		}
		b.WriteString(text)
	}
	p.Write(frontendDir+"/src/lib/supabase."+env.ScriptExt(), b.String())

	p.Dependencies(pkgjson.Dependencies, pkgjson.Entry{Name: "@supabase/supabase-js", Value: "^2.38.4"})
	return nil
}
