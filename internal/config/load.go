package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	presetName = "create-wails-app"
	envPrefix  = "CWA"
)

// answerKeys are the preset/env/flag keys that decode into Answers.
var answerKeys = []string{"name", "dir", "wails", "frontend", "features", "supabase", "no-install"}

// PresetDir is the per-user directory searched for create-wails-app.yaml.
func PresetDir() string {
	return filepath.Join(xdg.ConfigHome, presetName)
}

// Load merges answers from, in increasing priority: a preset file, CWA_*
// environment variables and explicitly set flags.
//
// presetFile may be empty, in which case create-wails-app.yaml is looked up
// in the working directory and then in PresetDir. A missing implicit preset
// is not an error.
func Load(presetFile string, flags *pflag.FlagSet) (Answers, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if presetFile != "" {
		v.SetConfigFile(presetFile)
	} else {
		v.SetConfigName(presetName)
		v.AddConfigPath(".")
		v.AddConfigPath(PresetDir())
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	for _, k := range answerKeys {
		if err := v.BindEnv(k); err != nil {
			return Answers{}, err
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if presetFile != "" || !errors.As(err, &notFound) {
			return Answers{}, fmt.Errorf("reading preset: %w", err)
		}
	}

	if flags != nil {
		for _, k := range answerKeys {
			if f := flags.Lookup(k); f != nil && f.Changed {
				if err := v.BindPFlag(k, f); err != nil {
					return Answers{}, err
				}
			}
		}
	}

	var a Answers
	if err := v.Unmarshal(&a); err != nil {
		return Answers{}, fmt.Errorf("decoding answers: %w", err)
	}
	return a, nil
}

// SavePreset writes answers as a preset file that Load can read back.
func SavePreset(path string, a Answers) error {
	data, err := yaml.Marshal(a)
	if err != nil {
		return fmt.Errorf("encoding preset: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}
