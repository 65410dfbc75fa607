// Package prompt collects the options of a new project interactively.
//
// Only unanswered fields are asked for, so flags and presets can answer part
// of the questionnaire up front.
package prompt

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/ehsanpo/create-wails-app/internal/config"
	"github.com/ehsanpo/create-wails-app/internal/input"
	"github.com/ehsanpo/create-wails-app/internal/logging"
)

// DefaultProjectName is offered when no name was given.
const DefaultProjectName = "my-wails-app"

// Asker is the terminal the questions are put to. *input.Console is the
// interactive implementation.
type Asker interface {
	Prompt(message, defaultValue string) string
	Confirm(message string, defaultYes bool) bool
	SelectOne(title string, options []input.Option, defaultValue string) (string, error)
	SelectMany(title string, options []input.Option, preselected []string) ([]string, error)
}

var labels = map[config.Feature]string{
	config.TypeScript:       "TypeScript",
	config.Tailwind:         "Tailwind CSS",
	config.Router:           "Router",
	config.ESLintPrettier:   "ESLint + Prettier",
	config.GitHubActions:    "GitHub Actions (CI)",
	config.SystemTray:       "System tray",
	config.SingleInstance:   "Single instance lock",
	config.AutoUpdate:       "Auto update (GitHub Releases)",
	config.NativeDialogs:    "Native dialogs",
	config.AppConfig:        "App config / settings store",
	config.DeepLinking:      "Deep linking (custom protocol)",
	config.Startup:          "Startup / auto-launch",
	config.Clipboard:        "Clipboard utilities",
	config.FileWatcher:      "File system watcher",
	config.SQLite:           "SQLite (local-first)",
	config.EncryptedStorage: "Encrypted local storage",
	config.Supabase:         "Supabase integration",
	config.TestingUnit:      "Frontend unit testing (Vitest)",
	config.TestingE2E:       "Frontend E2E testing (Playwright)",
	config.TestingBackend:   "Go backend tests",
}

var (
	versionOptions = []input.Option{
		{Value: "2", Label: "Wails 2 (stable)"},
		{Value: "3", Label: "Wails 3 (experimental)"},
	}
	supabaseOptions = []input.Option{
		{Value: "auth", Label: "Auth"},
		{Value: "database", Label: "Database"},
		{Value: "storage", Label: "Storage"},
	}
	categoryTitles = map[config.Category]string{
		config.CategoryFrontend: "Frontend Extras",
		config.CategoryApp:      "App Features",
		config.CategoryData:     "Data & Backend",
		config.CategoryTesting:  "Testing",
	}
)

// Defaults fills every unanswered field with the answer pressing Enter
// would give. It backs --yes.
func Defaults(a config.Answers) config.Answers {
	if a.ProjectName == "" {
		a.ProjectName = DefaultProjectName
	}
	if a.WailsVersion == 0 {
		a.WailsVersion = 2
	}
	if a.Frontend == "" {
		a.Frontend = string(config.React)
	}
	if a.Features == nil {
		a.Features = []string{string(config.TypeScript)}
	}
	if slices.Contains(a.Features, string(config.Supabase)) && len(a.SupabaseOptions) == 0 {
		a.SupabaseOptions = []string{"auth"}
	}
	return a
}

// Collector runs the questionnaire.
type Collector struct {
	ask Asker
	out io.Writer
}

// New returns a Collector asking through ask and printing to out.
func New(ask Asker, out io.Writer) *Collector {
	return &Collector{ask: ask, out: out}
}

// Collect asks for every field of a that is still unanswered and returns the
// completed answers.
func (c *Collector) Collect(a config.Answers) (config.Answers, error) {
	log := logging.Get("prompt")

	if a.ProjectName == "" {
		a.ProjectName = c.projectName()
		a.OutputDir = c.ask.Prompt("Output directory (leave empty for current directory)", a.OutputDir)
	}

	if a.WailsVersion == 0 {
		v, err := c.ask.SelectOne("Which Wails version do you want to use?", versionOptions, "2")
		if err != nil {
			return a, err
		}
		a.WailsVersion, _ = strconv.Atoi(v)
	}

	if a.Frontend == "" {
		f, err := c.ask.SelectOne("Choose your frontend framework:", frontendOptions(), string(config.React))
		if err != nil {
			return a, err
		}
		a.Frontend = f
	}

	if a.Features == nil {
		features, err := c.features(a.WailsVersion)
		if err != nil {
			return a, err
		}
		a.Features = features
	}

	if slices.Contains(a.Features, string(config.Supabase)) && len(a.SupabaseOptions) == 0 {
		opts, err := c.ask.SelectMany("Select Supabase features:", supabaseOptions, []string{"auth"})
		if err != nil {
			return a, err
		}
		a.SupabaseOptions = opts
	}

	log.Debug().Str("name", a.ProjectName).Int("wails", a.WailsVersion).Strs("features", a.Features).Msg("answers collected")
	return a, nil
}

// Confirm prints the summary and asks whether to go ahead.
func (c *Collector) Confirm(a config.Answers) bool {
	fmt.Fprint(c.out, Summary(a))
	return c.ask.Confirm("Proceed with these settings?", true)
}

func (c *Collector) projectName() string {
	for {
		name := strings.TrimSpace(c.ask.Prompt("What is your project name?", DefaultProjectName))
		if err := config.ValidateProjectName(name); err != nil {
			fmt.Fprintln(c.out, err)
			continue
		}
		return name
	}
}

func (c *Collector) features(wailsVersion int) ([]string, error) {
	var selected []string

	extras, err := c.ask.SelectMany("Select frontend extras:", featureOptions(config.CategoryFrontend, wailsVersion), []string{string(config.TypeScript)})
	if err != nil {
		return nil, err
	}
	selected = append(selected, extras...)

	for _, step := range []struct {
		category config.Category
		title    string
	}{
		{config.CategoryApp, "Select app features:"},
		{config.CategoryData, "Select data & backend options:"},
	} {
		picked, err := c.ask.SelectMany(step.title, featureOptions(step.category, wailsVersion), nil)
		if err != nil {
			return nil, err
		}
		selected = append(selected, picked...)
	}

	if c.ask.Confirm("Do you want testing set up?", false) {
		picked, err := c.ask.SelectMany("Select testing options:", featureOptions(config.CategoryTesting, wailsVersion), nil)
		if err != nil {
			return nil, err
		}
		selected = append(selected, picked...)
	}

	// An empty selection is still an answer.
	if selected == nil {
		selected = []string{}
	}
	return selected, nil
}

func frontendOptions() []input.Option {
	opts := make([]input.Option, 0, len(config.Frontends))
	for _, f := range config.Frontends {
		name := string(f)
		opts = append(opts, input.Option{Value: name, Label: strings.ToUpper(name[:1]) + name[1:]})
	}
	return opts
}

// featureOptions lists a category's features. The system tray needs the
// builder API and is only offered for Wails 3.
func featureOptions(c config.Category, wailsVersion int) []input.Option {
	var opts []input.Option
	for _, info := range config.InCategory(c) {
		if info.Name == config.SystemTray && wailsVersion != 3 {
			continue
		}
		opts = append(opts, input.Option{Value: string(info.Name), Label: labels[info.Name], Hint: info.Description})
	}
	return opts
}

// Summary renders the selections shown before confirmation.
func Summary(a config.Answers) string {
	var b strings.Builder
	b.WriteString("\n📋 Summary of your selections:\n\n")
	fmt.Fprintf(&b, "Project Name: %s\n", a.ProjectName)
	if a.OutputDir != "" {
		fmt.Fprintf(&b, "Output Directory: %s\n", a.OutputDir)
	}
	fmt.Fprintf(&b, "Wails Version: %d\n", a.WailsVersion)
	fmt.Fprintf(&b, "Frontend: %s\n", a.Frontend)

	for _, c := range config.Categories {
		var names []string
		for _, info := range config.InCategory(c) {
			if slices.Contains(a.Features, string(info.Name)) {
				names = append(names, string(info.Name))
			}
		}
		if len(names) == 0 {
			continue
		}
		fmt.Fprintf(&b, "%s: %s\n", categoryTitles[c], strings.Join(names, ", "))
		if c == config.CategoryData && len(a.SupabaseOptions) > 0 {
			fmt.Fprintf(&b, "  └─ Supabase: %s\n", strings.Join(a.SupabaseOptions, ", "))
		}
	}
	b.WriteString("\n")
	return b.String()
}
