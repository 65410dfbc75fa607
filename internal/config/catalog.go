package config

// Feature names an optional capability layered onto a generated project.
type Feature string

const (
	TypeScript       Feature = "typescript"
	Tailwind         Feature = "tailwind"
	Router           Feature = "router"
	ESLintPrettier   Feature = "eslint-prettier"
	GitHubActions    Feature = "github-actions"
	SystemTray       Feature = "system-tray"
	SingleInstance   Feature = "single-instance"
	AutoUpdate       Feature = "auto-update"
	NativeDialogs    Feature = "native-dialogs"
	AppConfig        Feature = "app-config"
	DeepLinking      Feature = "deep-linking"
	Startup          Feature = "startup"
	Clipboard        Feature = "clipboard"
	FileWatcher      Feature = "file-watcher"
	SQLite           Feature = "sqlite"
	EncryptedStorage Feature = "encrypted-storage"
	Supabase         Feature = "supabase"
	TestingUnit      Feature = "testing-unit"
	TestingE2E       Feature = "testing-e2e"
	TestingBackend   Feature = "testing-backend"
)

// Category groups features. Categories run in declaration order.
type Category string

const (
	CategoryFrontend Category = "frontend"
	CategoryApp      Category = "app"
	CategoryData     Category = "data"
	CategoryTesting  Category = "testing"
)

// Categories lists every category in pipeline order.
var Categories = []Category{CategoryFrontend, CategoryApp, CategoryData, CategoryTesting}

// FeatureInfo describes a feature for prompts and listings.
type FeatureInfo struct {
	Name        Feature
	Category    Category
	Description string
}

// Catalog lists every feature in pipeline order.
var Catalog = []FeatureInfo{
	{TypeScript, CategoryFrontend, "TypeScript configuration"},
	{Tailwind, CategoryFrontend, "Tailwind CSS"},
	{Router, CategoryFrontend, "Client-side router"},
	{ESLintPrettier, CategoryFrontend, "ESLint and Prettier"},
	{GitHubActions, CategoryFrontend, "GitHub Actions CI and release workflows"},
	{SystemTray, CategoryApp, "System tray icon and menu"},
	{SingleInstance, CategoryApp, "Single instance lock"},
	{AutoUpdate, CategoryApp, "Update check against GitHub releases"},
	{NativeDialogs, CategoryApp, "Native open, save and message dialogs"},
	{AppConfig, CategoryApp, "Persistent JSON settings"},
	{DeepLinking, CategoryApp, "Custom URL scheme handling"},
	{Startup, CategoryApp, "Launch at login"},
	{Clipboard, CategoryApp, "Clipboard read and write"},
	{FileWatcher, CategoryApp, "File system change notifications"},
	{SQLite, CategoryData, "Embedded SQLite database"},
	{EncryptedStorage, CategoryData, "AES-GCM encrypted key/value storage"},
	{Supabase, CategoryData, "Supabase client"},
	{TestingUnit, CategoryTesting, "Vitest unit tests"},
	{TestingE2E, CategoryTesting, "Playwright end-to-end tests"},
	{TestingBackend, CategoryTesting, "Go backend tests"},
}

// Lookup returns the catalog entry for name.
func Lookup(name string) (FeatureInfo, bool) {
	for _, f := range Catalog {
		if string(f.Name) == name {
			return f, true
		}
	}
	return FeatureInfo{}, false
}

// InCategory returns the catalog entries of one category.
func InCategory(c Category) []FeatureInfo {
	var out []FeatureInfo
	for _, f := range Catalog {
		if f.Category == c {
			out = append(out, f)
		}
	}
	return out
}

// FeatureSet is the set of enabled features.
type FeatureSet map[Feature]bool

// Has reports whether f is enabled.
func (s FeatureSet) Has(f Feature) bool {
	return s[f]
}

// List returns enabled features in catalog order.
func (s FeatureSet) List() []Feature {
	var out []Feature
	for _, f := range Catalog {
		if s[f.Name] {
			out = append(out, f.Name)
		}
	}
	return out
}
