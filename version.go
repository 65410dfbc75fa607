// Package createwailsapp holds build information for the create-wails-app CLI.
package createwailsapp

// Version is the released version of the CLI.
const Version = "1.0.0"
