// Package project inspects generated Wails projects.
//
// # Overview
//
// It reads the project's go.mod (via golang.org/x/mod/modfile) to find the
// module path and the Wails major version in use, adds Go requirements that
// features need, and reads the Wails project metadata file:
//   - wails.json for Wails v2
//   - build/config.yml for Wails v3
//
// # Usage
//
//	info, err := project.DetectModule(fsys, ".")
//	if err != nil {
//	    return err
//	}
//	version, err := info.WailsVersion()
//
// All functions take an afero.Fs so they work against dry-run overlays.
package project
