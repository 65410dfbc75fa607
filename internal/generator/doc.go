// Package generator executes file operations against an afero filesystem.
//
// Operations are validated as a batch before any of them runs, so a missing
// target file is reported before the first write:
//
//	ops := []generator.Operation{
//	    &generator.WriteFileOp{Fs: fs, Path: "systray.go", Content: src},
//	    &generator.PrependOp{Fs: fs, Path: "frontend/src/style.css", Marker: marker, Content: header},
//	}
//	err := generator.Execute(ctx, ops, generator.ExecuteOptions{Force: true})
//
// Operations that implement Previewer print a one-hunk preview of their
// change when ExecuteOptions.Preview is set.
package generator
