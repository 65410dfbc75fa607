// Package input provides interactive terminal input utilities.
//
// Line prompts read from an io.Reader so they can be driven from tests:
//
//	p := input.NewPrompter(os.Stdin, os.Stdout)
//	name := p.Prompt("Project name", "my-wails-app")
//	if p.Confirm("Proceed with these settings?", true) {
//	    // ...
//	}
//
// Menus (SelectOne, SelectMany) are BubbleTea programs that take over the
// terminal until Enter or q. Console bundles both behind one value.
//
// Prompts are rendered in bold cyan and hints (defaults, [Y/n]) in gray.
package input
