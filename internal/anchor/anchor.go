// Package anchor finds structural insertion points in generated Go source
// without parsing it.
//
// The locator is purely lexical: it finds the first occurrence of a start
// pattern and counts one kind of delimiter until the construct closes.
// Delimiters inside string literals and comments are counted like any
// others, which is acceptable for freshly generated bootstrap files.
package anchor

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrNotFound is returned when the start pattern does not occur.
	ErrNotFound = errors.New("anchor not found")

	// ErrUnbalanced is returned when the text ends before the construct closes.
	ErrUnbalanced = errors.New("unbalanced delimiters")
)

// Delims is an opening/closing delimiter pair.
type Delims struct {
	Open  byte
	Close byte
}

var (
	Parens = Delims{Open: '(', Close: ')'}
	Braces = Delims{Open: '{', Close: '}'}
)

func (d Delims) String() string {
	return string([]byte{d.Open, d.Close})
}

// Pattern marks the opening of a construct.
type Pattern interface {
	// Find reports the byte range of the first match in src.
	Find(src string) (start, end int, ok bool)
	String() string
}

// Literal matches an exact substring.
type Literal string

func (l Literal) Find(src string) (int, int, bool) {
	i := strings.Index(src, string(l))
	if i < 0 {
		return 0, 0, false
	}
	return i, i + len(l), true
}

func (l Literal) String() string { return string(l) }

// Regexp matches a regular expression.
type Regexp struct {
	re *regexp.Regexp
}

// MustRegexp compiles expr and panics on error. Use it for package-level patterns.
// When expr has a capture group, Find reports the range of the first group,
// so surrounding context can constrain a match without becoming part of it.
func MustRegexp(expr string) Regexp {
	return Regexp{re: regexp.MustCompile(expr)}
}

func (r Regexp) Find(src string) (int, int, bool) {
	loc := r.re.FindStringSubmatchIndex(src)
	if loc == nil {
		return 0, 0, false
	}
	if len(loc) >= 4 && loc[2] >= 0 {
		return loc[2], loc[3], true
	}
	return loc[0], loc[1], true
}

func (r Regexp) String() string { return r.re.String() }

// Span is a located construct.
//
// Start is where the start pattern matched, Open is the index of the opening
// delimiter and Close the index of its structurally matching closing
// delimiter. End is the offset immediately after Close.
type Span struct {
	Start int
	Open  int
	Close int
	End   int
}

// Inner returns the text strictly between the delimiters.
func (s Span) Inner(src string) string {
	return src[s.Open+1 : s.Close]
}

// Shift returns the span moved by delta bytes.
func (s Span) Shift(delta int) Span {
	return Span{Start: s.Start + delta, Open: s.Open + delta, Close: s.Close + delta, End: s.End + delta}
}

// Class is the kind of insertion a request asks for.
type Class int

const (
	AfterConstructorCall Class = iota
	BeforeRunCall
	AppendToLiteralList
)

func (c Class) String() string {
	switch c {
	case AfterConstructorCall:
		return "after-constructor-call"
	case BeforeRunCall:
		return "before-run-call"
	case AppendToLiteralList:
		return "append-to-literal-list"
	default:
		return fmt.Sprintf("class(%d)", int(c))
	}
}

// Request is a declarative insertion request. It does not know the file's layout.
type Request struct {
	Path  string
	Class Class
	Text  string
}

// Result is a resolved request.
//
// Offset is the point insertion offset. For AppendToLiteralList, Span covers
// the whole list field and Contents holds its trimmed inner text.
type Result struct {
	Offset   int
	Span     Span
	Contents string
}

// Empty reports whether a resolved list literal has no entries.
func (r Result) Empty() bool {
	return r.Contents == ""
}

// Resolver turns a request into a concrete position within src.
type Resolver interface {
	Resolve(src string, req Request) (Result, error)
}
