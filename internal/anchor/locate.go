package anchor

import (
	"fmt"
	"strings"
)

// Locate finds the first match of p in src and balances d from there.
//
// If the match ends on d.Open the scan starts inside the construct.
// Otherwise the first d.Open after the match opens it. The returned span
// ends just past the closing delimiter that brings the depth back to zero,
// so nested constructs of the same kind never terminate it early.
func Locate(src string, p Pattern, d Delims) (Span, error) {
	start, end, ok := p.Find(src)
	if !ok {
		return Span{}, fmt.Errorf("%w: %s", ErrNotFound, p)
	}

	open := end - 1
	if end == start || src[open] != d.Open {
		rel := strings.IndexByte(src[end:], d.Open)
		if rel < 0 {
			return Span{}, fmt.Errorf("%w: no %q after %s", ErrNotFound, d.Open, p)
		}
		open = end + rel
	}

	closeAt, err := balance(src, open, d)
	if err != nil {
		return Span{}, fmt.Errorf("%w: %s", err, p)
	}

	return Span{Start: start, Open: open, Close: closeAt, End: closeAt + 1}, nil
}

// LocateWithin is Locate restricted to the inner text of outer.
// Offsets in the returned span are relative to src.
func LocateWithin(src string, outer Span, p Pattern, d Delims) (Span, error) {
	inner := outer.Inner(src)
	span, err := Locate(inner, p, d)
	if err != nil {
		return Span{}, err
	}
	return span.Shift(outer.Open + 1), nil
}

// balance returns the index of the delimiter closing the one at open.
func balance(src string, open int, d Delims) (int, error) {
	depth := 0
	for i := open; i < len(src); i++ {
		switch src[i] {
		case d.Open:
			depth++
		case d.Close:
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}
	return 0, ErrUnbalanced
}
