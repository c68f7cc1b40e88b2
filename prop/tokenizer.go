package prop

import (
	"errors"
	"fmt"
	"strings"

	"propgraph/utils"
)

var ErrBadPath = errors.New("malformed property path")

// Segment is one parsed step of a property path such as "order[0].item.name".
// The head of the path becomes the segment; everything after the first dot
// stays unparsed in Rest and is tokenized again on demand.
type Segment struct {
	// Name is the property name of the head, brackets stripped.
	Name string
	// Index is the token between brackets. Meaningful only when HasIndex.
	// A decimal token addresses a sequence ordinal, anything else a map key.
	Index string
	// HasIndex reports whether the head used bracket syntax.
	HasIndex bool
	// IndexedName is the head exactly as written, brackets included.
	IndexedName string
	// Rest is the remainder of the path after the first dot, empty if none.
	Rest string
}

// Parse tokenizes the head of a property path.
// Supports: "Field", "Nested.Field", "Items[0]", "Items[0].ProductID",
// "Lookup[key]". Empty segments and nested or unbalanced brackets are
// rejected.
func Parse(path string) (Segment, error) {
	if path == "" {
		return Segment{}, fmt.Errorf("%w: empty path", ErrBadPath)
	}

	head := path

	var rest string

	if i := strings.IndexByte(path, '.'); i >= 0 {
		head, rest = path[:i], path[i+1:]

		if rest == "" || strings.HasPrefix(rest, ".") {
			return Segment{}, fmt.Errorf("%w %q: empty segment", ErrBadPath, path)
		}
	}

	if head == "" {
		return Segment{}, fmt.Errorf("%w %q: empty segment", ErrBadPath, path)
	}

	seg := Segment{Name: head, IndexedName: head, Rest: rest}

	if !strings.ContainsAny(head, "[]") {
		return seg, nil
	}

	if !strings.HasSuffix(head, "]") || strings.IndexByte(head, '[') < 0 {
		return Segment{}, fmt.Errorf("%w %q: unbalanced brackets", ErrBadPath, path)
	}

	name, index := utils.Unpack2(strings.SplitN(head[:len(head)-1], "[", 2))
	if name == "" {
		return Segment{}, fmt.Errorf("%w %q: index without property name", ErrBadPath, path)
	}

	if strings.ContainsAny(name, "]") || strings.ContainsAny(index, "[]") {
		return Segment{}, fmt.Errorf("%w %q: nested brackets", ErrBadPath, path)
	}

	seg.Name = name
	seg.Index = index
	seg.HasIndex = true

	return seg, nil
}

// HasRest reports whether further segments follow this one.
func (s Segment) HasRest() bool {
	return s.Rest != ""
}

// Next tokenizes the remainder of the path.
func (s Segment) Next() (Segment, error) {
	return Parse(s.Rest)
}
