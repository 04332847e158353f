package lang

import (
	"encoding/json"
	"iter"
	"strings"
)

// PathSeparator joins nested key names in a document path.
const PathSeparator = "."

// Document is the parsed form of a BULBA source: the root object of a strict
// tree of sections and values.
type Document struct {
	Root Object
}

// Lookup returns the value at a dot-separated key path, e.g.
// "database.pool.max_connections". The empty path yields the root object.
func (d *Document) Lookup(path string) (*Value, bool) {
	val := NewObject(d.Root)

	if path == "" {
		return val, true
	}

	for name := range strings.SplitSeq(path, PathSeparator) {
		if val.Type != TypeObject {
			return nil, false
		}

		next, ok := val.Object[name]
		if !ok {
			return nil, false
		}

		val = next
	}

	return val, true
}

// Entry is one key path and the value stored there.
type Entry struct {
	Path  string
	Depth int
	Value *Value
}

// All returns an iterator over every object entry in depth-first order, with
// the keys of each object visited in sorted order. Array elements are not
// visited individually.
func (d *Document) All() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		walk(d.Root, "", 0, yield)
	}
}

func walk(obj Object, prefix string, depth int, yield func(Entry) bool) bool {
	for _, key := range obj.Keys() {
		val := obj[key]

		path := key
		if prefix != "" {
			path = prefix + PathSeparator + key
		}

		if !yield(Entry{Path: path, Depth: depth, Value: val}) {
			return false
		}

		if val.Type == TypeObject {
			if !walk(val.Object, path, depth+1, yield) {
				return false
			}
		}
	}

	return true
}

// Paths returns the key path of every entry in the document, in the order
// visited by [Document.All].
func (d *Document) Paths() []string {
	var paths []string

	for e := range d.All() {
		paths = append(paths, e.Path)
	}

	return paths
}

// ToMap converts the document to a native Go map structure.
func (d *Document) ToMap() map[string]any {
	return d.Root.ToMap()
}

// MarshalJSON implements json.Marshaler for Document.
func (d *Document) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.ToMap())
}
