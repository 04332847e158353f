package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"
)

// treeIndent is the indent of each nesting level in [Document.Format].
const treeIndent = "  "

// Format writes the document as an indented tree of "key: value" lines.
//
// Nested objects and arrays start on the following line, one level deeper;
// scalars are written inline. Array elements are prefixed with "- ". Keys are
// written in sorted order.
func (d *Document) Format(_ context.Context, w io.Writer) error {
	var sb strings.Builder

	formatObject(&sb, d.Root, 0)

	_, err := io.WriteString(w, sb.String())

	return err
}

// FormatJSON writes the document as JSON to the writer.
func (d *Document) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	var (
		jsonData []byte
		err      error
	)

	if indent > 0 {
		jsonData, err = json.MarshalIndent(d, "", strings.Repeat(" ", indent))
	} else {
		jsonData, err = json.Marshal(d)
	}

	if err != nil {
		return ErrFormat.Wrap(err)
	}

	_, err = fmt.Fprintln(w, string(jsonData))

	return err
}

// FormatYAML writes the document as YAML to the writer.
func (d *Document) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	yamlData, err := yaml.MarshalContext(ctx, d.ToMap(), opts...)
	if err != nil {
		return ErrFormat.Wrap(err)
	}

	_, err = fmt.Fprint(w, string(yamlData))

	return err
}

// FormatTOML writes the document as TOML to the writer. Sections become
// tables. TOML has no null, so null entries are omitted and null array
// elements are an error.
func (d *Document) FormatTOML(_ context.Context, w io.Writer, indent int) error {
	enc := toml.NewEncoder(w)
	enc.Indent = strings.Repeat(" ", max(indent, 0))

	err := enc.Encode(d.ToMap())
	if err != nil {
		return ErrFormat.Wrap(err)
	}

	return nil
}

func formatObject(sb *strings.Builder, obj Object, level int) {
	indent := strings.Repeat(treeIndent, level)

	for _, key := range obj.Keys() {
		sb.WriteString(indent)
		sb.WriteString(key)
		sb.WriteString(":")
		formatChild(sb, obj[key], level)
	}
}

func formatArray(sb *strings.Builder, arr []*Value, level int) {
	indent := strings.Repeat(treeIndent, level)

	for _, elem := range arr {
		sb.WriteString(indent)
		sb.WriteString("-")
		formatChild(sb, elem, level)
	}
}

// formatChild completes a line started with a key or "-" marker.
func formatChild(sb *strings.Builder, val *Value, level int) {
	switch {
	case val.IsScalar():
		sb.WriteString(" ")
		sb.WriteString(val.String())
		sb.WriteString("\n")

	case val.Type == TypeObject && len(val.Object) == 0:
		sb.WriteString(" {}\n")

	case val.Type == TypeArray && len(val.Array) == 0:
		sb.WriteString(" []\n")

	case val.Type == TypeObject:
		sb.WriteString("\n")
		formatObject(sb, val.Object, level+1)

	default:
		sb.WriteString("\n")
		formatArray(sb, val.Array, level+1)
	}
}
