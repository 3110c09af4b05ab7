// Package frontmatter reads and writes the YAML metadata block carried by
// generated destination pages.
//
// Destination pages are derived artifacts, always written by this tool with
// LF newlines, so the package does not try to preserve foreign formatting the
// way a general-purpose frontmatter editor would.
package frontmatter

import (
	"bytes"
	"errors"

	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter indicates the content started with a YAML
// frontmatter delimiter but never closed it.
var ErrMissingClosingDelimiter = errors.New("frontmatter opening delimiter found but closing delimiter is missing")

var delimiter = []byte("---\n")

// Split separates a `---` delimited YAML frontmatter block from the page
// body. If the content does not start with a delimiter, had is false and body
// is the full input.
func Split(content []byte) (meta, body []byte, had bool, err error) {
	if !bytes.HasPrefix(content, delimiter) {
		return nil, content, false, nil
	}

	rest := content[len(delimiter):]
	if bytes.HasPrefix(rest, delimiter) {
		return []byte{}, rest[len(delimiter):], true, nil
	}

	idx := bytes.Index(rest, []byte("\n---\n"))
	if idx < 0 {
		return nil, nil, false, ErrMissingClosingDelimiter
	}
	return rest[:idx+1], rest[idx+len("\n---\n"):], true, nil
}

// Parse unmarshals a raw frontmatter block (without delimiters) into a map.
func Parse(meta []byte) (map[string]any, error) {
	if len(meta) == 0 {
		return map[string]any{}, nil
	}
	var fields map[string]any
	if err := yaml.Unmarshal(meta, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

// Field is a single frontmatter key/value pair. Serialization preserves the
// order fields are given in, which keeps output stable across runs.
type Field struct {
	Key   string
	Value string
}

// Serialize renders fields as a delimited frontmatter block. Values are
// emitted double-quoted so punctuation in titles and descriptions can never
// change the YAML shape.
func Serialize(fields []Field) ([]byte, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, f := range fields {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.Key},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.Value, Style: yaml.DoubleQuotedStyle},
		)
	}

	var buf bytes.Buffer
	buf.Write(delimiter)
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		_ = enc.Close()
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	buf.Write(delimiter)
	return buf.Bytes(), nil
}
