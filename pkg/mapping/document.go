// Package mapping loads, checks and normalizes the icon mapping document: an
// ordered YAML mapping from icon name to a list of alias paths.
package mapping

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"go.yaml.in/yaml/v3"
)

// ErrMalformed is wrapped by every parse failure caused by the document shape.
var ErrMalformed = errors.New("malformed mapping document")

// Document is an ordered mapping from icon name to its values.
type Document struct {
	keys    []string
	entries map[string][]string
	rawKeys []string
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{entries: make(map[string][]string)}
}

// Set stores values under key. A new key is appended to the key order; an
// existing key keeps its position and has its values replaced, matching how
// YAML loaders collapse repeated keys.
func (d *Document) Set(key string, values []string) {
	if _, ok := d.entries[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.entries[key] = slices.Clone(values)
}

// Keys returns the keys in document order.
func (d *Document) Keys() []string {
	return slices.Clone(d.keys)
}

// Values returns the values stored under key in document order.
func (d *Document) Values(key string) []string {
	return slices.Clone(d.entries[key])
}

// Len returns the number of distinct keys.
func (d *Document) Len() int {
	return len(d.keys)
}

// RawKeys returns the top-level key tokens exactly as they appeared in the
// source text, repeats included. Documents built in memory report their keys.
func (d *Document) RawKeys() []string {
	if d.rawKeys == nil {
		return d.Keys()
	}
	return slices.Clone(d.rawKeys)
}

// Equal reports whether both documents hold the same keys and values in the
// same order.
func (d *Document) Equal(other *Document) bool {
	if !slices.Equal(d.keys, other.keys) {
		return false
	}
	for _, k := range d.keys {
		if !slices.Equal(d.entries[k], other.entries[k]) {
			return false
		}
	}
	return true
}

// Load reads a whole mapping document from r.
func Load(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a mapping document. The structured decode collapses repeated
// keys, so the raw key tokens are collected separately from the text.
func Parse(data []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	doc := NewDocument()
	doc.rawKeys = scanRawKeys(data)

	node := &root
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return doc, nil
		}
		node = node.Content[0]
	}
	switch {
	case node.Kind == 0, isNull(node):
		return doc, nil
	case node.Kind != yaml.MappingNode:
		return nil, fmt.Errorf("%w: line %d: top level must be a mapping", ErrMalformed, node.Line)
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := resolve(node.Content[i]), resolve(node.Content[i+1])
		if keyNode.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("%w: line %d: key must be a scalar", ErrMalformed, keyNode.Line)
		}
		values, err := sequenceValues(keyNode.Value, valueNode)
		if err != nil {
			return nil, err
		}
		doc.Set(keyNode.Value, values)
	}
	return doc, nil
}

func sequenceValues(key string, node *yaml.Node) ([]string, error) {
	if isNull(node) {
		return []string{}, nil
	}
	if node.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("%w: line %d: entry %q must be a list", ErrMalformed, node.Line, key)
	}
	values := make([]string, 0, len(node.Content))
	for _, item := range node.Content {
		item = resolve(item)
		if item.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("%w: line %d: entry %q may only list scalars", ErrMalformed, item.Line, key)
		}
		values = append(values, item.Value)
	}
	return values, nil
}

func resolve(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.Tag == "!!null"
}

// scanRawKeys returns every zero-indentation line ending in ':' with the
// colon removed.
func scanRawKeys(data []byte) []string {
	keys := []string{}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, " \t\r")
		if line == "" || line[0] == ' ' || line[0] == '\t' || line[0] == '#' || line[0] == '-' {
			continue
		}
		if strings.HasSuffix(line, ":") {
			keys = append(keys, strings.TrimSuffix(line, ":"))
		}
	}
	return keys
}

// Encode serializes doc in block style: each key on its own line followed by
// its values as "- value" items at the key's indentation.
func Encode(doc *Document) ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, key := range doc.keys {
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, v := range doc.entries[key] {
			seq.Content = append(seq.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v})
		}
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
			seq,
		)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	enc.CompactSeqIndent()
	if err := enc.Encode(root); err != nil {
		return nil, fmt.Errorf("encode mapping: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode mapping: %w", err)
	}
	return buf.Bytes(), nil
}

// Normalize returns a copy of doc with keys sorted and each key's values
// deduplicated and sorted. Values claimed by several keys are left in place.
func Normalize(doc *Document) *Document {
	out := NewDocument()
	keys := doc.Keys()
	slices.Sort(keys)
	for _, key := range keys {
		values := doc.Values(key)
		slices.Sort(values)
		out.Set(key, slices.Compact(values))
	}
	return out
}
