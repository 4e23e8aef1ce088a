package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Local YAML tags recognized in configuration fragments.
const (
	tagReplace  = "!replace"
	tagDisplace = "!displace"
	tagRegex    = "!regex"
)

// ParseError reports a configuration file that could not be read or
// parsed as YAML.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
}

func (e *ParseError) Error() string {
	switch {
	case e.Path != "" && e.Line > 0:
		return fmt.Sprintf("%s:%d:%d: %s", e.Path, e.Line, e.Column, e.Message)
	case e.Path != "":
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	case e.Line > 0:
		return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
	}
	return e.Message
}

// Decode parses one configuration fragment. The document must be a
// YAML mapping (or empty). !replace and !displace tags decode to
// Tagged wrappers, !regex scalars to compiled Patterns.
func Decode(data []byte) (Settings, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, yamlParseError(err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return Settings{}, nil
	}
	root := doc.Content[0]
	if root.Kind == yaml.ScalarNode && root.Tag == "!!null" {
		return Settings{}, nil
	}
	v, err := decodeNode(root)
	if err != nil {
		return nil, err
	}
	s, ok := v.(Settings)
	if !ok {
		return nil, &ParseError{
			Line:    root.Line,
			Column:  root.Column,
			Message: "configuration must be a mapping",
		}
	}
	return s, nil
}

func decodeNode(n *yaml.Node) (interface{}, error) {
	if n.Kind == yaml.AliasNode {
		return decodeNode(n.Alias)
	}
	switch n.Tag {
	case tagReplace, tagDisplace:
		inner, err := decodeUntagged(n)
		if err != nil {
			return nil, err
		}
		return Tagged{Directive: strings.TrimPrefix(n.Tag, "!"), Value: inner}, nil
	case tagRegex:
		if n.Kind != yaml.ScalarNode {
			return nil, &ParseError{Line: n.Line, Column: n.Column, Message: "!regex expects a string"}
		}
		p, err := CompilePattern(n.Value)
		if err != nil {
			return nil, &ParseError{
				Line:    n.Line,
				Column:  n.Column,
				Message: fmt.Sprintf("invalid regular expression: %v", err),
			}
		}
		return p, nil
	}
	switch n.Kind {
	case yaml.MappingNode:
		return decodeMapping(n)
	case yaml.SequenceNode:
		return decodeSequence(n)
	case yaml.ScalarNode:
		var v interface{}
		if err := n.Decode(&v); err != nil {
			return nil, yamlParseError(err)
		}
		return v, nil
	}
	return nil, &ParseError{Line: n.Line, Column: n.Column, Message: "unsupported YAML node"}
}

// decodeUntagged decodes the node's contents with its local tag
// ignored, so !replace [a] yields the plain sequence [a].
func decodeUntagged(n *yaml.Node) (interface{}, error) {
	switch n.Kind {
	case yaml.MappingNode:
		return decodeMapping(n)
	case yaml.SequenceNode:
		return decodeSequence(n)
	case yaml.ScalarNode:
		plain := *n
		plain.Tag = ""
		var v interface{}
		if err := plain.Decode(&v); err != nil {
			return nil, yamlParseError(err)
		}
		return v, nil
	}
	return nil, &ParseError{Line: n.Line, Column: n.Column, Message: "unsupported YAML node"}
}

func decodeMapping(n *yaml.Node) (Settings, error) {
	out := make(Settings, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		keyNode, valNode := n.Content[i], n.Content[i+1]
		if keyNode.Kind != yaml.ScalarNode {
			return nil, &ParseError{
				Line:    keyNode.Line,
				Column:  keyNode.Column,
				Message: "mapping keys must be strings",
			}
		}
		v, err := decodeNode(valNode)
		if err != nil {
			return nil, err
		}
		out[keyNode.Value] = v
	}
	return out, nil
}

func decodeSequence(n *yaml.Node) ([]interface{}, error) {
	out := make([]interface{}, 0, len(n.Content))
	for _, c := range n.Content {
		v, err := decodeNode(c)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// yamlParseError converts a yaml.v3 error, which renders as
// "yaml: line N: message", into a ParseError.
func yamlParseError(err error) *ParseError {
	var typeErr *yaml.TypeError
	if errors.As(err, &typeErr) {
		return &ParseError{Message: strings.Join(typeErr.Errors, "; ")}
	}
	line, column := extractLineColumn(err.Error())
	return &ParseError{
		Line:    line,
		Column:  column,
		Message: cleanYAMLError(err.Error()),
	}
}

// extractLineColumn pulls line and column numbers out of a YAML error
// message like "yaml: line 5: could not find expected ':'".
func extractLineColumn(errMsg string) (line, column int) {
	var l, c int
	if n, _ := fmt.Sscanf(errMsg, "yaml: line %d: column %d:", &l, &c); n == 2 {
		return l, c
	}
	if n, _ := fmt.Sscanf(errMsg, "yaml: line %d:", &l); n == 1 {
		return l, 1
	}
	return 0, 0
}

// cleanYAMLError removes the "yaml: line X:" prefix for cleaner output.
func cleanYAMLError(errMsg string) string {
	if idx := strings.LastIndex(errMsg, ": "); idx > 0 {
		if strings.HasPrefix(errMsg, "yaml:") {
			return errMsg[idx+2:]
		}
	}
	return errMsg
}

// Encode renders settings as canonical YAML: keys sorted, two-space
// indent, directives and patterns emitted as local tags, indent rules
// in flow style.
func Encode(s Settings) ([]byte, error) {
	root, err := encodeValue(s)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeValue(v interface{}) (*yaml.Node, error) {
	switch tv := v.(type) {
	case Tagged:
		n, err := encodeValue(tv.Value)
		if err != nil {
			return nil, err
		}
		n.Tag = "!" + tv.Directive
		return n, nil
	case Pattern:
		return &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   tagRegex,
			Value: tv.Source,
			Style: yaml.SingleQuotedStyle,
		}, nil
	case Settings:
		return encodeMapping(tv)
	case map[string]interface{}:
		return encodeMapping(Settings(tv))
	case Set:
		return encodeSequence([]interface{}(tv))
	case []interface{}:
		return encodeSequence(tv)
	case IndentRule:
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for _, ind := range tv {
			item := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
			item.Content = append(item.Content, &yaml.Node{
				Kind:  yaml.ScalarNode,
				Value: string(ind.Kind),
			})
			for _, a := range ind.Args {
				item.Content = append(item.Content, &yaml.Node{
					Kind:  yaml.ScalarNode,
					Tag:   "!!int",
					Value: strconv.Itoa(a),
				})
			}
			seq.Content = append(seq.Content, item)
		}
		return seq, nil
	default:
		n := &yaml.Node{}
		if err := n.Encode(v); err != nil {
			return nil, err
		}
		return n, nil
	}
}

func encodeMapping(s Settings) (*yaml.Node, error) {
	n := &yaml.Node{Kind: yaml.MappingNode}
	for _, k := range s.Keys() {
		vn, err := encodeValue(s[k])
		if err != nil {
			return nil, err
		}
		n.Content = append(n.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: k}, vn)
	}
	return n, nil
}

func encodeSequence(items []interface{}) (*yaml.Node, error) {
	n := &yaml.Node{Kind: yaml.SequenceNode}
	for _, it := range items {
		c, err := encodeValue(it)
		if err != nil {
			return nil, err
		}
		n.Content = append(n.Content, c)
	}
	return n, nil
}

// Plain converts settings to plain Go values for generic encoders:
// sets become sequences, patterns their source text, indent rules
// nested sequences, and directive wrappers are dropped.
func (s Settings) Plain() map[string]interface{} {
	out := make(map[string]interface{}, len(s))
	for k, v := range s {
		out[k] = plainValue(v)
	}
	return out
}

func plainValue(v interface{}) interface{} {
	switch tv := v.(type) {
	case Tagged:
		return plainValue(tv.Value)
	case Settings:
		return tv.Plain()
	case map[string]interface{}:
		return Settings(tv).Plain()
	case Set:
		return plainSequence([]interface{}(tv))
	case []interface{}:
		return plainSequence(tv)
	case Pattern:
		return tv.Source
	case IndentRule:
		out := make([]interface{}, len(tv))
		for i, ind := range tv {
			item := make([]interface{}, 0, 1+len(ind.Args))
			item = append(item, string(ind.Kind))
			for _, a := range ind.Args {
				item = append(item, a)
			}
			out[i] = item
		}
		return out
	default:
		return v
	}
}

func plainSequence(items []interface{}) []interface{} {
	out := make([]interface{}, len(items))
	for i, it := range items {
		out[i] = plainValue(it)
	}
	return out
}

// EncodeJSON renders settings as indented JSON.
func EncodeJSON(s Settings) ([]byte, error) {
	return json.MarshalIndent(s.Plain(), "", "  ")
}
