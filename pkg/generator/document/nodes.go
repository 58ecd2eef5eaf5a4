package document

import (
	"bytes"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/gkertaseferi/generator-ibm-cloud-enablement/pkg/generator/params"
)

// binder resolves parameters into YAML nodes and keeps the first failure
// so builders can compose documents without checking every lookup.
type binder struct {
	set *params.Set
	err error
}

func (b *binder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// node returns the parameter as a scalar; deferred references are quoted.
func (b *binder) node(name string) *yaml.Node {
	v, err := b.set.Resolve(name)
	if err != nil {
		b.fail(err)
		return str("")
	}
	return valueNode(v)
}

// text returns the parameter text for use inside a larger literal.
func (b *binder) text(name string) string {
	v, err := b.set.Text(name)
	if err != nil {
		b.fail(err)
	}
	return v
}

func valueNode(v params.Value) *yaml.Node {
	if v.IsDeferred() {
		return quoted(v.Text)
	}
	return str(v.Text)
}

func str(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func quoted(s string) *yaml.Node {
	n := str(s)
	n.Style = yaml.DoubleQuotedStyle
	return n
}

func block(s string) *yaml.Node {
	n := str(s)
	n.Style = yaml.LiteralStyle
	return n
}

func boolean(v bool) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v)}
}

// mapping builds an ordered mapping from alternating string keys and node
// values. Plain strings are accepted as values for brevity.
func mapping(kv ...any) *yaml.Node {
	if len(kv)%2 != 0 {
		panic(fmt.Sprintf("mapping: odd number of arguments (%d)", len(kv)))
	}
	m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			panic(fmt.Sprintf("mapping: key %d is %T, not string", i/2, kv[i]))
		}
		m.Content = append(m.Content, str(key), toNode(kv[i+1]))
	}
	return m
}

func seq(items ...any) *yaml.Node {
	s := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, it := range items {
		s.Content = append(s.Content, toNode(it))
	}
	return s
}

func toNode(v any) *yaml.Node {
	switch t := v.(type) {
	case *yaml.Node:
		return t
	case string:
		return str(t)
	case bool:
		return boolean(t)
	default:
		panic(fmt.Sprintf("unsupported node value %T", v))
	}
}

func encodeYAML(root *yaml.Node) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to flush YAML: %w", err)
	}
	return buf.Bytes(), nil
}
