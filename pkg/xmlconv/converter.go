// Package xmlconv renders ordered key/value structures as XML documents.
// It is the XML side of the page rendering: callers build a Map once and the
// converter turns keys into elements and scalars into text.
package xmlconv

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"reflect"
	"sort"
	"strconv"
)

// DefaultRootName is used when the caller does not pick a root element.
const DefaultRootName = "data"

// listItemName names elements produced by a list nested directly inside another list.
const listItemName = "item"

// Pair is one entry of an ordered Map.
type Pair struct {
	Key   string
	Value any
}

// Map is an ordered mapping; element order in the output follows slice order.
type Map []Pair

// RootNode is an optional root element name.
// The zero value means "use the converter default".
type RootNode struct {
	name string
	set  bool
}

// Root selects an explicit root element name.
func Root(name string) RootNode { return RootNode{name: name, set: true} }

// DefaultRoot leaves the root element name to the converter.
func DefaultRoot() RootNode { return RootNode{} }

// Name returns the chosen name and whether one was given.
func (r RootNode) Name() (string, bool) { return r.name, r.set }

// Converter turns a Map into an XML document string.
type Converter struct {
	defaultRoot string
}

// New returns a converter that falls back to DefaultRootName.
func New() *Converter { return &Converter{defaultRoot: DefaultRootName} }

// ArrayToXML renders m under the given root element.
// Any invalid root or key name fails with *InvalidTagError and no output is returned.
func (c *Converter) ArrayToXML(m Map, root RootNode) (string, error) {
	name, ok := root.Name()
	if !ok {
		name = c.defaultRoot
	}
	if err := ValidateTag(name); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	start := xml.StartElement{Name: xml.Name{Local: name}}
	if err := enc.EncodeToken(start); err != nil {
		return "", err
	}
	if err := c.writeMap(enc, m); err != nil {
		return "", err
	}
	if err := enc.EncodeToken(start.End()); err != nil {
		return "", err
	}
	if err := enc.Flush(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (c *Converter) writeMap(enc *xml.Encoder, m Map) error {
	for _, p := range m {
		if err := c.writeValue(enc, p.Key, p.Value); err != nil {
			return err
		}
	}
	return nil
}

// writeValue emits key/value; lists repeat the key once per entry.
func (c *Converter) writeValue(enc *xml.Encoder, key string, v any) error {
	if err := ValidateTag(key); err != nil {
		return err
	}
	if list, ok := asList(v); ok {
		for _, entry := range list {
			if err := c.writeElement(enc, key, entry); err != nil {
				return err
			}
		}
		return nil
	}
	return c.writeElement(enc, key, v)
}

func (c *Converter) writeElement(enc *xml.Encoder, key string, v any) error {
	start := xml.StartElement{Name: xml.Name{Local: key}}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}

	if inner, ok := asList(v); ok {
		for _, entry := range inner {
			if err := c.writeValue(enc, listItemName, entry); err != nil {
				return err
			}
		}
	} else if m, ok := asMap(v); ok {
		if err := c.writeMap(enc, m); err != nil {
			return err
		}
	} else if text, ok := scalarText(v); ok {
		if err := enc.EncodeToken(xml.CharData(text)); err != nil {
			return err
		}
	}

	return enc.EncodeToken(start.End())
}

func asList(v any) ([]any, bool) {
	switch val := v.(type) {
	case nil, Map, []byte:
		return nil, false
	case []any:
		return val, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// asMap accepts Map as-is; plain string-keyed maps are emitted in sorted key order.
func asMap(v any) (Map, bool) {
	switch val := v.(type) {
	case Map:
		return val, true
	case map[string]any:
		return sortedMap(val), true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	plain := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		plain[iter.Key().String()] = iter.Value().Interface()
	}
	return sortedMap(plain), true
}

func sortedMap(in map[string]any) Map {
	keys := make([]string, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make(Map, 0, len(keys))
	for _, k := range keys {
		out = append(out, Pair{Key: k, Value: in[k]})
	}
	return out
}

// scalarText returns false for nil, which renders as an empty element.
func scalarText(v any) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", false
	case string:
		return val, true
	case []byte:
		return string(val), true
	case bool:
		return strconv.FormatBool(val), true
	case int:
		return strconv.Itoa(val), true
	case int32:
		return strconv.FormatInt(int64(val), 10), true
	case int64:
		return strconv.FormatInt(val, 10), true
	case uint:
		return strconv.FormatUint(uint64(val), 10), true
	case uint64:
		return strconv.FormatUint(val, 10), true
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case fmt.Stringer:
		return val.String(), true
	default:
		return fmt.Sprint(val), true
	}
}
