// Package pageview exposes a normalized, read-only view over a paginated result
// and renders it as JSON or XML.
//
// The view never computes pagination itself; it relays what the wrapped
// Paginator reports. Both output formats are built from ToStructure so that a
// new format only needs a new renderer over the same structure.
package pageview

import (
	"bytes"

	"github.com/goccy/go-json"

	"github.com/maxviazov/ledger-service/pkg/xmlconv"
)

// Paginator is the contract of a length-aware paginated result.
// Link methods return "" when the corresponding page does not exist.
type Paginator[T any] interface {
	CurrentPage() int
	PerPage() int
	Total() int
	LastPage() int
	Items() []T
	NextPageURL() string
	PreviousPageURL() string
}

// XMLConverter renders an ordered map as an XML document.
// Invalid tag names must fail with *xmlconv.InvalidTagError.
type XMLConverter interface {
	ArrayToXML(m xmlconv.Map, root xmlconv.RootNode) (string, error)
}

// Pagination is the metadata block of a page.
type Pagination struct {
	CurrentPage     int  `json:"current_page"`
	HasNextPage     bool `json:"has_next_page"`
	HasPreviousPage bool `json:"has_previous_page"`
	ItemsPerPage    int  `json:"items_per_page"`
	TotalItems      int  `json:"total_items"`
	TotalPages      int  `json:"total_pages"`
}

// Structure is the canonical projection both renderers start from.
type Structure[T any] struct {
	Items      []T        `json:"items"`
	Pagination Pagination `json:"pagination"`
}

type options struct {
	converter XMLConverter
}

// Option customizes a PageView.
type Option func(*options)

// WithConverter replaces the default xmlconv converter.
func WithConverter(c XMLConverter) Option {
	return func(o *options) {
		if c != nil {
			o.converter = c
		}
	}
}

// PageView wraps a Paginator. It holds a reference and never mutates it.
type PageView[T any] struct {
	paginator Paginator[T]
	converter XMLConverter
}

// New wraps p.
func New[T any](p Paginator[T], opts ...Option) *PageView[T] {
	o := options{converter: xmlconv.New()}
	for _, opt := range opts {
		opt(&o)
	}
	return &PageView[T]{paginator: p, converter: o.converter}
}

func (v *PageView[T]) CurrentPage() int  { return v.paginator.CurrentPage() }
func (v *PageView[T]) Items() []T        { return v.paginator.Items() }
func (v *PageView[T]) ItemsPerPage() int { return v.paginator.PerPage() }
func (v *PageView[T]) TotalItems() int   { return v.paginator.Total() }
func (v *PageView[T]) TotalPages() int   { return v.paginator.LastPage() }

// HasNextPage reports whether the wrapped result links to a next page.
func (v *PageView[T]) HasNextPage() bool { return v.paginator.NextPageURL() != "" }

// HasPreviousPage reports whether the wrapped result links to a previous page.
func (v *PageView[T]) HasPreviousPage() bool { return v.paginator.PreviousPageURL() != "" }

// ToStructure assembles the normalized projection.
// A nil item slice becomes an empty one so JSON renders [] rather than null.
func (v *PageView[T]) ToStructure() Structure[T] {
	items := v.Items()
	if items == nil {
		items = []T{}
	}
	return Structure[T]{
		Items: items,
		Pagination: Pagination{
			CurrentPage:     v.CurrentPage(),
			HasNextPage:     v.HasNextPage(),
			HasPreviousPage: v.HasPreviousPage(),
			ItemsPerPage:    v.ItemsPerPage(),
			TotalItems:      v.TotalItems(),
			TotalPages:      v.TotalPages(),
		},
	}
}

// MarshalJSON encodes the view as its structure.
func (v *PageView[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.ToStructure())
}

// ToJSON returns the JSON document of ToStructure.
// It only fails when an item type cannot be encoded.
func (v *PageView[T]) ToJSON() (string, error) {
	b, err := json.Marshal(v.ToStructure())
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ToXML returns the XML document of ToStructure under root.
// Tag validation errors from the converter are returned unchanged.
func (v *PageView[T]) ToXML(root xmlconv.RootNode) (string, error) {
	m, err := v.ToStructure().xmlMap()
	if err != nil {
		return "", err
	}
	return v.converter.ArrayToXML(m, root)
}

// xmlMap lowers the structure into converter input. Items go through their
// JSON encoding so that json tags decide element names.
func (s Structure[T]) xmlMap() (xmlconv.Map, error) {
	items, err := normalize(s.Items)
	if err != nil {
		return nil, err
	}
	p := s.Pagination
	return xmlconv.Map{
		{Key: "items", Value: items},
		{Key: "pagination", Value: xmlconv.Map{
			{Key: "current_page", Value: p.CurrentPage},
			{Key: "has_next_page", Value: p.HasNextPage},
			{Key: "has_previous_page", Value: p.HasPreviousPage},
			{Key: "items_per_page", Value: p.ItemsPerPage},
			{Key: "total_items", Value: p.TotalItems},
			{Key: "total_pages", Value: p.TotalPages},
		}},
	}, nil
}

func normalize(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}
