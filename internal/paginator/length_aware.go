// Package paginator provides the length-aware paginator the HTTP layer hands to pageview.
// It only does page arithmetic and link building over already-fetched items.
package paginator

import (
	"net/url"
	"strconv"

	"github.com/maxviazov/ledger-service/internal/repository"
	"github.com/maxviazov/ledger-service/pkg/pageview"
)

const (
	defaultPath     = "/"
	defaultPageName = "page"
)

// Option customizes link generation.
type Option func(*linkConfig)

type linkConfig struct {
	path     string
	query    url.Values
	pageName string
}

// WithPath sets the path page links point at.
func WithPath(path string) Option {
	return func(c *linkConfig) {
		if path != "" {
			c.path = path
		}
	}
}

// WithQuery carries extra query values (filters, per_page) into every link.
// The page parameter itself is always overwritten.
func WithQuery(q url.Values) Option {
	return func(c *linkConfig) {
		c.query = make(url.Values, len(q))
		for k, v := range q {
			c.query[k] = append([]string(nil), v...)
		}
	}
}

// WithPageName renames the page query parameter.
func WithPageName(name string) Option {
	return func(c *linkConfig) {
		if name != "" {
			c.pageName = name
		}
	}
}

// LengthAware knows the total item count, so it can tell the last page.
type LengthAware[T any] struct {
	items       []T
	total       int
	perPage     int
	currentPage int
	lastPage    int
	links       linkConfig
}

// New builds a paginator for one page of items.
// Non-positive perPage and currentPage are treated as 1, a negative total as 0.
func New[T any](items []T, total, perPage, currentPage int, opts ...Option) *LengthAware[T] {
	if perPage <= 0 {
		perPage = 1
	}
	if currentPage <= 0 {
		currentPage = 1
	}
	if total < 0 {
		total = 0
	}

	links := linkConfig{path: defaultPath, pageName: defaultPageName}
	for _, opt := range opts {
		opt(&links)
	}

	lastPage := (total + perPage - 1) / perPage
	if lastPage < 1 {
		lastPage = 1
	}

	return &LengthAware[T]{
		items:       items,
		total:       total,
		perPage:     perPage,
		currentPage: currentPage,
		lastPage:    lastPage,
		links:       links,
	}
}

// FromPageResult wraps a repository page fetched with repository.PageFor(number, size).
func FromPageResult[T any](res repository.PageResult[T], number, size int, opts ...Option) *LengthAware[T] {
	return New(res.Items, res.Total, size, number, opts...)
}

func (p *LengthAware[T]) CurrentPage() int { return p.currentPage }
func (p *LengthAware[T]) PerPage() int     { return p.perPage }
func (p *LengthAware[T]) Total() int       { return p.total }
func (p *LengthAware[T]) LastPage() int    { return p.lastPage }
func (p *LengthAware[T]) Items() []T       { return p.items }

// HasMorePages reports whether a page exists after the current one.
func (p *LengthAware[T]) HasMorePages() bool { return p.currentPage < p.lastPage }

// URL returns the link for page; values below 1 are clamped.
func (p *LengthAware[T]) URL(page int) string {
	if page < 1 {
		page = 1
	}
	q := make(url.Values, len(p.links.query)+1)
	for k, v := range p.links.query {
		q[k] = v
	}
	q.Set(p.links.pageName, strconv.Itoa(page))
	return p.links.path + "?" + q.Encode()
}

// NextPageURL is empty on (or past) the last page.
func (p *LengthAware[T]) NextPageURL() string {
	if !p.HasMorePages() {
		return ""
	}
	return p.URL(p.currentPage + 1)
}

// PreviousPageURL is empty on the first page.
func (p *LengthAware[T]) PreviousPageURL() string {
	if p.currentPage <= 1 {
		return ""
	}
	return p.URL(p.currentPage - 1)
}

var _ pageview.Paginator[int] = (*LengthAware[int])(nil)
