// Package response centralizes HTTP response shapes and helpers.
// Handlers rely on it to keep controllers thin and uniform.
package response

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/maxviazov/ledger-service/internal/repository"
	"github.com/maxviazov/ledger-service/internal/service"
	"github.com/maxviazov/ledger-service/pkg/xmlconv"
)

// ErrorPayload is the canonical error envelope returned by the API.
type ErrorPayload struct {
	Error       string               `json:"error"`
	Message     string               `json:"message,omitempty"`
	FieldErrors []service.FieldError `json:"field_errors,omitempty"`
}

// MapError converts a domain / infrastructure error into an HTTP status and payload.
func MapError(err error) (int, ErrorPayload) {
	if err == nil {
		return http.StatusOK, ErrorPayload{Error: "ok"}
	}

	if errors.Is(err, service.ErrInvalidInput) {
		return http.StatusBadRequest, ErrorPayload{
			Error:       "invalid_input",
			Message:     "one or more fields are invalid",
			FieldErrors: service.FieldErrors(err),
		}
	}

	var tagErr *xmlconv.InvalidTagError
	switch {
	case errors.As(err, &tagErr):
		return http.StatusBadRequest, ErrorPayload{Error: "invalid_tag", Message: tagErr.Error()}
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, ErrorPayload{Error: "not_found"}
	case errors.Is(err, repository.ErrAlreadyExists):
		return http.StatusConflict, ErrorPayload{Error: "already_exists"}
	case errors.Is(err, repository.ErrConflict):
		return http.StatusConflict, ErrorPayload{Error: "conflict"}
	default:
		return http.StatusInternalServerError, ErrorPayload{Error: "internal_error"}
	}
}

// WriteError writes an error response and aborts the context.
func WriteError(c *gin.Context, err error) {
	status, payload := MapError(err)
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, payload)
}

// WriteData writes a successful JSON response.
func WriteData(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}

// Page is what a paginated listing must offer to be rendered in either format.
// *pageview.PageView satisfies it for any item type.
type Page interface {
	ToJSON() (string, error)
	ToXML(root xmlconv.RootNode) (string, error)
}

// Query parameters that steer page rendering.
const (
	FormatParam = "format"
	RootParam   = "root"
)

// WritePage renders a page as JSON or XML. The format comes from ?format=
// when present, otherwise from the Accept header, defaulting to JSON.
// The XML root is ?root=, then defaultRoot, then the converter default.
func WritePage(c *gin.Context, status int, page Page, defaultRoot string) {
	if negotiateFormat(c) == binding.MIMEJSON {
		body, err := page.ToJSON()
		if err != nil {
			WriteError(c, err)
			return
		}
		c.Data(status, "application/json; charset=utf-8", []byte(body))
		return
	}

	root := xmlconv.DefaultRoot()
	if name, ok := c.GetQuery(RootParam); ok {
		root = xmlconv.Root(name)
	} else if defaultRoot != "" {
		root = xmlconv.Root(defaultRoot)
	}
	body, err := page.ToXML(root)
	if err != nil {
		WriteError(c, err)
		return
	}
	c.Data(status, "application/xml; charset=utf-8", []byte(body))
}

func negotiateFormat(c *gin.Context) string {
	switch strings.ToLower(c.Query(FormatParam)) {
	case "xml":
		return binding.MIMEXML
	case "json":
		return binding.MIMEJSON
	}
	switch c.NegotiateFormat(binding.MIMEJSON, binding.MIMEXML, binding.MIMEXML2) {
	case binding.MIMEXML, binding.MIMEXML2:
		return binding.MIMEXML
	default:
		return binding.MIMEJSON
	}
}
