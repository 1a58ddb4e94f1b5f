package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/ledger-service/internal/paginator"
	"github.com/maxviazov/ledger-service/internal/repository"
	"github.com/maxviazov/ledger-service/internal/service"
	"github.com/maxviazov/ledger-service/pkg/pageview"
	"github.com/maxviazov/ledger-service/pkg/response"
)

// pageRequest reads ?page= and ?per_page=. Missing values stay zero so the
// service applies its defaults; non-numeric values are rejected here.
func pageRequest(c *gin.Context) (service.PageRequest, error) {
	var (
		req service.PageRequest
		fe  []service.FieldError
	)
	for _, p := range []struct {
		name string
		dst  *int
	}{
		{PageParam, &req.Number},
		{PerPageParam, &req.Size},
	} {
		raw, ok := c.GetQuery(p.name)
		if !ok || raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			fe = append(fe, service.FieldError{Field: p.name, Message: "must be an integer"})
			continue
		}
		*p.dst = n
	}
	if len(fe) > 0 {
		return service.PageRequest{}, service.NewInvalidInputError(fe)
	}
	return req, nil
}

// writePage wraps a fetched page in a PageView whose links point back at the
// current path with the current filters.
func writePage[T any](c *gin.Context, res repository.PageResult[T], req service.PageRequest, xmlRoot string) {
	p := paginator.FromPageResult(res, req.Number, req.Size,
		paginator.WithPath(c.Request.URL.Path),
		paginator.WithQuery(c.Request.URL.Query()),
		paginator.WithPageName(PageParam),
	)
	response.WritePage(c, http.StatusOK, pageview.New[T](p), xmlRoot)
}

// parseID reads a numeric path parameter. Non-numeric values fail as invalid
// input on a field named after the parameter; range checks stay in the service.
func parseID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, service.NewInvalidInputError([]service.FieldError{{Field: name, Message: "must be an integer"}})
	}
	return id, nil
}
