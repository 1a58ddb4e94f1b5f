package service

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/maxviazov/ledger-service/internal/model"
)

const (
	fallbackPageSize = 15
	maxDescription   = 255
)

var currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)

// normalize applies defaults and rejects sizes above the limit instead of silently clamping them.
func (l PageLimits) normalize(req PageRequest) (PageRequest, error) {
	def := l.DefaultSize
	if def <= 0 {
		def = fallbackPageSize
	}
	maxSize := l.MaxSize
	if maxSize < def {
		maxSize = def
	}

	var ferrs []FieldError
	if req.Number < 0 {
		ferrs = append(ferrs, FieldError{Field: "page", Message: "must be >= 1"})
	}
	if req.Size < 0 {
		ferrs = append(ferrs, FieldError{Field: "per_page", Message: "must be >= 1"})
	}
	if req.Size > maxSize {
		ferrs = append(ferrs, FieldError{Field: "per_page", Message: "must be <= " + strconv.Itoa(maxSize)})
	}
	if err := NewInvalidInputError(ferrs); err != nil {
		return PageRequest{}, err
	}

	if req.Number == 0 {
		req.Number = 1
	}
	if req.Size == 0 {
		req.Size = def
	}
	// the row offset (Number-1)*Size has to fit in an int
	if req.Number-1 > math.MaxInt/req.Size {
		return PageRequest{}, NewInvalidInputError([]FieldError{{Field: "page", Message: "is too large for per_page " + strconv.Itoa(req.Size)}})
	}
	return req, nil
}

func normalizeCurrency(c string) string {
	return strings.ToUpper(strings.TrimSpace(c))
}

func isValidCurrency(c string) bool {
	return currencyPattern.MatchString(c)
}

func isValidStatus(status string) bool {
	switch status {
	case model.StatusPending, model.StatusSettled, model.StatusFailed:
		return true
	default:
		return false
	}
}
