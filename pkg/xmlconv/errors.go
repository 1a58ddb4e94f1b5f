package xmlconv

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidTag is the marker error for element names that are not valid XML tags.
// Callers match it with errors.Is; the concrete *InvalidTagError carries the offending name.
var ErrInvalidTag = errors.New("invalid xml tag")

// InvalidTagError reports a root or key name that cannot be used as an element name.
type InvalidTagError struct {
	Tag string
}

func (e *InvalidTagError) Error() string { return fmt.Sprintf("invalid xml tag %q", e.Tag) }
func (e *InvalidTagError) Unwrap() error { return ErrInvalidTag }

var tagPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.:\-]*$`)

// ValidateTag checks that name can be written as an element name.
// A trailing colon is rejected: it would leave an empty local part.
func ValidateTag(name string) error {
	if !tagPattern.MatchString(name) || strings.HasSuffix(name, ":") {
		return &InvalidTagError{Tag: name}
	}
	return nil
}
