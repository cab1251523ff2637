// Package validator checks loaded documents before they enter the corpus. It
// rejects empty identifiers and text that is not valid UTF-8.
package validator

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

const maxIDLength = 4096

// ValidationError holds per-field validation failure messages for one
// document.
type ValidationError struct {
	DocumentID string
	Fields     map[string]string
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s:%s", field, e.Fields[field]))
	}
	return fmt.Sprintf("document %q: %s", e.DocumentID, strings.Join(parts, "; "))
}

// ValidateDocument returns a ValidationError if the identifier is empty or
// too long, or if the text is not valid UTF-8.
func ValidateDocument(id string, text string) error {
	errs := make(map[string]string)

	if strings.TrimSpace(id) == "" {
		errs["id"] = "id is required"
	} else if len(id) > maxIDLength {
		errs["id"] = fmt.Sprintf("id must be at most %d bytes", maxIDLength)
	}
	if !utf8.ValidString(text) {
		errs["text"] = "text is not valid UTF-8"
	}
	if len(errs) > 0 {
		return &ValidationError{DocumentID: id, Fields: errs}
	}
	return nil
}
