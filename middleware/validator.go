package middleware

import (
	"fmt"
	"strings"
	"unicode/utf8"

	kerrors "github.com/krishisetu/krishisetu/errors"
)

// maxQueryLength bounds the accepted query size in runes.
const maxQueryLength = 2000

// Validator rejects queries the pipeline cannot process.
type Validator struct{}

// NewValidator creates the query validation middleware.
func NewValidator() *Validator {
	return &Validator{}
}

func (m *Validator) Name() string { return "Validator" }

// Execute rejects empty and oversized queries.
func (m *Validator) Execute(ctx *Context, next Handler) error {
	if strings.TrimSpace(ctx.Query) == "" {
		return fmt.Errorf("%w: query cannot be empty", kerrors.ErrInvalidInput)
	}
	if utf8.RuneCountInString(ctx.Query) > maxQueryLength {
		return fmt.Errorf("%w: query exceeds %d characters", kerrors.ErrInvalidInput, maxQueryLength)
	}
	return next(ctx)
}
