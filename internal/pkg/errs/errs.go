// Package errs wraps cockroachdb/errors so the rest of the codebase never
// imports it directly. Mark attaches a sentinel that callers test with
// errors.Is while the original cause stays on the chain.
package errs

import (
	"fmt"

	cr "github.com/cockroachdb/errors"
)

func New(msg string) error {
	return cr.New(msg)
}

func Newf(format string, args ...any) error {
	return cr.Newf(format, args...)
}

func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

func Mark(err error, markErr error) error {
	if err == nil {
		return markErr
	}
	return cr.Mark(err, markErr)
}

// FormatStack renders the full annotated chain for diagnostic logs.
func FormatStack(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("%+v", err)
}
