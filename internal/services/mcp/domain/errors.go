package domain

import (
	"errors"
	"fmt"

	apperrors "github.com/louisbranch/mysticnumbers/internal/platform/errors"
	errorsi18n "github.com/louisbranch/mysticnumbers/internal/platform/errors/i18n"
	platformi18n "github.com/louisbranch/mysticnumbers/internal/platform/i18n"
)

// ToolError is a calculator failure reported to the model with its code and
// a message in the caller's language.
type ToolError struct {
	Code    apperrors.Code
	Message string
	Cause   error
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ToolError) Unwrap() error {
	return e.Cause
}

// toolError localizes err for locale.
func toolError(err error, locale string) error {
	if err == nil {
		return nil
	}
	var toolErr *ToolError
	if errors.As(err, &toolErr) {
		return toolErr
	}
	resolved, _ := platformi18n.ResolveLocale(locale)
	return &ToolError{
		Code:    apperrors.GetCode(err),
		Message: apperrors.UserMessage(err, errorsi18n.GetCatalog(resolved)),
		Cause:   err,
	}
}
