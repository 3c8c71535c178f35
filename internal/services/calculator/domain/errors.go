package domain

import (
	"errors"
	"strconv"
	"strings"

	"github.com/louisbranch/mysticnumbers/internal/numerology"
	apperrors "github.com/louisbranch/mysticnumbers/internal/platform/errors"
)

// domainError maps calculation failures to coded platform errors. value is
// the raw input echoed back in localized messages.
func domainError(err error, value string) error {
	if err == nil {
		return nil
	}
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	switch {
	case errors.Is(err, numerology.ErrMissingBirthDate):
		return apperrors.Wrap(apperrors.CodeBirthDateMissing, "birth date is required", err)
	case errors.Is(err, numerology.ErrInvalidBirthDate):
		return apperrors.Wrap(apperrors.CodeBirthDateInvalid, err.Error(), err).With("Value", value)
	case errors.Is(err, numerology.ErrNegativeNumber):
		return apperrors.Wrap(apperrors.CodeNumberNegative, err.Error(), err).With("Value", value)
	case errors.Is(err, numerology.ErrUnknownCategory):
		return apperrors.Wrap(apperrors.CodeCategoryUnknown, err.Error(), err).With("Category", value)
	default:
		return apperrors.Wrap(apperrors.CodeUnknown, err.Error(), err)
	}
}

// ParseNumber parses a whole number from request text.
func ParseNumber(value string) (int, error) {
	trimmed := strings.TrimSpace(value)
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, apperrors.Wrap(apperrors.CodeNumberInvalid, "parse number", err).With("Value", trimmed)
	}
	return n, nil
}

// InvalidRequest reports a request body or message that could not be decoded.
func InvalidRequest(err error) error {
	return apperrors.Wrap(apperrors.CodeRequestInvalid, "decode request", err)
}
