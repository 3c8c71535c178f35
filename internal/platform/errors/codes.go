// Package errors provides structured error handling with i18n support.
package errors

import (
	"net/http"

	"google.golang.org/grpc/codes"
)

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Birth date errors
	CodeBirthDateMissing Code = "BIRTH_DATE_MISSING"
	CodeBirthDateInvalid Code = "BIRTH_DATE_INVALID"

	// Number errors
	CodeNumberInvalid  Code = "NUMBER_INVALID"
	CodeNumberNegative Code = "NUMBER_NEGATIVE"

	// Interpretation errors
	CodeCategoryUnknown Code = "CATEGORY_UNKNOWN"

	// Transport errors
	CodeRequestInvalid Code = "REQUEST_INVALID"
	CodeRateLimited    Code = "RATE_LIMITED"
)

// Codes lists every code with a user-facing message.
func Codes() []Code {
	return []Code{
		CodeUnknown,
		CodeBirthDateMissing,
		CodeBirthDateInvalid,
		CodeNumberInvalid,
		CodeNumberNegative,
		CodeCategoryUnknown,
		CodeRequestInvalid,
		CodeRateLimited,
	}
}

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - validation failures, bad input
	case CodeBirthDateMissing,
		CodeBirthDateInvalid,
		CodeNumberInvalid,
		CodeNumberNegative,
		CodeCategoryUnknown,
		CodeRequestInvalid:
		return codes.InvalidArgument

	case CodeRateLimited:
		return codes.ResourceExhausted

	default:
		return codes.Internal
	}
}

// HTTPStatus maps domain codes to HTTP status codes.
func (c Code) HTTPStatus() int {
	switch c.GRPCCode() {
	case codes.InvalidArgument:
		return http.StatusBadRequest
	case codes.ResourceExhausted:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
