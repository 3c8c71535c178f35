package errors

import (
	"errors"
	"strings"

	"github.com/louisbranch/mysticnumbers/internal/platform/errors/i18n"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// DefaultLocale is the default locale for error messages.
const DefaultLocale = "en-US"

// HandleError converts domain errors to gRPC status for client responses.
// The user-facing message is rendered from the embedded catalog for locale.
func HandleError(err error, locale string) error {
	return HandleErrorWithCatalog(err, i18n.GetCatalog(normalizeLocale(locale)))
}

// HandleErrorWithCatalog is HandleError rendering from an explicit catalog.
// Errors that already carry a gRPC status pass through unchanged.
func HandleErrorWithCatalog(err error, catalog *i18n.Catalog) error {
	if err == nil {
		return nil
	}
	if st, ok := status.FromError(err); ok && !isDomain(err) {
		return st.Err()
	}
	if catalog == nil {
		catalog = i18n.GetCatalog(DefaultLocale)
	}
	appErr := AsError(err)
	return appErr.ToGRPCStatus(catalog.Locale(), UserMessage(appErr, catalog))
}

// UserMessage renders the localized message for err from catalog.
func UserMessage(err error, catalog *i18n.Catalog) string {
	if catalog == nil {
		catalog = i18n.GetCatalog(DefaultLocale)
	}
	appErr := AsError(err)
	return catalog.Format(string(appErr.Code), appErr.Metadata)
}

// AsError returns err as a domain error. Foreign errors become CodeUnknown
// with a generic message so internals never reach clients.
func AsError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	if err == nil {
		return New(CodeUnknown, "unknown error")
	}
	return Wrap(CodeUnknown, "an unexpected error occurred", err)
}

// GetCode extracts the error code from any error.
// Returns CodeUnknown if the error is not a domain error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}

// IsCode checks if the error has the specified code.
func IsCode(err error, code Code) bool {
	return GetCode(err) == code
}

// GetMetadata extracts metadata from an error if present.
// Returns nil if the error is not a domain error or has no metadata.
func GetMetadata(err error) map[string]string {
	var e *Error
	if errors.As(err, &e) {
		return e.Metadata
	}
	return nil
}

// FromGRPCStatus rebuilds a domain error from a status produced by
// HandleError. The second value is the localized message, if present.
func FromGRPCStatus(err error) (*Error, string) {
	st, ok := status.FromError(err)
	if !ok {
		return AsError(err), ""
	}
	out := &Error{Code: CodeUnknown, Message: st.Message()}
	var localized string
	for _, detail := range st.Details() {
		switch d := detail.(type) {
		case *errdetails.ErrorInfo:
			if d.GetDomain() == Domain {
				out.Code = Code(d.GetReason())
				out.Metadata = d.GetMetadata()
			}
		case *errdetails.LocalizedMessage:
			localized = d.GetMessage()
		}
	}
	if out.Code == CodeUnknown && st.Code() == codes.ResourceExhausted {
		out.Code = CodeRateLimited
	}
	return out, localized
}

func isDomain(err error) bool {
	var e *Error
	return errors.As(err, &e)
}

func normalizeLocale(locale string) string {
	if trimmed := strings.TrimSpace(locale); trimmed != "" {
		return trimmed
	}
	return DefaultLocale
}
