package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/louisbranch/mysticnumbers/internal/platform/errors/i18n"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestErrorIsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("compute: %w", New(CodeBirthDateMissing, "birth date is required"))
	if !stderrors.Is(err, New(CodeBirthDateMissing, "")) {
		t.Fatal("expected code match through wrapping")
	}
	if stderrors.Is(err, New(CodeNumberNegative, "")) {
		t.Fatal("unexpected match on a different code")
	}
}

func TestWrapUnwrapsCause(t *testing.T) {
	cause := stderrors.New("boom")
	err := Wrap(CodeBirthDateInvalid, "parse birth date", cause)
	if !stderrors.Is(err, cause) {
		t.Fatal("expected cause in chain")
	}
}

func TestWithCopiesMetadata(t *testing.T) {
	base := New(CodeNumberNegative, "negative").With("Value", "-1")
	next := base.With("Extra", "x")
	if _, ok := base.Metadata["Extra"]; ok {
		t.Fatal("With mutated the receiver")
	}
	if next.Metadata["Value"] != "-1" || next.Metadata["Extra"] != "x" {
		t.Fatalf("metadata = %v", next.Metadata)
	}
}

func TestCodeMappings(t *testing.T) {
	tests := []struct {
		code Code
		grpc codes.Code
		http int
	}{
		{CodeBirthDateMissing, codes.InvalidArgument, http.StatusBadRequest},
		{CodeBirthDateInvalid, codes.InvalidArgument, http.StatusBadRequest},
		{CodeNumberInvalid, codes.InvalidArgument, http.StatusBadRequest},
		{CodeNumberNegative, codes.InvalidArgument, http.StatusBadRequest},
		{CodeCategoryUnknown, codes.InvalidArgument, http.StatusBadRequest},
		{CodeRequestInvalid, codes.InvalidArgument, http.StatusBadRequest},
		{CodeRateLimited, codes.ResourceExhausted, http.StatusTooManyRequests},
		{CodeUnknown, codes.Internal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := tt.code.GRPCCode(); got != tt.grpc {
			t.Fatalf("%s GRPCCode = %v, want %v", tt.code, got, tt.grpc)
		}
		if got := tt.code.HTTPStatus(); got != tt.http {
			t.Fatalf("%s HTTPStatus = %d, want %d", tt.code, got, tt.http)
		}
	}
}

// TestEveryCodeHasMessages ensures each locale can render every code.
func TestEveryCodeHasMessages(t *testing.T) {
	for _, locale := range []string{"en-US", "vi-VN", "it-IT", "ja-JP"} {
		catalog := i18n.GetCatalog(locale)
		if catalog.Locale() != locale {
			t.Fatalf("catalog locale = %q, want %q", catalog.Locale(), locale)
		}
		for _, code := range Codes() {
			if !catalog.Has(string(code)) {
				t.Fatalf("%s has no message for %s", locale, code)
			}
		}
	}
}

func TestHandleErrorAttachesDetails(t *testing.T) {
	err := New(CodeCategoryUnknown, "unknown category").With("Category", "luck")
	st := status.Convert(HandleError(err, "it-IT"))
	if st.Code() != codes.InvalidArgument {
		t.Fatalf("code = %v", st.Code())
	}
	if st.Message() != "unknown category" {
		t.Fatalf("message = %q", st.Message())
	}

	var info *errdetails.ErrorInfo
	var localized *errdetails.LocalizedMessage
	for _, detail := range st.Details() {
		switch d := detail.(type) {
		case *errdetails.ErrorInfo:
			info = d
		case *errdetails.LocalizedMessage:
			localized = d
		}
	}
	if info == nil || info.GetReason() != "CATEGORY_UNKNOWN" || info.GetDomain() != Domain {
		t.Fatalf("error info = %v", info)
	}
	if localized == nil || localized.GetLocale() != "it-IT" || localized.GetMessage() != "Categoria di numero sconosciuta: luck" {
		t.Fatalf("localized = %v", localized)
	}
}

func TestHandleErrorHidesForeignErrors(t *testing.T) {
	st := status.Convert(HandleError(stderrors.New("disk on fire"), ""))
	if st.Code() != codes.Internal {
		t.Fatalf("code = %v", st.Code())
	}
	if st.Message() != "an unexpected error occurred" {
		t.Fatalf("message = %q", st.Message())
	}
}

func TestHandleErrorPassesStatusThrough(t *testing.T) {
	in := status.Error(codes.DeadlineExceeded, "slow")
	if got := status.Code(HandleError(in, "en-US")); got != codes.DeadlineExceeded {
		t.Fatalf("code = %v", got)
	}
	if HandleError(nil, "en-US") != nil {
		t.Fatal("nil error must stay nil")
	}
}

func TestFromGRPCStatusRoundTrip(t *testing.T) {
	in := New(CodeNumberNegative, "negative input").With("Value", "-4")
	out, localized := FromGRPCStatus(HandleError(in, "en-US"))
	if out.Code != CodeNumberNegative || out.Metadata["Value"] != "-4" {
		t.Fatalf("round trip = %+v", out)
	}
	if localized != "The number -4 must not be negative" {
		t.Fatalf("localized = %q", localized)
	}
}

func TestCodeHelpers(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", New(CodeRateLimited, "slow down").With("Client", "a"))
	if GetCode(err) != CodeRateLimited || !IsCode(err, CodeRateLimited) {
		t.Fatal("expected rate limited code")
	}
	if GetMetadata(err)["Client"] != "a" {
		t.Fatal("expected metadata")
	}
	if GetCode(stderrors.New("x")) != CodeUnknown || GetMetadata(stderrors.New("x")) != nil {
		t.Fatal("foreign errors have no code or metadata")
	}
}

func TestUserMessage(t *testing.T) {
	msg := UserMessage(New(CodeBirthDateMissing, "missing"), i18n.GetCatalog("vi-VN"))
	if msg != "Cần nhập ngày sinh" {
		t.Fatalf("UserMessage = %q", msg)
	}
	if got := UserMessage(New(CodeBirthDateMissing, "missing"), nil); got != "A birth date is required" {
		t.Fatalf("UserMessage with nil catalog = %q", got)
	}
}

func TestHandleErrorWithCatalogUsesGivenCatalog(t *testing.T) {
	catalog := i18n.NewCatalog("xx-test", map[string]string{"NUMBER_INVALID": "bad {{.Value}}"})
	_, localized := FromGRPCStatus(HandleErrorWithCatalog(New(CodeNumberInvalid, "bad").With("Value", "x"), catalog))
	if localized != "bad x" {
		t.Fatalf("localized = %q", localized)
	}
}
