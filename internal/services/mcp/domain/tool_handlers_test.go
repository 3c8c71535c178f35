package domain

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	apperrors "github.com/louisbranch/mysticnumbers/internal/platform/errors"
	platformgrpc "github.com/louisbranch/mysticnumbers/internal/platform/grpc"
	"github.com/louisbranch/mysticnumbers/internal/platform/requestctx"
	calculator "github.com/louisbranch/mysticnumbers/internal/services/calculator/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// recordingCalculator captures the context of the last call.
type recordingCalculator struct {
	calculator.Calculator
	requestID string
	locale    string
	err       error
}

func (r *recordingCalculator) record(ctx context.Context) {
	r.requestID = requestctx.RequestIDFromContext(ctx)
	r.locale = requestctx.LocaleFromContext(ctx)
}

func (r *recordingCalculator) ComputeProfile(ctx context.Context, in calculator.ProfileInput) (calculator.ProfileView, error) {
	r.record(ctx)
	if r.err != nil {
		return calculator.ProfileView{}, r.err
	}
	return r.Calculator.ComputeProfile(ctx, in)
}

func (r *recordingCalculator) Reduce(ctx context.Context, in calculator.ReduceInput) (calculator.ReductionView, error) {
	r.record(ctx)
	return r.Calculator.Reduce(ctx, in)
}

func newRecorder() *recordingCalculator {
	return &recordingCalculator{Calculator: calculator.NewService(nil, nil)}
}

func TestProfileHandlerReturnsProfileAndMetadata(t *testing.T) {
	calc := newRecorder()
	result, view, err := ProfileHandler(calc)(context.Background(), nil, ProfileInput{
		BirthDate: "1990-05-15",
		Name:      "John",
		Locale:    "ja",
	})
	if err != nil {
		t.Fatalf("profile handler: %v", err)
	}

	got := []int{view.LifePath, view.Birthday, view.Attitude, view.Expression, view.SoulUrge, view.Personality}
	if diff := cmp.Diff([]int{3, 6, 2, 2, 6, 5}, got); diff != "" {
		t.Fatalf("numbers mismatch (-want +got):\n%s", diff)
	}
	if view.Locale != "ja-JP" {
		t.Fatalf("locale = %q, want ja-JP", view.Locale)
	}
	if result.Meta[platformgrpc.RequestIDKey] != calc.requestID || calc.requestID == "" {
		t.Fatalf("request id meta = %v, calculator saw %q", result.Meta[platformgrpc.RequestIDKey], calc.requestID)
	}
	if result.Meta[InvocationIDKey] == "" {
		t.Fatal("expected invocation id")
	}
	if calc.locale != "ja" {
		t.Fatalf("forwarded locale = %q, want ja", calc.locale)
	}
}

func TestProfileHandlerLocalizesErrors(t *testing.T) {
	_, _, err := ProfileHandler(newRecorder())(context.Background(), nil, ProfileInput{Locale: "it-IT"})
	var toolErr *ToolError
	if !errors.As(err, &toolErr) {
		t.Fatalf("expected ToolError, got %T: %v", err, err)
	}
	if toolErr.Code != apperrors.CodeBirthDateMissing {
		t.Fatalf("code = %q", toolErr.Code)
	}
	if toolErr.Error() != "BIRTH_DATE_MISSING: La data di nascita è obbligatoria" {
		t.Fatalf("error = %q", toolErr.Error())
	}
	if !apperrors.IsCode(err, apperrors.CodeBirthDateMissing) {
		t.Fatal("expected cause to keep its code")
	}
}

func TestProfileHandlerHidesUnexpectedErrors(t *testing.T) {
	calc := newRecorder()
	calc.err = errors.New("connection reset")
	_, _, err := ProfileHandler(calc)(context.Background(), nil, ProfileInput{BirthDate: "1990-05-15"})
	var toolErr *ToolError
	if !errors.As(err, &toolErr) {
		t.Fatalf("expected ToolError, got %T", err)
	}
	if toolErr.Code != apperrors.CodeUnknown {
		t.Fatalf("code = %q, want %q", toolErr.Code, apperrors.CodeUnknown)
	}
}

func TestReduceHandler(t *testing.T) {
	tests := []struct {
		name  string
		input ReduceInput
		want  calculator.ReductionView
	}{
		{
			name:  "reduces",
			input: ReduceInput{Number: 29},
			want:  calculator.ReductionView{Input: 29, Result: 2, Steps: []string{"2 + 9 = 11", "1 + 1 = 2"}},
		},
		{
			name:  "keeps masters reached mid-loop",
			input: ReduceInput{Number: 29, KeepMasters: true},
			want:  calculator.ReductionView{Input: 29, Result: 11, Steps: []string{"2 + 9 = 11"}, Master: true},
		},
		{
			name:  "master input",
			input: ReduceInput{Number: 33},
			want:  calculator.ReductionView{Input: 33, Result: 33, Steps: []string{}, Master: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, got, err := ReduceHandler(newRecorder())(context.Background(), nil, tt.input)
			if err != nil {
				t.Fatalf("reduce handler: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("reduction mismatch (-want +got):\n%s", diff)
			}
		})
	}

	_, _, err := ReduceHandler(newRecorder())(context.Background(), nil, ReduceInput{Number: -1})
	if !apperrors.IsCode(err, apperrors.CodeNumberNegative) {
		t.Fatalf("expected NUMBER_NEGATIVE, got %v", err)
	}
}

func TestDescribeHandler(t *testing.T) {
	_, got, err := DescribeHandler(newRecorder())(context.Background(), nil, DescribeInput{
		Category: "soulUrge",
		Number:   6,
		Locale:   "it-IT",
	})
	if err != nil {
		t.Fatalf("describe handler: %v", err)
	}
	if got.Text != "Bisogno profondo di nutrire e servire" || got.Fallback {
		t.Fatalf("unexpected interpretation: %+v", got)
	}

	_, _, err = DescribeHandler(newRecorder())(context.Background(), nil, DescribeInput{Category: "luck", Number: 1})
	if err == nil || err.Error() != "CATEGORY_UNKNOWN: Unknown number category: luck" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLocalesResourceHandler(t *testing.T) {
	result, err := LocalesResourceHandler(newRecorder())(context.Background(), &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{URI: LocalesURI},
	})
	if err != nil {
		t.Fatalf("read locales: %v", err)
	}
	if len(result.Contents) != 1 || result.Contents[0].MIMEType != "application/json" {
		t.Fatalf("unexpected contents: %+v", result.Contents)
	}
	for _, want := range []string{`"en-US"`, `"Tiếng Việt"`, `"Italiano"`, `"日本語"`} {
		if !strings.Contains(result.Contents[0].Text, want) {
			t.Fatalf("locales resource missing %s: %s", want, result.Contents[0].Text)
		}
	}
}

func TestInterpretationResourceHandler(t *testing.T) {
	uri := "numerology://interpretations/lifePath/22?lang=en-US"
	result, err := InterpretationResourceHandler(newRecorder())(context.Background(), &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{URI: uri},
	})
	if err != nil {
		t.Fatalf("read interpretation: %v", err)
	}
	if result.Contents[0].URI != uri {
		t.Fatalf("uri = %q", result.Contents[0].URI)
	}
	if !strings.Contains(result.Contents[0].Text, "Master builder, practical visionary, manifestor") {
		t.Fatalf("unexpected text: %s", result.Contents[0].Text)
	}
}

func TestParseInterpretationURI(t *testing.T) {
	tests := []struct {
		uri     string
		want    calculator.DescribeInput
		wantErr bool
	}{
		{uri: "numerology://interpretations/birthday/7", want: calculator.DescribeInput{Category: "birthday", Number: 7}},
		{uri: "numerology://interpretations/expression/44?lang=vi", want: calculator.DescribeInput{Category: "expression", Number: 44, Locale: "vi"}},
		{uri: "numerology://interpretations/expression", wantErr: true},
		{uri: "numerology://interpretations/expression/seven", wantErr: true},
		{uri: "numerology://locales/x/1", wantErr: true},
		{uri: "tarot://interpretations/lifePath/1", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			got, err := parseInterpretationURI(tt.uri)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("input mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestToolErrorKeepsExistingToolErrors(t *testing.T) {
	original := &ToolError{Code: apperrors.CodeRateLimited, Message: "slow down"}
	if got := toolError(original, "ja"); got != original {
		t.Fatalf("expected same error, got %v", got)
	}
	if toolError(nil, "") != nil {
		t.Fatal("expected nil for nil error")
	}
}
