package grpc

import (
	"context"
	"testing"

	"github.com/louisbranch/mysticnumbers/internal/platform/requestctx"
	gogrpc "google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

func TestServerInterceptorCopiesMetadata(t *testing.T) {
	interceptor := UnaryServerMetadataInterceptor()
	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(
		RequestIDKey, "req-7",
		AcceptLanguageKey, "ja",
	))

	var gotID, gotLocale string
	_, err := interceptor(ctx, nil, &gogrpc.UnaryServerInfo{}, func(ctx context.Context, _ any) (any, error) {
		gotID = requestctx.RequestIDFromContext(ctx)
		gotLocale = requestctx.LocaleFromContext(ctx)
		return nil, nil
	})
	if err != nil {
		t.Fatalf("interceptor: %v", err)
	}
	if gotID != "req-7" {
		t.Fatalf("request id = %q, want req-7", gotID)
	}
	if gotLocale != "ja" {
		t.Fatalf("locale = %q, want ja", gotLocale)
	}
}

func TestServerInterceptorPrefersLocaleKey(t *testing.T) {
	interceptor := UnaryServerMetadataInterceptor()
	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(
		LocaleKey, "it-IT",
		AcceptLanguageKey, "ja",
	))

	var gotLocale string
	_, _ = interceptor(ctx, nil, &gogrpc.UnaryServerInfo{}, func(ctx context.Context, _ any) (any, error) {
		gotLocale = requestctx.LocaleFromContext(ctx)
		return nil, nil
	})
	if gotLocale != "it-IT" {
		t.Fatalf("locale = %q, want it-IT", gotLocale)
	}
}

func TestServerInterceptorAssignsRequestID(t *testing.T) {
	interceptor := UnaryServerMetadataInterceptor()

	var gotID string
	_, _ = interceptor(context.Background(), nil, &gogrpc.UnaryServerInfo{}, func(ctx context.Context, _ any) (any, error) {
		gotID = requestctx.RequestIDFromContext(ctx)
		return nil, nil
	})
	if gotID == "" {
		t.Fatal("expected generated request id")
	}
}

func TestOutgoingContextForwardsValues(t *testing.T) {
	ctx := requestctx.WithLocale(requestctx.WithRequestID(context.Background(), "req-9"), "vi-VN")
	md, ok := metadata.FromOutgoingContext(OutgoingContext(ctx))
	if !ok {
		t.Fatal("expected outgoing metadata")
	}
	if got := md.Get(RequestIDKey); len(got) != 1 || got[0] != "req-9" {
		t.Fatalf("request id metadata = %v", got)
	}
	if got := md.Get(LocaleKey); len(got) != 1 || got[0] != "vi-VN" {
		t.Fatalf("locale metadata = %v", got)
	}

	if _, ok := metadata.FromOutgoingContext(OutgoingContext(context.Background())); ok {
		t.Fatal("expected no metadata for empty context")
	}
}
