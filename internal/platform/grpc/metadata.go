package grpc

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/louisbranch/mysticnumbers/internal/platform/requestctx"
	gogrpc "google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

const (
	// RequestIDKey is the metadata key carrying the request correlation id.
	RequestIDKey = "x-request-id"
	// LocaleKey is the metadata key carrying the caller's locale.
	LocaleKey = "x-locale"
	// AcceptLanguageKey is honored when LocaleKey is absent.
	AcceptLanguageKey = "accept-language"
)

// UnaryServerMetadataInterceptor copies request metadata into the handler
// context. Requests without an id are assigned one, and the id is echoed as
// a response header.
func UnaryServerMetadataInterceptor() gogrpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, _ *gogrpc.UnaryServerInfo, handler gogrpc.UnaryHandler) (any, error) {
		md, _ := metadata.FromIncomingContext(ctx)
		requestID := firstValue(md, RequestIDKey)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx = requestctx.WithRequestID(ctx, requestID)
		locale := firstValue(md, LocaleKey)
		if locale == "" {
			locale = firstValue(md, AcceptLanguageKey)
		}
		if locale != "" {
			ctx = requestctx.WithLocale(ctx, locale)
		}
		_ = gogrpc.SetHeader(ctx, metadata.Pairs(RequestIDKey, requestID))
		return handler(ctx, req)
	}
}

// UnaryClientMetadataInterceptor forwards the context's request id and
// locale as outgoing metadata.
func UnaryClientMetadataInterceptor() gogrpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *gogrpc.ClientConn, invoker gogrpc.UnaryInvoker, opts ...gogrpc.CallOption) error {
		return invoker(OutgoingContext(ctx), method, req, reply, cc, opts...)
	}
}

// OutgoingContext appends the context's request id and locale to the
// outgoing metadata.
func OutgoingContext(ctx context.Context) context.Context {
	var pairs []string
	if requestID := requestctx.RequestIDFromContext(ctx); requestID != "" {
		pairs = append(pairs, RequestIDKey, requestID)
	}
	if locale := requestctx.LocaleFromContext(ctx); locale != "" {
		pairs = append(pairs, LocaleKey, locale)
	}
	if len(pairs) == 0 {
		return ctx
	}
	return metadata.AppendToOutgoingContext(ctx, pairs...)
}

func firstValue(md metadata.MD, key string) string {
	for _, value := range md.Get(key) {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
