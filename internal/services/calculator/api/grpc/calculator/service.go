// Package calculator exposes the calculator over gRPC and provides the
// matching client.
package calculator

import (
	"context"

	apperrors "github.com/louisbranch/mysticnumbers/internal/platform/errors"
	"github.com/louisbranch/mysticnumbers/internal/platform/logging"
	"github.com/louisbranch/mysticnumbers/internal/platform/requestctx"
	"github.com/louisbranch/mysticnumbers/internal/services/calculator/domain"
	"go.uber.org/zap"
	"google.golang.org/protobuf/types/known/structpb"
)

// Service implements CalculatorServer on top of the domain service.
type Service struct {
	svc    *domain.Service
	logger *zap.Logger
}

// NewService wraps svc for gRPC. A nil svc serves the embedded catalogs.
func NewService(svc *domain.Service, logger *zap.Logger) *Service {
	if svc == nil {
		svc = domain.NewService(nil, logger)
	}
	return &Service{svc: svc, logger: logging.OrNop(logger)}
}

// ComputeProfile computes a full profile. The body locale wins over the
// x-locale metadata.
func (s *Service) ComputeProfile(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req profileRequest
	if err := decodeStruct(in, &req); err != nil {
		return nil, s.handleError(ctx, domain.InvalidRequest(err), "")
	}
	if req.Locale == "" {
		req.Locale = requestctx.LocaleFromContext(ctx)
	}
	view, err := s.svc.ComputeProfile(ctx, domain.ProfileInput{
		BirthDate:   req.BirthDate,
		Name:        req.Name,
		Locale:      req.Locale,
		KeepMasters: req.KeepMasters,
	})
	if err != nil {
		return nil, s.handleError(ctx, err, req.Locale)
	}
	return s.respond(ctx, view)
}

// Reduce reduces one number.
func (s *Service) Reduce(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req reduceRequest
	if err := decodeStruct(in, &req); err != nil {
		return nil, s.handleError(ctx, domain.InvalidRequest(err), "")
	}
	if err := checkWireNumber(req.Number); err != nil {
		return nil, s.handleError(ctx, err, "")
	}
	view, err := s.svc.Reduce(ctx, domain.ReduceInput{Number: req.Number, KeepMasters: req.KeepMasters})
	if err != nil {
		return nil, s.handleError(ctx, err, "")
	}
	return s.respond(ctx, view)
}

// Describe returns one interpretation.
func (s *Service) Describe(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req describeRequest
	if err := decodeStruct(in, &req); err != nil {
		return nil, s.handleError(ctx, domain.InvalidRequest(err), "")
	}
	if req.Locale == "" {
		req.Locale = requestctx.LocaleFromContext(ctx)
	}
	if err := checkWireNumber(req.Number); err != nil {
		return nil, s.handleError(ctx, err, req.Locale)
	}
	view, err := s.svc.Describe(ctx, domain.DescribeInput{
		Category: req.Category,
		Number:   req.Number,
		Locale:   req.Locale,
	})
	if err != nil {
		return nil, s.handleError(ctx, err, req.Locale)
	}
	return s.respond(ctx, view)
}

// Locales lists the supported locales.
func (s *Service) Locales(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	views, err := s.svc.Locales(ctx)
	if err != nil {
		return nil, s.handleError(ctx, err, "")
	}
	return s.respond(ctx, localesResponse{Locales: views})
}

func (s *Service) respond(ctx context.Context, v any) (*structpb.Struct, error) {
	out, err := encodeStruct(v)
	if err != nil {
		return nil, s.handleError(ctx, err, "")
	}
	return out, nil
}

// handleError converts err to a status localized for locale, or for the
// caller's metadata locale when locale is empty.
func (s *Service) handleError(ctx context.Context, err error, locale string) error {
	if locale == "" {
		locale = requestctx.LocaleFromContext(ctx)
	}
	if apperrors.GetCode(err) == apperrors.CodeUnknown {
		s.logger.Error("calculator request failed",
			zap.String("request_id", requestctx.RequestIDFromContext(ctx)),
			zap.Error(err),
		)
	}
	return apperrors.HandleErrorWithCatalog(err, s.svc.ErrorCatalog(locale))
}
