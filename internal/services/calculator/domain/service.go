package domain

import (
	"context"
	"strconv"
	"time"

	"github.com/louisbranch/mysticnumbers/internal/interpretation"
	"github.com/louisbranch/mysticnumbers/internal/numerology"
	apperrors "github.com/louisbranch/mysticnumbers/internal/platform/errors"
	errorsi18n "github.com/louisbranch/mysticnumbers/internal/platform/errors/i18n"
	platformi18n "github.com/louisbranch/mysticnumbers/internal/platform/i18n"
	"github.com/louisbranch/mysticnumbers/internal/platform/i18n/catalog"
	"github.com/louisbranch/mysticnumbers/internal/platform/logging"
	platformotel "github.com/louisbranch/mysticnumbers/internal/platform/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const tracerName = "github.com/louisbranch/mysticnumbers/internal/services/calculator/domain"

// ProfileInput is a profile request as received by a transport.
type ProfileInput struct {
	BirthDate   string
	Name        string
	Locale      string
	KeepMasters bool
}

// ReduceInput is a reduction request.
type ReduceInput struct {
	Number      int
	KeepMasters bool
}

// DescribeInput is an interpretation lookup request.
type DescribeInput struct {
	Category string
	Number   int
	Locale   string
}

// Calculator is the operation set every transport exposes. *Service
// implements it in process; the gRPC client implements it remotely.
type Calculator interface {
	ComputeProfile(ctx context.Context, in ProfileInput) (ProfileView, error)
	Reduce(ctx context.Context, in ReduceInput) (ReductionView, error)
	Describe(ctx context.Context, in DescribeInput) (interpretation.Interpretation, error)
	Locales(ctx context.Context) ([]LocaleView, error)
}

// Service computes profiles and renders their texts from a catalog holder.
// It is safe for concurrent use.
type Service struct {
	catalogs  *catalog.Holder
	describer *interpretation.Describer
	logger    *zap.Logger
	tracer    trace.Tracer
}

// NewService returns a service reading texts from catalogs. A nil holder
// serves the embedded catalogs.
func NewService(catalogs *catalog.Holder, logger *zap.Logger) *Service {
	if catalogs == nil {
		catalogs = catalog.NewHolder(nil)
	}
	return &Service{
		catalogs:  catalogs,
		describer: interpretation.NewDescriber(catalogs),
		logger:    logging.OrNop(logger),
		tracer:    platformotel.Tracer(tracerName),
	}
}

// ComputeProfile parses the request, computes the profile and attaches the
// interpretation of every number.
func (s *Service) ComputeProfile(ctx context.Context, in ProfileInput) (ProfileView, error) {
	ctx, span := s.tracer.Start(ctx, "calculator.ComputeProfile")
	defer span.End()
	start := time.Now()

	date, err := numerology.ParseBirthDate(in.BirthDate)
	if err != nil {
		return ProfileView{}, s.fail(span, "compute profile", domainError(err, in.BirthDate))
	}
	profile, err := numerology.ComputeProfile(numerology.ProfileRequest{
		BirthDate: &date,
		Name:      in.Name,
		Reduce:    numerology.ReduceOptions{KeepMasters: in.KeepMasters},
	})
	if err != nil {
		return ProfileView{}, s.fail(span, "compute profile", domainError(err, in.BirthDate))
	}

	locale, _ := platformi18n.ResolveLocale(in.Locale)
	view := ProfileView{
		Locale:          locale,
		BirthDate:       profile.BirthDate.String(),
		Name:            profile.Name,
		NormalizedName:  profile.NormalizedName,
		LifePath:        profile.LifePath,
		Birthday:        profile.Birthday,
		Attitude:        profile.Attitude,
		Expression:      profile.Expression,
		SoulUrge:        profile.SoulUrge,
		Personality:     profile.Personality,
		Traces:          make([]TraceView, 0, len(profile.Traces)),
		Interpretations: s.describer.DescribeProfile(profile, locale),
	}
	for _, t := range profile.Traces {
		view.Traces = append(view.Traces, s.traceView(t, locale))
	}

	span.SetAttributes(
		attribute.String("numerology.locale", locale),
		attribute.Int("numerology.life_path", profile.LifePath),
		attribute.Bool("numerology.keep_masters", in.KeepMasters),
	)
	s.logger.Debug("profile computed",
		zap.String("locale", locale),
		zap.Int("life_path", profile.LifePath),
		zap.Bool("named", profile.NormalizedName != ""),
		zap.Duration("elapsed", time.Since(start)),
	)
	return view, nil
}

// Reduce reduces a non-negative number.
func (s *Service) Reduce(ctx context.Context, in ReduceInput) (ReductionView, error) {
	_, span := s.tracer.Start(ctx, "calculator.Reduce")
	defer span.End()
	span.SetAttributes(attribute.Int("numerology.input", in.Number))

	reduction, err := numerology.ReduceChecked(in.Number, numerology.ReduceOptions{KeepMasters: in.KeepMasters})
	if err != nil {
		return ReductionView{}, s.fail(span, "reduce", domainError(err, strconv.Itoa(in.Number)))
	}
	return NewReductionView(reduction), nil
}

// Describe returns the interpretation of a number in a category.
func (s *Service) Describe(ctx context.Context, in DescribeInput) (interpretation.Interpretation, error) {
	_, span := s.tracer.Start(ctx, "calculator.Describe")
	defer span.End()

	category, err := numerology.ParseCategory(in.Category)
	if err != nil {
		return interpretation.Interpretation{}, s.fail(span, "describe", domainError(err, in.Category))
	}
	if in.Number < 0 {
		return interpretation.Interpretation{}, s.fail(span, "describe", domainError(numerology.ErrNegativeNumber, strconv.Itoa(in.Number)))
	}
	out := s.describer.Describe(in.Number, category, in.Locale)
	span.SetAttributes(
		attribute.String("numerology.category", string(category)),
		attribute.Bool("numerology.fallback", out.Fallback),
	)
	return out, nil
}

// Locales lists the supported locales with their native names.
func (s *Service) Locales(context.Context) ([]LocaleView, error) {
	defaultLocale := platformi18n.DefaultLocale()
	out := make([]LocaleView, 0, len(platformi18n.SupportedLocales()))
	for _, locale := range platformi18n.SupportedLocales() {
		out = append(out, LocaleView{
			Tag:     locale,
			Name:    s.describer.Text(locale, "core.locale.name"),
			Default: locale == defaultLocale,
		})
	}
	return out, nil
}

// ErrorCatalog returns the error message catalog for locale from the
// catalogs currently served.
func (s *Service) ErrorCatalog(locale string) *errorsi18n.Catalog {
	resolved, _ := platformi18n.ResolveLocale(locale)
	return errorsi18n.FromBundle(s.catalogs.Bundle(), resolved)
}

// Text returns one catalog message for locale, or key when missing.
func (s *Service) Text(locale string, key string) string {
	resolved, _ := platformi18n.ResolveLocale(locale)
	return s.describer.Text(resolved, key)
}

func (s *Service) traceView(t numerology.Trace, locale string) TraceView {
	view := TraceView{
		Category:  string(t.Category),
		Title:     s.describer.Text(locale, interpretation.TitleKey(t.Category)),
		Terms:     emptyIfNil(t.Terms),
		Total:     t.Total,
		Steps:     emptyIfNil(t.Steps),
		Result:    t.Result,
		Defaulted: t.Defaulted,
	}
	if t.Defaulted {
		view.Note = s.describer.Text(locale, "core.trace.defaulted")
	}
	return view
}

func (s *Service) fail(span trace.Span, op string, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, string(apperrors.GetCode(err)))
	s.logger.Debug(op+" rejected", zap.String("code", string(apperrors.GetCode(err))), zap.Error(err))
	return err
}
