// Package httpapi serves the calculator as a JSON API over HTTP.
package httpapi

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	apperrors "github.com/louisbranch/mysticnumbers/internal/platform/errors"
	platformi18n "github.com/louisbranch/mysticnumbers/internal/platform/i18n"
	"github.com/louisbranch/mysticnumbers/internal/platform/logging"
	"github.com/louisbranch/mysticnumbers/internal/services/calculator/domain"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// LangParam is the query parameter used to select a language.
const LangParam = "lang"

// Options tunes the HTTP surface.
type Options struct {
	// AllowedOrigins lists CORS origins; empty allows any origin.
	AllowedOrigins []string
	// RateLimit is the sustained requests per second per client; zero disables limiting.
	RateLimit float64
	// RateBurst is the bucket size per client.
	RateBurst int
	// RevealDelay is the pause before a websocket reveal when the client
	// does not pick one.
	RevealDelay time.Duration
	// TrustedProxies lists proxy addresses or CIDRs whose forwarding headers
	// name the client. Empty keys rate limits on the connection peer.
	TrustedProxies []string
	Logger         *zap.Logger
}

// API holds the HTTP handlers.
type API struct {
	svc                *domain.Service
	logger             *zap.Logger
	defaultRevealDelay time.Duration
}

// ProfileRequest is the body of POST /v1/profile.
type ProfileRequest struct {
	BirthDate   string `json:"birth_date"`
	Name        string `json:"name"`
	Locale      string `json:"locale"`
	KeepMasters bool   `json:"keep_masters"`
}

// ErrorBody is the JSON error envelope.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail describes one failed request.
type ErrorDetail struct {
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	Locale    string            `json:"locale"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
}

// NewHandler returns the gin engine serving the calculator API.
func NewHandler(svc *domain.Service, opts Options) http.Handler {
	gin.SetMode(gin.ReleaseMode)
	if svc == nil {
		svc = domain.NewService(nil, opts.Logger)
	}
	a := &API{svc: svc, logger: logging.OrNop(opts.Logger), defaultRevealDelay: opts.RevealDelay}

	router := gin.New()
	if err := router.SetTrustedProxies(opts.TrustedProxies); err != nil {
		a.logger.Warn("ignoring trusted proxies", zap.Strings("proxies", opts.TrustedProxies), zap.Error(err))
		_ = router.SetTrustedProxies(nil)
	}
	router.Use(gin.Recovery(), requestID(), accessLog(a.logger), cors.New(corsConfig(opts.AllowedOrigins)))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/v1")
	if opts.RateLimit > 0 {
		v1.Use(a.rateLimit(newClientLimiter(rate.Limit(opts.RateLimit), opts.RateBurst)))
	}
	v1.POST("/profile", a.profile)
	v1.GET("/reduce", a.reduce)
	v1.GET("/interpretations/:category/:number", a.describe)
	v1.GET("/locales", a.locales)
	v1.GET("/reveal", gin.WrapH(a.revealHandler()))
	return router
}

func corsConfig(origins []string) cors.Config {
	config := cors.DefaultConfig()
	if len(origins) == 0 {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = origins
	}
	config.AllowHeaders = append(config.AllowHeaders, "Accept-Language", RequestIDHeader)
	config.ExposeHeaders = []string{RequestIDHeader}
	return config
}

func (a *API) profile(c *gin.Context) {
	var body ProfileRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		a.writeError(c, domain.InvalidRequest(err))
		return
	}
	if lang := strings.TrimSpace(c.Query(LangParam)); lang != "" {
		body.Locale = lang
	}
	if strings.TrimSpace(body.Locale) == "" {
		body.Locale = c.GetHeader("Accept-Language")
	}
	locale, _ := platformi18n.ResolveLocale(body.Locale)

	view, err := a.svc.ComputeProfile(c.Request.Context(), domain.ProfileInput{
		BirthDate:   body.BirthDate,
		Name:        body.Name,
		Locale:      body.Locale,
		KeepMasters: body.KeepMasters,
	})
	if err != nil {
		a.writeErrorIn(c, err, locale)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (a *API) reduce(c *gin.Context) {
	n, err := domain.ParseNumber(c.Query("n"))
	if err != nil {
		a.writeError(c, err)
		return
	}
	keepMasters, _ := strconv.ParseBool(c.DefaultQuery("keep_masters", "false"))
	view, err := a.svc.Reduce(c.Request.Context(), domain.ReduceInput{Number: n, KeepMasters: keepMasters})
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (a *API) describe(c *gin.Context) {
	n, err := domain.ParseNumber(c.Param("number"))
	if err != nil {
		a.writeError(c, err)
		return
	}
	view, err := a.svc.Describe(c.Request.Context(), domain.DescribeInput{
		Category: c.Param("category"),
		Number:   n,
		Locale:   requestLocale(c),
	})
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (a *API) locales(c *gin.Context) {
	views, err := a.svc.Locales(c.Request.Context())
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"locales": views})
}

// writeError renders err as a JSON error localized for the request.
func (a *API) writeError(c *gin.Context, err error) {
	a.writeErrorIn(c, err, requestLocale(c))
}

func (a *API) writeErrorIn(c *gin.Context, err error, locale string) {
	appErr := apperrors.AsError(err)
	catalog := a.svc.ErrorCatalog(locale)
	status := appErr.Code.HTTPStatus()
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(status, ErrorBody{Error: ErrorDetail{
		Code:      string(appErr.Code),
		Message:   apperrors.UserMessage(appErr, catalog),
		Locale:    catalog.Locale(),
		Metadata:  appErr.Metadata,
		RequestID: c.GetString(requestIDKey),
	}})
}

// requestLocale resolves the locale from the lang query parameter, then
// Accept-Language.
func requestLocale(c *gin.Context) string {
	if lang := strings.TrimSpace(c.Query(LangParam)); lang != "" {
		if locale, ok := platformi18n.ResolveLocale(lang); ok {
			return locale
		}
	}
	locale, _ := platformi18n.ResolveLocale(c.GetHeader("Accept-Language"))
	return locale
}
