package httpapi

import (
	"context"
	"io"
	"time"

	apperrors "github.com/louisbranch/mysticnumbers/internal/platform/errors"
	platformi18n "github.com/louisbranch/mysticnumbers/internal/platform/i18n"
	"github.com/louisbranch/mysticnumbers/internal/services/calculator/domain"
	"go.uber.org/zap"
	"golang.org/x/net/websocket"
)

// Reveal frame types.
const (
	FrameRevealStart       = "reveal.start"
	FrameRevealCalculating = "reveal.calculating"
	FrameRevealNumber      = "reveal.number"
	FrameRevealDone        = "reveal.done"
	FrameError             = "error"
)

// MaxRevealDelay caps the pause a client may request before numbers are revealed.
const MaxRevealDelay = 5 * time.Second

// RevealFrame is one websocket message in either direction.
type RevealFrame struct {
	Type      string `json:"type"`
	RequestID string `json:"request_id,omitempty"`
	Payload   any    `json:"payload,omitempty"`
}

// RevealStart is the payload of the reveal.start frame.
type RevealStart struct {
	ProfileRequest
	DelayMS *int `json:"delay_ms,omitempty"`
}

type revealStartFrame struct {
	Type      string      `json:"type"`
	RequestID string      `json:"request_id"`
	Payload   RevealStart `json:"payload"`
}

// RevealNumber is the payload of one reveal.number frame.
type RevealNumber struct {
	Category string           `json:"category"`
	Value    int              `json:"value"`
	Trace    domain.TraceView `json:"trace"`
	Title    string           `json:"title"`
	Text     string           `json:"text"`
	Fallback bool             `json:"fallback"`
}

func (a *API) revealHandler() websocket.Handler {
	return func(conn *websocket.Conn) {
		defer func() {
			_ = conn.Close()
		}()
		a.handleReveal(conn)
	}
}

func (a *API) handleReveal(conn *websocket.Conn) {
	ctx, cancel := context.WithCancel(conn.Request().Context())
	defer cancel()

	var start revealStartFrame
	if err := websocket.JSON.Receive(conn, &start); err != nil {
		a.sendRevealError(conn, "", domain.InvalidRequest(err), platformi18n.DefaultLocale())
		return
	}
	if start.Type != FrameRevealStart {
		a.sendRevealError(conn, start.RequestID, apperrors.Newf(apperrors.CodeRequestInvalid, "unsupported frame type %q", start.Type), start.Payload.Locale)
		return
	}

	// Any further read ends when the client goes away.
	go func() {
		_, _ = io.Copy(io.Discard, conn)
		cancel()
	}()

	in := start.Payload
	view, err := a.svc.ComputeProfile(ctx, domain.ProfileInput{
		BirthDate:   in.BirthDate,
		Name:        in.Name,
		Locale:      in.Locale,
		KeepMasters: in.KeepMasters,
	})
	if err != nil {
		a.sendRevealError(conn, start.RequestID, err, in.Locale)
		return
	}

	if !a.sendFrame(conn, RevealFrame{
		Type:      FrameRevealCalculating,
		RequestID: start.RequestID,
		Payload:   map[string]string{"message": a.svc.Text(view.Locale, "core.reveal.calculating")},
	}) {
		return
	}

	timer := time.NewTimer(a.revealDelay(in.DelayMS))
	defer timer.Stop()
	select {
	case <-ctx.Done():
		a.logger.Debug("reveal cancelled", zap.String("request_id", start.RequestID))
		return
	case <-timer.C:
	}

	for i, trace := range view.Traces {
		number := RevealNumber{
			Category: trace.Category,
			Value:    trace.Result,
			Trace:    trace,
			Title:    trace.Title,
		}
		if i < len(view.Interpretations) {
			number.Text = view.Interpretations[i].Text
			number.Fallback = view.Interpretations[i].Fallback
		}
		if !a.sendFrame(conn, RevealFrame{Type: FrameRevealNumber, RequestID: start.RequestID, Payload: number}) {
			return
		}
	}
	a.sendFrame(conn, RevealFrame{Type: FrameRevealDone, RequestID: start.RequestID, Payload: view})
}

func (a *API) revealDelay(requested *int) time.Duration {
	delay := a.defaultRevealDelay
	if requested != nil {
		delay = time.Duration(*requested) * time.Millisecond
	}
	return min(max(delay, 0), MaxRevealDelay)
}

func (a *API) sendFrame(conn *websocket.Conn, frame RevealFrame) bool {
	if err := websocket.JSON.Send(conn, frame); err != nil {
		a.logger.Debug("send reveal frame", zap.String("type", frame.Type), zap.Error(err))
		return false
	}
	return true
}

func (a *API) sendRevealError(conn *websocket.Conn, requestID string, err error, locale string) {
	resolved, _ := platformi18n.ResolveLocale(locale)
	appErr := apperrors.AsError(err)
	catalog := a.svc.ErrorCatalog(resolved)
	a.sendFrame(conn, RevealFrame{
		Type:      FrameError,
		RequestID: requestID,
		Payload: ErrorDetail{
			Code:      string(appErr.Code),
			Message:   apperrors.UserMessage(appErr, catalog),
			Locale:    catalog.Locale(),
			Metadata:  appErr.Metadata,
			RequestID: requestID,
		},
	})
}
