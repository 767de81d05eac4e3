package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/hacktivities2025-ctrl/zirv--v2/internal/activity"
	"github.com/hacktivities2025-ctrl/zirv--v2/internal/domain"
	"github.com/hacktivities2025-ctrl/zirv--v2/internal/gateway"
	"github.com/hacktivities2025-ctrl/zirv--v2/internal/session"
)

// GatewayHandler serves the AI gateway functions.
type GatewayHandler struct {
	svc gateway.Service
	rec *activity.Recorder
}

// NewGatewayHandler creates a gateway handler. rec may be nil.
func NewGatewayHandler(svc gateway.Service, rec *activity.Recorder) *GatewayHandler {
	return &GatewayHandler{svc: svc, rec: rec}
}

// RegisterRoutes registers the gateway and language routes.
func (h *GatewayHandler) RegisterRoutes(r chi.Router) {
	r.Post("/api/translate", serveGateway(h, domain.OpTranslate, h.svc.Translate,
		func(req gateway.TranslationRequest) string { return req.Text }))
	r.Post("/api/detect-language", serveGateway(h, domain.OpDetectLanguage, h.svc.DetectLanguage,
		func(req gateway.LanguageDetectionRequest) string { return req.Text }))
	r.Post("/api/speech", serveGateway(h, domain.OpSpeech, h.svc.SynthesizeSpeech,
		func(req gateway.SpeechRequest) string { return req.Text }))
	r.Post("/api/context", serveGateway(h, domain.OpContext, h.svc.DetectContextualInfo,
		func(req gateway.ContextRequest) string { return req.Text }))
	r.Get("/api/languages", h.Languages)
}

// Languages lists the supported translation targets.
func (h *GatewayHandler) Languages(w http.ResponseWriter, _ *http.Request) {
	JSON(w, http.StatusOK, map[string]any{
		"languages": gateway.Languages,
		"default":   gateway.DefaultTargetLanguage,
	})
}

func serveGateway[Req, Res any](
	h *GatewayHandler,
	op domain.Operation,
	call func(context.Context, Req) (*Res, error),
	text func(Req) string,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req Req
		if err := decodeJSON(w, r, &req); err != nil {
			writeBodyError(w, err)
			return
		}

		start := time.Now()
		res, err := call(r.Context(), req)
		role := session.FromContext(r.Context()).RoleValue()
		h.rec.Record(r.Context(), op, role, utf8.RuneCountInString(text(req)), start, err)

		if err != nil {
			writeGatewayError(w, op, err)
			return
		}
		JSON(w, http.StatusOK, res)
	}
}

func writeGatewayError(w http.ResponseWriter, op domain.Operation, err error) {
	var invalid *gateway.ValidationError
	var up *gateway.UpstreamError
	switch {
	case errors.As(err, &invalid):
		Error(w, http.StatusBadRequest, invalid.Error())
	case errors.Is(err, gateway.ErrNoMedia):
		slog.Warn("Gateway returned no media", "op", op)
		Error(w, http.StatusBadGateway, gateway.ErrNoMedia.Error())
	case errors.As(err, &up):
		slog.Error("Gateway upstream call failed", "op", op, "error", err)
		Error(w, http.StatusBadGateway, "model request failed")
	default:
		slog.Error("Gateway call failed", "op", op, "error", err)
		Error(w, http.StatusInternalServerError, "internal error")
	}
}
