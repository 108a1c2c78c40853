package suggestions

import (
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-trip-planner/internal/api"
	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

type HandlerImpl struct {
	service Service
	logger  *slog.Logger
}

func NewHandlerImpl(service Service, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		service: service,
		logger:  logger,
	}
}

// SuggestLocations handles POST /suggest-locations.
func (h *HandlerImpl) SuggestLocations(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("SuggestionHandler").Start(r.Context(), "SuggestLocations", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/v1/suggest-locations"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "SuggestLocations"))

	var prefs types.TripPreferences
	if err := api.DecodeJSONBody(w, r, &prefs); err != nil {
		l.WarnContext(ctx, "Failed to decode request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.service.SuggestLocations(ctx, prefs)
	if err != nil {
		l.ErrorContext(ctx, "Failed to suggest locations", slog.Any("error", err))
		span.SetAttributes(semconv.HTTPResponseStatusCodeKey.Int(api.StatusFromError(err)))
		api.ServiceErrorResponse(w, r, err)
		return
	}

	span.SetAttributes(semconv.HTTPResponseStatusCodeKey.Int(http.StatusOK))
	api.WriteJSONResponse(w, r, http.StatusOK, resp)
}
