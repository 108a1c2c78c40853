package itinerary

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

// GenerateItinerary handles POST /generate-itinerary.
func (h *HandlerImpl) GenerateItinerary(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ItineraryHandler").Start(r.Context(), "GenerateItinerary", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/v1/generate-itinerary"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "GenerateItinerary"))

	var req types.ItineraryRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Failed to decode request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	l.InfoContext(ctx, "Received trip data",
		slog.String("start_date", req.StartDate),
		slog.String("end_date", req.EndDate),
		slog.Int("destinations", len(req.SelectedDestinations)))

	resp, err := h.service.GenerateItineraries(ctx, req)
	if err != nil {
		l.ErrorContext(ctx, "Failed to generate itinerary", slog.Any("error", err))
		span.SetAttributes(semconv.HTTPResponseStatusCodeKey.Int(api.StatusFromError(err)))
		api.ServiceErrorResponse(w, r, err)
		return
	}

	span.SetAttributes(semconv.HTTPResponseStatusCodeKey.Int(http.StatusOK))
	api.WriteJSONResponse(w, r, http.StatusOK, resp)
}
