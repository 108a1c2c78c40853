package hotels

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

// SearchHotels handles POST /search-hotels.
func (h *HandlerImpl) SearchHotels(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("HotelHandler").Start(r.Context(), "SearchHotels", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/v1/search-hotels"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "SearchHotels"))
	l.DebugContext(ctx, "Search hotels handler invoked")

	var req types.HotelSearchRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Failed to decode request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	results, err := h.service.SearchHotels(ctx, req)
	if err != nil {
		l.WarnContext(ctx, "Hotel search rejected", slog.Any("error", err))
		api.ServiceErrorResponse(w, r, err)
		return
	}

	span.SetAttributes(semconv.HTTPResponseStatusCodeKey.Int(http.StatusOK))
	api.WriteJSONResponse(w, r, http.StatusOK, types.HotelSearchResponse{
		Status:  "success",
		Results: results,
	})
}
