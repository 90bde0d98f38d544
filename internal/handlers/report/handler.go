package report

import (
	"net/http"

	"lifeguard/infras/otel"
	"lifeguard/internal/domains/report/model/dto"
	"lifeguard/internal/domains/report/service"
	"lifeguard/shared/constant"
	"lifeguard/shared/validator"
	"lifeguard/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Report
	otel    otel.Otel
}

func New(service service.Report, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/reports", func(routerGroup chi.Router) {
		routerGroup.Get("/revenue", handler.GetRevenue)
		routerGroup.Post("/revenue/export", handler.ExportRevenue)
	})
}

// GetRevenue aggregates bookings by service day.
// @Summary Revenue report
// @Tags Report
// @Produce json
// @Param from query string true "First service day (YYYY-MM-DD)"
// @Param to query string true "Last service day (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.RevenueResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Security BearerAuth
// @Router /v1/reports/revenue [get]
func (handler *Handler) GetRevenue(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRevenue")
	defer scope.End()

	req := dto.RangeRequest{
		From: r.URL.Query().Get(constant.RequestParamFrom),
		To:   r.URL.Query().Get(constant.RequestParamTo),
	}

	revenue, err := handler.service.Revenue(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to build revenue report")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, revenue)
}

// ExportRevenue writes the bookings of a range to CSV in object storage.
// @Summary Export bookings as CSV
// @Tags Report
// @Accept json
// @Produce json
// @Param request body dto.RangeRequest true "Range Request"
// @Success 201 {object} response.Data[dto.ExportResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Security BearerAuth
// @Router /v1/reports/revenue/export [post]
func (handler *Handler) ExportRevenue(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ExportRevenue")
	defer scope.End()

	req := dto.RangeRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	export, err := handler.service.ExportCSV(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to export bookings")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, export)
}
