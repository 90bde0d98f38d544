package assignment

import (
	"net/http"

	"lifeguard/infras/otel"
	"lifeguard/internal/domains/assignment/model/dto"
	"lifeguard/internal/domains/assignment/service"
	bookingDto "lifeguard/internal/domains/booking/model/dto"
	staffDto "lifeguard/internal/domains/staff/model/dto"
	"lifeguard/shared/constant"
	"lifeguard/shared/validator"
	"lifeguard/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	queryStart   = "start"
	queryEnd     = "end"
	queryExclude = "exclude"
)

type Handler struct {
	service service.Assignment
	otel    otel.Otel
}

func New(service service.Assignment, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

// Router registers full paths because /bookings and /staff are owned by their own handlers.
func (handler *Handler) Router(router chi.Router) {
	router.Get("/bookings/{id}/available-staff", handler.GetAvailableStaff)
	router.Put("/bookings/{id}/lifeguards", handler.AssignLifeguards)
	router.Delete("/bookings/{id}/lifeguards/{staffID}", handler.UnassignLifeguard)
	router.Get("/staff/available", handler.GetAvailableForWindow)
}

// GetAvailableStaff lists lifeguards that can be put on a booking.
// @Summary Available lifeguards for a booking
// @Description Active lifeguards not committed to an overlapping confirmed booking, plus whoever is already assigned.
// @Tags Assignment
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[[]staffDto.StaffResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Security BearerAuth
// @Router /v1/bookings/{id}/available-staff [get]
func (handler *Handler) GetAvailableStaff(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAvailableStaff")
	defer scope.End()

	var staff []staffDto.StaffResponse

	staff, err := handler.service.AvailableStaff(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get available staff")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, staff)
}

// GetAvailableForWindow previews availability for an arbitrary interval.
// @Summary Available lifeguards for a time window
// @Tags Assignment
// @Produce json
// @Param start query string true "Window start (RFC 3339 or YYYY-MM-DDTHH:MM)"
// @Param end query string true "Window end (RFC 3339 or YYYY-MM-DDTHH:MM)"
// @Param exclude query string false "Booking ID to ignore"
// @Success 200 {object} response.Data[[]staffDto.StaffResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Security BearerAuth
// @Router /v1/staff/available [get]
func (handler *Handler) GetAvailableForWindow(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAvailableForWindow")
	defer scope.End()

	query := r.URL.Query()

	window, err := dto.ParseWindowQuery(query.Get(queryStart), query.Get(queryEnd), query.Get(queryExclude))
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	staff, err := handler.service.AvailableForWindow(ctx, window)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get available staff for window")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, staff)
}

// AssignLifeguards replaces the lifeguards on a booking.
// @Summary Assign lifeguards
// @Description Full replacement of the assignment. An empty list clears it.
// @Tags Assignment
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.AssignRequest true "Assign Request"
// @Success 200 {object} response.Data[bookingDto.BookingResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Security BearerAuth
// @Router /v1/bookings/{id}/lifeguards [put]
func (handler *Handler) AssignLifeguards(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AssignLifeguards")
	defer scope.End()

	req := dto.AssignRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	var booking bookingDto.BookingResponse

	booking, err := handler.service.Assign(ctx, chi.URLParam(r, constant.RequestParamID), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to assign lifeguards")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Lifeguards assigned to " + booking.OrderID + " by user " + user)

	response.WithJSON(w, http.StatusOK, booking)
}

// UnassignLifeguard takes one lifeguard off a booking.
// @Summary Remove a lifeguard from a booking
// @Tags Assignment
// @Produce json
// @Param id path string true "Booking ID"
// @Param staffID path string true "Staff ID"
// @Success 200 {object} response.Data[bookingDto.BookingResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Security BearerAuth
// @Router /v1/bookings/{id}/lifeguards/{staffID} [delete]
func (handler *Handler) UnassignLifeguard(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UnassignLifeguard")
	defer scope.End()

	booking, err := handler.service.Unassign(ctx, chi.URLParam(r, constant.RequestParamID), chi.URLParam(r, constant.RequestParamStaffID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to unassign lifeguard")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, booking)
}
