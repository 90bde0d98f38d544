package booking

import (
	"net/http"

	"lifeguard/infras/otel"
	"lifeguard/internal/domains/booking/model"
	"lifeguard/internal/domains/booking/model/dto"
	"lifeguard/internal/domains/booking/service"
	"lifeguard/shared"
	"lifeguard/shared/constant"
	gDto "lifeguard/shared/dto"
	"lifeguard/shared/validator"
	"lifeguard/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const queryNotify = "notify"

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBooking)
		routerGroup.Get("/", handler.GetBookings)
		routerGroup.Get("/unviewed/count", handler.CountUnviewed)
		routerGroup.Get("/order/{orderID}", handler.GetBookingByOrderID)
		routerGroup.Get("/{id}", handler.GetBookingByID)
		routerGroup.Patch("/{id}/viewed", handler.MarkViewed)
		routerGroup.Patch("/{id}/unviewed", handler.MarkUnviewed)
		routerGroup.Patch("/{id}/payment", handler.UpdatePayment)
		routerGroup.Patch("/{id}/confirm-payment", handler.ConfirmPayment)
		routerGroup.Patch("/{id}/status", handler.UpdateStatus)
		routerGroup.Delete("/{id}", handler.DeleteBooking)
	})
}

// CreateBooking handles the public booking intake.
// @Summary Create a booking
// @Description Quote and persist a new lifeguard booking. The booking starts as pending with no lifeguards assigned.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 201 {object} response.Data[dto.BookingResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [post]
func (handler *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	req := dto.CreateBookingRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	booking, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking created " + booking.OrderID)

	response.WithJSON(w, http.StatusCreated, booking)
}

// GetBookings lists bookings for the admin panel.
// @Summary List bookings
// @Tags Booking
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Param sort_by query string false "Sort column"
// @Param sort_dir query string false "ASC or DESC"
// @Param status query string false "Booking status"
// @Param payment_status query string false "Payment status"
// @Param service_type query string false "Service type"
// @Param viewed query boolean false "Viewed by an admin"
// @Param from query string false "First service day (YYYY-MM-DD)"
// @Param to query string false "Last service day (YYYY-MM-DD)"
// @Param search query string false "Customer name, email or order id"
// @Success 200 {object} response.Data[dto.GetBookingsResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Security BearerAuth
// @Router /v1/bookings [get]
func (handler *Handler) GetBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filter, err := dto.ParseListFilter(r.URL.Query())
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	bookings, err := handler.service.GetAll(ctx, queryParams, filter.ToFilterGroup())
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bookings")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, bookings)
}

// CountUnviewed returns the number of bookings no admin has opened yet.
// @Summary Count unviewed bookings
// @Tags Booking
// @Produce json
// @Success 200 {object} response.Data[dto.CountResponse]
// @Failure 500 {object} response.Error
// @Security BearerAuth
// @Router /v1/bookings/unviewed/count [get]
func (handler *Handler) CountUnviewed(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CountUnviewed")
	defer scope.End()

	count, err := handler.service.CountUnviewed(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to count unviewed bookings")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, dto.CountResponse{Count: count})
}

// GetBookingByID retrieves a booking by its ID.
// @Summary Get a booking
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Security BearerAuth
// @Router /v1/bookings/{id} [get]
func (handler *Handler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByID")
	defer scope.End()

	booking, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, booking)
}

// GetBookingByOrderID is the public lookup by order reference.
// @Summary Look up a booking by order id
// @Tags Booking
// @Produce json
// @Param orderID path string true "Order ID (LG-YYYYMMDD-XXXXXX)"
// @Success 200 {object} response.Data[dto.BookingResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/order/{orderID} [get]
func (handler *Handler) GetBookingByOrderID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByOrderID")
	defer scope.End()

	orderID := chi.URLParam(r, constant.RequestParamOrderID)
	if err := validator.ValidateVar(orderID, dto.OrderIDRule); err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	booking, err := handler.service.GetByOrderID(ctx, orderID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking by order ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, booking)
}

// MarkViewed flags a booking as seen by an admin.
// @Summary Mark a booking as viewed
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Security BearerAuth
// @Router /v1/bookings/{id}/viewed [patch]
func (handler *Handler) MarkViewed(w http.ResponseWriter, r *http.Request) {
	handler.apply(w, r, "MarkViewed", model.MarkViewed{})
}

// MarkUnviewed clears the viewed flag.
// @Summary Mark a booking as unviewed
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Security BearerAuth
// @Router /v1/bookings/{id}/unviewed [patch]
func (handler *Handler) MarkUnviewed(w http.ResponseWriter, r *http.Request) {
	handler.apply(w, r, "MarkUnviewed", model.MarkUnviewed{})
}

// UpdatePayment sets the payment status, optionally together with the booking status.
// @Summary Update payment status
// @Description Writes payment_status and, when given, status in a single update. With send_notification and a paid status the customer is emailed in the background.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.UpdatePaymentRequest true "Update Payment Request"
// @Success 200 {object} response.Data[dto.BookingResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Security BearerAuth
// @Router /v1/bookings/{id}/payment [patch]
func (handler *Handler) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	req := dto.UpdatePaymentRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	handler.apply(w, r, "UpdatePayment", req.ToCommand())
}

// ConfirmPayment marks a booking paid and confirmed in one write.
// @Summary Confirm payment
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Param notify query boolean false "Email the customer a payment confirmation"
// @Success 200 {object} response.Data[dto.BookingResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Security BearerAuth
// @Router /v1/bookings/{id}/confirm-payment [patch]
func (handler *Handler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	notify := shared.ConvertStringToBool(r.URL.Query().Get(queryNotify))

	handler.apply(w, r, "ConfirmPayment", model.ConfirmPayment(notify != nil && *notify))
}

// UpdateStatus moves a booking to any status.
// @Summary Update booking status
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.UpdateStatusRequest true "Update Status Request"
// @Success 200 {object} response.Data[dto.BookingResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Security BearerAuth
// @Router /v1/bookings/{id}/status [patch]
func (handler *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	req := dto.UpdateStatusRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	handler.apply(w, r, "UpdateStatus", req.ToCommand())
}

// DeleteBooking removes a booking permanently.
// @Summary Delete a booking
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Security BearerAuth
// @Router /v1/bookings/{id} [delete]
func (handler *Handler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteBooking")
	defer scope.End()

	booking, err := handler.service.Apply(ctx, chi.URLParam(r, constant.RequestParamID), model.Delete{})
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete booking")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Booking " + booking.OrderID + " deleted by user " + user)

	response.WithMessage(w, http.StatusOK, "Booking deleted successfully")
}

func (handler *Handler) apply(w http.ResponseWriter, r *http.Request, operation string, cmd model.Command) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+"."+operation)
	defer scope.End()

	booking, err := handler.service.Apply(ctx, chi.URLParam(r, constant.RequestParamID), cmd)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("command", cmd.Name()).Msg("failed to apply booking command")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Booking command " + cmd.Name() + " applied by user " + user)

	response.WithJSON(w, http.StatusOK, booking)
}
