package staff

import (
	"net/http"

	"lifeguard/infras/otel"
	"lifeguard/internal/domains/staff/model"
	"lifeguard/internal/domains/staff/model/dto"
	"lifeguard/internal/domains/staff/service"
	"lifeguard/shared"
	"lifeguard/shared/constant"
	gDto "lifeguard/shared/dto"
	"lifeguard/shared/validator"
	"lifeguard/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Staff
	otel    otel.Otel
}

func New(service service.Staff, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/staff", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateStaff)
		routerGroup.Get("/", handler.GetStaff)
		routerGroup.Get("/active", handler.GetActiveStaff)
		routerGroup.Get("/{id}", handler.GetStaffByID)
		routerGroup.Get("/{id}/assignments/count", handler.CountActiveAssignments)
		routerGroup.Patch("/{id}", handler.UpdateStaff)
		routerGroup.Delete("/{id}", handler.DeleteStaff)
	})
}

// CreateStaff registers a lifeguard.
// @Summary Create a lifeguard
// @Tags Staff
// @Accept json
// @Produce json
// @Param request body dto.CreateStaffRequest true "Create Staff Request"
// @Success 201 {object} response.Data[dto.StaffResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Security BearerAuth
// @Router /v1/staff [post]
func (handler *Handler) CreateStaff(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateStaff")
	defer scope.End()

	req := dto.CreateStaffRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	staff, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create staff")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, staff)
}

// GetStaff lists lifeguards.
// @Summary List lifeguards
// @Tags Staff
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Param is_active query boolean false "Filter by active flag"
// @Param search query string false "Name or contact number"
// @Success 200 {object} response.Data[dto.GetStaffResponse]
// @Failure 500 {object} response.Error
// @Security BearerAuth
// @Router /v1/staff [get]
func (handler *Handler) GetStaff(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetStaff")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filter := dto.ListFilter{
		Active: shared.ConvertStringToBool(r.URL.Query().Get(model.FieldIsActive)),
		Search: r.URL.Query().Get(constant.RequestParamSearch),
	}

	staff, err := handler.service.GetAll(ctx, queryParams, filter.ToFilterGroup())
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get staff")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, staff)
}

// GetActiveStaff lists every active lifeguard by name.
// @Summary List active lifeguards
// @Tags Staff
// @Produce json
// @Success 200 {object} response.Data[[]dto.StaffResponse]
// @Failure 500 {object} response.Error
// @Security BearerAuth
// @Router /v1/staff/active [get]
func (handler *Handler) GetActiveStaff(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetActiveStaff")
	defer scope.End()

	staff, err := handler.service.ListActive(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get active staff")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, staff)
}

// GetStaffByID retrieves a lifeguard.
// @Summary Get a lifeguard
// @Tags Staff
// @Produce json
// @Param id path string true "Staff ID"
// @Success 200 {object} response.Data[dto.StaffResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Security BearerAuth
// @Router /v1/staff/{id} [get]
func (handler *Handler) GetStaffByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetStaffByID")
	defer scope.End()

	staff, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get staff by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, staff)
}

// CountActiveAssignments reports how many pending or confirmed bookings hold the lifeguard.
// @Summary Count active assignments
// @Tags Staff
// @Produce json
// @Param id path string true "Staff ID"
// @Success 200 {object} response.Data[map[string]int]
// @Failure 500 {object} response.Error
// @Security BearerAuth
// @Router /v1/staff/{id}/assignments/count [get]
func (handler *Handler) CountActiveAssignments(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CountActiveAssignments")
	defer scope.End()

	count, err := handler.service.CountActiveAssignments(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to count active assignments")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, map[string]int{"count": count})
}

// UpdateStaff partially updates a lifeguard.
// @Summary Update a lifeguard
// @Tags Staff
// @Accept json
// @Produce json
// @Param id path string true "Staff ID"
// @Param request body dto.UpdateStaffRequest true "Update Staff Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Security BearerAuth
// @Router /v1/staff/{id} [patch]
func (handler *Handler) UpdateStaff(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateStaff")
	defer scope.End()

	req := dto.UpdateStaffRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update staff")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Lifeguard updated successfully")
}

// DeleteStaff removes a lifeguard that holds no pending or confirmed booking.
// @Summary Delete a lifeguard
// @Tags Staff
// @Produce json
// @Param id path string true "Staff ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Security BearerAuth
// @Router /v1/staff/{id} [delete]
func (handler *Handler) DeleteStaff(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteStaff")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete staff")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Lifeguard deleted by user " + user)

	response.WithMessage(w, http.StatusOK, "Lifeguard deleted successfully")
}
