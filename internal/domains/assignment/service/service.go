package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"lifeguard/config"
	"lifeguard/infras/kafka"
	"lifeguard/infras/otel"
	"lifeguard/internal/domains/assignment/model"
	"lifeguard/internal/domains/assignment/model/dto"
	bookingModel "lifeguard/internal/domains/booking/model"
	bookingDto "lifeguard/internal/domains/booking/model/dto"
	bookingRepo "lifeguard/internal/domains/booking/repository"
	bookingService "lifeguard/internal/domains/booking/service"
	staffModel "lifeguard/internal/domains/staff/model"
	staffDto "lifeguard/internal/domains/staff/model/dto"
	staffRepo "lifeguard/internal/domains/staff/repository"
	"lifeguard/shared"
	"lifeguard/shared/cache"
	"lifeguard/shared/constant"
	gDto "lifeguard/shared/dto"
	"lifeguard/shared/failure"
	"lifeguard/shared/timezone"
	"lifeguard/shared/validator"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

type Assignment interface {
	AvailableStaff(ctx context.Context, bookingID string) ([]staffDto.StaffResponse, error)
	AvailableForWindow(ctx context.Context, query dto.WindowQuery) ([]staffDto.StaffResponse, error)
	Assign(ctx context.Context, bookingID string, req dto.AssignRequest) (bookingDto.BookingResponse, error)
	Unassign(ctx context.Context, bookingID, staffID string) (bookingDto.BookingResponse, error)
}

type serviceImpl struct {
	bookingRepo bookingRepo.Booking
	staffRepo   staffRepo.Staff
	kafka       kafka.Client
	clock       timezone.Clock
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(
	bookingRepo bookingRepo.Booking,
	staffRepo staffRepo.Staff,
	kafka kafka.Client,
	clock timezone.Clock,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Assignment {
	return &serviceImpl{
		bookingRepo: bookingRepo,
		staffRepo:   staffRepo,
		kafka:       kafka,
		clock:       clock,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

// AvailableStaff lists active staff free for the booking's window. The
// booking's own assignees are always listed so they can be re-confirmed.
func (s *serviceImpl) AvailableStaff(ctx context.Context, bookingID string) (res []staffDto.StaffResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".assignment.AvailableStaff")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.booking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	window := model.WindowOf(booking)

	candidates, err := s.activeStaff(ctx)
	if err != nil {
		return nil, err
	}

	busy, err := s.busy(ctx, window, booking.ID)
	if err != nil {
		return nil, err
	}

	available := make([]staffModel.Staff, 0, len(candidates))
	listed := map[string]struct{}{}

	for _, staff := range candidates {
		if _, taken := busy[staff.ID]; taken && !booking.IsAssigned(staff.ID) {
			continue
		}

		available = append(available, staff)
		listed[staff.ID] = struct{}{}
	}

	missing := []string{}

	for _, staffID := range booking.LifeguardsAssigned {
		if _, ok := listed[staffID]; !ok {
			missing = append(missing, staffID)
		}
	}

	if len(missing) > 0 {
		assignees, err := s.staffRepo.GetAll(ctx, gDto.QueryParams{}, staffDto.ByIDs(missing))
		if err != nil {
			log.Error().Err(err).Msg("failed to get assigned staff")

			return nil, fmt.Errorf("failed to get assigned staff: %w", err)
		}

		available = append(available, assignees...)
	}

	slices.SortStableFunc(available, func(a, b staffModel.Staff) int {
		return strings.Compare(a.Name, b.Name)
	})

	return staffDto.FromModels(available), nil
}

func (s *serviceImpl) AvailableForWindow(ctx context.Context, query dto.WindowQuery) (res []staffDto.StaffResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".assignment.AvailableForWindow")
	defer scope.End()
	defer scope.TraceIfError(err)

	window := query.Window()
	if !window.Valid() {
		return nil, failure.BadRequestFromString("start must not be after end") //nolint:wrapcheck
	}

	candidates, err := s.activeStaff(ctx)
	if err != nil {
		return nil, err
	}

	busy, err := s.busy(ctx, window, query.ExcludeBookingID)
	if err != nil {
		return nil, err
	}

	available := make([]staffModel.Staff, 0, len(candidates))

	for _, staff := range candidates {
		if _, taken := busy[staff.ID]; !taken {
			available = append(available, staff)
		}
	}

	return staffDto.FromModels(available), nil
}

// Assign replaces the booking's assignees with req.StaffIDs. Concurrent
// calls are not merged: the last write wins.
func (s *serviceImpl) Assign(ctx context.Context, bookingID string, req dto.AssignRequest) (res bookingDto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".assignment.Assign")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err //nolint:wrapcheck
	}

	ids := model.Dedupe(req.StaffIDs)

	booking, err := s.booking(ctx, bookingID)
	if err != nil {
		return res, err
	}

	if len(ids) > booking.Lifeguards {
		return res, failure.Validationf( //nolint:wrapcheck
			"Too many lifeguards: booking %s needs %d, %d selected (%d too many)",
			booking.OrderID, booking.Lifeguards, len(ids), len(ids)-booking.Lifeguards,
		)
	}

	if err = s.checkStaff(ctx, ids); err != nil {
		return res, err
	}

	if s.cfg.Assignment.RevalidateOverlap && len(ids) > 0 {
		if err = s.checkOverlap(ctx, booking, ids); err != nil {
			return res, err
		}
	}

	booking.LifeguardsAssigned = pq.StringArray(ids)

	if err = s.write(ctx, &booking); err != nil {
		return res, err
	}

	s.afterWrite(ctx, bookingModel.EventLifeguardsAssigned, booking)

	res.FromModel(booking)

	return res, nil
}

// Unassign removes staffID from the booking. Removing someone who is not
// assigned still succeeds.
func (s *serviceImpl) Unassign(ctx context.Context, bookingID, staffID string) (res bookingDto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".assignment.Unassign")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.booking(ctx, bookingID)
	if err != nil {
		return res, err
	}

	remaining := slices.DeleteFunc(slices.Clone([]string(booking.LifeguardsAssigned)), func(id string) bool {
		return id == staffID
	})
	booking.LifeguardsAssigned = pq.StringArray(remaining)

	if err = s.write(ctx, &booking); err != nil {
		return res, err
	}

	s.afterWrite(ctx, bookingModel.EventLifeguardRemoved, booking)

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) booking(ctx context.Context, id string) (bookingModel.Booking, error) {
	booking, err := s.bookingRepo.Get(ctx, shared.FilterByID(id, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found") //nolint:wrapcheck
	}

	return booking, nil
}

func (s *serviceImpl) activeStaff(ctx context.Context) ([]staffModel.Staff, error) {
	active := true
	params := gDto.QueryParams{SortBy: staffModel.FieldName, SortDir: gDto.SortDirAsc}

	staff, err := s.staffRepo.GetAll(ctx, params, staffDto.ListFilter{Active: &active}.ToFilterGroup())
	if err != nil {
		log.Error().Err(err).Msg("failed to get active staff")

		return nil, fmt.Errorf("failed to get active staff: %w", err)
	}

	return staff, nil
}

func (s *serviceImpl) busy(ctx context.Context, window model.Window, excludeID string) (map[string][]string, error) {
	bookings, err := s.bookingRepo.GetAll(
		ctx,
		gDto.QueryParams{},
		bookingDto.LiveOverlapFilter(window.Start, window.End),
		bookingModel.FieldID, bookingModel.FieldOrderID, bookingModel.FieldStatus,
		bookingModel.FieldStartDatetime, bookingModel.FieldEndDatetime, bookingModel.FieldLifeguardsAssigned,
	)
	if err != nil {
		log.Error().Err(err).Msg("failed to get overlapping bookings")

		return nil, fmt.Errorf("failed to get overlapping bookings: %w", err)
	}

	return model.Busy(window, bookings, excludeID), nil
}

func (s *serviceImpl) checkStaff(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	staff, err := s.staffRepo.GetAll(ctx, gDto.QueryParams{}, staffDto.ByIDs(ids))
	if err != nil {
		log.Error().Err(err).Msg("failed to get staff")

		return fmt.Errorf("failed to get staff: %w", err)
	}

	found := make(map[string]staffModel.Staff, len(staff))
	for _, member := range staff {
		found[member.ID] = member
	}

	var unknown, inactive []string

	for _, id := range ids {
		member, ok := found[id]

		switch {
		case !ok:
			unknown = append(unknown, id)
		case !member.IsActive:
			inactive = append(inactive, member.Name)
		}
	}

	if len(unknown) > 0 {
		return failure.Validationf("Unknown lifeguard(s): %s", strings.Join(unknown, ", ")) //nolint:wrapcheck
	}

	if len(inactive) > 0 {
		return failure.Validationf("Inactive lifeguard(s) cannot be assigned: %s", strings.Join(inactive, ", ")) //nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) checkOverlap(ctx context.Context, booking bookingModel.Booking, ids []string) error {
	busy, err := s.busy(ctx, model.WindowOf(booking), booking.ID)
	if err != nil {
		return err
	}

	conflicts := []string{}

	for _, id := range ids {
		if orders, ok := busy[id]; ok {
			conflicts = append(conflicts, fmt.Sprintf("%s (%s)", id, strings.Join(orders, ", ")))
		}
	}

	if len(conflicts) > 0 {
		return failure.Conflictf("Lifeguard(s) already assigned to an overlapping booking: %s", strings.Join(conflicts, "; ")) //nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) write(ctx context.Context, booking *bookingModel.Booking) error {
	now := s.clock.Now()
	user := shared.UserFromContext(ctx)

	fields := map[string]any{
		bookingModel.FieldLifeguardsAssigned: booking.LifeguardsAssigned,
		constant.FieldUpdatedAt:              now,
		constant.FieldUpdatedBy:              user,
	}

	if err := s.bookingRepo.Update(ctx, fields, shared.FilterByID(booking.ID, bookingModel.FieldID, bookingModel.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update booking lifeguards")

		return fmt.Errorf("failed to update booking lifeguards: %w", err)
	}

	booking.UpdatedAt = now
	booking.UpdatedBy = user

	return nil
}

func (s *serviceImpl) afterWrite(ctx context.Context, eventType string, booking bookingModel.Booking) {
	event := bookingModel.NewEvent(eventType, booking, shared.UserFromContext(ctx), booking.UpdatedAt)

	bookingService.Invalidate(context.WithoutCancel(ctx), s.cache, booking)

	go bookingService.PublishEvent(context.WithoutCancel(ctx), s.kafka, s.cfg.Kafka.Topics.BookingEvents, event)
}
