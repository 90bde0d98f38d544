package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Staff=MockStaffService

import (
	"context"
	"fmt"
	"strings"

	"lifeguard/config"
	"lifeguard/infras/otel"
	bookingModel "lifeguard/internal/domains/booking/model"
	bookingDto "lifeguard/internal/domains/booking/model/dto"
	bookingRepo "lifeguard/internal/domains/booking/repository"
	"lifeguard/internal/domains/staff/model"
	"lifeguard/internal/domains/staff/model/dto"
	"lifeguard/internal/domains/staff/repository"
	"lifeguard/shared"
	"lifeguard/shared/cache"
	"lifeguard/shared/constant"
	gDto "lifeguard/shared/dto"
	"lifeguard/shared/failure"
	"lifeguard/shared/timezone"
	"lifeguard/shared/validator"

	"github.com/rs/zerolog/log"
)

type Staff interface {
	Create(ctx context.Context, req dto.CreateStaffRequest) (dto.StaffResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetStaffResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	ListActive(ctx context.Context) ([]dto.StaffResponse, error)
	Get(ctx context.Context, id string) (dto.StaffResponse, error)
	Update(ctx context.Context, req dto.UpdateStaffRequest, id string) error
	Delete(ctx context.Context, id string) error
	CountActiveAssignments(ctx context.Context, id string) (int, error)
}

type serviceImpl struct {
	repo        repository.Staff
	bookingRepo bookingRepo.Booking
	clock       timezone.Clock
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(repo repository.Staff, bookingRepo bookingRepo.Booking, clock timezone.Clock, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Staff {
	return &serviceImpl{
		repo:        repo,
		bookingRepo: bookingRepo,
		clock:       clock,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateStaffRequest) (res dto.StaffResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".staff.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err //nolint:wrapcheck
	}

	staff := req.ToModel(shared.UserFromContext(ctx), s.clock.Now())

	if err = s.repo.Insert(ctx, staff); err != nil {
		log.Error().Err(err).Msg("failed to create staff")

		return res, fmt.Errorf("failed to create staff: %w", err)
	}

	res.FromModel(staff)

	shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, model.CacheGetAll)
	shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, model.CacheCount)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetStaffResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".staff.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheGetAll, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for staff list")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count staff")

		return res, fmt.Errorf("failed to count staff: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get staff")

		return res, fmt.Errorf("failed to get staff: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save staff list to cache")
	}

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".staff.Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheCount, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for staff count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count staff")

		return res, fmt.Errorf("failed to count staff: %w", err)
	}

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save staff count to cache")
	}

	return res, nil
}

func (s *serviceImpl) ListActive(ctx context.Context) (res []dto.StaffResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".staff.ListActive")
	defer scope.End()
	defer scope.TraceIfError(err)

	active := true
	params := gDto.QueryParams{SortBy: model.FieldName, SortDir: gDto.SortDirAsc}

	models, err := s.repo.GetAll(ctx, params, dto.ListFilter{Active: &active}.ToFilterGroup())
	if err != nil {
		log.Error().Err(err).Msg("failed to list active staff")

		return nil, fmt.Errorf("failed to list active staff: %w", err)
	}

	return dto.FromModels(models), nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.StaffResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".staff.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(model.CacheGet, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for staff")

		return res, nil
	}

	staff, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get staff")

		return res, fmt.Errorf("failed to get staff: %w", err)
	}

	if staff.ID == constant.Empty {
		return res, failure.NotFound("lifeguard not found") //nolint:wrapcheck
	}

	res.FromModel(staff)

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save staff to cache")
	}

	return res, nil
}

// Update edits the staff record only. Deactivating a lifeguard leaves their
// existing assignments untouched.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateStaffRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".staff.Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateStaffRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") //nolint:wrapcheck
	}

	if err = validator.ValidateStruct(&req); err != nil {
		return err //nolint:wrapcheck
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	if err = s.ensureExists(ctx, filter); err != nil {
		return err
	}

	fields := shared.TransformFields(req, shared.UserFromContext(ctx))
	fields[constant.FieldUpdatedAt] = s.clock.Now()

	if err = s.repo.Update(ctx, fields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update staff")

		return fmt.Errorf("failed to update staff: %w", err)
	}

	s.invalidate(context.WithoutCancel(ctx), id)

	return nil
}

// Delete refuses while the lifeguard is still on a pending or confirmed booking.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".staff.Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	if err = s.ensureExists(ctx, filter); err != nil {
		return err
	}

	bookings, err := s.bookingRepo.GetAll(ctx, gDto.QueryParams{}, bookingDto.ActiveAssignmentFilter(id), bookingModel.FieldID, bookingModel.FieldOrderID)
	if err != nil {
		log.Error().Err(err).Msg("failed to check staff assignments")

		return fmt.Errorf("failed to check staff assignments: %w", err)
	}

	if len(bookings) > 0 {
		orderIDs := make([]string, len(bookings))
		for i, booking := range bookings {
			orderIDs[i] = booking.OrderID
		}

		return failure.Conflictf( //nolint:wrapcheck
			"Cannot delete lifeguard: assigned to %d active booking(s) (%s)",
			len(bookings), strings.Join(orderIDs, ", "),
		)
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete staff")

		return fmt.Errorf("failed to delete staff: %w", err)
	}

	s.invalidate(context.WithoutCancel(ctx), id)

	return nil
}

func (s *serviceImpl) CountActiveAssignments(ctx context.Context, id string) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".staff.CountActiveAssignments")
	defer scope.End()
	defer scope.TraceIfError(err)

	res, err = s.bookingRepo.Count(ctx, bookingDto.ActiveAssignmentFilter(id))
	if err != nil {
		log.Error().Err(err).Msg("failed to count staff assignments")

		return res, fmt.Errorf("failed to count staff assignments: %w", err)
	}

	return res, nil
}

func (s *serviceImpl) ensureExists(ctx context.Context, filter gDto.FilterGroup) error {
	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if staff exists")

		return fmt.Errorf("failed to check if staff exists: %w", err)
	}

	if !exist {
		return failure.NotFound("lifeguard not found") //nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	if err := s.cache.Delete(ctx, shared.BuildCacheKey(model.CacheGet, id)); err != nil {
		log.Error().Err(err).Msg("failed to delete staff from cache")
	}

	shared.InvalidateCaches(ctx, s.cache, model.CacheGetAll)
	shared.InvalidateCaches(ctx, s.cache, model.CacheCount)
}
