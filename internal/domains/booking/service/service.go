package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Booking=MockBookingService

import (
	"context"
	"fmt"

	"lifeguard/config"
	"lifeguard/infras/kafka"
	"lifeguard/infras/otel"
	"lifeguard/internal/domains/booking/model"
	"lifeguard/internal/domains/booking/model/dto"
	"lifeguard/internal/domains/booking/repository"
	notificationModel "lifeguard/internal/domains/notification/model"
	notification "lifeguard/internal/domains/notification/service"
	pricing "lifeguard/internal/domains/pricing/service"
	"lifeguard/shared"
	"lifeguard/shared/cache"
	"lifeguard/shared/constant"
	gDto "lifeguard/shared/dto"
	"lifeguard/shared/failure"
	gRepo "lifeguard/shared/repository"
	"lifeguard/shared/timezone"
	"lifeguard/shared/validator"

	"github.com/rs/zerolog/log"
)

const (
	cacheOrderPart     = "order"
	maxOrderIDAttempts = 3
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	GetByOrderID(ctx context.Context, orderID string) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	CountUnviewed(ctx context.Context) (int, error)
	Apply(ctx context.Context, id string, cmd model.Command) (dto.BookingResponse, error)
}

type serviceImpl struct {
	repo     repository.Booking
	pricing  pricing.Pricing
	notifier notification.Notifier
	kafka    kafka.Client
	clock    timezone.Clock
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(
	repo repository.Booking,
	pricing pricing.Pricing,
	notifier notification.Notifier,
	kafka kafka.Client,
	clock timezone.Clock,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:     repo,
		pricing:  pricing,
		notifier: notifier,
		kafka:    kafka,
		clock:    clock,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err //nolint:wrapcheck
	}

	start, end, err := req.Window()
	if err != nil {
		return res, failure.BadRequest(err) //nolint:wrapcheck
	}

	quote, err := s.pricing.Quote(ctx, start, req.Hours)
	if err != nil {
		log.Error().Err(err).Msg("failed to quote booking")

		return res, fmt.Errorf("failed to quote booking: %w", err)
	}

	user := shared.UserFromContext(ctx)
	now := s.clock.Now()

	var booking model.Booking

	// order ids carry a short random suffix, so a collision is retried with a fresh one
	for attempt := 1; ; attempt++ {
		booking = req.ToModel(quote, end, now, user)

		err = s.repo.Insert(ctx, booking)
		if err == nil {
			break
		}

		if !gRepo.IsUniqueViolation(err) || attempt == maxOrderIDAttempts {
			log.Error().Err(err).Msg("failed to create booking")

			return res, fmt.Errorf("failed to create booking: %w", err)
		}

		log.Warn().Str("order_id", booking.OrderID).Msg("order id collision, retrying")
	}

	res.FromModel(booking)

	shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, model.CacheGetAll)
	shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, model.CacheCount)

	go PublishEvent(context.WithoutCancel(ctx), s.kafka, s.cfg.Kafka.Topics.BookingEvents, model.NewEvent(model.EventCreated, booking, user, now))

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheGetAll, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save bookings to cache")
	}

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheCount, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save booking count to cache")
	}

	return res, nil
}

func (s *serviceImpl) CountUnviewed(ctx context.Context) (int, error) {
	viewed := false

	return s.Count(ctx, gDto.QueryParams{}, dto.ListFilter{Viewed: &viewed}.ToFilterGroup())
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.getCached(ctx, shared.BuildCacheKey(model.CacheGet, id), shared.FilterByID(id, model.FieldID, model.TableName))
}

func (s *serviceImpl) GetByOrderID(ctx context.Context, orderID string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetByOrderID")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.getCached(ctx, shared.BuildCacheKey(model.CacheGet, cacheOrderPart, orderID), shared.FilterByID(orderID, model.FieldOrderID, model.TableName))
}

func (s *serviceImpl) getCached(ctx context.Context, cacheKey string, filter gDto.FilterGroup) (res dto.BookingResponse, err error) {
	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.find(ctx, filter)
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save booking to cache")
	}

	return res, nil
}

func (s *serviceImpl) find(ctx context.Context, filter gDto.FilterGroup) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found") //nolint:wrapcheck
	}

	return booking, nil
}

// Apply runs one admin command against a booking and returns the booking as it
// stands afterwards. For Delete that is the last stored state.
func (s *serviceImpl) Apply(ctx context.Context, id string, cmd model.Command) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Apply")
	defer scope.End()
	defer scope.TraceIfError(err)

	if cmd == nil {
		return res, failure.BadRequestFromString("command is required") //nolint:wrapcheck
	}

	scope.SetAttribute("booking.command", cmd.Name())

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	booking, err := s.find(ctx, filter)
	if err != nil {
		return res, err
	}

	user := shared.UserFromContext(ctx)
	now := s.clock.Now()

	if _, ok := cmd.(model.Delete); ok {
		if err = s.repo.Delete(ctx, filter); err != nil {
			log.Error().Err(err).Msg("failed to delete booking")

			return res, fmt.Errorf("failed to delete booking: %w", err)
		}
	} else {
		var fields map[string]any

		fields, err = changes(cmd, &booking)
		if err != nil {
			return res, err
		}

		fields[constant.FieldUpdatedAt] = now
		fields[constant.FieldUpdatedBy] = user

		if err = s.repo.Update(ctx, fields, filter); err != nil {
			log.Error().Err(err).Str("command", cmd.Name()).Msg("failed to update booking")

			return res, fmt.Errorf("failed to update booking: %w", err)
		}

		booking.UpdatedAt = now
		booking.UpdatedBy = user
	}

	res.FromModel(booking)

	// Readers must not see the pre-write booking once Apply has returned.
	Invalidate(context.WithoutCancel(ctx), s.cache, booking)

	go PublishEvent(context.WithoutCancel(ctx), s.kafka, s.cfg.Kafka.Topics.BookingEvents, model.NewEvent(model.CommandEvent(cmd), booking, user, now))

	if payment, ok := cmd.(model.SetPaymentStatus); ok && payment.Notify && payment.PaymentStatus == model.PaymentStatusPaid {
		go s.notifyPayment(context.WithoutCancel(ctx), booking)
	}

	return res, nil
}

// changes validates cmd, applies it to booking and returns the columns to write.
func changes(cmd model.Command, booking *model.Booking) (map[string]any, error) {
	switch cmd := cmd.(type) {
	case model.MarkViewed:
		booking.ViewedByAdmin = true

		return map[string]any{model.FieldViewedByAdmin: true}, nil
	case model.MarkUnviewed:
		booking.ViewedByAdmin = false

		return map[string]any{model.FieldViewedByAdmin: false}, nil
	case model.SetPaymentStatus:
		if !model.IsValidPaymentStatus(cmd.PaymentStatus) {
			return nil, failure.Validationf("invalid payment status %q", cmd.PaymentStatus) //nolint:wrapcheck
		}

		fields := map[string]any{model.FieldPaymentStatus: cmd.PaymentStatus}
		booking.PaymentStatus = cmd.PaymentStatus

		if cmd.Status != nil {
			if !model.IsValidStatus(*cmd.Status) {
				return nil, failure.Validationf("invalid status %q", *cmd.Status) //nolint:wrapcheck
			}

			fields[model.FieldStatus] = *cmd.Status
			booking.Status = *cmd.Status
		}

		return fields, nil
	case model.SetStatus:
		if !model.IsValidStatus(cmd.Status) {
			return nil, failure.Validationf("invalid status %q", cmd.Status) //nolint:wrapcheck
		}

		booking.Status = cmd.Status

		return map[string]any{model.FieldStatus: cmd.Status}, nil
	default:
		return nil, failure.Validationf("unsupported command %q", cmd.Name()) //nolint:wrapcheck
	}
}

func (s *serviceImpl) notifyPayment(ctx context.Context, booking model.Booking) {
	err := s.notifier.SendPaymentConfirmation(ctx, notificationModel.PaymentConfirmation{
		CustomerName:  booking.CustomerName,
		CustomerEmail: booking.CustomerEmail,
		OrderID:       booking.OrderID,
		StartDatetime: booking.StartDatetime,
		EndDatetime:   booking.EndDatetime,
		TotalAmount:   booking.Amount,
	})
	if err != nil {
		log.Error().Err(err).Str("order_id", booking.OrderID).Msg("failed to send payment confirmation")
	}
}
