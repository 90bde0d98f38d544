package service_test

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"sync"
	"testing"
	"time"

	"lifeguard/config"
	kafkaMocks "lifeguard/infras/kafka/mocks"
	otelMocks "lifeguard/infras/otel/mocks"
	"lifeguard/internal/domains/booking/mocks"
	"lifeguard/internal/domains/booking/model"
	"lifeguard/internal/domains/booking/model/dto"
	"lifeguard/internal/domains/booking/service"
	notificationMocks "lifeguard/internal/domains/notification/mocks"
	notificationModel "lifeguard/internal/domains/notification/model"
	pricingMocks "lifeguard/internal/domains/pricing/mocks"
	pricingModel "lifeguard/internal/domains/pricing/model"
	"lifeguard/shared/cache"
	cacheMocks "lifeguard/shared/cache/mocks"
	"lifeguard/shared/constant"
	gDto "lifeguard/shared/dto"
	"lifeguard/shared/failure"
	"lifeguard/shared/timezone"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// 2026-10-15 09:00 in UTC+8.
var now = time.Date(2026, 10, 15, 1, 0, 0, 0, time.UTC)

type fixture struct {
	repo     *mocks.MockBooking
	pricing  *pricingMocks.MockPricing
	notifier *notificationMocks.MockNotifier
	kafka    *kafkaMocks.MockClient
	cache    *cacheMocks.MockRedisCache
	svc      service.Booking
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		repo:     mocks.NewMockBooking(ctrl),
		pricing:  pricingMocks.NewMockPricing(ctrl),
		notifier: notificationMocks.NewMockNotifier(ctrl),
		kafka:    kafkaMocks.NewMockClient(ctrl),
		cache:    cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 60
	cfg.Kafka.Topics.BookingEvents = "booking.events"

	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.kafka.EXPECT().SendMessages(gomock.Any(), "booking.events", gomock.Any()).Return(nil).AnyTimes()

	f.svc = service.New(f.repo, f.pricing, f.notifier, f.kafka, timezone.FixedClock{At: now}, cfg, f.cache, otelMocks.NewOtel())

	return f
}

func (f fixture) cacheMiss() {
	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil).AnyTimes()
}

func storedBooking() model.Booking {
	return model.Booking{
		ID:                 "b-1",
		OrderID:            "LG-20261015-ABC123",
		CustomerName:       "Ana Reyes",
		CustomerEmail:      "ana@example.com",
		StartDatetime:      time.Date(2026, 10, 20, 1, 0, 0, 0, time.UTC),
		EndDatetime:        time.Date(2026, 10, 20, 5, 0, 0, 0, time.UTC),
		Hours:              4,
		Lifeguards:         2,
		Amount:             144,
		Status:             model.StatusPending,
		PaymentStatus:      model.PaymentStatusPending,
		LifeguardsAssigned: pq.StringArray{"s-1"},
	}
}

func validRequest() dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		CustomerName:  "Ana Reyes",
		CustomerEmail: "Ana@Example.com",
		CustomerPhone: "+65 8123 4567",
		Location:      "12 Marina Way",
		ServiceType:   model.ServiceTypePrivatePool,
		ServiceDate:   "2026-10-20",
		StartTime:     "09:00",
		Hours:         4,
		Lifeguards:    2,
	}
}

func TestBookingService_Create(t *testing.T) {
	f := newFixture(t)

	start := time.Date(2026, 10, 20, 1, 0, 0, 0, time.UTC)
	quote := pricingModel.NewQuote(now, start, 4)

	f.pricing.EXPECT().
		Quote(gomock.Any(), gomock.Any(), 4).
		DoAndReturn(func(_ context.Context, serviceAt time.Time, _ int) (pricingModel.Quote, error) {
			assert.True(t, start.Equal(serviceAt))

			return quote, nil
		})

	f.repo.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, booking model.Booking) error {
			assert.Regexp(t, regexp.MustCompile(`^LG-20261015-[0-9A-F]{6}$`), booking.OrderID)
			assert.Equal(t, model.StatusPending, booking.Status)
			assert.Equal(t, model.PaymentStatusPending, booking.PaymentStatus)
			assert.False(t, booking.ViewedByAdmin)
			assert.Empty(t, booking.LifeguardsAssigned)
			assert.Equal(t, 144.0, booking.Amount)
			assert.Equal(t, "ana@example.com", booking.CustomerEmail)
			assert.True(t, booking.EndDatetime.Equal(start.Add(4*time.Hour)))
			assert.Equal(t, constant.ContextGuest, booking.CreatedBy)

			return nil
		})

	res, err := f.svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, res.ID)
	assert.Equal(t, 144.0, res.Amount)
	assert.Equal(t, []string{}, res.LifeguardsAssigned)
}

func TestBookingService_Create_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		modify func(req *dto.CreateBookingRequest)
	}{
		{name: "missing customer name", modify: func(req *dto.CreateBookingRequest) { req.CustomerName = "" }},
		{name: "zero hours", modify: func(req *dto.CreateBookingRequest) { req.Hours = 0 }},
		{name: "bad date", modify: func(req *dto.CreateBookingRequest) { req.ServiceDate = "20-10-2026" }},
		{name: "bad time", modify: func(req *dto.CreateBookingRequest) { req.StartTime = "9am" }},
		{name: "other without description", modify: func(req *dto.CreateBookingRequest) { req.ServiceType = model.ServiceTypeOther }},
		{name: "unknown service type", modify: func(req *dto.CreateBookingRequest) { req.ServiceType = "spa" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			req := validRequest()
			tt.modify(&req)

			_, err := f.svc.Create(context.Background(), req)

			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		})
	}
}

func TestBookingService_Create_RetriesOrderIDCollision(t *testing.T) {
	f := newFixture(t)

	f.pricing.EXPECT().Quote(gomock.Any(), gomock.Any(), gomock.Any()).Return(pricingModel.Quote{Total: 100}, nil)

	var orderIDs []string

	gomock.InOrder(
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, booking model.Booking) error {
			orderIDs = append(orderIDs, booking.OrderID)

			return &pq.Error{Code: constant.PqErrorCodeUniqueViolation}
		}),
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, booking model.Booking) error {
			orderIDs = append(orderIDs, booking.OrderID)

			return nil
		}),
	)

	res, err := f.svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	require.Len(t, orderIDs, 2)
	assert.Equal(t, orderIDs[1], res.OrderID)
}

func TestBookingService_Create_RepositoryError(t *testing.T) {
	f := newFixture(t)

	f.pricing.EXPECT().Quote(gomock.Any(), gomock.Any(), gomock.Any()).Return(pricingModel.Quote{Total: 100}, nil)
	f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))

	_, err := f.svc.Create(context.Background(), validRequest())

	assert.ErrorContains(t, err, "failed to create booking")
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
}

func TestBookingService_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		f := newFixture(t)
		f.cacheMiss()

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedBooking(), nil)

		res, err := f.svc.Get(context.Background(), "b-1")
		require.NoError(t, err)

		assert.Equal(t, "LG-20261015-ABC123", res.OrderID)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)
		f.cacheMiss()

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

		_, err := f.svc.Get(context.Background(), "missing")

		assert.EqualError(t, err, "booking not found")
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("cache hit skips the database", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), "booking:get:b-1", gomock.Any()).Return(nil)

		_, err := f.svc.Get(context.Background(), "b-1")
		assert.NoError(t, err)
	})
}

func TestBookingService_GetByOrderID_NotFound(t *testing.T) {
	f := newFixture(t)
	f.cacheMiss()

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

	_, err := f.svc.GetByOrderID(context.Background(), "LG-20261015-ZZZZZZ")

	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestBookingService_GetAll(t *testing.T) {
	f := newFixture(t)
	f.cacheMiss()

	params := gDto.QueryParams{Page: 1, Limit: 1}
	filter := dto.ListFilter{Status: model.StatusPending}.ToFilterGroup()

	f.repo.EXPECT().Count(gomock.Any(), filter).Return(3, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), params, filter).Return([]model.Booking{storedBooking()}, nil)

	res, err := f.svc.GetAll(context.Background(), params, filter)
	require.NoError(t, err)

	assert.Equal(t, 3, res.TotalData)
	assert.Equal(t, 3, res.TotalPage)
	assert.Len(t, res.Bookings, 1)
}

func TestBookingService_CountUnviewed(t *testing.T) {
	f := newFixture(t)
	f.cacheMiss()

	f.repo.EXPECT().
		Count(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
			where, args := filter.GetWhereClause()

			assert.Contains(t, where, "bookings.viewed_by_admin = :viewed_by_admin")
			assert.Equal(t, false, args["viewed_by_admin"])

			return 4, nil
		})

	count, err := f.svc.CountUnviewed(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, count)
}

func TestBookingService_Apply_Updates(t *testing.T) {
	confirmed := model.StatusConfirmed
	unknown := "archived"

	tests := []struct {
		name     string
		cmd      model.Command
		fields   map[string]any
		check    func(t *testing.T, res dto.BookingResponse)
		wantCode int
	}{
		{
			name:   "mark viewed",
			cmd:    model.MarkViewed{},
			fields: map[string]any{model.FieldViewedByAdmin: true},
			check:  func(t *testing.T, res dto.BookingResponse) { assert.True(t, res.ViewedByAdmin) },
		},
		{
			name:   "mark unviewed",
			cmd:    model.MarkUnviewed{},
			fields: map[string]any{model.FieldViewedByAdmin: false},
			check:  func(t *testing.T, res dto.BookingResponse) { assert.False(t, res.ViewedByAdmin) },
		},
		{
			name:   "status moves backwards freely",
			cmd:    model.SetStatus{Status: model.StatusPending},
			fields: map[string]any{model.FieldStatus: model.StatusPending},
			check:  func(t *testing.T, res dto.BookingResponse) { assert.Equal(t, model.StatusPending, res.Status) },
		},
		{
			name:   "payment only",
			cmd:    model.SetPaymentStatus{PaymentStatus: model.PaymentStatusRefunded},
			fields: map[string]any{model.FieldPaymentStatus: model.PaymentStatusRefunded},
			check: func(t *testing.T, res dto.BookingResponse) {
				assert.Equal(t, model.PaymentStatusRefunded, res.PaymentStatus)
				assert.Equal(t, model.StatusPending, res.Status)
			},
		},
		{
			name:   "payment and status in one write",
			cmd:    model.SetPaymentStatus{PaymentStatus: model.PaymentStatusPaid, Status: &confirmed},
			fields: map[string]any{model.FieldPaymentStatus: model.PaymentStatusPaid, model.FieldStatus: model.StatusConfirmed},
			check: func(t *testing.T, res dto.BookingResponse) {
				assert.Equal(t, model.PaymentStatusPaid, res.PaymentStatus)
				assert.Equal(t, model.StatusConfirmed, res.Status)
			},
		},
		{name: "unknown status", cmd: model.SetStatus{Status: unknown}, wantCode: http.StatusBadRequest},
		{name: "unknown payment status", cmd: model.SetPaymentStatus{PaymentStatus: "void"}, wantCode: http.StatusBadRequest},
		{name: "unknown status alongside payment", cmd: model.SetPaymentStatus{PaymentStatus: model.PaymentStatusPaid, Status: &unknown}, wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedBooking(), nil)

			if tt.wantCode == 0 {
				f.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Contains(t, fields, constant.FieldUpdatedAt)
						assert.Equal(t, constant.ContextGuest, fields[constant.FieldUpdatedBy])

						delete(fields, constant.FieldUpdatedAt)
						delete(fields, constant.FieldUpdatedBy)
						assert.Equal(t, tt.fields, fields)

						return nil
					})
			}

			res, err := f.svc.Apply(context.Background(), "b-1", tt.cmd)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			tt.check(t, res)
		})
	}
}

func TestBookingService_Apply_ConfirmPaymentNotifies(t *testing.T) {
	tests := []struct {
		name      string
		notifyErr error
	}{
		{name: "notification delivered"},
		{name: "notification failure does not fail the update", notifyErr: errors.New("broker down")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			booking := storedBooking()

			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)

			written := false

			f.repo.EXPECT().
				Update(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
					written = true

					assert.Equal(t, model.PaymentStatusPaid, fields[model.FieldPaymentStatus])
					assert.Equal(t, model.StatusConfirmed, fields[model.FieldStatus])

					return nil
				})

			sent := make(chan notificationModel.PaymentConfirmation, 1)

			f.notifier.EXPECT().
				SendPaymentConfirmation(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, confirmation notificationModel.PaymentConfirmation) error {
					assert.True(t, written, "notification must follow the write")

					sent <- confirmation

					return tt.notifyErr
				})

			res, err := f.svc.Apply(context.Background(), "b-1", model.ConfirmPayment(true))
			require.NoError(t, err)

			assert.Equal(t, model.StatusConfirmed, res.Status)
			assert.Equal(t, model.PaymentStatusPaid, res.PaymentStatus)

			select {
			case confirmation := <-sent:
				assert.Equal(t, notificationModel.PaymentConfirmation{
					CustomerName:  booking.CustomerName,
					CustomerEmail: booking.CustomerEmail,
					OrderID:       booking.OrderID,
					StartDatetime: booking.StartDatetime,
					EndDatetime:   booking.EndDatetime,
					TotalAmount:   booking.Amount,
				}, confirmation)
			case <-time.After(time.Second):
				t.Fatal("payment confirmation was not sent")
			}
		})
	}
}

func TestBookingService_Apply_NoNotification(t *testing.T) {
	tests := []struct {
		name string
		cmd  model.Command
	}{
		{name: "paid without the flag", cmd: model.ConfirmPayment(false)},
		{name: "flag without paid", cmd: model.SetPaymentStatus{PaymentStatus: model.PaymentStatusRefunded, Notify: true}},
		{name: "status change", cmd: model.SetStatus{Status: model.StatusCompleted}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedBooking(), nil)
			f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			f.notifier.EXPECT().SendPaymentConfirmation(gomock.Any(), gomock.Any()).Times(0)

			_, err := f.svc.Apply(context.Background(), "b-1", tt.cmd)
			assert.NoError(t, err)
		})
	}
}

func TestBookingService_Apply_Delete(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedBooking(), nil)
	f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

	res, err := f.svc.Apply(context.Background(), "b-1", model.Delete{})
	require.NoError(t, err)

	assert.Equal(t, "b-1", res.ID)
}

func TestBookingService_Apply_Failures(t *testing.T) {
	t.Run("missing booking", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

		_, err := f.svc.Apply(context.Background(), "missing", model.MarkViewed{})

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("nil command", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Apply(context.Background(), "b-1", nil)

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("write error is wrapped and nobody is notified", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedBooking(), nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("deadlock detected"))
		f.notifier.EXPECT().SendPaymentConfirmation(gomock.Any(), gomock.Any()).Times(0)

		_, err := f.svc.Apply(context.Background(), "b-1", model.ConfirmPayment(true))

		assert.ErrorContains(t, err, "failed to update booking: deadlock detected")
		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})
}

type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *callLog) add(call string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.calls = append(l.calls, call)
}

func (l *callLog) snapshot() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]string(nil), l.calls...)
}

func TestBookingService_Apply_InvalidatesCacheBeforeReturning(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := mocks.NewMockBooking(ctrl)
	redis := cacheMocks.NewMockRedisCache(ctrl)
	kafka := kafkaMocks.NewMockClient(ctrl)

	cfg := &config.Config{}
	cfg.Kafka.Topics.BookingEvents = "booking.events"

	calls := &callLog{}

	repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedBooking(), nil)
	repo.EXPECT().
		Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, map[string]any, gDto.FilterGroup) error {
			calls.add("update")

			return nil
		})
	redis.EXPECT().
		Delete(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, key string) error {
			calls.add("delete " + key)

			return nil
		}).
		Times(2)
	redis.EXPECT().
		Clear(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, pattern string) error {
			calls.add("clear " + pattern)

			return nil
		}).
		Times(2)
	kafka.EXPECT().SendMessages(gomock.Any(), "booking.events", gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(repo, pricingMocks.NewMockPricing(ctrl), notificationMocks.NewMockNotifier(ctrl), kafka, timezone.FixedClock{At: now}, cfg, redis, otelMocks.NewOtel())

	_, err := svc.Apply(context.Background(), "b-1", model.MarkViewed{})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"update",
		"delete booking:get:b-1",
		"delete booking:get:order:LG-20261015-ABC123",
		"clear booking:gets*",
		"clear booking:count*",
	}, calls.snapshot())
}
