package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"lifeguard/config"
	otelMocks "lifeguard/infras/otel/mocks"
	bookingMocks "lifeguard/internal/domains/booking/mocks"
	bookingModel "lifeguard/internal/domains/booking/model"
	"lifeguard/internal/domains/staff/mocks"
	"lifeguard/internal/domains/staff/model"
	"lifeguard/internal/domains/staff/model/dto"
	"lifeguard/internal/domains/staff/service"
	"lifeguard/shared/cache"
	cacheMocks "lifeguard/shared/cache/mocks"
	"lifeguard/shared/constant"
	gDto "lifeguard/shared/dto"
	"lifeguard/shared/failure"
	"lifeguard/shared/timezone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var now = time.Date(2026, 10, 15, 1, 0, 0, 0, time.UTC)

type fixture struct {
	repo        *mocks.MockStaff
	bookingRepo *bookingMocks.MockBooking
	cache       *cacheMocks.MockRedisCache
	svc         service.Staff
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		repo:        mocks.NewMockStaff(ctrl),
		bookingRepo: bookingMocks.NewMockBooking(ctrl),
		cache:       cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.svc = service.New(f.repo, f.bookingRepo, timezone.FixedClock{At: now}, cfg, f.cache, otelMocks.NewOtel())

	return f
}

func TestStaffService_Create(t *testing.T) {
	t.Run("defaults to active", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, staff model.Staff) error {
				assert.True(t, staff.IsActive)
				assert.Equal(t, "Marco", staff.Name)
				assert.Equal(t, "admin-1", staff.CreatedBy)
				assert.True(t, now.Equal(staff.CreatedAt))

				return nil
			})

		ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")

		res, err := f.svc.Create(ctx, dto.CreateStaffRequest{Name: " Marco ", ContactNumber: "+65 9000 0000"})
		require.NoError(t, err)

		assert.NotEmpty(t, res.ID)
		assert.True(t, res.IsActive)
	})

	t.Run("invalid email", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Create(context.Background(), dto.CreateStaffRequest{Name: "Marco", ContactNumber: "1", Email: "not-an-email"})

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestStaffService_ListActive(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Staff, error) {
			where, args := filter.GetWhereClause()

			assert.Equal(t, model.FieldName, params.SortBy)
			assert.Contains(t, where, "staff.is_active = :is_active")
			assert.Equal(t, true, args["is_active"])

			return []model.Staff{{ID: "s-1", Name: "Marco", IsActive: true}}, nil
		})

	res, err := f.svc.ListActive(context.Background())
	require.NoError(t, err)

	require.Len(t, res, 1)
	assert.Equal(t, "s-1", res[0].ID)
}

func TestStaffService_Get_NotFound(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Staff{}, nil)

	_, err := f.svc.Get(context.Background(), "missing")

	assert.EqualError(t, err, "lifeguard not found")
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestStaffService_Update(t *testing.T) {
	inactive := false

	t.Run("deactivation only touches the staff row", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, false, fields[model.FieldIsActive])
				assert.True(t, now.Equal(fields[constant.FieldUpdatedAt].(time.Time)))
				assert.NotContains(t, fields, model.FieldName)

				return nil
			})

		assert.NoError(t, f.svc.Update(context.Background(), dto.UpdateStaffRequest{IsActive: &inactive}, "s-1"))
	})

	t.Run("empty request", func(t *testing.T) {
		f := newFixture(t)

		err := f.svc.Update(context.Background(), dto.UpdateStaffRequest{}, "s-1")

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("missing staff", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := f.svc.Update(context.Background(), dto.UpdateStaffRequest{Name: "New"}, "s-404")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestStaffService_Delete(t *testing.T) {
	tests := []struct {
		name     string
		bookings []bookingModel.Booking
		message  string
		code     int
	}{
		{
			name: "blocked by active bookings",
			bookings: []bookingModel.Booking{
				{ID: "b-1", OrderID: "LG-20261015-AAAAAA"},
				{ID: "b-2", OrderID: "LG-20261016-BBBBBB"},
			},
			message: "Cannot delete lifeguard: assigned to 2 active booking(s) (LG-20261015-AAAAAA, LG-20261016-BBBBBB)",
			code:    http.StatusConflict,
		},
		{
			name:     "allowed once bookings are closed",
			bookings: []bookingModel.Booking{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			f.bookingRepo.EXPECT().
				GetAll(gomock.Any(), gomock.Any(), gomock.Any(), bookingModel.FieldID, bookingModel.FieldOrderID).
				DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]bookingModel.Booking, error) {
					where, args := filter.GetWhereClause()

					assert.Contains(t, where, ":staff_id = ANY(bookings.lifeguards_assigned)")
					assert.Equal(t, "s-1", args["staff_id"])
					assert.Equal(t, bookingModel.StatusPending, args["status_0"])
					assert.Equal(t, bookingModel.StatusConfirmed, args["status_1"])

					return tt.bookings, nil
				})

			if tt.code == 0 {
				f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
			}

			err := f.svc.Delete(context.Background(), "s-1")

			if tt.code != 0 {
				assert.EqualError(t, err, tt.message)
				assert.Equal(t, tt.code, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestStaffService_Delete_LookupError(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
	f.bookingRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("timeout"))

	err := f.svc.Delete(context.Background(), "s-1")

	assert.ErrorContains(t, err, "failed to check staff assignments: timeout")
}

func TestStaffService_CountActiveAssignments(t *testing.T) {
	f := newFixture(t)

	f.bookingRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(3, nil)

	count, err := f.svc.CountActiveAssignments(context.Background(), "s-1")
	require.NoError(t, err)

	assert.Equal(t, 3, count)
}
