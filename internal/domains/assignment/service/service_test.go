package service_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"lifeguard/config"
	kafkaMocks "lifeguard/infras/kafka/mocks"
	otelMocks "lifeguard/infras/otel/mocks"
	"lifeguard/internal/domains/assignment/model/dto"
	"lifeguard/internal/domains/assignment/service"
	bookingMocks "lifeguard/internal/domains/booking/mocks"
	bookingModel "lifeguard/internal/domains/booking/model"
	staffMocks "lifeguard/internal/domains/staff/mocks"
	staffModel "lifeguard/internal/domains/staff/model"
	staffDto "lifeguard/internal/domains/staff/model/dto"
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

var (
	now  = time.Date(2026, 10, 15, 1, 0, 0, 0, time.UTC)
	base = time.Date(2026, 10, 20, 1, 0, 0, 0, time.UTC)
)

func at(hours int) time.Time {
	return base.Add(time.Duration(hours) * time.Hour)
}

type fixture struct {
	bookingRepo *bookingMocks.MockBooking
	staffRepo   *staffMocks.MockStaff
	cfg         *config.Config
	svc         service.Assignment
}

func newFixture(t *testing.T, revalidate bool) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		bookingRepo: bookingMocks.NewMockBooking(ctrl),
		staffRepo:   staffMocks.NewMockStaff(ctrl),
		cfg:         &config.Config{},
	}

	f.cfg.Kafka.Topics.BookingEvents = "booking.events"
	f.cfg.Assignment.RevalidateOverlap = revalidate

	redis := cacheMocks.NewMockRedisCache(ctrl)
	redis.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	redis.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	kafka := kafkaMocks.NewMockClient(ctrl)
	kafka.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.svc = service.New(f.bookingRepo, f.staffRepo, kafka, timezone.FixedClock{At: now}, f.cfg, redis, otelMocks.NewOtel())

	return f
}

func target(assigned ...string) bookingModel.Booking {
	return bookingModel.Booking{
		ID:                 "target",
		OrderID:            "LG-20261015-TARGET",
		Status:             bookingModel.StatusConfirmed,
		StartDatetime:      at(0),
		EndDatetime:        at(4),
		Lifeguards:         2,
		LifeguardsAssigned: pq.StringArray(assigned),
	}
}

func staff(id, name string, active bool) staffModel.Staff {
	return staffModel.Staff{ID: id, Name: name, IsActive: active}
}

func (f fixture) expectTarget(booking bookingModel.Booking) {
	f.bookingRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
}

func (f fixture) expectActiveStaff(members ...staffModel.Staff) {
	f.staffRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]staffModel.Staff, error) {
			_, args := filter.GetWhereClause()
			if args[staffModel.FieldIsActive] != true {
				return nil, errors.New("expected the active staff query")
			}

			return members, nil
		})
}

func (f fixture) expectOverlapping(bookings ...bookingModel.Booking) {
	f.bookingRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(bookings, nil)
}

func ids(res []staffDto.StaffResponse) []string {
	out := make([]string, len(res))
	for i, member := range res {
		out[i] = member.ID
	}

	return out
}

func TestAssignmentService_AvailableStaff(t *testing.T) {
	tests := []struct {
		name        string
		target      bookingModel.Booking
		active      []staffModel.Staff
		overlapping []bookingModel.Booking
		extra       []staffModel.Staff
		want        []string
	}{
		{
			name:   "staff on an overlapping confirmed booking are excluded",
			target: target(),
			active: []staffModel.Staff{staff("s-1", "Amy", true), staff("s-2", "Ben", true)},
			overlapping: []bookingModel.Booking{
				{ID: "b-1", OrderID: "LG-1", Status: bookingModel.StatusConfirmed, StartDatetime: at(2), EndDatetime: at(6), LifeguardsAssigned: pq.StringArray{"s-1"}},
			},
			want: []string{"s-2"},
		},
		{
			name:   "touching windows count as overlapping",
			target: target(),
			active: []staffModel.Staff{staff("s-1", "Amy", true), staff("s-2", "Ben", true)},
			overlapping: []bookingModel.Booking{
				{ID: "b-1", OrderID: "LG-1", Status: bookingModel.StatusConfirmed, StartDatetime: at(-3), EndDatetime: at(0), LifeguardsAssigned: pq.StringArray{"s-2"}},
			},
			want: []string{"s-1"},
		},
		{
			name:   "pending bookings do not block",
			target: target(),
			active: []staffModel.Staff{staff("s-1", "Amy", true)},
			overlapping: []bookingModel.Booking{
				{ID: "b-1", OrderID: "LG-1", Status: bookingModel.StatusPending, StartDatetime: at(1), EndDatetime: at(3), LifeguardsAssigned: pq.StringArray{"s-1"}},
			},
			want: []string{"s-1"},
		},
		{
			name:   "current assignee stays listed even when busy elsewhere",
			target: target("s-1"),
			active: []staffModel.Staff{staff("s-1", "Amy", true), staff("s-2", "Ben", true)},
			overlapping: []bookingModel.Booking{
				target("s-1"),
				{ID: "b-1", OrderID: "LG-1", Status: bookingModel.StatusConfirmed, StartDatetime: at(1), EndDatetime: at(2), LifeguardsAssigned: pq.StringArray{"s-1", "s-2"}},
			},
			want: []string{"s-1"},
		},
		{
			name:   "deactivated assignee is still listed",
			target: target("s-9"),
			active: []staffModel.Staff{staff("s-2", "Ben", true)},
			extra:  []staffModel.Staff{staff("s-9", "Ada", false)},
			want:   []string{"s-9", "s-2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, false)

			f.expectTarget(tt.target)
			f.expectActiveStaff(tt.active...)
			f.expectOverlapping(tt.overlapping...)

			if tt.extra != nil {
				f.staffRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), staffDto.ByIDs([]string{"s-9"})).Return(tt.extra, nil)
			}

			res, err := f.svc.AvailableStaff(context.Background(), "target")
			require.NoError(t, err)

			assert.Equal(t, tt.want, ids(res))
		})
	}
}

func TestAssignmentService_AvailableStaff_Errors(t *testing.T) {
	t.Run("booking not found", func(t *testing.T) {
		f := newFixture(t, false)
		f.expectTarget(bookingModel.Booking{})

		_, err := f.svc.AvailableStaff(context.Background(), "missing")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("staff read fails", func(t *testing.T) {
		f := newFixture(t, false)
		f.expectTarget(target())
		f.staffRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("read replica down"))

		_, err := f.svc.AvailableStaff(context.Background(), "target")

		assert.ErrorContains(t, err, "failed to get active staff: read replica down")
	})
}

func TestAssignmentService_AvailableForWindow(t *testing.T) {
	f := newFixture(t, false)

	f.expectActiveStaff(staff("s-1", "Amy", true), staff("s-2", "Ben", true))
	f.expectOverlapping(
		bookingModel.Booking{ID: "edit-me", OrderID: "LG-E", Status: bookingModel.StatusConfirmed, StartDatetime: at(0), EndDatetime: at(4), LifeguardsAssigned: pq.StringArray{"s-1"}},
		bookingModel.Booking{ID: "b-1", OrderID: "LG-1", Status: bookingModel.StatusConfirmed, StartDatetime: at(0), EndDatetime: at(4), LifeguardsAssigned: pq.StringArray{"s-2"}},
	)

	res, err := f.svc.AvailableForWindow(context.Background(), dto.WindowQuery{Start: at(0), End: at(4), ExcludeBookingID: "edit-me"})
	require.NoError(t, err)

	assert.Equal(t, []string{"s-1"}, ids(res))
}

func TestAssignmentService_AvailableForWindow_ZeroLength(t *testing.T) {
	f := newFixture(t, false)

	f.expectActiveStaff(staff("s-1", "Amy", true), staff("s-2", "Ben", true))
	f.expectOverlapping(
		bookingModel.Booking{ID: "b-1", OrderID: "LG-1", Status: bookingModel.StatusConfirmed, StartDatetime: at(0), EndDatetime: at(4), LifeguardsAssigned: pq.StringArray{"s-1"}},
	)

	res, err := f.svc.AvailableForWindow(context.Background(), dto.WindowQuery{Start: at(4), End: at(4)})
	require.NoError(t, err)

	assert.Equal(t, []string{"s-2"}, ids(res))
}

func TestAssignmentService_Assign(t *testing.T) {
	t.Run("replaces the assignment in one write", func(t *testing.T) {
		f := newFixture(t, false)

		f.expectTarget(target("s-old"))
		f.staffRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), staffDto.ByIDs([]string{"s-1", "s-2"})).
			Return([]staffModel.Staff{staff("s-1", "Amy", true), staff("s-2", "Ben", true)}, nil)
		f.bookingRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, pq.StringArray{"s-1", "s-2"}, fields[bookingModel.FieldLifeguardsAssigned])
				assert.Contains(t, fields, constant.FieldUpdatedAt)

				return nil
			})

		res, err := f.svc.Assign(context.Background(), "target", dto.AssignRequest{StaffIDs: []string{"s-1", "s-2", "s-1"}})
		require.NoError(t, err)

		assert.Equal(t, []string{"s-1", "s-2"}, res.LifeguardsAssigned)
	})

	t.Run("does not re-check overlap by default", func(t *testing.T) {
		f := newFixture(t, false)

		f.expectTarget(target())
		f.staffRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]staffModel.Staff{staff("s-1", "Amy", true)}, nil)
		f.bookingRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		_, err := f.svc.Assign(context.Background(), "target", dto.AssignRequest{StaffIDs: []string{"s-1"}})
		assert.NoError(t, err)
	})

	t.Run("empty list clears the assignment", func(t *testing.T) {
		f := newFixture(t, false)

		f.expectTarget(target("s-1"))
		f.bookingRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, pq.StringArray{}, fields[bookingModel.FieldLifeguardsAssigned])

				return nil
			})

		res, err := f.svc.Assign(context.Background(), "target", dto.AssignRequest{})
		require.NoError(t, err)

		assert.Empty(t, res.LifeguardsAssigned)
	})
}

func TestAssignmentService_Assign_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		ids     []string
		found   []staffModel.Staff
		message string
		code    int
	}{
		{
			name:    "more staff than the booking needs",
			ids:     []string{"s-1", "s-2", "s-3"},
			message: "Too many lifeguards: booking LG-20261015-TARGET needs 2, 3 selected (1 too many)",
			code:    http.StatusBadRequest,
		},
		{
			name:    "unknown ids",
			ids:     []string{"s-1", "ghost"},
			found:   []staffModel.Staff{staff("s-1", "Amy", true)},
			message: "Unknown lifeguard(s): ghost",
			code:    http.StatusBadRequest,
		},
		{
			name:    "inactive staff",
			ids:     []string{"s-1", "s-2"},
			found:   []staffModel.Staff{staff("s-1", "Amy", true), staff("s-2", "Ben", false)},
			message: "Inactive lifeguard(s) cannot be assigned: Ben",
			code:    http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, false)

			f.expectTarget(target())

			if tt.found != nil {
				f.staffRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(tt.found, nil)
			}

			f.bookingRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

			_, err := f.svc.Assign(context.Background(), "target", dto.AssignRequest{StaffIDs: tt.ids})

			assert.EqualError(t, err, tt.message)
			assert.Equal(t, tt.code, failure.GetCode(err))
		})
	}
}

func TestAssignmentService_Assign_RevalidateOverlap(t *testing.T) {
	f := newFixture(t, true)

	f.expectTarget(target())
	f.staffRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]staffModel.Staff{staff("s-1", "Amy", true)}, nil)
	f.expectOverlapping(
		bookingModel.Booking{ID: "b-1", OrderID: "LG-1", Status: bookingModel.StatusConfirmed, StartDatetime: at(3), EndDatetime: at(5), LifeguardsAssigned: pq.StringArray{"s-1"}},
	)
	f.bookingRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := f.svc.Assign(context.Background(), "target", dto.AssignRequest{StaffIDs: []string{"s-1"}})

	assert.EqualError(t, err, "Lifeguard(s) already assigned to an overlapping booking: s-1 (LG-1)")
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))
}

func TestAssignmentService_Assign_WriteError(t *testing.T) {
	f := newFixture(t, false)

	f.expectTarget(target())
	f.staffRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]staffModel.Staff{staff("s-1", "Amy", true)}, nil)
	f.bookingRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("serialization failure"))

	_, err := f.svc.Assign(context.Background(), "target", dto.AssignRequest{StaffIDs: []string{"s-1"}})

	assert.ErrorContains(t, err, "failed to update booking lifeguards: serialization failure")
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
}

func TestAssignmentService_Unassign(t *testing.T) {
	tests := []struct {
		name     string
		assigned []string
		remove   string
		want     pq.StringArray
	}{
		{name: "removes the staff member", assigned: []string{"s-1", "s-2"}, remove: "s-1", want: pq.StringArray{"s-2"}},
		{name: "removing someone not assigned is a no-op", assigned: []string{"s-2"}, remove: "s-1", want: pq.StringArray{"s-2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, false)

			f.expectTarget(target(tt.assigned...))
			f.bookingRepo.EXPECT().
				Update(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
					assert.Equal(t, tt.want, fields[bookingModel.FieldLifeguardsAssigned])
					assert.Contains(t, fields, constant.FieldUpdatedAt)

					return nil
				})

			res, err := f.svc.Unassign(context.Background(), "target", tt.remove)
			require.NoError(t, err)

			assert.Equal(t, []string(tt.want), res.LifeguardsAssigned)
		})
	}
}

func TestAssignmentService_Assign_InvalidatesCacheBeforeReturning(t *testing.T) {
	ctrl := gomock.NewController(t)

	bookingRepo := bookingMocks.NewMockBooking(ctrl)
	staffRepo := staffMocks.NewMockStaff(ctrl)
	redis := cacheMocks.NewMockRedisCache(ctrl)
	kafka := kafkaMocks.NewMockClient(ctrl)

	cfg := &config.Config{}
	cfg.Kafka.Topics.BookingEvents = "booking.events"

	var (
		mu    sync.Mutex
		calls []string
	)

	record := func(call string) {
		mu.Lock()
		defer mu.Unlock()

		calls = append(calls, call)
	}

	bookingRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(target(), nil)
	staffRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]staffModel.Staff{staff("s-1", "Amy", true)}, nil)
	bookingRepo.EXPECT().
		Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, map[string]any, gDto.FilterGroup) error {
			record("update")

			return nil
		})
	redis.EXPECT().
		Delete(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, key string) error {
			record("delete " + key)

			return nil
		}).
		Times(2)
	redis.EXPECT().
		Clear(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, pattern string) error {
			record("clear " + pattern)

			return nil
		}).
		Times(2)
	kafka.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(bookingRepo, staffRepo, kafka, timezone.FixedClock{At: now}, cfg, redis, otelMocks.NewOtel())

	_, err := svc.Assign(context.Background(), "target", dto.AssignRequest{StaffIDs: []string{"s-1"}})
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()

	assert.Equal(t, []string{
		"update",
		"delete booking:get:target",
		"delete booking:get:order:LG-20261015-TARGET",
		"clear booking:gets*",
		"clear booking:count*",
	}, calls)
}
