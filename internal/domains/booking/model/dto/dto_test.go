package dto_test

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"lifeguard/internal/domains/booking/model"
	"lifeguard/internal/domains/booking/model/dto"
	"lifeguard/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrderID(t *testing.T) {
	at := time.Date(2026, 10, 14, 20, 30, 0, 0, time.UTC)

	first := dto.NewOrderID(at)
	second := dto.NewOrderID(at)

	// 20:30 UTC is already the next day in UTC+8
	assert.Regexp(t, `^LG-20261015-[0-9A-F]{6}$`, first)
	assert.NotEqual(t, first, second)
}

func TestCreateBookingRequest_Window(t *testing.T) {
	req := dto.CreateBookingRequest{ServiceDate: "2026-10-20", StartTime: "22:00", Hours: 4}

	start, end, err := req.Window()
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 10, 20, 14, 0, 0, 0, time.UTC), start.UTC())
	assert.Equal(t, 4*time.Hour, end.Sub(start))

	req.StartTime = "25:00"
	_, _, err = req.Window()
	assert.Error(t, err)
}

func TestUpdatePaymentRequest_ToCommand(t *testing.T) {
	withStatus := dto.UpdatePaymentRequest{PaymentStatus: model.PaymentStatusPaid, Status: model.StatusConfirmed, SendNotification: true}
	cmd := withStatus.ToCommand()

	require.NotNil(t, cmd.Status)
	assert.Equal(t, model.ConfirmPayment(true), cmd)

	paymentOnly := dto.UpdatePaymentRequest{PaymentStatus: model.PaymentStatusRefunded}
	assert.Nil(t, paymentOnly.ToCommand().Status)
}

func TestListFilter_ToFilterGroup(t *testing.T) {
	viewed := false
	from := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	filter := dto.ListFilter{
		Status: model.StatusConfirmed,
		Viewed: &viewed,
		From:   &from,
		Search: " LG-2026 ",
	}.ToFilterGroup()

	where, args := filter.GetWhereClause()

	assert.Contains(t, where, "bookings.status = :status")
	assert.Contains(t, where, "bookings.viewed_by_admin = :viewed_by_admin")
	assert.Contains(t, where, "bookings.start_datetime >= :start_from")
	assert.Contains(t, where, "bookings.order_id ILIKE :search_order")
	assert.Contains(t, where, " OR ")
	assert.Equal(t, "%LG-2026%", args["search_name"])
	assert.Equal(t, from, args["start_from"])

	empty := dto.ListFilter{}.ToFilterGroup()
	where, _ = empty.GetWhereClause()
	assert.Empty(t, where)
}

func TestLiveOverlapFilter(t *testing.T) {
	start := time.Date(2026, 10, 20, 1, 0, 0, 0, time.UTC)
	end := start.Add(4 * time.Hour)

	filter := dto.LiveOverlapFilter(start, end)
	where, args := filter.GetWhereClause()

	assert.Equal(t, "(bookings.status IN (:status_0) AND bookings.start_datetime <= :window_end AND bookings.end_datetime >= :window_start)", where)
	assert.Equal(t, model.StatusConfirmed, args["status_0"])
	assert.Equal(t, end, args["window_end"])
	assert.Equal(t, start, args["window_start"])
}

func TestActiveAssignmentFilter(t *testing.T) {
	filter := dto.ActiveAssignmentFilter("s-1")
	where, args := filter.GetWhereClause()

	assert.Equal(t, "(bookings.status IN (:status_0, :status_1) AND :staff_id = ANY(bookings.lifeguards_assigned))", where)
	assert.Equal(t, "s-1", args["staff_id"])
}

func TestParseListFilter(t *testing.T) {
	tests := []struct {
		name     string
		query    url.Values
		wantCode int
		check    func(t *testing.T, filter dto.ListFilter)
	}{
		{
			name:  "date range is inclusive of the to day",
			query: url.Values{"from": {"2026-10-01"}, "to": {"2026-10-31"}, "viewed": {"false"}, "status": {"confirmed"}},
			check: func(t *testing.T, filter dto.ListFilter) {
				require.NotNil(t, filter.From)
				require.NotNil(t, filter.To)
				require.NotNil(t, filter.Viewed)
				assert.False(t, *filter.Viewed)
				assert.Equal(t, model.StatusConfirmed, filter.Status)
				assert.Equal(t, time.Date(2026, 9, 30, 16, 0, 0, 0, time.UTC), filter.From.UTC())
				assert.Equal(t, time.Date(2026, 10, 31, 16, 0, 0, 0, time.UTC), filter.To.UTC())
			},
		},
		{
			name:  "empty query",
			query: url.Values{},
			check: func(t *testing.T, filter dto.ListFilter) {
				assert.Nil(t, filter.From)
				assert.Nil(t, filter.Viewed)
			},
		},
		{
			name:     "unknown status",
			query:    url.Values{"status": {"archived"}},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "bad date",
			query:    url.Values{"from": {"01/10/2026"}},
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, err := dto.ParseListFilter(tt.query)
			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			tt.check(t, filter)
		})
	}
}
