package service_test

import (
	"context"
	"encoding/csv"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	otelMocks "lifeguard/infras/otel/mocks"
	s3Mocks "lifeguard/infras/s3/mocks"
	bookingMocks "lifeguard/internal/domains/booking/mocks"
	bookingModel "lifeguard/internal/domains/booking/model"
	"lifeguard/internal/domains/report/model/dto"
	"lifeguard/internal/domains/report/service"
	"lifeguard/shared/constant"
	gDto "lifeguard/shared/dto"
	"lifeguard/shared/failure"
	"lifeguard/shared/timezone"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var now = time.Date(2026, 10, 15, 1, 0, 0, 0, time.UTC)

func bookings() []bookingModel.Booking {
	return []bookingModel.Booking{
		{
			OrderID:            "LG-20261001-AAAAAA",
			CustomerName:       "Tan, Wei",
			ServiceType:        bookingModel.ServiceTypeEvent,
			StartDatetime:      time.Date(2026, 10, 2, 1, 0, 0, 0, time.UTC),
			EndDatetime:        time.Date(2026, 10, 2, 5, 0, 0, 0, time.UTC),
			Hours:              4,
			Lifeguards:         2,
			LifeguardsAssigned: pq.StringArray{"s-1", "s-2"},
			Amount:             120,
			Status:             bookingModel.StatusConfirmed,
			PaymentStatus:      bookingModel.PaymentStatusPaid,
		},
		{
			OrderID:       "LG-20261003-BBBBBB",
			ServiceType:   bookingModel.ServiceTypeSchool,
			Amount:        75.5,
			Status:        bookingModel.StatusPending,
			PaymentStatus: bookingModel.PaymentStatusPending,
		},
	}
}

func newService(t *testing.T) (service.Report, *bookingMocks.MockBooking, *s3Mocks.MockS3) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := bookingMocks.NewMockBooking(ctrl)
	storage := s3Mocks.NewMockS3(ctrl)

	return service.New(repo, storage, timezone.FixedClock{At: now}, otelMocks.NewOtel()), repo, storage
}

func TestReportService_Revenue(t *testing.T) {
	svc, repo, _ := newService(t)

	repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]bookingModel.Booking, error) {
			_, args := filter.GetWhereClause()

			// October in UTC+8, end exclusive
			assert.True(t, time.Date(2026, 9, 30, 16, 0, 0, 0, time.UTC).Equal(args["start_from"].(time.Time)))
			assert.True(t, time.Date(2026, 10, 31, 16, 0, 0, 0, time.UTC).Equal(args["start_to"].(time.Time)))
			assert.Equal(t, bookingModel.FieldStartDatetime, params.SortBy)

			return bookings(), nil
		})

	res, err := svc.Revenue(context.Background(), dto.RangeRequest{From: "2026-10-01", To: "2026-10-31"})
	require.NoError(t, err)

	assert.Equal(t, 2, res.TotalBookings)
	assert.Equal(t, 120.0, res.Paid)
	assert.Equal(t, 75.5, res.Outstanding)
	assert.Equal(t, []dto.ServiceTypeRevenueResponse{
		{ServiceType: bookingModel.ServiceTypeEvent, Bookings: 1, Paid: 120},
		{ServiceType: bookingModel.ServiceTypeSchool, Bookings: 1},
	}, res.ByServiceType)
}

func TestReportService_Revenue_InvalidRange(t *testing.T) {
	tests := []struct {
		name string
		req  dto.RangeRequest
	}{
		{name: "missing from", req: dto.RangeRequest{To: "2026-10-31"}},
		{name: "not a date", req: dto.RangeRequest{From: "October", To: "2026-10-31"}},
		{name: "reversed", req: dto.RangeRequest{From: "2026-10-31", To: "2026-10-01"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newService(t)

			_, err := svc.Revenue(context.Background(), tt.req)

			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		})
	}
}

func TestReportService_ExportCSV(t *testing.T) {
	svc, repo, storage := newService(t)

	repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(bookings(), nil)
	storage.EXPECT().
		UploadBytes(gomock.Any(), "reports", "bookings-20261001-20261031-1792026000.csv", constant.ContentTypeCSV, gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _, _ string, data []byte) (string, error) {
			rows, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
			require.NoError(t, err)

			require.Len(t, rows, 3)
			assert.Equal(t, "order_id", rows[0][0])
			assert.Equal(t, "Tan, Wei", rows[1][1])
			assert.Equal(t, "s-1 s-2", rows[1][10])
			assert.Equal(t, "120.00", rows[1][11])

			return "https://files.example.com/reports/x.csv", nil
		})

	res, err := svc.ExportCSV(context.Background(), dto.RangeRequest{From: "2026-10-01", To: "2026-10-31"})
	require.NoError(t, err)

	assert.Equal(t, "https://files.example.com/reports/x.csv", res.URL)
	assert.Equal(t, 2, res.Rows)
}

func TestReportService_ExportCSV_UploadError(t *testing.T) {
	svc, repo, storage := newService(t)

	repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(bookings(), nil)
	storage.EXPECT().UploadBytes(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("", errors.New("access denied"))

	_, err := svc.ExportCSV(context.Background(), dto.RangeRequest{From: "2026-10-01", To: "2026-10-31"})

	assert.ErrorContains(t, err, "failed to upload bookings csv: access denied")
}
