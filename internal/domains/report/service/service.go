package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"lifeguard/infras/otel"
	"lifeguard/infras/s3"
	bookingModel "lifeguard/internal/domains/booking/model"
	bookingDto "lifeguard/internal/domains/booking/model/dto"
	bookingRepo "lifeguard/internal/domains/booking/repository"
	"lifeguard/internal/domains/report/model"
	"lifeguard/internal/domains/report/model/dto"
	"lifeguard/shared/constant"
	gDto "lifeguard/shared/dto"
	"lifeguard/shared/timezone"
	"lifeguard/shared/validator"

	"github.com/rs/zerolog/log"
)

const exportFileLayout = "20060102"

var csvHeader = []string{
	"order_id", "customer_name", "customer_email", "customer_phone", "location",
	"service_type", "start", "end", "hours", "lifeguards", "assigned",
	"amount", "status", "payment_status", "created_at",
}

type Report interface {
	Revenue(ctx context.Context, req dto.RangeRequest) (dto.RevenueResponse, error)
	ExportCSV(ctx context.Context, req dto.RangeRequest) (dto.ExportResponse, error)
}

type serviceImpl struct {
	bookingRepo bookingRepo.Booking
	s3          s3.S3
	clock       timezone.Clock
	otel        otel.Otel
}

func New(bookingRepo bookingRepo.Booking, s3 s3.S3, clock timezone.Clock, otel otel.Otel) Report {
	return &serviceImpl{
		bookingRepo: bookingRepo,
		s3:          s3,
		clock:       clock,
		otel:        otel,
	}
}

func (s *serviceImpl) Revenue(ctx context.Context, req dto.RangeRequest) (res dto.RevenueResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".report.Revenue")
	defer scope.End()
	defer scope.TraceIfError(err)

	bookings, from, to, err := s.bookings(ctx, req)
	if err != nil {
		return res, err
	}

	res.FromModel(model.Aggregate(from, to, bookings), bookingModel.ServiceTypes)

	return res, nil
}

// ExportCSV uploads every booking in the range as a CSV file and returns its URL.
func (s *serviceImpl) ExportCSV(ctx context.Context, req dto.RangeRequest) (res dto.ExportResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".report.ExportCSV")
	defer scope.End()
	defer scope.TraceIfError(err)

	bookings, from, to, err := s.bookings(ctx, req)
	if err != nil {
		return res, err
	}

	data, err := RenderCSV(bookings)
	if err != nil {
		log.Error().Err(err).Msg("failed to render bookings csv")

		return res, fmt.Errorf("failed to render bookings csv: %w", err)
	}

	fileName := fmt.Sprintf("bookings-%s-%s-%d.csv",
		timezone.Format(from, exportFileLayout),
		timezone.Format(to.AddDate(0, 0, -1), exportFileLayout),
		s.clock.Now().Unix(),
	)

	url, err := s.s3.UploadBytes(ctx, model.Directory, fileName, constant.ContentTypeCSV, data)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload bookings csv")

		return res, fmt.Errorf("failed to upload bookings csv: %w", err)
	}

	res.URL = url
	res.Rows = len(bookings)

	return res, nil
}

func (s *serviceImpl) bookings(ctx context.Context, req dto.RangeRequest) ([]bookingModel.Booking, time.Time, time.Time, error) {
	if err := validator.ValidateStruct(&req); err != nil {
		return nil, time.Time{}, time.Time{}, err //nolint:wrapcheck
	}

	from, to, err := req.Bounds()
	if err != nil {
		return nil, from, to, err
	}

	params := gDto.QueryParams{SortBy: bookingModel.FieldStartDatetime, SortDir: gDto.SortDirAsc}

	bookings, err := s.bookingRepo.GetAll(ctx, params, bookingDto.ListFilter{From: &from, To: &to}.ToFilterGroup())
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings for report")

		return nil, from, to, fmt.Errorf("failed to get bookings for report: %w", err)
	}

	return bookings, from, to, nil
}

// RenderCSV writes one row per booking, times in the application timezone.
func RenderCSV(bookings []bookingModel.Booking) ([]byte, error) {
	var buf bytes.Buffer

	writer := csv.NewWriter(&buf)

	if err := writer.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("writing csv header: %w", err)
	}

	for _, booking := range bookings {
		row := []string{
			booking.OrderID,
			booking.CustomerName,
			booking.CustomerEmail,
			booking.CustomerPhone,
			booking.Location,
			booking.ServiceType,
			timezone.Format(booking.StartDatetime, constant.DateFormat),
			timezone.Format(booking.EndDatetime, constant.DateFormat),
			strconv.Itoa(booking.Hours),
			strconv.Itoa(booking.Lifeguards),
			strings.Join(booking.LifeguardsAssigned, " "),
			strconv.FormatFloat(booking.Amount, 'f', 2, 64),
			booking.Status,
			booking.PaymentStatus,
			timezone.Format(booking.CreatedAt, constant.DateFormat),
		}

		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("writing csv row %s: %w", booking.OrderID, err)
		}
	}

	writer.Flush()

	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flushing csv: %w", err)
	}

	return buf.Bytes(), nil
}
