package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"time"

	"lifeguard/infras/otel"
	"lifeguard/internal/domains/pricing/model"
	"lifeguard/internal/domains/pricing/model/dto"
	"lifeguard/shared/constant"
	"lifeguard/shared/failure"
	"lifeguard/shared/timezone"
	"lifeguard/shared/validator"
)

type Pricing interface {
	Quote(ctx context.Context, serviceAt time.Time, hours int) (model.Quote, error)
	Estimate(ctx context.Context, req dto.QuoteRequest) (dto.QuoteResponse, error)
}

type serviceImpl struct {
	clock timezone.Clock
	otel  otel.Otel
}

func New(clock timezone.Clock, otel otel.Otel) Pricing {
	return &serviceImpl{
		clock: clock,
		otel:  otel,
	}
}

func (s *serviceImpl) Quote(ctx context.Context, serviceAt time.Time, hours int) (quote model.Quote, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".pricing.Quote")
	defer scope.End()
	defer scope.TraceIfError(err)

	if hours <= 0 {
		return quote, failure.BadRequestFromString("hours must be greater than 0") //nolint:wrapcheck
	}

	quote = model.NewQuote(s.clock.Now(), timezone.ToAppTime(serviceAt), hours)

	scope.SetAttributes(map[string]any{
		"quote.tier":  string(quote.SurchargeTier),
		"quote.total": quote.Total,
	})

	return quote, nil
}

func (s *serviceImpl) Estimate(ctx context.Context, req dto.QuoteRequest) (res dto.QuoteResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".pricing.Estimate")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err //nolint:wrapcheck
	}

	serviceAt, err := timezone.CombineDateTime(req.ServiceDate, req.StartTime)
	if err != nil {
		return res, failure.BadRequestFromString("invalid service date or start time") //nolint:wrapcheck
	}

	quote, err := s.Quote(ctx, serviceAt, req.Hours)
	if err != nil {
		return res, err
	}

	res.FromModel(quote)

	return res, nil
}
