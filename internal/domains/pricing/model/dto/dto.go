package dto

import (
	"lifeguard/internal/domains/pricing/model"
	"lifeguard/shared/constant"
	"lifeguard/shared/timezone"
)

type QuoteRequest struct {
	ServiceDate string `json:"service_date" validate:"required,date"`
	StartTime   string `json:"start_time"   validate:"required,clock"`
	Hours       int    `json:"hours"        validate:"gt=0,lte=24"`
}

type QuoteResponse struct {
	Hours           int     `json:"hours"`
	ServiceDatetime string  `json:"service_datetime"`
	LeadTimeHours   float64 `json:"lead_time_hours"`
	BaseRate        float64 `json:"base_rate"`
	BaseSubtotal    float64 `json:"base_subtotal"`
	SurchargeTier   string  `json:"surcharge_tier"`
	SurchargePct    int     `json:"surcharge_pct"`
	SurchargeAmount float64 `json:"surcharge_amount"`
	Total           float64 `json:"total"`
}

func (r *QuoteResponse) FromModel(quote model.Quote) {
	r.Hours = quote.Hours
	r.ServiceDatetime = timezone.Format(quote.ServiceAt, constant.DateFormat)
	r.LeadTimeHours = model.Round2(quote.LeadTime.Hours())
	r.BaseRate = quote.BaseRate
	r.BaseSubtotal = quote.BaseSubtotal
	r.SurchargeTier = string(quote.SurchargeTier)
	r.SurchargePct = quote.SurchargePct
	r.SurchargeAmount = quote.SurchargeAmount
	r.Total = quote.Total
}
