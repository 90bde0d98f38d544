package dto

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"lifeguard/internal/domains/booking/model"
	pricingModel "lifeguard/internal/domains/pricing/model"
	"lifeguard/shared"
	"lifeguard/shared/constant"
	gDto "lifeguard/shared/dto"
	"lifeguard/shared/failure"
	gModel "lifeguard/shared/model"
	"lifeguard/shared/timezone"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const queryViewed = "viewed"

const (
	orderIDPrefix     = "LG"
	orderIDSuffixSize = 6
	orderIDDateLayout = "20060102"

	// OrderIDRule bounds what the public lookup accepts before touching storage.
	OrderIDRule = "required,max=32,printascii"
)

// NewOrderID builds the customer-facing reference LG-YYYYMMDD-XXXXXX.
func NewOrderID(at time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:orderIDSuffixSize]

	return fmt.Sprintf("%s-%s-%s", orderIDPrefix, timezone.Format(at, orderIDDateLayout), suffix)
}

type CreateBookingRequest struct {
	CustomerName  string `json:"customer_name"  validate:"required,max=100"`
	CustomerEmail string `json:"customer_email" validate:"required,email,max=100"`
	CustomerPhone string `json:"customer_phone" validate:"required,max=20"`
	Location      string `json:"location"       validate:"required,max=255"`
	Notes         string `json:"notes"          validate:"omitempty,max=1000"`
	ServiceType   string `json:"service_type"   validate:"required,oneof=private_pool event resort school other"`
	CustomService string `json:"custom_service" validate:"required_if=ServiceType other,max=100"`
	ServiceDate   string `json:"service_date"   validate:"required,date"`
	StartTime     string `json:"start_time"     validate:"required,clock"`
	Hours         int    `json:"hours"          validate:"required,gt=0,lte=24"`
	Lifeguards    int    `json:"lifeguards"     validate:"required,gt=0,lte=50"`
}

// Window is the service interval in the application timezone.
func (c *CreateBookingRequest) Window() (start, end time.Time, err error) {
	start, err = timezone.CombineDateTime(c.ServiceDate, c.StartTime)
	if err != nil {
		return start, end, fmt.Errorf("invalid service date or start time: %w", err)
	}

	return start, start.Add(time.Duration(c.Hours) * time.Hour), nil
}

func (c *CreateBookingRequest) ToModel(quote pricingModel.Quote, end, now time.Time, user string) model.Booking {
	customService := constant.Empty
	if c.ServiceType == model.ServiceTypeOther {
		customService = strings.TrimSpace(c.CustomService)
	}

	return model.Booking{
		ID:                 uuid.NewString(),
		OrderID:            NewOrderID(now),
		CustomerName:       strings.TrimSpace(c.CustomerName),
		CustomerEmail:      strings.ToLower(strings.TrimSpace(c.CustomerEmail)),
		CustomerPhone:      strings.TrimSpace(c.CustomerPhone),
		Location:           strings.TrimSpace(c.Location),
		Notes:              c.Notes,
		ServiceType:        c.ServiceType,
		CustomService:      customService,
		StartDatetime:      quote.ServiceAt,
		EndDatetime:        end,
		Hours:              c.Hours,
		Lifeguards:         c.Lifeguards,
		Amount:             quote.Total,
		Status:             model.StatusPending,
		PaymentStatus:      model.PaymentStatusPending,
		LifeguardsAssigned: pq.StringArray{},
		ViewedByAdmin:      false,
		Metadata:           gModel.NewMetadata(now, user),
	}
}

type UpdatePaymentRequest struct {
	PaymentStatus    string `json:"payment_status"    validate:"required,oneof=pending paid refunded"`
	Status           string `json:"status"            validate:"omitempty,oneof=pending confirmed completed cancelled"`
	SendNotification bool   `json:"send_notification"`
}

func (r *UpdatePaymentRequest) ToCommand() model.SetPaymentStatus {
	cmd := model.SetPaymentStatus{
		PaymentStatus: r.PaymentStatus,
		Notify:        r.SendNotification,
	}

	if r.Status != constant.Empty {
		status := r.Status
		cmd.Status = &status
	}

	return cmd
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed completed cancelled"`
}

func (r *UpdateStatusRequest) ToCommand() model.SetStatus {
	return model.SetStatus{Status: r.Status}
}

type BookingResponse struct {
	ID                 string   `json:"id"`
	OrderID            string   `json:"order_id"`
	CustomerName       string   `json:"customer_name"`
	CustomerEmail      string   `json:"customer_email"`
	CustomerPhone      string   `json:"customer_phone"`
	Location           string   `json:"location"`
	Notes              string   `json:"notes"`
	ServiceType        string   `json:"service_type"`
	CustomService      string   `json:"custom_service,omitempty"`
	StartDatetime      string   `json:"start_datetime"`
	EndDatetime        string   `json:"end_datetime"`
	Hours              int      `json:"hours"`
	Lifeguards         int      `json:"lifeguards"`
	Amount             float64  `json:"amount"`
	Status             string   `json:"status"`
	PaymentStatus      string   `json:"payment_status"`
	LifeguardsAssigned []string `json:"lifeguards_assigned"`
	ViewedByAdmin      bool     `json:"viewed_by_admin"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.OrderID = model.OrderID
	r.CustomerName = model.CustomerName
	r.CustomerEmail = model.CustomerEmail
	r.CustomerPhone = model.CustomerPhone
	r.Location = model.Location
	r.Notes = model.Notes
	r.ServiceType = model.ServiceType
	r.CustomService = model.CustomService
	r.StartDatetime = timezone.Format(model.StartDatetime, constant.DateFormat)
	r.EndDatetime = timezone.Format(model.EndDatetime, constant.DateFormat)
	r.Hours = model.Hours
	r.Lifeguards = model.Lifeguards
	r.Amount = model.Amount
	r.Status = model.Status
	r.PaymentStatus = model.PaymentStatus
	r.LifeguardsAssigned = append([]string{}, model.LifeguardsAssigned...)
	r.ViewedByAdmin = model.ViewedByAdmin
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

type CountResponse struct {
	Count int `json:"count"`
}

// ListFilter holds the admin listing filters. Empty fields are ignored.
type ListFilter struct {
	Status        string
	PaymentStatus string
	ServiceType   string
	Viewed        *bool
	From          *time.Time
	To            *time.Time
	Search        string
}

// ParseListFilter reads the listing filters from a query string. from and to
// are calendar days in the application timezone, both included.
func ParseListFilter(values url.Values) (ListFilter, error) {
	filter := ListFilter{
		Status:        values.Get(model.FieldStatus),
		PaymentStatus: values.Get(model.FieldPaymentStatus),
		ServiceType:   values.Get(model.FieldServiceType),
		Viewed:        shared.ConvertStringToBool(values.Get(queryViewed)),
		Search:        values.Get(constant.RequestParamSearch),
	}

	if filter.Status != constant.Empty && !model.IsValidStatus(filter.Status) {
		return filter, failure.Validationf("invalid status %q", filter.Status) //nolint:wrapcheck
	}

	if filter.PaymentStatus != constant.Empty && !model.IsValidPaymentStatus(filter.PaymentStatus) {
		return filter, failure.Validationf("invalid payment_status %q", filter.PaymentStatus) //nolint:wrapcheck
	}

	if from := values.Get(constant.RequestParamFrom); from != constant.Empty {
		at, err := timezone.Parse(constant.DateOnlyFormat, from)
		if err != nil {
			return filter, failure.Validationf("invalid from date %q, expected YYYY-MM-DD", from) //nolint:wrapcheck
		}

		filter.From = &at
	}

	if to := values.Get(constant.RequestParamTo); to != constant.Empty {
		at, err := timezone.Parse(constant.DateOnlyFormat, to)
		if err != nil {
			return filter, failure.Validationf("invalid to date %q, expected YYYY-MM-DD", to) //nolint:wrapcheck
		}

		next := at.AddDate(0, 0, 1)
		filter.To = &next
	}

	return filter, nil
}

func (f ListFilter) ToFilterGroup() gDto.FilterGroup {
	filters := []any{}

	if f.Status != constant.Empty {
		filters = append(filters, gDto.Filter{Field: model.FieldStatus, Value: f.Status, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	if f.PaymentStatus != constant.Empty {
		filters = append(filters, gDto.Filter{Field: model.FieldPaymentStatus, Value: f.PaymentStatus, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	if f.ServiceType != constant.Empty {
		filters = append(filters, gDto.Filter{Field: model.FieldServiceType, Value: f.ServiceType, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	if f.Viewed != nil {
		filters = append(filters, gDto.Filter{Field: model.FieldViewedByAdmin, Value: *f.Viewed, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	if f.From != nil {
		filters = append(filters, gDto.Filter{Field: model.FieldStartDatetime, ArgName: "start_from", Value: *f.From, Operator: gDto.FilterOperatorGreaterEq, Table: model.TableName})
	}

	if f.To != nil {
		filters = append(filters, gDto.Filter{Field: model.FieldStartDatetime, ArgName: "start_to", Value: *f.To, Operator: gDto.FilterOperatorLess, Table: model.TableName})
	}

	if search := strings.TrimSpace(f.Search); search != constant.Empty {
		filters = append(filters, gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorOr,
			Filters: []any{
				gDto.Filter{Field: model.FieldCustomerName, ArgName: "search_name", Value: search, Operator: gDto.FilterOperatorLike, Table: model.TableName},
				gDto.Filter{Field: model.FieldCustomerEmail, ArgName: "search_email", Value: search, Operator: gDto.FilterOperatorLike, Table: model.TableName},
				gDto.Filter{Field: model.FieldOrderID, ArgName: "search_order", Value: search, Operator: gDto.FilterOperatorLike, Table: model.TableName},
			},
		})
	}

	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  filters,
	}
}

// LiveOverlapFilter selects live bookings whose window touches [start, end],
// endpoints included.
func LiveOverlapFilter(start, end time.Time) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldStatus, Value: model.LiveStatuses, Operator: gDto.FilterOperatorIn, Table: model.TableName},
			gDto.Filter{Field: model.FieldStartDatetime, ArgName: "window_end", Value: end, Operator: gDto.FilterOperatorLessEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldEndDatetime, ArgName: "window_start", Value: start, Operator: gDto.FilterOperatorGreaterEq, Table: model.TableName},
		},
	}
}

// ActiveAssignmentFilter selects non-terminal bookings that list staffID.
func ActiveAssignmentFilter(staffID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldStatus, Value: model.ActiveStatuses, Operator: gDto.FilterOperatorIn, Table: model.TableName},
			gDto.Filter{Field: model.FieldLifeguardsAssigned, ArgName: "staff_id", Value: staffID, Operator: gDto.FilterOperatorAny, Table: model.TableName},
		},
	}
}
