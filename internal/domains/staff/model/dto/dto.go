package dto

import (
	"strings"
	"time"

	"lifeguard/internal/domains/staff/model"
	"lifeguard/shared"
	"lifeguard/shared/constant"
	gDto "lifeguard/shared/dto"
	gModel "lifeguard/shared/model"

	"github.com/google/uuid"
)

type CreateStaffRequest struct {
	Name          string `json:"name"           validate:"required,max=100"`
	ContactNumber string `json:"contact_number" validate:"required,max=20"`
	Email         string `json:"email"          validate:"omitempty,email,max=100"`
	IsActive      *bool  `json:"is_active"      validate:"omitempty"`
}

func (c *CreateStaffRequest) ToModel(user string, now time.Time) model.Staff {
	active := true
	if c.IsActive != nil {
		active = *c.IsActive
	}

	return model.Staff{
		ID:            uuid.NewString(),
		Name:          strings.TrimSpace(c.Name),
		ContactNumber: strings.TrimSpace(c.ContactNumber),
		Email:         strings.ToLower(strings.TrimSpace(c.Email)),
		IsActive:      active,
		Metadata:      gModel.NewMetadata(now, user),
	}
}

type UpdateStaffRequest struct {
	Name          string `db:"name"           json:"name"           validate:"omitempty,max=100"`
	ContactNumber string `db:"contact_number" json:"contact_number" validate:"omitempty,max=20"`
	Email         string `db:"email"          json:"email"          validate:"omitempty,email,max=100"`
	IsActive      *bool  `db:"is_active"      json:"is_active"      validate:"omitempty"`
}

type StaffResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	ContactNumber string `json:"contact_number"`
	Email         string `json:"email"`
	IsActive      bool   `json:"is_active"`
	gDto.Metadata
}

func (r *StaffResponse) FromModel(model model.Staff) {
	r.ID = model.ID
	r.Name = model.Name
	r.ContactNumber = model.ContactNumber
	r.Email = model.Email
	r.IsActive = model.IsActive
	r.Metadata.FromModel(model.Metadata)
}

func FromModels(models []model.Staff) []StaffResponse {
	res := make([]StaffResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res
}

type GetStaffResponse struct {
	Staff     []StaffResponse `json:"staff"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetStaffResponse) FromModels(models []model.Staff, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)
	r.Staff = FromModels(models)
}

type ListFilter struct {
	Active *bool
	Search string
}

func (f ListFilter) ToFilterGroup() gDto.FilterGroup {
	filters := []any{}

	if f.Active != nil {
		filters = append(filters, gDto.Filter{Field: model.FieldIsActive, Value: *f.Active, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	if search := strings.TrimSpace(f.Search); search != constant.Empty {
		filters = append(filters, gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorOr,
			Filters: []any{
				gDto.Filter{Field: model.FieldName, ArgName: "search_name", Value: search, Operator: gDto.FilterOperatorLike, Table: model.TableName},
				gDto.Filter{Field: model.FieldContactNumber, ArgName: "search_contact", Value: search, Operator: gDto.FilterOperatorLike, Table: model.TableName},
			},
		})
	}

	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  filters,
	}
}

// ByIDs selects the staff whose id is in ids.
func ByIDs(ids []string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldID, ArgName: "staff_id", Value: ids, Operator: gDto.FilterOperatorIn, Table: model.TableName},
		},
	}
}
