package dto

import (
	"lifeguard/shared/constant"
	"lifeguard/shared/model"
	"lifeguard/shared/timezone"
)

type Metadata struct {
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
	CreatedBy string `json:"created_by"`
	UpdatedBy string `json:"updated_by"`
}

func (m *Metadata) FromModel(model model.Metadata) {
	m.CreatedAt = timezone.Format(model.CreatedAt, constant.DateFormat)
	m.UpdatedAt = timezone.Format(model.UpdatedAt, constant.DateFormat)
	m.CreatedBy = model.CreatedBy
	m.UpdatedBy = model.UpdatedBy
}
