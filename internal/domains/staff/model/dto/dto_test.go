package dto_test

import (
	"testing"
	"time"

	"lifeguard/internal/domains/staff/model/dto"

	"github.com/stretchr/testify/assert"
)

func TestCreateStaffRequest_ToModel(t *testing.T) {
	now := time.Date(2026, 10, 15, 1, 0, 0, 0, time.UTC)
	inactive := false

	tests := []struct {
		name   string
		req    dto.CreateStaffRequest
		active bool
	}{
		{name: "active by default", req: dto.CreateStaffRequest{Name: "Marco", Email: " Marco@Pool.SG "}, active: true},
		{name: "explicitly inactive", req: dto.CreateStaffRequest{Name: "Lee", IsActive: &inactive}, active: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			staff := tt.req.ToModel("admin-1", now)

			assert.NotEmpty(t, staff.ID)
			assert.Equal(t, tt.active, staff.IsActive)
			assert.Equal(t, "admin-1", staff.UpdatedBy)
		})
	}

	staff := tests[0].req.ToModel("admin-1", now)
	assert.Equal(t, "marco@pool.sg", staff.Email)
}

func TestListFilter_ToFilterGroup(t *testing.T) {
	filter := dto.ListFilter{Search: "ann"}.ToFilterGroup()
	where, args := filter.GetWhereClause()

	assert.Equal(t, "((staff.name ILIKE :search_name OR staff.contact_number ILIKE :search_contact))", where)
	assert.Equal(t, "%ann%", args["search_contact"])
}

func TestByIDs(t *testing.T) {
	filter := dto.ByIDs([]string{"s-1", "s-2"})
	where, args := filter.GetWhereClause()

	assert.Equal(t, "(staff.id IN (:staff_id_0, :staff_id_1))", where)
	assert.Equal(t, "s-2", args["staff_id_1"])
}
