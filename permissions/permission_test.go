package permissions_test

import (
	"testing"

	"lifeguard/permissions"
	"lifeguard/shared/constant"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)

	tests := []struct {
		name      string
		path      string
		method    string
		wantSkip  bool
		wantRoles []string
	}{
		{name: "public intake", path: "/v1/bookings/", method: "POST", wantSkip: true},
		{name: "public intake without slash", path: "/v1/bookings", method: "POST", wantSkip: true},
		{name: "public quote", path: "/v1/quotes", method: "POST", wantSkip: true},
		{name: "public order lookup", path: "/v1/bookings/order/{orderID}", method: "GET", wantSkip: true},
		{name: "login", path: "/v1/auth/login", method: "post", wantSkip: true},
		{name: "admin listing", path: "/v1/bookings/", method: "GET", wantRoles: []string{constant.RoleSuperAdmin, constant.RoleAdmin}},
		{name: "assign", path: "/v1/bookings/{id}/lifeguards", method: "PUT", wantRoles: []string{constant.RoleSuperAdmin, constant.RoleAdmin}},
		{name: "register is superadmin only", path: "/v1/auth/register", method: "POST", wantRoles: []string{constant.RoleSuperAdmin}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			permission := data.FindPermissions(tt.path, tt.method)

			assert.Equal(t, tt.wantSkip, permission.Skip)
			assert.Equal(t, tt.wantRoles, permission.Permissions)
		})
	}
}

func TestFindPermissions_Unknown(t *testing.T) {
	data := permissions.Parse([]byte(`{"endpoints":[{"path":"/v1/a","method":"GET","skip":true}]}`))
	require.NotNil(t, data)

	assert.Equal(t, permissions.Permission{}, data.FindPermissions("/v1/b", "GET"))
	assert.Nil(t, permissions.Parse([]byte(`{`)))
}
