package permissions_test

import (
	"net/http"
	"resto/permissions"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet_EmbeddedTable(t *testing.T) {
	data := permissions.Get()

	if assert.NotNil(t, data) {
		for _, path := range []string{"/v1/admin/users", "/v1/admin/users/", "/v1/admin/users/{id}/anything"} {
			users := data.FindPermissions(path, http.MethodPost)
			assert.True(t, users.Allows("superadmin"), path)
			assert.False(t, users.Allows("admin"), path)
		}

		bookings := data.FindPermissions("/v1/admin/bookings/{id}/approve", http.MethodPost)
		assert.True(t, bookings.Allows("admin"))
	}
}

func TestFindPermissions(t *testing.T) {
	data := &permissions.PermissionData{
		Endpoints: []permissions.Permission{
			{Path: "/v1/admin/users/", Method: http.MethodGet, Permissions: []string{"superadmin", "admin"}},
		},
		Prefixes: []permissions.Permission{
			{Path: "/v1/admin", Permissions: []string{"admin", "superadmin"}},
			{Path: "/v1/admin/users/", Permissions: []string{"superadmin"}},
		},
	}

	tests := []struct {
		name      string
		path      string
		method    string
		wantAdmin bool
	}{
		{name: "exact rule wins over prefix", path: "/v1/admin/users", method: http.MethodGet, wantAdmin: true},
		{name: "longest prefix applies", path: "/v1/admin/users", method: http.MethodDelete},
		{name: "nested route under prefix", path: "/v1/admin/users/{id}", method: http.MethodPatch},
		{name: "shorter prefix elsewhere", path: "/v1/admin/bookings", method: http.MethodPost, wantAdmin: true},
		{name: "sibling name is not a prefix match", path: "/v1/admin/users-export", method: http.MethodGet, wantAdmin: true},
		{name: "no rule at all", path: "/v1/public", method: http.MethodGet, wantAdmin: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantAdmin, data.FindPermissions(tt.path, tt.method).Allows("admin"))
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr bool
	}{
		{
			name: "valid",
			data: `{"endpoints":[{"path":"/v1/admin/users/","method":"GET","permissions":["superadmin"]}]}`,
		},
		{
			name:    "unknown role",
			data:    `{"endpoints":[{"path":"/v1/admin/users/","method":"GET","permissions":["owner"]}]}`,
			wantErr: true,
		},
		{
			name:    "lower case method",
			data:    `{"endpoints":[{"path":"/v1/admin/users/","method":"get","permissions":["admin"]}]}`,
			wantErr: true,
		},
		{
			name:    "relative path",
			data:    `{"endpoints":[{"path":"admin/users","method":"GET"}]}`,
			wantErr: true,
		},
		{
			name: "duplicate route",
			data: `{"endpoints":[
				{"path":"/v1/admin/users/","method":"GET","permissions":["admin"]},
				{"path":"/v1/admin/users/","method":"GET","permissions":["superadmin"]}
			]}`,
			wantErr: true,
		},
		{
			name:    "prefix without roles",
			data:    `{"prefixes":[{"path":"/v1/admin/users"}],"endpoints":[{"path":"/v1/admin","method":"GET"}]}`,
			wantErr: true,
		},
		{
			name: "duplicate route differing by trailing slash",
			data: `{"endpoints":[
				{"path":"/v1/admin/users","method":"GET","permissions":["admin"]},
				{"path":"/v1/admin/users/","method":"GET","permissions":["superadmin"]}
			]}`,
			wantErr: true,
		},
		{
			name:    "malformed json",
			data:    `{"endpoints":`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := permissions.Parse([]byte(tt.data))

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, data)
			} else {
				assert.NoError(t, err)
				assert.Len(t, data.Endpoints, 1)
			}
		})
	}
}
