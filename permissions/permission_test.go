package permissions_test

import (
	"net/http"
	"testing"

	"studio/permissions"
	"studio/shared/constant"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_EmbeddedTable(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)

	assert.False(t, data.Skip)
	assert.NotEmpty(t, data.Endpoints)
}

func TestFindPermissions(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)

	tests := []struct {
		name   string
		path   string
		method string
		want   []string
	}{
		{name: "admin only", path: "/v1/settlements/{id}/review", method: http.MethodPatch, want: []string{constant.RoleAdmin}},
		{name: "admin and artist", path: "/v1/bookings/{id}/status", method: http.MethodPatch, want: []string{constant.RoleAdmin, constant.RoleArtist}},
		{name: "any authenticated", path: "/v1/bookings/", method: http.MethodPost, want: []string{}},
		{name: "method matters", path: "/v1/artists/{id}", method: http.MethodDelete, want: nil},
		{name: "unknown route", path: "/v1/unknown", method: http.MethodGet, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := data.FindPermissions(tt.path, tt.method)

			assert.Equal(t, tt.want, got.Permissions)
			assert.False(t, got.Skip)
		})
	}
}

func TestParse_NormalizesMethod(t *testing.T) {
	data := permissions.Parse([]byte(`{"endpoints":[{"path":"/v1/artists/","method":"post","permissions":["admin","curator"]}]}`))
	require.NotNil(t, data)

	got := data.FindPermissions("/v1/artists/", http.MethodPost)
	assert.Equal(t, []string{constant.RoleAdmin, "curator"}, got.Permissions)

	assert.Nil(t, permissions.Parse([]byte(`{"endpoints":`)))
}

func TestPermission_Allows(t *testing.T) {
	tests := []struct {
		name       string
		permission permissions.Permission
		role       string
		want       bool
	}{
		{name: "open to any role", permission: permissions.Permission{}, role: constant.RoleClient, want: true},
		{name: "listed role", permission: permissions.Permission{Permissions: []string{constant.RoleAdmin}}, role: constant.RoleAdmin, want: true},
		{name: "unlisted role", permission: permissions.Permission{Permissions: []string{constant.RoleAdmin}}, role: constant.RoleArtist, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.permission.Allows(tt.role))
		})
	}
}
