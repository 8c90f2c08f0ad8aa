package permissions_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eke/permissions"
)

func TestGet(t *testing.T) {
	data := permissions.Get()

	require.NotNil(t, data)
	assert.False(t, data.Skip)
	assert.NotEmpty(t, data.Endpoints)
}

func TestPermissionData_FindPermissions(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)

	publicRoutes := []string{
		"/v1/health",
		"/v1/listings",
		"/v1/listings/{id}",
		"/v1/ratings/listing/{id}",
	}

	for _, route := range publicRoutes {
		perm := data.FindPermissions(route, http.MethodGet)
		assert.True(t, perm.Skip, "expected GET %s to be served anonymously", route)
	}

	// Writes never skip auth, and unlisted routes fall through to the
	// default guards as the zero Permission.
	assert.False(t, data.FindPermissions("/v1/listings", http.MethodPost).Skip)
	assert.Equal(t, permissions.Permission{}, data.FindPermissions("/v1/bookings", http.MethodPost))
}
