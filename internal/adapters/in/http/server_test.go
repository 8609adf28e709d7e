package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/staff"
	"fulfillment/internal/core/domain/services"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contextWithRoleHeader(value string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if value != "" {
		req.Header.Set(ActorRoleHeader, value)
	}
	return e.NewContext(req, httptest.NewRecorder())
}

func TestActorRole_ParsesKnownRoles(t *testing.T) {
	for header, want := range map[string]staff.Role{
		"admin":   staff.Admin,
		"manager": staff.Manager,
		"sales":   staff.Sales,
		"packer":  staff.Packer,
		"driver":  staff.Driver,
	} {
		role, err := actorRole(contextWithRoleHeader(header))

		require.NoError(t, err, header)
		assert.Equal(t, want, role)
	}
}

func TestActorRole_RequiresHeader(t *testing.T) {
	_, err := actorRole(contextWithRoleHeader(""))

	require.Error(t, err)
	assert.Contains(t, err.Error(), ActorRoleHeader)
}

func TestActorRole_RejectsUnknownRole(t *testing.T) {
	_, err := actorRole(contextWithRoleHeader("wizard"))

	require.Error(t, err)
}

func TestActorRole_RejectsSystemRole(t *testing.T) {
	// The system role drives the packing timeout sweep internally; a caller
	// presenting it must not inherit the sweep's transition permissions.
	role, err := actorRole(contextWithRoleHeader("system"))

	require.Error(t, err)
	assert.Equal(t, staff.UnknownRole, role)
}

func TestServer_NextStatuses(t *testing.T) {
	s := &Server{transitions: services.NewTransitionTable()}

	assert.Equal(t,
		[]string{"cancelled", "confirmed"},
		s.nextStatuses(order.AwaitingApproval),
	)
	assert.Equal(t,
		[]string{"cancelled", "confirmed", "ready_for_delivery"},
		s.nextStatuses(order.Packing),
	)
	assert.Empty(t, s.nextStatuses(order.Cancelled))
}
