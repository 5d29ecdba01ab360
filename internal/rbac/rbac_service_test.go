package rbac_test

import (
	"path/filepath"
	"testing"

	"github.com/yashcpg/leave1/internal/rbac"
	"github.com/yashcpg/leave1/internal/rbac/infra"

	"github.com/stretchr/testify/assert"
)

func newTestService(t *testing.T) rbac.Service {
	t.Helper()

	enforcer, err := infra.NewEnforcer(
		filepath.Join("infra", "model.conf"),
		filepath.Join("infra", "policy.csv"),
	)
	assert.NoError(t, err)

	return rbac.NewService(enforcer)
}

func TestRBACService_Enforce(t *testing.T) {
	svc := newTestService(t)

	cases := []struct {
		name     string
		role     string
		resource string
		action   string
		allowed  bool
	}{
		{"employee can apply", "EMPLOYEE", "leave_request", "apply", true},
		{"employee cannot approve", "EMPLOYEE", "leave_request", "approve", false},
		{"employee cannot allocate balance", "EMPLOYEE", "leave_balance", "allocate", false},
		{"manager can approve", "MANAGER", "leave_request", "approve", true},
		{"manager inherits apply", "MANAGER", "leave_request", "apply", true},
		{"manager can allocate balance", "MANAGER", "leave_balance", "allocate", true},
		{"employee can read dashboard", "EMPLOYEE", "dashboard", "read", true},
		{"role is normalized", "  manager ", "leave_request", "approve", true},
		{"unknown role denied", "GUEST", "leave_request", "read", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			allowed, err := svc.Enforce(tc.role, tc.resource, tc.action)
			assert.NoError(t, err)
			assert.Equal(t, tc.allowed, allowed)
		})
	}
}
