package rbac

import (
	"strings"
	"sync"

	"github.com/casbin/casbin/v2"
)

// Service answers "may this role perform this action on this resource".
// The policy is the static role/permission file loaded at startup; roles
// are the closed set EMPLOYEE and MANAGER, with MANAGER inheriting every
// EMPLOYEE permission through the grouping policy.
type Service interface {
	Enforce(role, resource, action string) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
}

func NewService(enforcer *casbin.Enforcer) Service {
	return &service{enforcer: enforcer}
}

func (s *service) Enforce(role, resource, action string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.enforcer.Enforce(
		strings.ToUpper(strings.TrimSpace(role)),
		resource,
		action,
	)
}
