package rbac

import (
	"sync"

	"github.com/casbin/casbin/v2"
)

const (
	RoleAdmin    = "ADMIN"
	RoleEmployee = "EMPLOYEE"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(role, resource, action string) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
	mu       sync.Mutex
}

// defaultPolicies is the static role grid: every permission the employee
// role holds, the admin role holds too, plus the manage actions.
var defaultPolicies = [][]string{
	{RoleEmployee, "request", "create"},
	{RoleEmployee, "request", "read"},
	{RoleEmployee, "request", "update"},
	{RoleEmployee, "request", "decide"},
	{RoleEmployee, "team", "read"},
	{RoleEmployee, "user", "read"},

	{RoleAdmin, "request", "create"},
	{RoleAdmin, "request", "read"},
	{RoleAdmin, "request", "update"},
	{RoleAdmin, "request", "decide"},
	{RoleAdmin, "request", "manage"},
	{RoleAdmin, "team", "read"},
	{RoleAdmin, "team", "manage"},
	{RoleAdmin, "user", "read"},
	{RoleAdmin, "user", "manage"},
}

func NewService(enforcer *casbin.Enforcer) (Service, error) {
	for _, p := range defaultPolicies {
		if _, err := enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}
	return &service{enforcer: enforcer}, nil
}

func (s *service) Enforce(role, resource, action string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.enforcer.Enforce(role, resource, action)
}
