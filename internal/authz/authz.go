package authz

import (
	"fmt"

	"github.com/land-deals/backend/internal/constants"

	"github.com/casbin/casbin/v3"
	"github.com/casbin/casbin/v3/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"
)

const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && keyMatch(r.obj, p.obj) && regexMatch(r.act, p.act)
`

// rolePolicies is the default route policy set. Admins can do everything;
// regular users cannot delete deals or their documents but may delete the
// payments they recorded (the service layer checks ownership).
var rolePolicies = [][]string{
	{"role:admin", "/api/v1/*", ".*"},
	{"role:user", "/api/v1/*", "(GET)|(POST)|(PUT)"},
	{"role:user", "/api/v1/payments/*", "DELETE"},
}

// Service wraps the casbin enforcer with policies persisted in the
// application database.
type Service struct {
	enforcer *casbin.Enforcer
}

// NewService builds the enforcer and seeds the default policies.
func NewService(db *gorm.DB) (*Service, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, fmt.Errorf("casbin adapter: %w", err)
	}
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("casbin model: %w", err)
	}
	enforcer, err := casbin.NewEnforcer(m, adapter)
	if err != nil {
		return nil, fmt.Errorf("casbin enforcer: %w", err)
	}

	for _, policy := range rolePolicies {
		if _, err := enforcer.AddPolicy(policy[0], policy[1], policy[2]); err != nil {
			return nil, fmt.Errorf("seed policy %v: %w", policy, err)
		}
	}
	return &Service{enforcer: enforcer}, nil
}

// Enforce reports whether a role may perform method on path.
func (s *Service) Enforce(role, path, method string) (bool, error) {
	if role == "" {
		role = constants.UserRoleUser
	}
	return s.enforcer.Enforce("role:"+role, path, method)
}
