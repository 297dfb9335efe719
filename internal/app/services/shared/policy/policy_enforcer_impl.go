package policy

import (
	_ "embed"
	"fmt"
	"telehealth-service/internal/app/contracts"
	"telehealth-service/internal/pkg/constvars"
	"telehealth-service/internal/pkg/exceptions"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	stringadapter "github.com/casbin/casbin/v2/persist/string-adapter"
	"go.uber.org/zap"
)

var (
	//go:embed rbac_model.conf
	rbacModel string

	//go:embed rbac_policy.csv
	rbacPolicy string
)

type casbinPolicy struct {
	Log      *zap.Logger
	enforcer *casbin.Enforcer
}

// NewCasbinPolicy builds the enforcer from the embedded model and policy.
func NewCasbinPolicy(logger *zap.Logger) (contracts.AuthorizationPolicy, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("load rbac model: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(m, stringadapter.NewAdapter(rbacPolicy))
	if err != nil {
		return nil, fmt.Errorf("load rbac policy: %w", err)
	}

	return &casbinPolicy{Log: logger, enforcer: enforcer}, nil
}

func (p *casbinPolicy) Authorize(role, resource, action, ownership string) error {
	allowed, err := p.enforcer.Enforce(role, resource, action, ownership)
	if err != nil {
		p.Log.Error("casbinPolicy.Authorize enforce failed",
			zap.String("resource", resource),
			zap.String("action", action),
			zap.Error(err),
		)
		return exceptions.ErrAuthorizationPolicy(err)
	}
	if !allowed {
		return exceptions.ErrPermissionDenied(nil, role, resource, action, ownership)
	}
	return nil
}

// Ownership maps a boolean ownership check onto the policy vocabulary.
func Ownership(owned bool) string {
	if owned {
		return constvars.OwnershipSelf
	}
	return constvars.OwnershipOther
}
