package authz

import "fmt"

// RoleSeed 预置角色定义
type RoleSeed struct {
	Role      string
	Inherits  []string
	Policies  []Policy
	Immutable bool
}

// BuiltinRoleSeeds 市场后台预置角色：analyst 只读，moderator 负责内容治理，operator 负责运营配置
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role: "analyst",
			Policies: []Policy{
				{Object: "/admin/*", Action: "GET"},
				{Object: "/admin/password", Action: "PUT"},
			},
			Immutable: true,
		},
		{
			Role:     "moderator",
			Inherits: []string{"analyst"},
			Policies: []Policy{
				{Object: "/admin/bulk-action", Action: "POST"},
				{Object: "/admin/forum-categories", Action: "*"},
				{Object: "/admin/forum-categories/:id", Action: "*"},
				{Object: "/admin/announcements", Action: "POST"},
			},
			Immutable: true,
		},
		{
			Role:     "operator",
			Inherits: []string{"analyst"},
			Policies: []Policy{
				{Object: "/admin/categories", Action: "*"},
				{Object: "/admin/categories/:id", Action: "*"},
				{Object: "/admin/categories/:id/parameters", Action: "*"},
				{Object: "/admin/category-parameters/:id", Action: "*"},
				{Object: "/admin/notification-templates", Action: "*"},
				{Object: "/admin/notification-templates/:id", Action: "*"},
				{Object: "/admin/settings/marketplace", Action: "PUT"},
				{Object: "/admin/settings/smtp", Action: "PUT"},
				{Object: "/admin/settings/smtp/test", Action: "POST"},
				{Object: "/admin/settings/captcha", Action: "PUT"},
				{Object: "/admin/upload", Action: "POST"},
			},
			Immutable: true,
		},
	}
}

// BootstrapBuiltinRoles 初始化预置角色与默认策略，重复执行无副作用
func (s *Service) BootstrapBuiltinRoles() error {
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}

	changed := false
	for _, seed := range BuiltinRoleSeeds() {
		seeded, err := s.applyRoleSeed(seed)
		if err != nil {
			return err
		}
		changed = changed || seeded
	}

	if changed {
		return s.saveAndReload()
	}
	return nil
}

func (s *Service) applyRoleSeed(seed RoleSeed) (bool, error) {
	role, err := NormalizeRole(seed.Role)
	if err != nil {
		return false, err
	}

	changed := false
	exists, err := s.enforcer.HasNamedGroupingPolicy("g", role, roleAnchor)
	if err != nil {
		return false, fmt.Errorf("check builtin role %s failed: %w", role, err)
	}
	if !exists {
		added, err := s.enforcer.AddNamedGroupingPolicy("g", role, roleAnchor)
		if err != nil {
			return false, fmt.Errorf("create builtin role %s failed: %w", role, err)
		}
		changed = changed || added
	}

	for _, parent := range seed.Inherits {
		parentRole, err := NormalizeRole(parent)
		if err != nil {
			return false, err
		}
		added, err := s.enforcer.AddNamedGroupingPolicy("g", role, parentRole)
		if err != nil {
			return false, fmt.Errorf("link role %s to %s failed: %w", role, parentRole, err)
		}
		changed = changed || added
	}

	for _, policy := range seed.Policies {
		action := NormalizeAction(policy.Action)
		if action == "" {
			return false, fmt.Errorf("builtin policy action is required")
		}
		added, err := s.enforcer.AddPolicy(role, NormalizeObject(policy.Object), action)
		if err != nil {
			return false, fmt.Errorf("add builtin policy for %s failed: %w", role, err)
		}
		changed = changed || added
	}
	return changed, nil
}
