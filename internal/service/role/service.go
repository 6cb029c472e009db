// Package role implements authorization role resolution and management.
package role

import (
	"encoding/json"

	"juntos_server/internal/dao/mysql/repository"
	myredis "juntos_server/internal/dao/redis"
	"juntos_server/pkg/constants"
	roleenum "juntos_server/pkg/enum/role"
	"juntos_server/pkg/errorx"

	"go.uber.org/zap"
)

func userRolesKey(userUuid string) string {
	return "user_roles_" + userUuid
}

type roleService struct {
	repos *repository.Repositories
	cache myredis.AsyncCacheService
}

// NewRoleService wires the role service with its collaborators.
func NewRoleService(repos *repository.Repositories, cache myredis.AsyncCacheService) *roleService {
	return &roleService{
		repos: repos,
		cache: cache,
	}
}

// RolesFor resolves the role set of an identity through a cache-aside
// read. An identity with no assignments resolves to the base role; that
// is a resolved state, not a failure. Only a storage failure returns an
// error, and callers must treat that as "unresolved", never as a denial.
func (r *roleService) RolesFor(userUuid string) ([]string, error) {
	if cached, err := r.cache.Get(userRolesKey(userUuid)); err == nil {
		var roles []string
		if err := json.Unmarshal([]byte(cached), &roles); err == nil {
			return roles, nil
		}
	}

	rows, err := r.repos.Role.FindByUserUuid(userUuid)
	if err != nil {
		zap.L().Error("resolve roles", zap.String("user_uuid", userUuid), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	roles := make([]string, 0, len(rows))
	for _, row := range rows {
		roles = append(roles, row.Role)
	}
	if len(roles) == 0 {
		roles = append(roles, roleenum.User)
	}

	r.cache.SubmitTask(func(cache myredis.CacheService) {
		if data, err := json.Marshal(roles); err == nil {
			_ = cache.Set(userRolesKey(userUuid), string(data), constants.REDIS_TIMEOUT*60)
		}
	})

	return roles, nil
}

// HasRole reports whether the resolved role set contains role.
func (r *roleService) HasRole(userUuid, role string) (bool, error) {
	roles, err := r.RolesFor(userUuid)
	if err != nil {
		return false, err
	}
	for _, held := range roles {
		if held == role {
			return true, nil
		}
	}
	return false, nil
}

// Grant assigns a role and drops the stale resolution cache.
func (r *roleService) Grant(userUuid, role string) error {
	if !roleenum.Valid(role) {
		return errorx.ErrInvalidParam
	}
	if err := r.repos.Role.Grant(userUuid, role); err != nil {
		zap.L().Error("grant role", zap.String("user_uuid", userUuid),
			zap.String("role", role), zap.Error(err))
		return errorx.ErrServerBusy
	}
	r.invalidate(userUuid)
	return nil
}

// Revoke removes a role and drops the stale resolution cache.
func (r *roleService) Revoke(userUuid, role string) error {
	if !roleenum.Valid(role) {
		return errorx.ErrInvalidParam
	}
	if err := r.repos.Role.Revoke(userUuid, role); err != nil {
		zap.L().Error("revoke role", zap.String("user_uuid", userUuid),
			zap.String("role", role), zap.Error(err))
		return errorx.ErrServerBusy
	}
	r.invalidate(userUuid)
	return nil
}

func (r *roleService) invalidate(userUuid string) {
	r.cache.SubmitTask(func(cache myredis.CacheService) {
		_ = cache.Delete(userRolesKey(userUuid))
	})
}
