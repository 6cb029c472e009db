package service

import (
	"juntos_server/internal/dao/mysql/repository"
	myredis "juntos_server/internal/dao/redis"
	"juntos_server/internal/infrastructure/email"
	"juntos_server/internal/service/auth"
	"juntos_server/internal/service/group"
	"juntos_server/internal/service/message"
	"juntos_server/internal/service/role"
	"juntos_server/internal/service/stream"
	"juntos_server/internal/service/verify"
)

// Services aggregates every service instance. Handlers reach the
// business layer through this aggregate only.
type Services struct {
	Auth    AuthService
	Group   GroupService
	Message MessageService
	Role    RoleService
	Verify  VerifyService
}

// NewServices builds the aggregate, injecting the shared collaborators
// into each service.
func NewServices(
	repos *repository.Repositories,
	cache myredis.AsyncCacheService,
	mailer email.Mailer,
	broker stream.Broker,
) *Services {
	roleSvc := role.NewRoleService(repos, cache)
	return &Services{
		Auth:    auth.NewAuthService(repos, cache, mailer),
		Group:   group.NewGroupService(repos, cache),
		Message: message.NewMessageService(repos, cache, broker),
		Role:    roleSvc,
		Verify:  verify.NewVerifyService(repos, roleSvc, mailer),
	}
}

// Svc is the global aggregate, installed in main after the data layer is
// up.
var Svc *Services

// InitServices installs the global aggregate.
func InitServices(
	repos *repository.Repositories,
	cache myredis.AsyncCacheService,
	mailer email.Mailer,
	broker stream.Broker,
) {
	Svc = NewServices(repos, cache, mailer, broker)
}
