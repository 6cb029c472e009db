// Package auth implements account lifecycle and credential handling.
package auth

import (
	"fmt"

	"juntos_server/internal/config"
	"juntos_server/internal/dao/mysql/repository"
	myredis "juntos_server/internal/dao/redis"
	"juntos_server/internal/dto/request"
	"juntos_server/internal/dto/respond"
	"juntos_server/internal/infrastructure/email"
	"juntos_server/internal/model"
	roleenum "juntos_server/pkg/enum/role"
	userenum "juntos_server/pkg/enum/user"
	"juntos_server/pkg/errorx"
	"juntos_server/pkg/util/jwt"
	"juntos_server/pkg/util/random"

	"go.uber.org/zap"
)

type authService struct {
	repos  *repository.Repositories
	cache  myredis.AsyncCacheService
	mailer email.Mailer
}

// NewAuthService wires the account service with its collaborators.
func NewAuthService(repos *repository.Repositories, cache myredis.AsyncCacheService, mailer email.Mailer) *authService {
	return &authService{
		repos:  repos,
		cache:  cache,
		mailer: mailer,
	}
}

func refreshTokenKey(userUuid string) string {
	return "refresh_token_" + userUuid
}

// Register creates the account, its base role assignment and, for
// psychologist signups, an unverified verification record. The account
// insert is the commit point; a later collaborator failure is logged but
// the signup stands.
func (a *authService) Register(req request.RegisterRequest) (*respond.LoginRespond, error) {
	// 1. Reject an already registered email before writing anything.
	if _, err := a.repos.Profile.FindByEmail(req.Email); err == nil {
		return nil, errorx.New(errorx.CodeUserExist, "email already registered")
	} else if !errorx.IsNotFound(err) {
		zap.L().Error("register email lookup", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	kind := userenum.Common
	if req.TipoUsuario == userenum.Psychologist {
		kind = userenum.Psychologist
	}

	// 2. Insert the profile. BeforeSave hashes the password.
	profile := model.Profile{
		Uuid:        fmt.Sprintf("U%s", random.GetNowAndLenRandomString(11)),
		Nome:        req.Nome,
		Email:       req.Email,
		TipoUsuario: kind,
		RawPassword: req.Password,
	}
	if err := a.repos.Profile.Create(&profile); err != nil {
		zap.L().Error("register create profile", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	// 3. Base role. Every account resolves to at least "user".
	if err := a.repos.Role.Grant(profile.Uuid, roleenum.User); err != nil {
		zap.L().Error("register grant base role",
			zap.String("user_uuid", profile.Uuid), zap.Error(err))
	}

	// 4. Psychologist signups queue a verification record. The elevated
	// role is only granted when an admin approves it.
	if kind == userenum.Psychologist {
		record := model.PsychologistRecord{
			UserUuid:      profile.Uuid,
			Crp:           req.Crp,
			Especialidade: req.Especialidade,
			Bio:           req.Bio,
			Verificado:    false,
		}
		if err := a.repos.Psychologist.Create(&record); err != nil {
			zap.L().Error("register create verification record",
				zap.String("user_uuid", profile.Uuid), zap.Error(err))
		}
	}

	go a.sendWelcome(profile)

	return a.issueTokens(&profile)
}

func (a *authService) sendWelcome(profile model.Profile) {
	body := fmt.Sprintf("<p>Olá %s,</p><p>Bem-vindo(a) à comunidade Juntos.</p>", profile.Nome)
	if err := a.mailer.Send(profile.Email, "Bem-vindo(a) ao Juntos", body); err != nil {
		zap.L().Warn("welcome mail failed",
			zap.String("user_uuid", profile.Uuid), zap.Error(err))
	}
}

// Login verifies the password and issues a token pair.
func (a *authService) Login(req request.LoginRequest) (*respond.LoginRespond, error) {
	profile, err := a.repos.Profile.FindByEmail(req.Email)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeUserNotExist, "account not found")
		}
		zap.L().Error("login lookup", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	if !profile.CheckPassword(req.Password) {
		return nil, errorx.New(errorx.CodeWrongPassword, "wrong password")
	}
	return a.issueTokens(profile)
}

// issueTokens mints the pair and registers the refresh session in the
// cache so Logout and rotation can invalidate it.
func (a *authService) issueTokens(profile *model.Profile) (*respond.LoginRespond, error) {
	accessToken, err := jwt.GenerateAccessToken(profile.Uuid)
	if err != nil {
		zap.L().Error("generate access token", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	refreshToken, tokenID, err := jwt.GenerateRefreshToken(profile.Uuid)
	if err != nil {
		zap.L().Error("generate refresh token", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	expiry := config.GetConfig().JWTConfig.RefreshTokenExpiry * 3600
	if err := a.cache.Set(refreshTokenKey(profile.Uuid), tokenID, expiry); err != nil {
		zap.L().Error("store refresh session", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	return &respond.LoginRespond{
		Uuid:         profile.Uuid,
		Nome:         profile.Nome,
		Email:        profile.Email,
		TipoUsuario:  profile.TipoUsuario,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Refresh rotates a refresh token: the presented token must match the
// registered session, and rotation replaces that session atomically from
// the caller's point of view.
func (a *authService) Refresh(req request.RefreshTokenRequest) (*respond.RefreshTokenRespond, error) {
	claims, err := jwt.ParseToken(req.RefreshToken)
	if err != nil || claims.TokenID == "" {
		return nil, errorx.ErrUnauthorized
	}

	storedID, err := a.cache.Get(refreshTokenKey(claims.UserID))
	if err != nil || storedID != claims.TokenID {
		return nil, errorx.ErrUnauthorized
	}

	accessToken, err := jwt.GenerateAccessToken(claims.UserID)
	if err != nil {
		zap.L().Error("generate access token", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	refreshToken, tokenID, err := jwt.GenerateRefreshToken(claims.UserID)
	if err != nil {
		zap.L().Error("generate refresh token", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	expiry := config.GetConfig().JWTConfig.RefreshTokenExpiry * 3600
	if err := a.cache.Set(refreshTokenKey(claims.UserID), tokenID, expiry); err != nil {
		zap.L().Error("rotate refresh session", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	return &respond.RefreshTokenRespond{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Logout drops the refresh session. Access tokens expire on their own.
func (a *authService) Logout(userUuid string) error {
	if err := a.cache.Delete(refreshTokenKey(userUuid)); err != nil {
		zap.L().Error("logout delete refresh session",
			zap.String("user_uuid", userUuid), zap.Error(err))
		return errorx.ErrServerBusy
	}
	return nil
}

// GetProfile returns the public projection of an identity.
func (a *authService) GetProfile(uuid string) (*respond.ProfileInfo, error) {
	profile, err := a.repos.Profile.FindByUuid(uuid)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeUserNotExist, "account not found")
		}
		zap.L().Error("get profile", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	return &respond.ProfileInfo{
		Uuid:        profile.Uuid,
		Nome:        profile.Nome,
		Email:       profile.Email,
		TipoUsuario: profile.TipoUsuario,
	}, nil
}

// UpdateDisplayName renames the identity.
func (a *authService) UpdateDisplayName(uuid, nome string) error {
	if nome == "" {
		return errorx.ErrInvalidParam
	}
	profile, err := a.repos.Profile.FindByUuid(uuid)
	if err != nil {
		if errorx.IsNotFound(err) {
			return errorx.New(errorx.CodeUserNotExist, "account not found")
		}
		zap.L().Error("rename lookup", zap.Error(err))
		return errorx.ErrServerBusy
	}
	profile.Nome = nome
	if err := a.repos.Profile.Update(profile); err != nil {
		zap.L().Error("rename update", zap.Error(err))
		return errorx.ErrServerBusy
	}
	return nil
}
