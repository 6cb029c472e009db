// Package verify implements psychologist verification review.
package verify

import (
	"fmt"

	"juntos_server/internal/dao/mysql/repository"
	"juntos_server/internal/dto/request"
	"juntos_server/internal/dto/respond"
	"juntos_server/internal/infrastructure/email"
	"juntos_server/internal/model"
	"juntos_server/internal/service/enrich"
	roleenum "juntos_server/pkg/enum/role"
	userenum "juntos_server/pkg/enum/user"
	"juntos_server/pkg/errorx"
	"juntos_server/pkg/util/random"

	"go.uber.org/zap"
)

// RoleGranter grants authorization roles. The role service satisfies it;
// the narrow interface keeps this package testable with a failing stub.
type RoleGranter interface {
	Grant(userUuid, role string) error
}

type verifyService struct {
	repos   *repository.Repositories
	granter RoleGranter
	mailer  email.Mailer
}

// NewVerifyService wires the verification service with its collaborators.
func NewVerifyService(repos *repository.Repositories, granter RoleGranter, mailer email.Mailer) *verifyService {
	return &verifyService{
		repos:   repos,
		granter: granter,
		mailer:  mailer,
	}
}

// ListPending returns unreviewed verification records enriched with the
// applicant profile. A record whose profile is gone is still listed.
func (v *verifyService) ListPending() ([]respond.PendingVerification, error) {
	records, err := v.repos.Psychologist.FindPending()
	if err != nil {
		zap.L().Error("list pending verifications", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	profiles, err := enrich.Lookup(records,
		func(r model.PsychologistRecord) string { return r.UserUuid },
		v.repos.Profile.FindByUuids,
		func(p model.Profile) string { return p.Uuid },
	)
	if err != nil {
		zap.L().Error("enrich pending verifications", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	list := make([]respond.PendingVerification, 0, len(records))
	for _, r := range records {
		item := respond.PendingVerification{
			RecordID:      r.ID,
			UserUuid:      r.UserUuid,
			Crp:           r.Crp,
			Especialidade: r.Especialidade,
			Bio:           r.Bio,
			DataEnvio:     r.CreatedAt,
		}
		if p, ok := profiles[r.UserUuid]; ok {
			item.Profile = &respond.ProfileInfo{
				Uuid:        p.Uuid,
				Nome:        p.Nome,
				Email:       p.Email,
				TipoUsuario: p.TipoUsuario,
			}
		}
		list = append(list, item)
	}
	return list, nil
}

// Approve performs the two approval writes in order: the verified flag
// first, the role grant second. The writes are independent. A grant
// failure after the flag write is logged and reported through
// RoleGranted, not rolled back; the reconciliation report finds the gap
// later.
func (v *verifyService) Approve(recordID uint) (*respond.ApproveVerificationRespond, error) {
	record, err := v.repos.Psychologist.FindByID(recordID)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeNotFound, "verification record not found")
		}
		zap.L().Error("approve lookup", zap.Uint("record_id", recordID), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	if err := v.repos.Psychologist.SetVerified(record.ID); err != nil {
		zap.L().Error("approve set verified", zap.Uint("record_id", recordID), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	result := &respond.ApproveVerificationRespond{
		RecordID: record.ID,
		Verified: true,
	}
	if err := v.granter.Grant(record.UserUuid, roleenum.Psychologist); err != nil {
		zap.L().Error("approved but role grant failed",
			zap.Uint("record_id", record.ID),
			zap.String("user_uuid", record.UserUuid),
			zap.Error(err))
	} else {
		result.RoleGranted = true
	}

	go v.notifyDecision(record.UserUuid, true)
	return result, nil
}

// Reject deletes the record outright. The applicant may submit again.
func (v *verifyService) Reject(recordID uint) error {
	record, err := v.repos.Psychologist.FindByID(recordID)
	if err != nil {
		if errorx.IsNotFound(err) {
			return errorx.New(errorx.CodeNotFound, "verification record not found")
		}
		zap.L().Error("reject lookup", zap.Uint("record_id", recordID), zap.Error(err))
		return errorx.ErrServerBusy
	}
	if err := v.repos.Psychologist.Delete(record.ID); err != nil {
		zap.L().Error("reject delete", zap.Uint("record_id", recordID), zap.Error(err))
		return errorx.ErrServerBusy
	}

	go v.notifyDecision(record.UserUuid, false)
	return nil
}

func (v *verifyService) notifyDecision(userUuid string, approved bool) {
	profile, err := v.repos.Profile.FindByUuid(userUuid)
	if err != nil {
		zap.L().Warn("decision mail skipped, profile unavailable",
			zap.String("user_uuid", userUuid), zap.Error(err))
		return
	}
	subject := "Verificação profissional aprovada"
	body := fmt.Sprintf("<p>Olá %s,</p><p>Seu registro profissional foi verificado.</p>", profile.Nome)
	if !approved {
		subject = "Verificação profissional recusada"
		body = fmt.Sprintf("<p>Olá %s,</p><p>Seu registro profissional não pôde ser verificado. Você pode enviar uma nova solicitação.</p>", profile.Nome)
	}
	if err := v.mailer.Send(profile.Email, subject, body); err != nil {
		zap.L().Warn("decision mail failed",
			zap.String("user_uuid", userUuid), zap.Error(err))
	}
}

// ReconciliationReport lists verified records whose identity is missing
// the psychologist role, the gap an interrupted approval leaves behind.
func (v *verifyService) ReconciliationReport() ([]respond.ReconciliationEntry, error) {
	records, err := v.repos.Psychologist.FindVerified()
	if err != nil {
		zap.L().Error("reconciliation list verified", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	entries := make([]respond.ReconciliationEntry, 0)
	for _, r := range records {
		hasRole, err := v.repos.Role.HasRole(r.UserUuid, roleenum.Psychologist)
		if err != nil {
			zap.L().Error("reconciliation role check",
				zap.String("user_uuid", r.UserUuid), zap.Error(err))
			return nil, errorx.ErrServerBusy
		}
		if !hasRole {
			entries = append(entries, respond.ReconciliationEntry{
				UserUuid:   r.UserUuid,
				RecordID:   r.ID,
				Verificado: true,
				HasRole:    false,
			})
		}
	}
	return entries, nil
}

// CreateStaff provisions an account carrying an elevated role, used to
// bootstrap admins without going through signup and review.
func (v *verifyService) CreateStaff(req request.CreateStaffRequest) (*respond.ProfileInfo, error) {
	if !roleenum.Valid(req.Role) {
		return nil, errorx.ErrInvalidParam
	}
	if _, err := v.repos.Profile.FindByEmail(req.Email); err == nil {
		return nil, errorx.New(errorx.CodeUserExist, "email already registered")
	} else if !errorx.IsNotFound(err) {
		zap.L().Error("create staff email lookup", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	profile := model.Profile{
		Uuid:        fmt.Sprintf("U%s", random.GetNowAndLenRandomString(11)),
		Nome:        req.Nome,
		Email:       req.Email,
		TipoUsuario: userenum.Common,
		RawPassword: req.Password,
	}
	if err := v.repos.Profile.Create(&profile); err != nil {
		zap.L().Error("create staff profile", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	if err := v.granter.Grant(profile.Uuid, roleenum.User); err != nil {
		zap.L().Error("create staff base role", zap.String("user_uuid", profile.Uuid), zap.Error(err))
	}
	if req.Role != roleenum.User {
		if err := v.granter.Grant(profile.Uuid, req.Role); err != nil {
			zap.L().Error("create staff elevated role",
				zap.String("user_uuid", profile.Uuid),
				zap.String("role", req.Role), zap.Error(err))
			return nil, errorx.ErrServerBusy
		}
	}

	return &respond.ProfileInfo{
		Uuid:        profile.Uuid,
		Nome:        profile.Nome,
		Email:       profile.Email,
		TipoUsuario: profile.TipoUsuario,
	}, nil
}
