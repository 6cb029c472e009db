// Package repository defines the data access interfaces and their
// aggregate. Implementations live in the per-entity files.
//
// The member and message listings deliberately return flat rows without
// joining the profile table: the service layer performs the second lookup
// and merges by identity id, so a missing profile degrades to a nil field
// instead of an error or a dropped row.
package repository

import (
	"errors"

	"juntos_server/internal/model"
	"juntos_server/pkg/errorx"

	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// wrapDBError maps a gorm error to a coded error:
// ErrRecordNotFound -> CodeNotFound, everything else -> CodeDBError.
func wrapDBError(err error, msg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errorx.Wrap(err, errorx.CodeNotFound, msg)
	}
	return errorx.Wrap(err, errorx.CodeDBError, msg)
}

// wrapDBErrorf is wrapDBError with a formatted message.
func wrapDBErrorf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errorx.Wrapf(err, errorx.CodeNotFound, format, args...)
	}
	return errorx.Wrapf(err, errorx.CodeDBError, format, args...)
}

// IsDuplicateKey reports whether err is a uniqueness violation. Both the
// gorm translated error and the raw MySQL 1062 are recognized so the
// join-conflict downgrade works with and without TranslateError.
func IsDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysqldriver.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}

// ProfileRepository reads and writes identity profiles.
type ProfileRepository interface {
	FindByUuid(uuid string) (*model.Profile, error)
	FindByEmail(email string) (*model.Profile, error)
	// FindByUuids batch-loads profiles for enrichment. Missing uuids are
	// simply absent from the result, never an error.
	FindByUuids(uuids []string) ([]model.Profile, error)
	Create(profile *model.Profile) error
	Update(profile *model.Profile) error
}

// GroupRepository reads and writes support groups.
type GroupRepository interface {
	FindByID(id uint) (*model.Group, error)
	// FindAllNewestFirst lists every group ordered by creation time
	// descending.
	FindAllNewestFirst() ([]model.Group, error)
	FindByIDs(ids []uint) ([]model.Group, error)
	Create(group *model.Group) error
	Update(group *model.Group) error
}

// GroupMemberRepository manages the identity/group join table.
type GroupMemberRepository interface {
	FindByGroupID(groupID uint) ([]model.GroupMember, error)
	FindByUserUuid(userUuid string) ([]model.GroupMember, error)
	// Create inserts a membership; a duplicate (group, identity) pair
	// surfaces as an error recognized by IsDuplicateKey.
	Create(member *model.GroupMember) error
	Delete(groupID uint, userUuid string) error
	CountByGroupAndUser(groupID uint, userUuid string) (int64, error)
}

// GroupMessageRepository manages the append-only message table.
type GroupMessageRepository interface {
	// FindByGroupIDAsc returns all messages of a group in non-decreasing
	// sent-at order.
	FindByGroupIDAsc(groupID uint) ([]model.GroupMessage, error)
	Create(message *model.GroupMessage) error
}

// RoleRepository manages authorization role assignments.
type RoleRepository interface {
	FindByUserUuid(userUuid string) ([]model.UserRole, error)
	Grant(userUuid, role string) error
	Revoke(userUuid, role string) error
	// HasRole is a direct existence check, used by the reconciliation
	// report.
	HasRole(userUuid, role string) (bool, error)
}

// PsychologistRepository manages verification records.
type PsychologistRepository interface {
	FindByID(id uint) (*model.PsychologistRecord, error)
	FindPending() ([]model.PsychologistRecord, error)
	FindVerified() ([]model.PsychologistRecord, error)
	Create(record *model.PsychologistRecord) error
	SetVerified(id uint) error
	// Delete removes the record outright; rejection has no soft-delete.
	Delete(id uint) error
}

// Repositories aggregates all repository instances. The service layer
// receives this as its single data dependency.
type Repositories struct {
	Profile      ProfileRepository
	Group        GroupRepository
	GroupMember  GroupMemberRepository
	GroupMessage GroupMessageRepository
	Role         RoleRepository
	Psychologist PsychologistRepository
}

// NewRepositories builds the aggregate on top of a gorm handle.
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Profile:      NewProfileRepository(db),
		Group:        NewGroupRepository(db),
		GroupMember:  NewGroupMemberRepository(db),
		GroupMessage: NewGroupMessageRepository(db),
		Role:         NewRoleRepository(db),
		Psychologist: NewPsychologistRepository(db),
	}
}
