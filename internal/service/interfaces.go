// Package service defines the business layer contracts. Handlers depend
// on these interfaces only; implementations live in the sub-packages.
package service

import (
	"juntos_server/internal/dto/request"
	"juntos_server/internal/dto/respond"
)

// AuthService handles account lifecycle and credentials.
type AuthService interface {
	// Register creates the account plus its default role assignment.
	// A psychologist signup also files an unverified verification record.
	Register(req request.RegisterRequest) (*respond.LoginRespond, error)
	// Login checks the password and issues a token pair.
	Login(req request.LoginRequest) (*respond.LoginRespond, error)
	// Refresh rotates a refresh token into a new token pair.
	Refresh(req request.RefreshTokenRequest) (*respond.RefreshTokenRespond, error)
	// Logout invalidates the identity's refresh token.
	Logout(userUuid string) error
	// GetProfile returns the public projection of one identity.
	GetProfile(uuid string) (*respond.ProfileInfo, error)
	// UpdateDisplayName renames the identity.
	UpdateDisplayName(uuid, nome string) error
}

// GroupService handles support group discovery and membership.
type GroupService interface {
	// ListAll returns every group, newest first.
	ListAll() ([]respond.GroupInfo, error)
	// ListMine returns the groups the identity belongs to. An identity
	// with no memberships gets an empty list without a group lookup.
	ListMine(userUuid string) ([]respond.GroupInfo, error)
	// Create inserts the group and then enrolls the creator. The two
	// writes are deliberately independent; a failed enrollment leaves
	// the group standing and is reported to the caller.
	Create(ownerUuid string, req request.CreateGroupRequest) (*respond.GroupInfo, error)
	// Update edits group metadata, owner only.
	Update(userUuid string, req request.UpdateGroupRequest) error
	// Join enrolls the identity. A duplicate join reports
	// AlreadyMember instead of failing.
	Join(userUuid string, groupID uint) (*respond.JoinGroupRespond, error)
	// Leave removes the membership.
	Leave(userUuid string, groupID uint) error
	// IsMember answers from the in-memory membership view. It performs
	// no I/O and is safe on any hot path.
	IsMember(userUuid string, groupID uint) bool
	// ListMembers returns the membership rows enriched with profiles.
	ListMembers(groupID uint) ([]respond.GroupMemberInfo, error)
}

// MessageService handles group chat history and publication.
type MessageService interface {
	// History returns the full message log of a group in non-decreasing
	// sent-at order, enriched with sender profiles.
	History(groupID uint) ([]respond.GroupMessageInfo, error)
	// Send validates, persists and broadcasts one message. Blank
	// content is rejected before any write.
	Send(senderUuid string, req request.SendMessageRequest) (*respond.GroupMessageInfo, error)
}

// RoleService resolves and manages authorization roles.
type RoleService interface {
	// RolesFor returns the resolved role set. An identity with no
	// assignments resolves to the base role, never to an error.
	RolesFor(userUuid string) ([]string, error)
	HasRole(userUuid, role string) (bool, error)
	Grant(userUuid, role string) error
	Revoke(userUuid, role string) error
}

// VerifyService handles psychologist verification review.
type VerifyService interface {
	ListPending() ([]respond.PendingVerification, error)
	// Approve marks the record verified and then grants the role. The
	// writes are independent; a role grant failure after a successful
	// flag write is reported, not rolled back.
	Approve(recordID uint) (*respond.ApproveVerificationRespond, error)
	// Reject deletes the record outright.
	Reject(recordID uint) error
	// ReconciliationReport lists identities whose verified flag and
	// role assignment disagree.
	ReconciliationReport() ([]respond.ReconciliationEntry, error)
	// CreateStaff provisions an account with an elevated role.
	CreateStaff(req request.CreateStaffRequest) (*respond.ProfileInfo, error)
}
