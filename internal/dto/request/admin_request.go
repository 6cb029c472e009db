package request

type ApproveVerificationRequest struct {
	RecordID uint `json:"record_id" binding:"required"`
}

type RejectVerificationRequest struct {
	RecordID uint `json:"record_id" binding:"required"`
}

// CreateStaffRequest provisions an account with an elevated role in one
// step, used for bootstrapping admins.
type CreateStaffRequest struct {
	Nome     string `json:"nome" binding:"required,min=2,max=64"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=64"`
	Role     string `json:"role" binding:"required,oneof=user psychologist admin"`
}

type GrantRoleRequest struct {
	UserUuid string `json:"user_uuid" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=user psychologist admin"`
}

type RevokeRoleRequest struct {
	UserUuid string `json:"user_uuid" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=user psychologist admin"`
}
