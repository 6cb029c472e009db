package respond

import "time"

// PendingVerification is a verification record joined with the applicant
// profile.
type PendingVerification struct {
	RecordID      uint         `json:"record_id"`
	UserUuid      string       `json:"user_uuid"`
	Crp           string       `json:"crp"`
	Especialidade string       `json:"especialidade"`
	Bio           string       `json:"bio"`
	DataEnvio     time.Time    `json:"data_envio"`
	Profile       *ProfileInfo `json:"profile"`
}

// ApproveVerificationRespond reports the two approval writes separately.
// RoleGranted false with Verified true is the logged partial state that
// the reconciliation report later surfaces.
type ApproveVerificationRespond struct {
	RecordID    uint `json:"record_id"`
	Verified    bool `json:"verified"`
	RoleGranted bool `json:"role_granted"`
}

// ReconciliationEntry flags an identity whose verification flag and role
// assignment disagree.
type ReconciliationEntry struct {
	UserUuid   string `json:"user_uuid"`
	RecordID   uint   `json:"record_id"`
	Verificado bool   `json:"verificado"`
	HasRole    bool   `json:"has_role"`
}
