package respond

import "time"

type GroupInfo struct {
	ID         uint      `json:"id"`
	Nome       string    `json:"nome"`
	Descricao  string    `json:"descricao"`
	OwnerId    string    `json:"owner_id"`
	ImagemCapa string    `json:"imagem_capa"`
	MaxMembros int       `json:"max_membros"`
	CreatedAt  time.Time `json:"created_at"`
}

// GroupMemberInfo is a membership row joined with its identity profile.
// Profile is nil when the identity could not be resolved; the membership
// itself is still reported.
type GroupMemberInfo struct {
	UserUuid    string       `json:"user_uuid"`
	Papel       string       `json:"papel"`
	DataEntrada time.Time    `json:"data_entrada"`
	Profile     *ProfileInfo `json:"profile"`
}

// JoinGroupRespond reports the join outcome. AlreadyMember distinguishes
// the duplicate-join notice from a fresh membership; both are successes.
type JoinGroupRespond struct {
	GroupID       uint `json:"group_id"`
	AlreadyMember bool `json:"already_member"`
}
