package request

type CreateGroupRequest struct {
	Nome       string `json:"nome" binding:"required,min=2,max=64"`
	Descricao  string `json:"descricao" binding:"required,max=512"`
	ImagemCapa string `json:"imagem_capa" binding:"omitempty,url"`
	MaxMembros int    `json:"max_membros" binding:"omitempty,min=2,max=500"`
}

type UpdateGroupRequest struct {
	GroupID    uint   `json:"group_id" binding:"required"`
	Nome       string `json:"nome" binding:"omitempty,min=2,max=64"`
	Descricao  string `json:"descricao" binding:"max=512"`
	ImagemCapa string `json:"imagem_capa" binding:"omitempty,url"`
	MaxMembros int    `json:"max_membros" binding:"omitempty,min=2,max=500"`
}

type JoinGroupRequest struct {
	GroupID uint `json:"group_id" binding:"required"`
}

type LeaveGroupRequest struct {
	GroupID uint `json:"group_id" binding:"required"`
}

// GroupQueryRequest carries the group id of the query-string endpoints.
type GroupQueryRequest struct {
	GroupID uint `form:"group_id" binding:"required"`
}
