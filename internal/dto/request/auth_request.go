package request

// RegisterRequest creates a new account. Psychologist signups carry the
// professional fields and start an unverified verification record.
type RegisterRequest struct {
	Nome        string `json:"nome" binding:"required,min=2,max=64"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8,max=64"`
	TipoUsuario string `json:"tipo_usuario" binding:"omitempty,oneof=comum psychologist"`

	// Professional fields, required only when tipo_usuario is psychologist.
	Crp           string `json:"crp" binding:"required_if=TipoUsuario psychologist,max=32"`
	Especialidade string `json:"especialidade" binding:"max=128"`
	Bio           string `json:"bio" binding:"max=1024"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type UpdateProfileRequest struct {
	Nome string `json:"nome" binding:"required,min=2,max=64"`
}
