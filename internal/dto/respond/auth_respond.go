package respond

type LoginRespond struct {
	Uuid         string `json:"uuid"`
	Nome         string `json:"nome"`
	Email        string `json:"email"`
	TipoUsuario  string `json:"tipo_usuario"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type RefreshTokenRespond struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// ProfileInfo is the public projection of a profile, embedded wherever a
// row is enriched with its author or member identity. A nil ProfileInfo
// on the embedding side means the profile could not be resolved.
type ProfileInfo struct {
	Uuid        string `json:"uuid"`
	Nome        string `json:"nome"`
	Email       string `json:"email"`
	TipoUsuario string `json:"tipo_usuario"`
}
