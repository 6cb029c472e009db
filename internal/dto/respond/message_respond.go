package respond

import "time"

// GroupMessageInfo is a message row joined with its sender profile.
// Uuid is serialized as a string because the snowflake id exceeds the
// safe integer range of JSON consumers.
type GroupMessageInfo struct {
	Uuid           string       `json:"uuid"`
	GroupID        uint         `json:"group_id"`
	SendId         string       `json:"send_id"`
	Conteudo       string       `json:"conteudo"`
	Tipo           string       `json:"tipo"`
	DataEnvio      time.Time    `json:"data_envio"`
	CaminhoArquivo string       `json:"caminho_arquivo,omitempty"`
	Profile        *ProfileInfo `json:"profile"`
}
