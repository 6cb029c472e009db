package request

// SendMessageRequest publishes a message to a group. Blank content is
// rejected before anything is persisted.
type SendMessageRequest struct {
	GroupID        uint   `json:"group_id" binding:"required"`
	Conteudo       string `json:"conteudo" binding:"required"`
	Tipo           string `json:"tipo" binding:"omitempty,oneof=texto arquivo"`
	CaminhoArquivo string `json:"caminho_arquivo" binding:"omitempty,max=512"`
}
