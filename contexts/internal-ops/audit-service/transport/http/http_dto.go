package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type EntryResponse struct {
	ID            string         `json:"id"`
	UsuarioID     string         `json:"usuario_id,omitempty"`
	Acao          string         `json:"acao"`
	TabelaAfetada string         `json:"tabela_afetada,omitempty"`
	RegistroID    string         `json:"registro_id,omitempty"`
	DadosNovos    map[string]any `json:"dados_novos,omitempty"`
	IPAddress     string         `json:"ip_address,omitempty"`
	UserAgent     string         `json:"user_agent,omitempty"`
	CreatedAt     string         `json:"created_at"`
}

type EntryListResponse struct {
	Items []EntryResponse `json:"items"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

type ActionCountItem struct {
	Acao  string `json:"acao"`
	Total int64  `json:"total"`
}

type StatsResponse struct {
	PorAcao []ActionCountItem `json:"por_acao"`
}
