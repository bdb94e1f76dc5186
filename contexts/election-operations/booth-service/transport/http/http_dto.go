package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type BoothRequest struct {
	Numero      int     `json:"numero"`
	Localizacao string  `json:"localizacao"`
	Status      *string `json:"status,omitempty"`
	IPAddress   string  `json:"ip_address,omitempty"`
	EleicaoID   string  `json:"eleicao_id,omitempty"`
}

type BoothResponse struct {
	ID            string  `json:"id"`
	Numero        int     `json:"numero"`
	Localizacao   string  `json:"localizacao"`
	Status        string  `json:"status"`
	IPAddress     string  `json:"ip_address,omitempty"`
	EleicaoID     string  `json:"eleicao_id,omitempty"`
	UltimoPing    *string `json:"ultimo_ping,omitempty"`
	ConexaoStatus string  `json:"conexao_status"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

type BoothListResponse struct {
	Items []BoothResponse `json:"items"`
}

type PingResponse struct {
	Numero        int    `json:"numero"`
	UltimoPing    string `json:"ultimo_ping"`
	ConexaoStatus string `json:"conexao_status"`
}
