package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ElectionRequest struct {
	Titulo     string  `json:"titulo"`
	Descricao  string  `json:"descricao,omitempty"`
	DataInicio string  `json:"data_inicio"`
	DataFim    string  `json:"data_fim"`
	Status     *string `json:"status,omitempty"`
}

type ElectionResponse struct {
	ID         string `json:"id"`
	Titulo     string `json:"titulo"`
	Descricao  string `json:"descricao,omitempty"`
	DataInicio string `json:"data_inicio"`
	DataFim    string `json:"data_fim"`
	Status     string `json:"status"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

type ElectionListResponse struct {
	Items []ElectionResponse `json:"items"`
}

type CandidateRequest struct {
	EleicaoID string `json:"eleicao_id"`
	Numero    int    `json:"numero"`
	Nome      string `json:"nome"`
	Partido   string `json:"partido,omitempty"`
	FotoURL   string `json:"foto_url,omitempty"`
}

type CandidateResponse struct {
	ID        string `json:"id"`
	EleicaoID string `json:"eleicao_id"`
	Numero    int    `json:"numero"`
	Nome      string `json:"nome"`
	Partido   string `json:"partido,omitempty"`
	FotoURL   string `json:"foto_url,omitempty"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type CandidateListResponse struct {
	EleicaoID string              `json:"eleicao_id"`
	Items     []CandidateResponse `json:"items"`
}

type VoterRequest struct {
	EleicaoID string `json:"eleicao_id"`
	Matricula string `json:"matricula"`
	Nome      string `json:"nome"`
}

type VoterResponse struct {
	ID          string  `json:"id"`
	EleicaoID   string  `json:"eleicao_id"`
	Matricula   string  `json:"matricula"`
	Nome        string  `json:"nome"`
	JaVotou     bool    `json:"ja_votou"`
	HorarioVoto *string `json:"horario_voto,omitempty"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

type VoterListResponse struct {
	Items []VoterResponse `json:"items"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

type ImportRowErrorItem struct {
	Linha  int    `json:"linha"`
	Motivo string `json:"motivo"`
}

type ImportVotersResponse struct {
	Importados int                  `json:"importados"`
	Ignorados  []ImportRowErrorItem `json:"ignorados"`
}
