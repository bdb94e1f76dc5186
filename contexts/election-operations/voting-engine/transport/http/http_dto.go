package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidateVoterRequest struct {
	Matricula string `json:"matricula"`
	EleicaoID string `json:"eleicao_id,omitempty"`
}

type ValidateVoterResponse struct {
	EleitorNome   string `json:"eleitor_nome"`
	Matricula     string `json:"matricula"`
	EleicaoID     string `json:"eleicao_id"`
	EleicaoTitulo string `json:"eleicao_titulo"`
}

type CastVoteRequest struct {
	EleitorMatricula string `json:"eleitor_matricula"`
	EleicaoID        string `json:"eleicao_id"`
	// CandidatoID is a candidate id or one of the NULO/BRANCO tokens.
	CandidatoID string `json:"candidato_id"`
}

type CastVoteResponse struct {
	HashVerificacao string `json:"hash_verificacao"`
	TipoVoto        string `json:"tipo_voto"`
	Timestamp       string `json:"timestamp"`
}

type CandidateItem struct {
	ID      string `json:"id"`
	Numero  int    `json:"numero"`
	Nome    string `json:"nome"`
	Partido string `json:"partido"`
	FotoURL string `json:"foto_url,omitempty"`
}

type CandidateListResponse struct {
	EleicaoID string          `json:"eleicao_id"`
	Items     []CandidateItem `json:"items"`
}
