package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CandidateTallyItem struct {
	CandidatoID string  `json:"candidato_id"`
	Numero      int     `json:"numero"`
	Nome        string  `json:"nome"`
	Partido     string  `json:"partido,omitempty"`
	Votos       int64   `json:"votos"`
	Percentual  float64 `json:"percentual"`
}

type ParticipationItem struct {
	Aptos          int64   `json:"aptos"`
	Votantes       int64   `json:"votantes"`
	Abstencoes     int64   `json:"abstencoes"`
	Comparecimento float64 `json:"comparecimento"`
}

type ElectionResultsResponse struct {
	EleicaoID    string               `json:"eleicao_id"`
	Titulo       string               `json:"titulo"`
	Status       string               `json:"status"`
	TotalVotos   int64                `json:"total_votos"`
	VotosNulos   int64                `json:"votos_nulos"`
	VotosBrancos int64                `json:"votos_brancos"`
	Candidatos   []CandidateTallyItem `json:"candidatos"`
	Participacao ParticipationItem    `json:"participacao"`
	GeradoEm     string               `json:"gerado_em"`
}

type ElectionTotalsItem struct {
	EleicaoID      string  `json:"eleicao_id"`
	Titulo         string  `json:"titulo"`
	Status         string  `json:"status"`
	TotalVotos     int64   `json:"total_votos"`
	Comparecimento float64 `json:"comparecimento"`
}

type FleetStatusItem struct {
	Total   int `json:"total"`
	Online  int `json:"online"`
	Warning int `json:"warning"`
	Offline int `json:"offline"`
}

type DashboardResponse struct {
	Eleicoes []ElectionTotalsItem `json:"eleicoes"`
	Urnas    FleetStatusItem      `json:"urnas"`
	GeradoEm string               `json:"gerado_em"`
}
