package postgresadapter

import (
	"time"

	"github.com/Masterbarreto/Api-Urna/contexts/election-operations/voting-engine/domain/entities"
)

type electionModel struct {
	ID          string    `gorm:"column:id;primaryKey"`
	Titulo      string    `gorm:"column:titulo"`
	Descricao   string    `gorm:"column:descricao"`
	DataInicio  time.Time `gorm:"column:data_inicio"`
	DataFim     time.Time `gorm:"column:data_fim"`
	Status      string    `gorm:"column:status;index"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (electionModel) TableName() string { return "eleicoes" }

func (m electionModel) toEntity() entities.Election {
	return entities.Election{
		ID:          m.ID,
		Title:       m.Titulo,
		Description: m.Descricao,
		StartsAt:    m.DataInicio,
		EndsAt:      m.DataFim,
		Status:      entities.ElectionStatus(m.Status),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

type candidateModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	EleicaoID string    `gorm:"column:eleicao_id;uniqueIndex:idx_candidatos_eleicao_numero"`
	Numero    int       `gorm:"column:numero;uniqueIndex:idx_candidatos_eleicao_numero"`
	Nome      string    `gorm:"column:nome"`
	Partido   string    `gorm:"column:partido"`
	FotoURL   string    `gorm:"column:foto_url"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (candidateModel) TableName() string { return "candidatos" }

func (m candidateModel) toEntity() entities.Candidate {
	return entities.Candidate{
		ID:         m.ID,
		ElectionID: m.EleicaoID,
		Number:     m.Numero,
		Name:       m.Nome,
		Party:      m.Partido,
		PhotoURL:   m.FotoURL,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

type voterModel struct {
	ID          string     `gorm:"column:id;primaryKey"`
	EleicaoID   string     `gorm:"column:eleicao_id;uniqueIndex:idx_eleitores_eleicao_matricula"`
	Matricula   string     `gorm:"column:matricula;uniqueIndex:idx_eleitores_eleicao_matricula"`
	Nome        string     `gorm:"column:nome"`
	JaVotou     bool       `gorm:"column:ja_votou"`
	HorarioVoto *time.Time `gorm:"column:horario_voto"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
}

func (voterModel) TableName() string { return "eleitores" }

func (m voterModel) toEntity() entities.Voter {
	return entities.Voter{
		ID:           m.ID,
		ElectionID:   m.EleicaoID,
		Registration: m.Matricula,
		Name:         m.Nome,
		HasVoted:     m.JaVotou,
		VotedAt:      m.HorarioVoto,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// voteModel is append-only. The unique index on (eleicao_id, eleitor_id) is
// the storage-level backstop for the at-most-one-vote invariant.
type voteModel struct {
	ID               string    `gorm:"column:id;primaryKey"`
	EleicaoID        string    `gorm:"column:eleicao_id;uniqueIndex:idx_votos_eleicao_eleitor"`
	EleitorID        string    `gorm:"column:eleitor_id;uniqueIndex:idx_votos_eleicao_eleitor"`
	EleitorMatricula string    `gorm:"column:eleitor_matricula"`
	CandidatoID      *string   `gorm:"column:candidato_id"`
	TipoVoto         string    `gorm:"column:tipo_voto"`
	HashVerificacao  string    `gorm:"column:hash_verificacao"`
	CreatedAt        time.Time `gorm:"column:created_at"`
}

func (voteModel) TableName() string { return "votos" }

func voteModelFromEntity(vote entities.Vote) voteModel {
	return voteModel{
		ID:               vote.ID,
		EleicaoID:        vote.ElectionID,
		EleitorID:        vote.VoterID,
		EleitorMatricula: vote.VoterRegistration,
		CandidatoID:      vote.CandidateID,
		TipoVoto:         string(vote.Kind),
		HashVerificacao:  vote.VerificationHash,
		CreatedAt:        vote.CreatedAt,
	}
}
