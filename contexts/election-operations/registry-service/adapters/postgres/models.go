package postgresadapter

import (
	"time"

	"github.com/Masterbarreto/Api-Urna/contexts/election-operations/registry-service/domain/entities"
)

type electionModel struct {
	ID         string    `gorm:"column:id;primaryKey"`
	Titulo     string    `gorm:"column:titulo"`
	Descricao  string    `gorm:"column:descricao"`
	DataInicio time.Time `gorm:"column:data_inicio"`
	DataFim    time.Time `gorm:"column:data_fim"`
	Status     string    `gorm:"column:status;index"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
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

func electionModelFromEntity(e entities.Election) electionModel {
	return electionModel{
		ID:         e.ID,
		Titulo:     e.Title,
		Descricao:  e.Description,
		DataInicio: e.StartsAt,
		DataFim:    e.EndsAt,
		Status:     string(e.Status),
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
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

func candidateModelFromEntity(c entities.Candidate) candidateModel {
	return candidateModel{
		ID:        c.ID,
		EleicaoID: c.ElectionID,
		Numero:    c.Number,
		Nome:      c.Name,
		Partido:   c.Party,
		FotoURL:   c.PhotoURL,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
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

func voterModelFromEntity(v entities.Voter) voterModel {
	return voterModel{
		ID:          v.ID,
		EleicaoID:   v.ElectionID,
		Matricula:   v.Registration,
		Nome:        v.Name,
		JaVotou:     v.HasVoted,
		HorarioVoto: v.VotedAt,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}

// voteRefModel only counts ledger rows; the registry never writes votes.
type voteRefModel struct {
	ID          string  `gorm:"column:id;primaryKey"`
	EleicaoID   string  `gorm:"column:eleicao_id"`
	CandidatoID *string `gorm:"column:candidato_id"`
}

func (voteRefModel) TableName() string { return "votos" }
