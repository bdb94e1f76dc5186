package postgresadapter

import (
	"encoding/json"
	"time"

	"github.com/Masterbarreto/Api-Urna/contexts/internal-ops/audit-service/domain/entities"
)

type entryModel struct {
	ID            string    `gorm:"column:id;primaryKey"`
	UsuarioID     string    `gorm:"column:usuario_id;index"`
	Acao          string    `gorm:"column:acao;index"`
	TabelaAfetada string    `gorm:"column:tabela_afetada"`
	RegistroID    string    `gorm:"column:registro_id"`
	DadosNovos    string    `gorm:"column:dados_novos"`
	IPAddress     string    `gorm:"column:ip_address"`
	UserAgent     string    `gorm:"column:user_agent"`
	CreatedAt     time.Time `gorm:"column:created_at;index"`
}

func (entryModel) TableName() string { return "logs_auditoria" }

func (m entryModel) toEntity() entities.Entry {
	entry := entities.Entry{
		ID:        m.ID,
		UserID:    m.UsuarioID,
		Action:    m.Acao,
		Table:     m.TabelaAfetada,
		RecordID:  m.RegistroID,
		IPAddress: m.IPAddress,
		UserAgent: m.UserAgent,
		CreatedAt: m.CreatedAt,
	}
	if m.DadosNovos != "" {
		var data map[string]any
		if err := json.Unmarshal([]byte(m.DadosNovos), &data); err == nil {
			entry.Data = data
		}
	}
	return entry
}

func entryModelFromEntity(e entities.Entry) (entryModel, error) {
	row := entryModel{
		ID:            e.ID,
		UsuarioID:     e.UserID,
		Acao:          e.Action,
		TabelaAfetada: e.Table,
		RegistroID:    e.RecordID,
		IPAddress:     e.IPAddress,
		UserAgent:     e.UserAgent,
		CreatedAt:     e.CreatedAt,
	}
	if e.Data != nil {
		raw, err := json.Marshal(e.Data)
		if err != nil {
			return entryModel{}, err
		}
		row.DadosNovos = string(raw)
	}
	return row, nil
}
