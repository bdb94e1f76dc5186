package postgresadapter

import (
	"time"

	"github.com/Masterbarreto/Api-Urna/contexts/election-operations/booth-service/domain/entities"
)

type boothModel struct {
	ID            string     `gorm:"column:id;primaryKey"`
	Numero        int        `gorm:"column:numero;uniqueIndex:idx_urnas_numero"`
	Localizacao   string     `gorm:"column:localizacao"`
	Status        string     `gorm:"column:status;index"`
	IPAddress     string     `gorm:"column:ip_address"`
	EleicaoID     string     `gorm:"column:eleicao_id;index"`
	UltimoPing    *time.Time `gorm:"column:ultimo_ping"`
	ConexaoStatus string     `gorm:"column:conexao_status"`
	CreatedAt     time.Time  `gorm:"column:created_at"`
	UpdatedAt     time.Time  `gorm:"column:updated_at"`
}

func (boothModel) TableName() string { return "urnas" }

func (m boothModel) toEntity() entities.Booth {
	return entities.Booth{
		ID:         m.ID,
		Number:     m.Numero,
		Location:   m.Localizacao,
		Status:     entities.BoothStatus(m.Status),
		IPAddress:  m.IPAddress,
		ElectionID: m.EleicaoID,
		LastPing:   m.UltimoPing,
		Connection: entities.ConnectionState(m.ConexaoStatus),
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func boothModelFromEntity(b entities.Booth) boothModel {
	return boothModel{
		ID:            b.ID,
		Numero:        b.Number,
		Localizacao:   b.Location,
		Status:        string(b.Status),
		IPAddress:     b.IPAddress,
		EleicaoID:     b.ElectionID,
		UltimoPing:    b.LastPing,
		ConexaoStatus: string(b.Connection),
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}
