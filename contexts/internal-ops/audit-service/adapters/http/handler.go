package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"github.com/Masterbarreto/Api-Urna/contexts/internal-ops/audit-service/application"
	"github.com/Masterbarreto/Api-Urna/contexts/internal-ops/audit-service/domain/entities"
	httptransport "github.com/Masterbarreto/Api-Urna/contexts/internal-ops/audit-service/transport/http"
)

type Handler struct {
	Audit  application.Service
	Logger *slog.Logger
}

// ListEntriesHandler godoc
// @Summary List audit entries, newest first
// @Tags auditoria
// @Produce json
// @Param usuario_id query string false "filter by user"
// @Param acao query string false "filter by action"
// @Param tabela query string false "filter by affected table"
// @Param page query int false "page, 1-based"
// @Param limit query int false "page size, max 200"
// @Success 200 {object} http.EntryListResponse
// @Router /api/v1/auditoria [get]
func (h Handler) ListEntriesHandler(
	ctx context.Context,
	filter entities.Filter,
	page, limit int,
) (httptransport.EntryListResponse, error) {
	result, err := h.Audit.ListEntries(ctx, filter, page, limit)
	if err != nil {
		return httptransport.EntryListResponse{}, err
	}
	resp := httptransport.EntryListResponse{
		Items: make([]httptransport.EntryResponse, 0, len(result.Items)),
		Total: result.Total,
		Page:  result.Page,
		Limit: result.Limit,
	}
	for _, entry := range result.Items {
		resp.Items = append(resp.Items, entryResponse(entry))
	}
	return resp, nil
}

// GetEntryHandler godoc
// @Summary Get one audit entry
// @Tags auditoria
// @Produce json
// @Param id path string true "entry id"
// @Success 200 {object} http.EntryResponse
// @Failure 404 {object} http.ErrorResponse
// @Router /api/v1/auditoria/{id} [get]
func (h Handler) GetEntryHandler(ctx context.Context, entryID string) (httptransport.EntryResponse, error) {
	entry, err := h.Audit.GetEntry(ctx, entryID)
	if err != nil {
		return httptransport.EntryResponse{}, err
	}
	return entryResponse(entry), nil
}

// StatsHandler godoc
// @Summary Audit counts grouped by action
// @Tags auditoria
// @Produce json
// @Success 200 {object} http.StatsResponse
// @Router /api/v1/auditoria/estatisticas [get]
func (h Handler) StatsHandler(ctx context.Context, filter entities.Filter) (httptransport.StatsResponse, error) {
	counts, err := h.Audit.Stats(ctx, filter)
	if err != nil {
		return httptransport.StatsResponse{}, err
	}
	resp := httptransport.StatsResponse{PorAcao: make([]httptransport.ActionCountItem, 0, len(counts))}
	for _, count := range counts {
		resp.PorAcao = append(resp.PorAcao, httptransport.ActionCountItem{
			Acao:  count.Action,
			Total: count.Count,
		})
	}
	return resp, nil
}

func entryResponse(e entities.Entry) httptransport.EntryResponse {
	return httptransport.EntryResponse{
		ID:            e.ID,
		UsuarioID:     e.UserID,
		Acao:          e.Action,
		TabelaAfetada: e.Table,
		RegistroID:    e.RecordID,
		DadosNovos:    e.Data,
		IPAddress:     e.IPAddress,
		UserAgent:     e.UserAgent,
		CreatedAt:     e.CreatedAt.Format(time.RFC3339),
	}
}
