package httpadapter

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/Masterbarreto/Api-Urna/contexts/election-operations/results-service/application/queries"
	"github.com/Masterbarreto/Api-Urna/contexts/election-operations/results-service/domain/entities"
	httptransport "github.com/Masterbarreto/Api-Urna/contexts/election-operations/results-service/transport/http"
)

type Handler struct {
	Results queries.ResultsUseCase
	Logger  *slog.Logger
}

// ElectionResultsHandler godoc
// @Summary Election result sheet computed from the vote ledger
// @Tags resultados
// @Produce json
// @Param eleicao_id path string true "election id"
// @Success 200 {object} http.ElectionResultsResponse
// @Failure 404 {object} http.ErrorResponse
// @Router /api/v1/resultados/{eleicao_id} [get]
func (h Handler) ElectionResultsHandler(
	ctx context.Context,
	electionID string,
) (httptransport.ElectionResultsResponse, error) {
	results, err := h.Results.ElectionResults(ctx, electionID)
	if err != nil {
		return httptransport.ElectionResultsResponse{}, err
	}
	resp := httptransport.ElectionResultsResponse{
		EleicaoID:    results.Election.ID,
		Titulo:       results.Election.Title,
		Status:       results.Election.Status,
		TotalVotos:   results.TotalVotes,
		VotosNulos:   results.NullVotes,
		VotosBrancos: results.BlankVotes,
		Candidatos:   make([]httptransport.CandidateTallyItem, 0, len(results.Tallies)),
		Participacao: httptransport.ParticipationItem{
			Aptos:          results.Participation.Eligible,
			Votantes:       results.Participation.Voted,
			Abstencoes:     results.Participation.Abstentions,
			Comparecimento: results.Participation.Turnout,
		},
		GeradoEm: results.GeneratedAt.Format(time.RFC3339),
	}
	for _, tally := range results.Tallies {
		resp.Candidatos = append(resp.Candidatos, httptransport.CandidateTallyItem{
			CandidatoID: tally.CandidateID,
			Numero:      tally.Number,
			Nome:        tally.Name,
			Partido:     tally.Party,
			Votos:       tally.Votes,
			Percentual:  tally.Percent,
		})
	}
	return resp, nil
}

// ExportResultsHandler godoc
// @Summary Export election results as CSV
// @Tags resultados
// @Produce text/csv
// @Param eleicao_id path string true "election id"
// @Param formato query string false "export format, csv only"
// @Success 200
// @Failure 400 {object} http.ErrorResponse
// @Failure 404 {object} http.ErrorResponse
// @Router /api/v1/resultados/{eleicao_id}/exportar [get]
func (h Handler) ExportResultsHandler(ctx context.Context, electionID string, format string, out io.Writer) error {
	return h.Results.ExportCSV(ctx, electionID, format, out)
}

// DashboardHandler godoc
// @Summary Dashboard summary with per-election totals and fleet status
// @Tags dashboard
// @Produce json
// @Success 200 {object} http.DashboardResponse
// @Router /api/v1/dashboard/summary [get]
func (h Handler) DashboardHandler(ctx context.Context) (httptransport.DashboardResponse, error) {
	summary, err := h.Results.Dashboard(ctx)
	if err != nil {
		return httptransport.DashboardResponse{}, err
	}
	resp := httptransport.DashboardResponse{
		Eleicoes: make([]httptransport.ElectionTotalsItem, 0, len(summary.Elections)),
		Urnas:    fleetItem(summary.Fleet),
		GeradoEm: summary.GeneratedAt.Format(time.RFC3339),
	}
	for _, totals := range summary.Elections {
		resp.Eleicoes = append(resp.Eleicoes, httptransport.ElectionTotalsItem{
			EleicaoID:      totals.Election.ID,
			Titulo:         totals.Election.Title,
			Status:         totals.Election.Status,
			TotalVotos:     totals.TotalVotes,
			Comparecimento: totals.Turnout,
		})
	}
	return resp, nil
}

func fleetItem(fleet entities.FleetStatus) httptransport.FleetStatusItem {
	return httptransport.FleetStatusItem{
		Total:   fleet.Total,
		Online:  fleet.Online,
		Warning: fleet.Warning,
		Offline: fleet.Offline,
	}
}
