package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"github.com/Masterbarreto/Api-Urna/contexts/election-operations/voting-engine/application/commands"
	"github.com/Masterbarreto/Api-Urna/contexts/election-operations/voting-engine/application/queries"
	httptransport "github.com/Masterbarreto/Api-Urna/contexts/election-operations/voting-engine/transport/http"
)

type Handler struct {
	Votes  commands.CastVoteUseCase
	Booth  queries.BoothUseCase
	Logger *slog.Logger
}

// ValidateVoterHandler godoc
// @Summary Validate a voter before the ballot screen
// @Tags urna
// @Accept json
// @Produce json
// @Param request body http.ValidateVoterRequest true "voter registration"
// @Success 200 {object} http.ValidateVoterResponse
// @Failure 404 {object} http.ErrorResponse
// @Failure 409 {object} http.ErrorResponse
// @Router /api/v1/urna/eleitores/validar [post]
func (h Handler) ValidateVoterHandler(
	ctx context.Context,
	req httptransport.ValidateVoterRequest,
) (httptransport.ValidateVoterResponse, error) {
	validation, err := h.Booth.ValidateVoter(ctx, req.EleicaoID, req.Matricula)
	if err != nil {
		return httptransport.ValidateVoterResponse{}, err
	}
	return httptransport.ValidateVoterResponse{
		EleitorNome:   validation.VoterName,
		Matricula:     validation.Registration,
		EleicaoID:     validation.ElectionID,
		EleicaoTitulo: validation.ElectionTitle,
	}, nil
}

// ListCandidatesHandler godoc
// @Summary List the candidates of an election for the ballot screen
// @Tags urna
// @Produce json
// @Param eleicao_id query string false "election id; active election when omitted"
// @Success 200 {object} http.CandidateListResponse
// @Failure 404 {object} http.ErrorResponse
// @Router /api/v1/urna/candidatos [get]
func (h Handler) ListCandidatesHandler(
	ctx context.Context,
	electionID string,
) (httptransport.CandidateListResponse, error) {
	candidates, err := h.Booth.ListBallotOptions(ctx, electionID)
	if err != nil {
		return httptransport.CandidateListResponse{}, err
	}
	resp := httptransport.CandidateListResponse{
		Items: make([]httptransport.CandidateItem, 0, len(candidates)),
	}
	for _, candidate := range candidates {
		resp.EleicaoID = candidate.ElectionID
		resp.Items = append(resp.Items, httptransport.CandidateItem{
			ID:      candidate.ID,
			Numero:  candidate.Number,
			Nome:    candidate.Name,
			Partido: candidate.Party,
			FotoURL: candidate.PhotoURL,
		})
	}
	return resp, nil
}

// CastVoteHandler godoc
// @Summary Cast a vote
// @Tags urna
// @Accept json
// @Produce json
// @Param request body http.CastVoteRequest true "ballot"
// @Success 201 {object} http.CastVoteResponse
// @Failure 400 {object} http.ErrorResponse
// @Failure 404 {object} http.ErrorResponse
// @Failure 409 {object} http.ErrorResponse
// @Failure 503 {object} http.ErrorResponse
// @Router /api/v1/urna/votos [post]
func (h Handler) CastVoteHandler(
	ctx context.Context,
	req httptransport.CastVoteRequest,
) (httptransport.CastVoteResponse, error) {
	result, err := h.Votes.CastVote(ctx, commands.CastVoteCommand{
		ElectionID:        req.EleicaoID,
		VoterRegistration: req.EleitorMatricula,
		Selection:         req.CandidatoID,
	})
	if err != nil {
		return httptransport.CastVoteResponse{}, err
	}
	return httptransport.CastVoteResponse{
		HashVerificacao: result.VerificationHash,
		TipoVoto:        string(result.Kind),
		Timestamp:       result.CastAt.Format(time.RFC3339),
	}, nil
}
