package httpadapter

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/Masterbarreto/Api-Urna/contexts/election-operations/registry-service/application"
	"github.com/Masterbarreto/Api-Urna/contexts/election-operations/registry-service/domain/entities"
	domainerrors "github.com/Masterbarreto/Api-Urna/contexts/election-operations/registry-service/domain/errors"
	httptransport "github.com/Masterbarreto/Api-Urna/contexts/election-operations/registry-service/transport/http"
)

type Handler struct {
	Registry application.Service
	Logger   *slog.Logger
}

// CreateElectionHandler godoc
// @Summary Create an election
// @Tags eleicoes
// @Accept json
// @Produce json
// @Param request body http.ElectionRequest true "election"
// @Success 201 {object} http.ElectionResponse
// @Failure 400 {object} http.ErrorResponse
// @Router /api/v1/eleicoes [post]
func (h Handler) CreateElectionHandler(
	ctx context.Context,
	req httptransport.ElectionRequest,
) (httptransport.ElectionResponse, error) {
	startsAt, endsAt, err := parseWindow(req.DataInicio, req.DataFim)
	if err != nil {
		return httptransport.ElectionResponse{}, err
	}
	election, err := h.Registry.CreateElection(ctx, application.CreateElectionCommand{
		Title:       req.Titulo,
		Description: req.Descricao,
		StartsAt:    startsAt,
		EndsAt:      endsAt,
	})
	if err != nil {
		return httptransport.ElectionResponse{}, err
	}
	return electionResponse(election), nil
}

// UpdateElectionHandler godoc
// @Summary Update an election, including status transitions
// @Tags eleicoes
// @Accept json
// @Produce json
// @Param id path string true "election id"
// @Param request body http.ElectionRequest true "election"
// @Success 200 {object} http.ElectionResponse
// @Failure 400 {object} http.ErrorResponse
// @Failure 404 {object} http.ErrorResponse
// @Failure 409 {object} http.ErrorResponse
// @Router /api/v1/eleicoes/{id} [put]
func (h Handler) UpdateElectionHandler(
	ctx context.Context,
	electionID string,
	req httptransport.ElectionRequest,
) (httptransport.ElectionResponse, error) {
	cmd := application.UpdateElectionCommand{ElectionID: electionID}
	if req.Titulo != "" {
		cmd.Title = &req.Titulo
	}
	if req.Descricao != "" {
		cmd.Description = &req.Descricao
	}
	if req.DataInicio != "" {
		startsAt, err := parseTime(req.DataInicio)
		if err != nil {
			return httptransport.ElectionResponse{}, err
		}
		cmd.StartsAt = &startsAt
	}
	if req.DataFim != "" {
		endsAt, err := parseTime(req.DataFim)
		if err != nil {
			return httptransport.ElectionResponse{}, err
		}
		cmd.EndsAt = &endsAt
	}
	if req.Status != nil {
		status := entities.ElectionStatus(*req.Status)
		cmd.Status = &status
	}
	election, err := h.Registry.UpdateElection(ctx, cmd)
	if err != nil {
		return httptransport.ElectionResponse{}, err
	}
	return electionResponse(election), nil
}

// GetElectionHandler godoc
// @Summary Get an election by id
// @Tags eleicoes
// @Produce json
// @Param id path string true "election id"
// @Success 200 {object} http.ElectionResponse
// @Failure 404 {object} http.ErrorResponse
// @Router /api/v1/eleicoes/{id} [get]
func (h Handler) GetElectionHandler(ctx context.Context, electionID string) (httptransport.ElectionResponse, error) {
	election, err := h.Registry.GetElection(ctx, electionID)
	if err != nil {
		return httptransport.ElectionResponse{}, err
	}
	return electionResponse(election), nil
}

// ListElectionsHandler godoc
// @Summary List elections
// @Tags eleicoes
// @Produce json
// @Success 200 {object} http.ElectionListResponse
// @Router /api/v1/eleicoes [get]
func (h Handler) ListElectionsHandler(ctx context.Context) (httptransport.ElectionListResponse, error) {
	elections, err := h.Registry.ListElections(ctx)
	if err != nil {
		return httptransport.ElectionListResponse{}, err
	}
	resp := httptransport.ElectionListResponse{Items: make([]httptransport.ElectionResponse, 0, len(elections))}
	for _, election := range elections {
		resp.Items = append(resp.Items, electionResponse(election))
	}
	return resp, nil
}

// DeleteElectionHandler godoc
// @Summary Delete an election without recorded votes
// @Tags eleicoes
// @Param id path string true "election id"
// @Success 204
// @Failure 404 {object} http.ErrorResponse
// @Failure 409 {object} http.ErrorResponse
// @Router /api/v1/eleicoes/{id} [delete]
func (h Handler) DeleteElectionHandler(ctx context.Context, electionID string) error {
	return h.Registry.DeleteElection(ctx, electionID)
}

// CreateCandidateHandler godoc
// @Summary Register a candidate in an election
// @Tags candidatos
// @Accept json
// @Produce json
// @Param request body http.CandidateRequest true "candidate"
// @Success 201 {object} http.CandidateResponse
// @Failure 400 {object} http.ErrorResponse
// @Failure 404 {object} http.ErrorResponse
// @Failure 409 {object} http.ErrorResponse
// @Router /api/v1/candidatos [post]
func (h Handler) CreateCandidateHandler(
	ctx context.Context,
	req httptransport.CandidateRequest,
) (httptransport.CandidateResponse, error) {
	candidate, err := h.Registry.CreateCandidate(ctx, application.CreateCandidateCommand{
		ElectionID: req.EleicaoID,
		Number:     req.Numero,
		Name:       req.Nome,
		Party:      req.Partido,
		PhotoURL:   req.FotoURL,
	})
	if err != nil {
		return httptransport.CandidateResponse{}, err
	}
	return candidateResponse(candidate), nil
}

// UpdateCandidateHandler godoc
// @Summary Update a candidate
// @Tags candidatos
// @Accept json
// @Produce json
// @Param id path string true "candidate id"
// @Param request body http.CandidateRequest true "candidate"
// @Success 200 {object} http.CandidateResponse
// @Failure 400 {object} http.ErrorResponse
// @Failure 404 {object} http.ErrorResponse
// @Failure 409 {object} http.ErrorResponse
// @Router /api/v1/candidatos/{id} [put]
func (h Handler) UpdateCandidateHandler(
	ctx context.Context,
	candidateID string,
	req httptransport.CandidateRequest,
) (httptransport.CandidateResponse, error) {
	cmd := application.UpdateCandidateCommand{CandidateID: candidateID}
	if req.Numero != 0 {
		cmd.Number = &req.Numero
	}
	if req.Nome != "" {
		cmd.Name = &req.Nome
	}
	if req.Partido != "" {
		cmd.Party = &req.Partido
	}
	if req.FotoURL != "" {
		cmd.PhotoURL = &req.FotoURL
	}
	candidate, err := h.Registry.UpdateCandidate(ctx, cmd)
	if err != nil {
		return httptransport.CandidateResponse{}, err
	}
	return candidateResponse(candidate), nil
}

// GetCandidateHandler godoc
// @Summary Get a candidate by id
// @Tags candidatos
// @Produce json
// @Param id path string true "candidate id"
// @Success 200 {object} http.CandidateResponse
// @Failure 404 {object} http.ErrorResponse
// @Router /api/v1/candidatos/{id} [get]
func (h Handler) GetCandidateHandler(ctx context.Context, candidateID string) (httptransport.CandidateResponse, error) {
	candidate, err := h.Registry.GetCandidate(ctx, candidateID)
	if err != nil {
		return httptransport.CandidateResponse{}, err
	}
	return candidateResponse(candidate), nil
}

// ListCandidatesHandler godoc
// @Summary List the candidates of an election
// @Tags candidatos
// @Produce json
// @Param eleicao_id query string true "election id"
// @Success 200 {object} http.CandidateListResponse
// @Router /api/v1/candidatos [get]
func (h Handler) ListCandidatesHandler(
	ctx context.Context,
	electionID string,
) (httptransport.CandidateListResponse, error) {
	candidates, err := h.Registry.ListCandidates(ctx, electionID)
	if err != nil {
		return httptransport.CandidateListResponse{}, err
	}
	resp := httptransport.CandidateListResponse{
		EleicaoID: electionID,
		Items:     make([]httptransport.CandidateResponse, 0, len(candidates)),
	}
	for _, candidate := range candidates {
		resp.Items = append(resp.Items, candidateResponse(candidate))
	}
	return resp, nil
}

// DeleteCandidateHandler godoc
// @Summary Delete a candidate without recorded votes
// @Tags candidatos
// @Param id path string true "candidate id"
// @Success 204
// @Failure 404 {object} http.ErrorResponse
// @Failure 409 {object} http.ErrorResponse
// @Router /api/v1/candidatos/{id} [delete]
func (h Handler) DeleteCandidateHandler(ctx context.Context, candidateID string) error {
	return h.Registry.DeleteCandidate(ctx, candidateID)
}

// CreateVoterHandler godoc
// @Summary Register a voter in an election
// @Tags eleitores
// @Accept json
// @Produce json
// @Param request body http.VoterRequest true "voter"
// @Success 201 {object} http.VoterResponse
// @Failure 400 {object} http.ErrorResponse
// @Failure 404 {object} http.ErrorResponse
// @Failure 409 {object} http.ErrorResponse
// @Router /api/v1/eleitores [post]
func (h Handler) CreateVoterHandler(
	ctx context.Context,
	req httptransport.VoterRequest,
) (httptransport.VoterResponse, error) {
	voter, err := h.Registry.CreateVoter(ctx, application.CreateVoterCommand{
		ElectionID:   req.EleicaoID,
		Registration: req.Matricula,
		Name:         req.Nome,
	})
	if err != nil {
		return httptransport.VoterResponse{}, err
	}
	return voterResponse(voter), nil
}

// UpdateVoterHandler godoc
// @Summary Update a voter's name
// @Tags eleitores
// @Accept json
// @Produce json
// @Param id path string true "voter id"
// @Param request body http.VoterRequest true "voter"
// @Success 200 {object} http.VoterResponse
// @Failure 400 {object} http.ErrorResponse
// @Failure 404 {object} http.ErrorResponse
// @Router /api/v1/eleitores/{id} [put]
func (h Handler) UpdateVoterHandler(
	ctx context.Context,
	voterID string,
	req httptransport.VoterRequest,
) (httptransport.VoterResponse, error) {
	cmd := application.UpdateVoterCommand{VoterID: voterID}
	if req.Nome != "" {
		cmd.Name = &req.Nome
	}
	voter, err := h.Registry.UpdateVoter(ctx, cmd)
	if err != nil {
		return httptransport.VoterResponse{}, err
	}
	return voterResponse(voter), nil
}

// GetVoterHandler godoc
// @Summary Get a voter by id
// @Tags eleitores
// @Produce json
// @Param id path string true "voter id"
// @Success 200 {object} http.VoterResponse
// @Failure 404 {object} http.ErrorResponse
// @Router /api/v1/eleitores/{id} [get]
func (h Handler) GetVoterHandler(ctx context.Context, voterID string) (httptransport.VoterResponse, error) {
	voter, err := h.Registry.GetVoter(ctx, voterID)
	if err != nil {
		return httptransport.VoterResponse{}, err
	}
	return voterResponse(voter), nil
}

// ListVotersHandler godoc
// @Summary List the voters of an election, paginated
// @Tags eleitores
// @Produce json
// @Param eleicao_id query string true "election id"
// @Param search query string false "name or registration filter"
// @Param page query int false "page, 1-based"
// @Param limit query int false "page size, max 100"
// @Success 200 {object} http.VoterListResponse
// @Router /api/v1/eleitores [get]
func (h Handler) ListVotersHandler(
	ctx context.Context,
	electionID string,
	search string,
	page int,
	limit int,
) (httptransport.VoterListResponse, error) {
	result, err := h.Registry.ListVoters(ctx, electionID, search, page, limit)
	if err != nil {
		return httptransport.VoterListResponse{}, err
	}
	resp := httptransport.VoterListResponse{
		Items: make([]httptransport.VoterResponse, 0, len(result.Items)),
		Total: result.Total,
		Page:  result.Page,
		Limit: result.Limit,
	}
	for _, voter := range result.Items {
		resp.Items = append(resp.Items, voterResponse(voter))
	}
	return resp, nil
}

// DeleteVoterHandler godoc
// @Summary Delete a voter who has not voted
// @Tags eleitores
// @Param id path string true "voter id"
// @Success 204
// @Failure 404 {object} http.ErrorResponse
// @Failure 409 {object} http.ErrorResponse
// @Router /api/v1/eleitores/{id} [delete]
func (h Handler) DeleteVoterHandler(ctx context.Context, voterID string) error {
	return h.Registry.DeleteVoter(ctx, voterID)
}

// ImportVotersHandler godoc
// @Summary Bulk-import voters from a matricula,nome CSV file
// @Tags eleitores
// @Accept text/csv
// @Produce json
// @Param eleicao_id path string true "election id"
// @Success 200 {object} http.ImportVotersResponse
// @Failure 404 {object} http.ErrorResponse
// @Router /api/v1/eleicoes/{eleicao_id}/eleitores/importar [post]
func (h Handler) ImportVotersHandler(
	ctx context.Context,
	electionID string,
	input io.Reader,
) (httptransport.ImportVotersResponse, error) {
	report, err := h.Registry.ImportVoters(ctx, electionID, input)
	if err != nil {
		return httptransport.ImportVotersResponse{}, err
	}
	resp := httptransport.ImportVotersResponse{
		Importados: report.Imported,
		Ignorados:  make([]httptransport.ImportRowErrorItem, 0, len(report.Skipped)),
	}
	for _, skipped := range report.Skipped {
		resp.Ignorados = append(resp.Ignorados, httptransport.ImportRowErrorItem{
			Linha:  skipped.Row,
			Motivo: skipped.Reason,
		})
	}
	return resp, nil
}

func parseWindow(start string, end string) (time.Time, time.Time, error) {
	startsAt, err := parseTime(start)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	endsAt, err := parseTime(end)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return startsAt, endsAt, nil
}

func parseTime(value string) (time.Time, error) {
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, domainerrors.ErrInvalidInput
	}
	return parsed.UTC(), nil
}

func electionResponse(e entities.Election) httptransport.ElectionResponse {
	return httptransport.ElectionResponse{
		ID:         e.ID,
		Titulo:     e.Title,
		Descricao:  e.Description,
		DataInicio: e.StartsAt.Format(time.RFC3339),
		DataFim:    e.EndsAt.Format(time.RFC3339),
		Status:     string(e.Status),
		CreatedAt:  e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  e.UpdatedAt.Format(time.RFC3339),
	}
}

func candidateResponse(c entities.Candidate) httptransport.CandidateResponse {
	return httptransport.CandidateResponse{
		ID:        c.ID,
		EleicaoID: c.ElectionID,
		Numero:    c.Number,
		Nome:      c.Name,
		Partido:   c.Party,
		FotoURL:   c.PhotoURL,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
		UpdatedAt: c.UpdatedAt.Format(time.RFC3339),
	}
}

func voterResponse(v entities.Voter) httptransport.VoterResponse {
	resp := httptransport.VoterResponse{
		ID:        v.ID,
		EleicaoID: v.ElectionID,
		Matricula: v.Registration,
		Nome:      v.Name,
		JaVotou:   v.HasVoted,
		CreatedAt: v.CreatedAt.Format(time.RFC3339),
		UpdatedAt: v.UpdatedAt.Format(time.RFC3339),
	}
	if v.VotedAt != nil {
		votedAt := v.VotedAt.Format(time.RFC3339)
		resp.HorarioVoto = &votedAt
	}
	return resp
}
