package application

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/Masterbarreto/Api-Urna/contexts/election-operations/registry-service/domain/entities"
	domainerrors "github.com/Masterbarreto/Api-Urna/contexts/election-operations/registry-service/domain/errors"
	"github.com/Masterbarreto/Api-Urna/contexts/election-operations/registry-service/ports"
)

// Service owns the administrative lifecycle of elections, candidates and
// voters. All vote-time reads happen in the voting-engine module; this
// service only prepares the data voting runs on.
type Service struct {
	Elections  ports.ElectionRepository
	Candidates ports.CandidateRepository
	Voters     ports.VoterRepository
	Auditor    ports.Auditor
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

type CreateElectionCommand struct {
	Title       string
	Description string
	StartsAt    time.Time
	EndsAt      time.Time
}

type UpdateElectionCommand struct {
	ElectionID  string
	Title       *string
	Description *string
	StartsAt    *time.Time
	EndsAt      *time.Time
	Status      *entities.ElectionStatus
}

func (s Service) CreateElection(ctx context.Context, cmd CreateElectionCommand) (entities.Election, error) {
	title := strings.TrimSpace(cmd.Title)
	if title == "" || cmd.StartsAt.IsZero() || cmd.EndsAt.IsZero() || !cmd.EndsAt.After(cmd.StartsAt) {
		return entities.Election{}, domainerrors.ErrInvalidInput
	}
	id, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.Election{}, err
	}
	now := s.now()
	election := entities.Election{
		ID:          id,
		Title:       title,
		Description: strings.TrimSpace(cmd.Description),
		StartsAt:    cmd.StartsAt.UTC(),
		EndsAt:      cmd.EndsAt.UTC(),
		Status:      entities.ElectionStatusCreated,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Elections.SaveElection(ctx, election); err != nil {
		return entities.Election{}, err
	}
	s.audit(ctx, "CRIACAO_ELEICAO", "eleicoes", election.ID, map[string]any{"titulo": election.Title})
	s.logger().Info("election created",
		"event", "registry_election_created",
		"module", "election-operations/registry-service",
		"layer", "application",
		"election_id", election.ID,
	)
	return election, nil
}

func (s Service) UpdateElection(ctx context.Context, cmd UpdateElectionCommand) (entities.Election, error) {
	election, err := s.Elections.GetElection(ctx, strings.TrimSpace(cmd.ElectionID))
	if err != nil {
		return entities.Election{}, err
	}
	if cmd.Title != nil {
		title := strings.TrimSpace(*cmd.Title)
		if title == "" {
			return entities.Election{}, domainerrors.ErrInvalidInput
		}
		election.Title = title
	}
	if cmd.Description != nil {
		election.Description = strings.TrimSpace(*cmd.Description)
	}
	if cmd.StartsAt != nil {
		election.StartsAt = cmd.StartsAt.UTC()
	}
	if cmd.EndsAt != nil {
		election.EndsAt = cmd.EndsAt.UTC()
	}
	if !election.EndsAt.After(election.StartsAt) {
		return entities.Election{}, domainerrors.ErrInvalidInput
	}
	if cmd.Status != nil {
		if !entities.ValidStatus(*cmd.Status) {
			return entities.Election{}, domainerrors.ErrInvalidInput
		}
		if !entities.CanTransition(election.Status, *cmd.Status) {
			return entities.Election{}, domainerrors.ErrInvalidStatusTransition
		}
		election.Status = *cmd.Status
	}
	election.UpdatedAt = s.now()
	if err := s.Elections.SaveElection(ctx, election); err != nil {
		return entities.Election{}, err
	}
	s.audit(ctx, "ATUALIZACAO_ELEICAO", "eleicoes", election.ID, map[string]any{"status": string(election.Status)})
	return election, nil
}

// DeleteElection refuses to drop an election once any vote is recorded; the
// ledger is append-only and its parent rows must outlive it.
func (s Service) DeleteElection(ctx context.Context, electionID string) error {
	election, err := s.Elections.GetElection(ctx, strings.TrimSpace(electionID))
	if err != nil {
		return err
	}
	votes, err := s.Elections.CountElectionVotes(ctx, election.ID)
	if err != nil {
		return err
	}
	if votes > 0 {
		return domainerrors.ErrElectionHasVotes
	}
	if err := s.Elections.DeleteElection(ctx, election.ID); err != nil {
		return err
	}
	s.audit(ctx, "EXCLUSAO_ELEICAO", "eleicoes", election.ID, nil)
	return nil
}

func (s Service) GetElection(ctx context.Context, electionID string) (entities.Election, error) {
	return s.Elections.GetElection(ctx, strings.TrimSpace(electionID))
}

func (s Service) ListElections(ctx context.Context) ([]entities.Election, error) {
	return s.Elections.ListElections(ctx)
}

type CreateCandidateCommand struct {
	ElectionID string
	Number     int
	Name       string
	Party      string
	PhotoURL   string
}

type UpdateCandidateCommand struct {
	CandidateID string
	Number      *int
	Name        *string
	Party       *string
	PhotoURL    *string
}

func (s Service) CreateCandidate(ctx context.Context, cmd CreateCandidateCommand) (entities.Candidate, error) {
	electionID := strings.TrimSpace(cmd.ElectionID)
	name := strings.TrimSpace(cmd.Name)
	if electionID == "" || name == "" || cmd.Number <= 0 {
		return entities.Candidate{}, domainerrors.ErrInvalidInput
	}
	if _, err := s.Elections.GetElection(ctx, electionID); err != nil {
		return entities.Candidate{}, err
	}
	if _, taken, err := s.Candidates.FindCandidateByNumber(ctx, electionID, cmd.Number); err != nil {
		return entities.Candidate{}, err
	} else if taken {
		return entities.Candidate{}, domainerrors.ErrDuplicateNumber
	}
	id, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.Candidate{}, err
	}
	now := s.now()
	candidate := entities.Candidate{
		ID:         id,
		ElectionID: electionID,
		Number:     cmd.Number,
		Name:       name,
		Party:      strings.TrimSpace(cmd.Party),
		PhotoURL:   strings.TrimSpace(cmd.PhotoURL),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.Candidates.SaveCandidate(ctx, candidate); err != nil {
		return entities.Candidate{}, err
	}
	s.audit(ctx, "CRIACAO_CANDIDATO", "candidatos", candidate.ID, map[string]any{
		"eleicao_id": electionID,
		"numero":     cmd.Number,
	})
	return candidate, nil
}

func (s Service) UpdateCandidate(ctx context.Context, cmd UpdateCandidateCommand) (entities.Candidate, error) {
	candidate, err := s.Candidates.GetCandidate(ctx, strings.TrimSpace(cmd.CandidateID))
	if err != nil {
		return entities.Candidate{}, err
	}
	if cmd.Number != nil && *cmd.Number != candidate.Number {
		if *cmd.Number <= 0 {
			return entities.Candidate{}, domainerrors.ErrInvalidInput
		}
		if _, taken, err := s.Candidates.FindCandidateByNumber(ctx, candidate.ElectionID, *cmd.Number); err != nil {
			return entities.Candidate{}, err
		} else if taken {
			return entities.Candidate{}, domainerrors.ErrDuplicateNumber
		}
		candidate.Number = *cmd.Number
	}
	if cmd.Name != nil {
		name := strings.TrimSpace(*cmd.Name)
		if name == "" {
			return entities.Candidate{}, domainerrors.ErrInvalidInput
		}
		candidate.Name = name
	}
	if cmd.Party != nil {
		candidate.Party = strings.TrimSpace(*cmd.Party)
	}
	if cmd.PhotoURL != nil {
		candidate.PhotoURL = strings.TrimSpace(*cmd.PhotoURL)
	}
	candidate.UpdatedAt = s.now()
	if err := s.Candidates.SaveCandidate(ctx, candidate); err != nil {
		return entities.Candidate{}, err
	}
	s.audit(ctx, "ATUALIZACAO_CANDIDATO", "candidatos", candidate.ID, nil)
	return candidate, nil
}

func (s Service) DeleteCandidate(ctx context.Context, candidateID string) error {
	candidate, err := s.Candidates.GetCandidate(ctx, strings.TrimSpace(candidateID))
	if err != nil {
		return err
	}
	votes, err := s.Candidates.CountCandidateVotes(ctx, candidate.ID)
	if err != nil {
		return err
	}
	if votes > 0 {
		return domainerrors.ErrCandidateHasVotes
	}
	if err := s.Candidates.DeleteCandidate(ctx, candidate.ID); err != nil {
		return err
	}
	s.audit(ctx, "EXCLUSAO_CANDIDATO", "candidatos", candidate.ID, nil)
	return nil
}

func (s Service) GetCandidate(ctx context.Context, candidateID string) (entities.Candidate, error) {
	return s.Candidates.GetCandidate(ctx, strings.TrimSpace(candidateID))
}

func (s Service) ListCandidates(ctx context.Context, electionID string) ([]entities.Candidate, error) {
	return s.Candidates.ListCandidates(ctx, strings.TrimSpace(electionID))
}

type CreateVoterCommand struct {
	ElectionID   string
	Registration string
	Name         string
}

type UpdateVoterCommand struct {
	VoterID string
	Name    *string
}

func (s Service) CreateVoter(ctx context.Context, cmd CreateVoterCommand) (entities.Voter, error) {
	electionID := strings.TrimSpace(cmd.ElectionID)
	registration := strings.TrimSpace(cmd.Registration)
	name := strings.TrimSpace(cmd.Name)
	if electionID == "" || registration == "" || name == "" {
		return entities.Voter{}, domainerrors.ErrInvalidInput
	}
	if _, err := s.Elections.GetElection(ctx, electionID); err != nil {
		return entities.Voter{}, err
	}
	if _, taken, err := s.Voters.FindVoterByRegistration(ctx, electionID, registration); err != nil {
		return entities.Voter{}, err
	} else if taken {
		return entities.Voter{}, domainerrors.ErrDuplicateRegistration
	}
	id, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.Voter{}, err
	}
	now := s.now()
	voter := entities.Voter{
		ID:           id,
		ElectionID:   electionID,
		Registration: registration,
		Name:         name,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Voters.SaveVoter(ctx, voter); err != nil {
		return entities.Voter{}, err
	}
	s.audit(ctx, "CRIACAO_ELEITOR", "eleitores", voter.ID, map[string]any{
		"eleicao_id": electionID,
		"matricula":  registration,
	})
	return voter, nil
}

func (s Service) UpdateVoter(ctx context.Context, cmd UpdateVoterCommand) (entities.Voter, error) {
	voter, err := s.Voters.GetVoter(ctx, strings.TrimSpace(cmd.VoterID))
	if err != nil {
		return entities.Voter{}, err
	}
	if cmd.Name != nil {
		name := strings.TrimSpace(*cmd.Name)
		if name == "" {
			return entities.Voter{}, domainerrors.ErrInvalidInput
		}
		voter.Name = name
	}
	voter.UpdatedAt = s.now()
	if err := s.Voters.SaveVoter(ctx, voter); err != nil {
		return entities.Voter{}, err
	}
	return voter, nil
}

func (s Service) DeleteVoter(ctx context.Context, voterID string) error {
	voter, err := s.Voters.GetVoter(ctx, strings.TrimSpace(voterID))
	if err != nil {
		return err
	}
	if voter.HasVoted {
		return domainerrors.ErrVoterHasVoted
	}
	if err := s.Voters.DeleteVoter(ctx, voter.ID); err != nil {
		return err
	}
	s.audit(ctx, "EXCLUSAO_ELEITOR", "eleitores", voter.ID, nil)
	return nil
}

func (s Service) GetVoter(ctx context.Context, voterID string) (entities.Voter, error) {
	return s.Voters.GetVoter(ctx, strings.TrimSpace(voterID))
}

func (s Service) ListVoters(
	ctx context.Context,
	electionID string,
	search string,
	page int,
	limit int,
) (ports.VoterPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.Voters.ListVoters(ctx, strings.TrimSpace(electionID), strings.TrimSpace(search), page, limit)
}

// ImportVoters reads "matricula,nome" CSV rows (optional header) and creates
// the voters that pass validation, reporting per-row failures instead of
// aborting the whole file.
func (s Service) ImportVoters(ctx context.Context, electionID string, input io.Reader) (entities.ImportReport, error) {
	electionID = strings.TrimSpace(electionID)
	if _, err := s.Elections.GetElection(ctx, electionID); err != nil {
		return entities.ImportReport{}, err
	}

	reader := csv.NewReader(input)
	reader.FieldsPerRecord = -1
	report := entities.ImportReport{}
	row := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			report.Skipped = append(report.Skipped, entities.ImportRowError{
				Row:    row,
				Reason: fmt.Sprintf("linha malformada: %v", err),
			})
			continue
		}
		if len(record) < 2 {
			report.Skipped = append(report.Skipped, entities.ImportRowError{
				Row:    row,
				Reason: "esperado matricula,nome",
			})
			continue
		}
		registration := strings.TrimSpace(record[0])
		name := strings.TrimSpace(record[1])
		if row == 1 && strings.EqualFold(registration, "matricula") {
			continue
		}
		_, err = s.CreateVoter(ctx, CreateVoterCommand{
			ElectionID:   electionID,
			Registration: registration,
			Name:         name,
		})
		if err != nil {
			report.Skipped = append(report.Skipped, entities.ImportRowError{
				Row:    row,
				Reason: err.Error(),
			})
			continue
		}
		report.Imported++
	}
	s.logger().Info("voter import finished",
		"event", "registry_voter_import_finished",
		"module", "election-operations/registry-service",
		"layer", "application",
		"election_id", electionID,
		"imported", report.Imported,
		"skipped", len(report.Skipped),
	)
	s.audit(ctx, "IMPORTACAO_ELEITORES", "eleitores", electionID, map[string]any{
		"importados": report.Imported,
		"ignorados":  len(report.Skipped),
	})
	return report, nil
}

func (s Service) audit(ctx context.Context, action string, table string, recordID string, data map[string]any) {
	if s.Auditor == nil {
		return
	}
	if err := s.Auditor.Record(ctx, action, table, recordID, data); err != nil {
		s.logger().Warn("audit record failed",
			"event", "registry_audit_failed",
			"module", "election-operations/registry-service",
			"layer", "application",
			"action", action,
			"error", err.Error(),
		)
	}
}

func (s Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock.Now().UTC()
	}
	return time.Now().UTC()
}

func (s Service) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}
