package application

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Masterbarreto/Api-Urna/contexts/election-operations/registry-service/adapters/memory"
	"github.com/Masterbarreto/Api-Urna/contexts/election-operations/registry-service/domain/entities"
	domainerrors "github.com/Masterbarreto/Api-Urna/contexts/election-operations/registry-service/domain/errors"
)

func newTestService(t *testing.T) (Service, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	store.SetNow(time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC))
	service := Service{
		Elections:  store,
		Candidates: store,
		Voters:     store,
		Clock:      store,
		IDGen:      store,
	}
	return service, store
}

func createElection(t *testing.T, service Service) entities.Election {
	t.Helper()
	election, err := service.CreateElection(context.Background(), CreateElectionCommand{
		Title:    "Eleição do Grêmio 2026",
		StartsAt: time.Date(2026, 5, 10, 8, 0, 0, 0, time.UTC),
		EndsAt:   time.Date(2026, 5, 10, 18, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("CreateElection: %v", err)
	}
	return election
}

func TestCreateElectionStartsAsCreated(t *testing.T) {
	service, _ := newTestService(t)

	election := createElection(t, service)

	if election.Status != entities.ElectionStatusCreated {
		t.Fatalf("status = %q, want %q", election.Status, entities.ElectionStatusCreated)
	}
	if election.ID == "" {
		t.Fatal("expected generated id")
	}
}

func TestCreateElectionRejectsInvertedWindow(t *testing.T) {
	service, _ := newTestService(t)

	_, err := service.CreateElection(context.Background(), CreateElectionCommand{
		Title:    "Janela invertida",
		StartsAt: time.Date(2026, 5, 10, 18, 0, 0, 0, time.UTC),
		EndsAt:   time.Date(2026, 5, 10, 8, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, domainerrors.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestElectionStatusLifecycle(t *testing.T) {
	service, _ := newTestService(t)
	election := createElection(t, service)

	active := entities.ElectionStatusActive
	updated, err := service.UpdateElection(context.Background(), UpdateElectionCommand{
		ElectionID: election.ID,
		Status:     &active,
	})
	if err != nil {
		t.Fatalf("activate: %v", err)
	}
	if updated.Status != entities.ElectionStatusActive {
		t.Fatalf("status = %q, want ativa", updated.Status)
	}

	finished := entities.ElectionStatusFinished
	if _, err := service.UpdateElection(context.Background(), UpdateElectionCommand{
		ElectionID: election.ID,
		Status:     &finished,
	}); err != nil {
		t.Fatalf("finish: %v", err)
	}

	// A finished election is terminal.
	if _, err := service.UpdateElection(context.Background(), UpdateElectionCommand{
		ElectionID: election.ID,
		Status:     &active,
	}); !errors.Is(err, domainerrors.ErrInvalidStatusTransition) {
		t.Fatalf("err = %v, want ErrInvalidStatusTransition", err)
	}
}

func TestUpdateElectionRejectsCreatedToFinished(t *testing.T) {
	service, _ := newTestService(t)
	election := createElection(t, service)

	finished := entities.ElectionStatusFinished
	_, err := service.UpdateElection(context.Background(), UpdateElectionCommand{
		ElectionID: election.ID,
		Status:     &finished,
	})
	if !errors.Is(err, domainerrors.ErrInvalidStatusTransition) {
		t.Fatalf("err = %v, want ErrInvalidStatusTransition", err)
	}
}

func TestDeleteElectionRefusedWithVotes(t *testing.T) {
	service, store := newTestService(t)
	election := createElection(t, service)
	store.SetVoteCounts(election.ID, "", 3)

	err := service.DeleteElection(context.Background(), election.ID)
	if !errors.Is(err, domainerrors.ErrElectionHasVotes) {
		t.Fatalf("err = %v, want ErrElectionHasVotes", err)
	}
	if _, err := service.GetElection(context.Background(), election.ID); err != nil {
		t.Fatalf("election should still exist: %v", err)
	}
}

func TestDeleteElectionWithoutVotes(t *testing.T) {
	service, _ := newTestService(t)
	election := createElection(t, service)

	if err := service.DeleteElection(context.Background(), election.ID); err != nil {
		t.Fatalf("DeleteElection: %v", err)
	}
	if _, err := service.GetElection(context.Background(), election.ID); !errors.Is(err, domainerrors.ErrElectionNotFound) {
		t.Fatalf("err = %v, want ErrElectionNotFound", err)
	}
}

func TestCreateCandidateRejectsDuplicateNumber(t *testing.T) {
	service, _ := newTestService(t)
	election := createElection(t, service)

	_, err := service.CreateCandidate(context.Background(), CreateCandidateCommand{
		ElectionID: election.ID,
		Number:     13,
		Name:       "Chapa Azul",
	})
	if err != nil {
		t.Fatalf("CreateCandidate: %v", err)
	}

	_, err = service.CreateCandidate(context.Background(), CreateCandidateCommand{
		ElectionID: election.ID,
		Number:     13,
		Name:       "Chapa Verde",
	})
	if !errors.Is(err, domainerrors.ErrDuplicateNumber) {
		t.Fatalf("err = %v, want ErrDuplicateNumber", err)
	}
}

func TestDeleteCandidateRefusedWithVotes(t *testing.T) {
	service, store := newTestService(t)
	election := createElection(t, service)
	candidate, err := service.CreateCandidate(context.Background(), CreateCandidateCommand{
		ElectionID: election.ID,
		Number:     22,
		Name:       "Chapa Única",
	})
	if err != nil {
		t.Fatalf("CreateCandidate: %v", err)
	}
	store.SetVoteCounts("", candidate.ID, 1)

	if err := service.DeleteCandidate(context.Background(), candidate.ID); !errors.Is(err, domainerrors.ErrCandidateHasVotes) {
		t.Fatalf("err = %v, want ErrCandidateHasVotes", err)
	}
}

func TestCreateVoterRejectsDuplicateRegistration(t *testing.T) {
	service, _ := newTestService(t)
	election := createElection(t, service)

	_, err := service.CreateVoter(context.Background(), CreateVoterCommand{
		ElectionID:   election.ID,
		Registration: "2026001",
		Name:         "Ana Souza",
	})
	if err != nil {
		t.Fatalf("CreateVoter: %v", err)
	}

	_, err = service.CreateVoter(context.Background(), CreateVoterCommand{
		ElectionID:   election.ID,
		Registration: "2026001",
		Name:         "Outra Pessoa",
	})
	if !errors.Is(err, domainerrors.ErrDuplicateRegistration) {
		t.Fatalf("err = %v, want ErrDuplicateRegistration", err)
	}
}

func TestDeleteVoterRefusedAfterVoting(t *testing.T) {
	service, store := newTestService(t)
	election := createElection(t, service)
	voter, err := service.CreateVoter(context.Background(), CreateVoterCommand{
		ElectionID:   election.ID,
		Registration: "2026002",
		Name:         "Bruno Lima",
	})
	if err != nil {
		t.Fatalf("CreateVoter: %v", err)
	}

	votedAt := store.Now()
	voter.HasVoted = true
	voter.VotedAt = &votedAt
	if err := store.SaveVoter(context.Background(), voter); err != nil {
		t.Fatalf("SaveVoter: %v", err)
	}

	if err := service.DeleteVoter(context.Background(), voter.ID); !errors.Is(err, domainerrors.ErrVoterHasVoted) {
		t.Fatalf("err = %v, want ErrVoterHasVoted", err)
	}
}

func TestImportVotersReportsRowFailures(t *testing.T) {
	service, _ := newTestService(t)
	election := createElection(t, service)

	csvInput := strings.Join([]string{
		"matricula,nome",
		"2026010,Carla Dias",
		"2026011,Diego Nunes",
		"2026010,Matricula Repetida",
		",Sem Matricula",
		"2026012,Elisa Prado",
	}, "\n")

	report, err := service.ImportVoters(context.Background(), election.ID, strings.NewReader(csvInput))
	if err != nil {
		t.Fatalf("ImportVoters: %v", err)
	}
	if report.Imported != 3 {
		t.Fatalf("imported = %d, want 3", report.Imported)
	}
	if len(report.Skipped) != 2 {
		t.Fatalf("skipped = %d, want 2", len(report.Skipped))
	}

	page, err := service.ListVoters(context.Background(), election.ID, "", 1, 50)
	if err != nil {
		t.Fatalf("ListVoters: %v", err)
	}
	if page.Total != 3 {
		t.Fatalf("total voters = %d, want 3", page.Total)
	}
}

func TestImportVotersUnknownElection(t *testing.T) {
	service, _ := newTestService(t)

	_, err := service.ImportVoters(context.Background(), "nope", strings.NewReader("matricula,nome\n1,a\n"))
	if !errors.Is(err, domainerrors.ErrElectionNotFound) {
		t.Fatalf("err = %v, want ErrElectionNotFound", err)
	}
}

func TestListVotersSearchAndPagination(t *testing.T) {
	service, _ := newTestService(t)
	election := createElection(t, service)

	names := []string{"Alice Reis", "Alan Reis", "Bianca Melo", "Caio Reis"}
	for i, name := range names {
		_, err := service.CreateVoter(context.Background(), CreateVoterCommand{
			ElectionID:   election.ID,
			Registration: "20260" + string(rune('a'+i)),
			Name:         name,
		})
		if err != nil {
			t.Fatalf("CreateVoter %q: %v", name, err)
		}
	}

	page, err := service.ListVoters(context.Background(), election.ID, "reis", 1, 2)
	if err != nil {
		t.Fatalf("ListVoters: %v", err)
	}
	if page.Total != 3 {
		t.Fatalf("total = %d, want 3", page.Total)
	}
	if len(page.Items) != 2 {
		t.Fatalf("page size = %d, want 2", len(page.Items))
	}
}
