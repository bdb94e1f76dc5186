package postgresadapter

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/Masterbarreto/Api-Urna/contexts/election-operations/registry-service/domain/entities"
	domainerrors "github.com/Masterbarreto/Api-Urna/contexts/election-operations/registry-service/domain/errors"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(
		sqlite.Open(filepath.Join(t.TempDir(), "urna.db")),
		&gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)},
	)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&electionModel{}, &candidateModel{}, &voterModel{}, &voteRefModel{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func testElection(now time.Time) entities.Election {
	return entities.Election{
		ID:        "eleicao-1",
		Title:     "Eleição 2026",
		StartsAt:  now.Add(-time.Hour),
		EndsAt:    now.Add(time.Hour),
		Status:    entities.ElectionStatusCreated,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestSaveElectionUpsertsOnID(t *testing.T) {
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	db := newTestDB(t)
	repo := NewRepository(db, nil)
	ctx := context.Background()

	election := testElection(now)
	if err := repo.SaveElection(ctx, election); err != nil {
		t.Fatalf("SaveElection: %v", err)
	}

	election.Status = entities.ElectionStatusActive
	if err := repo.SaveElection(ctx, election); err != nil {
		t.Fatalf("SaveElection update: %v", err)
	}

	got, err := repo.GetElection(ctx, election.ID)
	if err != nil {
		t.Fatalf("GetElection: %v", err)
	}
	if got.Status != entities.ElectionStatusActive {
		t.Fatalf("status = %q, want ativa", got.Status)
	}

	elections, err := repo.ListElections(ctx)
	if err != nil {
		t.Fatalf("ListElections: %v", err)
	}
	if len(elections) != 1 {
		t.Fatalf("elections = %d, want 1", len(elections))
	}
}

func TestSaveCandidateDuplicateNumberMapsToDomainError(t *testing.T) {
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	db := newTestDB(t)
	repo := NewRepository(db, nil)
	ctx := context.Background()

	if err := repo.SaveElection(ctx, testElection(now)); err != nil {
		t.Fatalf("SaveElection: %v", err)
	}
	if err := repo.SaveCandidate(ctx, entities.Candidate{
		ID:         "candidato-1",
		ElectionID: "eleicao-1",
		Number:     10,
		Name:       "Chapa Um",
	}); err != nil {
		t.Fatalf("SaveCandidate: %v", err)
	}

	err := repo.SaveCandidate(ctx, entities.Candidate{
		ID:         "candidato-2",
		ElectionID: "eleicao-1",
		Number:     10,
		Name:       "Chapa Dois",
	})
	if !errors.Is(err, domainerrors.ErrDuplicateNumber) {
		t.Fatalf("err = %v, want ErrDuplicateNumber", err)
	}
}

func TestSaveVoterDuplicateRegistrationMapsToDomainError(t *testing.T) {
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	db := newTestDB(t)
	repo := NewRepository(db, nil)
	ctx := context.Background()

	if err := repo.SaveElection(ctx, testElection(now)); err != nil {
		t.Fatalf("SaveElection: %v", err)
	}
	if err := repo.SaveVoter(ctx, entities.Voter{
		ID:           "eleitor-1",
		ElectionID:   "eleicao-1",
		Registration: "2026001",
		Name:         "Ana",
	}); err != nil {
		t.Fatalf("SaveVoter: %v", err)
	}

	err := repo.SaveVoter(ctx, entities.Voter{
		ID:           "eleitor-2",
		ElectionID:   "eleicao-1",
		Registration: "2026001",
		Name:         "Outra",
	})
	if !errors.Is(err, domainerrors.ErrDuplicateRegistration) {
		t.Fatalf("err = %v, want ErrDuplicateRegistration", err)
	}
}

func TestDeleteElectionCascadesRoster(t *testing.T) {
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	db := newTestDB(t)
	repo := NewRepository(db, nil)
	ctx := context.Background()

	if err := repo.SaveElection(ctx, testElection(now)); err != nil {
		t.Fatalf("SaveElection: %v", err)
	}
	if err := repo.SaveCandidate(ctx, entities.Candidate{
		ID:         "candidato-1",
		ElectionID: "eleicao-1",
		Number:     10,
		Name:       "Chapa Um",
	}); err != nil {
		t.Fatalf("SaveCandidate: %v", err)
	}
	if err := repo.SaveVoter(ctx, entities.Voter{
		ID:           "eleitor-1",
		ElectionID:   "eleicao-1",
		Registration: "2026001",
		Name:         "Ana",
	}); err != nil {
		t.Fatalf("SaveVoter: %v", err)
	}

	if err := repo.DeleteElection(ctx, "eleicao-1"); err != nil {
		t.Fatalf("DeleteElection: %v", err)
	}

	if _, err := repo.GetElection(ctx, "eleicao-1"); !errors.Is(err, domainerrors.ErrElectionNotFound) {
		t.Fatalf("election err = %v, want ErrElectionNotFound", err)
	}
	if _, err := repo.GetCandidate(ctx, "candidato-1"); !errors.Is(err, domainerrors.ErrCandidateNotFound) {
		t.Fatalf("candidate err = %v, want ErrCandidateNotFound", err)
	}
	if _, err := repo.GetVoter(ctx, "eleitor-1"); !errors.Is(err, domainerrors.ErrVoterNotFound) {
		t.Fatalf("voter err = %v, want ErrVoterNotFound", err)
	}
}

func TestCountVotesFromLedger(t *testing.T) {
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	db := newTestDB(t)
	repo := NewRepository(db, nil)
	ctx := context.Background()

	if err := repo.SaveElection(ctx, testElection(now)); err != nil {
		t.Fatalf("SaveElection: %v", err)
	}
	candidateID := "candidato-1"
	for _, id := range []string{"voto-1", "voto-2"} {
		if err := db.Create(&voteRefModel{ID: id, EleicaoID: "eleicao-1", CandidatoID: &candidateID}).Error; err != nil {
			t.Fatalf("seed vote %s: %v", id, err)
		}
	}

	electionVotes, err := repo.CountElectionVotes(ctx, "eleicao-1")
	if err != nil {
		t.Fatalf("CountElectionVotes: %v", err)
	}
	if electionVotes != 2 {
		t.Fatalf("election votes = %d, want 2", electionVotes)
	}

	candidateVotes, err := repo.CountCandidateVotes(ctx, candidateID)
	if err != nil {
		t.Fatalf("CountCandidateVotes: %v", err)
	}
	if candidateVotes != 2 {
		t.Fatalf("candidate votes = %d, want 2", candidateVotes)
	}
}

func TestListVotersFiltersAndPaginates(t *testing.T) {
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	db := newTestDB(t)
	repo := NewRepository(db, nil)
	ctx := context.Background()

	if err := repo.SaveElection(ctx, testElection(now)); err != nil {
		t.Fatalf("SaveElection: %v", err)
	}
	voters := []entities.Voter{
		{ID: "v1", ElectionID: "eleicao-1", Registration: "2026001", Name: "Alice Reis"},
		{ID: "v2", ElectionID: "eleicao-1", Registration: "2026002", Name: "Alan Reis"},
		{ID: "v3", ElectionID: "eleicao-1", Registration: "2026003", Name: "Bianca Melo"},
	}
	for _, voter := range voters {
		if err := repo.SaveVoter(ctx, voter); err != nil {
			t.Fatalf("SaveVoter %s: %v", voter.ID, err)
		}
	}

	page, err := repo.ListVoters(ctx, "eleicao-1", "Reis", 1, 1)
	if err != nil {
		t.Fatalf("ListVoters: %v", err)
	}
	if page.Total != 2 {
		t.Fatalf("total = %d, want 2", page.Total)
	}
	if len(page.Items) != 1 {
		t.Fatalf("page size = %d, want 1", len(page.Items))
	}
	if page.Items[0].Name != "Alan Reis" {
		t.Fatalf("first item = %q, want Alan Reis", page.Items[0].Name)
	}
}
