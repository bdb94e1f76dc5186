package postgresadapter

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/Masterbarreto/Api-Urna/contexts/election-operations/voting-engine/domain/entities"
	domainerrors "github.com/Masterbarreto/Api-Urna/contexts/election-operations/voting-engine/domain/errors"

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
	if err := db.AutoMigrate(&electionModel{}, &candidateModel{}, &voterModel{}, &voteModel{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedRepo(t *testing.T, db *gorm.DB, now time.Time) {
	t.Helper()
	if err := db.Create(&electionModel{
		ID:         "eleicao-1",
		Titulo:     "Eleição 2025",
		DataInicio: now.Add(-time.Hour),
		DataFim:    now.Add(time.Hour),
		Status:     string(entities.ElectionStatusActive),
	}).Error; err != nil {
		t.Fatalf("seed election: %v", err)
	}
	if err := db.Create(&candidateModel{
		ID:        "candidato-1",
		EleicaoID: "eleicao-1",
		Numero:    10,
		Nome:      "Chapa Um",
	}).Error; err != nil {
		t.Fatalf("seed candidate: %v", err)
	}
	if err := db.Create(&voterModel{
		ID:        "eleitor-1",
		EleicaoID: "eleicao-1",
		Matricula: "20250001",
		Nome:      "Ana",
	}).Error; err != nil {
		t.Fatalf("seed voter: %v", err)
	}
}

func candidateVote(id string, now time.Time) entities.Vote {
	candidateID := "candidato-1"
	return entities.Vote{
		ID:                id,
		ElectionID:        "eleicao-1",
		VoterID:           "eleitor-1",
		VoterRegistration: "20250001",
		CandidateID:       &candidateID,
		Kind:              entities.VoteKindCandidate,
		VerificationHash:  "hash-" + id,
		CreatedAt:         now,
	}
}

func TestCastVoteCommitsVoteAndFlipsFlag(t *testing.T) {
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	db := newTestDB(t)
	seedRepo(t, db, now)
	repo := NewRepository(db, nil)

	if err := repo.CastVote(context.Background(), candidateVote("voto-1", now)); err != nil {
		t.Fatalf("cast vote: %v", err)
	}

	var votes int64
	if err := db.Model(&voteModel{}).Count(&votes).Error; err != nil {
		t.Fatalf("count votes: %v", err)
	}
	if votes != 1 {
		t.Fatalf("expected one vote row, got %d", votes)
	}
	var voter voterModel
	if err := db.Where("id = ?", "eleitor-1").First(&voter).Error; err != nil {
		t.Fatalf("load voter: %v", err)
	}
	if !voter.JaVotou || voter.HorarioVoto == nil {
		t.Fatalf("voter flag not flipped: %+v", voter)
	}
}

func TestCastVoteSecondAttemptRollsBackEntirely(t *testing.T) {
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	db := newTestDB(t)
	seedRepo(t, db, now)
	repo := NewRepository(db, nil)

	if err := repo.CastVote(context.Background(), candidateVote("voto-1", now)); err != nil {
		t.Fatalf("first cast: %v", err)
	}
	err := repo.CastVote(context.Background(), candidateVote("voto-2", now))
	if !errors.Is(err, domainerrors.ErrAlreadyVoted) {
		t.Fatalf("expected ErrAlreadyVoted, got %v", err)
	}

	var votes int64
	if err := db.Model(&voteModel{}).Count(&votes).Error; err != nil {
		t.Fatalf("count votes: %v", err)
	}
	if votes != 1 {
		t.Fatalf("rejected attempt leaked a vote row: %d", votes)
	}
}

// The conditional update is the last line of defense: if the flag flips
// between the in-transaction check and the update, the whole unit must roll
// back, leaving no orphan vote row.
func TestCastVoteConditionalUpdateGuardsLedger(t *testing.T) {
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	db := newTestDB(t)
	seedRepo(t, db, now)
	repo := NewRepository(db, nil)

	if err := db.Model(&voterModel{}).
		Where("id = ?", "eleitor-1").
		Update("ja_votou", true).Error; err != nil {
		t.Fatalf("flip flag: %v", err)
	}

	err := repo.CastVote(context.Background(), candidateVote("voto-1", now))
	if !errors.Is(err, domainerrors.ErrAlreadyVoted) {
		t.Fatalf("expected ErrAlreadyVoted, got %v", err)
	}
	var votes int64
	if err := db.Model(&voteModel{}).Count(&votes).Error; err != nil {
		t.Fatalf("count votes: %v", err)
	}
	if votes != 0 {
		t.Fatalf("vote row observable without voter flag agreement: %d rows", votes)
	}
}

func TestCastVoteRechecksWindowInsideTransaction(t *testing.T) {
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	db := newTestDB(t)
	seedRepo(t, db, now)
	repo := NewRepository(db, nil)

	if err := db.Model(&electionModel{}).
		Where("id = ?", "eleicao-1").
		Update("status", string(entities.ElectionStatusFinished)).Error; err != nil {
		t.Fatalf("close election: %v", err)
	}

	err := repo.CastVote(context.Background(), candidateVote("voto-1", now))
	if !errors.Is(err, domainerrors.ErrElectionNotOpen) {
		t.Fatalf("expected ErrElectionNotOpen, got %v", err)
	}
}

func TestCastVoteRejectsForeignCandidate(t *testing.T) {
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	db := newTestDB(t)
	seedRepo(t, db, now)
	repo := NewRepository(db, nil)

	vote := candidateVote("voto-1", now)
	other := "candidato-de-outra-eleicao"
	vote.CandidateID = &other
	err := repo.CastVote(context.Background(), vote)
	if !errors.Is(err, domainerrors.ErrCandidateNotFound) {
		t.Fatalf("expected ErrCandidateNotFound, got %v", err)
	}
}

func TestBoothReads(t *testing.T) {
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	db := newTestDB(t)
	seedRepo(t, db, now)
	repo := NewRepository(db, nil)

	election, found, err := repo.GetActiveElection(context.Background())
	if err != nil || !found {
		t.Fatalf("active election lookup: found=%v err=%v", found, err)
	}
	if election.ID != "eleicao-1" {
		t.Fatalf("unexpected active election %q", election.ID)
	}

	voter, err := repo.GetVoterByRegistration(context.Background(), "eleicao-1", "20250001")
	if err != nil {
		t.Fatalf("voter lookup: %v", err)
	}
	if voter.Name != "Ana" {
		t.Fatalf("unexpected voter %+v", voter)
	}
	if _, err := repo.GetVoterByRegistration(context.Background(), "eleicao-1", "0"); !errors.Is(err, domainerrors.ErrVoterNotFound) {
		t.Fatalf("expected ErrVoterNotFound, got %v", err)
	}

	candidates, err := repo.ListCandidates(context.Background(), "eleicao-1")
	if err != nil || len(candidates) != 1 {
		t.Fatalf("candidate list: %v %v", candidates, err)
	}
}
