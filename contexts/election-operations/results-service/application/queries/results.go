package queries

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Masterbarreto/Api-Urna/contexts/election-operations/results-service/domain/entities"
	domainerrors "github.com/Masterbarreto/Api-Urna/contexts/election-operations/results-service/domain/errors"
	"github.com/Masterbarreto/Api-Urna/contexts/election-operations/results-service/ports"
)

type ResultsUseCase struct {
	Reader ports.ResultsReader
	Fleet  ports.FleetReader
	Clock  ports.Clock
	Logger *slog.Logger
}

// ElectionResults computes the full result sheet of one election from the
// ledger: candidate tallies ordered by votes, null and blank counts, and
// participation.
func (uc ResultsUseCase) ElectionResults(ctx context.Context, electionID string) (entities.ElectionResults, error) {
	election, err := uc.Reader.GetElection(ctx, strings.TrimSpace(electionID))
	if err != nil {
		return entities.ElectionResults{}, err
	}

	tallies, err := uc.Reader.TallyByCandidate(ctx, election.ID)
	if err != nil {
		return entities.ElectionResults{}, err
	}
	kinds, err := uc.Reader.CountVotesByKind(ctx, election.ID)
	if err != nil {
		return entities.ElectionResults{}, err
	}
	eligible, err := uc.Reader.CountEligibleVoters(ctx, election.ID)
	if err != nil {
		return entities.ElectionResults{}, err
	}
	voted, err := uc.Reader.CountVotedVoters(ctx, election.ID)
	if err != nil {
		return entities.ElectionResults{}, err
	}

	total := kinds.Total()
	for i := range tallies {
		tallies[i].Percent = percent(tallies[i].Votes, total)
	}
	sort.Slice(tallies, func(i, j int) bool {
		if tallies[i].Votes != tallies[j].Votes {
			return tallies[i].Votes > tallies[j].Votes
		}
		return tallies[i].Number < tallies[j].Number
	})

	return entities.ElectionResults{
		Election:   election,
		TotalVotes: total,
		NullVotes:  kinds.Null,
		BlankVotes: kinds.Blank,
		Tallies:    tallies,
		Participation: entities.Participation{
			Eligible:    eligible,
			Voted:       voted,
			Abstentions: eligible - voted,
			Turnout:     percent(voted, eligible),
		},
		GeneratedAt: uc.now(),
	}, nil
}

// Dashboard aggregates per-election totals and the booth fleet status.
func (uc ResultsUseCase) Dashboard(ctx context.Context) (entities.DashboardSummary, error) {
	elections, err := uc.Reader.ListElections(ctx)
	if err != nil {
		return entities.DashboardSummary{}, err
	}

	summary := entities.DashboardSummary{
		Elections:   make([]entities.ElectionTotals, 0, len(elections)),
		GeneratedAt: uc.now(),
	}
	for _, election := range elections {
		kinds, err := uc.Reader.CountVotesByKind(ctx, election.ID)
		if err != nil {
			return entities.DashboardSummary{}, err
		}
		eligible, err := uc.Reader.CountEligibleVoters(ctx, election.ID)
		if err != nil {
			return entities.DashboardSummary{}, err
		}
		voted, err := uc.Reader.CountVotedVoters(ctx, election.ID)
		if err != nil {
			return entities.DashboardSummary{}, err
		}
		summary.Elections = append(summary.Elections, entities.ElectionTotals{
			Election:   election,
			TotalVotes: kinds.Total(),
			Turnout:    percent(voted, eligible),
		})
	}

	if uc.Fleet != nil {
		fleet, err := uc.Fleet.FleetStatus(ctx)
		if err != nil {
			// Dashboard still renders without the fleet block.
			uc.logger().Warn("fleet status unavailable for dashboard",
				"event", "results_dashboard_fleet_unavailable",
				"module", "election-operations/results-service",
				"layer", "application",
				"error", err.Error(),
			)
		} else {
			summary.Fleet = fleet
		}
	}
	return summary, nil
}

// ExportCSV writes the result sheet of one election as CSV. "csv" is the only
// supported format.
func (uc ResultsUseCase) ExportCSV(ctx context.Context, electionID string, format string, out io.Writer) error {
	if format != "" && !strings.EqualFold(format, "csv") {
		return domainerrors.ErrUnknownFormat
	}
	results, err := uc.ElectionResults(ctx, electionID)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(out)
	if err := writer.Write([]string{"posicao", "numero", "candidato", "partido", "votos", "percentual"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for i, tally := range results.Tallies {
		record := []string{
			strconv.Itoa(i + 1),
			strconv.Itoa(tally.Number),
			tally.Name,
			tally.Party,
			strconv.FormatInt(tally.Votes, 10),
			fmt.Sprintf("%.2f", tally.Percent),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	footer := [][]string{
		{"", "", "nulos", "", strconv.FormatInt(results.NullVotes, 10), fmt.Sprintf("%.2f", percent(results.NullVotes, results.TotalVotes))},
		{"", "", "brancos", "", strconv.FormatInt(results.BlankVotes, 10), fmt.Sprintf("%.2f", percent(results.BlankVotes, results.TotalVotes))},
		{"", "", "total", "", strconv.FormatInt(results.TotalVotes, 10), ""},
	}
	for _, record := range footer {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write csv footer: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func percent(part, whole int64) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

func (uc ResultsUseCase) now() time.Time {
	if uc.Clock != nil {
		return uc.Clock.Now().UTC()
	}
	return time.Now().UTC()
}

func (uc ResultsUseCase) logger() *slog.Logger {
	if uc.Logger == nil {
		return slog.Default()
	}
	return uc.Logger
}
