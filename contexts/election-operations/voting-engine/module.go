package votingengine

import (
	"log/slog"

	httpadapter "github.com/Masterbarreto/Api-Urna/contexts/election-operations/voting-engine/adapters/http"
	"github.com/Masterbarreto/Api-Urna/contexts/election-operations/voting-engine/adapters/memory"
	"github.com/Masterbarreto/Api-Urna/contexts/election-operations/voting-engine/application/commands"
	"github.com/Masterbarreto/Api-Urna/contexts/election-operations/voting-engine/application/queries"
	"github.com/Masterbarreto/Api-Urna/contexts/election-operations/voting-engine/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Elections  ports.ElectionReader
	Voters     ports.VoterReader
	Candidates ports.CandidateReader
	Ledger     ports.VoteLedger
	Notifier   ports.Notifier
	Auditor    ports.Auditor
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	castVote := commands.CastVoteUseCase{
		Elections:  deps.Elections,
		Voters:     deps.Voters,
		Candidates: deps.Candidates,
		Ledger:     deps.Ledger,
		Notifier:   deps.Notifier,
		Auditor:    deps.Auditor,
		Clock:      deps.Clock,
		IDGen:      deps.IDGen,
		Logger:     deps.Logger,
	}
	booth := queries.BoothUseCase{
		Elections:  deps.Elections,
		Voters:     deps.Voters,
		Candidates: deps.Candidates,
		Clock:      deps.Clock,
		Logger:     deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Votes:  castVote,
			Booth:  booth,
			Logger: deps.Logger,
		},
	}
}

// NewInMemoryModule wires the module over the in-memory store, for tests and
// local runs without a database.
func NewInMemoryModule(notifier ports.Notifier, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Elections:  store,
		Voters:     store,
		Candidates: store,
		Ledger:     store,
		Notifier:   notifier,
		Clock:      store,
		IDGen:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
