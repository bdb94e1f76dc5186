package registryservice

import (
	"log/slog"

	httpadapter "github.com/Masterbarreto/Api-Urna/contexts/election-operations/registry-service/adapters/http"
	"github.com/Masterbarreto/Api-Urna/contexts/election-operations/registry-service/adapters/memory"
	"github.com/Masterbarreto/Api-Urna/contexts/election-operations/registry-service/application"
	"github.com/Masterbarreto/Api-Urna/contexts/election-operations/registry-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

type Dependencies struct {
	Elections  ports.ElectionRepository
	Candidates ports.CandidateRepository
	Voters     ports.VoterRepository
	Auditor    ports.Auditor
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Elections:  deps.Elections,
		Candidates: deps.Candidates,
		Voters:     deps.Voters,
		Auditor:    deps.Auditor,
		Clock:      deps.Clock,
		IDGen:      deps.IDGen,
		Logger:     deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Registry: service,
			Logger:   deps.Logger,
		},
		Service: service,
	}
}

// NewInMemoryModule wires the module over the in-memory store, for tests and
// local runs without a database.
func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Elections:  store,
		Candidates: store,
		Voters:     store,
		Clock:      store,
		IDGen:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
