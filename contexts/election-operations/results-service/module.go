package resultsservice

import (
	"log/slog"

	httpadapter "github.com/Masterbarreto/Api-Urna/contexts/election-operations/results-service/adapters/http"
	"github.com/Masterbarreto/Api-Urna/contexts/election-operations/results-service/adapters/memory"
	"github.com/Masterbarreto/Api-Urna/contexts/election-operations/results-service/application/queries"
	"github.com/Masterbarreto/Api-Urna/contexts/election-operations/results-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Results queries.ResultsUseCase
	Store   *memory.Store
}

type Dependencies struct {
	Reader ports.ResultsReader
	Fleet  ports.FleetReader
	Clock  ports.Clock
	Logger *slog.Logger
}

func NewModule(deps Dependencies) Module {
	results := queries.ResultsUseCase{
		Reader: deps.Reader,
		Fleet:  deps.Fleet,
		Clock:  deps.Clock,
		Logger: deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Results: results,
			Logger:  deps.Logger,
		},
		Results: results,
	}
}

// NewInMemoryModule wires the module over the in-memory store, for tests.
func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Reader: store,
		Fleet:  store,
		Clock:  store,
		Logger: logger,
	})
	module.Store = store
	return module
}
