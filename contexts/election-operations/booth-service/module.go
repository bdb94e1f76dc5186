package boothservice

import (
	"log/slog"
	"time"

	httpadapter "github.com/Masterbarreto/Api-Urna/contexts/election-operations/booth-service/adapters/http"
	"github.com/Masterbarreto/Api-Urna/contexts/election-operations/booth-service/adapters/memory"
	"github.com/Masterbarreto/Api-Urna/contexts/election-operations/booth-service/application"
	"github.com/Masterbarreto/Api-Urna/contexts/election-operations/booth-service/application/workers"
	"github.com/Masterbarreto/Api-Urna/contexts/election-operations/booth-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Sweeper workers.StalenessSweeper
	Store   *memory.Store
}

type Dependencies struct {
	Booths       ports.BoothRepository
	Auditor      ports.Auditor
	Clock        ports.Clock
	IDGen        ports.IDGenerator
	OnlineWithin time.Duration
	OfflineAfter time.Duration
	Logger       *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Booths:       deps.Booths,
		Auditor:      deps.Auditor,
		Clock:        deps.Clock,
		IDGen:        deps.IDGen,
		OnlineWithin: deps.OnlineWithin,
		OfflineAfter: deps.OfflineAfter,
		Logger:       deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Booths: service,
			Logger: deps.Logger,
		},
		Service: service,
		Sweeper: workers.StalenessSweeper{
			Booths: service,
			Logger: deps.Logger,
		},
	}
}

// NewInMemoryModule wires the module over the in-memory store, for tests and
// local runs without a database.
func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Booths: store,
		Clock:  store,
		IDGen:  store,
		Logger: logger,
	})
	module.Store = store
	return module
}
