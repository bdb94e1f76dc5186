package auditservice

import (
	"log/slog"

	httpadapter "github.com/Masterbarreto/Api-Urna/contexts/internal-ops/audit-service/adapters/http"
	"github.com/Masterbarreto/Api-Urna/contexts/internal-ops/audit-service/adapters/memory"
	"github.com/Masterbarreto/Api-Urna/contexts/internal-ops/audit-service/application"
	"github.com/Masterbarreto/Api-Urna/contexts/internal-ops/audit-service/ports"
)

type Module struct {
	Handler  httpadapter.Handler
	Service  application.Service
	Recorder application.Recorder
	Store    *memory.Store
}

type Dependencies struct {
	Log    ports.AuditLog
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Log:    deps.Log,
		Clock:  deps.Clock,
		IDGen:  deps.IDGen,
		Logger: deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Audit:  service,
			Logger: deps.Logger,
		},
		Service:  service,
		Recorder: application.Recorder{Service: service},
	}
}

// NewInMemoryModule wires the module over the in-memory store, for tests.
func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Log:    store,
		Clock:  store,
		IDGen:  store,
		Logger: logger,
	})
	module.Store = store
	return module
}
