package authservice

import (
	"log/slog"
	"time"

	httpadapter "github.com/Masterbarreto/Api-Urna/contexts/identity-access/auth-service/adapters/http"
	"github.com/Masterbarreto/Api-Urna/contexts/identity-access/auth-service/adapters/memory"
	"github.com/Masterbarreto/Api-Urna/contexts/identity-access/auth-service/application"
	"github.com/Masterbarreto/Api-Urna/contexts/identity-access/auth-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

type Dependencies struct {
	Users    ports.UserRepository
	Auditor  ports.Auditor
	Clock    ports.Clock
	IDGen    ports.IDGenerator
	Secret   []byte
	TokenTTL time.Duration
	Logger   *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Users:    deps.Users,
		Auditor:  deps.Auditor,
		Clock:    deps.Clock,
		IDGen:    deps.IDGen,
		Secret:   deps.Secret,
		TokenTTL: deps.TokenTTL,
		Logger:   deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Auth:   service,
			Logger: deps.Logger,
		},
		Service: service,
	}
}

// NewInMemoryModule wires the module over the in-memory store, for tests.
func NewInMemoryModule(secret []byte, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Users:  store,
		Clock:  store,
		IDGen:  store,
		Secret: secret,
		Logger: logger,
	})
	module.Store = store
	return module
}
