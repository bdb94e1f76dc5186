package ports

import (
	"context"
	"time"

	"github.com/Masterbarreto/Api-Urna/contexts/identity-access/auth-service/domain/entities"
)

type UserRepository interface {
	SaveUser(ctx context.Context, user entities.User) error
	GetUser(ctx context.Context, userID string) (entities.User, error)
	GetUserByEmail(ctx context.Context, email string) (entities.User, error)
	TouchLastLogin(ctx context.Context, userID string, at time.Time) error
}

type Auditor interface {
	Record(ctx context.Context, action string, table string, recordID string, data map[string]any) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
