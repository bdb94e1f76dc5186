package workers

import (
	"context"
	"log/slog"

	"github.com/Masterbarreto/Api-Urna/contexts/election-operations/booth-service/application"
)

// StalenessSweeper recomputes the cached connection state of the urna fleet
// so dashboard reads do not have to derive it per request.
type StalenessSweeper struct {
	Booths application.Service
	Logger *slog.Logger
}

func (j StalenessSweeper) RunOnce(ctx context.Context) error {
	logger := j.Logger
	if logger == nil {
		logger = slog.Default()
	}
	changed, err := j.Booths.SweepConnections(ctx)
	if err != nil {
		logger.Error("booth staleness sweep failed",
			"event", "booth_staleness_sweep_failed",
			"module", "election-operations/booth-service",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}
	if changed > 0 {
		logger.Info("booth staleness sweep completed",
			"event", "booth_staleness_sweep_completed",
			"module", "election-operations/booth-service",
			"layer", "worker",
			"changed_count", changed,
		)
	}
	return nil
}
