package accrual

import (
	"context"
	"time"

	"tandem/core"
	"tandem/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/robfig/cron/v3"
)

// Worker drives the lending pool clock forward so interest never goes
// stale for long even when no one transacts.
type Worker struct {
	worker.BaseJob
	engine core.IEngine
}

// New new accrual worker
func New(location string, engine core.IEngine) *Worker {
	job := Worker{
		engine: engine,
	}

	l, _ := time.LoadLocation(location)
	job.Cron = cron.New(cron.WithLocation(l))
	spec := "@every 10s"
	job.Cron.AddFunc(spec, job.Run)
	job.OnWork = func() error {
		return job.onWork(context.Background())
	}

	return &job
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "accrual")

	if err := w.engine.Accrue(ctx, time.Now()); err != nil {
		log.WithError(err).Errorln("accrue failed")
		return err
	}

	return nil
}
