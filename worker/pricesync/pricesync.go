package pricesync

import (
	"context"
	"strconv"
	"time"

	"tandem/core"
	"tandem/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/property"
	"github.com/robfig/cron/v3"
)

const checkPointKey = "tandem_pricesync_checkpoint"

// Worker keeps the collateral pool's oracle quote fresh
type Worker struct {
	worker.BaseJob
	engine        core.IEngine
	propertyStore property.Store
}

// New new price sync worker
func New(location string, engine core.IEngine, propertyStore property.Store) *Worker {
	job := Worker{
		engine:        engine,
		propertyStore: propertyStore,
	}

	l, _ := time.LoadLocation(location)
	job.Cron = cron.New(cron.WithLocation(l))
	spec := "@every 5s"
	job.Cron.AddFunc(spec, job.Run)
	job.OnWork = func() error {
		return job.onWork(context.Background())
	}

	return &job
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "pricesync")

	now := time.Now()
	if err := w.engine.SyncPrice(ctx, now); err != nil {
		log.WithError(err).Errorln("sync price failed")
		return err
	}

	if err := w.propertyStore.Save(ctx, checkPointKey, strconv.FormatInt(now.Unix(), 10)); err != nil {
		log.WithError(err).Errorf("update property error: %s", checkPointKey)
		return err
	}

	return nil
}
