package task

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
	"github.com/tkarvinen/spotadvisor-go/config"
	"github.com/tkarvinen/spotadvisor-go/database"
)

// Tasks holds the scheduled housekeeping jobs. Price fetching is not among
// them: price freshness is handled lazily through the cache on request.
type Tasks struct {
	cron            *cron.Cron
	MaintenanceTask func()
}

func NewTasks(db *database.Database, cnfg *config.AppConfig) *Tasks {
	logger := slog.Default().With("module", "tasks")
	return &Tasks{
		cron:            cron.New(),
		MaintenanceTask: NewMaintenanceTask(logger.With(slog.String("task", "maintenance")), db, cnfg),
	}
}

func (t *Tasks) Run() {
	if _, err := t.cron.AddFunc("30 2 * * *", t.MaintenanceTask); err != nil {
		panic(err)
	}
	t.cron.Start()
}

func (t *Tasks) Stop() context.Context {
	return t.cron.Stop()
}
