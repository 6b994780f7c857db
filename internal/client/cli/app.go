package cli

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/confsync/confsync/internal/client/api"
	"github.com/confsync/confsync/internal/client/client"
	"github.com/confsync/confsync/internal/client/config"
	"github.com/confsync/confsync/internal/client/mapping"
	"github.com/confsync/confsync/internal/client/services"
	"github.com/confsync/confsync/internal/logging"

	_ "modernc.org/sqlite"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	loc      *time.Location
	db       *sql.DB
	repos    *client.Repositories
	sync     *services.SyncService
	schedule *services.ScheduleService
	photos   *services.PhotoService
}

func NewApp(c *config.Config) (*App, error) {

	ctx := context.Background()

	slog := slog.New(slog.NewTextHandler(os.Stderr, nil))
	logger := logging.NewSlogLogger(slog)

	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", c.Timezone, err)
	}

	db, repos, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		log.Printf("error initializing database: %s", err.Error())
		return nil, err
	}

	opts := []api.Option{api.WithTimeout(c.FetchTimeout)}
	if c.FetchRetries > 0 {
		opts = append(opts, api.WithRetries(c.FetchRetries, c.RetryBackoff))
	}
	apiClient := api.NewClient(c.BaseURL, logger, opts...)

	ss := services.NewSyncService(apiClient, db, mapping.NewDateParser(loc), c.APIFamily, logger)
	sched := services.NewScheduleService(db, repos.Sessions, repos.Bookmarks, logger)
	ss.Subscribe(sched)
	ps := services.NewPhotoService(apiClient, repos.Guests, logger)

	return &App{
		config:   c,
		logger:   logger,
		loc:      loc,
		db:       db,
		repos:    repos,
		sync:     ss,
		schedule: sched,
		photos:   ps,
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.db.Close()

	if err := a.schedule.Reload(ctx); err != nil {
		log.Printf("error loading cached schedule: %s", err.Error())
	}

	a.Root(ctx)
}
