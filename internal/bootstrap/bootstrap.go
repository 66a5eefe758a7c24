package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	txStdLib "github.com/Thiht/transactor/stdlib"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	analyticsinadapter "dragochi/internal/modules/analytics/adapter/in"
	analyticsoutadapter "dragochi/internal/modules/analytics/adapter/out"
	analyticsservice "dragochi/internal/modules/analytics/service"
	analyticsusecase "dragochi/internal/modules/analytics/usecase"
	backupinadapter "dragochi/internal/modules/backup/adapter/in"
	backupoutadapter "dragochi/internal/modules/backup/adapter/out"
	backupservice "dragochi/internal/modules/backup/service"
	backupusecase "dragochi/internal/modules/backup/usecase"
	cataloginadapter "dragochi/internal/modules/catalog/adapter/in"
	catalogoutadapter "dragochi/internal/modules/catalog/adapter/out"
	catalogservice "dragochi/internal/modules/catalog/service"
	catalogusecase "dragochi/internal/modules/catalog/usecase"
	sessioninadapter "dragochi/internal/modules/session/adapter/in"
	sessionoutadapter "dragochi/internal/modules/session/adapter/out"
	sessionservice "dragochi/internal/modules/session/service"
	sessionusecase "dragochi/internal/modules/session/usecase"
	trackinginadapter "dragochi/internal/modules/tracking/adapter/in"
	trackingoutadapter "dragochi/internal/modules/tracking/adapter/out"
	trackingservice "dragochi/internal/modules/tracking/service"
	trackingusecase "dragochi/internal/modules/tracking/usecase"
	"dragochi/internal/platform/clock"
	"dragochi/internal/platform/config"
	apperrors "dragochi/internal/platform/errors"
	"dragochi/internal/platform/id"
	"dragochi/internal/platform/metrics"
	"dragochi/internal/platform/sqlitedb"
	"dragochi/internal/platform/tx"
	uiapp "dragochi/internal/ui/app"
)

type App struct {
	Config  config.Config
	Logger  *log.Logger
	Metrics *metrics.Metrics

	TrackingCLI  trackinginadapter.CLIHandler
	SessionCLI   sessioninadapter.CLIHandler
	CatalogCLI   cataloginadapter.CLIHandler
	AnalyticsCLI analyticsinadapter.CLIHandler
	BackupCLI    backupinadapter.CLIHandler

	db *sql.DB
}

// New opens the database, wires every module and brings the tracker back to
// the state described by the on-disk snapshot.
func New(ctx context.Context, cfg config.Config, logger *log.Logger, m *metrics.Metrics) (*App, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	db, err := sqlitedb.Open(ctx, cfg.DBPath, logger.WithPrefix("sqlite"))
	if err != nil {
		return nil, err
	}

	transactor, dbGetter := txStdLib.NewTransactor(db, txStdLib.NestedTransactionsSavepoints)
	txm := tx.FromTransactor(transactor)
	clk := clock.SystemClock{}
	ids := id.UUID{}

	catalogUC := catalogusecase.NewInteractor(catalogservice.NewCatalogService(
		clk,
		ids,
		catalogoutadapter.NewSQLiteGameStore(dbGetter, logger.WithPrefix("games")),
		catalogoutadapter.NewSQLiteFriendStore(dbGetter, logger.WithPrefix("friends")),
		txm,
	))

	sessionUC := sessionusecase.NewInteractor(sessionservice.NewSessionService(
		clk,
		ids,
		sessionoutadapter.NewSQLiteSessionStore(dbGetter, txm, logger.WithPrefix("sessions")),
		cfg.Location,
	))

	snapshots := trackingoutadapter.NewFileSnapshotStore(cfg.SnapshotPath)
	controller := trackingservice.NewController(
		clk,
		trackingoutadapter.NewSessionUsecaseRecorder(sessionUC),
		snapshots,
		logger.WithPrefix("tracking"),
		m,
	)
	trackingUC := trackingusecase.NewInteractor(controller, snapshots)

	analyticsUC := analyticsusecase.NewInteractor(analyticsservice.NewReportService(
		clk,
		analyticsoutadapter.NewSessionUsecaseSource(sessionUC),
		cfg.Location,
		logger.WithPrefix("analytics"),
		m,
	))

	backupUC := backupusecase.NewInteractor(backupservice.NewExportService(
		clk,
		backupoutadapter.NewCatalogUsecaseSource(catalogUC),
		backupoutadapter.NewSessionUsecaseSource(sessionUC),
		backupoutadapter.NewFileSink(),
	))

	app := &App{
		Config:       cfg,
		Logger:       logger,
		Metrics:      m,
		TrackingCLI:  trackinginadapter.NewCLIHandler(trackingUC),
		SessionCLI:   sessioninadapter.NewCLIHandler(sessionUC),
		CatalogCLI:   cataloginadapter.NewCLIHandler(catalogUC),
		AnalyticsCLI: analyticsinadapter.NewCLIHandler(analyticsUC),
		BackupCLI:    backupinadapter.NewCLIHandler(backupUC),
		db:           db,
	}

	if _, err := app.CatalogCLI.SyncGames(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sync default games: %w", err)
	}
	if _, err := app.TrackingCLI.Restore(ctx); err != nil {
		if !errors.Is(err, apperrors.ErrMalformedSnapshot) {
			_ = db.Close()
			return nil, fmt.Errorf("restore tracking: %w", err)
		}
		logger.Warn("discarded unreadable tracking snapshot", "path", cfg.SnapshotPath, "err", err)
	}
	return app, nil
}

func (a *App) Close() error {
	if a == nil || a.db == nil {
		return nil
	}
	return a.db.Close()
}

func RunTUI(ctx context.Context, app *App) error {
	model := uiapp.NewModel(ctx, app.TrackingCLI, app.CatalogCLI, app.AnalyticsCLI, app.Config.DefaultPlatform, app.Config.Location)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}
