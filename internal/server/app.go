// Package server wires the portal together: it opens the configured store,
// applies migrations, picks a notification sender, builds the services and
// runs the HTTP server until a signal or context cancellation stops it.
package server

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/eventportal/internal/logging"
	"github.com/dmitrijs2005/eventportal/internal/server/config"
	"github.com/dmitrijs2005/eventportal/internal/server/httpapi"
	"github.com/dmitrijs2005/eventportal/internal/server/notify"
	"github.com/dmitrijs2005/eventportal/internal/server/otp"
	"github.com/dmitrijs2005/eventportal/internal/server/passwords"
	"github.com/dmitrijs2005/eventportal/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/eventportal/internal/server/services"
)

const storeConnectTimeout = 15 * time.Second

type App struct {
	config         *config.Config
	logger         logging.Logger
	store          repomanager.RepositoryManager
	sender         notify.Sender
	accountService *services.AccountService
	eventService   *services.EventService
}

var openStore = func(ctx context.Context, c *config.Config) (repomanager.RepositoryManager, error) {
	switch c.StoreDriver {
	case config.StoreMongo:
		client, err := repomanager.ConnectMongo(ctx, c.MongoURI)
		if err != nil {
			return nil, err
		}
		return repomanager.NewMongoRepositoryManager(client, c.MongoDatabase), nil
	default:
		db, err := repomanager.OpenPostgres(ctx, c.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		return repomanager.NewPostgresRepositoryManager(db), nil
	}
}

var dialQueueSender = func(url, exchange string) (notify.Sender, error) {
	return notify.DialQueueSender(url, exchange)
}

func newSender(c *config.Config, l logging.Logger) (notify.Sender, error) {
	switch c.Notifier {
	case config.NotifierQueue:
		return dialQueueSender(c.AMQPURL, c.AMQPExchange)
	case config.NotifierLog:
		return notify.NewLogSender(l), nil
	default:
		return notify.NewSMTPSender(SMTPConfig(c)), nil
	}
}

// SMTPConfig extracts the mail settings shared by the server and the
// notification worker.
func SMTPConfig(c *config.Config) notify.SMTPConfig {
	return notify.SMTPConfig{
		Host:     c.SMTPHost,
		Port:     c.SMTPPort,
		Username: c.SMTPUsername,
		Password: c.SMTPPassword,
		From:     c.Sender(),
		Timeout:  c.NotifyTimeout,
		Insecure: c.SMTPInsecure,
	}
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	connectCtx, cancel := context.WithTimeout(ctx, storeConnectTimeout)
	defer cancel()

	store, err := openStore(connectCtx, c)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := store.RunMigrations(connectCtx); err != nil {
		_ = store.Close(ctx)
		return nil, fmt.Errorf("migrations: %w", err)
	}

	sender, err := newSender(c, logger)
	if err != nil {
		_ = store.Close(ctx)
		return nil, fmt.Errorf("notifier init error: %w", err)
	}

	as := services.NewAccountService(store, passwords.NewBcryptHasher(c.BcryptCost),
		otp.NewRandomGenerator(), sender, logger, c.NotifyTimeout)
	es := services.NewEventService(store, c, logger)

	return &App{
		config:         c,
		logger:         logger,
		store:          store,
		sender:         sender,
		accountService: as,
		eventService:   es,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := httpapi.NewHTTPServer(httpapi.Options{
		Address:         app.config.HTTPAddr,
		CORSOrigins:     app.config.CORSOrigins,
		ShutdownTimeout: app.config.ShutdownTimeout,
	}, app.logger, app.accountService, app.eventService, app.store)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "store", app.config.StoreDriver, "notifier", app.config.Notifier)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	app.shutdown()
}

func (app *App) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), app.config.ShutdownTimeout)
	defer cancel()

	if c, ok := app.sender.(io.Closer); ok {
		if err := c.Close(); err != nil {
			app.logger.Warn(ctx, "closing notifier", "error", err.Error())
		}
	}
	if err := app.store.Close(ctx); err != nil {
		app.logger.Warn(ctx, "closing store", "error", err.Error())
	}
	app.logger.Info(ctx, "App stopped")
}
