package cli

import (
	"bufio"
	"context"
	"database/sql"
	"io"
	"os"

	"github.com/dmitrijs2005/eventportal/internal/client/client"
	"github.com/dmitrijs2005/eventportal/internal/client/config"
	"github.com/dmitrijs2005/eventportal/internal/client/repositories/profile"
	"github.com/dmitrijs2005/eventportal/internal/client/services"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type App struct {
	config       *config.Config
	authService  services.AuthService
	eventService services.EventService
	server       pinger
	db           *sql.DB
	reader       *bufio.Reader
	out          io.Writer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	db, err := client.InitDatabase(ctx, c.ProfilePath)
	if err != nil {
		return nil, err
	}

	api := client.NewPortalClient(c.ServerURL, c.RequestTimeout)

	as := services.NewAuthService(api, profile.NewSQLiteRepository(db))
	es := services.NewEventService(api)

	return &App{
		config:       c,
		authService:  as,
		eventService: es,
		server:       api,
		db:           db,
		reader:       bufio.NewReader(os.Stdin),
		out:          os.Stdout,
	}, nil
}

// Run executes args as a single command, or starts the shell when args is
// empty. It returns the process exit code.
func (a *App) Run(ctx context.Context, args []string) int {
	defer a.close()

	if len(args) == 0 {
		a.Root(ctx)
		return 0
	}

	if err := a.dispatch(ctx, args); err != nil {
		a.printError(err)
		return 1
	}
	return 0
}

func (a *App) close() {
	if a.db != nil {
		_ = a.db.Close()
	}
}
