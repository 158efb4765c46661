// Package httpapi exposes the account and event services over HTTP/JSON.
package httpapi

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/eventportal/internal/logging"
	"github.com/dmitrijs2005/eventportal/internal/server/models"
	"github.com/dmitrijs2005/eventportal/internal/server/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

type AccountService interface {
	Signup(ctx context.Context, email, password string) (string, error)
	Verify(ctx context.Context, email, code string) (string, error)
	Login(ctx context.Context, email, password string) (*models.PublicUser, error)
}

type EventService interface {
	List(ctx context.Context, community, q string) ([]*models.Event, error)
	Create(ctx context.Context, in services.CreateEventInput) (*models.Event, error)
	Rename(ctx context.Context, id, name string) error
	Delete(ctx context.Context, id string) error
	PresignImageUpload(ctx context.Context, contentType string) (*services.ImageUpload, error)
}

type Pinger interface {
	Ping(ctx context.Context) error
}

type Options struct {
	Address         string
	CORSOrigins     string
	ShutdownTimeout time.Duration
}

type HTTPServer struct {
	opts     Options
	app      *fiber.App
	accounts AccountService
	events   EventService
	store    Pinger
	logger   logging.Logger
}

func NewHTTPServer(opts Options, l logging.Logger, as AccountService, es EventService, store Pinger) *HTTPServer {
	if opts.CORSOrigins == "" {
		opts.CORSOrigins = "*"
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 5 * time.Second
	}

	s := &HTTPServer{
		opts:     opts,
		accounts: as,
		events:   es,
		store:    store,
		logger:   l.With("module", "http_server"),
	}

	s.app = fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          s.errorHandler,
	})
	s.routes()

	return s
}

func (s *HTTPServer) routes() {
	s.app.Use(cors.New(cors.Config{
		AllowOrigins: s.opts.CORSOrigins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))
	s.app.Use(s.requestLogger)

	s.app.Get("/healthz", s.health)

	api := s.app.Group("/api")
	api.Post("/signup", s.signup)
	api.Post("/verify", s.verify)
	api.Post("/login", s.login)

	api.Get("/events", s.listEvents)
	api.Post("/events", s.createEvent)
	api.Post("/events/images", s.presignImage)
	api.Put("/events/:id", s.renameEvent)
	api.Delete("/events/:id", s.deleteEvent)
}

// App returns the underlying fiber app; tests drive it with app.Test.
func (s *HTTPServer) App() *fiber.App {
	return s.app
}

func (s *HTTPServer) Run(ctx context.Context) error {

	listen, err := net.Listen("tcp", s.opts.Address)
	if err != nil {
		return err
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
		defer cancel()
		if err := s.app.ShutdownWithContext(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown failed", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	return s.app.Listener(listen)
}
