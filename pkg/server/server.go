package server

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-lambda-go/events"
	fiberadapter "github.com/awslabs/aws-lambda-go-api-proxy/fiber"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"

	"auth-api/pkg/cerror"
	"auth-api/pkg/config"
)

const ShutdownTimeout = 10 * time.Second

type Handler interface {
	RegisterRoutes(app *fiber.App)
}

// ShutdownHook releases a resource once the listener has drained.
type ShutdownHook func(ctx context.Context) error

type Server interface {
	GetFiberInstance() *fiber.App
	RegisterRoutes()
	OnShutdown(hook ShutdownHook)
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
	LambdaProxyHandler(
		ctx context.Context,
		req events.APIGatewayProxyRequest,
	) (events.APIGatewayProxyResponse, error)
}

type server struct {
	serverPort         string
	handlers           []Handler
	shutdownHooks      []ShutdownHook
	fiber              *fiber.App
	fiberLambdaAdapter *fiberadapter.FiberLambda
}

func NewServer(cfg *config.Config, handlers []Handler) Server {
	app := fiber.New(fiber.Config{
		AppName:               "auth-api",
		DisableStartupMessage: true,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
		ErrorHandler:          cerror.Middleware,
	})

	return &server{
		serverPort:         cfg.ServerPort,
		handlers:           handlers,
		fiber:              app,
		fiberLambdaAdapter: fiberadapter.New(app),
	}
}

func (s *server) GetFiberInstance() *fiber.App {
	return s.fiber
}

func (s *server) RegisterRoutes() {
	for _, handler := range s.handlers {
		handler.RegisterRoutes(s.fiber)
	}
}

// OnShutdown hooks run in reverse registration order, like defers.
func (s *server) OnShutdown(hook ShutdownHook) {
	s.shutdownHooks = append(s.shutdownHooks, hook)
}

// Start listens until ctx is cancelled, SIGINT or SIGTERM arrives, or the
// listener fails. Shutdown runs in every case.
func (s *server) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	listenErr := make(chan error, 1)
	go func() {
		listenErr <- s.fiber.Listen(fmt.Sprintf(":%s", s.serverPort))
	}()

	var err error
	select {
	case <-ctx.Done():
	case err = <-listenErr:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	return errors.Join(err, s.Shutdown(shutdownCtx))
}

func (s *server) Shutdown(ctx context.Context) error {
	timeout := ShutdownTimeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}

	errs := []error{s.fiber.ShutdownWithTimeout(timeout)}
	for i := len(s.shutdownHooks) - 1; i >= 0; i-- {
		errs = append(errs, s.shutdownHooks[i](ctx))
	}
	s.shutdownHooks = nil

	return errors.Join(errs...)
}

func (s *server) LambdaProxyHandler(
	ctx context.Context,
	req events.APIGatewayProxyRequest,
) (events.APIGatewayProxyResponse, error) {
	return s.fiberLambdaAdapter.ProxyWithContext(ctx, req)
}
