package cmd

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	httpin "jobmarket/internal/adapters/in/http"
	"jobmarket/internal/adapters/out/backendhttp"
	"jobmarket/internal/adapters/out/notifier"
	"jobmarket/internal/adapters/out/postgres/settingsrepo"
	"jobmarket/internal/adapters/out/rabbitmq"
	"jobmarket/internal/adapters/out/simulated"
	"jobmarket/internal/core/application/session"
	"jobmarket/internal/core/application/usecases/commands"
	"jobmarket/internal/core/ports"
	"jobmarket/internal/jobs"
)

// CompositionRoot wires the adapters and the application session
// according to the configured gateway mode.
type CompositionRoot struct {
	configs Config
	gormDB  *gorm.DB
	logger  *slog.Logger

	session *session.Session
	stream  ports.EventStream
	closers []func()
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	root := &CompositionRoot{
		configs: configs,
		gormDB:  gormDB,
		logger:  logger,
	}

	gateway, stream, err := root.createGateway()
	if err != nil {
		return nil, err
	}
	root.stream = stream

	root.session, err = session.NewSession(
		gateway,
		notifier.NewSlogNotifier(logger),
		settingsrepo.NewGormSettingsRepository(gormDB),
		configs.ConfirmTimeout,
		logger,
	)
	if err != nil {
		root.Close()
		return nil, err
	}

	return root, nil
}

// createGateway builds the backend gateway and the matching event
// stream. The simulated gateway serves as both.
func (c *CompositionRoot) createGateway() (ports.BackendGateway, ports.EventStream, error) {
	switch c.configs.GatewayMode {
	case GatewayModeSimulated:
		gateway := simulated.NewGateway(0, time.Now().UnixNano(), c.logger)
		return gateway, gateway, nil

	case GatewayModeHTTP:
		client, err := backendhttp.NewClient(c.configs.BackendBaseURL, 10*time.Second, c.logger)
		if err != nil {
			return nil, nil, err
		}

		stream, err := rabbitmq.NewStream(c.configs.AmqpURL, c.configs.AmqpQueue, c.logger)
		if err != nil {
			return nil, nil, err
		}
		c.closers = append(c.closers, stream.Close)

		return client, stream, nil

	default:
		return nil, nil, fmt.Errorf("unknown gateway mode %q", c.configs.GatewayMode)
	}
}

func (c *CompositionRoot) Session() *session.Session {
	return c.session
}

func (c *CompositionRoot) EventStream() ports.EventStream {
	return c.stream
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.session,
		commands.NewAcceptOrderCommandHandler(c.session),
		commands.NewRejectOrderCommandHandler(c.session),
		commands.NewCompleteOrderCommandHandler(c.session),
		commands.NewGoOnlineCommandHandler(c.session),
		commands.NewGoOfflineCommandHandler(c.session),
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.session, c.configs.PullInterval, c.logger)
}

// Close releases adapter resources in reverse construction order.
func (c *CompositionRoot) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}
