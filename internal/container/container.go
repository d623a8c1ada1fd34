package container

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"picsum/grid/internal/client"
	"picsum/grid/internal/config"
	"picsum/grid/internal/controller"
	"picsum/grid/internal/domain"
	"picsum/grid/internal/metrics"
	"picsum/grid/internal/proxy"
	"picsum/grid/internal/server"
	"picsum/grid/internal/state"

	log "github.com/sirupsen/logrus"
)

// Container holds all initialized components
type Container struct {
	Config       *config.Config
	Client       client.PicsumClient
	StateManager state.StateManager
	Metrics      *metrics.Metrics
	Controller   *controller.Controller

	server *http.Server
}

// New creates a new container with all dependencies initialized
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	container := &Container{
		Config:  cfg,
		Metrics: metrics.New(),
	}

	proxySupplier := proxy.NewProxySupplier(ctx, cfg.Picsum.Proxies, cfg.Picsum.BaseURL)
	if len(cfg.Picsum.Proxies) > 0 && proxySupplier.Len() == 0 {
		return nil, fmt.Errorf("none of the %d configured proxies is working", len(cfg.Picsum.Proxies))
	}

	container.Client = client.NewPicsumClient(cfg.Picsum, proxySupplier, container.Metrics)
	container.StateManager = state.NewStateManager(domain.InitialState())
	container.Controller = controller.New(
		container.Client,
		container.StateManager,
		container.Metrics,
		cfg.Grid,
	)

	container.server = &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           server.NewRouter(container.Controller, container.Metrics),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return container, nil
}

// Run serves the grid and issues the first fetch. It returns once ctx is done
// and the server has shut down.
func (c *Container) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Infof("🚀 Serving photo grid on http://%s", c.server.Addr)
		if err := c.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := c.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown failed: %w", err)
		}
		return nil
	})

	c.Controller.Mount(ctx)

	return g.Wait()
}

// Close waits for in-flight fetches once Run has returned.
func (c *Container) Close() error {
	log.Info("Shutting down container...")

	c.Controller.Wait()

	s := c.StateManager.Snapshot()
	log.Infof("Container shut down successfully (%d photos, next page %d)", len(s.Photos), s.NextPage)
	return nil
}
