package controller

import (
	"context"
	"sync"

	"picsum/grid/internal/client"
	"picsum/grid/internal/config"
	"picsum/grid/internal/domain"
	"picsum/grid/internal/metrics"
	"picsum/grid/internal/state"
	"picsum/grid/internal/view"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Controller drives the photo grid: it issues page fetches on mount and on
// every near-end signal, and owns the modal flag.
type Controller struct {
	client        client.PicsumClient
	stateManager  state.StateManager
	metrics       *metrics.Metrics
	layout        view.Layout
	guardInFlight bool

	mutex        sync.Mutex
	ctx          context.Context
	mounted      bool
	inFlight     uuid.UUID
	modalVisible bool
	fetches      sync.WaitGroup
}

func New(
	client client.PicsumClient,
	stateManager state.StateManager,
	metrics *metrics.Metrics,
	cfg config.GridConfig,
) *Controller {
	c := &Controller{
		client:        client,
		stateManager:  stateManager,
		metrics:       metrics,
		layout:        view.Layout{Columns: cfg.Columns, ScreenWidth: cfg.ScreenWidth},
		guardInFlight: cfg.GuardInFlight,
	}

	stateManager.Subscribe(func(ev domain.Event, s domain.AppState) {
		metrics.SetAccumulated(len(s.Photos), s.NextPage)
	})

	return c
}

// Mount issues the first fetch. ctx bounds every fetch issued afterwards.
// Only the first call does anything; later calls return nil.
func (c *Controller) Mount(ctx context.Context) *Fetch {
	c.mutex.Lock()
	if c.mounted {
		c.mutex.Unlock()
		return nil
	}
	c.mounted = true
	c.ctx = ctx
	c.mutex.Unlock()

	log.Info("📷 Grid mounted, fetching first page")
	return c.fetchPhotos()
}

// EndReached handles a near-end signal from the grid. It returns nil when no
// fetch was issued: before Mount, or while another fetch is in flight and the
// in-flight guard is enabled.
func (c *Controller) EndReached() *Fetch {
	c.mutex.Lock()
	mounted := c.mounted
	c.mutex.Unlock()

	if !mounted {
		log.Warn("⚠️ End reached before mount, ignoring")
		c.metrics.IncEndReached("not_mounted")
		return nil
	}

	f := c.fetchPhotos()
	if f == nil {
		c.metrics.IncEndReached("suppressed")
		return nil
	}
	c.metrics.IncEndReached("issued")
	return f
}

func (c *Controller) fetchPhotos() *Fetch {
	c.mutex.Lock()
	if c.guardInFlight && c.inFlight != uuid.Nil {
		log.Debugf("Fetch %s still in flight, skipping", c.inFlight)
		c.mutex.Unlock()
		return nil
	}

	// The page is read at issue time; the counter only moves when a success
	// is reduced, so unguarded fetches issued together request the same page.
	page := c.stateManager.Dispatch(domain.StartLoad{}).NextPage
	f := newFetch(page)
	c.inFlight = f.id
	ctx := c.ctx
	c.fetches.Add(1)
	c.mutex.Unlock()

	log.Infof("🔄 Fetching page %d (fetch %s)", page, f.id)

	go func() {
		defer c.fetches.Done()

		photos, err := c.client.GetList(ctx, page)
		if err != nil {
			c.stateManager.Dispatch(domain.LoadFailure{Err: err})
		} else {
			next := c.stateManager.Dispatch(domain.LoadSuccess{Photos: photos, Page: page})
			log.Infof("✅ Page %d loaded: %d photos, %d total, next page %d",
				page, len(photos), len(next.Photos), next.NextPage)
		}

		c.mutex.Lock()
		if c.inFlight == f.id {
			c.inFlight = uuid.Nil
		}
		c.mutex.Unlock()

		f.complete(len(photos), err)
	}()

	return f
}

// Wait blocks until every issued fetch has completed.
func (c *Controller) Wait() {
	c.fetches.Wait()
}

// Screen renders the current state.
func (c *Controller) Screen() view.Screen {
	c.mutex.Lock()
	modalVisible := c.modalVisible
	c.mutex.Unlock()

	return view.Render(c.stateManager.Snapshot(), modalVisible, c.layout, c.client.FormatPhotoURI)
}

// State returns the accumulator state.
func (c *Controller) State() domain.AppState {
	return c.stateManager.Snapshot()
}

func (c *Controller) ShowModal() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.modalVisible = true
}

func (c *Controller) HideModal() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if c.modalVisible {
		log.Info("Modal has been closed.")
	}
	c.modalVisible = false
}

func (c *Controller) ModalVisible() bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.modalVisible
}
