package client

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"picsum/grid/internal/config"
	"picsum/grid/internal/domain"
	"picsum/grid/internal/metrics"
	"picsum/grid/internal/proxy"

	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
	"resty.dev/v3"
)

type PicsumClient interface {
	GetList(ctx context.Context, page int) ([]domain.Photo, error)
	FormatPhotoURI(id string, width, height float64) string
}

type picsumClient struct {
	rl           ratelimit.Limiter
	config       config.PicsumConfig
	baseURL      string
	imageBaseURL string
	httpClient   *resty.Client
	metrics      *metrics.Metrics
}

func NewPicsumClient(cfg config.PicsumConfig, proxySupplier proxy.ProxySupplier, m *metrics.Metrics) PicsumClient {
	return newPicsumClient(cfg, proxySupplier, m, nil)
}

// newPicsumClient builds the client on top of hc when given, which lets tests
// swap the transport.
func newPicsumClient(cfg config.PicsumConfig, proxySupplier proxy.ProxySupplier, m *metrics.Metrics, hc *http.Client) *picsumClient {
	var client *resty.Client
	if hc != nil {
		client = resty.NewWithClient(hc)
	} else {
		client = resty.New()
	}

	client.
		SetRetryCount(0).
		SetHeader("Accept", "application/json")

	if cfg.UserAgent != "" {
		client.SetHeader("User-Agent", cfg.UserAgent)
	}
	if cfg.Timeout > 0 {
		client.SetTimeout(time.Duration(cfg.Timeout) * time.Second)
	}

	if proxySupplier != nil {
		if proxyURL := proxySupplier.Get(); proxyURL != "" {
			client.SetProxy(proxyURL)
			log.Infof("🔗 Using proxy: %s", proxyURL)
		}
	}

	rl := ratelimit.NewUnlimited()
	if cfg.MaxRequestsPerSecond > 0 {
		rl = ratelimit.New(cfg.MaxRequestsPerSecond)
	}

	return &picsumClient{
		rl:           rl,
		config:       cfg,
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		imageBaseURL: strings.TrimRight(cfg.ImageBaseURL, "/"),
		httpClient:   client,
		metrics:      m,
	}
}

// GetList fetches one page of the photo listing. The page size is whatever the
// server defaults to; no pagination headers are read.
func (c *picsumClient) GetList(ctx context.Context, page int) ([]domain.Photo, error) {
	url := c.baseURL + "/list"

	c.rl.Take()

	start := time.Now()
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("page", strconv.Itoa(page)).
		Get(url)
	c.metrics.ObserveDuration(time.Since(start))

	if err != nil {
		return nil, c.fail(page, fmt.Errorf("failed to fetch page %d: %w", page, classifyError(err, 0)))
	}

	if resp.IsError() {
		httpErr := fmt.Errorf("HTTP error: %s", resp.Status())
		return nil, c.fail(page, fmt.Errorf("failed to fetch page %d: %w", page, classifyError(httpErr, resp.StatusCode())))
	}

	var photos []domain.Photo
	if err := json.Unmarshal([]byte(resp.String()), &photos); err != nil {
		return nil, c.fail(page, fmt.Errorf("failed to decode page %d: %w", page, ErrDecode{Err: err}))
	}
	if photos == nil {
		photos = []domain.Photo{}
	}

	c.metrics.IncFetch("success")
	log.Debugf("Successfully fetched page %d with %d photos", page, len(photos))
	return photos, nil
}

func (c *picsumClient) fail(page int, err error) error {
	category := errorTypeLabel(err)
	c.metrics.IncFetch("failure")
	c.metrics.IncError(category)
	log.Warnf("❌ Page %d failed (%s): %v", page, category, err)
	return err
}

// FormatPhotoURI builds the display URL of a photo resized to width x height.
// Fractional dimensions are truncated, never rounded.
func (c *picsumClient) FormatPhotoURI(id string, width, height float64) string {
	return FormatPhotoURI(c.imageBaseURL, id, width, height)
}

// FormatPhotoURI builds {base}/id/{id}/{floor(width)}/{floor(height)}.
func FormatPhotoURI(base, id string, width, height float64) string {
	return fmt.Sprintf("%s/id/%s/%d/%d",
		strings.TrimRight(base, "/"),
		id,
		int64(math.Floor(width)),
		int64(math.Floor(height)))
}
