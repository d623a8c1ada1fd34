package proxy

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"resty.dev/v3"
)

// ProxySupplier hands out outbound proxies for the listing client in
// round-robin order. An empty string means "connect directly".
type ProxySupplier interface {
	Get() string
	Len() int
}

// Probe reports whether proxyURL can reach testURL.
type Probe func(ctx context.Context, proxyURL, testURL string) bool

type proxySupplier struct {
	proxies []string
	current int
	mutex   sync.Mutex
}

// NewProxySupplier keeps the proxies that pass the default probe against testURL.
func NewProxySupplier(ctx context.Context, proxies []string, testURL string) ProxySupplier {
	return newProxySupplier(ctx, proxies, testURL, isProxyValid)
}

func newProxySupplier(ctx context.Context, proxies []string, testURL string, probe Probe) *proxySupplier {
	if len(proxies) == 0 {
		return &proxySupplier{proxies: []string{}}
	}

	log.Infof("🔄 Testing %d proxies against %s...", len(proxies), testURL)

	// Results are indexed so the configured order survives parallel probing.
	ok := make([]bool, len(proxies))
	var wg sync.WaitGroup
	for i, proxyURL := range proxies {
		wg.Add(1)
		go func(index int, proxy string) {
			defer wg.Done()
			ok[index] = probe(ctx, proxy, testURL)
			if ok[index] {
				log.Infof("✅ Proxy %s is working", proxy)
			} else {
				log.Infof("❌ Proxy %s is not working, skipping", proxy)
			}
		}(i, proxyURL)
	}
	wg.Wait()

	valid := make([]string, 0, len(proxies))
	for i, proxyURL := range proxies {
		if ok[i] {
			valid = append(valid, proxyURL)
		}
	}

	log.Infof("✅ ProxySupplier initialized with %d working proxies out of %d tested", len(valid), len(proxies))

	return &proxySupplier{proxies: valid}
}

func (p *proxySupplier) Get() string {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if len(p.proxies) == 0 {
		return ""
	}

	proxy := p.proxies[p.current]
	p.current = (p.current + 1) % len(p.proxies)

	return proxy
}

func (p *proxySupplier) Len() int {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return len(p.proxies)
}

// isProxyValid asks for the first listing page through proxyURL.
func isProxyValid(ctx context.Context, proxyURL, testURL string) bool {
	client := resty.New().
		SetTimeout(5 * time.Second).
		SetRetryCount(0).
		SetProxy(proxyURL)
	defer client.Close()

	resp, err := client.R().
		SetContext(ctx).
		SetQueryParam("page", "1").
		Get(testURL + "/list")

	if err != nil {
		log.Debugf("Proxy test failed for %s: %v", proxyURL, err)
		return false
	}

	if resp.IsError() {
		log.Debugf("Proxy test failed for %s with status: %s", proxyURL, resp.Status())
		return false
	}

	return true
}
