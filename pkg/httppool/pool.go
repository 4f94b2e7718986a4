package httppool

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MohamedSadiq102/context.Orion-LD/errors"
	"github.com/MohamedSadiq102/context.Orion-LD/pkg/buffer"
)

// Pool hands out reusable HTTP client handles per host and performs GET
// requests into ResponseBuffers.
type Pool struct {
	opts    *poolOptions
	logger  *slog.Logger
	metrics *poolMetrics

	mu     sync.Mutex
	hosts  map[string]*hostPool
	closed atomic.Bool

	bufferStats *buffer.Statistics
}

// handle is one reusable client. It is owned by exactly one caller between
// checkout and checkin.
type handle struct {
	id     int
	client *http.Client
}

// hostPool holds the handles of one host. idle has room for every handle
// that can exist, so checkin never blocks.
type hostPool struct {
	host    string
	idle    chan *handle
	created atomic.Int32
	all     []*handle
	mu      sync.Mutex
}

// HostStats is a snapshot of one host's handles.
type HostStats struct {
	Created int
	Idle    int
	InUse   int
}

// New creates a Pool.
func New(options ...Option) (*Pool, error) {
	opts := applyOptions(options...)

	var metrics *poolMetrics
	if opts.metricsReg != nil {
		var err error
		metrics, err = newPoolMetrics(opts.metricsReg, opts.metricsPrefix)
		if err != nil {
			return nil, errors.WrapTransient(err, "Pool", "New", "metrics registration")
		}
	}

	return &Pool{
		opts:        opts,
		logger:      opts.logger,
		metrics:     metrics,
		hosts:       make(map[string]*hostPool),
		bufferStats: buffer.NewStatistics(),
	}, nil
}

// Get fetches rawURL. The timeout bounds handle checkout, connection and
// transfer together. Redirects are followed; the HTTP status is not
// interpreted. On success the caller owns the returned buffer; on failure no
// buffer is returned.
func (p *Pool) Get(ctx context.Context, rawURL string, timeout time.Duration) (*buffer.ResponseBuffer, error) {
	start := time.Now()

	buf, err := p.get(ctx, rawURL, timeout)

	outcome := "ok"
	switch {
	case err == nil:
	case errors.Is(err, errors.ErrTimeout):
		outcome = "timeout"
	case errors.Is(err, errors.ErrURLParse):
		outcome = "bad_url"
	default:
		outcome = "error"
	}
	p.metrics.recordFetch(outcome, time.Since(start))

	if err != nil {
		p.logger.Warn("Remote fetch failed", "url", rawURL, "error", err)
		return nil, err
	}
	p.logger.Debug("Remote fetch done", "url", rawURL, "bytes", buf.Len(), "duration", time.Since(start))
	return buf, nil
}

func (p *Pool) get(ctx context.Context, rawURL string, timeout time.Duration) (*buffer.ResponseBuffer, error) {
	if p.closed.Load() {
		return nil, errors.WrapFatal(errors.ErrShuttingDown, "Pool", "Get", "fetch after close")
	}

	u, err := parseURL(rawURL)
	if err != nil {
		return nil, err
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	hp := p.hostPool(u.Host)
	h, err := p.checkout(ctx, hp)
	if err != nil {
		return nil, err
	}
	defer p.checkin(hp, h)

	p.logger.Debug("Remote fetch start", "url", rawURL, "handle", h.id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, errors.WrapInvalid(fmt.Errorf("%w: %v", errors.ErrURLParse, err), "Pool", "Get", "build request")
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fetchError(ctx, err, rawURL)
	}
	defer resp.Body.Close()

	buf := buffer.NewResponseBuffer(
		buffer.WithMaxSize(p.opts.maxBodyBytes),
		buffer.WithStatistics(p.bufferStats),
	)
	if _, err := io.Copy(buf, resp.Body); err != nil {
		buf.Release()
		if errors.Is(err, errors.ErrResourceExhausted) {
			return nil, errors.WrapInvalid(err, "Pool", "Get", fmt.Sprintf("read body of %s", rawURL))
		}
		return nil, fetchError(ctx, err, rawURL)
	}

	return buf, nil
}

// parseURL accepts absolute http and https URLs only.
func parseURL(rawURL string) (*url.URL, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, errors.WrapInvalid(fmt.Errorf("%w: %v", errors.ErrURLParse, err), "Pool", "Get", "parse URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, errors.WrapInvalid(errors.ErrURLParse, "Pool", "Get",
			fmt.Sprintf("unsupported scheme %q in %s", u.Scheme, rawURL))
	}
	if u.Host == "" {
		return nil, errors.WrapInvalid(errors.ErrURLParse, "Pool", "Get", fmt.Sprintf("no host in %s", rawURL))
	}
	return u, nil
}

func fetchError(ctx context.Context, err error, rawURL string) error {
	var netErr net.Error
	if stderrors.Is(ctx.Err(), context.DeadlineExceeded) ||
		stderrors.Is(err, context.DeadlineExceeded) ||
		(stderrors.As(err, &netErr) && netErr.Timeout()) {
		return errors.WrapTransient(fmt.Errorf("%w: %v", errors.ErrTimeout, err), "Pool", "Get", "fetch "+rawURL)
	}
	return errors.WrapTransient(fmt.Errorf("%w: %v", errors.ErrTransportFailure, err), "Pool", "Get", "fetch "+rawURL)
}

func (p *Pool) hostPool(host string) *hostPool {
	p.mu.Lock()
	defer p.mu.Unlock()

	hp, ok := p.hosts[host]
	if !ok {
		hp = &hostPool{
			host: host,
			idle: make(chan *handle, p.opts.poolSize),
		}
		p.hosts[host] = hp
	}
	return hp
}

// checkout reuses an idle handle, creates one while the host is below the
// pool size, or waits for a checkin until ctx is done.
func (p *Pool) checkout(ctx context.Context, hp *hostPool) (*handle, error) {
	select {
	case h := <-hp.idle:
		p.metrics.checkout()
		return h, nil
	default:
	}

	if h := p.tryCreate(hp); h != nil {
		p.metrics.checkout()
		return h, nil
	}

	select {
	case h := <-hp.idle:
		p.metrics.checkout()
		return h, nil
	case <-ctx.Done():
		if stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, errors.WrapTransient(errors.ErrTimeout, "Pool", "Get",
				fmt.Sprintf("wait for a handle to %s", hp.host))
		}
		return nil, errors.WrapTransient(ctx.Err(), "Pool", "Get", fmt.Sprintf("wait for a handle to %s", hp.host))
	}
}

func (p *Pool) tryCreate(hp *hostPool) *handle {
	for {
		n := hp.created.Load()
		if int(n) >= p.opts.poolSize {
			return nil
		}
		if hp.created.CompareAndSwap(n, n+1) {
			h := &handle{id: int(n) + 1, client: p.newClient()}
			hp.mu.Lock()
			hp.all = append(hp.all, h)
			hp.mu.Unlock()
			p.metrics.handleCreated()
			return h
		}
	}
}

func (p *Pool) newClient() *http.Client {
	maxRedirects := p.opts.maxRedirects
	return &http.Client{
		Transport: p.opts.transportFactory(p.opts.tlsConfig),
		CheckRedirect: func(_ *http.Request, via []*http.Request) error {
			if len(via) > maxRedirects {
				return fmt.Errorf("%w: stopped after %d redirects", errors.ErrTransportFailure, maxRedirects)
			}
			return nil
		},
	}
}

func (p *Pool) checkin(hp *hostPool, h *handle) {
	p.metrics.checkin()
	if p.closed.Load() {
		h.client.CloseIdleConnections()
	}
	hp.idle <- h
}

// Stats returns a snapshot per host.
func (p *Pool) Stats() map[string]HostStats {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make(map[string]HostStats, len(p.hosts))
	for host, hp := range p.hosts {
		created := int(hp.created.Load())
		idle := len(hp.idle)
		out[host] = HostStats{Created: created, Idle: idle, InUse: created - idle}
	}
	return out
}

// BufferStats returns the statistics shared by all buffers this pool created.
func (p *Pool) BufferStats() *buffer.Statistics {
	return p.bufferStats
}

// Close closes the idle connections of every handle. Handles still checked
// out close theirs on checkin. Get fails with ErrShuttingDown afterwards.
func (p *Pool) Close() error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	for _, hp := range p.hosts {
		hp.mu.Lock()
		for _, h := range hp.all {
			h.client.CloseIdleConnections()
		}
		hp.mu.Unlock()
	}
	return nil
}
