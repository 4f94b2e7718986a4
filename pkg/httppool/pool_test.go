package httppool

import (
	"context"
	"crypto/tls"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MohamedSadiq102/context.Orion-LD/errors"
	"github.com/MohamedSadiq102/context.Orion-LD/metric"
)

func newTestPool(t *testing.T, options ...Option) *Pool {
	t.Helper()
	p, err := New(options...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })
	return p
}

func TestPool_GetSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"@context": {}}`))
	}))
	defer srv.Close()

	p := newTestPool(t)

	buf, err := p.Get(context.Background(), srv.URL+"/ctx.jsonld", time.Second)
	require.NoError(t, err)
	defer buf.Release()

	assert.Equal(t, `{"@context": {}}`, buf.String())
	assert.Equal(t, int64(len(`{"@context": {}}`)), p.BufferStats().BytesWritten())
}

func TestPool_StatusNotInterpreted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("nope"))
	}))
	defer srv.Close()

	p := newTestPool(t)

	buf, err := p.Get(context.Background(), srv.URL, time.Second)
	require.NoError(t, err)
	defer buf.Release()
	assert.Equal(t, "nope", buf.String())
}

func TestPool_BadURL(t *testing.T) {
	p := newTestPool(t)

	tests := []struct {
		name string
		url  string
	}{
		{"no scheme", "example.org/ctx"},
		{"ftp scheme", "ftp://example.org/ctx"},
		{"no host", "http://"},
		{"unparsable", "http://[::1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf, err := p.Get(context.Background(), tt.url, time.Second)
			require.Error(t, err)
			assert.Nil(t, buf)
			assert.True(t, errors.Is(err, errors.ErrURLParse))
			assert.True(t, errors.IsInvalid(err))
		})
	}
}

func TestPool_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	p := newTestPool(t)

	buf, err := p.Get(context.Background(), url, time.Second)
	require.Error(t, err)
	assert.Nil(t, buf)
	assert.True(t, errors.Is(err, errors.ErrTransportFailure))
	assert.True(t, errors.IsTransient(err))

	stats := p.Stats()
	for _, s := range stats {
		assert.Equal(t, 0, s.InUse, "handle must be returned after failure")
	}
}

func TestPool_TransferTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}))
	defer srv.Close()

	p := newTestPool(t)

	start := time.Now()
	buf, err := p.Get(context.Background(), srv.URL, 50*time.Millisecond)
	require.Error(t, err)
	assert.Nil(t, buf)
	assert.True(t, errors.Is(err, errors.ErrTimeout), "got %v", err)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestPool_CheckoutTimeout(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{}, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		entered <- struct{}{}
		<-release
		_, _ = w.Write([]byte("done"))
	}))
	defer srv.Close()

	p := newTestPool(t, WithPoolSize(1))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		buf, err := p.Get(context.Background(), srv.URL, 5*time.Second)
		if assert.NoError(t, err) {
			buf.Release()
		}
	}()
	<-entered

	_, err := p.Get(context.Background(), srv.URL, 50*time.Millisecond)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrTimeout))

	close(release)
	wg.Wait()

	host := strings.TrimPrefix(srv.URL, "http://")
	stats := p.Stats()[host]
	assert.Equal(t, HostStats{Created: 1, Idle: 1, InUse: 0}, stats)
}

func TestPool_HandlesReusedAndBounded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(10 * time.Millisecond)
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	p := newTestPool(t, WithPoolSize(3))

	var wg sync.WaitGroup
	for i := 0; i < 12; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			buf, err := p.Get(context.Background(), srv.URL, 5*time.Second)
			if assert.NoError(t, err) {
				assert.Equal(t, "ok", buf.String())
				buf.Release()
			}
		}()
	}
	wg.Wait()

	host := strings.TrimPrefix(srv.URL, "http://")
	stats := p.Stats()[host]
	assert.LessOrEqual(t, stats.Created, 3)
	assert.Equal(t, stats.Created, stats.Idle)
	assert.Equal(t, 0, stats.InUse)
}

func TestPool_Redirects(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/new", http.StatusFound)
	})
	mux.HandleFunc("/new", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("moved"))
	})
	mux.HandleFunc("/loop", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/loop", http.StatusFound)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	p := newTestPool(t, WithMaxRedirects(3))

	buf, err := p.Get(context.Background(), srv.URL+"/old", time.Second)
	require.NoError(t, err)
	assert.Equal(t, "moved", buf.String())
	buf.Release()

	_, err = p.Get(context.Background(), srv.URL+"/loop", time.Second)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrTransportFailure))
}

func TestPool_MaxBodyBytes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 64)))
	}))
	defer srv.Close()

	p := newTestPool(t, WithMaxBodyBytes(16))

	buf, err := p.Get(context.Background(), srv.URL, time.Second)
	require.Error(t, err)
	assert.Nil(t, buf)
	assert.True(t, errors.Is(err, errors.ErrResourceExhausted))
}

func TestPool_Close(t *testing.T) {
	p := newTestPool(t)
	require.NoError(t, p.Close())
	require.NoError(t, p.Close())

	_, err := p.Get(context.Background(), "http://example.org/", time.Second)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrShuttingDown))
}

func TestPool_TransportFactory(t *testing.T) {
	var calls int
	var mu sync.Mutex
	p := newTestPool(t, WithTransportFactory(func(_ *tls.Config) http.RoundTripper {
		mu.Lock()
		calls++
		mu.Unlock()
		return roundTripFunc(func(r *http.Request) (*http.Response, error) {
			return &http.Response{
				StatusCode: http.StatusOK,
				Header:     make(http.Header),
				Body:       io.NopCloser(strings.NewReader("stub:" + r.URL.Path)),
				Request:    r,
			}, nil
		})
	}))

	for i := 0; i < 3; i++ {
		buf, err := p.Get(context.Background(), "https://contexts.example.org/a.jsonld", time.Second)
		require.NoError(t, err)
		assert.Equal(t, "stub:/a.jsonld", buf.String())
		buf.Release()
	}

	assert.Equal(t, 1, calls, "sequential fetches reuse one handle")
}

func TestPool_Metrics(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("{}"))
	}))
	defer srv.Close()

	registry := metric.NewMetricsRegistry()
	p := newTestPool(t, WithMetrics(registry, "contexts"))

	buf, err := p.Get(context.Background(), srv.URL, time.Second)
	require.NoError(t, err)
	buf.Release()
	_, err = p.Get(context.Background(), "nope", time.Second)
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(p.metrics.fetches.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.metrics.fetches.WithLabelValues("bad_url")))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.metrics.created))
	assert.Equal(t, 0.0, testutil.ToFloat64(p.metrics.inUse))

	_, err = New(WithMetrics(registry, "contexts"))
	require.Error(t, err, "duplicate metrics prefix")
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }
