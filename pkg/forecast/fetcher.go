package forecast

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

type FetcherOption func(f *Fetcher)

// WithCache keeps each day's payload in c.
func WithCache(c *Cache) FetcherOption {
	return func(f *Fetcher) {
		f.cache = c
	}
}

// WithEndpoint replaces the source's endpoint, e.g. with a mirror.
func WithEndpoint(u string) FetcherOption {
	return func(f *Fetcher) {
		f.endpoint = u
	}
}

func WithTimeout(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.cli.SetTimeout(d)
	}
}

// WithClock sets what "today" is for the cache.
func WithClock(now func() time.Time) FetcherOption {
	return func(f *Fetcher) {
		f.now = now
	}
}

// NewFetcher returns a Provider that requests q from src over HTTP.
func NewFetcher(src Source, q Query, logger *zap.Logger, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		src: src,
		q:   q,
		cli: resty.New().
			SetTimeout(30*time.Second).
			SetRetryCount(2).
			SetHeader("Accept", "application/json").
			SetHeader("User-Agent", "weatherpaper"),
		log: logger.With(zap.String("source", src.Name())),
		now: time.Now,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

type Fetcher struct {
	src      Source
	q        Query
	cli      *resty.Client
	cache    *Cache
	endpoint string
	log      *zap.Logger
	now      func() time.Time
}

var _ Provider = (*Fetcher)(nil)

func (f *Fetcher) Source() Source {
	return f.src
}

// Forecast returns today's series, from the cache when it has one. Every
// failure is wrapped in ErrFetch.
func (f *Fetcher) Forecast(ctx context.Context) (*Series, error) {
	today := f.now().In(f.location())

	raw, hit, err := f.cache.Load(f.src.Name(), today)
	if err != nil {
		f.log.With(zap.Error(err)).Warn("cache read failed")
	}

	if !hit {
		if raw, err = f.download(ctx); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFetch, err)
		}
	}

	series, err := f.src.Normalize(raw, f.location())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	series.Sort()

	if !hit {
		if err := f.cache.Save(f.src.Name(), today, raw); err != nil {
			f.log.With(zap.Error(err)).Warn("cache write failed")
		}
		if err := f.cache.Prune(f.src.Name(), 7); err != nil {
			f.log.With(zap.Error(err)).Warn("cache prune failed")
		}
	}

	f.log.With(
		zap.Bool("cached", hit),
		zap.Int("hours", len(series.Hourly)),
		zap.Int("days", len(series.Daily)),
	).Info("forecast loaded")

	return series, nil
}

func (f *Fetcher) download(ctx context.Context) ([]byte, error) {
	endpoint, params := f.src.Request(f.q)
	if f.endpoint != "" {
		endpoint = f.endpoint
	}

	resp, err := f.cli.R().
		SetContext(ctx).
		SetQueryParamsFromValues(params).
		Get(endpoint)
	if err != nil {
		return nil, err
	}

	if resp.IsError() {
		return nil, fmt.Errorf("upstream status %s", resp.Status())
	}

	f.log.With(
		zap.String("url", resp.Request.URL),
		zap.Int("bytes", len(resp.Body())),
		zap.Duration("took", resp.Time()),
	).Debug("forecast downloaded")

	return resp.Body(), nil
}

func (f *Fetcher) location() *time.Location {
	if f.q.Timezone != nil {
		return f.q.Timezone
	}
	return time.Local
}
