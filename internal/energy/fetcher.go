package energy

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/rshade/homeenergy/internal/logging"
)

// FetchMode controls how the two series requests are ordered.
type FetchMode string

const (
	// FetchSequential requests the usage schedule only after the forecast
	// request has succeeded. A failed forecast means no usage request.
	FetchSequential FetchMode = "sequential"

	// FetchParallel issues both requests at once. The first failure
	// cancels the other request.
	FetchParallel FetchMode = "parallel"
)

// ParseFetchMode converts a config or flag value to a FetchMode.
// The empty string selects FetchSequential.
func ParseFetchMode(s string) (FetchMode, error) {
	switch FetchMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", FetchSequential:
		return FetchSequential, nil
	case FetchParallel:
		return FetchParallel, nil
	default:
		return "", fmt.Errorf("%w: %q (want %q or %q)", ErrInvalidFetchMode, s, FetchSequential, FetchParallel)
	}
}

// SeriesSource provides the two series. *Client implements it.
type SeriesSource interface {
	Forecast(ctx context.Context) (EmissionForecast, error)
	OptimalUsage(ctx context.Context) (UsageSchedule, error)
}

// Fetcher runs a fetch cycle against a SeriesSource.
type Fetcher struct {
	source SeriesSource
	mode   FetchMode
	logger zerolog.Logger
}

// NewFetcher returns a Fetcher. An empty mode selects FetchSequential.
func NewFetcher(source SeriesSource, mode FetchMode, logger zerolog.Logger) *Fetcher {
	if mode == "" {
		mode = FetchSequential
	}
	return &Fetcher{
		source: source,
		mode:   mode,
		logger: logging.ComponentLogger(logger, "fetcher"),
	}
}

// Mode returns the configured fetch mode.
func (f *Fetcher) Mode() FetchMode {
	return f.mode
}

// Fetch retrieves both series. On any failure it returns an error matching
// ErrFetchFailure and a zero Dashboard, never a partial one.
func (f *Fetcher) Fetch(ctx context.Context) (Dashboard, error) {
	start := time.Now()
	log := f.logger.With().
		Str("mode", string(f.mode)).
		Str(logging.TraceIDField, logging.TraceIDFromContext(ctx)).
		Logger()

	var (
		d   Dashboard
		err error
	)
	if f.mode == FetchParallel {
		d, err = f.fetchParallel(ctx)
	} else {
		d, err = f.fetchSequential(ctx)
	}
	if err != nil {
		log.Warn().Err(err).Dur("duration", time.Since(start)).Msg("fetch cycle failed")
		return Dashboard{}, err
	}

	log.Info().
		Int("forecast_days", len(d.Forecast)).
		Int("usage_days", len(d.Usage)).
		Dur("duration", time.Since(start)).
		Msg("fetch cycle complete")
	return d, nil
}

func (f *Fetcher) fetchSequential(ctx context.Context) (Dashboard, error) {
	forecast, err := f.source.Forecast(ctx)
	if err != nil {
		return Dashboard{}, asFetchError(EndpointForecast, err)
	}
	usage, err := f.source.OptimalUsage(ctx)
	if err != nil {
		return Dashboard{}, asFetchError(EndpointOptimalUsage, err)
	}
	return Dashboard{Forecast: forecast, Usage: usage}, nil
}

func (f *Fetcher) fetchParallel(ctx context.Context) (Dashboard, error) {
	var (
		forecast EmissionForecast
		usage    UsageSchedule
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		forecast, err = f.source.Forecast(gctx)
		return asFetchError(EndpointForecast, err)
	})
	g.Go(func() error {
		var err error
		usage, err = f.source.OptimalUsage(gctx)
		return asFetchError(EndpointOptimalUsage, err)
	})
	if err := g.Wait(); err != nil {
		return Dashboard{}, err
	}
	return Dashboard{Forecast: forecast, Usage: usage}, nil
}

// asFetchError makes sure errors from any SeriesSource match ErrFetchFailure.
func asFetchError(endpoint Endpoint, err error) error {
	if err == nil {
		return nil
	}
	var fe *FetchError
	if errors.As(err, &fe) {
		return err
	}
	return &FetchError{Endpoint: endpoint, Err: err}
}
