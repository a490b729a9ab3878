package store

import (
	"context"
	"fmt"
	"time"

	chx "supercut/internal/platform/store/ch"
	"supercut/internal/platform/store/lite"
	"supercut/internal/platform/store/pg"
)

// openPG opens pg and wraps it with our sql adapter
func openPG(ctx context.Context, cfg Config, s *Store) (TxRunner, error) {
	var tracer pg.QueryTracer
	if cfg.PG.LogSQL {
		tracer = pg.Tracer(s.Log)
	}

	p, err := pg.Open(ctx, pg.Config{
		URL:      cfg.PG.URL,
		MaxConns: cfg.PG.MaxConns,
		SlowMs:   cfg.PG.SlowQueryMs,
		AppName:  cfg.AppName,
	}, tracer, nil)
	if err != nil {
		return nil, err
	}

	const (
		backoffStart   = 150 * time.Millisecond
		backoffCeiling = 2 * time.Second
	)

	attempts := cfg.PG.retries()
	var lastErr error
	backoff := backoffStart
	for i := 0; i < attempts; i++ {
		toCtx, cancel := context.WithTimeout(ctx, cfg.PG.pingTimeout())
		// ping the pool directly so boot retries stay out of the sql trace
		lastErr = p.Pool.Ping(toCtx)
		cancel()

		if lastErr == nil {
			s.Log.Info().Int("attempt", i+1).Msg("postgres ready")
			return newPGAdapter(p), nil
		}
		if ctx.Err() != nil {
			p.Close()
			return nil, ctx.Err()
		}
		s.Log.Debug().Err(lastErr).Int("attempt", i+1).Dur("backoff", backoff).Msg("postgres not ready")

		select {
		case <-ctx.Done():
			p.Close()
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, backoffCeiling)
	}

	p.Close()
	return nil, fmt.Errorf("postgres ping failed after %d attempts: %w", attempts, lastErr)
}

func openCH(ctx context.Context, cfg Config, s *Store) (Clickhouse, error) {
	name := cfg.CH.ClientName
	if name == "" {
		name = cfg.AppName
	}
	c, err := chx.Open(ctx, chx.Config{URL: cfg.CH.URL, ClientName: name, ClientTag: cfg.CH.ClientTag})
	if err != nil {
		return nil, err
	}
	s.Log.Info().Str("client", name).Msg("clickhouse ready")
	return newCHAdapter(c), nil
}

func openLite(ctx context.Context, cfg Config, s *Store) (TxRunner, error) {
	l, err := lite.Open(ctx, lite.Config{Path: cfg.Lite.Path, BusyTimeout: cfg.Lite.BusyTimeout})
	if err != nil {
		return nil, err
	}
	a := newLiteAdapter(l)
	if cfg.Lite.LogSQL {
		a.traced = traced{tracer: pg.Tracer(s.Log.With().Str("backend", "sqlite").Logger()), slowUS: -1}
	}
	s.Log.Info().Str("path", l.Path).Msg("sqlite ready")
	return a, nil
}
