// Package metrics records best-effort usage counters and a
// privacy-conscious visitor log.
package metrics

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/Zachkp/portfolio/internal/db"
)

// writeTimeout bounds a single background counter write.
const writeTimeout = 5 * time.Second

// Sink bumps named counters in the background. Callers never learn
// whether a write succeeded; failures are logged at debug level and
// dropped.
type Sink struct {
	db     *db.DB
	logger *slog.Logger

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// NewSink creates a Sink writing to database.
func NewSink(database *db.DB, logger *slog.Logger) *Sink {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Sink{db: database, logger: logger}
}

// CounterName namespaces an event by language: "<event>_<lang>".
// Anything outside [a-z0-9-] is folded to '_'.
func CounterName(event, lang string) string {
	return sanitize(event) + "_" + sanitize(lang)
}

func sanitize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "unknown"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			return r
		default:
			return '_'
		}
	}, s)
}

// Increment fires a counter bump for event in lang and returns
// immediately. Increments after Close are dropped.
func (s *Sink) Increment(event, lang string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.wg.Add(1)
	s.mu.Unlock()

	name := CounterName(event, lang)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()
		if err := s.increment(ctx, name); err != nil {
			s.logger.Debug("counter increment dropped", "counter", name, "error", err)
		}
	}()
}

// increment bumps an existing counter; when the counter does not exist
// yet it retries exactly once with an upsert, which also covers a
// concurrent first increment creating the row in between.
func (s *Sink) increment(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE counters SET value = value + 1, updated_at = datetime('now') WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("updating counter: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		return nil
	}

	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO counters (name, value) VALUES (?, 1)
		 ON CONFLICT(name) DO UPDATE SET value = value + 1, updated_at = datetime('now')`, name); err != nil {
		return fmt.Errorf("creating counter: %w", err)
	}
	return nil
}

// Close stops accepting increments and waits for in-flight writes.
func (s *Sink) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.wg.Wait()
}

// Counter is a named counter value.
type Counter struct {
	Name      string    `json:"name" yaml:"name"`
	Value     int64     `json:"value" yaml:"value"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

// Value returns a counter's current value, 0 if it was never bumped.
func (s *Sink) Value(ctx context.Context, name string) (int64, error) {
	var v int64
	err := s.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(value), 0) FROM counters WHERE name = ?`, name).Scan(&v)
	if err != nil {
		return 0, fmt.Errorf("reading counter %s: %w", name, err)
	}
	return v, nil
}
