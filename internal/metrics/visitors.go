package metrics

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Zachkp/portfolio/internal/db"
)

// sqliteTime matches datetime('now') so stored and computed times compare
// as strings.
const sqliteTime = "2006-01-02 15:04:05"

// DefaultRetention is how long visitor rows are kept.
const DefaultRetention = 365 * 24 * time.Hour

// Visitor is one recorded page view. The client IP is never stored,
// only a salted hash of it.
type Visitor struct {
	ID        string    `json:"id" yaml:"id"`
	HashedIP  string    `json:"hashed_ip" yaml:"hashed_ip"`
	UserAgent string    `json:"user_agent" yaml:"user_agent"`
	Path      string    `json:"path" yaml:"path"`
	Lang      string    `json:"lang" yaml:"lang"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// Stats is the admin dashboard summary.
type Stats struct {
	TotalVisitors    int64     `json:"total_visitors" yaml:"total_visitors"`
	UniqueVisitors   int64     `json:"unique_visitors" yaml:"unique_visitors"`
	VisitorsToday    int64     `json:"visitors_today" yaml:"visitors_today"`
	VisitorsThisWeek int64     `json:"visitors_this_week" yaml:"visitors_this_week"`
	TotalEvents      int64     `json:"total_events" yaml:"total_events"`
	TopCounters      []Counter `json:"top_counters" yaml:"top_counters"`
	RecentVisitors   []Visitor `json:"recent_visitors" yaml:"recent_visitors"`
}

// Tracker records page views with hashed IPs.
type Tracker struct {
	db     *db.DB
	salt   string
	logger *slog.Logger
	now    func() time.Time

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// NewTracker creates a Tracker. An empty salt is replaced by a random
// per-process one, so hashes cannot be correlated across restarts.
func NewTracker(database *db.DB, salt string, logger *slog.Logger) *Tracker {
	if salt == "" {
		salt = RandomToken()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Tracker{db: database, salt: salt, logger: logger, now: time.Now}
}

// RandomToken returns 32 random bytes hex-encoded.
func RandomToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand never fails on supported platforms
		panic(fmt.Sprintf("generating token: %v", err))
	}
	return hex.EncodeToString(b)
}

// HashIP hashes ip with the tracker's salt, truncated to 16 hex chars.
func (t *Tracker) HashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip + t.salt))
	return hex.EncodeToString(sum[:])[:16]
}

// Track records a visit in the background. Visits after Close are
// dropped.
func (t *Tracker) Track(ip, userAgent, path, lang string) {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	t.wg.Add(1)
	t.mu.Unlock()

	go func() {
		defer t.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()
		if err := t.Record(ctx, ip, userAgent, path, lang); err != nil {
			t.logger.Warn("recording visitor", "error", err)
		}
	}()
}

// Close stops accepting visits and waits for in-flight writes.
func (t *Tracker) Close() {
	t.mu.Lock()
	t.closed = true
	t.mu.Unlock()
	t.wg.Wait()
}

// Record stores a visit synchronously.
func (t *Tracker) Record(ctx context.Context, ip, userAgent, path, lang string) error {
	_, err := t.db.ExecContext(ctx, `
		INSERT INTO visitors (id, hashed_ip, user_agent, path, lang, timestamp)
		VALUES (?, ?, ?, ?, ?, ?)`,
		uuid.New().String(), t.HashIP(ip), userAgent, path, lang, t.now().UTC().Format(sqliteTime))
	if err != nil {
		return fmt.Errorf("inserting visitor: %w", err)
	}
	return nil
}

// Cleanup deletes visitor rows older than retention and returns how
// many were removed.
func (t *Tracker) Cleanup(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := t.now().Add(-retention).UTC().Format(sqliteTime)
	res, err := t.db.ExecContext(ctx, `DELETE FROM visitors WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("deleting old visitors: %w", err)
	}
	n, _ := res.RowsAffected()
	if n > 0 {
		t.logger.Info("privacy cleanup", "removed", n, "retention", retention)
	}
	return n, nil
}

// Stats gathers the dashboard summary.
func (t *Tracker) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}
	now := t.now().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).Format(sqliteTime)
	weekAgo := now.Add(-7 * 24 * time.Hour).Format(sqliteTime)

	counts := []struct {
		dst   *int64
		query string
		args  []any
	}{
		{&stats.TotalVisitors, `SELECT COUNT(*) FROM visitors`, nil},
		{&stats.UniqueVisitors, `SELECT COUNT(DISTINCT hashed_ip) FROM visitors`, nil},
		{&stats.VisitorsToday, `SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{dayStart}},
		{&stats.VisitorsThisWeek, `SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{weekAgo}},
		{&stats.TotalEvents, `SELECT COALESCE(SUM(value), 0) FROM counters`, nil},
	}
	for _, c := range counts {
		if err := t.db.QueryRowContext(ctx, c.query, c.args...).Scan(c.dst); err != nil {
			return nil, fmt.Errorf("querying stats: %w", err)
		}
	}

	var err error
	if stats.TopCounters, err = t.topCounters(ctx, 10); err != nil {
		return nil, err
	}
	if stats.RecentVisitors, err = t.Recent(ctx, 50); err != nil {
		return nil, err
	}
	return stats, nil
}

func (t *Tracker) topCounters(ctx context.Context, limit int) ([]Counter, error) {
	rows, err := t.db.QueryContext(ctx, `
		SELECT name, value, CAST(updated_at AS TEXT) FROM counters
		ORDER BY value DESC, name ASC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying counters: %w", err)
	}
	defer rows.Close()

	var out []Counter
	for rows.Next() {
		var c Counter
		var updated string
		if err := rows.Scan(&c.Name, &c.Value, &updated); err != nil {
			return nil, fmt.Errorf("scanning counter: %w", err)
		}
		c.UpdatedAt, _ = time.Parse(sqliteTime, updated)
		out = append(out, c)
	}
	return out, rows.Err()
}

// Recent returns the latest visits, newest first.
func (t *Tracker) Recent(ctx context.Context, limit int) ([]Visitor, error) {
	rows, err := t.db.QueryContext(ctx, `
		SELECT id, hashed_ip, user_agent, path, lang, CAST(timestamp AS TEXT) FROM visitors
		ORDER BY timestamp DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying visitors: %w", err)
	}
	defer rows.Close()

	var out []Visitor
	for rows.Next() {
		var v Visitor
		var ts string
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &v.Lang, &ts); err != nil {
			return nil, fmt.Errorf("scanning visitor: %w", err)
		}
		v.Timestamp, _ = time.Parse(sqliteTime, ts)
		out = append(out, v)
	}
	return out, rows.Err()
}
