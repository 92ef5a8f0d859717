// Package store provides the SQLite-backed source of KPI metrics and
// accounting period locks.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/theirongolddev/kpiboard/internal/metric"
	"github.com/theirongolddev/kpiboard/internal/model"

	"go.uber.org/zap"
	_ "modernc.org/sqlite" // register sqlite driver
)

var (
	// ErrNotFound is returned for an unknown metric key.
	ErrNotFound = errors.New("metric not found")
	// ErrLocked is returned when writing into a locked month.
	ErrLocked = errors.New("period is locked")
)

// Store is a KPI metric store.
type Store struct {
	db  *sql.DB
	log *zap.Logger
}

// Open opens or creates the database at dbPath and seeds it with the
// default fixtures when it holds no metrics.
func Open(dbPath string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating store dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening store db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	s := &Store{db: db, log: log}

	n, err := s.MetricCount()
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("counting metrics: %w", err)
	}
	if n == 0 {
		if err := s.Seed(DefaultMetrics(time.Now())); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("seeding fixtures: %w", err)
		}
		log.Info("seeded fixture metrics", zap.String("path", dbPath))
	}

	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// MetricCount returns the number of stored metrics.
func (s *Store) MetricCount() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM metrics").Scan(&count)
	return count, err
}

// Seed inserts metrics in order, replacing any with the same key.
func (s *Store) Seed(metrics []model.Metric) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC().Format(time.RFC3339)
	for i, m := range metrics {
		if err := upsertMetric(tx, m, i, now); err != nil {
			return fmt.Errorf("seeding %s: %w", m.Key, err)
		}
	}
	return tx.Commit()
}

// SaveMetric inserts or replaces m. Writes into a locked month fail with
// ErrLocked.
func (s *Store) SaveMetric(m model.Metric) error {
	locked, err := s.isLocked(m.Period)
	if err != nil {
		return err
	}
	if locked {
		return fmt.Errorf("saving %s: %w", m.Key, ErrLocked)
	}

	position := 0
	err = s.db.QueryRow("SELECT position FROM metrics WHERE metric_key = ?", m.Key).Scan(&position)
	if errors.Is(err, sql.ErrNoRows) {
		err = s.db.QueryRow("SELECT COALESCE(MAX(position), -1) + 1 FROM metrics").Scan(&position)
	}
	if err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := upsertMetric(tx, m, position, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("saving %s: %w", m.Key, err)
	}
	return tx.Commit()
}

func upsertMetric(tx *sql.Tx, m model.Metric, position int, now string) error {
	isExpense := 0
	if m.IsExpense {
		isExpense = 1
	}
	_, err := tx.Exec(`INSERT OR REPLACE INTO metrics
		(metric_key, title, domain, is_expense, period, current, prior, budget,
		 forecast, otb, yesterday, position, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.Key, m.Title, m.Domain.String(), isExpense, m.Period, m.Current, m.Prior, m.Budget,
		m.Forecast, m.OTB, m.Yesterday, position, now,
	)
	return err
}

const metricColumns = `metric_key, title, domain, is_expense, period, current, prior,
	budget, forecast, otb, yesterday`

type scanner interface {
	Scan(dest ...any) error
}

func scanMetric(row scanner) (model.Metric, error) {
	var m model.Metric
	var domain string
	var isExpense int
	err := row.Scan(&m.Key, &m.Title, &domain, &isExpense, &m.Period, &m.Current, &m.Prior,
		&m.Budget, &m.Forecast, &m.OTB, &m.Yesterday)
	if err != nil {
		return m, err
	}
	m.IsExpense = isExpense != 0
	if d, ok := metric.ParseDomain(domain); ok {
		m.Domain = d
	} else {
		m.Domain = metric.DomainFromTitle(m.Title)
	}
	return m, nil
}

// Metrics returns all metrics in dashboard order.
func (s *Store) Metrics() ([]model.Metric, error) {
	rows, err := s.db.Query("SELECT " + metricColumns + " FROM metrics ORDER BY position, metric_key")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var metrics []model.Metric
	for rows.Next() {
		m, err := scanMetric(rows)
		if err != nil {
			return nil, err
		}
		metrics = append(metrics, m)
	}
	return metrics, rows.Err()
}

// Metric returns the metric with the given key.
func (s *Store) Metric(key string) (model.Metric, error) {
	row := s.db.QueryRow("SELECT "+metricColumns+" FROM metrics WHERE metric_key = ?", key)
	m, err := scanMetric(row)
	if errors.Is(err, sql.ErrNoRows) {
		return m, fmt.Errorf("%s: %w", key, ErrNotFound)
	}
	return m, err
}

// DeleteMetric removes a metric. Metrics of a locked month fail with
// ErrLocked.
func (s *Store) DeleteMetric(key string) error {
	var period string
	err := s.db.QueryRow("SELECT period FROM metrics WHERE metric_key = ?", key).Scan(&period)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", key, ErrNotFound)
	}
	if err != nil {
		return err
	}
	locked, err := s.isLocked(period)
	if err != nil {
		return err
	}
	if locked {
		return fmt.Errorf("deleting %s: %w", key, ErrLocked)
	}

	res, err := s.db.Exec("DELETE FROM metrics WHERE metric_key = ?", key)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s: %w", key, ErrNotFound)
	}
	return nil
}

// Periods returns the known accounting months, newest first.
func (s *Store) Periods() ([]model.Period, error) {
	rows, err := s.db.Query(`SELECT month, locked, locked_at FROM periods
		UNION
		SELECT DISTINCT period, 0, NULL FROM metrics WHERE period NOT IN (SELECT month FROM periods)
		ORDER BY 1 DESC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var periods []model.Period
	for rows.Next() {
		var p model.Period
		var locked int
		var lockedAt sql.NullString
		if err := rows.Scan(&p.Month, &locked, &lockedAt); err != nil {
			return nil, err
		}
		p.Locked = locked != 0
		if lockedAt.Valid && lockedAt.String != "" {
			p.LockedAt, _ = time.Parse(time.RFC3339, lockedAt.String)
		}
		periods = append(periods, p)
	}
	return periods, rows.Err()
}

// SetLocked locks or unlocks a month.
func (s *Store) SetLocked(month string, locked bool, at time.Time) error {
	if _, err := time.Parse("2006-01", month); err != nil {
		return fmt.Errorf("invalid month %q (want YYYY-MM)", month)
	}

	var lockedAt any
	lockedInt := 0
	if locked {
		lockedInt = 1
		lockedAt = at.UTC().Format(time.RFC3339)
	}
	_, err := s.db.Exec(`INSERT OR REPLACE INTO periods (month, locked, locked_at) VALUES (?, ?, ?)`,
		month, lockedInt, lockedAt)
	if err != nil {
		return err
	}
	s.log.Info("period lock changed", zap.String("month", month), zap.Bool("locked", locked))
	return nil
}

func (s *Store) isLocked(month string) (bool, error) {
	var locked int
	err := s.db.QueryRow("SELECT locked FROM periods WHERE month = ?", month).Scan(&locked)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return locked != 0, nil
}
