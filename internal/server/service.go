// Package server serves KPI cards, pickup series and sparkline geometry over
// HTTP, and streams card changes to subscribers.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/theirongolddev/kpiboard/internal/model"
	"github.com/theirongolddev/kpiboard/internal/pickup"
	"github.com/theirongolddev/kpiboard/internal/pipeline"
)

// Source supplies the metrics behind the cards.
type Source interface {
	Metrics() ([]model.Metric, error)
	Periods() ([]model.Period, error)
}

// Config controls the server runtime behavior.
type Config struct {
	Addr         string
	Property     string
	Seed         *uint64
	Now          func() time.Time
	Interval     time.Duration
	EventsBuffer int
}

// Snapshot is the per-card state compared between polls.
type Snapshot map[string]CardState

// CardState is the part of a card that change events report on.
type CardState struct {
	Current float64 `json:"current"`
	Locked  bool    `json:"locked"`
}

// Event is emitted whenever the card set changes.
type Event struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Changed   []string  `json:"changed,omitempty"`
	Removed   []string  `json:"removed,omitempty"`
	Cards     Snapshot  `json:"cards"`
}

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time `json:"started_at"`
	LastPollAt      time.Time `json:"last_poll_at"`
	PollIntervalSec int       `json:"poll_interval_sec"`
	PollCount       int64     `json:"poll_count"`
	Property        string    `json:"property,omitempty"`
	Cards           int       `json:"cards"`
	Seeded          bool      `json:"seeded"`
	LastError       string    `json:"last_error,omitempty"`
	EventCount      int       `json:"event_count"`
	SubscriberCount int       `json:"subscriber_count"`
}

// Service provides the HTTP API.
type Service struct {
	cfg  Config
	src  Source
	log  *zap.Logger
	gens pickup.Factory

	mu          sync.RWMutex
	startedAt   time.Time
	lastPollAt  time.Time
	pollCount   int64
	lastError   string
	hasSnapshot bool
	snapshot    Snapshot
	nextEventID int64
	events      []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a new service reading cards from src.
func New(cfg Config, src Source, log *zap.Logger) *Service {
	if cfg.Interval < 2*time.Second {
		cfg.Interval = 10 * time.Second
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8787"
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Service{
		cfg:       cfg,
		src:       src,
		log:       log,
		gens:      pickup.Factory{Seed: cfg.Seed, Now: cfg.Now},
		startedAt: cfg.Now(),
		subs:      make(map[int]chan Event),
	}
}

// Run serves HTTP and polls the source until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	s.log.Info("serving", zap.String("addr", s.cfg.Addr))

	// Seed initial snapshot so status is useful immediately.
	s.pollOnce()

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		case <-ticker.C:
			s.pollOnce()
		case err := <-errCh:
			return fmt.Errorf("http server: %w", err)
		}
	}
}

func (s *Service) loadCards() ([]model.Card, error) {
	metrics, err := s.src.Metrics()
	if err != nil {
		return nil, fmt.Errorf("loading metrics: %w", err)
	}
	periods, err := s.src.Periods()
	if err != nil {
		return nil, fmt.Errorf("loading periods: %w", err)
	}
	return pipeline.BuildCards(metrics, periods), nil
}

func (s *Service) pollOnce() {
	cards, err := s.loadCards()
	now := s.cfg.Now()
	if err != nil {
		s.mu.Lock()
		s.lastError = err.Error()
		s.lastPollAt = now
		s.pollCount++
		s.mu.Unlock()
		s.log.Warn("poll failed", zap.Error(err))
		return
	}

	snap := snapshotOf(cards)

	var (
		ev      Event
		publish bool
	)

	s.mu.Lock()
	prev := s.snapshot
	prevExists := s.hasSnapshot

	s.hasSnapshot = true
	s.snapshot = snap
	s.lastPollAt = now
	s.pollCount++
	s.lastError = ""

	if !prevExists {
		s.nextEventID++
		ev = Event{ID: s.nextEventID, Type: "snapshot", Timestamp: now, Cards: snap}
		publish = true
	} else if changed, removed := diffSnapshots(prev, snap); len(changed)+len(removed) > 0 {
		s.nextEventID++
		ev = Event{ID: s.nextEventID, Type: "cards_changed", Timestamp: now,
			Changed: changed, Removed: removed, Cards: snap}
		publish = true
	}
	s.mu.Unlock()

	if publish {
		s.publishEvent(ev)
	}
}

func snapshotOf(cards []model.Card) Snapshot {
	snap := make(Snapshot, len(cards))
	for _, c := range cards {
		snap[c.Key] = CardState{Current: c.Current, Locked: c.Locked}
	}
	return snap
}

// diffSnapshots returns the keys that were added or changed, and the keys
// that disappeared, each in sorted order.
func diffSnapshots(prev, curr Snapshot) (changed, removed []string) {
	for key, st := range curr {
		if old, ok := prev[key]; !ok || old != st {
			changed = append(changed, key)
		}
	}
	for key := range prev {
		if _, ok := curr[key]; !ok {
			removed = append(removed, key)
		}
	}
	slices.Sort(changed)
	slices.Sort(removed)
	return changed, removed
}

func (s *Service) publishEvent(ev Event) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	s.mu.Unlock()
}

func (s *Service) snapshotStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt:       s.startedAt,
		LastPollAt:      s.lastPollAt,
		PollIntervalSec: int(s.cfg.Interval.Seconds()),
		PollCount:       s.pollCount,
		Property:        s.cfg.Property,
		Cards:           len(s.snapshot),
		Seeded:          s.cfg.Seed != nil,
		LastError:       s.lastError,
		EventCount:      len(s.events),
		SubscriberCount: len(s.subs),
	}
}

func (s *Service) addSubscriber(ch chan Event) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	return id
}

func (s *Service) removeSubscriber(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}
