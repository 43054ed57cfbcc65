package monitoring

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/leadlift/leadlift-web/internal/backend"
	"github.com/leadlift/leadlift-web/internal/config"
	"github.com/leadlift/leadlift-web/internal/fetchunit"
	"github.com/leadlift/leadlift-web/internal/guard"
	"github.com/leadlift/leadlift-web/internal/models"
	"github.com/leadlift/leadlift-web/internal/notifications"
	"github.com/leadlift/leadlift-web/internal/storage"
	"github.com/sirupsen/logrus"
)

const snapshotPrefix = "metrics/"

// Service keeps in-memory counters for the frontend and probes the backend.
// notifier and archive are optional.
type Service struct {
	config   *config.Config
	api      backend.API
	notifier notifications.Notifier
	archive  storage.Archive
	metrics  *Metrics
	mu       sync.RWMutex
}

// Ensure Service can observe units and guard decisions
var (
	_ fetchunit.Observer = (*Service)(nil)
	_ guard.Recorder     = (*Service)(nil)
)

// Metrics holds monitoring metrics
type Metrics struct {
	StartedAt         time.Time                 `json:"started_at"`
	UnitOutcomes      map[string]map[string]int `json:"unit_outcomes"`
	GuardDecisions    map[string]int            `json:"guard_decisions"`
	BackendHealthy    bool                      `json:"backend_healthy"`
	LastProbe         time.Time                 `json:"last_probe"`
	LastProbeDuration string                    `json:"last_probe_duration"`
	LastProbeError    string                    `json:"last_probe_error,omitempty"`
	ProbeFailures     int                       `json:"probe_failures"`
	ConsecutiveFails  int                       `json:"consecutive_failures"`
}

// NewService creates a new monitoring service
func NewService(cfg *config.Config, api backend.API, notifier notifications.Notifier, archive storage.Archive) *Service {
	return &Service{
		config:   cfg,
		api:      api,
		notifier: notifier,
		archive:  archive,
		metrics: &Metrics{
			StartedAt:      time.Now(),
			UnitOutcomes:   make(map[string]map[string]int),
			GuardDecisions: make(map[string]int),
		},
	}
}

// UnitSettled counts the outcome of a fetch-render unit
func (s *Service) UnitSettled(unit string, state fetchunit.State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	outcomes, ok := s.metrics.UnitOutcomes[unit]
	if !ok {
		outcomes = make(map[string]int)
		s.metrics.UnitOutcomes[unit] = outcomes
	}
	outcomes[state.String()]++
}

// GuardDecision counts a route guard decision
func (s *Service) GuardDecision(decision guard.Decision) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.metrics.GuardDecisions[decision.String()]++
}

// RunProbe pings the backend and records whether it answered. An alert is
// sent when the backend goes down and when it comes back.
func (s *Service) RunProbe() error {
	start := time.Now()
	logrus.Debug("Starting backend probe")

	ctx, cancel := context.WithTimeout(context.Background(), s.config.RequestTimeout)
	defer cancel()

	err := s.api.Ping(ctx)

	s.mu.Lock()
	firstProbe := s.metrics.LastProbe.IsZero()
	wasHealthy := s.metrics.BackendHealthy
	failuresBefore := s.metrics.ConsecutiveFails

	s.metrics.LastProbe = time.Now()
	s.metrics.LastProbeDuration = time.Since(start).String()
	if err != nil {
		s.metrics.BackendHealthy = false
		s.metrics.LastProbeError = err.Error()
		s.metrics.ProbeFailures++
		s.metrics.ConsecutiveFails++
	} else {
		s.metrics.BackendHealthy = true
		s.metrics.LastProbeError = ""
		s.metrics.ConsecutiveFails = 0
	}
	consecutive := s.metrics.ConsecutiveFails
	s.mu.Unlock()

	switch {
	case err != nil && (wasHealthy || firstProbe):
		s.alert(&models.Alert{
			Type:     models.AlertBackendDown,
			Message:  "The Leadlift backend stopped answering liveness probes.",
			Failures: consecutive,
			Error:    err.Error(),
		})
	case err == nil && !wasHealthy && !firstProbe:
		s.alert(&models.Alert{
			Type:     models.AlertBackendRecovered,
			Message:  "The Leadlift backend is answering liveness probes again.",
			Failures: failuresBefore,
		})
	}

	if err != nil {
		logrus.Errorf("Backend probe failed: %v", err)
		return err
	}

	logrus.Debugf("Backend probe completed in %v", time.Since(start))
	return nil
}

// alert runs on its own deadline, independent of the probe's
func (s *Service) alert(alert *models.Alert) {
	if s.notifier == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.config.RequestTimeout)
	defer cancel()

	alert.Backend = s.config.BackendURL
	alert.CreatedAt = time.Now()
	if err := s.notifier.SendAlert(ctx, alert); err != nil {
		logrus.Errorf("Failed to send %s alert: %v", alert.Type, err)
	}
}

// ArchiveSnapshot stores the current metrics and prunes snapshots beyond
// the configured retention, oldest first.
func (s *Service) ArchiveSnapshot(ctx context.Context) error {
	if s.archive == nil {
		return nil
	}

	name := snapshotPrefix + time.Now().UTC().Format("2006-01-02T15-04-05Z") + ".json"
	if err := s.archive.Store(ctx, name, []byte(s.GetMetrics())); err != nil {
		return fmt.Errorf("failed to store metrics snapshot: %w", err)
	}
	logrus.Infof("Archived metrics snapshot %s", name)

	names, err := s.archive.List(ctx, snapshotPrefix)
	if err != nil {
		return fmt.Errorf("failed to list metrics snapshots: %w", err)
	}
	sort.Strings(names)

	for len(names) > s.config.ArchiveRetention {
		if err := s.archive.Delete(ctx, names[0]); err != nil {
			return fmt.Errorf("failed to prune metrics snapshot: %w", err)
		}
		names = names[1:]
	}

	return nil
}

// BackendHealthy reports the result of the last probe. Before the first
// probe the backend is reported unhealthy.
func (s *Service) BackendHealthy() (healthy bool, lastProbe time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.metrics.BackendHealthy, s.metrics.LastProbe
}

// GetMetrics returns current metrics as JSON
func (s *Service) GetMetrics() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, _ := json.MarshalIndent(s.metrics, "", "  ")
	return string(data)
}
