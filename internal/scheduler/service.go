package scheduler

import (
	"context"

	"github.com/leadlift/leadlift-web/internal/config"
	"github.com/leadlift/leadlift-web/internal/monitoring"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Service handles scheduling of backend probes and metrics snapshots
type Service struct {
	config            *config.Config
	monitoringService *monitoring.Service
	cron              *cron.Cron
}

// NewService creates a new scheduler service
func NewService(cfg *config.Config, monitoringService *monitoring.Service) *Service {
	return &Service{
		config:            cfg,
		monitoringService: monitoringService,
		cron:              cron.New(cron.WithSeconds()),
	}
}

// Start registers the enabled jobs, runs one probe immediately and starts
// the cron loop
func (s *Service) Start() error {
	if !s.config.HealthCheckEnabled && !s.config.ArchiveEnabled() {
		logrus.Info("No scheduled jobs enabled")
		return nil
	}

	if s.config.HealthCheckEnabled {
		_, err := s.cron.AddFunc(s.config.HealthSchedule, func() {
			if err := s.monitoringService.RunProbe(); err != nil {
				logrus.Warnf("Scheduled backend probe failed: %v", err)
			}
		})
		if err != nil {
			return err
		}
	}

	if s.config.ArchiveEnabled() {
		_, err := s.cron.AddFunc(s.config.ArchiveSchedule, func() {
			ctx, cancel := context.WithTimeout(context.Background(), s.config.RequestTimeout)
			defer cancel()
			if err := s.monitoringService.ArchiveSnapshot(ctx); err != nil {
				logrus.Errorf("Metrics snapshot failed: %v", err)
			}
		})
		if err != nil {
			return err
		}
	}

	if s.config.HealthCheckEnabled {
		go func() {
			if err := s.monitoringService.RunProbe(); err != nil {
				logrus.Warnf("Initial backend probe failed: %v", err)
			}
		}()
	}

	s.cron.Start()
	logrus.Infof("Scheduler started with %d jobs", len(s.cron.Entries()))
	return nil
}

// Stop stops the scheduler
func (s *Service) Stop() {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
		logrus.Info("Scheduler stopped")
	}
}
