package workers

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

// ScannerConfig configures the background scan loop
type ScannerConfig struct {
	CheckInterval time.Duration
	InitialDelay  time.Duration
}

// SetDefaults fills unset fields with production defaults
func (c *ScannerConfig) SetDefaults() {
	if c.CheckInterval == 0 {
		c.CheckInterval = 30 * time.Minute
	}
	if c.InitialDelay == 0 {
		c.InitialDelay = 10 * time.Second
	}
}

// Scanner runs the launch processor on a schedule
type Scanner struct {
	ctx       context.Context
	cancel    context.CancelFunc
	processor *LaunchProcessor
	config    ScannerConfig
	paused    atomic.Bool
	logger    *slog.Logger
}

// NewScanner creates a background scanner around the given processor
func NewScanner(processor *LaunchProcessor, config ScannerConfig, logger *slog.Logger) *Scanner {
	config.SetDefaults()
	ctx, cancel := context.WithCancel(context.Background())
	return &Scanner{
		ctx:       ctx,
		cancel:    cancel,
		processor: processor,
		config:    config,
		logger:    logger,
	}
}

// Start begins the background scan loop
func (s *Scanner) Start() {
	s.logger.Info("Starting inbox scanner",
		"check_interval", s.config.CheckInterval)
	go s.loop()
}

// Stop gracefully stops the scanner
func (s *Scanner) Stop() {
	s.logger.Info("Stopping inbox scanner")
	s.cancel()
}

// Pause temporarily skips scheduled runs
func (s *Scanner) Pause() {
	s.paused.Store(true)
	s.logger.Info("Inbox scanner paused")
}

// Resume re-enables scheduled runs
func (s *Scanner) Resume() {
	s.paused.Store(false)
	s.logger.Info("Inbox scanner resumed")
}

// IsRunning reports whether the scanner has not been stopped
func (s *Scanner) IsRunning() bool {
	select {
	case <-s.ctx.Done():
		return false
	default:
		return true
	}
}

func (s *Scanner) loop() {
	ticker := time.NewTicker(s.config.CheckInterval)
	defer ticker.Stop()

	initialDelay := time.NewTimer(s.config.InitialDelay)
	defer initialDelay.Stop()

	for {
		select {
		case <-s.ctx.Done():
			s.logger.Info("Inbox scan loop stopped")
			return

		case <-initialDelay.C:
			s.runOnce()

		case <-ticker.C:
			if !s.paused.Load() {
				s.runOnce()
			}
		}
	}
}

func (s *Scanner) runOnce() {
	if _, err := s.processor.Run(s.ctx); err != nil {
		s.logger.Error("Scheduled scan failed", "error", err)
	}
}
