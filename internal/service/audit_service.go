package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"vetclinic-service/internal/domain"
	"vetclinic-service/pkg/metrics"
)

type AuditRepository interface {
	Create(ctx context.Context, entry *domain.AuditLog) error
}

// AuditService persists booking and cancellation events off the request
// path. Entries are buffered; under pressure they are dropped, counted,
// and warned about rather than blocking a booking.
type AuditService struct {
	repo    AuditRepository
	log     *zap.Logger
	metrics *metrics.Collector
	entries chan *domain.AuditLog
	done    chan struct{}

	mu     sync.RWMutex
	closed bool
}

const auditBufferSize = 10_000

func NewAuditService(repo AuditRepository, log *zap.Logger, m *metrics.Collector) *AuditService {
	svc := &AuditService{
		repo:    repo,
		log:     log,
		metrics: m,
		entries: make(chan *domain.AuditLog, auditBufferSize),
		done:    make(chan struct{}),
	}
	go svc.worker()
	return svc
}

func (s *AuditService) Record(ctx context.Context, action domain.AuditAction, customerID, doctorID int64, appointmentAt time.Time) {
	entry := &domain.AuditLog{
		Action:        action,
		CustomerID:    customerID,
		DoctorID:      doctorID,
		AppointmentAt: appointmentAt,
		RequestID:     domain.RequestIDFrom(ctx),
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		s.metrics.AuditBufferDropped.Inc()
		s.log.Warn("audit service shut down, dropping entry",
			zap.String("action", string(action)),
			zap.Int64("customer_id", customerID),
		)
		return
	}

	select {
	case s.entries <- entry:
	default:
		s.metrics.AuditBufferDropped.Inc()
		s.log.Warn("audit log buffer full, dropping entry",
			zap.String("action", string(action)),
			zap.Int64("customer_id", customerID),
		)
	}
}

// Shutdown stops accepting entries, waits for the worker to drain the
// buffer, and is safe to call more than once.
func (s *AuditService) Shutdown() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	close(s.entries)
	s.mu.Unlock()

	select {
	case <-s.done:
	case <-time.After(10 * time.Second):
		s.log.Warn("audit service shutdown timed out; some entries may be lost")
	}
}

func (s *AuditService) worker() {
	defer close(s.done)
	for entry := range s.entries {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := s.repo.Create(ctx, entry); err != nil {
			s.log.Error("failed to persist audit log", zap.Error(err))
		} else {
			s.metrics.AuditEntriesTotal.Inc()
		}
		cancel()
	}
}
