package notify

import (
	"context"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"neuradigest/internal/domain/entity"

	"github.com/google/uuid"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const requestIDKey contextKey = "request_id"

const (
	circuitBreakerThreshold = 5                // Consecutive failures before opening
	circuitBreakerTimeout   = 5 * time.Minute  // Duration to keep circuit breaker open
	workerPoolTimeout       = 5 * time.Second  // Timeout for acquiring worker slot
	sendTimeout             = 30 * time.Second // Timeout for an individual send
)

// Service dispatches welcome emails to all enabled channels without blocking
// the caller. Delivery is best-effort: failures are logged and counted but
// never propagate back to the subscribe request.
type Service interface {
	// NotifyWelcome dispatches the welcome email for a new subscriber to
	// all enabled channels. It is non-blocking and always returns nil;
	// errors are handled internally.
	NotifyWelcome(ctx context.Context, sub *entity.Subscriber) error

	// GetChannelHealth returns the circuit breaker state of every channel
	// for monitoring and health endpoints.
	GetChannelHealth() []ChannelHealthStatus

	// Shutdown gracefully stops the service, waiting for in-flight sends
	// to complete or the context to expire.
	Shutdown(ctx context.Context) error
}

// ChannelHealthStatus represents the health of one delivery channel.
type ChannelHealthStatus struct {
	Name               string
	Enabled            bool
	CircuitBreakerOpen bool
	DisabledUntil      *time.Time // nil while the circuit is closed
}

type service struct {
	channels       []Channel
	workerPool     chan struct{} // Semaphore bounding concurrent sends
	channelHealth  map[string]*channelHealth
	healthMu       sync.RWMutex
	wg             sync.WaitGroup
	shutdownCtx    context.Context
	shutdownCancel context.CancelFunc
}

// channelHealth tracks circuit breaker state for one channel.
type channelHealth struct {
	consecutiveFailures int
	disabledUntil       time.Time
	mu                  sync.Mutex
}

// NewService creates a notification service with the given channels.
// maxConcurrent bounds the number of simultaneous sends.
func NewService(channels []Channel, maxConcurrent int) Service {
	shutdownCtx, shutdownCancel := context.WithCancel(context.Background())

	svc := &service{
		channels:       channels,
		workerPool:     make(chan struct{}, maxConcurrent),
		channelHealth:  make(map[string]*channelHealth),
		shutdownCtx:    shutdownCtx,
		shutdownCancel: shutdownCancel,
	}

	for _, ch := range channels {
		svc.channelHealth[ch.Name()] = &channelHealth{}
	}

	return svc
}

// NotifyWelcome implements Service.NotifyWelcome.
func (s *service) NotifyWelcome(ctx context.Context, sub *entity.Subscriber) error {
	if sub == nil || sub.Email == "" {
		slog.Warn("invalid welcome notification input",
			slog.Bool("nil_subscriber", sub == nil))
		return nil
	}

	// Inherit request ID from the HTTP layer when present
	requestID, ok := ctx.Value(requestIDKey).(string)
	if !ok || requestID == "" {
		requestID = uuid.New().String()
	}

	enabledCount := 0
	for _, ch := range s.channels {
		if ch.IsEnabled() {
			enabledCount++
		}
	}
	SetChannelsEnabled(float64(enabledCount))

	if enabledCount == 0 {
		slog.Debug("no mail channels enabled",
			slog.String("request_id", requestID),
			slog.String("email", sub.Email))
		return nil
	}

	slog.Info("dispatching welcome email",
		slog.String("request_id", requestID),
		slog.String("email", sub.Email),
		slog.Int("enabled_channels", enabledCount))

	for _, ch := range s.channels {
		if ch.IsEnabled() {
			s.wg.Add(1)
			go s.sendOnChannel(requestID, ch, sub)
		}
	}

	return nil
}

// sendOnChannel delivers through a single channel in a goroutine.
func (s *service) sendOnChannel(requestID string, channel Channel, sub *entity.Subscriber) {
	defer s.wg.Done()

	IncrementActiveGoroutines()
	defer DecrementActiveGoroutines()

	defer func() {
		if r := recover(); r != nil {
			slog.Error("panic in mail channel",
				slog.String("request_id", requestID),
				slog.String("channel", channel.Name()),
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())))
		}
	}()

	// Acquire worker slot, dropping the send if the pool stays full
	select {
	case s.workerPool <- struct{}{}:
		defer func() { <-s.workerPool }()
	case <-time.After(workerPoolTimeout):
		slog.Warn("welcome email dropped: worker pool full",
			slog.String("request_id", requestID),
			slog.String("channel", channel.Name()))
		RecordDropped(channel.Name(), "pool_full")
		return
	}

	health := s.getChannelHealth(channel.Name())
	health.mu.Lock()
	if time.Now().Before(health.disabledUntil) {
		slog.Warn("channel temporarily disabled by circuit breaker",
			slog.String("request_id", requestID),
			slog.String("channel", channel.Name()),
			slog.Time("disabled_until", health.disabledUntil))
		health.mu.Unlock()
		RecordDropped(channel.Name(), "circuit_open")
		return
	}
	health.mu.Unlock()

	ctx, cancel := context.WithTimeout(s.shutdownCtx, sendTimeout)
	defer cancel()
	ctx = context.WithValue(ctx, requestIDKey, requestID)

	startTime := time.Now()
	RecordDispatch(channel.Name())

	err := channel.Send(ctx, sub)
	duration := time.Since(startTime)

	health.mu.Lock()
	if err != nil {
		health.consecutiveFailures++
		if health.consecutiveFailures >= circuitBreakerThreshold {
			health.disabledUntil = time.Now().Add(circuitBreakerTimeout)
			slog.Error("circuit breaker opened for mail channel",
				slog.String("request_id", requestID),
				slog.String("channel", channel.Name()),
				slog.Int("consecutive_failures", health.consecutiveFailures))
			RecordCircuitBreakerOpen(channel.Name())
		}
	} else {
		health.consecutiveFailures = 0
	}
	health.mu.Unlock()

	if err != nil {
		RecordFailure(channel.Name(), duration)
		slog.Warn("welcome email send failed",
			slog.String("request_id", requestID),
			slog.String("channel", channel.Name()),
			slog.String("email", sub.Email),
			slog.Duration("send_duration", duration),
			slog.Any("error", err))
	} else {
		RecordSuccess(channel.Name(), duration)
		slog.Info("welcome email sent",
			slog.String("request_id", requestID),
			slog.String("channel", channel.Name()),
			slog.String("email", sub.Email),
			slog.Duration("send_duration", duration))
	}
}

func (s *service) getChannelHealth(channelName string) *channelHealth {
	s.healthMu.RLock()
	defer s.healthMu.RUnlock()
	return s.channelHealth[channelName]
}

// GetChannelHealth implements Service.GetChannelHealth.
func (s *service) GetChannelHealth() []ChannelHealthStatus {
	s.healthMu.RLock()
	defer s.healthMu.RUnlock()

	statuses := make([]ChannelHealthStatus, 0, len(s.channels))
	for _, ch := range s.channels {
		health := s.channelHealth[ch.Name()]

		health.mu.Lock()
		var disabledUntil *time.Time
		open := false
		if time.Now().Before(health.disabledUntil) {
			open = true
			until := health.disabledUntil
			disabledUntil = &until
		}
		health.mu.Unlock()

		statuses = append(statuses, ChannelHealthStatus{
			Name:               ch.Name(),
			Enabled:            ch.IsEnabled(),
			CircuitBreakerOpen: open,
			DisabledUntil:      disabledUntil,
		})
	}
	return statuses
}

// Shutdown implements Service.Shutdown.
func (s *service) Shutdown(ctx context.Context) error {
	slog.Info("shutting down notification service")

	s.shutdownCancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		slog.Info("notification service shutdown complete")
		return nil
	case <-ctx.Done():
		slog.Warn("notification service shutdown timeout")
		return ctx.Err()
	}
}
