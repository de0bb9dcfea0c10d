package subscription

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"neuradigest/internal/domain/entity"
	"neuradigest/internal/observability/metrics"
	"neuradigest/internal/repository"
	"neuradigest/internal/usecase/notify"
)

// Service implements the subscriber state transitions.
//
// Concurrent requests for the same email are serialized with a per-email
// mutex so a double-submit cannot append two rows. This only guards a
// single process; the row store itself has no transaction support.
type Service struct {
	Repo      repository.SubscriberRepository
	Validator *entity.EmailValidator
	Notify    notify.Service

	mu    sync.Mutex
	locks map[string]*emailLock
}

// emailLock is one in-flight serialization point. refs counts the
// goroutines holding or waiting on mu so the map entry can be freed
// once the last one leaves.
type emailLock struct {
	mu   sync.Mutex
	refs int
}

// NewService creates a subscription Service with the provided dependencies.
// Notify may be nil when welcome email is disabled.
func NewService(repo repository.SubscriberRepository, validator *entity.EmailValidator, notifySvc notify.Service) *Service {
	if validator == nil {
		validator = entity.NewEmailValidator()
	}
	return &Service{
		Repo:      repo,
		Validator: validator,
		Notify:    notifySvc,
		locks:     make(map[string]*emailLock),
	}
}

// Subscribe registers the name/email pair. A brand-new email appends a row;
// a previously unsubscribed email is resubscribed in place; an active
// subscription returns ErrAlreadySubscribed.
//
// The welcome email is dispatched asynchronously on success and its outcome
// never affects the returned error.
func (s *Service) Subscribe(ctx context.Context, name, email string) (*entity.Subscriber, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &entity.ValidationError{Field: "name", Message: "Name and email are required"}
	}

	normalized := entity.NormalizeEmail(email)
	if err := s.Validator.Validate(normalized); err != nil {
		return nil, err
	}

	unlock := s.lockEmail(normalized)
	defer unlock()

	existing, err := s.Repo.FindByEmail(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("look up subscriber: %w", err)
	}

	sub := &entity.Subscriber{
		Name:         name,
		Email:        normalized,
		SubscribedAt: time.Now().UTC(),
		Status:       entity.StatusSubscribed,
	}

	switch {
	case existing == nil:
		if err := s.Repo.Append(ctx, sub); err != nil {
			return nil, fmt.Errorf("append subscriber: %w", err)
		}
		metrics.RecordSubscription("subscribed")

	case existing.Subscriber.IsSubscribed():
		return nil, ErrAlreadySubscribed

	default:
		// 解除済みの行を同じ行のまま再購読にする
		if err := s.Repo.Update(ctx, existing.Row, sub); err != nil {
			return nil, fmt.Errorf("resubscribe: %w", err)
		}
		metrics.RecordSubscription("resubscribed")
	}

	slog.Info("subscriber registered",
		slog.String("email", normalized),
		slog.Bool("resubscribed", existing != nil))

	if s.Notify != nil {
		// fire-and-forget
		_ = s.Notify.NotifyWelcome(ctx, sub)
	}

	return sub, nil
}

// Unsubscribe marks the email's row as unsubscribed. The row is kept so a
// later resubscribe reuses it.
func (s *Service) Unsubscribe(ctx context.Context, email string) error {
	normalized := entity.NormalizeEmail(email)
	if err := s.Validator.Validate(normalized); err != nil {
		return err
	}

	unlock := s.lockEmail(normalized)
	defer unlock()

	existing, err := s.Repo.FindByEmail(ctx, normalized)
	if err != nil {
		return fmt.Errorf("look up subscriber: %w", err)
	}
	if existing == nil {
		return ErrNotSubscribed
	}
	if !existing.Subscriber.IsSubscribed() {
		return ErrAlreadyUnsubscribed
	}

	updated := existing.Subscriber
	updated.Status = entity.StatusUnsubscribed
	if err := s.Repo.Update(ctx, existing.Row, &updated); err != nil {
		return fmt.Errorf("unsubscribe: %w", err)
	}

	metrics.RecordSubscription("unsubscribed")
	slog.Info("subscriber unsubscribed",
		slog.String("email", normalized))
	return nil
}

// List returns every subscriber row for the admin listing.
func (s *Service) List(ctx context.Context) ([]repository.SubscriberRow, error) {
	rows, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list subscribers: %w", err)
	}
	return rows, nil
}

// Get returns the subscriber stored at the given sheet row, or
// ErrRowNotFound when the row holds no subscriber.
func (s *Service) Get(ctx context.Context, row int) (*repository.SubscriberRow, error) {
	rows, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list subscribers: %w", err)
	}
	for i := range rows {
		if rows[i].Row == row {
			return &rows[i], nil
		}
	}
	return nil, ErrRowNotFound
}

// lockEmail serializes operations on one normalized email. The returned
// func releases the lock and drops the map entry once no other goroutine
// is using it, so the lock table stays bounded by in-flight requests.
func (s *Service) lockEmail(email string) func() {
	s.mu.Lock()
	l, ok := s.locks[email]
	if !ok {
		l = &emailLock{}
		s.locks[email] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		s.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, email)
		}
		s.mu.Unlock()
	}
}
