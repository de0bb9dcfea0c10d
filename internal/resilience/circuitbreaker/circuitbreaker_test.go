package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"
)

func TestCircuitBreaker_Execute_success(t *testing.T) {
	cb := New(DefaultConfig("test"))

	got, err := cb.Execute(func() (interface{}, error) {
		return 42, nil
	})
	if err != nil {
		t.Fatalf("Execute err=%v", err)
	}
	if got.(int) != 42 {
		t.Errorf("result = %v, want 42", got)
	}
	if cb.IsOpen() {
		t.Error("circuit should be closed after success")
	}
}

func TestCircuitBreaker_opensAfterFailures(t *testing.T) {
	cfg := Config{
		Name:             "trip-test",
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          time.Minute,
		FailureThreshold: 0.5,
		MinRequests:      2,
	}
	cb := New(cfg)

	boom := errors.New("boom")
	for i := 0; i < 3; i++ {
		_, _ = cb.Execute(func() (interface{}, error) { return nil, boom })
	}

	if !cb.IsOpen() {
		t.Fatalf("circuit state = %v, want open", cb.State())
	}

	_, err := cb.Execute(func() (interface{}, error) { return nil, nil })
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("err = %v, want ErrOpenState", err)
	}
}

func TestConfigs_haveNames(t *testing.T) {
	for _, cfg := range []Config{FeedFetchConfig(), SheetStoreConfig(), MailSendConfig()} {
		if cfg.Name == "" {
			t.Error("config is missing a name")
		}
		if cfg.FailureThreshold <= 0 || cfg.FailureThreshold > 1 {
			t.Errorf("%s: failure threshold %v out of range", cfg.Name, cfg.FailureThreshold)
		}
	}
}
