package notifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"neuradigest/internal/domain/entity"
	"neuradigest/internal/resilience/circuitbreaker"
	"neuradigest/internal/resilience/retry"
	"neuradigest/pkg/config"

	"github.com/sony/gobreaker"
	"github.com/wneessen/go-mail"
)

// SMTPConfig holds the connection settings for the SMTP mailer.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string

	// FromAddress and FromName form the sender identity.
	FromAddress string
	FromName    string

	// RatePerSecond and Burst bound the outbound send rate.
	RatePerSecond float64
	Burst         int
}

// LoadSMTPConfigFromEnv loads SMTP settings from environment variables.
// SMTP_HOST and MAIL_FROM_ADDRESS are required; everything else has a default.
func LoadSMTPConfigFromEnv() (SMTPConfig, error) {
	cfg := SMTPConfig{
		Host:          config.GetEnvString("SMTP_HOST", ""),
		Port:          config.GetEnvInt("SMTP_PORT", 587),
		Username:      config.GetEnvString("SMTP_USERNAME", ""),
		Password:      config.GetEnvString("SMTP_PASSWORD", ""),
		FromAddress:   config.GetEnvString("MAIL_FROM_ADDRESS", ""),
		FromName:      config.GetEnvString("MAIL_FROM_NAME", "NeuraDigest"),
		RatePerSecond: 1.0,
		Burst:         3,
	}

	if cfg.Host == "" {
		return cfg, fmt.Errorf("SMTP_HOST is required")
	}
	if cfg.FromAddress == "" {
		return cfg, fmt.Errorf("MAIL_FROM_ADDRESS is required")
	}
	return cfg, nil
}

// sender is the slice of the go-mail client used by the mailer.
// It exists so tests can substitute a fake transport.
type sender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

// SMTPMailer delivers email over SMTP using the go-mail client.
// It includes rate limiting, retry and circuit breaker logic.
type SMTPMailer struct {
	client         sender
	cfg            SMTPConfig
	rateLimiter    *RateLimiter
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
}

// NewSMTPMailer creates an SMTPMailer from the given configuration.
func NewSMTPMailer(cfg SMTPConfig) (*SMTPMailer, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password))
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}

	return newSMTPMailer(client, cfg), nil
}

func newSMTPMailer(client sender, cfg SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		client:         client,
		cfg:            cfg,
		rateLimiter:    NewRateLimiter(cfg.RatePerSecond, cfg.Burst),
		circuitBreaker: circuitbreaker.New(circuitbreaker.MailSendConfig()),
		retryConfig:    retry.MailConfig(),
	}
}

// SendWelcome delivers the welcome email to the subscriber's address.
func (m *SMTPMailer) SendWelcome(ctx context.Context, sub *entity.Subscriber) error {
	msg, err := m.buildWelcome(sub)
	if err != nil {
		return err
	}

	if err := m.rateLimiter.Allow(ctx); err != nil {
		return fmt.Errorf("mail rate limiter: %w", err)
	}

	sendErr := retry.WithBackoff(ctx, m.retryConfig, func() error {
		_, err := m.circuitBreaker.Execute(func() (interface{}, error) {
			return nil, m.client.DialAndSendWithContext(ctx, msg)
		})
		if errors.Is(err, gobreaker.ErrOpenState) {
			slog.Warn("mail circuit breaker open, send rejected",
				slog.String("service", "mail-send"),
				slog.String("state", m.circuitBreaker.State().String()))
		}
		return err
	})
	if sendErr != nil {
		return fmt.Errorf("send welcome email: %w", sendErr)
	}

	slog.Info("welcome email sent",
		slog.String("to", sub.Email))
	return nil
}

// buildWelcome assembles the multipart welcome message.
func (m *SMTPMailer) buildWelcome(sub *entity.Subscriber) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.FromFormat(m.cfg.FromName, m.cfg.FromAddress); err != nil {
		return nil, fmt.Errorf("set sender: %w", err)
	}
	if err := msg.To(sub.Email); err != nil {
		return nil, fmt.Errorf("set recipient: %w", err)
	}

	msg.Subject(WelcomeSubject)
	msg.SetBodyString(mail.TypeTextPlain, welcomeText(sub))
	msg.AddAlternativeString(mail.TypeTextHTML, welcomeHTML(sub))
	return msg, nil
}
