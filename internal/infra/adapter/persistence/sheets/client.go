// Package sheets implements the subscriber repository on top of the
// Google Sheets API. Each subscriber occupies one row in a fixed range.
package sheets

import (
	"context"
	"fmt"
	"os"
	"strings"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Config holds the credentials and target spreadsheet for the sheet store.
type Config struct {
	// SpreadsheetID is the ID from the spreadsheet URL.
	SpreadsheetID string

	// ServiceAccountEmail is the client email of the service account.
	ServiceAccountEmail string

	// PrivateKey is the PEM private key of the service account.
	// Escaped newlines ("\n") are unescaped on load so the key can be
	// passed through a single-line environment variable.
	PrivateKey string
}

// LoadConfigFromEnv loads the sheet store configuration from environment
// variables. All three variables are required:
//   - GOOGLE_SHEETS_ID
//   - GOOGLE_SERVICE_ACCOUNT_EMAIL
//   - GOOGLE_PRIVATE_KEY
func LoadConfigFromEnv() (Config, error) {
	cfg := Config{
		SpreadsheetID:       os.Getenv("GOOGLE_SHEETS_ID"),
		ServiceAccountEmail: os.Getenv("GOOGLE_SERVICE_ACCOUNT_EMAIL"),
		PrivateKey:          strings.ReplaceAll(os.Getenv("GOOGLE_PRIVATE_KEY"), `\n`, "\n"),
	}

	if cfg.SpreadsheetID == "" {
		return cfg, fmt.Errorf("GOOGLE_SHEETS_ID is required")
	}
	if cfg.ServiceAccountEmail == "" {
		return cfg, fmt.Errorf("GOOGLE_SERVICE_ACCOUNT_EMAIL is required")
	}
	if cfg.PrivateKey == "" {
		return cfg, fmt.Errorf("GOOGLE_PRIVATE_KEY is required")
	}

	return cfg, nil
}

// NewService builds an authenticated Sheets API service using a two-legged
// OAuth flow with the service account credentials.
func NewService(ctx context.Context, cfg Config) (*sheets.Service, error) {
	conf := &jwt.Config{
		Email:      cfg.ServiceAccountEmail,
		PrivateKey: []byte(cfg.PrivateKey),
		Scopes:     []string{sheets.SpreadsheetsScope},
		TokenURL:   google.JWTTokenURL,
	}

	svc, err := sheets.NewService(ctx, option.WithHTTPClient(conf.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return svc, nil
}
