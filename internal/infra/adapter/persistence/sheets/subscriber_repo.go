package sheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"neuradigest/internal/domain/entity"
	"neuradigest/internal/repository"
	"neuradigest/internal/resilience/circuitbreaker"
	"neuradigest/internal/resilience/retry"

	"github.com/sony/gobreaker"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/sheets/v4"
)

const (
	// readRange covers name, email, timestamp and status columns.
	readRange = "Sheet1!A:D"

	// sheetName is the tab holding subscriber rows.
	sheetName = "Sheet1"
)

// valuesAPI is the thin slice of the Sheets values API the repository needs.
// It exists so tests can substitute an in-memory fake.
type valuesAPI interface {
	Get(ctx context.Context, spreadsheetID, rang string) (*sheets.ValueRange, error)
	Append(ctx context.Context, spreadsheetID, rang string, vr *sheets.ValueRange) error
	Update(ctx context.Context, spreadsheetID, rang string, vr *sheets.ValueRange) error
}

// googleValuesAPI adapts *sheets.Service to valuesAPI.
type googleValuesAPI struct {
	svc *sheets.Service
}

func (g *googleValuesAPI) Get(ctx context.Context, spreadsheetID, rang string) (*sheets.ValueRange, error) {
	return g.svc.Spreadsheets.Values.Get(spreadsheetID, rang).Context(ctx).Do()
}

func (g *googleValuesAPI) Append(ctx context.Context, spreadsheetID, rang string, vr *sheets.ValueRange) error {
	_, err := g.svc.Spreadsheets.Values.Append(spreadsheetID, rang, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	return err
}

func (g *googleValuesAPI) Update(ctx context.Context, spreadsheetID, rang string, vr *sheets.ValueRange) error {
	_, err := g.svc.Spreadsheets.Values.Update(spreadsheetID, rang, vr).
		ValueInputOption("USER_ENTERED").
		Context(ctx).Do()
	return err
}

// SubscriberRepo implements repository.SubscriberRepository using a
// Google Sheets spreadsheet as the backing store.
type SubscriberRepo struct {
	api            valuesAPI
	spreadsheetID  string
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
}

// NewSubscriberRepo creates a repository bound to the given spreadsheet.
func NewSubscriberRepo(svc *sheets.Service, spreadsheetID string) *SubscriberRepo {
	return newSubscriberRepo(&googleValuesAPI{svc: svc}, spreadsheetID)
}

func newSubscriberRepo(api valuesAPI, spreadsheetID string) *SubscriberRepo {
	return &SubscriberRepo{
		api:            api,
		spreadsheetID:  spreadsheetID,
		circuitBreaker: circuitbreaker.New(circuitbreaker.SheetStoreConfig()),
		retryConfig:    retry.SheetStoreConfig(),
	}
}

// FindByEmail scans the sheet for a row whose email column matches the given
// normalized email. Returns nil when no row matches.
func (r *SubscriberRepo) FindByEmail(ctx context.Context, email string) (*repository.SubscriberRow, error) {
	rows, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	for i := range rows {
		if entity.NormalizeEmail(rows[i].Subscriber.Email) == email {
			return &rows[i], nil
		}
	}
	return nil, nil
}

// Append adds the subscriber as a new row after the last data row.
func (r *SubscriberRepo) Append(ctx context.Context, sub *entity.Subscriber) error {
	vr := &sheets.ValueRange{Values: [][]interface{}{rowValues(sub)}}

	err := r.execute(ctx, func() error {
		return r.api.Append(ctx, r.spreadsheetID, readRange, vr)
	})
	if err != nil {
		return fmt.Errorf("append subscriber row: %w", err)
	}
	return nil
}

// Update rewrites the four cells of the given 1-based row.
func (r *SubscriberRepo) Update(ctx context.Context, row int, sub *entity.Subscriber) error {
	if row < 1 {
		return fmt.Errorf("invalid sheet row %d", row)
	}

	rang := fmt.Sprintf("%s!A%d:D%d", sheetName, row, row)
	vr := &sheets.ValueRange{Values: [][]interface{}{rowValues(sub)}}

	err := r.execute(ctx, func() error {
		return r.api.Update(ctx, r.spreadsheetID, rang, vr)
	})
	if err != nil {
		return fmt.Errorf("update subscriber row %d: %w", row, err)
	}
	return nil
}

// List reads every data row from the sheet. The first row is treated as a
// header and skipped. Row numbers are 1-based sheet coordinates.
func (r *SubscriberRepo) List(ctx context.Context) ([]repository.SubscriberRow, error) {
	var vr *sheets.ValueRange

	err := r.execute(ctx, func() error {
		got, err := r.api.Get(ctx, r.spreadsheetID, readRange)
		if err != nil {
			if isMissingRange(err) {
				vr = &sheets.ValueRange{}
				return nil
			}
			return err
		}
		vr = got
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read subscriber rows: %w", err)
	}

	if vr == nil || len(vr.Values) == 0 {
		return nil, nil
	}

	rows := make([]repository.SubscriberRow, 0, len(vr.Values))
	for i, cells := range vr.Values {
		// 先頭行はヘッダー
		if i == 0 {
			continue
		}
		rows = append(rows, repository.SubscriberRow{
			Row:        i + 1,
			Subscriber: subscriberFromCells(cells),
		})
	}
	return rows, nil
}

// Ping verifies the spreadsheet is reachable by reading a single cell.
// Used by health and readiness probes.
func (r *SubscriberRepo) Ping(ctx context.Context) error {
	_, err := r.api.Get(ctx, r.spreadsheetID, sheetName+"!A1:A1")
	if err != nil && !isMissingRange(err) {
		return fmt.Errorf("ping subscriber store: %w", err)
	}
	return nil
}

// execute wraps a sheet operation with retry and circuit breaker handling.
func (r *SubscriberRepo) execute(ctx context.Context, op func() error) error {
	return retry.WithBackoff(ctx, r.retryConfig, func() error {
		_, err := r.circuitBreaker.Execute(func() (interface{}, error) {
			return nil, op()
		})
		if errors.Is(err, gobreaker.ErrOpenState) {
			slog.Warn("sheet store circuit breaker open, request rejected",
				slog.String("service", "sheet-store"),
				slog.String("state", r.circuitBreaker.State().String()))
			return err
		}
		return wrapSheetErr(err)
	})
}

// wrapSheetErr maps Google API status errors onto HTTPError so transient
// server-side failures are retried.
func wrapSheetErr(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return &retry.HTTPError{StatusCode: apiErr.Code, Message: apiErr.Message}
	}
	return err
}

// rowValues serializes a subscriber into the A:D column order.
func rowValues(sub *entity.Subscriber) []interface{} {
	return []interface{}{
		sub.Name,
		sub.Email,
		sub.SubscribedAt.UTC().Format(time.RFC3339),
		sub.Status,
	}
}

// subscriberFromCells deserializes a row, tolerating short rows and
// unparsable timestamps from hand-edited sheets.
func subscriberFromCells(cells []interface{}) entity.Subscriber {
	var sub entity.Subscriber

	sub.Name = cellString(cells, 0)
	sub.Email = cellString(cells, 1)
	if ts, err := time.Parse(time.RFC3339, cellString(cells, 2)); err == nil {
		sub.SubscribedAt = ts
	}
	sub.Status = cellString(cells, 3)

	return sub
}

func cellString(cells []interface{}, idx int) string {
	if idx >= len(cells) {
		return ""
	}
	s, _ := cells[idx].(string)
	return s
}

// isMissingRange reports whether the API error means the expected range or
// tab does not exist yet, which is treated as an empty store.
func isMissingRange(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == 400 || apiErr.Code == 404
	}
	return false
}
