package sheets

import (
	"context"
	"testing"
	"time"

	"neuradigest/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/sheets/v4"
)

// fakeValuesAPI is an in-memory stand-in for the Sheets values API.
type fakeValuesAPI struct {
	values  [][]interface{}
	getErr  error
	updates map[string][][]interface{}
	appends [][][]interface{}
	calls   int
}

func newFakeValuesAPI(values [][]interface{}) *fakeValuesAPI {
	return &fakeValuesAPI{values: values, updates: map[string][][]interface{}{}}
}

func (f *fakeValuesAPI) Get(_ context.Context, _, _ string) (*sheets.ValueRange, error) {
	f.calls++
	if f.getErr != nil {
		return nil, f.getErr
	}
	return &sheets.ValueRange{Values: f.values}, nil
}

func (f *fakeValuesAPI) Append(_ context.Context, _, _ string, vr *sheets.ValueRange) error {
	f.appends = append(f.appends, vr.Values)
	return nil
}

func (f *fakeValuesAPI) Update(_ context.Context, _, rang string, vr *sheets.ValueRange) error {
	f.updates[rang] = vr.Values
	return nil
}

func sheetData() [][]interface{} {
	return [][]interface{}{
		{"Name", "Email", "Timestamp", "Status"},
		{"Alice", "alice@example.org", "2026-08-01T09:00:00Z", "subscribed"},
		{"Bob", "bob@example.org", "2026-08-02T10:30:00Z", "unsubscribed"},
		{"Carol", "Carol@Example.org"},
	}
}

func TestSubscriberRepo_List(t *testing.T) {
	repo := newSubscriberRepo(newFakeValuesAPI(sheetData()), "sheet-id")

	rows, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, 2, rows[0].Row)
	assert.Equal(t, "Alice", rows[0].Subscriber.Name)
	assert.Equal(t, "alice@example.org", rows[0].Subscriber.Email)
	assert.Equal(t, time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC), rows[0].Subscriber.SubscribedAt)
	assert.Equal(t, entity.StatusSubscribed, rows[0].Subscriber.Status)

	assert.Equal(t, 3, rows[1].Row)
	assert.Equal(t, entity.StatusUnsubscribed, rows[1].Subscriber.Status)

	// 短い行は残りを空文字として扱う
	assert.Equal(t, 4, rows[2].Row)
	assert.Equal(t, "", rows[2].Subscriber.Status)
	assert.True(t, rows[2].Subscriber.SubscribedAt.IsZero())
}

func TestSubscriberRepo_ListEmptySheet(t *testing.T) {
	repo := newSubscriberRepo(newFakeValuesAPI(nil), "sheet-id")

	rows, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestSubscriberRepo_ListMissingRange(t *testing.T) {
	api := newFakeValuesAPI(nil)
	api.getErr = &googleapi.Error{Code: 400, Message: "Unable to parse range: Sheet1!A:D"}
	repo := newSubscriberRepo(api, "sheet-id")

	rows, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestSubscriberRepo_FindByEmail(t *testing.T) {
	repo := newSubscriberRepo(newFakeValuesAPI(sheetData()), "sheet-id")

	t.Run("found case-insensitively", func(t *testing.T) {
		row, err := repo.FindByEmail(context.Background(), "carol@example.org")
		require.NoError(t, err)
		require.NotNil(t, row)
		assert.Equal(t, 4, row.Row)
		assert.Equal(t, "Carol", row.Subscriber.Name)
	})

	t.Run("not found", func(t *testing.T) {
		row, err := repo.FindByEmail(context.Background(), "nobody@example.org")
		require.NoError(t, err)
		assert.Nil(t, row)
	})
}

func TestSubscriberRepo_Append(t *testing.T) {
	api := newFakeValuesAPI(sheetData())
	repo := newSubscriberRepo(api, "sheet-id")

	sub := &entity.Subscriber{
		Name:         "Dave",
		Email:        "dave@example.org",
		SubscribedAt: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
		Status:       entity.StatusSubscribed,
	}
	require.NoError(t, repo.Append(context.Background(), sub))

	require.Len(t, api.appends, 1)
	assert.Equal(t, [][]interface{}{{
		"Dave", "dave@example.org", "2026-08-30T12:00:00Z", "subscribed",
	}}, api.appends[0])
}

func TestSubscriberRepo_Update(t *testing.T) {
	api := newFakeValuesAPI(sheetData())
	repo := newSubscriberRepo(api, "sheet-id")

	sub := &entity.Subscriber{
		Name:         "Bob",
		Email:        "bob@example.org",
		SubscribedAt: time.Date(2026, 8, 31, 8, 0, 0, 0, time.UTC),
		Status:       entity.StatusSubscribed,
	}
	require.NoError(t, repo.Update(context.Background(), 3, sub))

	got, ok := api.updates["Sheet1!A3:D3"]
	require.True(t, ok)
	assert.Equal(t, "subscribed", got[0][3])
}

func TestSubscriberRepo_UpdateRejectsBadRow(t *testing.T) {
	repo := newSubscriberRepo(newFakeValuesAPI(nil), "sheet-id")
	err := repo.Update(context.Background(), 0, &entity.Subscriber{})
	require.Error(t, err)
}

func TestSubscriberRepo_RetriesServerErrors(t *testing.T) {
	api := newFakeValuesAPI(nil)
	api.getErr = &googleapi.Error{Code: 503, Message: "backend unavailable"}
	repo := newSubscriberRepo(api, "sheet-id")
	repo.retryConfig.InitialDelay = time.Millisecond
	repo.retryConfig.MaxDelay = time.Millisecond

	_, err := repo.List(context.Background())
	require.Error(t, err)
	assert.Equal(t, repo.retryConfig.MaxAttempts, api.calls)
}
