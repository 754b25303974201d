package memstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rems-service/internal/core/domain"
	"rems-service/internal/core/port"
)

type nopLogger struct{}

func (nopLogger) Info(msg string, fields port.Fields)             {}
func (nopLogger) Warn(msg string, fields port.Fields)             {}
func (nopLogger) Error(msg string, err error, fields port.Fields) {}
func (nopLogger) Debug(msg string, fields port.Fields)            {}
func (n nopLogger) WithFields(fields port.Fields) port.LoggerPort { return n }

func seedRecords() []domain.Property {
	return []domain.Property{
		{ID: "3", Title: "First", Location: "Quận 1", Price: 1, Type: "Căn hộ"},
		{ID: "12", Title: "Second", Location: "Quận 2", Price: 2, Type: "Nhà riêng"},
		{ID: "7", Title: "Third", Location: "Quận 7", Price: 3, Type: "Biệt thự"},
	}
}

func validDraft() domain.PropertyDraft {
	return domain.PropertyDraft{
		Title:    "Căn hộ mới",
		Location: "Quận 4, TP.HCM",
		Price:    2_500_000_000,
		Type:     "Căn hộ",
		Status:   domain.StatusForSale,
	}
}

func TestStore_ListPreservesInsertionOrder(t *testing.T) {
	store := NewPropertyStore(seedRecords(), nopLogger{})

	records := store.List(context.Background())

	require.Len(t, records, 3)
	assert.Equal(t, "3", records[0].ID)
	assert.Equal(t, "12", records[1].ID)
	assert.Equal(t, "7", records[2].ID)
}

func TestStore_Get(t *testing.T) {
	store := NewPropertyStore(seedRecords(), nopLogger{})

	record, err := store.Get(context.Background(), "12")
	require.NoError(t, err)
	assert.Equal(t, "Second", record.Title)

	_, err = store.Get(context.Background(), "999")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_AppendAssignsNextNumericID(t *testing.T) {
	store := NewPropertyStore(seedRecords(), nopLogger{})

	record, err := store.Append(context.Background(), validDraft(), []string{"/img/a.jpg", "/img/b.jpg"})
	require.NoError(t, err)

	// Max existing ID is 12, not the last one in insertion order.
	assert.Equal(t, "13", record.ID)
	assert.Equal(t, "/img/a.jpg", record.ImageURL)
	assert.Equal(t, []string{"/img/a.jpg", "/img/b.jpg"}, record.Images)

	records := store.List(context.Background())
	require.Len(t, records, 4)
	assert.Equal(t, "13", records[3].ID)
}

func TestStore_AppendRequiresAtLeastOneImage(t *testing.T) {
	store := NewPropertyStore(seedRecords(), nopLogger{})

	_, err := store.Append(context.Background(), validDraft(), nil)

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Len(t, store.List(context.Background()), 3)
}

func TestStore_AppendValidatesRequiredFields(t *testing.T) {
	store := NewPropertyStore(seedRecords(), nopLogger{})

	cases := []struct {
		name   string
		mutate func(*domain.PropertyDraft)
	}{
		{"missing title", func(d *domain.PropertyDraft) { d.Title = "" }},
		{"missing location", func(d *domain.PropertyDraft) { d.Location = "" }},
		{"missing type", func(d *domain.PropertyDraft) { d.Type = "" }},
		{"zero price", func(d *domain.PropertyDraft) { d.Price = 0 }},
		{"negative price", func(d *domain.PropertyDraft) { d.Price = -1 }},
		{"unknown status", func(d *domain.PropertyDraft) { d.Status = "listed" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			draft := validDraft()
			tc.mutate(&draft)

			_, err := store.Append(context.Background(), draft, []string{"/img/a.jpg"})

			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
	assert.Len(t, store.List(context.Background()), 3)
}

func TestStore_AppendFailsOnNonNumericExistingID(t *testing.T) {
	store := NewPropertyStore([]domain.Property{
		{ID: "abc", Title: "Broken", Location: "x", Price: 1, Type: "Căn hộ"},
	}, nopLogger{})

	_, err := store.Append(context.Background(), validDraft(), []string{"/img/a.jpg"})

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Len(t, store.List(context.Background()), 1)
}

func TestStore_VersionAndListeners(t *testing.T) {
	store := NewPropertyStore(seedRecords(), nopLogger{})
	require.Equal(t, uint64(0), store.Version())

	notified := 0
	store.Subscribe(func() { notified++ })

	_, err := store.Append(context.Background(), validDraft(), []string{"/img/a.jpg"})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), store.Version())
	assert.Equal(t, 1, notified)

	// A rejected draft mutates nothing and stays silent.
	_, err = store.Append(context.Background(), domain.PropertyDraft{}, nil)
	require.Error(t, err)
	assert.Equal(t, uint64(1), store.Version())
	assert.Equal(t, 1, notified)
}

func TestStore_ListReturnsACopy(t *testing.T) {
	store := NewPropertyStore(seedRecords(), nopLogger{})

	records := store.List(context.Background())
	records[0].Title = "mutated"

	assert.Equal(t, "First", store.List(context.Background())[0].Title)
}
