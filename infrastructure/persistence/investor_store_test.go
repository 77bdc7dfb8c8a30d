package persistence

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adavadkardhruv13/Polaris-backend/domain/investor"
	"github.com/adavadkardhruv13/Polaris-backend/internal/config"
	"github.com/adavadkardhruv13/Polaris-backend/internal/database"
	"github.com/adavadkardhruv13/Polaris-backend/internal/log"
)

func openStore(t *testing.T) InvestorStore {
	store, _ := openStoreWithLog(t)
	return store
}

func openStoreWithLog(t *testing.T) (InvestorStore, *bytes.Buffer) {
	t.Helper()
	ctx := context.Background()

	db, err := database.NewDatabase(ctx, "sqlite:///"+filepath.Join(t.TempDir(), "investors.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, Migrate(ctx, db))

	buf := &bytes.Buffer{}
	logger := log.NewLoggerWithWriter(buf, config.LogFormatJSON, "WARN")
	return NewInvestorStore(db, logger), buf
}

func mustInvestor(t *testing.T, name string, opts ...investor.Option) investor.Investor {
	t.Helper()
	inv, err := investor.New(name, opts...)
	require.NoError(t, err)
	return inv
}

func TestInvestorStore_CreateAndGet(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	inv := mustInvestor(t, "Sequoia Capital",
		investor.WithType("VC"),
		investor.WithGlobalHQ("Menlo Park"),
		investor.WithStageOfInvestment("Seed"),
		investor.WithWebsite("https://sequoiacap.com"),
	)

	id, err := store.Create(ctx, inv)
	require.NoError(t, err)
	assert.Equal(t, inv.ID(), id)

	got, err := store.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Sequoia Capital", got.Name())
	assert.Equal(t, "VC", got.Type())
	assert.Equal(t, "Menlo Park", got.GlobalHQ())
}

func TestInvestorStore_GetByID_NotFound(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	_, err := store.GetByID(ctx, "b2f6c1f0-0000-4000-8000-000000000000")
	assert.ErrorIs(t, err, investor.ErrNotFound)
}

func TestInvestorStore_GetByID_InvalidID(t *testing.T) {
	store := openStore(t)

	_, err := store.GetByID(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, investor.ErrNotFound)
}

func TestInvestorStore_BulkCreate(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	invs := []investor.Investor{
		mustInvestor(t, "Accel"),
		mustInvestor(t, "Index Ventures"),
		mustInvestor(t, "a16z"),
	}

	n, err := store.BulkCreate(ctx, invs)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	page, err := store.List(ctx, investor.ListRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.TotalCount)
}

func TestInvestorStore_BulkCreate_Empty(t *testing.T) {
	store := openStore(t)

	n, err := store.BulkCreate(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func seedCatalog(t *testing.T, store InvestorStore) {
	t.Helper()
	ctx := context.Background()

	seed := []investor.Investor{
		mustInvestor(t, "Sequoia Capital", investor.WithType("VC"), investor.WithGlobalHQ("Menlo Park"), investor.WithStageOfInvestment("Seed")),
		mustInvestor(t, "Accel", investor.WithType("VC"), investor.WithGlobalHQ("Palo Alto"), investor.WithStageOfInvestment("Series A")),
		mustInvestor(t, "Naval Ravikant", investor.WithType("Angel"), investor.WithGlobalHQ("San Francisco"), investor.WithStageOfInvestment("Pre-seed")),
		mustInvestor(t, "SoftBank Vision Fund", investor.WithType("Corporate"), investor.WithGlobalHQ("Tokyo"), investor.WithStageOfInvestment("Growth")),
	}
	_, err := store.BulkCreate(ctx, seed)
	require.NoError(t, err)
}

func TestInvestorStore_List_SearchIsCaseInsensitiveOR(t *testing.T) {
	store := openStore(t)
	seedCatalog(t, store)

	// "angel" matches Naval's type; "tokyo" matches SoftBank's HQ.
	page, err := store.List(context.Background(), investor.ListRequest{
		Filters: investor.Filters{Search: "ANGEL"},
	})
	require.NoError(t, err)
	require.Len(t, page.Investors, 1)
	assert.Equal(t, "Naval Ravikant", page.Investors[0].Name())

	page, err = store.List(context.Background(), investor.ListRequest{
		Filters: investor.Filters{Search: "tokyo"},
	})
	require.NoError(t, err)
	require.Len(t, page.Investors, 1)
	assert.Equal(t, "SoftBank Vision Fund", page.Investors[0].Name())
}

func TestInvestorStore_List_FieldFiltersAreANDed(t *testing.T) {
	store := openStore(t)
	seedCatalog(t, store)

	page, err := store.List(context.Background(), investor.ListRequest{
		Filters: investor.Filters{Type: "vc", Location: "palo"},
	})
	require.NoError(t, err)
	require.Len(t, page.Investors, 1)
	assert.Equal(t, "Accel", page.Investors[0].Name())
}

func TestInvestorStore_List_SortDescending(t *testing.T) {
	store := openStore(t)
	seedCatalog(t, store)

	page, err := store.List(context.Background(), investor.ListRequest{
		SortBy:    investor.SortByName,
		SortOrder: investor.SortOrderDesc,
	})
	require.NoError(t, err)
	require.NotEmpty(t, page.Investors)
	assert.Equal(t, "SoftBank Vision Fund", page.Investors[0].Name())
}

func TestInvestorStore_List_Pagination(t *testing.T) {
	store := openStore(t)
	seedCatalog(t, store)

	page, err := store.List(context.Background(), investor.ListRequest{Page: 1, PageSize: 3})
	require.NoError(t, err)

	assert.Len(t, page.Investors, 3)
	assert.Equal(t, int64(4), page.TotalCount)
	assert.Equal(t, 2, page.TotalPages)
	assert.True(t, page.HasNext)
	assert.False(t, page.HasPrev)

	page, err = store.List(context.Background(), investor.ListRequest{Page: 2, PageSize: 3})
	require.NoError(t, err)
	assert.Len(t, page.Investors, 1)
	assert.False(t, page.HasNext)
	assert.True(t, page.HasPrev)
}

func TestInvestorStore_Update(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	inv := mustInvestor(t, "Accel", investor.WithStageOfInvestment("Seed"))
	id, err := store.Create(ctx, inv)
	require.NoError(t, err)

	stage := "Series B"
	changed, err := store.Update(ctx, id, investor.Update{StageOfInvestment: &stage})
	require.NoError(t, err)
	assert.True(t, changed)

	got, err := store.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Series B", got.StageOfInvestment())
	assert.Equal(t, "Accel", got.Name())
	assert.True(t, got.UpdatedAt().After(got.CreatedAt()))
}

func TestInvestorStore_Update_InvalidID(t *testing.T) {
	store := openStore(t)

	name := "x"
	changed, err := store.Update(context.Background(), "bogus", investor.Update{Name: &name})
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestInvestorStore_Delete(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	id, err := store.Create(ctx, mustInvestor(t, "Short Lived Fund"))
	require.NoError(t, err)

	removed, err := store.Delete(ctx, id)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = store.Delete(ctx, id)
	require.NoError(t, err)
	assert.False(t, removed)

	_, err = store.GetByID(ctx, id)
	assert.ErrorIs(t, err, investor.ErrNotFound)
}

func TestInvestorStore_List_SkipsMalformedRowsViaLogger(t *testing.T) {
	store, logs := openStoreWithLog(t)
	ctx := context.Background()

	_, err := store.Create(ctx, mustInvestor(t, "Sequoia Capital"))
	require.NoError(t, err)

	// A row with no name cannot be hydrated into a valid record.
	broken := InvestorModel{ID: "3f0d9a52-6a48-4a46-9e45-0f4a8f7f2b11"}
	require.NoError(t, store.db.Session(ctx).Create(&broken).Error)

	page, err := store.List(ctx, investor.ListRequest{})
	require.NoError(t, err)

	require.Len(t, page.Investors, 1)
	assert.Equal(t, "Sequoia Capital", page.Investors[0].Name())
	assert.Contains(t, logs.String(), "skipping malformed investor row")
}
