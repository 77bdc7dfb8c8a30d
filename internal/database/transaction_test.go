package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type txRecord struct {
	ID   uint `gorm:"primaryKey"`
	Name string
}

func openTxDB(t *testing.T) Database {
	t.Helper()
	ctx := context.Background()

	db, err := NewDatabase(ctx, "sqlite:///"+filepath.Join(t.TempDir(), "tx.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.Session(ctx).AutoMigrate(&txRecord{}))
	return db
}

func TestWithTransaction_Commits(t *testing.T) {
	db := openTxDB(t)
	ctx := context.Background()

	err := WithTransaction(ctx, db, func(tx *gorm.DB) error {
		return tx.Create(&txRecord{Name: "committed"}).Error
	})
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Session(ctx).Model(&txRecord{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestWithTransaction_RollsBackOnError(t *testing.T) {
	db := openTxDB(t)
	ctx := context.Background()

	boom := errors.New("boom")
	err := WithTransaction(ctx, db, func(tx *gorm.DB) error {
		if err := tx.Create(&txRecord{Name: "discarded"}).Error; err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	var count int64
	require.NoError(t, db.Session(ctx).Model(&txRecord{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestWithTransactionResult(t *testing.T) {
	db := openTxDB(t)
	ctx := context.Background()

	n, err := WithTransactionResult(ctx, db, func(tx *gorm.DB) (int, error) {
		records := []txRecord{{Name: "a"}, {Name: "b"}}
		if err := tx.Create(&records).Error; err != nil {
			return 0, err
		}
		return len(records), nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
