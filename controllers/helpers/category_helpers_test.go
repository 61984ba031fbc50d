package helpers

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/opencivic/ledger/config"
	"github.com/opencivic/ledger/models"
	"github.com/opencivic/ledger/types"
)

func setupCacheAndStore(t *testing.T) (sqlmock.Sqlmock, *miniredis.Miniredis) {
	config.NewLoggerService()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	config.Redis = &config.CacheService{
		Ctx:        context.Background(),
		Connection: redis.NewClient(&redis.Options{Addr: mr.Addr()}),
	}

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	config.DataBase = gdb

	return mock, mr
}

func seedTaggedKey(t *testing.T, orgID int64, resource string) string {
	key := config.CacheKey(orgID, resource, []string{"expense"})
	require.NoError(t, config.Redis.SetKey(key, "cached", 0))
	require.NoError(t, config.Redis.TagKey(orgID, key))

	return key
}

func TestApplyCategoryInvalidatesOrgCache(t *testing.T) {
	mock, mr := setupCacheAndStore(t)

	key := seedTaggedKey(t, 7, "reports:categories")

	mock.ExpectExec(`UPDATE "finance_categories" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	category := &models.FinanceCategory{
		ID:     3,
		OrgID:  7,
		Name:   "Events",
		Kind:   types.KindExpense,
		Active: true,
	}

	errors := new(Errors)
	payload := UpdateCategoryParams{Name: "Community Events"}

	updated := payload.ApplyCategory(category, errors)

	require.NotNil(t, updated)
	assert.Equal(t, 0, errors.Size())
	assert.False(t, mr.Exists(key))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyCategoryKeepsCacheOnStoreError(t *testing.T) {
	mock, mr := setupCacheAndStore(t)

	key := seedTaggedKey(t, 7, "reports:categories")

	mock.ExpectExec(`UPDATE "finance_categories" SET`).
		WillReturnError(gorm.ErrInvalidTransaction)

	category := &models.FinanceCategory{
		ID:     3,
		OrgID:  7,
		Name:   "Events",
		Kind:   types.KindExpense,
		Active: true,
	}

	errors := new(Errors)
	payload := UpdateCategoryParams{Name: "Community Events"}

	assert.Nil(t, payload.ApplyCategory(category, errors))
	assert.True(t, mr.Exists(key))
}
