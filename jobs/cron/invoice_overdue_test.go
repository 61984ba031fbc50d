package cron

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

func seedTaggedKey(t *testing.T, orgID int64) string {
	key := config.CacheKey(orgID, "summary", []string{"2026-01-01"})
	require.NoError(t, config.Redis.SetKey(key, "cached", 0))
	require.NoError(t, config.Redis.TagKey(orgID, key))

	return key
}

func TestPromoteOverdueInvoices(t *testing.T) {
	mock, mr := setupCacheAndStore(t)

	key_promoted := seedTaggedKey(t, 7)
	key_skipped := seedTaggedKey(t, 8)

	rows := sqlmock.NewRows([]string{"id", "org_id", "status", "total_amount", "amount_paid"}).
		AddRow(11, 7, "sent", "100", "0").
		AddRow(12, 8, "partial", "80", "20")

	mock.ExpectQuery(`SELECT (.+) FROM "invoices"`).WillReturnRows(rows)
	mock.ExpectExec(`UPDATE "invoices" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "invoices" SET`).
		WillReturnError(gorm.ErrInvalidTransaction)

	promoteOverdueInvoices()

	// Only the org whose invoice actually persisted loses its cache.
	assert.False(t, mr.Exists(key_promoted))
	assert.True(t, mr.Exists(key_skipped))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPromoteOverdueInvoicesNothingDue(t *testing.T) {
	mock, mr := setupCacheAndStore(t)

	key := seedTaggedKey(t, 7)

	mock.ExpectQuery(`SELECT (.+) FROM "invoices"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "org_id", "status"}))

	promoteOverdueInvoices()

	assert.True(t, mr.Exists(key))
	assert.NoError(t, mock.ExpectationsWereMet())
}
