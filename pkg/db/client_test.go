package db

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/openlot/dealership-backend/pkg/config"
)

func sqliteConfig() config.DBConfig {
	return config.DBConfig{
		DSN:    "file:client_test?mode=memory&cache=shared",
		Driver: config.DriverSQLite,
	}
}

func TestNewRequiresDSN(t *testing.T) {
	_, err := New(context.Background(), config.DBConfig{Driver: config.DriverSQLite}, nil)
	require.Error(t, err)
}

func TestNewSQLiteClient(t *testing.T) {
	client, err := New(context.Background(), sqliteConfig(), nil)
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, client.Ping(context.Background()))

	var fkEnabled int
	require.NoError(t, client.DB().Raw("PRAGMA foreign_keys").Scan(&fkEnabled).Error)
	assert.Equal(t, 1, fkEnabled)
}

func TestWithTxCommitsAndRollsBack(t *testing.T) {
	client, err := New(context.Background(), sqliteConfig(), nil)
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, client.DB().Exec("CREATE TABLE IF NOT EXISTS things (id INTEGER PRIMARY KEY)").Error)

	err = client.WithTx(context.Background(), func(tx *gorm.DB) error {
		return tx.Exec("INSERT INTO things (id) VALUES (1)").Error
	})
	require.NoError(t, err)

	boom := errors.New("boom")
	err = client.WithTx(context.Background(), func(tx *gorm.DB) error {
		if err := tx.Exec("INSERT INTO things (id) VALUES (2)").Error; err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	var count int64
	require.NoError(t, client.DB().Raw("SELECT COUNT(*) FROM things").Scan(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestIsForeignKeyViolation(t *testing.T) {
	assert.False(t, IsForeignKeyViolation(nil))
	assert.True(t, IsForeignKeyViolation(errors.New("FOREIGN KEY constraint failed")))
	assert.True(t, IsForeignKeyViolation(errors.New(`update or delete on table "owners" violates foreign key constraint "fk_dealerships_owner"`)))
	assert.False(t, IsForeignKeyViolation(errors.New("duplicate key value")))
}
