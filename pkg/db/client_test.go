package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxscharwath/tacocrew-sub004/pkg/config"
)

func TestNewSQLiteDriver(t *testing.T) {
	client, err := New(context.Background(), config.DBConfig{
		Driver: config.DriverSQLite,
		DSN:    "file::memory:?cache=shared",
	}, nil)
	require.NoError(t, err)

	assert.NoError(t, client.Ping(context.Background()))
	assert.NoError(t, client.Close())
}

func TestNewUnsupportedDriver(t *testing.T) {
	_, err := New(context.Background(), config.DBConfig{
		Driver: "oracle",
		DSN:    "whatever",
	}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "oracle")
}

func TestNewRequiresDSN(t *testing.T) {
	_, err := New(context.Background(), config.DBConfig{Driver: config.DriverPostgres}, nil)
	require.Error(t, err)
}
