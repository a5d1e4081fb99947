package main

import (
	"context"
	"path/filepath"
	"testing"

	"pet-registry/internal/adapters/storage/sqlstore"
	"pet-registry/internal/platform/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenStore_Memory(t *testing.T) {
	st, err := openStore(context.Background(), config.Storage{Driver: config.DriverMemory}, true)
	require.NoError(t, err)
	assert.Nil(t, st.DB)
	st.Close()
}

func TestOpenStore_SQLiteMigrates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pets.db")
	st, err := openStore(context.Background(), config.Storage{Driver: config.DriverSQLite, SQLitePath: path}, true)
	require.NoError(t, err)
	defer st.Close()

	assert.Equal(t, sqlstore.SQLite, st.Dialect)

	var n int
	require.NoError(t, st.DB.QueryRow(`SELECT COUNT(*) FROM pets`).Scan(&n))
	assert.Equal(t, 0, n)
}

func TestOpenStore_UnknownDriver(t *testing.T) {
	_, err := openStore(context.Background(), config.Storage{Driver: "mongo"}, false)
	assert.Error(t, err)
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	root := newRootCmd()
	names := []string{}
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "serve")
	assert.Contains(t, names, "migrate")
	assert.NotNil(t, root.PersistentFlags().Lookup("config"))
}
