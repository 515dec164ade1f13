package service_test

import (
	"path/filepath"
	"testing"

	"github.com/mdouchement/pantry/internal/database"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) database.Client {
	db, err := database.StormOpen(filepath.Join(t.TempDir(), "pantry.db"), "")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}
