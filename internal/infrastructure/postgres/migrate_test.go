package postgres

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigraciones_EmbebidasConUpYDown(t *testing.T) {
	files, err := fs.Glob(migrationsFS, migrationsDir+"/*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, name := range files {
		body, err := fs.ReadFile(migrationsFS, name)
		require.NoError(t, err)
		assert.Contains(t, string(body), "-- +goose Up", name)
		assert.Contains(t, string(body), "-- +goose Down", name)
	}
}

func TestBucketColumns_CubreTodosLosBuckets(t *testing.T) {
	seen := map[string]bool{}
	for b, col := range bucketColumns {
		assert.NotEmpty(t, col, b)
		assert.False(t, strings.ContainsAny(col, " ;'\""), col)
		seen[col] = true
	}
	assert.Len(t, seen, 5)
}
