package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newmeclass_backend/internals/databases/dbtest"
	resultModel "newmeclass_backend/internals/features/tests/results/model"
)

func TestMigrateCreatesAllTables(t *testing.T) {
	db := dbtest.Open(t)
	require.NoError(t, Migrate(db))
	// kedua kali tetap aman
	require.NoError(t, Migrate(db))

	for _, m := range Models() {
		assert.True(t, db.Migrator().HasTable(m), "%T", m)
	}
	assert.True(t, db.Migrator().HasIndex(&resultModel.TestAttemptModel{}, "uq_test_attempts_free_per_user"))
}
