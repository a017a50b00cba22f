package seeds

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	database "newmeclass_backend/internals/databases"
	"newmeclass_backend/internals/databases/dbtest"
	settingsModel "newmeclass_backend/internals/features/content/settings/model"
	questionModel "newmeclass_backend/internals/features/tests/questions/model"
)

func TestRunAllSeeds(t *testing.T) {
	db := dbtest.Open(t)
	require.NoError(t, database.Migrate(db))

	require.NoError(t, RunAllSeeds(db))
	require.NoError(t, RunAllSeeds(db))

	var n int64
	require.NoError(t, db.Model(&questionModel.QuestionModel{}).Count(&n).Error)
	assert.EqualValues(t, 15, n)

	require.NoError(t, db.Model(&settingsModel.SiteSettingsModel{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}
