package questions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newmeclass_backend/internals/databases/dbtest"
	"newmeclass_backend/internals/features/tests/questions/model"
	"newmeclass_backend/internals/features/tests/questions/repository"
	"newmeclass_backend/internals/features/tests/scoring"
)

func TestParseDefaultCatalog(t *testing.T) {
	seeds, err := Parse(defaultCatalog)
	require.NoError(t, err)

	tiers := map[string]int{}
	for _, s := range seeds {
		tiers[s.Tier]++
		assert.Equal(t, model.TypeMultipleChoice, s.Type)
		for _, o := range s.Options {
			assert.NotEmpty(t, o.Value, s.Code)
			assert.NotEmpty(t, o.DimensionScores, s.Code)
			for dim, pts := range o.DimensionScores {
				assert.LessOrEqual(t, pts, scoring.DefaultMaxPointsPerQuestion, "%s/%s", s.Code, dim)
				_, ok := scoring.DefaultTemplates().Template(dim)
				assert.True(t, ok, "dimensi %s tanpa template", dim)
			}
		}
	}
	assert.Equal(t, 5, tiers[model.TierFree])
	assert.Equal(t, 10, tiers[model.TierPaid])
}

func TestParseRejectsBadCatalog(t *testing.T) {
	_, err := Parse([]byte("questions:\n  - { code: X, tier: gold, text: hi, options: [{value: a}, {value: b}] }\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("questions:\n  - { code: X, tier: free, text: hi, options: [{value: a}] }\n"))
	assert.Error(t, err)

	dup := "questions:\n" +
		"  - { code: X, tier: free, text: a, options: [{value: a}, {value: b}] }\n" +
		"  - { code: X, tier: free, text: b, options: [{value: a}, {value: b}] }\n"
	_, err = Parse([]byte(dup))
	assert.Error(t, err)

	_, err = Parse([]byte("questions: ["))
	assert.Error(t, err)
}

func TestSeedQuestionsIsIdempotent(t *testing.T) {
	db := dbtest.Open(t, &model.QuestionModel{})

	created, updated, err := SeedDefaultQuestions(db)
	require.NoError(t, err)
	assert.Equal(t, 15, created)
	assert.Zero(t, updated)

	created, updated, err = SeedDefaultQuestions(db)
	require.NoError(t, err)
	assert.Zero(t, created)
	assert.Equal(t, 15, updated)

	free, err := repository.ListActive(db, model.TierFree, "")
	require.NoError(t, err)
	require.Len(t, free, 5)
	assert.Equal(t, "FREE-01", *free[0].QuestionCode)
	assert.Equal(t, 4, free[0].QuestionOptions[0].DimensionScores["extrovert"])
}
