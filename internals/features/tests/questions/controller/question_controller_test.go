package controller

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"newmeclass_backend/internals/databases/dbtest"
	"newmeclass_backend/internals/features/tests/questions/model"
	"newmeclass_backend/internals/features/tests/scoring"
)

type envelope struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	ErrorCode string          `json:"error_code"`
	Data      json.RawMessage `json:"data"`
}

func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	db := dbtest.Open(t, &model.QuestionModel{})
	ctrl := NewQuestionController(db)

	app := fiber.New()
	app.Get("/public/questions", ctrl.ListPublic)
	app.Get("/questions", ctrl.ListAdmin)
	app.Get("/questions/categories", ctrl.Categories)
	app.Put("/questions/reorder", ctrl.Reorder)
	app.Post("/questions", ctrl.Create)
	app.Get("/questions/:id", ctrl.GetByID)
	app.Put("/questions/:id", ctrl.Update)
	app.Delete("/questions/:id", ctrl.Delete)
	return app, db
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (int, envelope) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func seedQuestion(t *testing.T, db *gorm.DB, tier, category string, order int) model.QuestionModel {
	m := model.QuestionModel{
		QuestionText:     "Soal " + category,
		QuestionCategory: category,
		QuestionTier:     tier,
		QuestionOrder:    order,
		QuestionOptions: []scoring.Option{
			{Value: "a", Label: "Setuju", DimensionScores: map[string]int{"api": 4}},
			{Value: "b", Label: "Tidak", Score: 1},
		},
	}
	require.NoError(t, db.Create(&m).Error)
	return m
}

func TestCreateQuestion(t *testing.T) {
	app, db := setupApp(t)

	status, env := doJSON(t, app, "POST", "/questions", map[string]any{
		"question_text":     "Saya suka memimpin",
		"question_category": "Personality",
		"question_tier":     "free",
		"question_options": []map[string]any{
			{"value": "a", "label": "Ya", "dimension_scores": map[string]int{"api": 4}},
			{"value": "b", "label": "Tidak", "score": 1},
		},
	})
	require.Equal(t, fiber.StatusCreated, status, env.Message)

	var got model.QuestionModel
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "personality", got.QuestionCategory)
	assert.Equal(t, model.TypeMultipleChoice, got.QuestionType)
	assert.True(t, got.QuestionIsActive)

	var stored model.QuestionModel
	require.NoError(t, db.First(&stored, "question_id = ?", got.QuestionID).Error)
	require.Len(t, stored.QuestionOptions, 2)
	assert.Equal(t, 4, stored.QuestionOptions[0].DimensionScores["api"])
}

func TestCreateQuestion_Rejects(t *testing.T) {
	app, _ := setupApp(t)

	t.Run("duplicate option value", func(t *testing.T) {
		status, env := doJSON(t, app, "POST", "/questions", map[string]any{
			"question_text":     "Soal",
			"question_category": "talent",
			"question_tier":     "paid",
			"question_options": []map[string]any{
				{"value": "a", "label": "Ya"},
				{"value": "a", "label": "Tidak"},
			},
		})
		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.False(t, env.Success)
	})

	t.Run("invalid tier", func(t *testing.T) {
		status, env := doJSON(t, app, "POST", "/questions", map[string]any{
			"question_text":     "Soal",
			"question_category": "talent",
			"question_tier":     "gold",
			"question_options":  []map[string]any{{"value": "a", "label": "Ya"}},
		})
		assert.Equal(t, fiber.StatusUnprocessableEntity, status)
		assert.Equal(t, "VALIDATION_ERROR", env.ErrorCode)
	})

	t.Run("no options", func(t *testing.T) {
		status, _ := doJSON(t, app, "POST", "/questions", map[string]any{
			"question_text":     "Soal",
			"question_category": "talent",
			"question_tier":     "free",
		})
		assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	})
}

func TestListPublic_HidesScoresAndFiltersTier(t *testing.T) {
	app, db := setupApp(t)
	seedQuestion(t, db, model.TierFree, "personality", 2)
	seedQuestion(t, db, model.TierFree, "talent", 1)
	seedQuestion(t, db, model.TierPaid, "skills", 1)
	inactive := seedQuestion(t, db, model.TierFree, "interest", 0)
	require.NoError(t, db.Model(&inactive).Update("question_is_active", false).Error)

	status, env := doJSON(t, app, "GET", "/public/questions?tier=free", nil)
	require.Equal(t, fiber.StatusOK, status)

	var rows []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "talent", rows[0]["question_category"])
	assert.Equal(t, "personality", rows[1]["question_category"])

	opts := rows[0]["question_options"].([]any)
	first := opts[0].(map[string]any)
	assert.NotContains(t, first, "dimension_scores")
	assert.NotContains(t, first, "score")

	status, _ = doJSON(t, app, "GET", "/public/questions?tier=gold", nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestUpdateAndDeleteQuestion(t *testing.T) {
	app, db := setupApp(t)
	q := seedQuestion(t, db, model.TierFree, "personality", 0)

	status, env := doJSON(t, app, "PUT", "/questions/"+q.QuestionID.String(), map[string]any{
		"question_text":      "Diubah",
		"question_is_active": false,
	})
	require.Equal(t, fiber.StatusOK, status, env.Message)

	var stored model.QuestionModel
	require.NoError(t, db.First(&stored, "question_id = ?", q.QuestionID).Error)
	assert.Equal(t, "Diubah", stored.QuestionText)
	assert.False(t, stored.QuestionIsActive)
	assert.Len(t, stored.QuestionOptions, 2)

	status, _ = doJSON(t, app, "DELETE", "/questions/"+q.QuestionID.String(), nil)
	assert.Equal(t, fiber.StatusOK, status)

	status, _ = doJSON(t, app, "GET", "/questions/"+q.QuestionID.String(), nil)
	assert.Equal(t, fiber.StatusNotFound, status)

	status, _ = doJSON(t, app, "DELETE", "/questions/"+q.QuestionID.String(), nil)
	assert.Equal(t, fiber.StatusNotFound, status)

	status, _ = doJSON(t, app, "GET", "/questions/not-a-uuid", nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestReorderAndCategories(t *testing.T) {
	app, db := setupApp(t)

	status, env := doJSON(t, app, "GET", "/questions/categories", nil)
	require.Equal(t, fiber.StatusOK, status)
	var cats []string
	require.NoError(t, json.Unmarshal(env.Data, &cats))
	assert.Equal(t, model.DefaultCategories, cats)

	a := seedQuestion(t, db, model.TierFree, "talent", 0)
	b := seedQuestion(t, db, model.TierFree, "personality", 1)

	status, _ = doJSON(t, app, "PUT", "/questions/reorder", map[string]any{
		"items": []map[string]any{
			{"question_id": a.QuestionID, "question_order": 5},
			{"question_id": b.QuestionID, "question_order": 0},
		},
	})
	require.Equal(t, fiber.StatusOK, status)

	status, env = doJSON(t, app, "GET", "/questions?tier=free", nil)
	require.Equal(t, fiber.StatusOK, status)
	var rows []model.QuestionModel
	require.NoError(t, json.Unmarshal(env.Data, &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, b.QuestionID, rows[0].QuestionID)

	status, env = doJSON(t, app, "GET", "/questions/categories", nil)
	require.Equal(t, fiber.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Data, &cats))
	assert.Equal(t, []string{"personality", "talent"}, cats)
}
