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
	"newmeclass_backend/internals/features/content/articles/dto"
	"newmeclass_backend/internals/features/content/articles/model"
	helper "newmeclass_backend/internals/helpers"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setup(t *testing.T) (*fiber.App, *gorm.DB) {
	db := dbtest.Open(t, &model.ArticleModel{})
	ctrl := NewArticleController(db, helper.NewLocalStorage(t.TempDir(), "http://localhost:3000"))

	app := fiber.New()
	pub := app.Group("/public/articles")
	pub.Get("/", ctrl.ListPublic)
	pub.Get("/:slug", ctrl.GetPublic)

	adm := app.Group("/admin/articles")
	adm.Get("/", ctrl.ListAdmin)
	adm.Get("/stats", ctrl.Stats)
	adm.Post("/", ctrl.Create)
	adm.Get("/:id", ctrl.GetByID)
	adm.Put("/:id", ctrl.Update)
	adm.Delete("/:id", ctrl.Delete)
	return app, db
}

func call(t *testing.T, app *fiber.App, method, path string, body any) (*envelope, int) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return &env, resp.StatusCode
}

func create(t *testing.T, app *fiber.App, body map[string]any) model.ArticleModel {
	env, code := call(t, app, fiber.MethodPost, "/admin/articles", body)
	require.Equal(t, fiber.StatusCreated, code, env.Message)
	var a model.ArticleModel
	require.NoError(t, json.Unmarshal(env.Data, &a))
	return a
}

func TestCreate_SlugIsUnique(t *testing.T) {
	app, _ := setup(t)

	a1 := create(t, app, map[string]any{"article_title": "Kenali Bakat Anak", "article_content": "isi", "article_tags": []string{"Bakat", "bakat", " anak "}})
	a2 := create(t, app, map[string]any{"article_title": "Kenali Bakat Anak!", "article_content": "isi"})

	assert.Equal(t, "kenali-bakat-anak", a1.ArticleSlug)
	assert.Equal(t, "kenali-bakat-anak-2", a2.ArticleSlug)
	assert.Equal(t, []string{"bakat", "anak"}, []string(a1.ArticleTags))
	assert.Equal(t, model.DefaultCategory, a1.ArticleCategory)
	assert.True(t, a1.ArticleIsPublished)
	assert.NotNil(t, a1.ArticlePublishedAt)

	_, code := call(t, app, fiber.MethodPost, "/admin/articles", map[string]any{"article_title": "ab"})
	assert.Equal(t, fiber.StatusUnprocessableEntity, code)
}

func TestPublic_OnlyPublishedAndCountsViews(t *testing.T) {
	app, db := setup(t)

	pub := create(t, app, map[string]any{"article_title": "Lima Elemen", "article_content": "api air tanah", "article_category": "Edukasi"})
	create(t, app, map[string]any{"article_title": "Draft Rahasia", "article_content": "x", "article_is_published": false})

	env, code := call(t, app, fiber.MethodGet, "/public/articles?category=edukasi", nil)
	require.Equal(t, fiber.StatusOK, code)
	var rows []model.ArticleModel
	require.NoError(t, json.Unmarshal(env.Data, &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, pub.ArticleID, rows[0].ArticleID)

	_, code = call(t, app, fiber.MethodGet, "/public/articles/draft-rahasia", nil)
	assert.Equal(t, fiber.StatusNotFound, code)

	call(t, app, fiber.MethodGet, "/public/articles/lima-elemen", nil)
	env, code = call(t, app, fiber.MethodGet, "/public/articles/"+pub.ArticleID.String(), nil)
	require.Equal(t, fiber.StatusOK, code)
	var got model.ArticleModel
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.EqualValues(t, 2, got.ArticleViewCount)

	var stored model.ArticleModel
	require.NoError(t, db.First(&stored, "article_id = ?", pub.ArticleID).Error)
	assert.EqualValues(t, 2, stored.ArticleViewCount)
}

func TestUpdatePublishAndSlug(t *testing.T) {
	app, _ := setup(t)
	create(t, app, map[string]any{"article_title": "Tips Karir", "article_content": "x"})
	draft := create(t, app, map[string]any{"article_title": "Calon Artikel", "article_content": "x", "article_is_published": false})
	assert.Nil(t, draft.ArticlePublishedAt)

	env, code := call(t, app, fiber.MethodPut, "/admin/articles/"+draft.ArticleID.String(), map[string]any{
		"article_is_published": true,
		"article_slug":         "Tips Karir",
	})
	require.Equal(t, fiber.StatusOK, code)
	var got model.ArticleModel
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.True(t, got.ArticleIsPublished)
	assert.NotNil(t, got.ArticlePublishedAt)
	assert.Equal(t, "tips-karir-2", got.ArticleSlug)

	// slug sama dengan milik sendiri tidak berubah
	env, code = call(t, app, fiber.MethodPut, "/admin/articles/"+draft.ArticleID.String(), map[string]any{"article_slug": "tips-karir-2"})
	require.Equal(t, fiber.StatusOK, code)
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "tips-karir-2", got.ArticleSlug)
}

func TestDeleteAndStats(t *testing.T) {
	app, _ := setup(t)
	a := create(t, app, map[string]any{"article_title": "Satu", "article_content": "x"})
	create(t, app, map[string]any{"article_title": "Dua", "article_content": "x", "article_is_published": false})

	env, code := call(t, app, fiber.MethodGet, "/admin/articles/stats", nil)
	require.Equal(t, fiber.StatusOK, code)
	var s dto.ArticleStats
	require.NoError(t, json.Unmarshal(env.Data, &s))
	assert.EqualValues(t, 2, s.Total)
	assert.EqualValues(t, 1, s.Published)
	assert.EqualValues(t, 1, s.Drafts)

	_, code = call(t, app, fiber.MethodDelete, "/admin/articles/"+a.ArticleID.String(), nil)
	assert.Equal(t, fiber.StatusOK, code)
	_, code = call(t, app, fiber.MethodDelete, "/admin/articles/"+a.ArticleID.String(), nil)
	assert.Equal(t, fiber.StatusNotFound, code)
	_, code = call(t, app, fiber.MethodGet, "/admin/articles/bukan-uuid", nil)
	assert.Equal(t, fiber.StatusBadRequest, code)
}
