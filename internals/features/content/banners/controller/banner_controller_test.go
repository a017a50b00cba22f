package controller

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"newmeclass_backend/internals/databases/dbtest"
	"newmeclass_backend/internals/features/content/banners/model"
	helper "newmeclass_backend/internals/helpers"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setup(t *testing.T) (*fiber.App, *gorm.DB, *helper.LocalStorage) {
	db := dbtest.Open(t, &model.BannerModel{})
	storage := helper.NewLocalStorage(t.TempDir(), "http://localhost:3000")
	ctrl := NewBannerController(db, storage)

	app := fiber.New()
	app.Get("/public/banners", ctrl.ListActive)
	g := app.Group("/admin/banners")
	g.Get("/", ctrl.ListAdmin)
	g.Post("/", ctrl.Create)
	g.Get("/:id", ctrl.GetByID)
	g.Put("/:id", ctrl.Update)
	g.Delete("/:id", ctrl.Delete)
	return app, db, storage
}

func multipartBody(t *testing.T, fields map[string]string, filename string) (*bytes.Buffer, string) {
	body := new(bytes.Buffer)
	mw := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if filename != "" {
		img := image.NewRGBA(image.Rect(0, 0, 40, 20))
		img.Set(3, 3, color.RGBA{G: 200, A: 255})
		fw, err := mw.CreateFormFile("image", filename)
		require.NoError(t, err)
		require.NoError(t, png.Encode(fw, img))
	}
	require.NoError(t, mw.Close())
	return body, mw.FormDataContentType()
}

func send(t *testing.T, app *fiber.App, method, path string, fields map[string]string, filename string) (*envelope, int) {
	t.Helper()
	body, ct := multipartBody(t, fields, filename)
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", ct)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return &env, resp.StatusCode
}

func TestCreate_ConvertsToWebP(t *testing.T) {
	app, _, storage := setup(t)

	env, code := send(t, app, fiber.MethodPost, "/admin/banners/", map[string]string{
		"title": "Promo Tes Premium", "type": "popup", "order": "2",
	}, "promo.png")
	require.Equal(t, fiber.StatusCreated, code, env.Message)

	var b model.BannerModel
	require.NoError(t, json.Unmarshal(env.Data, &b))
	assert.Equal(t, model.TypePopup, b.BannerType)
	assert.Equal(t, 2, b.BannerOrder)
	assert.True(t, b.BannerIsActive)
	assert.True(t, strings.HasSuffix(b.BannerImageURL, ".webp"))
	_, err := os.Stat(storage.LocalPath(b.BannerImageURL))
	assert.NoError(t, err)
}

func TestCreate_Rejects(t *testing.T) {
	app, _, _ := setup(t)

	_, code := send(t, app, fiber.MethodPost, "/admin/banners/", map[string]string{"title": "Tanpa gambar"}, "")
	assert.Equal(t, fiber.StatusBadRequest, code)

	_, code = send(t, app, fiber.MethodPost, "/admin/banners/", map[string]string{"title": "Gif", "type": "slider"}, "anim.gif")
	assert.Equal(t, fiber.StatusBadRequest, code)

	_, code = send(t, app, fiber.MethodPost, "/admin/banners/", map[string]string{"title": "Salah tipe", "type": "modal"}, "a.png")
	assert.Equal(t, fiber.StatusUnprocessableEntity, code)
}

func TestPublicListsActiveOnly_UpdateReplacesImage(t *testing.T) {
	app, db, storage := setup(t)

	env, code := send(t, app, fiber.MethodPost, "/admin/banners/", map[string]string{"title": "Aktif", "order": "1"}, "a.png")
	require.Equal(t, fiber.StatusCreated, code)
	var active model.BannerModel
	require.NoError(t, json.Unmarshal(env.Data, &active))

	env, code = send(t, app, fiber.MethodPost, "/admin/banners/", map[string]string{"title": "Nonaktif", "is_active": "false"}, "b.png")
	require.Equal(t, fiber.StatusCreated, code)
	var inactive model.BannerModel
	require.NoError(t, json.Unmarshal(env.Data, &inactive))
	assert.False(t, inactive.BannerIsActive)

	req := httptest.NewRequest(fiber.MethodGet, "/public/banners?type=slider", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	var list envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	resp.Body.Close()
	var rows []model.BannerModel
	require.NoError(t, json.Unmarshal(list.Data, &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, active.BannerID, rows[0].BannerID)

	oldPath := storage.LocalPath(active.BannerImageURL)
	env, code = send(t, app, fiber.MethodPut, "/admin/banners/"+active.BannerID.String(), map[string]string{"title": "Aktif Baru"}, "c.png")
	require.Equal(t, fiber.StatusOK, code, env.Message)
	var updated model.BannerModel
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "Aktif Baru", updated.BannerTitle)
	assert.NotEqual(t, active.BannerImageURL, updated.BannerImageURL)
	_, err = os.Stat(oldPath)
	assert.True(t, os.IsNotExist(err))

	req = httptest.NewRequest(fiber.MethodDelete, "/admin/banners/"+active.BannerID.String(), nil)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var n int64
	db.Model(&model.BannerModel{}).Count(&n)
	assert.EqualValues(t, 1, n)
}
