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

	"newmeclass_backend/internals/databases/dbtest"
	"newmeclass_backend/internals/features/content/products/dto"
	"newmeclass_backend/internals/features/content/products/model"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setup(t *testing.T) *fiber.App {
	db := dbtest.Open(t, &model.ProductModel{})
	ctrl := NewProductController(db, nil)

	app := fiber.New()
	pub := app.Group("/public/products")
	pub.Get("/", ctrl.ListPublic)
	pub.Get("/categories", ctrl.Categories)
	pub.Get("/:id", ctrl.GetPublic)

	adm := app.Group("/admin/products")
	adm.Get("/", ctrl.ListAdmin)
	adm.Get("/stats", ctrl.Stats)
	adm.Post("/", ctrl.Create)
	adm.Put("/:id", ctrl.Update)
	adm.Delete("/:id", ctrl.Delete)
	return app
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

func create(t *testing.T, app *fiber.App, body map[string]any) model.ProductModel {
	env, code := call(t, app, fiber.MethodPost, "/admin/products", body)
	require.Equal(t, fiber.StatusCreated, code, env.Message)
	var p model.ProductModel
	require.NoError(t, json.Unmarshal(env.Data, &p))
	return p
}

func TestProductLifecycle(t *testing.T) {
	app := setup(t)

	buku := create(t, app, map[string]any{
		"product_name": "Buku Jatidiri", "product_description": "Panduan", "product_price": 85000,
		"product_category": "buku", "product_stock": 10, "product_features": []string{"200 halaman", " "},
	})
	assert.True(t, buku.ProductIsActive)
	assert.Equal(t, []string{"200 halaman"}, []string(buku.ProductFeatures))

	kelas := create(t, app, map[string]any{
		"product_name": "Kelas Optimasi Potensi", "product_description": "Kelas online", "product_price": 250000,
		"product_category": "kelas", "product_is_active": false,
	})

	_, code := call(t, app, fiber.MethodPost, "/admin/products", map[string]any{
		"product_name": "Gratis", "product_description": "x", "product_price": 0, "product_category": "buku",
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, code)

	env, code := call(t, app, fiber.MethodGet, "/public/products", nil)
	require.Equal(t, fiber.StatusOK, code)
	var rows []model.ProductModel
	require.NoError(t, json.Unmarshal(env.Data, &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, buku.ProductID, rows[0].ProductID)

	_, code = call(t, app, fiber.MethodGet, "/public/products/"+kelas.ProductID.String(), nil)
	assert.Equal(t, fiber.StatusNotFound, code)

	env, _ = call(t, app, fiber.MethodGet, "/public/products/categories", nil)
	var cats []string
	require.NoError(t, json.Unmarshal(env.Data, &cats))
	assert.Equal(t, []string{"buku"}, cats)

	env, code = call(t, app, fiber.MethodPut, "/admin/products/"+buku.ProductID.String(), map[string]any{"product_stock": 0})
	require.Equal(t, fiber.StatusOK, code)
	var upd model.ProductModel
	require.NoError(t, json.Unmarshal(env.Data, &upd))
	assert.Equal(t, 0, upd.ProductStock)
	assert.EqualValues(t, 85000, upd.ProductPrice)

	env, code = call(t, app, fiber.MethodGet, "/admin/products/stats", nil)
	require.Equal(t, fiber.StatusOK, code)
	var s dto.ProductStats
	require.NoError(t, json.Unmarshal(env.Data, &s))
	assert.EqualValues(t, 2, s.Total)
	assert.EqualValues(t, 1, s.Active)
	assert.EqualValues(t, 2, s.OutOfStock)
	assert.EqualValues(t, 0, s.InventoryValue)

	_, code = call(t, app, fiber.MethodDelete, "/admin/products/"+kelas.ProductID.String(), nil)
	assert.Equal(t, fiber.StatusOK, code)
	_, code = call(t, app, fiber.MethodDelete, "/admin/products/"+kelas.ProductID.String(), nil)
	assert.Equal(t, fiber.StatusNotFound, code)
}
