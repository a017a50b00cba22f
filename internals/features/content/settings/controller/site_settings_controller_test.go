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
	"newmeclass_backend/internals/features/content/settings/model"
	"newmeclass_backend/internals/features/content/settings/service"
)

func call(t *testing.T, app *fiber.App, method, path string, body any) (map[string]any, int) {
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

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out, resp.StatusCode
}

func TestSiteSettingsFlow(t *testing.T) {
	db := dbtest.Open(t, &model.SiteSettingsModel{})
	ctrl := NewSiteSettingsController(db)

	app := fiber.New()
	app.Get("/public/settings", ctrl.GetPublic)
	app.Get("/admin/settings", ctrl.Get)
	app.Put("/admin/settings", ctrl.Update)

	// baris default dibuat saat pertama dibaca
	out, code := call(t, app, "GET", "/public/settings", nil)
	require.Equal(t, fiber.StatusOK, code)
	data := out["data"].(map[string]any)
	assert.Equal(t, "NEWME CLASS", data["site_name"])
	assert.Equal(t, true, data["require_payment"])
	_, hasBank := data["bank_account"]
	assert.False(t, hasBank)

	_, code = call(t, app, "PUT", "/admin/settings", map[string]any{"test_price": 0})
	assert.Equal(t, fiber.StatusUnprocessableEntity, code)
	_, code = call(t, app, "PUT", "/admin/settings", map[string]any{"contact_email": "bukan-email"})
	assert.Equal(t, fiber.StatusUnprocessableEntity, code)

	out, code = call(t, app, "PUT", "/admin/settings", map[string]any{
		"test_price":       75000,
		"require_payment":  false,
		"maintenance_mode": true,
		"bank_account":     " 1234567890 ",
	})
	require.Equal(t, fiber.StatusOK, code)
	data = out["data"].(map[string]any)
	assert.EqualValues(t, 75000, data["test_price"])
	assert.Equal(t, false, data["require_payment"])
	assert.Equal(t, true, data["maintenance_mode"])
	assert.Equal(t, "1234567890", data["bank_account"])
	// field lain tidak tersentuh
	assert.Equal(t, "NEWME CLASS", data["site_name"])

	assert.EqualValues(t, 75000, service.TestPrice(db))

	out, _ = call(t, app, "GET", "/public/settings", nil)
	data = out["data"].(map[string]any)
	assert.Equal(t, true, data["maintenance_mode"])
}
