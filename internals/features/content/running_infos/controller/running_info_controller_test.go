package controller

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newmeclass_backend/internals/databases/dbtest"
	"newmeclass_backend/internals/features/content/running_infos/model"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
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

func TestRunningInfoWindowAndPriority(t *testing.T) {
	db := dbtest.Open(t, &model.RunningInfoModel{})
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	ctrl := &RunningInfoController{DB: db, Now: func() time.Time { return now }}

	app := fiber.New()
	app.Get("/public/running-info", ctrl.ListActive)
	app.Get("/admin/running-info", ctrl.ListAll)
	app.Post("/admin/running-info", ctrl.Create)
	app.Put("/admin/running-info/:id", ctrl.Update)
	app.Delete("/admin/running-info/:id", ctrl.Delete)

	past := now.Add(-48 * time.Hour)
	yesterday := now.Add(-24 * time.Hour)
	tomorrow := now.Add(24 * time.Hour)
	off := false

	// low priority, tanpa jendela
	env, code := call(t, app, "POST", "/admin/running-info", map[string]any{"message": "Diskon akhir pekan", "priority": 1})
	require.Equal(t, fiber.StatusCreated, code)
	var low model.RunningInfoModel
	require.NoError(t, json.Unmarshal(env.Data, &low))
	assert.True(t, low.RunningInfoIsActive)
	assert.Equal(t, "#FFD700", low.RunningInfoBgColor)
	assert.Equal(t, "#1a1a1a", low.RunningInfoTextColor)

	// high priority, aktif sekarang
	_, code = call(t, app, "POST", "/admin/running-info", map[string]any{
		"message": "Pendaftaran dibuka", "priority": 10, "start_date": yesterday, "end_date": tomorrow,
	})
	require.Equal(t, fiber.StatusCreated, code)

	// sudah lewat
	_, code = call(t, app, "POST", "/admin/running-info", map[string]any{
		"message": "Promo lama", "priority": 99, "start_date": past, "end_date": yesterday,
	})
	require.Equal(t, fiber.StatusCreated, code)

	// nonaktif
	_, code = call(t, app, "POST", "/admin/running-info", map[string]any{"message": "Draft", "is_active": off})
	require.Equal(t, fiber.StatusCreated, code)

	// end < start ditolak
	_, code = call(t, app, "POST", "/admin/running-info", map[string]any{
		"message": "Salah", "start_date": tomorrow, "end_date": yesterday,
	})
	assert.Equal(t, fiber.StatusBadRequest, code)

	// warna bukan hex
	_, code = call(t, app, "POST", "/admin/running-info", map[string]any{"message": "Warna", "bg_color": "kuning"})
	assert.Equal(t, fiber.StatusUnprocessableEntity, code)

	env, code = call(t, app, "GET", "/public/running-info", nil)
	require.Equal(t, fiber.StatusOK, code)
	var visible []model.RunningInfoModel
	require.NoError(t, json.Unmarshal(env.Data, &visible))
	require.Len(t, visible, 2)
	assert.Equal(t, "Pendaftaran dibuka", visible[0].RunningInfoMessage)
	assert.Equal(t, "Diskon akhir pekan", visible[1].RunningInfoMessage)

	env, _ = call(t, app, "GET", "/admin/running-info", nil)
	var all []model.RunningInfoModel
	require.NoError(t, json.Unmarshal(env.Data, &all))
	assert.Len(t, all, 4)

	// matikan yang low → publik tinggal satu
	_, code = call(t, app, "PUT", "/admin/running-info/"+low.RunningInfoID.String(), map[string]any{"is_active": false})
	require.Equal(t, fiber.StatusOK, code)
	env, _ = call(t, app, "GET", "/public/running-info", nil)
	require.NoError(t, json.Unmarshal(env.Data, &visible))
	assert.Len(t, visible, 1)

	_, code = call(t, app, "DELETE", "/admin/running-info/"+low.RunningInfoID.String(), nil)
	assert.Equal(t, fiber.StatusOK, code)
	_, code = call(t, app, "DELETE", "/admin/running-info/"+low.RunningInfoID.String(), nil)
	assert.Equal(t, fiber.StatusNotFound, code)
	_, code = call(t, app, "PUT", "/admin/running-info/bukan-uuid", map[string]any{})
	assert.Equal(t, fiber.StatusBadRequest, code)
}

func TestVisibleAt(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	start := now.Add(time.Hour)
	m := model.RunningInfoModel{RunningInfoIsActive: true}
	assert.True(t, m.VisibleAt(now))

	m.RunningInfoStartDate = &start
	assert.False(t, m.VisibleAt(now))
	assert.True(t, m.VisibleAt(start))

	m.RunningInfoIsActive = false
	assert.False(t, m.VisibleAt(start))
}
