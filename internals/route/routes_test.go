package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newmeclass_backend/internals/configs"
	"newmeclass_backend/internals/constants"
	database "newmeclass_backend/internals/databases"
	"newmeclass_backend/internals/databases/dbtest"
	userModel "newmeclass_backend/internals/features/users/user/model"
	"newmeclass_backend/internals/seeds"
)

func newApp(t *testing.T) (*fiber.App, map[string]string) {
	configs.JWTSecret = "routes-secret"
	configs.JWTExpiresIn = time.Hour
	configs.MidtransServer = ""
	configs.UploadDir = t.TempDir()

	db := dbtest.Open(t)
	require.NoError(t, database.Migrate(db))
	require.NoError(t, seeds.RunAllSeeds(db))

	tokens := map[string]string{}
	for i, role := range []string{constants.RoleUser, constants.RoleAdmin} {
		u := userModel.UserModel{
			ID:           uuid.New(),
			Email:        role + "@example.com",
			Password:     "x",
			FullName:     "Tester " + role,
			Role:         role,
			ReferralCode: "ROUTE" + string(rune('0'+i)),
		}
		require.NoError(t, db.Create(&u).Error)
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"id":   u.ID.String(),
			"role": u.Role,
			"exp":  time.Now().Add(time.Hour).Unix(),
		}).SignedString([]byte(configs.JWTSecret))
		require.NoError(t, err)
		tokens[role] = tok
	}

	app := fiber.New()
	SetupRoutes(app, db)
	return app, tokens
}

func do(t *testing.T, app *fiber.App, method, path, token string, body any) (int, map[string]any) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func TestRouteGroups(t *testing.T) {
	app, tokens := newApp(t)

	code, out := do(t, app, "GET", "/health", "", nil)
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "OK", out["status"])

	// publik tanpa token
	for _, p := range []string{
		"/api/public/questions?tier=free",
		"/api/public/settings",
		"/api/public/payments/test-price",
		"/api/public/tests/stats",
		"/api/public/articles",
		"/api/public/banners",
		"/api/public/products",
		"/api/public/running-info",
		"/api/public/referrals/settings",
	} {
		code, _ := do(t, app, "GET", p, "", nil)
		assert.Equal(t, fiber.StatusOK, code, p)
	}

	// user
	code, _ = do(t, app, "GET", "/api/u/me", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, code)
	code, _ = do(t, app, "GET", "/api/u/me", tokens[constants.RoleUser], nil)
	assert.Equal(t, fiber.StatusOK, code)
	code, _ = do(t, app, "GET", "/api/u/test-access", tokens[constants.RoleUser], nil)
	assert.Equal(t, fiber.StatusOK, code)

	// admin
	code, _ = do(t, app, "GET", "/api/a/settings", tokens[constants.RoleUser], nil)
	assert.Equal(t, fiber.StatusForbidden, code)
	for _, p := range []string{"/api/a/settings", "/api/a/users", "/api/a/certificates/template", "/api/a/running-info"} {
		code, _ := do(t, app, "GET", p, tokens[constants.RoleAdmin], nil)
		assert.Equal(t, fiber.StatusOK, code, p)
	}

	// webhook tanpa JWT, order tidak dikenal tetap 200
	code, out = do(t, app, "POST", "/api/payments/midtrans/notification", "", map[string]any{
		"order_id": "NEWME-UNKNOWN", "transaction_status": "settlement", "status_code": "200",
	})
	assert.Equal(t, fiber.StatusOK, code)
	data := out["data"].(map[string]any)
	assert.Equal(t, true, data["ignored"])
}
