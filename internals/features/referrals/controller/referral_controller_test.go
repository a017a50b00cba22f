package controller

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newmeclass_backend/internals/databases/dbtest"
	"newmeclass_backend/internals/features/referrals/dto"
	"newmeclass_backend/internals/features/referrals/model"
	"newmeclass_backend/internals/features/referrals/service"
	userModel "newmeclass_backend/internals/features/users/user/model"
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

func TestReferralAdminEndpoints(t *testing.T) {
	db := dbtest.Open(t, &userModel.UserModel{}, &model.ReferralTransactionModel{}, &model.ReferralSettingsModel{})
	ctrl := NewReferralController(db)

	app := fiber.New()
	app.Get("/settings", ctrl.GetSettings)
	app.Put("/settings", ctrl.UpdateSettings)
	app.Get("/leaderboard", ctrl.Leaderboard)
	app.Get("/transactions", ctrl.ListTransactions)
	app.Get("/stats", ctrl.Stats)

	env, code := call(t, app, "PUT", "/settings", map[string]any{
		"bonus_per_referral": 20000,
		"benefits":           []string{"Bonus tunai", "Sertifikat"},
	})
	require.Equal(t, fiber.StatusOK, code)
	var s model.ReferralSettingsModel
	require.NoError(t, json.Unmarshal(env.Data, &s))
	assert.EqualValues(t, 20000, s.BonusPerReferral)
	assert.Equal(t, []string{"Bonus tunai", "Sertifikat"}, []string(s.Benefits))

	_, code = call(t, app, "PUT", "/settings", map[string]any{"minimum_withdraw": -1})
	assert.Equal(t, fiber.StatusUnprocessableEntity, code)

	referrer := &userModel.UserModel{ID: uuid.New(), Email: "r@example.com", Password: "x", FullName: "Rina", ReferralCode: "RINA000001"}
	require.NoError(t, db.Create(referrer).Error)
	for i, email := range []string{"x@example.com", "y@example.com"} {
		u := &userModel.UserModel{ID: uuid.New(), Email: email, Password: "x", FullName: email, ReferralCode: "USER00000" + string(rune('1'+i))}
		require.NoError(t, db.Create(u).Error)
		_, err := service.RecordReferral(db, referrer, u)
		require.NoError(t, err)
		if i == 0 {
			_, err = service.CreditForUser(db, u.ID, "ORDER-1")
			require.NoError(t, err)
		}
	}

	env, code = call(t, app, "GET", "/leaderboard", nil)
	require.Equal(t, fiber.StatusOK, code)
	var board []dto.LeaderboardItem
	require.NoError(t, json.Unmarshal(env.Data, &board))
	require.Len(t, board, 1)
	assert.Equal(t, 2, board[0].ReferralCount)
	assert.EqualValues(t, 20000, board[0].ReferralBalance)

	env, code = call(t, app, "GET", "/transactions?status=pending", nil)
	require.Equal(t, fiber.StatusOK, code)
	var txs []dto.TransactionItem
	require.NoError(t, json.Unmarshal(env.Data, &txs))
	require.Len(t, txs, 1)
	assert.Equal(t, "Rina", txs[0].ReferrerName)

	env, _ = call(t, app, "GET", "/stats", nil)
	var st dto.ReferralStats
	require.NoError(t, json.Unmarshal(env.Data, &st))
	assert.Equal(t, dto.ReferralStats{TotalReferrers: 1, TotalReferrals: 2, PendingBonus: 1, TotalBonusPaid: 20000}, st)
}
