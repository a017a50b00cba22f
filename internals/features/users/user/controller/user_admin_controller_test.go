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
	paymentModel "newmeclass_backend/internals/features/payments/model"
	referralModel "newmeclass_backend/internals/features/referrals/model"
	resultModel "newmeclass_backend/internals/features/tests/results/model"
	"newmeclass_backend/internals/features/users/user/dto"
	userModel "newmeclass_backend/internals/features/users/user/model"
	helper "newmeclass_backend/internals/helpers"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setupAdmin(t *testing.T) (*fiber.App, *gorm.DB, *userModel.UserModel) {
	db := dbtest.Open(t,
		&userModel.UserModel{},
		&referralModel.ReferralTransactionModel{},
		&paymentModel.PaymentModel{},
		&resultModel.TestAttemptModel{},
	)
	admin := &userModel.UserModel{Email: "admin@mail.test", Password: "x", FullName: "Admin", Role: "admin", ReferralCode: "ADMIN1"}
	require.NoError(t, db.Create(admin).Error)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(helper.LocUserID, admin.ID.String())
		return c.Next()
	})
	mountAdminRoutes(app, db)
	return app, db, admin
}

func mountAdminRoutes(app *fiber.App, db *gorm.DB) {
	ctrl := NewUserAdminController(db)
	g := app.Group("/users")
	g.Get("/", ctrl.List)
	g.Get("/stats", ctrl.Stats)
	g.Get("/:id", ctrl.Detail)
	g.Put("/:id", ctrl.Update)
	g.Put("/:id/ban", ctrl.Ban)
	g.Put("/:id/unban", ctrl.Unban)
	g.Delete("/:id", ctrl.Delete)
}

func call(t *testing.T, app *fiber.App, method, path string, body any) (int, envelope) {
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

func addUser(t *testing.T, db *gorm.DB, name, code, payment string) *userModel.UserModel {
	u := &userModel.UserModel{Email: code + "@mail.test", Password: "x", FullName: name, ReferralCode: code, PaymentStatus: payment}
	require.NoError(t, db.Create(u).Error)
	return u
}

func TestListAndStats(t *testing.T) {
	app, db, _ := setupAdmin(t)
	addUser(t, db, "Budi Santoso", "BUDI01", userModel.PaymentStatusApproved)
	addUser(t, db, "Sari Dewi", "SARI01", userModel.PaymentStatusUnpaid)

	status, env := call(t, app, "GET", "/users?search=budi", nil)
	require.Equal(t, fiber.StatusOK, status)
	var rows []userModel.UserModel
	require.NoError(t, json.Unmarshal(env.Data, &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "Budi Santoso", rows[0].FullName)

	status, env = call(t, app, "GET", "/users?payment_status=unpaid", nil)
	require.Equal(t, fiber.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Data, &rows))
	assert.Len(t, rows, 2) // admin + sari

	status, env = call(t, app, "GET", "/users/stats", nil)
	require.Equal(t, fiber.StatusOK, status)
	var st dto.UserStats
	require.NoError(t, json.Unmarshal(env.Data, &st))
	assert.EqualValues(t, 3, st.Total)
	assert.EqualValues(t, 1, st.Paid)
	assert.EqualValues(t, 2, st.Unpaid)
}

func TestBanUnbanAndUpdate(t *testing.T) {
	app, db, admin := setupAdmin(t)
	u := addUser(t, db, "Rina", "RINA01", "")

	status, _ := call(t, app, "PUT", "/users/"+u.ID.String()+"/ban", map[string]any{"reason": "spam"})
	require.Equal(t, fiber.StatusOK, status)

	var stored userModel.UserModel
	require.NoError(t, db.First(&stored, "id = ?", u.ID).Error)
	assert.True(t, stored.IsBanned)
	assert.Equal(t, "spam", stored.BannedReason)
	assert.NotNil(t, stored.BannedAt)

	status, _ = call(t, app, "PUT", "/users/"+u.ID.String()+"/unban", nil)
	require.Equal(t, fiber.StatusOK, status)
	require.NoError(t, db.First(&stored, "id = ?", u.ID).Error)
	assert.False(t, stored.IsBanned)
	assert.Nil(t, stored.BannedAt)

	status, _ = call(t, app, "PUT", "/users/"+admin.ID.String()+"/ban", map[string]any{"reason": "test"})
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = call(t, app, "PUT", "/users/"+u.ID.String(), map[string]any{"whatsapp": "081234567890", "payment_status": "approved"})
	require.Equal(t, fiber.StatusOK, status)
	require.NoError(t, db.First(&stored, "id = ?", u.ID).Error)
	assert.Equal(t, "081234567890", stored.WhatsApp)
	assert.Equal(t, userModel.PaymentStatusApproved, stored.PaymentStatus)

	status, _ = call(t, app, "PUT", "/users/"+u.ID.String(), map[string]any{"role": "root"})
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
}

func TestDetailAndDelete(t *testing.T) {
	app, db, _ := setupAdmin(t)
	referrer := addUser(t, db, "Referrer", "REFR01", "")
	u := addUser(t, db, "Dina", "DINA01", "")
	require.NoError(t, db.Model(u).Update("referred_by", referrer.ID).Error)

	require.NoError(t, db.Create(&referralModel.ReferralTransactionModel{
		ReferrerID: referrer.ID, ReferredUserID: u.ID, ReferralCode: "REFR01", BonusAmount: 10000, Status: referralModel.ReferralStatusPending,
	}).Error)
	require.NoError(t, db.Create(&paymentModel.PaymentModel{
		PaymentUserID: u.ID, PaymentOrderID: "NEWME-X-1", PaymentAmount: 50000,
		PaymentMethod: paymentModel.MethodMidtrans, PaymentStatus: paymentModel.StatusPending,
	}).Error)

	status, env := call(t, app, "GET", "/users/"+u.ID.String(), nil)
	require.Equal(t, fiber.StatusOK, status)
	var detail struct {
		ReferredBy           *dto.ReferrerBrief `json:"referred_by"`
		ReferralTransactions []map[string]any   `json:"referral_transactions"`
		Payments             []map[string]any   `json:"payments"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &detail))
	require.NotNil(t, detail.ReferredBy)
	assert.Equal(t, "REFR01", detail.ReferredBy.ReferralCode)
	assert.Len(t, detail.ReferralTransactions, 1)
	assert.Len(t, detail.Payments, 1)

	status, _ = call(t, app, "DELETE", "/users/"+u.ID.String(), nil)
	require.Equal(t, fiber.StatusOK, status)

	var n int64
	require.NoError(t, db.Model(&referralModel.ReferralTransactionModel{}).Count(&n).Error)
	assert.Zero(t, n)
	require.NoError(t, db.Model(&paymentModel.PaymentModel{}).Count(&n).Error)
	assert.Zero(t, n)

	status, _ = call(t, app, "GET", "/users/"+u.ID.String(), nil)
	assert.Equal(t, fiber.StatusNotFound, status)

	status, _ = call(t, app, "GET", "/users/bukan-uuid", nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
}
