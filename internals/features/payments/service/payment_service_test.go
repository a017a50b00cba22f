package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go/snap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"newmeclass_backend/internals/configs"
	"newmeclass_backend/internals/databases/dbtest"
	settingsModel "newmeclass_backend/internals/features/content/settings/model"
	"newmeclass_backend/internals/features/payments/model"
	referralModel "newmeclass_backend/internals/features/referrals/model"
	referralService "newmeclass_backend/internals/features/referrals/service"
	userModel "newmeclass_backend/internals/features/users/user/model"
)

type fakeGateway struct {
	snapErr  error
	status   map[string]*GatewayStatus
	lastSnap *snap.Request
}

func (f *fakeGateway) CreateSnap(req *snap.Request) (string, string, error) {
	f.lastSnap = req
	if f.snapErr != nil {
		return "", "", f.snapErr
	}
	return "snap-token", "https://app.sandbox.midtrans.com/snap/v2/vtweb/snap-token", nil
}

func (f *fakeGateway) Status(orderID string) (*GatewayStatus, error) {
	if st, ok := f.status[orderID]; ok {
		return st, nil
	}
	return nil, errors.New("not found")
}

func setupDB(t *testing.T) *gorm.DB {
	configs.DefaultPrice = 75000
	configs.ReferralBonus = 10000
	return dbtest.Open(t,
		&userModel.UserModel{},
		&model.PaymentModel{},
		&model.PaymentGatewayEventModel{},
		&referralModel.ReferralTransactionModel{},
		&referralModel.ReferralSettingsModel{},
		&settingsModel.SiteSettingsModel{},
	)
}

func newUser(t *testing.T, db *gorm.DB, code string) *userModel.UserModel {
	u := &userModel.UserModel{Email: strings.ToLower(code) + "@mail.test", Password: "x", FullName: "User " + code, ReferralCode: code}
	require.NoError(t, db.Create(u).Error)
	return u
}

func reload(t *testing.T, db *gorm.DB, id uuid.UUID) userModel.UserModel {
	var u userModel.UserModel
	require.NoError(t, db.First(&u, "id = ?", id).Error)
	return u
}

func TestMapStatus(t *testing.T) {
	cases := []struct {
		tx, fraud, want string
	}{
		{"capture", "accept", model.StatusSettlement},
		{"capture", "challenge", model.StatusPending},
		{"capture", "deny", model.StatusFailed},
		{"settlement", "", model.StatusSettlement},
		{"pending", "", model.StatusPending},
		{"cancel", "", model.StatusFailed},
		{"deny", "", model.StatusFailed},
		{"expire", "", model.StatusFailed},
		{"refund", "", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, MapStatus(tc.tx, tc.fraud), tc.tx+"/"+tc.fraud)
	}
}

func TestNewOrderIDAndSignature(t *testing.T) {
	id := uuid.MustParse("11111111-2222-3333-4444-5555abcdef99")
	oid := NewOrderID(id)
	assert.Regexp(t, regexp.MustCompile(`^NEWME-ABCDEF99-[0-9A-F]{8}$`), oid)
	assert.NotEqual(t, oid, NewOrderID(id))

	sig := Signature("NEWME-1", "200", "75000.00", "server-key")
	assert.Len(t, sig, 128)
	assert.True(t, VerifySignature("NEWME-1", "200", "75000.00", "server-key", strings.ToUpper(sig)))
	assert.False(t, VerifySignature("NEWME-1", "200", "1.00", "server-key", sig))
	assert.False(t, VerifySignature("NEWME-1", "200", "75000.00", "server-key", ""))
}

func TestCreateSnap(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	u := newUser(t, db, "SNAP01")

	_, err := CreateSnap(ctx, db, nil, u.ID)
	assert.ErrorIs(t, err, ErrGatewayDisabled)

	_, err = CreateSnap(ctx, db, &fakeGateway{snapErr: errors.New("503")}, u.ID)
	assert.ErrorIs(t, err, ErrGatewayFailed)
	var n int64
	require.NoError(t, db.Model(&model.PaymentModel{}).Count(&n).Error)
	assert.Zero(t, n)

	gw := &fakeGateway{}
	p, err := CreateSnap(ctx, db, gw, u.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 75000, p.PaymentAmount)
	assert.Equal(t, model.StatusPending, p.PaymentStatus)
	require.NotNil(t, p.PaymentSnapToken)
	assert.Equal(t, "snap-token", *p.PaymentSnapToken)
	require.NotNil(t, gw.lastSnap.Expiry)
	assert.EqualValues(t, 24, gw.lastSnap.Expiry.Duration)

	stored := reload(t, db, u.ID)
	assert.Equal(t, userModel.PaymentStatusPending, stored.PaymentStatus)
	assert.Equal(t, userModel.TestStatusPendingPayment, stored.PaidTestStatus)
}

func TestWebhookSettlementCreditsReferralOnce(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	referrer := newUser(t, db, "REFR01")
	buyer := newUser(t, db, "BUYR01")
	_, err := referralService.RecordReferral(db, referrer, buyer)
	require.NoError(t, err)

	p, err := CreateSnap(ctx, db, &fakeGateway{}, buyer.ID)
	require.NoError(t, err)

	n := Notification{
		OrderID:           p.PaymentOrderID,
		StatusCode:        "200",
		GrossAmount:       "75000.00",
		TransactionStatus: "settlement",
		TransactionID:     "trx-1",
		PaymentType:       "bank_transfer",
	}
	n.SignatureKey = Signature(n.OrderID, n.StatusCode, n.GrossAmount, "server-key")

	for i := 0; i < 2; i++ {
		res, err := HandleNotification(ctx, db, nil, "server-key", n)
		require.NoError(t, err)
		assert.Equal(t, model.StatusSettlement, res.PaymentStatus)
	}

	u := reload(t, db, buyer.ID)
	assert.Equal(t, userModel.PaymentStatusApproved, u.PaymentStatus)
	assert.Equal(t, userModel.TestStatusInProgress, u.PaidTestStatus)

	r := reload(t, db, referrer.ID)
	assert.EqualValues(t, 10000, r.ReferralBalance)

	var rt referralModel.ReferralTransactionModel
	require.NoError(t, db.First(&rt, "referred_user_id = ?", buyer.ID).Error)
	assert.Equal(t, referralModel.ReferralStatusCredited, rt.Status)
	require.NotNil(t, rt.OrderID)
	assert.Equal(t, p.PaymentOrderID, *rt.OrderID)

	var stored model.PaymentModel
	require.NoError(t, db.First(&stored, "payment_order_id = ?", p.PaymentOrderID).Error)
	require.NotNil(t, stored.PaymentTransactionID)
	assert.Equal(t, "trx-1", *stored.PaymentTransactionID)
	assert.NotNil(t, stored.PaymentPaidAt)

	// settlement tidak bisa mundur ke failed
	n.TransactionStatus = "expire"
	n.SignatureKey = Signature(n.OrderID, n.StatusCode, n.GrossAmount, "server-key")
	_, err = HandleNotification(ctx, db, nil, "server-key", n)
	require.NoError(t, err)
	assert.Equal(t, userModel.PaymentStatusApproved, reload(t, db, buyer.ID).PaymentStatus)

	var events int64
	require.NoError(t, db.Model(&model.PaymentGatewayEventModel{}).Count(&events).Error)
	assert.EqualValues(t, 3, events)
}

func TestWebhookRejectsAndIgnores(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	u := newUser(t, db, "FAIL01")
	p, err := CreateSnap(ctx, db, &fakeGateway{}, u.ID)
	require.NoError(t, err)

	_, err = HandleNotification(ctx, db, nil, "server-key", Notification{
		OrderID: p.PaymentOrderID, StatusCode: "200", GrossAmount: "75000.00",
		TransactionStatus: "settlement", SignatureKey: "bogus",
	})
	assert.ErrorIs(t, err, ErrInvalidSignature)
	assert.Equal(t, userModel.PaymentStatusPending, reload(t, db, u.ID).PaymentStatus)

	res, err := HandleNotification(ctx, db, nil, "", Notification{OrderID: "NEWME-UNKNOWN", TransactionStatus: "settlement"})
	require.NoError(t, err)
	assert.True(t, res.Ignored)

	res, err = HandleNotification(ctx, db, nil, "", Notification{OrderID: p.PaymentOrderID, TransactionStatus: "refund"})
	require.NoError(t, err)
	assert.True(t, res.Ignored)

	res, err = HandleNotification(ctx, db, nil, "", Notification{OrderID: p.PaymentOrderID, TransactionStatus: "expire"})
	require.NoError(t, err)
	assert.Equal(t, model.StatusFailed, res.PaymentStatus)

	stored := reload(t, db, u.ID)
	assert.Equal(t, userModel.PaymentStatusUnpaid, stored.PaymentStatus)
	assert.Equal(t, userModel.TestStatusNotStarted, stored.PaidTestStatus)
}

func TestWebhookUsesCoreAPIStatus(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	u := newUser(t, db, "CORE01")
	gw := &fakeGateway{status: map[string]*GatewayStatus{}}
	p, err := CreateSnap(ctx, db, gw, u.ID)
	require.NoError(t, err)

	gw.status[p.PaymentOrderID] = &GatewayStatus{OrderID: p.PaymentOrderID, TransactionStatus: "capture", FraudStatus: "accept", TransactionID: "core-1"}

	res, err := HandleNotification(ctx, db, gw, "", Notification{OrderID: p.PaymentOrderID, TransactionStatus: "pending"})
	require.NoError(t, err)
	assert.Equal(t, model.StatusSettlement, res.PaymentStatus)

	checked, err := CheckStatus(ctx, db, gw, u.ID, p.PaymentOrderID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusSettlement, checked.PaymentStatus)

	_, err = CheckStatus(ctx, db, gw, uuid.New(), p.PaymentOrderID)
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}

func TestCheckStatusPollsPendingOrder(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	u := newUser(t, db, "POLL01")
	gw := &fakeGateway{status: map[string]*GatewayStatus{}}
	p, err := CreateSnap(ctx, db, gw, u.ID)
	require.NoError(t, err)

	got, err := CheckStatus(ctx, db, gw, u.ID, p.PaymentOrderID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, got.PaymentStatus)

	gw.status[p.PaymentOrderID] = &GatewayStatus{TransactionStatus: "settlement"}
	got, err = CheckStatus(ctx, db, gw, u.ID, p.PaymentOrderID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusSettlement, got.PaymentStatus)
	assert.Equal(t, userModel.PaymentStatusApproved, reload(t, db, u.ID).PaymentStatus)
}

func TestManualProofReview(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	approved := newUser(t, db, "MANU01")
	p, err := SubmitProof(ctx, db, approved.ID, "http://localhost/uploads/payment-proofs/a.png")
	require.NoError(t, err)
	assert.Equal(t, model.MethodManualTransfer, p.PaymentMethod)

	out, err := Review(ctx, db, p.PaymentID, true, "ok")
	require.NoError(t, err)
	assert.Equal(t, model.StatusSettlement, out.PaymentStatus)
	assert.Equal(t, userModel.PaymentStatusApproved, reload(t, db, approved.ID).PaymentStatus)

	_, err = Review(ctx, db, p.PaymentID, false, "")
	assert.ErrorIs(t, err, ErrNotReviewable)

	_, err = SubmitProof(ctx, db, approved.ID, "http://localhost/uploads/x.png")
	assert.ErrorIs(t, err, ErrAlreadyPaid)

	rejected := newUser(t, db, "MANU02")
	p2, err := SubmitProof(ctx, db, rejected.ID, "http://localhost/uploads/payment-proofs/b.png")
	require.NoError(t, err)
	out, err = Review(ctx, db, p2.PaymentID, false, "nominal tidak sesuai")
	require.NoError(t, err)
	assert.Equal(t, model.StatusRejected, out.PaymentStatus)
	assert.Equal(t, userModel.PaymentStatusRejected, reload(t, db, rejected.ID).PaymentStatus)

	_, err = Review(ctx, db, uuid.New(), true, "")
	assert.ErrorIs(t, err, ErrPaymentNotFound)

	st, err := GetStats(ctx, db)
	require.NoError(t, err)
	assert.EqualValues(t, 2, st.Total)
	assert.EqualValues(t, 75000, st.TotalRevenue)
	assert.EqualValues(t, 1, st.ByStatus[model.StatusRejected])
	assert.Zero(t, st.PendingProof)
}
