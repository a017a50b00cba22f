package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	settingsService "newmeclass_backend/internals/features/content/settings/service"
	"newmeclass_backend/internals/features/payments/model"
	referralService "newmeclass_backend/internals/features/referrals/service"
	userModel "newmeclass_backend/internals/features/users/user/model"
)

const orderExpiry = 24 * time.Hour

var (
	ErrGatewayDisabled  = errors.New("pembayaran online belum dikonfigurasi")
	ErrGatewayFailed    = errors.New("gagal membuat transaksi pembayaran")
	ErrAlreadyPaid      = errors.New("pembayaran Anda sudah disetujui")
	ErrPaymentNotFound  = errors.New("pembayaran tidak ditemukan")
	ErrInvalidSignature = errors.New("signature tidak valid")
	ErrNotReviewable    = errors.New("hanya bukti transfer berstatus pending yang bisa direview")
	ErrUserNotFound     = errors.New("user tidak ditemukan")
)

// NewOrderID: NEWME-<8 karakter terakhir user id>-<HEX8>
func NewOrderID(userID uuid.UUID) string {
	compact := strings.ReplaceAll(userID.String(), "-", "")
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("NEWME-%s-%s", strings.ToUpper(compact[len(compact)-8:]), strings.ToUpper(suffix))
}

func loadUser(db *gorm.DB, userID uuid.UUID) (*userModel.UserModel, error) {
	var u userModel.UserModel
	if err := db.First(&u, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

/* =========================================================
   SNAP
========================================================= */

func CreateSnap(ctx context.Context, db *gorm.DB, gw Gateway, userID uuid.UUID) (*model.PaymentModel, error) {
	if gw == nil {
		return nil, ErrGatewayDisabled
	}
	db = db.WithContext(ctx)

	u, err := loadUser(db, userID)
	if err != nil {
		return nil, err
	}
	if u.PaymentStatus == userModel.PaymentStatusApproved {
		return nil, ErrAlreadyPaid
	}

	now := time.Now()
	expires := now.Add(orderExpiry)
	p := model.PaymentModel{
		PaymentUserID:    u.ID,
		PaymentOrderID:   NewOrderID(u.ID),
		PaymentAmount:    settingsService.TestPrice(db),
		PaymentMethod:    model.MethodMidtrans,
		PaymentStatus:    model.StatusPending,
		PaymentExpiredAt: &expires,
	}

	token, redirect, err := gw.CreateSnap(snapRequest(p, u, now))
	if err != nil {
		log.Printf("[ERROR] ❌ Midtrans snap gagal (order=%s): %v", p.PaymentOrderID, err)
		return nil, ErrGatewayFailed
	}
	p.PaymentSnapToken = &token
	p.PaymentRedirectURL = &redirect

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&p).Error; err != nil {
			return err
		}
		return tx.Model(&userModel.UserModel{}).Where("id = ?", u.ID).Updates(map[string]any{
			"payment_status":   userModel.PaymentStatusPending,
			"paid_test_status": userModel.TestStatusPendingPayment,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	log.Printf("[INFO] 💳 Snap dibuat: order=%s user=%s amount=%d", p.PaymentOrderID, u.ID, p.PaymentAmount)
	return &p, nil
}

func snapRequest(p model.PaymentModel, u *userModel.UserModel, now time.Time) *snap.Request {
	return &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  p.PaymentOrderID,
			GrossAmt: p.PaymentAmount,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: u.FullName,
			Email: u.Email,
			Phone: u.WhatsApp,
		},
		Items: &[]midtrans.ItemDetails{{
			ID:    "NEWME-PREMIUM-TEST",
			Name:  "Tes Bakat Premium NEWME CLASS",
			Price: p.PaymentAmount,
			Qty:   1,
		}},
		Expiry: &snap.ExpiryDetails{
			StartTime: now.Format("2006-01-02 15:04:05 -0700"),
			Unit:      "hour",
			Duration:  int64(orderExpiry / time.Hour),
		},
	}
}

/* =========================================================
   STATE TRANSITION
========================================================= */

type StatusUpdate struct {
	Status        string
	TransactionID string
	PaymentType   string
}

// ApplyStatus: terapkan status baru ke payment + user. Idempotent:
// settlement kedua kali tidak mengkredit referral lagi.
func ApplyStatus(tx *gorm.DB, p *model.PaymentModel, up StatusUpdate) error {
	if up.Status == "" || up.Status == p.PaymentStatus {
		return nil
	}
	if p.PaymentStatus == model.StatusSettlement {
		log.Printf("[WARN] ⚠️ order %s sudah settlement, status %s diabaikan", p.PaymentOrderID, up.Status)
		return nil
	}

	updates := map[string]any{"payment_status": up.Status}
	if up.TransactionID != "" {
		updates["payment_transaction_id"] = up.TransactionID
	}
	if up.PaymentType != "" {
		updates["payment_type"] = up.PaymentType
	}
	now := time.Now()
	if up.Status == model.StatusSettlement {
		updates["payment_paid_at"] = now
	}
	if err := tx.Model(p).Updates(updates).Error; err != nil {
		return err
	}
	p.PaymentStatus = up.Status

	switch up.Status {
	case model.StatusSettlement:
		if err := tx.Model(&userModel.UserModel{}).Where("id = ?", p.PaymentUserID).Updates(map[string]any{
			"payment_status":   userModel.PaymentStatusApproved,
			"paid_test_status": userModel.TestStatusInProgress,
		}).Error; err != nil {
			return err
		}
		if _, err := referralService.CreditForUser(tx, p.PaymentUserID, p.PaymentOrderID); err != nil {
			return err
		}
	case model.StatusFailed:
		// user yang sudah approved lewat order lain tidak diturunkan
		if err := tx.Model(&userModel.UserModel{}).
			Where("id = ? AND payment_status <> ?", p.PaymentUserID, userModel.PaymentStatusApproved).
			Updates(map[string]any{
				"payment_status":   userModel.PaymentStatusUnpaid,
				"paid_test_status": userModel.TestStatusNotStarted,
			}).Error; err != nil {
			return err
		}
	case model.StatusRejected:
		if err := tx.Model(&userModel.UserModel{}).
			Where("id = ? AND payment_status <> ?", p.PaymentUserID, userModel.PaymentStatusApproved).
			Update("payment_status", userModel.PaymentStatusRejected).Error; err != nil {
			return err
		}
	}
	return nil
}

func lockPayment(tx *gorm.DB, where string, args ...any) (*model.PaymentModel, error) {
	var p model.PaymentModel
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where(where, args...).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return &p, nil
}

/* =========================================================
   WEBHOOK
========================================================= */

type Notification struct {
	TransactionTime   string `json:"transaction_time"`
	TransactionStatus string `json:"transaction_status"`
	StatusCode        string `json:"status_code"`
	SignatureKey      string `json:"signature_key"`
	OrderID           string `json:"order_id"`
	GrossAmount       string `json:"gross_amount"`
	PaymentType       string `json:"payment_type"`
	FraudStatus       string `json:"fraud_status"`
	TransactionID     string `json:"transaction_id"`
}

type WebhookResult struct {
	OrderID       string `json:"order_id"`
	PaymentStatus string `json:"payment_status"`
	Ignored       bool   `json:"ignored"`
	Reason        string `json:"reason,omitempty"`
}

// HandleNotification: log event → cek signature → (opsional) konfirmasi via Core API → ApplyStatus.
// serverKey kosong = signature tidak dicek; gw nil = pakai status dari payload.
func HandleNotification(ctx context.Context, db *gorm.DB, gw Gateway, serverKey string, n Notification) (WebhookResult, error) {
	db = db.WithContext(ctx)
	res := WebhookResult{OrderID: n.OrderID}

	ev := logEvent(db, n)

	if serverKey != "" && !VerifySignature(n.OrderID, n.StatusCode, n.GrossAmount, serverKey, n.SignatureKey) {
		finishEvent(db, ev, model.EventFailed, ErrInvalidSignature.Error())
		return res, ErrInvalidSignature
	}

	txStatus, fraud, txID, payType := n.TransactionStatus, n.FraudStatus, n.TransactionID, n.PaymentType
	if gw != nil {
		st, err := gw.Status(n.OrderID)
		if err != nil {
			log.Printf("[WARN] ⚠️ Core API status gagal (order=%s), pakai payload: %v", n.OrderID, err)
		} else {
			txStatus, fraud, txID, payType = st.TransactionStatus, st.FraudStatus, st.TransactionID, st.PaymentType
		}
	}

	mapped := MapStatus(txStatus, fraud)
	if mapped == "" {
		res.Ignored, res.Reason = true, "status "+txStatus+" tidak diproses"
		finishEvent(db, ev, model.EventIgnored, res.Reason)
		return res, nil
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		p, err := lockPayment(tx, "payment_order_id = ?", n.OrderID)
		if err != nil {
			return err
		}
		if err := ApplyStatus(tx, p, StatusUpdate{Status: mapped, TransactionID: txID, PaymentType: payType}); err != nil {
			return err
		}
		res.PaymentStatus = p.PaymentStatus
		return nil
	})
	if errors.Is(err, ErrPaymentNotFound) {
		// balas 200 supaya Midtrans tidak retry terus
		res.Ignored, res.Reason = true, "payment tidak ditemukan"
		finishEvent(db, ev, model.EventIgnored, res.Reason)
		return res, nil
	}
	if err != nil {
		finishEvent(db, ev, model.EventFailed, err.Error())
		return res, err
	}

	finishEvent(db, ev, model.EventProcessed, "")
	log.Printf("[INFO] 🔔 Webhook %s: %s → %s", n.OrderID, txStatus, res.PaymentStatus)
	return res, nil
}

func logEvent(db *gorm.DB, n Notification) *model.PaymentGatewayEventModel {
	payload, _ := json.Marshal(n)
	ev := model.PaymentGatewayEventModel{
		PaymentGatewayEventOrderID:           n.OrderID,
		PaymentGatewayEventTransactionStatus: n.TransactionStatus,
		PaymentGatewayEventFraudStatus:       n.FraudStatus,
		PaymentGatewayEventPayload:           datatypes.JSON(payload),
		PaymentGatewayEventStatus:            model.EventReceived,
	}
	if err := db.Create(&ev).Error; err != nil {
		log.Printf("[WARN] ⚠️ gagal simpan gateway event: %v", err)
		return nil
	}
	return &ev
}

func finishEvent(db *gorm.DB, ev *model.PaymentGatewayEventModel, status, errMsg string) {
	if ev == nil {
		return
	}
	updates := map[string]any{
		"payment_gateway_event_status":       status,
		"payment_gateway_event_processed_at": time.Now(),
	}
	if errMsg != "" {
		updates["payment_gateway_event_error"] = errMsg
	}
	if err := db.Model(ev).Updates(updates).Error; err != nil {
		log.Printf("[WARN] ⚠️ gagal update gateway event: %v", err)
	}
}

/* =========================================================
   STATUS CHECK (user)
========================================================= */

// CheckStatus: order milik user; kalau masih pending & gateway aktif, tanya Core API.
func CheckStatus(ctx context.Context, db *gorm.DB, gw Gateway, userID uuid.UUID, orderID string) (*model.PaymentModel, error) {
	db = db.WithContext(ctx)

	var p model.PaymentModel
	if err := db.Where("payment_order_id = ? AND payment_user_id = ?", orderID, userID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	if gw == nil || p.PaymentMethod != model.MethodMidtrans || p.PaymentStatus != model.StatusPending {
		return &p, nil
	}

	st, err := gw.Status(orderID)
	if err != nil {
		log.Printf("[WARN] ⚠️ cek status Midtrans gagal (order=%s): %v", orderID, err)
		return &p, nil
	}
	mapped := MapStatus(st.TransactionStatus, st.FraudStatus)
	if mapped == "" || mapped == p.PaymentStatus {
		return &p, nil
	}

	var out *model.PaymentModel
	err = db.Transaction(func(tx *gorm.DB) error {
		locked, err := lockPayment(tx, "payment_id = ?", p.PaymentID)
		if err != nil {
			return err
		}
		if err := ApplyStatus(tx, locked, StatusUpdate{Status: mapped, TransactionID: st.TransactionID, PaymentType: st.PaymentType}); err != nil {
			return err
		}
		out = locked
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

/* =========================================================
   MANUAL TRANSFER
========================================================= */

func SubmitProof(ctx context.Context, db *gorm.DB, userID uuid.UUID, proofURL string) (*model.PaymentModel, error) {
	db = db.WithContext(ctx)
	u, err := loadUser(db, userID)
	if err != nil {
		return nil, err
	}
	if u.PaymentStatus == userModel.PaymentStatusApproved {
		return nil, ErrAlreadyPaid
	}

	p := model.PaymentModel{
		PaymentUserID:   u.ID,
		PaymentOrderID:  NewOrderID(u.ID),
		PaymentAmount:   settingsService.TestPrice(db),
		PaymentMethod:   model.MethodManualTransfer,
		PaymentStatus:   model.StatusPending,
		PaymentProofURL: &proofURL,
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&p).Error; err != nil {
			return err
		}
		return tx.Model(&userModel.UserModel{}).Where("id = ?", u.ID).Updates(map[string]any{
			"payment_status":   userModel.PaymentStatusPending,
			"paid_test_status": userModel.TestStatusPendingPayment,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Review: admin approve/reject bukti transfer manual.
func Review(ctx context.Context, db *gorm.DB, paymentID uuid.UUID, approve bool, note string) (*model.PaymentModel, error) {
	var out *model.PaymentModel
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := lockPayment(tx, "payment_id = ?", paymentID)
		if err != nil {
			return err
		}
		if p.PaymentMethod != model.MethodManualTransfer || p.PaymentStatus != model.StatusPending {
			return ErrNotReviewable
		}
		if note != "" {
			if err := tx.Model(p).Update("payment_admin_note", note).Error; err != nil {
				return err
			}
			p.PaymentAdminNote = &note
		}
		status := model.StatusRejected
		if approve {
			status = model.StatusSettlement
		}
		if err := ApplyStatus(tx, p, StatusUpdate{Status: status}); err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

/* =========================================================
   STATS (admin)
========================================================= */

type Stats struct {
	Total        int64            `json:"total"`
	ByStatus     map[string]int64 `json:"by_status"`
	TotalRevenue int64            `json:"total_revenue"`
	PendingProof int64            `json:"pending_proof"`
}

func GetStats(ctx context.Context, db *gorm.DB) (Stats, error) {
	db = db.WithContext(ctx)
	out := Stats{ByStatus: map[string]int64{}}

	var rows []struct {
		Status string
		Total  int64
	}
	if err := db.Model(&model.PaymentModel{}).
		Select("payment_status AS status, COUNT(*) AS total").
		Group("payment_status").Scan(&rows).Error; err != nil {
		return out, err
	}
	for _, r := range rows {
		out.ByStatus[r.Status] = r.Total
		out.Total += r.Total
	}

	if err := db.Model(&model.PaymentModel{}).
		Where("payment_status = ?", model.StatusSettlement).
		Select("COALESCE(SUM(payment_amount), 0)").Scan(&out.TotalRevenue).Error; err != nil {
		return out, err
	}
	if err := db.Model(&model.PaymentModel{}).
		Where("payment_method = ? AND payment_status = ?", model.MethodManualTransfer, model.StatusPending).
		Count(&out.PendingProof).Error; err != nil {
		return out, err
	}
	return out, nil
}
