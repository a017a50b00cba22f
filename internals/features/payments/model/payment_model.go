package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	MethodMidtrans       = "midtrans"
	MethodManualTransfer = "manual_transfer"

	StatusPending    = "pending"
	StatusSettlement = "settlement"
	StatusFailed     = "failed"
	StatusRejected   = "rejected"
)

// PaymentModel: satu transaksi pembelian tes premium.
type PaymentModel struct {
	PaymentID            uuid.UUID      `gorm:"column:payment_id;type:uuid;primaryKey" json:"payment_id"`
	PaymentUserID        uuid.UUID      `gorm:"column:payment_user_id;type:uuid;not null;index" json:"payment_user_id"`
	PaymentOrderID       string         `gorm:"column:payment_order_id;size:50;not null;uniqueIndex" json:"payment_order_id"`
	PaymentAmount        int64          `gorm:"column:payment_amount;not null" json:"payment_amount"`
	PaymentMethod        string         `gorm:"column:payment_method;type:varchar(20);not null" json:"payment_method"`
	PaymentStatus        string         `gorm:"column:payment_status;type:varchar(20);not null;index" json:"payment_status"`
	PaymentSnapToken     *string        `gorm:"column:payment_snap_token" json:"payment_snap_token,omitempty"`
	PaymentRedirectURL   *string        `gorm:"column:payment_redirect_url" json:"payment_redirect_url,omitempty"`
	PaymentTransactionID *string        `gorm:"column:payment_transaction_id;size:100" json:"payment_transaction_id,omitempty"`
	PaymentType          *string        `gorm:"column:payment_type;size:50" json:"payment_type,omitempty"`
	PaymentProofURL      *string        `gorm:"column:payment_proof_url" json:"payment_proof_url,omitempty"`
	PaymentAdminNote     *string        `gorm:"column:payment_admin_note" json:"payment_admin_note,omitempty"`
	PaymentPaidAt        *time.Time     `gorm:"column:payment_paid_at" json:"payment_paid_at,omitempty"`
	PaymentExpiredAt     *time.Time     `gorm:"column:payment_expired_at" json:"payment_expired_at,omitempty"`
	PaymentCreatedAt     time.Time      `gorm:"column:payment_created_at;autoCreateTime" json:"payment_created_at"`
	PaymentUpdatedAt     time.Time      `gorm:"column:payment_updated_at;autoUpdateTime" json:"payment_updated_at"`
	PaymentDeletedAt     gorm.DeletedAt `gorm:"column:payment_deleted_at;index" json:"-"`
}

func (PaymentModel) TableName() string {
	return "payments"
}

func (m *PaymentModel) BeforeCreate(tx *gorm.DB) error {
	if m.PaymentID == uuid.Nil {
		m.PaymentID = uuid.New()
	}
	return nil
}

const (
	EventReceived  = "received"
	EventProcessed = "processed"
	EventIgnored   = "ignored"
	EventFailed    = "failed"
)

// PaymentGatewayEventModel: log mentah notifikasi Midtrans.
type PaymentGatewayEventModel struct {
	PaymentGatewayEventID                uuid.UUID      `gorm:"column:payment_gateway_event_id;type:uuid;primaryKey" json:"payment_gateway_event_id"`
	PaymentGatewayEventOrderID           string         `gorm:"column:payment_gateway_event_order_id;size:50;index" json:"payment_gateway_event_order_id"`
	PaymentGatewayEventTransactionStatus string         `gorm:"column:payment_gateway_event_transaction_status;size:30" json:"payment_gateway_event_transaction_status"`
	PaymentGatewayEventFraudStatus       string         `gorm:"column:payment_gateway_event_fraud_status;size:30" json:"payment_gateway_event_fraud_status"`
	PaymentGatewayEventPayload           datatypes.JSON `gorm:"column:payment_gateway_event_payload" json:"payment_gateway_event_payload"`
	PaymentGatewayEventStatus            string         `gorm:"column:payment_gateway_event_status;size:20;not null" json:"payment_gateway_event_status"`
	PaymentGatewayEventError             *string        `gorm:"column:payment_gateway_event_error" json:"payment_gateway_event_error,omitempty"`
	PaymentGatewayEventCreatedAt         time.Time      `gorm:"column:payment_gateway_event_created_at;autoCreateTime" json:"payment_gateway_event_created_at"`
	PaymentGatewayEventProcessedAt       *time.Time     `gorm:"column:payment_gateway_event_processed_at" json:"payment_gateway_event_processed_at,omitempty"`
}

func (PaymentGatewayEventModel) TableName() string {
	return "payment_gateway_events"
}

func (m *PaymentGatewayEventModel) BeforeCreate(tx *gorm.DB) error {
	if m.PaymentGatewayEventID == uuid.Nil {
		m.PaymentGatewayEventID = uuid.New()
	}
	return nil
}
