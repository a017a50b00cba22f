package service

import (
	"crypto/sha512"
	"encoding/hex"
	"strings"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/midtrans/midtrans-go/snap"

	"newmeclass_backend/internals/features/payments/model"
)

/* =========================================================
   Midtrans Gateway
========================================================= */

// Gateway: subset Midtrans yang dipakai (Snap + Core API status).
type Gateway interface {
	CreateSnap(req *snap.Request) (token, redirectURL string, err error)
	Status(orderID string) (*GatewayStatus, error)
}

type GatewayStatus struct {
	OrderID           string
	TransactionStatus string
	FraudStatus       string
	TransactionID     string
	PaymentType       string
	GrossAmount       string
}

type midtransGateway struct {
	snap snap.Client
	core coreapi.Client
}

// NewMidtransGateway: useProduction=false berarti Sandbox.
func NewMidtransGateway(serverKey string, useProduction bool) Gateway {
	env := midtrans.Sandbox
	if useProduction {
		env = midtrans.Production
	}
	g := &midtransGateway{}
	g.snap.New(serverKey, env)
	g.core.New(serverKey, env)
	return g
}

func (g *midtransGateway) CreateSnap(req *snap.Request) (string, string, error) {
	resp, mErr := g.snap.CreateTransaction(req)
	if mErr != nil {
		return "", "", mErr
	}
	return resp.Token, resp.RedirectURL, nil
}

func (g *midtransGateway) Status(orderID string) (*GatewayStatus, error) {
	resp, mErr := g.core.CheckTransaction(orderID)
	if mErr != nil {
		return nil, mErr
	}
	return &GatewayStatus{
		OrderID:           resp.OrderID,
		TransactionStatus: resp.TransactionStatus,
		FraudStatus:       resp.FraudStatus,
		TransactionID:     resp.TransactionID,
		PaymentType:       resp.PaymentType,
		GrossAmount:       resp.GrossAmount,
	}, nil
}

/* =========================================================
   Status & signature
========================================================= */

// MapStatus: status Midtrans → status payment internal. "" = tidak diproses.
func MapStatus(transactionStatus, fraudStatus string) string {
	switch strings.ToLower(transactionStatus) {
	case "capture":
		switch strings.ToLower(fraudStatus) {
		case "accept", "":
			return model.StatusSettlement
		case "challenge":
			return model.StatusPending
		default:
			return model.StatusFailed
		}
	case "settlement":
		return model.StatusSettlement
	case "pending":
		return model.StatusPending
	case "cancel", "deny", "expire", "failure":
		return model.StatusFailed
	}
	return ""
}

// SHA512(order_id + status_code + gross_amount + server_key)
func Signature(orderID, statusCode, grossAmount, serverKey string) string {
	h := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	return hex.EncodeToString(h[:])
}

func VerifySignature(orderID, statusCode, grossAmount, serverKey, signature string) bool {
	if signature == "" {
		return false
	}
	return strings.EqualFold(Signature(orderID, statusCode, grossAmount, serverKey), signature)
}
