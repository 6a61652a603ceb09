package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/midtrans/midtrans-go/snap"
)

type SnapCreator interface {
	CreateTransaction(req *snap.Request) (*snap.Response, *midtrans.Error)
}

type TransactionChecker interface {
	CheckTransaction(orderID string) (*coreapi.TransactionStatusResponse, *midtrans.Error)
}

func midtransEnv(useProd bool) midtrans.EnvironmentType {
	if useProd {
		return midtrans.Production
	}
	return midtrans.Sandbox
}

// Panggil saat bootstrap app
func NewMidtransClients(serverKey string, useProd bool) (*snap.Client, *coreapi.Client) {
	var s snap.Client
	s.New(serverKey, midtransEnv(useProd))
	var c coreapi.Client
	c.New(serverKey, midtransEnv(useProd))
	return &s, &c
}

/* ===================== Snap gateway ===================== */

type MidtransGateway struct {
	Snap      SnapCreator
	FinishURL string // callback finish → /api/midtrans-finish
}

func (g MidtransGateway) Method() string      { return MethodMidtrans }
func (g MidtransGateway) OrderPrefix() string { return "MIDTRANS" }

// Buat Snap transaction + redirect_url
func (g MidtransGateway) CheckoutURL(_ context.Context, req CheckoutRequest) (string, error) {
	if g.Snap == nil {
		return "", fmt.Errorf("%w: midtrans client missing", ErrNotConfigured)
	}
	finish, err := absoluteURL(g.FinishURL)
	if err != nil {
		return "", err
	}

	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  req.OrderID,
			GrossAmt: req.Amount,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: req.User.ParentName,
			Phone: req.User.ParentPhone,
		},
		Items: &[]midtrans.ItemDetails{{
			ID:    "registration",
			Name:  "Event Registration Fee",
			Price: req.Amount,
			Qty:   1,
		}},
		Callbacks: &snap.Callbacks{Finish: finish},
	}

	resp, mErr := g.Snap.CreateTransaction(snapReq)
	if mErr != nil {
		log.Println("[ERROR] Midtrans CreateTransaction failed:", mErr.Message)
		return "", fmt.Errorf("midtrans create transaction: %s", mErr.Message)
	}
	if resp == nil || resp.RedirectURL == "" {
		return "", fmt.Errorf("%w: midtrans returned no redirect_url", ErrNotConfigured)
	}
	return resp.RedirectURL, nil
}

/* ===================== Verifikasi status ===================== */

const (
	OutcomeSuccess = "success"
	OutcomePending = "pending"
	OutcomeFailed  = "failed"
)

// MapMidtransStatus memetakan transaction_status Midtrans ke status halaman registrasi.
func MapMidtransStatus(transactionStatus, fraudStatus string) string {
	switch strings.ToLower(transactionStatus) {
	case "settlement":
		return OutcomeSuccess
	case "capture":
		if fraudStatus == "" || strings.EqualFold(fraudStatus, "accept") {
			return OutcomeSuccess
		}
		return OutcomeFailed
	case "pending":
		return OutcomePending
	default: // deny, cancel, expire, failure
		return OutcomeFailed
	}
}

type MidtransVerifier struct {
	Core TransactionChecker
}

// Verify menanyakan status transaksi langsung ke Midtrans (tidak percaya query string).
func (v MidtransVerifier) Verify(orderID string) (string, error) {
	resp, mErr := v.Core.CheckTransaction(orderID)
	if mErr != nil {
		return "", fmt.Errorf("midtrans check transaction %s: %s", orderID, mErr.Message)
	}
	return MapMidtransStatus(resp.TransactionStatus, resp.FraudStatus), nil
}
