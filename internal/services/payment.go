package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	razorpay "github.com/razorpay/razorpay-go"

	"github.com/fooddash-app/fooddash-backend/internal/models"
	"github.com/fooddash-app/fooddash-backend/internal/storage"
)

// PaymentGateway creates payment intents on the external processor
type PaymentGateway interface {
	CreateOrder(amountPaise int64, currency string, receipt string, notes map[string]interface{}) (string, error)
}

// RazorpayGateway implements PaymentGateway against the Razorpay Orders API
type RazorpayGateway struct {
	client *razorpay.Client
}

// NewRazorpayGateway creates the Razorpay-backed gateway
func NewRazorpayGateway(keyID string, keySecret string) *RazorpayGateway {
	return &RazorpayGateway{client: razorpay.NewClient(keyID, keySecret)}
}

func (g *RazorpayGateway) CreateOrder(amountPaise int64, currency string, receipt string, notes map[string]interface{}) (string, error) {
	data := map[string]interface{}{
		"amount":          amountPaise,
		"currency":        currency,
		"receipt":         receipt,
		"payment_capture": 1,
	}
	if len(notes) > 0 {
		data["notes"] = notes
	}

	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		return "", err
	}
	id, ok := body["id"].(string)
	if !ok || id == "" {
		return "", fmt.Errorf("gateway returned no order id")
	}
	return id, nil
}

// VerifyPaymentRequest is the signed confirmation posted back after checkout
type VerifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpayOrderId"`
	RazorpayPaymentID string `json:"razorpayPaymentId"`
	RazorpaySignature string `json:"razorpaySignature"`
	AppOrderID        string `json:"appOrderId"`
}

// GatewayOrderResult is returned to the client so it can open checkout
type GatewayOrderResult struct {
	KeyID          string `json:"razorpayKeyId"`
	GatewayOrderID string `json:"razorpayOrderId"`
	AppOrderID     string `json:"appOrderId"`
	AmountPaise    int64  `json:"amountInPaise"`
	Currency       string `json:"currency"`
}

// PostPaymentHook runs after a verified payment, dispatched by purpose
type PostPaymentHook func(ref *models.GatewayOrder) error

// PaymentService creates gateway orders, verifies signed callbacks and
// reconciles order/payment state. It is the only writer of payment status.
type PaymentService struct {
	store     storage.Store
	gateway   PaymentGateway
	keyID     string
	keySecret string
	currency  string

	hooks map[models.PaymentPurpose]PostPaymentHook

	// serializes Finalize per order so duplicate gateway callbacks cannot
	// interleave field writes
	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

// NewPaymentService creates a new payment service
func NewPaymentService(store storage.Store, gateway PaymentGateway, keyID, keySecret, currency string) *PaymentService {
	return &PaymentService{
		store:     store,
		gateway:   gateway,
		keyID:     keyID,
		keySecret: keySecret,
		currency:  currency,
		hooks:     make(map[models.PaymentPurpose]PostPaymentHook),
		locks:     make(map[string]*sync.Mutex),
	}
}

// RegisterHook attaches a post-payment action for a purpose
func (s *PaymentService) RegisterHook(purpose models.PaymentPurpose, hook PostPaymentHook) {
	s.hooks[purpose] = hook
}

// ToPaise converts a rupee amount to integer paise, rounding half up
func ToPaise(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// CreateGatewayOrder creates a payment intent on the gateway and records
// what it pays for. For food orders the gateway order id is stored on the
// order and its payment status moves to PROCESSING.
func (s *PaymentService) CreateGatewayOrder(amount float64, appOrderID string, purpose models.PaymentPurpose, referenceID uint) (*GatewayOrderResult, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrValidation)
	}

	amountPaise := ToPaise(amount)
	notes := map[string]interface{}{"app_order_id": appOrderID, "purpose": string(purpose)}

	gatewayOrderID, err := s.gateway.CreateOrder(amountPaise, s.currency, appOrderID, notes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}

	ref := &models.GatewayOrder{
		GatewayOrderID: gatewayOrderID,
		AppOrderID:     appOrderID,
		Purpose:        purpose,
		ReferenceID:    referenceID,
		AmountPaise:    amountPaise,
	}
	if _, err := s.store.CreateGatewayOrder(ref); err != nil {
		return nil, fmt.Errorf("failed to record gateway order: %w", err)
	}

	if purpose == models.PurposeFoodOrder && appOrderID != "" {
		if order, err := s.store.GetOrderByOrderID(appOrderID); err == nil {
			order.RazorpayOrderID = gatewayOrderID
			order.PaymentStatus = models.PaymentStatusProcessing
			if err := s.store.UpdateOrder(order); err != nil {
				return nil, fmt.Errorf("failed to link gateway order: %w", err)
			}
		}
	}

	return &GatewayOrderResult{
		KeyID:          s.keyID,
		GatewayOrderID: gatewayOrderID,
		AppOrderID:     appOrderID,
		AmountPaise:    amountPaise,
		Currency:       s.currency,
	}, nil
}

// VerifySignature recomputes the HMAC-SHA256 of "orderId|paymentId" under
// the key secret and compares it against the supplied signature. This is
// the sole trust boundary for payment confirmation.
func (s *PaymentService) VerifySignature(req VerifyPaymentRequest) bool {
	expected := signPayload(req.RazorpayOrderID+"|"+req.RazorpayPaymentID, s.keySecret)
	return hmac.Equal([]byte(expected), []byte(req.RazorpaySignature))
}

// Finalize records the outcome of a verified (or failed) payment. The
// Payment row is upserted by order, so duplicate callbacks are harmless;
// per-order locking keeps concurrent duplicates from tearing field writes.
func (s *PaymentService) Finalize(req VerifyPaymentRequest, isValid bool) error {
	ref, err := s.store.GetGatewayOrder(req.RazorpayOrderID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return err
	}

	appOrderID := req.AppOrderID
	purpose := models.PurposeFoodOrder
	if ref != nil {
		purpose = ref.Purpose
		if ref.AppOrderID != "" {
			appOrderID = ref.AppOrderID
		}
	}

	lock := s.lockFor(appOrderID)
	lock.Lock()
	defer lock.Unlock()

	if purpose == models.PurposeFoodOrder {
		if err := s.finalizeFoodOrder(req, ref, appOrderID, isValid); err != nil {
			return err
		}
	}

	if isValid {
		if hook, ok := s.hooks[purpose]; ok && ref != nil {
			if err := hook(ref); err != nil {
				return fmt.Errorf("post-payment hook for %s failed: %w", purpose, err)
			}
		}
	}
	return nil
}

func (s *PaymentService) finalizeFoodOrder(req VerifyPaymentRequest, ref *models.GatewayOrder, appOrderID string, isValid bool) error {
	order, err := s.store.GetOrderByOrderID(appOrderID)
	if errors.Is(err, storage.ErrNotFound) {
		// Nothing to reconcile (e.g. the id never existed); record nothing
		return nil
	}
	if err != nil {
		return err
	}

	if ref != nil && ref.AmountPaise != ToPaise(order.TotalAmount) {
		log.Printf("⚠️  Gateway amount %d paise does not match order %s total %.2f",
			ref.AmountPaise, order.OrderID, order.TotalAmount)
	}

	payment, err := s.store.GetPaymentByOrder(order.ID)
	if errors.Is(err, storage.ErrNotFound) {
		payment = &models.Payment{OrderID: order.ID}
	} else if err != nil {
		return err
	}

	now := time.Now()
	payment.TransactionID = req.RazorpayPaymentID
	payment.Amount = order.TotalAmount
	payment.Method = models.PaymentMethodRazorpay
	payment.PaymentDate = &now

	if isValid {
		payment.Status = models.PaymentStatusCompleted
		order.PaymentStatus = models.PaymentStatusCompleted
		order.Status = models.OrderStatusConfirmed
		order.RazorpayPaymentID = req.RazorpayPaymentID
		order.RazorpaySignature = req.RazorpaySignature
	} else {
		payment.Status = models.PaymentStatusFailed
		order.PaymentStatus = models.PaymentStatusFailed
	}

	if err := s.store.SavePayment(payment); err != nil {
		return fmt.Errorf("failed to save payment: %w", err)
	}
	if err := s.store.UpdateOrder(order); err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	return nil
}

func (s *PaymentService) lockFor(key string) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()

	lock, ok := s.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[key] = lock
	}
	return lock
}

func signPayload(data string, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(data))
	return hex.EncodeToString(mac.Sum(nil))
}
