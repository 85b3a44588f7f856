package stkpush

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/dashel-erp/dashel-erp/internal/platform/httpx"
)

// PushRepository is the persistence contract for the stkpush service.
type PushRepository interface {
	Insert(ctx context.Context, push Push) (int64, error)
	History(ctx context.Context, limit int) ([]Push, error)
	UpdateByRequestIDs(ctx context.Context, status Status, resultCode, resultDesc, merchantRequestID, checkoutRequestID string) (int64, error)
	MarkStaleFailed(ctx context.Context, cutoff time.Time) (int64, error)
}

// Service coordinates gateway calls with push bookkeeping.
type Service struct {
	repo      PushRepository
	gateway   Gateway
	shortcode string
	logger    *slog.Logger
	now       func() time.Time
}

// NewService constructs an stkpush service. The shortcode is used as the
// default paybill when the request omits one.
func NewService(repo PushRepository, gateway Gateway, shortcode string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, gateway: gateway, shortcode: shortcode, logger: logger, now: time.Now}
}

// WithNow overrides the service clock for testing.
func (s *Service) WithNow(fn func() time.Time) {
	if fn != nil {
		s.now = fn
	}
}

// Initiate sends the push prompt and records the attempt. The attempt is
// persisted whatever the gateway answered; only a transport failure before
// a response skips the insert.
func (s *Service) Initiate(ctx context.Context, req InitiateRequest) (PushResponse, error) {
	var missing []string
	if strings.TrimSpace(req.Phone) == "" {
		missing = append(missing, "phone")
	}
	if req.Amount == 0 {
		missing = append(missing, "amount")
	}
	if len(missing) > 0 {
		return PushResponse{}, httpx.MissingFields(missing...)
	}
	if err := httpx.ValidateStruct(req); err != nil {
		return PushResponse{}, err
	}

	reference := fmt.Sprintf("HW%d", s.now().Unix())
	resp, raw, err := s.gateway.Push(ctx, req.Phone, req.Amount, reference)
	if err != nil {
		return PushResponse{}, err
	}

	paybill := s.shortcode
	if req.Paybill != nil {
		paybill = *req.Paybill
	}
	rawStr := string(raw)
	push := Push{
		Phone:           req.Phone,
		Amount:          req.Amount,
		Reference:       reference,
		Status:          StatusPending,
		Response:        &rawStr,
		Paybill:         &paybill,
		MerchantAccount: req.MerchantAccount,
		Attempts:        1,
	}
	if resp.MerchantRequestID != "" {
		push.MerchantRequestID = &resp.MerchantRequestID
	}
	if resp.CheckoutRequestID != "" {
		push.CheckoutRequestID = &resp.CheckoutRequestID
	}
	if resp.ResponseCode != "" {
		push.ResultCode = &resp.ResponseCode
	}
	if resp.ResponseDescription != "" {
		push.ResultDesc = &resp.ResponseDescription
	}
	if _, err := s.repo.Insert(ctx, push); err != nil {
		return PushResponse{}, fmt.Errorf("save stk push: %w", err)
	}

	if resp.ResponseCode != "0" {
		return resp, httpx.Validationf("STK push failed: %s", resp.ResponseDescription)
	}
	return resp, nil
}

// History returns the latest collection attempts.
func (s *Service) History(ctx context.Context) ([]Push, error) {
	pushes, err := s.repo.History(ctx, historyLimit)
	if err != nil {
		return nil, fmt.Errorf("stk history: %w", err)
	}
	return pushes, nil
}

// HandleCallback applies the asynchronous gateway result to the matching
// push. Errors are returned for logging only; the HTTP layer acknowledges
// the gateway regardless.
func (s *Service) HandleCallback(ctx context.Context, env CallbackEnvelope) error {
	cb := env.Body.StkCallback
	if cb.MerchantRequestID == "" && cb.CheckoutRequestID == "" {
		return nil
	}

	status := StatusFailed
	if cb.ResultCode == 0 {
		status = StatusCompleted
	}
	affected, err := s.repo.UpdateByRequestIDs(ctx, status, strconv.Itoa(cb.ResultCode), cb.ResultDesc,
		cb.MerchantRequestID, cb.CheckoutRequestID)
	if err != nil {
		return fmt.Errorf("apply stk callback: %w", err)
	}
	if affected == 0 {
		s.logger.Warn("stk callback matched no push",
			slog.String("merchant_request_id", cb.MerchantRequestID),
			slog.String("checkout_request_id", cb.CheckoutRequestID))
	}
	return nil
}

// ReconcileStale fails pending pushes older than maxAge and returns how
// many rows were closed.
func (s *Service) ReconcileStale(ctx context.Context, maxAge time.Duration) (int64, error) {
	affected, err := s.repo.MarkStaleFailed(ctx, s.now().Add(-maxAge))
	if err != nil {
		return 0, fmt.Errorf("reconcile stale pushes: %w", err)
	}
	return affected, nil
}
