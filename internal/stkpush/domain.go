// Package stkpush integrates with the Daraja mobile-money gateway.
package stkpush

import "time"

// Status tracks the lifecycle of one collection attempt. A push starts
// pending and the gateway callback resolves it to completed or failed.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Push is one mobile-money collection attempt with the raw gateway
// response retained for audit.
type Push struct {
	ID                int64     `json:"id"`
	Phone             string    `json:"phone"`
	Amount            int64     `json:"amount"`
	Reference         string    `json:"reference"`
	Status            Status    `json:"status"`
	Response          *string   `json:"response,omitempty"`
	MerchantRequestID *string   `json:"merchant_request_id,omitempty"`
	CheckoutRequestID *string   `json:"checkout_request_id,omitempty"`
	ResultCode        *string   `json:"result_code,omitempty"`
	ResultDesc        *string   `json:"result_desc,omitempty"`
	Paybill           *string   `json:"paybill,omitempty"`
	MerchantAccount   *string   `json:"merchant_account,omitempty"`
	Attempts          int       `json:"attempts"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// InitiateRequest is the payload for starting a collection.
type InitiateRequest struct {
	Phone           string  `json:"phone" validate:"required,max=15"`
	Amount          int64   `json:"amount" validate:"required,gt=0"`
	Paybill         *string `json:"paybill,omitempty"`
	MerchantAccount *string `json:"merchant_account,omitempty"`
}

// CallbackEnvelope is the asynchronous result document the gateway posts
// back after the customer responds to the push prompt.
type CallbackEnvelope struct {
	Body struct {
		StkCallback struct {
			MerchantRequestID string `json:"MerchantRequestID"`
			CheckoutRequestID string `json:"CheckoutRequestID"`
			ResultCode        int    `json:"ResultCode"`
			ResultDesc        string `json:"ResultDesc"`
		} `json:"stkCallback"`
	} `json:"Body"`
}

// historyLimit caps the stk-history listing.
const historyLimit = 20
