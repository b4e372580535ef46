package services

import (
	"fmt"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
)

// GatewayOrder is the subset of the Razorpay order resource this service
// cares about.
type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// PaymentGateway creates orders on an external payment processor.
type PaymentGateway interface {
	CreateOrder(amountPaise int64, currency, receipt string) (*GatewayOrder, error)
}

type RazorpayClient struct {
	client *resty.Client
}

// NewRazorpayClient reads RAZORPAY_KEY_ID / RAZORPAY_KEY_SECRET for basic
// auth. RAZORPAY_BASE_URL overrides the live endpoint, mainly for tests.
func NewRazorpayClient() *RazorpayClient {
	baseURL := os.Getenv("RAZORPAY_BASE_URL")
	if baseURL == "" {
		baseURL = "https://api.razorpay.com"
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second).
		SetBasicAuth(os.Getenv("RAZORPAY_KEY_ID"), os.Getenv("RAZORPAY_KEY_SECRET"))

	return &RazorpayClient{client: client}
}

func (c *RazorpayClient) CreateOrder(amountPaise int64, currency, receipt string) (*GatewayOrder, error) {
	var order GatewayOrder

	resp, err := c.client.R().
		SetBody(map[string]interface{}{
			"amount":   amountPaise,
			"currency": currency,
			"receipt":  receipt,
		}).
		SetResult(&order).
		Post("/v1/orders")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("razorpay order create failed: %s: %s", resp.Status(), resp.String())
	}

	return &order, nil
}
