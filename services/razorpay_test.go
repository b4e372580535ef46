package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRazorpayClientCreateOrder(t *testing.T) {
	var gotBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/orders", r.URL.Path)

		user, _, ok := r.BasicAuth()
		require.True(t, ok)
		require.Equal(t, "rzp_test_key", user)

		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(GatewayOrder{
			ID:       "order_abc",
			Amount:   950000,
			Currency: "INR",
			Receipt:  "booking_7",
			Status:   "created",
		})
	}))
	defer server.Close()

	t.Setenv("RAZORPAY_BASE_URL", server.URL)
	t.Setenv("RAZORPAY_KEY_ID", "rzp_test_key")
	t.Setenv("RAZORPAY_KEY_SECRET", "rzp_test_secret")

	order, err := NewRazorpayClient().CreateOrder(950000, "INR", "booking_7")

	require.NoError(t, err)
	assert.Equal(t, "order_abc", order.ID)
	assert.Equal(t, int64(950000), order.Amount)
	assert.Equal(t, float64(950000), gotBody["amount"])
	assert.Equal(t, "INR", gotBody["currency"])
	assert.Equal(t, "booking_7", gotBody["receipt"])
}

func TestRazorpayClientErrorResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"description":"server error"}}`))
	}))
	defer server.Close()

	t.Setenv("RAZORPAY_BASE_URL", server.URL)

	_, err := NewRazorpayClient().CreateOrder(950000, "INR", "booking_7")
	assert.Error(t, err)
}
