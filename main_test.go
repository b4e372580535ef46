package main

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/httptest"
	"github.com/stretchr/testify/require"

	"github.com/Residentia-pg/residentia-backend/storage"
	"github.com/Residentia-pg/residentia-backend/utils"
)

func TestBookingAndPaymentRequireToken(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "access-secret")
	t.Setenv("REFRESH_TOKEN_SECRET", "refresh-secret")

	e := httptest.New(t, newApp())

	e.PATCH("/api/booking/7").
		WithJSON(map[string]string{"status": "CONFIRMED"}).
		Expect().Status(iris.StatusUnauthorized)
	e.POST("/api/booking/7/cancel").Expect().Status(iris.StatusUnauthorized)
	e.POST("/api/booking").
		WithJSON(map[string]string{"tenantName": "Ravi Kumar"}).
		Expect().Status(iris.StatusUnauthorized)
	e.GET("/api/booking/7").Expect().Status(iris.StatusUnauthorized)
	e.POST("/api/payment/order/7").Expect().Status(iris.StatusUnauthorized)
	e.POST("/api/payment/verify").Expect().Status(iris.StatusUnauthorized)
	e.GET("/api/payment/status/7").Expect().Status(iris.StatusUnauthorized)
}

func TestBookingStatusWriteNeedsOwnerOrAdmin(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "access-secret")
	t.Setenv("REFRESH_TOKEN_SECRET", "refresh-secret")

	mr := miniredis.RunT(t)
	storage.Redis = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { storage.Redis = nil })

	pair, err := utils.CreateTokenPair(42, "client")
	require.NoError(t, err)

	e := httptest.New(t, newApp())

	e.PATCH("/api/booking/7").
		WithHeader("Authorization", "Bearer "+string(pair.AccessToken)).
		WithJSON(map[string]string{"status": "CONFIRMED"}).
		Expect().Status(iris.StatusForbidden)
}
