package routes

import (
	"github.com/kataras/iris/v12"

	"github.com/Residentia-pg/residentia-backend/models"
	"github.com/Residentia-pg/residentia-backend/services"
	"github.com/Residentia-pg/residentia-backend/storage"
	"github.com/Residentia-pg/residentia-backend/utils"
)

// AdminDashboard returns headline counts plus captured revenue.
func AdminDashboard(ctx iris.Context) {
	var (
		owners     int64
		clients    int64
		properties int64
		bookings   int64
		pending    int64
		revenue    float64
	)

	storage.DB.Model(&models.Owner{}).Count(&owners)
	storage.DB.Model(&models.RegularUser{}).Count(&clients)
	storage.DB.Model(&models.Property{}).Count(&properties)
	storage.DB.Model(&models.Booking{}).Count(&bookings)
	storage.DB.Model(&models.ChangeRequest{}).
		Where("status = ?", models.RequestStatusPending).Count(&pending)
	storage.DB.Model(&models.Booking{}).
		Where("payment_status = ?", models.PaymentStatusPaid).
		Select("COALESCE(SUM(amount), 0)").Scan(&revenue)

	ctx.JSON(iris.Map{
		"owners":                owners,
		"clients":               clients,
		"properties":            properties,
		"bookings":              bookings,
		"pendingChangeRequests": pending,
		"revenue":               revenue,
	})
}

func AdminListBookings(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 20)

	bookings, total, err := services.NewBookingService(storage.DB).ListAll(page, perPage)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, bookings, page, perPage, total)
}

func AdminDeleteBooking(ctx iris.Context) {
	id, ok := paramUint(ctx, "id")
	if !ok {
		return
	}

	service := services.NewBookingService(storage.DB)
	before, err := service.Get(id)
	if err != nil {
		handleServiceError(err, ctx)
		return
	}

	if err := service.Delete(id); err != nil {
		handleServiceError(err, ctx)
		return
	}

	utils.Audit(ctx, "DELETE_BOOKING", "booking", id, before, nil)
	ctx.StatusCode(iris.StatusNoContent)
}
