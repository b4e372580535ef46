package routes

import (
	"time"

	"github.com/kataras/iris/v12"

	"github.com/Residentia-pg/residentia-backend/models"
	"github.com/Residentia-pg/residentia-backend/services"
	"github.com/Residentia-pg/residentia-backend/storage"
	"github.com/Residentia-pg/residentia-backend/utils"
)

func parseDate(value *string) (*time.Time, bool) {
	if value == nil || *value == "" {
		return nil, true
	}
	t, err := time.Parse("2006-01-02", *value)
	if err != nil {
		return nil, false
	}
	return &t, true
}

func CreateBooking(ctx iris.Context) {
	var input services.BookingInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if !utils.ValidatePhoneNumber(input.TenantPhone) {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "tenantPhone must be a valid Indian mobile number.", ctx)
		return
	}
	input.TenantPhone = utils.NormalizePhoneNumber(input.TenantPhone)

	checkIn, ok := parseDate(input.CheckInDate)
	if !ok {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "checkInDate must be formatted as YYYY-MM-DD.", ctx)
		return
	}
	checkOut, ok := parseDate(input.CheckOutDate)
	if !ok {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "checkOutDate must be formatted as YYYY-MM-DD.", ctx)
		return
	}
	if checkIn != nil && checkOut != nil && !checkOut.After(*checkIn) {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "checkOutDate must be after checkInDate.", ctx)
		return
	}

	booking, err := services.NewBookingService(storage.DB).Create(input, checkIn, checkOut)
	if err != nil {
		handleServiceError(err, ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(booking)
}

func GetBooking(ctx iris.Context) {
	id, ok := paramUint(ctx, "id")
	if !ok {
		return
	}

	booking, err := services.NewBookingService(storage.DB).Get(id)
	if err != nil {
		handleServiceError(err, ctx)
		return
	}

	ctx.JSON(booking)
}

func CancelBooking(ctx iris.Context) {
	id, ok := paramUint(ctx, "id")
	if !ok {
		return
	}

	booking, err := services.NewBookingService(storage.DB).Cancel(id)
	if err != nil {
		handleServiceError(err, ctx)
		return
	}

	ctx.JSON(booking)
}

func RestoreBooking(ctx iris.Context) {
	id, ok := paramUint(ctx, "id")
	if !ok {
		return
	}

	booking, err := services.NewBookingService(storage.DB).Restore(id)
	if err != nil {
		handleServiceError(err, ctx)
		return
	}

	ctx.JSON(booking)
}

func UpdateBooking(ctx iris.Context) {
	id, ok := paramUint(ctx, "id")
	if !ok {
		return
	}

	var input services.BookingUpdateInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.TenantPhone != nil {
		if !utils.ValidatePhoneNumber(*input.TenantPhone) {
			utils.CreateError(iris.StatusBadRequest, "Bad Request", "tenantPhone must be a valid Indian mobile number.", ctx)
			return
		}
		normalized := utils.NormalizePhoneNumber(*input.TenantPhone)
		input.TenantPhone = &normalized
	}

	booking, err := services.NewBookingService(storage.DB).Update(id, input)
	if err != nil {
		handleServiceError(err, ctx)
		return
	}

	ctx.JSON(booking)
}

// GetClientBookings lists the bookings made with the logged-in client's
// email address.
func GetClientBookings(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var user models.RegularUser
	if err := storage.DB.First(&user, userID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	bookings, err := services.NewBookingService(storage.DB).ListByTenant(user.Email)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(bookings)
}

func GetOwnerBookings(ctx iris.Context) {
	ownerID := ctx.Values().Get("userID").(uint)

	bookings, err := services.NewBookingService(storage.DB).ListByOwner(ownerID)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(bookings)
}

func GetPropertyBookings(ctx iris.Context) {
	propertyID, ok := paramUint(ctx, "id")
	if !ok {
		return
	}

	ownerID := ctx.Values().Get("userID").(uint)
	var property models.Property
	if err := storage.DB.First(&property, propertyID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	if property.OwnerID != ownerID {
		utils.CreateError(iris.StatusForbidden, "Forbidden", "You do not own this property.", ctx)
		return
	}

	bookings, err := services.NewBookingService(storage.DB).ListByProperty(propertyID)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(bookings)
}
