package routes

import (
	"github.com/kataras/iris/v12"

	"github.com/Residentia-pg/residentia-backend/services"
	"github.com/Residentia-pg/residentia-backend/storage"
	"github.com/Residentia-pg/residentia-backend/utils"
)

type VerifyPaymentInput struct {
	RazorpayOrderID   string `json:"razorpay_order_id" validate:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" validate:"required"`
	RazorpaySignature string `json:"razorpay_signature" validate:"required"`
}

func newPaymentService() *services.PaymentService {
	return services.NewPaymentService(storage.DB, services.NewRazorpayClient(), services.NewEmailService())
}

func CreatePaymentOrder(ctx iris.Context) {
	bookingID, ok := paramUint(ctx, "id")
	if !ok {
		return
	}

	order, err := newPaymentService().CreateOrder(bookingID)
	if err != nil {
		handleServiceError(err, ctx)
		return
	}

	ctx.JSON(order)
}

func VerifyPayment(ctx iris.Context) {
	var input VerifyPaymentInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	booking, err := newPaymentService().VerifyPayment(
		input.RazorpayOrderID, input.RazorpayPaymentID, input.RazorpaySignature)
	if err != nil {
		handleServiceError(err, ctx)
		return
	}

	ctx.JSON(booking)
}

func GetPaymentStatus(ctx iris.Context) {
	bookingID, ok := paramUint(ctx, "id")
	if !ok {
		return
	}

	status, err := newPaymentService().Status(bookingID)
	if err != nil {
		handleServiceError(err, ctx)
		return
	}

	ctx.JSON(status)
}
