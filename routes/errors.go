package routes

import (
	"errors"
	"strconv"

	"github.com/kataras/iris/v12"

	"github.com/Residentia-pg/residentia-backend/services"
	"github.com/Residentia-pg/residentia-backend/utils"
)

// handleServiceError maps service sentinel errors to problem responses.
func handleServiceError(err error, ctx iris.Context) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.CreateNotFound(ctx)
	case errors.Is(err, services.ErrForbidden):
		utils.CreateError(iris.StatusForbidden, "Forbidden", "You are not allowed to perform this operation.", ctx)
	case errors.Is(err, services.ErrAlreadyDecided):
		utils.CreateError(iris.StatusConflict, "Conflict", "This change request has already been decided.", ctx)
	case errors.Is(err, services.ErrSignatureInvalid):
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "Payment signature verification failed.", ctx)
	case errors.Is(err, services.ErrGatewayUnavailable):
		utils.CreateError(iris.StatusBadGateway, "Bad Gateway", "Payment gateway is unavailable, try again later.", ctx)
	case errors.Is(err, services.ErrValidationFailed):
		utils.CreateError(iris.StatusUnprocessableEntity, "Unprocessable Entity", err.Error(), ctx)
	default:
		utils.CreateInternalServerError(ctx)
	}
}

func paramUint(ctx iris.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(ctx.Params().Get(name), 10, 32)
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", name+" must be a positive integer.", ctx)
		return 0, false
	}
	return uint(value), true
}
