package routes

import (
	"encoding/json"
	"strings"

	"github.com/kataras/iris/v12"

	"github.com/Residentia-pg/residentia-backend/models"
	"github.com/Residentia-pg/residentia-backend/services"
	"github.com/Residentia-pg/residentia-backend/storage"
	"github.com/Residentia-pg/residentia-backend/utils"
)

type SubmitChangeRequestInput struct {
	PropertyID uint            `json:"propertyId"`
	ChangeType string          `json:"changeType" validate:"omitempty,oneof=CREATE UPDATE"`
	Payload    json.RawMessage `json:"payload" validate:"required"`
}

// SubmitChangeRequest files a CREATE or UPDATE moderation request. Missing
// changeType defaults to UPDATE.
func SubmitChangeRequest(ctx iris.Context) {
	ownerID := ctx.Values().Get("userID").(uint)

	var input SubmitChangeRequestInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	changeType := strings.ToUpper(input.ChangeType)
	if changeType == "" {
		changeType = models.ChangeTypeUpdate
	}

	service := services.NewChangeRequestService(storage.DB)

	var request *models.ChangeRequest
	var err error
	if changeType == models.ChangeTypeCreate {
		request, err = service.SubmitCreate(ownerID, input.Payload)
	} else {
		if input.PropertyID == 0 {
			utils.CreateError(iris.StatusBadRequest, "Bad Request", "propertyId is required for UPDATE requests.", ctx)
			return
		}
		request, err = service.SubmitUpdate(ownerID, input.PropertyID, input.Payload)
	}
	if err != nil {
		handleServiceError(err, ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(request)
}

func GetOwnerChangeRequests(ctx iris.Context) {
	ownerID := ctx.Values().Get("userID").(uint)

	requests, err := services.NewChangeRequestService(storage.DB).ListByOwner(ownerID)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(requests)
}

func AdminListChangeRequests(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 20)
	status := strings.ToUpper(ctx.URLParam("status"))

	requests, total, err := services.NewChangeRequestService(storage.DB).ListAll(status, page, perPage)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, requests, page, perPage, total)
}

func AdminGetChangeRequest(ctx iris.Context) {
	id, ok := paramUint(ctx, "id")
	if !ok {
		return
	}

	request, err := services.NewChangeRequestService(storage.DB).Get(id)
	if err != nil {
		handleServiceError(err, ctx)
		return
	}

	ctx.JSON(request)
}

func AdminApproveChangeRequest(ctx iris.Context) {
	id, ok := paramUint(ctx, "id")
	if !ok {
		return
	}

	service := services.NewChangeRequestService(storage.DB)
	before, err := service.Get(id)
	if err != nil {
		handleServiceError(err, ctx)
		return
	}

	request, err := service.Approve(id)
	if err != nil {
		handleServiceError(err, ctx)
		return
	}

	utils.Audit(ctx, "APPROVE_CHANGE_REQUEST", "change_request", request.ID, before, request)
	ctx.JSON(request)
}

func AdminRejectChangeRequest(ctx iris.Context) {
	id, ok := paramUint(ctx, "id")
	if !ok {
		return
	}

	service := services.NewChangeRequestService(storage.DB)
	before, err := service.Get(id)
	if err != nil {
		handleServiceError(err, ctx)
		return
	}

	request, err := service.Reject(id)
	if err != nil {
		handleServiceError(err, ctx)
		return
	}

	utils.Audit(ctx, "REJECT_CHANGE_REQUEST", "change_request", request.ID, before, request)
	ctx.JSON(request)
}
