package routes

import (
	"strings"

	"github.com/kataras/iris/v12"

	"github.com/Residentia-pg/residentia-backend/models"
	"github.com/Residentia-pg/residentia-backend/storage"
	"github.com/Residentia-pg/residentia-backend/utils"
)

type ReviewInput struct {
	PropertyID uint   `json:"propertyId" validate:"required"`
	Stars      int    `json:"stars" validate:"required,min=1,max=5"`
	Body       string `json:"body" validate:"max=4096"`
}

// CreateReview lets a client review a property after a confirmed stay with a
// past checkout date.
func CreateReview(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var input ReviewInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var user models.RegularUser
	if err := storage.DB.First(&user, userID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var bookings []models.Booking
	if err := storage.DB.Where("property_id = ? AND tenant_email = ?",
		input.PropertyID, strings.ToLower(user.Email)).Find(&bookings).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	eligible := false
	for i := range bookings {
		if bookings[i].CanReview() {
			eligible = true
			break
		}
	}
	if !eligible {
		utils.CreateError(iris.StatusForbidden, "Forbidden",
			"Reviews require a confirmed booking with a past checkout date.", ctx)
		return
	}

	review := models.Review{
		UserID:     userID,
		PropertyID: input.PropertyID,
		Stars:      input.Stars,
		Body:       input.Body,
	}
	if err := storage.DB.Create(&review).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(review)
}

func ListPropertyReviews(ctx iris.Context) {
	propertyID, ok := paramUint(ctx, "id")
	if !ok {
		return
	}

	var reviews []models.Review
	if err := storage.DB.Preload("User").
		Where("property_id = ?", propertyID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(reviews)
}

func AdminDeleteReview(ctx iris.Context) {
	id, ok := paramUint(ctx, "id")
	if !ok {
		return
	}

	var review models.Review
	if err := storage.DB.First(&review, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if err := storage.DB.Delete(&review).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "DELETE_REVIEW", "review", review.ID, review, nil)
	ctx.StatusCode(iris.StatusNoContent)
}
