package routes

import (
	"github.com/kataras/iris/v12"

	"github.com/Residentia-pg/residentia-backend/models"
	"github.com/Residentia-pg/residentia-backend/storage"
	"github.com/Residentia-pg/residentia-backend/utils"
)

type PropertyInput struct {
	PropertyName  string `json:"propertyName" validate:"required,max=256"`
	Address       string `json:"address" validate:"required,max=512"`
	City          string `json:"city" validate:"required,max=256"`
	State         string `json:"state" validate:"required,max=256"`
	Pincode       string `json:"pincode" validate:"required,len=6"`
	RentAmount    int    `json:"rentAmount" validate:"required,gt=0"`
	SharingType   string `json:"sharingType" validate:"max=64"`
	MaxCapacity   int    `json:"maxCapacity" validate:"gte=0"`
	AvailableBeds int    `json:"availableBeds" validate:"gte=0"`
	FoodIncluded  bool   `json:"foodIncluded"`
	Description   string `json:"description" validate:"max=4096"`
	MapLink       string `json:"mapLink" validate:"omitempty,url"`
	ImageURL      string `json:"imageUrl" validate:"omitempty,url"`
	Amenities     string `json:"amenities" validate:"max=1024"`
}

// ListProperties is the public catalogue: ACTIVE listings only, optionally
// filtered by city.
func ListProperties(ctx iris.Context) {
	query := storage.DB.Where("status = ?", models.PropertyStatusActive)
	if city := ctx.URLParam("city"); city != "" {
		query = query.Where("city ILIKE ?", city)
	}

	var properties []models.Property
	if err := query.Order("created_at DESC").Find(&properties).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(properties)
}

func GetProperty(ctx iris.Context) {
	id, ok := paramUint(ctx, "id")
	if !ok {
		return
	}

	var property models.Property
	if err := storage.DB.Preload("Reviews").First(&property, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	ctx.JSON(property)
}

// CreateProperty publishes a listing directly, without moderation. Owners
// who want review use the change request flow instead.
func CreateProperty(ctx iris.Context) {
	ownerID := ctx.Values().Get("userID").(uint)

	var input PropertyInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	property := models.Property{
		OwnerID:       ownerID,
		PropertyName:  input.PropertyName,
		Address:       input.Address,
		City:          input.City,
		State:         input.State,
		Pincode:       input.Pincode,
		RentAmount:    input.RentAmount,
		SharingType:   input.SharingType,
		MaxCapacity:   input.MaxCapacity,
		AvailableBeds: input.AvailableBeds,
		FoodIncluded:  input.FoodIncluded,
		Description:   input.Description,
		MapLink:       input.MapLink,
		ImageURL:      input.ImageURL,
		Amenities:     input.Amenities,
		Status:        models.PropertyStatusActive,
	}
	if err := storage.DB.Create(&property).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(property)
}

func GetOwnerProperties(ctx iris.Context) {
	ownerID := ctx.Values().Get("userID").(uint)

	var properties []models.Property
	if err := storage.DB.Where("owner_id = ?", ownerID).
		Order("created_at DESC").Find(&properties).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(properties)
}

func UpdateProperty(ctx iris.Context) {
	id, ok := paramUint(ctx, "id")
	if !ok {
		return
	}

	ownerID := ctx.Values().Get("userID").(uint)
	var property models.Property
	if err := storage.DB.First(&property, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	if property.OwnerID != ownerID {
		utils.CreateError(iris.StatusForbidden, "Forbidden", "You do not own this property.", ctx)
		return
	}

	var input PropertyInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	property.PropertyName = input.PropertyName
	property.Address = input.Address
	property.City = input.City
	property.State = input.State
	property.Pincode = input.Pincode
	property.RentAmount = input.RentAmount
	property.SharingType = input.SharingType
	property.MaxCapacity = input.MaxCapacity
	property.AvailableBeds = input.AvailableBeds
	property.FoodIncluded = input.FoodIncluded
	property.Description = input.Description
	property.MapLink = input.MapLink
	property.ImageURL = input.ImageURL
	property.Amenities = input.Amenities

	if err := storage.DB.Save(&property).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(property)
}

func DeleteProperty(ctx iris.Context) {
	id, ok := paramUint(ctx, "id")
	if !ok {
		return
	}

	ownerID := ctx.Values().Get("userID").(uint)
	var property models.Property
	if err := storage.DB.First(&property, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	if property.OwnerID != ownerID {
		utils.CreateError(iris.StatusForbidden, "Forbidden", "You do not own this property.", ctx)
		return
	}

	if err := storage.DB.Delete(&property).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusNoContent)
}
