package routes

import (
	"errors"
	"strings"

	"github.com/kataras/iris/v12"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Residentia-pg/residentia-backend/models"
	"github.com/Residentia-pg/residentia-backend/storage"
	"github.com/Residentia-pg/residentia-backend/utils"
)

type RegisterOwnerInput struct {
	Name        string `json:"name" validate:"required,max=256"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8,max=256"`
	PhoneNumber string `json:"phoneNumber" validate:"required"`
}

type RegisterClientInput struct {
	FirstName   string `json:"firstName" validate:"required,max=256"`
	LastName    string `json:"lastName" validate:"required,max=256"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8,max=256"`
	PhoneNumber string `json:"phoneNumber" validate:"required"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	return string(bytes), err
}

func RegisterOwner(ctx iris.Context) {
	var input RegisterOwnerInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if !utils.ValidatePhoneNumber(input.PhoneNumber) {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "phoneNumber must be a valid Indian mobile number.", ctx)
		return
	}

	email := strings.ToLower(input.Email)
	var existing models.Owner
	if err := storage.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		utils.CreateEmailAlreadyRegistered(ctx)
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.CreateInternalServerError(ctx)
		return
	}

	hashed, err := hashPassword(input.Password)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	owner := models.Owner{
		Name:        input.Name,
		Email:       email,
		Password:    hashed,
		PhoneNumber: utils.NormalizePhoneNumber(input.PhoneNumber),
	}
	if err := storage.DB.Create(&owner).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	tokenPair, err := utils.CreateTokenPair(owner.ID, "owner")
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"ID":           owner.ID,
		"accessToken":  string(tokenPair.AccessToken),
		"refreshToken": string(tokenPair.RefreshToken),
	})
}

func LoginOwner(ctx iris.Context) {
	var input LoginInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var owner models.Owner
	if err := storage.DB.Where("email = ?", strings.ToLower(input.Email)).First(&owner).Error; err != nil {
		utils.CreateError(iris.StatusUnauthorized, "Unauthorized", "Invalid email or password.", ctx)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(owner.Password), []byte(input.Password)) != nil {
		utils.CreateError(iris.StatusUnauthorized, "Unauthorized", "Invalid email or password.", ctx)
		return
	}

	tokenPair, err := utils.CreateTokenPair(owner.ID, "owner")
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"ID":           owner.ID,
		"accessToken":  string(tokenPair.AccessToken),
		"refreshToken": string(tokenPair.RefreshToken),
	})
}

func RegisterClient(ctx iris.Context) {
	var input RegisterClientInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if !utils.ValidatePhoneNumber(input.PhoneNumber) {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "phoneNumber must be a valid Indian mobile number.", ctx)
		return
	}

	email := strings.ToLower(input.Email)
	var existing models.RegularUser
	if err := storage.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		utils.CreateEmailAlreadyRegistered(ctx)
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.CreateInternalServerError(ctx)
		return
	}

	hashed, err := hashPassword(input.Password)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	user := models.RegularUser{
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		Email:       email,
		Password:    hashed,
		PhoneNumber: utils.NormalizePhoneNumber(input.PhoneNumber),
	}
	if err := storage.DB.Create(&user).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	tokenPair, err := utils.CreateTokenPair(user.ID, "client")
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"ID":           user.ID,
		"accessToken":  string(tokenPair.AccessToken),
		"refreshToken": string(tokenPair.RefreshToken),
	})
}

func LoginClient(ctx iris.Context) {
	var input LoginInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var user models.RegularUser
	if err := storage.DB.Where("email = ?", strings.ToLower(input.Email)).First(&user).Error; err != nil {
		utils.CreateError(iris.StatusUnauthorized, "Unauthorized", "Invalid email or password.", ctx)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)) != nil {
		utils.CreateError(iris.StatusUnauthorized, "Unauthorized", "Invalid email or password.", ctx)
		return
	}

	tokenPair, err := utils.CreateTokenPair(user.ID, "client")
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"ID":           user.ID,
		"accessToken":  string(tokenPair.AccessToken),
		"refreshToken": string(tokenPair.RefreshToken),
	})
}

func LoginAdmin(ctx iris.Context) {
	var input LoginInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var admin models.Admin
	if err := storage.DB.Where("email = ?", strings.ToLower(input.Email)).First(&admin).Error; err != nil {
		utils.CreateError(iris.StatusUnauthorized, "Unauthorized", "Invalid email or password.", ctx)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(input.Password)) != nil {
		utils.CreateError(iris.StatusUnauthorized, "Unauthorized", "Invalid email or password.", ctx)
		return
	}

	tokenPair, err := utils.CreateTokenPair(admin.ID, "admin")
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"ID":           admin.ID,
		"accessToken":  string(tokenPair.AccessToken),
		"refreshToken": string(tokenPair.RefreshToken),
	})
}
