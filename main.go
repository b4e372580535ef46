package main

import (
	"fmt"
	"log"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"

	"github.com/Residentia-pg/residentia-backend/routes"
	"github.com/Residentia-pg/residentia-backend/storage"
	"github.com/Residentia-pg/residentia-backend/utils"
)

func main() {
	// Only load .env in development
	if os.Getenv("RENDER") == "" {
		godotenv.Load()
	}

	storage.InitializeDB()
	storage.InitializeRedis()

	app := newApp()

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}
	addr := "0.0.0.0:" + port

	fmt.Printf("Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func newApp() *iris.Application {
	app := iris.New()
	app.Validator = validator.New()

	// CORS configuration
	app.AllowMethods(iris.MethodOptions)
	app.UseRouter(func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", ctx.GetHeader("Origin"))
		ctx.Header("Vary", "Origin")
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,PATCH,PUT,DELETE,OPTIONS")
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	})

	app.Use(iris.Compression)

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifier.WithDefaultBlocklist()
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})

	refreshTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("REFRESH_TOKEN_SECRET")))
	refreshTokenVerifier.WithDefaultBlocklist()
	refreshTokenVerifierMiddleware := refreshTokenVerifier.Verify(func() interface{} {
		return new(jwt.Claims)
	})

	refreshTokenVerifier.Extractors = append(refreshTokenVerifier.Extractors, func(ctx iris.Context) string {
		var tokenInput utils.RefreshTokenInput
		err := ctx.ReadJSON(&tokenInput)
		if err != nil {
			return ""
		}
		return tokenInput.RefreshToken
	})

	app.Get("/health", func(ctx iris.Context) {
		ctx.JSON(iris.Map{"status": "ok"})
	})

	auth := app.Party("/api/auth")
	{
		auth.Post("/owner/register", routes.RegisterOwner)
		auth.Post("/owner/login", routes.LoginOwner)
		auth.Post("/client/register", routes.RegisterClient)
		auth.Post("/client/login", routes.LoginClient)
		auth.Post("/admin/login", routes.LoginAdmin)
	}

	property := app.Party("/api/property")
	{
		property.Get("/", routes.ListProperties)
		property.Get("/{id:uint}", routes.GetProperty)
		property.Get("/{id:uint}/reviews", routes.ListPropertyReviews)
		property.Post("/", accessTokenVerifierMiddleware, utils.RoleMiddleware("owner"), routes.CreateProperty)
		property.Get("/mine", accessTokenVerifierMiddleware, utils.RoleMiddleware("owner"), routes.GetOwnerProperties)
		property.Put("/{id:uint}", accessTokenVerifierMiddleware, utils.RoleMiddleware("owner"), routes.UpdateProperty)
		property.Delete("/{id:uint}", accessTokenVerifierMiddleware, utils.RoleMiddleware("owner"), routes.DeleteProperty)
		property.Get("/{id:uint}/bookings", accessTokenVerifierMiddleware, utils.RoleMiddleware("owner"), routes.GetPropertyBookings)
	}

	booking := app.Party("/api/booking", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware)
	{
		booking.Post("/", routes.CreateBooking)
		booking.Get("/{id:uint}", routes.GetBooking)
		booking.Patch("/{id:uint}", utils.RoleMiddleware("owner", "admin"), routes.UpdateBooking)
		booking.Post("/{id:uint}/cancel", routes.CancelBooking)
		booking.Post("/{id:uint}/restore", utils.RoleMiddleware("admin"), routes.RestoreBooking)
		booking.Get("/mine", utils.RoleMiddleware("client"), routes.GetClientBookings)
		booking.Get("/owner", utils.RoleMiddleware("owner"), routes.GetOwnerBookings)
	}

	payment := app.Party("/api/payment", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware)
	{
		payment.Post("/order/{id:uint}", routes.CreatePaymentOrder)
		payment.Post("/verify", routes.VerifyPayment)
		payment.Get("/status/{id:uint}", routes.GetPaymentStatus)
	}

	request := app.Party("/api/request", accessTokenVerifierMiddleware, utils.RoleMiddleware("owner"))
	{
		request.Post("/", routes.SubmitChangeRequest)
		request.Get("/mine", routes.GetOwnerChangeRequests)
	}

	review := app.Party("/api/review")
	{
		review.Post("/", accessTokenVerifierMiddleware, utils.RoleMiddleware("client"), routes.CreateReview)
	}

	admin := app.Party("/api/admin", accessTokenVerifierMiddleware, utils.RoleMiddleware("admin"))
	{
		admin.Get("/dashboard", routes.AdminDashboard)
		admin.Get("/bookings", routes.AdminListBookings)
		admin.Delete("/bookings/{id:uint}", routes.AdminDeleteBooking)
		admin.Get("/requests", routes.AdminListChangeRequests)
		admin.Get("/requests/{id:uint}", routes.AdminGetChangeRequest)
		admin.Post("/requests/{id:uint}/approve", routes.AdminApproveChangeRequest)
		admin.Post("/requests/{id:uint}/reject", routes.AdminRejectChangeRequest)
		admin.Delete("/reviews/{id:uint}", routes.AdminDeleteReview)
	}

	app.Post("/api/refresh", refreshTokenVerifierMiddleware, utils.RefreshToken)

	return app
}
