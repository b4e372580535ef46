package utils

import (
	"context"
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"

	"github.com/Residentia-pg/residentia-backend/storage"
)

var bgContext = context.Background()

const (
	AccessTokenTTL  = 24 * time.Hour
	RefreshTokenTTL = 365 * 24 * time.Hour
)

// ErrTokenInvalid covers forged, malformed and expired tokens alike; callers
// never learn which one it was.
var ErrTokenInvalid = errors.New("invalid or expired token")

// AccessToken binds a subject identity to a role for the token's lifetime.
type AccessToken struct {
	ID   uint   `json:"ID"`
	Role string `json:"role"` // owner, client, admin
}

type RefreshTokenInput struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// CreateTokenPair issues a short-lived access token carrying the subject's
// role plus a refresh token allowlisted in redis. The refresh token stores
// the role as its redis value so rotation can re-issue without a user lookup.
func CreateTokenPair(id uint, role string) (*jwt.TokenPair, error) {
	accessTokenSigner := jwt.NewSigner(jwt.HS256, os.Getenv("ACCESS_TOKEN_SECRET"), AccessTokenTTL)
	refreshTokenSigner := jwt.NewSigner(jwt.HS256, os.Getenv("REFRESH_TOKEN_SECRET"), RefreshTokenTTL)

	subject := strconv.FormatUint(uint64(id), 10)

	accessTokenClaims := AccessToken{
		ID:   id,
		Role: role,
	}

	accessToken, err := accessTokenSigner.Sign(accessTokenClaims)
	if err != nil {
		return nil, err
	}

	refreshClaims := jwt.Claims{Subject: subject}
	refreshToken, err := refreshTokenSigner.Sign(refreshClaims)
	if err != nil {
		return nil, err
	}

	var tokenPair jwt.TokenPair
	tokenPair.AccessToken = accessToken
	tokenPair.RefreshToken = refreshToken

	storage.Redis.Set(bgContext, string(refreshToken), role, RefreshTokenTTL+5*time.Minute)

	return &tokenPair, nil
}

// ParseAccessToken validates a raw access token and returns its claims.
func ParseAccessToken(token []byte) (*AccessToken, error) {
	verifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))

	verifiedToken, err := verifier.VerifyToken(token)
	if err != nil {
		return nil, ErrTokenInvalid
	}

	var claims AccessToken
	if err := verifiedToken.Claims(&claims); err != nil {
		return nil, ErrTokenInvalid
	}

	return &claims, nil
}

// RefreshToken rotates a refresh token: the presented token must still be on
// the redis allowlist, is deleted on use, and a fresh pair is issued for the
// same subject and role.
func RefreshToken(ctx iris.Context) {
	token := jwt.GetVerifiedToken(ctx)
	tokenStr := string(token.Token)
	role, tokenErr := storage.Redis.Get(bgContext, tokenStr).Result()

	if tokenErr != nil {
		CreateNotFound(ctx)
		return
	}

	storage.Redis.Del(bgContext, tokenStr)
	userID, parseErr := strconv.ParseUint(token.StandardClaims.Subject, 10, 32)
	if parseErr != nil {
		CreateInternalServerError(ctx)
		return
	}

	tokenPair, tokenPairErr := CreateTokenPair(uint(userID), role)
	if tokenPairErr != nil {
		CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"accessToken":  string(tokenPair.AccessToken),
		"refreshToken": string(tokenPair.RefreshToken),
	})
}
