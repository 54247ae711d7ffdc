package middlewares

import (
	"acs/src/db"
	"acs/src/models"
	"acs/src/types"
	"log"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

var jwtKey = []byte(os.Getenv("JWT_SECRET"))

// AuthMiddleware resolves the bearer token to a user record and exposes the
// party's role and code to the handlers. The lifecycle code trusts these
// values and never re-derives them.
func AuthMiddleware(ctx *gin.Context) {
	bearerToken := ctx.Request.Header.Get("Authorization")
	if !strings.HasPrefix(bearerToken, "Bearer") {
		ctx.AbortWithStatus(401)
		return
	}
	parts := strings.Split(bearerToken, " ")
	if len(parts) < 2 || parts[1] == "" {
		ctx.AbortWithStatus(401)
		return
	}
	reqToken := parts[1]
	claims := &types.Claims{}
	tkn, err := jwt.ParseWithClaims(reqToken, claims, func(t *jwt.Token) (any, error) {
		return jwtKey, nil
	})
	if err != nil {
		log.Printf("token error: %s\n", err.Error())
		if err == jwt.ErrSignatureInvalid || err == jwt.ErrTokenMalformed {
			ctx.AbortWithStatus(401)
			return
		}
		ctx.AbortWithError(401, err)
		return
	}
	if !tkn.Valid {
		ctx.AbortWithStatus(401)
		return
	}

	db := db.GetDb()
	var user models.User
	db.Model(&models.User{}).Where(&models.User{Code: claims.Subject}).Find(&user)

	if user.ID < 1 || user.Code != claims.Subject {
		ctx.AbortWithStatus(401)
		return
	}
	ctx.Set("email", user.Email)
	ctx.Set("id", user.ID)
	ctx.Set("code", user.Code)
	ctx.Set("role", string(user.Role))
}
