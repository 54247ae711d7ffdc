package main

import (
	"acs/src/boot"
	"acs/src/config"
	"acs/src/db"
	"acs/src/middlewares"
	"acs/src/models"
	"acs/src/types"
	"acs/src/utils"
	"crypto/subtle"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"path"
	"time"

	"github.com/covalenthq/lumberjack"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	"github.com/joho/godotenv"
	_ "github.com/joho/godotenv/autoload"
)

var jwtKey = []byte(os.Getenv("JWT_SECRET"))

const (
	apiPrefix string = "/api/v1"
)

var futureDateValidatorFunc validator.Func = func(fl validator.FieldLevel) bool {
	date, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	datetime, err := time.Parse(config.TIME_PARSE_FORMAT, date)
	if err != nil {
		return false
	}
	return time.Now().Before(datetime)
}

func setupRouter() *gin.Engine {
	r := gin.Default()
	r.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return r
}

func maintenanceModeMiddleware(g *gin.Engine) *gin.Engine {
	g.Use(func(ctx *gin.Context) {
		if os.Getenv("MAINTENANCE_MODE") == "true" {
			ctx.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "service under maintenance"})
			return
		}
		ctx.Next()
	})
	return g
}

func apiv1Group(g *gin.Engine) *gin.RouterGroup {
	group := g.Group(apiPrefix)
	return group
}

// respondError translates the lifecycle error kinds to their HTTP statuses.
func respondError(ctx *gin.Context, err error) {
	var validationErr *types.ValidationError
	var notFoundErr *types.NotFoundError
	var transitionErr *types.InvalidTransitionError
	var generationErr *types.GenerationError
	var dependencyErr *types.DependencyError
	switch {
	case errors.As(err, &validationErr):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &notFoundErr):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &transitionErr):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &generationErr):
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	case errors.As(err, &dependencyErr):
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		log.Printf("Could not complete request: %s\n", err.Error())
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Error while processing request"})
	}
}

func generateJWT(email string, code string, role string) (string, error) {
	claims := types.Claims{
		Username: email,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   code,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims)
	return token.SignedString(jwtKey)
}

func guestAuthRoutes(g *gin.Engine) *gin.RouterGroup {
	group := g.Group(path.Join(apiPrefix, "auth"))
	secret := os.Getenv("GUEST_AUTH_SECRET")
	group.
		POST("/register", func(ctx *gin.Context) {
			reqSecret := ctx.Request.Header.Get("x-secret")
			if subtle.ConstantTimeCompare([]byte(secret), []byte(reqSecret)) != 1 {
				ctx.Status(http.StatusUnauthorized)
				return
			}
			var body types.RegisterUserRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			user, err := registerUser(&body)
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": user})
		}).
		POST("/login", func(ctx *gin.Context) {
			reqSecret := ctx.Request.Header.Get("x-secret")
			if subtle.ConstantTimeCompare([]byte(secret), []byte(reqSecret)) != 1 {
				ctx.Status(http.StatusUnauthorized)
				return
			}
			var body struct {
				Email string `json:"email" binding:"required,email"`
			}
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			var user models.User
			if err := db.Where(&models.User{Email: body.Email}).First(&user).Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
				return
			}
			token, err := generateJWT(user.Email, user.Code, string(user.Role))
			if err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"token": token})
		})
	return group
}

func registerUser(body *types.RegisterUserRequestBody) (*models.User, error) {
	role := types.Role(body.Role)
	source := body.Surname
	if role == types.ROLE_OPERATOR {
		source = body.Company
	}
	code, err := utils.NewEntityCode(utils.RoleCodeKind(role), source, &models.User{})
	if err != nil {
		return nil, err
	}
	user := models.User{
		Code:    code,
		Name:    body.Name,
		Surname: body.Surname,
		Company: body.Company,
		Email:   body.Email,
		Role:    role,
	}
	db := db.GetDb()
	if err := db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func initLogger() {
	cwd, _ := os.Getwd()
	serverLogs := path.Join(cwd, "logs", "server.log")
	apiLogs := path.Join(cwd, "logs", "api.log")
	gin.ForceConsoleColor()

	f, _ := os.Create(apiLogs)
	gin.DefaultWriter = io.MultiWriter(f, os.Stdout)
	log.SetOutput(&lumberjack.Logger{
		Filename:   serverLogs,
		MaxSize:    500,
		MaxBackups: 3,
		MaxAge:     30,
		Compress:   true,
	})
}

func main() {
	apiEnv := os.Getenv("API_ENV")
	if apiEnv == "local" {
		cwd, _ := os.Getwd()
		if err := godotenv.Load(path.Join(cwd, ".env")); err != nil {
			panic(err)
		}
	}
	initLogger()

	boot.InitDb()
	boot.InitScheduler()
	defer boot.StopScheduler()

	router := setupRouter()
	if apiEnv == "local" {
		router.Use(cors.Default())
	} else {
		cc := cors.DefaultConfig()
		cc.AllowMethods = append(cc.AllowMethods, "GET", "POST", "PATCH", "PUT", "DELETE", "HEAD")
		cc.AllowHeaders = append(cc.AllowHeaders, "Origin", "Authorization", "x-secret")
		cc.AllowOrigins = []string{os.Getenv("APP_HOST")}
		cc.AllowCredentials = true
		router.Use(cors.New(cc))
	}

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("futuredate", futureDateValidatorFunc)
	}

	router = maintenanceModeMiddleware(router)

	guestAuthRoutes(router)

	authorized := apiv1Group(router)
	authorized.Use(middlewares.AuthMiddleware)
	requestHandlers(authorized)
	quoteHandlers(authorized)
	bookingHandlers(authorized)
	invoiceHandlers(authorized)
	paymentHandlers(authorized)
	ratingHandlers(authorized)
	notificationHandlers(authorized)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Error starting server: %s\n", err.Error())
	}
}
