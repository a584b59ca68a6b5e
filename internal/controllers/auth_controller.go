package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/Brayzonn/shortlink/internal/controllers/middlewares"
	"github.com/Brayzonn/shortlink/internal/models"
	"github.com/Brayzonn/shortlink/internal/services"
	"github.com/Brayzonn/shortlink/internal/tokens"

	"github.com/gin-gonic/gin"
)

// UserProvider сервисный слой пользователей.
type UserProvider interface {
	SignUp(ctx context.Context, username, email, password string) (*models.User, error)
	SignIn(ctx context.Context, email, password string) (*models.User, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)
}

type AuthController struct {
	userService UserProvider
	linkService LinkShortener
	refresher   HealthRefresher
	jwtSecret   []byte
}

func NewAuthController(
	userService UserProvider,
	linkService LinkShortener,
	refresher HealthRefresher,
	jwtSecret []byte,
) *AuthController {
	return &AuthController{
		userService: userService,
		linkService: linkService,
		refresher:   refresher,
		jwtSecret:   jwtSecret,
	}
}

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup регистрирует нового пользователя.
func (a *AuthController) Signup(ctx *gin.Context) {
	var req signupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusOK, gin.H{"errMsg": msgMissingFields})
		return
	}

	_, signupErr := a.userService.SignUp(ctx.Request.Context(), req.Username, req.Email, req.Password)

	switch {
	case signupErr == nil:
		ctx.JSON(http.StatusOK, gin.H{"successMsg": msgSignupSuccess})
	case errors.Is(signupErr, services.ErrMissingFields):
		ctx.JSON(http.StatusOK, gin.H{"errMsg": msgMissingFields})
	case errors.Is(signupErr, services.ErrInvalidEmail):
		ctx.JSON(http.StatusOK, gin.H{"errMsg": msgInvalidEmail})
	case errors.Is(signupErr, services.ErrWeakPassword):
		ctx.JSON(http.StatusOK, gin.H{"errMsg": msgWeakPassword})
	case errors.Is(signupErr, services.ErrEmailTaken):
		ctx.JSON(http.StatusOK, gin.H{"errMsg": msgEmailTaken})
	default:
		_ = ctx.Error(signupErr)
		ctx.JSON(http.StatusInternalServerError, gin.H{"errMsg": msgServerError})
	}
}

// Signin проверяет учетные данные и выдает bearer токен на 30 дней.
func (a *AuthController) Signin(ctx *gin.Context) {
	var req signinRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusOK, gin.H{"errMsg": msgMissingSignin})
		return
	}

	user, signinErr := a.userService.SignIn(ctx.Request.Context(), req.Email, req.Password)

	switch {
	case signinErr == nil:
	case errors.Is(signinErr, services.ErrMissingFields):
		ctx.JSON(http.StatusOK, gin.H{"errMsg": msgMissingSignin})
		return
	case errors.Is(signinErr, services.ErrAccountNotFound):
		ctx.JSON(http.StatusOK, gin.H{"errMsg": msgNoAccount})
		return
	case errors.Is(signinErr, services.ErrWrongPassword):
		ctx.JSON(http.StatusOK, gin.H{"errMsg": msgWrongPassword})
		return
	default:
		_ = ctx.Error(signinErr)
		ctx.JSON(http.StatusInternalServerError, gin.H{"errMsg": msgServerError})
		return
	}

	token, tokenErr := tokens.GenerateUserJWT(user.ID, a.jwtSecret)
	if tokenErr != nil {
		_ = ctx.Error(tokenErr)
		ctx.JSON(http.StatusInternalServerError, gin.H{"errMsg": msgServerError})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"successMsg": msgSigninSuccess, "token": token})
}

// Dashboard возвращает профиль пользователя и его ссылки с освеженными
// статусами и иконками.
func (a *AuthController) Dashboard(ctx *gin.Context) {
	userID := ctx.GetUint(middlewares.UserIDKey)

	user, userErr := a.userService.GetByID(ctx.Request.Context(), userID)
	if userErr != nil {
		_ = ctx.Error(userErr)
		ctx.JSON(http.StatusInternalServerError, gin.H{"errMsg": msgServerError})
		return
	}

	links, listErr := a.linkService.ListByOwner(ctx.Request.Context(), models.RegisteredOwner(userID))
	if listErr != nil {
		_ = ctx.Error(listErr)
		ctx.JSON(http.StatusInternalServerError, gin.H{"errMsg": msgServerError})
		return
	}

	links = a.refresher.RefreshAll(ctx.Request.Context(), links)

	ctx.JSON(http.StatusOK, gin.H{
		"userInfo":  user,
		"userLinks": newLinkPayloads(links),
	})
}
