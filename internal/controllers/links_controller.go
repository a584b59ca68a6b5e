package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/Brayzonn/shortlink/internal/controllers/middlewares"
	"github.com/Brayzonn/shortlink/internal/models"
	"github.com/Brayzonn/shortlink/internal/services"

	"github.com/gin-gonic/gin"
)

// LinkShortener сервисный слой коротких ссылок.
type LinkShortener interface {
	Submit(ctx context.Context, owner models.OwnerKey, rawURL string) (*models.Link, bool, error)
	Resolve(ctx context.Context, code string) (*models.Link, error)
	ListByOwner(ctx context.Context, owner models.OwnerKey) ([]models.Link, error)
	Remaining(ctx context.Context, owner models.OwnerKey) (int, error)
}

// HealthRefresher обновляет устаревшие статусы и иконки перед выдачей листинга.
type HealthRefresher interface {
	RefreshAll(ctx context.Context, links []models.Link) []models.Link
}

type LinksController struct {
	linkService LinkShortener
	refresher   HealthRefresher
}

func NewLinksController(linkService LinkShortener, refresher HealthRefresher) *LinksController {
	return &LinksController{
		linkService: linkService,
		refresher:   refresher,
	}
}

type submitURLRequest struct {
	UrlFromUser string `json:"UrlFromUser"` //nolint:revive // имя поля фиксировано клиентом
}

// SubmitFree принимает запрос на сокращение ссылки от анонимного посетителя.
func (l *LinksController) SubmitFree(ctx *gin.Context) {
	var req submitURLRequest
	if err := ctx.ShouldBindJSON(&req); err != nil || req.UrlFromUser == "" {
		ctx.JSON(http.StatusOK, gin.H{"errMsg": msgInputURL})
		return
	}

	owner := visitorOwner(ctx)
	link, _, submitErr := l.linkService.Submit(ctx.Request.Context(), owner, req.UrlFromUser)

	switch {
	case submitErr == nil:
		remaining := l.remaining(ctx, owner)
		ctx.JSON(http.StatusOK, gin.H{
			"successMsg":     msgLinkShortened,
			"shortUrl":       link.ShortURL,
			"linksRemaining": remaining,
		})
	case errors.Is(submitErr, services.ErrInvalidURL):
		ctx.JSON(http.StatusOK, gin.H{"errMsg": msgInvalidURL})
	case errors.Is(submitErr, services.ErrQuotaExceeded):
		ctx.JSON(http.StatusOK, gin.H{"errMsg": msgQuotaExceeded, "linksRemaining": 0})
	default:
		_ = ctx.Error(submitErr)
		ctx.JSON(http.StatusInternalServerError, gin.H{"errMsg": msgServerError})
	}
}

// GetFreeLinks возвращает листинг ссылок посетителя, освежая статусы и иконки.
func (l *LinksController) GetFreeLinks(ctx *gin.Context) {
	owner := visitorOwner(ctx)

	links, listErr := l.linkService.ListByOwner(ctx.Request.Context(), owner)
	if listErr != nil {
		_ = ctx.Error(listErr)
		ctx.JSON(http.StatusInternalServerError, gin.H{"errMsg": msgServerError})
		return
	}

	links = l.refresher.RefreshAll(ctx.Request.Context(), links)

	ctx.JSON(http.StatusOK, gin.H{
		"userLinks":      newLinkPayloads(links),
		"linksRemaining": l.remaining(ctx, owner),
	})
}

// SubmitUser принимает запрос на сокращение ссылки от зарегистрированного
// пользователя и возвращает его полный список ссылок.
func (l *LinksController) SubmitUser(ctx *gin.Context) {
	userID := ctx.GetUint(middlewares.UserIDKey)
	owner := models.RegisteredOwner(userID)

	var req submitURLRequest
	if err := ctx.ShouldBindJSON(&req); err != nil || req.UrlFromUser == "" {
		ctx.JSON(http.StatusOK, gin.H{"errMsg": msgInputURL})
		return
	}

	_, created, submitErr := l.linkService.Submit(ctx.Request.Context(), owner, req.UrlFromUser)
	switch {
	case submitErr == nil:
	case errors.Is(submitErr, services.ErrInvalidURL):
		ctx.JSON(http.StatusOK, gin.H{"errMsg": msgInvalidURL})
		return
	default:
		_ = ctx.Error(submitErr)
		ctx.JSON(http.StatusInternalServerError, gin.H{"errMsg": msgServerError})
		return
	}

	links, listErr := l.linkService.ListByOwner(ctx.Request.Context(), owner)
	if listErr != nil {
		_ = ctx.Error(listErr)
		ctx.JSON(http.StatusInternalServerError, gin.H{"errMsg": msgServerError})
		return
	}

	resp := gin.H{"url": newLinkPayloads(links)}
	if created {
		resp["successMsg"] = msgLinkShortened
	}
	ctx.JSON(http.StatusOK, resp)
}

// Redirect разрешает короткий код и отправляет клиента на целевой URL.
// Счетчик переходов увеличивается ровно один раз за успешное разрешение.
func (l *LinksController) Redirect(ctx *gin.Context) {
	code := ctx.Param("code")

	link, err := l.linkService.Resolve(ctx.Request.Context(), code)
	if err != nil {
		if errors.Is(err, services.ErrRecordNotFound) {
			ctx.JSON(http.StatusOK, gin.H{"errMsg": msgLinkNotFound})
			return
		}
		_ = ctx.Error(err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"errMsg": msgServerError})
		return
	}

	ctx.Redirect(http.StatusFound, link.Destination)
}

// remaining пересчитывает остаток квоты, логируя но не срывая ответ при ошибке.
func (l *LinksController) remaining(ctx *gin.Context, owner models.OwnerKey) int {
	remaining, err := l.linkService.Remaining(ctx.Request.Context(), owner)
	if err != nil {
		_ = ctx.Error(err)
		return 0
	}
	return remaining
}

// visitorOwner достает идентификатор посетителя из контекста запроса.
// Миддлваре может его не выставить только при неработающих куках, тогда
// владельцем становится IP клиента.
func visitorOwner(ctx *gin.Context) models.OwnerKey {
	if v, ok := ctx.Get(middlewares.VisitorUUIDKey); ok {
		if s, isStr := v.(string); isStr && s != "" {
			return models.AnonymousOwner(s)
		}
	}
	return models.AnonymousOwner(ctx.ClientIP())
}
