package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/anupgautam/trekkers-encounter-backend/internal/apperr"
	"github.com/anupgautam/trekkers-encounter-backend/internal/media"
	"github.com/anupgautam/trekkers-encounter-backend/internal/model"
	"github.com/anupgautam/trekkers-encounter-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// Catalog - сервисы простых сущностей каталога и контента.
type Catalog struct {
	Languages            *service.EntityService[model.Language]
	Categories           *service.EntityService[model.Category]
	SubCategories        *service.EntityService[model.SubCategory]
	SubSubCategories     *service.EntityService[model.SubSubCategory]
	Itineraries          *service.EntityService[model.Itinerary]
	EssentialInformation *service.EntityService[model.EssentialInformation]
	Faqs                 *service.EntityService[model.Faq]
	FaqPackages          *service.EntityService[model.FaqPackage]
	IncludeExcludes      *service.EntityService[model.IncludeExclude]
	IncludeExcludePkgs   *service.EntityService[model.IncludeExcludePackage]
	PackageImages        *service.EntityService[model.PackageImage]
	PackageGalleries     *service.EntityService[model.PackageGallery]
	HomePageSliders      *service.EntityService[model.HomePageSlider]
	HomePackages         *service.EntityService[model.HomePackage]
	Abouts               *service.EntityService[model.About]
	Contacts             *service.EntityService[model.Contact]
	Blogs                *service.EntityService[model.Blog]
}

// Handler структурирует зависимости сервисов для обработки HTTP-запросов.
type Handler struct {
	Catalog        Catalog
	PackageService *service.PackageService
	FaqLinks       *service.AssociationService
	IncludeLinks   *service.AssociationService
	ReviewService  *service.ReviewService
	BookingService *service.BookingService
	AuthService    *service.AuthService
	UserService    *service.UserService
	Media          *media.Store
	BaseURL        string
	Log            *slog.Logger
}

// fail отправляет ошибку в формате {msg, error?}. Внутренние ошибки логируются,
// их текст попадает в ответ только в debug-режиме gin.
func (h *Handler) fail(c *gin.Context, err error) {
	status := apperr.Status(err)
	body := gin.H{"msg": apperr.Message(err)}
	if status >= http.StatusInternalServerError {
		h.Log.Error("ошибка обработки запроса", "method", c.Request.Method, "path", c.FullPath(), "error", err)
		if gin.IsDebugging() {
			body["error"] = err.Error()
		}
	}
	c.AbortWithStatusJSON(status, body)
}

// idParam читает положительный целочисленный параметр пути.
func idParam(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Validation("Invalid " + name + ".")
	}
	return id, nil
}

// Health - проверка живости для балансировщика.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) removeMedia(url string) {
	if url == "" {
		return
	}
	if err := h.Media.Remove(url); err != nil {
		h.Log.Warn("не удалось удалить файл", "url", url, "error", err)
	}
}

var errNoClaims = errors.New("в контексте нет данных пользователя")
