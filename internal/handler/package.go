package handler

import (
	"net/http"
	"strconv"

	"github.com/anupgautam/trekkers-encounter-backend/internal/apperr"
	"github.com/anupgautam/trekkers-encounter-backend/internal/media"
	"github.com/anupgautam/trekkers-encounter-backend/internal/model"

	"github.com/gin-gonic/gin"
)

// CreatePackage обработчик для POST /basic/package/ (multipart, файл package_image обязателен).
func (h *Handler) CreatePackage(c *gin.Context) {
	fh, err := c.FormFile("package_image")
	if err != nil {
		h.fail(c, apperr.Validation("Package image is required."))
		return
	}
	var p model.Package
	if err := c.ShouldBind(&p); err != nil {
		h.fail(c, bindError(err))
		return
	}
	if p.PackageImage, err = h.Media.SaveFile(media.KindPackageImages, fh); err != nil {
		h.fail(c, err)
		return
	}
	saved, err := h.PackageService.Create(c.Request.Context(), &p)
	if err != nil {
		h.removeMedia(p.PackageImage)
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"msg": "Package Successfully Added.", "resp": saved})
}

// ListPackages возвращает все пакеты.
func (h *Handler) ListPackages(c *gin.Context) {
	h.listPackages(c, model.PackageFilter{})
}

// PackagesBy возвращает обработчик выборки пакетов по родителю из параметра пути.
func (h *Handler) PackagesBy(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := idParam(c, param)
		if err != nil {
			h.fail(c, err)
			return
		}
		var f model.PackageFilter
		switch param {
		case "category_id":
			f.CategoryID = id
		case "sub_category_id":
			f.SubCategoryID = id
		case "sub_sub_category_id":
			f.SubSubCategoryID = id
		case "language_id":
			f.LanguageID = id
		}
		h.listPackages(c, f)
	}
}

func (h *Handler) listPackages(c *gin.Context, f model.PackageFilter) {
	packages, err := h.PackageService.List(c.Request.Context(), f)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, packages)
}

// PackagePage обработчик для GET /basic/package_page/?page=&limit=.
func (h *Handler) PackagePage(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	result, err := h.PackageService.Page(c.Request.Context(), page, limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetPackage возвращает пакет по ID.
func (h *Handler) GetPackage(c *gin.Context) {
	id, err := idParam(c, "postId")
	if err != nil {
		h.fail(c, err)
		return
	}
	p, err := h.PackageService.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// UpdatePackage частично обновляет пакет; новый package_image заменяет изображение.
func (h *Handler) UpdatePackage(c *gin.Context) {
	id, err := idParam(c, "postId")
	if err != nil {
		h.fail(c, err)
		return
	}
	ctx := c.Request.Context()
	p, err := h.PackageService.Get(ctx, id)
	if err != nil {
		h.fail(c, err)
		return
	}
	oldImage := p.PackageImage

	if c.Request.ContentLength != 0 {
		if err := c.ShouldBind(p); err != nil {
			h.fail(c, bindError(err))
			return
		}
	}
	var newImage string
	if fh, err := c.FormFile("package_image"); err == nil {
		if newImage, err = h.Media.SaveFile(media.KindPackageImages, fh); err != nil {
			h.fail(c, err)
			return
		}
		p.PackageImage = newImage
	}

	saved, err := h.PackageService.Update(ctx, id, p)
	if err != nil {
		h.removeMedia(newImage)
		h.fail(c, err)
		return
	}
	if newImage != "" {
		h.removeMedia(oldImage)
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Package updated successfully.", "resp": saved})
}

// DeletePackage удаляет пакет со всеми дочерними строками.
func (h *Handler) DeletePackage(c *gin.Context) {
	id, err := idParam(c, "postId")
	if err != nil {
		h.fail(c, err)
		return
	}
	ctx := c.Request.Context()
	p, err := h.PackageService.Get(ctx, id)
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.PackageService.Delete(ctx, id); err != nil {
		h.fail(c, err)
		return
	}
	h.removeMedia(p.PackageImage)
	c.JSON(http.StatusOK, gin.H{"msg": "Package deleted successfully."})
}

// HomePackages обработчик для GET /basic/home_package/ - пакеты главной страницы вместе с данными пакета.
func (h *Handler) HomePackages(c *gin.Context) {
	items, err := h.PackageService.HomePackages(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}
