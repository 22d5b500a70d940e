package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/anupgautam/trekkers-encounter-backend/internal/apperr"

	"github.com/gin-gonic/gin"
)

// entityAPI - единый CRUD-контракт сущности (service.EntityService).
type entityAPI[T any] interface {
	Name() string
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id int64) (*T, error)
	ListBy(ctx context.Context, column string, value int64) ([]T, error)
	Create(ctx context.Context, item *T) (*T, error)
	CreateMany(ctx context.Context, items []T) ([]T, error)
	Update(ctx context.Context, id int64, item *T) (*T, error)
	Delete(ctx context.Context, id int64) error
}

// upload описывает поле с изображением сущности.
type upload[T any] struct {
	field string // имя файла в multipart-форме
	kind  string // каталог media
	get   func(*T) string
	set   func(*T, string)
}

// resource - HTTP-обработчики одной сущности.
type resource[T any] struct {
	h      *Handler
	svc    entityAPI[T]
	upload *upload[T]
	// setParent проставляет package_id элементу массовой загрузки, если он не задан.
	setParent func(*T, int64)
}

func newResource[T any](h *Handler, svc entityAPI[T]) *resource[T] {
	return &resource[T]{h: h, svc: svc}
}

func (r *resource[T]) withUpload(field, kind string, get func(*T) string, set func(*T, string)) *resource[T] {
	r.upload = &upload[T]{field: field, kind: kind, get: get, set: set}
	return r
}

func (r *resource[T]) withParent(set func(*T, int64)) *resource[T] {
	r.setParent = set
	return r
}

// saveUpload сохраняет файл из формы, если он передан. Возвращает URL или "".
func (r *resource[T]) saveUpload(c *gin.Context) (string, error) {
	fh, err := c.FormFile(r.upload.field)
	if err != nil {
		return "", nil
	}
	return r.h.Media.SaveFile(r.upload.kind, fh)
}

func (r *resource[T]) create(c *gin.Context) {
	var item T
	if r.upload != nil {
		url, err := r.saveUpload(c)
		if err != nil {
			r.h.fail(c, err)
			return
		}
		if url == "" {
			r.h.fail(c, apperr.Validation("Image file is missing."))
			return
		}
		r.upload.set(&item, url)
	}
	if err := c.ShouldBind(&item); err != nil {
		r.discard(&item)
		r.h.fail(c, bindError(err))
		return
	}
	saved, err := r.svc.Create(c.Request.Context(), &item)
	if err != nil {
		r.discard(&item)
		r.h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"msg": r.svc.Name() + " Successfully Added.", "resp": saved})
}

func (r *resource[T]) list(c *gin.Context) {
	items, err := r.svc.List(c.Request.Context())
	if err != nil {
		r.h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (r *resource[T]) get(c *gin.Context) {
	id, err := idParam(c, "postId")
	if err != nil {
		r.h.fail(c, err)
		return
	}
	item, err := r.svc.Get(c.Request.Context(), id)
	if err != nil {
		r.h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// listBy возвращает строки по родителю из параметра пути param (колонка с тем же именем).
func (r *resource[T]) listBy(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, err := idParam(c, param)
		if err != nil {
			r.h.fail(c, err)
			return
		}
		items, err := r.svc.ListBy(c.Request.Context(), param, value)
		if err != nil {
			r.h.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// update накладывает присланные поля на сохраненную строку: неуказанные поля не меняются.
// Новый файл заменяет изображение, старый файл удаляется после успешной записи.
func (r *resource[T]) update(c *gin.Context) {
	id, err := idParam(c, "postId")
	if err != nil {
		r.h.fail(c, err)
		return
	}
	ctx := c.Request.Context()
	item, err := r.svc.Get(ctx, id)
	if err != nil {
		r.h.fail(c, err)
		return
	}

	var oldURL, newURL string
	if r.upload != nil {
		oldURL = r.upload.get(item)
		if newURL, err = r.saveUpload(c); err != nil {
			r.h.fail(c, err)
			return
		}
		if newURL != "" {
			r.upload.set(item, newURL)
		}
	}
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBind(item); err != nil {
			r.h.removeMedia(newURL)
			r.h.fail(c, bindError(err))
			return
		}
	}

	saved, err := r.svc.Update(ctx, id, item)
	if err != nil {
		r.h.removeMedia(newURL)
		r.h.fail(c, err)
		return
	}
	if newURL != "" {
		r.h.removeMedia(oldURL)
	}
	c.JSON(http.StatusOK, gin.H{"msg": r.svc.Name() + " updated successfully.", "resp": saved})
}

func (r *resource[T]) remove(c *gin.Context) {
	id, err := idParam(c, "postId")
	if err != nil {
		r.h.fail(c, err)
		return
	}
	ctx := c.Request.Context()
	var url string
	if r.upload != nil {
		item, err := r.svc.Get(ctx, id)
		if err != nil {
			r.h.fail(c, err)
			return
		}
		url = r.upload.get(item)
	}
	if err := r.svc.Delete(ctx, id); err != nil {
		r.h.fail(c, err)
		return
	}
	r.h.removeMedia(url)
	c.JSON(http.StatusOK, gin.H{"msg": r.svc.Name() + " deleted successfully."})
}

// bulkJSON создает строки из массива body[key] в одной транзакции.
// package_id верхнего уровня подставляется элементам, у которых он не задан.
func (r *resource[T]) bulkJSON(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body map[string]json.RawMessage
		if err := c.ShouldBindJSON(&body); err != nil {
			r.h.fail(c, apperr.Wrap(apperr.KindValidation, "Invalid request body.", err))
			return
		}
		var items []T
		raw, ok := body[key]
		if !ok || json.Unmarshal(raw, &items) != nil {
			r.h.fail(c, apperr.Validation(key+" should be an array."))
			return
		}
		var parent int64
		if p, ok := body["package_id"]; ok {
			if err := json.Unmarshal(p, &parent); err != nil {
				r.h.fail(c, apperr.Validation("Invalid package_id."))
				return
			}
		}
		for i := range items {
			if r.setParent != nil && parent > 0 {
				r.setParent(&items[i], parent)
			}
			if err := validate(&items[i]); err != nil {
				r.h.fail(c, err)
				return
			}
		}
		r.createMany(c, items, nil)
	}
}

// bulkFiles создает по строке на каждый файл из поля images для package_id из формы.
func (r *resource[T]) bulkFiles(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil || len(form.File["images"]) == 0 {
		r.h.fail(c, apperr.Validation("No files uploaded."))
		return
	}
	parent, err := strconv.ParseInt(c.PostForm("package_id"), 10, 64)
	if err != nil || parent <= 0 {
		r.h.fail(c, apperr.Validation("Package ID is required."))
		return
	}

	items := make([]T, 0, len(form.File["images"]))
	var urls []string
	for _, fh := range form.File["images"] {
		url, err := r.h.Media.SaveFile(r.upload.kind, fh)
		if err != nil {
			for _, u := range urls {
				r.h.removeMedia(u)
			}
			r.h.fail(c, err)
			return
		}
		urls = append(urls, url)
		var item T
		r.upload.set(&item, url)
		r.setParent(&item, parent)
		items = append(items, item)
	}
	r.createMany(c, items, urls)
}

func (r *resource[T]) createMany(c *gin.Context, items []T, uploaded []string) {
	saved, err := r.svc.CreateMany(c.Request.Context(), items)
	if err != nil {
		for _, u := range uploaded {
			r.h.removeMedia(u)
		}
		r.h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"msg": fmt.Sprintf("Bulk %s Items Successfully Added.", r.svc.Name()), "resp": saved})
}

func (r *resource[T]) discard(item *T) {
	if r.upload != nil {
		r.h.removeMedia(r.upload.get(item))
	}
}

// routes регистрирует стандартный набор маршрутов сущности под path.
// Чтение открыто всем, изменения проходят через guard.
func (r *resource[T]) routes(public, guarded gin.IRoutes, path string) {
	public.GET("/"+path+"/", r.list)
	public.GET("/"+path+"/:postId", r.get)
	guarded.POST("/"+path+"/", r.create)
	guarded.PATCH("/"+path+"/:postId", r.update)
	guarded.DELETE("/"+path+"/:postId", r.remove)
}
