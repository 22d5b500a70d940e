package handler

import (
	"encoding/json"
	"net/http"

	"github.com/anupgautam/trekkers-encounter-backend/internal/apperr"
	"github.com/anupgautam/trekkers-encounter-backend/internal/model"
	"github.com/anupgautam/trekkers-encounter-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// Reconcile возвращает обработчик PATCH для синхронизации связей пакета.
// key - имя массива в теле, поле потомка в элементах названо по колонке связи.
// package_id верхнего уровня позволяет пустым списком очистить связи пакета;
// пустой список без package_id отклоняется.
func (h *Handler) Reconcile(links *service.AssociationService, key, respKey string) gin.HandlerFunc {
	childKey := links.ChildColumn()
	return func(c *gin.Context) {
		var body map[string]json.RawMessage
		if err := c.ShouldBindJSON(&body); err != nil {
			h.fail(c, apperr.Wrap(apperr.KindValidation, "Invalid request body.", err))
			return
		}
		var (
			items     []map[string]json.RawMessage
			packageID int64
		)
		raw, ok := body[key]
		if !ok || json.Unmarshal(raw, &items) != nil {
			h.fail(c, apperr.Validation(key+" should be an array."))
			return
		}
		if p, ok := body["package_id"]; ok {
			if err := json.Unmarshal(p, &packageID); err != nil {
				h.fail(c, apperr.Validation("Invalid package_id."))
				return
			}
		}
		desired := make([]model.Link, 0, len(items))
		for _, item := range items {
			var link model.Link
			if err := json.Unmarshal(item["package_id"], &link.PackageID); err != nil && item["package_id"] != nil {
				h.fail(c, apperr.Validation("Invalid package_id."))
				return
			}
			if err := json.Unmarshal(item[childKey], &link.ChildID); err != nil {
				h.fail(c, apperr.Validation("Every item must contain "+childKey+"."))
				return
			}
			desired = append(desired, link)
		}

		result, err := links.Reconcile(c.Request.Context(), packageID, desired)
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"msg": "Bulk items successfully updated.", respKey: linkRows(result.Members, childKey),
			"added": result.Added, "removed": result.Removed})
	}
}

// Members возвращает обработчик GET текущего набора связей пакета.
func (h *Handler) Members(links *service.AssociationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		packageID, err := idParam(c, "package_id")
		if err != nil {
			h.fail(c, err)
			return
		}
		members, err := links.Members(c.Request.Context(), packageID)
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, linkRows(members, links.ChildColumn()))
	}
}

// linkRows переименовывает child_id в имя колонки потомка для ответа.
func linkRows(links []model.Link, childKey string) []gin.H {
	rows := make([]gin.H, 0, len(links))
	for _, l := range links {
		rows = append(rows, gin.H{"id": l.ID, "package_id": l.PackageID, childKey: l.ChildID})
	}
	return rows
}
