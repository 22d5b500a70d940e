package model

import "time"

// Faq - вопрос и ответ, которые можно привязать к пакетам.
type Faq struct {
	ID          int64     `db:"id" json:"id"`
	FaqQuestion string    `db:"faq_question" json:"faq_question" form:"faq_question" binding:"required"`
	FaqAnswer   string    `db:"faq_answer" json:"faq_answer" form:"faq_answer" binding:"required"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// FaqPackage связывает FAQ с пакетом; пара (package_id, faq_id) уникальна.
type FaqPackage struct {
	ID        int64     `db:"id" json:"id"`
	PackageID int64     `db:"package_id" json:"package_id" form:"package_id" binding:"required"`
	FaqID     int64     `db:"faq_id" json:"faq_id" form:"faq_id" binding:"required"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// IncludeExclude - пункт "включено" или "не включено" в стоимость.
type IncludeExclude struct {
	ID        int64     `db:"id" json:"id"`
	Title     string    `db:"title" json:"title" form:"title" binding:"required"`
	Type      string    `db:"type" json:"type" form:"type" binding:"required"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// IncludeExcludePackage связывает пункт "включено/не включено" с пакетом.
type IncludeExcludePackage struct {
	ID               int64     `db:"id" json:"id"`
	PackageID        int64     `db:"package_id" json:"package_id" form:"package_id" binding:"required"`
	IncludeExcludeID int64     `db:"include_exclude_id" json:"include_exclude_id" form:"include_exclude_id" binding:"required"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}

// Link - строка связи пакет-потомок без привязки к конкретной таблице.
type Link struct {
	ID        int64 `db:"id" json:"id"`
	PackageID int64 `db:"package_id" json:"package_id"`
	ChildID   int64 `db:"child_id" json:"child_id"`
}

// ReconcileResult - итоговый состав связей пакета после синхронизации.
type ReconcileResult struct {
	PackageID int64
	Members   []Link
	Added     int
	Removed   int
}
