package model

import "time"

// Language - язык контента сайта (категории, пакеты, слайдеры привязаны к языку).
type Language struct {
	ID        int64     `db:"id" json:"id"`
	Language  string    `db:"language" json:"language" form:"language" binding:"required"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Category - верхний уровень каталога туров.
type Category struct {
	ID           int64     `db:"id" json:"id"`
	CategoryName string    `db:"category_name" json:"category_name" form:"category_name" binding:"required"`
	LanguageID   int64     `db:"language_id" json:"language_id" form:"language_id" binding:"required"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// SubCategory - подкатегория внутри категории.
type SubCategory struct {
	ID              int64     `db:"id" json:"id"`
	CategoryID      int64     `db:"category_id" json:"category_id" form:"category_id" binding:"required"`
	LanguageID      int64     `db:"language_id" json:"language_id" form:"language_id" binding:"required"`
	SubCategoryName string    `db:"sub_category_name" json:"sub_category_name" form:"sub_category_name" binding:"required"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// SubSubCategory - третий уровень каталога, дочерний к подкатегории.
type SubSubCategory struct {
	ID                 int64     `db:"id" json:"id"`
	CategoryID         int64     `db:"category_id" json:"category_id" form:"category_id" binding:"required"`
	LanguageID         int64     `db:"language_id" json:"language_id" form:"language_id" binding:"required"`
	SubCategoryID      int64     `db:"sub_category_id" json:"sub_category_id" form:"sub_category_id" binding:"required"`
	SubSubCategoryName string    `db:"sub_sub_category_name" json:"sub_sub_category_name" form:"sub_sub_category_name" binding:"required"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time `db:"updated_at" json:"updated_at"`
}
