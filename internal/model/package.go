package model

import "time"

// Package - туристический пакет (тур). OverallRatings вычисляется из отзывов и не принимается от клиента.
type Package struct {
	ID               int64     `db:"id" json:"id"`
	CategoryID       int64     `db:"category_id" json:"category_id" form:"category_id" binding:"required"`
	SubCategoryID    *int64    `db:"sub_category_id" json:"sub_category_id" form:"sub_category_id"`
	SubSubCategoryID *int64    `db:"sub_sub_category_id" json:"sub_sub_category_id" form:"sub_sub_category_id"`
	LanguageID       int64     `db:"language_id" json:"language_id" form:"language_id" binding:"required"`
	Title            string    `db:"title" json:"title" form:"title" binding:"required"`
	ShortDescription string    `db:"short_description" json:"short_description" form:"short_description" binding:"required"`
	Description      string    `db:"description" json:"description" form:"description" binding:"required"`
	Duration         string    `db:"duration" json:"duration" form:"duration" binding:"required"`
	Currency         string    `db:"currency" json:"currency" form:"currency" binding:"required"`
	Price            float64   `db:"price" json:"price" form:"price" binding:"required,gt=0"`
	PackageImage     string    `db:"package_image" json:"package_image" form:"-"`
	OverallRatings   float64   `db:"overall_ratings" json:"overall_ratings" form:"-"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}

// PackageFilter - условия выборки пакетов. Нулевые поля не участвуют в фильтре.
type PackageFilter struct {
	CategoryID       int64
	SubCategoryID    int64
	SubSubCategoryID int64
	LanguageID       int64
}

// Pagination - метаданные постраничной выдачи.
type Pagination struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// PackagePage - страница пакетов.
type PackagePage struct {
	Data       []Package  `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// HomePackage - пакет, выбранный для главной страницы.
type HomePackage struct {
	ID        int64     `db:"id" json:"id"`
	PackageID int64     `db:"package_id" json:"package_id" form:"package_id" binding:"required"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// HomePackageDetail - пакет главной страницы вместе с данными самого пакета.
type HomePackageDetail struct {
	HomePackageID int64 `db:"home_package_id" json:"home_package_id"`
	Package
}
