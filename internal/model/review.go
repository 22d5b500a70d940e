package model

import "time"

// Review - отзыв пользователя о пакете. Один отзыв на пару (package_id, user_id).
type Review struct {
	ID                int64     `db:"id" json:"id"`
	PackageID         int64     `db:"package_id" json:"package_id" form:"package_id" binding:"required"`
	UserID            int64     `db:"user_id" json:"user_id" form:"user_id" binding:"required"`
	ReviewStar        int       `db:"review_star" json:"review_star" form:"review_star" binding:"required,min=1,max=5"`
	ReviewTitle       string    `db:"review_title" json:"review_title" form:"review_title"`
	ReviewDescription string    `db:"review_description" json:"review_description" form:"review_description"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}

// ReviewCount - число отзывов пакета.
type ReviewCount struct {
	PackageID    int64 `db:"package_id" json:"package_id"`
	TotalReviews int   `db:"total_reviews" json:"total_reviews"`
}

// MostReviewed - самые обсуждаемые пакеты и их отзывы.
type MostReviewed struct {
	Packages []ReviewCount `json:"packages"`
	Reviews  []Review      `json:"reviews"`
}
