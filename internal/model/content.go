package model

import "time"

// Itinerary - день программы тура.
type Itinerary struct {
	ID          int64     `db:"id" json:"id"`
	PackageID   int64     `db:"package_id" json:"package_id" form:"package_id" binding:"required"`
	Day         int       `db:"day" json:"day" form:"day" binding:"required,gt=0"`
	Title       string    `db:"title" json:"title" form:"title" binding:"required"`
	Description string    `db:"description" json:"description" form:"description"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// EssentialInformation - полезная информация о пакете (снаряжение, документы и т.п.).
type EssentialInformation struct {
	ID          int64     `db:"id" json:"id"`
	PackageID   int64     `db:"package_id" json:"package_id" form:"package_id" binding:"required"`
	Title       string    `db:"title" json:"title" form:"title" binding:"required"`
	Description string    `db:"description" json:"description" form:"description"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// PackageImage - дополнительное изображение пакета (media/other_images).
type PackageImage struct {
	ID        int64     `db:"id" json:"id"`
	PackageID int64     `db:"package_id" json:"package_id" form:"package_id" binding:"required"`
	Image     string    `db:"image" json:"image" form:"-"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// PackageGallery - фото галереи пакета (media/gallery_images).
type PackageGallery struct {
	ID        int64     `db:"id" json:"id"`
	PackageID int64     `db:"package_id" json:"package_id" form:"package_id" binding:"required"`
	Image     string    `db:"image" json:"image" form:"-"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// HomePageSlider - слайд главной страницы (media/home_page).
type HomePageSlider struct {
	ID          int64     `db:"id" json:"id"`
	Title       string    `db:"title" json:"title" form:"title" binding:"required"`
	Description string    `db:"description" json:"description" form:"description"`
	SliderImage string    `db:"slider_image" json:"slider_image" form:"-"`
	LanguageID  int64     `db:"language_id" json:"language_id" form:"language_id" binding:"required"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// About - раздел "О нас" на одном языке.
type About struct {
	ID               int64     `db:"id" json:"id"`
	Title            string    `db:"title" json:"title" form:"title" binding:"required"`
	ShortDescription string    `db:"short_description" json:"short_description" form:"short_description"`
	Description      string    `db:"description" json:"description" form:"description" binding:"required"`
	LanguageID       int64     `db:"language_id" json:"language_id" form:"language_id" binding:"required"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}

// Contact - обращение посетителя (форма на сайте или бот поддержки).
type Contact struct {
	ID        int64     `db:"id" json:"id"`
	FullName  string    `db:"full_name" json:"full_name" form:"full_name" binding:"required"`
	Email     string    `db:"email" json:"email" form:"email" binding:"required,email"`
	ContactNo string    `db:"contact_no" json:"contact_no" form:"contact_no"`
	Address   string    `db:"address" json:"address" form:"address"`
	Message   string    `db:"message" json:"message" form:"message" binding:"required"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Blog - запись блога (media/blog).
type Blog struct {
	ID               int64     `db:"id" json:"id"`
	Title            string    `db:"title" json:"title" form:"title" binding:"required"`
	ShortDescription string    `db:"short_description" json:"short_description" form:"short_description"`
	Image            string    `db:"image" json:"image" form:"-"`
	Description      string    `db:"description" json:"description" form:"description" binding:"required"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}
