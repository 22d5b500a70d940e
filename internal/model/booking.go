package model

import "time"

// Статусы бронирования.
const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusCancelled = "cancelled"
)

// PackageBooking - бронирование пакета пользователем на конкретную дату.
type PackageBooking struct {
	ID          int64     `db:"id" json:"id"`
	PackageID   int64     `db:"package_id" json:"package_id"`
	UserID      int64     `db:"user_id" json:"user_id"`
	BookedDate  time.Time `db:"booked_date" json:"booked_date"`
	NoOfPeople  int       `db:"no_of_people" json:"no_of_people"`
	IsConfirm   bool      `db:"is_confirm" json:"is_confirm"`
	IsCancelled bool      `db:"is_cancelled" json:"is_cancelled"`
	Status      string    `db:"status" json:"status"`
	Description *string   `db:"description" json:"description"`
	ContactNo   *string   `db:"contact_no" json:"contact_no"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// BookingInput - данные новой брони в том виде, в каком их присылает клиент.
type BookingInput struct {
	PackageID   int64   `json:"package_id" form:"package_id"`
	UserID      int64   `json:"user_id" form:"user_id"`
	BookedDate  string  `json:"booked_date" form:"booked_date"`
	NoOfPeople  int     `json:"no_of_people" form:"no_of_people"`
	Description *string `json:"description" form:"description"`
	ContactNo   *string `json:"contact_no" form:"contact_no"`
}

// BookingStatusInput - изменение статуса; хотя бы одно поле обязательно.
type BookingStatusInput struct {
	IsConfirm *bool
	Status    *string
}

// BookingRow - строка выборки бронирования с пакетом и пользователем.
type BookingRow struct {
	PackageBooking
	PackageTitle    string  `db:"package_title"`
	PackageCurrency string  `db:"package_currency"`
	PackagePrice    float64 `db:"package_price"`
	PackageDuration string  `db:"package_duration"`
	PackageImage    string  `db:"package_image"`
	FirstName       string  `db:"first_name"`
	LastName        string  `db:"last_name"`
	Email           string  `db:"email"`
	UserContactNo   string  `db:"user_contact_no"`
}

// BookingDetail - бронирование для ответа API. Пароль и токены пользователя не выдаются.
type BookingDetail struct {
	ID          int64          `json:"id"`
	BookedDate  string         `json:"booked_date"`
	NoOfPeople  int            `json:"no_of_people"`
	Description *string        `json:"description"`
	ContactNo   *string        `json:"contact_no"`
	IsConfirm   bool           `json:"is_confirm"`
	IsCancelled bool           `json:"is_cancelled"`
	Status      string         `json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	User        BookingUser    `json:"user_id"`
	Package     BookingPackage `json:"package_id"`
}

// BookingUser - данные клиента в ответе о бронировании.
type BookingUser struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	ContactNo string `json:"contact_no"`
}

// BookingPackage - краткие данные пакета в ответе о бронировании.
type BookingPackage struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Duration     string  `json:"duration"`
	Currency     string  `json:"currency"`
	Price        float64 `json:"price"`
	PackageImage string  `json:"package_image"`
}

// Detail собирает ответ API из строки выборки.
func (r BookingRow) Detail() BookingDetail {
	return BookingDetail{
		ID:          r.ID,
		BookedDate:  r.BookedDate.Format("2006-01-02"),
		NoOfPeople:  r.NoOfPeople,
		Description: r.Description,
		ContactNo:   r.ContactNo,
		IsConfirm:   r.IsConfirm,
		IsCancelled: r.IsCancelled,
		Status:      r.Status,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
		User: BookingUser{
			ID:        r.UserID,
			FirstName: r.FirstName,
			LastName:  r.LastName,
			Email:     r.Email,
			ContactNo: r.UserContactNo,
		},
		Package: BookingPackage{
			ID:           r.PackageID,
			Title:        r.PackageTitle,
			Duration:     r.PackageDuration,
			Currency:     r.PackageCurrency,
			Price:        r.PackagePrice,
			PackageImage: r.PackageImage,
		},
	}
}
