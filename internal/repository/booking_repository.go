package repository

import (
	"context"
	"fmt"

	"github.com/anupgautam/trekkers-encounter-backend/internal/model"

	"github.com/jmoiron/sqlx"
)

const bookingDetailSelect = `
	SELECT pb.*,
	       p.title AS package_title,
	       p.currency AS package_currency,
	       p.price AS package_price,
	       p.duration AS package_duration,
	       p.package_image AS package_image,
	       u.first_name, u.last_name, u.email,
	       u.contact_no AS user_contact_no
	FROM package_bookings pb
	JOIN packages p ON pb.package_id = p.id
	JOIN users u ON pb.user_id = u.id`

// BookingRepository обеспечивает доступ к данным бронирований в базе данных.
type BookingRepository struct {
	*Store[model.PackageBooking]
	db sqlx.ExtContext
}

// NewBookingRepository создает новый репозиторий для бронирований.
func NewBookingRepository(db sqlx.ExtContext) *BookingRepository {
	return &BookingRepository{
		Store: NewStore[model.PackageBooking](db, TablePackageBookings, "Booking",
			"package_id", "user_id", "booked_date", "no_of_people", "is_confirm",
			"is_cancelled", "status", "description", "contact_no"),
		db: db,
	}
}

// WithTx возвращает копию репозитория внутри транзакции.
func (r *BookingRepository) WithTx(tx *sqlx.Tx) *BookingRepository {
	return &BookingRepository{Store: r.Store.WithTx(tx), db: tx}
}

// ListDetailed возвращает бронирования вместе с пакетом и пользователем.
// Пустой status означает все статусы.
func (r *BookingRepository) ListDetailed(ctx context.Context, status string) ([]model.BookingRow, error) {
	rows := []model.BookingRow{}
	query := bookingDetailSelect
	var args []any
	if status != "" {
		query += " WHERE pb.status = $1"
		args = append(args, status)
	}
	query += " ORDER BY pb.id"
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, classify(err, "Booking", opRead)
	}
	return rows, nil
}

// GetDetailed возвращает одно бронирование с пакетом и пользователем.
func (r *BookingRepository) GetDetailed(ctx context.Context, id int64) (*model.BookingRow, error) {
	var row model.BookingRow
	if err := sqlx.GetContext(ctx, r.db, &row, bookingDetailSelect+" WHERE pb.id = $1", id); err != nil {
		return nil, classify(err, "Booking", opRead)
	}
	return &row, nil
}

// LockForUpdate читает бронирование и блокирует его строку до конца транзакции.
func (r *BookingRepository) LockForUpdate(ctx context.Context, id int64) (*model.PackageBooking, error) {
	var b model.PackageBooking
	if err := sqlx.GetContext(ctx, r.db, &b, "SELECT * FROM package_bookings WHERE id = $1 FOR UPDATE", id); err != nil {
		return nil, classify(err, "Booking", opRead)
	}
	return &b, nil
}

// UpdateStatus сохраняет флаги и статус бронирования.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, isConfirm, isCancelled bool, status string) (*model.PackageBooking, error) {
	var b model.PackageBooking
	err := sqlx.GetContext(ctx, r.db, &b,
		`UPDATE package_bookings
		 SET is_confirm = $1, is_cancelled = $2, status = $3, updated_at = now()
		 WHERE id = $4
		 RETURNING *`, isConfirm, isCancelled, status, id)
	if err != nil {
		return nil, classify(err, "Booking", opWrite)
	}
	return &b, nil
}

// CountByStatus возвращает число бронирований в каждом статусе.
func (r *BookingRepository) CountByStatus(ctx context.Context) (map[string]int, error) {
	var rows []struct {
		Status string `db:"status"`
		Total  int    `db:"total"`
	}
	if err := sqlx.SelectContext(ctx, r.db, &rows, "SELECT status, COUNT(*) AS total FROM package_bookings GROUP BY status"); err != nil {
		return nil, fmt.Errorf("не удалось посчитать бронирования: %w", err)
	}
	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}
