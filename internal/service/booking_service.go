package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/anupgautam/trekkers-encounter-backend/internal/apperr"
	"github.com/anupgautam/trekkers-encounter-backend/internal/database"
	"github.com/anupgautam/trekkers-encounter-backend/internal/model"
	"github.com/anupgautam/trekkers-encounter-backend/internal/repository"

	"github.com/jmoiron/sqlx"
)

// BookingNotifier получает события бронирований (например, администраторы в Telegram).
type BookingNotifier interface {
	BookingCreated(ctx context.Context, b model.BookingDetail) error
	BookingStatusChanged(ctx context.Context, b model.BookingDetail) error
}

// transitions - разрешенные переходы статуса. Переход в тот же статус разрешен всегда.
var transitions = map[string][]string{
	model.StatusPending:  {model.StatusApproved, model.StatusCancelled},
	model.StatusApproved: {model.StatusCancelled},
}

// BookingService содержит бизнес-логику, связанную с бронированиями.
type BookingService struct {
	db       *sqlx.DB
	bookings *repository.BookingRepository
	notifier BookingNotifier
	log      *slog.Logger
	now      func() time.Time
}

// NewBookingService создает новый сервис бронирований.
func NewBookingService(db *sqlx.DB, bookings *repository.BookingRepository, notifier BookingNotifier, log *slog.Logger) *BookingService {
	return &BookingService{db: db, bookings: bookings, notifier: notifier, log: log, now: time.Now}
}

// List возвращает бронирования с пакетом и пользователем; пустой status - все статусы.
func (s *BookingService) List(ctx context.Context, status string) ([]model.BookingDetail, error) {
	if status != "" && !ValidStatus(status) {
		return nil, apperr.Validation(invalidStatusMsg)
	}
	rows, err := s.bookings.ListDetailed(ctx, status)
	if err != nil {
		return nil, err
	}
	details := make([]model.BookingDetail, 0, len(rows))
	for _, row := range rows {
		details = append(details, row.Detail())
	}
	return details, nil
}

// Get возвращает бронирование с пакетом и пользователем.
func (s *BookingService) Get(ctx context.Context, id int64) (*model.BookingDetail, error) {
	row, err := s.bookings.GetDetailed(ctx, id)
	if err != nil {
		return nil, err
	}
	d := row.Detail()
	return &d, nil
}

// CountByStatus возвращает число бронирований по статусам.
func (s *BookingService) CountByStatus(ctx context.Context) (map[string]int, error) {
	return s.bookings.CountByStatus(ctx)
}

// Create проверяет и сохраняет новое бронирование в статусе pending.
func (s *BookingService) Create(ctx context.Context, in model.BookingInput) (*model.PackageBooking, error) {
	if in.PackageID <= 0 || in.UserID <= 0 || strings.TrimSpace(in.BookedDate) == "" || in.NoOfPeople <= 0 {
		return nil, apperr.Validation("Missing required fields: package_id, user_id, booked_date, and no_of_people are required.")
	}
	date, err := ValidateBookedDate(in.BookedDate, s.now())
	if err != nil {
		return nil, err
	}

	saved, err := s.bookings.Create(ctx, &model.PackageBooking{
		PackageID:   in.PackageID,
		UserID:      in.UserID,
		BookedDate:  date,
		NoOfPeople:  in.NoOfPeople,
		Status:      model.StatusPending,
		Description: in.Description,
		ContactNo:   in.ContactNo,
	})
	if err != nil {
		return nil, err
	}
	s.notify(ctx, saved.ID, s.notifier.BookingCreated)
	return saved, nil
}

// UpdateStatus меняет is_confirm и/или статус бронирования по таблице переходов.
// Проверка и запись выполняются под блокировкой строки бронирования.
func (s *BookingService) UpdateStatus(ctx context.Context, id int64, in model.BookingStatusInput) (*model.PackageBooking, error) {
	if in.IsConfirm == nil && in.Status == nil {
		return nil, apperr.Validation("Must provide at least is_confirm or status to update.")
	}
	if in.Status != nil && !ValidStatus(*in.Status) {
		return nil, apperr.Validation(invalidStatusMsg)
	}

	var (
		saved   *model.PackageBooking
		changed bool
	)
	err := database.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		bookings := s.bookings.WithTx(tx)
		current, err := bookings.LockForUpdate(ctx, id)
		if err != nil {
			return err
		}

		status := current.Status
		if in.Status != nil {
			if !CanTransition(current.Status, *in.Status) {
				return apperr.Validation(fmt.Sprintf("Cannot change booking status from %s to %s.", current.Status, *in.Status))
			}
			status = *in.Status
		}
		isConfirm := current.IsConfirm
		if in.IsConfirm != nil {
			isConfirm = *in.IsConfirm
		}
		isCancelled := current.IsCancelled || status == model.StatusCancelled

		changed = status != current.Status || isConfirm != current.IsConfirm
		saved, err = bookings.UpdateStatus(ctx, id, isConfirm, isCancelled, status)
		return err
	})
	if err != nil {
		return nil, err
	}
	if changed {
		s.notify(ctx, id, s.notifier.BookingStatusChanged)
	}
	return saved, nil
}

// Delete удаляет бронирование.
func (s *BookingService) Delete(ctx context.Context, id int64) error {
	return s.bookings.Delete(ctx, id)
}

// notify отправляет событие; ошибки уведомлений только логируются.
func (s *BookingService) notify(ctx context.Context, id int64, send func(context.Context, model.BookingDetail) error) {
	detail, err := s.Get(ctx, id)
	if err != nil {
		s.log.Warn("не удалось загрузить бронирование для уведомления", "booking_id", id, "error", err)
		return
	}
	if err := send(ctx, *detail); err != nil {
		s.log.Warn("не удалось отправить уведомление о бронировании", "booking_id", id, "error", err)
	}
}

const invalidStatusMsg = "Invalid status value. Allowed values are: pending, approved, cancelled."

// ValidStatus сообщает, допустимо ли значение статуса.
func ValidStatus(status string) bool {
	switch status {
	case model.StatusPending, model.StatusApproved, model.StatusCancelled:
		return true
	}
	return false
}

// CanTransition сообщает, разрешен ли переход статуса from -> to.
func CanTransition(from, to string) bool {
	if from == to {
		return true
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidateBookedDate разбирает дату брони (YYYY-MM-DD или RFC 3339) и проверяет,
// что она не раньше сегодняшнего дня в часовом поясе now. Возвращает дату в UTC-полночь.
func ValidateBookedDate(raw string, now time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	var y int
	var m time.Month
	var d int
	if t, err := time.ParseInLocation(time.DateOnly, raw, now.Location()); err == nil {
		y, m, d = t.Date()
	} else if t, err := time.Parse(time.RFC3339, raw); err == nil {
		y, m, d = t.Date()
	} else {
		return time.Time{}, apperr.Validation("Invalid booked_date. Use the YYYY-MM-DD format.")
	}

	date := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	ny, nm, nd := now.Date()
	today := time.Date(ny, nm, nd, 0, 0, 0, 0, now.Location())
	if date.Before(today) {
		return time.Time{}, apperr.Validation("Booking date must be today or a future date.")
	}
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
}

// ParseStatusInput извлекает is_confirm и status из произвольного JSON-объекта.
// is_confirm приводится к bool по правилам JSON-истинности (bool, число, "1"/"true").
// Явный null считается false.
func ParseStatusInput(body map[string]any) (model.BookingStatusInput, error) {
	var in model.BookingStatusInput
	if v, ok := body["is_confirm"]; ok {
		b, err := coerceBool(v)
		if err != nil {
			return in, err
		}
		in.IsConfirm = &b
	}
	if v, ok := body["status"]; ok && v != nil {
		str, ok := v.(string)
		if !ok {
			return in, apperr.Validation(invalidStatusMsg)
		}
		in.Status = &str
	}
	return in, nil
}

func coerceBool(v any) (bool, error) {
	switch t := v.(type) {
	case nil:
		return false, nil
	case bool:
		return t, nil
	case float64:
		return t != 0, nil
	case int:
		return t != 0, nil
	case string:
		s := strings.ToLower(strings.TrimSpace(t))
		if s == "" {
			return false, nil
		}
		if b, err := strconv.ParseBool(s); err == nil {
			return b, nil
		}
		if n, err := strconv.ParseFloat(s, 64); err == nil {
			return n != 0, nil
		}
		return true, nil
	}
	return false, apperr.Validation("is_confirm must be a boolean.")
}
