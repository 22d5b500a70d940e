package database

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/jmoiron/sqlx"
)

// Migrate применяет все *.sql файлы каталога dir в лексическом порядке.
// Каждый файл выполняется в своей транзакции; первая ошибка прерывает запуск.
func Migrate(ctx context.Context, db *sqlx.DB, dir string, log *slog.Logger) error {
	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return fmt.Errorf("некорректный каталог миграций: %w", err)
	}
	sort.Strings(files)

	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("не удалось прочитать миграцию %s: %w", file, err)
		}
		err = WithTx(ctx, db, func(tx *sqlx.Tx) error {
			_, execErr := tx.ExecContext(ctx, string(content))
			return execErr
		})
		if err != nil {
			return fmt.Errorf("миграция %s завершилась ошибкой: %w", file, err)
		}
		log.Info("миграция применена", "file", filepath.Base(file))
	}
	return nil
}
