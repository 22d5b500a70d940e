// Package media сохраняет загруженные изображения на локальный диск.
package media

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/anupgautam/trekkers-encounter-backend/internal/apperr"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	_ "golang.org/x/image/webp"
)

// Каталоги загрузок.
const (
	KindPackageImages = "package_images"
	KindOtherImages   = "other_images"
	KindGallery       = "gallery_images"
	KindHomePage      = "home_page"
	KindBlog          = "blog"
)

const (
	thumbDir   = "thumb"
	thumbWidth = 300
)

var kinds = map[string]bool{
	KindPackageImages: true,
	KindOtherImages:   true,
	KindGallery:       true,
	KindHomePage:      true,
	KindBlog:          true,
}

// Расширения, которые принимаются, и формат, в котором файл сохраняется.
// webp imaging записывать не умеет, поэтому он перекодируется в jpg.
var saveExt = map[string]string{
	".jpg":  ".jpg",
	".jpeg": ".jpg",
	".png":  ".png",
	".gif":  ".gif",
	".webp": ".jpg",
}

// Store хранит файлы в dir и отдает их по baseURL + "/media".
type Store struct {
	dir     string
	baseURL string
}

// NewStore создает хранилище файлов в каталоге dir.
func NewStore(dir, baseURL string) *Store {
	return &Store{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}
}

// Dir возвращает корневой каталог для раздачи статики.
func (s *Store) Dir() string {
	return s.dir
}

// SaveFile сохраняет файл из multipart-формы.
func (s *Store) SaveFile(kind string, fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("не удалось открыть файл %s: %w", fh.Filename, err)
	}
	defer f.Close()
	return s.Save(kind, fh.Filename, f)
}

// Save декодирует изображение с учетом EXIF-ориентации, сохраняет копию и миниатюру
// и возвращает публичный URL.
func (s *Store) Save(kind, filename string, r io.Reader) (string, error) {
	if !kinds[kind] {
		return "", fmt.Errorf("неизвестный тип загрузки %q", kind)
	}
	ext, ok := saveExt[strings.ToLower(filepath.Ext(filename))]
	if !ok {
		return "", apperr.Validation("Only jpg, jpeg, png, gif and webp images are allowed.")
	}
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return "", apperr.Wrap(apperr.KindValidation, "Uploaded file is not a valid image.", err)
	}

	name := uuid.NewString() + ext
	dir := filepath.Join(s.dir, kind)
	if err := os.MkdirAll(filepath.Join(dir, thumbDir), 0o755); err != nil {
		return "", fmt.Errorf("не удалось создать каталог %s: %w", dir, err)
	}
	if err := imaging.Save(img, filepath.Join(dir, name)); err != nil {
		return "", fmt.Errorf("не удалось сохранить изображение: %w", err)
	}
	thumb := imaging.Resize(img, thumbWidth, 0, imaging.Lanczos)
	if err := imaging.Save(thumb, filepath.Join(dir, thumbDir, name)); err != nil {
		os.Remove(filepath.Join(dir, name))
		return "", fmt.Errorf("не удалось сохранить миниатюру: %w", err)
	}
	return s.baseURL + "/media/" + kind + "/" + name, nil
}

// Remove удаляет файл и его миниатюру по публичному URL.
// URL, не принадлежащие хранилищу, игнорируются.
func (s *Store) Remove(url string) error {
	rel, ok := strings.CutPrefix(url, s.baseURL+"/media/")
	if !ok {
		return nil
	}
	kind, name := path.Split(rel)
	kind = strings.TrimSuffix(kind, "/")
	if !kinds[kind] || name == "" || strings.Contains(name, "..") {
		return nil
	}
	for _, p := range []string{filepath.Join(s.dir, kind, name), filepath.Join(s.dir, kind, thumbDir, name)} {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("не удалось удалить %s: %w", p, err)
		}
	}
	return nil
}
