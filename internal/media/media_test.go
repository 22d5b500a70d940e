package media

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/anupgautam/trekkers-encounter-backend/internal/apperr"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePNG(t *testing.T, w, h int) *bytes.Buffer {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return &buf
}

func TestSaveWritesImageAndThumbnail(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir, "http://api.test/")

	url, err := s.Save(KindPackageImages, "Everest.PNG", samplePNG(t, 600, 400))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "http://api.test/media/package_images/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	name := filepath.Base(url)
	_, err = os.Stat(filepath.Join(dir, KindPackageImages, name))
	require.NoError(t, err)

	thumb, err := imaging.Open(filepath.Join(dir, KindPackageImages, "thumb", name))
	require.NoError(t, err)
	assert.Equal(t, 300, thumb.Bounds().Dx())
	assert.Equal(t, 200, thumb.Bounds().Dy())

	require.NoError(t, s.Remove(url))
	_, err = os.Stat(filepath.Join(dir, KindPackageImages, name))
	assert.True(t, os.IsNotExist(err))
}

func TestSaveRejectsNonImages(t *testing.T) {
	s := NewStore(t.TempDir(), "http://api.test")

	_, err := s.Save(KindBlog, "notes.txt", strings.NewReader("hello"))
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = s.Save(KindBlog, "fake.jpg", strings.NewReader("not really a jpeg"))
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = s.Save("secrets", "a.png", samplePNG(t, 10, 10))
	assert.Error(t, err)
}

func TestRemoveIgnoresForeignURLs(t *testing.T) {
	s := NewStore(t.TempDir(), "http://api.test")

	assert.NoError(t, s.Remove("https://cdn.example.com/x.png"))
	assert.NoError(t, s.Remove("http://api.test/media/../../etc/passwd"))
	assert.NoError(t, s.Remove("http://api.test/media/blog/missing.png"))
}
