package infrastructure

import "github.com/robosite/storefront/pkg/e"

var imageExtByMIME = map[string]string{
	"image/jpeg": "jpg",
	"image/jpg":  "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

// GetExtensionFromMIME подбирает расширение файла для изображения
// товара. Неизвестный MIME-тип отклоняется с e.ErrUnsupportedMedia.
func GetExtensionFromMIME(mime string) (string, error) {
	ext, ok := imageExtByMIME[mime]
	if !ok {
		return "bin", e.ErrUnsupportedMedia
	}

	return ext, nil
}
