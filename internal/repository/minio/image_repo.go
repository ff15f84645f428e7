package minio

import (
	"bytes"
	"context"

	"github.com/jimlawless/whereami"
	"github.com/minio/minio-go/v7"
	"github.com/robosite/storefront/internal/cfg"
	"github.com/robosite/storefront/internal/domain"
	"github.com/robosite/storefront/pkg/e"
)

// ImageRepo хранит изображения товаров в бакете MinIO.
type ImageRepo struct {
	mc  *minio.Client
	cfg *cfg.MinIOCfg
}

func NewImageRepo(mc *minio.Client, cfg *cfg.MinIOCfg) *ImageRepo {
	return &ImageRepo{mc: mc, cfg: cfg}
}

// Upload кладёт изображение в бакет и возвращает ключ объекта.
func (i *ImageRepo) Upload(ctx context.Context, image *domain.Image) (string, error) {
	opts := minio.PutObjectOptions{ContentType: *image.MimeType}

	info, err := i.mc.PutObject(ctx, i.cfg.BucketName, image.ObjectKey,
		bytes.NewReader(image.Bytes), *image.Size, opts)
	if err != nil {
		return "", e.Wrap(whereami.WhereAmI(), err)
	}

	return info.Key, nil
}

// Delete убирает объект из бакета.
func (i *ImageRepo) Delete(ctx context.Context, key string) error {
	if err := i.mc.RemoveObject(ctx, i.cfg.BucketName, key, minio.RemoveObjectOptions{}); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}
