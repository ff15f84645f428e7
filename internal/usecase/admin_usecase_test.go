package usecase

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robosite/storefront/pkg/e"
	"github.com/robosite/storefront/pkg/logger"
)

type outboxRepoMock struct {
	created []*OutboxEvent
}

func (m *outboxRepoMock) Create(_ context.Context, event *OutboxEvent) (*OutboxEvent, error) {
	m.created = append(m.created, event)
	return event, nil
}

func (m *outboxRepoMock) GetAndMarkAsProcessing(_ context.Context, _ int) ([]*OutboxEvent, error) {
	panic("not used")
}

func (m *outboxRepoMock) MarkAsProcessed(_ context.Context, _ int64) error {
	panic("not used")
}

type imagesInfraMock struct {
	uploadFn func(ctx context.Context, req *UploadImageReq) (*UploadImageRes, error)
	cleaned  [][]string
}

func (m *imagesInfraMock) UploadImage(ctx context.Context, req *UploadImageReq) (*UploadImageRes, error) {
	return m.uploadFn(ctx, req)
}

func (m *imagesInfraMock) CleanupImages(keys []string) {
	m.cleaned = append(m.cleaned, keys)
}

// fakeTx подменяет pgx.Tx: мутации ходят через замоканные репозитории,
// транзакции остаётся только фиксироваться или откатываться.
type fakeTx struct {
	commits   int
	rollbacks int
}

func (t *fakeTx) Begin(_ context.Context) (pgx.Tx, error) { panic("not used") }

func (t *fakeTx) Commit(_ context.Context) error {
	t.commits++
	return nil
}

func (t *fakeTx) Rollback(_ context.Context) error {
	t.rollbacks++
	return nil
}

func (t *fakeTx) CopyFrom(_ context.Context, _ pgx.Identifier, _ []string, _ pgx.CopyFromSource) (int64, error) {
	panic("not used")
}

func (t *fakeTx) SendBatch(_ context.Context, _ *pgx.Batch) pgx.BatchResults { panic("not used") }

func (t *fakeTx) LargeObjects() pgx.LargeObjects { panic("not used") }

func (t *fakeTx) Prepare(_ context.Context, _, _ string) (*pgconn.StatementDescription, error) {
	panic("not used")
}

func (t *fakeTx) Exec(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
	panic("not used")
}

func (t *fakeTx) Query(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
	panic("not used")
}

func (t *fakeTx) QueryRow(_ context.Context, _ string, _ ...any) pgx.Row { panic("not used") }

func (t *fakeTx) Conn() *pgx.Conn { panic("not used") }

type fakeTxPool struct {
	tx *fakeTx
}

func (p *fakeTxPool) Begin(_ context.Context) (pgx.Tx, error) {
	return p.tx, nil
}

func (p *fakeTxPool) BeginTx(_ context.Context, _ pgx.TxOptions) (pgx.Tx, error) {
	return p.tx, nil
}

func testImage() ProductImage {
	return ProductImage{
		Data:     []byte{0xFF, 0xD8, 0xFF},
		MimeType: "image/jpeg",
		Size:     3,
		Name:     "robot.jpg",
	}
}

func TestAttachImage(t *testing.T) {
	const (
		productID   = "11111111-1111-1111-1111-111111111111"
		uploadedURL = "http://localhost:9000/products/11111111-1111-1111-1111-111111111111.jpg"
		uploadedKey = "11111111-1111-1111-1111-111111111111.jpg"
	)

	upload := func(_ context.Context, _ *UploadImageReq) (*UploadImageRes, error) {
		return &UploadImageRes{Key: uploadedKey, URL: uploadedURL}, nil
	}

	t.Run("ResponseCarriesFreshImageURL", func(t *testing.T) {
		tx := &fakeTx{}
		outbox := &outboxRepoMock{}
		repo := &productRepoMock{
			setImageFn: func(_ context.Context, id, imageURL string) (*ProductInfo, error) {
				p := testProduct(id, 5319_00)
				p.Image = imageURL
				return p, nil
			},
			// снимок для ответа обязан приходить из той же транзакции,
			// что и UPDATE; чтение мимо неё вернуло бы старую строку
			getByIDFn: func(_ context.Context, _ string) (*ProductInfo, error) {
				t.Fatal("unexpected read outside the mutation transaction")
				return nil, nil
			},
		}

		uc := NewAdminCatalogUC(repo, outbox, &fakeTxPool{tx: tx}, &imagesInfraMock{uploadFn: upload},
			newCacheRepoMock(), logger.NewSlogLogger())

		res, err := uc.AttachImage(context.Background(), &AttachImageReq{ProductID: productID, Image: testImage()})
		require.NoError(t, err)
		require.NotNil(t, res)

		assert.Equal(t, uploadedURL, res.Image)
		assert.Equal(t, 1, tx.commits)
		require.Len(t, outbox.created, 1)
		assert.Equal(t, ProductUpdated, outbox.created[0].EventType)
		assert.Equal(t, productID, outbox.created[0].ProductID)
	})

	t.Run("MissingProductRollsBackAndCleansUpload", func(t *testing.T) {
		tx := &fakeTx{}
		images := &imagesInfraMock{uploadFn: upload}
		repo := &productRepoMock{
			setImageFn: func(_ context.Context, _, _ string) (*ProductInfo, error) {
				return nil, nil
			},
		}

		uc := NewAdminCatalogUC(repo, &outboxRepoMock{}, &fakeTxPool{tx: tx}, images,
			newCacheRepoMock(), logger.NewSlogLogger())

		res, err := uc.AttachImage(context.Background(), &AttachImageReq{ProductID: productID, Image: testImage()})
		require.Error(t, err)
		assert.ErrorIs(t, err, e.ErrProductNotFound)
		assert.Nil(t, res)

		assert.Equal(t, 0, tx.commits)
		assert.Equal(t, 1, tx.rollbacks)
		require.Len(t, images.cleaned, 1)
		assert.Equal(t, []string{uploadedKey}, images.cleaned[0])
	})
}
