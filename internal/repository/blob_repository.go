package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hipolitokrisandrew-code/hr-request-service/internal/domain"
)

// BlobStore stores attachment bytes and hands back a serveable URL.
type BlobStore interface {
	Store(ctx context.Context, data []byte, mimeType, name string) (string, error)
	Fetch(ctx context.Context, id string) (*domain.BlobObject, error)
}

type blobRepository struct {
	pool *pgxpool.Pool
}

// NewBlobRepository instantiates a Postgres-backed blob store.
func NewBlobRepository(pool *pgxpool.Pool) BlobStore {
	return &blobRepository{pool: pool}
}

func (r *blobRepository) Store(ctx context.Context, data []byte, mimeType, name string) (string, error) {
	id := uuid.NewString()
	const query = `
        INSERT INTO attachments (id, file_name, mime_type, data)
        VALUES ($1,$2,$3,$4)`
	if _, err := r.pool.Exec(ctx, query, id, name, mimeType, data); err != nil {
		return "", err
	}
	return "/files/" + id, nil
}

func (r *blobRepository) Fetch(ctx context.Context, id string) (*domain.BlobObject, error) {
	const query = `
        SELECT id, file_name, mime_type, data, created_at
        FROM attachments WHERE id=$1`
	var blob domain.BlobObject
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&blob.ID,
		&blob.FileName,
		&blob.MimeType,
		&blob.Data,
		&blob.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &blob, nil
}
