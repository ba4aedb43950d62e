package implementation

import (
	"context"
	"errors"

	"ai-docchat-be/internal/model"
	"ai-docchat-be/internal/repository/contract"
	"ai-docchat-be/pkg/contentstore"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BlobRepositoryImpl struct {
	db *gorm.DB
}

func NewBlobRepository(db *gorm.DB) contract.BlobRepository {
	return &BlobRepositoryImpl{db: db}
}

func (r *BlobRepositoryImpl) Save(ctx context.Context, hash contentstore.Hash, content string) error {
	blob := model.DocumentBlob{
		ContentHash: string(hash),
		Content:     content,
	}
	// Concurrent writers of the same hash carry identical content, so the
	// losing insert is simply skipped.
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&blob).Error
}

func (r *BlobRepositoryImpl) Load(ctx context.Context, hash contentstore.Hash) (string, error) {
	var blob model.DocumentBlob
	err := r.db.WithContext(ctx).First(&blob, "content_hash = ?", string(hash)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", contentstore.ErrNotFound
		}
		return "", err
	}
	return blob.Content, nil
}

func (r *BlobRepositoryImpl) Exists(ctx context.Context, hash contentstore.Hash) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.DocumentBlob{}).
		Where("content_hash = ?", string(hash)).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *BlobRepositoryImpl) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&model.DocumentBlob{}).Error
}
