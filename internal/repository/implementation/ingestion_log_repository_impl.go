package implementation

import (
	"context"

	"ai-docchat-be/internal/entity"
	"ai-docchat-be/internal/mapper"
	"ai-docchat-be/internal/model"
	"ai-docchat-be/internal/repository/contract"

	"gorm.io/gorm"
)

type IngestionLogRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.IngestionRecordMapper
}

func NewIngestionLogRepository(db *gorm.DB) contract.IngestionLogRepository {
	return &IngestionLogRepositoryImpl{
		db:     db,
		mapper: mapper.NewIngestionRecordMapper(),
	}
}

func (r *IngestionLogRepositoryImpl) Create(ctx context.Context, record *entity.IngestionRecord) error {
	m, err := r.mapper.ToModel(record)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*record = *r.mapper.ToEntity(m)
	return nil
}

func (r *IngestionLogRepositoryImpl) FindRecent(ctx context.Context, limit int) ([]*entity.IngestionRecord, error) {
	var records []*model.IngestionRecord
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(records), nil
}
