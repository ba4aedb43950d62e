package contract

import (
	"context"

	"ai-docchat-be/internal/entity"
)

type IngestionLogRepository interface {
	Create(ctx context.Context, record *entity.IngestionRecord) error
	FindRecent(ctx context.Context, limit int) ([]*entity.IngestionRecord, error)
}
