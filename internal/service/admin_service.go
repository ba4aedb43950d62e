package service

import (
	"context"
	"time"

	"ai-docchat-be/internal/dto"
	"ai-docchat-be/internal/pkg/logger"
	"ai-docchat-be/internal/repository/contract"
)

type IAdminService interface {
	RecentIngestions(ctx context.Context, limit int) ([]dto.IngestionRecordResponse, error)
}

type adminService struct {
	ingestionLog contract.IngestionLogRepository
	log          logger.ILogger
}

func NewAdminService(ingestionLog contract.IngestionLogRepository, log logger.ILogger) IAdminService {
	return &adminService{
		ingestionLog: ingestionLog,
		log:          log,
	}
}

func (s *adminService) RecentIngestions(ctx context.Context, limit int) ([]dto.IngestionRecordResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	records, err := s.ingestionLog.FindRecent(ctx, limit)
	if err != nil {
		return nil, err
	}

	res := make([]dto.IngestionRecordResponse, 0, len(records))
	for _, record := range records {
		res = append(res, dto.IngestionRecordResponse{
			Id:        record.Id.String(),
			EventType: record.EventType,
			Details:   record.Details,
			CreatedAt: record.CreatedAt.Format(time.RFC3339),
		})
	}
	return res, nil
}
