package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type IngestionRecord struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EventType string         `gorm:"type:varchar(64);not null;index"`
	Details   datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt time.Time      `gorm:"autoCreateTime;index"`
}

func (IngestionRecord) TableName() string {
	return "ingestion_records"
}
