package model

import (
	"time"
)

type DocumentBlob struct {
	ContentHash string    `gorm:"type:varchar(32);primaryKey"`
	Content     string    `gorm:"type:text;not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (DocumentBlob) TableName() string {
	return "document_blobs"
}
