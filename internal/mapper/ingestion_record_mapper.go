package mapper

import (
	"encoding/json"

	"ai-docchat-be/internal/entity"
	"ai-docchat-be/internal/model"

	"gorm.io/datatypes"
)

type IngestionRecordMapper struct{}

func NewIngestionRecordMapper() *IngestionRecordMapper {
	return &IngestionRecordMapper{}
}

func (m *IngestionRecordMapper) ToEntity(r *model.IngestionRecord) *entity.IngestionRecord {
	if r == nil {
		return nil
	}

	details := make(map[string]interface{})
	if len(r.Details) > 0 {
		// Best-effort decode; malformed stored JSON yields empty details.
		_ = json.Unmarshal(r.Details, &details)
	}

	return &entity.IngestionRecord{
		Id:        r.Id,
		EventType: r.EventType,
		Details:   details,
		CreatedAt: r.CreatedAt,
	}
}

func (m *IngestionRecordMapper) ToEntities(records []*model.IngestionRecord) []*entity.IngestionRecord {
	entities := make([]*entity.IngestionRecord, 0, len(records))
	for _, r := range records {
		entities = append(entities, m.ToEntity(r))
	}
	return entities
}

func (m *IngestionRecordMapper) ToModel(r *entity.IngestionRecord) (*model.IngestionRecord, error) {
	if r == nil {
		return nil, nil
	}

	var details datatypes.JSON
	if r.Details != nil {
		raw, err := json.Marshal(r.Details)
		if err != nil {
			return nil, err
		}
		details = datatypes.JSON(raw)
	}

	return &model.IngestionRecord{
		Id:        r.Id,
		EventType: r.EventType,
		Details:   details,
		CreatedAt: r.CreatedAt,
	}, nil
}
