package records

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/takoapp/tako/model"
	"gorm.io/gorm"
)

type gormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) FindCollection(ctx context.Context, name string) (*Collection, error) {
	var col model.Collection
	err := s.db.WithContext(ctx).Where("name = ?", name).First(&col).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCollectionNotFound
	}
	if err != nil {
		return nil, err
	}

	fields, err := col.FieldNames()
	if err != nil {
		return nil, fmt.Errorf("%w: collection %q: %v", ErrMalformedSchema, name, err)
	}

	return &Collection{
		ID:     col.ID,
		Name:   col.Name,
		Type:   col.Type,
		Fields: fields,
	}, nil
}

func (s *gormStore) FindRecordByField(ctx context.Context, collection *Collection, field string, value string) (*Record, error) {
	var rec model.Record
	err := s.db.WithContext(ctx).
		Where("collection_id = ?", collection.ID).
		Where("JSON_UNQUOTE(JSON_EXTRACT(data, ?)) = ?", "$."+field, value).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}

	data := make(map[string]any)
	if err := json.Unmarshal([]byte(rec.Data), &data); err != nil {
		return nil, fmt.Errorf("record %d: decode data: %w", rec.ID, err)
	}

	return &Record{
		ID:           rec.ID,
		CollectionID: rec.CollectionID,
		Data:         data,
	}, nil
}
