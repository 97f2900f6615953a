package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	schemesusecase "fund_backend/internal/feature/schemes/usecase"
	screenerusecase "fund_backend/internal/feature/screener/usecase"
)

type documentGorm struct {
	db       *gorm.DB
	database string
}

var (
	_ schemesusecase.DocumentStore  = (*documentGorm)(nil)
	_ screenerusecase.DocumentStore = (*documentGorm)(nil)
)

// NewDocumentStore returns a document store that keeps the collections of
// one logical database in the documents table.
func NewDocumentStore(db *gorm.DB, database string) *documentGorm {
	return &documentGorm{db: db, database: database}
}

// DocumentModel is one stored document. IDs are UUIDv7, so they sort in
// insertion order. Key is only set for upserted documents; NULL keys never
// collide in the unique index.
type DocumentModel struct {
	ID         string    `gorm:"primaryKey;size:36"`
	Database   string    `gorm:"column:db_name;size:64;not null;uniqueIndex:doc_db_coll_key,priority:1"`
	Collection string    `gorm:"size:64;not null;uniqueIndex:doc_db_coll_key,priority:2"`
	KeyField   string    `gorm:"size:64"`
	Key        *string   `gorm:"column:doc_key;size:191;uniqueIndex:doc_db_coll_key,priority:3"`
	Body       string    `gorm:"type:text;not null"`
	CreatedAt  time.Time `gorm:"not null"`
}

func (DocumentModel) TableName() string {
	return "documents"
}

func (r *documentGorm) toModel(collection string, doc map[string]any) (DocumentModel, error) {
	b, err := json.Marshal(doc)
	if err != nil {
		return DocumentModel{}, fmt.Errorf("encode document: %w", err)
	}
	id, err := uuid.NewV7()
	if err != nil {
		return DocumentModel{}, err
	}
	return DocumentModel{
		ID:         id.String(),
		Database:   r.database,
		Collection: collection,
		Body:       string(b),
		CreatedAt:  time.Now().UTC(),
	}, nil
}

func (r *documentGorm) InsertOne(ctx context.Context, collection string, doc map[string]any) (string, error) {
	m, err := r.toModel(collection, doc)
	if err != nil {
		return "", err
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return "", err
	}
	return m.ID, nil
}

func (r *documentGorm) InsertMany(ctx context.Context, collection string, docs []map[string]any) ([]string, error) {
	if len(docs) == 0 {
		return nil, nil
	}
	ms := make([]DocumentModel, 0, len(docs))
	for _, d := range docs {
		m, err := r.toModel(collection, d)
		if err != nil {
			return nil, err
		}
		ms = append(ms, m)
	}
	if err := r.db.WithContext(ctx).Create(&ms).Error; err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(ms))
	for _, m := range ms {
		ids = append(ids, m.ID)
	}
	return ids, nil
}

func (r *documentGorm) Upsert(ctx context.Context, collection, keyField, keyValue string, doc map[string]any) error {
	m, err := r.toModel(collection, doc)
	if err != nil {
		return err
	}
	m.KeyField = keyField
	m.Key = &keyValue

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "db_name"}, {Name: "collection"}, {Name: "doc_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"key_field", "body", "created_at"}),
	}).Create(&m).Error
}
