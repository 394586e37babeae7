package implementation

import (
	"context"
	"errors"
	"fmt"

	"rag-assistant-be/internal/entity"
	"rag-assistant-be/internal/mapper"
	"rag-assistant-be/internal/model"
	"rag-assistant-be/internal/repository/contract"
	"rag-assistant-be/internal/repository/specification"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ConversationRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ConversationMapper
}

func NewConversationRepository(db *gorm.DB) contract.ConversationRepository {
	return &ConversationRepositoryImpl{
		db:     db,
		mapper: mapper.NewConversationMapper(),
	}
}

func (r *ConversationRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

// GetOrCreate relies on the unique index on session_id: the insert is a
// no-op when the session already exists, and the follow-up select
// resolves the winner either way. No read-then-write race.
func (r *ConversationRepositoryImpl) GetOrCreate(ctx context.Context, sessionID string) (*entity.Conversation, error) {
	m := &model.Conversation{SessionId: sessionID}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}},
			DoNothing: true,
		}).
		Create(m).Error
	if err != nil {
		return nil, err
	}

	// A conflicting insert leaves m.Id zero; re-read in that case.
	if m.Id == 0 {
		if err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).First(m).Error; err != nil {
			return nil, fmt.Errorf("resolve conversation for session %q: %w", sessionID, err)
		}
	}
	return r.mapper.ToEntity(m), nil
}

func (r *ConversationRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Conversation, error) {
	var m model.Conversation
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ConversationRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.Conversation{}).Count(&count).Error
	return count, err
}
