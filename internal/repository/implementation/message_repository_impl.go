package implementation

import (
	"context"
	"errors"

	"rag-assistant-be/internal/entity"
	"rag-assistant-be/internal/mapper"
	"rag-assistant-be/internal/model"
	"rag-assistant-be/internal/repository/contract"
	"rag-assistant-be/internal/repository/specification"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Postgres class 23 foreign key violation, raised when a message
// references a conversation that does not exist.
const foreignKeyViolationCode = "23503"

type MessageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.MessageMapper
}

func NewMessageRepository(db *gorm.DB) contract.MessageRepository {
	return &MessageRepositoryImpl{
		db:     db,
		mapper: mapper.NewMessageMapper(),
	}
}

func (r *MessageRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *MessageRepositoryImpl) Create(ctx context.Context, message *entity.Message) error {
	m := r.mapper.ToModel(message)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return translateMessageCreateError(err)
	}
	*message = *r.mapper.ToEntity(m)
	return nil
}

func translateMessageCreateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolationCode {
		return contract.ErrConversationNotFound
	}
	return err
}

// Recent fetches the newest limit messages (ORDER BY id DESC) and
// reverses them so callers always see chronological, oldest-first order.
func (r *MessageRepositoryImpl) Recent(ctx context.Context, conversationID int64, limit int) ([]*entity.Message, error) {
	var models []*model.Message
	query := r.applySpecifications(r.db.WithContext(ctx),
		specification.ByConversationID{ConversationID: conversationID},
		specification.OrderBy{Field: "id", Desc: true},
		specification.Limit{Count: limit},
	)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	for i, j := 0, len(models)-1; i < j; i, j = i+1, j-1 {
		models[i], models[j] = models[j], models[i]
	}
	return r.mapper.ToEntities(models), nil
}

func (r *MessageRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error) {
	var models []*model.Message
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *MessageRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.Message{}).Count(&count).Error
	return count, err
}
