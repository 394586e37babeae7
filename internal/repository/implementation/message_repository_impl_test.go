package implementation

import (
	"fmt"
	"testing"

	"rag-assistant-be/internal/repository/contract"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestTranslateMessageCreateErrorForeignKeyViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:    foreignKeyViolationCode,
		Message: "insert or update on table \"messages\" violates foreign key constraint",
	}

	err := translateMessageCreateError(pgErr)

	assert.ErrorIs(t, err, contract.ErrConversationNotFound)
}

func TestTranslateMessageCreateErrorWrappedForeignKeyViolation(t *testing.T) {
	wrapped := fmt.Errorf("create message: %w", &pgconn.PgError{Code: foreignKeyViolationCode})

	err := translateMessageCreateError(wrapped)

	assert.ErrorIs(t, err, contract.ErrConversationNotFound)
}

func TestTranslateMessageCreateErrorPassesThroughOtherErrors(t *testing.T) {
	uniqueViolation := &pgconn.PgError{Code: "23505"}
	assert.Equal(t, error(uniqueViolation), translateMessageCreateError(uniqueViolation))

	plain := fmt.Errorf("connection refused")
	assert.Equal(t, plain, translateMessageCreateError(plain))
}
