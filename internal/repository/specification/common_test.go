package specification

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newDryRunDB builds SQL without touching a database.
func newDryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{DSN: "host=localhost"}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)
	return db
}

func buildSQL(db *gorm.DB, specs ...Specification) *gorm.Statement {
	query := db.Table("messages")
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	var rows []map[string]interface{}
	return query.Find(&rows).Statement
}

func TestLimitCapsResultCount(t *testing.T) {
	db := newDryRunDB(t)

	stmt := buildSQL(db, Limit{Count: 3})

	assert.Contains(t, stmt.SQL.String(), "LIMIT")
	assert.Contains(t, stmt.Vars, 3)
}

func TestOrderByDescending(t *testing.T) {
	db := newDryRunDB(t)

	stmt := buildSQL(db, OrderBy{Field: "id", Desc: true})

	assert.Contains(t, stmt.SQL.String(), "id DESC")
}

func TestRecentMessagesQueryShape(t *testing.T) {
	db := newDryRunDB(t)

	stmt := buildSQL(db,
		ByConversationID{ConversationID: 9},
		OrderBy{Field: "id", Desc: true},
		Limit{Count: 3},
	)

	sql := stmt.SQL.String()
	assert.Contains(t, sql, "conversation_id")
	assert.Contains(t, sql, "id DESC")
	assert.Contains(t, sql, "LIMIT")
	assert.Contains(t, stmt.Vars, int64(9))
	assert.Contains(t, stmt.Vars, 3)
}
