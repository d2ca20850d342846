package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Builds the statement against the postgres dialect without a live
// connection, so the generated SQL can be inspected.
func newDryRunPostgres(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=clinic dbname=clinic",
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)

	return gdb
}

// Postgres rejects FOR UPDATE on aggregates, so the advisory conflict
// count must stay a plain read. The partial unique index, not this
// query, is what serializes racing bookings.
func TestCountConflictsEmitsPlainAggregateOnPostgres(t *testing.T) {
	gdb := newDryRunPostgres(t)

	var captured string
	require.NoError(t, gdb.Callback().Query().After("gorm:query").
		Register("capture_conflict_sql", func(tx *gorm.DB) {
			captured = tx.Statement.SQL.String()
		}))

	repo := NewAppointmentGormRepository(gdb)
	_, err := repo.CountConflicts(
		context.Background(),
		5,
		time.Date(2025, 11, 10, 14, 0, 0, 0, time.UTC),
		nil,
	)
	require.NoError(t, err)

	assert.Contains(t, captured, "count(")
	assert.NotContains(t, captured, "FOR UPDATE")
}

func TestLockForUpdateIsDialectConditional(t *testing.T) {
	gdb := newDryRunPostgres(t)

	sql := gdb.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return lockForUpdate(tx).Table("invoice_sequences").Take(&struct{ ID uint }{})
	})
	assert.Contains(t, sql, "FOR UPDATE")
}
