package dbmetrics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOperation(t *testing.T) {
	assert.Equal(t, "select", operation("SELECT id FROM bookings WHERE id = $1"))
	assert.Equal(t, "insert", operation("\n  INSERT INTO bookings (salon_id) VALUES ($1)"))
	assert.Equal(t, "update", operation("update salons set rating = $1"))
}

func TestGetExecutor_PrefersTransaction(t *testing.T) {
	db := &DB{}
	tx := &SqlTxWrapper{}

	assert.Same(t, db, GetExecutor(context.Background(), db))
	assert.False(t, IsInTransaction(context.Background()))

	ctx := WithTx(context.Background(), tx)
	assert.Same(t, tx, GetExecutor(ctx, db))
	assert.True(t, IsInTransaction(ctx))
}
