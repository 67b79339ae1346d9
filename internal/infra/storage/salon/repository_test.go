package salon

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, "glam", escapeLike("glam"))
	assert.Equal(t, `100\%`, escapeLike("100%"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, `c:\\x`, escapeLike(`c:\x`))
}

func TestRepository_LockByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	lockSQL := regexp.QuoteMeta("SELECT id FROM salons WHERE id = $1 FOR UPDATE")
	repo := NewRepository(db)

	mock.ExpectQuery(lockSQL).WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
	require.NoError(t, repo.LockByID(context.Background(), 1))

	mock.ExpectQuery(lockSQL).WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	assert.ErrorIs(t, repo.LockByID(context.Background(), 2), ErrSalonNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}
