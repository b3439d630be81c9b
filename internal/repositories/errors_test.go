package repositories

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestClassifyErrorMapsDriverCodes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"no rows", sql.ErrNoRows, ErrNotFound},
		{"unique violation", &pq.Error{Code: "23505"}, ErrDuplicateKey},
		{"foreign key violation", &pq.Error{Code: "23503"}, ErrForeignKeyViolation},
		{"query canceled", &pq.Error{Code: "57014"}, ErrTimeout},
		// A non-uuid path segment reaches the driver as a cast failure and
		// must surface as not-found, not as a server error.
		{"invalid uuid text", &pq.Error{Code: "22P02"}, ErrNotFound},
		{"anything else", errors.New("connection reset"), ErrDatabaseError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyError(tt.err, "op")
			assert.ErrorIs(t, got, tt.want)
		})
	}
}

func TestClassifyErrorNilPassesThrough(t *testing.T) {
	assert.NoError(t, classifyError(nil, "op"))
}
