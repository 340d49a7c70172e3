package migrations

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPgx5URL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "postgres://u:p@h:5432/db?sslmode=disable", want: "pgx5://u:p@h:5432/db?sslmode=disable"},
		{in: "postgresql://u:p@h/db", want: "pgx5://u:p@h/db"},
		{in: "pgx5://u:p@h/db", want: "pgx5://u:p@h/db"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, pgx5URL(tt.in))
	}
}

func TestEmbeddedFiles(t *testing.T) {
	entries, err := files.ReadDir("sql")
	assert.NoError(t, err)
	assert.Len(t, entries, 4)
}
