package sqlconn

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type timestamps struct {
	CreatedAt string `db:"created_at"`
	UpdatedAt string `db:"updated_at"`
}

type article struct {
	Key    string `db:"key,pk"`
	Title  string
	Body   string `db:"-"`
	hidden string
	timestamps
}

func TestScannerColumns(t *testing.T) {
	s := NewScanner()

	cols, err := s.Columns(&article{})
	require.NoError(t, err)
	assert.Equal(t, []string{"key", "title", "created_at", "updated_at"}, cols)

	cols, err = s.Columns(&[]*article{})
	require.NoError(t, err)
	assert.Len(t, cols, 4)

	_, err = s.Columns(42)
	assert.ErrorIs(t, err, ErrNotAStruct)
	_, err = s.Columns(nil)
	assert.ErrorIs(t, err, ErrNotAStruct)
}

func TestScannerPrimaryKey(t *testing.T) {
	s := NewScanner()

	assert.Equal(t, "key", s.PrimaryKey(article{}))
	assert.Equal(t, "id", s.PrimaryKey(&user{}))
	assert.Equal(t, "id", s.PrimaryKey(struct{ ID int }{}))
	assert.Empty(t, s.PrimaryKey(timestamps{}))
	assert.Empty(t, s.PrimaryKey("nope"))
}

func TestScanner_DestinationErrors(t *testing.T) {
	conn, mock := newMockConn(t, "sqlite")
	stmt := conn.Builder().Select().From("accounts")

	tests := []struct {
		name string
		dest any
		want error
	}{
		{"not a pointer", []account{}, ErrNotAPointer},
		{"not a slice", &account{}, ErrNotASlice},
		{"not structs", &[]int{}, ErrNotAStruct},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock.ExpectQuery(`SELECT * FROM "accounts"`).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
			err := conn.All(t.Context(), stmt, tt.dest)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScanner_ColumnIgnoresExtraColumns(t *testing.T) {
	conn, mock := newMockConn(t, "sqlite")

	mock.ExpectQuery(`SELECT "email", "id" FROM "accounts"`).
		WillReturnRows(sqlmock.NewRows([]string{"email", "id"}).AddRow("a@x.tld", 1).AddRow("b@x.tld", 2))

	var emails []string
	require.NoError(t, conn.Column(t.Context(), conn.Builder().Select("email", "id").From("accounts"), &emails))
	assert.Equal(t, []string{"a@x.tld", "b@x.tld"}, emails)
}
