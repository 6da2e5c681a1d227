package querykit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bare() *Formatter {
	return NewFormatter(WithIdentifierQuote(""))
}

func TestConditions_Render(t *testing.T) {
	tests := []struct {
		name  string
		build func(q *Conditions)
		want  string
	}{
		{
			name:  "empty",
			build: func(q *Conditions) {},
			want:  "",
		},
		{
			name:  "single comparison",
			build: func(q *Conditions) { q.Eq("a", 1) },
			want:  "a = '1'",
		},
		{
			name:  "implicit and",
			build: func(q *Conditions) { q.Eq("a", 1).Eq("b", 2).Compare("c", ">", 3) },
			want:  "a = '1' AND b = '2' AND c > '3'",
		},
		{
			name:  "explicit or",
			build: func(q *Conditions) { q.Eq("a", 1).Or().Eq("b", 2) },
			want:  "a = '1' OR b = '2'",
		},
		{
			name:  "brackets",
			build: func(q *Conditions) { q.Eq("a", 1).Open().Eq("b", 2).Or().Eq("c", 3).Close() },
			want:  "a = '1' AND ( b = '2' OR c = '3' )",
		},
		{
			name:  "close bracket followed by comparison",
			build: func(q *Conditions) { q.Open().Eq("a", 1).Close().Eq("b", 2) },
			want:  "( a = '1' ) AND b = '2'",
		},
		{
			name:  "close bracket followed by or",
			build: func(q *Conditions) { q.Open().Eq("a", 1).Close().Or().Open().Eq("b", 2).Close() },
			want:  "( a = '1' ) OR ( b = '2' )",
		},
		{
			name:  "adjacent groups",
			build: func(q *Conditions) { q.Open().Eq("a", 1).Close().Open().Eq("b", 2).Close() },
			want:  "( a = '1' ) AND ( b = '2' )",
		},
		{
			name:  "nested brackets",
			build: func(q *Conditions) { q.Open().Open().Eq("a", 1).Close().Close() },
			want:  "( ( a = '1' ) )",
		},
		{
			name:  "or right after open bracket",
			build: func(q *Conditions) { q.Open().Or().Eq("a", 1).Close() },
			want:  "( OR a = '1' )",
		},
		{
			name:  "consecutive or",
			build: func(q *Conditions) { q.Eq("a", 1).Or().Or().Eq("b", 2) },
			want:  "a = '1' OR OR b = '2'",
		},
		{
			name:  "only control tokens",
			build: func(q *Conditions) { q.Open().Close() },
			want:  "( )",
		},
		{
			name:  "unbalanced",
			build: func(q *Conditions) { q.Open().Eq("a", 1) },
			want:  "( a = '1'",
		},
		{
			name:  "trailing or",
			build: func(q *Conditions) { q.Eq("a", 1).Or() },
			want:  "a = '1' OR",
		},
		{
			name:  "null right side",
			build: func(q *Conditions) { q.Compare("deleted_at", "is", nil) },
			want:  "deleted_at IS NULL",
		},
		{
			name:  "raw on both sides",
			build: func(q *Conditions) { q.Compare(Raw("SUM(total)"), ">=", Raw("AVG(total)")) },
			want:  "SUM(total) >= AVG(total)",
		},
		{
			name:  "aliases",
			build: func(q *Conditions) { q.Eq(As("u", "id"), As("o", Col("id_user"))) },
			want:  "u.id = o.id_user",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var q Conditions
			tt.build(&q)
			require.NoError(t, q.Err())
			assert.Equal(t, tt.want, q.Render(bare()))
		})
	}
}

func TestConditions_RenderWithoutTokensJoinsWithAnd(t *testing.T) {
	f := bare()
	var q Conditions
	var parts []string
	for _, col := range []string{"a", "b", "c", "d", "e"} {
		q.Eq(col, col)
		parts = append(parts, col+" = '"+col+"'")
	}
	assert.Equal(t, strings.Join(parts, " AND "), q.Render(f))
}

func TestConditions_QuotedOperands(t *testing.T) {
	var q Conditions
	q.Eq(map[string]any{"orders": "id"}, nil).Eq("email", As("users", Raw("`email`")))

	assert.Equal(t, "`orders`.`id` = NULL AND `email` = `users`.`email`", q.Render(NewFormatter()))
}

func TestConditions_SubSelect(t *testing.T) {
	f := bare()
	sub := New(WithIdentifierQuote("")).Select("id").From("banned")

	var q Conditions
	q.Compare("id", "not in", sub)

	assert.Equal(t, "id NOT IN ("+sub.Render()+")", q.Render(f))
}

func TestConditions_Errors(t *testing.T) {
	t.Run("unsupported operator", func(t *testing.T) {
		var q Conditions
		q.Eq("a", 1).Compare("b", "= 1 OR 1 =", 1).Eq("c", 3)

		require.Error(t, q.Err())
		assert.ErrorIs(t, q.Err(), ErrInvalidArgument)
		assert.Equal(t, 2, q.Len())
		assert.Equal(t, "a = '1' AND c = '3'", q.Render(bare()))
	})

	t.Run("first error wins", func(t *testing.T) {
		var q Conditions
		q.Compare("a", "~~", 1).Eq(map[string]any{"1": "x"}, 2)

		var argErr *ArgumentError
		require.ErrorAs(t, q.Err(), &argErr)
		assert.Equal(t, "~~", argErr.Arg)
	})
}

func TestConditions_EntriesIsCopy(t *testing.T) {
	var q Conditions
	q.Eq("a", 1).Or().Eq("b", 2)

	entries := q.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, Or, entries[1])

	entries[1] = OpenBracket
	assert.Equal(t, "a = '1' OR b = '2'", q.Render(bare()))
}

func TestOn(t *testing.T) {
	f := bare()
	var q Conditions

	cmp, err := newComparison("id_civility", "=", As("c", "id"), true)
	require.NoError(t, err)
	q.push(cmp)

	assert.Equal(t, "id_civility = c.id", q.Render(f))
	assert.Equal(t, joinOn{left: "a", operator: "=", right: "b"}, On("a", "b"))
	assert.Equal(t, joinOn{left: "a", operator: ">", right: "b"}, OnOp("a", ">", "b"))
}

func TestToken_String(t *testing.T) {
	assert.Equal(t, "(", OpenBracket.String())
	assert.Equal(t, ")", CloseBracket.String())
	assert.Equal(t, "OR", Or.String())
	assert.Equal(t, "", Token(0).String())
}
