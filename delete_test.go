package querykit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDelete_Simple(t *testing.T) {
	b := Delete().From("users")
	assert.Equal(t, "DELETE FROM `users`", b.Render())

	b.WhereLike("email", "%@domain.tld").
		WhereNot("disabled", true).
		WhereGt("date_last_connexion", Raw("DATE_SUB(NOW(), INTERVAL 3 DAYS)"))
	want := "DELETE FROM `users` " +
		"WHERE `email` LIKE '%@domain.tld' AND `disabled` != 1 AND `date_last_connexion` > DATE_SUB(NOW(), INTERVAL 3 DAYS)"
	assert.Equal(t, want, b.Render())

	b.OrderBy("lastname").OrderBy("firstname").Limit(10)
	assert.Equal(t, want+" ORDER BY `lastname`, `firstname` LIMIT 10", b.Render())
}

func TestDelete_Intermediary(t *testing.T) {
	b := Delete().
		From("users").
		InnerJoin(map[string]any{"c": "civilitytitles"}, On("id_civility", map[string]any{"c": "id"})).
		LeftJoin("orders", On(As("users", "id"), As("orders", "id_user"))).
		WhereNot(As("orders", "id"), nil).
		OrderBy(Raw("MAX(`total_tax_inclusive`)"))

	want := "DELETE FROM `users` " +
		"INNER JOIN `civilitytitles` `c` ON `id_civility` = `c`.`id` LEFT JOIN `orders` ON `users`.`id` = `orders`.`id_user` " +
		"WHERE `orders`.`id` != NULL ORDER BY MAX(`total_tax_inclusive`)"

	require.NoError(t, b.Err())
	assert.Equal(t, want, b.Render())
}

func TestDelete_Clauses(t *testing.T) {
	qb := New(WithIdentifierQuote(""))

	tests := []struct {
		name  string
		build func() *DeleteBuilder
		want  string
	}{
		{"bare keyword", func() *DeleteBuilder { return qb.Delete() }, "DELETE"},
		{
			"group by",
			func() *DeleteBuilder { return qb.Delete().From("logs").GroupBy("level").LimitOffset(0, 100) },
			"DELETE FROM logs GROUP BY level LIMIT 0, 100",
		},
		{
			"where group",
			func() *DeleteBuilder {
				return qb.Delete().From("sessions").WhereGroup(func(q *Conditions) {
					q.Compare("expires_at", "<", Raw("NOW()")).Or().Compare("revoked", "=", true)
				})
			},
			"DELETE FROM sessions WHERE ( expires_at < NOW() OR revoked = 1 )",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := tt.build()
			require.NoError(t, b.Err())
			assert.Equal(t, tt.want, b.Render())
		})
	}
}

func TestDelete_CloneAndParameters(t *testing.T) {
	qb := New(WithIdentifierQuote(""))

	b := qb.Delete().From("users").Where("id", Raw(":id")).SetParameters(map[string]any{":id": 7})
	cp := b.Clone().WhereNotNull("deleted_at")

	assert.Equal(t, "DELETE FROM users WHERE id = :id", b.Render())
	assert.Equal(t, "DELETE FROM users WHERE id = :id AND deleted_at IS NOT NULL", cp.Render())
	assert.Equal(t, map[string]any{":id": 7}, cp.Parameters())

	sql, err := cp.ToSQL()
	require.NoError(t, err)
	assert.Equal(t, cp.String(), sql)
}
