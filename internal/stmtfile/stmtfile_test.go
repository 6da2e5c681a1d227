package stmtfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biyonik/go-querykit"
)

func bare() *querykit.Builder {
	return querykit.New(querykit.WithIdentifierQuote(""))
}

func build(t *testing.T, src string) string {
	t.Helper()
	docs, err := Parse([]byte(src))
	require.NoError(t, err)
	require.Len(t, docs, 1)

	stmt, err := docs[0].Build(bare())
	require.NoError(t, err)
	return stmt.Render()
}

func TestParse_MultipleDocuments(t *testing.T) {
	src := `
kind: select
table: users
---

---
kind: delete
table: sessions
---
{"kind": "update", "table": "users", "set": [{"column": "active", "value": false}]}
`
	docs, err := Parse([]byte(src))
	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, KindSelect, docs[0].Kind)
	assert.Equal(t, KindDelete, docs[1].Kind)
	assert.Equal(t, KindUpdate, docs[2].Kind)
}

func TestParse_Errors(t *testing.T) {
	t.Run("unknown field", func(t *testing.T) {
		_, err := Parse([]byte("kind: select\ntabel: users\n"))
		var pe *ParseError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, 0, pe.Index)
	})

	t.Run("index of the failing document", func(t *testing.T) {
		_, err := Parse([]byte("table: a\n---\ntable: [b\n"))
		var pe *ParseError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, 1, pe.Index)
	})
}

func TestBuild_Select(t *testing.T) {
	got := build(t, `
table: users
columns: [id, firstname, lastname]
where:
  - {column: email, op: LIKE, value: "%@domain.tld"}
  - {column: disabled, op: "!=", value: true}
orderBy: [lastname, firstname]
limit: 10
`)
	assert.Equal(t, "SELECT id, firstname, lastname FROM users WHERE email LIKE '%@domain.tld' AND disabled != 1 ORDER BY lastname, firstname LIMIT 10", got)
}

func TestBuild_SelectJoinsAndGroups(t *testing.T) {
	got := build(t, `
kind: select
distinct: true
table: users
columns:
  - {table: users, name: id}
  - {raw: "SUM(o.total)", as: spent}
joins:
  - kind: left
    table: orders
    alias: o
    on:
      - {column: {table: users, name: id}, ref: {table: o, name: id_user}}
      - {column: {table: o, name: state}, value: paid}
where:
  - {column: active, value: 1}
  - group:
      - {column: role, value: admin}
      - {column: role, value: owner, or: true}
groupBy: [{table: users, name: id}]
having:
  - {column: {raw: "SUM(o.total)"}, op: ">=", value: 5000}
orderBy:
  - {column: spent, direction: desc}
limit: 20
offset: 40
`)
	want := "SELECT DISTINCT users.id, SUM(o.total) spent FROM users " +
		"LEFT JOIN orders o ON users.id = o.id_user AND o.state = 'paid' " +
		"WHERE active = '1' AND ( role = 'admin' OR role = 'owner' ) " +
		"GROUP BY users.id HAVING SUM(o.total) >= '5000' ORDER BY spent DESC LIMIT 40, 20"
	assert.Equal(t, want, got)
}

func TestBuild_SubSelect(t *testing.T) {
	got := build(t, `
table: users
columns: [email]
where:
  - column: id
    op: NOT IN
    select:
      table: bans
      columns: [user_id]
`)
	assert.Equal(t, "SELECT email FROM users WHERE id NOT IN (SELECT user_id FROM bans)", got)
}

func TestBuild_Update(t *testing.T) {
	got := build(t, `
kind: update
table: users
alias: u
set:
  - {column: {table: u, name: visits}, raw: "u.visits + 1"}
  - {column: nickname, value: null}
  - {column: manager_id, ref: {name: owner_id}}
where:
  - {column: {table: u, name: id}, raw: ":id"}
parameters:
  ":id": 7
`)
	assert.Equal(t, "UPDATE users u SET u.visits = u.visits + 1, nickname = NULL, manager_id = owner_id WHERE u.id = :id", got)
}

func TestBuild_UpdateKeepsParameters(t *testing.T) {
	docs, err := Parse([]byte(`{"kind": "delete", "table": "users", "where": [{"column": "id", "raw": ":id"}], "parameters": {":id": 3}}`))
	require.NoError(t, err)

	stmt, err := docs[0].Build(bare())
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM users WHERE id = :id", stmt.Render())
	assert.Equal(t, map[string]any{":id": float64(3)}, stmt.Parameters())
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unknown kind", "kind: insert\ntable: users\n"},
		{"bad operator", "table: users\nwhere:\n  - {column: id, op: '===', value: 1}\n"},
		{"bad group operator", "table: users\nwhere:\n  - group:\n      - {column: id, op: 'NOPE', value: 1}\n"},
		{"bad join kind", "table: users\njoins:\n  - {kind: sideways, table: orders}\n"},
		{"bad join condition", "table: users\njoins:\n  - {table: orders, on: [{column: a, op: '~~', ref: {name: b}}]}\n"},
		{"numeric parameter key", "table: users\nparameters:\n  \"0\": 1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docs, err := Parse([]byte(tt.src))
			require.NoError(t, err)
			_, err = docs[0].Build(bare())
			assert.Error(t, err)
		})
	}
}

func TestBuild_UnknownKind(t *testing.T) {
	doc := Document{Kind: "merge", Table: "users"}
	_, err := doc.Build(bare())
	assert.ErrorIs(t, err, ErrUnknownKind)
}
