// Package stmtfile reads statement documents (YAML or JSON) and turns them into querykit
// statements. A file may hold several documents separated by "---" lines:
//
//	kind: select
//	table: users
//	columns: [id, firstname, lastname]
//	where:
//	  - {column: email, op: LIKE, value: "%@domain.tld"}
//	  - {column: disabled, op: "!=", value: true}
//	orderBy: [lastname, firstname]
//	limit: 10
//	---
//	kind: update
//	table: users
//	set:
//	  - {column: disabled, value: true}
//	where:
//	  - {column: id, value: 7}
package stmtfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"sigs.k8s.io/yaml"

	"github.com/biyonik/go-querykit"
)

// Statement kinds.
const (
	KindSelect = "select"
	KindUpdate = "update"
	KindDelete = "delete"
)

// ErrUnknownKind is returned by Build for a kind other than select, update or delete.
var ErrUnknownKind = errors.New("stmtfile: unknown statement kind")

// ParseError reports the document a decoding error came from.
type ParseError struct {
	Index int // 0 tabanlı belge sırası
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("stmtfile: document %d: %v", e.Index, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Document describes one statement.
type Document struct {
	Kind       string         `json:"kind,omitempty"`
	Table      string         `json:"table,omitempty"`
	Alias      string         `json:"alias,omitempty"`
	Distinct   bool           `json:"distinct,omitempty"`
	Columns    []Column       `json:"columns,omitempty"`
	Joins      []Join         `json:"joins,omitempty"`
	Set        []Assignment   `json:"set,omitempty"`
	Where      []Condition    `json:"where,omitempty"`
	GroupBy    []Column       `json:"groupBy,omitempty"`
	Having     []Condition    `json:"having,omitempty"`
	OrderBy    []Order        `json:"orderBy,omitempty"`
	Limit      *int           `json:"limit,omitempty"`
	Offset     *int           `json:"offset,omitempty"`
	Parameters map[string]any `json:"parameters,omitempty"`
}

// Column is a column reference. In a document it is either a plain name or an object.
type Column struct {
	Name  string `json:"name,omitempty"`
	Raw   string `json:"raw,omitempty"`   // verbatim SQL instead of a name
	Table string `json:"table,omitempty"` // qualifier
	As    string `json:"as,omitempty"`    // output alias, select list only
}

// UnmarshalJSON accepts "name" as well as the object form.
func (c *Column) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*c = Column{Name: name}
		return nil
	}
	type plain Column
	return json.Unmarshal(data, (*plain)(c))
}

func (c Column) operand() any {
	var v any = c.Name
	if c.Raw != "" {
		v = querykit.Raw(c.Raw)
	}
	if c.Table != "" {
		return querykit.As(c.Table, v)
	}
	return v
}

// Condition is one entry of a WHERE, HAVING or ON list. Entries are joined with AND unless Or
// is set. A non-empty Group is bracketed.
type Condition struct {
	Column Column      `json:"column"`
	Op     string      `json:"op,omitempty"`
	Value  any         `json:"value,omitempty"`
	Ref    *Column     `json:"ref,omitempty"`    // right side is a column
	Raw    string      `json:"raw,omitempty"`    // right side is verbatim SQL
	Select *Document   `json:"select,omitempty"` // right side is a sub-select
	Or     bool        `json:"or,omitempty"`
	Group  []Condition `json:"group,omitempty"`
}

// Join is a JOIN clause.
type Join struct {
	Kind  string      `json:"kind,omitempty"` // varsayılan INNER
	Table string      `json:"table"`
	Alias string      `json:"alias,omitempty"`
	On    []Condition `json:"on,omitempty"`
}

// Assignment is one "column = value" pair of an UPDATE.
type Assignment struct {
	Column Column  `json:"column"`
	Value  any     `json:"value,omitempty"`
	Ref    *Column `json:"ref,omitempty"`
	Raw    string  `json:"raw,omitempty"`
}

// Order is an ORDER BY entry, either a plain column name or {column, direction}.
type Order struct {
	Column    Column `json:"column"`
	Direction string `json:"direction,omitempty"`
}

// UnmarshalJSON accepts "name" as well as the object form.
func (o *Order) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*o = Order{Column: Column{Name: name}}
		return nil
	}
	type plain Order
	return json.Unmarshal(data, (*plain)(o))
}

var separator = regexp.MustCompile(`(?m)^---[ \t]*\r?$`)

// Parse decodes every document in data. Blank documents are skipped; unknown fields are
// rejected.
func Parse(data []byte) ([]Document, error) {
	var docs []Document
	for i, chunk := range separator.Split(string(data), -1) {
		if strings.TrimSpace(chunk) == "" {
			continue
		}
		var doc Document
		if err := yaml.UnmarshalStrict([]byte(chunk), &doc); err != nil {
			return nil, &ParseError{Index: i, Err: err}
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
