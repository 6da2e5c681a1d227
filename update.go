package querykit

import "strings"

type setEntry struct {
	column Operand
	value  Operand
}

// UpdateBuilder, UPDATE ifadesi kurar. Sıra: UPDATE, JOIN, SET, WHERE, ORDER BY, LIMIT.
//
// Set yalnızca ekler; aynı kolon iki kez verilirse iki kez yazılır.
type UpdateBuilder struct {
	base[*UpdateBuilder]
	joinClause[*UpdateBuilder]
	whereClause[*UpdateBuilder]
	orderByClause[*UpdateBuilder]
	limitClause[*UpdateBuilder]

	table    Operand
	hasTable bool
	sets     []setEntry
}

func newUpdate(f *Formatter, table any) *UpdateBuilder {
	if f == nil {
		f = NewFormatter()
	}
	b := &UpdateBuilder{}
	b.bind(&core{fmt: f})
	if table != nil {
		b.Table(table)
	}
	return b
}

func (b *UpdateBuilder) bind(c *core) {
	h := hook[*UpdateBuilder]{self: b, c: c}
	b.base.hook = h
	b.joinClause.hook = h
	b.whereClause.hook = h
	b.orderByClause.hook = h
	b.limitClause.hook = h
}

// Table, güncellenecek tabloyu ayarlar ve öncekinin yerini alır. Alt sorgular reddedilir.
func (b *UpdateBuilder) Table(table any) *UpdateBuilder {
	target, err := resolveTarget(table, false)
	if err != nil {
		b.base.c.fail("Table", err)
		return b
	}
	b.table, b.hasTable = target, true
	return b
}

// Set, "column = value" ekler. Sağdaki düz metinler değerdir; kolon için Col, ifade için Raw
// kullanın. *SelectBuilder değeri alt sorgu olarak gömülür.
func (b *UpdateBuilder) Set(column, value any) *UpdateBuilder {
	col, err := resolveOperand(column, true)
	if err != nil {
		b.base.c.fail("Set", err)
		return b
	}
	val, err := resolveOperand(value, false)
	if err != nil {
		b.base.c.fail("Set", err)
		return b
	}
	b.sets = append(b.sets, setEntry{column: col, value: val})
	return b
}

// Clone, ifadenin bağımsız bir kopyasını döndürür.
func (b *UpdateBuilder) Clone() *UpdateBuilder {
	cp := &UpdateBuilder{
		orderByClause: orderByClause[*UpdateBuilder]{orderBy: append([]orderEntry(nil), b.orderBy...)},
		limitClause:   b.limitClause,
		table:         b.table,
		hasTable:      b.hasTable,
		sets:          append([]setEntry(nil), b.sets...),
	}
	cp.joins = b.cloneJoins()
	cp.where = b.where.clone()
	cp.bind(b.base.c.clone())
	return cp
}

func (b *UpdateBuilder) renderUpdate(f *Formatter) string {
	if !b.hasTable {
		return ""
	}
	return "UPDATE " + f.formatTarget(b.table)
}

func (b *UpdateBuilder) renderSet(f *Formatter) string {
	if len(b.sets) == 0 {
		return ""
	}
	parts := make([]string, len(b.sets))
	for i, s := range b.sets {
		parts[i] = f.formatOperand(s.column) + " = " + f.formatOperand(s.value)
	}
	return "SET " + strings.Join(parts, ", ")
}

func (b *UpdateBuilder) render(f *Formatter) string {
	return joinFragments(
		b.renderUpdate(f),
		b.renderJoin(f),
		b.renderSet(f),
		b.renderWhere(f),
		b.renderOrderBy(f),
		b.renderLimit(),
	)
}

// Render, SQL metnini döndürür. Hiçbir zaman başarısız olmaz; mutasyon hataları Err ve ToSQL
// ile bildirilir.
func (b *UpdateBuilder) Render() string {
	return b.render(b.base.c.fmt)
}

func (b *UpdateBuilder) String() string {
	return b.Render()
}

// ToSQL, SQL metnini ya da ilk mutasyon hatasını döndürür.
func (b *UpdateBuilder) ToSQL() (string, error) {
	if err := b.Err(); err != nil {
		return "", err
	}
	return b.Render(), nil
}
