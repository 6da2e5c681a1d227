package querykit

import (
	"strings"
)

type selectColumn struct {
	field Operand
	as    string
}

// SelectBuilder, SELECT ifadesi kurar. Sıra: SELECT, FROM, JOIN, WHERE, GROUP BY, HAVING,
// ORDER BY, LIMIT; boş clause'lar yazılmaz.
//
// SelectBuilder aynı zamanda bir Value'dur: From'a, JOIN'e, karşılaştırmaya ya da Set'e
// verildiğinde parantezli alt sorgu olarak gömülür. Eklenirken kopyalanır; orijinal üzerindeki
// sonraki değişiklikler dış ifadeye yansımaz.
//
// SelectBuilder örnekleri concurrent-safe değildir; paralel kullanım için Clone() kullanın.
type SelectBuilder struct {
	base[*SelectBuilder]
	fromClause[*SelectBuilder]
	joinClause[*SelectBuilder]
	whereClause[*SelectBuilder]
	groupByClause[*SelectBuilder]
	havingClause[*SelectBuilder]
	orderByClause[*SelectBuilder]
	limitClause[*SelectBuilder]

	columns  []selectColumn
	distinct bool
}

func (*SelectBuilder) isValue() {}

func newSelect(f *Formatter) *SelectBuilder {
	if f == nil {
		f = NewFormatter()
	}
	b := &SelectBuilder{}
	b.bind(&core{fmt: f})
	return b
}

func (b *SelectBuilder) bind(c *core) {
	h := hook[*SelectBuilder]{self: b, c: c}
	b.base.hook = h
	b.fromClause.hook = h
	b.joinClause.hook = h
	b.whereClause.hook = h
	b.groupByClause.hook = h
	b.havingClause.hook = h
	b.orderByClause.hook = h
	b.limitClause.hook = h
}

// Select, seçilecek kolonları ekler. Düz metinler kolon adıdır; tek girdili map ya da As kolonu
// tablo aliasıyla niteler; Raw ve *SelectBuilder olduğu gibi yazılır. Kolon yoksa * seçilir.
func (b *SelectBuilder) Select(columns ...any) *SelectBuilder {
	ops, err := resolveList(columns)
	if err != nil {
		b.base.c.fail("Select", err)
		return b
	}
	for _, o := range ops {
		b.columns = append(b.columns, selectColumn{field: o})
	}
	return b
}

// ColumnAs, field'ı alias çıktı adıyla seçim listesine ekler.
func (b *SelectBuilder) ColumnAs(field any, alias string) *SelectBuilder {
	o, err := resolveOperand(field, true)
	if err == nil {
		err = validateAlias(alias)
	}
	if err != nil {
		b.base.c.fail("ColumnAs", err)
		return b
	}
	b.columns = append(b.columns, selectColumn{field: o, as: alias})
	return b
}

// Distinct, sorguyu DISTINCT olarak işaretler.
func (b *SelectBuilder) Distinct() *SelectBuilder {
	b.distinct = true
	return b
}

// Clone, ifadenin bağımsız bir kopyasını döndürür. Gömülü alt sorgular değişmez kabul edilir
// ve paylaşılır.
func (b *SelectBuilder) Clone() *SelectBuilder {
	cp := &SelectBuilder{
		fromClause:    b.fromClause,
		groupByClause: groupByClause[*SelectBuilder]{groupBy: append([]Operand(nil), b.groupBy...)},
		orderByClause: orderByClause[*SelectBuilder]{orderBy: append([]orderEntry(nil), b.orderBy...)},
		limitClause:   b.limitClause,
		columns:       append([]selectColumn(nil), b.columns...),
		distinct:      b.distinct,
	}
	cp.joins = b.cloneJoins()
	cp.where = b.where.clone()
	cp.having = b.having.clone()
	cp.bind(b.base.c.clone())
	return cp
}

func (b *SelectBuilder) renderSelect(f *Formatter) string {
	keyword := "SELECT "
	if b.distinct {
		keyword = "SELECT DISTINCT "
	}
	if len(b.columns) == 0 {
		return keyword + Wildcard
	}
	parts := make([]string, len(b.columns))
	for i, col := range b.columns {
		parts[i] = f.formatOperand(col.field)
		if col.as != "" {
			parts[i] += " " + f.QuoteIdentifier(col.as)
		}
	}
	return keyword + strings.Join(parts, ", ")
}

func (b *SelectBuilder) render(f *Formatter) string {
	return joinFragments(
		b.renderSelect(f),
		b.renderFrom(f),
		b.renderJoin(f),
		b.renderWhere(f),
		b.renderGroupBy(f),
		b.renderHaving(f),
		b.renderOrderBy(f),
		b.renderLimit(),
	)
}

// Render, SQL metnini döndürür. Hiçbir zaman başarısız olmaz; mutasyon hataları Err ve ToSQL
// ile bildirilir.
func (b *SelectBuilder) Render() string {
	return b.render(b.base.c.fmt)
}

func (b *SelectBuilder) String() string {
	return b.Render()
}

// ToSQL, SQL metnini ya da ilk mutasyon hatasını döndürür.
func (b *SelectBuilder) ToSQL() (string, error) {
	if err := b.Err(); err != nil {
		return "", err
	}
	return b.Render(), nil
}
