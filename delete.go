package querykit

// DeleteBuilder, DELETE ifadesi kurar. Sıra: DELETE, FROM, JOIN, WHERE, GROUP BY, ORDER BY, LIMIT.
type DeleteBuilder struct {
	base[*DeleteBuilder]
	fromClause[*DeleteBuilder]
	joinClause[*DeleteBuilder]
	whereClause[*DeleteBuilder]
	groupByClause[*DeleteBuilder]
	orderByClause[*DeleteBuilder]
	limitClause[*DeleteBuilder]
}

func newDelete(f *Formatter) *DeleteBuilder {
	if f == nil {
		f = NewFormatter()
	}
	b := &DeleteBuilder{}
	b.bind(&core{fmt: f})
	return b
}

func (b *DeleteBuilder) bind(c *core) {
	h := hook[*DeleteBuilder]{self: b, c: c}
	b.base.hook = h
	b.fromClause.hook = h
	b.joinClause.hook = h
	b.whereClause.hook = h
	b.groupByClause.hook = h
	b.orderByClause.hook = h
	b.limitClause.hook = h
}

// Clone, ifadenin bağımsız bir kopyasını döndürür.
func (b *DeleteBuilder) Clone() *DeleteBuilder {
	cp := &DeleteBuilder{
		fromClause:    b.fromClause,
		groupByClause: groupByClause[*DeleteBuilder]{groupBy: append([]Operand(nil), b.groupBy...)},
		orderByClause: orderByClause[*DeleteBuilder]{orderBy: append([]orderEntry(nil), b.orderBy...)},
		limitClause:   b.limitClause,
	}
	cp.joins = b.cloneJoins()
	cp.where = b.where.clone()
	cp.bind(b.base.c.clone())
	return cp
}

func (b *DeleteBuilder) render(f *Formatter) string {
	return joinFragments(
		"DELETE",
		b.renderFrom(f),
		b.renderJoin(f),
		b.renderWhere(f),
		b.renderGroupBy(f),
		b.renderOrderBy(f),
		b.renderLimit(),
	)
}

// Render, SQL metnini döndürür. Hiçbir zaman başarısız olmaz; mutasyon hataları Err ve ToSQL
// ile bildirilir.
func (b *DeleteBuilder) Render() string {
	return b.render(b.base.c.fmt)
}

func (b *DeleteBuilder) String() string {
	return b.Render()
}

// ToSQL, SQL metnini ya da ilk mutasyon hatasını döndürür.
func (b *DeleteBuilder) ToSQL() (string, error) {
	if err := b.Err(); err != nil {
		return "", err
	}
	return b.Render(), nil
}
