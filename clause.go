package querykit

import (
	"maps"
	"strconv"
	"strings"

	"github.com/biyonik/go-querykit/internal/validation"
)

// core, bir ifadenin tüm özelliklerinin paylaştığı durumdur: formatter, birikmiş hata ve
// parametre torbası.
type core struct {
	fmt    *Formatter
	err    error
	params map[string]any
}

// fail, ilk mutasyon hatasını kaydeder; sonrakiler yok sayılır.
func (c *core) fail(op string, err error) {
	if err != nil && c.err == nil {
		c.err = withOp(op, err)
	}
}

func (c *core) clone() *core {
	return &core{fmt: c.fmt, err: c.err, params: maps.Clone(c.params)}
}

// hook bağlar: her özellik, zincirleme için sahibini (self) ve paylaşılan core'u tutar.
type hook[B any] struct {
	self B
	c    *core
}

// base, tüm ifadelerin paylaştığı mutatörleri tutar.
type base[B any] struct {
	hook[B]
}

// When, koşul doğruysa fn'i ifadeye uygular.
func (b *base[B]) When(condition bool, fn func(B)) B {
	if condition && fn != nil {
		fn(b.self)
	}
	return b.self
}

// SetParameters, parametreleri torbaya ekler. Var olan anahtarlar değerini korur.
// Sayısal ya da boş bir anahtar tüm çağrıyı reddeder.
func (b *base[B]) SetParameters(params map[string]any) B {
	for key := range params {
		if err := validation.ValidateParameterKey(key); err != nil {
			b.c.fail("SetParameters", &ArgumentError{Arg: key, Reason: "parameter keys must be nominative", Err: err})
			return b.self
		}
	}
	if b.c.params == nil && len(params) > 0 {
		b.c.params = make(map[string]any, len(params))
	}
	for key, value := range params {
		if _, ok := b.c.params[key]; !ok {
			b.c.params[key] = value
		}
	}
	return b.self
}

// Parameters, parametre torbasının bir kopyasını döndürür.
func (b *base[B]) Parameters() map[string]any {
	if b.c.params == nil {
		return map[string]any{}
	}
	return maps.Clone(b.c.params)
}

// Err, bir mutatörün bildirdiği ilk hatayı döndürür; hata yoksa nil.
func (b *base[B]) Err() error {
	return b.c.err
}

// Formatter, ifadenin render için kullandığı formatter'ı döndürür.
func (b *base[B]) Formatter() *Formatter {
	return b.c.fmt
}

// fromClause, FROM hedefini tutar.
type fromClause[B any] struct {
	hook[B]
	from    Operand
	hasFrom bool
}

// From, FROM hedefini ayarlar ve öncekinin yerini alır. Türetilmiş tablo (alt sorgu) bir
// alias ile verilmelidir: From(As("t", sub)).
func (b *fromClause[B]) From(table any) B {
	target, err := resolveTarget(table, true)
	if err != nil {
		b.c.fail("From", err)
		return b.self
	}
	b.from, b.hasFrom = target, true
	return b.self
}

func (b *fromClause[B]) renderFrom(f *Formatter) string {
	if !b.hasFrom {
		return ""
	}
	return "FROM " + f.formatTarget(b.from)
}

// resolveTarget, bir tablo referansını çözer. derived açıkken alt sorgular alias ister,
// kapalıyken reddedilir.
func resolveTarget(table any, derived bool) (Operand, error) {
	target, err := resolveOperand(table, true)
	if err != nil {
		return Operand{}, err
	}
	if target.isSubSelect() {
		if !derived {
			return Operand{}, invalidArgument("", "", "a sub-select cannot be used here")
		}
		if target.Alias == "" {
			return Operand{}, invalidArgument("", "", "derived table requires an alias")
		}
	}
	return target, nil
}

// JoinKind, JOIN türünü belirtir.
type JoinKind string

const (
	JoinInner   JoinKind = "INNER"
	JoinLeft    JoinKind = "LEFT"
	JoinRight   JoinKind = "RIGHT"
	JoinFull    JoinKind = "FULL"
	JoinCross   JoinKind = "CROSS"
	JoinNatural JoinKind = "NATURAL"
)

// Valid, k'nin desteklenen türlerden biri olup olmadığını bildirir.
func (k JoinKind) Valid() bool {
	switch k {
	case JoinInner, JoinLeft, JoinRight, JoinFull, JoinCross, JoinNatural:
		return true
	}
	return false
}

type joinEntry struct {
	kind   JoinKind
	target Operand
	on     Conditions
}

// joinClause, JOIN listesini ekleme sırasıyla tutar.
type joinClause[B any] struct {
	hook[B]
	joins []joinEntry
}

// Join, verilen türde bir JOIN ekler. conditions, On, OnOp, OpenBracket, CloseBracket ve Or ile
// kurulan ON girdileridir; hiç yoksa ON kısmı yazılmaz.
//
//	Join(JoinInner, As("c", "civilitytitles"), On("id_civility", As("c", "id")))
func (b *joinClause[B]) Join(kind JoinKind, table any, conditions ...Condition) B {
	if !kind.Valid() {
		b.c.fail("Join", invalidArgument("", string(kind), "unknown join kind"))
		return b.self
	}
	target, err := resolveTarget(table, true)
	if err != nil {
		b.c.fail("Join", err)
		return b.self
	}

	entry := joinEntry{kind: kind, target: target}
	for _, cond := range conditions {
		switch x := cond.(type) {
		case Token:
			entry.on.push(x)
		case Comparison:
			entry.on.push(x)
		case joinOn:
			cmp, err := newComparison(x.left, x.operator, x.right, true)
			if err != nil {
				b.c.fail("Join", err)
				return b.self
			}
			entry.on.push(cmp)
		default:
			b.c.fail("Join", invalidArgument("", "", "malformed join condition"))
			return b.self
		}
	}

	b.joins = append(b.joins, entry)
	return b.self
}

// InnerJoin, INNER JOIN ekler.
func (b *joinClause[B]) InnerJoin(table any, conditions ...Condition) B {
	return b.Join(JoinInner, table, conditions...)
}

// LeftJoin, LEFT JOIN ekler.
func (b *joinClause[B]) LeftJoin(table any, conditions ...Condition) B {
	return b.Join(JoinLeft, table, conditions...)
}

// RightJoin, RIGHT JOIN ekler.
func (b *joinClause[B]) RightJoin(table any, conditions ...Condition) B {
	return b.Join(JoinRight, table, conditions...)
}

// FullJoin, FULL JOIN ekler.
func (b *joinClause[B]) FullJoin(table any, conditions ...Condition) B {
	return b.Join(JoinFull, table, conditions...)
}

// CrossJoin, genellikle koşulsuz bir CROSS JOIN ekler.
func (b *joinClause[B]) CrossJoin(table any, conditions ...Condition) B {
	return b.Join(JoinCross, table, conditions...)
}

// NaturalJoin, genellikle koşulsuz bir NATURAL JOIN ekler.
func (b *joinClause[B]) NaturalJoin(table any, conditions ...Condition) B {
	return b.Join(JoinNatural, table, conditions...)
}

func (b *joinClause[B]) renderJoin(f *Formatter) string {
	parts := make([]string, 0, len(b.joins))
	for i := range b.joins {
		j := &b.joins[i]
		s := string(j.kind) + " JOIN " + f.formatTarget(j.target)
		if j.on.Len() > 0 {
			s += " ON " + j.on.Render(f)
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, " ")
}

func (b *joinClause[B]) cloneJoins() []joinEntry {
	if b.joins == nil {
		return nil
	}
	out := make([]joinEntry, len(b.joins))
	for i, j := range b.joins {
		out[i] = joinEntry{kind: j.kind, target: j.target, on: j.on.clone()}
	}
	return out
}

// addComparison, karşılaştırmayı q'ya ekler ya da hatayı op adıyla c'ye kaydeder.
func addComparison(c *core, q *Conditions, op string, left any, operator string, right any) {
	if err := q.compare(left, operator, right); err != nil {
		c.fail(op, err)
	}
}

// addOr, "OR left = right" ekler. Boş kuyrukta ve açılan parantezin hemen ardından OR
// yazılmaz.
func addOr(c *core, q *Conditions, op string, left, right any) {
	cmp, err := newComparison(left, "=", right, false)
	if err != nil {
		c.fail(op, err)
		return
	}
	if n := len(q.entries); n > 0 && q.entries[n-1] != OpenBracket {
		q.push(Or)
	}
	q.push(cmp)
}

// addGroup, fn ile kurulan girdileri parantez içine alır. Boş grup hiçbir şey eklemez.
func addGroup(c *core, q *Conditions, op string, fn func(*Conditions)) {
	if fn == nil {
		return
	}
	var group Conditions
	fn(&group)
	if err := group.Err(); err != nil {
		c.fail(op, err)
		return
	}
	if group.Len() == 0 {
		return
	}
	q.push(OpenBracket)
	q.push(group.entries...)
	q.push(CloseBracket)
}

func renderKeyword(keyword string, q *Conditions, f *Formatter) string {
	if q.Len() == 0 {
		return ""
	}
	return keyword + " " + q.Render(f)
}

// whereClause, WHERE ifade kuyruğunu tutar. Sol taraf kolon, sağ taraf değer olarak işlenir.
type whereClause[B any] struct {
	hook[B]
	where Conditions
}

// Where, temel bir WHERE koşulu (left = right) ekler.
func (b *whereClause[B]) Where(left, right any) B {
	addComparison(b.c, &b.where, "Where", left, "=", right)
	return b.self
}

// WhereOp, verilen operatörle bir WHERE koşulu ekler.
func (b *whereClause[B]) WhereOp(left any, operator string, right any) B {
	addComparison(b.c, &b.where, "WhereOp", left, operator, right)
	return b.self
}

// WhereNot, WHERE != koşulu ekler.
func (b *whereClause[B]) WhereNot(left, right any) B {
	addComparison(b.c, &b.where, "WhereNot", left, "!=", right)
	return b.self
}

// WhereLike, WHERE LIKE koşulu ekler.
func (b *whereClause[B]) WhereLike(left, right any) B {
	addComparison(b.c, &b.where, "WhereLike", left, "LIKE", right)
	return b.self
}

// WhereNotLike, WHERE NOT LIKE koşulu ekler.
func (b *whereClause[B]) WhereNotLike(left, right any) B {
	addComparison(b.c, &b.where, "WhereNotLike", left, "NOT LIKE", right)
	return b.self
}

// WhereGt, WHERE > koşulu ekler.
func (b *whereClause[B]) WhereGt(left, right any) B {
	addComparison(b.c, &b.where, "WhereGt", left, ">", right)
	return b.self
}

// WhereGte, WHERE >= koşulu ekler.
func (b *whereClause[B]) WhereGte(left, right any) B {
	addComparison(b.c, &b.where, "WhereGte", left, ">=", right)
	return b.self
}

// WhereLt, WHERE < koşulu ekler.
func (b *whereClause[B]) WhereLt(left, right any) B {
	addComparison(b.c, &b.where, "WhereLt", left, "<", right)
	return b.self
}

// WhereLte, WHERE <= koşulu ekler.
func (b *whereClause[B]) WhereLte(left, right any) B {
	addComparison(b.c, &b.where, "WhereLte", left, "<=", right)
	return b.self
}

// WhereNull, WHERE IS NULL koşulu ekler.
func (b *whereClause[B]) WhereNull(left any) B {
	addComparison(b.c, &b.where, "WhereNull", left, "IS", nil)
	return b.self
}

// WhereNotNull, WHERE IS NOT NULL koşulu ekler.
func (b *whereClause[B]) WhereNotNull(left any) B {
	addComparison(b.c, &b.where, "WhereNotNull", left, "IS NOT", nil)
	return b.self
}

// OrWhere, OR WHERE koşulu ekler.
func (b *whereClause[B]) OrWhere(left, right any) B {
	addOr(b.c, &b.where, "OrWhere", left, right)
	return b.self
}

// WhereOpen, WHERE kuyruğuna açılan parantez ekler.
func (b *whereClause[B]) WhereOpen() B {
	b.where.Open()
	return b.self
}

// WhereClose, WHERE kuyruğuna kapanan parantez ekler.
func (b *whereClause[B]) WhereClose() B {
	b.where.Close()
	return b.self
}

// WhereOr, WHERE kuyruğuna açık bir OR ekler.
func (b *whereClause[B]) WhereOr() B {
	b.where.Or()
	return b.self
}

// WhereGroup, fn ile kurulan koşulları parantez içinde ekler.
//
//	WhereGroup(func(q *Conditions) { q.Eq("role", "admin").Or().Eq("role", "owner") })
func (b *whereClause[B]) WhereGroup(fn func(*Conditions)) B {
	addGroup(b.c, &b.where, "WhereGroup", fn)
	return b.self
}

func (b *whereClause[B]) renderWhere(f *Formatter) string {
	return renderKeyword("WHERE", &b.where, f)
}

// havingClause, HAVING ifade kuyruğunu tutar.
type havingClause[B any] struct {
	hook[B]
	having Conditions
}

// Having, temel bir HAVING koşulu (left = right) ekler.
func (b *havingClause[B]) Having(left, right any) B {
	addComparison(b.c, &b.having, "Having", left, "=", right)
	return b.self
}

// HavingOp, verilen operatörle bir HAVING koşulu ekler.
func (b *havingClause[B]) HavingOp(left any, operator string, right any) B {
	addComparison(b.c, &b.having, "HavingOp", left, operator, right)
	return b.self
}

// HavingNot, HAVING != koşulu ekler.
func (b *havingClause[B]) HavingNot(left, right any) B {
	addComparison(b.c, &b.having, "HavingNot", left, "!=", right)
	return b.self
}

// HavingLike, HAVING LIKE koşulu ekler.
func (b *havingClause[B]) HavingLike(left, right any) B {
	addComparison(b.c, &b.having, "HavingLike", left, "LIKE", right)
	return b.self
}

// HavingNotLike, HAVING NOT LIKE koşulu ekler.
func (b *havingClause[B]) HavingNotLike(left, right any) B {
	addComparison(b.c, &b.having, "HavingNotLike", left, "NOT LIKE", right)
	return b.self
}

// HavingGt, HAVING > koşulu ekler.
func (b *havingClause[B]) HavingGt(left, right any) B {
	addComparison(b.c, &b.having, "HavingGt", left, ">", right)
	return b.self
}

// HavingGte, HAVING >= koşulu ekler.
func (b *havingClause[B]) HavingGte(left, right any) B {
	addComparison(b.c, &b.having, "HavingGte", left, ">=", right)
	return b.self
}

// HavingLt, HAVING < koşulu ekler.
func (b *havingClause[B]) HavingLt(left, right any) B {
	addComparison(b.c, &b.having, "HavingLt", left, "<", right)
	return b.self
}

// HavingLte, HAVING <= koşulu ekler.
func (b *havingClause[B]) HavingLte(left, right any) B {
	addComparison(b.c, &b.having, "HavingLte", left, "<=", right)
	return b.self
}

// OrHaving, OR HAVING koşulu ekler.
func (b *havingClause[B]) OrHaving(left, right any) B {
	addOr(b.c, &b.having, "OrHaving", left, right)
	return b.self
}

// HavingOpen, HAVING kuyruğuna açılan parantez ekler.
func (b *havingClause[B]) HavingOpen() B {
	b.having.Open()
	return b.self
}

// HavingClose, HAVING kuyruğuna kapanan parantez ekler.
func (b *havingClause[B]) HavingClose() B {
	b.having.Close()
	return b.self
}

// HavingOr, HAVING kuyruğuna açık bir OR ekler.
func (b *havingClause[B]) HavingOr() B {
	b.having.Or()
	return b.self
}

// HavingGroup, fn ile kurulan koşulları parantez içinde ekler.
func (b *havingClause[B]) HavingGroup(fn func(*Conditions)) B {
	addGroup(b.c, &b.having, "HavingGroup", fn)
	return b.self
}

func (b *havingClause[B]) renderHaving(f *Formatter) string {
	return renderKeyword("HAVING", &b.having, f)
}

// resolveList, her öğeyi nitelikli bir tanımlayıcı olarak çözer. Hata durumunda hiçbir şey
// döndürmez; başarısız çağrı listeyi değiştirmez.
func resolveList(items []any) ([]Operand, error) {
	out := make([]Operand, 0, len(items))
	for _, item := range items {
		o, err := resolveOperand(item, true)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}

// groupByClause, GROUP BY listesini tutar.
type groupByClause[B any] struct {
	hook[B]
	groupBy []Operand
}

// GroupBy, GROUP BY ekler.
func (b *groupByClause[B]) GroupBy(items ...any) B {
	ops, err := resolveList(items)
	if err != nil {
		b.c.fail("GroupBy", err)
		return b.self
	}
	b.groupBy = append(b.groupBy, ops...)
	return b.self
}

func (b *groupByClause[B]) renderGroupBy(f *Formatter) string {
	if len(b.groupBy) == 0 {
		return ""
	}
	parts := make([]string, len(b.groupBy))
	for i, o := range b.groupBy {
		parts[i] = f.formatOperand(o)
	}
	return "GROUP BY " + strings.Join(parts, ", ")
}

// OrderDirection, sıralama yönünü belirtir.
type OrderDirection string

const (
	Asc  OrderDirection = "ASC"
	Desc OrderDirection = "DESC"
)

type orderEntry struct {
	item      Operand
	direction OrderDirection
}

// orderByClause, ORDER BY listesini tutar.
type orderByClause[B any] struct {
	hook[B]
	orderBy []orderEntry
}

// OrderBy, yön belirtmeden ORDER BY ekler.
func (b *orderByClause[B]) OrderBy(items ...any) B {
	return b.order("OrderBy", "", items)
}

// OrderByAsc, artan sırada ORDER BY ekler.
func (b *orderByClause[B]) OrderByAsc(items ...any) B {
	return b.order("OrderByAsc", Asc, items)
}

// OrderByDesc, azalan sırada ORDER BY ekler.
func (b *orderByClause[B]) OrderByDesc(items ...any) B {
	return b.order("OrderByDesc", Desc, items)
}

func (b *orderByClause[B]) order(op string, dir OrderDirection, items []any) B {
	ops, err := resolveList(items)
	if err != nil {
		b.c.fail(op, err)
		return b.self
	}
	for _, o := range ops {
		b.orderBy = append(b.orderBy, orderEntry{item: o, direction: dir})
	}
	return b.self
}

func (b *orderByClause[B]) renderOrderBy(f *Formatter) string {
	if len(b.orderBy) == 0 {
		return ""
	}
	parts := make([]string, len(b.orderBy))
	for i, e := range b.orderBy {
		parts[i] = f.formatOperand(e.item)
		if e.direction != "" {
			parts[i] += " " + string(e.direction)
		}
	}
	return "ORDER BY " + strings.Join(parts, ", ")
}

// limitClause, LIMIT değerlerini tutar. Negatif değerler sıfıra çekilir.
type limitClause[B any] struct {
	hook[B]
	count     int
	offset    int
	hasLimit  bool
	hasOffset bool
}

// Limit, LIMIT ekler ve önceki limitin yerini alır.
func (b *limitClause[B]) Limit(count int) B {
	b.count, b.offset = max(count, 0), 0
	b.hasLimit, b.hasOffset = true, false
	return b.self
}

// LimitOffset, "LIMIT offset, count" biçiminde limit ekler ve öncekinin yerini alır.
func (b *limitClause[B]) LimitOffset(offset, count int) B {
	b.count, b.offset = max(count, 0), max(offset, 0)
	b.hasLimit, b.hasOffset = true, true
	return b.self
}

// Page, sayfa bazlı limit belirler. Sayfalar 1'den başlar.
func (b *limitClause[B]) Page(page, perPage int) B {
	page = max(page, 1)
	perPage = max(perPage, 0)
	return b.LimitOffset((page-1)*perPage, perPage)
}

func (b *limitClause[B]) renderLimit() string {
	if !b.hasLimit {
		return ""
	}
	if b.hasOffset {
		return "LIMIT " + strconv.Itoa(b.offset) + ", " + strconv.Itoa(b.count)
	}
	return "LIMIT " + strconv.Itoa(b.count)
}

// joinFragments, boş olmayan parçaları tek boşlukla birleştirir.
func joinFragments(fragments ...string) string {
	var sb strings.Builder
	for _, frag := range fragments {
		if frag == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(frag)
	}
	return sb.String()
}
