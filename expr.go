package querykit

import (
	"strings"

	"github.com/biyonik/go-querykit/internal/validation"
)

// Condition, ifade kuyruğunun bir girdisidir: Comparison ya da kontrol Token'ı. JOIN
// mutatörleri On ve OnOp ile kurulan karşılaştırmaları da kabul eder.
type Condition interface {
	isCondition()
}

// Token, ifade kuyruğundaki bir kontrol girdisidir.
type Token int

const (
	// OpenBracket "(" üretir; ardından örtük AND gelmez.
	OpenBracket Token = iota + 1
	// CloseBracket ")" üretir; önüne gelecek AND yazılmaz.
	CloseBracket
	// Or, örtük AND yerine "OR" üretir.
	Or
)

func (Token) isCondition() {}

func (t Token) String() string {
	switch t {
	case OpenBracket:
		return "("
	case CloseBracket:
		return ")"
	case Or:
		return "OR"
	default:
		return ""
	}
}

// Comparison, çözülmüş bir "left operator right" girdisidir.
type Comparison struct {
	Left     Operand
	Operator string
	Right    Operand
}

func (Comparison) isCondition() {}

// joinOn, JOIN mutatörüne verilen çözülmemiş bir karşılaştırmadır. Sağ tarafı varsayılan
// olarak kolon adıdır.
type joinOn struct {
	left     any
	operator string
	right    any
}

func (joinOn) isCondition() {}

// On, "left = right" JOIN koşulunu kurar. İki taraftaki düz metinler de kolon adıdır.
func On(left, right any) Condition {
	return joinOn{left: left, operator: "=", right: right}
}

// OnOp, verilen operatörle bir JOIN koşulu kurar.
func OnOp(left any, operator string, right any) Condition {
	return joinOn{left: left, operator: operator, right: right}
}

// newComparison, iki tarafı çözer ve operatörü normalize eder.
func newComparison(left any, operator string, right any, rightIdent bool) (Comparison, error) {
	op, err := validation.NormalizeOperator(operator)
	if err != nil {
		return Comparison{}, &ArgumentError{Arg: operator, Reason: "unsupported operator", Err: err}
	}
	l, err := resolveOperand(left, true)
	if err != nil {
		return Comparison{}, err
	}
	r, err := resolveOperand(right, rightIdent)
	if err != nil {
		return Comparison{}, err
	}
	return Comparison{Left: l, Operator: op, Right: r}, nil
}

// Conditions, WHERE, HAVING ve JOIN ... ON için sıralı ifade kuyruğudur. Parantezler
// dengelenmez ve doğrulanmaz: dengesiz bir kuyruk ya da açılan parantezin ardından gelen OR
// yazıldığı gibi üretilir.
//
// Sıfır değeri kullanıma hazır boş bir kuyruktur.
type Conditions struct {
	entries []Condition
	err     error
}

// Compare, "left operator right" ekler. Hatalı karşılaştırma eklenmez; ilk hata saklanır
// ve Err ile bildirilir.
func (q *Conditions) Compare(left any, operator string, right any) *Conditions {
	if err := q.compare(left, operator, right); err != nil && q.err == nil {
		q.err = err
	}
	return q
}

// Eq, "left = right" ekler.
func (q *Conditions) Eq(left, right any) *Conditions {
	return q.Compare(left, "=", right)
}

// Open, açılan parantez ekler.
func (q *Conditions) Open() *Conditions {
	q.entries = append(q.entries, OpenBracket)
	return q
}

// Close, kapanan parantez ekler.
func (q *Conditions) Close() *Conditions {
	q.entries = append(q.entries, CloseBracket)
	return q
}

// Or, açık bir OR ekler.
func (q *Conditions) Or() *Conditions {
	q.entries = append(q.entries, Or)
	return q
}

// Len, kontrol token'ları dahil girdi sayısını döndürür.
func (q *Conditions) Len() int {
	return len(q.entries)
}

// Entries, kuyruğun bir kopyasını döndürür.
func (q *Conditions) Entries() []Condition {
	return append([]Condition(nil), q.entries...)
}

// Err, Compare'in bildirdiği ilk hatayı döndürür.
func (q *Conditions) Err() error {
	return q.err
}

func (q *Conditions) compare(left any, operator string, right any) error {
	c, err := newComparison(left, operator, right, false)
	if err != nil {
		return err
	}
	q.entries = append(q.entries, c)
	return nil
}

// push, çözülmüş girdileri ekler.
func (q *Conditions) push(entries ...Condition) {
	q.entries = append(q.entries, entries...)
}

func (q *Conditions) clone() Conditions {
	return Conditions{entries: q.Entries(), err: q.err}
}

// Render, kuyruğu tek geçişte dolaşır. Açılan parantez ve OR dışındaki her girdiden sonra,
// sonraki girdi kapanan parantez ya da OR değilse AND eklenir. Boş kuyruk "" üretir.
func (q *Conditions) Render(f *Formatter) string {
	var sb strings.Builder

	for i, entry := range q.entries {
		if i > 0 {
			sb.WriteByte(' ')
		}

		switch e := entry.(type) {
		case Token:
			sb.WriteString(e.String())
			if e == OpenBracket || e == Or {
				continue
			}
		case Comparison:
			sb.WriteString(f.formatOperand(e.Left))
			sb.WriteByte(' ')
			sb.WriteString(e.Operator)
			sb.WriteByte(' ')
			sb.WriteString(f.formatOperand(e.Right))
		}

		if i+1 < len(q.entries) {
			if next, ok := q.entries[i+1].(Token); ok && (next == CloseBracket || next == Or) {
				continue
			}
			sb.WriteString(" AND")
		}
	}

	return sb.String()
}
