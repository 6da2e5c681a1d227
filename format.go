package querykit

import (
	"database/sql/driver"
	"reflect"
	"strings"

	"github.com/biyonik/go-querykit/dialect"
)

// Wildcard, tanımlayıcı beklenen her yerde tırnaksız yazılır.
const Wildcard = "*"

// DefaultIdentifierQuote, seçeneksiz kurulan Formatter'ın tırnak karakteridir.
const DefaultIdentifierQuote = "`"

// Formatter, tüm clause renderer'lar için tanımlayıcıları tırnaklar ve değerleri escape eder.
// Ayarları kurulumda sabitlenir; aynı Builder'dan üretilen ifadeler onu salt okunur paylaşır.
type Formatter struct {
	quote      string
	escaper    dialect.Escaper
	dateFormat string
}

// NewFormatter, backtick tırnaklı ve yerleşik escape stratejili bir Formatter döndürür;
// opts ile ayarlanır.
func NewFormatter(opts ...Option) *Formatter {
	f := &Formatter{
		quote:      DefaultIdentifierQuote,
		dateFormat: dialect.DefaultDateFormat,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	return f
}

// IdentifierQuote, yapılandırılmış tırnak karakterini döndürür; boş olabilir.
func (f *Formatter) IdentifierQuote() string {
	return f.quote
}

// QuoteIdentifier, name'in noktayla ayrılmış her parçasını tırnak içine alır; gömülü tırnaklar
// ikilenir. Wildcard tek başına da nitelikli adın son parçası olarak da ("users.*") tırnaksız
// kalır. Boş ad "" üretir.
func (f *Formatter) QuoteIdentifier(name string) string {
	if name == "" || name == Wildcard || f.quote == "" {
		return name
	}

	parts := strings.Split(name, ".")
	for i, part := range parts {
		if part == Wildcard {
			continue
		}
		parts[i] = f.quote + strings.ReplaceAll(part, f.quote, f.quote+f.quote) + f.quote
	}
	return strings.Join(parts, ".")
}

// EscapeValue, bir değeri SQL metnine çevirir. Value birliğindeki değerler etiketlerine göre
// işlenir; nil ve nil işaretçiler NULL, boolean değerler 1/0 olur. İşaretçiler çözülür.
// Kalan her şey yapılandırılmış Escaper'a, yoksa tırnakları ikilenmiş bir metin literaline gider.
func (f *Formatter) EscapeValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case *SelectBuilder:
		if x == nil {
			return "NULL"
		}
		return "(" + x.render(f) + ")"
	case Value:
		return f.Format(x)
	case bool:
		if x {
			return "1"
		}
		return "0"
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		return "NULL"
	}

	switch x := v.(type) {
	case driver.Valuer:
		dv, err := x.Value()
		if err != nil || dv == nil {
			return "NULL"
		}
		return f.EscapeValue(dv)
	}

	if rv.Kind() == reflect.Pointer {
		return f.EscapeValue(rv.Elem().Interface())
	}

	if f.escaper != nil {
		return f.escaper.EscapeScalar(v)
	}
	s := dialect.ScalarString(v, f.dateFormat)
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// Format, bir Value'yu etiketine göre üretir.
func (f *Formatter) Format(v Value) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case Literal:
		return string(x)
	case Ident:
		return f.QuoteIdentifier(string(x))
	case Scalar:
		return f.EscapeValue(x.V)
	case *SelectBuilder:
		return f.EscapeValue(x)
	default:
		return ""
	}
}

// formatOperand, nitelikli bir operandı üretir: quote(alias) "." value.
func (f *Formatter) formatOperand(o Operand) string {
	s := f.Format(o.Value)
	if o.Alias != "" {
		s = f.QuoteIdentifier(o.Alias) + "." + s
	}
	return s
}

// formatTarget, FROM/JOIN/UPDATE hedefini üretir: değer, varsa ardından tablo aliası.
func (f *Formatter) formatTarget(o Operand) string {
	s := f.Format(o.Value)
	if o.Alias != "" {
		s += " " + f.QuoteIdentifier(o.Alias)
	}
	return s
}
