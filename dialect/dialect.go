// Package dialect, querykit'in veritabanına göre değişen iki ayarını tanımlar: identifier
// tırnak karakteri ve skaler değerleri SQL-güvenli metne çeviren kaçış (escaping) kancası.
// Bunların dışında hiçbir dilbilgisi farkı modellenmez; LIMIT, JOIN ve diğer cümleler tüm
// dialectlerde aynı biçimde üretilir.
package dialect

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Dialect adları.
const (
	MySQLName    = "mysql"
	PostgresName = "postgres"
	SQLiteName   = "sqlite"
)

// DefaultDateFormat, time.Time değerlerinin SQL literal'e çevrilirken kullanılan biçimidir.
const DefaultDateFormat = "2006-01-02 15:04:05"

// ErrUnknownDialect, Lookup tanımadığı bir isim aldığında döner.
var ErrUnknownDialect = errors.New("querykit: unknown dialect")

// Escaper, bir skaler değeri tırnaklanmış ve kaçışlanmış SQL literal'ine çeviren dış yetenektir.
// NULL ve boolean değerler hiçbir zaman Escaper'a ulaşmaz; onları Formatter kendisi üretir.
type Escaper interface {
	EscapeScalar(v any) string
}

// EscaperFunc, sıradan bir fonksiyonu Escaper olarak kullanmayı sağlar.
type EscaperFunc func(v any) string

// EscapeScalar implements Escaper.
func (f EscaperFunc) EscapeScalar(v any) string { return f(v) }

// Dialect, bir veritabanı motoru için identifier tırnağını ve kaçış kancasını bir arada tutar.
type Dialect struct {
	Name            string
	IdentifierQuote string
	// Escaper nil ise Formatter yerleşik "tırnakla ve iç tırnakları ikile" stratejisine düşer.
	Escaper    Escaper
	DateFormat string
}

// MySQL, backtick tırnaklı ve ters bölü işaretini de kaçışlayan MySQL/MariaDB dialect'ini döndürür.
func MySQL() Dialect {
	return Dialect{
		Name:            MySQLName,
		IdentifierQuote: "`",
		Escaper:         backslashEscaper{layout: DefaultDateFormat},
		DateFormat:      DefaultDateFormat,
	}
}

// Postgres, çift tırnaklı identifier kullanan ve literal kaçışını lib/pq'ya devreden dialect'i döndürür.
func Postgres() Dialect {
	return Dialect{
		Name:            PostgresName,
		IdentifierQuote: `"`,
		Escaper:         pqEscaper{layout: DefaultDateFormat},
		DateFormat:      DefaultDateFormat,
	}
}

// SQLite, çift tırnaklı identifier ve yerleşik kaçış stratejisi kullanan dialect'i döndürür.
func SQLite() Dialect {
	return Dialect{
		Name:            SQLiteName,
		IdentifierQuote: `"`,
		DateFormat:      DefaultDateFormat,
	}
}

// Lookup, isimden (veya bilinen bir driver adından) Dialect çözer.
func Lookup(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case MySQLName, "mariadb":
		return MySQL(), nil
	case PostgresName, "postgresql", "pgx", "pq":
		return Postgres(), nil
	case SQLiteName, "sqlite3":
		return SQLite(), nil
	default:
		return Dialect{}, fmt.Errorf("%w: %q", ErrUnknownDialect, name)
	}
}

// Names, desteklenen dialect adlarını döndürür.
func Names() []string {
	return []string{MySQLName, PostgresName, SQLiteName}
}

// ScalarString, bir skaler değerin tırnaksız metin karşılığını üretir.
// Zaman değerleri layout ile biçimlendirilir; layout boşsa DefaultDateFormat kullanılır.
func ScalarString(v any, layout string) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []byte:
		return string(val)
	case bool:
		if val {
			return "1"
		}
		return "0"
	case int:
		return strconv.Itoa(val)
	case int8:
		return strconv.FormatInt(int64(val), 10)
	case int16:
		return strconv.FormatInt(int64(val), 10)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case int64:
		return strconv.FormatInt(val, 10)
	case uint:
		return strconv.FormatUint(uint64(val), 10)
	case uint8:
		return strconv.FormatUint(uint64(val), 10)
	case uint16:
		return strconv.FormatUint(uint64(val), 10)
	case uint32:
		return strconv.FormatUint(uint64(val), 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case time.Time:
		if layout == "" {
			layout = DefaultDateFormat
		}
		return val.Format(layout)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
