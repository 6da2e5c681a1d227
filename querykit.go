// Package querykit, SQL ifadelerini (SELECT, UPDATE, DELETE) zincirleme çağrılarla kurup metin
// olarak üreten bir kütüphanedir. Sorgu çalıştırmaz; yalnızca SQL metni üretir.
//
// Yazar: Ahmet ALTUN
// Github: github.com/biyonik
// LinkedIn: linkedin.com/in/biyonik
// Email: ahmet.altun60@gmail.com
package querykit

// Version, go-querykit kütüphanesinin mevcut sürümünü belirtir.
const Version = "0.2.0"

// Statement, tüm ifade builder'larının uyguladığı arayüzdür.
type Statement interface {
	// Render, SQL metnini döndürür; hiçbir zaman başarısız olmaz.
	Render() string
	// ToSQL, SQL metnini ya da ifade kurulurken bildirilen ilk hatayı döndürür.
	ToSQL() (string, error)
	// Parameters, parametre torbasının bir kopyasını döndürür.
	Parameters() map[string]any
	// Err, ifade kurulurken bildirilen ilk hatayı döndürür.
	Err() error
}

var (
	_ Statement = (*SelectBuilder)(nil)
	_ Statement = (*UpdateBuilder)(nil)
	_ Statement = (*DeleteBuilder)(nil)
)

// Builder, aynı Formatter'ı paylaşan ifadeler üreten fabrikadır. Bir kez kurulduktan sonra
// salt okunurdur ve goroutine'ler arasında paylaşılabilir; ürettiği ifadeler paylaşılamaz.
//
// Örnek:
//
//	qb := querykit.New(querykit.WithDialect(dialect.Postgres()))
//	sql, err := qb.Select("id", "email").
//	    From("users").
//	    WhereLike("email", "%@example.com").
//	    Limit(10).
//	    ToSQL()
type Builder struct {
	fmt *Formatter
}

// New, opts ile yapılandırılmış bir Formatter kullanan Builder döndürür.
func New(opts ...Option) *Builder {
	return &Builder{fmt: NewFormatter(opts...)}
}

// NewWithFormatter, var olan bir Formatter'a bağlı Builder döndürür.
func NewWithFormatter(f *Formatter) *Builder {
	if f == nil {
		f = NewFormatter()
	}
	return &Builder{fmt: f}
}

// Formatter, Builder'ın ifadelerinin paylaştığı formatter'ı döndürür.
func (q *Builder) Formatter() *Formatter {
	return q.fmt
}

// Select, isteğe bağlı kolonlarla bir SELECT ifadesi başlatır.
func (q *Builder) Select(columns ...any) *SelectBuilder {
	b := newSelect(q.fmt)
	if len(columns) > 0 {
		b.Select(columns...)
	}
	return b
}

// Update, table üzerinde bir UPDATE ifadesi başlatır.
func (q *Builder) Update(table any) *UpdateBuilder {
	return newUpdate(q.fmt, table)
}

// Delete, bir DELETE ifadesi başlatır.
func (q *Builder) Delete() *DeleteBuilder {
	return newDelete(q.fmt)
}

var defaultBuilder = New()

// Select, varsayılan Formatter ile bir SELECT ifadesi başlatır.
//
//	querykit.Select("id", "firstname").From("users").Render()
//	// SELECT `id`, `firstname` FROM `users`
func Select(columns ...any) *SelectBuilder {
	return defaultBuilder.Select(columns...)
}

// Update, varsayılan Formatter ile bir UPDATE ifadesi başlatır.
func Update(table any) *UpdateBuilder {
	return defaultBuilder.Update(table)
}

// Delete, varsayılan Formatter ile bir DELETE ifadesi başlatır.
func Delete() *DeleteBuilder {
	return defaultBuilder.Delete()
}
