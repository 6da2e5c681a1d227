package querykit

import "github.com/biyonik/go-querykit/dialect"

// Option, bir Formatter'ı ve onun üzerinden Builder'ın ürettiği tüm ifadeleri yapılandırır.
//
// Örnek:
//
//	qb := querykit.New(querykit.WithDialect(dialect.Postgres()))
//	qb.Select("id").From("users").Render() // SELECT "id" FROM "users"
type Option func(*Formatter)

// WithDialect, bir dialect'in tırnak karakterini, escaper'ını ve tarih biçimini uygular.
func WithDialect(d dialect.Dialect) Option {
	return func(f *Formatter) {
		f.quote = d.IdentifierQuote
		f.escaper = d.Escaper
		if d.DateFormat != "" {
			f.dateFormat = d.DateFormat
		}
	}
}

// WithIdentifierQuote, tanımlayıcı tırnak karakterini ayarlar. Boş değer tanımlayıcıları
// tırnaksız yazar.
func WithIdentifierQuote(quote string) Option {
	return func(f *Formatter) {
		f.quote = quote
	}
}

// WithEscaper, genellikle bir veritabanı bağlantısından gelen harici escaper'ı kurar.
// Yerleşik stratejiye göre önceliklidir; nil yerleşik stratejiyi geri getirir.
func WithEscaper(e dialect.Escaper) Option {
	return func(f *Formatter) {
		f.escaper = e
	}
}

// WithDateFormat, time.Time değerlerinin biçimini ayarlar.
func WithDateFormat(layout string) Option {
	return func(f *Formatter) {
		if layout != "" {
			f.dateFormat = layout
		}
	}
}
