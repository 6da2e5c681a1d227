// Package validation, sorgu oluşturucuya dışarıdan gelen alias ve parametre anahtarlarını
// mutasyon anında doğrulayan dahili yardımcıları içerir. Render aşaması hiçbir zaman hata
// üretmediği için tüm kontroller burada, değer builder'a eklenmeden önce yapılır.
package validation

import (
	"regexp"
	"strconv"
	"strings"
)

// aliasRegex, tablo/kolon aliasları için geçerli karakterleri tanımlar.
var aliasRegex = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_$]*$`)

// maxIdentifierLength, MySQL ve PostgreSQL'in kabul ettiği en uzun isimden büyük tutulmuştur.
const maxIdentifierLength = 128

// ValidateAlias, bir aliasın boş olmayan, sayısal görünmeyen geçerli bir identifier olduğunu
// kontrol eder. Sayısal anahtarlar "alias yok" anlamına geldiği için reddedilir.
func ValidateAlias(alias string) error {
	if alias == "" {
		return &IdentifierError{Identifier: alias, Reason: "alias cannot be empty"}
	}
	if IsNumeric(alias) {
		return &IdentifierError{Identifier: alias, Reason: "alias must not be numeric"}
	}
	if len(alias) > maxIdentifierLength {
		return &IdentifierError{Identifier: alias, Reason: "alias exceeds maximum length of 128 characters"}
	}
	if !aliasRegex.MatchString(alias) {
		return &IdentifierError{Identifier: alias, Reason: "alias contains invalid characters"}
	}
	return nil
}

// ValidateParameterKey, parametre torbasına eklenecek anahtarın isimli olduğunu kontrol eder.
// ":email", "@id" gibi önekli anahtarlar kabul edilir; "0", "12" gibi pozisyonel anahtarlar edilmez.
func ValidateParameterKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return &IdentifierError{Identifier: key, Reason: "parameter key cannot be empty"}
	}
	if IsNumeric(key) {
		return &IdentifierError{Identifier: key, Reason: "each parameter must have a nominative key"}
	}
	return nil
}

// numericRegex yalnızca ondalık yazımı kabul eder; "Inf", "NaN" ve hex biçimleri sayı sayılmaz.
var numericRegex = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// IsNumeric, verilen stringin tamsayı veya ondalık sayı olarak okunup okunamadığını döndürür.
func IsNumeric(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || !numericRegex.MatchString(s) {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// IdentifierError, identifier doğrulama hatalarını temsil eder.
type IdentifierError struct {
	Identifier string
	Reason     string
}

// Error, error arayüzünü uygular.
func (e *IdentifierError) Error() string {
	if e.Identifier == "" {
		return "querykit: invalid identifier: " + e.Reason
	}
	return "querykit: invalid identifier '" + e.Identifier + "': " + e.Reason
}
