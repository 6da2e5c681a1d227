package validation

import "strings"

// allowedOperators, karşılaştırmalarda kullanılabilecek operatörlerin beyaz listesidir.
var allowedOperators = map[string]bool{
	// Karşılaştırma operatörleri
	"=":   true,
	"!=":  true,
	"<>":  true,
	"<":   true,
	">":   true,
	"<=":  true,
	">=":  true,
	"<=>": true, // MySQL NULL güvenli eşitliği

	// Desen eşleştirme operatörleri
	"LIKE":       true,
	"NOT LIKE":   true,
	"ILIKE":      true,
	"NOT ILIKE":  true,
	"REGEXP":     true,
	"NOT REGEXP": true,

	// NULL kontrolü operatörleri
	"IS":     true,
	"IS NOT": true,

	// Set ve alt sorgu operatörleri
	"IN":     true,
	"NOT IN": true,

	// Aralık operatörleri
	"BETWEEN":     true,
	"NOT BETWEEN": true,
}

// NormalizeOperator, bir operatörü standart biçime (kırpılmış, büyük harf, tekil boşluk)
// getirir. Beyaz listede olmayan operatörler için hata döner.
func NormalizeOperator(op string) (string, error) {
	normalized := strings.ToUpper(strings.Join(strings.Fields(op), " "))

	if !allowedOperators[normalized] {
		return "", &OperatorError{
			Operator: op,
			Reason:   "operator not in allowed list",
		}
	}

	return normalized, nil
}

// AllowedOperators, izin verilen tüm operatörleri döndürür.
func AllowedOperators() []string {
	ops := make([]string, 0, len(allowedOperators))
	for op := range allowedOperators {
		ops = append(ops, op)
	}
	return ops
}

// OperatorError, operatör doğrulama hatasını temsil eder.
type OperatorError struct {
	Operator string
	Reason   string
}

// Error, error arayüzünü uygular ve hatayı açıklayıcı string olarak döner.
func (e *OperatorError) Error() string {
	return "querykit: invalid operator '" + e.Operator + "': " + e.Reason
}
