package querykit

// Value, bir clause'un üretebileceği her şeyin etiketli birliğidir: Literal, Ident, Scalar ya da
// alt sorgu olarak *SelectBuilder. Her Value bu tiplerden tam olarak biridir.
type Value interface {
	isValue()
}

// Literal, önceden biçimlenmiş bir SQL parçasıdır. Olduğu gibi yazılır, tırnaklanmaz ve escape
// edilmez. Dikkat: SQL injection riskine karşı güvenli şekilde kullanın.
type Literal string

func (Literal) isValue() {}

// Raw, s'yi Literal olarak döndürür.
func Raw(s string) Literal {
	return Literal(s)
}

// Ident, bir kolon ya da tablo referansıdır. Tırnaklanır, escape edilmez.
type Ident string

func (Ident) isValue() {}

// Col, name'i Ident olarak döndürür. Düz metinlerin değer sayıldığı karşılaştırma sağ tarafında
// kullanılır.
func Col(name string) Ident {
	return Ident(name)
}

// Scalar, render sırasında escape edilen bir Go değerini sarar: metin, sayı, boolean, time.Time,
// driver.Valuer, işaretçiler ve nil.
type Scalar struct {
	V any
}

func (Scalar) isValue() {}

// Val, v'yi Scalar olarak döndürür. Düz metinlerin kolon adı sayıldığı konumlarda (seçim listesi,
// sol taraf) kullanılır.
func Val(v any) Scalar {
	return Scalar{V: v}
}

// AliasedValue, isteğe bağlı aliası olan bir girdidir; alias yoksa Alias boştur. Karşılaştırma,
// seçim listesi ve GROUP/ORDER BY içinde değeri niteler (alias.value); FROM, JOIN ve UPDATE
// hedeflerinde tabloyu adlandırır (value alias).
type AliasedValue struct {
	Alias string
	Value any
}

// As, value'yu alias ile eşleştirir.
func As(alias string, value any) AliasedValue {
	return AliasedValue{Alias: alias, Value: value}
}

// Operand, değeri Value olarak sınıflandırılmış, çözülmüş bir AliasedValue'dur.
type Operand struct {
	Alias string
	Value Value
}

// toValue, ham girdiyi sınıflandırır. Düz metinler ident açıkken tanımlayıcı, değilse skaler
// olur. *SelectBuilder kopyalanır; orijinali değiştirmek gömüldüğü ifadeyi etkilemez.
func toValue(v any, ident bool) (Value, error) {
	switch x := v.(type) {
	case *SelectBuilder:
		if x == nil {
			return Scalar{}, nil
		}
		if err := x.Err(); err != nil {
			return nil, err
		}
		return x.Clone(), nil
	case Value:
		return x, nil
	case string:
		if ident {
			return Ident(x), nil
		}
		return Scalar{V: x}, nil
	case AliasedValue, map[string]any, map[string]string:
		return nil, invalidArgument("", "", "nested alias mappings are not supported")
	default:
		return Scalar{V: x}, nil
	}
}

// resolveOperand, alias çözücüyü çalıştırır ve değeri sınıflandırır.
func resolveOperand(input any, ident bool) (Operand, error) {
	av, err := ResolveAlias(input)
	if err != nil {
		return Operand{}, err
	}
	val, err := toValue(av.Value, ident)
	if err != nil {
		return Operand{}, err
	}
	return Operand{Alias: av.Alias, Value: val}, nil
}

// isSubSelect, operandın iç içe bir ifade gömüp gömmediğini bildirir.
func (o Operand) isSubSelect() bool {
	_, ok := o.Value.(*SelectBuilder)
	return ok
}
