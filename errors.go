package querykit

import "errors"

// ErrInvalidArgument, mutatörlerin bildirebileceği tüm hataların sınıfıdır: hatalı ya da belirsiz
// alias, bilinmeyen JOIN türü, hatalı JOIN koşulu, desteklenmeyen operatör, sayısal parametre
// anahtarı ve aliassız türetilmiş tablo. errors.Is ile kontrol edilir.
var ErrInvalidArgument = errors.New("querykit: invalid argument")

// ArgumentError, hangi mutatörün hangi girdiyi reddettiğini açıklar.
type ArgumentError struct {
	Op     string // mutator name, e.g. "From" or "Join"
	Arg    string // offending input, if printable
	Reason string
	Err    error // underlying validation error, if any
}

func (e *ArgumentError) Error() string {
	msg := "querykit: "
	if e.Op != "" {
		msg += e.Op + ": "
	}
	msg += "invalid argument"
	if e.Arg != "" {
		msg += " '" + e.Arg + "'"
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is, ArgumentError'ı ErrInvalidArgument olarak eşleştirir.
func (e *ArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

func (e *ArgumentError) Unwrap() error {
	return e.Err
}

func invalidArgument(op, arg, reason string) *ArgumentError {
	return &ArgumentError{Op: op, Arg: arg, Reason: reason}
}

// withOp, ortak yardımcıların ürettiği hatalara mutatör adını ekler.
func withOp(op string, err error) error {
	var argErr *ArgumentError
	if errors.As(err, &argErr) && argErr.Op == "" {
		cp := *argErr
		cp.Op = op
		return &cp
	}
	return err
}
