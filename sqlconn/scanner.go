package sqlconn

import (
	"database/sql"
	"reflect"
	"strings"
	"sync"
)

// Scanner, sorgu sonuçlarını reflection ile Go değerlerine aktarır. Struct alanları "db"
// etiketiyle sütunlara eşlenir; etiket yoksa alan adının küçük harfli hali kullanılır.
//
//	type User struct {
//	    ID    int64  `db:"id,pk"`
//	    Email string `db:"email"`
//	    Notes string `db:"-"`
//	}
//
// Struct bilgisi tip başına bir kez çıkarılır ve önbelleğe alınır; Scanner eşzamanlı kullanıma
// uygundur.
type Scanner struct {
	cache sync.Map // reflect.Type -> *structInfo
}

// NewScanner returns an empty Scanner.
func NewScanner() *Scanner {
	return &Scanner{}
}

type structInfo struct {
	fields  []fieldInfo
	columns map[string]int
}

type fieldInfo struct {
	index []int
	name  string
	pk    bool
}

// ScanAll appends every row to dest, which must be a pointer to a slice of structs or struct
// pointers. Columns without a matching field are discarded. rows is closed.
func (s *Scanner) ScanAll(rows *sql.Rows, dest any) error {
	defer rows.Close()

	sliceVal, err := sliceOf(dest)
	if err != nil {
		return err
	}
	elemType := sliceVal.Type().Elem()
	isPtr := elemType.Kind() == reflect.Pointer
	if isPtr {
		elemType = elemType.Elem()
	}
	if elemType.Kind() != reflect.Struct {
		return ErrNotAStruct
	}

	columns, err := rows.Columns()
	if err != nil {
		return wrapError("columns", err)
	}
	mapping := s.mapColumns(elemType, columns)

	for rows.Next() {
		elem := reflect.New(elemType).Elem()
		if err := rows.Scan(scanTargets(elem, mapping)...); err != nil {
			return wrapError("scan", err)
		}
		if isPtr {
			sliceVal.Set(reflect.Append(sliceVal, elem.Addr()))
		} else {
			sliceVal.Set(reflect.Append(sliceVal, elem))
		}
	}
	return wrapError("rows", rows.Err())
}

// ScanOne scans the first row into dest, a pointer to a struct. It returns ErrNoRows when
// the result is empty. rows is closed.
func (s *Scanner) ScanOne(rows *sql.Rows, dest any) error {
	defer rows.Close()

	v := reflect.ValueOf(dest)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return ErrNotAPointer
	}
	elem := v.Elem()
	if elem.Kind() != reflect.Struct {
		return ErrNotAStruct
	}

	columns, err := rows.Columns()
	if err != nil {
		return wrapError("columns", err)
	}
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return wrapError("rows", err)
		}
		return ErrNoRows
	}
	if err := rows.Scan(scanTargets(elem, s.mapColumns(elem.Type(), columns))...); err != nil {
		return wrapError("scan", err)
	}
	return nil
}

// ScanColumn appends the first column of every row to dest, a pointer to a slice.
// rows is closed.
func (s *Scanner) ScanColumn(rows *sql.Rows, dest any) error {
	defer rows.Close()

	sliceVal, err := sliceOf(dest)
	if err != nil {
		return err
	}
	elemType := sliceVal.Type().Elem()

	columns, err := rows.Columns()
	if err != nil {
		return wrapError("columns", err)
	}
	for rows.Next() {
		targets := make([]any, len(columns))
		ptr := reflect.New(elemType)
		targets[0] = ptr.Interface()
		for i := 1; i < len(targets); i++ {
			targets[i] = new(any)
		}
		if err := rows.Scan(targets...); err != nil {
			return wrapError("scan", err)
		}
		sliceVal.Set(reflect.Append(sliceVal, ptr.Elem()))
	}
	return wrapError("rows", rows.Err())
}

// Columns returns the column names dest maps to, in field order. dest may be a struct, a
// slice of structs, or pointers to either.
func (s *Scanner) Columns(dest any) ([]string, error) {
	t, err := structType(dest)
	if err != nil {
		return nil, err
	}
	info := s.structInfo(t)
	names := make([]string, len(info.fields))
	for i, f := range info.fields {
		names[i] = f.name
	}
	return names, nil
}

// PrimaryKey returns the column tagged "pk", falling back to "id" when such a column exists.
// It returns "" otherwise.
func (s *Scanner) PrimaryKey(dest any) string {
	t, err := structType(dest)
	if err != nil {
		return ""
	}
	info := s.structInfo(t)
	for _, f := range info.fields {
		if f.pk {
			return f.name
		}
	}
	if _, ok := info.columns["id"]; ok {
		return "id"
	}
	return ""
}

// mapColumns returns, per result column, the index path of the field it scans into or nil.
func (s *Scanner) mapColumns(t reflect.Type, columns []string) [][]int {
	info := s.structInfo(t)
	mapping := make([][]int, len(columns))
	for i, col := range columns {
		if idx, ok := info.columns[strings.ToLower(col)]; ok {
			mapping[i] = info.fields[idx].index
		}
	}
	return mapping
}

func (s *Scanner) structInfo(t reflect.Type) *structInfo {
	if cached, ok := s.cache.Load(t); ok {
		return cached.(*structInfo)
	}
	info := &structInfo{columns: make(map[string]int)}
	parseStruct(t, nil, info)
	actual, _ := s.cache.LoadOrStore(t, info)
	return actual.(*structInfo)
}

func parseStruct(t reflect.Type, index []int, info *structInfo) {
	for i := range t.NumField() {
		field := t.Field(i)
		fieldIndex := append(append([]int{}, index...), i)

		// gömülü struct alanları, tip dışa açık olmasa da düzleştirilir
		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			parseStruct(field.Type, fieldIndex, info)
			continue
		}
		if !field.IsExported() {
			continue
		}

		tag := field.Tag.Get("db")
		if tag == "-" {
			continue
		}
		fi := fieldInfo{index: fieldIndex, name: strings.ToLower(field.Name)}
		if tag != "" {
			name, opts, _ := strings.Cut(tag, ",")
			if name != "" {
				fi.name = name
			}
			for _, opt := range strings.Split(opts, ",") {
				if opt == "pk" {
					fi.pk = true
				}
			}
		}
		info.columns[fi.name] = len(info.fields)
		info.fields = append(info.fields, fi)
	}
}

func scanTargets(elem reflect.Value, mapping [][]int) []any {
	targets := make([]any, len(mapping))
	for i, index := range mapping {
		if index == nil {
			targets[i] = new(any)
			continue
		}
		targets[i] = elem.FieldByIndex(index).Addr().Interface()
	}
	return targets
}

func sliceOf(dest any) (reflect.Value, error) {
	v := reflect.ValueOf(dest)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return reflect.Value{}, ErrNotAPointer
	}
	if v.Elem().Kind() != reflect.Slice {
		return reflect.Value{}, ErrNotASlice
	}
	return v.Elem(), nil
}

func structType(dest any) (reflect.Type, error) {
	t := reflect.TypeOf(dest)
	if t == nil {
		return nil, ErrNotAStruct
	}
	for t.Kind() == reflect.Pointer || t.Kind() == reflect.Slice {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, ErrNotAStruct
	}
	return t, nil
}
