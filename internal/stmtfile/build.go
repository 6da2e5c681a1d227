package stmtfile

import (
	"fmt"
	"strings"

	"github.com/biyonik/go-querykit"
)

// Build turns the document into a statement created by qb. The returned error is the first
// error reported while building, if any; the statement is returned either way.
func (d *Document) Build(qb *querykit.Builder) (querykit.Statement, error) {
	switch strings.ToLower(d.Kind) {
	case "", KindSelect:
		b, err := d.buildSelect(qb)
		return b, err
	case KindUpdate:
		b, err := d.buildUpdate(qb)
		return b, err
	case KindDelete:
		b, err := d.buildDelete(qb)
		return b, err
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, d.Kind)
	}
}

func (d *Document) target() any {
	if d.Alias != "" {
		return querykit.As(d.Alias, d.Table)
	}
	return d.Table
}

func (d *Document) buildSelect(qb *querykit.Builder) (*querykit.SelectBuilder, error) {
	b := qb.Select()
	for _, col := range d.Columns {
		if col.As != "" {
			b.ColumnAs(col.operand(), col.As)
		} else {
			b.Select(col.operand())
		}
	}
	b.When(d.Distinct, func(b *querykit.SelectBuilder) { b.Distinct() })
	if d.Table != "" {
		b.From(d.target())
	}
	if err := applyJoins[*querykit.SelectBuilder](qb, d.Joins, b.Join); err != nil {
		return b, err
	}
	if err := applyWhere[*querykit.SelectBuilder](qb, b, d.Where); err != nil {
		return b, err
	}
	b.GroupBy(operands(d.GroupBy)...)
	if err := applyHaving(qb, b, d.Having); err != nil {
		return b, err
	}
	applyOrder[*querykit.SelectBuilder](b, d.OrderBy)
	applyLimit[*querykit.SelectBuilder](b, d.Limit, d.Offset)
	b.SetParameters(d.Parameters)
	return b, b.Err()
}

func (d *Document) buildUpdate(qb *querykit.Builder) (*querykit.UpdateBuilder, error) {
	b := qb.Update(d.target())
	for _, a := range d.Set {
		b.Set(a.Column.operand(), assignedValue(a))
	}
	if err := applyJoins[*querykit.UpdateBuilder](qb, d.Joins, b.Join); err != nil {
		return b, err
	}
	if err := applyWhere[*querykit.UpdateBuilder](qb, b, d.Where); err != nil {
		return b, err
	}
	applyOrder[*querykit.UpdateBuilder](b, d.OrderBy)
	applyLimit[*querykit.UpdateBuilder](b, d.Limit, d.Offset)
	b.SetParameters(d.Parameters)
	return b, b.Err()
}

func (d *Document) buildDelete(qb *querykit.Builder) (*querykit.DeleteBuilder, error) {
	b := qb.Delete()
	if d.Table != "" {
		b.From(d.target())
	}
	if err := applyJoins[*querykit.DeleteBuilder](qb, d.Joins, b.Join); err != nil {
		return b, err
	}
	if err := applyWhere[*querykit.DeleteBuilder](qb, b, d.Where); err != nil {
		return b, err
	}
	b.GroupBy(operands(d.GroupBy)...)
	applyOrder[*querykit.DeleteBuilder](b, d.OrderBy)
	applyLimit[*querykit.DeleteBuilder](b, d.Limit, d.Offset)
	b.SetParameters(d.Parameters)
	return b, b.Err()
}

func assignedValue(a Assignment) any {
	switch {
	case a.Ref != nil:
		return querykit.Col(a.Ref.Name)
	case a.Raw != "":
		return querykit.Raw(a.Raw)
	default:
		return a.Value
	}
}

func operands(cols []Column) []any {
	out := make([]any, len(cols))
	for i, c := range cols {
		out[i] = c.operand()
	}
	return out
}

// rightSide resolves the value a condition compares against.
func rightSide(qb *querykit.Builder, c Condition) (any, error) {
	switch {
	case c.Select != nil:
		sub, err := c.Select.buildSelect(qb)
		if err != nil {
			return nil, err
		}
		return sub, nil
	case c.Ref != nil:
		ref := querykit.Col(c.Ref.Name)
		if c.Ref.Table != "" {
			return querykit.As(c.Ref.Table, ref), nil
		}
		return ref, nil
	case c.Raw != "":
		return querykit.Raw(c.Raw), nil
	default:
		return c.Value, nil
	}
}

func operator(c Condition) string {
	if c.Op == "" {
		return "="
	}
	return c.Op
}

// fillConditions appends conds to a standalone queue, used for groups and JOIN ... ON.
func fillConditions(qb *querykit.Builder, q *querykit.Conditions, conds []Condition) error {
	for _, c := range conds {
		if c.Or {
			q.Or()
		}
		if len(c.Group) > 0 {
			q.Open()
			if err := fillConditions(qb, q, c.Group); err != nil {
				return err
			}
			q.Close()
			continue
		}
		right, err := rightSide(qb, c)
		if err != nil {
			return err
		}
		q.Compare(c.Column.operand(), operator(c), right)
	}
	return q.Err()
}

type whereTarget[B any] interface {
	WhereOp(left any, operator string, right any) B
	WhereOr() B
	WhereGroup(fn func(*querykit.Conditions)) B
}

func applyWhere[B any](qb *querykit.Builder, b whereTarget[B], conds []Condition) error {
	for _, c := range conds {
		if c.Or {
			b.WhereOr()
		}
		if len(c.Group) > 0 {
			var groupErr error
			b.WhereGroup(func(q *querykit.Conditions) {
				groupErr = fillConditions(qb, q, c.Group)
			})
			if groupErr != nil {
				return groupErr
			}
			continue
		}
		right, err := rightSide(qb, c)
		if err != nil {
			return err
		}
		b.WhereOp(c.Column.operand(), operator(c), right)
	}
	return nil
}

func applyHaving(qb *querykit.Builder, b *querykit.SelectBuilder, conds []Condition) error {
	for _, c := range conds {
		if c.Or {
			b.HavingOr()
		}
		if len(c.Group) > 0 {
			var groupErr error
			b.HavingGroup(func(q *querykit.Conditions) {
				groupErr = fillConditions(qb, q, c.Group)
			})
			if groupErr != nil {
				return groupErr
			}
			continue
		}
		right, err := rightSide(qb, c)
		if err != nil {
			return err
		}
		b.HavingOp(c.Column.operand(), operator(c), right)
	}
	return nil
}

func applyJoins[B any](qb *querykit.Builder, joins []Join, join func(querykit.JoinKind, any, ...querykit.Condition) B) error {
	for _, j := range joins {
		kind := querykit.JoinInner
		if j.Kind != "" {
			kind = querykit.JoinKind(strings.ToUpper(j.Kind))
		}
		var table any = j.Table
		if j.Alias != "" {
			table = querykit.As(j.Alias, j.Table)
		}
		var on querykit.Conditions
		if err := fillConditions(qb, &on, j.On); err != nil {
			return err
		}
		join(kind, table, on.Entries()...)
	}
	return nil
}

type orderTarget[B any] interface {
	OrderByAsc(items ...any) B
	OrderByDesc(items ...any) B
	OrderBy(items ...any) B
}

func applyOrder[B any](b orderTarget[B], orders []Order) {
	for _, o := range orders {
		switch strings.ToUpper(o.Direction) {
		case "ASC":
			b.OrderByAsc(o.Column.operand())
		case "DESC":
			b.OrderByDesc(o.Column.operand())
		default:
			b.OrderBy(o.Column.operand())
		}
	}
}

type limitTarget[B any] interface {
	Limit(count int) B
	LimitOffset(offset, count int) B
}

func applyLimit[B any](b limitTarget[B], limit, offset *int) {
	switch {
	case limit != nil && offset != nil:
		b.LimitOffset(*offset, *limit)
	case limit != nil:
		b.Limit(*limit)
	}
}
