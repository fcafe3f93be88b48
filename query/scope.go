package query

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/codiumsa/toolkit/meta"
	"github.com/codiumsa/toolkit/std"
	"github.com/codiumsa/toolkit/utl"
	"github.com/duke-git/lancet/v2/convertor"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ScopeOption 控制交给gorm时附带哪些子句
type ScopeOption func(*scopeOptions)

type scopeOptions struct {
	paging  bool
	order   bool
	selects bool
}

// WithoutPaging 不附带 OFFSET/LIMIT
func WithoutPaging() ScopeOption {
	return func(o *scopeOptions) { o.paging = false }
}

// ForCount 只保留连接与条件，用于统计总数
func ForCount() ScopeOption {
	return func(o *scopeOptions) { o.paging, o.order, o.selects = false, false, false }
}

// CountColumn 根实体标识列，配合 Distinct(...).Count 统计去重后的根记录数
func CountColumn(d *Descriptor) string {
	return utl.JoinString(d.Model, ".", d.entity.IdentityColumn())
}

// Scope 把查询描述转换为gorm作用域：根表以实体名为别名，关联按连接树生成JOIN
func Scope(d *Descriptor, opts ...ScopeOption) func(*gorm.DB) *gorm.DB {
	o := &scopeOptions{paging: true, order: true, selects: true}
	for _, opt := range opts {
		opt(o)
	}
	return func(tx *gorm.DB) *gorm.DB {
		r := &renderer{root: d.Model, mysql: tx.Dialector.Name() == std.DialectMySQL}

		tx = tx.Table("? AS ?", clause.Table{Name: d.entity.Table}, clause.Table{Name: d.Model})
		if o.selects {
			tx = tx.Select("?.*", clause.Table{Name: d.Model})
		}

		joins, err := r.joins(d.Model, "", d.Include)
		if err != nil {
			_ = tx.AddError(err)
			return tx
		}
		if len(joins) > 0 {
			tx = tx.Clauses(clause.From{Joins: joins})
		}

		exprs, err := r.where(d.Where)
		if err != nil {
			_ = tx.AddError(err)
			return tx
		}
		if len(exprs) > 0 {
			tx = tx.Clauses(clause.Where{Exprs: exprs})
		}

		if o.order {
			for _, v := range d.Order {
				tx = tx.Order(clause.OrderByColumn{Column: r.column(v.Column), Desc: v.Direction == DESC})
			}
		}
		if o.paging && d.Offset != nil && d.Limit != nil {
			tx = tx.Offset(*d.Offset).Limit(*d.Limit)
		}
		return tx
	}
}

type renderer struct {
	root  string
	mysql bool
}

// alias 多级关联的连接别名，如 company__address
func alias(parent, name string) string {
	if parent == "" {
		return name
	}
	return utl.JoinString(parent, ALIAS_SEPARATOR, name)
}

func (my *renderer) joins(owner, prefix string, list Includes) ([]clause.Join, error) {
	var result []clause.Join
	for _, v := range list {
		a := v.association
		if a == nil || a.Kind == meta.ManyToMany {
			return nil, &PathError{Entity: v.Model, Segment: v.As, Err: ErrUnsupportedJoin}
		}
		current := alias(prefix, v.As)
		var on clause.Expression
		if a.Kind == meta.BelongsTo {
			on = clause.Eq{Column: clause.Column{Table: owner, Name: a.ForeignKey}, Value: clause.Column{Table: current, Name: a.References}}
		} else {
			on = clause.Eq{Column: clause.Column{Table: current, Name: a.ForeignKey}, Value: clause.Column{Table: owner, Name: a.References}}
		}
		join := clause.Join{
			Type:  clause.LeftJoin,
			Table: clause.Table{Name: v.entity.Table, Alias: current},
			ON:    clause.Where{Exprs: []clause.Expression{on}},
		}
		if v.Required {
			join.Type = clause.InnerJoin
		}
		result = append(result, join)

		children, err := my.joins(current, current, v.Include)
		if err != nil {
			return nil, err
		}
		result = append(result, children...)
	}
	return result, nil
}

// column 物理路径转列引用：单段属于根表，<根实体名>.列 也属于根表，其余最后一段为列名
func (my *renderer) column(path string) clause.Column {
	path, _ = utl.Unwrap(MARKER, path)
	segments := strings.Split(path, ".")
	n := len(segments)
	if n == 1 {
		return clause.Column{Table: my.root, Name: path}
	}
	if n == 2 && segments[0] == my.root {
		return clause.Column{Table: my.root, Name: segments[1]}
	}
	return clause.Column{Table: strings.Join(segments[:n-1], ALIAS_SEPARATOR), Name: segments[n-1]}
}

func (my *renderer) where(w *Where) ([]clause.Expression, error) {
	var exprs []clause.Expression
	for _, key := range w.Keys() {
		c, _ := w.Get(key)
		col := my.column(key)
		for _, op := range sortedOperators(c) {
			expr, err := my.condition(col, op, c[op])
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			exprs = append(exprs, expr)
		}
	}
	switch len(w.Or) {
	case 0:
	case 1:
		// 单个OR条件在gorm中会与前一个条件以OR连接，直接按AND追加
		exprs = append(exprs, my.match(w.Or[0]))
	default:
		or := make([]clause.Expression, 0, len(w.Or))
		for _, m := range w.Or {
			or = append(or, my.match(m))
		}
		exprs = append(exprs, clause.Or(or...))
	}
	return exprs, nil
}

func (my *renderer) condition(col clause.Column, op Operator, v any) (clause.Expression, error) {
	switch op {
	case EQ:
		return clause.Eq{Column: col, Value: v}, nil
	case NE:
		return clause.Neq{Column: col, Value: v}, nil
	case GT:
		return clause.Gt{Column: col, Value: v}, nil
	case GE:
		return clause.Gte{Column: col, Value: v}, nil
	case LT:
		return clause.Lt{Column: col, Value: v}, nil
	case LE:
		return clause.Lte{Column: col, Value: v}, nil
	case IN:
		return clause.IN{Column: col, Values: values(v)}, nil
	case NI:
		return clause.Not(clause.IN{Column: col, Values: values(v)}), nil
	case LIKE:
		return clause.Like{Column: col, Value: v}, nil
	case NOT_LIKE:
		return clause.Not(clause.Like{Column: col, Value: v}), nil
	case I_LIKE:
		if my.mysql {
			return clause.Like{Column: col, Value: v}, nil
		}
		return clause.Expr{SQL: "? ILIKE ?", Vars: []any{col, v}}, nil
	case IS:
		if isNull(v) {
			return clause.Eq{Column: col, Value: nil}, nil
		}
		return clause.Neq{Column: col, Value: nil}, nil
	}
	return nil, &OperatorError{Operator: string(op)}
}

func (my *renderer) match(m *Match) clause.Expression {
	if my.mysql {
		return clause.Expr{SQL: "CAST(? AS CHAR) LIKE ?", Vars: []any{my.column(m.Column), m.Value}}
	}
	return clause.Expr{SQL: fmt.Sprintf("CAST(? AS %s) ILIKE ?", m.Cast), Vars: []any{my.column(m.Column), m.Value}}
}

// isNull nil、true、"null"、"true" 表示 IS NULL，其余表示 IS NOT NULL
func isNull(v any) bool {
	if v == nil {
		return true
	}
	s := strings.ToLower(convertor.ToString(v))
	if s == "null" {
		return true
	}
	b, err := convertor.ToBool(s)
	return err == nil && b
}

func values(v any) []any {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return []any{v}
	}
	result := make([]any, rv.Len())
	for i := range result {
		result[i] = rv.Index(i).Interface()
	}
	return result
}

func sortedOperators(c Condition) []Operator {
	ops := make([]Operator, 0, len(c))
	for _, op := range []Operator{EQ, NE, GT, GE, LT, LE, IN, NI, LIKE, NOT_LIKE, I_LIKE, IS} {
		if _, ok := c[op]; ok {
			ops = append(ops, op)
		}
	}
	return ops
}
