package query

import (
	"github.com/codiumsa/toolkit/meta"
	"github.com/huandu/go-clone"
)

// ApplyFilters 合并显式过滤，不同键之间为AND，同一键上的条件按操作符浅合并
func ApplyFilters(d *Descriptor, e *meta.Entity, filters []Filter) error {
	for _, f := range filters {
		for op := range f.Condition {
			if !op.Valid() {
				return &OperatorError{Path: f.Path, Operator: string(op)}
			}
		}
		resolved, err := prepare(f.Path, d, e, false)
		if err != nil {
			return err
		}
		c := make(Condition, len(f.Condition))
		for op, v := range f.Condition {
			c[op] = clone.Clone(v)
		}
		d.Where.Merge(keyOf(resolved), c)
	}
	return nil
}
