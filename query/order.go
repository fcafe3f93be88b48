package query

import (
	"strings"

	"github.com/codiumsa/toolkit/meta"
)

// ApplyOrder 追加排序，未提供排序时按标识属性升序
func ApplyOrder(d *Descriptor, e *meta.Entity, sorts []Sort) error {
	if len(sorts) == 0 {
		sorts = []Sort{{Path: e.Identity(), Direction: string(ASC)}}
	}
	orders := make([]*Order, 0, len(sorts))
	for _, s := range sorts {
		dir, ok := ParseDirection(s.Direction)
		if !ok {
			return &PathError{Entity: e.Name, Path: s.Path, Segment: s.Direction, Err: ErrInvalidOrderDirection}
		}
		resolved, err := prepare(s.Path, d, e, false)
		if err != nil {
			return err
		}
		orders = append(orders, &Order{Path: strings.Split(s.Path, "."), Column: resolved, Direction: dir})
	}
	d.Order = append(d.Order, orders...)
	return nil
}
