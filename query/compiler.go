package query

import (
	"github.com/codiumsa/toolkit/log"
	"github.com/codiumsa/toolkit/meta"
	"github.com/codiumsa/toolkit/std"
)

// Compiler 按实体名构建查询描述，只持有只读的注册表与分页默认值
type Compiler struct {
	registry *meta.Registry
	defaults Paging
}

func NewCompiler(r *meta.Registry, cfg *std.Config) *Compiler {
	c := &Compiler{registry: r, defaults: Paging{Page: DEFAULT_PAGE, PageSize: DEFAULT_PAGE_SIZE}}
	if cfg != nil {
		c.defaults = Paging{Page: cfg.Query.DefaultPage, PageSize: cfg.Query.DefaultPageSize}
	}
	return c
}

func (my *Compiler) Registry() *meta.Registry { return my.registry }

// Build 顺序为 通用搜索 -> 过滤 -> 排序 -> 分页，最后关闭子查询
func (my *Compiler) Build(s Settings) (*Descriptor, error) {
	e, ok := my.registry.Entity(s.Entity)
	if !ok {
		return nil, &PathError{Entity: s.Entity, Segment: s.Entity, Err: ErrUnknownEntity}
	}
	d, err := build(e, s, my.defaults)
	if err != nil {
		log.Debug().Err(err).Str("entity", s.Entity).Msg("查询描述构建失败")
		return nil, err
	}
	log.Debug().Str("entity", s.Entity).Int("includes", len(d.Include)).Stringer("descriptor", d).Msg("查询描述构建完成")
	return d, nil
}

// Build 不依赖注册表直接对实体构建，paging为nil时不分页
func Build(e *meta.Entity, filters []Filter, sorts []Sort, paging *Paging, value string, paths []string) (*Descriptor, error) {
	return build(e, Settings{
		Entity:  e.Name,
		Filters: filters,
		Sorts:   sorts,
		Paging:  paging,
		Search:  &Search{Value: value, Paths: paths},
	}, Paging{})
}

func build(e *meta.Entity, s Settings, defaults Paging) (*Descriptor, error) {
	d := NewDescriptor(e)
	if s.Search != nil {
		if err := ApplySearch(d, e, s.Search.Value, s.Search.Paths); err != nil {
			return nil, err
		}
	}
	if err := ApplyFilters(d, e, s.Filters); err != nil {
		return nil, err
	}
	if err := ApplyOrder(d, e, s.Sorts); err != nil {
		return nil, err
	}
	if s.Paging != nil {
		ApplyPaging(d, *s.Paging, defaults)
	}
	d.SubQuery = false
	return d, nil
}
