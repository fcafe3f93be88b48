package meta

import (
	"fmt"

	"github.com/codiumsa/toolkit/log"
	"github.com/codiumsa/toolkit/std"
	"github.com/duke-git/lancet/v2/slice"
)

const (
	LoaderGorm   = "gorm"
	LoaderFile   = "file"
	LoaderConfig = "config"
)

// Loader 元数据加载器，优先级低的先执行，同名实体由后执行的覆盖
type Loader interface {
	Name() string
	Priority() int
	Support() bool
	Load(r *Registry) error
}

// NewRegistry 依次执行加载器，标记审计列后链接注册表
func NewRegistry(cfg *std.Config, loaders ...Loader) (*Registry, error) {
	r := NewEmptyRegistry()

	sorted := append([]Loader(nil), loaders...)
	slice.SortBy(sorted, func(a, b Loader) bool {
		return a.Priority() < b.Priority()
	})
	for _, l := range sorted {
		if !l.Support() {
			log.Debug().Str("loader", l.Name()).Msg("加载器不适用，跳过")
			continue
		}
		before := r.Len()
		if err := l.Load(r); err != nil {
			log.Warn().Err(err).Str("loader", l.Name()).Msg("加载器执行失败")
			return nil, fmt.Errorf("load metadata with %s loader: %w", l.Name(), err)
		}
		log.Info().Str("loader", l.Name()).Int("added", r.Len()-before).Msg("元数据加载完成")
	}

	if cfg != nil {
		r.Exclude(cfg.Query.AuditColumns...)
	} else {
		r.Exclude(AuditColumns...)
	}
	if err := r.Link(); err != nil {
		return nil, err
	}
	return r, nil
}

// putDefs 校验并注册一组实体定义
func putDefs(r *Registry, v *std.Validator, defs []EntityDef, camel bool) error {
	for i := range defs {
		if v != nil {
			if err := v.Check(&defs[i]); err != nil {
				return fmt.Errorf("%w: entities[%d]: %w", ErrInvalidEntity, i, err)
			}
		}
		if err := r.Put(defs[i].Build(camel)); err != nil {
			return err
		}
	}
	return nil
}
