package meta

import (
	"fmt"
	"slices"

	"github.com/codiumsa/toolkit/log"
	"github.com/samber/lo"
)

// Registry 实体注册表，Link之后只读，可被并发共享
type Registry struct {
	names    []string
	entities map[string]*Entity
	linked   bool
}

func NewEmptyRegistry() *Registry {
	return &Registry{entities: make(map[string]*Entity)}
}

// Put 注册实体，同名实体被后者替换
func (my *Registry) Put(e *Entity) error {
	if my.linked {
		return ErrRegistrySealed
	}
	if e == nil || e.Name == "" {
		return fmt.Errorf("%w: entity name is required", ErrInvalidEntity)
	}
	if _, ok := my.entities[e.Name]; !ok {
		my.names = append(my.names, e.Name)
	}
	my.entities[e.Name] = e
	return nil
}

func (my *Registry) Entity(name string) (*Entity, bool) {
	e, ok := my.entities[name]
	return e, ok
}

// Names 按注册顺序返回实体名
func (my *Registry) Names() []string {
	return slices.Clone(my.names)
}

func (my *Registry) Len() int {
	return len(my.names)
}

// Exclude 把标识属性以及名称或列名命中的属性标记为不参与通用搜索
func (my *Registry) Exclude(columns ...string) {
	for _, e := range my.entities {
		identity := e.Identity()
		for _, a := range e.Attributes() {
			if a.Primary || a.Name == identity || lo.Contains(columns, a.Name) || lo.Contains(columns, a.Column) {
				a.Excluded = true
			}
		}
	}
}

// Link 解析关联目标并补全默认键，校验每个实体都有标识属性，之后注册表只读
func (my *Registry) Link() error {
	if my.linked {
		return nil
	}
	for _, name := range my.names {
		e := my.entities[name]
		for _, a := range e.Associations() {
			target, ok := my.entities[a.Model]
			if !ok {
				return fmt.Errorf("%w: %s.%s -> %s", ErrDanglingAssociation, e.Name, a.Name, a.Model)
			}
			a.Target = target
			switch a.Kind {
			case BelongsTo:
				a.ForeignKey = lo.Ternary(a.ForeignKey == "", ForeignKeyName(a.Name), a.ForeignKey)
				a.References = lo.Ternary(a.References == "", target.IdentityColumn(), a.References)
			default:
				a.ForeignKey = lo.Ternary(a.ForeignKey == "", ForeignKeyName(e.Name), a.ForeignKey)
				a.References = lo.Ternary(a.References == "", e.IdentityColumn(), a.References)
			}
		}
		if _, ok := e.Attribute(e.Identity()); !ok {
			return fmt.Errorf("%w: %s.%s", ErrMissingIdentity, e.Name, e.Identity())
		}
	}
	my.linked = true
	log.Debug().Int("entities", len(my.names)).Msg("实体注册表已链接")
	return nil
}
