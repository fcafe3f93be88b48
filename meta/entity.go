package meta

import (
	"github.com/codiumsa/toolkit/utl"
	"github.com/samber/lo"
)

// Kind 关联类型
type Kind string

const (
	BelongsTo  Kind = "belongs_to"
	HasOne     Kind = "has_one"
	HasMany    Kind = "has_many"
	ManyToMany Kind = "many_to_many"
)

// DefaultIdentity 未声明主键时的标识属性名
const DefaultIdentity = "id"

// Attribute 实体属性，Name为逻辑名，Column为物理列名
type Attribute struct {
	Name     string `json:"name"`
	Column   string `json:"column"`
	Type     string `json:"type,omitempty"`
	Primary  bool   `json:"primary,omitempty"`
	Excluded bool   `json:"excluded,omitempty"`
}

// Association 实体关联，Name同时作为连接别名
//
// belongs_to: ForeignKey 在当前实体上，References 在目标实体上
// has_one/has_many: ForeignKey 在目标实体上，References 在当前实体上
type Association struct {
	Name       string  `json:"name"`
	Kind       Kind    `json:"kind"`
	Model      string  `json:"model"`
	ForeignKey string  `json:"foreignKey,omitempty"`
	References string  `json:"references,omitempty"`
	Target     *Entity `json:"-"`
}

// AuditColumns 默认的审计列，不参与通用搜索
var AuditColumns = []string{"created_at", "updated_at", "deleted_at"}

// IsAudit 属性名或列名属于默认审计列
func (my *Attribute) IsAudit() bool {
	return lo.Contains(AuditColumns, my.Name) || lo.Contains(AuditColumns, my.Column)
}

// Entity 一个可查询的实体
type Entity struct {
	Name       string `json:"name"`
	Table      string `json:"table"`
	PrimaryKey string `json:"primaryKey,omitempty"`

	attributes   []*Attribute
	associations []*Association
}

func NewEntity(name, table string) *Entity {
	return &Entity{Name: name, Table: lo.Ternary(table == "", name, table)}
}

// AddAttribute 添加属性，同名属性原位替换
func (my *Entity) AddAttribute(a *Attribute) *Entity {
	if a.Column == "" {
		a.Column = a.Name
	}
	if a.Primary && my.PrimaryKey == "" {
		my.PrimaryKey = a.Name
	}
	if _, i, ok := lo.FindIndexOf(my.attributes, func(v *Attribute) bool { return v.Name == a.Name }); ok {
		my.attributes[i] = a
	} else {
		my.attributes = append(my.attributes, a)
	}
	return my
}

// AddAssociation 添加关联，同名关联原位替换
func (my *Entity) AddAssociation(a *Association) *Entity {
	if a.Kind == "" {
		a.Kind = BelongsTo
	}
	if _, i, ok := lo.FindIndexOf(my.associations, func(v *Association) bool { return v.Name == a.Name }); ok {
		my.associations[i] = a
	} else {
		my.associations = append(my.associations, a)
	}
	return my
}

func (my *Entity) Attribute(name string) (*Attribute, bool) {
	return lo.Find(my.attributes, func(v *Attribute) bool { return v.Name == name })
}

func (my *Entity) Association(name string) (*Association, bool) {
	return lo.Find(my.associations, func(v *Association) bool { return v.Name == name })
}

// Attributes 按声明顺序返回属性
func (my *Entity) Attributes() []*Attribute {
	return my.attributes
}

// Associations 按声明顺序返回关联
func (my *Entity) Associations() []*Association {
	return my.associations
}

// Identity 标识属性的逻辑名
func (my *Entity) Identity() string {
	return lo.Ternary(my.PrimaryKey == "", DefaultIdentity, my.PrimaryKey)
}

// IdentityColumn 标识属性的物理列名
func (my *Entity) IdentityColumn() string {
	if a, ok := my.Attribute(my.Identity()); ok {
		return a.Column
	}
	return my.Identity()
}

// MarshalJSON 带上属性与关联列表
func (my *Entity) MarshalJSON() ([]byte, error) {
	type alias Entity
	return utl.MarshalJSON(struct {
		*alias
		Attributes   []*Attribute   `json:"attributes"`
		Associations []*Association `json:"associations,omitempty"`
	}{(*alias)(my), my.attributes, my.associations})
}
