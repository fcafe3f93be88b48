package meta

import (
	"fmt"
	"sync"

	"github.com/iancoleman/strcase"
	"gorm.io/gorm/schema"
)

// GormLoader 从gorm模型结构体推导实体，实体名为结构体名，属性名为小驼峰字段名
type GormLoader struct {
	models []interface{}
	namer  schema.Namer
	cache  *sync.Map
}

func NewGormLoader(models ...interface{}) *GormLoader {
	return &GormLoader{models: models, namer: schema.NamingStrategy{}, cache: &sync.Map{}}
}

// WithNamer 使用与数据库连接一致的命名策略
func (my *GormLoader) WithNamer(namer schema.Namer) *GormLoader {
	if namer != nil {
		my.namer = namer
	}
	return my
}

func (my *GormLoader) Name() string  { return LoaderGorm }
func (my *GormLoader) Priority() int { return 60 }

func (my *GormLoader) Support() bool {
	return len(my.models) > 0
}

func (my *GormLoader) Load(r *Registry) error {
	for _, m := range my.models {
		s, err := schema.Parse(m, my.cache, my.namer)
		if err != nil {
			return fmt.Errorf("parse gorm model %T: %w", m, err)
		}
		if err := r.Put(fromSchema(s)); err != nil {
			return err
		}
	}
	return nil
}

func fromSchema(s *schema.Schema) *Entity {
	e := NewEntity(s.Name, s.Table)
	if f := s.PrioritizedPrimaryField; f != nil {
		e.PrimaryKey = strcase.ToLowerCamel(f.Name)
	}
	for _, f := range s.Fields {
		if rel, ok := s.Relationships.Relations[f.Name]; ok {
			e.AddAssociation(fromRelationship(rel))
			continue
		}
		if f.DBName == "" {
			continue
		}
		e.AddAttribute(&Attribute{
			Name:    strcase.ToLowerCamel(f.Name),
			Column:  f.DBName,
			Type:    string(f.DataType),
			Primary: f.PrimaryKey,
		})
	}
	return e
}

func fromRelationship(rel *schema.Relationship) *Association {
	a := &Association{
		Name:  strcase.ToLowerCamel(rel.Name),
		Kind:  Kind(rel.Type),
		Model: rel.FieldSchema.Name,
	}
	for _, ref := range rel.References {
		if ref.PrimaryKey == nil || ref.ForeignKey == nil {
			continue
		}
		a.ForeignKey, a.References = ref.ForeignKey.DBName, ref.PrimaryKey.DBName
		break
	}
	return a
}
