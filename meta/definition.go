package meta

import (
	"github.com/samber/lo"
)

// EntityDef 配置或文件中的实体定义
type EntityDef struct {
	Name         string           `mapstructure:"name" json:"name"`
	Table        string           `mapstructure:"table" json:"table" validate:"required"`
	PrimaryKey   string           `mapstructure:"primary-key" json:"primaryKey"`
	Attributes   []AttributeDef   `mapstructure:"attributes" json:"attributes" validate:"dive"`
	Associations []AssociationDef `mapstructure:"associations" json:"associations" validate:"dive"`
}

type AttributeDef struct {
	Name     string `mapstructure:"name" json:"name" validate:"required_without=Column"`
	Column   string `mapstructure:"column" json:"column"`
	Type     string `mapstructure:"type" json:"type"`
	Primary  bool   `mapstructure:"primary" json:"primary"`
	Excluded bool   `mapstructure:"excluded" json:"excluded"`
}

type AssociationDef struct {
	Name       string `mapstructure:"name" json:"name" validate:"required"`
	Kind       string `mapstructure:"kind" json:"kind" validate:"omitempty,oneof=belongs_to has_one has_many many_to_many"`
	Model      string `mapstructure:"model" json:"model" validate:"required"`
	ForeignKey string `mapstructure:"foreign-key" json:"foreignKey"`
	References string `mapstructure:"references" json:"references"`
}

// Build 按定义构建实体，camel控制未命名属性的命名方式
func (my EntityDef) Build(camel bool) *Entity {
	e := NewEntity(lo.Ternary(my.Name == "", EntityName(my.Table), my.Name), my.Table)
	e.PrimaryKey = my.PrimaryKey
	for _, a := range my.Attributes {
		e.AddAttribute(&Attribute{
			Name:     lo.Ternary(a.Name == "", AttributeName(a.Column, camel), a.Name),
			Column:   a.Column,
			Type:     a.Type,
			Primary:  a.Primary,
			Excluded: a.Excluded,
		})
	}
	for _, a := range my.Associations {
		e.AddAssociation(&Association{
			Name:       a.Name,
			Kind:       Kind(a.Kind),
			Model:      a.Model,
			ForeignKey: a.ForeignKey,
			References: a.References,
		})
	}
	return e
}
