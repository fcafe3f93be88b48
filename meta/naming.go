package meta

import (
	"github.com/iancoleman/strcase"
	"github.com/jinzhu/inflection"
)

// EntityName 表名转实体名，如 user_roles => UserRole
func EntityName(table string) string {
	return strcase.ToCamel(inflection.Singular(table))
}

// AttributeName 列名转属性名，camel为true时转小驼峰
func AttributeName(column string, camel bool) string {
	if camel {
		return strcase.ToLowerCamel(column)
	}
	return column
}

// ForeignKeyName 关联的默认外键列，如 company => company_id
func ForeignKeyName(name string) string {
	return strcase.ToSnake(name) + "_id"
}
