package internal

// AppConfig 应用基础配置
type AppConfig struct {
	Name     string      `mapstructure:"name"`
	Root     string      `mapstructure:"root"`
	Database *DataSource `mapstructure:"database"`
}

// DataSource 数据源配置，Uri 不为空时优先使用
type DataSource struct {
	Uri      string `mapstructure:"uri"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	Dialect  string `mapstructure:"dialect"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	TimeZone string `mapstructure:"time-zone"`
}

// QueryConfig 查询描述构建相关配置
type QueryConfig struct {
	DefaultPage     int      `mapstructure:"default-page"`
	DefaultPageSize int      `mapstructure:"default-page-size"`
	AuditColumns    []string `mapstructure:"audit-columns"`
}

// MetadataConfig 元数据加载配置，实体定义位于 metadata.entities
type MetadataConfig struct {
	File     string `mapstructure:"file"`
	UseCamel bool   `mapstructure:"use-camel"`
}
