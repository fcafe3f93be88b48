package std

import (
	"errors"
	"fmt"
	"time"

	"github.com/codiumsa/toolkit/std/internal"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DialectMySQL    = "mysql"
	DialectPostgres = "postgres"
)

var ErrNoDataSource = errors.New("database data source is not configured")

// NewDatabase 按配置打开数据库连接
func NewDatabase(c *Config, p ...gorm.Plugin) (*gorm.DB, error) {
	if c.Database == nil {
		return nil, ErrNoDataSource
	}
	level := logger.Warn
	if c.IsDebug() {
		level = logger.Info
	}
	db, err := gorm.Open(
		buildDialect(c.Database, false),
		&gorm.Config{PrepareStmt: !c.IsDebug(), Logger: logger.Default.LogMode(level)},
	)
	if err != nil {
		return nil, err
	}
	for _, v := range p {
		if err = db.Use(v); err != nil {
			return nil, err
		}
	}
	sqlDb, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDb.SetMaxIdleConns(5)
	sqlDb.SetMaxOpenConns(90)
	sqlDb.SetConnMaxLifetime(5 * time.Minute)
	return db, nil
}

// NewDryRun 创建只生成SQL不连接数据库的实例，未配置数据源时按postgres方言处理
func NewDryRun(c *Config) (*gorm.DB, error) {
	ds := c.Database
	if ds == nil {
		ds = &internal.DataSource{
			Dialect: DialectPostgres, Host: "localhost", Port: 5432,
			Username: "postgres", Password: "postgres", Name: "postgres",
		}
	}
	return gorm.Open(buildDialect(ds, true), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               logger.Discard,
	})
}

func buildDialect(ds *internal.DataSource, dryRun bool) gorm.Dialector {
	if ds.Dialect == DialectMySQL {
		return mysql.New(mysql.Config{DSN: buildDSN(ds), SkipInitializeWithVersion: dryRun})
	}
	return postgres.New(postgres.Config{DSN: buildDSN(ds)})
}

func buildDSN(ds *internal.DataSource) string {
	if ds.Uri != "" {
		return ds.Uri
	}
	args := []interface{}{ds.Username, ds.Password, ds.Host, ds.Port, ds.Name}
	if ds.Dialect == DialectMySQL {
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local", args...)
	}
	tz := ds.TimeZone
	if tz == "" {
		tz = "Asia/Shanghai"
	}
	return fmt.Sprintf("user=%s password=%s host=%s port=%d dbname=%s TimeZone=%s", append(args, tz)...)
}
