package std

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	k, err := NewKonfig()
	require.NoError(t, err)
	require.NoError(t, k.LoadBytes([]byte(`
mode: development
app:
  name: toolkit
  database:
    dialect: mysql
    host: localhost
    port: 3306
query:
  default-page-size: 20
metadata:
  file: meta.json
  use-camel: true
log:
  level: debug
  rotate:
    filename: logs/toolkit.log
    max-size: 10
`)))

	c, err := NewConfig(k)
	require.NoError(t, err)

	assert.True(t, c.IsDebug())
	assert.Equal(t, "toolkit", c.Name)
	require.NotNil(t, c.Database)
	assert.Equal(t, DialectMySQL, c.Database.Dialect)
	assert.Equal(t, 3306, c.Database.Port)
	assert.Equal(t, 1, c.Query.DefaultPage)
	assert.Equal(t, 20, c.Query.DefaultPageSize)
	assert.Equal(t, []string{"id", "created_at", "updated_at", "deleted_at"}, c.Query.AuditColumns)
	assert.Equal(t, "meta.json", c.Metadata.File)
	assert.True(t, c.Metadata.UseCamel)
	assert.Equal(t, "debug", c.Log.Level)
	require.NotNil(t, c.Log.Rotate)
	assert.Equal(t, 10, c.Log.Rotate.MaxSize)
	assert.NotNil(t, c.Logger())
}

func TestConfigDefaults(t *testing.T) {
	k, err := NewKonfig()
	require.NoError(t, err)

	c, err := NewConfig(k)
	require.NoError(t, err)
	assert.Nil(t, c.Database)
	assert.Equal(t, 10, c.Query.DefaultPageSize)
	assert.Equal(t, "info", c.Log.Level)
}

func TestBuildDSN(t *testing.T) {
	tests := []struct {
		name     string
		ds       DataSource
		expected string
	}{
		{
			name:     "优先使用uri",
			ds:       DataSource{Uri: "postgres://u:p@h:5432/db", Host: "ignored"},
			expected: "postgres://u:p@h:5432/db",
		},
		{
			name:     "mysql",
			ds:       DataSource{Dialect: DialectMySQL, Username: "u", Password: "p", Host: "h", Port: 3306, Name: "db"},
			expected: "u:p@tcp(h:3306)/db?charset=utf8mb4&parseTime=True&loc=Local",
		},
		{
			name:     "postgres默认时区",
			ds:       DataSource{Username: "u", Password: "p", Host: "h", Port: 5432, Name: "db"},
			expected: "user=u password=p host=h port=5432 dbname=db TimeZone=Asia/Shanghai",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, buildDSN(&tc.ds))
		})
	}
}

func TestNewDatabaseWithoutSource(t *testing.T) {
	_, err := NewDatabase(&Config{})
	assert.ErrorIs(t, err, ErrNoDataSource)
}

func TestNewDryRun(t *testing.T) {
	db, err := NewDryRun(&Config{})
	require.NoError(t, err)
	assert.True(t, db.DryRun)
	assert.Equal(t, "postgres", db.Dialector.Name())
}
