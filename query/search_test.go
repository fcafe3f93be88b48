package query

import (
	"testing"

	"github.com/codiumsa/toolkit/meta"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func columns(matches []*Match) []string {
	result := make([]string, 0, len(matches))
	for _, m := range matches {
		result = append(result, m.Column)
	}
	return result
}

func TestSearchPaths(t *testing.T) {
	r := newRegistry(t)
	user := entity(t, r, "User")

	assert.Equal(t, []string{"name", "email"}, SearchPaths(user))
	assert.Equal(t, []string{"name", "email", "role.name", "company.address.city"},
		ExtendedSearchPaths(user, "role.name", "company.address.city"))

	bare := meta.NewEntity("Tag", "tags").AddAttribute(&meta.Attribute{Name: "id"}).AddAttribute(&meta.Attribute{Name: "label"})
	assert.Equal(t, []string{"label"}, SearchPaths(bare), "未注册的实体也排除标识属性")
}

func TestSearchWithoutRegistry(t *testing.T) {
	plain := meta.NewEntity("User", "users")
	for _, name := range []string{"id", "name", "email", "created_at", "updated_at"} {
		plain.AddAttribute(&meta.Attribute{Name: name})
	}

	d, err := Build(plain, nil, nil, nil, "jo", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"User.name", "User.email"}, columns(d.Where.Or), "未经注册表也排除标识与审计列")
}

func TestApplySearch(t *testing.T) {
	user := entity(t, newRegistry(t), "User")

	t.Run("默认路径", func(t *testing.T) {
		d := NewDescriptor(user)
		require.NoError(t, ApplySearch(d, user, "jo", nil))

		require.Len(t, d.Where.Or, 2)
		assert.Equal(t, &Match{Column: "User.name", Cast: CAST, Operator: I_LIKE, Value: "%jo%"}, d.Where.Or[0])
		assert.Equal(t, "User.email_address", d.Where.Or[1].Column)
		assert.Empty(t, d.Where.Keys())
		assert.Empty(t, d.Include)
	})

	t.Run("指定关联路径", func(t *testing.T) {
		d := NewDescriptor(user)
		require.NoError(t, ApplySearch(d, user, "acme", []string{"company.name", "company.address.city", "name"}))

		assert.Equal(t, []string{"company.name", "company.address.city", "User.name"}, columns(d.Where.Or))
		assert.Equal(t, []string{"company"}, aliases(d.Include))
		assert.Equal(t, []string{"address"}, aliases(d.Include[0].Include))
		assert.False(t, d.Include[0].Required)
	})

	t.Run("多次搜索追加而不替换", func(t *testing.T) {
		d := NewDescriptor(user)
		require.NoError(t, ApplySearch(d, user, "jo", nil))
		require.NoError(t, ApplySearch(d, user, "admin", []string{"role.name"}))

		assert.Equal(t, []string{"User.name", "User.email_address", "role.name"}, columns(d.Where.Or))
		assert.Equal(t, "%admin%", d.Where.Or[2].Value)
	})

	t.Run("空值或空路径不做处理", func(t *testing.T) {
		d := NewDescriptor(user)
		require.NoError(t, ApplySearch(d, user, "", nil))
		require.NoError(t, ApplySearch(d, user, "jo", []string{}))
		assert.True(t, d.Where.Empty())

		onlyId := meta.NewEntity("Code", "codes").AddAttribute(&meta.Attribute{Name: "id", Primary: true})
		d = NewDescriptor(onlyId)
		require.NoError(t, ApplySearch(d, onlyId, "jo", nil))
		assert.True(t, d.Where.Empty())
	})

	t.Run("未知路径", func(t *testing.T) {
		d := NewDescriptor(user)
		assert.ErrorIs(t, ApplySearch(d, user, "jo", []string{"name", "nick"}), ErrUnknownPathSegment)
		assert.Empty(t, d.Where.Or, "出错时不追加部分结果")
	})
}
