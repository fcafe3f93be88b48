package query

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyFilters(t *testing.T) {
	user := entity(t, newRegistry(t), "User")

	t.Run("关联过滤", func(t *testing.T) {
		d := NewDescriptor(user)
		require.NoError(t, ApplyFilters(d, user, []Filter{{Path: "role.name", Condition: Condition{EQ: "admin"}}}))

		assert.Equal(t, []string{"role"}, aliases(d.Include))
		assert.Equal(t, []string{"$role.name$"}, d.Where.Keys())
		c, ok := d.Where.Get("$role.name$")
		require.True(t, ok)
		assert.Equal(t, Condition{EQ: "admin"}, c)
	})

	t.Run("单段路径使用列名", func(t *testing.T) {
		d := NewDescriptor(user)
		require.NoError(t, ApplyFilters(d, user, []Filter{NewFilter("email", "a@b.c")}))
		assert.Empty(t, d.Include)
		assert.Equal(t, []string{"email_address"}, d.Where.Keys())
	})

	t.Run("关联列名覆盖", func(t *testing.T) {
		d := NewDescriptor(user)
		require.NoError(t, ApplyFilters(d, user, []Filter{{Path: "role.displayName", Condition: Condition{LIKE: "%adm%"}}}))
		_, ok := d.Where.Get("$role.display_name$")
		assert.True(t, ok)
	})

	t.Run("同一键浅合并", func(t *testing.T) {
		d := NewDescriptor(user)
		require.NoError(t, ApplyFilters(d, user, []Filter{
			{Path: "name", Condition: Condition{EQ: "A"}},
			{Path: "email", Condition: Condition{IS: nil}},
			{Path: "name", Condition: Condition{NE: "B"}},
		}))
		assert.Equal(t, []string{"name", "email_address"}, d.Where.Keys())
		c, _ := d.Where.Get("name")
		assert.Equal(t, Condition{EQ: "A", NE: "B"}, c)

		require.NoError(t, ApplyFilters(d, user, []Filter{{Path: "name", Condition: Condition{EQ: "C"}}}))
		c, _ = d.Where.Get("name")
		assert.Equal(t, Condition{EQ: "C", NE: "B"}, c, "同一操作符后者覆盖")
	})

	t.Run("不修改输入", func(t *testing.T) {
		first := Condition{EQ: "A"}
		values := []string{"x", "y"}
		filters := []Filter{
			{Path: "name", Condition: first},
			{Path: "name", Condition: Condition{NE: "B"}},
			{Path: "email", Condition: Condition{IN: values}},
		}

		d1 := NewDescriptor(user)
		require.NoError(t, ApplyFilters(d1, user, filters))
		d2 := NewDescriptor(user)
		require.NoError(t, ApplyFilters(d2, user, filters))

		assert.Equal(t, Condition{EQ: "A"}, first)
		c1, _ := d1.Where.Get("name")
		c2, _ := d2.Where.Get("name")
		assert.Equal(t, c1, c2)

		values[0] = "changed"
		in, _ := d1.Where.Get("email_address")
		assert.Equal(t, []string{"x", "y"}, in[IN])
	})

	t.Run("未知关联", func(t *testing.T) {
		d := NewDescriptor(user)
		err := ApplyFilters(d, user, []Filter{NewFilter("nonexistentRelation.field", 1)})
		assert.ErrorIs(t, err, ErrUnknownAssociation)
		assert.Empty(t, d.Include)
		assert.True(t, d.Where.Empty())
	})

	t.Run("关联上的未知属性", func(t *testing.T) {
		d := NewDescriptor(user)
		err := ApplyFilters(d, user, []Filter{NewFilter("role.level", 1)})
		assert.ErrorIs(t, err, ErrUnknownPathSegment)
		assert.Empty(t, d.Include)
	})

	t.Run("未知操作符", func(t *testing.T) {
		d := NewDescriptor(user)
		err := ApplyFilters(d, user, []Filter{{Path: "name", Condition: Condition{"between": 1}}})
		assert.ErrorIs(t, err, ErrUnknownOperator)

		var oe *OperatorError
		require.True(t, errors.As(err, &oe))
		assert.Equal(t, "name", oe.Path)
	})
}

func TestParseOperator(t *testing.T) {
	tests := []struct {
		input    string
		expected Operator
	}{
		{input: "eq", expected: EQ},
		{input: "$ne", expected: NE},
		{input: "gte", expected: GE},
		{input: "LTE", expected: LE},
		{input: "notIn", expected: NI},
		{input: "$iLike", expected: I_LIKE},
		{input: "notLike", expected: NOT_LIKE},
		{input: "is", expected: IS},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			op, err := ParseOperator(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, op)
			assert.True(t, op.Valid())
		})
	}

	_, err := ParseOperator("between")
	assert.ErrorIs(t, err, ErrUnknownOperator)
	assert.False(t, Operator("gte").Valid(), "别名不是合法的条件键")
	assert.True(t, LIKE.Wildcard())
	assert.False(t, EQ.Wildcard())
}
