package utl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoinString(t *testing.T) {
	assert.Equal(t, "", JoinString())
	assert.Equal(t, "User.name", JoinString("User", ".", "name"))
}

func TestWrapUnwrap(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
		wrapped bool
	}{
		{name: "关联路径", content: "$role.name$", want: "role.name", wrapped: true},
		{name: "普通列名", content: "status", want: "status", wrapped: false},
		{name: "只有一个标记", content: "$", want: "$", wrapped: false},
		{name: "空内容", content: "$$", want: "", wrapped: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Unwrap("$", tc.content)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.wrapped, ok)
		})
	}
	assert.Equal(t, "$role.name$", Wrap("$", "role.name"))
}

func TestJSON(t *testing.T) {
	type payload struct {
		Name  string `json:"name"`
		Limit *int   `json:"limit,omitempty"`
	}
	data, err := MarshalJSON(payload{Name: "User"})
	assert.NoError(t, err)
	assert.JSONEq(t, `{"name":"User"}`, string(data))

	var out payload
	assert.NoError(t, UnmarshalJSON([]byte(`{"name":"Role","limit":5}`), &out))
	assert.Equal(t, "Role", out.Name)
	assert.Equal(t, 5, *out.Limit)
}
