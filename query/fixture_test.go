package query

import (
	"testing"

	"github.com/codiumsa/toolkit/meta"
	"github.com/stretchr/testify/require"
)

func identity() *meta.Attribute {
	return &meta.Attribute{Name: "id", Primary: true}
}

// newRegistry User -> role(Role), company(Company) -> address(Address), posts(Post)
func newRegistry(t *testing.T) *meta.Registry {
	t.Helper()
	r := meta.NewEmptyRegistry()
	require.NoError(t, r.Put(meta.NewEntity("User", "users").
		AddAttribute(identity()).
		AddAttribute(&meta.Attribute{Name: "name"}).
		AddAttribute(&meta.Attribute{Name: "email", Column: "email_address"}).
		AddAttribute(&meta.Attribute{Name: "created_at"}).
		AddAttribute(&meta.Attribute{Name: "updated_at"}).
		AddAssociation(&meta.Association{Name: "role", Model: "Role"}).
		AddAssociation(&meta.Association{Name: "company", Model: "Company"}).
		AddAssociation(&meta.Association{Name: "posts", Kind: meta.HasMany, Model: "Post"})))
	require.NoError(t, r.Put(meta.NewEntity("Role", "roles").
		AddAttribute(identity()).
		AddAttribute(&meta.Attribute{Name: "name"}).
		AddAttribute(&meta.Attribute{Name: "displayName", Column: "display_name"})))
	require.NoError(t, r.Put(meta.NewEntity("Company", "companies").
		AddAttribute(identity()).
		AddAttribute(&meta.Attribute{Name: "name"}).
		AddAssociation(&meta.Association{Name: "address", Model: "Address"})))
	require.NoError(t, r.Put(meta.NewEntity("Address", "addresses").
		AddAttribute(identity()).
		AddAttribute(&meta.Attribute{Name: "city"})))
	require.NoError(t, r.Put(meta.NewEntity("Post", "posts").
		AddAttribute(identity()).
		AddAttribute(&meta.Attribute{Name: "title"}).
		AddAttribute(&meta.Attribute{Name: "userId", Column: "user_id"})))
	r.Exclude("created_at", "updated_at", "deleted_at")
	require.NoError(t, r.Link())
	return r
}

func entity(t *testing.T, r *meta.Registry, name string) *meta.Entity {
	t.Helper()
	e, ok := r.Entity(name)
	require.True(t, ok)
	return e
}

func aliases(list Includes) []string {
	result := make([]string, 0, len(list))
	for _, v := range list {
		result = append(result, v.As)
	}
	return result
}
