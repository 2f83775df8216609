package builder

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hanpama/graphy/internal/language"
	"github.com/hanpama/graphy/internal/selection"
)

func TestGeneratePrecedence(t *testing.T) {
	cases := []struct {
		name string
		b    *Builder
		want string
	}{
		{
			name: "fields only",
			b:    New().Fields(selection.Fields("a", "b")),
			want: "{ a b }",
		},
		{
			name: "query and fields",
			b:    New().Query("user", "", nil).Fields(selection.Fields("id")),
			want: "user { id }",
		},
		{
			name: "operation query and fields",
			b:    New().Operation(language.Query, "", nil).Query("user", "", nil).Fields(selection.Fields("id", "name")),
			want: "query { user { id name } }",
		},
		{
			name: "named operation with variables",
			b: New().
				Operation(language.Query, "Get", Params{{Key: "$id", Value: "ID!"}}).
				Query("user", "", Params{{Key: "id", Value: "$id"}}).
				Fields(selection.Fields("id")),
			want: "query Get($id: ID!) { user (id: $id) { id } }",
		},
		{
			name: "fragment wins",
			b: New().
				Operation(language.Query, "", nil).
				Query("user", "", nil).
				Fragment("UserParts", "User").
				Fields(selection.Fields("id", "name")),
			want: "fragment UserParts on User { id name }",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.b.Generate()
			require.Equal(t, tc.want, got)
			require.Equal(t, got, tc.b.Generate(), "Generate must not change the builder")
		})
	}
}

func TestGenerateParses(t *testing.T) {
	for _, q := range []string{
		New().Operation(language.Query, "", nil).Query("user", "", nil).Fields(selection.Fields("id")).Generate(),
		New().Operation(language.Query, "Get", Params{{Key: "$id", Value: "ID!"}}).
			Query("user", "u", Params{{Key: "id", Value: "$id"}}).
			Fields([]selection.SelectionField{selection.Field("friends", selection.Field("id"))}).Generate(),
		New().Fragment("F", "User").Fields(selection.Fields("id")).Generate(),
	} {
		_, err := language.ParseQuery(q)
		require.NoError(t, err, q)
	}
}

func TestQueryAliasAndParams(t *testing.T) {
	got := New().Query("users", "all", Params{{Key: "first", Value: "10"}, {Key: "after", Value: `"x"`}}).Generate()
	require.Equal(t, `all: users (first: 10, after: "x")`, got)
}

func TestOperationVariablesNeedName(t *testing.T) {
	got := New().Operation(language.Mutation, "", Params{{Key: "$id", Value: "ID!"}}).Query("deleteUser", "", nil).Generate()
	require.Equal(t, "mutation { deleteUser }", got)
}

func TestFieldsNamed(t *testing.T) {
	fields := selection.Fields("id")
	require.Equal(t, "node { id }", New().FieldsNamed("node", "", fields).Generate())
	require.Equal(t, "... on User { id }", New().FieldsNamed("...", "on User", fields).Generate())
	require.Equal(t, "node", New().FieldsNamed("node", "", nil).Generate())
}

func TestFieldsNormalizeWhitespace(t *testing.T) {
	got := New().Query("  user\n", "", nil).Fields([]selection.SelectionField{selection.Field("\tid")}).Generate()
	require.Equal(t, "user { id }", got)
}

func TestSortedParams(t *testing.T) {
	p := SortedParams(map[string]string{"b": "2", "a": "1", "c": "3"})
	require.Equal(t, []string{"a", "b", "c"}, p.Keys())
	require.Equal(t, "a: 1, b: 2, c: 3", p.String())
	require.Equal(t, "", Params(nil).String())
}
