package selection

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	cases := []struct {
		name   string
		fields []SelectionField
		want   string
	}{
		{"nil", nil, ""},
		{"empty", []SelectionField{}, ""},
		{"leaves", Fields("a", "b"), "{ a b }"},
		{"nested", []SelectionField{Field("id"), Field("friends", Field("id"), Field("name"))}, "{ id friends { id name } }"},
		{"deep", []SelectionField{Field("a", Field("b", Field("c")))}, "{ a { b { c } } }"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Render(tc.fields))
		})
	}
}

func TestRenderNormalizesSpacing(t *testing.T) {
	tight := []SelectionField{Field("user", Field("id"))}
	loose := []SelectionField{Field(" user\n", Field("\tid "))}

	require.Equal(t, Render(tight), Render(loose))
	require.Equal(t, "{ user { id } }", Render(loose))
	require.Equal(t, "user { id }", tight[0].String())
}

func TestDepth(t *testing.T) {
	require.Equal(t, 0, Depth(nil))
	require.Equal(t, 1, Depth(Fields("a", "b")))
	require.Equal(t, 3, Depth([]SelectionField{Field("a"), Field("b", Field("c", Field("d")))}))
}

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"  ", ""},
		{"id", "{ id }"},
		{"id,name", "{ id name }"},
		{"id, name friends{id}", "{ id name friends { id } }"},
		{"friends { id, profile { bio } } role", "{ friends { id profile { bio } } role }"},
		{"_private __typename", "{ _private __typename }"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			fields, err := Parse(tc.in)
			require.NoError(t, err)
			require.Equal(t, tc.want, Render(fields))
		})
	}
}

func TestParseTree(t *testing.T) {
	fields, err := Parse("id,friends{id,name}")
	require.NoError(t, err)
	require.Equal(t, []SelectionField{Field("id"), Field("friends", Field("id"), Field("name"))}, fields)
	require.Nil(t, fields[0].Children)
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		in      string
		wantErr string
	}{
		{"{id}", "Expected Name"},
		{"a{b", "selection:"},
		{"a}", "selection:"},
		{"a{}", "selection:"},
		{"a{b}{c}", "selection:"},
		{"a.b", "selection:"},
		{"1id,name", "Expected Name"},
		{"a} {b", "unbalanced braces"},
		{"a} fragment F on T {b", "unbalanced braces"},
		{"me: user", `alias "me"`},
		{"user(id: 1)", "arguments on \"user\""},
		{"id @include(if: true)", "directives on \"id\""},
		{"...F", "fragments are not supported"},
		{"... on User { id }", "fragments are not supported"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			_, err := Parse(tc.in)
			require.ErrorContains(t, err, tc.wantErr)
		})
	}
}
