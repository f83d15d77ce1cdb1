package address

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidSegment(t *testing.T) {
	testCases := []struct {
		name  string
		valid bool
	}{
		{"worker", true},
		{"worker-1", true},
		{"worker_1.v2", true},
		{"", false},
		{"a/b", false},
		{"has space", false},
		{"emoji😀", false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.valid, ValidSegment(tc.name))
		})
	}
}

func TestPathChild(t *testing.T) {
	t.Run("child of root", func(t *testing.T) {
		p := Root.Child("user")
		assert.Equal(t, "/user", p.String())
		assert.Equal(t, "user", p.Name())
		assert.True(t, p.Parent().Equals(Root))
	})
	t.Run("nested child", func(t *testing.T) {
		p := Root.Child("user").Child("a").Child("b")
		assert.Equal(t, "/user/a/b", p.String())
		assert.Equal(t, "b", p.Name())
	})
	t.Run("nil receiver treated as root", func(t *testing.T) {
		var p *Path
		child := p.Child("user")
		assert.Equal(t, "/user", child.String())
	})
}

func TestPathEquals(t *testing.T) {
	a := Root.Child("user").Child("a")
	b := Root.Child("user").Child("a")
	c := Root.Child("user").Child("b")
	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
	assert.False(t, a.Equals(nil))
}

func TestParse(t *testing.T) {
	t.Run("root", func(t *testing.T) {
		p, ok := Parse("/")
		require.True(t, ok)
		assert.True(t, p.Equals(Root))
	})
	t.Run("empty string treated as root", func(t *testing.T) {
		p, ok := Parse("")
		require.True(t, ok)
		assert.True(t, p.Equals(Root))
	})
	t.Run("absolute path", func(t *testing.T) {
		p, ok := Parse("/user/a/b")
		require.True(t, ok)
		assert.Equal(t, "/user/a/b", p.String())
	})
	t.Run("relative path rejected", func(t *testing.T) {
		_, ok := Parse("user/a")
		assert.False(t, ok)
	})
	t.Run("invalid segment rejected", func(t *testing.T) {
		_, ok := Parse("/user/a b")
		assert.False(t, ok)
	})
	t.Run("dot segments not interpreted specially", func(t *testing.T) {
		p, ok := Parse("/user/..")
		require.True(t, ok)
		assert.Equal(t, "/user/..", p.String())
	})
}
