package trac64

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreDefine(t *testing.T) {
	s := newStore()

	s.define("N", "hello")
	body, ok := s.lookup("N")
	require.True(t, ok)
	assert.Equal(t, Form{"hello"}, body)

	s.define("N", "")
	s.replace("N", "never matches since body is empty", 1)

	s.define("N", "world") // redefine drops any markers from before
	body, ok = s.lookup("N")
	require.True(t, ok)
	assert.Equal(t, Form{"world"}, body)

	s.define("", "ignored")
	_, ok = s.lookup("")
	assert.False(t, ok)
}

func TestStoreNamesInsertionOrder(t *testing.T) {
	s := newStore()
	s.define("B", "2")
	s.define("A", "1")
	s.define("B", "2-again") // redefine does not reorder
	assert.Equal(t, []string{"B", "A"}, s.allNames())

	s.delete("B")
	assert.Equal(t, []string{"A"}, s.allNames())

	s.delete("nonexistent")
	assert.Equal(t, []string{"A"}, s.allNames())
}

func TestSegmentReplace(t *testing.T) {
	t.Run("non-overlapping left to right", func(t *testing.T) {
		s := newStore()
		s.define("N", "aXbXXc")
		s.replace("N", "XX", 1)
		body, _ := s.lookup("N")
		assert.Equal(t, Form{"aXb", Marker(1), "c"}, body)
	})

	t.Run("empty pattern is a no-op but does not occupy state", func(t *testing.T) {
		s := newStore()
		s.define("N", "abc")
		s.replace("N", "", 1)
		body, _ := s.lookup("N")
		assert.Equal(t, Form{"abc"}, body)
	})

	t.Run("successive patterns never match across an earlier marker", func(t *testing.T) {
		s := newStore()
		s.define("N", "XYX")
		s.replace("N", "X", 1)
		s.replace("N", "YX", 2) // "YX" no longer exists as contiguous literal text
		body, _ := s.lookup("N")
		assert.Equal(t, Form{Marker(1), "Y", Marker(1)}, body)
	})

	t.Run("unknown form is a no-op", func(t *testing.T) {
		s := newStore()
		s.replace("Nope", "X", 1)
		_, ok := s.lookup("Nope")
		assert.False(t, ok)
	})
}

func TestMaterialize(t *testing.T) {
	body := Form{"a", Marker(1), "b", Marker(2), "c"}

	assert.Equal(t, "a1b2c", materialize(body, []string{"1", "2"}))
	assert.Equal(t, "ab2c", materialize(body, []string{"", "2"}))
	assert.Equal(t, "abc", materialize(body, nil)) // missing args -> ""
	assert.Equal(t, "a1bc", materialize(body, []string{"1"}))

	assert.Equal(t, "", materialize(nil, []string{"x"}))
}

func TestRenderForm(t *testing.T) {
	body := Form{"a", Marker(1), "b"}
	assert.Equal(t, "a#1b", renderForm(body))
}
