package fileinput

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type named struct {
	*strings.Reader
	name string
}

func (n named) Name() string { return n.name }

func TestReadAllConcatenatesQueueInOrder(t *testing.T) {
	var in Input
	in.Queue = []io.Reader{
		named{strings.NewReader("one "), "a"},
		named{strings.NewReader("two "), "b"},
		named{strings.NewReader("three"), "c"},
	}

	got, err := in.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "one two three", got)
}

func TestReadAllOnEmptyQueueIsEmptyString(t *testing.T) {
	var in Input
	got, err := in.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "", got)
}
