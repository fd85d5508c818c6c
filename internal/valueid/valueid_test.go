package valueid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUntypedRoundTrip(t *testing.T) {
	id := Untyped("set", 42)
	assert.Equal(t, Tag("set"), id.Tag())
	assert.Equal(t, 42, id.Num())
	assert.Equal(t, "set#42", id.String())
}

func TestTypedRoundTrip(t *testing.T) {
	tv := New[int]("counter", 7)
	assert.Equal(t, Tag("counter"), tv.Tag())
	assert.Equal(t, 7, tv.Num())
	assert.Equal(t, "counter#7", tv.String())

	id := tv.Untyped()
	assert.Equal(t, Untyped("counter", 7), id)
}

func TestFromIDPreservesIdentity(t *testing.T) {
	id := Untyped("pair", 3)
	tv := FromID[struct{ X, Y int }](id)
	assert.Equal(t, id, tv.Untyped())
}

func TestDistinctTagsAreDistinctIDs(t *testing.T) {
	a := Untyped("foo", 1)
	b := Untyped("bar", 1)
	assert.NotEqual(t, a, b)
	assert.Equal(t, a.Num(), b.Num())
}
