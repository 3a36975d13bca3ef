package recentlyviewed

import (
	"fmt"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
)

func handles(entries []*Entry) []string {
	return lo.Map(entries, func(e *Entry, _ int) string { return e.Handle })
}

func TestPush(t *testing.T) {
	var list []*Entry
	list = Push(list, &Entry{Handle: "a"}, 10)
	list = Push(list, &Entry{Handle: "b"}, 10)
	list = Push(list, &Entry{Handle: "c"}, 10)
	assert.Equal(t, []string{"c", "b", "a"}, handles(list))

	// revisiting moves to the front without duplicating
	list = Push(list, &Entry{Handle: "a"}, 10)
	assert.Equal(t, []string{"a", "c", "b"}, handles(list))
}

func TestPushCapsAtLimit(t *testing.T) {
	var list []*Entry
	for i := 0; i < 15; i++ {
		list = Push(list, &Entry{Handle: fmt.Sprintf("p%d", i)}, 10)
	}
	assert.Len(t, list, 10)
	assert.Equal(t, "p14", list[0].Handle)
	assert.Equal(t, "p5", list[9].Handle)
}
