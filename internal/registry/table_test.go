package registry

import (
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableSetGetDelete(t *testing.T) {
	table := New[int]()

	_, ok := table.Get("/user/a")
	assert.False(t, ok)

	table.Set("/user/a", 1)
	v, ok := table.Get("/user/a")
	require.True(t, ok)
	assert.Equal(t, 1, v)
	assert.Equal(t, 1, table.Len())

	table.Delete("/user/a")
	_, ok = table.Get("/user/a")
	assert.False(t, ok)
	assert.Equal(t, 0, table.Len())
}

func TestTableOverwrite(t *testing.T) {
	table := New[string]()
	table.Set("/user/a", "first")
	table.Set("/user/a", "second")
	v, ok := table.Get("/user/a")
	require.True(t, ok)
	assert.Equal(t, "second", v)
}

func TestTableRange(t *testing.T) {
	table := New[int]()
	for i := 0; i < 10; i++ {
		table.Set("/user/"+strconv.Itoa(i), i)
	}
	seen := make(map[string]int)
	table.Range(func(path string, value int) bool {
		seen[path] = value
		return true
	})
	assert.Len(t, seen, 10)
}

func TestTableConcurrentAccess(t *testing.T) {
	table := New[int]()
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			table.Set("/user/"+strconv.Itoa(i), i)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 100, table.Len())
}

func TestUIDTableSetGetDelete(t *testing.T) {
	table := NewUID[string]()

	_, ok := table.Get(42)
	assert.False(t, ok)

	table.Set(42, "cell")
	v, ok := table.Get(42)
	require.True(t, ok)
	assert.Equal(t, "cell", v)
	assert.Equal(t, 1, table.Len())

	table.Delete(42)
	_, ok = table.Get(42)
	assert.False(t, ok)
}
