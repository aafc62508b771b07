package cache

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
)

func TestKey(t *testing.T) {
	source := []byte("function Foo() {}")
	base, err := Key("m", "context|outermost|always|global", source)
	require.NoError(t, err)
	assert.Len(t, base, 16)

	same, err := Key("m", "context|outermost|always|global", source)
	require.NoError(t, err)
	assert.Equal(t, base, same)

	for _, variant := range []struct {
		moduleID    string
		fingerprint string
		source      string
	}{
		{moduleID: "n", fingerprint: "context|outermost|always|global", source: string(source)},
		{moduleID: "m", fingerprint: "hmr-id|outermost|always|global", source: string(source)},
		{moduleID: "m", fingerprint: "context|outermost|always|global", source: "function Bar() {}"},
		{moduleID: "mc", fingerprint: "ontext|outermost|always|global", source: string(source)},
	} {
		actual, err := Key(variant.moduleID, variant.fingerprint, []byte(variant.source))
		require.NoError(t, err)
		assert.NotEqual(t, base, actual, variant)
	}
}

func TestCache_Memory(t *testing.T) {
	ctx := context.Background()
	c := New()
	_, ok, err := c.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	wg := sync.WaitGroup{}
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key, _ := Key("m", "f", []byte{byte(i)})
			assert.NoError(t, c.Put(ctx, key, &Entry{Code: []byte{byte(i)}}))
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 8, c.Len())
}

func TestCache_Store(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	fs := afs.New()
	entry := &Entry{Code: []byte("var __s;"), Components: []string{"Foo", "Bar"}}

	writer := New(WithStore(fs, dir))
	require.NoError(t, writer.Put(ctx, "abc", entry))

	reader := New(WithStore(fs, dir))
	assert.Equal(t, 0, reader.Len())
	actual, ok, err := reader.Get(ctx, "abc")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, entry, actual)
	assert.Equal(t, 1, reader.Len())

	_, ok, err = reader.Get(ctx, "other")
	require.NoError(t, err)
	assert.False(t, ok)
}
