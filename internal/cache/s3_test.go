package cache_test

import (
	"context"
	"errors"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/rohmanhakim/aocinput/internal/cache"
	"github.com/rohmanhakim/aocinput/internal/puzzle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestS3Cache_StoresCompressedObject(t *testing.T) {
	fake := newFakeS3()
	c := cache.NewS3Cache(fake, "inputs", "aoc/")
	key := puzzle.NewKey(2022, 1)
	input := "1000\n2000\n3000\n\n4000\n"

	require.NoError(t, c.Write(context.Background(), key, input))

	objKey := "inputs/aoc/2022/day1.txt.zst"
	stored, ok := fake.objects[objKey]
	require.True(t, ok, "expected object %s", objKey)
	assert.Equal(t, "zstd", fake.encodings[objKey])

	decoder, err := zstd.NewReader(nil)
	require.NoError(t, err)
	defer decoder.Close()
	plain, err := decoder.DecodeAll(stored, nil)
	require.NoError(t, err)
	assert.Equal(t, input, string(plain))
}

func TestS3Cache_ObjectKeyDefaultPrefix(t *testing.T) {
	c := cache.NewS3Cache(newFakeS3(), "b", "")
	assert.Equal(t, "aocinput/2015/day25.txt.zst", c.ObjectKey(puzzle.NewKey(2015, 25)))
}

func TestS3Cache_Read_Misses(t *testing.T) {
	ctx := context.Background()
	key := puzzle.NewKey(2022, 2)

	t.Run("missing object", func(t *testing.T) {
		c := cache.NewS3Cache(newFakeS3(), "b", "")
		_, found := c.Read(ctx, key)
		assert.False(t, found)
	})

	t.Run("transport error", func(t *testing.T) {
		fake := newFakeS3()
		fake.getErr = errors.New("dial tcp: timeout")
		c := cache.NewS3Cache(fake, "b", "")
		_, found := c.Read(ctx, key)
		assert.False(t, found)
	})

	t.Run("not zstd", func(t *testing.T) {
		fake := newFakeS3()
		c := cache.NewS3Cache(fake, "b", "")
		fake.objects["b/"+c.ObjectKey(key)] = []byte("plain text")
		_, found := c.Read(ctx, key)
		assert.False(t, found)
	})
}

func TestS3Cache_Write_UploadFailure(t *testing.T) {
	fake := newFakeS3()
	fake.putErr = errors.New("access denied")
	c := cache.NewS3Cache(fake, "b", "")

	err := c.Write(context.Background(), puzzle.NewKey(2022, 3), "x")
	var cacheErr *cache.CacheError
	require.True(t, errors.As(err, &cacheErr))
	assert.Equal(t, cache.ErrCauseWriteFailure, cacheErr.Cause)
}
