package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkIDArrayValue(t *testing.T) {
	v, err := ChunkIDArray{1, 4, 7}.Value()
	require.NoError(t, err)
	assert.Equal(t, "{1,4,7}", v)

	v, err = ChunkIDArray{}.Value()
	require.NoError(t, err)
	assert.Equal(t, "{}", v)

	v, err = ChunkIDArray(nil).Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestChunkIDArrayScan(t *testing.T) {
	var a ChunkIDArray
	require.NoError(t, a.Scan("{1,4,7}"))
	assert.Equal(t, ChunkIDArray{1, 4, 7}, a)

	require.NoError(t, a.Scan([]byte("{42}")))
	assert.Equal(t, ChunkIDArray{42}, a)

	require.NoError(t, a.Scan("{}"))
	assert.Equal(t, ChunkIDArray{}, a)

	require.NoError(t, a.Scan(nil))
	assert.Nil(t, a)
}

func TestChunkIDArrayScanMalformed(t *testing.T) {
	var a ChunkIDArray
	assert.Error(t, a.Scan("{1,x}"))
	assert.Error(t, a.Scan(7))
}
