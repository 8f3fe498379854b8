package input

import (
	"bytes"
	"encoding/binary"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/temoto/keyprint/internal/types"
	"golang.org/x/sys/unix"
)

func record64(etype, code uint16, value int32) []byte {
	b := make([]byte, eventSize64)
	binary.LittleEndian.PutUint16(b[16:18], etype)
	binary.LittleEndian.PutUint16(b[18:20], code)
	binary.LittleEndian.PutUint32(b[20:24], uint32(value))
	return b
}

func record32(etype, code uint16, value int32) []byte {
	b := make([]byte, eventSize32)
	binary.LittleEndian.PutUint16(b[8:10], etype)
	binary.LittleEndian.PutUint16(b[10:12], code)
	binary.LittleEndian.PutUint32(b[12:16], uint32(value))
	return b
}

// returns one scripted chunk per Read call
type chunkReader struct{ chunks [][]byte }

func (cr *chunkReader) Read(p []byte) (int, error) {
	if len(cr.chunks) == 0 {
		return 0, io.EOF
	}
	n := copy(p, cr.chunks[0])
	if n == len(cr.chunks[0]) {
		cr.chunks = cr.chunks[1:]
	} else {
		cr.chunks[0] = cr.chunks[0][n:]
	}
	return n, nil
}

func TestReadEvent64(t *testing.T) {
	t.Parallel()

	e, err := ReadEvent(bytes.NewReader(record64(types.EventTypeKey, 79, 1)))
	require.NoError(t, err)
	assert.Equal(t, types.InputEvent{Type: types.EventTypeKey, Code: 79, Value: 1}, e)

	e, err = ReadEvent(bytes.NewReader(record64(0x04, 0xffff, -1)))
	require.NoError(t, err)
	assert.Equal(t, types.InputEvent{Type: 0x04, Code: 0xffff, Value: -1}, e)
}

func TestReadEvent32(t *testing.T) {
	t.Parallel()

	e, err := ReadEvent(bytes.NewReader(record32(types.EventTypeKey, 28, 1)))
	require.NoError(t, err)
	assert.Equal(t, types.InputEvent{Type: types.EventTypeKey, Code: 28, Value: 1}, e)

	e, err = ReadEvent(bytes.NewReader(record32(types.EventTypeKey, 96, 2)))
	require.NoError(t, err)
	assert.Equal(t, types.InputEvent{Type: types.EventTypeKey, Code: 96, Value: 2}, e)
}

func TestReadEventStitched(t *testing.T) {
	t.Parallel()

	rec := record32(types.EventTypeKey, 82, 1)
	cr := &chunkReader{chunks: [][]byte{rec[:10], rec[10:]}}
	e, err := ReadEvent(cr)
	require.NoError(t, err)
	assert.Equal(t, types.InputEvent{Type: types.EventTypeKey, Code: 82, Value: 1}, e)
}

func TestReadEventShortRecord(t *testing.T) {
	t.Parallel()

	// 20 bytes fit neither layout
	cr := &chunkReader{chunks: [][]byte{record64(types.EventTypeKey, 79, 1)[:20]}}
	_, err := ReadEvent(cr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "short record")

	// 10 bytes and nothing to complete a 16-byte record with
	cr = &chunkReader{chunks: [][]byte{record32(types.EventTypeKey, 79, 1)[:10]}}
	_, err = ReadEvent(cr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "short record")
}

func TestReadEventNoData(t *testing.T) {
	t.Parallel()

	_, err := ReadEvent(bytes.NewReader(nil))
	require.Error(t, err)
	assert.True(t, IsNoData(err))
}

func TestClassify(t *testing.T) {
	t.Parallel()

	assert.True(t, IsNoData(io.EOF))
	assert.True(t, IsNoData(&os.PathError{Op: "read", Path: "x", Err: unix.EAGAIN}))
	assert.True(t, IsInterrupted(unix.EINTR))
	assert.True(t, IsInterrupted(&os.PathError{Op: "read", Path: "x", Err: unix.EINTR}))
	assert.False(t, IsNoData(unix.EIO))
	assert.False(t, IsInterrupted(io.EOF))
	assert.True(t, isClosed(&os.PathError{Op: "read", Path: "x", Err: os.ErrClosed}))
	assert.False(t, isClosed(io.EOF))
}
