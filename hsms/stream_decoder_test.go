package hsms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamDecoder_HeaderOnlyDataMessage(t *testing.T) {
	req := require.New(t)

	var got *DataMessage
	decoder := NewStreamDecoder(64,
		func(header []byte) { t.Fatalf("unexpected control message: % x", header) },
		func(msg *DataMessage) { got = msg },
	)

	input := []byte{0x00, 0x00, 0x00, 0x0A, 0x00, 0x01, 0x81, 0x0D, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01}
	n := copy(decoder.BufferWriteSlice(), input)
	needMore, err := decoder.Decode(n)
	req.NoError(err)
	req.False(needMore)

	req.NotNil(got)
	assert.Equal(t, uint16(1), got.SessionID())
	assert.Equal(t, uint8(1), got.StreamCode())
	assert.Equal(t, uint8(13), got.FunctionCode())
	assert.True(t, got.WaitBit())
	assert.Equal(t, []byte{0, 0, 0, 1}, got.SystemBytes())
	assert.True(t, got.Item().IsEmpty())
}

func TestStreamDecoder_SingleASCIIItem(t *testing.T) {
	req := require.New(t)

	var got *DataMessage
	decoder := NewStreamDecoder(64,
		func(header []byte) { t.Fatalf("unexpected control message: % x", header) },
		func(msg *DataMessage) { got = msg },
	)

	input := []byte{
		0x00, 0x00, 0x00, 0x12,
		0x00, 0x00, 0x01, 0x02, 0x00, 0x00, 0x00, 0x00, 0x00, 0x02,
		0x41, 0x06, 0x48, 0x65, 0x6C, 0x6C, 0x6F, 0x21,
	}
	n := copy(decoder.BufferWriteSlice(), input)
	needMore, err := decoder.Decode(n)
	req.NoError(err)
	req.False(needMore)

	req.NotNil(got)
	assert.Equal(t, uint8(1), got.StreamCode())
	assert.Equal(t, uint8(2), got.FunctionCode())

	text, err := got.Item().ToASCII()
	req.NoError(err)
	assert.Equal(t, "Hello!", text)

	roundTrip, err := DecodeSECS2Item(got.Item().ToBytes())
	req.NoError(err)
	assert.Equal(t, got.Item().ToBytes(), roundTrip.ToBytes())
}

func nestedListFrame() []byte {
	itemTree := []byte{
		0x01, 0x02, // L[2]
		0xA9, 0x02, 0x12, 0x34, //   U2[1] 0x1234
		0x01, 0x00, //   L[0]
	}
	header := []byte{0x00, 0x00, 0x01, 0x02, 0x00, 0x00, 0x00, 0x00, 0x00, 0x03}
	payloadLen := len(header) + len(itemTree)

	frame := make([]byte, 0, 4+payloadLen)
	frame = append(frame, 0, 0, byte(payloadLen>>8), byte(payloadLen)) //nolint:gosec
	frame = append(frame, header...)
	frame = append(frame, itemTree...)

	return frame
}

func TestStreamDecoder_NestedList(t *testing.T) {
	req := require.New(t)

	var got *DataMessage
	decoder := NewStreamDecoder(64,
		func(header []byte) { t.Fatalf("unexpected control message: % x", header) },
		func(msg *DataMessage) { got = msg },
	)

	input := nestedListFrame()
	n := copy(decoder.BufferWriteSlice(), input)
	needMore, err := decoder.Decode(n)
	req.NoError(err)
	req.False(needMore)

	req.NotNil(got)
	root := got.Item()
	req.Equal(2, root.Size())

	children, err := root.ToList()
	req.NoError(err)
	req.Len(children, 2)

	u2Values, err := children[0].ToUint()
	req.NoError(err)
	assert.Equal(t, []uint64{0x1234}, u2Values)

	assert.Equal(t, 0, children[1].Size())
	assert.True(t, children[1].IsList())
}

func TestStreamDecoder_ListOverflowRejected(t *testing.T) {
	req := require.New(t)

	decoder := NewStreamDecoder(64,
		func(header []byte) { t.Fatalf("unexpected control message: % x", header) },
		func(msg *DataMessage) { t.Fatalf("unexpected data message: %v", msg) },
	)

	// List format byte with a 2-byte length field (0x02), declaring 256 (0x01, 0x00) children.
	header := []byte{0x00, 0x00, 0x01, 0x02, 0x00, 0x00, 0x00, 0x00, 0x00, 0x03}
	itemTree := []byte{0x02, 0x01, 0x00}
	payloadLen := len(header) + len(itemTree)

	frame := make([]byte, 0, 4+payloadLen)
	frame = append(frame, 0, 0, byte(payloadLen>>8), byte(payloadLen)) //nolint:gosec
	frame = append(frame, header...)
	frame = append(frame, itemTree...)

	n := copy(decoder.BufferWriteSlice(), frame)
	_, err := decoder.Decode(n)
	req.Error(err)
	req.ErrorIs(err, ErrFrameCorrupt)
}

func TestStreamDecoder_SplitDelivery(t *testing.T) {
	req := require.New(t)

	emitted := 0
	var got *DataMessage
	decoder := NewStreamDecoder(64,
		func(header []byte) { t.Fatalf("unexpected control message: % x", header) },
		func(msg *DataMessage) { emitted++; got = msg },
	)

	input := nestedListFrame()
	for i, b := range input {
		slot := decoder.BufferWriteSlice()
		slot[0] = b
		needMore, err := decoder.Decode(1)
		req.NoError(err)

		if i < len(input)-1 {
			assert.Equal(t, 0, emitted, "byte %d: no message should be emitted yet", i)
			assert.True(t, needMore, "byte %d: decoder should still want more bytes", i)
		}
	}

	assert.Equal(t, 1, emitted)
	req.NotNil(got)
	assert.Equal(t, 2, got.Item().Size())
}

func TestStreamDecoder_ControlMessage(t *testing.T) {
	req := require.New(t)

	var gotHeader []byte
	decoder := NewStreamDecoder(64,
		func(header []byte) { gotHeader = header },
		func(msg *DataMessage) { t.Fatalf("unexpected data message: %v", msg) },
	)

	input := []byte{
		0x00, 0x00, 0x00, 0x0A,
		0xFF, 0xFF, 0x00, 0x00, 0x00, 0x05, 0x00, 0x00, 0x00, 0x07,
	}
	n := copy(decoder.BufferWriteSlice(), input)
	needMore, err := decoder.Decode(n)
	req.NoError(err)
	req.False(needMore)

	req.NotNil(gotHeader)
	assert.Equal(t, byte(LinkTestReqType), gotHeader[5])
	assert.Equal(t, input[4:], gotHeader)
}

func TestStreamDecoder_BufferGrowth(t *testing.T) {
	req := require.New(t)

	const payloadLen = 10_000

	var got *DataMessage
	decoder := NewStreamDecoder(64,
		func(header []byte) { t.Fatalf("unexpected control message: % x", header) },
		func(msg *DataMessage) { got = msg },
	)

	header := []byte{0x00, 0x00, 0x01, 0x02, 0x00, 0x00, 0x00, 0x00, 0x00, 0x09}
	asciiLen := payloadLen - HeaderSize - 3 // 1 format byte + 2 length bytes
	item := make([]byte, 3+asciiLen)
	item[0] = 0x42 // ASCIIFormatCode<<2 | 2 length bytes
	item[1] = byte(asciiLen >> 8) //nolint:gosec
	item[2] = byte(asciiLen)      //nolint:gosec
	for i := range asciiLen {
		item[3+i] = 'x'
	}

	frameLen := HeaderSize + len(item)
	frame := make([]byte, 4, 4+frameLen)
	frame[0] = byte(frameLen >> 24) //nolint:gosec
	frame[1] = byte(frameLen >> 16) //nolint:gosec
	frame[2] = byte(frameLen >> 8)  //nolint:gosec
	frame[3] = byte(frameLen)       //nolint:gosec
	frame = append(frame, header...)
	frame = append(frame, item...)

	firstSlot := decoder.BufferWriteSlice()
	req.Equal(64, len(firstSlot))
	firstChunk := frame[:len(firstSlot)]
	secondChunk := frame[len(firstSlot):]

	n := copy(firstSlot, firstChunk)
	needMore, err := decoder.Decode(n)
	req.NoError(err)
	req.True(needMore)
	req.Nil(got)

	slot := decoder.BufferWriteSlice()
	req.GreaterOrEqual(len(slot), len(secondChunk))
	req.GreaterOrEqual(cap(decoder.buffer), payloadLen)
	n = copy(slot, secondChunk)
	needMore, err = decoder.Decode(n)
	req.NoError(err)
	req.False(needMore)

	req.NotNil(got)
	text, err := got.Item().ToASCII()
	req.NoError(err)
	assert.Len(t, text, asciiLen)
}

func TestStreamDecoder_Reset(t *testing.T) {
	req := require.New(t)

	decoder := NewStreamDecoder(64,
		func(header []byte) {},
		func(msg *DataMessage) {},
	)

	input := []byte{0x00, 0x00, 0x00, 0x0A, 0x00, 0x01, 0x81, 0x0D, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01}
	n := copy(decoder.BufferWriteSlice(), input[:6])
	_, err := decoder.Decode(n)
	req.NoError(err)

	decoder.Reset()
	assert.Equal(t, 0, len(decoder.stack))

	var got *DataMessage
	decoder.onData = func(msg *DataMessage) { got = msg }
	n = copy(decoder.BufferWriteSlice(), input)
	needMore, err := decoder.Decode(n)
	req.NoError(err)
	req.False(needMore)
	req.NotNil(got)
}
