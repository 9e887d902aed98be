package hsms

import (
	"encoding/binary"
	"fmt"
	"math"

	"golang.org/x/text/encoding/japanese"

	"github.com/sumika-fab/secscore/internal/util"
	"github.com/sumika-fab/secscore/secs2"
)

// defaultInitialBufferBytes is used when NewStreamDecoder is given a non-positive size.
const defaultInitialBufferBytes = 4096

// stage identifies a step of the StreamDecoder's pipeline.
type stage int

const (
	stageFrameLength stage = iota
	stageHeader
	stageItemFormat
	stageItemLength
	stageItemPayload
)

// ControlMessageFunc is invoked synchronously from Decode whenever a complete HSMS control
// message header has been assembled.
type ControlMessageFunc func(header []byte)

// DataMessageFunc is invoked synchronously from Decode whenever a complete HSMS data message
// has been assembled.
type DataMessageFunc func(msg *DataMessage)

// listBuilder accumulates the children of a list item that is still being decoded.
type listBuilder struct {
	children []secs2.Item
	capacity int
}

func (b *listBuilder) full() bool {
	return len(b.children) >= b.capacity
}

type streamDecoderOptions struct {
	maxListDepth int
}

// StreamDecoderOption configures a StreamDecoder at construction time.
type StreamDecoderOption func(*streamDecoderOptions)

// WithMaxListDepth overrides the default nesting-depth limit (MaxListDepth) enforced while
// decoding a list item tree.
func WithMaxListDepth(depth int) StreamDecoderOption {
	return func(o *streamDecoderOptions) {
		if depth > 0 {
			o.maxListDepth = depth
		}
	}
}

// StreamDecoder incrementally decodes a byte stream carrying length-prefixed HSMS frames.
//
// It is single-owner, single-threaded: one goroutine writes into BufferWriteSlice and calls
// Decode. There is no internal locking. Control and data messages are reported synchronously,
// from within Decode, via the callbacks supplied to NewStreamDecoder; those callbacks must not
// call back into Decode on the same instance.
type StreamDecoder struct {
	onControl ControlMessageFunc
	onData    DataMessageFunc
	buffer    []byte
	stack     []*listBuilder

	opts streamDecoderOptions

	writeOffset           int
	decodeIndex           int
	previousRemainedCount int
	messageDataLength     int
	itemLength            int
	lengthBits            int
	stage                 stage
	format                byte
	msgHeader             [HeaderSize]byte
}

// NewStreamDecoder creates a StreamDecoder with the given initial receive-buffer size.
//
// onControl is called whenever a control message header is fully assembled, onData whenever a
// data message is fully assembled. Neither may be nil.
func NewStreamDecoder(initialBufferBytes int, onControl ControlMessageFunc, onData DataMessageFunc, opts ...StreamDecoderOption) *StreamDecoder {
	if initialBufferBytes <= 0 {
		initialBufferBytes = defaultInitialBufferBytes
	}

	d := &StreamDecoder{
		buffer:    make([]byte, initialBufferBytes),
		onControl: onControl,
		onData:    onData,
		opts:      streamDecoderOptions{maxListDepth: MaxListDepth},
	}

	for _, opt := range opts {
		opt(&d.opts)
	}

	return d
}

// BufferWriteSlice returns the portion of the receive buffer the caller should read into next.
// The caller writes at most len(result) bytes starting at index 0 of the returned slice, then
// reports how many it actually wrote via Decode.
func (d *StreamDecoder) BufferWriteSlice() []byte {
	return d.buffer[d.writeOffset:]
}

// Reset clears all decoder state without releasing the receive buffer, so the instance can be
// handed to a fresh connection.
func (d *StreamDecoder) Reset() {
	d.writeOffset = 0
	d.decodeIndex = 0
	d.previousRemainedCount = 0
	d.messageDataLength = 0
	d.itemLength = 0
	d.lengthBits = 0
	d.format = 0
	d.stage = stageFrameLength
	d.stack = d.stack[:0]
}

// Decode advances the pipeline using writtenByteCount freshly-written bytes at the tail of
// BufferWriteSlice's previous result. It returns true if a frame is still in progress and more
// bytes are required to complete it, and a non-nil error if framing has been lost (BadFormatCode
// or FrameCorrupt in spec terms); once Decode returns an error the decoder must not be reused
// without a Reset, since the underlying session should be torn down.
func (d *StreamDecoder) Decode(writtenByteCount int) (bool, error) {
	filledEnd := d.writeOffset + writtenByteCount

	need := 0
	for {
		progressed, n, err := d.step(filledEnd)
		if err != nil {
			return false, err
		}
		need = n
		if !progressed {
			break
		}
	}

	d.rebalance(filledEnd, need)

	return d.messageDataLength > 0 || d.previousRemainedCount > 0, nil
}

// rebalance implements the buffer growth/compaction policy of spec.md §4.2. The exact capacity
// growth sequence is not a contract (only that the buffer eventually accommodates `need` more
// bytes), so this is free to diverge from a literal port as long as the invariants hold.
func (d *StreamDecoder) rebalance(filledEnd, need int) {
	remained := filledEnd - d.decodeIndex

	if remained == 0 {
		d.decodeIndex = 0
		d.writeOffset = 0
		d.previousRemainedCount = 0

		if need > len(d.buffer) {
			d.buffer = make([]byte, 2*need)
		}

		return
	}

	required := remained + need
	switch {
	case required > len(d.buffer):
		newCap := max(d.messageDataLength/2, required) * 2
		newBuf := make([]byte, newCap)
		copy(newBuf, d.buffer[d.decodeIndex:filledEnd])
		d.buffer = newBuf
		d.decodeIndex = 0
		d.writeOffset = remained

	case required > len(d.buffer)-filledEnd:
		copy(d.buffer, d.buffer[d.decodeIndex:filledEnd])
		d.decodeIndex = 0
		d.writeOffset = remained

	default:
		d.writeOffset = filledEnd
	}

	d.previousRemainedCount = remained
}

// step attempts to run the current stage once. progressed is false when the stage needs more
// bytes than are currently available (avail < required); need then reports the shortfall.
func (d *StreamDecoder) step(filledEnd int) (progressed bool, need int, err error) { //nolint:cyclop
	avail := filledEnd - d.decodeIndex

	switch d.stage {
	case stageFrameLength:
		if avail < LengthFieldSize {
			return false, LengthFieldSize - avail, nil
		}
		d.messageDataLength = int(binary.BigEndian.Uint32(d.buffer[d.decodeIndex:]))
		d.decodeIndex += LengthFieldSize
		d.stage = stageHeader

		return true, 0, nil

	case stageHeader:
		return d.stepHeader(filledEnd, avail)

	case stageItemFormat:
		if avail < 1 {
			return false, 1, nil
		}
		b := d.buffer[d.decodeIndex]
		d.decodeIndex++
		d.messageDataLength--
		d.format = b & 0xFC

		if d.messageDataLength < 0 {
			return false, 0, fmt.Errorf("%w: messageDataLength underflow reading item format", ErrFrameCorrupt)
		}

		d.lengthBits = int(b & 0x03)
		if d.lengthBits == 0 {
			return false, 0, fmt.Errorf("%w: zero length-bytes count", ErrBadFormatCode)
		}
		d.stage = stageItemLength

		return true, 0, nil

	case stageItemLength:
		if avail < d.lengthBits {
			return false, d.lengthBits - avail, nil
		}

		length := 0
		for i := range d.lengthBits {
			length = length<<8 | int(d.buffer[d.decodeIndex+i])
		}
		d.decodeIndex += d.lengthBits
		d.messageDataLength -= d.lengthBits

		if length < 0 || length > secs2.MaxByteSize || d.messageDataLength < 0 {
			return false, 0, fmt.Errorf("%w: item length %d out of range", ErrFrameCorrupt, length)
		}
		d.itemLength = length
		d.stage = stageItemPayload

		return true, 0, nil

	case stageItemPayload:
		return d.stepItemPayload(filledEnd)

	default:
		return false, 0, fmt.Errorf("unreachable decoder stage %d", d.stage)
	}
}

func (d *StreamDecoder) stepHeader(filledEnd, avail int) (bool, int, error) {
	if avail < HeaderSize {
		return false, HeaderSize - avail, nil
	}

	if d.messageDataLength < HeaderSize {
		return false, 0, fmt.Errorf("%w: messageDataLength %d shorter than header", ErrFrameCorrupt, d.messageDataLength)
	}

	copy(d.msgHeader[:], d.buffer[d.decodeIndex:d.decodeIndex+HeaderSize])
	d.decodeIndex += HeaderSize
	d.messageDataLength -= HeaderSize

	if d.msgHeader[4] != 0 {
		return false, 0, fmt.Errorf("%w: %d", ErrInvalidPType, d.msgHeader[4])
	}

	if d.messageDataLength == 0 {
		if err := d.emitHeaderOnly(); err != nil {
			return false, 0, err
		}
		d.stage = stageFrameLength

		return true, 0, nil
	}

	if d.msgHeader[5] != DataMsgType {
		return false, 0, fmt.Errorf("%w: control message with non-empty item tree", ErrFrameCorrupt)
	}

	if filledEnd-d.decodeIndex >= d.messageDataLength {
		item, err := d.decodeItemTreeInline(d.messageDataLength)
		if err != nil {
			return false, 0, err
		}
		d.decodeIndex += d.messageDataLength
		d.messageDataLength = 0

		if err := d.emitDataMessage(item); err != nil {
			return false, 0, err
		}
		d.stage = stageFrameLength

		return true, 0, nil
	}

	d.stage = stageItemFormat

	return true, 0, nil
}

func (d *StreamDecoder) stepItemPayload(filledEnd int) (bool, int, error) {
	if secs2.FormatCode(d.format>>2) == secs2.ListFormatCode {
		if d.itemLength == 0 {
			return d.completeItem(secs2.NewListItem())
		}

		if d.itemLength > secs2.MaxListChildren {
			return false, 0, fmt.Errorf("%w: list declares %d children", ErrFrameCorrupt, d.itemLength)
		}

		if len(d.stack) >= d.opts.maxListDepth {
			return false, 0, fmt.Errorf("%w: list nesting exceeds %d", ErrFrameCorrupt, d.opts.maxListDepth)
		}

		d.stack = append(d.stack, &listBuilder{capacity: d.itemLength, children: make([]secs2.Item, 0, d.itemLength)})
		d.stage = stageItemFormat

		return true, 0, nil
	}

	avail := filledEnd - d.decodeIndex
	if avail < d.itemLength {
		return false, d.itemLength - avail, nil
	}

	raw := d.buffer[d.decodeIndex : d.decodeIndex+d.itemLength]
	item, err := decodeItemPayload(secs2.FormatCode(d.format>>2), raw)
	if err != nil {
		return false, 0, err
	}

	d.decodeIndex += d.itemLength
	d.messageDataLength -= d.itemLength

	if d.messageDataLength < 0 {
		return false, 0, fmt.Errorf("%w: messageDataLength underflow reading item payload", ErrFrameCorrupt)
	}

	return d.completeItem(item)
}

// completeItem hands a freshly decoded leaf (or empty list) item to the enclosing list builder,
// popping and materializing completed builders until either the stack is empty (the item is the
// message root) or the new top builder still has room for more children.
func (d *StreamDecoder) completeItem(item secs2.Item) (bool, int, error) {
	for {
		if len(d.stack) == 0 {
			if err := d.emitDataMessage(item); err != nil {
				return false, 0, err
			}
			d.stage = stageFrameLength

			return true, 0, nil
		}

		top := d.stack[len(d.stack)-1]
		top.children = append(top.children, item)

		if !top.full() {
			d.stage = stageItemFormat

			return true, 0, nil
		}

		d.stack = d.stack[:len(d.stack)-1]
		item = secs2.NewListItem(top.children...)
	}
}

// decodeItemTreeInline decodes a complete item tree that is already wholly present in the
// buffer, reusing the whole-buffer decoder's scratch-pooled logic.
func (d *StreamDecoder) decodeItemTreeInline(length int) (secs2.Item, error) {
	inner, _ := decoderPool.Get().(*hsmsDecoder)
	inner.msgLen = uint32(HeaderSize + length) //nolint:gosec
	inner.input = d.buffer[d.decodeIndex : d.decodeIndex+length]
	inner.pos = 0
	inner.depth = 0

	item, err := inner.decodeMessageText()
	decoderPool.Put(inner)

	return item, err
}

func (d *StreamDecoder) emitHeaderOnly() error {
	header := d.msgHeader[:]
	if header[5] != DataMsgType {
		d.onControl(util.CloneSlice(header, HeaderSize))
		return nil
	}

	sessionID := binary.BigEndian.Uint16(header[:2])
	stream := header[2] & 0x7F
	function := header[3]
	systemBytes := header[6:10]
	replyExpected := (header[2] >> 7) != WaitBitFalse

	msg, err := NewDataMessage(stream, function, replyExpected, sessionID, systemBytes, secs2.NewEmptyItem())
	if err != nil {
		return err
	}
	d.onData(msg)

	return nil
}

func (d *StreamDecoder) emitDataMessage(item secs2.Item) error {
	header := d.msgHeader[:]
	sessionID := binary.BigEndian.Uint16(header[:2])
	stream := header[2] & 0x7F
	function := header[3]
	systemBytes := header[6:10]
	replyExpected := (header[2] >> 7) != WaitBitFalse

	msg, err := NewDataMessage(stream, function, replyExpected, sessionID, systemBytes, item)
	if err != nil {
		return err
	}
	d.onData(msg)

	return nil
}

// decodeItemPayload decodes the payload bytes of a non-list item already fully buffered in raw.
func decodeItemPayload(format secs2.FormatCode, raw []byte) (secs2.Item, error) { //nolint:cyclop
	switch format {
	case secs2.ASCIIFormatCode:
		return secs2.NewASCIIItem(string(raw)), nil

	case secs2.JIS8FormatCode:
		decoded, err := japanese.ISO2022JP.NewDecoder().String(string(raw))
		if err != nil {
			return nil, fmt.Errorf("decode JIS8 item: %w", err)
		}

		return secs2.NewJIS8Item(decoded), nil

	case secs2.BinaryFormatCode:
		return secs2.NewBinaryItem(util.CloneSlice(raw, 0)), nil

	case secs2.BooleanFormatCode:
		values := make([]bool, len(raw))
		for i, b := range raw {
			values[i] = b != 0
		}

		return secs2.NewBooleanItem(values), nil

	case secs2.Int8FormatCode:
		return decodeIntItem(1, raw)
	case secs2.Int16FormatCode:
		return decodeIntItem(2, raw)
	case secs2.Int32FormatCode:
		return decodeIntItem(4, raw)
	case secs2.Int64FormatCode:
		return decodeIntItem(8, raw)

	case secs2.Uint8FormatCode:
		return decodeUintItem(1, raw)
	case secs2.Uint16FormatCode:
		return decodeUintItem(2, raw)
	case secs2.Uint32FormatCode:
		return decodeUintItem(4, raw)
	case secs2.Uint64FormatCode:
		return decodeUintItem(8, raw)

	case secs2.Float32FormatCode:
		return decodeFloatItem(4, raw)
	case secs2.Float64FormatCode:
		return decodeFloatItem(8, raw)

	default:
		return nil, ErrBadFormatCode
	}
}

func decodeIntItem(byteSize int, raw []byte) (secs2.Item, error) {
	if len(raw)%byteSize != 0 {
		return nil, fmt.Errorf("%w: length %d not a multiple of %d", ErrFrameCorrupt, len(raw), byteSize)
	}

	count := len(raw) / byteSize
	values := make([]int64, count)
	for i := range count {
		start := i * byteSize
		switch byteSize {
		case 1:
			values[i] = int64(int8(raw[start]))
		case 2:
			values[i] = int64(int16(binary.BigEndian.Uint16(raw[start:]))) //nolint:gosec
		case 4:
			values[i] = int64(int32(binary.BigEndian.Uint32(raw[start:]))) //nolint:gosec
		case 8:
			values[i] = int64(binary.BigEndian.Uint64(raw[start:])) //nolint:gosec
		}
	}

	return secs2.NewIntItem(byteSize, values), nil
}

func decodeUintItem(byteSize int, raw []byte) (secs2.Item, error) {
	if len(raw)%byteSize != 0 {
		return nil, fmt.Errorf("%w: length %d not a multiple of %d", ErrFrameCorrupt, len(raw), byteSize)
	}

	count := len(raw) / byteSize
	values := make([]uint64, count)
	for i := range count {
		start := i * byteSize
		switch byteSize {
		case 1:
			values[i] = uint64(raw[start])
		case 2:
			values[i] = uint64(binary.BigEndian.Uint16(raw[start:]))
		case 4:
			values[i] = uint64(binary.BigEndian.Uint32(raw[start:]))
		case 8:
			values[i] = binary.BigEndian.Uint64(raw[start:])
		}
	}

	return secs2.NewUintItem(byteSize, values), nil
}

func decodeFloatItem(byteSize int, raw []byte) (secs2.Item, error) {
	if len(raw)%byteSize != 0 {
		return nil, fmt.Errorf("%w: length %d not a multiple of %d", ErrFrameCorrupt, len(raw), byteSize)
	}

	count := len(raw) / byteSize
	values := make([]float64, count)
	for i := range count {
		start := i * byteSize
		if byteSize == 4 {
			values[i] = float64(math.Float32frombits(binary.BigEndian.Uint32(raw[start:])))
		} else {
			values[i] = math.Float64frombits(binary.BigEndian.Uint64(raw[start:]))
		}
	}

	return secs2.NewFloatItem(byteSize, values), nil
}
