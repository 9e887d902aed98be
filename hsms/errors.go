package hsms

import "errors"

var (
	// ErrInvalidStreamCode indicates that an invalid stream code was provided.
	// Valid stream codes are in the range of 0 to 127.
	ErrInvalidStreamCode = errors.New("invalid stream code, should be in range of [0, 127]")

	// ErrInvalidWaitBit indicates that an invalid wait bit value was provided.
	// The wait bit should be either 0 or 1.
	ErrInvalidWaitBit = errors.New("invalid wait bit, should be 0 or 1")

	// ErrInvalidSystemBytes indicates that invalid system bytes were provided.
	// System bytes should be a 4-byte array.
	ErrInvalidSystemBytes = errors.New("invalid system bytes, length is not 4")

	// ErrInvalidRspMsg indicates that the message is not a valid response/secondary message.
	ErrInvalidRspMsg = errors.New("message is not a valid response/secondary message")
)

var (
	// ErrInvalidHeaderLength indicates that a header byte slice of the wrong size was
	// supplied to SetHeader. HSMS headers are always exactly HeaderSize bytes.
	ErrInvalidHeaderLength = errors.New("invalid header length, should be 10 bytes")

	// ErrInvalidPType indicates that a header's PType byte was not the SECS-II presentation
	// type (0).
	ErrInvalidPType = errors.New("invalid ptype, only SECS-II (0) is supported")

	// ErrInvalidDataMsgSType indicates that a header's SType byte does not identify a
	// data message.
	ErrInvalidDataMsgSType = errors.New("invalid stype for a data message")

	// ErrInvalidControlMsgSType indicates that a header's SType byte does not identify a
	// recognized control message subtype.
	ErrInvalidControlMsgSType = errors.New("invalid stype for a control message")
)

// ErrBadFormatCode indicates that a SECS-II item's format byte does not correspond to any
// known format code, or encodes a zero-length length-bytes count.
var ErrBadFormatCode = errors.New("bad format code")

// ErrFrameCorrupt indicates that the frame has a negative or oversize item length, or that
// messageDataLength underflowed while consuming the item tree. Framing alignment is lost;
// the session must be torn down rather than resynchronized in-band.
var ErrFrameCorrupt = errors.New("frame corrupt")
