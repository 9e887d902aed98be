package secs2

// SECS2Message represents a SECS-II message, defining a common interface for various SECS-II and HSMS
// message types.
//
// It provides methods for accessing essential attributes of a SECS-II message:
//   - Stream and Function Codes: 8-bit unsigned integers specifying the message category and function.
//   - Wait Bit: A boolean value indicating whether a reply is expected.
//   - Item: The SECS-II data item carried by the message.
//
// Session ID, system bytes, header access and byte serialization are not part of this interface;
// hsms.HSMSMessage adds them.
type SECS2Message interface {
	// StreamCode returns the stream code for the SECS-II message.
	StreamCode() uint8

	// FunctionCode returns the function code for the SECS-II message.
	FunctionCode() uint8

	// WaitBit() returns the boolean representation of W-Bit for the SECS-II message.
	WaitBit() bool

	// Item returns the SECS-II data item.
	Item() Item
}
