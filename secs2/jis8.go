package secs2

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/japanese"
)

var jis8Quote = '"'

// UseJIS8SingleQuote sets the quoting character for JIS-8 items in SML to a single quote (').
func UseJIS8SingleQuote() {
	jis8Quote = '\''
}

// UseJIS8DoubleQuote sets the quoting character for JIS-8 items in SML to a double quote (").
func UseJIS8DoubleQuote() {
	jis8Quote = '"'
}

// JIS8Quote returns the quote of JIS-8 items.
func JIS8Quote() rune {
	return jis8Quote
}

// JIS8Item represents a JIS-8 (SEMI E4 "code page 50222") string in a SECS-II message.
//
// It implements the Item interface, providing methods to interact with and manipulate the JIS-8 data.
// The value is held in memory as a Go string (UTF-8); ToBytes transcodes it to ISO-2022-JP bytes on
// the wire, and constructing from decoded bytes does the reverse.
//
// Immutability:
// For operations that should not modify the original item, use the `Clone()` method to create a new,
// independent copy of the item.
//
// Size and Value:
// The size of a JIS8Item is the number of bytes the value occupies once transcoded to ISO-2022-JP,
// not the number of UTF-8 runes in the Go string.
type JIS8Item struct {
	baseItem
	value string // the string value, stored as Go UTF-8
}

var _ Item = (*JIS8Item)(nil)

var sharedEmptyJIS8 = &JIS8Item{baseItem: baseItem{shared: true}}

// NewJIS8Item creates a new JIS8Item containing the given string.
//
// The value is validated by attempting to transcode it to ISO-2022-JP; if the string contains
// characters the encoding cannot represent, an error is set on the item.
//
// An empty value returns the process-wide shared empty JIS8Item instance instead of drawing one
// from the pool.
func NewJIS8Item(value string) Item {
	if value == "" {
		return sharedEmptyJIS8
	}

	item := getJIS8Item()
	_ = item.SetValues(value)
	return item
}

// Free releases the JIS8Item back to the pool for reuse.
//
// After calling Free, the JIS8Item should not be accessed or used again, as its underlying memory
// might be reused for other JIS8Item objects.
func (item *JIS8Item) Free() {
	putJIS8Item(item)
}

// Get implements Item.Get().
//
// It does not accept any index arguments as JIS8Item represents a single item, not a list.
func (item *JIS8Item) Get(indices ...int) (Item, error) {
	if len(indices) != 0 {
		err := fmt.Errorf("item is not a list, item is %s, indices is %v", item.ToSML(), indices)
		item.setError(err)
		return nil, err
	}

	return item, nil
}

// ToJIS8 retrieves the string value stored within the item.
func (item *JIS8Item) ToJIS8() (string, error) {
	return item.value, nil
}

// Values retrieves the string value as the any data format stored in the item.
//
// The returned value can be type-asserted to a `string`.
func (item *JIS8Item) Values() any {
	return item.value
}

// SetValues sets the string value for the item.
//
// This method implements the Item.SetValues() interface. It accepts one or more values, which
// must all be of type `string`. All provided string values are concatenated and stored within
// the item. The concatenated value must be representable in ISO-2022-JP; if any of the provided
// values are not of type `string`, or the value cannot be transcoded, an error is returned and
// also stored within the item for later retrieval.
func (item *JIS8Item) SetValues(values ...any) error {
	item.resetError()

	if item.shared {
		err := newItemErrorWithMsg("cannot modify the shared empty item instance")
		item.setError(err)
		return err
	}

	var itemValue string
	for _, value := range values {
		strVal, ok := value.(string)
		if !ok {
			err := newItemErrorWithMsg("the value is not a string")
			item.setError(err)
			return err
		}

		itemValue += strVal
	}

	encoded, err := japanese.ISO2022JP.NewEncoder().String(itemValue)
	if err != nil {
		item.setErrorMsg("string is not representable in JIS-8 (ISO-2022-JP)")
		return item.Error()
	}

	if len(encoded) > MaxByteSize {
		item.setErrorMsg("string length limit exceeded")
		return item.Error()
	}

	item.value = itemValue

	return nil
}

// Size implements Item.Size(). It returns the number of bytes the value occupies once transcoded
// to ISO-2022-JP, which is the SECS-II wire length for this item.
func (item *JIS8Item) Size() int {
	encoded, err := japanese.ISO2022JP.NewEncoder().String(item.value)
	if err != nil {
		return len(item.value)
	}
	return len(encoded)
}

// ToBytes serializes the JIS8Item into a byte slice conforming to the SECS-II data format,
// transcoding the stored string to ISO-2022-JP.
//
// This method implements the Item.ToBytes() interface.
func (item *JIS8Item) ToBytes() []byte {
	encoded, err := japanese.ISO2022JP.NewEncoder().String(item.value)
	if err != nil {
		item.setErrorMsg("failed to encode JIS-8 value")
		encoded = item.value
	}

	result, _ := getHeaderBytes(JIS8Type, len(encoded), len(encoded))
	return append(result, encoded...)
}

// ToSML converts the JIS8Item into its SML representation.
//
// This method implements the Item.ToSML() interface. It generates an SML string that
// represents the JIS-8 data stored in the item, using the `<J ...>` tag.
func (item *JIS8Item) ToSML() string {
	if item.value == "" {
		if jis8Quote == '"' {
			return "<J[0] \"\">"
		}

		return "<J[0] ''>"
	}

	var sb strings.Builder
	sizeStr := strconv.FormatInt(int64(item.Size()), 10)
	sb.Grow(len(item.value) + len(item.value)*3)

	sb.WriteString("<J[")
	sb.WriteString(sizeStr)
	sb.WriteString("] ")

	sb.WriteRune(jis8Quote)
	sb.WriteString(item.value)
	sb.WriteRune(jis8Quote)

	sb.WriteRune('>')

	return sb.String()
}

// Clone creates a deep copy of the JIS8Item.
//
// This method implements the Item.Clone() interface. It returns a new JIS8Item
// with the same string value as the original item. Since strings are immutable in Go,
// a simple copy of the `value` field is sufficient to create a deep copy.
func (item *JIS8Item) Clone() Item {
	return &JIS8Item{value: item.value}
}

// Matches implements Item.Matches(). An empty template (<J>, size 0) matches any JIS8Item;
// otherwise the values must compare equal.
func (item *JIS8Item) Matches(template Item) bool {
	other, ok := template.(*JIS8Item)
	if !ok {
		return false
	}
	if other.Size() == 0 {
		return true
	}
	return item.value == other.value
}

// Type returns "jis8" type string.
func (item *JIS8Item) Type() string { return JIS8Type }

// IsJIS8 returns true, indicating that JIS8Item is a JIS-8 data item.
func (item *JIS8Item) IsJIS8() bool { return true }
