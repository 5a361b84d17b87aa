package checksum

// PaddingByte fills the tail of the input up to the word boundary.
const PaddingByte byte = 'X'

// PadLen returns the length n grows to once padded for width w.
func PadLen(n int, w Width) int {
	size := w.WordSize()
	if rem := n % size; rem != 0 {
		return n + size - rem
	}
	return n
}

// Pad returns data extended with PaddingByte up to the word boundary of w.
// data is never modified. When no padding is needed data itself is returned.
func Pad(data []byte, w Width) []byte {
	n := PadLen(len(data), w)
	if n == len(data) {
		return data
	}

	padded := make([]byte, n)
	copy(padded, data)
	for i := len(data); i < n; i++ {
		padded[i] = PaddingByte
	}
	return padded
}

// byteAt returns data[i], or PaddingByte past the end of data.
func byteAt(data []byte, i int) byte {
	if i < len(data) {
		return data[i]
	}
	return PaddingByte
}
