package http1

// maxHexDigits is the longest chunk size that still fits into uint64.
const maxHexDigits = 16

// hexTable holds char value + 1 for valid hex chars, 0 otherwise.
var hexTable = [256]byte{
	'0': 0x1, '1': 0x2, '2': 0x3, '3': 0x4, '4': 0x5,
	'5': 0x6, '6': 0x7, '7': 0x8, '8': 0x9, '9': 0xa,
	'a': 0xb, 'b': 0xc, 'c': 0xd, 'd': 0xe, 'e': 0xf, 'f': 0x10,
	'A': 0xb, 'B': 0xc, 'C': 0xd, 'D': 0xe, 'E': 0xf, 'F': 0x10,
}

// parseHex accepts nothing but hex digits: no sign, no prefix, no whitespace and no
// trailing garbage.
func parseHex(digits []byte) (n uint64, ok bool) {
	if len(digits) == 0 || len(digits) > maxHexDigits {
		return 0, false
	}

	for _, char := range digits {
		value := hexTable[char]
		if value == 0 {
			return 0, false
		}

		n = n<<4 | uint64(value-1)
	}

	return n, true
}
