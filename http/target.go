package http

import "github.com/indigo-web/utils/uf"

const hexDigits = "0123456789ABCDEF"

// EscapeTarget percent-encodes every byte of the request target that cannot appear on the
// wire as is: controls, space, DEL and non-ASCII. Already escaped sequences are left intact,
// and the string is returned without allocations if there's nothing to escape.
func EscapeTarget(target string) string {
	var (
		buff   []byte
		offset int
	)

	for i := 0; i < len(target); i++ {
		if sendable(target[i]) {
			continue
		}

		if buff == nil {
			buff = allocBuff(len(target))
		}

		buff = append(buff, target[offset:i]...)
		buff = append(buff, '%', hexDigits[target[i]>>4], hexDigits[target[i]&0xf])
		offset = i + 1
	}

	if len(buff) == 0 {
		return target
	}

	return uf.B2S(append(buff, target[offset:]...))
}

func sendable(c byte) bool {
	return c > 0x20 && c < 0x7f
}

func allocBuff(strsize int) []byte {
	if strsize <= 25 {
		return make([]byte, 0, 40)
	}

	return make([]byte, 0, strsize+strsize/2)
}
