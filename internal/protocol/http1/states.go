package http1

type readerState uint8

const (
	eStatusLine readerState = iota + 1
	eHeaders
	eBodyDispatch
	eChunkedBody
	eDone
)

func (s readerState) String() string {
	switch s {
	case eStatusLine:
		return "status line"
	case eHeaders:
		return "headers"
	case eBodyDispatch:
		return "body dispatch"
	case eChunkedBody:
		return "chunked body"
	case eDone:
		return "done"
	}

	return "unknown"
}
