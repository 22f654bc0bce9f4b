package status

type Code uint16

// Status codes a client usually runs into. The list is by no means complete: any
// three-digit code is accepted from the wire.
const (
	Continue           Code = 100
	SwitchingProtocols Code = 101

	OK        Code = 200
	Created   Code = 201
	Accepted  Code = 202
	NoContent Code = 204

	MovedPermanently  Code = 301
	Found             Code = 302
	SeeOther          Code = 303
	NotModified       Code = 304
	TemporaryRedirect Code = 307
	PermanentRedirect Code = 308

	BadRequest       Code = 400
	Unauthorized     Code = 401
	Forbidden        Code = 403
	NotFound         Code = 404
	MethodNotAllowed Code = 405
	RequestTimeout   Code = 408
	TooManyRequests  Code = 429

	InternalServerError Code = 500
	NotImplemented      Code = 501
	BadGateway          Code = 502
	ServiceUnavailable  Code = 503
	GatewayTimeout      Code = 504
)

// Text returns a reason phrase for known codes and an empty string otherwise.
func Text(code Code) string {
	switch code {
	case Continue:
		return "Continue"
	case SwitchingProtocols:
		return "Switching Protocols"
	case OK:
		return "OK"
	case Created:
		return "Created"
	case Accepted:
		return "Accepted"
	case NoContent:
		return "No Content"
	case MovedPermanently:
		return "Moved Permanently"
	case Found:
		return "Found"
	case SeeOther:
		return "See Other"
	case NotModified:
		return "Not Modified"
	case TemporaryRedirect:
		return "Temporary Redirect"
	case PermanentRedirect:
		return "Permanent Redirect"
	case BadRequest:
		return "Bad Request"
	case Unauthorized:
		return "Unauthorized"
	case Forbidden:
		return "Forbidden"
	case NotFound:
		return "Not Found"
	case MethodNotAllowed:
		return "Method Not Allowed"
	case RequestTimeout:
		return "Request Timeout"
	case TooManyRequests:
		return "Too Many Requests"
	case InternalServerError:
		return "Internal Server Error"
	case NotImplemented:
		return "Not Implemented"
	case BadGateway:
		return "Bad Gateway"
	case ServiceUnavailable:
		return "Service Unavailable"
	case GatewayTimeout:
		return "Gateway Timeout"
	}

	return ""
}

// Valid reports whether the code lies in the range a status line may carry.
func Valid(code Code) bool {
	return code >= 100 && code <= 999
}
