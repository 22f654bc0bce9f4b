package method

type Method uint8

const (
	Unknown Method = iota
	GET
)

// Parse returns Unknown for anything but the supported methods.
func Parse(str string) Method {
	switch str {
	case "GET":
		return GET
	}

	return Unknown
}

// Name returns the wire representation of the method. The second value is false for any
// method that cannot be sent, so there is no placeholder name to accidentally leak on the wire.
func Name(m Method) (string, bool) {
	switch m {
	case GET:
		return "GET", true
	}

	return "", false
}

func (m Method) String() string {
	name, ok := Name(m)
	if !ok {
		return "Method(unknown)"
	}

	return name
}
