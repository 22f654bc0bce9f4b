// Package html reads tag boundaries out of an HTML document. It builds no tree and knows
// nothing about the semantics of elements except for the raw text ones, whose content is
// skipped as a whole.
package html

import (
	"iter"
	"strings"

	"github.com/indigo-web/utils/strcomp"
	"github.com/pkg/errors"
)

var (
	ErrUnterminated = errors.New("unterminated markup")
	ErrEmptyName    = errors.New("tag without a name")
	ErrNoRoot       = errors.New("document has no root element")
)

type Tag struct {
	Name       string
	Attributes string
	Closing    bool
	// SelfClosing is set for tags ending with `/>`, like <br/>.
	SelfClosing bool
}

// Tags yields every opening and closing tag in the order of appearance. Comments, the doctype
// and processing instructions are skipped, as is the content of <script> and <style>. The
// iteration stops after the first error.
func Tags(src string) iter.Seq2[Tag, error] {
	return func(yield func(Tag, error) bool) {
		offset := 0

		for {
			start := strings.IndexByte(src[offset:], '<')
			if start == -1 {
				return
			}

			offset += start
			rest := src[offset:]

			switch {
			case strings.HasPrefix(rest, "<!--"):
				end := strings.Index(rest, "-->")
				if end == -1 {
					yield(Tag{}, errors.Wrapf(ErrUnterminated, "comment at %d", offset))
					return
				}

				offset += end + len("-->")
				continue
			case strings.HasPrefix(rest, "<!"), strings.HasPrefix(rest, "<?"):
				end := strings.IndexByte(rest, '>')
				if end == -1 {
					yield(Tag{}, errors.Wrapf(ErrUnterminated, "declaration at %d", offset))
					return
				}

				offset += end + 1
				continue
			}

			if len(rest) < 2 || !isTagStart(rest[1]) {
				// a lone `<` in text
				offset++
				continue
			}

			end := tagEnd(rest)
			if end == -1 {
				yield(Tag{}, errors.Wrapf(ErrUnterminated, "tag at %d", offset))
				return
			}

			tag, err := parseTag(rest[1:end])
			if err != nil {
				yield(Tag{}, errors.Wrapf(err, "tag at %d", offset))
				return
			}

			if !yield(tag, nil) {
				return
			}

			offset += end + 1

			if !tag.Closing && !tag.SelfClosing && isRawText(tag.Name) {
				closing := indexFold(src[offset:], "</"+tag.Name)
				if closing == -1 {
					yield(Tag{}, errors.Wrapf(ErrUnterminated, "<%s> content at %d", tag.Name, offset))
					return
				}

				offset += closing
			}
		}
	}
}

// Root returns the first element of the document, skipping the preamble.
func Root(src string) (Tag, error) {
	for tag, err := range Tags(src) {
		if err != nil {
			return Tag{}, err
		}

		if !tag.Closing {
			return tag, nil
		}
	}

	return Tag{}, ErrNoRoot
}

// tagEnd returns the index of the closing angle bracket. Brackets inside quoted attribute
// values don't count.
func tagEnd(rest string) int {
	var quote byte

	for i := 1; i < len(rest); i++ {
		switch char := rest[i]; {
		case quote != 0:
			if char == quote {
				quote = 0
			}
		case char == '"' || char == '\'':
			quote = char
		case char == '>':
			return i
		}
	}

	return -1
}

func parseTag(inner string) (tag Tag, err error) {
	if strings.HasPrefix(inner, "/") {
		tag.Closing = true
		inner = inner[1:]
	}

	if strings.HasSuffix(inner, "/") {
		tag.SelfClosing = true
		inner = inner[:len(inner)-1]
	}

	name, attributes, _ := strings.Cut(inner, " ")
	if i := strings.IndexAny(name, "\t\r\n"); i != -1 {
		name, attributes = inner[:i], inner[i+1:]
	}

	if len(name) == 0 {
		return Tag{}, ErrEmptyName
	}

	tag.Name = name
	tag.Attributes = strings.TrimSpace(attributes)

	return tag, nil
}

func isRawText(name string) bool {
	return strcomp.EqualFold(name, "script") || strcomp.EqualFold(name, "style")
}

func isTagStart(char byte) bool {
	return char == '/' || (char|0x20 >= 'a' && char|0x20 <= 'z')
}

func indexFold(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if strcomp.EqualFold(s[i:i+len(substr)], substr) {
			return i
		}
	}

	return -1
}
