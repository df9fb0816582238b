package formatter

import (
	"strings"
	"time"
)

// strftimeLayouts maps the strftime directives the chat template uses onto Go
// reference-time layouts.
var strftimeLayouts = map[byte]string{
	'Y': "2006",
	'y': "06",
	'm': "01",
	'd': "02",
	'H': "15",
	'M': "04",
	'S': "05",
	'B': "January",
	'b': "Jan",
	'A': "Monday",
	'a': "Mon",
	'j': "002",
	'p': "PM",
	'Z': "MST",
}

// Strftime formats t according to a strftime-style format string. Unknown
// directives are passed through verbatim.
func Strftime(t time.Time, format string) string {
	var sb strings.Builder
	for i := 0; i < len(format); i++ {
		c := format[i]
		if c != '%' || i+1 >= len(format) {
			sb.WriteByte(c)
			continue
		}
		i++
		next := format[i]
		if next == '%' {
			sb.WriteByte('%')
			continue
		}
		if layout, ok := strftimeLayouts[next]; ok {
			sb.WriteString(t.Format(layout))
			continue
		}
		sb.WriteByte('%')
		sb.WriteByte(next)
	}
	return sb.String()
}
