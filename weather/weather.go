// Package weather implements the Weather Decoder (C4): mapping a numeric
// sample from a weather-coded grid, through a per-grid table of "ugly"
// encoded strings, into one of three output forms.
package weather

import "strconv"

// Mode selects the Weather Decoder's output form.
type Mode int

const (
	Raw Mode = iota
	English
	Simple
)

// Decode floors sample to an integer table index and renders table[index] in
// the requested mode. An out-of-range index is rendered as its decimal
// string regardless of mode.
func Decode(sample float64, table []string, mode Mode) string {
	index := int(sample)
	if index < 0 || index >= len(table) {
		return strconv.Itoa(index)
	}

	ugly := table[index]

	switch mode {
	case Raw:
		return ugly
	case English:
		return english(ugly)
	case Simple:
		return simple(ugly)
	default:
		return ugly
	}
}

// Tokens splits an ugly string into its weather words. Groups are separated
// by '^'; within a group, attribute fields are separated by '|' and each
// field is a distinct weather word. A trailing '^' with nothing after it
// contributes no additional (empty) group.
func Tokens(ugly string) []string {
	var words []string
	group := make([]byte, 0, len(ugly))

	flushGroup := func() {
		if len(group) == 0 {
			return
		}
		start := 0
		for i := 0; i <= len(group); i++ {
			if i == len(group) || group[i] == '|' {
				if i > start {
					words = append(words, string(group[start:i]))
				}
				start = i + 1
			}
		}
		group = group[:0]
	}

	for i := 0; i < len(ugly); i++ {
		if ugly[i] == '^' {
			flushGroup()
			continue
		}
		group = append(group, ugly[i])
	}
	flushGroup()

	return words
}

// english renders an ugly string's words joined by ", " between non-final
// pairs and " and " before the final word, translating each raw word through
// englishWords where a translation is known. A parse yielding no words
// renders as "No Weather".
func english(ugly string) string {
	rawWords := Tokens(ugly)
	if len(rawWords) == 0 {
		return "No Weather"
	}

	words := make([]string, len(rawWords))
	for i, w := range rawWords {
		if translated, ok := englishWords[w]; ok {
			words[i] = translated
		} else {
			words[i] = w
		}
	}

	return joinEnglish(words)
}

func joinEnglish(words []string) string {
	switch len(words) {
	case 0:
		return "No Weather"
	case 1:
		return words[0]
	}

	result := words[0]
	for i := 1; i < len(words)-1; i++ {
		result += ", " + words[i]
	}
	result += " and " + words[len(words)-1]
	return result
}

// simple renders the decimal form of the parsed simple-code: the count of
// weather words the ugly string decodes to.
func simple(ugly string) string {
	return strconv.Itoa(len(Tokens(ugly)))
}

// englishWords maps known raw NDFD weather attribute codes to their English
// rendering. Unknown codes pass through Tokens verbatim.
var englishWords = map[string]string{
	"SChc": "Slight Chance",
	"Chc":  "Chance",
	"Lkly": "Likely",
	"Def":  "Definite",
	"Iso":  "Isolated",
	"Sct":  "Scattered",
	"Num":  "Numerous",
	"Wide": "Widespread",
	"Ocnl": "Occasional",
	"SVR":  "Severe",
}
