package argcheck

import (
	"regexp"
	"strings"
)

// tokenPattern matches, in order of preference: a flag token, a double-quoted substring, or a run
// of non-whitespace characters.
var tokenPattern = regexp.MustCompile(`--\w+|"[^"]*"|\S+`)

// Tokenize splits a raw command line into the command name and its argument tokens. Quoted
// substrings become a single token with the quotes stripped. An empty line yields an empty name
// and no arguments.
func Tokenize(line string) (name string, args []string) {
	matches := tokenPattern.FindAllString(line, -1)
	if len(matches) == 0 {
		return "", nil
	}
	tokens := make([]string, 0, len(matches))
	for _, m := range matches {
		if len(m) >= 2 && strings.HasPrefix(m, `"`) && strings.HasSuffix(m, `"`) {
			m = m[1 : len(m)-1]
		}
		tokens = append(tokens, m)
	}
	return tokens[0], tokens[1:]
}
