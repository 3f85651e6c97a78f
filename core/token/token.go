// Package token splits raw input lines into argument vectors.
package token

import "strings"

// Delimiters is the set of separator characters used by the interactive
// loop.
const Delimiters = " \t\n"

// Fields splits line into the ordered list of maximal runs of
// non-delimiter bytes. The input string is never modified and no parse
// state is kept between calls, so independent call sites may tokenize
// concurrently. An empty or all-delimiter line yields an empty vector.
func Fields(line string, delims string) []string {
	var out []string
	start := -1
	for i := 0; i < len(line); i++ {
		if strings.IndexByte(delims, line[i]) >= 0 {
			if start >= 0 {
				out = append(out, line[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		out = append(out, line[start:])
	}
	return out
}
