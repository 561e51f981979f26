package internal

import "strings"

// SubstringBetween returns the text between the first occurrence of start and the first occurrence of end in
// input. Both markers are searched from the beginning of input; ok is false when either is missing or end
// occurs before start has finished.
func SubstringBetween(input, start, end string) (result string, ok bool) {
	i := strings.Index(input, start)
	if i < 0 {
		return "", false
	}
	begin := i + len(start)

	j := strings.Index(input, end)
	if j < begin {
		return "", false
	}
	return input[begin:j], true
}

// SubstringFrom returns input starting at the first occurrence of marker, marker included.
func SubstringFrom(input, marker string) (result string, ok bool) {
	i := strings.Index(input, marker)
	if i < 0 {
		return "", false
	}
	return input[i:], true
}
