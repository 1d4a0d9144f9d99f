package council

import (
	"strings"
	"unicode/utf8"
)

var suffixes = map[string]bool{
	"jr": true, "sr": true, "ii": true, "iii": true, "iv": true, "v": true,
}

// splitName returns the first name, surname and generational suffix of a
// full name. Single-token names are returned as the surname.
func splitName(name string) (first, surname, suffix string) {
	tokens := strings.Fields(strings.ReplaceAll(name, ",", " "))
	if len(tokens) == 0 {
		return "", "", ""
	}
	if n := len(tokens); n > 2 && suffixes[strings.ToLower(strings.TrimSuffix(tokens[n-1], "."))] {
		suffix = tokens[n-1]
		tokens = tokens[:n-1]
	}
	surname = tokens[len(tokens)-1]
	if len(tokens) > 1 {
		first = tokens[0]
	}
	return first, surname, suffix
}

func join(parts ...string) string {
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}

// ShortNames derives a display name for each full name: the surname, with
// any generational suffix kept ("Doe III"). Members sharing a surname are
// qualified with their first initial ("J. Doe"); if that still collides the
// full name is used.
func ShortNames(names []string) map[string]string {
	bySurname := make(map[string][]string)
	for _, n := range names {
		_, surname, _ := splitName(n)
		key := strings.ToLower(surname)
		bySurname[key] = append(bySurname[key], n)
	}

	out := make(map[string]string, len(names))
	for _, group := range bySurname {
		if len(group) == 1 {
			_, surname, suffix := splitName(group[0])
			out[group[0]] = join(surname, suffix)
			continue
		}
		qualified := make(map[string]string, len(group))
		count := make(map[string]int, len(group))
		for _, n := range group {
			first, surname, suffix := splitName(n)
			q := join(surname, suffix)
			if first != "" {
				r, _ := utf8.DecodeRuneInString(first)
				q = join(string(r)+".", surname, suffix)
			}
			qualified[n] = q
			count[q]++
		}
		for _, n := range group {
			if count[qualified[n]] > 1 {
				out[n] = n
				continue
			}
			out[n] = qualified[n]
		}
	}
	return out
}
