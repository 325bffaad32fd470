package util

import (
	"sort"
	"strings"
	"unicode"
)

// MakeTextList gives a nice English list of the given items, such as "x, y,
// and z". If articles is true, each item is given an indefinite article.
func MakeTextList(items []string, articles bool) string {
	if len(items) < 1 {
		return ""
	}

	withArts := make([]string, len(items))
	for i := range items {
		item := items[i]
		if articles && item != "" {
			art := ArticleFor(item, false)

			iRunes := []rune(item)
			leadingUpper := unicode.IsUpper(iRunes[0])
			allCaps := leadingUpper
			if leadingUpper && len(iRunes) > 1 {
				allCaps = unicode.IsUpper(iRunes[1])
			}

			if leadingUpper && !allCaps {
				// make the item lower case
				iRunes[0] = unicode.ToLower(iRunes[0])
				item = string(iRunes)
			}

			item = art + " " + item
		}
		withArts[i] = item
	}

	if len(withArts) == 1 {
		return withArts[0]
	} else if len(withArts) == 2 {
		return withArts[0] + " and " + withArts[1]
	}

	// if its more than two, use an oxford comma
	withArts[len(withArts)-1] = "and " + withArts[len(withArts)-1]
	return strings.Join(withArts, ", ")
}

// ArticleFor returns the article for the given string. It will be capitalized
// the same as the string. If definite is true, the returned value will be "the"
// capitalized as described; otherwise, it will be "a"/"an" capitalized as
// described.
func ArticleFor(s string, definite bool) string {
	sRunes := []rune(s)

	if len(sRunes) < 1 {
		return ""
	}

	leadingUpper := unicode.IsUpper(sRunes[0])
	allCaps := leadingUpper
	if leadingUpper && len(sRunes) > 1 {
		allCaps = unicode.IsUpper(sRunes[1])
	}

	if definite {
		if allCaps {
			return "THE"
		} else if leadingUpper {
			return "The"
		}
		return "the"
	}

	art := "a"
	if allCaps || leadingUpper {
		art = "A"
	}

	first := unicode.ToUpper(sRunes[0])
	if first == 'A' || first == 'E' || first == 'I' || first == 'O' || first == 'U' {
		if allCaps {
			art += "N"
		} else {
			art += "n"
		}
	}

	return art
}

// OrderedKeys returns the keys of m, ordered a particular way. The order is
// guaranteed to be the same on every run.
//
// As of this writing, the order is alphabetical, but this function does not
// guarantee this will always be the case.
func OrderedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

// SortBy sorts sl in place using the given less function and returns it. The
// sort is stable.
func SortBy[E any](sl []E, less func(left E, right E) bool) []E {
	sort.SliceStable(sl, func(i, j int) bool {
		return less(sl[i], sl[j])
	})
	return sl
}

// SliceIndexOf returns the index of the first occurance of v in sl, or -1 if
// it is not present.
func SliceIndexOf[E comparable](v E, sl []E) int {
	for i := range sl {
		if sl[i] == v {
			return i
		}
	}
	return -1
}

// SliceRemove returns a copy of sl with every occurance of v removed.
func SliceRemove[E comparable](v E, sl []E) []E {
	updated := make([]E, 0, len(sl))
	for i := range sl {
		if sl[i] != v {
			updated = append(updated, sl[i])
		}
	}
	return updated
}
