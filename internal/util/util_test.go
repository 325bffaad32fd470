package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_MakeTextList(t *testing.T) {
	testCases := []struct {
		name     string
		items    []string
		articles bool
		expect   string
	}{
		{
			name:   "empty",
			items:  nil,
			expect: "",
		},
		{
			name:   "one item",
			items:  []string{"lamp"},
			expect: "lamp",
		},
		{
			name:   "two items",
			items:  []string{"lamp", "key"},
			expect: "lamp and key",
		},
		{
			name:   "three items",
			items:  []string{"lamp", "key", "sword"},
			expect: "lamp, key, and sword",
		},
		{
			name:     "with articles",
			items:    []string{"Apple", "key"},
			articles: true,
			expect:   "an apple and a key",
		},
		{
			name:     "all caps keeps case",
			items:    []string{"NPC"},
			articles: true,
			expect:   "an NPC",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual := MakeTextList(tc.items, tc.articles)

			assert.Equal(tc.expect, actual)
		})
	}
}

func Test_ArticleFor(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		definite bool
		expect   string
	}{
		{name: "empty", input: "", expect: ""},
		{name: "consonant", input: "lamp", expect: "a"},
		{name: "vowel", input: "egg", expect: "an"},
		{name: "leading upper", input: "Egg", expect: "An"},
		{name: "all caps", input: "EGG", expect: "AN"},
		{name: "definite", input: "lamp", definite: true, expect: "the"},
		{name: "definite leading upper", input: "Lamp", definite: true, expect: "The"},
		{name: "definite all caps", input: "LAMP", definite: true, expect: "THE"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual := ArticleFor(tc.input, tc.definite)

			assert.Equal(tc.expect, actual)
		})
	}
}

func Test_SliceHelpers(t *testing.T) {
	assert := assert.New(t)

	sl := []string{"b", "a", "c", "a"}

	assert.Equal(1, SliceIndexOf("a", sl))
	assert.Equal(-1, SliceIndexOf("z", sl))
	assert.Equal([]string{"b", "c"}, SliceRemove("a", sl))
	assert.Equal([]string{"a", "b", "c"}, OrderedKeys(map[string]int{"c": 1, "a": 2, "b": 3}))

	type pair struct {
		key string
		val int
	}
	pairs := []pair{{"x", 2}, {"y", 1}, {"z", 2}}
	SortBy(pairs, func(l, r pair) bool { return l.val < r.val })
	assert.Equal([]pair{{"y", 1}, {"x", 2}, {"z", 2}}, pairs)
}
