package tqerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_KindOf(t *testing.T) {
	testCases := []struct {
		name   string
		err    error
		expect Kind
	}{
		{
			name:   "nil error",
			err:    nil,
			expect: Unspecified,
		},
		{
			name:   "foreign error",
			err:    errors.New("bad"),
			expect: Unspecified,
		},
		{
			name:   "kind itself",
			err:    UnknownWord,
			expect: UnknownWord,
		},
		{
			name:   "created with kind",
			err:    New(NoMatchingUsage, "nope", ""),
			expect: NoMatchingUsage,
		},
		{
			name:   "wrapped by fmt",
			err:    fmt.Errorf("verb 2: %w", New(InvalidUsage, "nope", "")),
			expect: InvalidUsage,
		},
		{
			name:   "wrapped by WrapInterpreter",
			err:    WrapInterpreter(New(CategoryCollision, "inner", ""), "outer", ""),
			expect: CategoryCollision,
		},
		{
			name:   "Interpreter is unspecified",
			err:    Interpreter("game", "tech"),
			expect: Unspecified,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual := KindOf(tc.err)

			assert.Equal(tc.expect, actual)
		})
	}
}

func Test_ErrorsIs_Kind(t *testing.T) {
	assert := assert.New(t)

	err := fmt.Errorf("loading: %w", Newf(EmptyInput, "Speak up, %s.", "please"))

	assert.ErrorIs(err, EmptyInput)
	assert.NotErrorIs(err, NoValidWords)
}

func Test_GameMessage(t *testing.T) {
	testCases := []struct {
		name   string
		err    error
		expect string
	}{
		{
			name:   "foreign error gives Error()",
			err:    errors.New("something broke"),
			expect: "something broke",
		},
		{
			name:   "interpreter error",
			err:    New(UnknownWord, "I don't understand the word \"zorp\".", "unknown word"),
			expect: "I don't understand the word \"zorp\".",
		},
		{
			name:   "wrapped interpreter error",
			err:    fmt.Errorf("context: %w", Interpreterf("What do you want to %s?", "take")),
			expect: "What do you want to take?",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual := GameMessage(tc.err)

			assert.Equal(tc.expect, actual)
		})
	}
}

func Test_New_generatedTechnicalMessage(t *testing.T) {
	assert := assert.New(t)

	err := New(NoValidWords, "no words", "")

	assert.Equal("NoValidWords: no words", err.Error())
}

func Test_Kind_String(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("DuplicateDefinitionId", DuplicateDefinitionID.String())
	assert.Equal("IncompleteVerbUsage", IncompleteVerbUsage.String())
	assert.Equal("Kind(99)", Kind(99).String())
}

func Test_Kind_Registration(t *testing.T) {
	assert := assert.New(t)

	assert.True(DuplicateDefinitionID.Registration())
	assert.True(InvalidUsage.Registration())
	assert.False(EmptyInput.Registration())
	assert.False(UnknownWord.Registration())
}
