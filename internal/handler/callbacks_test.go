package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanCallbackData(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "chip word",
			input:    "feline",
			expected: "feline",
		},
		{
			name:     "chip word with padding",
			input:    "  kitty  ",
			expected: "kitty",
		},
		{
			name:     "raw button data",
			input:    "\fword|cat",
			expected: "word|cat",
		},
		{
			name:     "control characters inside chip word",
			input:    "ca\x00t\x1b",
			expected: "cat",
		},
		{
			name:     "newline and tab inside chip word",
			input:    "\tdo\ng\n",
			expected: "dog",
		},
		{
			name:     "multi word chip keeps spaces",
			input:    "house cat",
			expected: "house cat",
		},
		{
			name:     "only control characters",
			input:    "\x00\x01\x7f",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := cleanCallbackData(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestSplitCallback(t *testing.T) {
	tests := []struct {
		name            string
		unique          string
		data            string
		expectedUnique  string
		expectedPayload string
	}{
		{
			name:            "unique already matched",
			unique:          btnWord.Unique,
			data:            "cat",
			expectedUnique:  btnWord.Unique,
			expectedPayload: "cat",
		},
		{
			name:            "word chip in data",
			data:            "word|cat",
			expectedUnique:  btnWord.Unique,
			expectedPayload: "cat",
		},
		{
			name:            "button without payload",
			data:            btnPrev.Unique + "|",
			expectedUnique:  btnPrev.Unique,
			expectedPayload: "",
		},
		{
			name:            "payload keeps later separators",
			data:            "word|a|b",
			expectedUnique:  btnWord.Unique,
			expectedPayload: "a|b",
		},
		{
			name:            "no separator",
			data:            "cat",
			expectedUnique:  "",
			expectedPayload: "cat",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unique, payload := splitCallback(tt.unique, cleanCallbackData(tt.data))
			assert.Equal(t, tt.expectedUnique, unique)
			assert.Equal(t, tt.expectedPayload, payload)
		})
	}
}
