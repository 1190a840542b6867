package hostdom

import "testing"

func TestEscapeHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty string", input: "", expected: ""},
		{name: "plain text", input: "Hello, World!", expected: "Hello, World!"},
		{name: "ampersand", input: "Tom & Jerry", expected: "Tom &amp; Jerry"},
		{name: "tags", input: "<b>", expected: "&lt;b&gt;"},
		{name: "quotes", input: `"it's"`, expected: "&quot;it&#39;s&quot;"},
		{name: "unicode", input: "héllo ✓", expected: "héllo ✓"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := escapeHTML(tt.input); got != tt.expected {
				t.Errorf("escapeHTML(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestEscapeAttr(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "plain", input: "a b", expected: "a b"},
		{name: "quote", input: `say "hi"`, expected: "say &quot;hi&quot;"},
		{name: "newline", input: "a\nb", expected: "a&#10;b"},
		{name: "tab and cr", input: "a\tb\r", expected: "a&#9;b&#13;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := escapeAttr(tt.input); got != tt.expected {
				t.Errorf("escapeAttr(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
