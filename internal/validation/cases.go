// ABOUTME: Conformance table for title validation.
// ABOUTME: Every boundary that validates titles is tested against these cases.

package validation

import "strings"

// Case is one conformance example. An empty Reason means the title is accepted.
type Case struct {
	Name   string
	Title  string
	Reason Reason
}

var Cases = []Case{
	{Name: "single character", Title: "a"},
	{Name: "plain title", Title: "Buy milk"},
	{Name: "exactly max length", Title: strings.Repeat("a", MaxTitleLength)},
	{Name: "max length multibyte", Title: strings.Repeat("牛", MaxTitleLength)},
	{Name: "surrounding spaces kept", Title: "  padded  "},
	{Name: "carriage return allowed", Title: "a\rb"},
	{Name: "empty", Title: "", Reason: ReasonEmpty},
	{Name: "one over max", Title: strings.Repeat("a", MaxTitleLength+1), Reason: ReasonTooLong},
	{Name: "one over max multibyte", Title: strings.Repeat("牛", MaxTitleLength+1), Reason: ReasonTooLong},
	{Name: "newline", Title: "x\ny", Reason: ReasonContainsNewline},
	{Name: "trailing newline", Title: "x\n", Reason: ReasonContainsNewline},
	{Name: "newline before tab", Title: "x\n\ty", Reason: ReasonContainsNewline},
	{Name: "tab before newline", Title: "x\t\ny", Reason: ReasonContainsNewline},
	{Name: "tab", Title: "x\ty", Reason: ReasonContainsTab},
	{Name: "too long wins over newline", Title: strings.Repeat("a", MaxTitleLength) + "\n", Reason: ReasonTooLong},
}
