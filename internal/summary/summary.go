// Package summary pulls the [SUMMARY] ... [/SUMMARY] report out of a
// sub-agent transcript.
package summary

import (
	"regexp"
	"strings"
)

const (
	OpenTag  = "[SUMMARY]"
	CloseTag = "[/SUMMARY]"
)

// first match only; case-insensitive, dot matches newline
var summaryRe = regexp.MustCompile(`(?is)\[SUMMARY\]\s*(.*?)\s*\[/SUMMARY\]`)

// Find returns the trimmed text of the first marker region and whether one
// was present.
func Find(transcript string) (string, bool) {
	m := summaryRe.FindStringSubmatch(transcript)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// Extract returns the summary if the transcript has one, otherwise the whole
// transcript unchanged. A missing marker is not an error.
func Extract(transcript string) string {
	if s, ok := Find(transcript); ok {
		return s
	}
	return transcript
}
