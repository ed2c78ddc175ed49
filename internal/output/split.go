// Package output splits a generated document into its LaTeX resume and
// plaintext cover letter parts and persists them to disk.
package output

import (
	"strings"
)

// EndDocumentMarker terminates the LaTeX resume portion of a generated document.
const EndDocumentMarker = `\end{document}`

// coverLetterLabel is an optional heading the generation model sometimes
// prepends to the cover letter portion.
const coverLetterLabel = "**Cover Letter**"

// FormatError indicates the generated document is missing the expected
// end-of-document marker. It is fatal for the whole generation request.
type FormatError struct {
	Message string
}

func (e *FormatError) Error() string {
	return "format error: " + e.Message
}

// Split divides a generated document at the first end-of-document marker.
// The resume part runs through the marker inclusive, trimmed and with any
// surrounding triple-backtick code fences stripped. The cover letter is the
// trimmed remainder with a leading cover-letter label removed if present.
func Split(document string) (resume, coverLetter string, err error) {
	idx := strings.Index(document, EndDocumentMarker)
	if idx == -1 {
		return "", "", &FormatError{Message: "expected end-of-document marker not found"}
	}

	cut := idx + len(EndDocumentMarker)
	resume = stripCodeFences(strings.TrimSpace(document[:cut]))

	coverLetter = strings.TrimSpace(document[cut:])
	coverLetter = strings.TrimSpace(strings.TrimPrefix(coverLetter, coverLetterLabel))

	return resume, coverLetter, nil
}

// stripCodeFences removes markdown code fence wrappers around a LaTeX block.
func stripCodeFences(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```latex")
	text = strings.TrimPrefix(text, "```tex")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
