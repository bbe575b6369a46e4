// Package share renders a quote as plain text for sharing.
package share

import (
	"io"
	"strings"

	"github.com/slenderdeveloperman/QuoteBook/internal/domain"
)

// Text returns the shareable form of q: the quoted text, a blank line, and
// an attribution line.
func Text(q domain.Quote) string {
	var b strings.Builder
	b.WriteString(`"`)
	b.WriteString(strings.TrimSpace(q.Text))
	b.WriteString("\"\n\n— ")
	b.WriteString(domain.AuthorOrDefault(q.Author))
	return b.String()
}

// To writes Text(q) followed by a newline to w.
func To(w io.Writer, q domain.Quote) error {
	_, err := io.WriteString(w, Text(q)+"\n")
	return err
}
