package cli

import (
	"fmt"
	"io"

	"github.com/slenderdeveloperman/QuoteBook/internal/domain"
)

// writeQuote prints one quote per line: id, text, author and category.
func writeQuote(w io.Writer, q domain.Quote) {
	fmt.Fprintf(w, "#%d  %q — %s", q.ID, q.Text, q.Author)
	if !q.Uncategorized() {
		fmt.Fprintf(w, "  [%s]", q.Category)
	}
	fmt.Fprintln(w)
}

func writeQuotes(w io.Writer, qs []domain.Quote) {
	if len(qs) == 0 {
		fmt.Fprintln(w, "No quotes.")
		return
	}
	for _, q := range qs {
		writeQuote(w, q)
	}
}
