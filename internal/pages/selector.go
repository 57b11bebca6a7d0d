// Package pages determines which pages of a document get processed: it
// counts pages via external metadata tools and expands page-range
// specifications into the literal processing order.
package pages

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/scandocs/doc2text/internal/domain"
)

// Expand parses a page specification into the concrete ordered sequence of
// page numbers to process. Tokens are comma-separated: either a single page
// number or a dash pair A-B. A pair expands ascending when A <= B and
// descending (A, A-1, ..., B) when A > B, so callers can request reverse
// order explicitly. Token order and duplicates are preserved; the returned
// order is the order pages are rasterized, recognized, and concatenated.
//
// An empty spec selects all pages 1..total ascending.
func Expand(spec string, total int) ([]int, error) {
	if strings.TrimSpace(spec) == "" {
		if total < 1 {
			return nil, domain.ValidationError(fmt.Sprintf("document has no pages (total %d)", total), nil)
		}
		all := make([]int, total)
		for i := range all {
			all[i] = i + 1
		}
		return all, nil
	}

	var selected []int
	for _, token := range strings.Split(spec, ",") {
		token = strings.TrimSpace(token)
		if a, b, found := strings.Cut(token, "-"); found {
			lo, err := parsePage(a)
			if err != nil {
				return nil, err
			}
			hi, err := parsePage(b)
			if err != nil {
				return nil, err
			}
			if lo <= hi {
				for p := lo; p <= hi; p++ {
					selected = append(selected, p)
				}
			} else {
				for p := lo; p >= hi; p-- {
					selected = append(selected, p)
				}
			}
			continue
		}
		p, err := parsePage(token)
		if err != nil {
			return nil, err
		}
		selected = append(selected, p)
	}
	return selected, nil
}

func parsePage(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, domain.ValidationError(fmt.Sprintf("invalid page number %q in page spec", s), err)
	}
	if n < 1 {
		return 0, domain.ValidationError(fmt.Sprintf("page numbers must be positive, got %d", n), nil)
	}
	return n, nil
}
