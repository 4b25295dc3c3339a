package capture

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/ravik808/sitetrust/internal/model"
)

// SummarizePage digests rendered HTML into the handful of structural signals
// the AI prompt quotes. Password inputs next to a low trust score are the
// classic phishing shape.
func SummarizePage(html string) (*model.PageSummary, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	return &model.PageSummary{
		Title:          strings.TrimSpace(doc.Find("title").First().Text()),
		FormCount:      doc.Find("form").Length(),
		PasswordFields: doc.Find("input[type='password']").Length(),
		LinkCount:      doc.Find("a[href]").Length(),
	}, nil
}
