package normalize

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"CoinPulse/internal/domain"
)

// Articles extracts listing entries from a raw search-results page.
// Extraction is best-effort per field: a node missing a sub-element yields
// the N/A sentinel for that field only, so one malformed entry never drops
// the rest of the page. Zero matching nodes is a valid empty result.
func Articles(raw []byte, origin string) ([]domain.ArticleSummary, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse listing: %w", err)
	}

	items := doc.Find("div.news__item")
	summaries := make([]domain.ArticleSummary, 0, items.Length())
	items.Each(func(_ int, item *goquery.Selection) {
		summaries = append(summaries, parseItem(item, origin))
	})

	return summaries, nil
}

func parseItem(item *goquery.Selection, origin string) domain.ArticleSummary {
	titleNode := item.Find("div.news__item-title").First()

	return domain.ArticleSummary{
		Title:  textOrNA(titleNode),
		Date:   textOrNA(item.Find("div.humble").First()),
		Author: textOrNA(item.Find("div.humble--author").First()),
		Link:   linkOrNA(titleNode.Find("a").First(), origin),
	}
}

func textOrNA(sel *goquery.Selection) string {
	text := strings.TrimSpace(sel.Text())
	if text == "" {
		return domain.FieldNA
	}
	return text
}

func linkOrNA(anchor *goquery.Selection, origin string) string {
	href, ok := anchor.Attr("href")
	if !ok || strings.TrimSpace(href) == "" {
		return domain.FieldNA
	}
	if strings.HasPrefix(href, "http") {
		return href
	}
	return strings.TrimSuffix(origin, "/") + href
}
