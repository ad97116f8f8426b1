package sources

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// firstText walks an ordered selector chain and returns the trimmed text of
// the first matching element. Empty string when nothing matches; a missing
// field is never fatal.
func firstText(card *goquery.Selection, selectors ...string) string {
	for _, sel := range selectors {
		found := card.Find(sel).First()
		if found.Length() == 0 {
			continue
		}
		if text := strings.TrimSpace(found.Text()); text != "" {
			return text
		}
	}
	return ""
}

// firstHref returns the href of the first anchor matched by the selector
// chain.
func firstHref(card *goquery.Selection, selectors ...string) string {
	for _, sel := range selectors {
		found := card.Find(sel).First()
		if href, ok := found.Attr("href"); ok && strings.TrimSpace(href) != "" {
			return strings.TrimSpace(href)
		}
	}
	return ""
}

// dateText prefers a machine-readable datetime attribute over the element's
// visible text.
func dateText(card *goquery.Selection, selectors ...string) string {
	for _, sel := range selectors {
		found := card.Find(sel).First()
		if found.Length() == 0 {
			continue
		}
		if dt, ok := found.Attr("datetime"); ok && strings.TrimSpace(dt) != "" {
			return strings.TrimSpace(dt)
		}
		if text := strings.TrimSpace(found.Text()); text != "" {
			return text
		}
	}
	return ""
}

// firstImageSrc returns the src of the first image inside the card.
func firstImageSrc(card *goquery.Selection) string {
	src, _ := card.Find("img").First().Attr("src")
	return strings.TrimSpace(src)
}

// classContainsAny reports whether a class attribute value mentions any of
// the given keywords, case-insensitively. Used by the fallback card scan
// when a site's primary selectors match nothing.
func classContainsAny(class string, keywords ...string) bool {
	lower := strings.ToLower(class)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// limitCards caps a selection at n elements to bound per-page work.
func limitCards(sel *goquery.Selection, n int) *goquery.Selection {
	if sel.Length() <= n {
		return sel
	}
	return sel.Slice(0, n)
}
