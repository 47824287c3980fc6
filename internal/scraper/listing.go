package scraper

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"subres/internal/config"
	"subres/internal/models"
)

// Listing pages link each subtitle twice: a detail anchor
// /subtitrare/{slug}/{id} and a download anchor /subtitrare/descarca/{slug}/{id}.
var (
	subtitleLinkRe = regexp.MustCompile(`/subtitrare/(?:(descarca)/)?([^/?#]+)/(\d+)/?$`)
	flagImageRe    = regexp.MustCompile(`flag-([a-zA-Z]{2,3})-big`)
	translatorRe   = regexp.MustCompile(`(?i)(?:Traduc[aă]tor|Translator)\s*:[ \t]*([^\n]+)`)
	downloadsRe    = regexp.MustCompile(`(?i)(?:desc[aă]rc[aă]ri|downloads?)\s*:?\s*(\d+)`)
	slugYearRe     = regexp.MustCompile(`-(\d{4})$`)
)

type listingEntry struct {
	result models.SearchResult
	slug   string
}

// parseListing extracts subtitle entries from a catalog listing page. Both
// anchor forms contribute to the same entry, keyed by numeric subtitle ID;
// the surrounding row supplies language flag, translator, and download count.
func parseListing(doc *goquery.Document, siteURL string) []models.SearchResult {
	logger := config.GetLogger()

	byID := make(map[string]*listingEntry)
	var order []string

	doc.Find(`a[href*="/subtitrare/"]`).Each(func(i int, anchor *goquery.Selection) {
		href, exists := anchor.Attr("href")
		if !exists {
			return
		}
		matches := subtitleLinkRe.FindStringSubmatch(href)
		if matches == nil {
			return
		}
		isDownload := matches[1] == "descarca"
		slug, id := matches[2], matches[3]

		entry, seen := byID[id]
		if !seen {
			entry = &listingEntry{
				slug: slug,
				result: models.SearchResult{
					ID:       id,
					Language: models.DefaultLanguage,
					Source:   models.SourceScraper,
				},
			}
			byID[id] = entry
			order = append(order, id)
		}

		if isDownload {
			entry.result.DownloadLink = absoluteURL(siteURL, href)
		} else {
			entry.result.Link = absoluteURL(siteURL, href)
		}

		if entry.result.Title == "" {
			if text := strings.TrimSpace(anchor.Text()); text != "" && !isDownload {
				entry.result.Title = text
			}
		}

		enrichFromRow(anchor, entry)
	})

	results := make([]models.SearchResult, 0, len(order))
	for _, id := range order {
		entry := byID[id]
		if entry.result.Title == "" {
			entry.result.Title = models.SlugToTitle(entry.slug)
		}
		if entry.result.Year == 0 {
			if matches := slugYearRe.FindStringSubmatch(entry.slug); matches != nil {
				entry.result.Year, _ = strconv.Atoi(matches[1])
			}
		}
		if entry.result.DownloadLink == "" {
			entry.result.DownloadLink = siteURL + "/subtitrare/descarca/" + entry.slug + "/" + entry.result.ID
		}
		results = append(results, entry.result)
	}

	logger.Debug().Int("entries", len(results)).Msg("Parsed listing page")
	return results
}

// enrichFromRow pulls language, translator, and download count out of the
// table row (or nearest container) holding the anchor.
func enrichFromRow(anchor *goquery.Selection, entry *listingEntry) {
	row := anchor.Closest("tr")
	if row.Length() == 0 {
		row = anchor.Parent()
	}

	if src, exists := row.Find(`img[src*="flag-"]`).Attr("src"); exists {
		if matches := flagImageRe.FindStringSubmatch(src); matches != nil {
			entry.result.Language = models.FlagLanguage(matches[1])
		}
	}

	rowText := row.Text()
	if entry.result.Translator == "" {
		if matches := translatorRe.FindStringSubmatch(rowText); matches != nil {
			entry.result.Translator = strings.TrimSpace(matches[1])
		}
	}
	if entry.result.Downloads == 0 {
		if matches := downloadsRe.FindStringSubmatch(rowText); matches != nil {
			entry.result.Downloads, _ = strconv.Atoi(matches[1])
		}
	}
}

func absoluteURL(siteURL, link string) string {
	if strings.HasPrefix(link, "http://") || strings.HasPrefix(link, "https://") {
		return link
	}
	if strings.HasPrefix(link, "/") {
		return siteURL + link
	}
	return siteURL + "/" + link
}
