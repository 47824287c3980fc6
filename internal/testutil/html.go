package testutil

import (
	"fmt"
	"strings"
)

// ListingEntry describes one subtitle row on a fixture listing page.
type ListingEntry struct {
	ID         string
	Slug       string
	Title      string
	Flag       string
	Translator string
	Downloads  int
}

// ListingPage renders a catalog website listing page with one table row per
// entry, shaped like the production markup: a detail anchor, a download
// anchor, a language flag image, and translator/download-count text.
func ListingPage(entries ...ListingEntry) string {
	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html>\n<head><meta charset=\"utf-8\"><title>Subtitrari</title></head>\n<body>\n<table>\n")
	for _, e := range entries {
		sb.WriteString("<tr>\n")
		fmt.Fprintf(&sb, "  <td><a href=\"/subtitrare/%s/%s\">%s</a></td>\n", e.Slug, e.ID, e.Title)
		if e.Flag != "" {
			fmt.Fprintf(&sb, "  <td><img src=\"/images/flags/flag-%s-big.png\" alt=\"\"></td>\n", e.Flag)
		}
		if e.Translator != "" {
			fmt.Fprintf(&sb, "  <td>Traducător: %s</td>\n", e.Translator)
		}
		fmt.Fprintf(&sb, "  <td>Descărcări: %d</td>\n", e.Downloads)
		fmt.Fprintf(&sb, "  <td><a href=\"/subtitrare/descarca/%s/%s\">Descarcă</a></td>\n", e.Slug, e.ID)
		sb.WriteString("</tr>\n")
	}
	sb.WriteString("</table>\n</body>\n</html>\n")
	return sb.String()
}
