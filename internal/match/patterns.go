// Package match holds the ordered, table-driven season/episode pattern tiers
// shared by result disambiguation and archive member selection.
package match

import (
	"fmt"
	"regexp"
)

// Episode-name conventions seen in catalog descriptions and release names:
// S01E01 (optionally unpadded), 1x01, Romanian "Sezonul 1 Episodul 1",
// English "Season 1 Episode 1", and a lone E01/Ep01 token used by
// season-scoped releases. Each entry is a format template instantiated per
// (season, episode) pair; list order is the audit order.
var episodeTemplates = []string{
	`(?i)\bs0?%dE0?%d\b`,
	`(?i)\b%dx%02d\b`,
	`(?i)sezonul\s*%d\s*episodul\s*0?%d\b`,
	`(?i)season\s*%d\s*episode\s*0?%d\b`,
}

// loneEpisodeTemplate matches E{ep}/Ep{ep} with no season marker. The episode
// number appears twice in the template.
const loneEpisodeTemplate = `(?i)\be(?:p)?\.?\s?0?%d\b`

// seasonTemplates match any-episode markers for a season: S01E.., the bare
// Romanian/English season phrase, and the NxNN prefix.
var seasonTemplates = []string{
	`(?i)\bs0?%de\d`,
	`(?i)\bsezonul\s*%d\b`,
	`(?i)\bseason\s*%d\b`,
	`(?i)\b%dx\d`,
}

// EpisodeSet holds the compiled tiers for one (season, episode) pair so the
// same compilation is reused across a result list or an archive member list.
type EpisodeSet struct {
	Season  int
	Episode int

	exact  []*regexp.Regexp
	season []*regexp.Regexp
}

// NewEpisodeSet compiles the pattern tiers for a season/episode pair.
func NewEpisodeSet(season, episode int) *EpisodeSet {
	s := &EpisodeSet{Season: season, Episode: episode}
	for _, tmpl := range episodeTemplates {
		s.exact = append(s.exact, regexp.MustCompile(fmt.Sprintf(tmpl, season, episode)))
	}
	s.exact = append(s.exact, regexp.MustCompile(fmt.Sprintf(loneEpisodeTemplate, episode)))
	for _, tmpl := range seasonTemplates {
		s.season = append(s.season, regexp.MustCompile(fmt.Sprintf(tmpl, season)))
	}
	return s
}

// MatchesEpisode reports whether text carries an exact season+episode marker.
func (s *EpisodeSet) MatchesEpisode(text string) bool {
	return matchAny(s.exact, text)
}

// MatchesSeason reports whether text carries a season-level marker
// (any episode of the season, or a season-pack phrase).
func (s *EpisodeSet) MatchesSeason(text string) bool {
	return matchAny(s.season, text)
}

func matchAny(patterns []*regexp.Regexp, text string) bool {
	for _, p := range patterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}
