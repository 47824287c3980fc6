package archive

import (
	"path/filepath"
	"sort"
	"strings"

	"subres/internal/match"
)

// extensionPriority orders subtitle formats by how well downstream players
// handle them. Lower is better.
var extensionPriority = map[string]int{
	".srt": 0,
	".sub": 1,
	".ass": 2,
	".ssa": 3,
	".txt": 4,
	".smi": 5,
}

func hasSubtitleExtension(name string) bool {
	_, ok := extensionPriority[strings.ToLower(filepath.Ext(name))]
	return ok
}

// isJunkMember filters macOS resource forks and hidden files that season
// packs routinely carry.
func isJunkMember(name string) bool {
	if strings.Contains(name, "__MACOSX") {
		return true
	}
	return strings.HasPrefix(filepath.Base(name), ".")
}

// selectMember picks the single member to extract from an archive listing.
// With episode hints the member names are tiered the same way search results
// are: exact season+episode matches first, then season-only matches, then
// the whole candidate set. Within the winning tier the best-supported
// extension wins, with the original archive order as tiebreaker.
func selectMember(names []string, hints *EpisodeHints) (string, bool) {
	var candidates []string
	for _, name := range names {
		if hasSubtitleExtension(name) && !isJunkMember(name) {
			candidates = append(candidates, name)
		}
	}
	if len(candidates) == 0 {
		return "", false
	}

	pool := candidates
	if hints != nil && hints.Season > 0 && hints.Episode > 0 {
		set := match.NewEpisodeSet(hints.Season, hints.Episode)

		var exact, seasonOnly []string
		for _, name := range candidates {
			switch {
			case set.MatchesEpisode(name):
				exact = append(exact, name)
			case set.MatchesSeason(name):
				seasonOnly = append(seasonOnly, name)
			}
		}
		if len(exact) > 0 {
			pool = exact
		} else if len(seasonOnly) > 0 {
			pool = seasonOnly
		}
	}

	sort.SliceStable(pool, func(i, j int) bool {
		pi := extensionPriority[strings.ToLower(filepath.Ext(pool[i]))]
		pj := extensionPriority[strings.ToLower(filepath.Ext(pool[j]))]
		return pi < pj
	})
	return pool[0], true
}
