package models

// Query is the normalized media-identity record produced by the host player's
// metadata collaborator. It is constructed once per user search action and is
// immutable afterwards.
type Query struct {
	IMDbID        string // episode-specific id for TV, movie id otherwise
	ParentIMDbID  string // parent show id for TV
	TMDbID        string
	ParentTMDbID  string
	Title         string
	OriginalTitle string
	EpisodeTitle  string
	IsTV          bool
	Season        int
	Episode       int
	Year          int
	Release       string   // basename of the playing file, without extension
	Languages     []string // subs.ro codes, user preference first
}

// HasIdentity reports whether the query carries at least one usable
// identifier. Without one no search strategy can be built.
func (q Query) HasIdentity() bool {
	return q.IMDbID != "" || q.ParentIMDbID != "" ||
		q.TMDbID != "" || q.ParentTMDbID != "" ||
		q.Title != "" || q.OriginalTitle != "" ||
		q.EpisodeTitle != "" || q.Release != ""
}

// HasEpisode reports whether the query identifies a specific TV episode.
func (q Query) HasEpisode() bool {
	return q.IsTV && q.Season > 0 && q.Episode > 0
}

// BestIMDbID returns the canonical tt-prefixed IMDb id to use for scraping,
// preferring the parent show id over the episode-specific one.
func (q Query) BestIMDbID() string {
	if id := CanonicalIMDbID(q.ParentIMDbID); id != "" {
		return id
	}
	return CanonicalIMDbID(q.IMDbID)
}

// SearchField identifies a catalog search endpoint field.
type SearchField string

const (
	FieldIMDbID  SearchField = "imdbid"
	FieldTMDbID  SearchField = "tmdbid"
	FieldTitle   SearchField = "title"
	FieldRelease SearchField = "release"
)

// Strategy is one (field, value) search attempt within a cascade.
// Strategies are immutable once built for a Query; priority is implicit
// in list order.
type Strategy struct {
	Field SearchField
	Value string
	Label string // diagnostic tag, e.g. "parent-imdb"
}
