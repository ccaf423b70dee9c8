package media

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
)

// SearchVideos ranks videos whose title fuzzily matches query, best match first.
// An empty query returns the input unchanged.
func SearchVideos(videos []VideoRef, query string) []VideoRef {
	if query == "" {
		return videos
	}

	titles := lo.Map(videos, func(v VideoRef, _ int) string { return v.Title })
	return lo.Map(rank(query, titles), func(i int, _ int) VideoRef { return videos[i] })
}

// SearchTracks returns the indices of tracks whose title or artist fuzzily matches query, best match first.
func SearchTracks(tracks []Track, query string) []int {
	if query == "" {
		return lo.Range(len(tracks))
	}

	targets := lo.Map(tracks, func(t Track, _ int) string {
		if artist, ok := t.Artist.Get(); ok {
			return t.Title + " " + artist
		}
		return t.Title
	})
	return rank(query, targets)
}

func rank(query string, targets []string) []int {
	ranks := fuzzy.RankFindNormalizedFold(query, targets)
	sort.Stable(ranks)
	return lo.Map(ranks, func(r fuzzy.Rank, _ int) int { return r.OriginalIndex })
}
