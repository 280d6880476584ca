// Package catalog provides read-side filtering over the book list.
package catalog

import (
	"sort"
	"strings"

	"smartlib/models"
)

// Filter narrows books by a case-insensitive substring match on
// title/author/publisher/description and an exact genre match. Empty
// query or an empty/"all" genre passes everything.
func Filter(books []models.Book, query, genre string) []models.Book {
	query = strings.ToLower(strings.TrimSpace(query))
	matchGenre := genre != "" && genre != "all"

	out := make([]models.Book, 0, len(books))
	for _, b := range books {
		if matchGenre && b.Genre != genre {
			continue
		}
		if query != "" && !matchesQuery(&b, query) {
			continue
		}
		out = append(out, b)
	}
	return out
}

func matchesQuery(b *models.Book, query string) bool {
	return strings.Contains(strings.ToLower(b.Title), query) ||
		strings.Contains(strings.ToLower(b.Author), query) ||
		strings.Contains(strings.ToLower(b.Publisher), query) ||
		strings.Contains(strings.ToLower(b.Description), query)
}

// Genres lists the distinct genres present, sorted, for filter menus.
func Genres(books []models.Book) []string {
	seen := make(map[string]struct{}, len(books))
	var out []string
	for _, b := range books {
		if b.Genre == "" {
			continue
		}
		if _, ok := seen[b.Genre]; ok {
			continue
		}
		seen[b.Genre] = struct{}{}
		out = append(out, b.Genre)
	}
	sort.Strings(out)
	return out
}
