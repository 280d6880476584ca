package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"smartlib/models"
)

func sampleBooks() []models.Book {
	return []models.Book{
		{ID: "1", Title: "Laskar Pelangi", Author: "Andrea Hirata", Publisher: "Bentang Pustaka", Genre: "Novel"},
		{ID: "2", Title: "Bumi Manusia", Author: "Pramoedya Ananta Toer", Publisher: "Hasta Mitra", Genre: "Novel"},
		{ID: "3", Title: "Clean Code", Author: "Robert C. Martin", Publisher: "Prentice Hall", Genre: "Teknologi",
			Description: "A handbook of agile software craftsmanship."},
	}
}

func TestFilter(t *testing.T) {
	books := sampleBooks()

	tests := []struct {
		name    string
		query   string
		genre   string
		wantIDs []string
	}{
		{"no filter", "", "", []string{"1", "2", "3"}},
		{"genre all", "", "all", []string{"1", "2", "3"}},
		{"genre equality", "", "Novel", []string{"1", "2"}},
		{"title substring, case-insensitive", "laskar", "", []string{"1"}},
		{"author substring", "pramoedya", "", []string{"2"}},
		{"publisher substring", "prentice", "", []string{"3"}},
		{"description substring", "craftsmanship", "", []string{"3"}},
		{"query and genre combine", "manusia", "Novel", []string{"2"}},
		{"query misses genre", "clean", "Novel", nil},
		{"whitespace query passes", "   ", "", []string{"1", "2", "3"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(books, tt.query, tt.genre)
			ids := make([]string, 0, len(got))
			for _, b := range got {
				ids = append(ids, b.ID)
			}
			if tt.wantIDs == nil {
				assert.Empty(t, ids)
				return
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestGenres(t *testing.T) {
	books := append(sampleBooks(), models.Book{ID: "4", Title: "Untitled"})

	assert.Equal(t, []string{"Novel", "Teknologi"}, Genres(books))
	assert.Empty(t, Genres(nil))
}
