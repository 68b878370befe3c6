package catalog

import (
	"testing"

	"github.com/NasmeenI/tablebook/internal/models"
)

var testRestaurants = []models.Restaurant{
	{ID: "r1", Name: "Bella Italia", Type: "Italian", Address: "123 Main Street"},
	{ID: "r2", Name: "Sakura House", Type: "Japanese", Address: "88 Cherry Lane"},
	{ID: "r3", Name: "Trattoria Roma", Type: "Italian", Address: "9 Olive Road"},
	{ID: "r4", Name: "Spice Route", Type: "Indian", Address: "7 Curry Road"},
}

func ids(restaurants []models.Restaurant) []string {
	out := make([]string, len(restaurants))
	for i, r := range restaurants {
		out[i] = r.ID
	}
	return out
}

func TestCategories(t *testing.T) {
	got := Categories(testRestaurants)
	expected := []string{"All", "Indian", "Italian", "Japanese"}

	if len(got) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, got)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("category %d: expected '%s', got '%s'", i, expected[i], got[i])
		}
	}
}

func TestToggle(t *testing.T) {
	if got := Toggle("All", "Italian"); got != "Italian" {
		t.Errorf("expected 'Italian', got '%s'", got)
	}
	// Re-selecting the active category clears the filter.
	if got := Toggle("Italian", "Italian"); got != "All" {
		t.Errorf("expected 'All', got '%s'", got)
	}
	if got := Toggle("Italian", "Japanese"); got != "Japanese" {
		t.Errorf("expected 'Japanese', got '%s'", got)
	}
}

func TestFilter_Category(t *testing.T) {
	got := ids(Filter(testRestaurants, "Italian", ""))
	if len(got) != 2 || got[0] != "r1" || got[1] != "r3" {
		t.Errorf("expected [r1 r3], got %v", got)
	}

	if got := Filter(testRestaurants, "All", ""); len(got) != len(testRestaurants) {
		t.Errorf("expected all restaurants for 'All', got %d", len(got))
	}
}

func TestFilter_SearchIsCaseInsensitive(t *testing.T) {
	got := ids(Filter(testRestaurants, "All", "SAKURA"))
	if len(got) != 1 || got[0] != "r2" {
		t.Errorf("expected [r2], got %v", got)
	}
}

func TestFilter_SearchMatchesAddress(t *testing.T) {
	got := ids(Filter(testRestaurants, "All", "road"))
	if len(got) != 2 || got[0] != "r3" || got[1] != "r4" {
		t.Errorf("expected [r3 r4], got %v", got)
	}
}

func TestFilter_CategoryAndSearchAreConjunctive(t *testing.T) {
	got := ids(Filter(testRestaurants, "Italian", "road"))
	if len(got) != 1 || got[0] != "r3" {
		t.Errorf("expected [r3], got %v", got)
	}

	if got := Filter(testRestaurants, "Japanese", "road"); len(got) != 0 {
		t.Errorf("expected no matches, got %v", ids(got))
	}
}

func TestFilter_NoMatches(t *testing.T) {
	if got := Filter(testRestaurants, "All", "pizza palace"); len(got) != 0 {
		t.Errorf("expected no matches, got %v", ids(got))
	}
}
