package library

import (
	"sort"
	"strings"
)

// SortOption selects a listing order.
type SortOption string

const (
	SortNewest   SortOption = "newest"
	SortOldest   SortOption = "oldest"
	SortTitleAZ  SortOption = "title_az"
	SortTitleZA  SortOption = "title_za"
	SortLongest  SortOption = "longest"
	SortShortest SortOption = "shortest"
)

// Sort orders files by the given option. Unknown options leave the
// slice untouched.
func Sort(files []File, option SortOption) {
	switch option {
	case SortNewest:
		sort.SliceStable(files, func(i, j int) bool { return files[i].CreatedAt.After(files[j].CreatedAt) })
	case SortOldest:
		sort.SliceStable(files, func(i, j int) bool { return files[i].CreatedAt.Before(files[j].CreatedAt) })
	case SortTitleAZ:
		sort.SliceStable(files, func(i, j int) bool {
			return strings.ToLower(files[i].Name) < strings.ToLower(files[j].Name)
		})
	case SortTitleZA:
		sort.SliceStable(files, func(i, j int) bool {
			return strings.ToLower(files[i].Name) > strings.ToLower(files[j].Name)
		})
	case SortLongest:
		sort.SliceStable(files, func(i, j int) bool { return files[i].Duration > files[j].Duration })
	case SortShortest:
		sort.SliceStable(files, func(i, j int) bool { return files[i].Duration < files[j].Duration })
	}
}

// FilterQuery returns the files whose name contains the query,
// case-insensitively. An empty query returns the input unchanged.
func FilterQuery(files []File, query string) []File {
	if query == "" {
		return files
	}
	q := strings.ToLower(query)
	out := make([]File, 0, len(files))
	for _, f := range files {
		if strings.Contains(strings.ToLower(f.Name), q) {
			out = append(out, f)
		}
	}
	return out
}
