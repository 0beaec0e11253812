// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import "strings"

// BuildQuery constructs the search_query parameter from free text and an
// optional category filter. The text is matched against titles and
// abstracts; recognized categories add a conjunctive clause. Unrecognized
// categories are dropped without error, and when none remain the clause is
// omitted. The text is not escaped: input containing query operators
// reaches the API as-is.
func BuildQuery(query string, categories []string) string {
	parts := []string{"(ti:" + query + " OR abs:" + query + ")"}

	valid, _ := SplitCategories(categories)
	if len(valid) > 0 {
		cats := make([]string, len(valid))
		for i, c := range valid {
			cats[i] = "cat:" + c
		}
		parts = append(parts, "("+strings.Join(cats, " OR ")+")")
	}

	return strings.Join(parts, " AND ")
}

// idQuery restricts a search to a single identifier.
func idQuery(id string) string {
	return "id:" + id
}

// authorQuery restricts a search to an author name.
func authorQuery(name string) string {
	return "au:" + name
}
