// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

// Category is a recognized arXiv category code and its description.
type Category struct {
	Code        string `json:"code" yaml:"code"`
	Description string `json:"description" yaml:"description"`
}

// categoryTable is the closed set of codes accepted in category filters.
// Order is the listing order shown to users.
var categoryTable = []Category{
	{"cs.AI", "Artificial Intelligence"},
	{"cs.LG", "Machine Learning"},
	{"cs.CV", "Computer Vision and Pattern Recognition"},
	{"cs.CL", "Computation and Language"},
	{"cs.NE", "Neural and Evolutionary Computing"},
	{"stat.ML", "Machine Learning (Statistics)"},
	{"math.ST", "Statistics Theory"},
	{"physics.data-an", "Data Analysis, Statistics and Probability"},
	{"q-bio.QM", "Quantitative Methods"},
	{"econ.EM", "Econometrics"},
	{"cs.CR", "Cryptography and Security"},
	{"cs.DB", "Databases"},
	{"cs.IR", "Information Retrieval"},
	{"cs.SE", "Software Engineering"},
	{"cs.SY", "Systems and Control"},
	{"math.OC", "Optimization and Control"},
	{"stat.AP", "Applications"},
	{"physics.comp-ph", "Computational Physics"},
}

var categoryIndex = func() map[string]string {
	m := make(map[string]string, len(categoryTable))
	for _, c := range categoryTable {
		m[c.Code] = c.Description
	}
	return m
}()

// Categories returns a copy of the recognized category table.
func Categories() []Category {
	out := make([]Category, len(categoryTable))
	copy(out, categoryTable)
	return out
}

// IsCategory reports whether code is in the recognized table.
// Matching is case-sensitive, as the API is.
func IsCategory(code string) bool {
	_, ok := categoryIndex[code]
	return ok
}

// CategoryDescription returns the human-readable description for code.
func CategoryDescription(code string) (string, bool) {
	d, ok := categoryIndex[code]
	return d, ok
}

// SplitCategories partitions codes into recognized and unrecognized,
// preserving input order in both.
func SplitCategories(codes []string) (valid, invalid []string) {
	for _, c := range codes {
		if IsCategory(c) {
			valid = append(valid, c)
		} else {
			invalid = append(invalid, c)
		}
	}
	return valid, invalid
}
