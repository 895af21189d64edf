// Package catalog loads the external movie dataset: a title-basics table
// and a title-ratings table, both tab-separated with a header row.
//
// The two tables share an identifier column and are joined lazily through
// RatingLookup; an entry with no rating record is unratable and is filtered
// out later by the recommendation pipeline. Row order of the basics table
// is preserved because it defines the pipeline's iteration order.
//
// The package also owns release-era banding: the four-way old/middle/new/
// very-new classification derived from a release year.
package catalog
