// Package recommend implements the matching engine and the preference
// deriver. The engine walks the catalog in load order and filters each
// candidate through a fixed gate sequence, cheapest checks first, calling
// out to the review and text-analytics services only for candidates that
// survive the local gates.
package recommend
