// Package imdb fetches user reviews for a catalog title from the IMDb
// website. Reviews are scraped from the public reviews page since no
// supported API exposes them.
package imdb
