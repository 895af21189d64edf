// Package reviewcache persists fetched reviews in a local SQLite database
// so repeated matching runs do not hit the review site for titles already
// seen. Cached reviews are derived data; clearing the cache is always safe.
package reviewcache
