// Package emotion talks to the local text-analytics service that scores
// review text for emotion labels and sentiment polarity.
package emotion
