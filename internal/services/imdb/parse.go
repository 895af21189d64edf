package imdb

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// Class names IMDb uses on its reviews page. These track the live site
// markup and break when IMDb redesigns the page.
const (
	classReviewCard   = "ipc-list-card__content"
	classHelpfulCount = "ipc-voting__label__count--up"
	classReviewText   = "ipc-html-content-inner-div"
)

// parseReviews extracts review cards from a reviews page document.
func parseReviews(r io.Reader) ([]Review, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	var reviews []Review
	for _, card := range findAllByClass(doc, classReviewCard) {
		text := collectText(findFirstByClass(card, classReviewText))
		if text == "" {
			continue
		}
		votes := parseVoteCount(collectText(findFirstByClass(card, classHelpfulCount)))
		reviews = append(reviews, Review{Text: text, HelpfulVotes: votes})
	}
	return reviews, nil
}

// parseVoteCount converts IMDb's abbreviated counts ("23", "1.5K", "2M")
// to integers. Unparsable values count as zero.
func parseVoteCount(value string) int {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	multiplier := 1.0
	switch {
	case strings.HasSuffix(value, "K"), strings.HasSuffix(value, "k"):
		multiplier = 1_000
		value = value[:len(value)-1]
	case strings.HasSuffix(value, "M"), strings.HasSuffix(value, "m"):
		multiplier = 1_000_000
		value = value[:len(value)-1]
	}
	value = strings.ReplaceAll(value, ",", "")
	parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || parsed < 0 {
		return 0
	}
	return int(parsed * multiplier)
}

func hasClass(n *html.Node, name string) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, class := range strings.Fields(attr.Val) {
			if class == name {
				return true
			}
		}
	}
	return false
}

func findAllByClass(n *html.Node, name string) []*html.Node {
	var matches []*html.Node
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if hasClass(node, name) {
			matches = append(matches, node)
			return
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return matches
}

func findFirstByClass(n *html.Node, name string) *html.Node {
	if n == nil {
		return nil
	}
	if hasClass(n, name) {
		return n
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if found := findFirstByClass(child, name); found != nil {
			return found
		}
	}
	return nil
}

// collectText joins the text nodes beneath n, collapsing runs of
// whitespace to single spaces.
func collectText(n *html.Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			b.WriteString(node.Data)
			b.WriteByte(' ')
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}
