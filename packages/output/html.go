package output

import (
	"strings"

	"golang.org/x/net/html"
)

// messageClassHints mark elements likely to carry the part of an HTML
// error page a user actually needs to see.
var messageClassHints = []string{"error", "message", "alert", "warning"}

// messageTags are the elements searched for message classes.
var messageTags = map[string]bool{"div": true, "p": true, "span": true}

const (
	maxMessageElements = 3
	maxBodyExcerpt     = 500
)

// ExtractText reduces an HTML document to the parts worth showing on a
// terminal: the title, any error/message-classed elements, or failing
// that a trimmed excerpt of the body text. Whenever extraction fails or
// comes up empty the original markup is returned unmodified.
func ExtractText(content string) string {
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return content
	}

	var b strings.Builder

	if title := findElement(doc, "title"); title != nil {
		if t := strings.TrimSpace(nodeText(title)); t != "" {
			b.WriteString("Title: " + t + "\n\n")
		}
	}

	if matches := findMessageElements(doc); len(matches) > 0 {
		b.WriteString("Error/Message content:\n")
		for i, m := range matches {
			if i == maxMessageElements {
				break
			}
			if text := strings.TrimSpace(nodeText(m)); text != "" {
				b.WriteString("- " + text + "\n")
			}
		}
	} else if body := findElement(doc, "body"); body != nil {
		b.WriteString(cleanBodyText(body))
	}

	result := b.String()
	if strings.TrimSpace(result) == "" {
		return content
	}
	return result
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func findMessageElements(root *html.Node) []*html.Node {
	var matches []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && messageTags[n.Data] && hasMessageClass(n) {
			matches = append(matches, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return matches
}

func hasMessageClass(n *html.Node) bool {
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		class := strings.ToLower(attr.Val)
		for _, hint := range messageClassHints {
			if strings.Contains(class, hint) {
				return true
			}
		}
	}
	return false
}

// nodeText concatenates the text content of a node, skipping script and
// style subtrees.
func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// cleanBodyText collapses body text into newline-joined fragments,
// splitting on line breaks and double-space runs, truncated for
// readability.
func cleanBodyText(body *html.Node) string {
	text := nodeText(body)

	var chunks []string
	for _, line := range strings.Split(text, "\n") {
		for _, phrase := range strings.Split(strings.TrimSpace(line), "  ") {
			if phrase = strings.TrimSpace(phrase); phrase != "" {
				chunks = append(chunks, phrase)
			}
		}
	}

	clean := strings.Join(chunks, "\n")
	if len(clean) > maxBodyExcerpt {
		clean = clean[:maxBodyExcerpt] + "...\n[Content truncated]"
	}
	return clean
}
