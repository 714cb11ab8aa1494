package tarkovdev

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/raidledger/raidledger/internal/domain/itemclass"
)

const DefaultWikiURL = "https://escapefromtarkov.fandom.com/api.php?action=parse&page=Hideout&prop=text&formatversion=2&format=json"

// HideoutWiki is what the hideout wiki page adds on top of the API feed.
type HideoutWiki struct {
	// FIRItems maps normalized item names to the wiki display name.
	FIRItems map[string]string `json:"firItems"`
	// StashEditionLevels maps a game edition to the stash level it starts with.
	StashEditionLevels map[string]int `json:"stashEditionLevels"`
	// CultistCircleEditions lists editions that start with the Cultist Circle.
	CultistCircleEditions []string `json:"cultistCircleEditions"`
}

// FIRKeys returns the normalized item names requiring found in raid.
func (w *HideoutWiki) FIRKeys() map[string]bool {
	if w == nil {
		return nil
	}
	out := make(map[string]bool, len(w.FIRItems))
	for k := range w.FIRItems {
		out[k] = true
	}
	return out
}

// FetchHideoutWiki downloads the rendered hideout page through the wiki API
// and returns it encoded as JSON.
func (c *Client) FetchHideoutWiki(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		url = DefaultWikiURL
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("wiki request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("wiki request: unexpected status %d", resp.StatusCode)
	}

	var body struct {
		Parse struct {
			Text string `json:"text"`
		} `json:"parse"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode wiki response: %w", err)
	}
	if body.Parse.Text == "" {
		return nil, fmt.Errorf("wiki response missing text")
	}

	wiki, err := ParseHideoutWiki(strings.NewReader(body.Parse.Text))
	if err != nil {
		return nil, err
	}
	return json.Marshal(wiki)
}

var (
	foundInRaidText = regexp.MustCompile(`(?is)found.*?in raid`)
	owningEdition   = regexp.MustCompile(`(?i)Owning\s+"([^"]+)"\s+game edition`)
	owningStandard  = regexp.MustCompile(`(?i)Owning\s+standard\s+game edition`)
)

// ParseHideoutWiki extracts the found in raid item list, the stash level per
// edition and the Cultist Circle editions from the hideout page HTML.
func ParseHideoutWiki(r io.Reader) (*HideoutWiki, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse wiki html: %w", err)
	}

	wiki := &HideoutWiki{
		FIRItems:           make(map[string]string),
		StashEditionLevels: make(map[string]int),
	}

	modules := findFirst(doc, func(n *html.Node) bool {
		return n.DataAtom == atom.Div && hasClass(n, "dealer-tabber")
	})
	if modules == nil {
		modules = doc
	}
	walk(modules, func(n *html.Node) {
		if n.DataAtom != atom.Li || !foundInRaidText.MatchString(textOf(n)) {
			return
		}
		if name := firstItemLink(n); name != "" {
			if key := itemclass.NormalizeKey(name); key != "" {
				if _, ok := wiki.FIRItems[key]; !ok {
					wiki.FIRItems[key] = name
				}
			}
		}
	})

	if stash := tableWithHeader(doc, "Stash"); stash != nil {
		walk(stash, func(n *html.Node) {
			if n.DataAtom != atom.Tr {
				return
			}
			th := findFirst(n, func(c *html.Node) bool { return c.DataAtom == atom.Th })
			if th == nil {
				return
			}
			level, err := strconv.Atoi(strings.TrimSpace(textOf(th)))
			if err != nil {
				return
			}
			text := textOf(n)
			for _, m := range owningEdition.FindAllStringSubmatch(text, -1) {
				edition := strings.TrimSpace(m[1])
				if _, ok := wiki.StashEditionLevels[edition]; !ok && edition != "" {
					wiki.StashEditionLevels[edition] = level
				}
			}
			if owningStandard.MatchString(text) {
				if _, ok := wiki.StashEditionLevels["Standard"]; !ok {
					wiki.StashEditionLevels["Standard"] = level
				}
			}
		})
	}

	if circle := tableWithHeader(doc, "Cultist Circle"); circle != nil {
		seen := make(map[string]bool)
		for _, m := range owningEdition.FindAllStringSubmatch(textOf(circle), -1) {
			edition := strings.TrimSpace(m[1])
			if edition != "" && !seen[edition] {
				seen[edition] = true
				wiki.CultistCircleEditions = append(wiki.CultistCircleEditions, edition)
			}
		}
	}

	return wiki, nil
}

// firstItemLink returns the text of the first wiki article link that is not
// the generic found in raid article.
func firstItemLink(li *html.Node) string {
	var name string
	walk(li, func(n *html.Node) {
		if name != "" || n.DataAtom != atom.A {
			return
		}
		href := attr(n, "href")
		if !strings.HasPrefix(href, "/wiki/") {
			return
		}
		if strings.Contains(strings.ToLower(href), "found_in_raid") {
			return
		}
		name = strings.TrimSpace(textOf(n))
	})
	return name
}

func tableWithHeader(doc *html.Node, header string) *html.Node {
	th := findFirst(doc, func(n *html.Node) bool {
		return n.DataAtom == atom.Th && attr(n, "colspan") == "4" && strings.HasPrefix(strings.TrimSpace(textOf(n)), header)
	})
	for n := th; n != nil; n = n.Parent {
		if n.DataAtom == atom.Table {
			return n
		}
	}
	return nil
}

func walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func findFirst(n *html.Node, match func(*html.Node) bool) *html.Node {
	if match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, match); found != nil {
			return found
		}
	}
	return nil
}

func textOf(n *html.Node) string {
	var b strings.Builder
	walk(n, func(c *html.Node) {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	})
	return b.String()
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}
