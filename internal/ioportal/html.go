package ioportal

import (
	"errors"
	"io"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

var errNoTable = errors.New("no table found on the page")

// cell is a table cell with its text and the first hyperlink.
type cell struct {
	text string
	link string
}

// rawTable keeps headers and rows of a scraped or loaded table.
type rawTable struct {
	headers []string
	rows    [][]cell
}

// parseHTML reads the first table of a page. Headers are texts of all th
// elements, every following tr with td elements is a row. Links are
// resolved against the page URL.
func parseHTML(r io.Reader, pageURL string) (*rawTable, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	table := findFirst(doc, "table")
	if table == nil {
		return nil, errNoTable
	}

	base, _ := url.Parse(pageURL)

	res := &rawTable{}
	for _, th := range findAll(table, "th") {
		res.headers = append(res.headers, nodeText(th))
	}

	trs := findAll(table, "tr")
	if len(trs) > 0 {
		trs = trs[1:]
	}
	for _, tr := range trs {
		tds := findAll(tr, "td")
		if len(tds) == 0 {
			continue
		}
		row := make([]cell, len(tds))
		for i, td := range tds {
			row[i] = cell{text: nodeText(td), link: firstLink(td, base)}
		}
		res.rows = append(res.rows, row)
	}
	return res, nil
}

func findFirst(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if res := findFirst(c, tag); res != nil {
			return res
		}
	}
	return nil
}

func findAll(n *html.Node, tag string) []*html.Node {
	var res []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && c.Data == tag {
				res = append(res, c)
			}
			walk(c)
		}
	}
	walk(n)
	return res
}

// nodeText concatenates text pieces of a node and collapses whitespace.
func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}

func firstLink(n *html.Node, base *url.URL) string {
	for _, a := range findAll(n, "a") {
		for _, attr := range a.Attr {
			if attr.Key != "href" || attr.Val == "" {
				continue
			}
			if base == nil {
				return attr.Val
			}
			ref, err := url.Parse(attr.Val)
			if err != nil {
				return attr.Val
			}
			return base.ResolveReference(ref).String()
		}
	}
	return ""
}
