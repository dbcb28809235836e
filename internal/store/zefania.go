package store

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"github.com/FocuswithJustin/Scriptura/core/canon"
)

// Precompiled XPath expressions for the Zefania XML schema:
// <XMLBIBLE><BIBLEBOOK bnumber bname><CHAPTER cnumber><VERS vnumber>text.
var (
	zefaniaBooks    = xpath.MustCompile("//XMLBIBLE/BIBLEBOOK")
	zefaniaChapters = xpath.MustCompile("CHAPTER")
	zefaniaVerses   = xpath.MustCompile("VERS")
	zefaniaInfo     = xpath.MustCompile("//XMLBIBLE/INFORMATION")
)

func parseZefania(data []byte) (Meta, []record, error) {
	doc, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return Meta{}, nil, fmt.Errorf("parsing Zefania XML: %w", err)
	}

	bookNodes := xmlquery.QuerySelectorAll(doc, zefaniaBooks)
	if len(bookNodes) == 0 {
		return Meta{}, nil, fmt.Errorf("no BIBLEBOOK elements; not a Zefania bible")
	}

	var records []record
	for _, bookNode := range bookNodes {
		name := zefaniaBookName(bookNode)
		if name == "" {
			continue
		}
		for _, chNode := range xmlquery.QuerySelectorAll(bookNode, zefaniaChapters) {
			chapter, err := strconv.Atoi(chNode.SelectAttr("cnumber"))
			if err != nil {
				continue
			}
			for _, vNode := range xmlquery.QuerySelectorAll(chNode, zefaniaVerses) {
				verse, err := strconv.Atoi(vNode.SelectAttr("vnumber"))
				if err != nil {
					continue
				}
				text := strings.Join(strings.Fields(vNode.InnerText()), " ")
				records = append(records, record{book: name, chapter: chapter, verse: verse, text: text})
			}
		}
	}

	return zefaniaMeta(doc), records, nil
}

// zefaniaBookName prefers the bname attribute and falls back to the bnumber
// canon ordinal.
func zefaniaBookName(node *xmlquery.Node) string {
	if name := node.SelectAttr("bname"); name != "" {
		return name
	}
	n, err := strconv.Atoi(node.SelectAttr("bnumber"))
	if err != nil {
		return ""
	}
	b, ok := canon.ByOrdinal(n)
	if !ok {
		return ""
	}
	return b.Name
}

// zefaniaMeta maps the INFORMATION block onto version metadata.
func zefaniaMeta(doc *xmlquery.Node) Meta {
	info := xmlquery.QuerySelector(doc, zefaniaInfo)
	if info == nil {
		return Meta{}
	}
	field := func(name string) string {
		if n := xmlquery.FindOne(info, name); n != nil {
			return strings.TrimSpace(n.InnerText())
		}
		return ""
	}
	return Meta{
		Name:        field("title"),
		ShortName:   field("identifier"),
		Module:      field("identifier"),
		Year:        field("date"),
		Publisher:   field("publisher"),
		Owner:       field("owner"),
		Description: field("description"),
		Lang:        field("language"),
	}
}
