package epub

import (
	"encoding/xml"
	"strconv"
)

type ncxDoc struct {
	XMLName  xml.Name  `xml:"http://www.daisy.org/z3986/2005/ncx/ ncx"`
	Version  string    `xml:"version,attr"`
	Head     []ncxMeta `xml:"head>meta"`
	DocTitle string    `xml:"docTitle>text"`
	NavMap   ncxNavMap `xml:"navMap"`
}

type ncxMeta struct {
	Name    string `xml:"name,attr"`
	Content string `xml:"content,attr"`
}

type ncxNavMap struct {
	Points []ncxNavPoint `xml:"navPoint"`
}

type ncxNavPoint struct {
	ID        string     `xml:"id,attr"`
	PlayOrder int        `xml:"playOrder,attr"`
	Label     string     `xml:"navLabel>text"`
	Content   ncxContent `xml:"content"`
}

type ncxContent struct {
	Src string `xml:"src,attr"`
}

func newNCX(b bookInfo, entries []manifestEntry) ncxDoc {
	doc := ncxDoc{
		Version: "2005-1",
		Head: []ncxMeta{
			{Name: "dtb:uid", Content: b.Identifier},
			{Name: "dtb:depth", Content: "1"},
			{Name: "dtb:totalPageCount", Content: "0"},
			{Name: "dtb:maxPageNumber", Content: "0"},
		},
		DocTitle: b.Title,
	}

	for i, e := range entries {
		doc.NavMap.Points = append(doc.NavMap.Points, ncxNavPoint{
			ID:        "navPoint-" + strconv.Itoa(i+1),
			PlayOrder: i + 1,
			Label:     e.Title,
			Content:   ncxContent{Src: e.Href},
		})
	}

	return doc
}
