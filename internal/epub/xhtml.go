package epub

import "encoding/xml"

type xhtmlDoc struct {
	XMLName xml.Name  `xml:"http://www.w3.org/1999/xhtml html"`
	Title   string    `xml:"head>title"`
	Body    xhtmlBody `xml:"body"`
}

// xhtmlBody writes the heading followed by the chapter fragment as is.
// The fragment is expected to be well-formed already.
type xhtmlBody struct {
	Heading string `xml:"h1"`
	Content string `xml:",innerxml"`
}

func newChapterDoc(title, content string) xhtmlDoc {
	return xhtmlDoc{
		Title: title,
		Body:  xhtmlBody{Heading: title, Content: content},
	}
}
