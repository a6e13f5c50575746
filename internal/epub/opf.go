package epub

import "encoding/xml"

const (
	bookIDRef = "book-id"

	mediaTypeXHTML = "application/xhtml+xml"
	mediaTypeNCX   = "application/x-dtbncx+xml"

	// modifiedLayout is dcterms:modified: UTC, whole seconds.
	modifiedLayout = "2006-01-02T15:04:05Z"
)

type opfPackage struct {
	XMLName  xml.Name    `xml:"http://www.idpf.org/2007/opf package"`
	Version  string      `xml:"version,attr"`
	UniqueID string      `xml:"unique-identifier,attr"`
	Metadata opfMetadata `xml:"metadata"`
	Manifest opfManifest `xml:"manifest"`
	Spine    opfSpine    `xml:"spine"`
}

type opfMetadata struct {
	XmlnsDC    string        `xml:"xmlns:dc,attr"`
	Identifier opfIdentifier `xml:"dc:identifier"`
	Title      string        `xml:"dc:title"`
	Language   string        `xml:"dc:language"`
	Metas      []opfMeta     `xml:"meta"`
}

type opfIdentifier struct {
	ID    string `xml:"id,attr"`
	Value string `xml:",chardata"`
}

type opfMeta struct {
	Property string `xml:"property,attr"`
	Value    string `xml:",chardata"`
}

type opfManifest struct {
	Items []opfItem `xml:"item"`
}

type opfItem struct {
	ID        string `xml:"id,attr"`
	Href      string `xml:"href,attr"`
	MediaType string `xml:"media-type,attr"`
}

type opfSpine struct {
	Toc      string       `xml:"toc,attr"`
	ItemRefs []opfItemRef `xml:"itemref"`
}

type opfItemRef struct {
	IDRef string `xml:"idref,attr"`
}

func newPackage(b bookInfo, entries []manifestEntry) opfPackage {
	pkg := opfPackage{
		Version:  "3.0",
		UniqueID: bookIDRef,
		Metadata: opfMetadata{
			XmlnsDC:    "http://purl.org/dc/elements/1.1/",
			Identifier: opfIdentifier{ID: bookIDRef, Value: b.Identifier},
			Title:      b.Title,
			Language:   b.Language,
			Metas: []opfMeta{{
				Property: "dcterms:modified",
				Value:    b.Modified.Format(modifiedLayout),
			}},
		},
		Spine: opfSpine{Toc: "ncx"},
	}

	for _, e := range entries {
		pkg.Manifest.Items = append(pkg.Manifest.Items, opfItem{
			ID:        e.ID,
			Href:      e.Href,
			MediaType: mediaTypeXHTML,
		})
		pkg.Spine.ItemRefs = append(pkg.Spine.ItemRefs, opfItemRef{IDRef: e.ID})
	}

	pkg.Manifest.Items = append(pkg.Manifest.Items, opfItem{
		ID:        "ncx",
		Href:      "toc.ncx",
		MediaType: mediaTypeNCX,
	})

	return pkg
}
