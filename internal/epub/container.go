package epub

import "encoding/xml"

const (
	containerPath = "META-INF/container.xml"
	packagePath   = "OEBPS/content.opf"
	ncxPath       = "OEBPS/toc.ncx"
	contentDir    = "OEBPS/"

	mimetypePath = "mimetype"
	mimetype     = "application/epub+zip"
)

type containerXML struct {
	XMLName   xml.Name   `xml:"urn:oasis:names:tc:opendocument:xmlns:container container"`
	Version   string     `xml:"version,attr"`
	RootFiles []rootFile `xml:"rootfiles>rootfile"`
}

type rootFile struct {
	FullPath  string `xml:"full-path,attr"`
	MediaType string `xml:"media-type,attr"`
}

func newContainer() containerXML {
	return containerXML{
		Version: "1.0",
		RootFiles: []rootFile{{
			FullPath:  packagePath,
			MediaType: "application/oebps-package+xml",
		}},
	}
}
