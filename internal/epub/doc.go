// Package epub turns an ordered chapter list into an EPUB container.
//
// Assembly is split in two steps. An Assembler builds a FileSet, which is the
// in-memory file tree of the book (container descriptor, OPF package, NCX
// navigation and one XHTML document per chapter). Write serializes a FileSet
// into a zip archive. Neither step performs I/O beyond the writer it is given.
//
// Archive layout:
//
//	mimetype
//	META-INF/container.xml
//	OEBPS/content.opf
//	OEBPS/toc.ncx
//	OEBPS/chapter1.xhtml … OEBPS/chapterN.xhtml
package epub
