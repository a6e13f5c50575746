package epub

import (
	"encoding/xml"
	"fmt"
	"time"

	"github.com/brogergvhs/noveld/internal/chapters"

	"github.com/google/uuid"
)

const DefaultLanguage = "en"

// File is one entry of the book archive.
type File struct {
	Name string
	Data []byte
}

// FileSet is an assembled book in archive order.
type FileSet struct {
	Title    string
	Modified time.Time
	Files    []File
}

// Lookup returns the file stored under name.
func (fs *FileSet) Lookup(name string) (File, bool) {
	for _, f := range fs.Files {
		if f.Name == name {
			return f, true
		}
	}

	return File{}, false
}

// Assembler builds FileSets. The zero value is usable: it writes "en" as the
// language and stamps books with the current time.
type Assembler struct {
	Language string
	Now      func() time.Time
}

func NewAssembler(language string) *Assembler {
	return &Assembler{Language: language}
}

type bookInfo struct {
	Title      string
	Identifier string
	Language   string
	Modified   time.Time
}

// manifestEntry is the per-chapter row shared by manifest, spine and
// navigation map. All three are generated from the same slice.
type manifestEntry struct {
	ID    string
	Href  string
	Title string
}

func bookManifest(chs []chapters.Chapter) []manifestEntry {
	out := make([]manifestEntry, len(chs))
	for i, ch := range chs {
		name := chapters.FileName(i)
		out[i] = manifestEntry{ID: name, Href: name, Title: ch.Title}
	}

	return out
}

// BookID is the dc:identifier written for a title. It is stable across runs.
func BookID(title string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("noveld:"+title)).URN()
}

// Assemble lays out title and chs as an EPUB file tree. Chapter order is kept
// as given.
func (a *Assembler) Assemble(title string, chs []chapters.Chapter) (*FileSet, error) {
	now := time.Now
	if a.Now != nil {
		now = a.Now
	}
	lang := a.Language
	if lang == "" {
		lang = DefaultLanguage
	}

	info := bookInfo{
		Title:      title,
		Identifier: BookID(title),
		Language:   lang,
		Modified:   now().UTC().Truncate(time.Second),
	}
	entries := bookManifest(chs)

	fs := &FileSet{
		Title:    title,
		Modified: info.Modified,
		Files:    make([]File, 0, len(chs)+4),
	}
	fs.Files = append(fs.Files, File{Name: mimetypePath, Data: []byte(mimetype)})

	if err := fs.addXML(containerPath, newContainer()); err != nil {
		return nil, err
	}
	if err := fs.addXML(packagePath, newPackage(info, entries)); err != nil {
		return nil, err
	}
	if err := fs.addXML(ncxPath, newNCX(info, entries)); err != nil {
		return nil, err
	}

	for i, ch := range chs {
		if err := fs.addXML(contentDir+entries[i].Href, newChapterDoc(ch.Title, ch.Content)); err != nil {
			return nil, err
		}
	}

	return fs, nil
}

func (fs *FileSet) addXML(name string, v any) error {
	data, err := xml.Marshal(v)
	if err != nil {
		return &AssemblyError{Op: fmt.Sprintf("marshal %s", name), Err: err}
	}

	buf := make([]byte, 0, len(xml.Header)+len(data))
	buf = append(buf, xml.Header...)
	buf = append(buf, data...)
	fs.Files = append(fs.Files, File{Name: name, Data: buf})

	return nil
}
