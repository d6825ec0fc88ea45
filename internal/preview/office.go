package preview

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"iter"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Docx previews the paragraphs of a Word document.
var Docx Previewer = Func(func(path string, _ int) (iter.Seq[string], error) {
	return zipXMLLines(path, []string{"word/document.xml"}, xmlText{text: map[string]bool{"t": true}})
})

// Odt previews the paragraphs and headings of an OpenDocument text file.
var Odt Previewer = Func(func(path string, _ int) (iter.Seq[string], error) {
	return zipXMLLines(path, []string{"content.xml"}, xmlText{paragraphs: map[string]bool{"p": true, "h": true}})
})

// Pptx previews the text of each slide of a PowerPoint deck.
var Pptx Previewer = Func(func(path string, _ int) (iter.Seq[string], error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	var slides []string
	for _, f := range zr.File {
		if slideName.MatchString(f.Name) {
			slides = append(slides, f.Name)
		}
	}
	sort.Slice(slides, func(i, j int) bool { return slideNumber(slides[i]) < slideNumber(slides[j]) })

	var lines []string
	for i, name := range slides {
		body, err := readXML(zr, name, xmlText{text: map[string]bool{"t": true}})
		if err != nil {
			return nil, err
		}
		lines = append(lines, fmt.Sprintf("--- Slide %d ---", i+1))
		lines = append(lines, body...)
	}
	return fromSlice(lines), nil
})

var slideName = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

func slideNumber(name string) int {
	m := slideName.FindStringSubmatch(name)
	if m == nil {
		return 0
	}
	n, _ := strconv.Atoi(m[1])
	return n
}

// xmlText describes how to pull paragraphs of text out of an office XML part.
// With text set, only character data inside those elements counts; otherwise
// all character data inside a paragraph does.
type xmlText struct {
	text       map[string]bool
	paragraphs map[string]bool
}

func (x xmlText) isParagraph(local string) bool {
	if x.paragraphs == nil {
		return local == "p"
	}
	return x.paragraphs[local]
}

func zipXMLLines(path string, parts []string, x xmlText) (iter.Seq[string], error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	var lines []string
	for _, part := range parts {
		body, err := readXML(zr, part, x)
		if err != nil {
			return nil, err
		}
		lines = append(lines, body...)
	}
	return fromSlice(lines), nil
}

func readXML(zr *zip.ReadCloser, name string, x xmlText) ([]string, error) {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return x.paragraphsOf(rc)
	}
	return nil, fmt.Errorf("%s not found in document", name)
}

// paragraphsOf walks the XML token stream, emitting one line per paragraph.
// Empty paragraphs are kept so the document's spacing survives.
func (x xmlText) paragraphsOf(r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)
	var (
		lines   []string
		current strings.Builder
		inPara  int
		inText  int
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch {
			case x.isParagraph(t.Name.Local):
				inPara++
			case x.text[t.Name.Local]:
				inText++
			case t.Name.Local == "tab" && inPara > 0:
				current.WriteString("    ")
			}
		case xml.EndElement:
			switch {
			case x.isParagraph(t.Name.Local):
				inPara--
				if inPara == 0 {
					lines = append(lines, current.String())
					current.Reset()
				}
			case x.text[t.Name.Local]:
				inText--
			}
		case xml.CharData:
			if inPara > 0 && (x.text == nil || inText > 0) {
				current.Write(t)
			}
		}
	}
	return lines, nil
}
