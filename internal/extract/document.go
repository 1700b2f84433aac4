package extract

import (
	"archive/zip"
	"bytes"
	"cmp"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/richardlehane/mscfb"
	"github.com/rs/zerolog/log"

	"poextract/internal/domain"
)

const (
	docxBodyPart     = "word/document.xml"
	wordStreamName   = "WordDocument"
	minPrintableRun  = 4
	wordprocessingNS = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
)

var zipMagic = []byte("PK\x03\x04")

// DocumentExtractor reads Word documents: OOXML (.docx) packages and legacy
// compound-file (.doc) documents. Documents are read entirely in memory.
type DocumentExtractor struct {
	wrapWidth int
}

// NewDocumentExtractor creates a DocumentExtractor that wraps text to wrapWidth columns.
func NewDocumentExtractor(wrapWidth int) *DocumentExtractor {
	return &DocumentExtractor{wrapWidth: wrapWidth}
}

func (e *DocumentExtractor) Extract(ctx context.Context, doc *domain.Document) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var (
		text string
		err  error
	)
	if bytes.HasPrefix(doc.Data, zipMagic) {
		text, err = docxText(doc.Data)
	} else {
		text, err = legacyDocText(doc.Data)
	}
	if err != nil {
		log.Warn().Err(err).Str("ref", doc.Ref).Str("ext", doc.Ext()).Msg("failed to read word document")
		return "", fmt.Errorf("%w: %w", domain.ErrNoTextExtracted, err)
	}

	wrapped := Wrap(text, e.wrapWidth)
	if wrapped == "" {
		return "", fmt.Errorf("%w: empty document", domain.ErrNoTextExtracted)
	}
	return wrapped, nil
}

// docxText returns the paragraph text of the main document part of a .docx package.
func docxText(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("opening docx: %w", err)
	}
	for _, f := range zr.File {
		if f.Name != docxBodyPart {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("opening %s: %w", docxBodyPart, err)
		}
		defer rc.Close()
		return wordprocessingText(rc)
	}
	return "", fmt.Errorf("docx has no %s", docxBodyPart)
}

// wordprocessingText walks a WordprocessingML body and collects run text.
// Paragraph ends and breaks become newlines, tabs become tab characters.
func wordprocessingText(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)
	var b strings.Builder
	inText := false
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("decoding %s: %w", docxBodyPart, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space != wordprocessingNS {
				continue
			}
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				b.WriteByte('\t')
			case "br", "cr":
				b.WriteByte('\n')
			}
		case xml.EndElement:
			if t.Name.Space != wordprocessingNS {
				continue
			}
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				b.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}
	return b.String(), nil
}

// legacyDocText reads the WordDocument stream of a compound-file .doc and
// returns its printable text runs.
func legacyDocText(data []byte) (string, error) {
	r, err := mscfb.New(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("opening compound file: %w", err)
	}
	for entry, err := r.Next(); err == nil; entry, err = r.Next() {
		if entry.Name != wordStreamName {
			continue
		}
		// a stream cannot be larger than the file holding it
		if entry.Size < 0 || entry.Size > int64(len(data)) {
			return "", fmt.Errorf("%s stream declares %d bytes in a %d byte file", wordStreamName, entry.Size, len(data))
		}
		stream := make([]byte, entry.Size)
		n, err := io.ReadFull(entry, stream)
		if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("reading %s stream: %w", wordStreamName, err)
		}
		return printableRuns(stream[:n], minPrintableRun), nil
	}
	return "", fmt.Errorf("compound file has no %s stream", wordStreamName)
}

// textRun is a printable run and its byte offset in the stream.
type textRun struct {
	off  int
	text string
}

// printableRuns collects runs of at least minRun printable characters stored
// either as single bytes or as UTF-16LE code units, in stream order. Runs are
// newline-separated.
func printableRuns(data []byte, minRun int) string {
	runs := append(byteRuns(data, minRun), utf16Runs(data, minRun)...)
	slices.SortStableFunc(runs, func(a, b textRun) int {
		return cmp.Compare(a.off, b.off)
	})
	texts := make([]string, len(runs))
	for i, r := range runs {
		texts[i] = r.text
	}
	return strings.Join(texts, "\n")
}

func isPrintable(c byte) bool {
	return c == '\t' || (c >= 0x20 && c < 0x7f)
}

func byteRuns(data []byte, minRun int) []textRun {
	var runs []textRun
	start := -1
	flush := func(end int) {
		if start >= 0 && end-start >= minRun {
			runs = append(runs, textRun{off: start, text: string(data[start:end])})
		}
		start = -1
	}
	for i, c := range data {
		if isPrintable(c) {
			if start < 0 {
				start = i
			}
			continue
		}
		flush(i)
	}
	flush(len(data))
	return runs
}

func utf16Runs(data []byte, minRun int) []textRun {
	var runs []textRun
	var cur []rune
	start := 0
	flush := func() {
		if len(cur) >= minRun {
			runs = append(runs, textRun{off: start, text: string(cur)})
		}
		cur = cur[:0]
	}
	for i := 0; i+1 < len(data); i += 2 {
		lo, hi := data[i], data[i+1]
		if hi == 0 && isPrintable(lo) {
			if len(cur) == 0 {
				start = i
			}
			cur = append(cur, rune(lo))
			continue
		}
		if hi != 0 {
			if r := rune(lo) | rune(hi)<<8; r >= 0xa0 && utf8.ValidRune(r) {
				if len(cur) > 0 {
					cur = append(cur, r)
					continue
				}
			}
		}
		flush()
	}
	flush()
	return runs
}
