package splitter

import (
	"archive/zip"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"blocksearch/internal/blockdoc"
)

// ErrCanceled is the distinguished "no result" returned when the
// cancellation token is observed. Output files already written by
// completed units remain on disk.
var ErrCanceled = errors.New("operation canceled")

// ErrNoSections is returned when the document holds no non-empty section
// at the target level.
var ErrNoSections = errors.New("no sections at target level")

// Options configures a Splitter. Callbacks may be nil; a nil Cancel token
// means the run is not cancelable.
type Options struct {
	Template *blockdoc.Document
	Status   func(message string)
	Progress func(percent int)
	Cancel   *Token
	Log      *slog.Logger
}

// Splitter splits one source document into per-section output documents
// with sidecar metadata. It is built once per run and driven from a
// single goroutine; only the cancellation token may be touched from
// elsewhere.
type Splitter struct {
	inputPath  string
	doc        *blockdoc.Document
	classifier *StyleClassifier
	assembler  *Assembler
	sections   []*Section

	status   func(string)
	progress func(int)
	cancel   *Token
	log      *slog.Logger
}

// New builds a splitter over an already-loaded document. inputPath is
// recorded in each section's sidecar as the original source path.
func New(doc *blockdoc.Document, inputPath string, opts Options) *Splitter {
	s := &Splitter{
		inputPath:  inputPath,
		doc:        doc,
		classifier: NewStyleClassifier(doc),
		status:     opts.Status,
		progress:   opts.Progress,
		cancel:     opts.Cancel,
		log:        opts.Log,
	}
	if s.status == nil {
		s.status = func(string) {}
	}
	if s.progress == nil {
		s.progress = func(int) {}
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	s.assembler = NewAssembler(opts.Template, s.log)
	return s
}

// Cancel requests cooperative cancellation of the current operation.
func (s *Splitter) Cancel() {
	s.cancel.Cancel()
	s.status("Cancellation requested")
}

// Clean strips noise headings from the working copy before parsing.
// Returns false when the scan was canceled.
func (s *Splitter) Clean(target int) bool {
	before := len(s.doc.Paragraphs)
	if !CleanDocument(s.doc, s.classifier, target, s.cancel) {
		s.status("Operation canceled during document cleaning")
		return false
	}
	if removed := before - len(s.doc.Paragraphs); removed > 0 {
		s.status(fmt.Sprintf("Removed %d noise paragraphs", removed))
	}
	return true
}

// ParseSections builds the section list at the target level.
func (s *Splitter) ParseSections(target int) []*Section {
	s.status(fmt.Sprintf("Parsing document sections at heading level %d...", target))
	s.sections = BuildSections(s.doc, s.classifier, target)
	s.status(fmt.Sprintf("Found %d sections at level %d", len(s.sections), target))
	return s.sections
}

// Sections returns the sections from the last ParseSections call.
func (s *Splitter) Sections() []*Section {
	return s.sections
}

// Process splits the document and writes the results. createArchive wraps
// the chosen layout into a single deflate-compressed zip instead of loose
// files; preserveHierarchy places each section under its ancestors' safe
// titles. Returns the path of the created output (directory or archive).
//
// A single bad section is logged and skipped; directory-level failures
// abort the run. On cancellation the error is ErrCanceled and files
// already written stay on disk.
func (s *Splitter) Process(outputDir string, target int, createArchive, preserveHierarchy bool) (string, error) {
	if s.sections == nil {
		s.ParseSections(target)
	}
	if s.cancel.Canceled() {
		return "", ErrCanceled
	}
	if len(s.sections) == 0 {
		return "", ErrNoSections
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	if createArchive {
		return s.writeArchive(outputDir, preserveHierarchy)
	}
	return s.writeFiles(outputDir, preserveHierarchy)
}

// sectionRelPath returns the output path of a section relative to the
// output root, using "/" separators.
func sectionRelPath(section *Section, preserveHierarchy bool) string {
	name := section.SafeTitle + blockdoc.Ext
	if !preserveHierarchy || section.Parent == nil {
		return name
	}
	return strings.Join(append(section.PathComponents(), name), "/")
}

func (s *Splitter) reportSection(idx, total int, section *Section) {
	percent := int(math.Round(float64(idx) / float64(total) * 100))
	s.progress(percent)
	s.status(fmt.Sprintf("Processed section %d/%d: %s", idx, total, section.SafeTitle))
}

func (s *Splitter) writeFiles(outputDir string, preserveHierarchy bool) (string, error) {
	total := len(s.sections)
	created := 0

	for idx, section := range s.sections {
		if s.cancel.Canceled() {
			s.status("Operation canceled by user")
			return "", ErrCanceled
		}

		rel := sectionRelPath(section, preserveHierarchy)
		outPath := filepath.Join(outputDir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
			return "", fmt.Errorf("create section directory: %w", err)
		}

		doc := s.assembler.BuildDocument(section)
		meta := BuildMetadata(section, s.sections, s.inputPath)
		MirrorProperties(doc, meta)

		if err := WriteSidecar(outPath, meta); err != nil {
			s.log.Warn("section skipped", "section", section.SafeTitle, "error", err)
			s.status(fmt.Sprintf("Error processing section '%s': %v", section.SafeTitle, err))
			continue
		}
		if err := blockdoc.Save(outPath, doc); err != nil {
			s.log.Warn("section skipped", "section", section.SafeTitle, "error", err)
			s.status(fmt.Sprintf("Error processing section '%s': %v", section.SafeTitle, err))
			continue
		}
		created++
		s.reportSection(idx+1, total, section)
	}

	if s.cancel.Canceled() {
		s.status("Operation canceled while saving files")
		return "", ErrCanceled
	}
	s.status(fmt.Sprintf("Saved %d documents to: %s", created, outputDir))
	return outputDir, nil
}

func (s *Splitter) writeArchive(outputDir string, preserveHierarchy bool) (string, error) {
	stem := strings.TrimSuffix(filepath.Base(s.inputPath), filepath.Ext(s.inputPath))
	zipPath := filepath.Join(outputDir, stem+"_sections.zip")

	f, err := os.Create(zipPath)
	if err != nil {
		return "", fmt.Errorf("create archive: %w", err)
	}
	defer f.Close()
	archive := zip.NewWriter(f)

	total := len(s.sections)
	for idx, section := range s.sections {
		if s.cancel.Canceled() {
			s.status("Operation canceled by user")
			archive.Close()
			return "", ErrCanceled
		}

		rel := sectionRelPath(section, preserveHierarchy)
		doc := s.assembler.BuildDocument(section)
		meta := BuildMetadata(section, s.sections, s.inputPath)
		MirrorProperties(doc, meta)

		entry, err := newDeflateEntry(archive, rel)
		if err == nil {
			err = blockdoc.Encode(entry, doc)
		}
		if err != nil {
			s.log.Warn("section skipped", "section", section.SafeTitle, "error", err)
			s.status(fmt.Sprintf("Error processing section '%s': %v", section.SafeTitle, err))
			continue
		}

		metaBytes, err := json.MarshalIndent(meta, "", "  ")
		if err == nil {
			var metaEntry io.Writer
			metaEntry, err = newDeflateEntry(archive, rel+MetaSuffix)
			if err == nil {
				_, err = metaEntry.Write(metaBytes)
			}
		}
		if err != nil {
			s.log.Warn("sidecar skipped", "section", section.SafeTitle, "error", err)
		}

		s.reportSection(idx+1, total, section)
	}

	if err := archive.Close(); err != nil {
		return "", fmt.Errorf("finalize archive: %w", err)
	}
	s.status(fmt.Sprintf("Created archive at: %s", zipPath))
	return zipPath, nil
}

func newDeflateEntry(w *zip.Writer, name string) (io.Writer, error) {
	header := &zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: time.Now(),
	}
	entry, err := w.CreateHeader(header)
	if err != nil {
		return nil, fmt.Errorf("create archive entry %s: %w", name, err)
	}
	return entry, nil
}
