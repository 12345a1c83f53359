// Package automation declares the interface to the host word-processor
// collaborator: clipboard transfer and paste into open editor documents.
// The implementation lives outside this core; Noop stands in when no host
// editor is attached.
package automation

// Paste modes accepted by PasteToActiveDocument.
const (
	PasteAtCursor = "cursor"
	PasteAtEnd    = "end"
)

// ActiveDocument describes one document open in the host editor.
type ActiveDocument struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	WindowIndex int    `json:"window_index"`
	ID          string `json:"id"`
}

// Automator is the word-processor automation channel. Every call is
// best-effort; false means the host refused or is unavailable.
type Automator interface {
	CopyToClipboard(path string) bool
	TransferContent(sourcePath, targetPath string) bool
	PasteToActiveDocument(sourcePath, targetID, mode string) bool
	ListOpenDocuments() []ActiveDocument
}

// Noop is the stand-in automator used when no host editor is attached.
type Noop struct{}

func (Noop) CopyToClipboard(string) bool { return false }

func (Noop) TransferContent(string, string) bool { return false }

func (Noop) PasteToActiveDocument(string, string, string) bool { return false }

func (Noop) ListOpenDocuments() []ActiveDocument { return nil }
