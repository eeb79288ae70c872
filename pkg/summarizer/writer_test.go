package summarizer

import (
	"errors"
	"testing"

	"github.com/user/resampler/pkg/mocks"
)

func TestWriter_Write(t *testing.T) {
	fs := mocks.NewFileSystem()
	w := NewWriter(FormatFunc(func(s *Summary) string { return "report:" + s.Source.Path }), fs)

	summary := NewBuilder().WithSource(SourceInfo{Path: "in.mp4"}).Build()
	if err := w.Write("reports/run.md", summary); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, ok := fs.GetFile("reports/run.md")
	if !ok || string(data) != "report:in.mp4" {
		t.Errorf("unexpected report %q", data)
	}
	if ok, _ := fs.Exists("reports"); !ok {
		t.Error("expected parent directory to be created")
	}
}

type failingFS struct {
	*mocks.FileSystem
}

func (failingFS) WriteFile(string, []byte) error {
	return errors.New("disk full")
}

func TestWriter_WriteError(t *testing.T) {
	w := NewWriter(NewMarkdownFormatter(), failingFS{mocks.NewFileSystem()})
	if err := w.Write("run.md", NewSummary()); err == nil {
		t.Error("expected error")
	}
}
