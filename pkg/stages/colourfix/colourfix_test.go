package colourfix

import (
	"context"
	"errors"
	"testing"

	"github.com/user/resampler/pkg/adapters/logger"
	"github.com/user/resampler/pkg/mocks"
	"github.com/user/resampler/pkg/pipeline"
)

func TestStage_Execute(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.WriteFile("clips/in.mp4", []byte("original"))

	fixer := &mocks.ColourFixer{
		FixFunc: func(ctx context.Context, src, dst string) error {
			return fs.WriteFile(dst, []byte("fixed"))
		},
	}

	result, err := NewStage(fixer, fs, logger.NewNoop()).Execute(context.Background(), pipeline.ColourFixInput{InputPath: "clips/in.mp4"})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if result.OriginalPath != "clips/to-fix_in.mp4" || result.SourcePath != "clips/in.mp4" {
		t.Errorf("unexpected result: %+v", result)
	}
	if len(fixer.Calls) != 1 || fixer.Calls[0] != [2]string{"clips/to-fix_in.mp4", "clips/in.mp4"} {
		t.Errorf("unexpected Fix calls: %v", fixer.Calls)
	}
	if data, _ := fs.GetFile("clips/in.mp4"); string(data) != "fixed" {
		t.Errorf("source = %q, want fixed copy", data)
	}

	if err := Restore(fs, result); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if data, _ := fs.GetFile("clips/in.mp4"); string(data) != "original" {
		t.Errorf("source = %q after Restore, want original", data)
	}
	if ok, _ := fs.Exists("clips/to-fix_in.mp4"); ok {
		t.Error("to-fix_ file left behind")
	}
}

func TestStage_FixFailureRestoresOriginal(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.WriteFile("in.mp4", []byte("original"))

	fixErr := errors.New("ffmpeg failed")
	fixer := &mocks.ColourFixer{
		FixFunc: func(ctx context.Context, src, dst string) error {
			fs.WriteFile(dst, []byte("partial"))
			return fixErr
		},
	}

	_, err := NewStage(fixer, fs, logger.NewNoop()).Execute(context.Background(), pipeline.ColourFixInput{InputPath: "in.mp4"})
	if !errors.Is(err, fixErr) {
		t.Fatalf("expected fix error, got %v", err)
	}
	if data, _ := fs.GetFile("in.mp4"); string(data) != "original" {
		t.Errorf("source = %q, want original restored", data)
	}
	if paths := fs.Paths(); len(paths) != 1 {
		t.Errorf("unexpected files left: %v", paths)
	}
}

func TestStage_RefusesExistingBackup(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.WriteFile("in.mp4", []byte("a"))
	fs.WriteFile("to-fix_in.mp4", []byte("b"))

	fixer := &mocks.ColourFixer{}
	if _, err := NewStage(fixer, fs, logger.NewNoop()).Execute(context.Background(), pipeline.ColourFixInput{InputPath: "in.mp4"}); err == nil {
		t.Fatal("expected error when to-fix_ already exists")
	}
	if len(fixer.Calls) != 0 || len(fs.Renames) != 0 {
		t.Error("nothing may be touched when the backup name is taken")
	}
}
