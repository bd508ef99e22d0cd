package pipeline

import (
	"archive/zip"
	"bytes"
	"image/jpeg"
	"testing"

	"unsharp-annihilator/filter"
)

func TestExportArchiveWithoutResults(t *testing.T) {
	pipeline := newTestPipeline(t, &fakeDecoder{})

	var buf bytes.Buffer
	if err := pipeline.ExportArchive(&buf); err == nil {
		t.Fatal("expected an error with no batch results")
	}
}

func TestExportArchivePreservesResultOrder(t *testing.T) {
	pipeline := newTestPipeline(t, &fakeDecoder{})

	names := []string{"first.png", "second.png", "third.png"}
	for _, name := range names {
		if _, err := pipeline.AddImage(name, []byte(name)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if _, err := pipeline.RunBatch(filter.AlgorithmUnsharp, unsharpParams()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var buf bytes.Buffer
	if err := pipeline.ExportArchive(&buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reader, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("archive unreadable: %v", err)
	}

	want := []string{"sharpened_first.jpg", "sharpened_second.jpg", "sharpened_third.jpg"}
	if len(reader.File) != len(want) {
		t.Fatalf("archive has %d entries, want %d", len(reader.File), len(want))
	}

	for i, entry := range reader.File {
		if entry.Name != want[i] {
			t.Errorf("entry %d = %q, want %q", i, entry.Name, want[i])
		}

		rc, err := entry.Open()
		if err != nil {
			t.Fatalf("open entry %s: %v", entry.Name, err)
		}
		decoded, decodeErr := jpeg.Decode(rc)
		rc.Close()
		if decodeErr != nil {
			t.Errorf("entry %s is not a valid JPEG: %v", entry.Name, decodeErr)
			continue
		}
		if decoded.Bounds().Empty() {
			t.Errorf("entry %s decoded to an empty image", entry.Name)
		}
	}
}
