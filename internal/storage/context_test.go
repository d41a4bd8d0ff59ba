package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFileContextRoundTrip(t *testing.T) {
	dir := t.TempDir()
	c := NewFileContext(dir)
	ctx := context.Background()

	ok, err := c.Exists(ctx, "missing.bin")
	if err != nil || ok {
		t.Fatalf("expected missing file to not exist, got ok=%v err=%v", ok, err)
	}

	h, err := c.OpenToWrite(ctx, "level0/a/b/slab.bin")
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Write(ctx, h, 4, []byte("DATA")); err != nil {
		t.Fatal(err)
	}
	if err := c.Write(ctx, h, 0, []byte("HEAD")); err != nil {
		t.Fatal(err)
	}
	if err := c.CloseToWrite(ctx, h); err != nil {
		t.Fatal(err)
	}

	ok, err = c.Exists(ctx, "level0/a/b/slab.bin")
	if err != nil || !ok {
		t.Fatalf("expected written file to exist, got ok=%v err=%v", ok, err)
	}

	full, err := c.ReadFull(ctx, "level0/a/b/slab.bin")
	if err != nil {
		t.Fatal(err)
	}
	if string(full) != "HEADDATA" {
		t.Fatalf("unexpected content: %q", full)
	}

	buf := make([]byte, 4)
	n, err := c.Read(ctx, buf, 4, 4, "level0/a/b/slab.bin")
	if err != nil || n != 4 || string(buf) != "DATA" {
		t.Fatalf("unexpected ranged read: n=%d buf=%q err=%v", n, buf, err)
	}

	if _, err := os.Stat(filepath.Join(dir, "level0/a/b/slab.bin")); err != nil {
		t.Fatalf("expected file on disk: %v", err)
	}
}

func TestParsePath(t *testing.T) {
	p, err := ParsePath("s3://mybucket/pyramid/level0/slab.bin")
	if err != nil {
		t.Fatal(err)
	}
	if p.Type != TypeS3 || p.Container != "mybucket" || p.Name != "pyramid/level0/slab.bin" {
		t.Fatalf("unexpected parse: %+v", p)
	}

	if _, err := ParsePath("not-a-path"); err == nil {
		t.Fatal("expected error for malformed path")
	}
	if _, err := ParsePath("ftp://container/name"); err == nil {
		t.Fatal("expected error for unsupported type")
	}
}
