package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/taigrr/teapot/pkg/models"
)

func TestPack(t *testing.T) {
	dir := t.TempDir()
	obj := filepath.Join(dir, "tri.obj")
	wav := filepath.Join(dir, "beep.wav")
	if err := os.WriteFile(obj, []byte("v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(wav, []byte{1, 2}, 0o644); err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(dir, "assets.pak")
	var report bytes.Buffer
	if err := pack(out, []string{obj, wav}, &report); err != nil {
		t.Fatalf("pack: %v", err)
	}
	if !strings.Contains(report.String(), "Packed asset: tri.obj (obj)") {
		t.Errorf("report = %q", report.String())
	}

	p, err := models.OpenPak(out)
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close()

	e, ok := p.Find("beep.wav")
	if !ok || e.Type != models.AssetSound || e.Size != 2 {
		t.Errorf("beep.wav entry = %+v, found %v", e, ok)
	}

	m, err := models.LoadModelFromPak(out, "tri.obj")
	if err != nil {
		t.Fatal(err)
	}
	if m.TriangleCount() != 1 {
		t.Errorf("faces = %d, want 1", m.TriangleCount())
	}
}

func TestPackErrors(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a", "x.obj")
	b := filepath.Join(dir, "b", "x.obj")
	for _, p := range []string{a, b} {
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	var report bytes.Buffer
	if err := pack(filepath.Join(dir, "dup.pak"), []string{a, b}, &report); err == nil {
		t.Error("duplicate names accepted")
	}
	if err := pack(filepath.Join(dir, "missing.pak"), []string{filepath.Join(dir, "nope.obj")}, &report); err == nil {
		t.Error("missing input accepted")
	}
}
