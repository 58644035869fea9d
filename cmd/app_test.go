package cmd

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-minirt/pkg/loaders"
)

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := NewApp()
	app.Writer = &out
	app.ErrWriter = &out
	err := app.Run(append([]string{"minirt"}, args...))
	return out.String(), err
}

func TestRenderCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "frames", "red.png")

	if _, err := runApp(t, "render", "--width", "64", "--height", "48", "--workers", "2", "-o", out, "builtin:red-sphere"); err != nil {
		t.Fatalf("render failed: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("Expected output file: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("Output is not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 48 {
		t.Errorf("Expected 64x48, got %v", b)
	}
}

func TestRenderCommand_Scale(t *testing.T) {
	out := filepath.Join(t.TempDir(), "half.png")

	if _, err := runApp(t, "render", "--width", "40", "--height", "20", "--scale", "0.5", "-o", out, "builtin:default"); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 20 || cfg.Height != 10 {
		t.Errorf("Expected 20x10, got %dx%d", cfg.Width, cfg.Height)
	}
}

func TestRenderCommand_Errors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		args []string
	}{
		{"missing scene", []string{"render"}},
		{"unknown builtin", []string{"render", "builtin:nope"}},
		{"wrong extension", []string{"render", "scene.txt"}},
		{"missing file", []string{"render", filepath.Join(dir, "missing.rt")}},
		{"bad scale", []string{"render", "--width", "8", "--height", "8", "--scale", "0", "-o", filepath.Join(dir, "x.png"), "builtin:default"}},
		{"bad size", []string{"render", "--width", "0", "builtin:default"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := runApp(t, tt.args...); err == nil {
				t.Error("Expected error")
			}
		})
	}
}

func TestInfoCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.rt")
	content := `A 0.2 255,255,255
C 0,0,0 0,0,-1 60
L 0,5,-5 0.7
sp 0,0,-5 2 255,0,0 cb 0.5
sp 2,0,-5 2 0,255,0 0.5 16
pl 0,-1,0 0,1,0 128,128,128
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := runApp(t, "info", path)
	if err != nil {
		t.Fatalf("info failed: %v", err)
	}
	for _, want := range []string{"sphere", "plane", "checker 1 bump 0 specular 1", "TOTAL"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected info output to contain %q:\n%s", want, out)
		}
	}
}

func TestConvertAndEditCommands(t *testing.T) {
	dir := t.TempDir()
	obj := filepath.Join(dir, "tri.obj")
	if err := os.WriteFile(obj, []byte("v 0 0 0\nv 2 0 0\nv 0 2 0\nf 1 2 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	converted := filepath.Join(dir, "tri.rt")
	if _, err := runApp(t, "convert", obj, converted); err != nil {
		t.Fatalf("convert failed: %v", err)
	}

	steps := []struct {
		command string
		arg     string
	}{
		{"move", "1,0,0"},
		{"reorient", "0,90,0"},
		{"resize", "2"},
	}
	in := converted
	for _, step := range steps {
		out := filepath.Join(dir, step.command+".rt")
		if _, err := runApp(t, step.command, in, out, step.arg); err != nil {
			t.Fatalf("%s failed: %v", step.command, err)
		}
		sc, err := loaders.LoadRT(out)
		if err != nil {
			t.Fatalf("%s output does not load: %v", step.command, err)
		}
		if len(sc.Primitives) != 1 {
			t.Errorf("%s: expected 1 triangle, got %d", step.command, len(sc.Primitives))
		}
		in = out
	}

	if _, err := runApp(t, "resize", in, filepath.Join(dir, "bad.rt"), "-1"); err == nil {
		t.Error("Expected error for negative resize factor")
	}
	if _, err := os.Stat(filepath.Join(dir, "bad.rt")); !os.IsNotExist(err) {
		t.Error("Expected failed output to be removed")
	}
	if _, err := runApp(t, "move", in, in, "1,1,1"); err == nil {
		t.Error("Expected error when input and output are the same file")
	}
}
