package export

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/go-theft-craft/volume/pkg/block"
	pc18 "github.com/go-theft-craft/volume/pkg/gamedata/versions/pc_1_8"
	"github.com/go-theft-craft/volume/pkg/volume"
	"github.com/go-theft-craft/volume/pkg/world/gen"
)

var registry = block.NewRegistry(pc18.New())

func terrain(t *testing.T, start, size volume.Vec3i) *volume.Immutable {
	t.Helper()
	m, err := volume.New(registry, start, size)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := gen.NewTerrainGenerator(3).Fill(m); err != nil {
		t.Fatalf("Fill: %v", err)
	}
	im, err := m.Seal()
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	return im
}

func roundTrip(t *testing.T, im *volume.Immutable, compress bool) ([]byte, *volume.Immutable) {
	t.Helper()
	var buf bytes.Buffer
	if err := Encode(&buf, registry, im, compress); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	raw := append([]byte(nil), buf.Bytes()...)

	m, err := Decode(&buf, registry)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	back, err := m.Freeze()
	if err != nil {
		t.Fatalf("Freeze: %v", err)
	}
	return raw, back
}

func TestRoundTrip(t *testing.T) {
	cases := map[string]struct {
		start, size volume.Vec3i
	}{
		"global": {volume.Vec3i{X: -8, Y: 50, Z: 4}, volume.Vec3i{X: 16, Y: 24, Z: 16}},
		"local":  {volume.Vec3i{X: 0, Y: 60, Z: 0}, volume.Vec3i{X: 5, Y: 5, Z: 5}},
	}
	for name, tc := range cases {
		for _, compress := range []bool{false, true} {
			im := terrain(t, tc.start, tc.size)
			raw, back := roundTrip(t, im, compress)

			if !im.Equal(back) {
				t.Errorf("%s compress=%v: decoded buffer differs", name, compress)
			}
			if got := bytes.HasPrefix(raw, zstdMagic); got != compress {
				t.Errorf("%s compress=%v: zstd frame present = %v", name, compress, got)
			}
		}
	}
}

func TestDocumentIsReadableYAML(t *testing.T) {
	m, _ := volume.New(registry, volume.Vec3i{}, volume.Vec3i{X: 2, Y: 1, Z: 1})
	if err := m.SetBlock(1, 0, 0, block.State{ID: 1, Meta: 0}); err != nil {
		t.Fatal(err)
	}
	im, _ := m.Freeze()

	raw, _ := roundTrip(t, im, false)
	text := string(raw)
	for _, want := range []string{"version: pc-1.8", "palette: local", "start: [0, 0, 0]", "1: stone:0"} {
		if !strings.Contains(text, want) {
			t.Errorf("document missing %q:\n%s", want, text)
		}
	}
}

func TestDecodeRejectsTampering(t *testing.T) {
	im := terrain(t, volume.Vec3i{Y: 56}, volume.Vec3i{X: 4, Y: 8, Z: 4})
	doc := NewDocument(registry, im)

	tests := map[string]struct {
		mutate func(*Document)
		want   error
	}{
		"words":   {func(d *Document) { d.Words[0] ^= 1 }, ErrChecksum},
		"blocks":  {func(d *Document) { d.Blocks[0] = "bedrock:0" }, ErrChecksum},
		"version": {func(d *Document) { d.Version = "pc-1.9" }, ErrVersion},
		"format":  {func(d *Document) { d.Format = 2 }, ErrFormat},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := yaml.NewEncoder(&buf).Encode(doc); err != nil {
				t.Fatal(err)
			}
			var d Document
			if err := yaml.Unmarshal(buf.Bytes(), &d); err != nil {
				t.Fatal(err)
			}
			tc.mutate(&d)
			if _, err := d.Buffer(registry); !errors.Is(err, tc.want) {
				t.Errorf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestDecodeRejectsUnknownPaletteKind(t *testing.T) {
	im := terrain(t, volume.Vec3i{Y: 56}, volume.Vec3i{X: 2, Y: 2, Z: 2})
	doc := NewDocument(registry, im)
	doc.Palette = "sparse"
	doc.Checksum = doc.checksum()
	if _, err := doc.Buffer(registry); !errors.Is(err, ErrFormat) {
		t.Errorf("err = %v, want ErrFormat", err)
	}
}

func TestDecodeGarbage(t *testing.T) {
	if _, err := Decode(strings.NewReader("{{{"), registry); err == nil {
		t.Error("expected an error for invalid YAML")
	}
	if _, err := Decode(bytes.NewReader(append(zstdMagic, 1, 2, 3)), registry); err == nil {
		t.Error("expected an error for a broken zstd frame")
	}
}

func TestWriteReadFile(t *testing.T) {
	im := terrain(t, volume.Vec3i{}, volume.Vec3i{X: 16, Y: 16, Z: 16})
	path := filepath.Join(t.TempDir(), "section.yaml.zst")

	if err := WriteFile(path, registry, im, true); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	m, err := ReadFile(path, registry)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	back, _ := m.Freeze()
	if !im.Equal(back) {
		t.Error("file round trip changed the buffer")
	}
	if im.Hash() != back.Hash() {
		t.Error("file round trip changed the hash")
	}
}

func TestWriteFileLeavesNoTempFile(t *testing.T) {
	im := terrain(t, volume.Vec3i{Y: 60}, volume.Vec3i{X: 2, Y: 2, Z: 2})
	dir := t.TempDir()
	path := filepath.Join(dir, "small.yaml")

	for i := 0; i < 2; i++ {
		if err := WriteFile(path, registry, im, false); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "small.yaml" {
		t.Errorf("directory holds %v, want only small.yaml", entries)
	}
}
