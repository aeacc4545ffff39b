// Package export writes volume buffers as YAML documents, optionally inside
// a zstd frame, and reads them back.
package export

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/zstd"
	"gopkg.in/yaml.v3"

	"github.com/go-theft-craft/volume/pkg/block"
	"github.com/go-theft-craft/volume/pkg/volume"
)

const formatVersion = 1

var (
	ErrFormat   = errors.New("export: unsupported document format")
	ErrVersion  = errors.New("export: document was written for another game data version")
	ErrChecksum = errors.New("export: checksum mismatch")
)

var zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}

// Document is the on-disk form of one buffer. Blocks maps palette ids to
// "<name>:<meta>" identifiers.
type Document struct {
	Format   int               `yaml:"format"`
	Version  string            `yaml:"version"`
	Start    [3]int            `yaml:"start,flow"`
	Size     [3]int            `yaml:"size,flow"`
	Palette  string            `yaml:"palette"`
	Blocks   map[uint32]string `yaml:"blocks"`
	Bits     uint8             `yaml:"bits"`
	Length   int               `yaml:"length"`
	Words    []int64           `yaml:"words,flow"`
	Checksum string            `yaml:"checksum"`
}

// NewDocument describes im using reg's block names.
func NewDocument(reg *block.Registry, im *volume.Immutable) *Document {
	rep := im.Representation()
	start, size := im.Start(), im.Size()

	d := &Document{
		Format:  formatVersion,
		Version: reg.Version(),
		Start:   [3]int{start.X, start.Y, start.Z},
		Size:    [3]int{size.X, size.Y, size.Z},
		Palette: rep.Kind.String(),
		Blocks:  make(map[uint32]string, len(rep.Palette)),
		Bits:    rep.Bits,
		Length:  rep.Length,
		Words:   rep.Words,
	}
	for id, s := range rep.Palette {
		d.Blocks[id] = reg.Name(s)
	}
	d.Checksum = d.checksum()
	return d
}

// Buffer rebuilds the mutable buffer the document describes.
func (d *Document) Buffer(reg *block.Registry, opts ...volume.Option) (*volume.Mutable, error) {
	if d.Format != formatVersion {
		return nil, fmt.Errorf("%w: %d", ErrFormat, d.Format)
	}
	if d.Version != reg.Version() {
		return nil, fmt.Errorf("%w: %q, registry is %q", ErrVersion, d.Version, reg.Version())
	}
	if d.Checksum != d.checksum() {
		return nil, ErrChecksum
	}

	rep := volume.Representation{
		Palette: make(map[uint32]block.State, len(d.Blocks)),
		Bits:    d.Bits,
		Words:   d.Words,
		Length:  d.Length,
	}
	switch d.Palette {
	case volume.PaletteLocal.String():
		rep.Kind = volume.PaletteLocal
	case volume.PaletteGlobal.String():
		rep.Kind = volume.PaletteGlobal
	default:
		return nil, fmt.Errorf("%w: palette kind %q", ErrFormat, d.Palette)
	}
	for id, name := range d.Blocks {
		s, err := reg.Parse(name)
		if err != nil {
			return nil, fmt.Errorf("palette id %d: %w", id, err)
		}
		rep.Palette[id] = s
	}

	start := volume.Vec3i{X: d.Start[0], Y: d.Start[1], Z: d.Start[2]}
	size := volume.Vec3i{X: d.Size[0], Y: d.Size[1], Z: d.Size[2]}
	m, err := volume.FromRepresentation(reg, start, size, rep, opts...)
	if err != nil {
		return nil, fmt.Errorf("rebuild buffer: %w", err)
	}
	return m, nil
}

// checksum covers everything but the checksum field itself.
func (d *Document) checksum() string {
	h := xxhash.New()
	var buf [8]byte
	put := func(v int64) {
		binary.LittleEndian.PutUint64(buf[:], uint64(v))
		h.Write(buf[:])
	}

	put(int64(d.Format))
	h.WriteString(d.Version)
	for _, v := range append(d.Start[:], d.Size[:]...) {
		put(int64(v))
	}
	h.WriteString(d.Palette)
	ids := make([]uint32, 0, len(d.Blocks))
	for id := range d.Blocks {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		put(int64(id))
		h.WriteString(d.Blocks[id])
	}
	put(int64(d.Bits))
	put(int64(d.Length))
	for _, w := range d.Words {
		put(w)
	}
	return strconv.FormatUint(h.Sum64(), 16)
}

// Encode writes im to w, inside a zstd frame when compress is set.
func Encode(w io.Writer, reg *block.Registry, im *volume.Immutable, compress bool) error {
	doc := NewDocument(reg, im)
	if !compress {
		return encodeYAML(w, doc)
	}

	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	if err := encodeYAML(enc, doc); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

func encodeYAML(w io.Writer, doc *Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("yaml encode: %w", err)
	}
	return enc.Close()
}

// Decode reads a document written by Encode, compressed or not, and
// rebuilds its buffer.
func Decode(r io.Reader, reg *block.Registry, opts ...volume.Option) (*volume.Mutable, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(len(zstdMagic))
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	var src io.Reader = br
	if bytes.Equal(head, zstdMagic) {
		dec, err := zstd.NewReader(br)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		src = dec
	}

	var doc Document
	if err := yaml.NewDecoder(src).Decode(&doc); err != nil {
		return nil, fmt.Errorf("yaml decode: %w", err)
	}
	return doc.Buffer(reg, opts...)
}

// WriteFile replaces path atomically: the dump goes to a temp file that is
// renamed over path once complete.
func WriteFile(path string, reg *block.Registry, im *volume.Immutable, compress bool) error {
	tmp := path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if err := Encode(f, reg, im, compress); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

func ReadFile(path string, reg *block.Registry, opts ...volume.Option) (*volume.Mutable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f, reg, opts...)
}
