package models

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Pak archive layout (little-endian):
//
//	u32 count
//	count × { name [64]byte, type u32, offset u32, size u32 }
//	entry data
const (
	pakNameSize  = 64
	pakEntrySize = pakNameSize + 12
	pakMaxCount  = 1 << 16
)

var (
	// ErrBadPak is returned for truncated or inconsistent archives.
	ErrBadPak = errors.New("models: malformed pak archive")
	// ErrAssetNotFound is returned when a named entry is missing.
	ErrAssetNotFound = errors.New("models: asset not found")
)

// AssetType tags the contents of a pak entry.
type AssetType uint32

const (
	AssetOBJ AssetType = iota
	AssetTexture
	AssetSound
	AssetUnknown
)

func (t AssetType) String() string {
	switch t {
	case AssetOBJ:
		return "obj"
	case AssetTexture:
		return "texture"
	case AssetSound:
		return "sound"
	}
	return "unknown"
}

// AssetTypeFor guesses the asset type from a file extension.
func AssetTypeFor(name string) AssetType {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".obj":
		return AssetOBJ
	case ".png", ".jpg", ".jpeg", ".bmp", ".tga":
		return AssetTexture
	case ".wav", ".ogg", ".mp3":
		return AssetSound
	}
	return AssetUnknown
}

// PakEntry is one table-of-contents record.
type PakEntry struct {
	Name   string
	Type   AssetType
	Offset uint32
	Size   uint32
}

// Pak is an open archive.
type Pak struct {
	r       io.ReaderAt
	closer  io.Closer
	size    int64
	entries []PakEntry
}

// OpenPak opens an archive file and reads its table of contents.
func OpenPak(path string) (*Pak, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pak: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat pak: %w", err)
	}

	p, err := ReadPak(f, info.Size())
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	p.closer = f
	return p, nil
}

// ReadPak reads the table of contents of an archive of the given size.
func ReadPak(r io.ReaderAt, size int64) (*Pak, error) {
	sr := io.NewSectionReader(r, 0, size)

	var count uint32
	if err := binary.Read(sr, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrBadPak, err)
	}
	if count > pakMaxCount || int64(count)*pakEntrySize+4 > size {
		return nil, fmt.Errorf("%w: %d entries do not fit in %d bytes", ErrBadPak, count, size)
	}

	p := &Pak{r: r, size: size, entries: make([]PakEntry, count)}
	for i := range p.entries {
		var raw struct {
			Name   [pakNameSize]byte
			Type   uint32
			Offset uint32
			Size   uint32
		}
		if err := binary.Read(sr, binary.LittleEndian, &raw); err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrBadPak, i, err)
		}
		if int64(raw.Offset)+int64(raw.Size) > size {
			return nil, fmt.Errorf("%w: entry %d exceeds archive", ErrBadPak, i)
		}
		name, _, _ := bytes.Cut(raw.Name[:], []byte{0})
		p.entries[i] = PakEntry{
			Name:   string(name),
			Type:   AssetType(raw.Type),
			Offset: raw.Offset,
			Size:   raw.Size,
		}
	}
	return p, nil
}

// Entries returns the table of contents.
func (p *Pak) Entries() []PakEntry {
	return p.entries
}

// Find looks up an entry by name.
func (p *Pak) Find(name string) (PakEntry, bool) {
	for _, e := range p.entries {
		if e.Name == name {
			return e, true
		}
	}
	return PakEntry{}, false
}

// Read returns the data of an entry.
func (p *Pak) Read(e PakEntry) ([]byte, error) {
	buf := make([]byte, e.Size)
	sr := io.NewSectionReader(p.r, int64(e.Offset), int64(e.Size))
	if _, err := io.ReadFull(sr, buf); err != nil {
		return nil, fmt.Errorf("read %s: %w", e.Name, err)
	}
	return buf, nil
}

// ReadFile returns the data of the named entry.
func (p *Pak) ReadFile(name string) ([]byte, error) {
	e, ok := p.Find(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAssetNotFound, name)
	}
	return p.Read(e)
}

// Close releases the underlying file, if any.
func (p *Pak) Close() error {
	if p.closer == nil {
		return nil
	}
	return p.closer.Close()
}

// PakFile is an input to WritePak.
type PakFile struct {
	Name string
	Type AssetType
	Data []byte
}

// WritePak writes an archive containing files in order.
func WritePak(w io.Writer, files []PakFile) error {
	if len(files) > pakMaxCount {
		return fmt.Errorf("too many files: %d", len(files))
	}

	le := binary.LittleEndian
	header := make([]byte, 4+len(files)*pakEntrySize)
	le.PutUint32(header, uint32(len(files)))

	offset := uint64(len(header))
	for i, f := range files {
		if len(f.Name) >= pakNameSize {
			return fmt.Errorf("name %q longer than %d bytes", f.Name, pakNameSize-1)
		}
		if offset+uint64(len(f.Data)) > 1<<32-1 {
			return fmt.Errorf("archive exceeds 4 GiB at %q", f.Name)
		}
		rec := header[4+i*pakEntrySize:]
		copy(rec[:pakNameSize], f.Name)
		le.PutUint32(rec[pakNameSize:], uint32(f.Type))
		le.PutUint32(rec[pakNameSize+4:], uint32(offset))
		le.PutUint32(rec[pakNameSize+8:], uint32(len(f.Data)))
		offset += uint64(len(f.Data))
	}

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, f := range files {
		if _, err := w.Write(f.Data); err != nil {
			return fmt.Errorf("write %s: %w", f.Name, err)
		}
	}
	return nil
}
