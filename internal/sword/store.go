// store.go reads verse entries from the two SWORD Bible text layouts.
//
// zText / zText4 (compressed):
//   - .bzs - Block index (12 bytes per entry: offset[4], size[4], ucsize[4])
//   - .bzv - Verse index (block[4], offset[4], size[2]; size[4] for zText4)
//   - .bzz - Compressed text data
//
// RawText / RawText4 (uncompressed):
//   - .vss - Verse index (offset[4], size[2]; size[4] for RawText4)
//   - the text file itself, named after the testament ("ot", "nt")
package sword

import (
	"bytes"
	"compress/bzip2"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/golang/groupcache/lru"
	"github.com/ulikunitz/xz"

	"github.com/FocuswithJustin/sword-to-obsidian/core/errors"
)

// blockIndexEntrySize is the size of each entry in .bzs block index files.
const blockIndexEntrySize = 12

// blockCacheSize is the number of decompressed blocks kept per testament.
// Chapters are read in order, so only the last few blocks are ever reused.
const blockCacheSize = 16

// store returns the raw bytes of the verse at a testament-relative index.
type store interface {
	entry(index int) ([]byte, error)
}

type blockEntry struct {
	offset     uint32
	compressed uint32
	size       uint32
}

type verseEntry struct {
	block  uint32
	offset uint32
	size   uint32
}

// decompressor opens a reader over one compressed block.
type decompressor func(r io.Reader) (io.Reader, error)

func decompressorFor(compressType string) (decompressor, error) {
	switch strings.ToUpper(strings.TrimSpace(compressType)) {
	case "", "ZIP":
		return func(r io.Reader) (io.Reader, error) {
			return zlib.NewReader(r)
		}, nil
	case "XZ":
		return func(r io.Reader) (io.Reader, error) {
			return xz.NewReader(r)
		}, nil
	case "BZIP2":
		return func(r io.Reader) (io.Reader, error) {
			return bzip2.NewReader(r), nil
		}, nil
	default:
		return nil, errors.NewUnsupported("compression", compressType)
	}
}

// zstore serves verses from a compressed testament. Recently decompressed
// blocks are cached; a zstore is not safe for concurrent use.
type zstore struct {
	name       string
	blocks     []blockEntry
	verses     []verseEntry
	data       []byte
	decompress decompressor
	cache      *lru.Cache
}

func openZStore(fsys fs.FS, dir, testament string, wide bool, d decompressor) (*zstore, error) {
	base := path.Join(dir, testament)

	bzs, err := fs.ReadFile(fsys, base+".bzs")
	if err != nil {
		return nil, errors.NewIO("read", base+".bzs", err)
	}
	if len(bzs)%blockIndexEntrySize != 0 {
		return nil, errors.NewParse("bzs", base+".bzs", fmt.Sprintf("size %d is not a multiple of %d", len(bzs), blockIndexEntrySize))
	}
	blocks := make([]blockEntry, len(bzs)/blockIndexEntrySize)
	for i := range blocks {
		off := i * blockIndexEntrySize
		blocks[i] = blockEntry{
			offset:     binary.LittleEndian.Uint32(bzs[off:]),
			compressed: binary.LittleEndian.Uint32(bzs[off+4:]),
			size:       binary.LittleEndian.Uint32(bzs[off+8:]),
		}
	}

	bzv, err := fs.ReadFile(fsys, base+".bzv")
	if err != nil {
		return nil, errors.NewIO("read", base+".bzv", err)
	}
	entrySize := 10
	if wide {
		entrySize = 12
	}
	if len(bzv)%entrySize != 0 {
		return nil, errors.NewParse("bzv", base+".bzv", fmt.Sprintf("size %d is not a multiple of %d", len(bzv), entrySize))
	}
	verses := make([]verseEntry, len(bzv)/entrySize)
	for i := range verses {
		off := i * entrySize
		v := verseEntry{
			block:  binary.LittleEndian.Uint32(bzv[off:]),
			offset: binary.LittleEndian.Uint32(bzv[off+4:]),
		}
		if wide {
			v.size = binary.LittleEndian.Uint32(bzv[off+8:])
		} else {
			v.size = uint32(binary.LittleEndian.Uint16(bzv[off+8:]))
		}
		verses[i] = v
	}

	data, err := fs.ReadFile(fsys, base+".bzz")
	if err != nil {
		return nil, errors.NewIO("read", base+".bzz", err)
	}

	return &zstore{
		name:       base,
		blocks:     blocks,
		verses:     verses,
		data:       data,
		decompress: d,
		cache:      lru.New(blockCacheSize),
	}, nil
}

func (s *zstore) entry(index int) ([]byte, error) {
	if index < 0 || index >= len(s.verses) {
		return nil, errors.NewParse("bzv", s.name+".bzv", fmt.Sprintf("verse index %d out of range", index))
	}
	v := s.verses[index]
	if v.size == 0 {
		return nil, nil
	}

	block, err := s.block(v.block)
	if err != nil {
		return nil, err
	}
	end := uint64(v.offset) + uint64(v.size)
	if end > uint64(len(block)) {
		return nil, errors.NewParse("bzz", s.name+".bzz", fmt.Sprintf("verse %d exceeds block %d", index, v.block))
	}
	return block[v.offset:end], nil
}

func (s *zstore) block(n uint32) ([]byte, error) {
	if b, ok := s.cache.Get(n); ok {
		return b.([]byte), nil
	}
	if int(n) >= len(s.blocks) {
		return nil, errors.NewParse("bzs", s.name+".bzs", fmt.Sprintf("block %d out of range", n))
	}
	be := s.blocks[n]
	end := uint64(be.offset) + uint64(be.compressed)
	if end > uint64(len(s.data)) {
		return nil, errors.NewParse("bzz", s.name+".bzz", fmt.Sprintf("block %d exceeds data", n))
	}

	r, err := s.decompress(bytes.NewReader(s.data[be.offset:end]))
	if err != nil {
		return nil, &errors.ParseError{Format: "bzz", Path: s.name + ".bzz", Message: fmt.Sprintf("block %d", n), Err: err}
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, &errors.ParseError{Format: "bzz", Path: s.name + ".bzz", Message: fmt.Sprintf("block %d", n), Err: err}
	}
	if c, ok := r.(io.Closer); ok {
		c.Close()
	}

	s.cache.Add(n, b)
	return b, nil
}

// rawstore serves verses from an uncompressed testament.
type rawstore struct {
	name    string
	offsets []uint32
	sizes   []uint32
	data    []byte
}

func openRawStore(fsys fs.FS, dir, testament string, wide bool) (*rawstore, error) {
	base := path.Join(dir, testament)

	vss, err := fs.ReadFile(fsys, base+".vss")
	if err != nil {
		return nil, errors.NewIO("read", base+".vss", err)
	}
	entrySize := 6
	if wide {
		entrySize = 8
	}
	if len(vss)%entrySize != 0 {
		return nil, errors.NewParse("vss", base+".vss", fmt.Sprintf("size %d is not a multiple of %d", len(vss), entrySize))
	}

	n := len(vss) / entrySize
	s := &rawstore{name: base, offsets: make([]uint32, n), sizes: make([]uint32, n)}
	for i := 0; i < n; i++ {
		off := i * entrySize
		s.offsets[i] = binary.LittleEndian.Uint32(vss[off:])
		if wide {
			s.sizes[i] = binary.LittleEndian.Uint32(vss[off+4:])
		} else {
			s.sizes[i] = uint32(binary.LittleEndian.Uint16(vss[off+4:]))
		}
	}

	s.data, err = fs.ReadFile(fsys, base)
	if err != nil {
		return nil, errors.NewIO("read", base, err)
	}
	return s, nil
}

func (s *rawstore) entry(index int) ([]byte, error) {
	if index < 0 || index >= len(s.sizes) {
		return nil, errors.NewParse("vss", s.name+".vss", fmt.Sprintf("verse index %d out of range", index))
	}
	if s.sizes[index] == 0 {
		return nil, nil
	}
	end := uint64(s.offsets[index]) + uint64(s.sizes[index])
	if end > uint64(len(s.data)) {
		return nil, errors.NewParse("vss", s.name, fmt.Sprintf("verse %d exceeds text", index))
	}
	return s.data[s.offsets[index]:end], nil
}

// hasTestament reports whether the index file of a testament exists.
func hasTestament(fsys fs.FS, dir, testament, indexExt string) bool {
	_, err := fs.Stat(fsys, path.Join(dir, testament)+indexExt)
	return err == nil
}
