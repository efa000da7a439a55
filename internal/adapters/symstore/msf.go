package symstore

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"os"

	"go.trai.ch/symres/internal/core/domain"
	"go.trai.ch/zerr"
)

var msfMagic = []byte("Microsoft C/C++ MSF 7.00\r\n\x1aDS\x00\x00\x00")

const (
	superBlockSize = 56
	infoStream     = 1
	dbiStream      = 3
	nilStreamSize  = 0xFFFFFFFF
	maxDirBytes    = 64 << 20
)

// MSFReader reads the identity stamped into MSF 7.0 program databases.
// Files in any other format are accepted unchecked; the loader that
// consumes them validates the content.
type MSFReader struct{}

// NewMSFReader creates a new MSFReader.
func NewMSFReader() *MSFReader {
	return &MSFReader{}
}

// Matches reports whether the database at path carries id's UniqueID and Age.
func (r *MSFReader) Matches(path string, id domain.SymbolIdentity) (bool, error) {
	//nolint:gosec // path comes from a search path element
	f, err := os.Open(path)
	if err != nil {
		return false, zerr.With(zerr.Wrap(err, domain.ErrSymbolReadFailed.Error()), "path", path)
	}
	defer f.Close() //nolint:errcheck // read-only

	got, ok, err := ReadIdentity(f)
	if err != nil {
		return false, zerr.With(err, "path", path)
	}
	if !ok {
		return true, nil
	}
	return got.UniqueID == id.UniqueID && got.Age == id.Age, nil
}

// ReadIdentity extracts the UniqueID and Age of an MSF 7.0 database.
// ok is false when r does not hold an MSF file.
func ReadIdentity(r io.ReaderAt) (id domain.SymbolIdentity, ok bool, err error) {
	sb := make([]byte, superBlockSize)
	if _, err := r.ReadAt(sb, 0); err != nil {
		return id, false, nil
	}
	if !bytes.Equal(sb[:len(msfMagic)], msfMagic) {
		return id, false, nil
	}

	le := binary.LittleEndian
	blockSize := le.Uint32(sb[32:])
	numDirBytes := le.Uint32(sb[44:])
	blockMapAddr := le.Uint32(sb[52:])

	switch blockSize {
	case 512, 1024, 2048, 4096:
	default:
		return id, true, zerr.With(domain.ErrSymbolFormat, "block_size", blockSize)
	}
	if numDirBytes == 0 || numDirBytes > maxDirBytes {
		return id, true, zerr.With(domain.ErrSymbolFormat, "directory_bytes", numDirBytes)
	}

	m := msf{r: r, blockSize: blockSize}

	dirBlocks, err := m.readUint32s(int64(blockMapAddr)*int64(blockSize), blocksFor(numDirBytes, blockSize))
	if err != nil {
		return id, true, err
	}
	dir, err := m.readBlocks(dirBlocks, numDirBytes)
	if err != nil {
		return id, true, err
	}

	streams, err := parseDirectory(dir, blockSize)
	if err != nil {
		return id, true, err
	}
	if len(streams) <= infoStream {
		return id, true, zerr.With(domain.ErrSymbolFormat, "reason", "missing info stream")
	}

	info, err := m.readStream(streams[infoStream], 28)
	if err != nil {
		return id, true, err
	}
	id.Age = le.Uint32(info[8:])
	id.UniqueID = guidFromLE(info[12:28])

	// The DBI stream holds the age the binary's debug directory refers to.
	if len(streams) > dbiStream && streams[dbiStream].size >= 12 {
		dbi, err := m.readStream(streams[dbiStream], 12)
		if err != nil {
			return id, true, err
		}
		id.Age = le.Uint32(dbi[8:])
	}

	return id, true, nil
}

type stream struct {
	size   uint32
	blocks []uint32
}

type msf struct {
	r         io.ReaderAt
	blockSize uint32
}

func (m msf) readUint32s(off int64, n uint32) ([]uint32, error) {
	buf := make([]byte, int64(n)*4)
	if _, err := m.r.ReadAt(buf, off); err != nil {
		return nil, zerr.Wrap(err, domain.ErrSymbolFormat.Error())
	}
	out := make([]uint32, n)
	for i := range out {
		out[i] = binary.LittleEndian.Uint32(buf[i*4:])
	}
	return out, nil
}

func (m msf) readBlocks(blocks []uint32, size uint32) ([]byte, error) {
	out := make([]byte, 0, size)
	buf := make([]byte, m.blockSize)
	for _, b := range blocks {
		if uint32(len(out)) >= size {
			break
		}
		n, err := m.r.ReadAt(buf, int64(b)*int64(m.blockSize))
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, zerr.Wrap(err, domain.ErrSymbolFormat.Error())
		}
		out = append(out, buf[:n]...)
		if n < len(buf) {
			break
		}
	}
	if uint32(len(out)) < size {
		return nil, zerr.With(domain.ErrSymbolFormat, "reason", "truncated stream")
	}
	return out[:size], nil
}

func (m msf) readStream(s stream, n uint32) ([]byte, error) {
	if s.size < n {
		return nil, zerr.With(domain.ErrSymbolFormat, "reason", "short stream")
	}
	return m.readBlocks(s.blocks, n)
}

func parseDirectory(dir []byte, blockSize uint32) ([]stream, error) {
	le := binary.LittleEndian
	if len(dir) < 4 {
		return nil, zerr.With(domain.ErrSymbolFormat, "reason", "empty directory")
	}
	count := le.Uint32(dir)
	if uint64(count)*4+4 > uint64(len(dir)) {
		return nil, zerr.With(domain.ErrSymbolFormat, "reason", "stream count out of range")
	}

	streams := make([]stream, count)
	pos := 4
	for i := range streams {
		size := le.Uint32(dir[pos:])
		if size == nilStreamSize {
			size = 0
		}
		streams[i].size = size
		pos += 4
	}

	for i := range streams {
		n := int(blocksFor(streams[i].size, blockSize))
		if pos+n*4 > len(dir) {
			return nil, zerr.With(domain.ErrSymbolFormat, "reason", "truncated directory")
		}
		streams[i].blocks = make([]uint32, n)
		for j := range n {
			streams[i].blocks[j] = le.Uint32(dir[pos:])
			pos += 4
		}
	}
	return streams, nil
}

func blocksFor(size, blockSize uint32) uint32 {
	return (size + blockSize - 1) / blockSize
}

// guidFromLE converts the on-disk GUID layout (little-endian Data1, Data2
// and Data3) into printed byte order.
func guidFromLE(b []byte) domain.GUID {
	var g domain.GUID
	g[0], g[1], g[2], g[3] = b[3], b[2], b[1], b[0]
	g[4], g[5] = b[5], b[4]
	g[6], g[7] = b[7], b[6]
	copy(g[8:], b[8:16])
	return g
}
