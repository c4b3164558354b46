package llmc

import (
	"encoding/binary"
)

const (
	majorVersion   = 1
	formatRevision = 1
)

// Variant describes one format family. The two families share the same layout
// except that LLMC appends an encryption-flags byte and seven reserved bytes,
// extending the header from 24 to 32 bytes.
type Variant struct {
	Name       string
	Magic      [4]byte
	HeaderSize int
	AppID      int32 // SQLite application_id stamped into the store section
	Ext        string
}

var (
	// LLMC is the 32-byte-header family with the reserved encryption field.
	LLMC = Variant{
		Name:       "LLMC",
		Magic:      [4]byte{'L', 'L', 'M', 'C'},
		HeaderSize: 32,
		AppID:      0x4C4C4D43,
		Ext:        ".llmc",
	}

	// LLMD is the 24-byte-header family without the encryption field.
	LLMD = Variant{
		Name:       "LLMD",
		Magic:      [4]byte{'L', 'L', 'M', 'D'},
		HeaderSize: 24,
		AppID:      0x4C4C4D44,
		Ext:        ".llmd",
	}
)

// header holds the decoded fixed-header fields.
type header struct {
	version        uint8
	formatRevision uint32
	metadataLength uint32
	storeOffset    uint64
}

// encodeHeader renders the fixed header for the given variant. The caller
// supplies the exact metadata length and store offset; nothing is computed
// here.
func encodeHeader(v Variant, metadataLength uint32, storeOffset uint64) []byte {
	buf := make([]byte, v.HeaderSize)
	copy(buf[0:4], v.Magic[:])
	buf[4] = majorVersion
	// buf[5:8] reserved, zero
	binary.LittleEndian.PutUint32(buf[8:12], formatRevision)
	binary.LittleEndian.PutUint32(buf[12:16], metadataLength)
	binary.LittleEndian.PutUint64(buf[16:24], storeOffset)
	// LLMC only: encryption flags (0 = none) + 7 reserved bytes, all zero.
	return buf
}

// decodeHeader validates and extracts the fixed header from buf, which must
// hold at least v.HeaderSize bytes.
func decodeHeader(v Variant, buf []byte) (header, error) {
	var h header
	if len(buf) < v.HeaderSize {
		return h, formatErrf("truncated header: got %d bytes, want %d", len(buf), v.HeaderSize)
	}
	if [4]byte(buf[0:4]) != v.Magic {
		return h, formatErrf("invalid magic bytes: %q", buf[0:4])
	}
	h.version = buf[4]
	if h.version != majorVersion {
		return h, formatErrf("unsupported version: %d", h.version)
	}
	h.formatRevision = binary.LittleEndian.Uint32(buf[8:12])
	if h.formatRevision != formatRevision {
		return h, formatErrf("unsupported format revision: %d", h.formatRevision)
	}
	h.metadataLength = binary.LittleEndian.Uint32(buf[12:16])
	h.storeOffset = binary.LittleEndian.Uint64(buf[16:24])
	return h, nil
}
