// Package llmc reads and writes LLMC/LLMD conversation container files: a
// fixed binary header, a YAML metadata block, and an embedded SQLite section
// holding messages and attachments.
//
// The two format families differ only in header size and constants and are
// handled by a single parameterized codec; see the LLMC and LLMD variants.
// Files produced by either historical SDK dialect (string-keyed tables with
// JSON sub-fields, or integer surrogate keys with a join table) parse into
// the same canonical Conversation.
package llmc

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ParseFile parses a container file, selecting the format variant from the
// file's magic bytes.
func ParseFile(path string) (*Conversation, error) {
	v, err := sniffFile(path)
	if err != nil {
		return nil, err
	}
	return NewParser(v).ParseFile(path)
}

// ParseStream parses a container from stream, selecting the format variant
// from the leading magic bytes.
func ParseStream(stream io.Reader) (*Conversation, error) {
	br := bufio.NewReader(stream)
	magic, err := br.Peek(4)
	if err != nil {
		return nil, wrapParse(formatErrf("truncated header: %v", err), "stream")
	}
	v, err := variantForMagic(magic)
	if err != nil {
		return nil, wrapParse(err, "stream")
	}
	return NewParser(v).ParseStream(br)
}

// WriteFile writes conv at path, choosing the variant by file extension
// (.llmd selects LLMD, anything else LLMC).
func WriteFile(conv *Conversation, path string) error {
	v := LLMC
	if strings.EqualFold(filepath.Ext(path), LLMD.Ext) {
		v = LLMD
	}
	return NewWriter(v).WriteFile(conv, path)
}

// WriteStream writes conv to stream in the default LLMC variant.
func WriteStream(conv *Conversation, stream io.Writer) error {
	return NewWriter(LLMC).WriteStream(conv, stream)
}

func variantForMagic(magic []byte) (Variant, error) {
	switch {
	case bytes.Equal(magic, LLMC.Magic[:]):
		return LLMC, nil
	case bytes.Equal(magic, LLMD.Magic[:]):
		return LLMD, nil
	}
	return Variant{}, formatErrf("invalid magic bytes: %q", magic)
}

func sniffFile(path string) (Variant, error) {
	f, err := os.Open(path)
	if err != nil {
		return Variant{}, &ParseError{msg: "failed to read file " + path + ": " + err.Error(), cause: err}
	}
	defer f.Close()

	magic := make([]byte, 4)
	if _, err := io.ReadFull(f, magic); err != nil {
		return Variant{}, wrapParse(formatErrf("truncated header: %v", err), path)
	}
	return variantForMagic(magic)
}
