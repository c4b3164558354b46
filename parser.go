package llmc

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// Parser reads container files for one format variant. Construct with
// NewParser.
type Parser struct {
	variant Variant
}

// NewParser returns a parser for the given format variant.
func NewParser(v Variant) *Parser {
	return &Parser{variant: v}
}

// ParseFile parses the container file at path.
func (p *Parser) ParseFile(path string) (*Conversation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ParseError{msg: fmt.Sprintf("failed to read file %s: %v", path, err), cause: err}
	}
	defer f.Close()

	conv, err := p.parse(f)
	if err != nil {
		return nil, wrapParse(err, path)
	}
	return conv, nil
}

// ParseStream parses a container from stream. The stream need not be
// seekable; padding before the store section is discarded, the offset field
// being authoritative.
func (p *Parser) ParseStream(stream io.Reader) (*Conversation, error) {
	conv, err := p.parse(stream)
	if err != nil {
		return nil, wrapParse(err, "stream")
	}
	return conv, nil
}

func (p *Parser) parse(r io.Reader) (*Conversation, error) {
	headerBuf := make([]byte, p.variant.HeaderSize)
	if _, err := io.ReadFull(r, headerBuf); err != nil {
		return nil, formatErrf("truncated header: %v", err)
	}
	h, err := decodeHeader(p.variant, headerBuf)
	if err != nil {
		return nil, err
	}

	metadataBuf := make([]byte, h.metadataLength)
	if _, err := io.ReadFull(r, metadataBuf); err != nil {
		return nil, formatErrf("incomplete metadata section: %v", err)
	}
	// Some producers pad the metadata block with leading NUL bytes.
	metadataBuf = bytes.TrimSpace(bytes.TrimLeft(metadataBuf, "\x00"))

	metadata, err := parseMetadata(metadataBuf)
	if err != nil {
		return nil, err
	}

	// The offset field is authoritative; it may exceed header + metadata
	// length when a producer inserted padding.
	consumed := uint64(p.variant.HeaderSize) + uint64(h.metadataLength)
	if h.storeOffset < consumed {
		return nil, formatErrf("store offset %d overlaps metadata section ending at %d", h.storeOffset, consumed)
	}
	if pad := h.storeOffset - consumed; pad > 0 {
		if _, err := io.CopyN(io.Discard, r, int64(pad)); err != nil {
			return nil, formatErrf("incomplete padding before store section: %v", err)
		}
	}

	storeBytes, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read store section: %w", err)
	}

	messages, attachments, err := loadStore(storeBytes, p.variant)
	if err != nil {
		return nil, err
	}

	return &Conversation{
		Metadata:    metadata,
		Messages:    messages,
		Attachments: attachments,
	}, nil
}
