package llmc

import (
	"errors"
	"io"
	"os"
)

// Writer serializes conversations into container files for one format
// variant. The zero value is not usable; construct with NewWriter.
type Writer struct {
	variant Variant
}

// NewWriter returns a writer for the given format variant.
func NewWriter(v Variant) *Writer {
	return &Writer{variant: v}
}

// WriteFile validates conv and writes it as a container file at path. No
// partial file is left behind on failure.
func (w *Writer) WriteFile(conv *Conversation, path string) error {
	data, err := w.encode(conv)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		os.Remove(path)
		return wrapFormat(err, "failed to write file %s", path)
	}
	return nil
}

// WriteStream validates conv and writes it as a container to stream. The
// container is rendered fully in memory before any byte reaches the sink.
func (w *Writer) WriteStream(conv *Conversation, stream io.Writer) error {
	data, err := w.encode(conv)
	if err != nil {
		return err
	}
	if _, err := stream.Write(data); err != nil {
		return wrapFormat(err, "failed to write stream")
	}
	return nil
}

// encode renders the complete container: header, metadata block, store
// section, in that order.
func (w *Writer) encode(conv *Conversation) ([]byte, error) {
	if err := validateConversation(conv); err != nil {
		return nil, err
	}

	metadataBytes, err := renderMetadata(conv.Metadata)
	if err != nil {
		return nil, err
	}

	storeBytes, err := renderStore(conv, w.variant)
	if err != nil {
		if errors.Is(err, Err) {
			return nil, err
		}
		return nil, wrapFormat(err, "failed to render store section")
	}

	storeOffset := uint64(w.variant.HeaderSize) + uint64(len(metadataBytes))
	out := make([]byte, 0, int(storeOffset)+len(storeBytes))
	out = append(out, encodeHeader(w.variant, uint32(len(metadataBytes)), storeOffset)...)
	out = append(out, metadataBytes...)
	out = append(out, storeBytes...)
	return out, nil
}
