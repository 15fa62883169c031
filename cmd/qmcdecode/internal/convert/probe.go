package convert

import (
	"bytes"
	"fmt"
	"io"

	"github.com/dhowden/tag"
	"github.com/saylorsolutions/qmcdecode/pkg/qmc"
)

const (
	probeSize = 64 * 1024
)

// identify looks at the unmasked head of src to find out which container it holds.
// src is rewound to the start before returning.
// Files that can't be identified yield qmc.ContainerUnknown, which isn't an error.
func (c *Converter) identify(src io.ReadSeeker, pair qmc.Pair) (qmc.Container, error) {
	var r io.Reader = src
	if pair.Decode {
		dec, err := qmc.NewReader(src, c.transformOpts()...)
		if err != nil {
			return qmc.ContainerUnknown, err
		}
		r = dec
	}
	head, err := io.ReadAll(io.LimitReader(r, probeSize))
	if err != nil {
		return qmc.ContainerUnknown, fmt.Errorf("read: %w", err)
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return qmc.ContainerUnknown, fmt.Errorf("seek: %w", err)
	}
	return Identify(head), nil
}

// Identify returns the audio container found at the start of data, which must already be unmasked.
// MP3 files without an ID3v2 tag are recognized by the MPEG frame sync at the start of data.
func Identify(data []byte) qmc.Container {
	_, fileType, err := tag.Identify(bytes.NewReader(data))
	if err != nil {
		if hasFrameSync(data) {
			return qmc.ContainerMP3
		}
		return qmc.ContainerUnknown
	}
	switch fileType {
	case tag.MP3:
		return qmc.ContainerMP3
	case tag.OGG:
		return qmc.ContainerOGG
	case tag.FLAC:
		return qmc.ContainerFLAC
	default:
		return qmc.ContainerUnknown
	}
}

// hasFrameSync reports whether data starts with the 11 set bits of an MPEG audio frame header.
func hasFrameSync(data []byte) bool {
	return len(data) >= 2 && data[0] == 0xFF && data[1]&0xE0 == 0xE0
}
