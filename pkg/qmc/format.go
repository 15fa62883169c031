package qmc

import (
	"errors"
	"fmt"
)

var (
	ErrMissingExtension     = errors.New("no extension")
	ErrUnsupportedExtension = errors.New("unsupported extension")
	ErrMissingFilename      = errors.New("no filename")
)

// Ext is a file extension without the leading dot.
type Ext string

const (
	ExtQMC0    Ext = "qmc0"
	ExtQMC3    Ext = "qmc3"
	ExtQMCOGG  Ext = "qmcogg"
	ExtQMCFLAC Ext = "qmcflac"
	ExtMP3     Ext = "mp3"
	ExtOGG     Ext = "ogg"
	ExtFLAC    Ext = "flac"
)

// Container is the standard audio format underneath the masking.
type Container int

const (
	ContainerUnknown Container = iota
	ContainerMP3
	ContainerOGG
	ContainerFLAC
)

func (c Container) String() string {
	switch c {
	case ContainerMP3:
		return "MP3"
	case ContainerOGG:
		return "OGG"
	case ContainerFLAC:
		return "FLAC"
	default:
		return "unknown"
	}
}

// Pair describes what a source extension converts to.
type Pair struct {
	Source    Ext
	Target    Ext
	Container Container
	// Decode is true when the source is masked and the target is a playable file.
	Decode bool
}

var pairs = map[Ext]Pair{
	ExtQMC0:    {Source: ExtQMC0, Target: ExtMP3, Container: ContainerMP3, Decode: true},
	ExtQMC3:    {Source: ExtQMC3, Target: ExtMP3, Container: ContainerMP3, Decode: true},
	ExtQMCOGG:  {Source: ExtQMCOGG, Target: ExtOGG, Container: ContainerOGG, Decode: true},
	ExtQMCFLAC: {Source: ExtQMCFLAC, Target: ExtFLAC, Container: ContainerFLAC, Decode: true},
	ExtFLAC:    {Source: ExtFLAC, Target: ExtQMCFLAC, Container: ContainerFLAC},
	ExtMP3:     {Source: ExtMP3, Target: ExtQMC0, Container: ContainerMP3},
}

// Lookup returns the Pair for the given extension, which must not include the leading dot.
// Matching is case-sensitive.
func Lookup(ext string) (Pair, error) {
	if len(ext) == 0 {
		return Pair{}, ErrMissingExtension
	}
	p, ok := pairs[Ext(ext)]
	if !ok {
		return Pair{}, fmt.Errorf("%w: '%s'", ErrUnsupportedExtension, ext)
	}
	return p, nil
}

// TargetExt returns the extension that a file with the given extension converts to.
func TargetExt(ext string) (string, error) {
	p, err := Lookup(ext)
	if err != nil {
		return "", err
	}
	return string(p.Target), nil
}
