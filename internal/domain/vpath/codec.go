package vpath

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// codecVersion is bumped whenever the serialized layout changes.
const codecVersion = 1

// Errors returned when decoding serialized paths.
var (
	ErrCodecVersion   = errors.New("vpath: unsupported serialization version")
	ErrCodecTruncated = errors.New("vpath: truncated serialized path")
	ErrCodecKind      = errors.New("vpath: unknown serialized path kind")
)

// Encode serializes the path into a versioned tag+payload form that is
// stable across platforms.
func (p VirtualPath) Encode() []byte {
	var buf bytes.Buffer
	buf.WriteByte(codecVersion)
	p.encodeBody(&buf)
	return buf.Bytes()
}

func (p VirtualPath) encodeBody(buf *bytes.Buffer) {
	buf.WriteByte(byte(p.kind))
	writeString(buf, p.path)
	switch p.kind {
	case KindTemporaryWithKnownContents:
		writeString(buf, p.contents)
	case KindFileList:
		var n uint64
		if p.list != nil {
			n = uint64(len(p.list.Entries))
		}
		writeUvarint(buf, n)
		if p.list != nil {
			for _, e := range p.list.Entries {
				e.encodeBody(buf)
			}
		}
	}
}

// Decode deserializes a path produced by Encode.
func Decode(data []byte) (VirtualPath, error) {
	buf := bytes.NewReader(data)
	version, err := buf.ReadByte()
	if err != nil {
		return VirtualPath{}, ErrCodecTruncated
	}
	if version != codecVersion {
		return VirtualPath{}, fmt.Errorf("%w: %d", ErrCodecVersion, version)
	}
	p, err := decodeBody(buf)
	if err != nil {
		return VirtualPath{}, err
	}
	if buf.Len() != 0 {
		return VirtualPath{}, fmt.Errorf("vpath: %d trailing bytes after serialized path", buf.Len())
	}
	return p, nil
}

func decodeBody(buf *bytes.Reader) (VirtualPath, error) {
	kindByte, err := buf.ReadByte()
	if err != nil {
		return VirtualPath{}, ErrCodecTruncated
	}
	kind := Kind(kindByte)
	if kind > KindTemporaryWithKnownContents {
		return VirtualPath{}, fmt.Errorf("%w: %d", ErrCodecKind, kindByte)
	}
	path, err := readString(buf)
	if err != nil {
		return VirtualPath{}, err
	}
	p := VirtualPath{kind: kind, path: path}
	switch kind {
	case KindTemporaryWithKnownContents:
		contents, err := readString(buf)
		if err != nil {
			return VirtualPath{}, err
		}
		p.contents = contents
	case KindFileList:
		n, err := binary.ReadUvarint(buf)
		if err != nil {
			return VirtualPath{}, ErrCodecTruncated
		}
		list := &FileList{Entries: make([]VirtualPath, 0, n)}
		for i := uint64(0); i < n; i++ {
			entry, err := decodeBody(buf)
			if err != nil {
				return VirtualPath{}, err
			}
			list.Entries = append(list.Entries, entry)
		}
		p.list = list
	}
	return p, nil
}

func writeUvarint(buf *bytes.Buffer, v uint64) {
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(tmp[:], v)
	buf.Write(tmp[:n])
}

func writeString(buf *bytes.Buffer, s string) {
	writeUvarint(buf, uint64(len(s)))
	buf.WriteString(s)
}

func readString(buf *bytes.Reader) (string, error) {
	n, err := binary.ReadUvarint(buf)
	if err != nil {
		return "", ErrCodecTruncated
	}
	if n > uint64(buf.Len()) {
		return "", ErrCodecTruncated
	}
	out := make([]byte, n)
	if _, err := io.ReadFull(buf, out); err != nil {
		return "", ErrCodecTruncated
	}
	return string(out), nil
}
