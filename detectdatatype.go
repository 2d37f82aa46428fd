package tso500qc

import (
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"compress/zlib"
	"errors"
	"fmt"
	"io"

	"github.com/carbocation/pfx"
	"github.com/krolaw/zipstream"
	"github.com/xi2/xz"
)

type DataType byte

const (
	DataTypeInvalid DataType = iota
	DataTypeNoCompression
	DataTypeGzip
	DataTypeZip
	DataTypeXZ
	DataTypeZ
	DataTypeBZip2
	DataTypeZlib
)

func (dt DataType) String() string {
	switch dt {
	case DataTypeNoCompression:
		return "uncompressed"
	case DataTypeGzip:
		return "gzip"
	case DataTypeZip:
		return "zip"
	case DataTypeXZ:
		return "xz"
	case DataTypeZ:
		return "compress (.Z)"
	case DataTypeBZip2:
		return "bzip2"
	case DataTypeZlib:
		return "zlib"
	}

	return "invalid"
}

var byteCodeSigs = []struct {
	dt  DataType
	sig []byte
}{
	{DataTypeGzip, []byte{0x1f, 0x8b, 0x08}},
	{DataTypeZip, []byte{0x50, 0x4b, 0x03, 0x04}},
	{DataTypeXZ, []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}},
	{DataTypeZ, []byte{0x1f, 0x9d}},
	{DataTypeBZip2, []byte{0x42, 0x5a, 0x68}},
	{DataTypeZlib, []byte{0x78, 0x01}},
	{DataTypeZlib, []byte{0x78, 0x5e}},
	{DataTypeZlib, []byte{0x78, 0x9c}},
	{DataTypeZlib, []byte{0x78, 0xda}},
}

// DetectDataType sniffs the first bytes of a stream for a known compression
// signature. Streams too short to carry any signature are reported as
// uncompressed. Byte code signatures from
// https://stackoverflow.com/a/19127748/199475
func DetectDataType(r io.Reader) (DataType, error) {
	buff := make([]byte, 6)
	n, err := io.ReadFull(r, buff)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return DataTypeInvalid, err
	}
	buff = buff[:n]

	for _, known := range byteCodeSigs {
		if bytes.HasPrefix(buff, known.sig) {
			return known.dt, nil
		}
	}

	return DataTypeNoCompression, nil
}

// MaybeDecompress detects the compression of r and returns a reader over the
// decompressed content, rewound to the start. Zip archives yield their first
// entry.
func MaybeDecompress(r io.ReadSeeker) (io.ReadCloser, error) {
	dt, err := DetectDataType(r)
	if err != nil {
		return nil, pfx.Err(err)
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, pfx.Err(err)
	}

	switch dt {
	case DataTypeGzip:
		return gzip.NewReader(r)
	case DataTypeZip:
		zr := zipstream.NewReader(r)
		if _, err := zr.Next(); err != nil {
			return nil, pfx.Err(err)
		}
		return io.NopCloser(zr), nil
	case DataTypeBZip2:
		return io.NopCloser(bzip2.NewReader(r)), nil
	case DataTypeXZ:
		reader, err := xz.NewReader(r, 0)
		if err != nil {
			return nil, pfx.Err(err)
		}
		return io.NopCloser(reader), nil
	case DataTypeZlib:
		return zlib.NewReader(r)
	case DataTypeZ:
		return nil, pfx.Err(fmt.Errorf("%s data is not supported; please decompress it first", dt))
	}

	return io.NopCloser(r), nil
}
