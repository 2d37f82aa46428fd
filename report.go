// Package tso500qc holds the input plumbing shared by the TSO500 QC tools:
// opening reports from local disk or Google Storage and undoing whatever
// compression they were shipped with.
package tso500qc

import (
	"bytes"
	"context"
	"io"
	"os"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
)

// ReadReport reads a whole report into memory. path may be local (a leading
// ~/ is expanded) or a gs:// URL, in which case client must be set.
// Compressed content is decompressed transparently.
func ReadReport(ctx context.Context, path string, client *storage.Client) ([]byte, error) {
	var src io.ReadCloser
	var err error

	if IsGoogleStoragePath(path) {
		src, err = OpenGoogleStorage(ctx, path, client)
	} else {
		if path, err = ExpandHome(path); err == nil {
			src, err = os.Open(path)
		}
	}
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer src.Close()

	raw, err := io.ReadAll(src)
	if err != nil {
		return nil, pfx.Err(err)
	}

	r, err := MaybeDecompress(bytes.NewReader(raw))
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, pfx.Err(err)
	}

	return out, nil
}
