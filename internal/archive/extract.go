package archive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"go.uber.org/zap"
)

// Codec names the compression format of a single-file archive.
type Codec string

const (
	CodecGzip Codec = "gzip"
	CodecZstd Codec = "zstd"
)

// ParseCodec validates a codec name. An empty name means gzip.
func ParseCodec(name string) (Codec, error) {
	switch c := Codec(strings.ToLower(name)); c {
	case "":
		return CodecGzip, nil
	case CodecGzip, CodecZstd:
		return c, nil
	default:
		return "", fmt.Errorf("unsupported codec: %s", name)
	}
}

// CodecFromPath guesses the codec from the archive file name, defaulting to gzip.
func CodecFromPath(path string) Codec {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zst", ".zstd":
		return CodecZstd
	default:
		return CodecGzip
	}
}

// ExtractSingleFileGZ decompresses a .gz file holding one compressed file into outputPath.
func (a *Archiver) ExtractSingleFileGZ(ctx context.Context, archivePath, outputPath string) error {
	return a.ExtractSingleFile(ctx, CodecGzip, archivePath, outputPath)
}

// ExtractSingleFile decompresses archivePath into outputPath, creating or
// truncating it. archivePath is not checked beforehand: a missing file or a
// corrupt stream is reported by the open or decode step. For gzip only the
// first member is decoded.
func (a *Archiver) ExtractSingleFile(ctx context.Context, codec Codec, archivePath, outputPath string) (err error) {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context cancelled: %w", err)
	}

	in, err := a.fs.Open(archivePath)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer in.Close()

	dec, err := newDecoder(codec, in)
	if err != nil {
		return fmt.Errorf("failed to read archive %s: %w", archivePath, err)
	}
	defer dec.Close()

	out, err := a.fs.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		err = errors.Join(err, out.Close())
	}()

	n, err := io.Copy(out, dec)
	if err != nil {
		return fmt.Errorf("failed to decompress %s: %w", archivePath, err)
	}

	a.logger.Debug("extracted single-file archive",
		zap.String("archive_path", archivePath),
		zap.String("output_path", outputPath),
		zap.String("codec", string(codec)),
		zap.Int64("bytes", n),
	)

	return nil
}

func newDecoder(codec Codec, r io.Reader) (io.ReadCloser, error) {
	switch codec {
	case CodecGzip, "":
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		zr.Multistream(false)
		return zr, nil
	case CodecZstd:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd reader: %w", err)
		}
		return zr.IOReadCloser(), nil
	default:
		return nil, fmt.Errorf("unsupported codec: %s", codec)
	}
}
