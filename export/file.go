package export

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/snappy"
	"github.com/pkg/errors"
)

// CompressedExt marks files stored as snappy framed streams.
const CompressedExt = ".sz"

type snappyFile struct {
	*snappy.Writer
	f *os.File
}

func (s *snappyFile) Close() error {
	if err := s.Writer.Close(); err != nil {
		s.f.Close()
		return errors.Wrap(err, "export: flush snappy stream")
	}
	return s.f.Close()
}

// CreateFile creates path (and its parent directories) for writing.
func CreateFile(path string) (io.WriteCloser, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrapf(err, "export: create directory %s", dir)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrapf(err, "export: create %s", path)
	}
	if strings.HasSuffix(path, CompressedExt) {
		return &snappyFile{Writer: snappy.NewBufferedWriter(f), f: f}, nil
	}

	return f, nil
}

type snappyReader struct {
	*snappy.Reader
	f *os.File
}

func (s *snappyReader) Close() error { return s.f.Close() }

// OpenFile opens path for reading, decompressing ".sz" files.
func OpenFile(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "export: open %s", path)
	}
	if strings.HasSuffix(path, CompressedExt) {
		return &snappyReader{Reader: snappy.NewReader(f), f: f}, nil
	}

	return f, nil
}

// WriteFile creates path and hands the writer to write.
func WriteFile(path string, write func(io.Writer) error) (err error) {
	out, err := CreateFile(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil && cerr != nil {
			err = errors.Wrapf(cerr, "export: close %s", path)
		}
	}()

	return write(out)
}
