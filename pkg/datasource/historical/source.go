package historical

import (
	"errors"
	"fmt"
	"io"
	"os"
	"unsafe"

	"golang.org/x/exp/mmap"
)

var ErrEOF = errors.New("EOF")

// Source memory-maps a file of densely packed, fixed-size records and serves
// random access by record index.
type Source[T any] struct {
	path   string
	reader *mmap.ReaderAt
}

func NewSource[T any](path string) *Source[T] {
	return &Source[T]{
		path: path,
	}
}

func (s *Source[T]) Open() error {
	var err error
	s.reader, err = mmap.Open(s.path)
	if err != nil {
		return fmt.Errorf("unable to open data source %q: %w", s.path, err)
	}
	return nil
}

func (s *Source[T]) Close() {
	_ = s.reader.Close()
}

// ReadAt decodes the record at the given index. Reading past the last full
// record reports ErrEOF.
func (s *Source[T]) ReadAt(index int64) (T, error) {
	var record T

	size := int64(unsafe.Sizeof(record))
	buffer := make([]byte, size)

	n, err := s.reader.ReadAt(buffer, index*size)
	if err != nil && err != io.EOF {
		return record, fmt.Errorf("unable to read record %d: %w", index, err)
	}
	if int64(n) < size {
		return record, ErrEOF
	}

	record = *(*T)(unsafe.Pointer(&buffer[0])) // #nosec G103
	return record, nil
}

// Len is the number of whole records in the file.
func (s *Source[T]) Len() (int64, error) {
	var record T
	size := int64(unsafe.Sizeof(record))

	info, err := os.Stat(s.path)
	if err != nil {
		return 0, fmt.Errorf("unable to stat data source %q: %w", s.path, err)
	}

	if info.Size()%size != 0 {
		return 0, fmt.Errorf("file size %d is not a multiple of record size %d", info.Size(), size)
	}
	return info.Size() / size, nil
}
