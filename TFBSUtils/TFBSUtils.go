/* Shared IO helpers for the TFBS coordinate tools: flag types, compressed readers and writers */

package tfbsutils

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/dsnet/compress/bzip2"
	gzip "github.com/klauspost/pgzip"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

/*MAXLINESIZE largest line accepted by the scanners (coordinate lists can be long) */
var MAXLINESIZE = 64 * 1024 * 1024

/*OUTPUTMODE permissions of the files renamed into place by AtomicWriter */
const OUTPUTMODE = 0o644

/*Filename type used to check if files exists */
type Filename string

/*Set ... */
func (i *Filename) Set(filename string) error {
	if _, err := os.Stat(filename); err != nil {
		return errors.Wrapf(err, "file %s", filename)
	}

	*i = Filename(filename)
	return nil
}

func (i *Filename) String() string {
	return string(*i)
}

/*ReturnReader Return reader for file */
func (i *Filename) ReturnReader() (*bufio.Scanner, io.Closer, error) {
	return ReturnReader(string(*i))
}

/*ArrayFlags repeatable string flag */
type ArrayFlags []string

/*String ... */
func (i *ArrayFlags) String() string {
	return strings.Join(*i, "\t")
}

/*Set ... */
func (i *ArrayFlags) Set(value string) error {
	*i = append(*i, value)
	return nil
}

type multiCloser []io.Closer

func (m multiCloser) Close() error {
	var first error

	for _, c := range m {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}

	return first
}

/*CloseFile close file logging the error */
func CloseFile(file io.Closer) {
	if err := file.Close(); err != nil {
		log.Warnf("error when closing file: %s", err)
	}
}

func newScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, min(64*1024, MAXLINESIZE)), MAXLINESIZE)

	return scanner
}

/*ReturnReader return a line scanner for fname, decompressing .gz and .bz2 files.
The returned closer releases the decompressor and the underlying file */
func ReturnReader(fname string) (*bufio.Scanner, io.Closer, error) {
	fileOpen, err := os.Open(fname)

	if err != nil {
		return nil, nil, err
	}

	switch path.Ext(fname) {
	case ".gz":
		readerGzip, err := gzip.NewReader(bufio.NewReader(fileOpen))

		if err != nil {
			fileOpen.Close()
			return nil, nil, errors.Wrapf(err, "gzip header of %s", fname)
		}

		return newScanner(readerGzip), multiCloser{readerGzip, fileOpen}, nil

	case ".bz2":
		readerBzip, err := bzip2.NewReader(bufio.NewReader(fileOpen), new(bzip2.ReaderConfig))

		if err != nil {
			fileOpen.Close()
			return nil, nil, errors.Wrapf(err, "bzip2 stream of %s", fname)
		}

		return newScanner(readerBzip), multiCloser{readerBzip, fileOpen}, nil
	}

	return newScanner(fileOpen), fileOpen, nil
}

/*compressedWriter closes the compressor before the file it writes into */
type compressedWriter struct {
	io.WriteCloser
	file *os.File
}

func (c *compressedWriter) Close() error {
	err := c.WriteCloser.Close()

	if cerr := c.file.Close(); err == nil {
		err = cerr
	}

	return err
}

/*wrapCompressor wrap file with the compressor matching the extension of fname.
The returned writer closes only the compressor, or nothing for plain files */
func wrapCompressor(file *os.File, fname string) (io.WriteCloser, error) {
	switch path.Ext(fname) {
	case ".bz2":
		return bzip2.NewWriter(file, new(bzip2.WriterConfig))
	case ".gz":
		return gzip.NewWriter(file), nil
	}

	return nopCloser{file}, nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

/*ReturnWriter create fname and return a writer compressing by extension (.gz, .bz2) */
func ReturnWriter(fname string) (io.WriteCloser, error) {
	outputFile, err := os.Create(fname)

	if err != nil {
		return nil, err
	}

	compressor, err := wrapCompressor(outputFile, fname)

	if err != nil {
		outputFile.Close()
		return nil, err
	}

	return &compressedWriter{WriteCloser: compressor, file: outputFile}, nil
}

/*AtomicWriter writes into a temporary file next to its destination.
The destination only appears, fully written and synced, after Commit */
type AtomicWriter struct {
	fname      string
	file       *os.File
	compressor io.WriteCloser
	closed     bool
}

/*CreateAtomicWriter open a temporary file in the directory of fname */
func CreateAtomicWriter(fname string) (*AtomicWriter, error) {
	dir, base := filepath.Split(fname)

	if dir == "" {
		dir = "."
	}

	file, err := os.CreateTemp(dir, fmt.Sprintf(".%s.*.tmp", base))

	if err != nil {
		return nil, err
	}

	compressor, err := wrapCompressor(file, fname)

	if err != nil {
		file.Close()
		os.Remove(file.Name())
		return nil, err
	}

	return &AtomicWriter{fname: fname, file: file, compressor: compressor}, nil
}

/*Write ... */
func (a *AtomicWriter) Write(p []byte) (int, error) {
	return a.compressor.Write(p)
}

/*Commit flush, sync and rename the temporary file onto the destination */
func (a *AtomicWriter) Commit() error {
	if a.closed {
		return errors.Errorf("writer for %s already closed", a.fname)
	}

	a.closed = true

	err := a.compressor.Close()

	if err == nil {
		err = a.file.Chmod(OUTPUTMODE)
	}

	if err == nil {
		err = a.file.Sync()
	}

	if cerr := a.file.Close(); err == nil {
		err = cerr
	}

	if err == nil {
		err = os.Rename(a.file.Name(), a.fname)
	}

	if err != nil {
		os.Remove(a.file.Name())
		return err
	}

	return nil
}

/*Abort drop the temporary file. Safe to call after Commit */
func (a *AtomicWriter) Abort() {
	if a.closed {
		return
	}

	a.closed = true
	a.compressor.Close()
	a.file.Close()
	os.Remove(a.file.Name())
}

/*CountNbLines count nb lines in a file*/
func CountNbLines(filename string) (int, error) {
	reader, file, err := ReturnReader(filename)

	if err != nil {
		return 0, err
	}

	defer CloseFile(file)

	nbLines := 0

	tStart := time.Now()

	for reader.Scan() {
		nbLines++
	}

	if err = reader.Err(); err != nil {
		return nbLines, err
	}

	log.Debugf("Count nb lines of %s done in time: %f s", filename, time.Since(tStart).Seconds())

	return nbLines, nil
}
