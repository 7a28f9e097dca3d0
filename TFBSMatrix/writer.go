package tfbsmatrix

import (
	"bufio"
	"bytes"
	"io"
	"strconv"

	"github.com/pkg/errors"

	utils "gitlab.com/marina/TFBSUtils/TFBSUtils"
)

/*HEADERPREFIX leading header columns */
var HEADERPREFIX = []string{"Group", "Sequence"}

/*WriteMatrix write the header then one line per row, tab-delimited */
func WriteMatrix(w io.Writer, skeleton *Skeleton) error {
	var buffer bytes.Buffer

	if skeleton == nil || skeleton.cells == nil {
		return errors.WithStack(ErrSequencing)
	}

	writer := bufio.NewWriter(w)

	buffer.WriteString(HEADERPREFIX[0])
	buffer.WriteRune('\t')
	buffer.WriteString(HEADERPREFIX[1])

	for _, column := range skeleton.columns {
		buffer.WriteRune('\t')
		buffer.WriteString(column)
	}

	buffer.WriteRune('\n')

	if _, err := writer.Write(buffer.Bytes()); err != nil {
		return errors.Wrapf(ErrOutputWrite, "%s", err)
	}

	for _, row := range skeleton.rows {
		buffer.Reset()
		counts := skeleton.cells[row]

		buffer.WriteString(row.Group)
		buffer.WriteRune('\t')
		buffer.WriteString(row.SequenceName)

		for _, column := range skeleton.columns {
			buffer.WriteRune('\t')
			buffer.WriteString(strconv.Itoa(counts[column]))
		}

		buffer.WriteRune('\n')

		if _, err := writer.Write(buffer.Bytes()); err != nil {
			return errors.Wrapf(ErrOutputWrite, "%s", err)
		}
	}

	if err := writer.Flush(); err != nil {
		return errors.Wrapf(ErrOutputWrite, "%s", err)
	}

	return nil
}

/*WriteMatrixFile write the matrix to fname (.gz and .bz2 compressed by extension).
fname is replaced only once the whole matrix is written and synced */
func WriteMatrixFile(fname string, skeleton *Skeleton) error {
	writer, err := utils.CreateAtomicWriter(fname)

	if err != nil {
		return errors.Wrapf(ErrOutputWrite, "%s", err)
	}

	defer writer.Abort()

	if err = WriteMatrix(writer, skeleton); err != nil {
		return err
	}

	if err = writer.Commit(); err != nil {
		return errors.Wrapf(ErrOutputWrite, "%s: %s", fname, err)
	}

	return nil
}
