package tfbsmatrix

import (
	"bufio"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	utils "gitlab.com/marina/TFBSUtils/TFBSUtils"
)

/*NBDESCRIPTORS first columns of a coordinate line: group, sequence name, TFBS id */
const NBDESCRIPTORS = 3

/*Record one line of a TFBS coordinate file */
type Record struct {
	Group        string
	SequenceName string
	TFBSID       string
	Count        int
}

/*RowKey identify one matrix row */
type RowKey struct {
	Group        string
	SequenceName string
}

func (k RowKey) String() string {
	return k.Group + "\t" + k.SequenceName
}

/*Row return the row key of the record */
func (r Record) Row() RowKey {
	return RowKey{Group: r.Group, SequenceName: r.SequenceName}
}

/*CoordinateFilter decide whether a coordinate of a sequence is counted */
type CoordinateFilter interface {
	Contains(sequence string, pos int) bool
}

/*ParseOptions ... */
type ParseOptions struct {
	// Filter restricts counting to the accepted coordinates. Nil counts every coordinate.
	Filter CoordinateFilter
}

/*ParseLine parse one coordinate line.
Only trailing whitespace is trimmed: Marina ends every line with a tab,
while a leading tab is an empty group field */
func ParseLine(line string, opts ParseOptions) (record Record, err error) {
	split := strings.Split(strings.TrimRight(line, " \t\r\n"), "\t")

	if len(split) < NBDESCRIPTORS {
		return record, errors.Errorf("%d field(s), expected at least %d", len(split), NBDESCRIPTORS)
	}

	record.Group, record.SequenceName, record.TFBSID = split[0], split[1], split[2]

	switch {
	case record.Group == "":
		return record, errors.New("empty group field")
	case record.SequenceName == "":
		return record, errors.New("empty sequence name field")
	case record.TFBSID == "":
		return record, errors.New("empty TFBS field")
	}

	coords := split[NBDESCRIPTORS:]

	if opts.Filter == nil {
		record.Count = len(coords)
		return record, nil
	}

	for _, coord := range coords {
		pos, err := strconv.Atoi(coord)

		if err != nil {
			return record, errors.Errorf("coordinate %q is not an integer", coord)
		}

		if opts.Filter.Contains(record.SequenceName, pos) {
			record.Count++
		}
	}

	return record, nil
}

/*ParseFile append the records of fname to records */
func ParseFile(fname string, records []Record, opts ParseOptions) ([]Record, error) {
	var line string
	var record Record

	scanner, file, err := utils.ReturnReader(fname)

	if err != nil {
		return records, errors.Wrapf(ErrInputAccess, "%s", err)
	}

	defer utils.CloseFile(file)

	lineNb := 0
	nbRecords := len(records)

	for scanner.Scan() {
		lineNb++
		line = scanner.Text()

		if record, err = ParseLine(line, opts); err != nil {
			return records, errors.Wrapf(ErrFormat, "%s line %d: %s", fname, lineNb, err)
		}

		records = append(records, record)
	}

	if err = scanner.Err(); errors.Is(err, bufio.ErrTooLong) {
		return records, errors.Wrapf(ErrFormat, "%s line %d: %s", fname, lineNb+1, err)
	}

	if err != nil {
		return records, errors.Wrapf(ErrInputAccess, "%s: %s", fname, err)
	}

	log.Debugf("%d records parsed from %s", len(records)-nbRecords, fname)

	return records, nil
}

/*ParseFiles parse every file in order. The first failing file aborts the batch */
func ParseFiles(fnames []string, opts ParseOptions) ([]Record, error) {
	var err error

	records := []Record{}

	for _, fname := range fnames {
		log.Infof("parsing file: %s", fname)

		if records, err = ParseFile(fname, records, opts); err != nil {
			return nil, err
		}
	}

	return records, nil
}
