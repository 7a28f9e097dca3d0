package tfbsmatrix

import (
	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

/*Skeleton dense row x TFBS count matrix. Each row owns its column map */
type Skeleton struct {
	rows    []RowKey
	columns []string
	cells   map[RowKey]map[string]int
}

/*NewSkeleton allocate a zero-filled matrix over rows and columns.
Every row receives a deep copy of the zero column template */
func NewSkeleton(rows []RowKey, columns []string) (*Skeleton, error) {
	template := make(map[string]int, len(columns))

	for _, column := range columns {
		template[column] = 0
	}

	skeleton := &Skeleton{
		rows:    append([]RowKey(nil), rows...),
		columns: append([]string(nil), columns...),
		cells:   make(map[RowKey]map[string]int, len(rows)),
	}

	for _, row := range rows {
		counts := make(map[string]int, len(columns))

		if err := copier.CopyWithOption(&counts, &template, copier.Option{DeepCopy: true}); err != nil {
			return nil, errors.Wrapf(err, "column template copy for row %s", row)
		}

		skeleton.cells[row] = counts
	}

	log.Infof("skeleton matrix: %d rows x %d columns", len(rows), len(columns))

	return skeleton, nil
}

/*Rows row keys in output order */
func (s *Skeleton) Rows() []RowKey {
	return s.rows
}

/*Columns TFBS ids in output order */
func (s *Skeleton) Columns() []string {
	return s.columns
}

/*Get value of one cell, false if the cell is outside the matrix */
func (s *Skeleton) Get(row RowKey, column string) (int, bool) {
	counts, isInside := s.cells[row]

	if !isInside {
		return 0, false
	}

	value, isInside := counts[column]

	return value, isInside
}

/*Set overwrite one cell */
func (s *Skeleton) Set(row RowKey, column string, value int) error {
	if s == nil || s.cells == nil {
		return errors.WithStack(ErrSequencing)
	}

	counts, isInside := s.cells[row]

	if !isInside {
		return errors.Wrapf(ErrSequencing, "row %q absent from skeleton", row)
	}

	if _, isInside = counts[column]; !isInside {
		return errors.Wrapf(ErrSequencing, "column %q absent from skeleton", column)
	}

	counts[column] = value

	return nil
}

/*Populate write the count of every record into its cell. A later record
targeting the same cell overwrites the earlier one */
func (s *Skeleton) Populate(records []Record) error {
	if s == nil || s.cells == nil {
		return errors.WithStack(ErrSequencing)
	}

	for _, record := range records {
		if err := s.Set(record.Row(), record.TFBSID, record.Count); err != nil {
			return err
		}
	}

	return nil
}
