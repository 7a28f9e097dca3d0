/*Package tfbsmatrix merges TFBS coordinate files into a dense abundance matrix.

Parsing, indexing, skeleton construction, population and writing run as
strictly sequential phases over the whole input set */
package tfbsmatrix

import (
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	utils "gitlab.com/marina/TFBSUtils/TFBSUtils"
)

/*Options ... */
type Options struct {
	// RegionFile restricts counts to coordinates inside its regions when set
	RegionFile string
}

/*Summary dimensions of a written matrix */
type Summary struct {
	Output    string
	NbRecords int
	NbRows    int
	NbColumns int
}

/*LoadFilter build the coordinate filter from a region file */
func LoadFilter(fname string) (CoordinateFilter, error) {
	var lineErr *utils.LineError

	regions, err := utils.LoadRegions(fname)

	switch {
	case errors.As(err, &lineErr):
		return nil, errors.Wrapf(ErrFormat, "%s", err)
	case err != nil:
		return nil, errors.Wrapf(ErrInputAccess, "%s", err)
	}

	log.Infof("%d regions loaded from %s", regions.Len(), fname)

	return regions, nil
}

/*BuildMatrix parse the input files and return the populated skeleton */
func BuildMatrix(fnames []string, opts Options) (*Skeleton, int, error) {
	var parseOpts ParseOptions
	var err error

	if opts.RegionFile != "" {
		if parseOpts.Filter, err = LoadFilter(opts.RegionFile); err != nil {
			return nil, 0, err
		}
	}

	records, err := ParseFiles(fnames, parseOpts)

	if err != nil {
		return nil, 0, err
	}

	rows, columns := BuildIndex(records)

	skeleton, err := NewSkeleton(rows, columns)

	if err != nil {
		return nil, 0, err
	}

	if err = skeleton.Populate(records); err != nil {
		return nil, 0, err
	}

	return skeleton, len(records), nil
}

/*Merge merge the coordinate files fnames into the matrix file outfile */
func Merge(fnames []string, outfile string, opts Options) (Summary, error) {
	summary := Summary{Output: outfile}
	tStart := time.Now()

	skeleton, nbRecords, err := BuildMatrix(fnames, opts)

	if err != nil {
		return summary, err
	}

	summary.NbRecords = nbRecords
	summary.NbRows = len(skeleton.Rows())
	summary.NbColumns = len(skeleton.Columns())

	log.Infof("writing to output file: %s", outfile)

	if err = WriteMatrixFile(outfile, skeleton); err != nil {
		return summary, err
	}

	log.Debugf("merge done in time: %f s", time.Since(tStart).Seconds())

	return summary, nil
}
