package tfbsutils

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/biogo/store/interval"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

//IntInterval Integer-specific intervals, bounds inclusive
type IntInterval struct {
	Start, End int
	UID        uintptr
}

//Overlap rule for two Interval
func (i IntInterval) Overlap(b interval.IntRange) bool {
	// Search for intersection
	return i.End >= b.Start && i.Start <= b.End
}

//ID Return the ID of Interval
func (i IntInterval) ID() uintptr {
	return i.UID
}

//Range Return the range of Interval
func (i IntInterval) Range() interval.IntRange {
	return interval.IntRange{Start: i.Start, End: i.End}
}

//String Return the string representation of Interval
func (i IntInterval) String() string {
	return fmt.Sprintf("(%d, %d) id: %d", i.Start, i.End, i.ID())
}

//Region one line of a region file
type Region struct {
	Sequence   string
	Start, End int
}

//SplitToRegion Convert string split to region
func SplitToRegion(split []string) (region Region, err error) {
	if len(split) < 3 {
		return region, errors.Errorf(
			"region %q should be <sequence>\t<start>\t<end>", strings.Join(split, "\t"))
	}

	region.Sequence = split[0]

	if region.Start, err = strconv.Atoi(split[1]); err != nil {
		return region, errors.Wrapf(err, "region start %q", split[1])
	}

	if region.End, err = strconv.Atoi(split[2]); err != nil {
		return region, errors.Wrapf(err, "region end %q", split[2])
	}

	if region.End < region.Start {
		return region, errors.Errorf("region %s:%d-%d has end before start",
			region.Sequence, region.Start, region.End)
	}

	return region, nil
}

//RegionIndex sequence name <-> interval tree of its regions
type RegionIndex struct {
	trees  map[string]*interval.IntTree
	nextID uintptr
}

//NewRegionIndex empty region index
func NewRegionIndex() *RegionIndex {
	return &RegionIndex{trees: make(map[string]*interval.IntTree)}
}

//Insert add one region to the index
func (r *RegionIndex) Insert(region Region) error {
	var isInside bool

	if _, isInside = r.trees[region.Sequence]; !isInside {
		r.trees[region.Sequence] = &interval.IntTree{}
	}

	itv := IntInterval{Start: region.Start, End: region.End, UID: r.nextID}
	r.nextID++

	return r.trees[region.Sequence].Insert(itv, false)
}

//Len number of regions stored
func (r *RegionIndex) Len() int {
	return int(r.nextID)
}

//Contains true if pos falls inside one region of sequence
func (r *RegionIndex) Contains(sequence string, pos int) bool {
	tree, isInside := r.trees[sequence]

	if !isInside {
		return false
	}

	return len(tree.Get(IntInterval{Start: pos, End: pos})) > 0
}

/*LoadRegions load a <sequence>\t<start>\t<end> file into a RegionIndex.
Lines starting with # and blank lines are skipped */
func LoadRegions(fname string) (*RegionIndex, error) {
	var line string
	var region Region

	scanner, file, err := ReturnReader(fname)

	if err != nil {
		return nil, err
	}

	defer CloseFile(file)

	tStart := time.Now()
	index := NewRegionIndex()
	lineNb := 0

	for scanner.Scan() {
		lineNb++
		line = strings.TrimSpace(scanner.Text())

		if line == "" || line[0] == '#' {
			continue
		}

		if region, err = SplitToRegion(strings.Split(line, "\t")); err != nil {
			return nil, &LineError{Fname: fname, LineNb: lineNb, Err: err}
		}

		if err = index.Insert(region); err != nil {
			return nil, &LineError{Fname: fname, LineNb: lineNb, Err: err}
		}
	}

	if err = scanner.Err(); err != nil {
		return nil, err
	}

	log.Debugf("%d regions loaded from %s in %f s", index.Len(), fname, time.Since(tStart).Seconds())

	return index, nil
}

//LineError error located at one line of one file
type LineError struct {
	Fname  string
	LineNb int
	Err    error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("%s line %d: %s", e.Fname, e.LineNb, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}
