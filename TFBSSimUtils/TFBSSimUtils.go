/* Suite of functions dedicated to generate simulated TFBS coordinate files */

package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/valyala/fastrand"

	utils "gitlab.com/marina/TFBSUtils/TFBSUtils"
)

/*GROUPS group names, one output file per group */
var GROUPS utils.ArrayFlags

/*FILENAMEOUT  output prefix */
var FILENAMEOUT string

/*SEQNB number of sequences per group */
var SEQNB int

/*TFBSNB number of distinct TFBSs */
var TFBSNB int

/*DENSITY probability that a TFBS maps to a sequence */
var DENSITY float64

/*MAXCOORDS max number of coordinates for one TFBS in one sequence */
var MAXCOORDS int

/*SEQLENGTH length of the simulated sequences */
var SEQLENGTH int

/*SEED  Seed used for random processes*/
var SEED int

/*SimConfig parameters of one simulation */
type SimConfig struct {
	NbSequences int
	NbTFBS      int
	Density     float64
	MaxCoords   int
	SeqLength   int
}

func (c SimConfig) validate() error {
	switch {
	case c.NbSequences <= 0:
		return errors.Errorf("number of sequences must be > 0, got %d", c.NbSequences)
	case c.NbTFBS <= 0:
		return errors.Errorf("number of TFBSs must be > 0, got %d", c.NbTFBS)
	case c.Density < 0 || c.Density > 1:
		return errors.Errorf("density must be within [0, 1], got %f", c.Density)
	case c.MaxCoords < 0:
		return errors.Errorf("max coordinates must be >= 0, got %d", c.MaxCoords)
	case c.SeqLength <= 0:
		return errors.Errorf("sequence length must be > 0, got %d", c.SeqLength)
	}

	return nil
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `
#################### MODULE TO CREATE SIMULATED TFBS COORDINATE FILES ########################

USAGE: TFBSSimUtils -group <name> (-group <name> ...) -out <prefix> (-seqs <int> -tfbs <int> -density <float> -max <int> -length <int> -seed <int>)

`)
		flag.PrintDefaults()
	}

	flag.Var(&GROUPS, "group", "group name (repeat -group for several files)")
	flag.StringVar(&FILENAMEOUT, "out", "simulated", "prefix of the output file(s): <out>.<group>.tsv")
	flag.IntVar(&SEQNB, "seqs", 100, "number of sequences per group")
	flag.IntVar(&TFBSNB, "tfbs", 20, "number of distinct TFBSs")
	flag.Float64Var(&DENSITY, "density", 0.3, "probability that a TFBS maps to a sequence")
	flag.IntVar(&MAXCOORDS, "max", 5, "max number of coordinates per TFBS and sequence")
	flag.IntVar(&SEQLENGTH, "length", 1000, "length of the simulated sequences")
	flag.IntVar(&SEED, "seed", 2019, "Seed used for random processes (non-zero for reproducible output)")
	flag.Parse()

	if len(GROUPS) == 0 {
		log.Fatal("Error At least one -group should be given")
	}

	conf := SimConfig{
		NbSequences: SEQNB,
		NbTFBS:      TFBSNB,
		Density:     DENSITY,
		MaxCoords:   MAXCOORDS,
		SeqLength:   SEQLENGTH,
	}

	if err := conf.validate(); err != nil {
		log.Fatal(err)
	}

	var rng fastrand.RNG
	rng.Seed(uint32(SEED))

	tStart := time.Now()

	for _, group := range GROUPS {
		outputfile := fmt.Sprintf("%s.%s.tsv", FILENAMEOUT, group)

		if err := simulateGroupFile(&rng, group, conf, outputfile); err != nil {
			log.Fatal(err)
		}
	}

	fmt.Printf("Simulation done in time: %f s \n", time.Since(tStart).Seconds())
}

func simulateGroupFile(rng *fastrand.RNG, group string, conf SimConfig, outputfile string) error {
	writer, err := utils.ReturnWriter(outputfile)

	if err != nil {
		return err
	}

	if err = simulateGroup(rng, group, conf, writer); err != nil {
		writer.Close()
		return errors.Wrapf(err, "simulating %s", outputfile)
	}

	if err = writer.Close(); err != nil {
		return err
	}

	nbLines, err := utils.CountNbLines(outputfile)

	if err != nil {
		return err
	}

	fmt.Printf("File: %s written with %d lines!\n", outputfile, nbLines)

	return nil
}

/*simulateGroup write the coordinate lines of one group the way Marina saves them:
group, sequence, TFBS, then the coordinates, each field followed by a tab */
func simulateGroup(rng *fastrand.RNG, group string, conf SimConfig, writer io.Writer) error {
	var buffer bytes.Buffer

	threshold := uint32(conf.Density * 1000000)
	coords := make([]int, 0, conf.MaxCoords)

	for i := 0; i < conf.NbSequences; i++ {
		seqName := fmt.Sprintf("%s_seq%d", group, i)

		for j := 0; j < conf.NbTFBS; j++ {
			if rng.Uint32n(1000000) >= threshold {
				continue
			}

			coords = coords[:0]

			for k := rng.Uint32n(uint32(conf.MaxCoords) + 1); k > 0; k-- {
				coords = append(coords, int(rng.Uint32n(uint32(conf.SeqLength))))
			}

			sort.Ints(coords)

			buffer.WriteString(group)
			buffer.WriteRune('\t')
			buffer.WriteString(seqName)
			buffer.WriteRune('\t')
			buffer.WriteString("TFBS_")
			buffer.WriteString(strconv.Itoa(j))
			buffer.WriteRune('\t')

			for pos, coord := range coords {
				if pos > 0 {
					buffer.WriteRune('\t')
				}

				buffer.WriteString(strconv.Itoa(coord))
			}

			buffer.WriteRune('\t')
			buffer.WriteRune('\n')
		}

		if _, err := writer.Write(buffer.Bytes()); err != nil {
			return err
		}

		buffer.Reset()
	}

	return nil
}
