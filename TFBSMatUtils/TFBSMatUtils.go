/* Merge Marina "TFBS Coordinates" files into one TFBS abundance matrix */

package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"

	tfbsmatrix "gitlab.com/marina/TFBSUtils/TFBSMatrix"
	utils "gitlab.com/marina/TFBSUtils/TFBSUtils"
)

/*DEFAULTOUT default matrix output filename */
const DEFAULTOUT = "out_matrix.tab"

/*INFILES multiple input files */
var INFILES utils.ArrayFlags

/*FILENAMEOUT  output file name output */
var FILENAMEOUT string

/*REGIONFILE region file restricting the counted coordinates */
var REGIONFILE utils.Filename

/*LOGLEVEL logrus level */
var LOGLEVEL string

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `
#################### MODULE TO MERGE TFBS COORDINATE FILES INTO A MATRIX ########################

Upon running Marina, "TFBS Coordinates" can be saved from the File menu. Each
file holds, for every input sequence, the indices where each TFBS mapped. This
tool merges one or several of these files into a matrix where each cell is the
abundance of a TFBS in a sequence, usable for regression or SVM tasks.

USAGE: TFBSMatUtils -in <coordFile1> -in <coordFile2> ... (-out <fname> -regions <fname>)

`)
		flag.PrintDefaults()
	}

	flag.Var(&INFILES, "in", "one or more Marina-saved TFBS coordinate file(s) (repeat -in)")
	flag.StringVar(&FILENAMEOUT, "out", DEFAULTOUT, "matrix output filename (.gz and .bz2 are compressed)")
	flag.Var(&REGIONFILE, "regions", "optional <sequence>\t<start>\t<end> file: only coordinates inside these regions are counted")
	flag.StringVar(&LOGLEVEL, "loglevel", "info", "log level (debug, info, warn, error)")
	flag.Parse()

	level, err := log.ParseLevel(LOGLEVEL)
	CheckFatal(err)
	log.SetLevel(level)

	if len(INFILES) == 0 {
		log.Fatal("Error at least one input (-in) file must be provided!")
	}

	tStart := time.Now()

	summary, err := tfbsmatrix.Merge(INFILES, FILENAMEOUT,
		tfbsmatrix.Options{RegionFile: REGIONFILE.String()})
	CheckFatal(err)

	fmt.Printf("matrix of %d sequences x %d TFBSs from %d records\n",
		summary.NbRows, summary.NbColumns, summary.NbRecords)
	fmt.Printf("file: %s created!\n", summary.Output)
	fmt.Printf("done in time: %f s \n", time.Since(tStart).Seconds())
}

/*CheckFatal log the diagnostic of err and exit */
func CheckFatal(err error) {
	if err == nil {
		return
	}

	log.Debugf("%+v", err)

	// wrapped errors end with the diagnostic of their kind
	log.Fatal(err)
}
