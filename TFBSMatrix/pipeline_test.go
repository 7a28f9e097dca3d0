package tfbsmatrix

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	utils "gitlab.com/marina/TFBSUtils/TFBSUtils"
)

func readLines(t *testing.T, fname string) []string {
	t.Helper()
	scanner, closer, err := utils.ReturnReader(fname)
	if err != nil {
		t.Fatal(err)
	}
	defer closer.Close()

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines
}

func TestWriteMatrix(t *testing.T) {
	records := []Record{
		{"GroupA", "Seq1", "TF1", 2},
		{"GroupA", "Seq2", "TF2", 1},
		{"GroupB", "Seq1", "TF1", 4},
	}
	rows, columns := BuildIndex(records)
	skeleton, _ := NewSkeleton(rows, columns)
	skeleton.Populate(records)

	var buf bytes.Buffer
	if err := WriteMatrix(&buf, skeleton); err != nil {
		t.Fatal(err)
	}

	want := "Group\tSequence\tTF1\tTF2\n" +
		"GroupA\tSeq1\t2\t0\n" +
		"GroupA\tSeq2\t0\t1\n" +
		"GroupB\tSeq1\t4\t0\n"
	if buf.String() != want {
		t.Fatalf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestWriteMatrixNilSkeleton(t *testing.T) {
	if err := WriteMatrix(&bytes.Buffer{}, nil); !errors.Is(err, ErrSequencing) {
		t.Fatalf("want ErrSequencing, got %v", err)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteMatrixWriteFailure(t *testing.T) {
	skeleton, _ := NewSkeleton(nil, nil)
	if err := WriteMatrix(failingWriter{}, skeleton); !errors.Is(err, ErrOutputWrite) {
		t.Fatalf("want ErrOutputWrite, got %v", err)
	}
}

func TestMergeScenarioA(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "a.tsv", "GroupA\tSeq1\tTF1\t10\t20\n")
	out := filepath.Join(dir, "out.tab")

	summary, err := Merge([]string{in}, out, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if summary.NbRows != 1 || summary.NbColumns != 1 || summary.NbRecords != 1 {
		t.Fatalf("unexpected summary %+v", summary)
	}

	lines := readLines(t, out)
	if len(lines) != 2 || lines[0] != "Group\tSequence\tTF1" || lines[1] != "GroupA\tSeq1\t2" {
		t.Fatalf("unexpected output %q", lines)
	}

	info, err := os.Stat(out)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm()&0o044 != 0o044 {
		t.Fatalf("matrix must be readable by group and others, mode %v", info.Mode().Perm())
	}
}

func TestMergeScenarioB(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "b.tsv", "GroupA\tSeq1\tTF1\n")
	out := filepath.Join(dir, "out.tab")

	if _, err := Merge([]string{in}, out, Options{}); err != nil {
		t.Fatal(err)
	}
	if lines := readLines(t, out); lines[1] != "GroupA\tSeq1\t0" {
		t.Fatalf("unexpected row %q", lines[1])
	}
}

func TestMergeScenarioC(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.tsv", "G\tS\tTFA\t1\n")
	b := writeFile(t, dir, "b.tsv", "G\tS\tTFB\t1\t2\n")
	out := filepath.Join(dir, "out.tab")

	if _, err := Merge([]string{a, b}, out, Options{}); err != nil {
		t.Fatal(err)
	}

	lines := readLines(t, out)
	want := []string{"Group\tSequence\tTFA\tTFB", "G\tS\t1\t2"}
	if strings.Join(lines, "\n") != strings.Join(want, "\n") {
		t.Fatalf("got %q, want %q", lines, want)
	}
}

func TestMergeScenarioDLeavesNoOutput(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "d.tsv", "G\tS\tTF1\t3\nG\tS\n")
	out := filepath.Join(dir, "out.tab")

	_, err := Merge([]string{in}, out, Options{})
	if !errors.Is(err, ErrFormat) {
		t.Fatalf("want ErrFormat, got %v", err)
	}
	if _, err = os.Stat(out); !os.IsNotExist(err) {
		t.Fatalf("no output file expected, stat err=%v", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Fatalf("unexpected files left: %v", entries)
	}
}

func TestMergeScenarioEHeaderOnly(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.tab")

	summary, err := Merge(nil, out, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if summary.NbRows != 0 || summary.NbColumns != 0 {
		t.Fatalf("unexpected summary %+v", summary)
	}

	raw, _ := os.ReadFile(out)
	if string(raw) != "Group\tSequence\n" {
		t.Fatalf("got %q", raw)
	}
}

func TestMergeIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.tsv", "G2\tS1\tTF9\t1\t\nG1\tS1\tTF1\t\t\nG1\tS3\tTF2\t4\t5\t6\t\n")
	b := writeFile(t, dir, "b.tsv", "G1\tS1\tTF9\t8\nG3\tS1\tTF4\n")
	out1 := filepath.Join(dir, "out1.tab")
	out2 := filepath.Join(dir, "out2.tab")

	if _, err := Merge([]string{a, b}, out1, Options{}); err != nil {
		t.Fatal(err)
	}
	if _, err := Merge([]string{a, b}, out2, Options{}); err != nil {
		t.Fatal(err)
	}

	raw1, _ := os.ReadFile(out1)
	raw2, _ := os.ReadFile(out2)
	if !bytes.Equal(raw1, raw2) {
		t.Fatalf("outputs differ:\n%s\n---\n%s", raw1, raw2)
	}

	want := "Group\tSequence\tTF9\tTF1\tTF2\tTF4\n" +
		"G2\tS1\t1\t0\t0\t0\n" +
		"G1\tS1\t1\t0\t0\t0\n" +
		"G1\tS3\t0\t0\t3\t0\n" +
		"G3\tS1\t0\t0\t0\t0\n"
	if string(raw1) != want {
		t.Fatalf("got:\n%s\nwant:\n%s", raw1, want)
	}
}

func TestMergeOverwritesExistingOutput(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "a.tsv", "G\tS\tTF1\t1\n")
	out := writeFile(t, dir, "out.tab", "stale content\n")

	if _, err := Merge([]string{in}, out, Options{}); err != nil {
		t.Fatal(err)
	}
	if lines := readLines(t, out); lines[0] != "Group\tSequence\tTF1" {
		t.Fatalf("output not replaced: %q", lines)
	}
}

func TestMergeCompressedInputAndOutput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "a.tsv.gz")

	writer, err := utils.ReturnWriter(in)
	if err != nil {
		t.Fatal(err)
	}
	writer.Write([]byte("G\tS\tTF1\t1\t2\t3\t\n"))
	writer.Close()

	out := filepath.Join(dir, "out.tab.bz2")
	if _, err = Merge([]string{in}, out, Options{}); err != nil {
		t.Fatal(err)
	}

	lines := readLines(t, out)
	if len(lines) != 2 || lines[1] != "G\tS\t3" {
		t.Fatalf("unexpected output %q", lines)
	}
}

func TestMergeUnwritableOutput(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "a.tsv", "G\tS\tTF1\n")

	_, err := Merge([]string{in}, filepath.Join(dir, "missing", "out.tab"), Options{})
	if !errors.Is(err, ErrOutputWrite) {
		t.Fatalf("want ErrOutputWrite, got %v", err)
	}
}

func TestMergeWithRegions(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "a.tsv", "G\tS1\tTF1\t5\t15\t18\t\nG\tS2\tTF1\t15\t\n")
	regions := writeFile(t, dir, "regions.tsv", "S1\t10\t20\n")
	out := filepath.Join(dir, "out.tab")

	if _, err := Merge([]string{in}, out, Options{RegionFile: regions}); err != nil {
		t.Fatal(err)
	}

	lines := readLines(t, out)
	if lines[1] != "G\tS1\t2" || lines[2] != "G\tS2\t0" {
		t.Fatalf("unexpected output %q", lines)
	}
}

func TestMergeRegionErrors(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "a.tsv", "G\tS1\tTF1\t5\n")
	bad := writeFile(t, dir, "bad.tsv", "S1\tten\t20\n")
	out := filepath.Join(dir, "out.tab")

	if _, err := Merge([]string{in}, out, Options{RegionFile: bad}); !errors.Is(err, ErrFormat) {
		t.Fatalf("malformed region: want ErrFormat, got %v", err)
	}
	if _, err := Merge([]string{in}, out, Options{RegionFile: filepath.Join(dir, "none")}); !errors.Is(err, ErrInputAccess) {
		t.Fatalf("missing region file: want ErrInputAccess, got %v", err)
	}
}
