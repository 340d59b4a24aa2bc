package anki

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Record is one flashcard: a front and a back field, each holding
// text and optionally a [sound:...] reference.
type Record struct {
	Front string
	Back  string
}

var soundRe = regexp.MustCompile(`\[sound:([^\]]+)\]`)

// FormatField formats a card field for Anki import:
// "{text}<br>[sound:{filename}]", or just text when there is no audio.
func FormatField(text, audioFile string) string {
	if audioFile == "" {
		return text
	}
	return fmt.Sprintf("%s<br>[sound:%s]", text, filepath.Base(audioFile))
}

// Sounds returns the audio file names referenced by a field
func Sounds(field string) []string {
	var names []string
	for _, m := range soundRe.FindAllStringSubmatch(field, -1) {
		names = append(names, m[1])
	}
	return names
}

// StripMedia removes sound references and HTML line breaks from a field
func StripMedia(field string) string {
	s := soundRe.ReplaceAllString(field, "")
	s = strings.ReplaceAll(s, "<br>", " ")
	return strings.Join(strings.Fields(s), " ")
}

// Writer writes flashcard records as two-column CSV rows
type Writer struct {
	file  *os.File
	csv   *csv.Writer
	count int
}

// NewWriter opens path for writing. With appendMode rows are added after
// the existing ones, otherwise the file is truncated.
func NewWriter(path string, appendMode bool) (*Writer, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	flags := os.O_CREATE | os.O_WRONLY
	if appendMode {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}

	file, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open flashcard file: %w", err)
	}

	return &Writer{file: file, csv: csv.NewWriter(file)}, nil
}

// Write adds one record
func (w *Writer) Write(r Record) error {
	if err := w.csv.Write([]string{r.Front, r.Back}); err != nil {
		return fmt.Errorf("failed to write card: %w", err)
	}
	w.count++
	return nil
}

// Count returns the number of records written
func (w *Writer) Count() int {
	return w.count
}

// Path returns the file being written
func (w *Writer) Path() string {
	return w.file.Name()
}

// Close flushes pending rows and closes the file
func (w *Writer) Close() error {
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		w.file.Close()
		return fmt.Errorf("failed to flush flashcards: %w", err)
	}
	return w.file.Close()
}

// ReadRecords reads a flashcard CSV back. Rows with fewer than two
// fields are skipped.
func ReadRecords(path string) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open flashcard file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var records []Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		if len(row) < 2 {
			continue
		}
		records = append(records, Record{Front: row[0], Back: row[1]})
	}

	return records, nil
}
