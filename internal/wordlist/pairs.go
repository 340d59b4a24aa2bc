package wordlist

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// WordPair is one vocabulary entry: the English source and its Portuguese target
type WordPair struct {
	Source string
	Target string
}

func (p WordPair) String() string {
	return fmt.Sprintf("%s = %s", p.Source, p.Target)
}

// Complete reports whether both sides carry text
func (p WordPair) Complete() bool {
	return p.Source != "" && p.Target != ""
}

// ReadPairs reads word pairs from a comma-delimited file. Rows with fewer
// than two fields are skipped; extra columns are ignored.
func ReadPairs(filename string, skipHeader bool) ([]WordPair, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open word list: %w", err)
	}
	defer file.Close()

	return readPairs(file, skipHeader)
}

func readPairs(r io.Reader, skipHeader bool) ([]WordPair, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var pairs []WordPair
	first := true
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read word list: %w", err)
		}

		if first {
			first = false
			if len(record) > 0 {
				record[0] = strings.TrimPrefix(record[0], "\ufeff")
			}
			if skipHeader {
				continue
			}
		}

		if len(record) < 2 {
			continue
		}

		pairs = append(pairs, WordPair{
			Source: strings.TrimSpace(record[0]),
			Target: strings.TrimSpace(record[1]),
		})
	}

	return pairs, nil
}

// ReadMaster loads the master list. A master list that does not exist yet is empty.
func ReadMaster(filename string) ([]WordPair, error) {
	pairs, err := ReadPairs(filename, false)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return pairs, err
}

// WriteMaster rewrites the master list completely, two fields per row, no header.
// The file is written next to its destination and renamed into place.
func WriteMaster(filename string, pairs []WordPair) error {
	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	tmp, err := os.CreateTemp(dir, ".master-*.csv")
	if err != nil {
		return fmt.Errorf("failed to create master list: %w", err)
	}
	defer os.Remove(tmp.Name())

	writer := csv.NewWriter(tmp)
	for _, pair := range pairs {
		if err := writer.Write([]string{pair.Source, pair.Target}); err != nil {
			tmp.Close()
			return fmt.Errorf("failed to write pair %q: %w", pair.Source, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to flush master list: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close master list: %w", err)
	}

	if err := os.Rename(tmp.Name(), filename); err != nil {
		return fmt.Errorf("failed to replace master list: %w", err)
	}
	return nil
}
