package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrConfig is matched by every *ConfigError.
var ErrConfig = errors.New("invalid input table")

// ConfigError means a required input table or one of its columns is missing.
type ConfigError struct {
	Path   string
	Column string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("%s must contain a '%s' column", e.Path, e.Column)
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

// Table is a delimited table with a header row.
type Table struct {
	Header []string
	Rows   [][]string
}

// Index returns the position of the first column called `name`, or -1.
func (t Table) Index(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// Cell returns the value of column `col` in `row`, short rows read as empty.
func (t Table) Cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

// ReadTable reads a csv file, it fails with a *ConfigError if the file or
// any of the `required` columns is missing.
func ReadTable(path string, required ...string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Table{}, &ConfigError{Path: path, Err: err}
		}
		return Table{}, err
	}
	defer f.Close()

	table, err := readCSV(f)
	if err != nil {
		return Table{}, fmt.Errorf("read %s: %w", path, err)
	}
	for _, column := range required {
		if table.Index(column) < 0 {
			return Table{}, &ConfigError{Path: path, Column: column}
		}
	}
	return table, nil
}

func readCSV(r io.Reader) (Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return Table{}, nil
	}
	if err != nil {
		return Table{}, err
	}
	// a UTF-8 BOM is left behind by spreadsheet exports
	if len(header) > 0 {
		header[0] = trimBOM(header[0])
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return Table{}, err
	}
	return Table{Header: header, Rows: rows}, nil
}

func trimBOM(s string) string {
	return strings.TrimPrefix(s, "\ufeff")
}

// WriteTable replaces the file at `path` with `table`. The table is written
// to a temporary file first so a failed write leaves the old file intact.
func WriteTable(path string, table Table) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	writer := csv.NewWriter(tmp)
	err = writer.Write(table.Header)
	if err == nil {
		err = writer.WriteAll(table.Rows)
	}
	if err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	err = tmp.Chmod(tableMode(path))
	if err != nil {
		tmp.Close()
		return err
	}
	err = tmp.Close()
	if err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// tableMode is the permission of the file at `path`, or 0644 for a new file.
func tableMode(path string) os.FileMode {
	info, err := os.Stat(path)
	if err != nil {
		return 0644
	}
	return info.Mode().Perm()
}

// AppendRows appends `rows` to the csv file at `path` without touching the
// rows already in it. If the file does not exist it is created with `header`.
func AppendRows(path string, header []string, rows [][]string) error {
	_, err := os.Stat(path)
	exists := err == nil
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if !exists {
		err = writer.Write(header)
		if err != nil {
			return err
		}
	}
	err = writer.WriteAll(rows)
	if err != nil {
		return fmt.Errorf("append %s: %w", path, err)
	}
	return f.Close()
}
