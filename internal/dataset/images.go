package dataset

import (
	"errors"
	"os"
)

// ImageTable is the in-memory working copy of card_images.csv, keyed by card name.
// Columns other than Name and Image are carried through untouched.
type ImageTable struct {
	table    Table
	nameCol  int
	imageCol int
	index    map[string]int
}

// NewImageTable returns an empty table.
func NewImageTable() *ImageTable {
	t, _ := newImageTable(Table{Header: append([]string(nil), CardImagesHeader...)}, "")
	return t
}

func newImageTable(table Table, path string) (*ImageTable, error) {
	nameCol := table.Index(ColName)
	if nameCol < 0 {
		return nil, &ConfigError{Path: path, Column: ColName}
	}
	imageCol := table.Index(ColImage)
	if imageCol < 0 {
		return nil, &ConfigError{Path: path, Column: ColImage}
	}

	t := &ImageTable{
		table:    table,
		nameCol:  nameCol,
		imageCol: imageCol,
		index:    make(map[string]int, len(table.Rows)),
	}
	for i, row := range table.Rows {
		name := table.Cell(row, nameCol)
		if _, ok := t.index[name]; !ok {
			t.index[name] = i
		}
	}
	return t, nil
}

// LoadImageTable reads card_images.csv, a missing or empty file is an empty table.
func LoadImageTable(path string) (*ImageTable, error) {
	table, err := ReadTable(path)
	if errors.Is(err, os.ErrNotExist) {
		return NewImageTable(), nil
	}
	if err != nil {
		return nil, err
	}
	if len(table.Header) == 0 {
		return NewImageTable(), nil
	}
	return newImageTable(table, path)
}

// Has reports whether `name` already has an image, the match is exact.
func (t *ImageTable) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Get returns the image of `name`.
func (t *ImageTable) Get(name string) (string, bool) {
	i, ok := t.index[name]
	if !ok {
		return "", false
	}
	return t.table.Cell(t.table.Rows[i], t.imageCol), true
}

// Add appends a record for `name`, it does nothing and returns false if the
// name is already present.
func (t *ImageTable) Add(name, image string) bool {
	if t.Has(name) {
		return false
	}
	row := make([]string, len(t.table.Header))
	row[t.nameCol] = name
	row[t.imageCol] = image
	t.table.Rows = append(t.table.Rows, row)
	t.index[name] = len(t.table.Rows) - 1
	return true
}

func (t *ImageTable) Len() int {
	return len(t.table.Rows)
}

// Names returns every name in table order.
func (t *ImageTable) Names() []string {
	names := make([]string, 0, len(t.table.Rows))
	for _, row := range t.table.Rows {
		names = append(names, t.table.Cell(row, t.nameCol))
	}
	return names
}

func (t *ImageTable) Records() []CardImageRecord {
	records := make([]CardImageRecord, 0, len(t.table.Rows))
	for _, row := range t.table.Rows {
		records = append(records, CardImageRecord{
			Name:  t.table.Cell(row, t.nameCol),
			Image: t.table.Cell(row, t.imageCol),
		})
	}
	return records
}

// Save overwrites the file at `path` with the whole table.
func (t *ImageTable) Save(path string) error {
	return WriteTable(path, t.table)
}
