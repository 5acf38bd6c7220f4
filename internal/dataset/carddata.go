package dataset

import (
	"errors"
	"os"
)

// AppendCardData appends `records` to card_data.csv, creating it with a
// header if it does not exist yet. Existing rows are never rewritten and
// no deduplication happens, harvesting the same page twice on the same day
// leaves two copies of its rows.
func AppendCardData(path string, records []CardInclusionRecord) error {
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = r.Row()
	}
	return AppendRows(path, CardDataHeader, rows)
}

// UpsertCardData rewrites card_data.csv so that `records` replace every
// existing row with the same (Commander, Date, Name). Rows without a match
// keep their position, `records` are written after them.
func UpsertCardData(path string, records []CardInclusionRecord) error {
	table, err := ReadTable(path)
	if errors.Is(err, os.ErrNotExist) {
		return AppendCardData(path, records)
	}
	if err != nil {
		return err
	}
	if len(table.Header) == 0 {
		table.Header = CardDataHeader
	}

	replaced := make(map[recordKey]struct{}, len(records))
	for _, r := range records {
		replaced[r.key()] = struct{}{}
	}

	commanderCol := table.Index(ColCommander)
	dateCol := table.Index(ColDate)
	nameCol := table.Index(ColName)

	kept := table.Rows[:0]
	for _, row := range table.Rows {
		key := recordKey{
			commander: table.Cell(row, commanderCol),
			date:      table.Cell(row, dateCol),
			name:      table.Cell(row, nameCol),
		}
		if _, ok := replaced[key]; ok {
			continue
		}
		kept = append(kept, row)
	}
	for _, r := range records {
		kept = append(kept, reorder(r, table.Header))
	}
	table.Rows = kept

	return WriteTable(path, table)
}

// reorder lays out a record following an existing header, columns the
// record doesn't know are left empty.
func reorder(r CardInclusionRecord, header []string) []string {
	fields := r.Row()
	values := make(map[string]string, len(fields))
	for i, col := range CardDataHeader {
		values[col] = fields[i]
	}
	row := make([]string, len(header))
	for i, col := range header {
		row[i] = values[col]
	}
	return row
}
