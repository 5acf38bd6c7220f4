package dataset

// Column names of the input and output tables.
const (
	ColCommander = "Commander"
	ColPageURL   = "url"

	ColDate      = "Date"
	ColName      = "Name"
	ColInclusion = "Inclusion"
	ColLabel     = "Label"
	ColURL       = "URL"
	ColHeader    = "Header"

	ColImage = "Image"
)

// CardDataHeader is the header of card_data.csv, in column order.
var CardDataHeader = []string{ColCommander, ColDate, ColName, ColInclusion, ColLabel, ColURL, ColHeader}

// CardImagesHeader is the header of a new card_images.csv.
var CardImagesHeader = []string{ColName, ColImage}

// CommanderSource is one commander page to harvest.
type CommanderSource struct {
	CommanderName string
	PageURL       string
}

// CardInclusionRecord is one card of one commander page on one run date.
type CardInclusionRecord struct {
	Commander string
	Date      string
	Name      string
	Inclusion string
	Label     string
	URL       string
	Header    string
}

func (r CardInclusionRecord) Row() []string {
	return []string{r.Commander, r.Date, r.Name, r.Inclusion, r.Label, r.URL, r.Header}
}

type recordKey struct {
	commander string
	date      string
	name      string
}

func (r CardInclusionRecord) key() recordKey {
	return recordKey{commander: r.Commander, date: r.Date, name: r.Name}
}

// CardRef is the part of a CardInclusionRecord the image resolver needs.
type CardRef struct {
	Name string
	URL  string
}

type CardImageRecord struct {
	Name  string
	Image string
}

// LoadCommanders reads the commander source table, it must have
// "Commander" and "url" columns.
func LoadCommanders(path string) ([]CommanderSource, error) {
	table, err := ReadTable(path, ColCommander, ColPageURL)
	if err != nil {
		return nil, err
	}
	nameCol := table.Index(ColCommander)
	urlCol := table.Index(ColPageURL)

	sources := make([]CommanderSource, 0, len(table.Rows))
	for _, row := range table.Rows {
		sources = append(sources, CommanderSource{
			CommanderName: table.Cell(row, nameCol),
			PageURL:       table.Cell(row, urlCol),
		})
	}
	return sources, nil
}

// SaveCommanders replaces the commander source table at `path`.
func SaveCommanders(path string, sources []CommanderSource) error {
	table := Table{Header: []string{ColCommander, ColPageURL}}
	for _, s := range sources {
		table.Rows = append(table.Rows, []string{s.CommanderName, s.PageURL})
	}
	return WriteTable(path, table)
}

// LoadCardRefs reads the name and url of every row of card_data.csv, other
// columns are ignored.
func LoadCardRefs(path string) ([]CardRef, error) {
	table, err := ReadTable(path, ColName, ColURL)
	if err != nil {
		return nil, err
	}
	nameCol := table.Index(ColName)
	urlCol := table.Index(ColURL)

	refs := make([]CardRef, 0, len(table.Rows))
	for _, row := range table.Rows {
		refs = append(refs, CardRef{
			Name: table.Cell(row, nameCol),
			URL:  table.Cell(row, urlCol),
		})
	}
	return refs, nil
}

// LoadCardData reads every row of card_data.csv.
func LoadCardData(path string) ([]CardInclusionRecord, error) {
	table, err := ReadTable(path, CardDataHeader...)
	if err != nil {
		return nil, err
	}
	cols := make([]int, len(CardDataHeader))
	for i, name := range CardDataHeader {
		cols[i] = table.Index(name)
	}

	records := make([]CardInclusionRecord, 0, len(table.Rows))
	for _, row := range table.Rows {
		records = append(records, CardInclusionRecord{
			Commander: table.Cell(row, cols[0]),
			Date:      table.Cell(row, cols[1]),
			Name:      table.Cell(row, cols[2]),
			Inclusion: table.Cell(row, cols[3]),
			Label:     table.Cell(row, cols[4]),
			URL:       table.Cell(row, cols[5]),
			Header:    table.Cell(row, cols[6]),
		})
	}
	return records, nil
}
