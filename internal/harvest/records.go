package harvest

import (
	"edhrec-tracker/internal/dataset"
	"edhrec-tracker/internal/edhrec"
)

const (
	fieldNotAvailable = "N/A"
	headerUnknown     = "Unknown"
)

// toRecords flattens the cardlists of one commander page into rows stamped
// with the commander and the run date.
func toRecords(commander, date, origin string, lists []edhrec.Cardlist) []dataset.CardInclusionRecord {
	var records []dataset.CardInclusionRecord
	for _, list := range lists {
		header := list.Header.Or(headerUnknown)
		for _, view := range list.Cardviews {
			label, ok := edhrec.ExtractPercentage(view.Label.Value)
			if !ok {
				label = edhrec.LabelNotAvailable
			}
			records = append(records, dataset.CardInclusionRecord{
				Commander: commander,
				Date:      date,
				Name:      view.Name.Or(fieldNotAvailable),
				Inclusion: view.Inclusion.Or(fieldNotAvailable),
				Label:     label,
				URL:       origin + view.URL.Value,
				Header:    header,
			})
		}
	}
	return records
}
