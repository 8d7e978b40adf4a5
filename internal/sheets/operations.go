package sheets

import (
	"fmt"
	"strings"

	"participant_board/internal/roster"

	"github.com/rs/zerolog/log"
)

// Column positions of the participant sheet
const (
	colDisplayName = iota
	colOptionA
	colOptionB
	colJerseyName
	colNickname
	colNo
	colSize
	colPayment
	colPartialAmount
)

// ParseRecords maps raw sheet rows to records, skipping the header row.
// Rows are mapped positionally and missing cells become empty strings.
// Invalid rows are kept; validity is decided downstream.
func ParseRecords(values [][]interface{}) []roster.Record {
	if len(values) < 2 {
		return nil
	}

	rows := values[1:]
	records := make([]roster.Record, 0, len(rows))
	for i, row := range rows {
		// sheet rows are 1-based and the header occupies row 1
		records = append(records, extractRecordFromRow(row, i+2))
	}

	log.Debug().
		Int("total_rows", len(rows)).
		Int("parsed_records", len(records)).
		Msg("Finished parsing sheet rows")

	return records
}

// extractRecordFromRow extracts all fields from a sheet row
func extractRecordFromRow(row []interface{}, rowNum int) roster.Record {
	partialText := extractStringField(row, colPartialAmount)
	partial, err := roster.ParseAmount(partialText)
	if err != nil {
		log.Debug().
			Int("row", rowNum).
			Str("partial_amount", partialText).
			Msg("Ignoring unparseable partial payment amount")
		partial = 0
	}

	return roster.Record{
		DisplayName: extractStringField(row, colDisplayName),
		JerseyName:  extractStringField(row, colJerseyName),
		Nickname:    extractStringField(row, colNickname),
		No:          extractStringField(row, colNo),
		Size:        extractStringField(row, colSize),
		Options: [roster.OptionCount]string{
			roster.NormalizeFlag(extractStringField(row, colOptionA)),
			roster.NormalizeFlag(extractStringField(row, colOptionB)),
		},
		Payment:       extractStringField(row, colPayment),
		PartialAmount: partial,
	}
}

// extractStringField safely extracts a trimmed string field from a row at the given index
func extractStringField(row []interface{}, index int) string {
	if len(row) > index && row[index] != nil {
		return strings.TrimSpace(fmt.Sprintf("%v", row[index]))
	}
	return ""
}
