// Package csvimport converts raw delimited text into validated transaction
// records. Parsing is lenient per row and strict only on the minimum shape:
// malformed rows are rejected individually with a reason and never abort the
// batch.
package csvimport

import (
	"strings"
	"time"

	"github.com/monkroe/crypto-tracker-sub000/internal/model"
	"github.com/monkroe/crypto-tracker-sub000/internal/money"
)

// Rejection reasons form a closed set so batch summaries stay comparable.
const (
	ReasonTooFewColumns = "row has fewer than 3 columns"
	ReasonMissingSymbol = "coin symbol is empty"
	ReasonBadAmount     = "amount is not numeric"
)

// Fixed positional columns of an import file, after the header line:
// date, type, coin, amount, price, total, fee, exchange, method, notes.
const (
	colDate = iota
	colType
	colSymbol
	colAmount
	colPrice
	colTotal
	colFee
	colExchange
	colMethod
	colNotes
)

// RejectedRow records one dropped input row together with the reason,
// keyed by its 1-based line number in the original text.
type RejectedRow struct {
	Line   int    `json:"line"`
	Raw    string `json:"raw"`
	Reason string `json:"reason"`
}

// Result is the discriminated outcome of parsing one file: the ordered
// accepted transactions plus every rejected row.
type Result struct {
	Accepted []model.Transaction `json:"accepted"`
	Rejected []RejectedRow       `json:"rejected"`
}

// dateLayouts are tried in order when parsing the date column. A date that
// matches none of them leaves the transaction with a zero Date; the row is
// still accepted, it is merely excluded from chronological aggregations.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

// Parse converts raw CSV text into transaction candidates.
//
// The field separator is auto-detected once per file from the header line
// (";" vs ",", tie favors comma). The header line itself is discarded. Rows
// with fewer than 3 columns, an empty coin symbol, or a non-numeric amount
// are rejected; all other numeric fields default to zero when missing or
// unparsable.
func Parse(raw string) Result {
	result := Result{
		Accepted: []model.Transaction{},
		Rejected: []RejectedRow{},
	}

	type numberedLine struct {
		number int
		text   string
	}

	var lines []numberedLine
	for i, line := range strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, numberedLine{number: i + 1, text: line})
	}

	// Need at least a header and one data line.
	if len(lines) < 2 {
		return result
	}

	sep := detectSeparator(lines[0].text)

	for _, line := range lines[1:] {
		fields := splitFields(line.text, sep)

		if len(fields) < 3 {
			result.Rejected = append(result.Rejected, RejectedRow{
				Line: line.number, Raw: line.text, Reason: ReasonTooFewColumns,
			})
			continue
		}

		symbol := strings.ToUpper(field(fields, colSymbol))
		if symbol == "" {
			result.Rejected = append(result.Rejected, RejectedRow{
				Line: line.number, Raw: line.text, Reason: ReasonMissingSymbol,
			})
			continue
		}

		amount, err := money.Parse(field(fields, colAmount))
		if err != nil {
			result.Rejected = append(result.Rejected, RejectedRow{
				Line: line.number, Raw: line.text, Reason: ReasonBadAmount,
			})
			continue
		}

		result.Accepted = append(result.Accepted, model.Transaction{
			Date:         parseDate(field(fields, colDate)),
			Type:         model.TransactionType(field(fields, colType)),
			CoinSymbol:   symbol,
			Amount:       amount,
			PricePerCoin: money.SafeNumber(field(fields, colPrice)),
			TotalCostUSD: money.SafeNumber(field(fields, colTotal)),
			FeeUSD:       money.SafeNumber(field(fields, colFee)),
			Exchange:     field(fields, colExchange),
			Method:       field(fields, colMethod),
			Notes:        field(fields, colNotes),
		})
	}

	return result
}

// detectSeparator picks the field separator by comparing counts of ";" and
// "," in the header line. A tie favors comma.
func detectSeparator(header string) string {
	if strings.Count(header, ";") > strings.Count(header, ",") {
		return ";"
	}
	return ","
}

// splitFields splits a data line on the detected separator, trims each field
// and strips a single pair of wrapping double quotes, un-escaping doubled
// internal quotes ("" -> ").
func splitFields(line, sep string) []string {
	fields := strings.Split(line, sep)
	for i, f := range fields {
		f = strings.TrimSpace(f)
		if len(f) >= 2 && strings.HasPrefix(f, `"`) && strings.HasSuffix(f, `"`) {
			f = strings.ReplaceAll(f[1:len(f)-1], `""`, `"`)
		}
		fields[i] = f
	}
	return fields
}

// field returns the i-th column or "" when the row is too short.
func field(fields []string, i int) string {
	if i >= len(fields) {
		return ""
	}
	return fields[i]
}

func parseDate(s string) time.Time {
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d.UTC()
		}
	}
	return time.Time{}
}
