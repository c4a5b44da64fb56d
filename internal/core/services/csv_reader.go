package services

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/SscSPs/collections_app/internal/apperrors"
	"github.com/SscSPs/collections_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Column names of an account import file.
const (
	colClientReferenceNo = "client reference no"
	colBalance           = "balance"
	colStatus            = "status"
	colConsumerName      = "consumer name"
	colConsumerAddress   = "consumer address"
	colSSN               = "ssn"
)

// requiredCSVColumns is the canonical order used for header and field checks.
var requiredCSVColumns = []string{
	colClientReferenceNo,
	colBalance,
	colStatus,
	colConsumerName,
	colConsumerAddress,
	colSSN,
}

var utf8BOM = []byte("\xef\xbb\xbf")

// csvRow is one validated data row of an import file.
type csvRow struct {
	Line              int
	ClientReferenceNo string
	Balance           decimal.Decimal
	Status            domain.AccountStatus
	ConsumerName      string
	ConsumerAddress   string
	SSN               string
}

// readAccountsCSV reads the whole file, checks headers and validates every row.
// It stops at the first invalid header set or row.
func readAccountsCSV(r io.Reader) ([]csvRow, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, importFailure(fmt.Errorf("read file: %w", err))
	}
	if !utf8.Valid(data) {
		return nil, importFailure(errors.New("file is not valid UTF-8 text"))
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, importFailure(err)
	}

	index, err := indexCSVHeader(header)
	if err != nil {
		return nil, err
	}

	var rows []csvRow
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, importFailure(err)
		}

		row, err := validateCSVRecord(record, index, line)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// indexCSVHeader maps each column name to its position. When a name repeats,
// the right-most column wins.
func indexCSVHeader(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}

	var missing []string
	for _, col := range requiredCSVColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, apperrors.Newf(apperrors.ErrValidation,
			"Missing required CSV headers: %s", strings.Join(missing, ", "))
	}
	return index, nil
}

func validateCSVRecord(record []string, index map[string]int, line int) (csvRow, error) {
	field := func(col string) string {
		i := index[col]
		if i >= len(record) {
			return ""
		}
		return record[i]
	}

	for _, col := range requiredCSVColumns {
		if field(col) == "" {
			return csvRow{}, apperrors.Newf(apperrors.ErrValidation,
				"Row %d: Missing required field '%s'", line, col)
		}
	}

	status := domain.AccountStatus(field(colStatus))
	if !status.IsValid() {
		return csvRow{}, apperrors.Newf(apperrors.ErrValidation,
			"Row %d: Invalid status '%s'. Must be one of: %s", line, status, statusList())
	}

	balance, err := parseBalance(field(colBalance), line)
	if err != nil {
		return csvRow{}, err
	}

	return csvRow{
		Line:              line,
		ClientReferenceNo: field(colClientReferenceNo),
		Balance:           balance,
		Status:            status,
		ConsumerName:      field(colConsumerName),
		ConsumerAddress:   field(colConsumerAddress),
		SSN:               field(colSSN),
	}, nil
}

// parseBalance parses a non-negative amount and rounds it (half to even) to cents.
func parseBalance(raw string, line int) (decimal.Decimal, error) {
	balance, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, apperrors.Newf(apperrors.ErrValidation,
			"Row %d: Invalid balance '%s'. Must be a number.", line, raw)
	}
	if balance.IsNegative() {
		return decimal.Zero, apperrors.Newf(apperrors.ErrValidation,
			"Row %d: Balance must be non-negative", line)
	}
	if !domain.BalanceFits(balance) {
		return decimal.Zero, apperrors.Newf(apperrors.ErrValidation,
			"Row %d: Balance '%s' exceeds %d digits with %d decimal places",
			line, raw, domain.BalanceMaxDigits, domain.BalanceDecimalPlaces)
	}
	return balance.RoundBank(domain.BalanceDecimalPlaces), nil
}

func statusList() string {
	names := make([]string, len(domain.AccountStatuses))
	for i, s := range domain.AccountStatuses {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// importFailure classifies a non-validation failure of an import.
func importFailure(err error) error {
	return apperrors.Newf(apperrors.ErrImport, "Error importing CSV: %s", err.Error())
}
