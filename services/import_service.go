package services

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"restobackoffice/models"
	"restobackoffice/utils"
)

const (
	// MaxUploadSize caps the accepted CSV file at 2 MB.
	MaxUploadSize = 2 << 20

	// maxPreviewRows caps how many data rows are validated and staged.
	maxPreviewRows = 200

	// maxRowErrors caps how many per-row messages go into the summary.
	maxRowErrors = 50
)

var ErrNothingToImport = errors.New("aucune ligne valide à importer")

// ParseDishCSV reads a semicolon-delimited CSV with a header row and
// builds the staged preview. Columns are matched by header name, so a
// re-imported export (which carries extra id/position columns up front)
// works unchanged. A parse error aborts without producing a preview.
func ParseDishCSV(r io.Reader) (models.ImportPreview, error) {
	reader := csv.NewReader(skipBOM(r))
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return models.ImportPreview{}, err
	}

	records = dropBlankLines(records)
	if len(records) == 0 {
		return models.ImportPreview{}, nil
	}

	columns := make(map[string]int, len(records[0]))
	for i, h := range records[0] {
		columns[strings.ToLower(strings.TrimSpace(h))] = i
	}
	rows := records[1:]

	limit := len(rows)
	if limit > maxPreviewRows {
		limit = maxPreviewRows
	}

	preview := models.ImportPreview{Rows: make([]models.ImportRow, 0, limit)}

	var rowErrors []string
	for i, record := range rows[:limit] {
		field := func(name string) string {
			idx, ok := columns[name]
			if !ok || idx >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[idx])
		}

		row := buildImportRow(field)
		preview.Rows = append(preview.Rows, row)
		preview.Total++
		if row.Valid() {
			preview.Valid++
			continue
		}

		if len(rowErrors) < maxRowErrors {
			name := row.Dish.Name
			if name == "" {
				name = "(sans nom)"
			}
			// header is file line 1, first data row is line 2
			rowErrors = append(rowErrors, fmt.Sprintf("Ligne %d : %s — %s", i+2, name, row.Error))
		}
	}

	if len(rows) > maxPreviewRows {
		preview.Errors = append(preview.Errors,
			fmt.Sprintf("Aperçu limité à %d lignes (le fichier en contient %d).", maxPreviewRows, len(rows)))
	}
	preview.Errors = append(preview.Errors, rowErrors...)

	return preview, nil
}

// buildImportRow derives a candidate dish from one raw row. Every rule
// is applied independently; a failing rule appends its reason and the
// row is kept either way.
func buildImportRow(field func(string) string) models.ImportRow {
	dish := models.Dish{
		Name:         field("name"),
		Description:  field("description"),
		Category:     strings.ToUpper(field("category")),
		IsAvailable:  field("is_available") == "1",
		IsVegetarian: field("is_vegetarian") == "1",
		IsHalal:      field("is_halal") == "1",
		IsSpicy:      field("is_spicy") == "1",
	}

	var reasons []string
	if dish.Name == "" {
		reasons = append(reasons, "Nom manquant")
	}
	if dish.Description == "" {
		reasons = append(reasons, "Description manquante")
	}
	if !models.IsAllowedCategory(dish.Category) {
		label := dish.Category
		if label == "" {
			label = "vide"
		}
		reasons = append(reasons, fmt.Sprintf("Catégorie invalide (%s)", label))
	}

	cents, err := utils.ParsePriceEUR(field("price_eur"))
	if err != nil || cents <= 0 {
		reasons = append(reasons, "Prix invalide")
	} else {
		dish.PriceCents = cents
	}

	if raw := field("position"); raw != "" {
		pos, err := strconv.Atoi(raw)
		if err != nil || pos < 0 {
			reasons = append(reasons, "Position invalide")
		} else {
			dish.Position = pos
		}
	}

	return models.ImportRow{Dish: dish, Error: strings.Join(reasons, " • ")}
}

// skipBOM drops a UTF-8 byte-order mark so that files saved by
// spreadsheet tools (and our own exports) parse cleanly.
func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if head, err := br.Peek(3); err == nil && bytes.Equal(head, []byte{0xEF, 0xBB, 0xBF}) {
		br.Discard(3)
	}
	return br
}

func dropBlankLines(records [][]string) [][]string {
	kept := records[:0]
	for _, record := range records {
		blank := true
		for _, f := range record {
			if strings.TrimSpace(f) != "" {
				blank = false
				break
			}
		}
		if !blank {
			kept = append(kept, record)
		}
	}
	return kept
}

// ConfirmImport inserts every valid staged row, in file order, inside a
// single transaction: a failure part-way rolls the whole batch back and
// leaves the staged preview usable. Returns how many rows were inserted.
func ConfirmImport(db *gorm.DB, preview models.ImportPreview) (int, error) {
	valid := preview.ValidRows()
	if len(valid) == 0 {
		return 0, ErrNothingToImport
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		for i := range valid {
			dish := valid[i]
			dish.ID = 0
			if err := tx.Create(&dish).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(valid), nil
}
