package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"restobackoffice/models"
	"restobackoffice/utils"
)

var exportHeader = []string{
	"id", "position", "name", "description", "category", "price_eur",
	"is_available", "is_vegetarian", "is_halal", "is_spicy",
}

// ExportFilename returns menu_export_YYYY-MM-DD with the given extension.
func ExportFilename(ext string) string {
	return fmt.Sprintf("menu_export_%s.%s", time.Now().Format("2006-01-02"), ext)
}

// DishesCSV renders the CSV export: semicolon-delimited, every field
// quoted with embedded quotes doubled, prices as decimal-comma euros,
// and a UTF-8 BOM prefix so spreadsheet tools pick the encoding up.
func DishesCSV(dishes []models.Dish) []byte {
	var b strings.Builder
	b.WriteString("\uFEFF")
	writeCSVLine(&b, exportHeader)

	for _, d := range dishes {
		b.WriteString("\n")
		writeCSVLine(&b, []string{
			strconv.FormatUint(uint64(d.ID), 10),
			strconv.Itoa(d.Position),
			d.Name,
			d.Description,
			d.Category,
			utils.FormatPriceEUR(d.PriceCents),
			boolField(d.IsAvailable),
			boolField(d.IsVegetarian),
			boolField(d.IsHalal),
			boolField(d.IsSpicy),
		})
	}

	return []byte(b.String())
}

func writeCSVLine(b *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteString(";")
		}
		b.WriteString(`"`)
		b.WriteString(strings.ReplaceAll(f, `"`, `""`))
		b.WriteString(`"`)
	}
}

func boolField(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

// DishesXLSX builds the spreadsheet export over the same row set: typed
// numeric price column, frozen header row and an auto-filter.
func DishesXLSX(dishes []models.Dish) (*excelize.File, error) {
	f := excelize.NewFile()
	const sheet = "Menu"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	header := []interface{}{
		"ID", "Position", "Nom", "Description", "Catégorie", "Prix (€)",
		"Disponible", "Végétarien", "Halal", "Épicé",
	}
	if err := setRow(f, sheet, 1, header); err != nil {
		return nil, err
	}

	for i, d := range dishes {
		values := []interface{}{
			int(d.ID),
			d.Position,
			d.Name,
			d.Description,
			d.Category,
			float64(d.PriceCents) / 100,
			boolField(d.IsAvailable),
			boolField(d.IsVegetarian),
			boolField(d.IsHalal),
			boolField(d.IsSpicy),
		}
		if err := setRow(f, sheet, i+2, values); err != nil {
			return nil, err
		}
	}

	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, err
	}

	lastCell, err := excelize.CoordinatesToCellName(len(header), len(dishes)+1)
	if err != nil {
		return nil, err
	}
	if err := f.AutoFilter(sheet, "A1:"+lastCell, nil); err != nil {
		return nil, err
	}

	return f, nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}
