package product

import (
	"io"

	"github.com/tealeg/xlsx"
)

var exportHeaders = []string{"ID", "Name", "Price", "Description"}

// WriteXLSX writes the catalog as a single-sheet workbook. Prices are
// written as fixed two-decimal text so no precision is lost.
func WriteXLSX(w io.Writer, products []*Product) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		return err
	}

	header := sheet.AddRow()
	for _, h := range exportHeaders {
		header.AddCell().SetString(h)
	}

	for _, p := range products {
		row := sheet.AddRow()
		row.AddCell().SetValue(p.ID)
		row.AddCell().SetString(p.Name)
		row.AddCell().SetString(p.Price.StringFixed(2))
		row.AddCell().SetString(p.Description)
	}

	return file.Write(w)
}
