// Package sheet exports product price tables as XLSX workbooks.
package sheet

import (
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"printshop/internal/catalog"
	"printshop/internal/pricing"
)

const sheetName = "Prices"

var ErrNoPricing = errors.New("product has no pricing tiers")

// WritePriceSheet writes one sheet for p: a row per tier quantity, a
// column per price type present and the online-vs-normal savings. Cells
// with no matching tier stay empty.
func WritePriceSheet(w io.Writer, p catalog.Product) error {
	if len(p.Pricing) == 0 {
		return ErrNoPricing
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	var types []pricing.PriceType
	for _, typ := range pricing.Types {
		if _, ok := pricing.Lowest(p.Pricing, typ); ok {
			types = append(types, typ)
		}
	}
	withSavings := contains(types, pricing.Online) && contains(types, pricing.Normal)

	header := []any{"Quantity"}
	for _, typ := range types {
		header = append(header, fmt.Sprintf("%s (%s)", typ.Label(), catalog.Currency))
	}
	if withSavings {
		header = append(header, "Savings %")
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, qty := range pricing.Quantities(p.Pricing) {
		row := []any{qty}
		prices := map[pricing.PriceType]float64{}
		for _, typ := range types {
			t, err := pricing.Resolve(p.Pricing, qty, typ)
			if err != nil {
				row = append(row, nil)
				continue
			}
			prices[typ] = t.Price
			row = append(row, t.Price)
		}
		if withSavings {
			online, okOnline := prices[pricing.Online]
			normal, okNormal := prices[pricing.Normal]
			if okOnline && okNormal {
				row = append(row, pricing.Savings(online, normal))
			} else {
				row = append(row, nil)
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", qty, err)
		}
	}

	if err := f.SetDocProps(&excelize.DocProperties{Title: p.Title, Subject: p.Handle}); err != nil {
		return fmt.Errorf("set doc props: %w", err)
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func contains(types []pricing.PriceType, typ pricing.PriceType) bool {
	for _, t := range types {
		if t == typ {
			return true
		}
	}
	return false
}
