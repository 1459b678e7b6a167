// Package workbook lee y escribe las hojas del classeur Excel del cliente
// como tablas genéricas de filas.
package workbook

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/vintage-erp/internal/domain/table"
)

// LoadTable abre el archivo .xlsx y devuelve la hoja indicada como tabla.
// La primera fila no vacía es la cabecera; las filas totalmente vacías se
// descartan.
func LoadTable(path, sheet string) (*table.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("ouverture du classeur %s: %w", path, err)
	}
	defer f.Close()
	return sheetTable(f, sheet)
}

// LoadTableFrom versión de LoadTable sobre un reader (upload HTTP).
func LoadTableFrom(r io.Reader, sheet string) (*table.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("lecture du classeur: %w", err)
	}
	defer f.Close()
	return sheetTable(f, sheet)
}

// LoadMany carga varias hojas del mismo archivo en una sola apertura. Las
// hojas ausentes producen tablas vacías, no un error: el classeur del
// cliente no siempre trae las cuatro.
func LoadMany(path string, sheets ...string) (map[string]*table.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("ouverture du classeur %s: %w", path, err)
	}
	defer f.Close()

	available := make(map[string]bool)
	for _, name := range f.GetSheetList() {
		available[strings.TrimSpace(name)] = true
	}

	out := make(map[string]*table.Table, len(sheets))
	for _, sheet := range sheets {
		if !available[sheet] {
			out[sheet] = table.New(nil)
			continue
		}
		t, err := sheetTable(f, sheet)
		if err != nil {
			return nil, err
		}
		out[sheet] = t
	}
	return out, nil
}

// AvailableSheets nombres de hoja del archivo, en orden.
func AvailableSheets(path string) ([]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("ouverture du classeur %s: %w", path, err)
	}
	defer f.Close()
	return f.GetSheetList(), nil
}

// SaveTables escribe cada tabla en su hoja dentro de un archivo nuevo
// (cabecera más filas, en el orden de la tabla). El orden del mapa de
// entrada no importa: las hojas se crean en el orden de names.
func SaveTables(path string, names []string, tables map[string]*table.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, name := range names {
		t, ok := tables[name]
		if !ok {
			continue
		}
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return fmt.Errorf("feuille %s: %w", name, err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("feuille %s: %w", name, err)
		}

		headers := t.Headers()
		if err := setRow(f, name, 1, headers); err != nil {
			return err
		}
		for rowIdx, row := range t.Rows() {
			cells := make([]string, len(headers))
			for col, header := range headers {
				cells[col] = row[header]
			}
			if err := setRow(f, name, rowIdx+2, cells); err != nil {
				return err
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("écriture du classeur %s: %w", path, err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, rowNo int, cells []string) error {
	if len(cells) == 0 {
		return nil
	}
	values := make([]interface{}, len(cells))
	for i, c := range cells {
		values[i] = c
	}
	cell, err := excelize.CoordinatesToCellName(1, rowNo)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("feuille %s ligne %d: %w", sheet, rowNo, err)
	}
	return nil
}

// sheetTable convierte la hoja en tabla. GetRows devuelve las celdas como
// texto, que es exactamente el modelo de fila que usamos.
func sheetTable(f *excelize.File, sheet string) (*table.Table, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("feuille %s: %w", sheet, err)
	}

	var headers []string
	start := 0
	for i, row := range rows {
		if !emptyRow(row) {
			headers = trimRight(row)
			start = i + 1
			break
		}
	}
	t := table.New(headers)
	for _, raw := range rows[start:] {
		if emptyRow(raw) {
			continue
		}
		row := table.Row{}
		for col, header := range headers {
			if col < len(raw) && strings.TrimSpace(raw[col]) != "" {
				row[header] = strings.TrimSpace(raw[col])
			}
		}
		t.Append(row)
	}
	return t, nil
}

func emptyRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func trimRight(cells []string) []string {
	end := len(cells)
	for end > 0 && strings.TrimSpace(cells[end-1]) == "" {
		end--
	}
	out := make([]string, end)
	for i := 0; i < end; i++ {
		out[i] = strings.TrimSpace(cells[i])
	}
	return out
}
