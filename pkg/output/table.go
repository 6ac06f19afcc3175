/*
Copyright (c) 2021 Red Hat, Inc.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

  http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// This file contains the code that writes generates tabular output.

package output

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed tables
var tables embed.FS

// TableBuilder contains the data and logic needed to create a new output table.
type TableBuilder struct {
	printer *Printer
	name    string
	specs   []string
}

// Table contains the data and logic needed to write tabular output. Rows are kept in memory till
// the table is closed, so that the columns can be as wide as their widest value.
type Table struct {
	printer *Printer
	name    string
	columns []*Column
	rows    [][]string
}

// tableYAML is used to load a table description from a YAML document.
type tableYAML struct {
	Columns []*columnYAML `yaml:"columns"`
}

// Column contains the data and logic needed to write columns.
type Column struct {
	name   string
	header string

	// width is the maximum width of the column, zero means unlimited.
	width int
}

// columnYAML is used to load a column description from a YAML document.
type columnYAML struct {
	Name   *string `yaml:"name"`
	Header *string `yaml:"header"`
	Width  *int    `yaml:"width"`
}

// NewTable creates a new builder that can then be used to configure and create a table.
func (p *Printer) NewTable() *TableBuilder {
	return &TableBuilder{
		printer: p,
	}
}

// Name sets the name of the table. This is mandatory.
func (b *TableBuilder) Name(value string) *TableBuilder {
	b.name = value
	return b
}

// Columns adds a collection of columns to the table. Each spec can be a single column identifier or
// a set of comma separated column identifiers.
func (b *TableBuilder) Columns(specs ...string) *TableBuilder {
	b.specs = append(b.specs, specs...)
	return b
}

// Build uses the configuration stored in the builder to create a table.
func (b *TableBuilder) Build(ctx context.Context) (result *Table, err error) {
	if b.printer == nil {
		err = fmt.Errorf("printer is mandatory")
		return
	}
	if b.name == "" {
		err = fmt.Errorf("name is mandatory")
		return
	}

	var columnNames []string
	for _, spec := range b.specs {
		for _, chunk := range strings.Split(spec, ",") {
			if name := strings.TrimSpace(chunk); name != "" {
				columnNames = append(columnNames, name)
			}
		}
	}

	described, err := b.loadColumns()
	if err != nil {
		return
	}
	if len(columnNames) == 0 {
		for _, column := range described {
			columnNames = append(columnNames, column.name)
		}
	}
	if len(columnNames) == 0 {
		err = fmt.Errorf("at least one column is required")
		return
	}

	// Columns that the asset doesn't describe get a header derived from the name:
	columns := make([]*Column, len(columnNames))
	for i, name := range columnNames {
		columns[i] = defaultColumn(name)
		for _, column := range described {
			if column.name == name {
				columns[i] = column
				break
			}
		}
	}

	result = &Table{
		printer: b.printer,
		name:    b.name,
		columns: columns,
	}
	return
}

// loadColumns loads the descriptions of the columns from the YAML asset of the table. A table
// without an asset has no described columns.
func (b *TableBuilder) loadColumns() (result []*Column, err error) {
	assetData, err := fs.ReadFile(tables, fmt.Sprintf("tables/%s.yaml", b.name))
	if err != nil {
		err = nil
		return
	}
	var tableData tableYAML
	err = yaml.Unmarshal(assetData, &tableData)
	if err != nil {
		err = fmt.Errorf("can't parse description of table '%s': %v", b.name, err)
		return
	}
	result = make([]*Column, len(tableData.Columns))
	for i, columnData := range tableData.Columns {
		if columnData.Name == nil || *columnData.Name == "" {
			err = fmt.Errorf("column %d of table '%s' doesn't have a name", i, b.name)
			result = nil
			return
		}
		column := defaultColumn(*columnData.Name)
		if columnData.Header != nil {
			column.header = *columnData.Header
		}
		if columnData.Width != nil {
			column.width = *columnData.Width
		}
		result[i] = column
	}
	return
}

func defaultColumn(name string) *Column {
	header := strings.ReplaceAll(name, ".", " ")
	header = strings.ReplaceAll(header, "_", " ")
	return &Column{
		name:   name,
		header: strings.ToUpper(header),
	}
}

// WriteHeaders adds the headers of the columns as a row of the table.
func (t *Table) WriteHeaders() error {
	headers := make([]any, len(t.columns))
	for i, column := range t.columns {
		headers[i] = column.header
	}
	return t.WriteColumns(headers)
}

// WriteColumns adds a row to the table using the given values. Nil values are written as `NONE`.
func (t *Table) WriteColumns(columnValues []any) error {
	if len(columnValues) != len(t.columns) {
		return fmt.Errorf(
			"table '%s' has %d columns, but %d values have been given",
			t.name, len(t.columns), len(columnValues),
		)
	}
	row := make([]string, len(columnValues))
	for i, value := range columnValues {
		text := "NONE"
		if value != nil {
			text = fmt.Sprintf("%v", value)
		}
		if limit := t.columns[i].width; limit > 0 && len(text) > limit {
			text = text[:limit]
		}
		row[i] = text
	}
	t.rows = append(t.rows, row)
	return nil
}

// Close writes the rows of the table to the printer.
func (t *Table) Close() error {
	widths := make([]int, len(t.columns))
	for _, row := range t.rows {
		for i, text := range row {
			widths[i] = max(widths[i], len(text))
		}
	}
	var buffer bytes.Buffer
	for _, row := range t.rows {
		for i, text := range row {
			if i > 0 {
				buffer.WriteString("  ")
			}
			buffer.WriteString(text)
			if i < len(row)-1 {
				buffer.WriteString(strings.Repeat(" ", widths[i]-len(text)))
			}
		}
		buffer.WriteString("\n")
	}
	t.rows = nil
	_, err := buffer.WriteTo(t.printer)
	return err
}
