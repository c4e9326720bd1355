package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Format
		wantErr bool
	}{
		{name: "table", input: "table", want: FormatTable},
		{name: "empty defaults to table", input: "", want: FormatTable},
		{name: "json", input: "json", want: FormatJSON},
		{name: "JSON uppercase", input: "JSON", want: FormatJSON},
		{name: "yaml", input: "yaml", want: FormatYAML},
		{name: "yml alias", input: "yml", want: FormatYAML},
		{name: "whitespace trimmed", input: "  table  ", want: FormatTable},
		{name: "invalid format", input: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTableData(t *testing.T) {
	table := NewTableData("Name", "Starred", "Created")

	assert.Equal(t, []string{"Name", "Starred", "Created"}, table.Headers())
	assert.Empty(t, table.Rows())

	table.AddRow("notes.txt", "yes", "2026-01-02")
	table.AddRow("Docs", "no", "2026-01-03")

	rows := table.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"notes.txt", "yes", "2026-01-02"}, rows[0])
	assert.Equal(t, []string{"Docs", "no", "2026-01-03"}, rows[1])
}

func TestPrintTable(t *testing.T) {
	table := NewTableData("Email", "Name")
	table.AddRow("demo@example.com", "Demo User")
	table.AddRow("test@example.com", "Test User")

	var buf bytes.Buffer
	err := PrintTable(&buf, table)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "EMAIL")
	assert.Contains(t, output, "NAME")
	assert.Contains(t, output, "demo@example.com")
	assert.Contains(t, output, "Demo User")
}

func TestPrinter(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, FormatTable, true)

	printer.Println("test message")
	assert.Contains(t, buf.String(), "test message")
}

func TestPrinterJSON(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, FormatJSON, false)

	err := printer.Print(map[string]string{"email": "demo@example.com"})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"email": "demo@example.com"`)
}

func TestPrinterSuccess(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, FormatTable, false)

	printer.Success("success message")
	assert.Contains(t, buf.String(), "success message")
}

func TestPrinterError(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, FormatTable, false)

	printer.Error("error message")
	assert.Contains(t, buf.String(), "error message")
}
