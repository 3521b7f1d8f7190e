package cliutil

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/gospdx/gospdx"
)

func init() {
	color.NoColor = true
}

func TestPrintDiagnostic(t *testing.T) {
	tests := []struct {
		name string
		diag gospdx.Diagnostic
		want string
	}{
		{
			name: "full",
			diag: gospdx.Diagnostic{
				Severity: gospdx.SeverityWarning,
				Code:     "property-unknown",
				Element:  "SPDXRef-Package",
				Message:  "ignored property",
			},
			want: "  warning: [property-unknown] SPDXRef-Package: ignored property\n",
		},
		{
			name: "no element",
			diag: gospdx.Diagnostic{Severity: gospdx.SeverityError, Message: "bad"},
			want: "  error: bad\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			PrintDiagnostic(&buf, tt.diag)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestFprintError(t *testing.T) {
	var buf bytes.Buffer
	FprintError(&buf, "cannot read %s", "x.json")
	assert.Equal(t, "error: cannot read x.json\n", buf.String())
}

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	tbl := NewTable(&buf, "ID", "NAME")
	tbl.AddRow("MIT", "MIT License")
	tbl.AddRow("Apache-2.0")
	tbl.Render()

	want := "ID          NAME\n" +
		"MIT         MIT License\n" +
		"Apache-2.0  \n"
	assert.Equal(t, want, buf.String())
}

func TestGetOutputStdout(t *testing.T) {
	w, done, err := GetOutput("")
	assert.NoError(t, err)
	assert.NotNil(t, w)
	done()
}
