package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectPipeline(t *testing.T) {
	tests := []struct {
		name      string
		mediaType string
		filename  string
		want      string
	}{
		{"csv media type", "text/csv", "rents.txt", PipelineRentRollCSV},
		{"csv extension", "", "RENTS.CSV", PipelineRentRollCSV},
		{"csv media type outranks pdf extension", "text/csv", "rents.pdf", PipelineRentRollCSV},
		{"xlsx media type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "q3", PipelineFinancialsExcel},
		{"xlsx extension", "", "financials.xlsx", PipelineFinancialsExcel},
		{"pdf media type", "application/pdf", "memo", PipelineOfferingMemo},
		{"pdf extension", "", "memo.pdf", PipelineOfferingMemo},
		{"docx media type", "application/vnd.openxmlformats-officedocument.wordprocessingml.document", "memo", PipelineOfferingMemo},
		{"docx extension", "", "memo.docx", PipelineOfferingMemo},
		{"presentation media type", "application/vnd.ms-powerpoint.presentation", "deck", PipelineMarketingDeck},
		{"pptx extension", "", "deck.pptx", PipelineMarketingDeck},
		{"unknown falls back to generic", "application/zip", "archive.zip", PipelineGeneric},
		{"empty inputs fall back to generic", "", "", PipelineGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SelectPipeline(tt.mediaType, tt.filename))
		})
	}
}

func TestSelectPipelineIsTotal(t *testing.T) {
	known := map[string]bool{
		PipelineRentRollCSV:     true,
		PipelineFinancialsExcel: true,
		PipelineOfferingMemo:    true,
		PipelineMarketingDeck:   true,
		PipelineGeneric:         true,
	}

	inputs := []struct{ mediaType, filename string }{
		{"", ""},
		{"text/csv", "a.pdf"},
		{"application/pdf", "a.csv"},
		{"nonsense", "no-extension"},
		{"application/vnd.oasis.presentation", "x"},
	}
	for _, in := range inputs {
		got := SelectPipeline(in.mediaType, in.filename)
		assert.True(t, known[got], "SelectPipeline(%q, %q) = %q is not a known pipeline", in.mediaType, in.filename, got)
	}
}
