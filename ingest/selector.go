package ingest

import "strings"

// Pipeline names are a stable contract with the parsing service; the
// selected name tells it which extraction schema to apply.
const (
	PipelineRentRollCSV     = "rent_roll_csv_v1"
	PipelineFinancialsExcel = "financials_excel_v1"
	PipelineOfferingMemo    = "offering_memo_om_pipeline"
	PipelineMarketingDeck   = "marketing_deck_v1"
	PipelineGeneric         = "generic_document_v1"
)

const (
	mediaTypeCSV          = "text/csv"
	mediaTypeXLSX         = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mediaTypePDF          = "application/pdf"
	mediaTypeDOCX         = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// SelectPipeline maps a file's media type and name to a parsing pipeline.
// First match wins, media-type equality before extension, checked in the
// order CSV, spreadsheet, PDF, word-processing, presentation. Always
// returns a pipeline name; unknown inputs get the generic pipeline.
func SelectPipeline(mediaType, filename string) string {
	lower := strings.ToLower(filename)

	switch {
	case mediaType == mediaTypeCSV || strings.HasSuffix(lower, ".csv"):
		return PipelineRentRollCSV
	case mediaType == mediaTypeXLSX || strings.HasSuffix(lower, ".xlsx"):
		return PipelineFinancialsExcel
	case mediaType == mediaTypePDF || strings.HasSuffix(lower, ".pdf"):
		return PipelineOfferingMemo
	case mediaType == mediaTypeDOCX || strings.HasSuffix(lower, ".docx"):
		return PipelineOfferingMemo
	case strings.Contains(mediaType, "presentation") || strings.HasSuffix(lower, ".pptx"):
		return PipelineMarketingDeck
	}
	return PipelineGeneric
}
