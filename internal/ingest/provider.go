package ingest

// Result holds the outcome of an ingest operation.
type Result struct {
	BoxesReceived int   `json:"boxes_received"`
	RowsInserted  int64 `json:"rows_inserted"`
	RowsSkipped   int64 `json:"rows_skipped"`
	RowsErrored   int   `json:"rows_errored"`
	WarningCount  int   `json:"warning_count"`

	UnknownBodyParts []string `json:"unknown_body_parts,omitempty"`

	Message string `json:"message,omitempty"`
}
