package logging

// Standardized field names for structured logging.
const (
	FieldUser       = "user_id"
	FieldKey        = "store_key"
	FieldCollection = "collection"
	FieldKind       = "kind"
	FieldRecordID   = "record_id"
	FieldIndex      = "index"
	FieldCategory   = "category"
	FieldDate       = "date"
	FieldBackend    = "backend"
	FieldCount      = "count"
	FieldDelimiter  = "delimiter"
	FieldOutputFile = "output_file"
	FieldSheet      = "sheet"
)
