package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldRequestID = "request_id"
	FieldClientIP  = "client_ip"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldStatus    = "status"
	FieldDuration  = "duration_ms"
	FieldError     = "error"

	FieldLedger    = "ledger"
	FieldSheet     = "sheet"
	FieldCustomer  = "customer"
	FieldRows      = "rows"
	FieldLines     = "lines"
	FieldGenerated = "generated"
	FieldSkipped   = "skipped"
)

// Components defines standard component names
const (
	ComponentApp    = "app"
	ComponentHTTP   = "http"
	ComponentLedger = "ledger"
	ComponentBatch  = "batch"
	ComponentMailer = "mailer"
	ComponentAuth   = "auth"
)
