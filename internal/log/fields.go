package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldSlot       = "slot"
	FieldEntityID   = "id"
	FieldVersion    = "version"
	FieldCount      = "count"
	FieldAmount     = "amount"
	FieldCategoryID = "category_id"
	FieldBackend    = "backend"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentLedger  = "ledger"
	ComponentStorage = "storage"
	ComponentAMQP    = "amqp"
	ComponentCache   = "cache"
	ComponentBackend = "backend"
	ComponentWatch   = "watch"
)

// Operations defines standard operation names
const (
	OpCreate   = "create"
	OpUpdate   = "update"
	OpDelete   = "delete"
	OpHydrate  = "hydrate"
	OpPersist  = "persist"
	OpPublish  = "publish"
	OpShutdown = "shutdown"
	OpStartup  = "startup"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithMutation adds the fields every ledger mutation log carries
func (f LogFields) WithMutation(op, slot, id string, version uint64) LogFields {
	f[FieldOperation] = op
	f[FieldSlot] = slot
	f[FieldEntityID] = id
	f[FieldVersion] = version
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
