package logger

// Standard field key constants for structured logging.
const (
	FieldComponent = "component"
	FieldSystem    = "system"
	FieldElement   = "element"
	FieldStatus    = "status"
	FieldError     = "error"
	FieldDuration  = "duration_ms"
	FieldPass      = "pass"
)

// Fields builds a map[string]interface{} from alternating key-value pairs.
//
//	logger.Info("done", logger.Fields("element", "scaler", "status", "done"))
func Fields(kvs ...interface{}) map[string]interface{} {
	m := make(map[string]interface{}, len(kvs)/2)
	for i := 0; i < len(kvs)-1; i += 2 {
		if key, ok := kvs[i].(string); ok {
			m[key] = kvs[i+1]
		}
	}
	return m
}

// ErrorFields creates fields for an element that failed.
func ErrorFields(element string, err error) map[string]interface{} {
	return map[string]interface{}{
		FieldElement: element,
		FieldStatus:  "failed",
		FieldError:   err.Error(),
	}
}
