package diag

// ToJSON converts the diagnostic to a JSON-compatible structure
func (d Diagnostic) ToJSON() map[string]interface{} {
	return map[string]interface{}{
		"file":    d.File,
		"line":    d.Line,
		"column":  d.Column,
		"message": d.Message,
	}
}

// ToJSON converts all diagnostics to a JSON-compatible structure
func (l List) ToJSON() map[string]interface{} {
	errors := make([]map[string]interface{}, len(l))
	for i, d := range l {
		errors[i] = d.ToJSON()
	}
	return map[string]interface{}{
		"status": "error",
		"errors": errors,
	}
}
