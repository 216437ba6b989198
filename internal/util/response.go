package util

// Envelope is the JSON body shape of every API response.
type Envelope map[string]any

// Error wraps a message in the error envelope the storefront client reads.
func Error(message string) Envelope {
	return Envelope{"error": message}
}
