package common

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"strings"
)

// FilterFields converts result to a map keyed by its JSON field names and
// keeps only the comma-separated fields. An empty fields string keeps all.
func FilterFields(result any, fieldsStr string) map[string]any {
	fullMap := structToMap(result)
	if strings.TrimSpace(fieldsStr) == "" {
		return fullMap
	}

	includeFields := make(map[string]bool)
	for _, field := range strings.Split(fieldsStr, ",") {
		if f := strings.TrimSpace(field); f != "" {
			includeFields[f] = true
		}
	}

	filtered := make(map[string]any)
	for key, value := range fullMap {
		if includeFields[key] {
			filtered[key] = value
		}
	}

	return filtered
}

// structToMap converts a struct to map[string]any using JSON marshaling.
func structToMap(obj any) map[string]any {
	data, _ := json.Marshal(obj)
	var result map[string]any
	_ = json.Unmarshal(data, &result)
	return result
}

// ContentHash computes SHA256 hash of content and returns hex string.
func ContentHash(data []byte) string {
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%x", hash)
}
