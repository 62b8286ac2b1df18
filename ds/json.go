package ds

import (
	"encoding/json"
	"fmt"
)

// DumpJSON renders t for log lines; marshalling failures are rendered in place.
func DumpJSON[T any](t T) string {
	tBytes, err := json.Marshal(t)
	if err != nil {
		return fmt.Sprintf("<DumpJSON error: %v>", err)
	}
	return string(tBytes)
}
