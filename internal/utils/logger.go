package utils

import (
	"log"
	"strings"
)

// LogEvent prints one standardized line per domain action (booking writes,
// exports, voucher renders). Message should be a short summary, never the
// full record payload.
func LogEvent(requestID, module, action, message string) {
	req := strings.TrimSpace(requestID)
	if req == "" {
		req = "-"
	}
	log.Printf("[%s] action=%s request_id=%s msg=%s", strings.ToUpper(module), action, req, message)
}
