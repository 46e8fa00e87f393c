package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
)

var emptyObject = struct{}{}

type errorBody struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		slog.Error("failed to encode response", "error", err)
		status = http.StatusInternalServerError
		b = []byte(`{"detail":"internal server error"}`)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(b)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorBody{Detail: detail})
}

func pathCustomerID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("customer_id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
