package handlers

import (
	"net/http"
)

func HandleHealthReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
