package rest

import (
	"encoding/json"
	"net/http"
)

type APIResponse struct {
	Message string            `json:"message,omitempty"`
	Data    any               `json:"data,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func JSONSuccess(w http.ResponseWriter, status int, res APIResponse) {
	JSON(w, status, res)
}

func JSONError(w http.ResponseWriter, status int, message string) {
	JSON(w, status, APIResponse{Message: message})
}

func JSONValidationError(w http.ResponseWriter, errors map[string]string) {
	JSON(w, http.StatusUnprocessableEntity, APIResponse{
		Message: "The given data was invalid.",
		Errors:  errors,
	})
}
