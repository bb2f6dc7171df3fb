package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"github.com/sells-group/fakecheck/internal/model"
)

// multipartMemory is how much of an upload ParseMultipartForm keeps in
// memory before spilling to disk.
const multipartMemory = 8 << 20

type handlers struct {
	checker   Checker
	maxUpload int64
}

type errorResponse struct {
	Error string `json:"error"`
}

type healthResponse struct {
	Status    string            `json:"status"`
	Providers map[string]string `json:"providers"`
}

func (h *handlers) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "ok",
		Providers: h.checker.ProviderStates(),
	})
}

func (h *handlers) checkNews(w http.ResponseWriter, r *http.Request) {
	var req model.CheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	writeJSON(w, http.StatusOK, h.checker.CheckText(r.Context(), req))
}

func (h *handlers) checkMedia(w http.ResponseWriter, r *http.Request) {
	// Multipart framing adds a little on top of the file itself.
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload+1<<20)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusBadRequest, "file too large")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}
	defer r.MultipartForm.RemoveAll() //nolint:errcheck

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close() //nolint:errcheck

	if header.Size > h.maxUpload {
		writeError(w, http.StatusBadRequest, "file too large")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		zap.L().Warn("server: read upload", zap.Error(err))
		writeError(w, http.StatusBadRequest, "could not read file")
		return
	}

	writeJSON(w, http.StatusOK, h.checker.CheckMedia(r.Context(), model.MediaCheckRequest{
		Data:        data,
		ContentType: contentType(header.Header.Get("Content-Type"), data),
		Filename:    header.Filename,
	}))
}

// contentType trusts the declared part type unless it is missing or
// generic, in which case the bytes are sniffed.
func contentType(declared string, data []byte) string {
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}
	return mimetype.Detect(data).String()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("server: encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
