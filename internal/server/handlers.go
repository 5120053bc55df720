package server

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/jonathan/resume-parser/internal/pipeline"
	"github.com/jonathan/resume-parser/internal/server/middleware"
)

// parseTextRequest is the JSON body accepted by POST /v1/parse. Callers
// send either raw text or base64-encoded document bytes.
type parseTextRequest struct {
	Text          string `json:"text" validate:"required_without=ContentBase64"`
	ContentBase64 string `json:"contentBase64" validate:"omitempty,base64"`
	FileType      string `json:"fileType" validate:"omitempty,max=255"`
	Mode          string `json:"mode" validate:"omitempty,oneof=auto heuristic llm"`
}

// handleParse accepts either a multipart upload (field "file", optional
// "mode") or a JSON body with raw text, and returns the structured parse
// result.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	contentType := r.Header.Get("Content-Type")
	switch {
	case strings.HasPrefix(contentType, "multipart/form-data"):
		s.handleParseUpload(w, r)
	case strings.HasPrefix(contentType, "application/json"), contentType == "":
		s.handleParseJSON(w, r)
	default:
		s.errorResponse(w, http.StatusUnsupportedMediaType, "expected multipart/form-data or application/json")
	}
}

func (s *Server) handleParseUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		s.parseError(w, r, &ErrValidation{Field: "file", Message: "invalid or oversized multipart body"})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.parseError(w, r, &ErrValidation{Field: "file", Message: "file field is required"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.parseError(w, r, err)
		return
	}

	mode, err := pipeline.ParseMode(r.FormValue("mode"))
	if err != nil {
		s.parseError(w, r, &ErrValidation{Field: "mode", Message: err.Error()})
		return
	}

	fileType := r.FormValue("fileType")
	if fileType == "" {
		fileType = header.Filename
	}

	result, err := s.parser.ParseBytes(r.Context(), data, fileType, mode)
	if err != nil {
		s.parseError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

func (s *Server) handleParseJSON(w http.ResponseWriter, r *http.Request) {
	var req parseTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			s.parseError(w, r, err)
			return
		}
		s.parseError(w, r, &ErrValidation{Field: "body", Message: "invalid JSON body"})
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		s.parseError(w, r, &ErrValidation{Field: "body", Message: err.Error()})
		return
	}

	mode, err := pipeline.ParseMode(req.Mode)
	if err != nil {
		s.parseError(w, r, &ErrValidation{Field: "mode", Message: err.Error()})
		return
	}

	var result any
	switch {
	case req.ContentBase64 != "":
		var data []byte
		data, err = base64.StdEncoding.DecodeString(req.ContentBase64)
		if err != nil {
			s.parseError(w, r, &ErrValidation{Field: "contentBase64", Message: "invalid base64 content"})
			return
		}
		result, err = s.parser.ParseBytes(r.Context(), data, req.FileType, mode)
	case req.FileType != "":
		result, err = s.parser.ParseBytes(r.Context(), []byte(req.Text), req.FileType, mode)
	default:
		result, err = s.parser.ParseText(r.Context(), req.Text, mode)
	}
	if err != nil {
		s.parseError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// parseError maps pipeline errors onto status codes and logs server-side
// failures with the request ID.
func (s *Server) parseError(w http.ResponseWriter, r *http.Request, err error) {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		s.errorResponse(w, http.StatusRequestEntityTooLarge, "upload exceeds size limit")
		return
	}

	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		s.log.Error("parse failed",
			"requestId", middleware.GetRequestID(r),
			"error", err,
		)
		s.errorResponse(w, status, "internal error")
		return
	}
	s.errorResponse(w, status, err.Error())
}
