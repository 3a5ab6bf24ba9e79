package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/MeKo-Tech/receiptly/internal/expense"
	"github.com/MeKo-Tech/receiptly/internal/imgutil"
	"github.com/MeKo-Tech/receiptly/internal/pipeline"
	"github.com/MeKo-Tech/receiptly/internal/recognizer"
)

// parseReceiptHandler parses an uploaded receipt image and returns the
// extracted fields without persisting anything.
func (s *Server) parseReceiptHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	data, contentType, ok := s.readImageUpload(w, r)
	if !ok {
		parseRequestsTotal.WithLabelValues("failure").Inc()
		return // error already written
	}

	res := s.runParse(r, data, contentType)
	if !res.Success {
		writeErrorResponse(w, res.Error, failureStatus(res.Err))
		return
	}

	writeJSON(w, http.StatusOK, ParseResponse{
		Success: true,
		Receipt: res.Receipt,
		RawText: res.RawText,
	})
}

// saveReceiptHandler parses an uploaded receipt and persists it as an
// expense when an amount was extracted. A receipt without an extractable
// amount is a soft outcome reported in a 200 body, not an error.
func (s *Server) saveReceiptHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	data, contentType, ok := s.readImageUpload(w, r)
	if !ok {
		parseRequestsTotal.WithLabelValues("failure").Inc()
		return
	}

	res := s.runParse(r, data, contentType)
	if !res.Success {
		writeErrorResponse(w, res.Error, failureStatus(res.Err))
		return
	}

	exp, err := expense.FromReceipt(res.Receipt)
	if err != nil {
		writeJSON(w, http.StatusOK, SaveResponse{
			Success: false,
			Receipt: res.Receipt,
			RawText: res.RawText,
			Message: err.Error(),
		})
		return
	}

	if err := s.store.Save(exp); err != nil {
		slog.Error("Failed to persist expense", "error", err)
		writeErrorResponse(w, "failed to save expense", http.StatusInternalServerError)
		return
	}
	expensesCreatedTotal.Inc()

	writeJSON(w, http.StatusOK, SaveResponse{
		Success: true,
		Expense: exp,
		Receipt: res.Receipt,
		RawText: res.RawText,
		Message: "receipt parsed and expense created",
	})
}

// readImageUpload extracts the multipart "image" part and its declared
// content type. On failure the HTTP error is already written and ok=false.
func (s *Server) readImageUpload(w http.ResponseWriter, r *http.Request) (data []byte, contentType string, ok bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadMB*1024*1024)

	if err := r.ParseMultipartForm(s.maxUploadMB * 1024 * 1024); err != nil {
		writeErrorResponse(w, "failed to parse form data", http.StatusBadRequest)
		return nil, "", false
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeErrorResponse(w, "no image file provided", http.StatusBadRequest)
		return nil, "", false
	}
	defer func() { _ = file.Close() }()

	uploadSizeBytes.Observe(float64(header.Size))

	data, err = io.ReadAll(file)
	if err != nil {
		writeErrorResponse(w, "failed to read image data", http.StatusInternalServerError)
		return nil, "", false
	}

	return data, header.Header.Get("Content-Type"), true
}

// runParse executes the pipeline under the configured timeout and records
// parsing metrics.
func (s *Server) runParse(r *http.Request, data []byte, contentType string) pipeline.Result {
	ctx := r.Context()
	if s.timeoutSec > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(s.timeoutSec)*time.Second)
		defer cancel()
	}

	start := time.Now()
	res := s.parser.Parse(ctx, data, contentType)
	parseDuration.Observe(time.Since(start).Seconds())

	if res.Success {
		parseRequestsTotal.WithLabelValues("success").Inc()
		recognizedTextLength.Observe(float64(len(res.RawText)))
		itemsExtracted.Observe(float64(len(res.Receipt.Items)))
	} else {
		parseRequestsTotal.WithLabelValues("failure").Inc()
	}
	return res
}

// failureStatus maps pipeline failure causes to HTTP status codes.
func failureStatus(err error) int {
	var vErr *imgutil.ValidationError
	var dErr *imgutil.DecodeError
	var rErr *recognizer.RecognitionError
	switch {
	case errors.As(err, &vErr), errors.As(err, &dErr):
		return http.StatusBadRequest
	case errors.As(err, &rErr):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
