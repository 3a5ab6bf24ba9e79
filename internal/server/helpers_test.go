package server

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MeKo-Tech/receiptly/internal/expense"
	"github.com/MeKo-Tech/receiptly/internal/extract"
	"github.com/MeKo-Tech/receiptly/internal/pipeline"
)

// stubParser returns a fixed result regardless of input.
type stubParser struct {
	result pipeline.Result
	calls  int
}

func (p *stubParser) Parse(ctx context.Context, data []byte, contentType string) pipeline.Result {
	p.calls++
	return p.result
}

// parsedReceiptFixture builds a plausible parse result for handler tests.
func parsedReceiptFixture() pipeline.Result {
	amount := 42.50
	return pipeline.Result{
		Success: true,
		Receipt: &pipeline.ParsedReceipt{
			Amount:      &amount,
			Date:        "2024-03-15",
			Merchant:    "Corner Grocery",
			Items:       []extract.LineItem{{Name: "Milk", Price: 3.50}},
			Category:    extract.CategoryFood,
			Description: "Receipt from Corner Grocery",
		},
		RawText: "CORNER GROCERY\nMilk 3.50\nTOTAL 42.50",
	}
}

// newTestServer builds a server around a stub parser and a store in a
// temporary directory.
func newTestServer(t *testing.T, parser parserInterface) *Server {
	t.Helper()

	store, err := expense.OpenStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return &Server{
		parser:      parser,
		store:       store,
		corsOrigin:  "*",
		maxUploadMB: 10,
	}
}

// multipartImageRequest builds a POST with imageData as the "image" form
// file addressed at target.
func multipartImageRequest(t *testing.T, target string, imageData []byte, contentType string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="image"; filename="receipt.png"`)
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(imageData)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}
