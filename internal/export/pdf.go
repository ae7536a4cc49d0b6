package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/cleared-dev/laporan/internal/report"
)

// ErrGotenbergStatus is wrapped by errors for non-2xx Gotenberg responses.
var ErrGotenbergStatus = errors.New("gotenberg request failed")

// GotenbergClient converts HTML to PDF through a Gotenberg service.
type GotenbergClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewGotenbergClient constructs a client for baseURL, e.g.
// "http://127.0.0.1:3000".
func NewGotenbergClient(baseURL string) *GotenbergClient {
	return &GotenbergClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Ping checks if the Gotenberg service is available.
func (c *GotenbergClient) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("contacting gotenberg: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("%w: health status %d", ErrGotenbergStatus, resp.StatusCode)
	}
	return nil
}

// RenderHTML converts an HTML document into PDF bytes.
func (c *GotenbergClient) RenderHTML(ctx context.Context, html string) ([]byte, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("files", "index.html")
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, strings.NewReader(html)); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/forms/chromium/convert/html", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("contacting gotenberg: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: convert status %d", ErrGotenbergStatus, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// PDFRenderer renders the HTML document and converts it with Gotenberg.
type PDFRenderer struct {
	Client *GotenbergClient
	HTML   *HTMLRenderer
}

// Render writes doc as PDF.
func (r *PDFRenderer) Render(w io.Writer, doc report.Document) error {
	return r.RenderContext(context.Background(), w, doc)
}

// RenderContext writes doc as PDF; ctx bounds the Gotenberg request.
func (r *PDFRenderer) RenderContext(ctx context.Context, w io.Writer, doc report.Document) error {
	hr := r.HTML
	if hr == nil {
		hr = &HTMLRenderer{}
	}
	html, err := hr.RenderHTML(doc)
	if err != nil {
		return err
	}
	pdf, err := r.Client.RenderHTML(ctx, html)
	if err != nil {
		return err
	}
	_, err = w.Write(pdf)
	return err
}
