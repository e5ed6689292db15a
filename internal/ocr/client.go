// Package ocr is a thin client for the external OCR service. The service
// does all image analysis; this package only ships the image out and
// hands back the parsed fields.
package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

type Client struct {
	BaseURL string
	client  *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// PriceTagData is what the service parses off a shelf price tag.
type PriceTagData struct {
	Name          string           `json:"name,omitempty"`
	PurchasePrice *decimal.Decimal `json:"purchasePrice,omitempty"`
}

type PriceTagResult struct {
	ExtractedText string       `json:"extractedText"`
	ParsedData    PriceTagData `json:"parsedData"`
}

// ReceiptItem is one line the service recognized on a receipt.
type ReceiptItem struct {
	Name     string          `json:"name"`
	Quantity decimal.Decimal `json:"quantity"`
	Unit     string          `json:"unit"`
	Price    decimal.Decimal `json:"price"`
}

type ReceiptData struct {
	Supplier    string           `json:"supplier,omitempty"`
	Date        *time.Time       `json:"date,omitempty"`
	Items       []ReceiptItem    `json:"items"`
	TotalAmount *decimal.Decimal `json:"totalAmount,omitempty"`
}

type ReceiptResult struct {
	ExtractedText string      `json:"extractedText"`
	ParsedData    ReceiptData `json:"parsedData"`
}

// MenuItemData is one priced line recognized on a menu photo.
type MenuItemData struct {
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	IsAvailable bool            `json:"isAvailable"`
}

type MenuResult struct {
	ExtractedText string         `json:"extractedText"`
	ParsedItems   []MenuItemData `json:"parsedItems"`
}

func (c *Client) ExtractPriceTag(ctx context.Context, image io.Reader, filename string) (*PriceTagResult, error) {
	var result PriceTagResult
	if err := c.post(ctx, "/extract/price-tag", image, filename, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) ExtractReceipt(ctx context.Context, image io.Reader, filename string) (*ReceiptResult, error) {
	var result ReceiptResult
	if err := c.post(ctx, "/extract/receipt", image, filename, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) ExtractMenu(ctx context.Context, image io.Reader, filename string) (*MenuResult, error) {
	var result MenuResult
	if err := c.post(ctx, "/extract/menu", image, filename, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) post(ctx context.Context, path string, image io.Reader, filename string, out interface{}) error {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		return fmt.Errorf("failed to build request body: %w", err)
	}
	if _, err := io.Copy(part, image); err != nil {
		return fmt.Errorf("failed to read image: %w", err)
	}
	if err := writer.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, &body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("OCR service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("OCR service returned %d: %s", resp.StatusCode, string(raw))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
