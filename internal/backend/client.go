// Package backend is the HTTP client for the external storefront API. The
// API owns all persistent state; this side only fetches and submits. Every
// call returns a parsed payload or an error, and empty or malformed bodies
// decode to "no data" instead of failing hard.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/hariharanp05/eaclothingfrontend/internal/models"
)

var ErrNotFound = errors.New("backend: not found")

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) endpoint(name string) string {
	return c.baseURL + "/" + name
}

// statusResponse is the envelope the mutation endpoints answer with.
type statusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	OrderID int    `json:"order_id"`
}

func (c *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("backend request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("backend returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read backend response: %w", err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		// Empty body means no data; leave out at its zero value.
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		slog.Warn("Malformed backend response, treating as no data", "url", rawURL, "error", err)
		return nil
	}
	return nil
}

// Products lists the catalog, optionally filtered by a collection slug.
// "all" and "" mean no filter.
func (c *Client) Products(ctx context.Context, collection string) ([]models.Product, error) {
	endpoint := c.endpoint("get_products.php")
	if collection != "" && collection != "all" {
		endpoint += "?collection=" + url.QueryEscape(collection)
	}
	var products []models.Product
	if err := c.getJSON(ctx, endpoint, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Product fetches a single product. ErrNotFound when the backend has no
// such id or answers with an empty body.
func (c *Client) Product(ctx context.Context, id int) (*models.Product, error) {
	var product models.Product
	err := c.getJSON(ctx, c.endpoint("get_product.php")+"?id="+strconv.Itoa(id), &product)
	if err != nil {
		return nil, err
	}
	if product.ID == 0 {
		return nil, ErrNotFound
	}
	return &product, nil
}

func (c *Client) Collections(ctx context.Context) ([]models.Collection, error) {
	var collections []models.Collection
	if err := c.getJSON(ctx, c.endpoint("get_collections.php"), &collections); err != nil {
		return nil, err
	}
	return collections, nil
}

// PlaceOrder submits a draft order and returns the assigned order id.
func (c *Client) PlaceOrder(ctx context.Context, draft models.OrderDraft) (int, error) {
	payload, err := json.Marshal(draft)
	if err != nil {
		return 0, fmt.Errorf("encode order: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("place_order.php"), bytes.NewReader(payload))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("backend request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, fmt.Errorf("backend returned status %d", resp.StatusCode)
	}
	var status statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return 0, fmt.Errorf("decode order response: %w", err)
	}
	if !status.Success || status.OrderID == 0 {
		return 0, fmt.Errorf("order rejected: %s", status.Message)
	}
	return status.OrderID, nil
}

// Orders lists every order with nested items (admin view).
func (c *Client) Orders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := c.getJSON(ctx, c.endpoint("admin_get_orders.php"), &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateOrderStatus moves an order to one of the four statuses the backend
// accepts. Sent as a multipart form, matching the endpoint's contract.
func (c *Client) UpdateOrderStatus(ctx context.Context, id int, status string) error {
	if !models.ValidOrderStatus(status) {
		return fmt.Errorf("invalid order status %q", status)
	}
	return c.postMultipart(ctx, "admin_update_order_status.php", map[string]string{
		"id":           strconv.Itoa(id),
		"order_status": status,
	}, nil, nil)
}

// ProductForm carries the admin product fields as the backend's multipart
// endpoint expects them. Sizes and colors travel comma-separated.
type ProductForm struct {
	ID            int
	Name          string
	Price         string
	OriginalPrice string
	Category      string
	CollectionID  string
	Sizes         string
	Colors        string
	Description   string
	InStock       bool
}

func (f ProductForm) fields() map[string]string {
	inStock := "0"
	if f.InStock {
		inStock = "1"
	}
	fields := map[string]string{
		"name":           f.Name,
		"price":          f.Price,
		"original_price": f.OriginalPrice,
		"category":       f.Category,
		"collection_id":  f.CollectionID,
		"sizes":          f.Sizes,
		"colors":         f.Colors,
		"description":    f.Description,
		"inStock":        inStock,
	}
	if f.ID != 0 {
		fields["id"] = strconv.Itoa(f.ID)
	}
	return fields
}

// CreateProduct adds a product; mainImage and gallery may be nil/empty.
func (c *Client) CreateProduct(ctx context.Context, form ProductForm, mainImage *Upload, gallery []Upload) error {
	return c.postMultipart(ctx, "admin_add_product.php", form.fields(), mainImage, gallery)
}

// UpdateProduct edits an existing product. When no images are attached the
// file parts are simply omitted, so the backend keeps the stored image
// references untouched.
func (c *Client) UpdateProduct(ctx context.Context, form ProductForm, mainImage *Upload, gallery []Upload) error {
	if form.ID == 0 {
		return errors.New("update requires a product id")
	}
	return c.postMultipart(ctx, "admin_update_product.php", form.fields(), mainImage, gallery)
}

func (c *Client) DeleteProduct(ctx context.Context, id int) error {
	return c.postMultipart(ctx, "admin_delete_product.php", map[string]string{
		"id": strconv.Itoa(id),
	}, nil, nil)
}

func (c *Client) postMultipart(ctx context.Context, name string, fields map[string]string, mainImage *Upload, gallery []Upload) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return fmt.Errorf("write form field %s: %w", key, err)
		}
	}
	if mainImage != nil {
		part, err := writer.CreateFormFile("main_image", mainImage.Filename)
		if err != nil {
			return err
		}
		if _, err := part.Write(mainImage.Data); err != nil {
			return err
		}
	}
	for _, img := range gallery {
		part, err := writer.CreateFormFile("gallery_images[]", img.Filename)
		if err != nil {
			return err
		}
		if _, err := part.Write(img.Data); err != nil {
			return err
		}
	}
	if err := writer.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(name), &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("backend request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("backend returned status %d", resp.StatusCode)
	}
	var status statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		// Some endpoints answer with a bare body on success.
		slog.Debug("Non-JSON response from backend mutation", "endpoint", name, "error", err)
		return nil
	}
	if !status.Success {
		return fmt.Errorf("backend rejected request: %s", status.Message)
	}
	return nil
}
