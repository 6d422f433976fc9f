package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/csrf"
	"github.com/hariharanp05/eaclothingfrontend/internal/backend"
	"github.com/hariharanp05/eaclothingfrontend/internal/reports"
)

func (h *AdminHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.Backend.Products(r.Context(), "")
	if err != nil {
		http.Error(w, "Error fetching products", http.StatusInternalServerError)
		return
	}
	collections, err := h.Backend.Collections(r.Context())
	if err != nil {
		collections = nil
	}

	query := r.URL.Query().Get("q")
	filtered := reports.SearchProducts(products, collections, query)

	tmpl := h.Templates.Get("admin_products.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, adminSessionName)
	data := map[string]interface{}{
		"Products":    filtered,
		"Collections": collections,
		"Query":       query,
		"CsrfField":   csrf.TemplateField(r),
		"Flashes":     GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *AdminHandler) NewProductForm(w http.ResponseWriter, r *http.Request) {
	h.renderProductForm(w, r, backend.ProductForm{})
}

func (h *AdminHandler) EditProductForm(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.URL.Query().Get("id"))
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	product, err := h.Backend.Product(r.Context(), id)
	if err != nil {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	form := backend.ProductForm{
		ID:            product.ID,
		Name:          product.Name,
		Price:         product.Price.String(),
		OriginalPrice: product.OriginalPrice.String(),
		Category:      product.Category,
		CollectionID:  strconv.Itoa(product.CollectionID),
		Sizes:         strings.Join(product.Sizes, ", "),
		Colors:        strings.Join(product.Colors, ", "),
		Description:   product.Description,
		InStock:       bool(product.InStock),
	}
	h.renderProductForm(w, r, form)
}

func (h *AdminHandler) renderProductForm(w http.ResponseWriter, r *http.Request, form backend.ProductForm) {
	collections, err := h.Backend.Collections(r.Context())
	if err != nil {
		collections = nil
	}

	tmpl := h.Templates.Get("admin_product_form.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, adminSessionName)
	data := map[string]interface{}{
		"Form":        form,
		"Collections": collections,
		"CsrfField":   csrf.TemplateField(r),
		"Flashes":     GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

// SaveProduct handles both create (no id field) and update. Images are
// optional either way; an update without new files leaves the stored
// image references as they are.
func (h *AdminHandler) SaveProduct(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, adminSessionName)
	defer session.Save(r, w)

	// 1. Parse Multipart Form
	if err := r.ParseMultipartForm(10 << 20); err != nil { // 10MB
		session.AddFlash(FlashMessage{Type: "error", Message: "File too large. Max 10MB."})
		http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
		return
	}

	form := backend.ProductForm{
		Name:          r.FormValue("name"),
		Price:         r.FormValue("price"),
		OriginalPrice: r.FormValue("original_price"),
		Category:      r.FormValue("category"),
		CollectionID:  r.FormValue("collection_id"),
		Sizes:         r.FormValue("sizes"),
		Colors:        r.FormValue("colors"),
		Description:   r.FormValue("description"),
		InStock:       r.FormValue("in_stock") == "1",
	}
	if idStr := r.FormValue("id"); idStr != "" {
		form.ID, _ = strconv.Atoi(idStr)
	}

	// Validation
	errs := make(map[string]string)
	if form.Name == "" {
		errs["name"] = "Name is required."
	}
	if form.Price == "" {
		errs["price"] = "Price is required."
	} else if price, err := strconv.ParseFloat(form.Price, 64); err != nil {
		errs["price"] = "Invalid price format."
	} else if price <= 0 {
		errs["price"] = "Price must be positive."
	}
	if form.Category == "" {
		errs["category"] = "Category is required."
	}
	if len(errs) > 0 {
		for _, msg := range errs {
			session.AddFlash(FlashMessage{Type: "error", Message: msg})
		}
		http.Redirect(w, r, productFormURL(form.ID), http.StatusSeeOther)
		return
	}

	// 2. Prepare optional images
	var mainImage *backend.Upload
	if file, header, err := r.FormFile("main_image"); err == nil {
		defer file.Close()
		mainImage, err = backend.PrepareImage(file, header.Filename)
		if err != nil {
			session.AddFlash(FlashMessage{Type: "error", Message: "Main image: unsupported or unreadable file."})
			http.Redirect(w, r, productFormURL(form.ID), http.StatusSeeOther)
			return
		}
	}

	var gallery []backend.Upload
	if r.MultipartForm != nil {
		for _, header := range r.MultipartForm.File["gallery_images"] {
			file, err := header.Open()
			if err != nil {
				continue
			}
			upload, err := backend.PrepareImage(file, header.Filename)
			file.Close()
			if err != nil {
				session.AddFlash(FlashMessage{Type: "error", Message: "Gallery image: unsupported or unreadable file."})
				http.Redirect(w, r, productFormURL(form.ID), http.StatusSeeOther)
				return
			}
			gallery = append(gallery, *upload)
		}
	}

	// 3. Forward to the backend
	var err error
	if form.ID != 0 {
		err = h.Backend.UpdateProduct(r.Context(), form, mainImage, gallery)
	} else {
		err = h.Backend.CreateProduct(r.Context(), form, mainImage, gallery)
	}
	if err != nil {
		slog.Error("Product save failed", "id", form.ID, "error", err)
		session.AddFlash(FlashMessage{Type: "error", Message: "Error saving product."})
		http.Redirect(w, r, productFormURL(form.ID), http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Product saved successfully!"})
	http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
}

func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, adminSessionName)
	defer session.Save(r, w)

	id, err := strconv.Atoi(r.FormValue("id"))
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid ID."})
		http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
		return
	}

	if err := h.Backend.DeleteProduct(r.Context(), id); err != nil {
		slog.Error("Product delete failed", "id", id, "error", err)
		session.AddFlash(FlashMessage{Type: "error", Message: "Error deleting product."})
		http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Product deleted successfully!"})
	http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
}

func productFormURL(id int) string {
	if id != 0 {
		return "/admin/products/edit?id=" + strconv.Itoa(id)
	}
	return "/admin/products/new"
}
