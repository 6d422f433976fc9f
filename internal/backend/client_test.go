package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hariharanp05/eaclothingfrontend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.Handler) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return NewClient(srv.URL, 5*time.Second), srv
}

func TestProductsCollectionFilter(t *testing.T) {
	var gotPath, gotQuery string
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("collection")
		json.NewEncoder(w).Encode([]models.Product{{ID: 1, Name: "Linen Shirt"}})
	}))
	defer srv.Close()

	products, err := client.Products(context.Background(), "summer")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "/get_products.php", gotPath)
	assert.Equal(t, "summer", gotQuery)

	// "all" and "" mean unfiltered.
	_, err = client.Products(context.Background(), "all")
	require.NoError(t, err)
	assert.Empty(t, gotQuery)
}

func TestProductsEmptyBody(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// PHP sometimes answers 200 with nothing at all.
	}))
	defer srv.Close()

	products, err := client.Products(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestProductsMalformedJSON(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<br />Warning: mysqli_connect"))
	}))
	defer srv.Close()

	products, err := client.Products(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestProductNotFound(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{}"))
	}))
	defer srv.Close()

	_, err := client.Product(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProduct404(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := client.Product(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPlaceOrder(t *testing.T) {
	var got models.OrderDraft
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/place_order.php", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(map[string]any{"success": true, "order_id": 77})
	}))
	defer srv.Close()

	draft := models.OrderDraft{
		CustomerName: "Asha Rao",
		Email:        "asha@example.com",
		FinalTotal:   decimal.RequireFromString("108"),
	}
	id, err := client.PlaceOrder(context.Background(), draft)
	require.NoError(t, err)
	assert.Equal(t, 77, id)
	assert.Equal(t, "Asha Rao", got.CustomerName)
}

func TestPlaceOrderRejected(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "out of stock"})
	}))
	defer srv.Close()

	_, err := client.PlaceOrder(context.Background(), models.OrderDraft{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of stock")
}

func TestUpdateOrderStatus(t *testing.T) {
	var gotID, gotStatus string
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotID = r.FormValue("id")
		gotStatus = r.FormValue("order_status")
		json.NewEncoder(w).Encode(map[string]any{"success": true})
	}))
	defer srv.Close()

	require.NoError(t, client.UpdateOrderStatus(context.Background(), 9, models.OrderStatusProcessing))
	assert.Equal(t, "9", gotID)
	assert.Equal(t, "processing", gotStatus)
}

func TestUpdateOrderStatusRejectsUnknown(t *testing.T) {
	client := NewClient("http://unreachable.invalid", time.Second)
	err := client.UpdateOrderStatus(context.Background(), 9, "lost")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid order status")
}

func TestUpdateProductWithoutImagesOmitsFileParts(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "3", r.FormValue("id"))
		assert.Equal(t, "Linen Shirt", r.FormValue("name"))
		assert.Equal(t, "1", r.FormValue("inStock"))
		// No file parts at all, so the stored images stay untouched.
		assert.Empty(t, r.MultipartForm.File)
		json.NewEncoder(w).Encode(map[string]any{"success": true})
	}))
	defer srv.Close()

	form := ProductForm{ID: 3, Name: "Linen Shirt", Price: "45.00", InStock: true}
	require.NoError(t, client.UpdateProduct(context.Background(), form, nil, nil))
}

func TestUpdateProductRequiresID(t *testing.T) {
	client := NewClient("http://unreachable.invalid", time.Second)
	err := client.UpdateProduct(context.Background(), ProductForm{Name: "x"}, nil, nil)
	require.Error(t, err)
}

func TestCreateProductSendsImages(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		require.Len(t, r.MultipartForm.File["main_image"], 1)
		require.Len(t, r.MultipartForm.File["gallery_images[]"], 2)
		assert.Equal(t, "front.jpg", r.MultipartForm.File["main_image"][0].Filename)
		// New products carry no id field.
		assert.Empty(t, r.FormValue("id"))
		json.NewEncoder(w).Encode(map[string]any{"success": true})
	}))
	defer srv.Close()

	main := &Upload{Filename: "front.jpg", Data: []byte("jpegdata")}
	gallery := []Upload{
		{Filename: "side.jpg", Data: []byte("a")},
		{Filename: "back.jpg", Data: []byte("b")},
	}
	err := client.CreateProduct(context.Background(), ProductForm{Name: "New"}, main, gallery)
	require.NoError(t, err)
}

func TestDeleteProduct(t *testing.T) {
	var gotPath, gotID string
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotPath = r.URL.Path
		gotID = r.FormValue("id")
		json.NewEncoder(w).Encode(map[string]any{"success": true})
	}))
	defer srv.Close()

	require.NoError(t, client.DeleteProduct(context.Background(), 5))
	assert.Equal(t, "/admin_delete_product.php", gotPath)
	assert.Equal(t, "5", gotID)
}

func TestMutationToleratesBareBody(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Product deleted"))
	}))
	defer srv.Close()

	assert.NoError(t, client.DeleteProduct(context.Background(), 5))
}

func TestMutationRejectedByBackend(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "missing name"})
	}))
	defer srv.Close()

	err := client.CreateProduct(context.Background(), ProductForm{}, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing name")
}
