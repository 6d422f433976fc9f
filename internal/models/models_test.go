package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringListDecode(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want StringList
	}{
		{"json array", `["S","M","L"]`, StringList{"S", "M", "L"}},
		{"comma string", `"Red, Blue,Green"`, StringList{"Red", "Blue", "Green"}},
		{"empty string", `""`, nil},
		{"trailing comma", `"S,M,"`, StringList{"S", "M"}},
		{"unexpected shape", `42`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got StringList
			require.NoError(t, json.Unmarshal([]byte(tt.in), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIntBoolDecode(t *testing.T) {
	tests := []struct {
		in   string
		want IntBool
	}{
		{`true`, true},
		{`false`, false},
		{`1`, true},
		{`0`, false},
		{`"1"`, true},
		{`"0"`, false},
	}
	for _, tt := range tests {
		var got IntBool
		require.NoError(t, json.Unmarshal([]byte(tt.in), &got))
		assert.Equal(t, tt.want, got, "input %s", tt.in)
	}
}

func TestIntBoolEncode(t *testing.T) {
	out, err := json.Marshal(IntBool(true))
	require.NoError(t, err)
	assert.Equal(t, "1", string(out))
}

func TestAPITimeDecode(t *testing.T) {
	var ts APITime
	require.NoError(t, json.Unmarshal([]byte(`"2025-03-05 14:30:00"`), &ts))
	assert.Equal(t, time.Date(2025, 3, 5, 14, 30, 0, 0, time.UTC), ts.Time)

	require.NoError(t, json.Unmarshal([]byte(`"2025-03-05T14:30:00Z"`), &ts))
	assert.Equal(t, time.Date(2025, 3, 5, 14, 30, 0, 0, time.UTC), ts.Time)

	require.NoError(t, json.Unmarshal([]byte(`""`), &ts))
	assert.True(t, ts.IsZero())

	require.NoError(t, json.Unmarshal([]byte(`"not a date"`), &ts))
	assert.True(t, ts.IsZero())
}

func TestProductDecode(t *testing.T) {
	raw := `{
		"id": 3,
		"name": "Linen Shirt",
		"price": "45.00",
		"original_price": "60.00",
		"sizes": "S,M,L",
		"colors": ["White", "Blue"],
		"inStock": "1",
		"gallery_images": ["a.jpg", "b.jpg"]
	}`
	var p Product
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	assert.Equal(t, 3, p.ID)
	assert.Equal(t, "45", p.Price.String())
	assert.Equal(t, StringList{"S", "M", "L"}, p.Sizes)
	assert.Equal(t, StringList{"White", "Blue"}, p.Colors)
	assert.True(t, bool(p.InStock))
	assert.Len(t, p.Gallery, 2)
}

func TestValidOrderStatus(t *testing.T) {
	for _, s := range []string{OrderStatusPending, OrderStatusProcessing, OrderStatusDelivered, OrderStatusCancelled} {
		assert.True(t, ValidOrderStatus(s))
	}
	assert.False(t, ValidOrderStatus("shipped"))
	assert.False(t, ValidOrderStatus(""))
}
