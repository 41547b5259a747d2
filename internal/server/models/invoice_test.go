package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineItem_UnmarshalJSON_Coercion(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		wantQty   int64
		wantPrice float64
	}{
		{"plain numbers", `{"name":"Cloth","qty":3,"price":150}`, 3, 150},
		{"negative qty clamps to zero", `{"name":"Cloth","qty":-1,"price":10}`, 0, 10},
		{"negative price clamps to zero", `{"name":"Cloth","qty":2,"price":-5.5}`, 2, 0},
		{"quoted numbers accepted", `{"name":"Cloth","qty":"4","price":"12.5"}`, 4, 12.5},
		{"junk strings collapse to zero", `{"name":"Cloth","qty":"abc","price":"x"}`, 0, 0},
		{"nulls collapse to zero", `{"name":"Cloth","qty":null,"price":null}`, 0, 0},
		{"missing fields collapse to zero", `{"name":"Cloth"}`, 0, 0},
		{"fractional qty truncates", `{"name":"Cloth","qty":2.9,"price":1}`, 2, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var li LineItem
			require.NoError(t, json.Unmarshal([]byte(tc.in), &li))
			assert.Equal(t, tc.wantQty, li.Qty)
			assert.Equal(t, tc.wantPrice, li.Price)
		})
	}
}

func TestLineItem_UnmarshalJSON_MalformedObjectFails(t *testing.T) {
	var li LineItem
	require.Error(t, json.Unmarshal([]byte(`"not an object"`), &li))
}

func TestComputeTotal(t *testing.T) {
	items := []LineItem{
		{Name: "Cloth", Qty: 3, Price: 150},
		{Name: "Thread", Qty: 10, Price: 2.5},
	}
	assert.Equal(t, 475.0, ComputeTotal(items))
	assert.Equal(t, 0.0, ComputeTotal(nil))
}

func TestInvoice_Normalize_OverwritesCallerTotal(t *testing.T) {
	inv := &Invoice{
		Items: []LineItem{{Name: "Cloth", Qty: 3, Price: 150}},
		Total: 99999, // caller-supplied totals are never trusted
	}
	inv.Normalize()
	assert.Equal(t, 450.0, inv.Total)
}

func TestInvoice_Normalize_CoercedItemsReflectZero(t *testing.T) {
	raw := `{"customer":"Acme","items":[{"name":"Cloth","qty":-1,"price":150}],"total":450}`
	var inv Invoice
	require.NoError(t, json.Unmarshal([]byte(raw), &inv))
	inv.Normalize()

	assert.Equal(t, int64(0), inv.Items[0].Qty)
	assert.Equal(t, 0.0, inv.Total)
}
