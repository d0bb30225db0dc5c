package stock

import (
	"sort"

	"github.com/tu-usuario/pos-ledger/internal/domain/entity"
)

// Alert es una variante en o bajo su umbral de stock bajo.
type Alert struct {
	VariantID string `json:"variant_id"`
	Name      string `json:"name"`
	Quantity  int64  `json:"quantity"`
	Threshold int64  `json:"threshold"`
}

// LowStock devuelve las variantes cuyo stock resuelto está en o bajo su umbral
// (frontera inclusiva: resolved == threshold ya dispara la alerta). Variantes
// sin entrada en resolved cuentan como cero. Orden estable por déficit
// descendente para que lo más crítico salga primero.
func LowStock(variants []entity.Variant, resolved map[string]int64) []Alert {
	var alerts []Alert
	for _, v := range variants {
		qty := resolved[v.ID]
		if qty <= v.LowStockThreshold {
			alerts = append(alerts, Alert{
				VariantID: v.ID,
				Name:      v.Name,
				Quantity:  qty,
				Threshold: v.LowStockThreshold,
			})
		}
	}
	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].Threshold-alerts[i].Quantity > alerts[j].Threshold-alerts[j].Quantity
	})
	return alerts
}

// VariantIndex mapas de búsqueda derivados del catálogo de variantes.
// Siempre se reconstruyen desde la colección fuente; no guardan estado propio.
type VariantIndex struct {
	ByID        map[string]entity.Variant
	ByBarcode   map[string]entity.Variant
	ByProductID map[string][]entity.Variant
}

// BuildVariantIndex construye los mapas de búsqueda. Códigos de barras vacíos
// no se indexan; en colisión de barcode gana la última variante (last-write-wins,
// igual que la caché).
func BuildVariantIndex(variants []entity.Variant) VariantIndex {
	idx := VariantIndex{
		ByID:        make(map[string]entity.Variant, len(variants)),
		ByBarcode:   make(map[string]entity.Variant),
		ByProductID: make(map[string][]entity.Variant),
	}
	for _, v := range variants {
		idx.ByID[v.ID] = v
		if v.Barcode != "" {
			idx.ByBarcode[v.Barcode] = v
		}
		idx.ByProductID[v.ProductID] = append(idx.ByProductID[v.ProductID], v)
	}
	return idx
}
