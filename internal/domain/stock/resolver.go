package stock

import (
	"github.com/tu-usuario/pos-ledger/internal/domain/entity"
)

// Resolve proyecta el stock disponible por variante desde las tres colecciones
// fuente: lotes de entrada, líneas vendidas y líneas devueltas. Es una función
// pura: sin estado, sin caché propia, misma salida para la misma entrada.
//
//	resolved(v) = Σ batch.qty[v] − Σ vendido.qty[v, good, !custom] + Σ devuelto.qty[v, good, !custom]
//
// Servicios y líneas ad-hoc nunca afectan stock. Una variante vendida o
// devuelta sin lote acumula igual (posiblemente en negativo); un resultado
// negativo es señal de sobreventa, no un error. Entradas faltantes aportan
// cero: Resolve nunca falla.
func Resolve(batches []entity.StockBatch, sold []entity.SaleLine, returned []entity.ReturnLine) map[string]int64 {
	resolved := make(map[string]int64, len(batches))

	// Toda variante con al menos un lote arranca en cero aunque el neto sea cero.
	for _, b := range batches {
		resolved[b.VariantID] += b.Quantity
	}
	for _, l := range sold {
		if !l.AffectsStock() {
			continue
		}
		resolved[l.VariantID] -= l.Quantity
	}
	for _, l := range returned {
		if !l.AffectsStock() {
			continue
		}
		resolved[l.VariantID] += l.Quantity
	}
	return resolved
}

// SaleLines aplana las líneas de un conjunto de ventas, preservando el orden.
func SaleLines(sales []entity.Sale) []entity.SaleLine {
	var lines []entity.SaleLine
	for _, s := range sales {
		lines = append(lines, s.Lines...)
	}
	return lines
}

// ReturnLines aplana las líneas de un conjunto de devoluciones.
func ReturnLines(returns []entity.Return) []entity.ReturnLine {
	var lines []entity.ReturnLine
	for _, r := range returns {
		lines = append(lines, r.Lines...)
	}
	return lines
}
