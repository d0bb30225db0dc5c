package stock

import (
	"github.com/shopspring/decimal"
)

// AverageCost implementa la lógica de costo promedio ponderado que la entrada
// de stock aplica sobre la variante (servicio de dominio).
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
// Con denominador <= 0 (corrección que deja el stock en cero o negativo) se
// conserva el costo de la entrada.
func AverageCost(currentQty int64, currentCost decimal.Decimal, inQty int64, inCost decimal.Decimal) decimal.Decimal {
	cur := decimal.NewFromInt(currentQty)
	in := decimal.NewFromInt(inQty)
	sum := cur.Add(in)
	if sum.LessThanOrEqual(decimal.Zero) {
		return inCost
	}
	num := cur.Mul(currentCost).Add(in.Mul(inCost))
	return num.Div(sum)
}
