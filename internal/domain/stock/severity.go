package stock

// Severidades de stock (servicio de dominio).
// SeverityNormal no genera registro de alerta; las otras tres sí.
const (
	SeverityNormal     = "NORMAL"
	SeverityLowStock   = "LOW_STOCK"
	SeverityOutOfStock = "OUT_OF_STOCK"
	SeverityOverstock  = "OVERSTOCK"
)

// Severity evalúa la severidad de un balance q contra los umbrales min/max del producto.
// Orden de prioridad fijo: agotado, bajo stock, sobre-stock, normal.
// Devuelve además el umbral que disparó la severidad (0 para OUT_OF_STOCK y NORMAL).
func Severity(q, min, max int64) (string, int64) {
	switch {
	case q <= 0:
		return SeverityOutOfStock, 0
	case q <= min:
		return SeverityLowStock, min
	case q > max:
		return SeverityOverstock, max
	default:
		return SeverityNormal, 0
	}
}
