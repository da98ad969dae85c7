package entity

import "time"

// SystemActor es el actor que resuelve alertas automáticamente cuando el balance
// sale de la zona que las originó.
const SystemActor = "system"

// StockAlert es el registro persistido de una severidad de stock.
// Invariante: a lo sumo UNA alerta activa por producto; refleja la severidad actual.
// AlertType usa las severidades de internal/domain/stock (LOW_STOCK, OUT_OF_STOCK, OVERSTOCK).
type StockAlert struct {
	ID           string
	CompanyID    string
	ProductID    string
	AlertType    string
	CurrentStock int64
	Threshold    int64 // 0 para OUT_OF_STOCK, MinStock para LOW_STOCK, MaxStock para OVERSTOCK
	IsActive     bool
	ResolvedAt   *time.Time
	ResolvedBy   string // SystemActor o UserID
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
