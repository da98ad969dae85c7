package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/invorya/stock-ledger/internal/application/dto"
	"github.com/invorya/stock-ledger/internal/application/ledger"
)

// AlertHandler maneja consulta y resolución manual de alertas (protegido).
type AlertHandler struct {
	uc *ledger.LedgerUseCase
}

// NewAlertHandler construye el handler de alertas.
func NewAlertHandler(uc *ledger.LedgerUseCase) *AlertHandler {
	return &AlertHandler{uc: uc}
}

// List godoc
// @Summary      Listar alertas de stock
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        active  query  bool  false  "solo alertas activas"
// @Param        limit   query  int   false  "máx resultados (default 20)"
// @Param        offset  query  int   false  "desplazamiento"
// @Success      200  {object}  dto.AlertListResponse
// @Router       /api/stock/alerts [get]
func (h *AlertHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	activeOnly := c.QueryBool("active", false)
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	out, err := h.uc.ListAlerts(companyID, activeOnly, page.Limit, page.Offset)
	if err != nil {
		return mapLedgerError(c, err)
	}
	return c.JSON(out)
}

// Resolve godoc
// @Summary      Resolver una alerta manualmente
// @Description  Marca la alerta como resuelta por el operador. Si la condición
//
//	persiste, el próximo movimiento del producto la vuelve a levantar.
//
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Alert ID (UUID)"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stock/alerts/{id}/resolve [post]
func (h *AlertHandler) Resolve(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	if companyID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	if err := h.uc.ResolveAlert(companyID, c.Params("id"), userID); err != nil {
		return mapLedgerError(c, err)
	}
	return c.JSON(fiber.Map{"message": "alerta resuelta"})
}
