package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/veletic/cinema-ticketing/internal/model"
	"github.com/veletic/cinema-ticketing/internal/repository"
)

// TicketTypeHandler implements manager-facing pricing CRUD.  Prices
// are accepted as decimal strings so no float rounding ever touches
// money values.
type TicketTypeHandler struct {
	Types *repository.TicketTypeRepo
}

func NewTicketTypeHandler(types *repository.TicketTypeRepo) *TicketTypeHandler {
	if types == nil {
		panic("nil TicketTypeRepo passed to NewTicketTypeHandler")
	}
	return &TicketTypeHandler{Types: types}
}

type ticketTypeReq struct {
	Name  string `json:"name"`
	Price string `json:"price"`
}

func (r *ticketTypeReq) parse() (decimal.Decimal, error) {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return decimal.Decimal{}, errors.New("name is required")
	}
	price, err := decimal.NewFromString(r.Price)
	if err != nil {
		return decimal.Decimal{}, errors.New("price must be a decimal string")
	}
	if price.IsNegative() {
		return decimal.Decimal{}, errors.New("price must not be negative")
	}
	return price, nil
}

// Create handles POST /api/v1/admin/ticket-types.
func (h *TicketTypeHandler) Create(c echo.Context) error {
	var req ticketTypeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	price, err := req.parse()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	t := &model.TicketType{Name: req.Name, Price: price}
	if err := h.Types.Create(c.Request().Context(), t); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "ticket type name already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": echo.Map{"id": t.ID, "name": t.Name, "price": t.Price.String()}})
}

// Update handles PUT /api/v1/admin/ticket-types/:id.  Price changes
// only affect future bookings; sold tickets keep the price they were
// bought at.
func (h *TicketTypeHandler) Update(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid ticket type id"})
	}
	var req ticketTypeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	price, err := req.parse()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	t := &model.TicketType{ID: id, Name: req.Name, Price: price}
	if err := h.Types.Update(c.Request().Context(), t); err != nil {
		if errors.Is(err, repository.ErrTicketTypeNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "ticket type not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": echo.Map{"id": t.ID, "name": t.Name, "price": t.Price.String()}})
}

// Delete handles DELETE /api/v1/admin/ticket-types/:id.  A type with
// tickets sold under it cannot be deleted.
func (h *TicketTypeHandler) Delete(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid ticket type id"})
	}
	if err := h.Types.Delete(c.Request().Context(), id); err != nil {
		switch {
		case errors.Is(err, repository.ErrTicketTypeNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "ticket type not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "ticket type has tickets sold"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
		}
	}
	return c.NoContent(http.StatusNoContent)
}
