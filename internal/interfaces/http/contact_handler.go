package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/ventas-pro/internal/application/dto"
	"github.com/tu-usuario/ventas-pro/internal/application/usecase"
)

// ContactHandler maneja las peticiones HTTP para Contact (protegido).
type ContactHandler struct {
	uc *usecase.ContactUseCase
}

// NewContactHandler construye el handler.
func NewContactHandler(uc *usecase.ContactUseCase) *ContactHandler {
	return &ContactHandler{uc: uc}
}

// Create godoc
// @Summary      Crear contacto
// @Tags         contacts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ContactRequest  true  "Datos del contacto"
// @Success      201   {object}  dto.ContactResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/contacts [post]
func (h *ContactHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.ContactRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name es requerido"})
	}
	out, err := h.uc.Create(companyID, in)
	if err != nil {
		return crudError(c, err, "contacto no encontrado")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener contacto por ID
// @Tags         contacts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del contacto"
// @Success      200  {object}  dto.ContactResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/contacts/{id} [get]
func (h *ContactHandler) GetByID(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	out, err := h.uc.GetByID(companyID, c.Params("id"))
	if err != nil {
		return crudError(c, err, "contacto no encontrado")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar contactos de la empresa
// @Tags         contacts
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ContactResponse
// @Router       /api/contacts [get]
func (h *ContactHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	out, err := h.uc.List(companyID)
	if err != nil {
		return crudError(c, err, "contacto no encontrado")
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar contacto
// @Tags         contacts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del contacto"
// @Param        body  body  dto.ContactRequest  true  "Datos nuevos"
// @Success      200   {object}  dto.ContactResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/contacts/{id} [put]
func (h *ContactHandler) Update(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.ContactRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(companyID, c.Params("id"), in)
	if err != nil {
		return crudError(c, err, "contacto no encontrado")
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar contacto
// @Tags         contacts
// @Security     Bearer
// @Param        id  path  string  true  "ID del contacto"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/contacts/{id} [delete]
func (h *ContactHandler) Delete(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	if err := h.uc.Delete(companyID, c.Params("id")); err != nil {
		return crudError(c, err, "contacto no encontrado")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
