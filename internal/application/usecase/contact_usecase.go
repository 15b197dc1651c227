package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/ventas-pro/internal/application/dto"
	"github.com/tu-usuario/ventas-pro/internal/domain"
	"github.com/tu-usuario/ventas-pro/internal/domain/entity"
	"github.com/tu-usuario/ventas-pro/internal/domain/repository"
)

// ContactUseCase casos de uso CRUD para contactos comerciales.
type ContactUseCase struct {
	repo repository.ContactRepository
}

// NewContactUseCase construye el caso de uso.
func NewContactUseCase(repo repository.ContactRepository) *ContactUseCase {
	return &ContactUseCase{repo: repo}
}

// Create crea un contacto.
func (uc *ContactUseCase) Create(companyID string, in dto.ContactRequest) (*dto.ContactResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	contact := &entity.Contact{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(contact); err != nil {
		return nil, err
	}
	return toContactResponse(contact), nil
}

// GetByID obtiene un contacto, validando tenant.
func (uc *ContactUseCase) GetByID(companyID, id string) (*dto.ContactResponse, error) {
	contact, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, domain.ErrNotFound
	}
	if contact.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return toContactResponse(contact), nil
}

// Update actualiza un contacto.
func (uc *ContactUseCase) Update(companyID, id string, in dto.ContactRequest) (*dto.ContactResponse, error) {
	contact, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, domain.ErrNotFound
	}
	if contact.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	if in.Name != "" {
		contact.Name = in.Name
	}
	if in.Email != "" {
		contact.Email = in.Email
	}
	if in.Phone != "" {
		contact.Phone = in.Phone
	}
	if in.Address != "" {
		contact.Address = in.Address
	}
	contact.UpdatedAt = time.Now()
	if err := uc.repo.Update(contact); err != nil {
		return nil, err
	}
	return toContactResponse(contact), nil
}

// List lista los contactos de una empresa.
func (uc *ContactUseCase) List(companyID string) ([]dto.ContactResponse, error) {
	list, err := uc.repo.ListByCompany(companyID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ContactResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toContactResponse(c))
	}
	return items, nil
}

// Delete elimina un contacto.
func (uc *ContactUseCase) Delete(companyID, id string) error {
	contact, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if contact == nil {
		return domain.ErrNotFound
	}
	if contact.CompanyID != companyID {
		return domain.ErrForbidden
	}
	return uc.repo.Delete(id)
}

func toContactResponse(c *entity.Contact) *dto.ContactResponse {
	if c == nil {
		return nil
	}
	return &dto.ContactResponse{
		ID:        c.ID,
		CompanyID: c.CompanyID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
