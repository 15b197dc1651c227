package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/ventas-pro/internal/domain"
	"github.com/tu-usuario/ventas-pro/internal/domain/entity"
	"github.com/tu-usuario/ventas-pro/internal/domain/repository"
)

var _ repository.ContactRepository = (*ContactRepo)(nil)

// ContactRepo implementación de ContactRepository sobre PostgreSQL.
type ContactRepo struct {
	q Querier
}

// NewContactRepository construye el adaptador de contactos.
func NewContactRepository(q Querier) *ContactRepo {
	return &ContactRepo{q: q}
}

// GetByID obtiene un contacto por ID (nil, nil si no existe).
func (r *ContactRepo) GetByID(id string) (*entity.Contact, error) {
	query := `
		SELECT id, company_id, name, email, phone, address, created_at, updated_at
		FROM contacts WHERE id = $1`
	var c entity.Contact
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.CompanyID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get contact: %w", err)
	}
	return &c, nil
}

// ListByCompany lista contactos por empresa.
func (r *ContactRepo) ListByCompany(companyID string) ([]*entity.Contact, error) {
	query := `
		SELECT id, company_id, name, email, phone, address, created_at, updated_at
		FROM contacts WHERE company_id = $1 ORDER BY name`
	rows, err := r.q.Query(context.Background(), query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Contact
	for rows.Next() {
		var c entity.Contact
		if err := rows.Scan(&c.ID, &c.CompanyID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Create persiste un nuevo contacto.
func (r *ContactRepo) Create(contact *entity.Contact) error {
	query := `
		INSERT INTO contacts (id, company_id, name, email, phone, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		contact.ID, contact.CompanyID, contact.Name, contact.Email,
		contact.Phone, contact.Address, contact.CreatedAt, contact.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert contact: %w", err)
	}
	return nil
}

// Update actualiza un contacto existente.
func (r *ContactRepo) Update(contact *entity.Contact) error {
	query := `
		UPDATE contacts SET name = $2, email = $3, phone = $4, address = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		contact.ID, contact.Name, contact.Email, contact.Phone, contact.Address, contact.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update contact: %w", err)
	}
	return nil
}

// Delete elimina un contacto por ID.
func (r *ContactRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	return nil
}
