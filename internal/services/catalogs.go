package services

import (
	"errors"

	"gorm.io/gorm"

	"clinic-app-server/internal/models"
)

// renamable is what the generic catalog operations need from a catalog
// row: models.CatalogBase provides it for every catalog type.
type renamable interface {
	Rename(name string)
}

// catalogOps are the CRUD closures for one catalog table.
type catalogOps struct {
	list   func(db *gorm.DB) (interface{}, error)
	create func(db *gorm.DB, name string) (interface{}, error)
	update func(db *gorm.DB, id, name string) (interface{}, error)
	remove func(db *gorm.DB, id string) error
}

func opsFor[T any, PT interface {
	*T
	renamable
}]() catalogOps {
	return catalogOps{
		list: func(db *gorm.DB) (interface{}, error) {
			var items []T
			if err := db.Order("created_at asc").Find(&items).Error; err != nil {
				return nil, ErrInternal(err)
			}
			return items, nil
		},
		create: func(db *gorm.DB, name string) (interface{}, error) {
			item := PT(new(T))
			item.Rename(name)
			if err := db.Create(item).Error; err != nil {
				return nil, ErrInternal(err)
			}
			return item, nil
		},
		update: func(db *gorm.DB, id, name string) (interface{}, error) {
			item := PT(new(T))
			if err := db.First(item, "id = ?", id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, ErrNotFound("catalog entry not found")
				}
				return nil, ErrInternal(err)
			}
			item.Rename(name)
			if err := db.Save(item).Error; err != nil {
				return nil, ErrInternal(err)
			}
			return item, nil
		},
		remove: func(db *gorm.DB, id string) error {
			result := db.Delete(new(T), "id = ?", id)
			if result.Error != nil {
				if errors.Is(result.Error, gorm.ErrForeignKeyViolated) {
					return ErrConflict("catalog entry is in use and cannot be deleted")
				}
				return ErrInternal(result.Error)
			}
			if result.RowsAffected == 0 {
				return ErrNotFound("catalog entry not found")
			}
			return nil
		},
	}
}

// catalogRegistry maps the URL catalog key to its table operations.
var catalogRegistry = map[string]catalogOps{
	"occupations":           opsFor[models.Occupation](),
	"marital-statuses":      opsFor[models.MaritalStatus](),
	"relationships":         opsFor[models.Relationship](),
	"specialties":           opsFor[models.Specialty](),
	"appointment-types":     opsFor[models.AppointmentType](),
	"payment-methods":       opsFor[models.PaymentMethod](),
	"administration-routes": opsFor[models.AdministrationRoute](),
	"therapy-types":         opsFor[models.TherapyType](),
	"explorations":          opsFor[models.ExplorationTest](),
}

// CatalogService is generic CRUD over the reference-data tables.
type CatalogService struct {
	db *gorm.DB
}

// NewCatalogService creates a CatalogService.
func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

func (s *CatalogService) ops(catalog string) (catalogOps, error) {
	ops, ok := catalogRegistry[catalog]
	if !ok {
		return catalogOps{}, ErrNotFound("unknown catalog " + catalog)
	}
	return ops, nil
}

// List returns every entry of a catalog.
func (s *CatalogService) List(catalog string) (interface{}, error) {
	ops, err := s.ops(catalog)
	if err != nil {
		return nil, err
	}
	return ops.list(s.db)
}

// Create adds a named entry to a catalog.
func (s *CatalogService) Create(catalog, name string) (interface{}, error) {
	ops, err := s.ops(catalog)
	if err != nil {
		return nil, err
	}
	return ops.create(s.db, name)
}

// Update renames a catalog entry.
func (s *CatalogService) Update(catalog, id, name string) (interface{}, error) {
	ops, err := s.ops(catalog)
	if err != nil {
		return nil, err
	}
	return ops.update(s.db, id, name)
}

// Delete removes a catalog entry; an entry referenced by other rows is
// reported as a conflict.
func (s *CatalogService) Delete(catalog, id string) error {
	ops, err := s.ops(catalog)
	if err != nil {
		return err
	}
	return ops.remove(s.db, id)
}

// AllCatalogs returns the reference lists the record/session forms
// need in one payload.
type AllCatalogs struct {
	Occupations          []models.Occupation          `json:"occupations"`
	MaritalStatuses      []models.MaritalStatus       `json:"maritalStatuses"`
	Relationships        []models.Relationship        `json:"relationships"`
	Guardians            []models.Guardian            `json:"guardians"`
	Specialties          []models.Specialty           `json:"specialties"`
	AdministrationRoutes []models.AdministrationRoute `json:"administrationRoutes"`
	TherapyTypes         []models.TherapyType         `json:"therapyTypes"`
	Explorations         []models.ExplorationTest     `json:"explorations"`
}

// All loads every catalog plus the guardian list for form dropdowns.
func (s *CatalogService) All() (*AllCatalogs, error) {
	var all AllCatalogs
	loads := []error{
		s.db.Find(&all.Occupations).Error,
		s.db.Find(&all.MaritalStatuses).Error,
		s.db.Find(&all.Relationships).Error,
		s.db.Preload("Relationship").Find(&all.Guardians).Error,
		s.db.Find(&all.Specialties).Error,
		s.db.Find(&all.AdministrationRoutes).Error,
		s.db.Find(&all.TherapyTypes).Error,
		s.db.Find(&all.Explorations).Error,
	}
	for _, err := range loads {
		if err != nil {
			return nil, ErrInternal(err)
		}
	}
	return &all, nil
}
