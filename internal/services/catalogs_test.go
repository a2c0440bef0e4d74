package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinic-app-server/internal/models"
)

func TestCatalogCRUD(t *testing.T) {
	db := newTestDB(t)
	seedFixtures(t, db)
	svc := NewCatalogService(db)

	created, err := svc.Create("occupations", "Engineer")
	require.NoError(t, err)
	occupation, ok := created.(*models.Occupation)
	require.True(t, ok)
	assert.Equal(t, "Engineer", occupation.Name)

	updated, err := svc.Update("occupations", occupation.ID, "Civil Engineer")
	require.NoError(t, err)
	assert.Equal(t, "Civil Engineer", updated.(*models.Occupation).Name)

	listed, err := svc.List("occupations")
	require.NoError(t, err)
	names := map[string]bool{}
	for _, item := range listed.([]models.Occupation) {
		names[item.Name] = true
	}
	assert.True(t, names["Civil Engineer"])
	assert.True(t, names["Accountant"], "the seeded entry should still be there")

	require.NoError(t, svc.Delete("occupations", occupation.ID))

	err = svc.Delete("occupations", occupation.ID)
	require.Error(t, err)
	assert.Equal(t, KindNotFound, kindOf(t, err))
}

func TestCatalogUnknownKey(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db)

	_, err := svc.List("flavors")
	require.Error(t, err)
	assert.Equal(t, KindNotFound, kindOf(t, err))

	_, err = svc.Create("flavors", "Vanilla")
	require.Error(t, err)
	assert.Equal(t, KindNotFound, kindOf(t, err))
}

func TestCatalogUpdateNotFound(t *testing.T) {
	db := newTestDB(t)
	seedFixtures(t, db)
	svc := NewCatalogService(db)

	_, err := svc.Update("occupations", "missing", "Anything")
	require.Error(t, err)
	assert.Equal(t, KindNotFound, kindOf(t, err))
}

func TestCatalogDeleteInUseConflicts(t *testing.T) {
	db := newTestDB(t)
	f := seedFixtures(t, db)
	svc := NewCatalogService(db)

	// Book an appointment so the payment method is referenced by a
	// payment detail row.
	_, _, err := newAppointmentService(db).Create(bookingInput(f, "2024-03-01", "09:00"))
	require.NoError(t, err)

	err = svc.Delete("payment-methods", f.PaymentMethod.ID)
	require.Error(t, err)
	assert.Equal(t, KindConflict, kindOf(t, err))

	// The row survived the rejected delete.
	var method models.PaymentMethod
	require.NoError(t, db.First(&method, "id = ?", f.PaymentMethod.ID).Error)
}

func TestAllCatalogsIncludesGuardians(t *testing.T) {
	db := newTestDB(t)
	f := seedFixtures(t, db)
	svc := NewCatalogService(db)

	guardian := models.Guardian{
		NationalID: "005-010175-0005E", FirstName: "Elena", LastName: "Ruiz",
		RelationshipID: f.Relationship.ID, OccupationID: f.Occupation.ID,
		MaritalStatusID: f.MaritalStatus.ID, AddressID: f.Address.ID,
	}
	require.NoError(t, db.Create(&guardian).Error)

	all, err := svc.All()
	require.NoError(t, err)
	assert.Len(t, all.Occupations, 1)
	require.Len(t, all.Guardians, 1)
	assert.Equal(t, f.Relationship.Name, all.Guardians[0].Relationship.Name)
}
