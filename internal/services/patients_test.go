package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"clinic-app-server/internal/models"
)

func newPatientService(db *gorm.DB) *PatientService {
	return NewPatientService(db, testLogger())
}

func adultPatientInput(f fixtures, nationalID string) PatientInput {
	return PatientInput{
		FirstName: "Maria", LastName: "Gomez",
		BirthDate: "1988-07-12", Gender: "Female", Nationality: "Nicaraguan",
		Address: AddressInput{State: "Managua", City: "Managua", Neighborhood: "Altamira", Street: "Main St"},
		IsAdult:  true,
		Adult: &AdultInput{
			NationalID:      nationalID,
			Phone:           "8888-1234",
			OccupationID:    f.Occupation.ID,
			MaritalStatusID: f.MaritalStatus.ID,
		},
	}
}

func TestCreateAdultPatient(t *testing.T) {
	db := newTestDB(t)
	f := seedFixtures(t, db)
	svc := newPatientService(db)

	patient, err := svc.Create(adultPatientInput(f, "001-120788-0001A"))
	require.NoError(t, err)
	assert.Equal(t, models.ActivityActive, patient.Status)

	var profile models.AdultProfile
	require.NoError(t, db.First(&profile, "patient_id = ?", patient.ID).Error)
	assert.Equal(t, "001-120788-0001A", profile.NationalID)

	// The patient got their own address snapshot.
	var address models.Address
	require.NoError(t, db.First(&address, "id = ?", patient.AddressID).Error)
	assert.Equal(t, "Altamira", address.Neighborhood)
	assert.Equal(t, "Nicaragua", address.Country)
}

func TestCreateAdultPatientRejectsMalformedNationalID(t *testing.T) {
	db := newTestDB(t)
	f := seedFixtures(t, db)
	svc := newPatientService(db)

	for _, id := range []string{"0011200780001A", "001-120788-0001", "001-120788-0001a", "ABC-120788-0001A"} {
		_, err := svc.Create(adultPatientInput(f, id))
		require.Error(t, err, id)
		assert.Equal(t, KindInvalidInput, kindOf(t, err), id)
	}
}

func TestCreateAdultPatientRejectsDuplicateNationalID(t *testing.T) {
	db := newTestDB(t)
	f := seedFixtures(t, db)
	svc := newPatientService(db)

	_, err := svc.Create(adultPatientInput(f, "001-120788-0001A"))
	require.NoError(t, err)

	input := adultPatientInput(f, "001-120788-0001A")
	input.FirstName = "Other"
	_, err = svc.Create(input)
	require.Error(t, err)
	assert.Equal(t, KindConflict, kindOf(t, err))
	assert.Contains(t, err.Error(), "001-120788-0001A")
}

func TestCreateMinorPatientWithNewGuardian(t *testing.T) {
	db := newTestDB(t)
	f := seedFixtures(t, db)
	svc := newPatientService(db)

	input := PatientInput{
		FirstName: "Pedro", LastName: "Gomez",
		BirthDate: "2015-02-20", Gender: "Male", Nationality: "Nicaraguan",
		Address: AddressInput{State: "Managua", City: "Managua", Neighborhood: "Altamira", Street: "Main St"},
		Minor: &MinorInput{
			BirthCertificate: "BC-445",
			SchoolGrade:      "4th",
			GuardianMode:     GuardianModeNew,
			NewGuardian: &NewGuardianInput{
				NationalID:      "002-050590-0002B",
				FirstName:       "Lucia", LastName: "Gomez",
				Phone:           "8888-5678",
				RelationshipID:  f.Relationship.ID,
				OccupationID:    f.Occupation.ID,
				MaritalStatusID: f.MaritalStatus.ID,
				Address:         AddressInput{State: "Managua", City: "Managua", Neighborhood: "Bello Horizonte", Street: "Second St"},
			},
		},
	}

	patient, err := svc.Create(input)
	require.NoError(t, err)

	var profile models.MinorProfile
	require.NoError(t, db.First(&profile, "patient_id = ?", patient.ID).Error)
	assert.Equal(t, "BC-445", profile.BirthCertificate)

	// The guardian was created with their own address in the same
	// transaction.
	var guardian models.Guardian
	require.NoError(t, db.First(&guardian, "id = ?", profile.GuardianID).Error)
	assert.Equal(t, "Lucia", guardian.FirstName)
	assert.NotEqual(t, patient.AddressID, guardian.AddressID)
}

func TestCreateMinorPatientWithExistingGuardian(t *testing.T) {
	db := newTestDB(t)
	f := seedFixtures(t, db)
	svc := newPatientService(db)

	guardian := models.Guardian{
		NationalID: "003-010180-0003C", FirstName: "Rosa", LastName: "Perez",
		RelationshipID: f.Relationship.ID, OccupationID: f.Occupation.ID,
		MaritalStatusID: f.MaritalStatus.ID, AddressID: f.Address.ID,
	}
	require.NoError(t, db.Create(&guardian).Error)

	input := PatientInput{
		FirstName: "Sofia", LastName: "Perez",
		BirthDate: "2012-09-09",
		Address:   AddressInput{State: "Managua", City: "Managua", Neighborhood: "Altamira", Street: "Main St"},
		Minor: &MinorInput{
			GuardianMode: GuardianModeExisting,
			GuardianID:   guardian.ID,
		},
	}

	patient, err := svc.Create(input)
	require.NoError(t, err)

	var profile models.MinorProfile
	require.NoError(t, db.First(&profile, "patient_id = ?", patient.ID).Error)
	assert.Equal(t, guardian.ID, profile.GuardianID)
}

func TestCreateMinorPatientRequiresGuardian(t *testing.T) {
	db := newTestDB(t)
	seedFixtures(t, db)
	svc := newPatientService(db)

	input := PatientInput{
		FirstName: "Sofia", LastName: "Perez",
		BirthDate: "2012-09-09",
		Address:   AddressInput{State: "Managua", City: "Managua", Neighborhood: "Altamira", Street: "Main St"},
		Minor:     &MinorInput{GuardianMode: GuardianModeExisting},
	}
	_, err := svc.Create(input)
	require.Error(t, err)
	assert.Equal(t, KindInvalidInput, kindOf(t, err))

	// The rejected creation left no patient behind.
	var count int64
	require.NoError(t, db.Model(&models.Patient{}).Where("first_name = ?", "Sofia").Count(&count).Error)
	assert.Zero(t, count)
}

func TestUpdatePatientStatusAndAddress(t *testing.T) {
	db := newTestDB(t)
	f := seedFixtures(t, db)
	svc := newPatientService(db)

	patient, err := svc.Create(adultPatientInput(f, "001-120788-0001A"))
	require.NoError(t, err)

	input := adultPatientInput(f, "001-120788-0001A")
	input.Status = models.ActivityInactive
	input.Address.Neighborhood = "Los Robles"
	_, err = svc.Update(patient.ID, input)
	require.NoError(t, err)

	var reloaded models.Patient
	require.NoError(t, db.First(&reloaded, "id = ?", patient.ID).Error)
	assert.Equal(t, models.ActivityInactive, reloaded.Status)

	var address models.Address
	require.NoError(t, db.First(&address, "id = ?", reloaded.AddressID).Error)
	assert.Equal(t, "Los Robles", address.Neighborhood)
}

func TestUpdatePatientKeepsNationalIDWhenUnchanged(t *testing.T) {
	db := newTestDB(t)
	f := seedFixtures(t, db)
	svc := newPatientService(db)

	patient, err := svc.Create(adultPatientInput(f, "001-120788-0001A"))
	require.NoError(t, err)

	// Re-saving the same cedula must not collide with itself.
	_, err = svc.Update(patient.ID, adultPatientInput(f, "001-120788-0001A"))
	require.NoError(t, err)

	// But taking another patient's cedula must.
	_, err = svc.Create(adultPatientInput(f, "004-010190-0004D"))
	require.NoError(t, err)
	_, err = svc.Update(patient.ID, adultPatientInput(f, "004-010190-0004D"))
	require.Error(t, err)
	assert.Equal(t, KindConflict, kindOf(t, err))
}

func TestUpdatePatientNotFound(t *testing.T) {
	db := newTestDB(t)
	f := seedFixtures(t, db)
	svc := newPatientService(db)

	_, err := svc.Update("missing", adultPatientInput(f, "001-120788-0001A"))
	require.Error(t, err)
	assert.Equal(t, KindNotFound, kindOf(t, err))
}

func TestRecordAttachesVisitDates(t *testing.T) {
	db := newTestDB(t)
	f := seedFixtures(t, db)
	svc := newPatientService(db)

	appointment := scheduleAppointment(t, db, f, "2024-03-01", "09:00")
	_, err := newSessionService(db).Close(closureInput(f, appointment.ID))
	require.NoError(t, err)

	record, err := svc.Record(f.Patient.ID)
	require.NoError(t, err)
	require.Len(t, record.Appointments, 1)
	require.Len(t, record.Sessions, 1)
	require.NotNil(t, record.Sessions[0].VisitDate)
	assert.Equal(t, "2024-03-01", record.Sessions[0].VisitDate.Format("2006-01-02"))
	assert.Equal(t, 9, record.Sessions[0].VisitDate.Hour())
}

func TestHistoryLeavesUnmatchedSessionsUndated(t *testing.T) {
	db := newTestDB(t)
	f := seedFixtures(t, db)
	svc := newPatientService(db)

	// A session whose appointment was never completed has no visit
	// date to recover.
	session := models.Session{
		PatientID: f.Patient.ID, ClinicianID: f.Clinician.ID,
		StartTime: "09:00:00", EndTime: "10:00:00",
		Observations: "standalone note", Diagnosis: "n/a",
	}
	caseFile := models.CaseFile{PatientID: f.Patient.ID, FileNumber: "EXP-1"}
	require.NoError(t, db.Create(&caseFile).Error)
	session.CaseFileID = caseFile.ID
	require.NoError(t, db.Create(&session).Error)

	history, err := svc.History(f.Patient.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Nil(t, history[0].VisitDate)
}
