package services

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"clinic-app-server/internal/models"
)

// DashboardService computes the read-only aggregates behind the
// dashboard, the combined history and the chart data.
type DashboardService struct {
	db  *gorm.DB
	loc *time.Location
}

// NewDashboardService creates a DashboardService. loc defines what
// "today" means for the daily appointment count.
func NewDashboardService(db *gorm.DB, loc *time.Location) *DashboardService {
	return &DashboardService{db: db, loc: loc}
}

// Stats are the dashboard KPI figures.
type Stats struct {
	ActivePatients    int64           `json:"activePatients"`
	ActiveClinicians  int64           `json:"activeClinicians"`
	AppointmentsToday int64           `json:"appointmentsToday"`
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
}

// Stats computes the KPI counters.
func (s *DashboardService) Stats() (*Stats, error) {
	var stats Stats

	err := s.db.Model(&models.Patient{}).
		Where("status = ?", models.ActivityActive).
		Count(&stats.ActivePatients).Error
	if err != nil {
		return nil, ErrInternal(err)
	}

	err = s.db.Model(&models.Clinician{}).
		Where("status = ?", models.ActivityActive).
		Count(&stats.ActiveClinicians).Error
	if err != nil {
		return nil, ErrInternal(err)
	}

	today := DateOnly(time.Now().In(s.loc))
	err = s.db.Model(&models.Appointment{}).
		Where("status = ? AND date = ?", models.StatusScheduled, today).
		Count(&stats.AppointmentsToday).Error
	if err != nil {
		return nil, ErrInternal(err)
	}

	var total decimal.NullDecimal
	row := s.db.Model(&models.Invoice{}).Select("SUM(total)").Row()
	if err := row.Scan(&total); err != nil {
		return nil, ErrInternal(err)
	}
	stats.TotalRevenue = decimal.Zero
	if total.Valid {
		stats.TotalRevenue = total.Decimal
	}
	return &stats, nil
}

// HistoryEntry is one session joined to the completed appointment it
// came from.
type HistoryEntry struct {
	models.Session
	VisitDate *time.Time `json:"visitDate"`
	Reason    string     `json:"reason"`
	VisitType string     `json:"visitType"`
}

// History returns all sessions joined to completed appointments by
// (patient, clinician) pairing, newest first.
func (s *DashboardService) History() ([]HistoryEntry, error) {
	var sessions []models.Session
	err := s.db.
		Preload("Patient").Preload("Clinician").Preload("CaseFile").
		Order("created_at desc").
		Find(&sessions).Error
	if err != nil {
		return nil, ErrInternal(err)
	}

	var appointments []models.Appointment
	err = s.db.Where("status = ?", models.StatusCompleted).
		Preload("AppointmentType").
		Order("date desc, hour desc, minute desc").
		Find(&appointments).Error
	if err != nil {
		return nil, ErrInternal(err)
	}

	// Bucket completed appointments per (patient, clinician) pair and
	// consume them in order as sessions claim them.
	type pairKey struct{ patientID, clinicianID string }
	buckets := map[pairKey][]models.Appointment{}
	for _, appt := range appointments {
		key := pairKey{appt.PatientID, appt.ClinicianID}
		buckets[key] = append(buckets[key], appt)
	}

	entries := make([]HistoryEntry, 0, len(sessions))
	for _, session := range sessions {
		entry := HistoryEntry{Session: session, Reason: "no linked appointment", VisitType: "N/A"}
		key := pairKey{session.PatientID, session.ClinicianID}
		if bucket := buckets[key]; len(bucket) > 0 {
			appt := bucket[0]
			buckets[key] = bucket[1:]
			visit := CombineDateTime(appt.Date, appt.Hour, appt.Minute)
			entry.VisitDate = &visit
			entry.Reason = appt.Reason
			if appt.AppointmentType.Name != "" {
				entry.VisitType = appt.AppointmentType.Name
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// RevenuePoint is one day's invoiced amount.
type RevenuePoint struct {
	Date   string          `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

// ChartSlice is one labelled value of a distribution chart.
type ChartSlice struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// Charts is the chart-data payload.
type Charts struct {
	Revenue []RevenuePoint `json:"revenue"`
	Genders []ChartSlice   `json:"genders"`
	Ages    []ChartSlice   `json:"ages"`
}

// Charts aggregates revenue by invoice date over [from, to] (default:
// the last month) plus gender and age-band distributions of active
// patients.
func (s *DashboardService) Charts(fromStr, toStr string) (*Charts, error) {
	now := time.Now().In(s.loc)
	to := DateOnly(now)
	from := DateOnly(now.AddDate(0, -1, 0))
	if toStr != "" {
		parsed, err := ParseDate(toStr)
		if err != nil {
			return nil, err
		}
		to = parsed
	}
	if fromStr != "" {
		parsed, err := ParseDate(fromStr)
		if err != nil {
			return nil, err
		}
		from = parsed
	}

	var invoices []models.Invoice
	err := s.db.Where("invoice_date BETWEEN ? AND ?", from, to).Find(&invoices).Error
	if err != nil {
		return nil, ErrInternal(err)
	}

	byDay := map[string]decimal.Decimal{}
	for _, invoice := range invoices {
		day := invoice.InvoiceDate.Format("2006-01-02")
		byDay[day] = byDay[day].Add(invoice.Total)
	}
	revenue := make([]RevenuePoint, 0, len(byDay))
	for day, amount := range byDay {
		revenue = append(revenue, RevenuePoint{Date: day, Amount: amount})
	}
	sort.Slice(revenue, func(i, j int) bool { return revenue[i].Date < revenue[j].Date })

	var patients []models.Patient
	err = s.db.Select("gender", "birth_date").
		Where("status = ?", models.ActivityActive).
		Find(&patients).Error
	if err != nil {
		return nil, ErrInternal(err)
	}

	genders := map[string]int{}
	ages := map[string]int{}
	for _, patient := range patients {
		genders[patient.Gender]++
		age := now.Year() - patient.BirthDate.Year()
		switch {
		case age < 12:
			ages["Children (0-11)"]++
		case age < 18:
			ages["Adolescents (12-17)"]++
		case age < 60:
			ages["Adults (18-59)"]++
		default:
			ages["Seniors (60+)"]++
		}
	}

	charts := &Charts{Revenue: revenue}
	for _, name := range []string{"Female", "Male"} {
		if genders[name] > 0 {
			charts.Genders = append(charts.Genders, ChartSlice{Name: name, Value: genders[name]})
		}
	}
	for _, band := range []string{"Children (0-11)", "Adolescents (12-17)", "Adults (18-59)", "Seniors (60+)"} {
		if ages[band] > 0 {
			charts.Ages = append(charts.Ages, ChartSlice{Name: band, Value: ages[band]})
		}
	}
	return charts, nil
}
