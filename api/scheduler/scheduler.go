package scheduler

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/pars-health/triage-api/databases"
	"github.com/pars-health/triage-api/models"
	"github.com/pars-health/triage-api/triage"
)

// Scheduler handles periodic background jobs for the triage dashboard
type Scheduler struct {
	cron *cron.Cron
	PDB  databases.PatientDatabase
	ADB  databases.AssignmentDatabase
}

// NewScheduler creates a new scheduler instance
func NewScheduler(pDB databases.PatientDatabase, aDB databases.AssignmentDatabase) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithLocation(time.UTC)),
		PDB:  pDB,
		ADB:  aDB,
	}
}

// Start begins the scheduler with all registered jobs
func (s *Scheduler) Start() {
	// daily department-load summary, 07:00 UTC
	if _, err := s.cron.AddFunc("0 7 * * *", s.RunDailySummary); err != nil {
		zap.S().With(err).Error("failed to register daily summary job")
		return
	}
	s.cron.Start()
	zap.S().Info("triage scheduler started")
}

// Stop halts all scheduled jobs
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// RunDailySummary aggregates the current patient and assignment data and
// emails the department-load summary to the configured recipient.
func (s *Scheduler) RunDailySummary() {
	ctx := context.Background()

	patients, err := s.PDB.Find(ctx, bson.D{})
	if err != nil {
		zap.S().With(err).Error("daily summary: failed to fetch patients")
		return
	}
	assignments, err := s.ADB.Find(ctx, bson.D{})
	if err != nil {
		zap.S().With(err).Error("daily summary: failed to fetch assignments")
		return
	}

	stats := triage.Aggregate(patients, assignments)
	body := SummaryBody(stats)

	if err := s.sendSummaryEmail(body); err != nil {
		zap.S().With(err).Error("daily summary: failed to send email")
		return
	}
	zap.S().Infow("daily summary sent",
		"patients", stats.KPI.TotalPatients,
		"critical", stats.KPI.CriticalCases,
	)
}

// SummaryBody renders the stats into the plain-text email body
func SummaryBody(stats models.Stats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Daily triage summary\n\n")
	fmt.Fprintf(&b, "Total patients: %v\n", stats.KPI.TotalPatients)
	fmt.Fprintf(&b, "Critical cases: %v\n", stats.KPI.CriticalCases)
	fmt.Fprintf(&b, "Active departments: %v\n\n", stats.KPI.ActiveDepartments)
	fmt.Fprintf(&b, "Department load:\n")
	for _, dept := range stats.Departments {
		if dept.Total == 0 {
			continue
		}
		fmt.Fprintf(&b, "  %v: %v total (%v high, %v medium, %v low)\n",
			dept.Name, dept.Total, dept.High, dept.Medium, dept.Low)
	}
	return b.String()
}

func (s *Scheduler) sendSummaryEmail(body string) error {
	apiKey := os.Getenv("SENDGRID_API_KEY")
	to := os.Getenv("SUMMARY_EMAIL_TO")
	if apiKey == "" || to == "" {
		return fmt.Errorf("sendgrid not configured")
	}

	from := mail.NewEmail("PARS Triage", os.Getenv("SUMMARY_EMAIL_FROM"))
	message := mail.NewSingleEmail(from, "Daily triage summary", mail.NewEmail("", to), body, "")
	client := sendgrid.NewSendClient(apiKey)
	resp, err := client.Send(message)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid returned status %v", resp.StatusCode)
	}
	return nil
}
