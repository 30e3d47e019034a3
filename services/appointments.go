package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"chatman_legal_go/config"
	"chatman_legal_go/models"
)

// ScheduleAppointment books a meeting and sends the client a confirmation
// email asynchronously.
func ScheduleAppointment(db *gorm.DB, cfg *config.Config, appt *models.Appointment) error {
	if appt.ClientID == "" || appt.AttorneyID == "" {
		return fmt.Errorf("client and attorney are required")
	}
	if appt.ScheduledAt.IsZero() {
		return fmt.Errorf("scheduled time is required")
	}
	if appt.DurationMinutes <= 0 {
		appt.DurationMinutes = 30
	}
	appt.Status = models.AppointmentStatusScheduled
	appt.Title = SanitizeText(appt.Title)

	if err := db.Create(appt).Error; err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}

	if cfg != nil {
		var client, attorney models.User
		if db.First(&client, "id = ?", appt.ClientID).Error == nil &&
			db.First(&attorney, "id = ?", appt.AttorneyID).Error == nil &&
			client.Email != "" {
			when := appt.ScheduledAt.Format("Monday, January 2 2006 at 3:04 PM")
			SendEmailAsync(cfg, BuildAppointmentConfirmationEmail(
				cfg, client.Email, client.Name, attorney.Name, when, appt.Location))
		}
	}

	return nil
}

// AppointmentFilter narrows ListAppointments. Zero values mean no constraint.
type AppointmentFilter struct {
	ClientID   string
	AttorneyID string
	Status     string
	From       *time.Time
	To         *time.Time
}

// ListAppointments returns appointments soonest first.
func ListAppointments(db *gorm.DB, filter AppointmentFilter) ([]models.Appointment, error) {
	query := db.Model(&models.Appointment{}).
		Preload("Client").
		Preload("Attorney").
		Order("scheduled_at ASC")
	if filter.ClientID != "" {
		query = query.Where("client_id = ?", filter.ClientID)
	}
	if filter.AttorneyID != "" {
		query = query.Where("attorney_id = ?", filter.AttorneyID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.From != nil {
		query = query.Where("scheduled_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("scheduled_at < ?", *filter.To)
	}

	var appts []models.Appointment
	if err := query.Find(&appts).Error; err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appts, nil
}

// UpdateAppointmentStatus moves an appointment to completed or cancelled.
func UpdateAppointmentStatus(db *gorm.DB, id, status string) (*models.Appointment, error) {
	if !models.IsValidAppointmentStatus(status) {
		return nil, fmt.Errorf("invalid appointment status: %s", status)
	}

	var appt models.Appointment
	if err := db.First(&appt, "id = ?", id).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&appt).Update("status", status).Error; err != nil {
		return nil, fmt.Errorf("failed to update appointment: %w", err)
	}
	appt.Status = status
	return &appt, nil
}

// UpcomingAppointments returns a client's future scheduled appointments.
func UpcomingAppointments(db *gorm.DB, clientID string, limit int) ([]models.Appointment, error) {
	var appts []models.Appointment
	query := db.Preload("Attorney").
		Where("client_id = ? AND status = ? AND scheduled_at > ?",
			clientID, models.AppointmentStatusScheduled, time.Now()).
		Order("scheduled_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&appts).Error; err != nil {
		return nil, fmt.Errorf("failed to list upcoming appointments: %w", err)
	}
	return appts, nil
}
