package appointments

import (
	"context"
	"database/sql"
	"telehealth-service/internal/app/contracts"
	"telehealth-service/internal/app/models"
	"telehealth-service/internal/pkg/exceptions"
	"telehealth-service/internal/pkg/queries"
	"time"

	"go.uber.org/zap"
)

type appointmentPostgresRepository struct {
	DB  *sql.DB
	Log *zap.Logger
}

func NewAppointmentPostgresRepository(db *sql.DB, logger *zap.Logger) contracts.AppointmentRepository {
	return &appointmentPostgresRepository{
		DB:  db,
		Log: logger,
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func appointmentDest(a *models.Appointment, meetingID, meetingURL *sql.NullString, endTime, reminderSentAt *sql.NullTime) []interface{} {
	return []interface{}{
		&a.ID,
		&a.PatientID,
		&a.DoctorID,
		&a.Date,
		&a.Time,
		&a.Type,
		&a.Status,
		&a.Notes,
		meetingID,
		meetingURL,
		endTime,
		reminderSentAt,
		&a.CreatedAt,
		&a.UpdatedAt,
	}
}

func applyNullable(a *models.Appointment, meetingID, meetingURL sql.NullString, endTime, reminderSentAt sql.NullTime) {
	if meetingID.Valid {
		a.MeetingID = &meetingID.String
	}
	if meetingURL.Valid {
		a.MeetingURL = &meetingURL.String
	}
	if endTime.Valid {
		a.EndTime = &endTime.Time
	}
	if reminderSentAt.Valid {
		a.ReminderSentAt = &reminderSentAt.Time
	}
}

func scanAppointment(row rowScanner) (*models.Appointment, error) {
	var (
		a                   models.Appointment
		meetingID, meetURL  sql.NullString
		endTime, reminderAt sql.NullTime
	)
	if err := row.Scan(appointmentDest(&a, &meetingID, &meetURL, &endTime, &reminderAt)...); err != nil {
		return nil, err
	}
	applyNullable(&a, meetingID, meetURL, endTime, reminderAt)
	return &a, nil
}

func scanAppointmentDetail(row rowScanner) (*models.AppointmentDetail, error) {
	var (
		d                   models.AppointmentDetail
		meetingID, meetURL  sql.NullString
		endTime, reminderAt sql.NullTime
	)
	dest := appointmentDest(&d.Appointment, &meetingID, &meetURL, &endTime, &reminderAt)
	dest = append(dest,
		&d.PatientUserID,
		&d.PatientName,
		&d.PatientEmail,
		&d.DoctorUserID,
		&d.DoctorName,
		&d.DoctorEmail,
	)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	applyNullable(&d.Appointment, meetingID, meetURL, endTime, reminderAt)
	return &d, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func (r *appointmentPostgresRepository) Create(ctx context.Context, appointment *models.Appointment) error {
	err := r.DB.QueryRowContext(ctx, queries.InsertAppointment,
		appointment.PatientID,
		appointment.DoctorID,
		appointment.Date,
		appointment.Time,
		appointment.Type,
		appointment.Status,
		appointment.Notes,
	).Scan(&appointment.ID, &appointment.CreatedAt, &appointment.UpdatedAt)
	if err != nil {
		return exceptions.ErrPostgresDBInsertData(err)
	}
	return nil
}

func (r *appointmentPostgresRepository) FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	appointment, err := scanAppointment(r.DB.QueryRowContext(ctx, queries.GetAppointmentByID, appointmentID))
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return appointment, nil
}

func (r *appointmentPostgresRepository) FindDetailByID(ctx context.Context, appointmentID string) (*models.AppointmentDetail, error) {
	detail, err := scanAppointmentDetail(r.DB.QueryRowContext(ctx, queries.GetAppointmentDetailByID, appointmentID))
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return detail, nil
}

func (r *appointmentPostgresRepository) UpdateIfStatus(ctx context.Context, appointment *models.Appointment, expectedStatus string) (bool, error) {
	result, err := r.DB.ExecContext(ctx, queries.UpdateAppointmentIfStatus,
		appointment.Status,
		appointment.Notes,
		appointment.Date,
		appointment.Time,
		nullTime(appointment.EndTime),
		appointment.ID,
		expectedStatus,
	)
	if err != nil {
		return false, exceptions.ErrPostgresDBUpdateData(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, exceptions.ErrPostgresDBUpdateData(err)
	}
	return affected == 1, nil
}

func (r *appointmentPostgresRepository) SetMeetingIfAbsent(ctx context.Context, appointmentID, meetingID, meetingURL string) (bool, error) {
	result, err := r.DB.ExecContext(ctx, queries.SetAppointmentMeetingIfAbsent, meetingID, meetingURL, appointmentID)
	if err != nil {
		return false, exceptions.ErrPostgresDBUpdateData(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, exceptions.ErrPostgresDBUpdateData(err)
	}
	return affected == 1, nil
}

func (r *appointmentPostgresRepository) List(ctx context.Context, filter models.AppointmentFilter) ([]models.AppointmentDetail, int, error) {
	var total int
	err := r.DB.QueryRowContext(ctx, queries.CountAppointments, filter.PatientID, filter.DoctorID, filter.Status).Scan(&total)
	if err != nil {
		return nil, 0, exceptions.ErrPostgresDBFindData(err)
	}

	rows, err := r.DB.QueryContext(ctx, queries.ListAppointmentDetails,
		filter.PatientID,
		filter.DoctorID,
		filter.Status,
		filter.Limit,
		filter.Offset,
	)
	if err != nil {
		return nil, 0, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	items, err := collectDetails(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *appointmentPostgresRepository) FindDueForReminder(ctx context.Context, from, to time.Time, limit int) ([]models.AppointmentDetail, error) {
	rows, err := r.DB.QueryContext(ctx, queries.ListAppointmentsDueForReminder, from, to, limit)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()
	return collectDetails(rows)
}

func collectDetails(rows *sql.Rows) ([]models.AppointmentDetail, error) {
	items := make([]models.AppointmentDetail, 0)
	for rows.Next() {
		detail, err := scanAppointmentDetail(rows)
		if err != nil {
			return nil, exceptions.ErrPostgresDBFindData(err)
		}
		items = append(items, *detail)
	}
	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBIterateDataset(err)
	}
	return items, nil
}

func (r *appointmentPostgresRepository) MarkReminderSent(ctx context.Context, appointmentID string, sentAt time.Time) (bool, error) {
	result, err := r.DB.ExecContext(ctx, queries.MarkAppointmentReminderSent, sentAt, appointmentID)
	if err != nil {
		return false, exceptions.ErrPostgresDBUpdateData(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, exceptions.ErrPostgresDBUpdateData(err)
	}
	return affected == 1, nil
}

func (r *appointmentPostgresRepository) ExistsBetween(ctx context.Context, patientID, doctorID string) (bool, error) {
	var exists bool
	if err := r.DB.QueryRowContext(ctx, queries.ExistsAppointmentBetween, patientID, doctorID).Scan(&exists); err != nil {
		return false, exceptions.ErrPostgresDBFindData(err)
	}
	return exists, nil
}

func (r *appointmentPostgresRepository) LatestCompletedEndTime(ctx context.Context, patientID, doctorID string) (*time.Time, error) {
	var endTime sql.NullTime
	if err := r.DB.QueryRowContext(ctx, queries.GetLatestCompletedEndTime, patientID, doctorID).Scan(&endTime); err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	if !endTime.Valid {
		return nil, nil
	}
	return &endTime.Time, nil
}
