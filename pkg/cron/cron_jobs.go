package cron

import (
	"context"
	"database/sql"
	"time"

	"creditdesk/internal/models"
	"creditdesk/pkg/utils"

	"github.com/robfig/cron/v3"
)

func StartCronJob(db *sql.DB) *cron.Cron {
	c := cron.New()

	// Runs daily at 8am — remind admins of stale pending requests
	_, err := c.AddFunc("0 8 * * *", func() {
		err := RemindAdminsOfStalePending(db)
		if err != nil {
			utils.Logger.Errorf("Cron job failed to send pending reminders: %v", err)
		}
	})
	if err != nil {
		utils.Logger.Errorf("Failed to schedule pending reminder job: %v", err)
	}

	c.Start()
	utils.Logger.Info("Cron jobs started (stale pending reminders daily at 8am)")
	return c
}

// RemindAdminsOfStalePending emails every admin when pending transactions
// have been waiting longer than 48 hours.
func RemindAdminsOfStalePending(db *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cutoff := time.Now().UTC().Add(-48 * time.Hour)

	var count int
	var oldestRaw sql.NullTime
	err := db.QueryRowContext(ctx, `
		SELECT COUNT(*), MIN(created_at)
		FROM transactions
		WHERE status = ? AND created_at < ?
	`, models.StatusPending, cutoff).Scan(&count, &oldestRaw)
	if err != nil {
		return err
	}

	if count == 0 {
		return nil
	}

	oldest := time.Now().UTC()
	if oldestRaw.Valid {
		oldest = oldestRaw.Time
	}

	rows, err := db.QueryContext(ctx, `SELECT email FROM users WHERE role = ?`, models.RoleAdmin)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			utils.Logger.Errorf("Failed to scan admin row: %v", err)
			continue
		}

		go func(email string) {
			if err := utils.SendPendingReminderEmail(email, count, oldest); err != nil {
				utils.Logger.Errorf("Failed to send pending reminder to %s: %v", email, err)
			}
		}(email)
	}

	return rows.Err()
}
