package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/rally/internal/rally/domain"
)

type smsMessagesRepo struct {
	q dbtx
}

func (r *smsMessagesRepo) CreateSMSMessage(ctx context.Context, m domain.SMSMessage) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO sms_messages (id, signup_id, phone, body, kind, provider_id, status, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, mapStringNull(m.SignupID), m.Phone, m.Body, string(m.Kind),
		m.ProviderID, string(m.Status), m.Error, toMillis(m.CreatedAt),
	)
	return mapConstraint(err)
}

func (r *smsMessagesRepo) ListByPhone(ctx context.Context, phone string) ([]domain.SMSMessage, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT id, signup_id, phone, body, kind, provider_id, status, error, created_at
		  FROM sms_messages
		 WHERE phone = ?
		 ORDER BY created_at, id`,
		phone,
	)
	return collect(rows, err, func(row scanner) (domain.SMSMessage, error) {
		var (
			m            domain.SMSMessage
			signupID     sql.NullString
			kind, status string
			createdAt    int64
		)
		err := row.Scan(&m.ID, &signupID, &m.Phone, &m.Body, &kind, &m.ProviderID, &status, &m.Error, &createdAt)
		if err != nil {
			return domain.SMSMessage{}, err
		}
		m.SignupID = mapNullString(signupID)
		m.Kind = domain.SMSKind(kind)
		m.Status = domain.SMSStatus(status)
		m.CreatedAt = fromMillis(createdAt)
		return m, nil
	})
}
