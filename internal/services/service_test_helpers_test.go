package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/auzzsichauffeurau-gif/auzzichauffeur-sub000/pkg/mail"
)

type fakeMailer struct {
	mu   sync.Mutex
	sent []mail.Message
	err  error
}

func (m *fakeMailer) Send(_ context.Context, msg mail.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *fakeMailer) Sent() []mail.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]mail.Message, len(m.sent))
	copy(out, m.sent)
	return out
}

func newBookingServiceForTest(t *testing.T, db *gorm.DB, mailer mail.Mailer) *BookingService {
	t.Helper()

	invoices, err := NewInvoiceService(db)
	require.NoError(t, err)
	customers, err := NewCustomerService(db)
	require.NoError(t, err)
	followUps, err := NewFollowUpService(db)
	require.NoError(t, err)
	notifications, err := NewNotificationService(db, nil)
	require.NoError(t, err)

	svc, err := NewBookingService(db, invoices, customers, followUps, notifications, mailer, BookingMailSettings{})
	require.NoError(t, err)
	return svc
}
