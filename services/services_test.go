package services

import (
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"salon-agenda-backend/models"
)

// newTestDB opens a uniquely named in-memory sqlite database so tests stay
// isolated while gorm's pool shares the same underlying store.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.StaffMember{},
		&models.Service{},
		&models.Cabin{},
		&models.Client{},
		&models.Appointment{},
		&models.Product{},
		&models.AppointmentProduct{},
		&models.MessageLog{},
	))
	return db
}

func seedService(t *testing.T, db *gorm.DB, durationMin int, price int64) models.Service {
	t.Helper()
	svc := models.Service{
		Name:        "Corte de pelo",
		DurationMin: durationMin,
		Price:       decimal.NewFromInt(price),
	}
	require.NoError(t, db.Create(&svc).Error)
	return svc
}

func seedStaff(t *testing.T, db *gorm.DB, name string) models.StaffMember {
	t.Helper()
	staff := models.StaffMember{
		Name:     name,
		Email:    name + "@salon.test",
		Password: "secret-password",
		Role:     models.RoleStaff,
	}
	require.NoError(t, db.Create(&staff).Error)
	return staff
}

func seedCabin(t *testing.T, db *gorm.DB, name string) models.Cabin {
	t.Helper()
	cabin := models.Cabin{Name: name}
	require.NoError(t, db.Create(&cabin).Error)
	return cabin
}

func seedClient(t *testing.T, db *gorm.DB, name, phone string) models.Client {
	t.Helper()
	client := models.Client{Name: name, Phone: phone}
	require.NoError(t, db.Create(&client).Error)
	return client
}

type sentMessage struct {
	Channel string
	To      string
	Body    string
}

// fakeMessenger records sends and can fail per recipient.
type fakeMessenger struct {
	mu      sync.Mutex
	sent    []sentMessage
	failFor map[string]error
}

func newFakeMessenger() *fakeMessenger {
	return &fakeMessenger{failFor: map[string]error{}}
}

func (m *fakeMessenger) Send(channel, to, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.failFor[to]; ok {
		return err
	}
	m.sent = append(m.sent, sentMessage{Channel: channel, To: to, Body: body})
	return nil
}

func (m *fakeMessenger) sentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}
