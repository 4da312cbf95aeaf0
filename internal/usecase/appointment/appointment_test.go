package appointment

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/braids-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/braids-scheduler/internal/httperr"
	"github.com/BruksfildServices01/braids-scheduler/internal/infra/storage"
	"github.com/BruksfildServices01/braids-scheduler/internal/models"
	"github.com/BruksfildServices01/braids-scheduler/internal/slotlock"
	"github.com/BruksfildServices01/braids-scheduler/internal/state"
	"github.com/BruksfildServices01/braids-scheduler/internal/timezone"
)

const (
	today    = "2026-10-15"
	tomorrow = "2026-10-16"
)

// 10:30 in São Paulo on 2026-10-15.
var clock = timezone.FixedClock{
	At: time.Date(2026, 10, 15, 10, 30, 0, 0, timezone.Location(timezone.DefaultTimezone)),
}

type fixture struct {
	store    *state.Store
	schedule Schedule
}

func newFixture(t *testing.T, seed state.State) fixture {
	t.Helper()
	return newFixtureOn(t, storage.NewMemory(), seed)
}

func newFixtureOn(t *testing.T, st storage.Storage, seed state.State) fixture {
	t.Helper()
	store := state.NewStore(st, "patricia_")
	require.NoError(t, store.Hydrate(context.Background(), seed))

	return fixture{
		store: store,
		schedule: Schedule{
			Repo:   store,
			Clock:  clock,
			Slots:  domain.DefaultSlots,
			Locker: slotlock.NewLocal(),
		},
	}
}

func book(f fixture, name, email, date, hm string) (*OnlineBooking, error) {
	return NewCreateOnlineBooking(f.schedule).Execute(context.Background(), CreateOnlineBookingInput{
		Name:  name,
		Email: email,
		Phone: "21988887777",
		Date:  date,
		Time:  hm,
	})
}

// ======================================================
// AVAILABILITY
// ======================================================

func TestGetAvailability(t *testing.T) {
	f := newFixture(t, state.Empty())
	uc := NewGetAvailability(f.schedule)
	ctx := context.Background()

	out, err := uc.Execute(ctx, domain.AvailabilityInput{Date: today})
	require.NoError(t, err)
	assert.Equal(t, []string{"13:00", "14:00"}, out.Slots)
	assert.Equal(t, today, out.Today)

	out, err = uc.Execute(ctx, domain.AvailabilityInput{})
	require.NoError(t, err)
	assert.Equal(t, today, out.Date)

	_, err = book(f, "Ana", "ana@x.com", tomorrow, "13:00")
	require.NoError(t, err)

	out, err = uc.Execute(ctx, domain.AvailabilityInput{Date: tomorrow})
	require.NoError(t, err)
	assert.Equal(t, []string{"08:00", "14:00"}, out.Slots)

	_, err = uc.Execute(ctx, domain.AvailabilityInput{Date: "2026-10-14"})
	assert.True(t, httperr.IsBusiness(err, "date_in_past"))

	_, err = uc.Execute(ctx, domain.AvailabilityInput{Date: "15/10/2026"})
	assert.True(t, httperr.IsBusiness(err, "invalid_date"))
}

func TestGetAvailability_FullDayIsEmptyNotNil(t *testing.T) {
	seed := state.Empty()
	for _, hm := range domain.DefaultSlots {
		seed.Appointments = append(seed.Appointments, models.Appointment{
			ID: "a" + hm, Date: tomorrow, Time: hm, Status: models.AppointmentScheduled,
		})
	}
	f := newFixture(t, seed)

	out, err := NewGetAvailability(f.schedule).Execute(context.Background(), domain.AvailabilityInput{Date: tomorrow})
	require.NoError(t, err)
	assert.NotNil(t, out.Slots)
	assert.Empty(t, out.Slots)
}

// ======================================================
// ONLINE BOOKING
// ======================================================

func TestCreateOnlineBooking_NewClient(t *testing.T) {
	f := newFixture(t, state.Empty())

	res, err := book(f, "Carla Souza", "carla@x.com", tomorrow, "08:00")
	require.NoError(t, err)
	assert.True(t, res.NewClient)

	snap := f.store.Snapshot()
	require.Len(t, snap.Clients, 1)
	c := snap.Clients[0]
	assert.Equal(t, "Carla Souza", c.Name)
	assert.Equal(t, models.ClientPending, c.Status)
	assert.Equal(t, models.StageFirstContact, c.TreatmentStage)
	assert.Equal(t, models.PlaceholderAddress, c.Address)
	assert.Equal(t, "21988887777", c.Phone)

	require.Len(t, snap.Appointments, 1)
	ap := snap.Appointments[0]
	assert.Equal(t, c.ID, ap.ClientID)
	assert.Equal(t, models.ServiceBoxBraids, ap.Type)
	assert.Equal(t, models.AppointmentScheduled, ap.Status)
	assert.True(t, decimal.NewFromInt(180).Equal(ap.Price))
	assert.Equal(t, 240, ap.Duration)
	assert.Equal(t, ap, res.Appointment)

	require.Len(t, snap.Finances, 1)
	fin := snap.Finances[0]
	assert.Equal(t, "Agendamento Online - Carla Souza", fin.Description)
	assert.Equal(t, models.FinancialIncome, fin.Type)
	assert.Equal(t, models.CategoryService, fin.Category)
	assert.Equal(t, tomorrow, fin.Date)
	assert.True(t, ap.Price.Equal(fin.Amount))
}

func TestCreateOnlineBooking_UsesCurrentSettings(t *testing.T) {
	seed := state.Empty()
	seed.Settings = models.GlobalSettings{DefaultPrice: decimal.RequireFromString("250.50"), DefaultDuration: 300}
	f := newFixture(t, seed)

	res, err := book(f, "Ana", "ana@x.com", tomorrow, "14:00")
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("250.5").Equal(res.Appointment.Price))
	assert.Equal(t, 300, res.Appointment.Duration)
	assert.True(t, res.Appointment.Price.Equal(f.store.Snapshot().Finances[0].Amount))
}

func TestCreateOnlineBooking_SameEmailReusesClient(t *testing.T) {
	f := newFixture(t, state.Empty())

	first, err := book(f, "Ana Lima", "ana@x.com", tomorrow, "08:00")
	require.NoError(t, err)

	second, err := book(f, "Ana L.", "ANA@X.COM", tomorrow, "13:00")
	require.NoError(t, err)
	assert.False(t, second.NewClient)

	snap := f.store.Snapshot()
	require.Len(t, snap.Clients, 1)
	assert.Equal(t, "Ana Lima", snap.Clients[0].Name)
	assert.Len(t, snap.Appointments, 2)
	assert.Equal(t, first.Client.ID, second.Appointment.ClientID)

	// the income line is labelled with the name typed on this booking
	assert.Equal(t, "Agendamento Online - Ana L.", snap.Finances[1].Description)
}

func TestCreateOnlineBooking_Rejections(t *testing.T) {
	seed := state.Empty()
	seed.Appointments = []models.Appointment{
		{ID: "taken", ClientID: "x", Date: tomorrow, Time: "13:00", Status: models.AppointmentScheduled},
		{ID: "freed", ClientID: "x", Date: tomorrow, Time: "14:00", Status: models.AppointmentCancelled},
	}

	tests := []struct {
		name string
		date string
		time string
		code string
	}{
		{"occupied", tomorrow, "13:00", "time_conflict"},
		{"not in catalog", tomorrow, "09:00", "slot_unavailable"},
		{"already passed today", today, "08:00", "slot_unavailable"},
		{"past date", "2026-10-14", "13:00", "date_in_past"},
		{"bad date", "2026-13-01", "13:00", "invalid_date_or_time"},
		{"bad time", tomorrow, "1pm", "invalid_date_or_time"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, seed)

			_, err := book(f, "Ana", "ana@x.com", tt.date, tt.time)
			assert.True(t, httperr.IsBusiness(err, tt.code), "got %v", err)

			snap := f.store.Snapshot()
			assert.Empty(t, snap.Clients)
			assert.Len(t, snap.Appointments, 2)
			assert.Empty(t, snap.Finances)
		})
	}

	t.Run("cancelled slot is free again", func(t *testing.T) {
		f := newFixture(t, seed)
		_, err := book(f, "Ana", "ana@x.com", tomorrow, "14:00")
		assert.NoError(t, err)
	})

	t.Run("missing email", func(t *testing.T) {
		f := newFixture(t, seed)
		_, err := book(f, "Ana", "  ", tomorrow, "08:00")
		assert.True(t, httperr.IsBusiness(err, "invalid_client_data"))
	})
}

func TestCreateOnlineBooking_ConcurrentSameSlot(t *testing.T) {
	f := newFixture(t, state.Empty())

	const n = 10
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		ok        int
		conflicts int
	)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := book(f, "Client", "c"+string(rune('a'+i))+"@x.com", tomorrow, "13:00")

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case httperr.IsBusiness(err, "time_conflict"):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, ok)
	assert.Equal(t, n-1, conflicts)
	assert.Len(t, f.store.Snapshot().Appointments, 1)
	assert.Len(t, f.store.Snapshot().Finances, 1)
}

type brokenStorage struct {
	*storage.Memory
	broken bool
}

func (b *brokenStorage) Set(ctx context.Context, key string, value []byte) error {
	if b.broken {
		return errors.New("quota exceeded")
	}
	return b.Memory.Set(ctx, key, value)
}

func TestCreateOnlineBooking_PersistenceFailureLeavesNoTrace(t *testing.T) {
	bs := &brokenStorage{Memory: storage.NewMemory()}
	f := newFixtureOn(t, bs, state.Empty())
	bs.broken = true

	_, err := book(f, "Ana", "ana@x.com", tomorrow, "08:00")
	require.ErrorIs(t, err, state.ErrPersistence)

	snap := f.store.Snapshot()
	assert.Empty(t, snap.Clients)
	assert.Empty(t, snap.Appointments)
	assert.Empty(t, snap.Finances)

	bs.broken = false
	_, err = book(f, "Ana", "ana@x.com", tomorrow, "08:00")
	assert.NoError(t, err)
}

type busyLocker struct{}

func (busyLocker) Lock(context.Context, string) (func(), error) {
	return nil, slotlock.ErrBusy
}

func TestCreateOnlineBooking_BusySlot(t *testing.T) {
	f := newFixture(t, state.Empty())
	f.schedule.Locker = busyLocker{}

	_, err := book(f, "Ana", "ana@x.com", tomorrow, "08:00")
	assert.True(t, httperr.IsBusiness(err, "slot_busy"))
}

// ======================================================
// MANUAL BOOKING
// ======================================================

func clientSeed() state.State {
	st := state.Empty()
	st.Clients = []models.Client{{ID: "c1", Name: "Beatriz Santos", Email: "bia@x.com", Status: models.ClientActive}}
	return st
}

func TestCreateManualAppointment_TechniqueDefaults(t *testing.T) {
	f := newFixture(t, clientSeed())

	ap, err := NewCreateManualAppointment(f.schedule).Execute(context.Background(), CreateManualAppointmentInput{
		ClientID: "c1",
		Date:     "2026-10-20",
		Time:     "10:00",
		Type:     models.ServiceNago,
	})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(150).Equal(ap.Price))
	assert.Equal(t, 90, ap.Duration)
	assert.Equal(t, models.AppointmentScheduled, ap.Status)

	fin := f.store.Snapshot().Finances
	require.Len(t, fin, 1)
	assert.Equal(t, "Agendamento Manual (Nagô) - Beatriz Santos", fin[0].Description)
	assert.True(t, ap.Price.Equal(fin[0].Amount))
}

func TestCreateManualAppointment_Overrides(t *testing.T) {
	f := newFixture(t, clientSeed())
	price := decimal.RequireFromString("99.90")
	duration := 45

	ap, err := NewCreateManualAppointment(f.schedule).Execute(context.Background(), CreateManualAppointmentInput{
		ClientID: "c1",
		Date:     "2026-10-20",
		Time:     "10:00",
		Type:     models.ServicePenteado,
		Price:    &price,
		Duration: &duration,
	})
	require.NoError(t, err)
	assert.True(t, price.Equal(ap.Price))
	assert.Equal(t, 45, ap.Duration)
}

func TestCreateManualAppointment_ZeroMeansTechniqueDefault(t *testing.T) {
	f := newFixture(t, clientSeed())
	price := decimal.Zero
	duration := 0

	ap, err := NewCreateManualAppointment(f.schedule).Execute(context.Background(), CreateManualAppointmentInput{
		ClientID: "c1",
		Date:     "2026-10-20",
		Time:     "10:00",
		Type:     models.ServiceNago,
		Price:    &price,
		Duration: &duration,
	})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(150).Equal(ap.Price))
	assert.Equal(t, 90, ap.Duration)
}

func TestCreateManualAppointment_Rejections(t *testing.T) {
	negative := decimal.NewFromInt(-1)
	negativeDuration := -30

	tests := []struct {
		name string
		in   CreateManualAppointmentInput
		code string
	}{
		{"unknown client", CreateManualAppointmentInput{ClientID: "nope", Date: tomorrow, Time: "08:00", Type: models.ServiceTwist}, "client_not_found"},
		{"unknown type", CreateManualAppointmentInput{ClientID: "c1", Date: tomorrow, Time: "08:00", Type: "Dreads"}, "invalid_service_type"},
		{"occupied", CreateManualAppointmentInput{ClientID: "c1", Date: tomorrow, Time: "13:00", Type: models.ServiceTwist}, "time_conflict"},
		{"negative price", CreateManualAppointmentInput{ClientID: "c1", Date: tomorrow, Time: "08:00", Type: models.ServiceTwist, Price: &negative}, "invalid_price"},
		{"negative duration", CreateManualAppointmentInput{ClientID: "c1", Date: tomorrow, Time: "08:00", Type: models.ServiceTwist, Duration: &negativeDuration}, "invalid_duration"},
		{"bad time", CreateManualAppointmentInput{ClientID: "c1", Date: tomorrow, Time: "25:00", Type: models.ServiceTwist}, "invalid_date_or_time"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, clientSeed())
			_, err := book(f, "Ana", "ana@x.com", tomorrow, "13:00")
			require.NoError(t, err)

			_, err = NewCreateManualAppointment(f.schedule).Execute(context.Background(), tt.in)
			assert.True(t, httperr.IsBusiness(err, tt.code), "got %v", err)
			assert.Len(t, f.store.Snapshot().Appointments, 1)
		})
	}
}

// ======================================================
// COMPLETE / CANCEL
// ======================================================

func TestCompleteAppointment(t *testing.T) {
	f := newFixture(t, state.Empty())
	res, err := book(f, "Ana", "ana@x.com", tomorrow, "08:00")
	require.NoError(t, err)

	uc := NewCompleteAppointment(f.store, nil)
	done, err := uc.Execute(context.Background(), res.Appointment.ID)
	require.NoError(t, err)

	want := res.Appointment
	want.Status = models.AppointmentCompleted
	assert.Equal(t, want, *done)
	assert.Equal(t, want, f.store.Snapshot().Appointments[0])

	_, err = uc.Execute(context.Background(), res.Appointment.ID)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))

	_, err = uc.Execute(context.Background(), "missing")
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))

	// a completed appointment still holds its slot
	_, err = book(f, "Bia", "bia@x.com", tomorrow, "08:00")
	assert.True(t, httperr.IsBusiness(err, "time_conflict"))
}

func TestCancelAppointment_KeepsFinanceAndFreesSlot(t *testing.T) {
	f := newFixture(t, state.Empty())
	res, err := book(f, "Ana", "ana@x.com", tomorrow, "08:00")
	require.NoError(t, err)

	cancelled, err := NewCancelAppointment(f.store, nil).Execute(context.Background(), res.Appointment.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentCancelled, cancelled.Status)

	snap := f.store.Snapshot()
	require.Len(t, snap.Finances, 1)
	assert.True(t, res.Appointment.Price.Equal(snap.Finances[0].Amount))

	_, err = NewCompleteAppointment(f.store, nil).Execute(context.Background(), res.Appointment.ID)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))

	_, err = book(f, "Bia", "bia@x.com", tomorrow, "08:00")
	assert.NoError(t, err)
}

// ======================================================
// LISTS
// ======================================================

func TestListAppointments(t *testing.T) {
	seed := clientSeed()
	seed.Appointments = []models.Appointment{
		{ID: "a3", ClientID: "c1", Date: "2026-11-02", Time: "08:00", Status: models.AppointmentScheduled},
		{ID: "a2", ClientID: "c1", Date: "2026-10-20", Time: "14:00", Status: models.AppointmentCancelled},
		{ID: "a1", ClientID: "c1", Date: "2026-10-20", Time: "08:00", Status: models.AppointmentScheduled},
		{ID: "a0", ClientID: "gone", Date: "2026-10-05", Time: "13:00", Status: models.AppointmentCompleted},
	}
	seed.SessionReports = []models.SessionReport{{ID: "a0", AppointmentID: "a0"}}
	f := newFixture(t, seed)
	ctx := context.Background()

	day, err := NewListAppointmentsByDate(f.store).Execute(ctx, "2026-10-20")
	require.NoError(t, err)
	require.Len(t, day, 2)
	assert.Equal(t, "a1", day[0].ID)
	assert.Equal(t, "Beatriz Santos", day[0].ClientName)
	assert.Equal(t, "a2", day[1].ID)

	month, err := NewListAppointmentsByMonth(f.store).Execute(ctx, 2026, 10)
	require.NoError(t, err)
	require.Len(t, month, 3)
	assert.Equal(t, "a0", month[0].ID)
	assert.Empty(t, month[0].ClientName)
	assert.True(t, month[0].HasReport)

	empty, err := NewListAppointmentsByDate(f.store).Execute(ctx, "2026-12-25")
	require.NoError(t, err)
	assert.NotNil(t, empty)

	_, err = NewListAppointmentsByMonth(f.store).Execute(ctx, 2026, 13)
	assert.True(t, httperr.IsBusiness(err, "invalid_month"))
	_, err = NewListAppointmentsByDate(f.store).Execute(ctx, "20/10/2026")
	assert.True(t, httperr.IsBusiness(err, "invalid_date"))
}

// Two API instances sharing one redis for records and locks.
func TestCreateOnlineBooking_TwoInstancesSharingRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	shared := storage.NewRedis(client)
	locker := slotlock.NewRedis(client, "patricia_lock:", 10*time.Second)

	instance := func() fixture {
		store := state.NewStore(shared, "patricia_", state.WithSharedLock(locker))
		require.NoError(t, store.Hydrate(context.Background(), state.Empty()))
		return fixture{
			store: store,
			schedule: Schedule{
				Repo:   store,
				Clock:  clock,
				Slots:  domain.DefaultSlots,
				Locker: locker,
			},
		}
	}
	a, b := instance(), instance()

	_, err := book(a, "Aline", "aline@email.com", "2026-10-20", "08:00")
	require.NoError(t, err)

	_, err = book(b, "Bia", "bia@email.com", "2026-10-20", "08:00")
	assert.True(t, httperr.IsBusiness(err, "time_conflict"), "got %v", err)

	_, err = book(b, "Bia", "bia@email.com", "2026-10-20", "13:00")
	require.NoError(t, err)

	fresh := state.NewStore(shared, "patricia_")
	require.NoError(t, fresh.Hydrate(context.Background(), state.Empty()))
	snap := fresh.Snapshot()
	assert.Len(t, snap.Appointments, 2)
	assert.Len(t, snap.Clients, 2)
	assert.Len(t, snap.Finances, 2)
}
