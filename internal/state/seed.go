package state

import (
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/braids-scheduler/internal/models"
)

// DemoSeed fills the collections shown on a fresh install. tomorrow is the
// civil date after today in the salon zone.
func DemoSeed(tomorrow string) State {
	st := Empty()

	aline := "2023-11-05"
	bia := "2023-10-12"

	st.Clients = []models.Client{
		{
			ID:              "1",
			Name:            "Aline Oliveira",
			Address:         "Rua Principal, 45",
			Phone:           "21988776655",
			Email:           "aline@email.com",
			Status:          models.ClientActive,
			TreatmentStage:  models.StageRegular,
			LastSessionDate: &aline,
		},
		{
			ID:              "2",
			Name:            "Beatriz Santos",
			Address:         "Av. Brasil, 200",
			Phone:           "21977665544",
			Email:           "bia@email.com",
			Status:          models.ClientActive,
			TreatmentStage:  models.StageMeasurement,
			LastSessionDate: &bia,
		},
	}

	st.Appointments = []models.Appointment{
		{
			ID:       "app-aline-1",
			ClientID: "1",
			Date:     tomorrow,
			Time:     "09:00",
			Type:     models.ServiceBoxBraids,
			Status:   models.AppointmentScheduled,
			Price:    decimal.NewFromInt(350),
			Duration: 360,
		},
	}

	st.KanbanTasks = []models.KanbanTask{
		{ID: "k1", Title: "Comprar Jumbo Loiro 27", Status: models.TaskTodo},
		{ID: "k2", Title: "Agulhas de crochet novas", Status: models.TaskDoing},
	}

	return st
}
