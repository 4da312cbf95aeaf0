package appointment

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/braids-scheduler/internal/models"
)

// DefaultSlots is the fixed daily offer. Braiding sessions are long, so the
// catalog is sparse and does not depend on duration, weekday or load.
var DefaultSlots = []string{"08:00", "13:00", "14:00"}

// OnlineServiceType is what every public booking is recorded as, whatever
// the landing page advertises.
const OnlineServiceType = models.ServiceBoxBraids

var techniques = []models.Technique{
	{Type: models.ServiceBoxBraids, Price: decimal.NewFromInt(350), DurationMin: 360},
	{Type: models.ServiceNago, Price: decimal.NewFromInt(150), DurationMin: 90},
	{Type: models.ServiceTwist, Price: decimal.NewFromInt(300), DurationMin: 240},
	{Type: models.ServiceEntrelace, Price: decimal.NewFromInt(400), DurationMin: 240},
	{Type: models.ServicePenteado, Price: decimal.NewFromInt(120), DurationMin: 60},
}

func Techniques() []models.Technique {
	return slices.Clone(techniques)
}

func LookupTechnique(t models.ServiceType) (models.Technique, bool) {
	for _, tech := range techniques {
		if tech.Type == t {
			return tech, true
		}
	}
	return models.Technique{}, false
}
