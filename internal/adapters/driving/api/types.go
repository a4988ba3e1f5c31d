package api

import "github.com/custodia-labs/ration/internal/core/domain"

// Stream event names.
const (
	eventCalories = "calories"
	eventForaging = "foraging"
)

// Response content types.
const (
	contentTypeNDJSON = "application/x-ndjson"
	contentTypeSSE    = "text/event-stream"
)

// formRequest is the body of POST /api/formSubmit.
type formRequest struct {
	Height        float64 `json:"height"`
	Weight        float64 `json:"weight"`
	Sex           string  `json:"sex"`
	ActivityLevel string  `json:"activityLevel"`
	Age           int     `json:"age"`
	Location      string  `json:"location"`

	// UseGemini defaults to true when absent.
	UseGemini *bool `json:"useGemini"`
}

func (r formRequest) profile() domain.Profile {
	return domain.Profile{
		HeightInches:  r.Height,
		WeightLbs:     r.Weight,
		Sex:           domain.Sex(r.Sex),
		ActivityLevel: domain.ActivityLevel(r.ActivityLevel),
		Age:           r.Age,
		Location:      r.Location,
	}
}

func (r formRequest) wantsTips() bool {
	return r.UseGemini == nil || *r.UseGemini
}

// searchRequest is the body of POST /api/search.
type searchRequest struct {
	Name string `json:"name"`
}

// caloriesEvent is the first event of a formSubmit response.
type caloriesEvent struct {
	Event         string `json:"event,omitempty"`
	CaloricIntake int    `json:"caloricIntake"`
	ForagingPara  string `json:"foragingPara"`
}

// foragingEvent carries the generated recommendations.
type foragingEvent struct {
	Event        string `json:"event,omitempty"`
	ForagingPara string `json:"foragingPara"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
