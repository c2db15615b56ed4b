package model

// ActivityKind identifies the concrete variant of an activity.
type ActivityKind string

const (
	KindAcquisition ActivityKind = "Acquisition"
	KindProcessing  ActivityKind = "Processing"
	KindModelling   ActivityKind = "Modelling"
	KindOptimising  ActivityKind = "Optimising"
	KindExporting   ActivityKind = "Exporting"
)

// Activity represents one step of the digitisation process carried out on a
// cultural heritage object. Object is never nil: when the full metadata has
// not been fetched it is a placeholder carrying only the identifier.
// Technique is only meaningful for KindAcquisition.
type Activity struct {
	Kind      ActivityKind            `json:"kind"`
	Object    *CulturalHeritageObject `json:"object"`
	Institute string                  `json:"responsible_institute"`
	Person    string                  `json:"responsible_person,omitempty"`
	Technique string                  `json:"technique,omitempty"`
	Tools     []string                `json:"tools,omitempty"`
	StartDate string                  `json:"start_date,omitempty"` // free text, sortable only if ISO-8601 upstream
	EndDates  []string                `json:"end_dates,omitempty"`  // ordered; usually a single entry
}

// EndDate returns the last recorded end date, or the empty string when none
// is known. Activities with multi-valued end dates keep the full ordered list
// in EndDates.
func (a *Activity) EndDate() string {
	if len(a.EndDates) == 0 {
		return ""
	}
	return a.EndDates[len(a.EndDates)-1]
}
