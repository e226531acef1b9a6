package schema

type StopEventDelivery struct {
	StopEvents []StopEventResult

	Places     []Place
	Situations []Situation
}

type StopEventResult struct {
	ID string

	PreviousCalls []CallAtStop
	ThisCall      *CallAtStop
	OnwardCalls   []CallAtStop

	// nil when the wire response omits the service block.
	Service *Service
}

type TripInfoDelivery struct {
	Result *TripInfoResult

	Places     []Place
	Situations []Situation
}

type TripInfoResult struct {
	Calls []CallAtStop

	Service *Service

	Track *LegTrack

	OperatingDay        string
	RequestedVehicleRef string
}
