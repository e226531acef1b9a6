package schema

type TripDelivery struct {
	TripResults []TripResult

	// Context maps shared by every trip of the delivery, keyed by ref.
	Places     []Place
	Situations []Situation
}

type TripResult struct {
	ID   string
	Trip *Trip
}

type Trip struct {
	ID        string
	Duration  string
	StartTime string
	EndTime   string
	Transfers int
	DistanceM int

	Legs []Leg

	Unplanned  bool
	Cancelled  bool
	Deviation  bool
	Delayed    bool
	Infeasible bool
}

// Leg carries exactly one of the three variant blocks.
type Leg struct {
	ID       int
	Duration string

	TimedLeg      *TimedLeg
	TransferLeg   *TransferLeg
	ContinuousLeg *ContinuousLeg
}

type TimedLeg struct {
	Board         CallAtStop
	Alight        CallAtStop
	Intermediates []CallAtStop

	Service Service

	Track *LegTrack
}

type TransferLeg struct {
	TransferType string
	FromRef      PlaceRef
	ToRef        PlaceRef
	Duration     string
	WalkDuration string

	PathGuidance *PathGuidance
}

type ContinuousLeg struct {
	Mode    string
	FromRef PlaceRef
	ToRef   PlaceRef

	TimeWindowStart string
	TimeWindowEnd   string

	Duration string
	LengthM  int

	Track        *LegTrack
	PathGuidance *PathGuidance
}

type CallAtStop struct {
	StopPointRef  string
	StopPointName string

	PlannedQuay   string
	EstimatedQuay string

	PlannedArrival     string
	EstimatedArrival   string
	PlannedDeparture   string
	EstimatedDeparture string

	Order int

	RequestStop       bool
	UnplannedStop     bool
	NotServicedStop   bool
	NoBoardingAtStop  bool
	NoAlightingAtStop bool

	NotWheelchairAccessible bool

	Occupancy []FareClassOccupancy
}

type FareClassOccupancy struct {
	FareClass string
	Level     string
}

// Service is the canonical service-fields record. All three wire sources
// (legacy trip, legacy trip-info, current DatedJourney) normalize into this
// one shape before the model constructor runs.
type Service struct {
	OperatingDayRef      string
	JourneyRef           string
	LineRef              string
	DirectionRef         string
	Mode                 string
	SubMode              string
	PublishedServiceName string
	TrainNumber          string
	OperatorRef          string

	OriginText      string
	DestinationText string
	DestinationRef  string

	Attributes []ServiceAttribute

	SituationRefs []string

	Unplanned bool
	Cancelled bool
	Deviation bool
}

type ServiceAttribute struct {
	Code string
	Text string
}

type LegTrack struct {
	Sections []TrackSection
	Duration string
}

type TrackSection struct {
	FromRef PlaceRef
	ToRef   PlaceRef

	Duration string
	LengthM  int

	Positions []GeoPosition

	RoadName     string
	GuidanceText string
}

type PathGuidance struct {
	Sections []PathGuidanceSection
}

type PathGuidanceSection struct {
	TrackSection *TrackSection

	GuidanceAdvice  string
	TurnAction      string
	TurnDescription string
}

type Situation struct {
	SituationNumber string
	Summary         string
	Descriptions    []string
	Details         []string
	Priority        int
	ValidFrom       string
	ValidTo         string
}
