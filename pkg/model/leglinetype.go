package model

// LegLineType is the class handed to map/rendering collaborators to pick a
// line style for a leg.
type LegLineType string

const (
	LineTypeLongDistanceRail LegLineType = "LongDistanceRail"
	LineTypeSBahn            LegLineType = "SBahn"
	LineTypeRail             LegLineType = "Rail"
	LineTypeBus              LegLineType = "Bus"
	LineTypeTram             LegLineType = "Tram"
	LineTypeMetro            LegLineType = "Metro"
	LineTypeWater            LegLineType = "Water"
	LineTypeCableway         LegLineType = "Cableway"
	LineTypeFunicular        LegLineType = "Funicular"
	LineTypeWalk             LegLineType = "Walk"
	LineTypeSelfDriveCar     LegLineType = "SelfDriveCar"
	LineTypeSharedMobility   LegLineType = "SharedMobility"
	LineTypeOnDemand         LegLineType = "OnDemand"
	LineTypeTransfer         LegLineType = "Transfer"
	LineTypeUnknown          LegLineType = "Unknown"
)

func (l *TimedLeg) LineType() LegLineType {
	if l.Service == nil {
		return LineTypeUnknown
	}

	switch l.Service.Mode {
	case TransportModeRail:
		switch RailSubmode(l.Service.SubMode) {
		case RailSubmodeLongDistance:
			return LineTypeLongDistanceRail
		case RailSubmodeSuburbanRail:
			return LineTypeSBahn
		}
		return LineTypeRail
	case TransportModeBus:
		return LineTypeBus
	case TransportModeTram:
		return LineTypeTram
	case TransportModeMetro:
		return LineTypeMetro
	case TransportModeWater, TransportModeCarFerry:
		return LineTypeWater
	case TransportModeCableway:
		return LineTypeCableway
	case TransportModeFunicular:
		return LineTypeFunicular
	}

	return LineTypeUnknown
}

func (l *ContinuousLeg) LineType() LegLineType {
	switch {
	case l.IsWalking():
		return LineTypeWalk
	case l.IsDriveCarLeg():
		return LineTypeSelfDriveCar
	case l.IsSharedMobility():
		return LineTypeSharedMobility
	case l.IsTaxi():
		return LineTypeOnDemand
	}

	return LineTypeUnknown
}

func (l *TransferLeg) LineType() LegLineType {
	return LineTypeTransfer
}
