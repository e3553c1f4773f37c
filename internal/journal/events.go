package journal

import "time"

// Kind identifies one of the event streams published on the Bus.
// Kind 标识总线上发布的事件流之一。
type Kind string

const (
	KindFsdJump          Kind = "FSDJump"
	KindFssDiscoveryScan Kind = "FSSDiscoveryScan"
	KindBodyScan         Kind = "Scan"
	KindDssScan          Kind = "SAAScanComplete"
	KindAllBodiesFound   Kind = "FSSAllBodiesFound"
	KindStartJump        Kind = "StartJump"
	KindShutdown         Kind = "Shutdown"
	KindReady            Kind = "Ready"
	KindRecord           Kind = "Record"
)

// Kinds lists every kind in a stable order.
var Kinds = []Kind{
	KindFsdJump,
	KindFssDiscoveryScan,
	KindBodyScan,
	KindDssScan,
	KindAllBodiesFound,
	KindStartJump,
	KindShutdown,
	KindReady,
	KindRecord,
}

// Event is implemented by every value published on the Bus.
type Event interface {
	Kind() Kind
}

// FsdJump is written when a hyperspace jump completes.
type FsdJump struct {
	Timestamp     time.Time
	StarSystem    string
	SystemAddress int64
	StarPos       [3]float64
}

func (FsdJump) Kind() Kind { return KindFsdJump }

// FssDiscoveryScan is the result of a full-spectrum "honk".
type FssDiscoveryScan struct {
	Timestamp    time.Time
	BodyCount    int
	NonBodyCount int
	SystemName   string
}

func (FssDiscoveryScan) Kind() Kind { return KindFssDiscoveryScan }

// BodyType classifies a scanned body.
type BodyType int

const (
	BodyTypeBelt BodyType = iota
	BodyTypeStar
	BodyTypePlanet
)

func (t BodyType) String() string {
	switch t {
	case BodyTypeStar:
		return "Star"
	case BodyTypePlanet:
		return "Planet"
	default:
		return "Belt"
	}
}

// BodyScan describes one scanned star, planet or belt cluster.
// Mass is in solar masses for stars and Earth masses for planets.
type BodyScan struct {
	Timestamp             time.Time
	BodyID                int
	BodyName              string
	Type                  BodyType
	SubType               string
	Mass                  float64
	TerraformState        string
	WasDiscovered         bool
	WasMapped             bool
	DistanceFromArrivalLS float64
}

func (BodyScan) Kind() Kind { return KindBodyScan }

// Terraformable reports whether the body is a terraforming candidate.
func (b BodyScan) Terraformable() bool {
	return b.TerraformState != ""
}

// DssScan is written when surface mapping of a body completes.
type DssScan struct {
	Timestamp        time.Time
	BodyID           int
	BodyName         string
	ProbesUsed       int
	EfficiencyTarget int
}

func (DssScan) Kind() Kind { return KindDssScan }

// Efficient reports whether the body was mapped within the probe target.
func (d DssScan) Efficient() bool {
	return d.ProbesUsed <= d.EfficiencyTarget
}

// AllBodiesFound marks that every body in the system has been found.
type AllBodiesFound struct {
	Timestamp  time.Time
	SystemName string
	Count      int
}

func (AllBodiesFound) Kind() Kind { return KindAllBodiesFound }

// JumpType distinguishes the two kinds of StartJump.
type JumpType string

const (
	JumpHyperspace  JumpType = "Hyperspace"
	JumpSupercruise JumpType = "Supercruise"
)

// StartJump is written when the frame shift drive charges.
// StarSystem is only set for hyperspace jumps.
type StartJump struct {
	Timestamp  time.Time
	JumpType   JumpType
	StarSystem string
	StarClass  string
}

func (StartJump) Kind() Kind { return KindStartJump }

// Shutdown marks a clean exit of the game client.
type Shutdown struct {
	Timestamp time.Time
}

func (Shutdown) Kind() Kind { return KindShutdown }

// Ready is published once, the first time the reader catches up with the
// end of the current journal.
type Ready struct {
	File string
}

func (Ready) Kind() Kind { return KindReady }

// RecordEvent carries the raw record behind every typed event. It is
// published just before the typed event decoded from the same record;
// records with unknown or undecodable event names produce neither.
type RecordEvent struct {
	Name   string
	Record Record
	Source string
}

func (RecordEvent) Kind() Kind { return KindRecord }
