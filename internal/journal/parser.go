package journal

import (
	jerrors "github.com/livp123/edjournal/pkg/errors"
)

// decoders maps a journal event name to its typed decoder.
// Names missing here are ignored, the journal format grows new events often.
var decoders = map[string]func(Record) (Event, error){
	string(KindFsdJump):          func(r Record) (Event, error) { return ParseFsdJump(r) },
	string(KindFssDiscoveryScan): func(r Record) (Event, error) { return ParseFssDiscoveryScan(r) },
	string(KindBodyScan):         func(r Record) (Event, error) { return ParseBodyScan(r) },
	string(KindDssScan):          func(r Record) (Event, error) { return ParseDssScan(r) },
	string(KindAllBodiesFound):   func(r Record) (Event, error) { return ParseAllBodiesFound(r) },
	string(KindStartJump):        func(r Record) (Event, error) { return ParseStartJump(r) },
	string(KindShutdown):         func(r Record) (Event, error) { return ParseShutdown(r) },
}

// Decode converts a record into its typed event.
// It returns (nil, nil) for records without a discriminant or with an unknown one.
// Decode 将记录转换为类型化事件。未知事件返回 (nil, nil)。
func Decode(r Record) (Event, error) {
	decode, ok := decoders[r.Event()]
	if !ok {
		return nil, nil
	}
	return decode(r)
}

// Known reports whether name has a typed decoder.
func Known(name string) bool {
	_, ok := decoders[name]
	return ok
}

func ParseFsdJump(r Record) (FsdJump, error) {
	var ev FsdJump
	var err error
	if ev.Timestamp, err = r.OptTime("timestamp"); err != nil {
		return FsdJump{}, err
	}
	if ev.StarSystem, err = r.String("StarSystem"); err != nil {
		return FsdJump{}, err
	}
	if ev.SystemAddress, err = r.OptInt64("SystemAddress"); err != nil {
		return FsdJump{}, err
	}
	pos, err := r.Floats("StarPos")
	if err != nil {
		return FsdJump{}, err
	}
	if len(pos) != 3 {
		return FsdJump{}, jerrors.NewTypeError(r.Event(), "StarPos", "3 coordinates", pos)
	}
	copy(ev.StarPos[:], pos)
	return ev, nil
}

func ParseFssDiscoveryScan(r Record) (FssDiscoveryScan, error) {
	var ev FssDiscoveryScan
	var err error
	if ev.Timestamp, err = r.OptTime("timestamp"); err != nil {
		return FssDiscoveryScan{}, err
	}
	if ev.BodyCount, err = r.Int("BodyCount"); err != nil {
		return FssDiscoveryScan{}, err
	}
	if ev.NonBodyCount, err = r.Int("NonBodyCount"); err != nil {
		return FssDiscoveryScan{}, err
	}
	if ev.SystemName, err = r.OptString("SystemName"); err != nil {
		return FssDiscoveryScan{}, err
	}
	return ev, nil
}

// ParseBodyScan classifies the body by which class field is present:
// StarType means a star, PlanetClass a planet, neither a belt cluster.
// ParseBodyScan 根据类别字段对天体进行分类。
func ParseBodyScan(r Record) (BodyScan, error) {
	var ev BodyScan
	var err error
	if ev.Timestamp, err = r.OptTime("timestamp"); err != nil {
		return BodyScan{}, err
	}
	if ev.BodyID, err = r.Int("BodyID"); err != nil {
		return BodyScan{}, err
	}
	if ev.BodyName, err = r.String("BodyName"); err != nil {
		return BodyScan{}, err
	}
	if ev.WasDiscovered, err = r.OptBool("WasDiscovered"); err != nil {
		return BodyScan{}, err
	}
	if ev.WasMapped, err = r.OptBool("WasMapped"); err != nil {
		return BodyScan{}, err
	}
	if ev.DistanceFromArrivalLS, err = r.OptFloat("DistanceFromArrivalLS"); err != nil {
		return BodyScan{}, err
	}

	switch {
	case r.Has("StarType"):
		ev.Type = BodyTypeStar
		if ev.SubType, err = r.String("StarType"); err != nil {
			return BodyScan{}, err
		}
		if ev.Mass, err = r.Float("StellarMass"); err != nil {
			return BodyScan{}, err
		}
	case r.Has("PlanetClass"):
		ev.Type = BodyTypePlanet
		if ev.SubType, err = r.String("PlanetClass"); err != nil {
			return BodyScan{}, err
		}
		if ev.Mass, err = r.Float("MassEM"); err != nil {
			return BodyScan{}, err
		}
		if ev.TerraformState, err = r.OptString("TerraformState"); err != nil {
			return BodyScan{}, err
		}
	default:
		ev.Type = BodyTypeBelt
	}
	return ev, nil
}

func ParseDssScan(r Record) (DssScan, error) {
	var ev DssScan
	var err error
	if ev.Timestamp, err = r.OptTime("timestamp"); err != nil {
		return DssScan{}, err
	}
	if ev.BodyID, err = r.Int("BodyID"); err != nil {
		return DssScan{}, err
	}
	if ev.BodyName, err = r.OptString("BodyName"); err != nil {
		return DssScan{}, err
	}
	if ev.ProbesUsed, err = r.Int("ProbesUsed"); err != nil {
		return DssScan{}, err
	}
	if ev.EfficiencyTarget, err = r.Int("EfficiencyTarget"); err != nil {
		return DssScan{}, err
	}
	return ev, nil
}

func ParseAllBodiesFound(r Record) (AllBodiesFound, error) {
	var ev AllBodiesFound
	var err error
	if ev.Timestamp, err = r.OptTime("timestamp"); err != nil {
		return AllBodiesFound{}, err
	}
	if ev.SystemName, err = r.OptString("SystemName"); err != nil {
		return AllBodiesFound{}, err
	}
	if ev.Count, err = r.OptInt("Count"); err != nil {
		return AllBodiesFound{}, err
	}
	return ev, nil
}

func ParseStartJump(r Record) (StartJump, error) {
	var ev StartJump
	var err error
	if ev.Timestamp, err = r.OptTime("timestamp"); err != nil {
		return StartJump{}, err
	}
	jt, err := r.String("JumpType")
	if err != nil {
		return StartJump{}, err
	}
	ev.JumpType = JumpType(jt)
	switch ev.JumpType {
	case JumpHyperspace:
		if ev.StarSystem, err = r.String("StarSystem"); err != nil {
			return StartJump{}, err
		}
		if ev.StarClass, err = r.OptString("StarClass"); err != nil {
			return StartJump{}, err
		}
	case JumpSupercruise:
	default:
		return StartJump{}, jerrors.NewTypeError(r.Event(), "JumpType", "Hyperspace or Supercruise", jt)
	}
	return ev, nil
}

func ParseShutdown(r Record) (Shutdown, error) {
	ts, err := r.OptTime("timestamp")
	if err != nil {
		return Shutdown{}, err
	}
	return Shutdown{Timestamp: ts}, nil
}
