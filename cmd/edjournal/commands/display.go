package commands

import (
	"fmt"
	"path/filepath"

	"github.com/livp123/edjournal/internal/journal"
	"github.com/livp123/edjournal/internal/utils/fmtutil"
)

func eventIcon(kind journal.Kind) string {
	switch kind {
	case journal.KindFsdJump:
		return "🌌"
	case journal.KindFssDiscoveryScan:
		return "📡"
	case journal.KindBodyScan:
		return "🪐"
	case journal.KindDssScan:
		return "🛰️"
	case journal.KindAllBodiesFound:
		return "✅"
	case journal.KindStartJump:
		return "⚡"
	case journal.KindShutdown:
		return "👋"
	case journal.KindReady:
		return "🟢"
	default:
		return "•"
	}
}

// describe renders an event as one human-readable line.
// describe 将事件格式化为一行可读文本。
func describe(ev journal.Event) string {
	switch e := ev.(type) {
	case journal.FsdJump:
		return fmt.Sprintf("Arrived in %s [%.2f, %.2f, %.2f]", e.StarSystem, e.StarPos[0], e.StarPos[1], e.StarPos[2])
	case journal.FssDiscoveryScan:
		name := e.SystemName
		if name == "" {
			name = "current system"
		}
		return fmt.Sprintf("Discovery scan of %s: %d bodies, %d signals", name, e.BodyCount, e.NonBodyCount)
	case journal.BodyScan:
		s := fmt.Sprintf("Scanned %s (%s", e.BodyName, e.Type)
		if e.SubType != "" {
			s += ", " + e.SubType
		}
		s += ")"
		if e.DistanceFromArrivalLS > 0 {
			s += " at " + fmtutil.FormatDistanceLS(e.DistanceFromArrivalLS)
		}
		if e.Terraformable() {
			s += " terraform: " + e.TerraformState
		}
		if !e.WasDiscovered {
			s += " first discovery"
		}
		return s
	case journal.DssScan:
		verdict := "over target"
		if e.Efficient() {
			verdict = "efficient"
		}
		return fmt.Sprintf("Mapped %s with %d probes (target %d, %s)", e.BodyName, e.ProbesUsed, e.EfficiencyTarget, verdict)
	case journal.AllBodiesFound:
		return fmt.Sprintf("All %d bodies found in %s", e.Count, e.SystemName)
	case journal.StartJump:
		if e.JumpType == journal.JumpHyperspace {
			return fmt.Sprintf("Charging hyperspace jump to %s (class %s)", e.StarSystem, e.StarClass)
		}
		return "Entering supercruise"
	case journal.Shutdown:
		return "Game shut down"
	case journal.Ready:
		return fmt.Sprintf("Caught up with %s", filepath.Base(e.File))
	case journal.RecordEvent:
		return fmt.Sprintf("Record %s", e.Name)
	default:
		return string(ev.Kind())
	}
}
