package bot

import (
	"fmt"
	"strings"

	"fleetfuel/internal/numfmt"
	"fleetfuel/internal/service"
)

// maxMessageLen is a safety margin below the transport's 4096-character hard
// limit; longer outputs are split at line boundaries.
const maxMessageLen = 3900

// Button labels. Inbound commands match on these exact strings.
const (
	btnNewReading   = "➕ New reading"
	btnFleetReport  = "📊 Full report"
	btnSingleReport = "📊 Object report"
	btnShortage     = "🔻 Shortage"
	btnAddObject    = "⚙️ Add object"
	btnDeleteObject = "🗑 Delete object"
	btnSetCapacity  = "✏️ Set capacity"
	btnSetUsage     = "🔧 Set usage rate"
	btnCancel       = "❌ Cancel"
)

// mainKeyboard builds the persistent reply keyboard; the admin row is shown
// only to allow-listed users.
func mainKeyboard(admin bool) [][]string {
	rows := [][]string{
		{btnNewReading, btnFleetReport, btnSingleReport},
		{btnShortage},
	}
	if admin {
		rows = append(rows, []string{btnAddObject, btnDeleteObject, btnSetCapacity, btnSetUsage})
	}
	return rows
}

func renderObjectLines(r service.ObjectReport) string {
	return fmt.Sprintf(
		"🔹 %s\n"+
			"   ⏱️ Hours: %s\n"+
			"   ⛽ Fuel: %.1f / %.1f L\n"+
			"   ➕ To full: %.1f L\n"+
			"   🔧 Usage: %.2f L/h",
		r.ObjectID, numfmt.Hours(r.EngineHours), r.CurrentFuel, r.FuelCapacity, r.AmountToFull, r.UsagePerHour)
}

func renderFleetReport(rows []service.ObjectReport) string {
	lines := []string{"📊 Fleet report:", ""}
	for _, r := range rows {
		lines = append(lines, renderObjectLines(r), "")
	}
	return strings.Join(lines, "\n")
}

func renderShortage(rep service.ShortageReport) string {
	if len(rep.Rows) == 0 {
		return "✅ All tanks are full."
	}
	lines := []string{"🔻 Shortage:", ""}
	for _, row := range rep.Rows {
		lines = append(lines, fmt.Sprintf("%s - %.1f", row.ObjectID, row.Amount))
	}
	lines = append(lines, "", fmt.Sprintf("Total = %.1f liters", rep.Total))
	return strings.Join(lines, "\n")
}

func renderSaved(res service.ReadingResult) string {
	full := "no"
	if res.FullTank {
		full = "yes"
	}
	return fmt.Sprintf(
		"✅ Saved!\nObject: %s\nEngine hours: %s\nRefueled: %s L\nFull tank: %s",
		res.ObjectID, numfmt.Hours(res.NewHours), numfmt.Hours(res.FuelAdded), full)
}

// splitMessage breaks text into chunks of at most limit characters, cutting
// only at line boundaries. A single line longer than the limit becomes its
// own chunk.
func splitMessage(text string, limit int) []string {
	lines := strings.Split(text, "\n")
	var (
		out    []string
		chunk  []string
		length int
	)
	flush := func() {
		if len(chunk) > 0 {
			out = append(out, strings.Join(chunk, "\n"))
			chunk = chunk[:0]
			length = 0
		}
	}
	for _, line := range lines {
		add := len(line) + 1
		if length+add > limit {
			flush()
		}
		chunk = append(chunk, line)
		length += add
	}
	flush()
	return out
}
