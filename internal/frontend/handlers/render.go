package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cory-johannsen/countdown/internal/frontend/telnet"
	"github.com/cory-johannsen/countdown/internal/game/pool"
	"github.com/cory-johannsen/countdown/internal/game/state"
	"github.com/cory-johannsen/countdown/internal/storage/results"
)

const (
	rule          = "────────────────────────────────────────────────────────────"
	smallRowWidth = 7
	timeLayout    = "2006-01-02 15:04"
)

// RenderView draws the full screen for v. recent is listed on the
// introduction screen only.
func RenderView(v state.View, recent []results.Result) string {
	var b strings.Builder

	if v.Screen == state.Playing {
		b.WriteString(telnet.ShowCursor)
	} else {
		b.WriteString(telnet.HideCursor)
	}

	b.WriteString(telnet.Colorize(telnet.Bold+telnet.BrightWhite, Title(v)))
	b.WriteString("\r\n")
	b.WriteString(telnet.Colorize(telnet.BrightBlack, rule))
	b.WriteString("\r\n\r\n")

	switch v.Screen {
	case state.Introduction:
		renderIntroduction(&b, recent)
	case state.PickingNumbers:
		renderSelection(&b, v)
		renderPools(&b, v)
	case state.Playing:
		renderSelection(&b, v)
		renderInput(&b, v)
	case state.DisplayingResult:
		renderResult(&b, v)
	}

	b.WriteString("\r\n")
	b.WriteString(telnet.Colorize(telnet.BrightBlack, rule))
	b.WriteString("\r\n")
	if hint := Hint(v); hint != "" {
		b.WriteString(hint)
		b.WriteString("\r\n")
	}
	b.WriteString(telnet.Colorize(telnet.Yellow, KeyNotes(v.Screen)))
	b.WriteString("\r\n")
	return b.String()
}

// Title is the heading of the screen.
func Title(v state.View) string {
	switch v.Screen {
	case state.Introduction:
		return "Numbers Game"
	case state.PickingNumbers:
		if v.Complete {
			return "Hit (Enter) to start the challenge"
		}
		return "Pick some numbers"
	case state.Playing:
		return "Solve the challenge"
	case state.DisplayingResult:
		return "How did you do?"
	default:
		return v.Screen.String()
	}
}

// Hint is the context help shown above the key notes.
func Hint(v state.View) string {
	switch v.Screen {
	case state.Introduction:
		return "Press (Enter) to skip"
	case state.PickingNumbers:
		if v.Complete {
			return "Press (Enter) to start"
		}
		return fmt.Sprintf("Pick %d numbers [: small, ]: large", v.SelectionSize())
	case state.Playing:
		return "Use ( + - / * ) to hit the target"
	default:
		return ""
	}
}

// KeyNotes lists the keys that act on screen s.
func KeyNotes(s state.Screen) string {
	switch s {
	case state.Playing:
		return "(q) to quit, (Enter) to submit"
	case state.DisplayingResult:
		return "(q) to quit, (Enter) to play again"
	default:
		return "(q) to quit, (Enter) to start"
	}
}

// ResultMessage grades a submitted solution.
func ResultMessage(fb state.Feedback) string {
	if !fb.Scored {
		return "Unlucky! You can always try again 🎲"
	}
	d := fb.Distance
	switch {
	case d == 0:
		return "You nailed it 🔨. You hit the target!"
	case d <= 5:
		return fmt.Sprintf("Awesome result 🏅 only %d from the target!", d)
	case d == 6:
		return fmt.Sprintf("Great result 🥈 just %d from the target!", d)
	case d <= 10:
		return fmt.Sprintf("Nice result 🥉 %d from the target!", d)
	default:
		return fmt.Sprintf("You got within %d of the target 🏹", d)
	}
}

// FeedbackMark is the live score shown after the typed input.
func FeedbackMark(fb state.Feedback) string {
	switch {
	case !fb.Scored:
		return ""
	case fb.Exact():
		return " ✅"
	default:
		return fmt.Sprintf(" 📏 %d", fb.Distance)
	}
}

func renderIntroduction(b *strings.Builder, recent []results.Result) {
	b.WriteString(telnet.Colorize(telnet.Green,
		"  Use your 6 (randomly picked) numbers with +, -, * and / operations to match the target number."))
	b.WriteString("\r\n\r\n")
	for _, line := range []string{
		"You pick 6 numbers, from 4 available large numbers and 20 small ones.",
		"Combine your numbers with arithmetic operations to match the random target.",
		"You don't have to use all 6 numbers.",
		"Any division operations should result in a whole number.",
		"If it's not possible to reach the target exactly, get as close as you can.",
	} {
		b.WriteString("  - ")
		b.WriteString(line)
		b.WriteString("\r\n")
	}

	if len(recent) == 0 {
		return
	}
	b.WriteString("\r\n")
	b.WriteString(telnet.Colorize(telnet.Cyan, "Recent games:"))
	b.WriteString("\r\n")
	for _, r := range recent {
		b.WriteString("  ")
		b.WriteString(RenderResultLine(r))
		b.WriteString("\r\n")
	}
}

// RenderResultLine summarises a recorded game on one line.
func RenderResultLine(r results.Result) string {
	outcome := telnet.Colorize(telnet.Red, "no score")
	switch {
	case r.Exact():
		outcome = telnet.Colorize(telnet.BrightGreen, "exact")
	case r.Scored:
		outcome = telnet.Colorf(telnet.Yellow, "off by %d", r.Distance)
	}
	expr := strings.TrimSpace(r.Expression)
	if expr == "" {
		expr = "-"
	}
	return fmt.Sprintf("%s  target %d  %s  %s",
		telnet.Colorize(telnet.Dim, r.PlayedAt.Format(timeLayout)),
		r.Target, outcome, expr)
}

func renderSelection(b *strings.Builder, v state.View) {
	cells := make([]string, v.SelectionSize())
	for i := range cells {
		if value, ok := v.Slot(i); ok {
			cells[i] = strconv.Itoa(value)
		} else {
			cells[i] = "_"
		}
	}
	target := "???"
	if v.TargetVisible {
		target = strconv.Itoa(v.Target)
	}
	b.WriteString("  Numbers: ")
	b.WriteString(telnet.Colorize(telnet.Green, strings.Join(cells, " ")))
	b.WriteString("    Target: ")
	b.WriteString(telnet.Colorize(telnet.Green, target))
	b.WriteString("\r\n\r\n")
}

func renderPools(b *strings.Builder, v state.View) {
	b.WriteString("  Large numbers (]):\r\n")
	b.WriteString("    ")
	b.WriteString(slotRow(v.Large, "**", "XX"))
	b.WriteString("\r\n")

	b.WriteString("  Small numbers ([):\r\n")
	for start := 0; start < len(v.Small); start += smallRowWidth {
		end := min(start+smallRowWidth, len(v.Small))
		b.WriteString("    ")
		b.WriteString(slotRow(v.Small[start:end], "*", "X"))
		b.WriteString("\r\n")
	}
}

// slotRow hides the values of the pool: a present slot shows as available,
// a drawn one as crossed out.
func slotRow(slots []pool.Slot, available, drawn string) string {
	cells := make([]string, len(slots))
	for i, s := range slots {
		if s.Present {
			cells[i] = telnet.Colorize(telnet.Green, available)
		} else {
			cells[i] = telnet.Colorize(telnet.Red, drawn)
		}
	}
	return strings.Join(cells, " ")
}

func renderInput(b *strings.Builder, v state.View) {
	b.WriteString("  Enter your solution here (using 0-9, +, -, *, / and ()):\r\n\r\n")
	b.WriteString("    ")
	if v.Input == "" {
		b.WriteString(telnet.Colorize(telnet.Dim, "_"))
	} else {
		b.WriteString(v.Input)
	}
	b.WriteString(telnet.Colorize(telnet.Green, FeedbackMark(v.Feedback)))
	b.WriteString("\r\n")
}

func renderResult(b *strings.Builder, v state.View) {
	b.WriteString("  ")
	b.WriteString(telnet.Colorize(telnet.BrightYellow, ResultMessage(v.Feedback)))
	b.WriteString("\r\n\r\n")

	b.WriteString(fmt.Sprintf("  Numbers: %s    Target: %d\r\n",
		telnet.Colorize(telnet.Green, strings.Trim(fmt.Sprint(v.Selected), "[]")), v.Target))
	input := strings.TrimSpace(v.Input)
	if input == "" {
		input = "(nothing submitted)"
	}
	b.WriteString(fmt.Sprintf("  Your solution: %s\r\n", input))
}
