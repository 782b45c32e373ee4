package handlers

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/countdown/internal/frontend/telnet"
	"github.com/cory-johannsen/countdown/internal/game/pool"
	"github.com/cory-johannsen/countdown/internal/game/state"
	"github.com/cory-johannsen/countdown/internal/storage/results"
)

func slots(n, drawn int) []pool.Slot {
	out := make([]pool.Slot, n)
	for i := range out {
		out[i] = pool.Slot{Value: i + 1, Present: i >= drawn}
	}
	return out
}

func view(screen state.Screen) state.View {
	return state.View{
		GameID:        uuid.NewString(),
		Screen:        screen,
		Large:         slots(pool.LargeCount, 0),
		Small:         slots(pool.SmallCount, 0),
		Target:        537,
		TargetVisible: screen != state.PickingNumbers,
	}
}

func TestRenderView_Introduction(t *testing.T) {
	out := telnet.StripANSI(RenderView(view(state.Introduction), nil))
	assert.Contains(t, out, "Numbers Game")
	assert.Contains(t, out, "match the target number")
	assert.Contains(t, out, "You don't have to use all 6 numbers.")
	assert.Contains(t, out, "Press (Enter) to skip")
	assert.Contains(t, out, "(q) to quit, (Enter) to start")
	assert.NotContains(t, out, "Recent games")
	assert.NotContains(t, out, "537", "the target is not shown before the game")
}

func TestRenderView_IntroductionRecent(t *testing.T) {
	recent := []results.Result{
		{ID: uuid.New(), PlayedAt: time.Date(2026, 1, 2, 3, 4, 0, 0, time.UTC), Target: 812, Expression: "100 * 8 + 12", Scored: true},
		{ID: uuid.New(), PlayedAt: time.Date(2026, 1, 2, 3, 0, 0, 0, time.UTC), Target: 305, Expression: "75 * 4", Distance: 5, Scored: true},
	}
	out := telnet.StripANSI(RenderView(view(state.Introduction), recent))
	assert.Contains(t, out, "Recent games:")
	assert.Contains(t, out, "2026-01-02 03:04  target 812  exact  100 * 8 + 12")
	assert.Contains(t, out, "target 305  off by 5  75 * 4")
	assert.Less(t, strings.Index(out, "target 812"), strings.Index(out, "target 305"))
}

func TestRenderView_PickingHidesTargetAndValues(t *testing.T) {
	v := view(state.PickingNumbers)
	v.Target = 0
	v.Large = slots(pool.LargeCount, 1)
	v.Small = slots(pool.SmallCount, 2)
	v.Selected = []int{25, 3, 9}

	out := telnet.StripANSI(RenderView(v, nil))
	assert.Contains(t, out, "Pick some numbers")
	assert.Contains(t, out, "Numbers: 25 3 9 _ _ _    Target: ???")
	assert.Contains(t, out, "Large numbers (]):")
	assert.Contains(t, out, "XX ** ** **")
	assert.Contains(t, out, "Small numbers ([):")
	assert.Contains(t, out, "X X * * * * *")
	assert.Contains(t, out, "Pick 6 numbers [: small, ]: large")
}

func TestRenderView_PickingComplete(t *testing.T) {
	v := view(state.PickingNumbers)
	v.Selected = []int{100, 75, 1, 2, 3, 4}
	v.Complete = true
	out := telnet.StripANSI(RenderView(v, nil))
	assert.Contains(t, out, "Hit (Enter) to start the challenge")
	assert.Contains(t, out, "Press (Enter) to start")
}

func TestRenderView_Playing(t *testing.T) {
	v := view(state.Playing)
	v.Selected = []int{100, 75, 1, 2, 3, 4}
	v.Complete = true

	out := RenderView(v, nil)
	assert.True(t, strings.HasPrefix(out, telnet.ShowCursor))
	plain := telnet.StripANSI(out)
	assert.Contains(t, plain, "Solve the challenge")
	assert.Contains(t, plain, "Numbers: 100 75 1 2 3 4    Target: 537")
	assert.Contains(t, plain, "    _")
	assert.Contains(t, plain, "(q) to quit, (Enter) to submit")

	v.Input = "100 * 5 + 37"
	v.Feedback = state.Feedback{Distance: 0, Scored: true}
	assert.Contains(t, telnet.StripANSI(RenderView(v, nil)), "100 * 5 + 37 ✅")

	v.Feedback = state.Feedback{Distance: 12, Scored: true}
	assert.Contains(t, telnet.StripANSI(RenderView(v, nil)), "100 * 5 + 37 📏 12")
}

func TestRenderView_Result(t *testing.T) {
	v := view(state.DisplayingResult)
	v.Selected = []int{50, 2, 7, 7, 1, 9}
	v.Input = "50 * 9 + 7 * 7"
	v.Feedback = state.Feedback{Distance: 3, Scored: true}

	out := RenderView(v, nil)
	assert.True(t, strings.HasPrefix(out, telnet.HideCursor))
	plain := telnet.StripANSI(out)
	assert.Contains(t, plain, "How did you do?")
	assert.Contains(t, plain, "Awesome result 🏅 only 3 from the target!")
	assert.Contains(t, plain, "Numbers: 50 2 7 7 1 9    Target: 537")
	assert.Contains(t, plain, "Your solution: 50 * 9 + 7 * 7")
	assert.Contains(t, plain, "(Enter) to play again")

	v.Input = ""
	v.Feedback = state.Feedback{}
	plain = telnet.StripANSI(RenderView(v, nil))
	assert.Contains(t, plain, "Unlucky! You can always try again 🎲")
	assert.Contains(t, plain, "(nothing submitted)")
}

func TestResultMessage(t *testing.T) {
	cases := []struct {
		fb   state.Feedback
		want string
	}{
		{state.Feedback{}, "Unlucky! You can always try again 🎲"},
		{state.Feedback{Scored: true}, "You nailed it 🔨. You hit the target!"},
		{state.Feedback{Distance: 1, Scored: true}, "Awesome result 🏅 only 1 from the target!"},
		{state.Feedback{Distance: 5, Scored: true}, "Awesome result 🏅 only 5 from the target!"},
		{state.Feedback{Distance: 6, Scored: true}, "Great result 🥈 just 6 from the target!"},
		{state.Feedback{Distance: 7, Scored: true}, "Nice result 🥉 7 from the target!"},
		{state.Feedback{Distance: 10, Scored: true}, "Nice result 🥉 10 from the target!"},
		{state.Feedback{Distance: 11, Scored: true}, "You got within 11 of the target 🏹"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ResultMessage(tc.fb))
	}
}

func TestFeedbackMark(t *testing.T) {
	assert.Equal(t, "", FeedbackMark(state.Feedback{}))
	assert.Equal(t, " ✅", FeedbackMark(state.Feedback{Scored: true}))
	assert.Equal(t, " 📏 4", FeedbackMark(state.Feedback{Distance: 4, Scored: true}))
}

func TestRenderResultLine_NoScore(t *testing.T) {
	r := results.Result{PlayedAt: time.Date(2026, 2, 3, 4, 5, 0, 0, time.UTC), Target: 640}
	assert.Equal(t, "2026-02-03 04:05  target 640  no score  -", telnet.StripANSI(RenderResultLine(r)))
}

// Property: every screen renders its title and key notes, and the target
// never appears while numbers are being picked.
func TestPropertyRenderViewScreens(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		screen := rapid.SampledFrom([]state.Screen{
			state.Introduction, state.PickingNumbers, state.Playing, state.DisplayingResult,
		}).Draw(rt, "screen")
		v := view(screen)
		v.Selected = rapid.SliceOfN(rapid.IntRange(1, 10), 0, 6).Draw(rt, "selected")
		v.Complete = len(v.Selected) == 6
		if screen == state.PickingNumbers {
			v.Target = 0
		}

		plain := telnet.StripANSI(RenderView(v, nil))
		assert.Contains(rt, plain, Title(v))
		assert.Contains(rt, plain, KeyNotes(screen))
		if screen == state.PickingNumbers {
			assert.NotContains(rt, plain, "537")
		}
	})
}
