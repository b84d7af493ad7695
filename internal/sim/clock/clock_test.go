package clock

import "testing"

func TestAdvanceCascade(t *testing.T) {
	c := New(nil, nil)
	if !c.Advance(3661) {
		t.Fatalf("advance should succeed")
	}
	got := c.Now()
	if got.Day != 1 || got.Hour != 8 || got.Minute != 1 || got.Second != 1 {
		t.Fatalf("expected day1 08:01:01, got %+v", got)
	}
}

func TestAdvanceDayRollover(t *testing.T) {
	c := New(nil, nil)
	// 07:00 + 17h = midnight into day 2.
	c.Advance(17 * 3600)
	got := c.Now()
	if got.Day != 2 || got.Hour != 0 || got.Minute != 0 {
		t.Fatalf("expected day2 00:00, got %+v", got)
	}
}

func TestAdvanceInvariants(t *testing.T) {
	c := New(nil, nil)
	steps := []float64{0, 1, 59.5, 60, 3599, 86400, 123456.75}
	total := 0.0
	for _, s := range steps {
		c.Advance(s)
		total += s
		got := c.Now()
		if got.Second < 0 || got.Second >= 60 || got.Minute < 0 || got.Minute > 59 ||
			got.Hour < 0 || got.Hour > 23 || got.Day < 1 {
			t.Fatalf("cascade invariant violated: %+v", got)
		}
	}
	want := timeFromAbs(GameTime{Day: 1, Hour: WakeHour}.absSeconds() + total)
	if got := c.Now(); got.Day != want.Day || got.Hour != want.Hour || got.Minute != want.Minute {
		t.Fatalf("elapsed total mismatch: got %+v want %+v", got, want)
	}
}

func TestPauseBlocksAdvance(t *testing.T) {
	fired := 0
	c := New(func(GameTime) { fired++ }, nil)
	c.Pause()
	if c.Advance(60) {
		t.Fatalf("advance while paused should be a no-op")
	}
	if fired != 0 {
		t.Fatalf("tick callback must not fire while paused")
	}
	c.Resume()
	if !c.Advance(60) || fired != 1 {
		t.Fatalf("advance after resume should fire callback once, fired=%d", fired)
	}
}

func TestSleepWakeBoundary(t *testing.T) {
	c := New(nil, nil)
	c.Advance(16 * 3600) // 07:00 -> 23:00
	c.StartSleep()
	if c.Speed() != SleepSpeedScale {
		t.Fatalf("sleep must force speed %d, got %d", SleepSpeedScale, c.Speed())
	}
	c.Advance(8 * 3600) // 23:00 -> 07:00 next day, exactly
	got := c.Now()
	if got.Day != 2 || got.Hour != 7 || got.Minute != 0 || got.Second != 0 {
		t.Fatalf("expected day2 07:00:00, got %+v", got)
	}
	if c.Sleeping() {
		t.Fatalf("clock should wake at 07:00")
	}
	if c.Speed() != 1 {
		t.Fatalf("speed should reset to 1 after wake, got %d", c.Speed())
	}
}

func TestSleepAdvancesThroughPause(t *testing.T) {
	c := New(nil, nil)
	c.Pause()
	c.StartSleep()
	if c.Paused() {
		t.Fatalf("sleep clears pause")
	}
	if !c.Advance(60) {
		t.Fatalf("sleep always advances time")
	}
}

func TestSleepIdempotent(t *testing.T) {
	c := New(nil, nil)
	c.StartSleep()
	c.StartSleep()
	if !c.Sleeping() || c.Speed() != SleepSpeedScale {
		t.Fatalf("double start changed state: speed=%d", c.Speed())
	}
	c.StopSleep()
	if c.Sleeping() || c.Speed() != 1 {
		t.Fatalf("stop sleep should restore awake 1x, speed=%d", c.Speed())
	}
	c.StopSleep() // no-op
}

func TestSetSpeedValidation(t *testing.T) {
	c := New(nil, nil)
	for _, ok := range []int{1, 2, 4} {
		c.SetSpeed(ok)
		if c.Speed() != ok {
			t.Fatalf("speed %d rejected", ok)
		}
	}
	for _, bad := range []int{0, 3, 8, 100, -1} {
		c.SetSpeed(bad)
		if c.Speed() != 4 {
			t.Fatalf("invalid speed %d accepted", bad)
		}
	}
}

func TestPauseIgnoredWhileSleeping(t *testing.T) {
	c := New(nil, nil)
	c.StartSleep()
	c.Pause()
	if c.Paused() {
		t.Fatalf("pause has no effect while sleeping")
	}
}

func TestNextWakeAbs(t *testing.T) {
	// From 23:00 day 1, the next wake is 07:00 day 2.
	start := GameTime{Day: 1, Hour: 23}.absSeconds()
	want := GameTime{Day: 2, Hour: 7}.absSeconds()
	if got := nextWakeAbs(start); got != want {
		t.Fatalf("next wake from 23:00: got %v want %v", got, want)
	}
	// Starting exactly at 07:00, the next wake is tomorrow.
	start = GameTime{Day: 3, Hour: 7}.absSeconds()
	want = GameTime{Day: 4, Hour: 7}.absSeconds()
	if got := nextWakeAbs(start); got != want {
		t.Fatalf("next wake from 07:00: got %v want %v", got, want)
	}
}
