package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type TrackerTestSuite struct {
	suite.Suite
	tracker *Tracker
	clock   time.Time
}

func TestTrackerSuite(t *testing.T) {
	suite.Run(t, new(TrackerTestSuite))
}

// SetupTest pins the tracker to a controllable clock.
func (s *TrackerTestSuite) SetupTest() {
	s.clock = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	s.tracker = NewTracker(30 * time.Minute)
	s.tracker.now = func() time.Time { return s.clock }
	// Reset the session so StartTime uses the pinned clock.
	s.tracker.current = s.tracker.newSession()
}

func (s *TrackerTestSuite) advance(d time.Duration) {
	s.clock = s.clock.Add(d)
}

func (s *TrackerTestSuite) TestFreshSessionCounters() {
	snap := s.tracker.Snapshot()

	s.NotEmpty(snap.ID)
	s.Equal(1, snap.PageViews)
	s.Equal(0, snap.Interactions)
	s.Equal(snap.StartTime, snap.LastActive)
}

func (s *TrackerTestSuite) TestFirstEventIsAbsorbedByFreshSession() {
	s.tracker.RecordPageView()

	snap := s.tracker.Snapshot()
	s.Equal(1, snap.PageViews) // the landing view, not a second one
	s.Equal(0, snap.Interactions)
}

func (s *TrackerTestSuite) TestActivityWithinTimeoutKeepsSession() {
	s.tracker.RecordActivity()
	before := s.tracker.Snapshot()

	s.advance(10 * time.Minute)
	s.tracker.RecordActivity()

	after := s.tracker.Snapshot()
	s.Equal(before.ID, after.ID)
	s.Equal(before.Interactions+1, after.Interactions)
	s.Equal(s.clock, after.LastActive)
}

func (s *TrackerTestSuite) TestRolloverAfterTimeout() {
	s.tracker.RecordActivity()
	before := s.tracker.Snapshot()

	s.advance(31 * time.Minute)
	s.tracker.RecordActivity()

	after := s.tracker.Snapshot()
	s.NotEqual(before.ID, after.ID)
	s.Equal(1, after.PageViews)
	s.Equal(0, after.Interactions) // the rolling event is absorbed
	s.Equal(s.clock, after.StartTime)
}

func (s *TrackerTestSuite) TestCountingResumesAfterRollover() {
	s.advance(31 * time.Minute)
	s.tracker.RecordPageView() // rolls over, absorbed

	s.advance(time.Minute)
	s.tracker.RecordPageView()
	s.tracker.RecordActivity()

	snap := s.tracker.Snapshot()
	s.Equal(2, snap.PageViews)
	s.Equal(1, snap.Interactions)
}

func (s *TrackerTestSuite) TestActivityExactlyAtTimeoutKeepsSession() {
	s.tracker.RecordActivity()
	before := s.tracker.Snapshot()

	s.advance(30 * time.Minute)
	s.tracker.RecordActivity()

	s.Equal(before.ID, s.tracker.Snapshot().ID)
}

func (s *TrackerTestSuite) TestPageViewIsNotAnInteraction() {
	s.tracker.RecordPageView()
	s.tracker.RecordPageView()

	snap := s.tracker.Snapshot()
	s.Equal(2, snap.PageViews)
	s.Equal(0, snap.Interactions)
}

func (s *TrackerTestSuite) TestTouchOnlyRefreshesActivity() {
	s.advance(5 * time.Minute)
	s.tracker.Touch()

	snap := s.tracker.Snapshot()
	s.Equal(1, snap.PageViews)
	s.Equal(0, snap.Interactions)
	s.Equal(s.clock, snap.LastActive)
}

func (s *TrackerTestSuite) TestDurationGrowsWithClock() {
	s.advance(90 * time.Second)
	s.tracker.Touch()

	snap := s.tracker.Snapshot()
	s.Equal(90*time.Second, snap.Duration(s.clock))
}
