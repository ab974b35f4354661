//go:build integration_test || all_tests

package test

import (
	"database/sql"
	"fmt"
	"net/http"

	"github.com/2beens/ironlog/internal/gymstats/analytics"
	"github.com/2beens/ironlog/internal/gymstats/bodyweight"
	"github.com/2beens/ironlog/internal/gymstats/sessions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestUserIsolation() {
	t := s.T()
	alice := s.signup(t)
	bob := s.signup(t)

	squatID := s.exerciseID(t, alice, "Squat")
	aliceSession := s.newSession(t, alice, "")
	aliceSetID := s.logSet(t, alice, sessions.NewSetRequest{
		SessionID: aliceSession.ID, ExerciseID: squatID, SetNumber: 1, Reps: intPtr(5), WeightKg: floatPtr(120),
	})
	var aliceCardio sessions.Cardio
	s.callJSON(t, http.MethodPost, "/api/cardio", alice.Token, sessions.NewCardioRequest{
		SessionID: aliceSession.ID, DistanceKm: floatPtr(5), DurationMin: floatPtr(25),
	}, http.StatusCreated, &aliceCardio)
	s.callJSON(t, http.MethodPost, "/api/bodyweight", alice.Token, bodyweight.NewEntryRequest{WeightKg: floatPtr(70.4)}, http.StatusCreated, nil)

	// bob sees none of it
	var bobSessions []sessions.Summary
	s.callJSON(t, http.MethodGet, "/api/sessions", bob.Token, nil, http.StatusOK, &bobSessions)
	assert.Empty(t, bobSessions)

	var bobWeights []bodyweight.Entry
	s.callJSON(t, http.MethodGet, "/api/bodyweight", bob.Token, nil, http.StatusOK, &bobWeights)
	assert.Empty(t, bobWeights)

	var bobOverview analytics.Overview
	s.callJSON(t, http.MethodGet, "/api/analytics/overview", bob.Token, nil, http.StatusOK, &bobOverview)
	assert.Zero(t, bobOverview.Totals.TotalSessions)
	assert.Zero(t, bobOverview.Totals.TotalSets)
	assert.Zero(t, bobOverview.CardioTotals.TotalCardio)
	assert.Empty(t, bobOverview.BodyWeightTrend)

	// even with alice's ids
	status, _ := s.call(t, http.MethodGet, fmt.Sprintf("/api/sessions/%d", aliceSession.ID), bob.Token, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = s.call(t, http.MethodPost, fmt.Sprintf("/api/sessions/%d/end", aliceSession.ID), bob.Token, map[string]any{"calories_burned": 1})
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = s.call(t, http.MethodPost, "/api/sets", bob.Token, sessions.NewSetRequest{
		SessionID: aliceSession.ID, ExerciseID: squatID, SetNumber: 2, Reps: intPtr(1),
	})
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = s.call(t, http.MethodPost, "/api/cardio", bob.Token, sessions.NewCardioRequest{SessionID: aliceSession.ID})
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = s.call(t, http.MethodDelete, fmt.Sprintf("/api/sets/%d", aliceSetID), bob.Token, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = s.call(t, http.MethodDelete, fmt.Sprintf("/api/cardio/%d", aliceCardio.ID), bob.Token, nil)
	assert.Equal(t, http.StatusNotFound, status)

	// alice's rows are untouched
	var setCount, cardioCount int
	require.NoError(t, s.DB.QueryRow(`SELECT COUNT(*) FROM workout_set WHERE session_id = $1`, aliceSession.ID).Scan(&setCount))
	require.NoError(t, s.DB.QueryRow(`SELECT COUNT(*) FROM cardio_log WHERE session_id = $1`, aliceSession.ID).Scan(&cardioCount))
	assert.Equal(t, 1, setCount)
	assert.Equal(t, 1, cardioCount)

	var ended sql.NullTime
	require.NoError(t, s.DB.QueryRow(`SELECT ended_at FROM workout_session WHERE id = $1`, aliceSession.ID).Scan(&ended))
	assert.False(t, ended.Valid)

	var detail sessions.Detail
	s.callJSON(t, http.MethodGet, fmt.Sprintf("/api/sessions/%d", aliceSession.ID), alice.Token, nil, http.StatusOK, &detail)
	require.Len(t, detail.Sets, 1)
	require.Len(t, detail.Cardio, 1)
	assert.Equal(t, "Squat", detail.Sets[0].ExerciseName)

	// and alice can delete her own
	s.callJSON(t, http.MethodDelete, fmt.Sprintf("/api/sets/%d", aliceSetID), alice.Token, nil, http.StatusOK, nil)
	status, _ = s.call(t, http.MethodDelete, fmt.Sprintf("/api/sets/%d", aliceSetID), alice.Token, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func (s *IntegrationTestSuite) TestCardioPace() {
	t := s.T()
	u := s.signup(t)
	session := s.newSession(t, u, "")

	cases := map[string]struct {
		body     map[string]any
		wantPace *float64
	}{
		"distance and duration": {
			body:     map[string]any{"distance_km": 5.0, "duration_min": 27.5},
			wantPace: floatPtr(5.5),
		},
		"rounded to two decimals": {
			body:     map[string]any{"distance_km": 3.0, "duration_min": 20.0},
			wantPace: floatPtr(6.67),
		},
		"zero distance": {
			body: map[string]any{"distance_km": 0.0, "duration_min": 30.0},
		},
		"no duration": {
			body: map[string]any{"distance_km": 4.0},
		},
		"client pace is ignored": {
			body: map[string]any{"duration_min": 30.0, "avg_pace_min_km": 4.2},
		},
	}

	for name, tc := range cases {
		tc.body["session_id"] = session.ID
		var cardio sessions.Cardio
		s.callJSON(t, http.MethodPost, "/api/cardio", u.Token, tc.body, http.StatusCreated, &cardio)
		assert.Equal(t, "running", cardio.ActivityType, name)

		var stored sql.NullFloat64
		require.NoError(t, s.DB.QueryRow(`SELECT avg_pace_min_km FROM cardio_log WHERE id = $1`, cardio.ID).Scan(&stored), name)
		if tc.wantPace == nil {
			assert.False(t, stored.Valid, name)
			assert.Nil(t, cardio.AvgPaceMinKm, name)
			continue
		}
		require.True(t, stored.Valid, name)
		assert.InDelta(t, *tc.wantPace, stored.Float64, 1e-9, name)
		require.NotNil(t, cardio.AvgPaceMinKm, name)
		assert.InDelta(t, *tc.wantPace, *cardio.AvgPaceMinKm, 1e-9, name)
	}
}

func (s *IntegrationTestSuite) TestSessionVolume() {
	t := s.T()
	u := s.signup(t)
	benchID := s.exerciseID(t, u, "Bench Press")
	session := s.newSession(t, u, "")

	s.logSet(t, u, sessions.NewSetRequest{SessionID: session.ID, ExerciseID: benchID, SetNumber: 1, Reps: intPtr(5), WeightKg: floatPtr(100)})
	s.logSet(t, u, sessions.NewSetRequest{SessionID: session.ID, ExerciseID: benchID, SetNumber: 2, Reps: intPtr(5)})

	var list []sessions.Summary
	s.callJSON(t, http.MethodGet, "/api/sessions", u.Token, nil, http.StatusOK, &list)
	require.Len(t, list, 1)
	assert.Equal(t, session.ID, list[0].ID)
	assert.Equal(t, 2, list[0].TotalSets)
	assert.Equal(t, 500.0, list[0].TotalVolume)

	var overview analytics.Overview
	s.callJSON(t, http.MethodGet, "/api/analytics/overview", u.Token, nil, http.StatusOK, &overview)
	assert.Equal(t, 500.0, overview.Totals.TotalVolume)
	assert.Equal(t, 2, overview.Totals.TotalSets)
	require.Len(t, overview.WeeklyVolume, 1)
	assert.Equal(t, 500.0, overview.WeeklyVolume[0].Volume)
}

func (s *IntegrationTestSuite) TestDuplicateGlobalExercise() {
	t := s.T()
	u := s.signup(t)

	var before int
	require.NoError(t, s.DB.QueryRow(`SELECT COUNT(*) FROM exercise WHERE name = 'Squat'`).Scan(&before))
	require.Equal(t, 1, before)

	status, body := s.call(t, http.MethodPost, "/api/exercises", u.Token, map[string]any{"name": "Squat", "muscle_group": "Legs"})
	assert.Equal(t, http.StatusConflict, status, string(body))

	var after int
	require.NoError(t, s.DB.QueryRow(`SELECT COUNT(*) FROM exercise WHERE name = 'Squat'`).Scan(&after))
	assert.Equal(t, before, after)

	// a new name works once, then conflicts for the same user
	s.callJSON(t, http.MethodPost, "/api/exercises", u.Token, map[string]any{"name": "Zercher Squat"}, http.StatusCreated, nil)
	status, _ = s.call(t, http.MethodPost, "/api/exercises", u.Token, map[string]any{"name": "Zercher Squat"})
	assert.Equal(t, http.StatusConflict, status)

	status, _ = s.call(t, http.MethodPost, "/api/exercises", u.Token, map[string]any{"name": "   "})
	assert.Equal(t, http.StatusBadRequest, status)
}

func (s *IntegrationTestSuite) TestEndSessionTwice() {
	t := s.T()
	u := s.signup(t)
	session := s.newSession(t, u, "")
	path := fmt.Sprintf("/api/sessions/%d/end", session.ID)

	var ended sessions.Session
	s.callJSON(t, http.MethodPost, path, u.Token, map[string]any{"calories_burned": 300}, http.StatusOK, &ended)
	require.NotNil(t, ended.CaloriesBurned)
	assert.Equal(t, 300, *ended.CaloriesBurned)

	s.callJSON(t, http.MethodPost, path, u.Token, map[string]any{"calories_burned": 450}, http.StatusOK, &ended)
	require.NotNil(t, ended.EndedAt)

	var calories sql.NullInt64
	var endedAt sql.NullTime
	require.NoError(t, s.DB.QueryRow(
		`SELECT calories_burned, ended_at FROM workout_session WHERE id = $1`, session.ID,
	).Scan(&calories, &endedAt))
	assert.True(t, calories.Valid)
	assert.Equal(t, int64(450), calories.Int64)
	assert.True(t, endedAt.Valid)

	status, _ := s.call(t, http.MethodPost, "/api/sessions/999999999/end", u.Token, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func (s *IntegrationTestSuite) TestHeatmap() {
	t := s.T()
	u := s.signup(t)

	for i := 0; i < 3; i++ {
		s.newSession(t, u, "")
	}
	s.newSession(t, u, daysAgo(2))
	s.newSession(t, u, daysAgo(200))

	var overview analytics.Overview
	s.callJSON(t, http.MethodGet, "/api/analytics/overview", u.Token, nil, http.StatusOK, &overview)
	require.Len(t, overview.Heatmap, 2)
	assert.Equal(t, daysAgo(2), overview.Heatmap[0].Date.String())
	assert.Equal(t, 1, overview.Heatmap[0].Count)
	assert.Equal(t, daysAgo(0), overview.Heatmap[1].Date.String())
	assert.Equal(t, 3, overview.Heatmap[1].Count)

	// the old session still counts in the all-time totals
	assert.Equal(t, 5, overview.Totals.TotalSessions)
}

func (s *IntegrationTestSuite) TestExerciseProgression() {
	t := s.T()
	u := s.signup(t)
	benchID := s.exerciseID(t, u, "Bench Press")

	first := s.newSession(t, u, daysAgo(7))
	second := s.newSession(t, u, daysAgo(1))
	s.logSet(t, u, sessions.NewSetRequest{SessionID: second.ID, ExerciseID: benchID, SetNumber: 1, Reps: intPtr(5), WeightKg: floatPtr(85)})
	s.logSet(t, u, sessions.NewSetRequest{SessionID: first.ID, ExerciseID: benchID, SetNumber: 1, Reps: intPtr(8), WeightKg: floatPtr(70)})
	s.logSet(t, u, sessions.NewSetRequest{SessionID: first.ID, ExerciseID: benchID, SetNumber: 2, Reps: intPtr(5), WeightKg: floatPtr(80)})

	var overview analytics.Overview
	s.callJSON(t, http.MethodGet, "/api/analytics/overview", u.Token, nil, http.StatusOK, &overview)
	require.Contains(t, overview.ExerciseProgress, "Bench Press")
	bench := overview.ExerciseProgress["Bench Press"]
	assert.Equal(t, "Chest", bench.Muscle)
	require.Len(t, bench.Data, 2)
	assert.Equal(t, daysAgo(7), bench.Data[0].Date.String())
	assert.Equal(t, 80.0, bench.Data[0].MaxWeight)
	assert.Equal(t, 8, bench.Data[0].MaxReps)
	assert.Equal(t, daysAgo(1), bench.Data[1].Date.String())
	assert.Equal(t, 85.0, bench.Data[1].MaxWeight)
}

func (s *IntegrationTestSuite) TestBodyWeight() {
	t := s.T()
	u := s.signup(t)

	status, _ := s.call(t, http.MethodPost, "/api/bodyweight", u.Token, map[string]any{"weight_kg": 0})
	assert.Equal(t, http.StatusBadRequest, status)

	s.callJSON(t, http.MethodPost, "/api/bodyweight", u.Token, map[string]any{"weight_kg": 81.5, "date": daysAgo(3)}, http.StatusCreated, nil)
	var today bodyweight.Entry
	s.callJSON(t, http.MethodPost, "/api/bodyweight", u.Token, map[string]any{"weight_kg": 80.9}, http.StatusCreated, &today)
	assert.Equal(t, daysAgo(0), today.LoggedAt.String())

	var entries []bodyweight.Entry
	s.callJSON(t, http.MethodGet, "/api/bodyweight", u.Token, nil, http.StatusOK, &entries)
	require.Len(t, entries, 2)
	assert.Equal(t, 80.9, entries[0].WeightKg)
	assert.Equal(t, 81.5, entries[1].WeightKg)
}
