package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/grafytimes/grafytimes/internal/config"
	"github.com/grafytimes/grafytimes/internal/utils"
	"github.com/grafytimes/grafytimes/pkg/goal"
	"github.com/grafytimes/grafytimes/pkg/note"
	"github.com/grafytimes/grafytimes/pkg/stats"
	"github.com/grafytimes/grafytimes/pkg/study"
	"github.com/grafytimes/grafytimes/pkg/user"
	"github.com/grafytimes/grafytimes/pkg/worklog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T) *mux.Router {
	repos := Repositories{
		Users:   user.NewStubUserRepository(),
		Records: worklog.NewStubRepository(),
		Goals:   goal.NewStubRepository(),
		Studies: study.NewStubRepository(),
		Notes:   note.NewStubRepository(),
	}
	clock := &utils.MockClock{FixedNow: time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)}
	return NewRouter(WireDependencies(repos, clock, config.Defaults()))
}

func doRequest(r *mux.Router, method, target, uid, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if uid != "" {
		req.Header.Set(userIdHeader, uid)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func createUser(t *testing.T, r *mux.Router) string {
	rec := doRequest(r, http.MethodPost, "/api/user", "", `{"username":"ana","displayName":"Ana"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created user.UserDTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	require.NotEmpty(t, created.Uid)
	return created.Uid
}

func TestUserMiddleware(t *testing.T) {
	r := setupRouter(t)
	uid := createUser(t, r)

	assert.Equal(t, http.StatusOK, doRequest(r, http.MethodGet, "/api/user/current", uid, "").Code)
	assert.Equal(t, http.StatusForbidden, doRequest(r, http.MethodGet, "/api/user/current", "unknown", "").Code)
}

func TestMonthFlow(t *testing.T) {
	// given
	r := setupRouter(t)
	uid := createUser(t, r)

	require.Equal(t, http.StatusOK, doRequest(r, http.MethodPut, "/api/goal/2024-06", uid, `{"value":"50"}`).Code)
	studyRec := doRequest(r, http.MethodPut, "/api/study", uid, `{"name":"Maria"}`)
	require.Equal(t, http.StatusOK, studyRec.Code)
	var maria study.BibleStudyDTO
	require.NoError(t, json.NewDecoder(studyRec.Body).Decode(&maria))

	require.Equal(t, http.StatusOK, doRequest(r, http.MethodPut, "/api/worklog", uid,
		`{"date":"2024-06-03","hours":2,"activityType":"Preaching","studyId":"`+maria.Id+`"}`).Code)
	require.Equal(t, http.StatusOK, doRequest(r, http.MethodPut, "/api/worklog", uid,
		`{"date":"2024-06-03","startTime":"09:00","endTime":"10:30"}`).Code)

	// when
	monthlyRec := doRequest(r, http.MethodGet, "/api/stats/monthly?month=2024-06", uid, "")
	progressRec := doRequest(r, http.MethodGet, "/api/goal/progress?date=2024-06-10", uid, "")
	studiesRec := doRequest(r, http.MethodGet, "/api/study", uid, "")

	// then
	require.Equal(t, http.StatusOK, monthlyRec.Code)
	var monthly stats.MonthlyStatisticsDTO
	require.NoError(t, json.NewDecoder(monthlyRec.Body).Decode(&monthly))
	assert.Equal(t, "2024-06", monthly.YearMonth)
	assert.Equal(t, 3.5, monthly.TotalHours)
	assert.Equal(t, 50.0, monthly.GoalHours)
	assert.Equal(t, 7.0, monthly.GoalPercentage)
	assert.Equal(t, 1, monthly.DistinctStudyCount)
	assert.Equal(t, 1, monthly.DaysWorked)

	require.Equal(t, http.StatusOK, progressRec.Code)
	var progress goal.ProgressDTO
	require.NoError(t, json.NewDecoder(progressRec.Body).Decode(&progress))
	assert.Equal(t, "BEHIND", progress.Status)
	assert.Equal(t, 2.3, progress.DailyRequired)
	assert.Equal(t, 21, progress.RemainingDays)

	var studies []study.BibleStudyDTO
	require.NoError(t, json.NewDecoder(studiesRec.Body).Decode(&studies))
	require.Len(t, studies, 1)
	require.NotNil(t, studies[0].LastVisitDate)
	assert.Equal(t, "2024-06-03", *studies[0].LastVisitDate)
}

func TestReportFollowsAcceptHeader(t *testing.T) {
	// given
	r := setupRouter(t)
	uid := createUser(t, r)
	require.Equal(t, http.StatusOK, doRequest(r, http.MethodPut, "/api/worklog", uid,
		`{"date":"2024-06-03","hours":2,"activityType":"Preaching"}`).Code)

	// when
	text := doRequest(r, http.MethodGet, "/api/stats/report?month=2024-06", uid, "")
	req := httptest.NewRequest(http.MethodGet, "/api/stats/report?month=2024-06", nil)
	req.Header.Set(userIdHeader, uid)
	req.Header.Set("Accept", "text/calendar")
	calendar := httptest.NewRecorder()
	r.ServeHTTP(calendar, req)

	// then
	require.Equal(t, http.StatusOK, text.Code)
	assert.True(t, strings.HasPrefix(text.Header().Get("Content-Type"), "text/plain"))
	assert.Contains(t, text.Body.String(), "SERVICE REPORT - June 2024")
	require.Equal(t, http.StatusOK, calendar.Code)
	assert.True(t, strings.HasPrefix(calendar.Header().Get("Content-Type"), "text/calendar"))
	assert.Contains(t, calendar.Body.String(), "BEGIN:VCALENDAR")
}
