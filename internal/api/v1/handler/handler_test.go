package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"app/internal/api/v1/dto"
	"app/internal/middleware"
	"app/internal/model"
	"app/internal/repository"
	"app/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// testServer wires the full handler stack over an in-memory session
// repository with a pinned clock.
func newTestServer(t *testing.T, now time.Time) *httptest.Server {
	t.Helper()
	logger := zerolog.Nop()
	validate := validator.New(validator.WithRequiredStructEnabled())
	defaults := model.Settings{SemesterStart: "2025-09-01", RemindMinutes: 10}
	sessions := repository.NewSessionRepository(defaults, time.Hour, logger)

	scheduleSvc := service.NewScheduleService(sessions)
	reminderSvc := service.NewReminderService()
	exportSvc := service.NewExportService()

	scheduleHandler := NewScheduleHandler(scheduleSvc, exportSvc, sessions, validate, logger)
	scheduleHandler.now = func() time.Time { return now }
	adjustmentHandler := NewAdjustmentHandler(scheduleSvc, validate, logger)
	dashboardHandler := NewDashboardHandler(scheduleSvc, reminderSvc, sessions, logger)
	dashboardHandler.now = func() time.Time { return now }
	settingsHandler := NewSettingsHandler(sessions, validate, logger)

	sessionMw := middleware.SessionMiddleware(sessions)
	mux := http.NewServeMux()
	scheduleHandler.RegisterRoutes(mux, sessionMw)
	adjustmentHandler.RegisterRoutes(mux, sessionMw)
	dashboardHandler.RegisterRoutes(mux, sessionMw)
	settingsHandler.RegisterRoutes(mux, sessionMw)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

func doJSON(t *testing.T, client *http.Client, method, url string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := client.Do(req)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// Monday 2025-09-01 08:00, the first morning of the semester.
var semesterMorning = time.Date(2025, time.September, 1, 8, 0, 0, 0, time.UTC)

func TestSessionCookieIssuedOnce(t *testing.T) {
	srv := newTestServer(t, semesterMorning)
	client := newClient(t)

	resp, err := client.Get(srv.URL + "/dashboard")
	require.NoError(t, err)
	resp.Body.Close()
	require.Len(t, resp.Cookies(), 1)
	assert.Equal(t, middleware.SessionCookieName, resp.Cookies()[0].Name)

	resp, err = client.Get(srv.URL + "/dashboard")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Empty(t, resp.Cookies(), "no new cookie once a session exists")
}

func TestImportRowsAndDashboard(t *testing.T) {
	srv := newTestServer(t, semesterMorning)
	client := newClient(t)

	resp := doJSON(t, client, http.MethodPost, srv.URL+"/schedule/rows", dto.ImportRowsRequest{
		Rows: []dto.CourseRowDTO{
			{Weekday: 1, Start: "08:05", End: "08:50", Name: "Math", Location: "A-101", Instructor: "Dr. Wu", Weeks: "1-16"},
			{Weekday: 1, Start: "14:00", End: "15:30", Name: "History", Weeks: "2-16"},
			{Weekday: 9, Start: "08:00", End: "08:45", Name: "Bogus"},
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	imported := decode[dto.ImportResponseDTO](t, resp)
	assert.Equal(t, dto.ImportResponseDTO{Imported: 2, Dropped: 1}, imported)

	resp, err := client.Get(srv.URL + "/dashboard")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	dashboard := decode[dto.DashboardResponseDTO](t, resp)

	assert.Equal(t, 1, dashboard.CurrentWeek)
	assert.Equal(t, 10, dashboard.RemindMinutes)
	// History runs from week 2 only; Math is today's single course
	require.Len(t, dashboard.Today, 1)
	assert.Equal(t, "Math", dashboard.Today[0].Name)
	// 08:05 falls inside the 08:00+10min window
	require.NotNil(t, dashboard.Reminder)
	assert.Equal(t, "Math", dashboard.Reminder.Course.Name)
}

func TestImportRowsValidation(t *testing.T) {
	srv := newTestServer(t, semesterMorning)
	client := newClient(t)

	resp := doJSON(t, client, http.MethodPost, srv.URL+"/schedule/rows", dto.ImportRowsRequest{
		Rows: []dto.CourseRowDTO{{Weekday: 1, Start: "08:00"}}, // no end, no name
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestImportWorkbookRoundTrip(t *testing.T) {
	srv := newTestServer(t, semesterMorning)
	client := newClient(t)

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	header := []string{"weekday", "start_time", "end_time", "course_name", "location", "instructor", "weeks"}
	require.NoError(t, f.SetSheetRow(sheet, "A1", &header))
	row := []string{"1", "09:00", "09:45", "Biology", "C-303", "Dr. Kim", "1-16"}
	require.NoError(t, f.SetSheetRow(sheet, "A2", &row))

	var book bytes.Buffer
	require.NoError(t, f.Write(&book))

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "schedule.xlsx")
	require.NoError(t, err)
	_, err = part.Write(book.Bytes())
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/schedule/import", &body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp, err := client.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	imported := decode[dto.ImportResponseDTO](t, resp)
	assert.Equal(t, dto.ImportResponseDTO{Imported: 1, Dropped: 0}, imported)

	resp, err = client.Get(srv.URL + "/schedule/today")
	require.NoError(t, err)
	day := decode[dto.DayScheduleResponseDTO](t, resp)
	require.Len(t, day.Rows, 1)
	assert.Equal(t, "Biology", day.Rows[0].Name)
}

func TestImportWorkbookMissingColumn(t *testing.T) {
	srv := newTestServer(t, semesterMorning)
	client := newClient(t)

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	header := []string{"weekday", "start_time", "end_time", "course_name", "instructor", "weeks"}
	require.NoError(t, f.SetSheetRow(sheet, "A1", &header))
	var book bytes.Buffer
	require.NoError(t, f.Write(&book))

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "schedule.xlsx")
	require.NoError(t, err)
	_, err = part.Write(book.Bytes())
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/schedule/import", &body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp, err := client.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	defer resp.Body.Close()
	var errBody struct {
		Error          string   `json:"error"`
		MissingColumns []string `json:"missing_columns"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&errBody))
	assert.Equal(t, []string{"location"}, errBody.MissingColumns)
}

func TestAdjustmentFlow(t *testing.T) {
	srv := newTestServer(t, semesterMorning)
	client := newClient(t)

	doJSON(t, client, http.MethodPost, srv.URL+"/schedule/rows", dto.ImportRowsRequest{
		Rows: []dto.CourseRowDTO{
			{Weekday: 1, Start: "08:00", End: "08:45", Name: "Math", Weeks: "1-16"},
		},
	}).Body.Close()

	resp := doJSON(t, client, http.MethodPost, srv.URL+"/adjustments", dto.AdjustmentCreateDTO{
		Weekday: 1, Weeks: "1-16",
		OriginalName: "Math", OriginalStart: "08:00",
		NewName: "Physics", NewStart: "08:00", NewEnd: "08:45",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.AdjustmentResponseDTO](t, resp)
	assert.Equal(t, 0, created.Index)

	resp, err := client.Get(srv.URL + "/schedule/today")
	require.NoError(t, err)
	day := decode[dto.DayScheduleResponseDTO](t, resp)
	require.Len(t, day.Rows, 1)
	assert.Equal(t, "Physics", day.Rows[0].Name)

	// deleting out of range is a silent no-op
	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/adjustments/9", nil)
	require.NoError(t, err)
	resp, err = client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	// delete the real one and Math is back
	req, err = http.NewRequest(http.MethodDelete, srv.URL+"/adjustments/0", nil)
	require.NoError(t, err)
	resp, err = client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, err = client.Get(srv.URL + "/schedule/today")
	require.NoError(t, err)
	day = decode[dto.DayScheduleResponseDTO](t, resp)
	require.Len(t, day.Rows, 1)
	assert.Equal(t, "Math", day.Rows[0].Name)
}

func TestAdjustmentValidation(t *testing.T) {
	srv := newTestServer(t, semesterMorning)
	client := newClient(t)

	resp := doJSON(t, client, http.MethodPost, srv.URL+"/adjustments", dto.AdjustmentCreateDTO{
		Weekday: 1, OriginalName: "Math", // missing start and replacements
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestSettingsUpdateChangesWeek(t *testing.T) {
	srv := newTestServer(t, semesterMorning)
	client := newClient(t)

	start := "2025-08-18" // two weeks earlier
	minutes := 20
	resp := doJSON(t, client, http.MethodPut, srv.URL+"/settings", dto.SettingsUpdateDTO{
		SemesterStart: &start,
		RemindMinutes: &minutes,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	settings := decode[dto.SettingsResponseDTO](t, resp)
	assert.Equal(t, start, settings.SemesterStart)
	assert.Equal(t, 20, settings.RemindMinutes)

	resp, err := client.Get(srv.URL + "/dashboard")
	require.NoError(t, err)
	dashboard := decode[dto.DashboardResponseDTO](t, resp)
	assert.Equal(t, 3, dashboard.CurrentWeek)
	assert.Equal(t, 20, dashboard.RemindMinutes)
}

func TestSettingsValidation(t *testing.T) {
	srv := newTestServer(t, semesterMorning)
	client := newClient(t)

	minutes := 7 // not one of the offered choices
	resp := doJSON(t, client, http.MethodPut, srv.URL+"/settings", dto.SettingsUpdateDTO{RemindMinutes: &minutes})
	resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	bad := "September 1st"
	resp = doJSON(t, client, http.MethodPut, srv.URL+"/settings", dto.SettingsUpdateDTO{SemesterStart: &bad})
	resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestExportICS(t *testing.T) {
	srv := newTestServer(t, semesterMorning)
	client := newClient(t)

	doJSON(t, client, http.MethodPost, srv.URL+"/schedule/rows", dto.ImportRowsRequest{
		Rows: []dto.CourseRowDTO{
			{Weekday: 1, Start: "08:00", End: "08:45", Name: "Math", Location: "A-101", Weeks: "1-16"},
		},
	}).Body.Close()

	resp, err := client.Get(srv.URL + "/schedule/export.ics")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/calendar")

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	out := buf.String()
	assert.True(t, strings.Contains(out, "SUMMARY:Math"), "ics should contain the course")
	assert.Contains(t, out, "20250901T080000")
}

func TestSessionsAreIsolated(t *testing.T) {
	srv := newTestServer(t, semesterMorning)
	first := newClient(t)
	second := newClient(t)

	doJSON(t, first, http.MethodPost, srv.URL+"/schedule/rows", dto.ImportRowsRequest{
		Rows: []dto.CourseRowDTO{
			{Weekday: 1, Start: "08:00", End: "08:45", Name: "Math", Weeks: "1-16"},
		},
	}).Body.Close()

	resp, err := first.Get(srv.URL + "/schedule/today")
	require.NoError(t, err)
	day := decode[dto.DayScheduleResponseDTO](t, resp)
	assert.Len(t, day.Rows, 1)

	resp, err = second.Get(srv.URL + "/schedule/today")
	require.NoError(t, err)
	day = decode[dto.DayScheduleResponseDTO](t, resp)
	assert.Empty(t, day.Rows, "second session must not see the first session's schedule")
}
