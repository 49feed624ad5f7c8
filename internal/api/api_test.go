package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"resourceplanner/internal/storage/sqlite"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	tempDir, err := os.MkdirTemp("", "resourceplanner-api-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	ts := httptest.NewServer(NewServer(store).Routes())
	t.Cleanup(ts.Close)
	return ts
}

// doJSON issues a request with an optional JSON body and decodes the JSON
// response into a generic map.
func doJSON(t *testing.T, method, url string, body any) (int, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("Failed to encode request body: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("Failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	var decoded map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return resp.StatusCode, decoded
}

func doJSONList(t *testing.T, url string) (int, []map[string]any) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	var decoded []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return resp.StatusCode, decoded
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	status, body := doJSON(t, http.MethodGet, ts.URL+"/health", nil)
	if status != http.StatusOK {
		t.Errorf("status = %d, want 200", status)
	}
	if body["status"] != "OK" {
		t.Errorf("body = %v, want status OK", body)
	}
}

func TestEndToEnd(t *testing.T) {
	ts := newTestServer(t)

	var aliceID, bobID, projectID, assignmentID float64

	t.Run("create persons", func(t *testing.T) {
		status, alice := doJSON(t, http.MethodPost, ts.URL+"/persons", map[string]any{
			"name": "Alice", "working_hours": 35,
		})
		if status != http.StatusCreated {
			t.Fatalf("status = %d, want 201: %v", status, alice)
		}
		aliceID = alice["id"].(float64)

		status, bob := doJSON(t, http.MethodPost, ts.URL+"/persons", map[string]any{
			"name": "Bob", "working_hours": 40,
		})
		if status != http.StatusCreated {
			t.Fatalf("status = %d, want 201: %v", status, bob)
		}
		bobID = bob["id"].(float64)

		if aliceID == bobID {
			t.Errorf("ids collide: %v", aliceID)
		}
	})

	t.Run("create project with budget", func(t *testing.T) {
		status, project := doJSON(t, http.MethodPost, ts.URL+"/projects", map[string]any{
			"name":               "Phoenix",
			"project_manager_id": aliceID,
			"budget":             "50000.00",
		})
		if status != http.StatusCreated {
			t.Fatalf("status = %d, want 201: %v", status, project)
		}
		projectID = project["id"].(float64)
		if project["project_manager_name"] != "Alice" {
			t.Errorf("project_manager_name = %v, want Alice", project["project_manager_name"])
		}
		if project["budget"] != "50000.00" {
			t.Errorf("budget = %v, want 50000.00", project["budget"])
		}
	})

	t.Run("create assignment", func(t *testing.T) {
		status, assignment := doJSON(t, http.MethodPost, ts.URL+"/assignments", map[string]any{
			"project_id":     projectID,
			"person_id":      bobID,
			"assigned_hours": 80,
			"timeline_start": "2024-01-01",
			"timeline_end":   "2024-02-28",
		})
		if status != http.StatusCreated {
			t.Fatalf("status = %d, want 201: %v", status, assignment)
		}
		assignmentID = assignment["id"].(float64)
		if assignment["person_name"] != "Bob" {
			t.Errorf("person_name = %v, want Bob", assignment["person_name"])
		}
		if assignment["project_name"] != "Phoenix" {
			t.Errorf("project_name = %v, want Phoenix", assignment["project_name"])
		}
		if assignment["timeline_start"] != "2024-01-01" {
			t.Errorf("timeline_start = %v, want 2024-01-01", assignment["timeline_start"])
		}
	})

	t.Run("manager view joins projects and assignments", func(t *testing.T) {
		url := fmt.Sprintf("%s/project_manager/%.0f/projects", ts.URL, aliceID)
		status, projects := doJSONList(t, url)
		if status != http.StatusOK {
			t.Fatalf("status = %d, want 200", status)
		}
		if len(projects) != 1 {
			t.Fatalf("got %d projects, want 1", len(projects))
		}
		p := projects[0]
		if p["project_manager_name"] != "Alice" {
			t.Errorf("project_manager_name = %v, want Alice", p["project_manager_name"])
		}
		assignments, ok := p["assignments"].([]any)
		if !ok || len(assignments) != 1 {
			t.Fatalf("assignments = %v, want exactly one", p["assignments"])
		}
		a := assignments[0].(map[string]any)
		if a["person_name"] != "Bob" {
			t.Errorf("nested person_name = %v, want Bob", a["person_name"])
		}
	})

	t.Run("reads are idempotent", func(t *testing.T) {
		url := fmt.Sprintf("%s/persons/%.0f", ts.URL, bobID)
		_, first := doJSON(t, http.MethodGet, url, nil)
		_, second := doJSON(t, http.MethodGet, url, nil)
		if first["name"] != second["name"] || first["working_hours"] != second["working_hours"] {
			t.Errorf("repeated reads differ: %v vs %v", first, second)
		}
	})

	t.Run("partial update leaves other fields intact", func(t *testing.T) {
		url := fmt.Sprintf("%s/persons/%.0f", ts.URL, bobID)
		status, updated := doJSON(t, http.MethodPut, url, map[string]any{
			"working_hours": 32,
		})
		if status != http.StatusOK {
			t.Fatalf("status = %d, want 200: %v", status, updated)
		}
		if updated["name"] != "Bob" {
			t.Errorf("name = %v, want Bob untouched", updated["name"])
		}
		if updated["working_hours"] != float64(32) {
			t.Errorf("working_hours = %v, want 32", updated["working_hours"])
		}
	})

	t.Run("utilization reflects assignments", func(t *testing.T) {
		url := fmt.Sprintf("%s/persons/%.0f/utilization", ts.URL, bobID)
		status, load := doJSON(t, http.MethodGet, url, nil)
		if status != http.StatusOK {
			t.Fatalf("status = %d, want 200: %v", status, load)
		}
		if load["assigned_hours"] != float64(80) {
			t.Errorf("assigned_hours = %v, want 80", load["assigned_hours"])
		}
		if load["assignment_count"] != float64(1) {
			t.Errorf("assignment_count = %v, want 1", load["assignment_count"])
		}
		if load["utilization"] != 2.5 {
			t.Errorf("utilization = %v, want 2.5", load["utilization"])
		}
	})

	t.Run("delete assigned person is rejected", func(t *testing.T) {
		url := fmt.Sprintf("%s/persons/%.0f", ts.URL, bobID)
		status, body := doJSON(t, http.MethodDelete, url, nil)
		if status != http.StatusConflict {
			t.Errorf("status = %d, want 409: %v", status, body)
		}
	})

	t.Run("delete manager is rejected", func(t *testing.T) {
		url := fmt.Sprintf("%s/persons/%.0f", ts.URL, aliceID)
		status, body := doJSON(t, http.MethodDelete, url, nil)
		if status != http.StatusConflict {
			t.Errorf("status = %d, want 409: %v", status, body)
		}
	})

	t.Run("project delete cascades to assignments", func(t *testing.T) {
		url := fmt.Sprintf("%s/projects/%.0f", ts.URL, projectID)
		status, body := doJSON(t, http.MethodDelete, url, nil)
		if status != http.StatusOK {
			t.Fatalf("status = %d, want 200: %v", status, body)
		}
		if body["message"] != "project deleted" {
			t.Errorf("message = %v, want project deleted", body["message"])
		}

		aURL := fmt.Sprintf("%s/assignments/%.0f", ts.URL, assignmentID)
		status, _ = doJSON(t, http.MethodGet, aURL, nil)
		if status != http.StatusNotFound {
			t.Errorf("assignment survived cascade: status = %d, want 404", status)
		}
	})

	t.Run("unassigned person can now be deleted", func(t *testing.T) {
		url := fmt.Sprintf("%s/persons/%.0f", ts.URL, bobID)
		status, body := doJSON(t, http.MethodDelete, url, nil)
		if status != http.StatusOK {
			t.Errorf("status = %d, want 200: %v", status, body)
		}
		if body["message"] != "person deleted" {
			t.Errorf("message = %v, want person deleted", body["message"])
		}
	})
}

func TestValidationErrors(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name     string
		method   string
		path     string
		body     any
		wantCode string
	}{
		{
			name:     "person missing name",
			method:   http.MethodPost,
			path:     "/persons",
			body:     map[string]any{"working_hours": 40},
			wantCode: "REQUIRED",
		},
		{
			name:     "person empty name",
			method:   http.MethodPost,
			path:     "/persons",
			body:     map[string]any{"name": "  ", "working_hours": 40},
			wantCode: "INVALID",
		},
		{
			name:     "person zero hours",
			method:   http.MethodPost,
			path:     "/persons",
			body:     map[string]any{"name": "Zed", "working_hours": 0},
			wantCode: "OUT_OF_RANGE",
		},
		{
			name:     "project with unknown manager",
			method:   http.MethodPost,
			path:     "/projects",
			body:     map[string]any{"name": "Ghost", "project_manager_id": 999},
			wantCode: "DANGLING_REFERENCE",
		},
		{
			name:   "assignment with unknown refs",
			method: http.MethodPost,
			path:   "/assignments",
			body: map[string]any{
				"project_id": 999, "person_id": 999, "assigned_hours": 10,
				"timeline_start": "2024-01-01", "timeline_end": "2024-01-31",
			},
			wantCode: "DANGLING_REFERENCE",
		},
		{
			name:   "assignment with inverted timeline",
			method: http.MethodPost,
			path:   "/assignments",
			body: map[string]any{
				"project_id": 1, "person_id": 1, "assigned_hours": 10,
				"timeline_start": "2024-02-01", "timeline_end": "2024-01-01",
			},
			wantCode: "INVALID_RANGE",
		},
		{
			name:     "malformed body",
			method:   http.MethodPost,
			path:     "/persons",
			body:     "not an object",
			wantCode: "INVALID",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := doJSON(t, tt.method, ts.URL+tt.path, tt.body)
			if status != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400: %v", status, body)
			}
			if body["code"] != tt.wantCode {
				t.Errorf("code = %v, want %s", body["code"], tt.wantCode)
			}
		})
	}
}

func TestNotFound(t *testing.T) {
	ts := newTestServer(t)

	paths := []string{
		"/persons/999",
		"/persons/abc",
		"/projects/999",
		"/assignments/999",
		"/project_manager/999/projects",
	}
	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			resp, err := http.Get(ts.URL + path)
			if err != nil {
				t.Fatalf("Request failed: %v", err)
			}
			resp.Body.Close()
			if resp.StatusCode != http.StatusNotFound {
				t.Errorf("status = %d, want 404", resp.StatusCode)
			}
		})
	}
}

func TestEmptyPatch(t *testing.T) {
	ts := newTestServer(t)

	status, person := doJSON(t, http.MethodPost, ts.URL+"/persons", map[string]any{
		"name": "Alice", "working_hours": 35,
	})
	if status != http.StatusCreated {
		t.Fatalf("setup failed: %d %v", status, person)
	}

	url := fmt.Sprintf("%s/persons/%.0f", ts.URL, person["id"].(float64))
	status, body := doJSON(t, http.MethodPut, url, map[string]any{})
	if status != http.StatusBadRequest {
		t.Errorf("status = %d, want 400: %v", status, body)
	}
}
