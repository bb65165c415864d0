package models

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

// ============================================================================
// Status Tests
// ============================================================================

func TestParseProjectStatus(t *testing.T) {
	tests := []struct {
		input    string
		expected ProjectStatus
		wantErr  bool
	}{
		{"Active", ProjectActive, false},
		{"archived", ProjectArchived, false},
		{" COMPLETED ", ProjectCompleted, false},
		{"deleted", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseProjectStatus(tt.input)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidStatus) {
				t.Errorf("ParseProjectStatus(%q): expected ErrInvalidStatus, got %v", tt.input, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseProjectStatus(%q): unexpected error %v", tt.input, err)
		}
		if got != tt.expected {
			t.Errorf("ParseProjectStatus(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestParseTaskStatus(t *testing.T) {
	tests := []struct {
		input    string
		expected TaskStatus
	}{
		{"To Do", TaskToDo},
		{"todo", TaskToDo},
		{"in-progress", TaskInProgress},
		{"IN_PROGRESS", TaskInProgress},
		{"done", TaskDone},
	}

	for _, tt := range tests {
		got, err := ParseTaskStatus(tt.input)
		if err != nil {
			t.Fatalf("ParseTaskStatus(%q): unexpected error %v", tt.input, err)
		}
		if got != tt.expected {
			t.Errorf("ParseTaskStatus(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}

	if _, err := ParseTaskStatus("blocked"); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("expected ErrInvalidStatus for unknown status, got %v", err)
	}
}

func TestTaskStatus_Color(t *testing.T) {
	if TaskToDo.Color() != "#1290E0" {
		t.Errorf("unexpected To Do color %s", TaskToDo.Color())
	}
	if TaskDone.Color() != "#008844" {
		t.Errorf("unexpected Done color %s", TaskDone.Color())
	}
	if TaskStatus("Unknown").Color() != "#808080" {
		t.Errorf("unknown status should fall back to grey")
	}
}

// ============================================================================
// JSON Tests
// ============================================================================

func TestWorker_PreservesUnknownFields(t *testing.T) {
	input := `{"id":"w1","name":"Ada","role":"Engineer","email":"ada@example.com","skills":["go","sql"]}`

	var w Worker
	if err := json.Unmarshal([]byte(input), &w); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if w.ID != "w1" || w.Name != "Ada" || w.Role != "Engineer" {
		t.Fatalf("known fields not decoded: %+v", w)
	}
	if string(w.Extra["email"]) != `"ada@example.com"` {
		t.Errorf("expected email in Extra, got %s", w.Extra["email"])
	}

	encoded, err := json.Marshal(w)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var roundTrip map[string]any
	if err := json.Unmarshal(encoded, &roundTrip); err != nil {
		t.Fatalf("unmarshal round trip: %v", err)
	}
	if roundTrip["email"] != "ada@example.com" {
		t.Errorf("email lost in round trip: %v", roundTrip)
	}
	if skills, ok := roundTrip["skills"].([]any); !ok || len(skills) != 2 {
		t.Errorf("skills lost in round trip: %v", roundTrip["skills"])
	}
}

func TestWorker_NonStringKnownFieldKeptVerbatim(t *testing.T) {
	var workers []Worker
	if err := json.Unmarshal([]byte(`[{"id":"w1","role":{"title":"Lead"}},{"id":"w2","name":"Bob"}]`), &workers); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(workers) != 2 {
		t.Fatalf("expected 2 workers, got %d", len(workers))
	}
	if workers[0].Role != "" {
		t.Errorf("Role = %q, want empty", workers[0].Role)
	}
	if string(workers[0].Extra["role"]) != `{"title":"Lead"}` {
		t.Errorf("role not kept in Extra: %s", workers[0].Extra["role"])
	}

	encoded, err := json.Marshal(workers[0])
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var roundTrip map[string]any
	if err := json.Unmarshal(encoded, &roundTrip); err != nil {
		t.Fatalf("unmarshal round trip: %v", err)
	}
	role, ok := roundTrip["role"].(map[string]any)
	if !ok || role["title"] != "Lead" {
		t.Errorf("role lost in round trip: %s", encoded)
	}
}

func TestWorker_ExplicitEmptyFieldRoundTrips(t *testing.T) {
	var w Worker
	if err := json.Unmarshal([]byte(`{"id":"w2","name":"","role":"x"}`), &w); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if w.Name != "" || w.Role != "x" {
		t.Fatalf("known fields not decoded: %+v", w)
	}

	encoded, err := json.Marshal(w)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var roundTrip map[string]any
	if err := json.Unmarshal(encoded, &roundTrip); err != nil {
		t.Fatalf("unmarshal round trip: %v", err)
	}
	if name, ok := roundTrip["name"]; !ok || name != "" {
		t.Errorf("explicit empty name lost: %s", encoded)
	}

	// An absent name stays absent
	encoded, err = json.Marshal(Worker{ID: "w3", Role: "x"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(encoded), `"name"`) {
		t.Errorf("absent name written: %s", encoded)
	}
}

func TestWorker_NonStringIDFails(t *testing.T) {
	var w Worker
	if err := json.Unmarshal([]byte(`{"id":7}`), &w); err == nil {
		t.Fatal("expected an error for a numeric id")
	}
}

func TestTask_CloneCopiesPosition(t *testing.T) {
	pos := 2.0
	task := Task{ID: "t1", Position: &pos}
	c := task.Clone()
	*c.Position = 5

	if *task.Position != 2 {
		t.Errorf("clone shares Position with original")
	}
	if (Task{ID: "t2"}).Clone().Position != nil {
		t.Errorf("nil Position should stay nil")
	}
}

func TestWorker_CloneIsIndependent(t *testing.T) {
	w := Worker{ID: "w1", Extra: map[string]json.RawMessage{"team": json.RawMessage(`"core"`)}}
	c := w.Clone()
	c.Extra["team"] = json.RawMessage(`"infra"`)

	if string(w.Extra["team"]) != `"core"` {
		t.Errorf("clone shares Extra with original")
	}
}

func TestProject_OmitsZeroTasksCount(t *testing.T) {
	data, err := json.Marshal(Project{ID: "p1", Name: "X", Status: ProjectActive, CreatedAt: "2024-01-01"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	expected := `{"id":"p1","name":"X","status":"Active","createdAt":"2024-01-01"}`
	if string(data) != expected {
		t.Errorf("got %s, want %s", data, expected)
	}
}

// ============================================================================
// Sort Tests
// ============================================================================

func TestSortProjects(t *testing.T) {
	projects := []Project{
		{ID: "p2", Name: "Beta", TasksCount: 1, CreatedAt: "2024-02-01T00:00:00Z"},
		{ID: "p1", Name: "Alpha", TasksCount: 3, CreatedAt: "2024-03-01T00:00:00Z"},
		{ID: "p3", Name: "Gamma", TasksCount: 2, CreatedAt: "2024-01-01T00:00:00Z"},
	}

	byName, err := SortProjects(projects, "name", false)
	if err != nil {
		t.Fatalf("sort: %v", err)
	}
	if byName[0].Name != "Alpha" || byName[2].Name != "Gamma" {
		t.Errorf("unexpected name order: %v", byName)
	}

	byCount, _ := SortProjects(projects, "tasksCount", true)
	if byCount[0].ID != "p1" || byCount[2].ID != "p2" {
		t.Errorf("unexpected tasksCount desc order: %v", byCount)
	}

	byCreated, _ := SortProjects(projects, "createdAt", false)
	if byCreated[0].ID != "p3" {
		t.Errorf("unexpected createdAt order: %v", byCreated)
	}

	if projects[0].ID != "p2" {
		t.Errorf("input slice was modified")
	}

	if _, err := SortProjects(projects, "owner", false); !errors.Is(err, ErrInvalidSortKey) {
		t.Errorf("expected ErrInvalidSortKey, got %v", err)
	}
}

func TestSortTasks_StatusUsesWorkflowOrder(t *testing.T) {
	tasks := []Task{
		{ID: "t1", Status: TaskDone},
		{ID: "t2", Status: TaskToDo},
		{ID: "t3", Status: TaskInProgress},
	}

	sorted, err := SortTasks(tasks, "status", false)
	if err != nil {
		t.Fatalf("sort: %v", err)
	}
	got := []string{sorted[0].ID, sorted[1].ID, sorted[2].ID}
	want := []string{"t2", "t3", "t1"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got order %v, want %v", got, want)
		}
	}
}
