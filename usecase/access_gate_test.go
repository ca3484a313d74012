package usecase

import (
	"context"
	"errors"
	"testing"

	"codearena/model"
)

type fakeAssignmentFinder struct {
	assignments map[string]*model.Assignment
	err         error
}

func (f *fakeAssignmentFinder) FindByID(ctx context.Context, assignmentID string) (*model.Assignment, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.assignments[assignmentID], nil
}

func newGate(assignments ...*model.Assignment) *AccessGate {
	byID := make(map[string]*model.Assignment)
	for _, a := range assignments {
		byID[a.AssignmentID] = a
	}
	return &AccessGate{Assignments: &fakeAssignmentFinder{assignments: byID}}
}

func TestEvaluateListaAlwaysGranted(t *testing.T) {
	// Even a fully restricted configuration is ignored for lists.
	gate := newGate(&model.Assignment{
		AssignmentID:    "a1",
		Type:            model.AssignmentLista,
		EnabledStudents: []string{"someone-else"},
		RequireLabIP:    true,
		AllowedIPRanges: []string{"192.168.1.0/24"},
	})

	decision, err := gate.Evaluate(context.Background(), "a1", "s1", "10.0.0.5")
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if !decision.HasAccess {
		t.Error("Evaluate() hasAccess = false, want true for lista")
	}
	if decision.IsProva {
		t.Error("Evaluate() isProva = true, want false for lista")
	}
}

func TestEvaluateEnablement(t *testing.T) {
	tests := []struct {
		name            string
		enabledStudents []string
		studentID       string
		wantEnabled     bool
	}{
		{
			name:            "empty list enables everyone",
			enabledStudents: nil,
			studentID:       "s1",
			wantEnabled:     true,
		},
		{
			name:            "listed student enabled",
			enabledStudents: []string{"s1", "s2"},
			studentID:       "s1",
			wantEnabled:     true,
		},
		{
			name:            "unlisted student denied",
			enabledStudents: []string{"s2"},
			studentID:       "s1",
			wantEnabled:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gate := newGate(&model.Assignment{
				AssignmentID:    "exam",
				Type:            model.AssignmentProva,
				EnabledStudents: tt.enabledStudents,
			})

			decision, err := gate.Evaluate(context.Background(), "exam", tt.studentID, "10.0.0.5")
			if err != nil {
				t.Fatalf("Evaluate() error = %v", err)
			}
			if decision.IsEnabled != tt.wantEnabled {
				t.Errorf("Evaluate() isEnabled = %v, want %v", decision.IsEnabled, tt.wantEnabled)
			}
			if decision.HasAccess != tt.wantEnabled {
				t.Errorf("Evaluate() hasAccess = %v, want %v", decision.HasAccess, tt.wantEnabled)
			}
			if !tt.wantEnabled && decision.EnabledMessage == "" {
				t.Error("Evaluate() denied without an enabledMessage")
			}
		})
	}
}

func TestEvaluateIPRestriction(t *testing.T) {
	tests := []struct {
		name         string
		requireLabIP bool
		ranges       []string
		origin       string
		wantValid    bool
	}{
		{
			name:         "restriction off ignores ranges",
			requireLabIP: false,
			ranges:       []string{"192.168.1.0/24"},
			origin:       "10.0.0.5",
			wantValid:    true,
		},
		{
			name:         "restriction on with empty ranges permits",
			requireLabIP: true,
			ranges:       nil,
			origin:       "10.0.0.5",
			wantValid:    true,
		},
		{
			name:         "origin outside range denied",
			requireLabIP: true,
			ranges:       []string{"192.168.1.0/24"},
			origin:       "10.0.0.5",
			wantValid:    false,
		},
		{
			name:         "origin inside CIDR granted",
			requireLabIP: true,
			ranges:       []string{"192.168.1.0/24"},
			origin:       "192.168.1.42",
			wantValid:    true,
		},
		{
			name:         "second range matches",
			requireLabIP: true,
			ranges:       []string{"172.16.0.0/16", "192.168.1.0/24"},
			origin:       "192.168.1.42",
			wantValid:    true,
		},
		{
			name:         "dashed range matches",
			requireLabIP: true,
			ranges:       []string{"10.1.0.5-10.1.0.20"},
			origin:       "10.1.0.12",
			wantValid:    true,
		},
		{
			name:         "bare address matches exactly",
			requireLabIP: true,
			ranges:       []string{"10.1.0.5"},
			origin:       "10.1.0.5",
			wantValid:    true,
		},
		{
			name:         "unparseable origin denied",
			requireLabIP: true,
			ranges:       []string{"192.168.1.0/24"},
			origin:       "not-an-ip",
			wantValid:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gate := newGate(&model.Assignment{
				AssignmentID:    "exam",
				Type:            model.AssignmentProva,
				RequireLabIP:    tt.requireLabIP,
				AllowedIPRanges: tt.ranges,
			})

			decision, err := gate.Evaluate(context.Background(), "exam", "s1", tt.origin)
			if err != nil {
				t.Fatalf("Evaluate() error = %v", err)
			}
			if decision.IPValid != tt.wantValid {
				t.Errorf("Evaluate() ipValid = %v, want %v", decision.IPValid, tt.wantValid)
			}
			if decision.HasAccess != tt.wantValid {
				t.Errorf("Evaluate() hasAccess = %v, want %v", decision.HasAccess, tt.wantValid)
			}
		})
	}
}

func TestEvaluateCombinesGates(t *testing.T) {
	// Enabled student from the wrong network: both sub-results must be
	// visible, final decision denied.
	gate := newGate(&model.Assignment{
		AssignmentID:    "exam",
		Type:            model.AssignmentProva,
		EnabledStudents: []string{"s1"},
		RequireLabIP:    true,
		AllowedIPRanges: []string{"192.168.1.0/24"},
	})

	decision, err := gate.Evaluate(context.Background(), "exam", "s1", "10.0.0.5")
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if !decision.IsEnabled {
		t.Error("Evaluate() isEnabled = false, want true")
	}
	if decision.IPValid {
		t.Error("Evaluate() ipValid = true, want false")
	}
	if decision.HasAccess {
		t.Error("Evaluate() hasAccess = true, want isEnabled AND ipValid = false")
	}
}

func TestEvaluateUnrestrictedExam(t *testing.T) {
	gate := newGate(&model.Assignment{
		AssignmentID: "exam",
		Type:         model.AssignmentProva,
	})

	decision, err := gate.Evaluate(context.Background(), "exam", "s1", "203.0.113.9")
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if !decision.HasAccess || !decision.IsEnabled || !decision.IPValid {
		t.Errorf("Evaluate() = %+v, want all gates open for unrestricted exam", decision)
	}
	if !decision.IsProva {
		t.Error("Evaluate() isProva = false, want true")
	}
	if decision.ClientIP != "203.0.113.9" {
		t.Errorf("Evaluate() clientIP = %q, want request origin echoed", decision.ClientIP)
	}
}

func TestEvaluateMissingAssignment(t *testing.T) {
	gate := newGate()

	_, err := gate.Evaluate(context.Background(), "missing", "s1", "10.0.0.5")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Evaluate() error = %v, want ErrNotFound", err)
	}
}

func TestEvaluateStoreFailure(t *testing.T) {
	gate := &AccessGate{Assignments: &fakeAssignmentFinder{err: errors.New("connection reset")}}

	_, err := gate.Evaluate(context.Background(), "exam", "s1", "10.0.0.5")
	if err == nil {
		t.Fatal("Evaluate() error = nil, want store failure surfaced")
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("Evaluate() store failure must not look like NotFound")
	}
}
