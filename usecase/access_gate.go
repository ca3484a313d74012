package usecase

import (
	"context"
	"fmt"

	"codearena/model"
	"codearena/utils"
)

// AssignmentFinder is the slice of the assignment repository the gate
// needs.
type AssignmentFinder interface {
	FindByID(ctx context.Context, assignmentID string) (*model.Assignment, error)
}

// AccessDecision carries the final verdict plus both sub-results so the
// boundary can tell the student exactly why access was denied.
type AccessDecision struct {
	HasAccess       bool     `json:"hasAccess"`
	IsProva         bool     `json:"isProva"`
	IsEnabled       bool     `json:"isEnabled"`
	IPValid         bool     `json:"ipValid"`
	ClientIP        string   `json:"clientIP"`
	EnabledMessage  string   `json:"enabledMessage,omitempty"`
	IPMessage       string   `json:"ipMessage,omitempty"`
	RequireLabIP    bool     `json:"requireLabIP"`
	AllowedIPRanges []string `json:"allowedIPRanges"`
}

// AccessGate decides whether a student may start a timed exam. It
// combines two independent opt-in gates: an explicit enablement list and
// a network-origin allow list. Both default to permit when unconfigured,
// so an assignment with neither set behaves exactly like it did before
// gating existed.
type AccessGate struct {
	Assignments AssignmentFinder
}

// Evaluate is a pure read-and-decide; it never writes.
func (g *AccessGate) Evaluate(ctx context.Context, assignmentID, studentID, requestOrigin string) (*AccessDecision, error) {
	assignment, err := g.Assignments.FindByID(ctx, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load assignment: %w", err)
	}
	if assignment == nil {
		return nil, fmt.Errorf("assignment %s: %w", assignmentID, ErrNotFound)
	}

	decision := &AccessDecision{
		ClientIP:        requestOrigin,
		RequireLabIP:    assignment.RequireLabIP,
		AllowedIPRanges: assignment.AllowedIPRanges,
	}

	// Gating only applies to exams; lists are always open.
	if !assignment.IsProva() {
		decision.HasAccess = true
		decision.IsEnabled = true
		decision.IPValid = true
		return decision, nil
	}
	decision.IsProva = true

	decision.IsEnabled = true
	if len(assignment.EnabledStudents) > 0 {
		decision.IsEnabled = false
		for _, id := range assignment.EnabledStudents {
			if id == studentID {
				decision.IsEnabled = true
				break
			}
		}
		if !decision.IsEnabled {
			decision.EnabledMessage = "You are not on the list of students enabled for this exam"
		}
	}

	decision.IPValid = true
	if assignment.RequireLabIP && len(assignment.AllowedIPRanges) > 0 {
		decision.IPValid = matchIPRanges(requestOrigin, assignment.AllowedIPRanges)
		if !decision.IPValid {
			decision.IPMessage = fmt.Sprintf("Address %s is outside the allowed lab network", requestOrigin)
		}
	}

	decision.HasAccess = decision.IsEnabled && decision.IPValid
	utils.TrackAccessCheck(decision.HasAccess)
	return decision, nil
}
