package appstate_test

import (
	"testing"

	"github.com/dalemusser/sahara/internal/app/system/appstate"
	"github.com/dalemusser/sahara/internal/domain/models"
)

func TestReduce_RequestAddedIsIdempotent(t *testing.T) {
	s := appstate.State{
		User:     &models.User{ID: "victim1"},
		Requests: []models.HelpRequest{{ID: "REQ-001"}},
	}
	add := appstate.RequestAdded{Request: models.HelpRequest{ID: "REQ-002", VictimID: "victim1"}}

	s = appstate.Reduce(s, add)
	s = appstate.Reduce(s, add)

	if len(s.Requests) != 2 || s.Requests[0].ID != "REQ-002" {
		t.Fatalf("requests: %+v", s.Requests)
	}
	if s.UserStats.Total != 1 {
		t.Errorf("user total: got %d, want 1", s.UserStats.Total)
	}
}

func TestReduce_RequestAddedOtherVictim(t *testing.T) {
	s := appstate.State{User: &models.User{ID: "victim1"}}
	s = appstate.Reduce(s, appstate.RequestAdded{Request: models.HelpRequest{ID: "REQ-003", VictimID: "victim2"}})
	if s.UserStats.Total != 0 {
		t.Errorf("user total: got %d, want 0", s.UserStats.Total)
	}
}

func TestReduce_LoadingAndError(t *testing.T) {
	var s appstate.State
	s = appstate.Reduce(s, appstate.SetLoading{Loading: true})
	s = appstate.Reduce(s, appstate.SetError{Message: "boom"})
	if !s.IsLoading || s.Error != "boom" {
		t.Fatalf("got %+v", s)
	}
	s = appstate.Reduce(s, appstate.SetError{})
	s = appstate.Reduce(s, appstate.SetLoading{})
	if s.IsLoading || s.Error != "" {
		t.Errorf("got %+v", s)
	}
	if got := appstate.Reduce(s, nil); got.IsLoading != s.IsLoading {
		t.Error("nil action changed state")
	}
}

func TestState_CloneIsolated(t *testing.T) {
	s := appstate.State{
		User:     &models.User{ID: "u1", Name: "A"},
		Requests: []models.HelpRequest{{ID: "REQ-001", Images: []string{"a.png"}}},
	}
	c := s.Clone()
	c.User.Name = "B"
	c.Requests[0].Images[0] = "b.png"
	if s.User.Name != "A" || s.Requests[0].Images[0] != "a.png" {
		t.Error("clone shares memory with original")
	}
}
