// Package view models the client's full-screen navigation as an explicit
// finite-state machine instead of a raw string switch, so illegal screen
// combinations are unrepresentable. The server only hands out view hints
// (e.g. the chat crisis redirect); validation of a transition lives here.
package view

// View identifies one full-screen page of the companion app.
type View string

const (
	Onboarding View = "onboarding"
	Home       View = "home"
	Mood       View = "mood"
	Chat       View = "chat"
	Goals      View = "goals"
	Journal    View = "journal"
	Profile    View = "profile"
	Avatar     View = "avatar"
	Emergency  View = "emergency"
)

// navviews are the pages reachable from the bottom navigation bar; they are
// freely interchangeable with each other.
var navViews = []View{Home, Mood, Chat, Goals, Journal, Profile}

// transitions lists the extra edges outside the navigation bar. Avatar and
// Emergency are modal: Emergency is reachable from anywhere (a crisis can
// surface on any screen) and both return only to Home.
var transitions = map[View][]View{
	Onboarding: {Home},
	Home:       {Avatar},
	Profile:    {Avatar},
	Avatar:     {Home},
	Emergency:  {Home},
}

// Valid reports whether v names a known view.
func Valid(v View) bool {
	switch v {
	case Onboarding, Home, Mood, Chat, Goals, Journal, Profile, Avatar, Emergency:
		return true
	}
	return false
}

func isNav(v View) bool {
	for _, n := range navViews {
		if n == v {
			return true
		}
	}
	return false
}

// CanTransition reports whether the client may move from one view to
// another. Self-transitions are no-ops and always allowed.
func CanTransition(from, to View) bool {
	if !Valid(from) || !Valid(to) {
		return false
	}
	if from == to {
		return true
	}
	// Emergency preempts everything except onboarding.
	if to == Emergency && from != Onboarding {
		return true
	}
	if isNav(from) && isNav(to) {
		return true
	}
	for _, t := range transitions[from] {
		if t == to {
			return true
		}
	}
	return false
}
