package controller

import (
	"html/template"

	"countrystats/internal/model"
)

// State tracks a trigger through its lifecycle.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateSuccess
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Kind classifies a failed trigger.
type Kind int

const (
	// KindEmptyQuery means the search text was blank; nothing was fetched.
	KindEmptyQuery Kind = iota + 1
	// KindNoResults means the search succeeded but matched nothing.
	KindNoResults
	// KindNotFound means the upstream reported that no country matches.
	KindNotFound
	// KindFetch covers transport, status and decode failures.
	KindFetch
	// KindRender means the results could not be turned into markup.
	KindRender
)

func (k Kind) String() string {
	switch k {
	case KindEmptyQuery:
		return "empty_query"
	case KindNoResults:
		return "no_results"
	case KindNotFound:
		return "not_found"
	case KindFetch:
		return "fetch"
	case KindRender:
		return "render"
	default:
		return "unknown"
	}
}

// Messages shown in the error region.
const (
	MsgEmptyQuery   = "Please enter a country name"
	MsgNoResults    = "No countries found matching your search"
	MsgNotFound     = "Country not found. Please check the spelling and try again."
	msgAllFailed    = "Error fetching all countries data: "
	msgSearchFailed = "Error searching for country: "
	msgRenderFailed = "Error rendering results: "
)

// Failure is a terminal outcome of a trigger. Message is safe to show to users.
type Failure struct {
	Kind    Kind
	Message string
	Err     error
}

func (f *Failure) Error() string { return f.Message }

func (f *Failure) Unwrap() error { return f.Err }

// Results is a successful outcome of a trigger.
type Results struct {
	Summary   model.AggregateResult
	Countries []model.Country
	Fragment  template.HTML
}

// Display receives the outcome of a trigger. Exactly one method is called
// per trigger.
type Display interface {
	ShowResults(res *Results)
	ShowError(f *Failure)
}
