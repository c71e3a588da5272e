// Package session tracks one customization of a prompt: the user opens a
// prompt, types a value for each marker while the preview re-renders, and
// finally confirms (copy or open in a tool) or cancels.
//
// A Session moves Open -> Confirmed | Cancelled -> Closed and never returns
// to Open. Customizing the same prompt again starts a fresh Session with an
// empty FillMap.
package session

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/dpshade/prompt-catalog/internal/errors"
	"github.com/dpshade/prompt-catalog/internal/models"
	"github.com/dpshade/prompt-catalog/internal/placeholder"
)

// State is the lifecycle position of a Session.
type State int

const (
	Closed State = iota
	Open
	Confirmed
	Cancelled
)

func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Open:
		return "open"
	case Confirmed:
		return "confirmed"
	case Cancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Session is not safe for concurrent use. It is owned by a single UI loop or
// command invocation.
type Session struct {
	id       string
	prompt   *models.Prompt
	template placeholder.Template
	fills    placeholder.FillMap
	rendered string
	state    State
}

// Start opens a new session for p.
func Start(p *models.Prompt) *Session {
	s := &Session{
		id:       uuid.NewString(),
		prompt:   p.Clone(),
		template: placeholder.NewTemplate(p.Template),
		fills:    placeholder.FillMap{},
		state:    Open,
	}
	s.rendered = s.template.Render(s.fills)

	log.Debug().
		Str("session", s.id).
		Str("prompt", p.ID).
		Strs("markers", s.template.Markers()).
		Msg("session opened")
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Prompt returns the prompt being customized.
func (s *Session) Prompt() *models.Prompt { return s.prompt.Clone() }

// State returns the current state.
func (s *Session) State() State { return s.state }

// Markers returns the distinct marker names in first-occurrence order.
func (s *Session) Markers() []string { return s.template.Markers() }

// NeedsInput reports whether the prompt has markers to fill. A prompt
// without markers can be confirmed straight away and used as-is.
func (s *Session) NeedsInput() bool { return s.template.HasMarkers() }

// Value returns the current value for name.
func (s *Session) Value(name string) string { return s.fills[name] }

// Fills returns a copy of the current FillMap.
func (s *Session) Fills() placeholder.FillMap {
	out := make(placeholder.FillMap, len(s.fills))
	for k, v := range s.fills {
		out[k] = v
	}
	return out
}

// Set stores value for name and returns the re-rendered output.
func (s *Session) Set(name, value string) (string, error) {
	if s.state != Open {
		return s.rendered, errors.InvalidTransitionError(s.state.String(), "edit")
	}
	s.fills = s.fills.Set(name, value)
	s.rendered = s.template.Render(s.fills)
	return s.rendered, nil
}

// Rendered returns the template with every filled marker substituted.
func (s *Session) Rendered() string { return s.rendered }

// Complete reports whether every marker has a non-blank value.
func (s *Session) Complete() bool { return s.template.Complete(s.fills) }

// Missing returns the markers still lacking a value.
func (s *Session) Missing() []string { return s.template.Missing(s.fills) }

// Confirm finishes the session and returns the final text. It fails with
// INCOMPLETE_TEMPLATE while any marker is unfilled, leaving the session open.
func (s *Session) Confirm() (string, error) {
	if s.state != Open {
		return "", errors.InvalidTransitionError(s.state.String(), "confirm")
	}
	if missing := s.Missing(); len(missing) > 0 {
		return "", errors.IncompleteTemplateError(missing)
	}
	s.state = Confirmed
	log.Info().Str("session", s.id).Str("prompt", s.prompt.ID).Msg("session confirmed")
	return s.rendered, nil
}

// Cancel abandons the session and discards its values.
func (s *Session) Cancel() error {
	if s.state != Open {
		return errors.InvalidTransitionError(s.state.String(), "cancel")
	}
	s.fills = placeholder.FillMap{}
	s.rendered = s.template.String()
	s.state = Cancelled
	log.Debug().Str("session", s.id).Msg("session cancelled")
	return nil
}

// Close ends a confirmed or cancelled session.
func (s *Session) Close() error {
	if s.state != Confirmed && s.state != Cancelled {
		return errors.InvalidTransitionError(s.state.String(), "close")
	}
	s.state = Closed
	return nil
}
