// Package wizard drives the multi-step character registration flow. It owns
// the full transition table between steps, the back-navigation stack and the
// collected-field state; rendering is left to the caller, which receives an
// abstract Prompt for every interaction.
package wizard

import (
	"context"
	"strings"
	"time"

	"github.com/ExoCode33/bp-idolls-guild-manager/internal/entities"
	apperr "github.com/ExoCode33/bp-idolls-guild-manager/internal/errors"
	"github.com/ExoCode33/bp-idolls-guild-manager/internal/repositories/characters"
	"github.com/ExoCode33/bp-idolls-guild-manager/internal/repositories/wizardsessions"
)

//go:generate mockgen -destination=mock/mock.go -package=mockwizard -source=service.go

// MaxIGNLength bounds the free-text in-game name field
const MaxIGNLength = 32

// Committer hands a completed session over for persistence. Implemented by
// the commit service.
type Committer interface {
	Commit(ctx context.Context, session *entities.WizardSession) (*entities.Character, error)
}

// GuildCatalog supplies the guild list. An empty list means the guild step
// is skipped entirely.
type GuildCatalog interface {
	Guilds(ctx context.Context) ([]string, error)
}

// TimeProvider abstracts the clock for the local-hour offset guess
type TimeProvider interface {
	Now() time.Time
}

type realTime struct{}

func (realTime) Now() time.Time { return time.Now() }

// Service is the wizard engine's interface
type Service interface {
	// Begin starts (or restarts) a wizard for the acting member
	Begin(ctx context.Context, input *BeginInput) (*Prompt, error)

	// HandleSelection applies one choice-step selection
	HandleSelection(ctx context.Context, actorID string, step entities.Step, value string) (*Prompt, error)

	// HandleIGNSubmit applies the name form submission
	HandleIGNSubmit(ctx context.Context, actorID, ign string) (*Prompt, error)

	// HandleBack pops the back stack and re-renders that step
	HandleBack(ctx context.Context, actorID string) (*Prompt, error)

	// CurrentPrompt re-renders the current step without mutating anything
	CurrentPrompt(ctx context.Context, actorID string) (*Prompt, error)

	// Cancel abandons the actor's wizard
	Cancel(ctx context.Context, actorID string) error

	// Sweep removes expired sessions and reports how many were dropped
	Sweep(ctx context.Context) (int, error)
}

// BeginInput parameterizes a wizard start
type BeginInput struct {
	ActorID  string
	TargetID string // optional: admin acting on behalf of another member
	Kind     entities.WizardKind

	// ParentIGN names the parent character for new_subclass; empty means
	// the target's main
	ParentIGN string

	// EditIGN names the record an edit_field wizard operates on
	EditIGN string
}

// ServiceConfig holds configuration for the wizard service
type ServiceConfig struct {
	Sessions     wizardsessions.Repository
	Characters   characters.Repository
	Committer    Committer
	Guilds       GuildCatalog
	TimeProvider TimeProvider // defaults to the real clock
}

type service struct {
	sessions     wizardsessions.Repository
	characters   characters.Repository
	committer    Committer
	guilds       GuildCatalog
	timeProvider TimeProvider
}

// NewService creates a new wizard service
func NewService(cfg *ServiceConfig) Service {
	tp := cfg.TimeProvider
	if tp == nil {
		tp = realTime{}
	}
	guilds := cfg.Guilds
	if guilds == nil {
		guilds = NewStaticGuildCatalog(nil)
	}
	return &service{
		sessions:     cfg.Sessions,
		characters:   cfg.Characters,
		committer:    cfg.Committer,
		guilds:       guilds,
		timeProvider: tp,
	}
}

// Begin starts a wizard. Any in-progress session for the actor is replaced.
func (s *service) Begin(ctx context.Context, input *BeginInput) (*Prompt, error) {
	if input == nil {
		return nil, apperr.InvalidArgument("input cannot be nil")
	}
	if strings.TrimSpace(input.ActorID) == "" {
		return nil, apperr.InvalidArgument("actor ID is required")
	}

	targetID := input.TargetID
	if targetID == "" {
		targetID = input.ActorID
	}

	now := s.timeProvider.Now()
	session := &entities.WizardSession{
		ActorID:   input.ActorID,
		TargetID:  targetID,
		Kind:      input.Kind,
		CreatedAt: now,
		UpdatedAt: now,
	}

	switch input.Kind {
	case entities.WizardKindNewMain, entities.WizardKindNewAlt:
		session.Step = entities.StepChooseClass

	case entities.WizardKindNewSubclass:
		parent, err := s.resolveParent(ctx, targetID, input.ParentIGN)
		if err != nil {
			return nil, err
		}
		// The cap is enforced here, before any session exists; the commit
		// service does not re-validate it.
		count, err := s.characters.CountSubclasses(ctx, parent.ID)
		if err != nil {
			return nil, err
		}
		if count >= entities.MaxSubclassesPerCharacter {
			return nil, apperr.FailedPreconditionf("'%s' already has %d subclasses",
				parent.IGN, entities.MaxSubclassesPerCharacter).
				WithMeta("parent_id", parent.ID)
		}
		session.Collected.ParentID = parent.ID
		session.Collected.ParentType = parent.Type
		session.Step = entities.StepChooseClass

	case entities.WizardKindEditField:
		if strings.TrimSpace(input.EditIGN) == "" {
			return nil, apperr.InvalidArgument("the IGN of the character to edit is required")
		}
		record, err := s.characters.GetByOwnerAndIGN(ctx, targetID, input.EditIGN)
		if err != nil {
			return nil, err
		}
		prefillFromRecord(session, record)
		session.Step = entities.StepChooseField

	default:
		return nil, apperr.InvalidArgumentf("unknown wizard kind '%s'", input.Kind)
	}

	if err := s.sessions.Put(ctx, session); err != nil {
		return nil, apperr.Wrap(err, "failed to store wizard session")
	}
	return s.prompt(ctx, session)
}

// resolveParent finds the subclass parent: the named character, or the
// target's main when no name is given.
func (s *service) resolveParent(ctx context.Context, targetID, parentIGN string) (*entities.Character, error) {
	if strings.TrimSpace(parentIGN) != "" {
		parent, err := s.characters.GetByOwnerAndIGN(ctx, targetID, parentIGN)
		if err != nil {
			return nil, err
		}
		if parent.Type.IsSubclass() {
			return nil, apperr.InvalidArgumentf("'%s' is itself a subclass", parent.IGN)
		}
		return parent, nil
	}
	return s.characters.GetMain(ctx, targetID)
}

// prefillFromRecord seeds an edit session with the record's current values
// so partial edits still commit complete records
func prefillFromRecord(session *entities.WizardSession, record *entities.Character) {
	session.Collected.EditIGN = record.IGN
	session.Collected.IGN = record.IGN
	session.Collected.Class = record.Class
	session.Collected.Subclass = record.Subclass
	session.Collected.Role = record.Role
	session.Collected.BattlePower = record.BattlePower
	session.Collected.Guild = record.Guild
	session.Collected.ParentID = record.ParentID
}

// HandleSelection validates and applies one selection event
func (s *service) HandleSelection(ctx context.Context, actorID string, step entities.Step, value string) (*Prompt, error) {
	session, err := s.sessions.Get(ctx, actorID)
	if err != nil {
		return nil, err
	}

	// A selection from a stale render names a step we already left; reject
	// it without touching the session.
	if step != session.Step {
		return nil, apperr.Validationf("step '%s' is no longer active", step).
			WithMeta("current_step", string(session.Step))
	}

	options, err := s.optionsFor(ctx, session)
	if err != nil {
		return nil, err
	}
	if !hasOptionValue(options, value) {
		return nil, apperr.Validationf("'%s' is not one of the offered choices", value).
			WithMeta("step", string(step))
	}

	next, commitNow, err := s.applySelection(ctx, session, value)
	if err != nil {
		return nil, err
	}

	if commitNow {
		return s.commit(ctx, session)
	}

	session.PushBack(session.Step)
	session.Step = next
	if err := s.sessions.Put(ctx, session); err != nil {
		return nil, apperr.Wrap(err, "failed to store wizard session")
	}
	return s.prompt(ctx, session)
}

// HandleIGNSubmit applies the name form and hands off to the committer
func (s *service) HandleIGNSubmit(ctx context.Context, actorID, ign string) (*Prompt, error) {
	session, err := s.sessions.Get(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if session.Step != entities.StepSubmitIGN {
		return nil, apperr.Validation("the wizard is not waiting for a name right now").
			WithMeta("current_step", string(session.Step))
	}

	ign = strings.TrimSpace(ign)
	if ign == "" {
		return nil, apperr.Validation("an in-game name is required")
	}
	if len(ign) > MaxIGNLength {
		return nil, apperr.Validationf("in-game names are limited to %d characters", MaxIGNLength)
	}

	session.Collected.IGN = ign
	return s.commit(ctx, session)
}

// commit invokes the committer and renders the terminal prompt. On failure
// the session is deliberately left in place so the member can retry without
// losing collected answers.
func (s *service) commit(ctx context.Context, session *entities.WizardSession) (*Prompt, error) {
	character, err := s.committer.Commit(ctx, session)
	if err != nil {
		return nil, err
	}
	session.Step = entities.StepCommitted
	return committedPrompt(session, character), nil
}

// HandleBack pops the back stack and re-renders that step. Collected fields
// from later steps are left in place; proceeding forward overwrites them.
// With an empty stack this just re-renders the current step.
func (s *service) HandleBack(ctx context.Context, actorID string) (*Prompt, error) {
	session, err := s.sessions.Get(ctx, actorID)
	if err != nil {
		return nil, err
	}

	if prev, ok := session.PopBack(); ok {
		session.Step = prev
		if err := s.sessions.Put(ctx, session); err != nil {
			return nil, apperr.Wrap(err, "failed to store wizard session")
		}
	}
	return s.prompt(ctx, session)
}

// CurrentPrompt re-renders the current step
func (s *service) CurrentPrompt(ctx context.Context, actorID string) (*Prompt, error) {
	session, err := s.sessions.Get(ctx, actorID)
	if err != nil {
		return nil, err
	}
	return s.prompt(ctx, session)
}

// Cancel abandons the actor's wizard
func (s *service) Cancel(ctx context.Context, actorID string) error {
	return s.sessions.Remove(ctx, actorID)
}

// Sweep removes expired sessions
func (s *service) Sweep(ctx context.Context) (int, error) {
	return s.sessions.Sweep(ctx)
}
