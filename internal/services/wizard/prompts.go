package wizard

import (
	"context"
	"fmt"

	"github.com/ExoCode33/bp-idolls-guild-manager/internal/catalog"
	"github.com/ExoCode33/bp-idolls-guild-manager/internal/entities"
)

// Option is one selectable choice of a prompt
type Option struct {
	Label string
	Value string
}

// FormField describes one input of a form prompt
type FormField struct {
	ID        string
	Label     string
	Required  bool
	MaxLength int
}

// Prompt is the abstract render instruction returned by every wizard
// operation. The presentation layer decides how to draw it; the wizard
// never touches the chat platform.
type Prompt struct {
	Step        entities.Step
	Title       string
	Description string
	Options     []Option
	Form        []FormField
	ShowBack    bool
	Done        bool

	// Committed carries the stored record on the terminal prompt
	Committed *entities.Character
}

// prompt renders the session's current step
func (s *service) prompt(ctx context.Context, session *entities.WizardSession) (*Prompt, error) {
	p := &Prompt{
		Step:     session.Step,
		ShowBack: len(session.BackStack) > 0,
	}

	switch session.Step {
	case entities.StepChooseField:
		p.Title = "Edit character"
		p.Description = fmt.Sprintf("What would you like to change on **%s**?", session.Collected.EditIGN)

	case entities.StepChooseClass:
		p.Title = "Choose a class"
		p.Description = "Pick the character's class. The role is set by the class."

	case entities.StepChooseSubclass:
		p.Title = "Choose a subclass"
		p.Description = fmt.Sprintf("Pick a subclass of %s (%s).",
			session.Collected.Class, session.Collected.Role)

	case entities.StepChoosePowerBand:
		p.Title = "Battle power"
		p.Description = "Pick the range your current battle power falls into."

	case entities.StepChooseGuild:
		p.Title = "Choose a guild"
		p.Description = "Which guild is this character in?"

	case entities.StepChooseRegion:
		p.Title = "Timezone"
		p.Description = "Pick your region, or let the bot guess from your current local time."

	case entities.StepChooseLocalHour:
		p.Title = "What time is it for you?"
		p.Description = "Pick the hour closest to your current local time."

	case entities.StepChooseCountry:
		p.Title = "Timezone"
		p.Description = fmt.Sprintf("Pick your country in %s.", session.Collected.Region)

	case entities.StepChooseZone:
		p.Title = "Timezone"
		if session.Collected.InferredOffset != nil {
			p.Description = fmt.Sprintf("Based on your local time you look like UTC%+d. Pick your zone — or go back to choose manually.",
				*session.Collected.InferredOffset)
		} else {
			p.Description = "Pick your timezone."
		}

	case entities.StepSubmitIGN:
		p.Title = "In-game name"
		p.Description = "Enter the character's exact in-game name."
		p.Form = []FormField{{
			ID:        "ign",
			Label:     "In-game name",
			Required:  true,
			MaxLength: MaxIGNLength,
		}}
		return p, nil

	default:
		p.Title = "Registration"
	}

	options, err := s.optionsFor(ctx, session)
	if err != nil {
		return nil, err
	}
	p.Options = options
	return p, nil
}

// committedPrompt renders the terminal step after a successful commit
func committedPrompt(session *entities.WizardSession, character *entities.Character) *Prompt {
	guild := character.Guild
	if guild == "" {
		guild = "No guild"
	}

	description := fmt.Sprintf("**%s** — %s / %s (%s), %s, %s",
		character.IGN,
		character.Class,
		character.Subclass,
		character.Role,
		catalog.BandLabelFor(character.BattlePower),
		guild,
	)
	if session.Collected.Timezone != "" {
		description += fmt.Sprintf(", %s", session.Collected.Timezone)
	}

	return &Prompt{
		Step:        entities.StepCommitted,
		Title:       "Saved!",
		Description: description,
		Done:        true,
		Committed:   character,
	}
}
