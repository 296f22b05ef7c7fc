package wizard

import (
	"context"
	"strconv"

	"github.com/ExoCode33/bp-idolls-guild-manager/internal/catalog"
	"github.com/ExoCode33/bp-idolls-guild-manager/internal/entities"
	apperr "github.com/ExoCode33/bp-idolls-guild-manager/internal/errors"
	"github.com/ExoCode33/bp-idolls-guild-manager/internal/timezone"
)

// Sentinel option values that are not catalog entries
const (
	valueNoGuild   = "none"
	valueGuessZone = "auto"
)

// editEntryStep maps an edit-field choice to the step that collects it
var editEntryStep = map[entities.EditableField]entities.Step{
	entities.EditFieldClass:       entities.StepChooseClass,
	entities.EditFieldBattlePower: entities.StepChoosePowerBand,
	entities.EditFieldGuild:       entities.StepChooseGuild,
	entities.EditFieldTimezone:    entities.StepChooseRegion,
	entities.EditFieldIGN:         entities.StepSubmitIGN,
}

// applySelection mutates the session's collected fields for a validated
// selection and computes the following step. commitNow is true when the
// flow is complete without a name form (edit flows end on their last
// sub-step).
func (s *service) applySelection(ctx context.Context, session *entities.WizardSession, value string) (next entities.Step, commitNow bool, err error) {
	c := &session.Collected

	switch session.Step {
	case entities.StepChooseField:
		c.EditField = entities.EditableField(value)
		return editEntryStep[c.EditField], false, nil

	case entities.StepChooseClass:
		class, ok := catalog.FindClass(value)
		if !ok {
			return "", false, apperr.Validationf("unknown class '%s'", value)
		}
		c.Class = class.Name
		c.Role = string(class.Role) // always derived, never chosen
		return entities.StepChooseSubclass, false, nil

	case entities.StepChooseSubclass:
		c.Subclass = value
		if session.Kind == entities.WizardKindEditField {
			// A class change may invalidate guild eligibility, so a
			// non-empty guild catalog forces a guild revisit even though
			// guild was already set.
			hasGuilds, err := s.hasGuilds(ctx)
			if err != nil {
				return "", false, err
			}
			if hasGuilds {
				return entities.StepChooseGuild, false, nil
			}
			return "", true, nil
		}
		return entities.StepChoosePowerBand, false, nil

	case entities.StepChoosePowerBand:
		power, convErr := strconv.Atoi(value)
		if convErr != nil {
			return "", false, apperr.Validationf("'%s' is not a battle power value", value)
		}
		c.BattlePower = power
		c.BandLabel = catalog.BandLabelFor(power)
		if session.Kind == entities.WizardKindEditField {
			return "", true, nil
		}
		hasGuilds, err := s.hasGuilds(ctx)
		if err != nil {
			return "", false, err
		}
		if !hasGuilds {
			// Guild step is skipped outright; proceed as if "no guild"
			// had been chosen.
			c.Guild = ""
			return s.afterGuild(session), false, nil
		}
		return entities.StepChooseGuild, false, nil

	case entities.StepChooseGuild:
		if value == valueNoGuild {
			c.Guild = ""
		} else {
			c.Guild = value
		}
		if session.Kind == entities.WizardKindEditField {
			return "", true, nil
		}
		return s.afterGuild(session), false, nil

	case entities.StepChooseRegion:
		if value == valueGuessZone {
			return entities.StepChooseLocalHour, false, nil
		}
		c.Region = value
		c.InferredOffset = nil
		return entities.StepChooseCountry, false, nil

	case entities.StepChooseLocalHour:
		hour, convErr := strconv.Atoi(value)
		if convErr != nil {
			return "", false, apperr.Validationf("'%s' is not an hour", value)
		}
		utcHour := s.timeProvider.Now().UTC().Hour()
		offset := timezone.NormalizeOffset(timezone.InferOffset(hour, utcHour))
		if len(timezone.Suggest(offset)) == 0 {
			// Nothing in the catalog matches the guess; continue on the
			// manual drill-down instead of presenting an empty list.
			return entities.StepChooseRegion, false, nil
		}
		c.InferredOffset = &offset
		c.Region = ""
		c.Country = ""
		return entities.StepChooseZone, false, nil

	case entities.StepChooseCountry:
		c.Country = value
		return entities.StepChooseZone, false, nil

	case entities.StepChooseZone:
		c.Timezone = value
		if session.Kind == entities.WizardKindEditField {
			return "", true, nil
		}
		return entities.StepSubmitIGN, false, nil
	}

	return "", false, apperr.Validationf("step '%s' does not take a selection", session.Step)
}

// afterGuild decides where a registration flow goes once guild is settled:
// only new mains collect a timezone, everything else goes straight to the
// name form.
func (s *service) afterGuild(session *entities.WizardSession) entities.Step {
	if session.Kind == entities.WizardKindNewMain {
		return entities.StepChooseRegion
	}
	return entities.StepSubmitIGN
}

func (s *service) hasGuilds(ctx context.Context) (bool, error) {
	guilds, err := s.guilds.Guilds(ctx)
	if err != nil {
		return false, apperr.Wrap(err, "failed to load guild catalog")
	}
	return len(guilds) > 0, nil
}

// optionsFor computes the option set currently offered for the session's
// step. Selection validation and rendering both use it, so a value that
// renders is exactly a value that validates.
func (s *service) optionsFor(ctx context.Context, session *entities.WizardSession) ([]Option, error) {
	c := &session.Collected

	switch session.Step {
	case entities.StepChooseField:
		return s.editFieldOptions(ctx, session)

	case entities.StepChooseClass:
		options := make([]Option, 0, len(catalog.Classes))
		for _, class := range catalog.Classes {
			options = append(options, Option{Label: class.Name, Value: class.Name})
		}
		return options, nil

	case entities.StepChooseSubclass:
		class, ok := catalog.FindClass(c.Class)
		if !ok {
			return nil, apperr.Internalf("session references unknown class '%s'", c.Class)
		}
		options := make([]Option, 0, len(class.Subclasses))
		for _, sub := range class.Subclasses {
			options = append(options, Option{Label: sub, Value: sub})
		}
		return options, nil

	case entities.StepChoosePowerBand:
		options := make([]Option, 0, len(catalog.BattlePowerBands))
		for _, band := range catalog.BattlePowerBands {
			options = append(options, Option{Label: band.Label, Value: strconv.Itoa(band.Value)})
		}
		return options, nil

	case entities.StepChooseGuild:
		guilds, err := s.guilds.Guilds(ctx)
		if err != nil {
			return nil, apperr.Wrap(err, "failed to load guild catalog")
		}
		options := make([]Option, 0, len(guilds)+1)
		for _, guild := range guilds {
			options = append(options, Option{Label: guild, Value: guild})
		}
		return append(options, Option{Label: "No guild", Value: valueNoGuild}), nil

	case entities.StepChooseRegion:
		regions := catalog.Regions()
		options := make([]Option, 0, len(regions)+1)
		for _, region := range regions {
			options = append(options, Option{Label: region, Value: region})
		}
		return append(options, Option{Label: "Guess from my current time", Value: valueGuessZone}), nil

	case entities.StepChooseLocalHour:
		options := make([]Option, 0, 24)
		for hour := 0; hour < 24; hour++ {
			options = append(options, Option{
				Label: strconv.Itoa(hour) + ":00",
				Value: strconv.Itoa(hour),
			})
		}
		return options, nil

	case entities.StepChooseCountry:
		countries := catalog.Countries(c.Region)
		options := make([]Option, 0, len(countries))
		for _, country := range countries {
			options = append(options, Option{Label: country, Value: country})
		}
		return options, nil

	case entities.StepChooseZone:
		var zones []catalog.Zone
		if c.InferredOffset != nil {
			zones = timezone.Suggest(*c.InferredOffset)
		} else {
			zones = catalog.ZonesFor(c.Region, c.Country)
		}
		options := make([]Option, 0, len(zones))
		for _, zone := range zones {
			options = append(options, Option{
				Label: zone.ID + " (" + zone.Country + ")",
				Value: zone.ID,
			})
		}
		return options, nil
	}

	return nil, nil
}

// editFieldOptions lists which fields an edit wizard may change. Timezone
// only applies to mains: it is a member-level attribute collected at main
// registration.
func (s *service) editFieldOptions(ctx context.Context, session *entities.WizardSession) ([]Option, error) {
	options := []Option{
		{Label: "Class", Value: string(entities.EditFieldClass)},
		{Label: "Battle power", Value: string(entities.EditFieldBattlePower)},
	}

	hasGuilds, err := s.hasGuilds(ctx)
	if err != nil {
		return nil, err
	}
	if hasGuilds {
		options = append(options, Option{Label: "Guild", Value: string(entities.EditFieldGuild)})
	}

	record, err := s.characters.GetByOwnerAndIGN(ctx, session.TargetID, session.Collected.EditIGN)
	if err != nil {
		return nil, err
	}
	if record.Type == entities.CharacterTypeMain {
		options = append(options, Option{Label: "Timezone", Value: string(entities.EditFieldTimezone)})
	}

	return append(options, Option{Label: "In-game name", Value: string(entities.EditFieldIGN)}), nil
}

func hasOptionValue(options []Option, value string) bool {
	for _, option := range options {
		if option.Value == value {
			return true
		}
	}
	return false
}
