package entities

import (
	"time"
)

// WizardKind selects which registration flow a session runs
type WizardKind string

const (
	WizardKindNewMain     WizardKind = "new_main"
	WizardKindNewAlt      WizardKind = "new_alt"
	WizardKindNewSubclass WizardKind = "new_subclass"
	WizardKindEditField   WizardKind = "edit_field"
)

// Step tags every state of the registration wizard. The full transition
// table lives in services/wizard.
type Step string

const (
	StepChooseField     Step = "choose_field" // edit flow entry
	StepChooseClass     Step = "choose_class"
	StepChooseSubclass  Step = "choose_subclass"
	StepChoosePowerBand Step = "choose_power_band"
	StepChooseGuild     Step = "choose_guild"
	StepChooseRegion    Step = "choose_region"
	StepChooseLocalHour Step = "choose_local_hour"
	StepChooseCountry   Step = "choose_country"
	StepChooseZone      Step = "choose_zone"
	StepSubmitIGN       Step = "submit_ign"
	StepCommitted       Step = "committed"
)

// EditableField names the fields an edit_field wizard can change
type EditableField string

const (
	EditFieldClass       EditableField = "class"
	EditFieldBattlePower EditableField = "battle_power"
	EditFieldGuild       EditableField = "guild"
	EditFieldTimezone    EditableField = "timezone"
	EditFieldIGN         EditableField = "ign"
)

// CollectedFields holds everything gathered so far. Fields are only added
// or overwritten; back-navigation never clears them eagerly.
type CollectedFields struct {
	Class       string `json:"class,omitempty"`
	Subclass    string `json:"subclass,omitempty"`
	Role        string `json:"role,omitempty"` // always re-derived from Class
	BandLabel   string `json:"band_label,omitempty"`
	BattlePower int    `json:"battle_power,omitempty"`
	Guild       string `json:"guild,omitempty"`
	Region      string `json:"region,omitempty"`
	Country     string `json:"country,omitempty"`
	// InferredOffset is set when the zone step was reached through the
	// local-hour guess instead of the manual drill-down
	InferredOffset *int          `json:"inferred_offset,omitempty"`
	Timezone       string        `json:"timezone,omitempty"`
	IGN            string        `json:"ign,omitempty"`
	EditField      EditableField `json:"edit_field,omitempty"`
	EditIGN        string        `json:"edit_ign,omitempty"` // IGN of the record being edited
	ParentID       string        `json:"parent_id,omitempty"`
	ParentType     CharacterType `json:"parent_type,omitempty"`
}

// WizardSession is one member's in-progress registration wizard, keyed by
// the acting member's ID.
type WizardSession struct {
	ActorID   string          `json:"actor_id"`
	TargetID  string          `json:"target_id"` // record owner; equals ActorID unless an admin acts on behalf
	Kind      WizardKind      `json:"kind"`
	Step      Step            `json:"step"`
	BackStack []Step          `json:"back_stack,omitempty"`
	Collected CollectedFields `json:"collected"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// OnBehalfOf reports whether an admin is running the wizard for another member
func (s *WizardSession) OnBehalfOf() bool {
	return s.TargetID != "" && s.TargetID != s.ActorID
}

// Expired checks the session against the TTL using its last-write timestamp
func (s *WizardSession) Expired(ttl time.Duration, now time.Time) bool {
	return now.Sub(s.UpdatedAt) > ttl
}

// Touch refreshes the last-write timestamp
func (s *WizardSession) Touch(now time.Time) {
	s.UpdatedAt = now
}

// PushBack records the step being left so a back event can return to it
func (s *WizardSession) PushBack(step Step) {
	s.BackStack = append(s.BackStack, step)
}

// PopBack pops the most recent step off the back stack. The second return
// is false when the stack is empty.
func (s *WizardSession) PopBack() (Step, bool) {
	if len(s.BackStack) == 0 {
		return "", false
	}
	step := s.BackStack[len(s.BackStack)-1]
	s.BackStack = s.BackStack[:len(s.BackStack)-1]
	return step, true
}
