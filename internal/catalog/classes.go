// Package catalog holds the bot's static lookup tables: the class roster,
// the battle-power bands and the timezone drill-down data. Everything here
// is immutable at runtime.
package catalog

// Role is a class's combat role, derived from the class and never chosen
// directly by the member.
type Role string

const (
	RoleDPS     Role = "DPS"
	RoleTank    Role = "Tank"
	RoleHealer  Role = "Healer"
	RoleSupport Role = "Support"
)

// Class describes one playable class and its subclasses
type Class struct {
	Name       string
	Role       Role
	Subclasses []string
}

// Classes is the ordered class roster, as presented in the wizard
var Classes = []Class{
	{Name: "Frost Mage", Role: RoleDPS, Subclasses: []string{"Icicle", "Blizzard", "Permafrost"}},
	{Name: "Flame Dancer", Role: RoleDPS, Subclasses: []string{"Ember", "Inferno", "Ash Step"}},
	{Name: "Shadow Blade", Role: RoleDPS, Subclasses: []string{"Night Edge", "Phantom", "Eclipse"}},
	{Name: "Storm Archer", Role: RoleDPS, Subclasses: []string{"Gale Shot", "Thunderhead", "Tempest"}},
	{Name: "Iron Vanguard", Role: RoleTank, Subclasses: []string{"Bulwark", "Juggernaut", "Aegis"}},
	{Name: "Stone Warden", Role: RoleTank, Subclasses: []string{"Granite", "Obsidian", "Bedrock"}},
	{Name: "Dawn Cleric", Role: RoleHealer, Subclasses: []string{"Radiance", "Sanctuary", "Benediction"}},
	{Name: "Tide Singer", Role: RoleHealer, Subclasses: []string{"Spring Tide", "Undertow", "Mistral"}},
	{Name: "Rune Bard", Role: RoleSupport, Subclasses: []string{"Warsong", "Lullaby", "Crescendo"}},
	{Name: "Chrono Sage", Role: RoleSupport, Subclasses: []string{"Haste", "Stasis", "Rewind"}},
}

// FindClass looks up a class by name; the second return is false when the
// name is not in the roster.
func FindClass(name string) (Class, bool) {
	for _, c := range Classes {
		if c.Name == name {
			return c, true
		}
	}
	return Class{}, false
}

// HasSubclass reports whether the named subclass belongs to the class
func (c Class) HasSubclass(name string) bool {
	for _, s := range c.Subclasses {
		if s == name {
			return true
		}
	}
	return false
}
