package entity

// Theme is the color scheme preference for the client UI.
type Theme string

const (
	ThemeSystem Theme = "system"
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
)

// Preferences holds per-user application settings.
type Preferences struct {
	Theme Theme `json:"theme"`

	// Daily reminder settings. ReminderTime is "HH:MM" in the user's
	// local time.
	ReminderEnabled bool   `json:"reminderEnabled"`
	ReminderTime    string `json:"reminderTime"`
}

// DefaultPreferences returns the preferences used before the user has
// saved any.
func DefaultPreferences() *Preferences {
	return &Preferences{
		Theme:           ThemeSystem,
		ReminderEnabled: false,
		ReminderTime:    "09:00",
	}
}
