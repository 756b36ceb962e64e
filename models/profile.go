package models

import "time"

// DefaultProfileName is the name given to the profile created on first run.
const DefaultProfileName = "Default"

// Profile is a viewing profile. Watch history, watchlist and preferences are
// all keyed per profile.
type Profile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// Preferences holds per-profile display and playback preferences.
type Preferences struct {
	Theme         string `json:"theme"`
	Language      string `json:"language"`
	VideoQuality  string `json:"videoQuality"`
	Autoplay      bool   `json:"autoplay"`
	Subtitles     bool   `json:"subtitles"`
	Notifications bool   `json:"notifications"`
}

// DefaultPreferences returns the preferences applied to a profile that has
// never saved any.
func DefaultPreferences() Preferences {
	return Preferences{
		Theme:         "dark",
		Language:      "en",
		VideoQuality:  "hd",
		Autoplay:      false,
		Subtitles:     true,
		Notifications: true,
	}
}
