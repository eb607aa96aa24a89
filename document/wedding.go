package document

// WeddingData is the externally owned content record. It is the single source
// of truth for binding targets; every list entry carries a stable ID.
type WeddingData struct {
	Version  string         `json:"version"`
	Couple   Couple         `json:"couple"`
	Event    Event          `json:"event"`
	Venues   []Venue        `json:"venues"`
	Schedule []ScheduleItem `json:"schedule"`
	RSVP     RSVP           `json:"rsvp"`
	Travel   Travel         `json:"travel"`
	Registry Registry       `json:"registry"`
	FAQ      []FAQItem      `json:"faq"`
	Theme    ContentTheme   `json:"theme"`
	Media    Media          `json:"media"`
	Meta     Timestamps     `json:"meta"`
}

type Couple struct {
	Partner1Name    string `json:"partner1Name"`
	Partner2Name    string `json:"partner2Name"`
	DisplayName     string `json:"displayName,omitempty"`
	Story           string `json:"story,omitempty"`
	LastNameDisplay string `json:"lastNameDisplay,omitempty"`
}

type Event struct {
	WeddingDate string `json:"weddingDateISO,omitempty"`
	Timezone    string `json:"timezone,omitempty"`
}

type Venue struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Address string   `json:"address,omitempty"`
	PlaceID string   `json:"placeId,omitempty"`
	Lat     *float64 `json:"lat,omitempty"`
	Lng     *float64 `json:"lng,omitempty"`
	Notes   string   `json:"notes,omitempty"`
}

type ScheduleItem struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	StartTime string `json:"startTimeISO,omitempty"`
	EndTime   string `json:"endTimeISO,omitempty"`
	VenueID   string `json:"venueId,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

type RSVP struct {
	Enabled  bool   `json:"enabled"`
	Deadline string `json:"deadlineISO,omitempty"`
}

type Travel struct {
	Notes       string `json:"notes,omitempty"`
	ParkingInfo string `json:"parkingInfo,omitempty"`
	HotelInfo   string `json:"hotelInfo,omitempty"`
	FlightInfo  string `json:"flightInfo,omitempty"`
}

type Registry struct {
	Links []RegistryLink `json:"links"`
	Notes string         `json:"notes,omitempty"`
}

type RegistryLink struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	URL   string `json:"url"`
}

type FAQItem struct {
	ID       string `json:"id"`
	Question string `json:"q"`
	Answer   string `json:"a"`
}

type ContentTheme struct {
	Preset string            `json:"preset,omitempty"`
	Tokens map[string]string `json:"tokens,omitempty"`
}

type Media struct {
	HeroImageURL string         `json:"heroImageUrl,omitempty"`
	Gallery      []GalleryImage `json:"gallery"`
}

type GalleryImage struct {
	ID      string `json:"id"`
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
}

// Clone returns a deep copy of the content record.
func (w *WeddingData) Clone() *WeddingData {
	if w == nil {
		return nil
	}
	cloned := *w
	if w.Venues != nil {
		cloned.Venues = make([]Venue, len(w.Venues))
		for i, venue := range w.Venues {
			cv := venue
			cv.Lat = cloneFloat(venue.Lat)
			cv.Lng = cloneFloat(venue.Lng)
			cloned.Venues[i] = cv
		}
	}
	if w.Schedule != nil {
		cloned.Schedule = append([]ScheduleItem(nil), w.Schedule...)
	}
	if w.Registry.Links != nil {
		cloned.Registry.Links = append([]RegistryLink(nil), w.Registry.Links...)
	}
	if w.FAQ != nil {
		cloned.FAQ = append([]FAQItem(nil), w.FAQ...)
	}
	if w.Media.Gallery != nil {
		cloned.Media.Gallery = append([]GalleryImage(nil), w.Media.Gallery...)
	}
	if w.Theme.Tokens != nil {
		tokens := make(map[string]string, len(w.Theme.Tokens))
		for k, v := range w.Theme.Tokens {
			tokens[k] = v
		}
		cloned.Theme.Tokens = tokens
	}
	return &cloned
}
