package models

// Localized views add a "localized" block holding every bilingual field
// resolved for one language. They are returned when a read asks for ?lang=.

type EventText struct {
	Lang        string `json:"lang"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
}

type EventView struct {
	Event
	Localized EventText `json:"localized"`
}

func (e Event) View(lang string) EventView {
	return EventView{Event: e, Localized: EventText{
		Lang:        lang,
		Title:       e.Title.Get(lang),
		Description: e.Description.Get(lang),
		Location:    e.Location.Get(lang),
	}}
}

type NewsText struct {
	Lang    string `json:"lang"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Content string `json:"content"`
}

type NewsView struct {
	News
	Localized NewsText `json:"localized"`
}

func (n News) View(lang string) NewsView {
	return NewsView{News: n, Localized: NewsText{
		Lang:    lang,
		Title:   n.Title.Get(lang),
		Summary: n.Summary.Get(lang),
		Content: n.Content.Get(lang),
	}}
}

type OpportunityText struct {
	Lang         string   `json:"lang"`
	Title        string   `json:"title"`
	Provider     string   `json:"provider"`
	Location     string   `json:"location"`
	Description  string   `json:"description"`
	Requirements []string `json:"requirements"`
}

type OpportunityView struct {
	Opportunity
	Localized OpportunityText `json:"localized"`
}

func (o Opportunity) View(lang string) OpportunityView {
	return OpportunityView{Opportunity: o, Localized: OpportunityText{
		Lang:         lang,
		Title:        o.Title.Get(lang),
		Provider:     o.Provider.Get(lang),
		Location:     o.Location.Get(lang),
		Description:  o.Description.Get(lang),
		Requirements: o.Requirements.Get(lang),
	}}
}

type ClubText struct {
	Lang        string `json:"lang"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type ClubView struct {
	Club
	Localized ClubText `json:"localized"`
}

func (c Club) View(lang string) ClubView {
	return ClubView{Club: c, Localized: ClubText{
		Lang:        lang,
		Name:        c.Name.Get(lang),
		Description: c.Description.Get(lang),
	}}
}
