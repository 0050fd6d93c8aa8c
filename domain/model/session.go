package model

import "time"

// PendingFetch describes the page fetch a session is currently waiting on
type PendingFetch struct {
	Generation uint64 `json:"generation"`
	Keyword    string `json:"keyword"`
	Page       int    `json:"page"`
	Token      string `json:"token"`
}

// SearchSession is the pagination state of one dashboard session.
// PageTokens maps a page number to its continuation token; page 1 is
// never stored because the first page is always requested without a token.
type SearchSession struct {
	ID               string         `json:"id"`
	Keyword          string         `json:"keyword"`
	CurrentPage      int            `json:"current_page"`
	TotalPages       int            `json:"total_pages"`
	PageTokens       map[int]string `json:"page_tokens"`
	Videos           []VideoSummary `json:"videos"`
	NextPageToken    string         `json:"next_page_token,omitempty"`
	PrevPageToken    string         `json:"prev_page_token,omitempty"`
	StatsUnavailable bool           `json:"stats_unavailable"`
	Generation       uint64         `json:"generation"`
	Pending          *PendingFetch  `json:"pending,omitempty"`
	LastAttempt      int            `json:"last_attempt"`
	LastError        string         `json:"last_error,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// NewSearchSession returns an idle session with no keyword
func NewSearchSession(id string, now time.Time) *SearchSession {
	return &SearchSession{
		ID:          id,
		CurrentPage: 1,
		PageTokens:  map[int]string{},
		Videos:      []VideoSummary{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Reset discards everything tied to the previous keyword
func (s *SearchSession) Reset(keyword string) {
	s.Keyword = keyword
	s.CurrentPage = 1
	s.TotalPages = 0
	s.PageTokens = map[int]string{}
	s.Videos = []VideoSummary{}
	s.NextPageToken = ""
	s.PrevPageToken = ""
	s.StatsUnavailable = false
	s.LastAttempt = 0
	s.LastError = ""
}

// TokenFor returns the continuation token for page and whether it is known
func (s *SearchSession) TokenFor(page int) (string, bool) {
	if page == 1 {
		return "", true
	}
	token, ok := s.PageTokens[page]
	if !ok || token == "" {
		return "", false
	}
	return token, true
}

// HasNext reports whether the page after the current one can be requested
func (s *SearchSession) HasNext() bool {
	if s.CurrentPage >= s.TotalPages {
		return false
	}
	_, ok := s.TokenFor(s.CurrentPage + 1)
	return ok
}

// HasPrev reports whether the page before the current one can be requested
func (s *SearchSession) HasPrev() bool {
	return s.CurrentPage > 1
}

// Clone returns a deep copy so stores never share maps or slices with callers
func (s *SearchSession) Clone() *SearchSession {
	if s == nil {
		return nil
	}
	c := *s
	c.PageTokens = make(map[int]string, len(s.PageTokens))
	for k, v := range s.PageTokens {
		c.PageTokens[k] = v
	}
	c.Videos = append([]VideoSummary(nil), s.Videos...)
	if c.Videos == nil {
		c.Videos = []VideoSummary{}
	}
	if s.Pending != nil {
		p := *s.Pending
		c.Pending = &p
	}
	return &c
}
