package entity

// Page is one page of a paginated user listing.
type Page struct {
	Data        []UserView `json:"data"`
	CurrentPage int        `json:"currentPage"`
	PerPage     int        `json:"perPage"`
	Total       int64      `json:"total"`
	LastPage    int        `json:"lastPage"`
}

// NewPage computes LastPage from total and perPage. LastPage is at least 1.
func NewPage(users []User, page, perPage int, total int64) Page {
	views := make([]UserView, len(users))
	for i := range users {
		views[i] = users[i].View()
	}
	last := 1
	if perPage > 0 && total > 0 {
		last = int((total + int64(perPage) - 1) / int64(perPage))
	}
	return Page{
		Data:        views,
		CurrentPage: page,
		PerPage:     perPage,
		Total:       total,
		LastPage:    last,
	}
}
