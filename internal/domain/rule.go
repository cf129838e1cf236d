package domain

// CategoryRule maps a keyword to a target category. Matching is a
// case-insensitive substring search against transaction descriptions. Rules
// are stored in an ordered sequence and the first matching rule wins.
type CategoryRule struct {
	ID         string `json:"id"`
	Keyword    string `json:"keyword"`
	CategoryID int32  `json:"categoryId"`
}
