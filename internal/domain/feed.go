package domain

// PostPage is one page of the home feed. Cursor is empty when there are no more results.
type PostPage struct {
	Posts  []Post
	Cursor string
}

// CommentPage is one page of the global comment listing.
type CommentPage struct {
	Comments []Comment
	Cursor   string
}
