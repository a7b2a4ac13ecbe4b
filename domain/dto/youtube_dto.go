package dto

// CommentsRequest represents a request for a page of video comments
type CommentsRequest struct {
	VideoID    string `json:"videoId" binding:"required"`
	MaxResults int64  `json:"maxResults,omitempty"`
	PageToken  string `json:"pageToken,omitempty"`
}

// Comment represents a single top-level comment on a video
type Comment struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	Author      string `json:"author"`
	PublishedAt string `json:"publishedAt"`
	LikeCount   int64  `json:"likeCount"`
	ReplyCount  int64  `json:"replyCount"`
}

// PageInfo carries the upstream pagination counters for a comment page
type PageInfo struct {
	TotalResults   int64 `json:"totalResults"`
	ResultsPerPage int64 `json:"resultsPerPage"`
}

// CommentsResponse represents one page of comments. NextPageToken is nil
// when the upstream reports no further pages.
type CommentsResponse struct {
	Comments      []Comment `json:"comments"`
	NextPageToken *string   `json:"nextPageToken"`
	PageInfo      PageInfo  `json:"pageInfo"`
}

// FetchNextPageJob is the payload of a queued pagination pre-warm job
type FetchNextPageJob struct {
	VideoID    string `json:"videoId"`
	PageToken  string `json:"pageToken"`
	MaxResults int64  `json:"maxResults"`
}
