package model

// Thumbnail represents a single thumbnail rendition of a video.
type Thumbnail struct {
	URL    string `json:"url"`
	Width  int64  `json:"width"`
	Height int64  `json:"height"`
}

// Thumbnails holds the renditions YouTube publishes for a video. Renditions
// that the upstream API omits stay nil and are dropped from JSON output.
type Thumbnails struct {
	Default  *Thumbnail `json:"default,omitempty"`
	Medium   *Thumbnail `json:"medium,omitempty"`
	High     *Thumbnail `json:"high,omitempty"`
	Standard *Thumbnail `json:"standard,omitempty"`
	Maxres   *Thumbnail `json:"maxres,omitempty"`
}

// VideoDetails represents the subset of video metadata served to clients.
type VideoDetails struct {
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	ViewCount    uint64     `json:"viewCount"`
	LikeCount    uint64     `json:"likeCount"`
	ChannelTitle string     `json:"channelTitle"`
	Thumbnails   Thumbnails `json:"thumbnails"`
	PublishedAt  string     `json:"publishedAt"`
}
