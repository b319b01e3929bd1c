package spotify

// wire shapes for the slice of the Web API this adapter consumes

type searchResponse struct {
	Tracks struct {
		Items []trackItem `json:"items"`
		Next  *string     `json:"next"`
	} `json:"tracks"`
}

type trackItem struct {
	URI string `json:"uri"`
}

type userResponse struct {
	ID string `json:"id"`
}

type createPlaylistRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Public      bool   `json:"public"`
}

type createPlaylistResponse struct {
	ID string `json:"id"`
}

type addTracksRequest struct {
	URIs []string `json:"uris"`
}

type playlistImage struct {
	URL string `json:"url"`
}
