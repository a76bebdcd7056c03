package remote

type EmptyResponse struct {
}

// ShowRequest carries a frame as its two packed planes.
type ShowRequest struct {
	Width     int
	Height    int
	Black     []byte
	Chromatic []byte
}
