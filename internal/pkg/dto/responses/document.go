package responses

type DocumentURL struct {
	URL    string `json:"url"`
	Signed bool   `json:"signed"`
}
