package listing

// Image is one uploaded product image, identified only by its position in the upload
type Image struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Request is one submitted product form
type Request struct {
	Title   string
	Keyword string // optional, defaults to ExtractFocusKeyword(Title)
	Images  []Image
}

// Listing is everything generated for one product
type Listing struct {
	Title            string   `json:"title"`
	FocusKeyword     string   `json:"focus_keyword"`
	HTML             string   `json:"html"`
	MetaDescription  string   `json:"meta_description"`
	Sizes            []string `json:"sizes"`
	SizesHTML        string   `json:"sizes_html,omitempty"`
	ImageSrc         string   `json:"image_src"`
	DownloadURI      string   `json:"download_uri"`
	DownloadFilename string   `json:"download_filename"`
}
