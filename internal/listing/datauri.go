package listing

import "encoding/base64"

// DownloadFilename is the name offered for the generated description
const DownloadFilename = "description.html"

// ImageDataURI inlines PNG bytes as a data URI
func ImageDataURI(pngData []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngData)
}

// HTMLDataURI inlines an HTML document as a downloadable data URI
func HTMLDataURI(html string) string {
	return "data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte(html))
}
