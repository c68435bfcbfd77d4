package listing

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/zombor/finery-generator/internal/scanning"
)

// ErrUnsupportedFileType is returned for uploads that are not product images
var ErrUnsupportedFileType = errors.New("unsupported file type")

// errBadForm marks requests whose multipart body could not be parsed
var errBadForm = errors.New("error parsing form")

// memory kept per form before spilling file parts to disk
const multipartMemory = int64(32 << 20)

var acceptedContentTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
	"image/gif":       true,
	"image/heic":      true,
	"image/heif":      true,
	"application/pdf": true,
}

// setCORSHeaders sets CORS headers on a response
func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
	w.Header().Set("Access-Control-Max-Age", "3600")
}

// writeJSON writes v as a JSON response
func writeJSON(w http.ResponseWriter, code int, v any) {
	setCORSHeaders(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// writeJSONError writes {"error": message}
func writeJSONError(w http.ResponseWriter, message string, code int) {
	writeJSON(w, code, map[string]string{
		"error": message,
	})
}

// contentTypeFor picks the upload's MIME type from its part header or, failing that, its extension
func contentTypeFor(header *multipart.FileHeader) string {
	contentType := strings.ToLower(strings.TrimSpace(header.Header.Get("Content-Type")))
	if contentType != "" && contentType != "application/octet-stream" {
		if contentType == "image/jpg" {
			return "image/jpeg"
		}
		return contentType
	}

	switch strings.ToLower(filepath.Ext(header.Filename)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	case ".gif":
		return "image/gif"
	case ".heic":
		return "image/heic"
	case ".heif":
		return "image/heif"
	case ".pdf":
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}

// readListingRequest parses the multipart form shared by the page and the API
func (s *Server) readListingRequest(w http.ResponseWriter, r *http.Request) (Request, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadSize)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		return Request{}, fmt.Errorf("%w: %w", errBadForm, err)
	}

	req := Request{
		Title:   r.FormValue("title"),
		Keyword: r.FormValue("keyword"),
	}

	for _, header := range r.MultipartForm.File["images"] {
		contentType := contentTypeFor(header)
		if !acceptedContentTypes[contentType] {
			return Request{}, fmt.Errorf("%w: %s (%s)", ErrUnsupportedFileType, header.Filename, contentType)
		}

		data, err := readFormFile(header)
		if err != nil {
			return Request{}, err
		}
		req.Images = append(req.Images, Image{
			Filename:    header.Filename,
			ContentType: contentType,
			Data:        data,
		})
	}
	return req, nil
}

func readFormFile(header *multipart.FileHeader) ([]byte, error) {
	f, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", header.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", header.Filename, err)
	}
	return data, nil
}

// errorResponse maps an error to a status code and a message safe to show the user
func (s *Server) errorResponse(err error) (int, string) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge, fmt.Sprintf("Upload is too large. Maximum size is %dMB.", s.maxUploadSize>>20)
	case errors.Is(err, errBadForm):
		return http.StatusBadRequest, "Error parsing form"
	case errors.Is(err, ErrTitleRequired),
		errors.Is(err, ErrNoImages),
		errors.Is(err, ErrUnsupportedFileType),
		errors.Is(err, scanning.ErrUnreadableImage):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, "Error generating listing"
	}
}

// handleIndex serves the empty form
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderForm(w, http.StatusOK, formPage{})
}

// handleSubmit generates a listing from the submitted form and renders the result
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	req, err := s.readListingRequest(w, r)
	if err == nil {
		var listing *Listing
		listing, err = s.service.Generate(r.Context(), req)
		if err == nil {
			s.renderResult(w, listing)
			return
		}
	}

	code, message := s.errorResponse(err)
	slog.Error("Error generating listing", "status", code, "error", err)
	s.renderForm(w, code, formPage{
		Title:   req.Title,
		Keyword: req.Keyword,
		Error:   message,
	})
}

// handleKeyword returns the default focus keyword for ?title=
func (s *Server) handleKeyword(w http.ResponseWriter, r *http.Request) {
	title := r.URL.Query().Get("title")
	writeJSON(w, http.StatusOK, map[string]string{
		"keyword": s.service.DefaultKeyword(title),
	})
}

// handleCreateListing is the JSON variant of handleSubmit
func (s *Server) handleCreateListing(w http.ResponseWriter, r *http.Request) {
	req, err := s.readListingRequest(w, r)
	if err != nil {
		code, message := s.errorResponse(err)
		slog.Error("Error reading listing request", "error", err)
		writeJSONError(w, message, code)
		return
	}

	listing, err := s.service.Generate(r.Context(), req)
	if err != nil {
		code, message := s.errorResponse(err)
		slog.Error("Error generating listing", "images", len(req.Images), "error", err)
		writeJSONError(w, message, code)
		return
	}

	writeJSON(w, http.StatusCreated, listing)
}

// formPage is the data for the form template
type formPage struct {
	Title   string
	Keyword string
	Error   string
}

// resultPage is the data for the result template
type resultPage struct {
	Listing     *Listing
	SizesHTML   template.HTML
	DownloadURL template.URL
}

func (s *Server) renderForm(w http.ResponseWriter, code int, page formPage) {
	setCORSHeaders(w)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	if err := pages.ExecuteTemplate(w, "index.html", page); err != nil {
		slog.Error("Error rendering form", "error", err)
	}
}

func (s *Server) renderResult(w http.ResponseWriter, listing *Listing) {
	page := resultPage{
		Listing: listing,
		// Sizes are digits and quotes produced by ParseSizeLine
		SizesHTML:   template.HTML(listing.SizesHTML),
		DownloadURL: template.URL(listing.DownloadURI),
	}

	setCORSHeaders(w)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.ExecuteTemplate(w, "result.html", page); err != nil {
		slog.Error("Error rendering result", "error", err)
	}
}

// handleStaticCSS serves the CSS file
func (s *Server) handleStaticCSS(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)
	w.Header().Set("Content-Type", "text/css")
	w.Write(appCSS)
}

// handleStaticJS serves the keyword pre-fill script
func (s *Server) handleStaticJS(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Write(appJS)
}
