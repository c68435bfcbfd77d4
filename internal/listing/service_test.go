package listing

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image/png"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/zombor/finery-generator/internal/scanning"
)

var _ = Describe("Service", func() {
	var (
		scanner   *mockScanner
		templates *mockTemplates
		service   *Service
		req       Request
		listing   *Listing
		err       error
		mainImage []byte
		sizeChart []byte
	)

	BeforeEach(func() {
		mainImage = testPNG(20, 10, 1)
		sizeChart = testPNG(4, 4, 2)

		scanner = newMockScanner()
		scanner.texts[string(mainImage)] = "FINERY\n100x150mm"
		scanner.texts[string(sizeChart)] = "Sizes:\n130 x 180 mm\n100x150mm\nabc x def"
		templates = &mockTemplates{template: "<h1>{{Title}}</h1><img src=\"{{ImageSrc}}\">{{BodyHTML}}"}
		service = NewService(scanner, templates, 0)

		req = Request{
			Title: "Alphabet Royal Embroidery Designs – Complete A to Z",
			Images: []Image{
				{Filename: "main.png", ContentType: "image/png", Data: mainImage},
				{Filename: "sizes.png", ContentType: "image/png", Data: sizeChart},
			},
		}
	})

	JustBeforeEach(func() {
		listing, err = service.Generate(context.Background(), req)
	})

	When("the form is complete", func() {
		It("should not return an error", func() {
			Expect(err).NotTo(HaveOccurred())
		})

		It("derives the focus keyword from the title", func() {
			Expect(listing.FocusKeyword).To(Equal("Alphabet Royal Embroidery Designs - Complete"))
		})

		It("keeps the title", func() {
			Expect(listing.Title).To(Equal(req.Title))
		})

		It("collects sorted unique sizes from every image", func() {
			Expect(listing.Sizes).To(Equal([]string{`3.9" x 5.9"`, `5.1" x 7.1"`}))
			Expect(listing.SizesHTML).To(HavePrefix("<ul>\n<li>3.9\" x 5.9\"</li>"))
		})

		It("fills the template with the keyword and the main image", func() {
			Expect(listing.HTML).To(HavePrefix("<h1>Alphabet Royal Embroidery Designs - Complete</h1><img src=\"data:image/png;base64,"))
			Expect(listing.HTML).To(ContainSubstring(`collection of "Alphabet Royal Embroidery Designs - Complete" letters`))
			Expect(listing.HTML).To(ContainSubstring(listing.ImageSrc))
		})

		It("inlines the first image as PNG", func() {
			encoded := strings.TrimPrefix(listing.ImageSrc, "data:image/png;base64,")
			data, decodeErr := base64.StdEncoding.DecodeString(encoded)
			Expect(decodeErr).NotTo(HaveOccurred())
			cfg, cfgErr := png.DecodeConfig(bytes.NewReader(data))
			Expect(cfgErr).NotTo(HaveOccurred())
			Expect(cfg.Width).To(Equal(20))
		})

		It("builds the meta description", func() {
			Expect(listing.MetaDescription).To(HavePrefix("Alphabet Royal Embroidery Designs - Complete from A to Z"))
		})

		It("offers the HTML as a download", func() {
			Expect(listing.DownloadFilename).To(Equal("description.html"))
			Expect(listing.DownloadURI).To(Equal(HTMLDataURI(listing.HTML)))
		})
	})

	When("a keyword is provided", func() {
		BeforeEach(func() {
			req.Keyword = "  Royal Alphabet  "
		})

		It("uses the trimmed keyword", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(listing.FocusKeyword).To(Equal("Royal Alphabet"))
			Expect(listing.HTML).To(HavePrefix("<h1>Royal Alphabet</h1>"))
		})
	})

	When("a preview width is configured", func() {
		BeforeEach(func() {
			service = NewService(scanner, templates, 10)
		})

		It("downscales the inlined image", func() {
			data, decodeErr := base64.StdEncoding.DecodeString(strings.TrimPrefix(listing.ImageSrc, "data:image/png;base64,"))
			Expect(decodeErr).NotTo(HaveOccurred())
			cfg, cfgErr := png.DecodeConfig(bytes.NewReader(data))
			Expect(cfgErr).NotTo(HaveOccurred())
			Expect(cfg.Width).To(Equal(10))
			Expect(cfg.Height).To(Equal(5))
		})
	})

	When("no size text is found", func() {
		BeforeEach(func() {
			scanner.texts = map[string]string{}
		})

		It("returns an empty size list", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(listing.Sizes).To(BeEmpty())
			Expect(listing.SizesHTML).To(BeEmpty())
		})
	})

	When("the title is blank", func() {
		BeforeEach(func() {
			req.Title = "   "
		})

		It("returns ErrTitleRequired", func() {
			Expect(err).To(MatchError(ErrTitleRequired))
			Expect(listing).To(BeNil())
		})
	})

	When("no images are uploaded", func() {
		BeforeEach(func() {
			req.Images = nil
		})

		It("returns ErrNoImages", func() {
			Expect(err).To(MatchError(ErrNoImages))
		})
	})

	When("the main image cannot be decoded", func() {
		BeforeEach(func() {
			req.Images[0].Data = []byte("fake image data")
		})

		It("returns ErrUnreadableImage", func() {
			Expect(err).To(MatchError(scanning.ErrUnreadableImage))
		})

		It("does not run OCR", func() {
			Expect(scanner.calls).To(BeZero())
		})
	})

	When("OCR fails", func() {
		BeforeEach(func() {
			scanner.scanErr = errors.New("scan error")
		})

		It("returns the error", func() {
			Expect(err).To(MatchError(scanner.scanErr))
			Expect(err.Error()).To(ContainSubstring("extracting sizes"))
		})
	})

	When("the template cannot be loaded", func() {
		BeforeEach(func() {
			templates.loadErr = errors.New("template missing")
		})

		It("returns the error", func() {
			Expect(err).To(MatchError(templates.loadErr))
			Expect(err.Error()).To(ContainSubstring("loading template"))
		})
	})

	Describe("DefaultKeyword", func() {
		It("uses the first six words", func() {
			Expect(service.DefaultKeyword("a b c d e f g h")).To(Equal("a b c d e f"))
		})
	})
})
