package listing

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Sizes", func() {
	Describe("ParseSizeLine", func() {
		DescribeTable("lines that yield an entry",
			func(line, expected string) {
				entry, ok := ParseSizeLine(line)
				Expect(ok).To(BeTrue())
				Expect(entry).To(Equal(expected))
			},
			Entry("compact millimeters", "100x150mm", `3.9" x 5.9"`),
			Entry("spaces around x", "100 x 150 mm", `3.9" x 5.9"`),
			Entry("uppercase unit", "100x150MM", `3.9" x 5.9"`),
			Entry("no unit", "130x180", `5.1" x 7.1"`),
			Entry("decimals", "99.5x120.25mm", `3.9" x 4.7"`),
			Entry("whole inches keep one decimal", "254x508mm", `10.0" x 20.0"`),
			Entry("surrounding whitespace", "\t 100x150mm \r", `3.9" x 5.9"`),
		)

		DescribeTable("lines that are skipped",
			func(line string) {
				entry, ok := ParseSizeLine(line)
				Expect(ok).To(BeFalse())
				Expect(entry).To(BeEmpty())
			},
			Entry("no digits", "abc x def"),
			Entry("no x", "100 by 150 mm"),
			Entry("uppercase X only", "100X150"),
			Entry("three segments", "100x150x20mm"),
			Entry("text around the pair", "size: 100x150mm"),
			Entry("non numeric segment", "4x4 hoop"),
			Entry("empty line", ""),
			Entry("infinite value", "infx100"),
		)
	})

	Describe("SizesFromText", func() {
		It("deduplicates across texts", func() {
			sizes := SizesFromText("100x150mm\nnoise", "100 x 150 mm\n")
			Expect(sizes).To(Equal([]string{`3.9" x 5.9"`}))
		})

		It("sorts as strings, not numbers", func() {
			sizes := SizesFromText("300x300mm\n100x150mm")
			Expect(sizes).To(Equal([]string{`11.8" x 11.8"`, `3.9" x 5.9"`}))
		})

		It("returns an empty list when nothing matches", func() {
			sizes := SizesFromText("abc x def\nhello")
			Expect(sizes).NotTo(BeNil())
			Expect(sizes).To(BeEmpty())
		})
	})

	Describe("ExtractSizes", func() {
		var (
			scanner *mockScanner
			images  []Image
			sizes   []string
			err     error
		)

		BeforeEach(func() {
			scanner = newMockScanner()
			scanner.texts["a"] = "Sizes\n100x150mm\n130x180mm"
			scanner.texts["b"] = "130 x 180 mm\nabc x def"
			images = []Image{
				{Filename: "a.jpg", ContentType: "image/jpeg", Data: []byte("a")},
				{Filename: "b.png", ContentType: "image/png", Data: []byte("b")},
			}
		})

		JustBeforeEach(func() {
			sizes, err = ExtractSizes(context.Background(), scanner, images)
		})

		When("every image is readable", func() {
			It("should not return an error", func() {
				Expect(err).NotTo(HaveOccurred())
			})

			It("scans every image", func() {
				Expect(scanner.calls).To(Equal(2))
			})

			It("merges the sizes of all images", func() {
				Expect(sizes).To(Equal([]string{`3.9" x 5.9"`, `5.1" x 7.1"`}))
			})
		})

		When("the scanner fails", func() {
			BeforeEach(func() {
				scanner.scanErr = errors.New("tesseract crashed")
			})

			It("aborts with the error", func() {
				Expect(err).To(MatchError(scanner.scanErr))
				Expect(err.Error()).To(ContainSubstring("a.jpg"))
				Expect(sizes).To(BeNil())
			})

			It("stops at the first image", func() {
				Expect(scanner.calls).To(Equal(1))
			})
		})
	})
})
