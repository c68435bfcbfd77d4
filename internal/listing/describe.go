package listing

import (
	"fmt"
	"strings"
)

const (
	placeholderTitle    = "{{Title}}"
	placeholderImageSrc = "{{ImageSrc}}"
	placeholderBodyHTML = "{{BodyHTML}}"
)

const bodyHTMLFormat = "\n    <p>This embroidery pack includes a complete A to Z collection of \"%s\" letters. " +
	"Designed with precision and artistry, each letter showcases a unique charm. " +
	"This design is delivered in multiple popular formats, ensuring compatibility with most embroidery machines.</p>\n    "

const metaDescriptionFormat = "%s from A to Z in digital embroidery formats. Includes ART, DST, PES, JEF, XXX, EXP, HUS, VP3, SEW."

// BodyHTML returns the description paragraph for a focus keyword
func BodyHTML(keyword string) string {
	return fmt.Sprintf(bodyHTMLFormat, keyword)
}

// FillTemplate substitutes the three placeholders verbatim and in order:
// {{Title}} gets the focus keyword, {{ImageSrc}} the image source and
// {{BodyHTML}} the generated paragraph. Values are not escaped.
func FillTemplate(tmpl, keyword, imageSrc string) string {
	filled := strings.ReplaceAll(tmpl, placeholderTitle, keyword)
	filled = strings.ReplaceAll(filled, placeholderImageSrc, imageSrc)
	return strings.ReplaceAll(filled, placeholderBodyHTML, BodyHTML(keyword))
}

// MetaDescription returns the SEO meta description for a focus keyword
func MetaDescription(keyword string) string {
	return fmt.Sprintf(metaDescriptionFormat, keyword)
}

// SizesHTML renders sizes as a bullet list, or "" when there are none
func SizesHTML(sizes []string) string {
	if len(sizes) == 0 {
		return ""
	}
	items := make([]string, len(sizes))
	for i, s := range sizes {
		items[i] = "<li>" + s + "</li>"
	}
	return "<ul>\n" + strings.Join(items, "\n") + "\n</ul>"
}
