package fetcher

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
)

// ExtractImage resolves a representative image URL for a feed item.
// Precedence: media:content, media:thumbnail, image enclosure,
// first <img> tag found in the item HTML.
func ExtractImage(item *gofeed.Item) string {
	if url := mediaExtensionURL(item, "content"); url != "" {
		return url
	}
	if url := mediaExtensionURL(item, "thumbnail"); url != "" {
		return url
	}

	for _, enc := range item.Enclosures {
		if enc == nil || enc.URL == "" {
			continue
		}
		if strings.HasPrefix(enc.Type, "image/") {
			return enc.URL
		}
	}

	html := item.Content
	if html == "" {
		html = item.Description
	}
	return firstImgSrc(html)
}

// mediaExtensionURL pulls the url attribute from a media RSS extension
// element such as media:content or media:thumbnail.
func mediaExtensionURL(item *gofeed.Item, name string) string {
	media, ok := item.Extensions["media"]
	if !ok {
		return ""
	}
	for _, ext := range media[name] {
		if url := ext.Attrs["url"]; url != "" {
			return url
		}
	}
	return ""
}

// firstImgSrc returns the src of the first <img> tag in the HTML fragment.
func firstImgSrc(html string) string {
	if html == "" || !strings.Contains(html, "<img") {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	src, _ := doc.Find("img[src]").First().Attr("src")
	return src
}
