// Package qrcode builds the public deep link for a restaurant menu and the
// URL of its QR image. The QR encoding itself is delegated to an external
// image service; nothing is rendered locally.
package qrcode

import (
	"net/url"
)

const (
	imageService = "https://api.qrserver.com/v1/create-qr-code/"
	imageSize    = "250x250"
)

// MenuLink returns the shareable deep link for a restaurant,
// e.g. https://etmenu.vercel.app/restaurant/664f....
func MenuLink(publicHost, restaurantID string) string {
	u := url.URL{
		Scheme: "https",
		Host:   publicHost,
		Path:   "/restaurant/" + restaurantID,
	}
	return u.String()
}

// ImageURL returns the URL of a 250x250 QR image encoding link.
func ImageURL(link string) string {
	q := url.Values{}
	q.Set("size", imageSize)
	q.Set("data", link)
	return imageService + "?" + q.Encode()
}
